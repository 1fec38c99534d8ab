package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/ayala-manuel/rag-containers/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/filters"
)

// fakeVectorStore captures upserts and deletes and serves canned scroll and
// search results.
type fakeVectorStore struct {
	upserted      [][]types.InsertionRecord
	deleted       [][]string
	scrollPoints  []types.StoredPoint
	searchResults []types.SearchResult
	searchWhere   *filters.WhereBuilder
	deleteErr     error
}

func (f *fakeVectorStore) CreateCollection(ctx context.Context, name string, vectorSize int) error {
	return nil
}

func (f *fakeVectorStore) DeleteCollection(ctx context.Context, name string) error {
	return nil
}

func (f *fakeVectorStore) ListCollections(ctx context.Context) ([]string, error) {
	return nil, nil
}

func (f *fakeVectorStore) Upsert(ctx context.Context, collection string, records []types.InsertionRecord) (int, error) {
	f.upserted = append(f.upserted, records)
	return len(records), nil
}

func (f *fakeVectorStore) Search(ctx context.Context, collection string, vector []float32, limit int, where *filters.WhereBuilder, scoreThreshold float32) ([]types.SearchResult, error) {
	f.searchWhere = where
	return f.searchResults, nil
}

func (f *fakeVectorStore) Scroll(ctx context.Context, collection string, limit int) ([]types.StoredPoint, error) {
	return f.scrollPoints, nil
}

func (f *fakeVectorStore) DeleteByIDs(ctx context.Context, collection string, ids []string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, ids)
	return nil
}

func newTestDocumentService(store *fakeVectorStore, embedder Embedder) *DocumentService {
	return NewDocumentService(newTestPayloadService(embedder, true), store)
}

func titledPoint(id, title string) types.StoredPoint {
	return types.StoredPoint{
		ID:      id,
		Payload: map[string]any{"title": title, "text": "chunk of " + title},
	}
}

func TestUploadDocumentsValidation(t *testing.T) {
	store := &fakeVectorStore{}
	s := newTestDocumentService(store, &fakeEmbedder{})

	_, err := s.UploadDocuments(context.Background(), "docs", nil)
	assert.ErrorIs(t, err, types.ErrNoDocuments)

	_, err = s.UploadDocuments(context.Background(), "docs", []types.Document{{Text: "  "}})
	assert.ErrorIs(t, err, types.ErrNoDocuments)

	assert.Empty(t, store.upserted)
}

func TestUploadDocumentsStoresAllChunks(t *testing.T) {
	store := &fakeVectorStore{}
	s := newTestDocumentService(store, &fakeEmbedder{})

	count, err := s.UploadDocuments(context.Background(), "docs", []types.Document{
		{Text: "A perfectly ordinary document body.", Metadata: &types.DocumentMetadata{Title: "A"}},
	})

	require.NoError(t, err)
	assert.Equal(t, 1, count)
	require.Len(t, store.upserted, 1)
	assert.Equal(t, "A perfectly ordinary document body.", store.upserted[0][0].Text)
}

func TestUploadDocumentsNoPartialWritesOnEmbedFailure(t *testing.T) {
	store := &fakeVectorStore{}
	embedder := &fakeEmbedder{err: fmt.Errorf("%w: refused", types.ErrEmbeddingUnavailable)}
	s := newTestDocumentService(store, embedder)

	docs := []types.Document{
		{Text: "Document one body text."},
		{Text: "Document two body text."},
		{Text: "Document three body text."},
		{Text: "Document four body text."},
		{Text: "Document five body text."},
	}
	_, err := s.UploadDocuments(context.Background(), "docs", docs)

	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrEmbeddingUnavailable)
	assert.Empty(t, store.upserted, "nothing may reach the store when embedding fails")
}

func TestSearchEmptyQuery(t *testing.T) {
	s := newTestDocumentService(&fakeVectorStore{}, &fakeEmbedder{})

	_, err := s.Search(context.Background(), "docs", types.SearchRequest{Query: "   "})
	assert.ErrorIs(t, err, types.ErrEmptyQuery)
}

func TestSearchPassesFilter(t *testing.T) {
	store := &fakeVectorStore{searchResults: []types.SearchResult{{ID: "1", Score: 0.9}}}
	s := newTestDocumentService(store, &fakeEmbedder{})

	results, err := s.Search(context.Background(), "docs", types.SearchRequest{
		Query:    "budget",
		Metadata: &types.QueryMetadata{Tags: []string{"finance"}},
	})

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.NotNil(t, store.searchWhere)
}

func TestSearchNoFilterWhenMetadataEmpty(t *testing.T) {
	store := &fakeVectorStore{}
	s := newTestDocumentService(store, &fakeEmbedder{})

	_, err := s.Search(context.Background(), "docs", types.SearchRequest{Query: "budget"})
	require.NoError(t, err)
	assert.Nil(t, store.searchWhere)
}

func TestListDocumentsByTitleGroups(t *testing.T) {
	store := &fakeVectorStore{scrollPoints: []types.StoredPoint{
		titledPoint("1", "A"),
		titledPoint("2", "B"),
		titledPoint("3", "A"),
	}}
	s := newTestDocumentService(store, &fakeEmbedder{})

	groups, err := s.ListDocumentsByTitle(context.Background(), "docs", 0)

	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "A", groups[0].Title)
	assert.Len(t, groups[0].Chunks, 2)
	assert.Equal(t, "B", groups[1].Title)
	assert.Len(t, groups[1].Chunks, 1)
}

func TestDeleteDocumentsByTitlesPartialSuccess(t *testing.T) {
	store := &fakeVectorStore{scrollPoints: []types.StoredPoint{
		titledPoint("1", "A"),
		titledPoint("2", "A"),
	}}
	s := newTestDocumentService(store, &fakeEmbedder{})

	result, err := s.DeleteDocumentsByTitles(context.Background(), "docs", []string{"A", "B"})

	require.NoError(t, err)
	assert.Equal(t, types.StatusPartialSuccess, result.Status)
	require.Len(t, result.Results, 2)

	assert.Equal(t, "A", result.Results[0].Title)
	assert.Equal(t, 2, result.Results[0].Deleted)
	assert.Empty(t, result.Results[0].Error)

	assert.Equal(t, "B", result.Results[1].Title)
	assert.NotEmpty(t, result.Results[1].Error)

	require.Len(t, store.deleted, 1)
	assert.ElementsMatch(t, []string{"1", "2"}, store.deleted[0])
}

func TestDeleteDocumentsByTitlesAllFound(t *testing.T) {
	store := &fakeVectorStore{scrollPoints: []types.StoredPoint{
		titledPoint("1", "A"),
		titledPoint("2", "B"),
	}}
	s := newTestDocumentService(store, &fakeEmbedder{})

	result, err := s.DeleteDocumentsByTitles(context.Background(), "docs", []string{"A", "B"})

	require.NoError(t, err)
	assert.Equal(t, types.StatusSuccess, result.Status)
}

func TestDeleteDocumentsByTitlesNoneFound(t *testing.T) {
	store := &fakeVectorStore{}
	s := newTestDocumentService(store, &fakeEmbedder{})

	result, err := s.DeleteDocumentsByTitles(context.Background(), "docs", []string{"X"})

	require.NoError(t, err)
	assert.Equal(t, types.StatusError, result.Status)
}

func TestDeleteDocumentsByTitlesStoreFailure(t *testing.T) {
	store := &fakeVectorStore{
		scrollPoints: []types.StoredPoint{titledPoint("1", "A"), titledPoint("2", "B")},
		deleteErr:    errors.New("connection reset"),
	}
	s := newTestDocumentService(store, &fakeEmbedder{})

	result, err := s.DeleteDocumentsByTitles(context.Background(), "docs", []string{"A", "B"})

	require.NoError(t, err)
	assert.Equal(t, types.StatusError, result.Status)
	for _, outcome := range result.Results {
		assert.NotEmpty(t, outcome.Error)
	}
}

func TestDeleteDocumentsByTitlesNoTitles(t *testing.T) {
	s := newTestDocumentService(&fakeVectorStore{}, &fakeEmbedder{})

	_, err := s.DeleteDocumentsByTitles(context.Background(), "docs", nil)
	assert.ErrorIs(t, err, types.ErrNoDocuments)
}
