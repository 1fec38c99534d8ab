package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/ayala-manuel/rag-containers/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEmbedder returns one vector per text encoding its batch position, and
// records every batch it receives.
type fakeEmbedder struct {
	batches [][]string
	err     error
}

func (f *fakeEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	f.batches = append(f.batches, texts)
	if f.err != nil {
		return nil, f.err
	}
	embeddings := make([][]float32, len(texts))
	for i := range texts {
		embeddings[i] = []float32{float32(i)}
	}
	return embeddings, nil
}

func newTestPayloadService(embedder Embedder, chunkEnabled bool) *PayloadService {
	chunker := NewChunkService(ChunkServiceConfig{MaxWords: 1000, OverlapSentences: 2})
	return NewPayloadService(chunker, embedder, chunkEnabled)
}

func TestBuildPayloadUnchunkedSingleRecord(t *testing.T) {
	embedder := &fakeEmbedder{}
	s := newTestPayloadService(embedder, false)

	docs := []types.Document{{
		Text: "Short sentence one. Short sentence two.",
		Metadata: &types.DocumentMetadata{
			Title: "T",
			Date:  "2024-06-01",
			Tags:  []string{"a", "b"},
		},
	}}
	records, err := s.BuildPayload(context.Background(), docs)

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Short sentence one. Short sentence two.", records[0].Text)
	assert.Equal(t, int64(1717200000000), records[0].Metadata["date"])
	assert.Equal(t, "T", records[0].Metadata["title"])
	assert.Equal(t, []string{"a", "b"}, records[0].Metadata["tags"])
}

func TestBuildPayloadOrderPreserved(t *testing.T) {
	embedder := &fakeEmbedder{}
	s := newTestPayloadService(embedder, true)

	docs := []types.Document{
		{Text: "First document paragraph here.\n\nSecond paragraph of the first document.", Metadata: &types.DocumentMetadata{Title: "one"}},
		{Text: "Single paragraph of the second document.", Metadata: &types.DocumentMetadata{Title: "two"}},
	}
	records, err := s.BuildPayload(context.Background(), docs)

	require.NoError(t, err)
	require.Len(t, records, 3)

	// One batched embedding call for the whole flattened sequence.
	require.Len(t, embedder.batches, 1)
	require.Len(t, embedder.batches[0], 3)

	for i, record := range records {
		assert.Equal(t, embedder.batches[0][i], record.Text, "record %d text out of order", i)
		assert.Equal(t, []float32{float32(i)}, record.Embedding, "record %d embedding out of order", i)
	}
	assert.Equal(t, "one", records[0].Metadata["title"])
	assert.Equal(t, "one", records[1].Metadata["title"])
	assert.Equal(t, "two", records[2].Metadata["title"])
}

func TestBuildPayloadMetadataReplicatedAcrossChunks(t *testing.T) {
	embedder := &fakeEmbedder{}
	s := newTestPayloadService(embedder, true)

	docs := []types.Document{{
		Text:     "Paragraph number one right here.\n\nParagraph number two right here.",
		Metadata: &types.DocumentMetadata{Title: "doc", Date: "2024-06-01"},
	}}
	records, err := s.BuildPayload(context.Background(), docs)

	require.NoError(t, err)
	require.Len(t, records, 2)
	for _, record := range records {
		assert.Equal(t, "doc", record.Metadata["title"])
		assert.Equal(t, int64(1717200000000), record.Metadata["date"])
	}
}

func TestBuildPayloadEmbedFailureAbortsBatch(t *testing.T) {
	embedder := &fakeEmbedder{err: fmt.Errorf("%w: down", types.ErrEmbeddingUnavailable)}
	s := newTestPayloadService(embedder, false)

	docs := []types.Document{
		{Text: "one"}, {Text: "two"}, {Text: "three"}, {Text: "four"}, {Text: "five"},
	}
	records, err := s.BuildPayload(context.Background(), docs)

	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrEmbeddingUnavailable)
	assert.Nil(t, records)
}

func TestBuildPayloadNothingToEmbed(t *testing.T) {
	embedder := &fakeEmbedder{}
	s := newTestPayloadService(embedder, true)

	records, err := s.BuildPayload(context.Background(), []types.Document{{Text: "   \n  "}})

	require.NoError(t, err)
	assert.Nil(t, records)
	assert.Empty(t, embedder.batches)
}

func TestBuildQueryVector(t *testing.T) {
	embedder := &fakeEmbedder{}
	s := newTestPayloadService(embedder, true)

	vector, err := s.BuildQueryVector(context.Background(), "what is the revenue")

	require.NoError(t, err)
	assert.Equal(t, []float32{0}, vector)
	require.Len(t, embedder.batches, 1)
	assert.Equal(t, []string{"what is the revenue"}, embedder.batches[0])
}

func TestBuildQueryVectorEmbedderError(t *testing.T) {
	embedder := &fakeEmbedder{err: errors.New("boom")}
	s := newTestPayloadService(embedder, true)

	_, err := s.BuildQueryVector(context.Background(), "query")
	assert.Error(t, err)
}
