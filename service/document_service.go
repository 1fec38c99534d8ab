package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/ayala-manuel/rag-containers/database"
	"github.com/ayala-manuel/rag-containers/types"
)

const (
	defaultSearchLimit = 10
	// Upper bound for bulk scans backing the list and delete-by-title
	// operations.
	defaultScrollLimit = 10000
)

// DocumentService orchestrates the ingestion and search pipeline: payload
// building on the way in, query embedding plus filter translation on the way
// out. All writes are all-or-nothing; delete-by-titles is the single
// operation where partial success is a legitimate outcome.
type DocumentService struct {
	payloadService *PayloadService
	store          database.VectorStore
}

func NewDocumentService(payloadService *PayloadService, store database.VectorStore) *DocumentService {
	return &DocumentService{
		payloadService: payloadService,
		store:          store,
	}
}

// UploadDocuments chunks, embeds and upserts the documents into the
// collection, returning the number of stored points. Nothing is written when
// any stage fails.
func (s *DocumentService) UploadDocuments(ctx context.Context, collection string, docs []types.Document) (int, error) {
	if len(docs) == 0 {
		return 0, types.ErrNoDocuments
	}
	for i, doc := range docs {
		if strings.TrimSpace(doc.Text) == "" {
			return 0, fmt.Errorf("%w: document %d has empty text", types.ErrNoDocuments, i)
		}
	}

	records, err := s.payloadService.BuildPayload(ctx, docs)
	if err != nil {
		return 0, err
	}
	if len(records) == 0 {
		return 0, nil
	}
	return s.store.Upsert(ctx, collection, records)
}

// Search embeds the query, translates the metadata filter and runs a
// similarity search against the collection.
func (s *DocumentService) Search(ctx context.Context, collection string, req types.SearchRequest) ([]types.SearchResult, error) {
	if strings.TrimSpace(req.Query) == "" {
		return nil, types.ErrEmptyQuery
	}
	if req.Limit <= 0 {
		req.Limit = defaultSearchLimit
	}

	vector, err := s.payloadService.BuildQueryVector(ctx, req.Query)
	if err != nil {
		return nil, err
	}
	where, err := database.BuildQueryFilter(req.Metadata)
	if err != nil {
		return nil, err
	}
	return s.store.Search(ctx, collection, vector, req.Limit, where, req.ScoreThreshold)
}

// ListDocumentsByTitle scans the collection and groups stored chunks by their
// title, preserving first-seen title order.
func (s *DocumentService) ListDocumentsByTitle(ctx context.Context, collection string, limit int) ([]types.DocumentGroup, error) {
	if limit <= 0 {
		limit = defaultScrollLimit
	}
	points, err := s.store.Scroll(ctx, collection, limit)
	if err != nil {
		return nil, err
	}

	groupIndex := map[string]int{}
	var groups []types.DocumentGroup
	for _, point := range points {
		title := pointTitle(point)
		idx, ok := groupIndex[title]
		if !ok {
			idx = len(groups)
			groupIndex[title] = idx
			groups = append(groups, types.DocumentGroup{Title: title})
		}
		groups[idx].Chunks = append(groups[idx].Chunks, point)
	}
	return groups, nil
}

// DeleteDocumentsByTitles removes every chunk belonging to each title. Titles
// are attempted independently; per-title failures are reported next to
// successes and the overall status reflects the mix.
func (s *DocumentService) DeleteDocumentsByTitles(ctx context.Context, collection string, titles []string) (*types.DeleteByTitlesResponse, error) {
	if len(titles) == 0 {
		return nil, fmt.Errorf("%w: no titles provided", types.ErrNoDocuments)
	}

	points, err := s.store.Scroll(ctx, collection, defaultScrollLimit)
	if err != nil {
		return nil, err
	}
	idsByTitle := map[string][]string{}
	for _, point := range points {
		title := pointTitle(point)
		idsByTitle[title] = append(idsByTitle[title], point.ID)
	}

	response := &types.DeleteByTitlesResponse{}
	failures := 0
	for _, title := range titles {
		ids := idsByTitle[title]
		if len(ids) == 0 {
			failures++
			response.Results = append(response.Results, types.DeleteTitleOutcome{
				Title: title,
				Error: "no documents found with this title",
			})
			continue
		}
		if err := s.store.DeleteByIDs(ctx, collection, ids); err != nil {
			failures++
			response.Results = append(response.Results, types.DeleteTitleOutcome{
				Title: title,
				Error: err.Error(),
			})
			continue
		}
		response.Results = append(response.Results, types.DeleteTitleOutcome{
			Title:   title,
			Deleted: len(ids),
		})
	}

	switch {
	case failures == 0:
		response.Status = types.StatusSuccess
	case failures == len(titles):
		response.Status = types.StatusError
	default:
		response.Status = types.StatusPartialSuccess
	}
	return response, nil
}

func pointTitle(point types.StoredPoint) string {
	if title, ok := point.Payload["title"].(string); ok {
		return title
	}
	return ""
}
