package database

import (
	"context"

	"github.com/ayala-manuel/rag-containers/types"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/filters"
)

// VectorStore is the gateway contract over the vector database: collection
// lifecycle, point upsert, filtered similarity search and bulk scan/delete.
// The store assigns a fresh unique id to every upserted record.
type VectorStore interface {
	CreateCollection(ctx context.Context, name string, vectorSize int) error
	DeleteCollection(ctx context.Context, name string) error
	ListCollections(ctx context.Context) ([]string, error)

	Upsert(ctx context.Context, collection string, records []types.InsertionRecord) (int, error)

	// Search returns hits ordered by descending score; results below
	// scoreThreshold are excluded. where may be nil for an unfiltered search.
	Search(ctx context.Context, collection string, vector []float32, limit int, where *filters.WhereBuilder, scoreThreshold float32) ([]types.SearchResult, error)

	// Scroll is an unordered bulk scan of stored points.
	Scroll(ctx context.Context, collection string, limit int) ([]types.StoredPoint, error)

	DeleteByIDs(ctx context.Context, collection string, ids []string) error
}
