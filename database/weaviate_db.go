package database

import (
	"context"
	"fmt"
	"log"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ayala-manuel/rag-containers/config"
	"github.com/ayala-manuel/rag-containers/types"
	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"
	"github.com/weaviate/weaviate-go-client/v4/weaviate"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/auth"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/filters"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/graphql"
	"github.com/weaviate/weaviate/entities/models"
)

const UPSERT_BATCH_SIZE = 200

// Payload properties stored for every point. Chunk text lives next to the
// flattened document metadata; date holds the normalized UTC-ms timestamp.
var pointProperties = []*models.Property{
	{Name: "text", DataType: []string{"text"}},
	{Name: "title", DataType: []string{"text"}},
	{Name: "date", DataType: []string{"int"}},
	{Name: "tags", DataType: []string{"text[]"}},
	{Name: "url", DataType: []string{"text"}},
	{Name: "images", DataType: []string{"text[]"}},
}

var pointFields = []graphql.Field{
	{Name: "text"},
	{Name: "title"},
	{Name: "date"},
	{Name: "tags"},
	{Name: "url"},
	{Name: "images"},
	{Name: "_additional", Fields: []graphql.Field{{Name: "id"}, {Name: "certainty"}}},
}

// WeaviateStore implements VectorStore on top of Weaviate. One Weaviate class
// per logical collection; vectors are always supplied by the caller
// (vectorizer "none").
type WeaviateStore struct {
	client *weaviate.Client
}

func NewWeaviateStore(cfg config.WeaviateStoreConfig) (*WeaviateStore, error) {
	scheme := "http"
	if strings.Contains(cfg.Host, "https") {
		scheme = "https"
	}
	host := strings.TrimPrefix(cfg.Host, scheme+"://")

	weaviateConfig := weaviate.Config{
		Host:   host,
		Scheme: scheme,
	}
	if cfg.APIKey != "" {
		weaviateConfig.AuthConfig = auth.ApiKey{
			Value: cfg.APIKey,
		}
	}

	client, err := weaviate.NewClient(weaviateConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create weaviate client: %v", err)
	}
	return &WeaviateStore{client: client}, nil
}

// collectionClass builds the class schema for a new collection. Weaviate
// derives vector dimensionality from the first stored vector, so vectorSize
// is validated here rather than written into the schema.
func collectionClass(name string) *models.Class {
	return &models.Class{
		Class:           name,
		Properties:      pointProperties,
		Vectorizer:      "none",
		VectorIndexType: "hnsw",
		VectorIndexConfig: map[string]interface{}{
			"distance": "cosine",
		},
	}
}

// className maps a collection name to its Weaviate class name. Weaviate
// requires class names to start with an uppercase letter.
func className(collection string) string {
	r, size := utf8.DecodeRuneInString(collection)
	if r == utf8.RuneError {
		return collection
	}
	return string(unicode.ToUpper(r)) + collection[size:]
}

func (s *WeaviateStore) CreateCollection(ctx context.Context, name string, vectorSize int) error {
	if name == "" {
		return fmt.Errorf("collection name is required")
	}
	if vectorSize <= 0 {
		return fmt.Errorf("invalid vector size %d", vectorSize)
	}
	err := s.client.Schema().ClassCreator().
		WithClass(collectionClass(className(name))).
		Do(ctx)
	if err != nil {
		return fmt.Errorf("%w: create collection %s: %v", types.ErrVectorStoreUnavailable, name, err)
	}
	return nil
}

func (s *WeaviateStore) DeleteCollection(ctx context.Context, name string) error {
	err := s.client.Schema().ClassDeleter().
		WithClassName(className(name)).
		Do(ctx)
	if err != nil {
		return fmt.Errorf("%w: delete collection %s: %v", types.ErrVectorStoreUnavailable, name, err)
	}
	return nil
}

func (s *WeaviateStore) ListCollections(ctx context.Context) ([]string, error) {
	schema, err := s.client.Schema().Getter().Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list collections: %v", types.ErrVectorStoreUnavailable, err)
	}
	names := make([]string, 0, len(schema.Classes))
	for _, class := range schema.Classes {
		names = append(names, class.Class)
	}
	return names, nil
}

// Upsert stores the records in batches, assigning a fresh UUID to each one.
func (s *WeaviateStore) Upsert(ctx context.Context, collection string, records []types.InsertionRecord) (int, error) {
	class := className(collection)
	total := len(records)
	for i := 0; i < total; i += UPSERT_BATCH_SIZE {
		end := i + UPSERT_BATCH_SIZE
		if end > total {
			end = total
		}

		batcher := s.client.Batch().ObjectsBatcher()
		for j := i; j < end; j++ {
			properties := map[string]interface{}{
				"text": records[j].Text,
			}
			for k, v := range records[j].Metadata {
				properties[k] = v
			}
			batcher = batcher.WithObjects(&models.Object{
				ID:         strfmt.UUID(uuid.NewString()),
				Class:      class,
				Properties: properties,
				Vector:     records[j].Embedding,
			})
		}

		if _, err := batcher.Do(ctx); err != nil {
			return 0, fmt.Errorf("%w: upsert batch %d-%d: %v", types.ErrVectorStoreUnavailable, i, end, err)
		}
		log.Printf("Upserted batch %d-%d of %d points into %s", i, end, total, class)
	}
	return total, nil
}

func (s *WeaviateStore) Search(ctx context.Context, collection string, vector []float32, limit int, where *filters.WhereBuilder, scoreThreshold float32) ([]types.SearchResult, error) {
	class := className(collection)

	nearVector := s.client.GraphQL().NearVectorArgBuilder().
		WithVector(vector)
	if scoreThreshold > 0 {
		nearVector = nearVector.WithCertainty(scoreThreshold)
	}

	getBuilder := s.client.GraphQL().Get().
		WithClassName(class).
		WithFields(pointFields...).
		WithNearVector(nearVector)
	if limit > 0 {
		getBuilder = getBuilder.WithLimit(limit)
	}
	if where != nil {
		getBuilder = getBuilder.WithWhere(where)
	}

	result, err := getBuilder.Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: search %s: %v", types.ErrVectorStoreUnavailable, collection, err)
	}
	if len(result.Errors) > 0 {
		return nil, fmt.Errorf("%w: search %s: %v", types.ErrVectorStoreUnavailable, collection, result.Errors[0].Message)
	}

	var results []types.SearchResult
	for _, doc := range classObjects(result.Data, class) {
		hit := types.SearchResult{
			Payload: pointPayload(doc),
		}
		if additional, ok := doc["_additional"].(map[string]interface{}); ok {
			if id, ok := additional["id"].(string); ok {
				hit.ID = id
			}
			if certainty, ok := additional["certainty"].(float64); ok {
				hit.Score = float32(certainty)
			}
		}
		results = append(results, hit)
	}
	return results, nil
}

func (s *WeaviateStore) Scroll(ctx context.Context, collection string, limit int) ([]types.StoredPoint, error) {
	class := className(collection)

	getBuilder := s.client.GraphQL().Get().
		WithClassName(class).
		WithFields(pointFields...)
	if limit > 0 {
		getBuilder = getBuilder.WithLimit(limit)
	}

	result, err := getBuilder.Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: scroll %s: %v", types.ErrVectorStoreUnavailable, collection, err)
	}
	if len(result.Errors) > 0 {
		return nil, fmt.Errorf("%w: scroll %s: %v", types.ErrVectorStoreUnavailable, collection, result.Errors[0].Message)
	}

	var points []types.StoredPoint
	for _, doc := range classObjects(result.Data, class) {
		point := types.StoredPoint{
			Payload: pointPayload(doc),
		}
		if additional, ok := doc["_additional"].(map[string]interface{}); ok {
			if id, ok := additional["id"].(string); ok {
				point.ID = id
			}
		}
		points = append(points, point)
	}
	return points, nil
}

func (s *WeaviateStore) DeleteByIDs(ctx context.Context, collection string, ids []string) error {
	class := className(collection)
	for _, id := range ids {
		err := s.client.Data().Deleter().
			WithClassName(class).
			WithID(id).
			Do(ctx)
		if err != nil {
			return fmt.Errorf("%w: delete point %s from %s: %v", types.ErrVectorStoreUnavailable, id, collection, err)
		}
	}
	return nil
}

// classObjects digs the per-class object list out of a GraphQL Get response.
func classObjects(data map[string]models.JSONObject, class string) []map[string]interface{} {
	get, ok := data["Get"].(map[string]interface{})
	if !ok {
		return nil
	}
	items, ok := get[class].([]interface{})
	if !ok {
		return nil
	}
	var docs []map[string]interface{}
	for _, item := range items {
		if doc, ok := item.(map[string]interface{}); ok {
			docs = append(docs, doc)
		}
	}
	return docs
}

// pointPayload rebuilds a stored payload from a GraphQL object, restoring the
// types the ingestion path wrote (int64 date, string slices).
func pointPayload(doc map[string]interface{}) map[string]interface{} {
	payload := map[string]interface{}{}
	if text, ok := doc["text"].(string); ok {
		payload["text"] = text
	}
	if title, ok := doc["title"].(string); ok {
		payload["title"] = title
	}
	if date, ok := doc["date"].(float64); ok {
		payload["date"] = int64(date)
	}
	if tags := parseStringArray(doc["tags"]); tags != nil {
		payload["tags"] = tags
	}
	if url, ok := doc["url"].(string); ok && url != "" {
		payload["url"] = url
	}
	if images := parseStringArray(doc["images"]); images != nil {
		payload["images"] = images
	}
	return payload
}

func parseStringArray(v interface{}) []string {
	arr, ok := v.([]interface{})
	if !ok {
		return nil
	}
	result := make([]string, 0, len(arr))
	for _, item := range arr {
		if s, ok := item.(string); ok {
			result = append(result, s)
		}
	}
	return result
}
