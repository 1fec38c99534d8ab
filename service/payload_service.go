package service

import (
	"context"
	"fmt"

	"github.com/ayala-manuel/rag-containers/types"
	"github.com/ayala-manuel/rag-containers/utils"
)

// PayloadService turns raw documents into insertion records: chunk, normalize
// metadata, embed. The whole batch of chunks from all documents goes to the
// embedding service in a single call.
type PayloadService struct {
	chunker      *ChunkService
	embedder     Embedder
	chunkEnabled bool
}

func NewPayloadService(chunker *ChunkService, embedder Embedder, chunkEnabled bool) *PayloadService {
	return &PayloadService{
		chunker:      chunker,
		embedder:     embedder,
		chunkEnabled: chunkEnabled,
	}
}

// BuildPayload produces one InsertionRecord per chunk, in document order then
// chunk order. Any chunking or embedding failure aborts the batch; no
// records are returned alongside an error.
func (s *PayloadService) BuildPayload(ctx context.Context, docs []types.Document) ([]types.InsertionRecord, error) {
	var allChunks []string
	var allMetadata []map[string]any

	for _, doc := range docs {
		metadata := utils.NormalizeMetadata(doc.Metadata.ToMap())

		var chunks []string
		if s.chunkEnabled {
			chunks = s.chunker.SplitText(doc.Text)
		} else {
			chunks = []string{doc.Text}
		}
		for _, chunk := range chunks {
			allChunks = append(allChunks, chunk)
			allMetadata = append(allMetadata, metadata)
		}
	}
	if len(allChunks) == 0 {
		return nil, nil
	}

	embeddings, err := s.embedder.EmbedTexts(ctx, allChunks)
	if err != nil {
		return nil, fmt.Errorf("embed %d chunks: %w", len(allChunks), err)
	}
	if len(embeddings) != len(allChunks) || len(allMetadata) != len(allChunks) {
		return nil, fmt.Errorf("%w: %d chunks, %d embeddings, %d metadata entries",
			types.ErrLengthMismatch, len(allChunks), len(embeddings), len(allMetadata))
	}

	records := make([]types.InsertionRecord, len(allChunks))
	for i := range allChunks {
		records[i] = types.InsertionRecord{
			Text:      allChunks[i],
			Embedding: embeddings[i],
			Metadata:  allMetadata[i],
		}
	}
	return records, nil
}

// BuildQueryVector embeds a single search query.
func (s *PayloadService) BuildQueryVector(ctx context.Context, query string) ([]float32, error) {
	embeddings, err := s.embedder.EmbedTexts(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	if len(embeddings) != 1 {
		return nil, fmt.Errorf("%w: expected a single query embedding, got %d", types.ErrLengthMismatch, len(embeddings))
	}
	return embeddings[0], nil
}
