package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ayala-manuel/rag-containers/types"
	"github.com/sashabaranov/go-openai"
)

// Embedder converts an ordered batch of texts into an equally ordered batch
// of embedding vectors. Any failure fails the whole batch; implementations
// never return partial results.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

const embedTimeout = 10 * time.Second

type embeddingsRequest struct {
	Texts []string `json:"texts"`
}

type embeddingsResponse struct {
	Embeddings [][]float32 `json:"embeddings"`
}

// RemoteEmbedder talks to the in-house embeddings service over HTTP:
// POST <endpoint>/embed {"texts": [...]} -> {"embeddings": [[...]...]}.
type RemoteEmbedder struct {
	endpoint string
	client   *http.Client
}

func NewRemoteEmbedder(endpoint string) *RemoteEmbedder {
	return &RemoteEmbedder{
		endpoint: strings.TrimSuffix(endpoint, "/"),
		client:   &http.Client{Timeout: embedTimeout},
	}
}

func (e *RemoteEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	body, err := json.Marshal(embeddingsRequest{Texts: texts})
	if err != nil {
		return nil, fmt.Errorf("marshal embeddings request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint+"/embed", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build embeddings request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrEmbeddingUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: status %s: %s", types.ErrEmbeddingUnavailable, resp.Status, strings.TrimSpace(string(msg)))
	}

	var parsed embeddingsResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", types.ErrEmbeddingUnavailable, err)
	}
	if len(parsed.Embeddings) != len(texts) {
		return nil, fmt.Errorf("%w: got %d embeddings for %d texts", types.ErrEmbeddingUnavailable, len(parsed.Embeddings), len(texts))
	}
	return parsed.Embeddings, nil
}

// OpenAIEmbedder is the alternative provider, reaching any OpenAI-compatible
// embeddings endpoint. Batch semantics match RemoteEmbedder.
type OpenAIEmbedder struct {
	client *openai.Client
	model  string
}

func NewOpenAIEmbedder(baseURL, apiKey, model string) *OpenAIEmbedder {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &OpenAIEmbedder{
		client: openai.NewClientWithConfig(config),
		model:  model,
	}
}

func (e *OpenAIEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: texts,
		Model: openai.EmbeddingModel(e.model),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrEmbeddingUnavailable, err)
	}
	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("%w: got %d embeddings for %d texts", types.ErrEmbeddingUnavailable, len(resp.Data), len(texts))
	}
	embeddings := make([][]float32, len(resp.Data))
	for i, item := range resp.Data {
		embeddings[i] = item.Embedding
	}
	return embeddings, nil
}
