package types

import "errors"

// Sentinel errors for the ingestion and search pipeline. Callers wrap them
// with fmt.Errorf("...: %w", ...) and handlers map them to HTTP status codes.
var (
	// ErrNoDocuments is returned when an upload request carries no documents
	// or a document with empty text.
	ErrNoDocuments = errors.New("no documents provided")

	// ErrEmptyQuery is returned when a search request has an empty query.
	ErrEmptyQuery = errors.New("empty search query")

	// ErrInvalidFilter is returned when query metadata cannot be translated
	// into a store filter, e.g. a malformed date.
	ErrInvalidFilter = errors.New("invalid query filter")

	// ErrEmbeddingUnavailable wraps any transport or service failure from the
	// embedding backend. The whole batch fails; there are no partial results.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrVectorStoreUnavailable wraps vector database failures.
	ErrVectorStoreUnavailable = errors.New("vector store unavailable")

	// ErrLengthMismatch signals that chunks, embeddings and metadata went out
	// of alignment. This is a programming invariant, not a recoverable input
	// condition.
	ErrLengthMismatch = errors.New("chunks and embeddings length mismatch")
)
