package types

// Document is a single document submitted for ingestion. It only lives for
// the duration of the upload request; storage identity is assigned by the
// vector database at upsert time.
type Document struct {
	Text     string            `json:"text"`
	Metadata *DocumentMetadata `json:"metadata,omitempty"`
}

// DocumentMetadata contains additional document information. Date accepts an
// ISO-8601 string or a raw numeric timestamp; it is normalized to UTC
// milliseconds before storage.
type DocumentMetadata struct {
	Title  string   `json:"title"`
	Date   any      `json:"date,omitempty"`
	Tags   []string `json:"tags,omitempty"`
	URL    string   `json:"url,omitempty"`
	Images []string `json:"images,omitempty"`
}

// ToMap flattens the metadata into the generic payload mapping stored next to
// each chunk. Empty optional fields are omitted.
func (m *DocumentMetadata) ToMap() map[string]any {
	if m == nil {
		return map[string]any{}
	}
	out := map[string]any{
		"title": m.Title,
	}
	if m.Date != nil {
		out["date"] = m.Date
	}
	if len(m.Tags) > 0 {
		out["tags"] = m.Tags
	}
	if m.URL != "" {
		out["url"] = m.URL
	}
	if len(m.Images) > 0 {
		out["images"] = m.Images
	}
	return out
}

// InsertionRecord is one chunk ready for upsert: the chunk text, its
// embedding vector and the normalized metadata of the source document.
type InsertionRecord struct {
	Text      string         `json:"text"`
	Embedding []float32      `json:"embedding"`
	Metadata  map[string]any `json:"metadata"`
}

// SearchResult is a single similarity hit returned by the vector store,
// ordered by descending score.
type SearchResult struct {
	ID      string         `json:"id"`
	Score   float32        `json:"score"`
	Payload map[string]any `json:"payload"`
}

// StoredPoint is a stored record surfaced by a bulk scan.
type StoredPoint struct {
	ID      string         `json:"id"`
	Payload map[string]any `json:"payload"`
}
