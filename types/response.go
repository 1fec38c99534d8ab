package types

const (
	StatusSuccess        = "success"
	StatusError          = "error"
	StatusPartialSuccess = "partial_success"
)

type DataResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

type CollectionInfo struct {
	CollectionName string `json:"collection_name"`
}

type SearchResponse struct {
	CollectionName string         `json:"collection_name"`
	Results        []SearchResult `json:"results"`
}

// DocumentGroup bundles all stored chunks that share a title.
type DocumentGroup struct {
	Title  string        `json:"title"`
	Chunks []StoredPoint `json:"chunks"`
}

// DeleteTitleOutcome reports the result of deleting a single title. Error is
// empty on success.
type DeleteTitleOutcome struct {
	Title   string `json:"title"`
	Deleted int    `json:"deleted"`
	Error   string `json:"error,omitempty"`
}

type DeleteByTitlesResponse struct {
	Status  string               `json:"status"`
	Results []DeleteTitleOutcome `json:"results"`
}
