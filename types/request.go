package types

type CreateCollectionRequest struct {
	Name       string `json:"name"`
	VectorSize int    `json:"vector_size,omitempty"`
}

// QueryMetadata narrows a search to documents matching any of the given tags
// and/or a date window. Dates use the YYYY-MM-DD form; when only date_1 is
// given the window widens to ±30 days around it.
type QueryMetadata struct {
	Tags  []string `json:"tags,omitempty"`
	Date1 string   `json:"date_1,omitempty"`
	Date2 string   `json:"date_2,omitempty"`
}

type SearchRequest struct {
	Query          string         `json:"query"`
	Metadata       *QueryMetadata `json:"metadata,omitempty"`
	Limit          int            `json:"limit,omitempty"`
	ScoreThreshold float32        `json:"score_threshold,omitempty"`
}

type DeleteByTitlesRequest struct {
	Titles []string `json:"titles"`
}
