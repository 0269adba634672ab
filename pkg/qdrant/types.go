package qdrant

// Distance metrics accepted by VectorConfig.
const (
	DistanceCosine = "Cosine"
	DistanceDot    = "Dot"
)

// CreateCollectionRequest describes a new collection.
type CreateCollectionRequest struct {
	Name    string       `json:"-"`
	Vectors VectorConfig `json:"vectors"`
}

// VectorConfig sets the dimension and distance metric of a collection.
type VectorConfig struct {
	Size     int    `json:"size"`
	Distance string `json:"distance"`
}

// Point is a vector with its payload. Qdrant only accepts UUID strings or
// unsigned integers as ids.
type Point struct {
	ID      string         `json:"id"`
	Vector  []float32      `json:"vector"`
	Payload map[string]any `json:"payload"`
}

type UpsertPointsRequest struct {
	Points []Point `json:"points"`
}

type SearchRequest struct {
	Vector      []float32      `json:"vector"`
	Limit       int            `json:"limit"`
	WithPayload bool           `json:"with_payload"`
	Filter      map[string]any `json:"filter,omitempty"`
}

type SearchResponse struct {
	Result []ScoredPoint `json:"result"`
}

// ScoredPoint is one search hit. ID is a string or a number depending on
// how the point was written.
type ScoredPoint struct {
	ID      any            `json:"id"`
	Score   float64        `json:"score"`
	Payload map[string]any `json:"payload"`
}

type DeletePointsRequest struct {
	Points []string `json:"points"`
}
