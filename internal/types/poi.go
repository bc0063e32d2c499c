package types

// POI is one catalog entry prepared by the site build step. The catalog is
// read-only for the lifetime of the process.
type POI struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Latitude    float64  `json:"lat"`
	Longitude   float64  `json:"lng"`
	Tags        []string `json:"tags"`
	Description string   `json:"description"`
}

// CandidatePOI is the reduced, prompt-facing projection of a POI. Descriptions
// are whitespace-collapsed and truncated to keep token usage bounded.
type CandidatePOI struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Latitude    float64  `json:"lat"`
	Longitude   float64  `json:"lng"`
	Tags        []string `json:"tags"`
	Description string   `json:"description"`
}
