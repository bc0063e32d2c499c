package types

// Pace options accepted by the planner. Anything else falls back to
// PaceBalanced during normalization.
const (
	PaceRelaxed  = "relaxed"
	PaceBalanced = "balanced"
	PacePacked   = "packed"
)

// PlanRequest is the client-facing planning request. Every field is optional
// on the wire; the validator fills in the documented defaults.
type PlanRequest struct {
	Days           int      `json:"days"`
	MaxStopsPerDay int      `json:"max_stops_per_day"`
	Pace           string   `json:"pace"`
	Interests      []string `json:"interests"`
	StartArea      string   `json:"start_area"`
	ExcludePoiIDs  []string `json:"exclude_poi_ids"`
}

// Itinerary is the validated artifact handed to the frontend for map
// rendering. Every PoiID in it is guaranteed to exist in the candidate set
// the model was given.
type Itinerary struct {
	Title string         `json:"title"`
	Days  []ItineraryDay `json:"days"`
}

type ItineraryDay struct {
	Label string          `json:"label"`
	Stops []ItineraryStop `json:"stops"`
}

type ItineraryStop struct {
	PoiID       string   `json:"poi_id"`
	TimeBlock   string   `json:"time_block"`
	DurationMin int      `json:"duration_min"`
	Label       string   `json:"label"`
	Why         string   `json:"why"`
	Tips        []string `json:"tips,omitempty"`
}

// PlanResponse is the success envelope for the itinerary endpoint.
type PlanResponse struct {
	Itinerary *Itinerary `json:"itinerary"`
	Cached    bool       `json:"cached"`
}
