package itinerary

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tahoefourseasons/itinerary-api/internal/types"
)

const (
	minDays  = 1
	maxDays  = 7
	minStops = 2
	maxStops = 8

	defaultDays      = 1
	defaultMaxStops  = 4
	defaultStartArea = "Tahoe (flexible)"
)

// PlanRequestInput is the wire form of a planning request. Pointer fields
// distinguish "absent, apply default" from an explicit zero, which would be
// out of range.
type PlanRequestInput struct {
	Days           *int     `json:"days"`
	MaxStopsPerDay *int     `json:"max_stops_per_day"`
	Pace           *string  `json:"pace"`
	Interests      []string `json:"interests"`
	StartArea      *string  `json:"start_area"`
	ExcludePoiIDs  []string `json:"exclude_poi_ids"`
}

// ValidationError is a client input error naming the offending field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NormalizeRequest checks the bounds and fills in the documented defaults.
// It has no side effects; a violation short-circuits the pipeline before any
// catalog, cache or model interaction.
func NormalizeRequest(input PlanRequestInput) (types.PlanRequest, *ValidationError) {
	var req types.PlanRequest

	req.Days = defaultDays
	if input.Days != nil {
		req.Days = *input.Days
	}
	if req.Days < minDays || req.Days > maxDays {
		return types.PlanRequest{}, &ValidationError{
			Field:   "days",
			Message: fmt.Sprintf("`days` must be an integer %d-%d", minDays, maxDays),
		}
	}

	req.MaxStopsPerDay = defaultMaxStops
	if input.MaxStopsPerDay != nil {
		req.MaxStopsPerDay = *input.MaxStopsPerDay
	}
	if req.MaxStopsPerDay < minStops || req.MaxStopsPerDay > maxStops {
		return types.PlanRequest{}, &ValidationError{
			Field:   "max_stops_per_day",
			Message: fmt.Sprintf("`max_stops_per_day` must be an integer %d-%d", minStops, maxStops),
		}
	}

	// Unrecognized pace falls back to the default rather than failing.
	req.Pace = types.PaceBalanced
	if input.Pace != nil {
		switch *input.Pace {
		case types.PaceRelaxed, types.PaceBalanced, types.PacePacked:
			req.Pace = *input.Pace
		}
	}

	req.StartArea = defaultStartArea
	if input.StartArea != nil && strings.TrimSpace(*input.StartArea) != "" {
		req.StartArea = strings.TrimSpace(*input.StartArea)
	}

	// Interests are an ordered preference list; keep the client's order.
	req.Interests = []string{}
	if input.Interests != nil {
		req.Interests = input.Interests
	}

	// Exclusions are a set. Dedupe and sort so that the normalized request,
	// and therefore the cache key, does not depend on client-supplied order.
	req.ExcludePoiIDs = dedupeSorted(input.ExcludePoiIDs)

	return req, nil
}

func dedupeSorted(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
