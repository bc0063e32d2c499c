package itinerary

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tahoefourseasons/itinerary-api/internal/types"
)

// systemInstruction establishes the closed-world constraint for the model:
// only supplied POI ids, nothing invented, exact schema conformance.
const systemInstruction = "You are a trip-planning assistant for guests staying around Lake Tahoe. " +
	"You must only reference the provided POIs by id. Do not invent POIs. " +
	"Output must match the JSON schema exactly."

const (
	maxDescriptionLen       = 200
	truncatedDescriptionLen = 197
)

// BuildCandidates filters the catalog by the request's exclusions and
// projects each remaining POI to its prompt-facing representation. The result
// is the sole universe of ids the model may reference.
func BuildCandidates(catalog []types.POI, excludeIDs []string) []types.CandidatePOI {
	exclude := make(map[string]struct{}, len(excludeIDs))
	for _, id := range excludeIDs {
		exclude[id] = struct{}{}
	}

	candidates := make([]types.CandidatePOI, 0, len(catalog))
	for _, p := range catalog {
		if _, skip := exclude[p.ID]; skip {
			continue
		}
		tags := p.Tags
		if tags == nil {
			tags = []string{}
		}
		// Descriptions are kept short to control tokens.
		candidates = append(candidates, types.CandidatePOI{
			ID:          p.ID,
			Name:        p.Name,
			Latitude:    p.Latitude,
			Longitude:   p.Longitude,
			Tags:        tags,
			Description: truncateDescription(p.Description),
		})
	}
	return candidates
}

// truncateDescription collapses whitespace runs to single spaces and bounds
// the result at 200 bytes: longer text is cut to 197 and an ellipsis
// appended.
func truncateDescription(s string) string {
	desc := strings.Join(strings.Fields(s), " ")
	if len(desc) > maxDescriptionLen {
		desc = desc[:truncatedDescriptionLen] + "…"
	}
	return desc
}

type promptPayload struct {
	Request types.PlanRequest    `json:"request"`
	Pois    []types.CandidatePOI `json:"pois"`
}

// BuildUserPayload embeds the normalized request and the candidate
// projection into the user message sent alongside the system instruction.
func BuildUserPayload(req types.PlanRequest, candidates []types.CandidatePOI) (string, error) {
	raw, err := json.Marshal(promptPayload{Request: req, Pois: candidates})
	if err != nil {
		return "", fmt.Errorf("failed to marshal prompt payload: %w", err)
	}
	return string(raw), nil
}
