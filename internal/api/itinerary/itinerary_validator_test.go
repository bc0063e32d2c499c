package itinerary

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validItineraryJSON(t *testing.T) string {
	t.Helper()
	doc := map[string]interface{}{
		"title": "A Day on the East Shore",
		"days": []interface{}{
			map[string]interface{}{
				"label": "Day 1 (Saturday)",
				"stops": []interface{}{
					map[string]interface{}{
						"poi_id":       "sand-harbor",
						"time_block":   "morning",
						"duration_min": 120,
						"label":        "Swim at Sand Harbor",
						"why":          "Clear water before the crowds arrive.",
						"tips":         []interface{}{"Arrive before 9am"},
					},
					map[string]interface{}{
						"poi_id":       "tahoe-east-shore-trail",
						"time_block":   "afternoon",
						"duration_min": 90,
						"label":        "East Shore Trail walk",
						"why":          "Shoreline views on a paved path.",
					},
				},
			},
		},
	}
	raw, err := json.Marshal(doc)
	require.NoError(t, err)
	return string(raw)
}

func validIDSet(ids ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func TestParseAndValidateAcceptsValidItinerary(t *testing.T) {
	itinerary, err := ParseAndValidate(validItineraryJSON(t), validIDSet("sand-harbor", "tahoe-east-shore-trail"))
	require.NoError(t, err)

	assert.Equal(t, "A Day on the East Shore", itinerary.Title)
	require.Len(t, itinerary.Days, 1)
	require.Len(t, itinerary.Days[0].Stops, 2)
	assert.Equal(t, "sand-harbor", itinerary.Days[0].Stops[0].PoiID)
	assert.Equal(t, []string{"Arrive before 9am"}, itinerary.Days[0].Stops[0].Tips)
}

func TestParseAndValidateRejectsNonJSON(t *testing.T) {
	_, err := ParseAndValidate("I'd love to help you plan a trip!", validIDSet("sand-harbor"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedModelOutput)
}

func TestParseAndValidateRejectsUnknownPoiID(t *testing.T) {
	raw := validItineraryJSON(t)
	// Model hallucinated a place the candidate set never contained.
	_, err := ParseAndValidate(raw, validIDSet("sand-harbor"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidItinerary)
	assert.Contains(t, err.Error(), "unknown poi_id: tahoe-east-shore-trail")
}

func TestParseAndValidateRejectsForeignID(t *testing.T) {
	doc := `{"title":"t","days":[{"label":"Day 1","stops":[{"poi_id":"nonexistent-123","time_block":"morning","duration_min":60,"label":"x","why":"y"}]}]}`
	_, err := ParseAndValidate(doc, validIDSet("sand-harbor"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidItinerary)
	assert.Contains(t, err.Error(), "nonexistent-123")
}

func TestParseAndValidateRejectsEmptyDays(t *testing.T) {
	_, err := ParseAndValidate(`{"title":"t","days":[]}`, validIDSet("sand-harbor"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidItinerary)
}

func TestParseAndValidateRejectsMissingTitle(t *testing.T) {
	doc := `{"days":[{"label":"Day 1","stops":[{"poi_id":"sand-harbor","time_block":"morning","duration_min":60,"label":"x","why":"y"}]}]}`
	_, err := ParseAndValidate(doc, validIDSet("sand-harbor"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidItinerary)
}

func TestParseAndValidateRejectsBadTimeBlock(t *testing.T) {
	doc := `{"title":"t","days":[{"label":"Day 1","stops":[{"poi_id":"sand-harbor","time_block":"midnight","duration_min":60,"label":"x","why":"y"}]}]}`
	_, err := ParseAndValidate(doc, validIDSet("sand-harbor"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidItinerary)
}

func TestParseAndValidateRejectsDurationOutOfRange(t *testing.T) {
	doc := `{"title":"t","days":[{"label":"Day 1","stops":[{"poi_id":"sand-harbor","time_block":"morning","duration_min":15,"label":"x","why":"y"}]}]}`
	_, err := ParseAndValidate(doc, validIDSet("sand-harbor"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidItinerary)
}

func TestParseAndValidateRejectsExtraProperties(t *testing.T) {
	doc := `{"title":"t","sponsored_link":"https://example.com","days":[{"label":"Day 1","stops":[{"poi_id":"sand-harbor","time_block":"morning","duration_min":60,"label":"x","why":"y"}]}]}`
	_, err := ParseAndValidate(doc, validIDSet("sand-harbor"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidItinerary)
}

func TestParseAndValidateRejectsEmptyStops(t *testing.T) {
	doc := `{"title":"t","days":[{"label":"Day 1","stops":[]}]}`
	_, err := ParseAndValidate(doc, validIDSet("sand-harbor"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidItinerary)
}
