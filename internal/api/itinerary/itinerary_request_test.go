package itinerary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tahoefourseasons/itinerary-api/internal/types"
)

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func TestNormalizeRequestDefaults(t *testing.T) {
	req, verr := NormalizeRequest(PlanRequestInput{})
	require.Nil(t, verr)

	assert.Equal(t, 1, req.Days)
	assert.Equal(t, 4, req.MaxStopsPerDay)
	assert.Equal(t, types.PaceBalanced, req.Pace)
	assert.Equal(t, "Tahoe (flexible)", req.StartArea)
	assert.Empty(t, req.Interests)
	assert.Empty(t, req.ExcludePoiIDs)
}

func TestNormalizeRequestDaysBounds(t *testing.T) {
	tests := []struct {
		name    string
		days    int
		wantErr bool
	}{
		{"lower bound", 1, false},
		{"upper bound", 7, false},
		{"zero", 0, true},
		{"negative", -1, true},
		{"too many", 8, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, verr := NormalizeRequest(PlanRequestInput{Days: intPtr(tt.days)})
			if tt.wantErr {
				require.NotNil(t, verr)
				assert.Equal(t, "days", verr.Field)
			} else {
				require.Nil(t, verr)
				assert.Equal(t, tt.days, req.Days)
			}
		})
	}
}

func TestNormalizeRequestMaxStopsBounds(t *testing.T) {
	tests := []struct {
		name    string
		stops   int
		wantErr bool
	}{
		{"lower bound", 2, false},
		{"upper bound", 8, false},
		{"too few", 1, true},
		{"zero", 0, true},
		{"too many", 9, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, verr := NormalizeRequest(PlanRequestInput{MaxStopsPerDay: intPtr(tt.stops)})
			if tt.wantErr {
				require.NotNil(t, verr)
				assert.Equal(t, "max_stops_per_day", verr.Field)
			} else {
				require.Nil(t, verr)
				assert.Equal(t, tt.stops, req.MaxStopsPerDay)
			}
		})
	}
}

func TestNormalizeRequestPaceFallback(t *testing.T) {
	req, verr := NormalizeRequest(PlanRequestInput{Pace: strPtr("packed")})
	require.Nil(t, verr)
	assert.Equal(t, types.PacePacked, req.Pace)

	// Unrecognized values fall back to the default instead of failing.
	req, verr = NormalizeRequest(PlanRequestInput{Pace: strPtr("frantic")})
	require.Nil(t, verr)
	assert.Equal(t, types.PaceBalanced, req.Pace)
}

func TestNormalizeRequestExclusionsDedupedAndSorted(t *testing.T) {
	req, verr := NormalizeRequest(PlanRequestInput{
		ExcludePoiIDs: []string{"sand-harbor", "emerald-bay-state-park", "sand-harbor"},
	})
	require.Nil(t, verr)
	assert.Equal(t, []string{"emerald-bay-state-park", "sand-harbor"}, req.ExcludePoiIDs)

	// Client-supplied order must not leak into the normalized request.
	reordered, verr := NormalizeRequest(PlanRequestInput{
		ExcludePoiIDs: []string{"emerald-bay-state-park", "sand-harbor"},
	})
	require.Nil(t, verr)
	assert.Equal(t, req.ExcludePoiIDs, reordered.ExcludePoiIDs)
}

func TestNormalizeRequestStartAreaWhitespace(t *testing.T) {
	req, verr := NormalizeRequest(PlanRequestInput{StartArea: strPtr("   ")})
	require.Nil(t, verr)
	assert.Equal(t, "Tahoe (flexible)", req.StartArea)

	req, verr = NormalizeRequest(PlanRequestInput{StartArea: strPtr("  South Lake Tahoe ")})
	require.Nil(t, verr)
	assert.Equal(t, "South Lake Tahoe", req.StartArea)
}
