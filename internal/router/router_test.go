package router

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tahoefourseasons/itinerary-api/internal/api/itinerary"
	"github.com/tahoefourseasons/itinerary-api/internal/types"
)

type stubService struct{}

func (stubService) GeneratePlan(_ context.Context, _ types.PlanRequest) (*types.Itinerary, bool, error) {
	return &types.Itinerary{
		Title: "Stub",
		Days: []types.ItineraryDay{
			{Label: "Day 1", Stops: []types.ItineraryStop{
				{PoiID: "sand-harbor", TimeBlock: "morning", DurationMin: 60, Label: "x", Why: "y"},
			}},
		},
	}, false, nil
}

func passthrough(next http.Handler) http.Handler { return next }

func testRouter() http.Handler {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	handler := itinerary.NewHandler(stubService{}, nil, logger)
	return SetupRouter(&Config{
		ItineraryHandler:    handler,
		RateLimitMiddleware: passthrough,
	})
}

func TestRouterPostItinerary(t *testing.T) {
	r := testRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/itinerary", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var resp types.PlanResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "Stub", resp.Itinerary.Title)
}

func TestRouterMethodNotAllowedIsJSON(t *testing.T) {
	r := testRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/itinerary", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	require.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	assert.Equal(t, http.MethodPost, rr.Header().Get("Allow"))
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "Method not allowed", resp["error"])
}

func TestRouterPing(t *testing.T) {
	r := testRouter()

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "pong", rr.Body.String())
}
