package itinerary

import (
	"errors"
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/tahoefourseasons/itinerary-api/app/observability/metrics"
	"github.com/tahoefourseasons/itinerary-api/internal/api"
	generativeAI "github.com/tahoefourseasons/itinerary-api/internal/api/generative_ai"
	"github.com/tahoefourseasons/itinerary-api/internal/types"
)

type Handler struct {
	service Service
	logger  *slog.Logger
	metrics *metrics.AppMetrics
}

func NewHandler(service Service, m *metrics.AppMetrics, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
		metrics: m,
	}
}

// GenerateItinerary handles POST /api/v1/itinerary.
func (h *Handler) GenerateItinerary(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ItineraryHandler").Start(r.Context(), "GenerateItinerary", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/api/v1/itinerary"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "GenerateItinerary"))
	if h.metrics != nil {
		h.metrics.ItineraryRequestsTotal.Add(ctx, 1)
	}

	var input PlanRequestInput
	if err := api.DecodeJSONBody(w, r, &input); err != nil {
		l.InfoContext(ctx, "Rejected malformed request body", slog.Any("error", err))
		api.ErrorResponseWithDetails(w, r, http.StatusBadRequest, "Invalid JSON body", err.Error())
		return
	}

	req, verr := NormalizeRequest(input)
	if verr != nil {
		l.InfoContext(ctx, "Rejected out-of-range request",
			slog.String("field", verr.Field),
			slog.String("reason", verr.Message))
		api.ErrorResponseWithDetails(w, r, http.StatusBadRequest, verr.Message, map[string]string{"field": verr.Field})
		return
	}

	plan, cached, err := h.service.GeneratePlan(ctx, req)
	if err != nil {
		h.writeServiceError(w, r, l, err)
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, types.PlanResponse{Itinerary: plan, Cached: cached})
}

// writeServiceError maps pipeline failure classes to the response contract.
// Everything past request validation is a server-side fault.
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, l *slog.Logger, err error) {
	ctx := r.Context()
	switch {
	case errors.Is(err, ErrNoCandidates):
		l.ErrorContext(ctx, "Exclusions exhausted the catalog", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "No POIs available after exclusions")
	case errors.Is(err, generativeAI.ErrEmptyResponse):
		l.ErrorContext(ctx, "Model response had no text payload", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Unexpected model response shape")
	case errors.Is(err, ErrMalformedModelOutput):
		l.ErrorContext(ctx, "Model output was not valid JSON", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Model did not return valid JSON")
	case errors.Is(err, ErrInvalidItinerary):
		l.ErrorContext(ctx, "Model output failed validation", slog.Any("error", err))
		api.ErrorResponseWithDetails(w, r, http.StatusInternalServerError, "Invalid itinerary output", err.Error())
	default:
		l.ErrorContext(ctx, "Itinerary generation failed", slog.Any("error", err))
		api.ErrorResponseWithDetails(w, r, http.StatusInternalServerError, "Failed to generate itinerary", err.Error())
	}
}
