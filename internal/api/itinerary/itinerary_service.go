package itinerary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/singleflight"

	"github.com/tahoefourseasons/itinerary-api/app/observability/metrics"
	"github.com/tahoefourseasons/itinerary-api/internal/api/catalog"
	"github.com/tahoefourseasons/itinerary-api/internal/cache"
	"github.com/tahoefourseasons/itinerary-api/internal/types"
)

// ErrNoCandidates means the exclusions covered the whole catalog. Treated as
// a server-side fault: the caller excluded everything the model could use.
var ErrNoCandidates = errors.New("no POIs available after exclusions")

// Generator is the schema-constrained model client the pipeline invokes on a
// cache miss.
type Generator interface {
	Model() string
	GenerateItinerary(ctx context.Context, system, userPayload string) (string, error)
}

// Ensure implementation satisfies the interface
var _ Service = (*ServiceImpl)(nil)

// Service defines the business logic contract for itinerary generation.
type Service interface {
	GeneratePlan(ctx context.Context, req types.PlanRequest) (*types.Itinerary, bool, error)
}

// ServiceImpl runs the generation pipeline: catalog load, exclusion filter,
// cache lookup, model invocation, output trust validation, cache store.
type ServiceImpl struct {
	logger      *slog.Logger
	catalogRepo catalog.Repository
	generator   Generator
	store       cache.Store
	metrics     *metrics.AppMetrics
	group       singleflight.Group
}

func NewService(catalogRepo catalog.Repository, generator Generator, store cache.Store, m *metrics.AppMetrics, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:      logger,
		catalogRepo: catalogRepo,
		generator:   generator,
		store:       store,
		metrics:     m,
	}
}

type generationResult struct {
	itinerary *types.Itinerary
}

// GeneratePlan returns the itinerary for a normalized request and whether it
// was served from cache. Identical concurrent requests share one model call.
func (s *ServiceImpl) GeneratePlan(ctx context.Context, req types.PlanRequest) (*types.Itinerary, bool, error) {
	ctx, span := otel.Tracer("ItineraryService").Start(ctx, "GeneratePlan")
	defer span.End()

	pois, err := s.catalogRepo.GetCatalog(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Catalog load failed")
		return nil, false, fmt.Errorf("failed to load POI catalog: %w", err)
	}

	candidates := BuildCandidates(pois, req.ExcludePoiIDs)
	if len(candidates) == 0 {
		span.SetStatus(codes.Error, "Empty candidate set")
		return nil, false, fmt.Errorf("%w (excluded %d ids)", ErrNoCandidates, len(req.ExcludePoiIDs))
	}
	span.SetAttributes(attribute.Int("candidates.count", len(candidates)))

	key := cache.Key(s.generator.Model(), req, candidates)
	if cached, found := s.store.Get(ctx, key); found {
		if s.metrics != nil {
			s.metrics.CacheHitsTotal.Add(ctx, 1)
		}
		s.logger.InfoContext(ctx, "Itinerary served from cache", slog.String("cache_key", key))
		span.SetStatus(codes.Ok, "Served from cache")
		return cached, true, nil
	}

	// Collapse identical concurrent generations into a single model call.
	// The shared result was produced just now, so it counts as uncached for
	// every waiter.
	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		itinerary, genErr := s.generate(ctx, req, candidates)
		if genErr != nil {
			return nil, genErr
		}
		// Only validated itineraries are ever cached.
		s.store.Set(ctx, key, itinerary)
		return generationResult{itinerary: itinerary}, nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Generation failed")
		return nil, false, err
	}

	span.SetStatus(codes.Ok, "Itinerary generated")
	return v.(generationResult).itinerary, false, nil
}

func (s *ServiceImpl) generate(ctx context.Context, req types.PlanRequest, candidates []types.CandidatePOI) (*types.Itinerary, error) {
	userPayload, err := BuildUserPayload(req, candidates)
	if err != nil {
		return nil, err
	}

	generationID := uuid.New()
	l := s.logger.With(slog.String("generation_id", generationID.String()))
	l.DebugContext(ctx, "Invoking model",
		slog.String("model", s.generator.Model()),
		slog.Int("days", req.Days),
		slog.Int("candidate_count", len(candidates)))

	raw, err := s.generator.GenerateItinerary(ctx, systemInstruction, userPayload)
	if err != nil {
		return nil, err
	}

	validIDs := make(map[string]struct{}, len(candidates))
	for _, c := range candidates {
		validIDs[c.ID] = struct{}{}
	}

	itinerary, err := ParseAndValidate(raw, validIDs)
	if err != nil {
		l.ErrorContext(ctx, "Model output rejected", slog.Any("error", err))
		return nil, err
	}

	l.InfoContext(ctx, "Itinerary generated",
		slog.String("title", itinerary.Title),
		slog.Int("day_count", len(itinerary.Days)))
	return itinerary, nil
}
