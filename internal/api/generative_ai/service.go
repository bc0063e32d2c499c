package generativeAI

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/genai"

	"github.com/tahoefourseasons/itinerary-api/app/observability/metrics"
)

// ErrEmptyResponse is returned when the provider answered but the response
// carried no text payload.
var ErrEmptyResponse = errors.New("model response contained no text payload")

// AIClient wraps the Gemini client for schema-constrained generation. The
// response schema is fixed at construction; every call asks the provider for
// a single JSON document conforming to it.
type AIClient struct {
	client      *genai.Client
	model       string
	temperature float32
	schema      *genai.Schema
	metrics     *metrics.AppMetrics
}

func NewAIClient(ctx context.Context, model string, temperature float64, schema *genai.Schema, m *metrics.AppMetrics) (*AIClient, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable is not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &AIClient{
		client:      client,
		model:       model,
		temperature: float32(temperature),
		schema:      schema,
		metrics:     m,
	}, nil
}

// Model returns the provider model identifier this client targets.
func (ai *AIClient) Model() string {
	return ai.model
}

// GenerateItinerary sends the system instruction plus the user payload and
// returns the raw text of the response. Transport failures and empty
// responses are distinct failure classes; parsing the text is the caller's
// job. No retries here: retry policy belongs to the caller, and the call is
// already bounded by the request context.
func (ai *AIClient) GenerateItinerary(ctx context.Context, system, userPayload string) (string, error) {
	ctx, span := otel.Tracer("GenerativeAI").Start(ctx, "GenerateItinerary", trace.WithAttributes(
		attribute.Int("payload.length", len(userPayload)),
		attribute.String("model", ai.model),
	))
	defer span.End()

	config := &genai.GenerateContentConfig{
		Temperature:       genai.Ptr[float32](ai.temperature),
		ResponseMIMEType:  "application/json",
		ResponseSchema:    ai.schema,
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: system}}},
	}

	start := time.Now()
	result, err := ai.client.Models.GenerateContent(ctx, ai.model, genai.Text(userPayload), config)
	if ai.metrics != nil {
		ai.metrics.ModelLatencySeconds.Record(ctx, time.Since(start).Seconds())
	}
	if err != nil {
		if ai.metrics != nil {
			ai.metrics.ModelErrorsTotal.Add(ctx, 1)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to generate content")
		return "", fmt.Errorf("model request failed: %w", err)
	}

	txt := result.Text()
	if txt == "" {
		if ai.metrics != nil {
			ai.metrics.ModelErrorsTotal.Add(ctx, 1)
		}
		span.SetStatus(codes.Error, "Empty model response")
		return "", ErrEmptyResponse
	}

	span.SetAttributes(attribute.Int("response.length", len(txt)))
	span.SetStatus(codes.Ok, "Content generated successfully")
	return txt, nil
}
