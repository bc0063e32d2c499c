package itinerary

import "google.golang.org/genai"

// TimeBlocks enumerates the slots a stop may occupy within a day.
var TimeBlocks = []string{"morning", "midday", "afternoon", "evening"}

const (
	minDurationMin = 30
	maxDurationMin = 480
)

// SchemaDoc is the canonical JSON-schema document for the itinerary shape.
// The same document constrains the model's output and drives the structural
// pass of the output validator, so the two can never drift apart.
func SchemaDoc() map[string]interface{} {
	return map[string]interface{}{
		"type":                 "object",
		"additionalProperties": false,
		"required":             []interface{}{"title", "days"},
		"properties": map[string]interface{}{
			"title": map[string]interface{}{"type": "string"},
			"days": map[string]interface{}{
				"type":     "array",
				"minItems": 1,
				"items": map[string]interface{}{
					"type":                 "object",
					"additionalProperties": false,
					"required":             []interface{}{"label", "stops"},
					"properties": map[string]interface{}{
						// label instead of date keeps the itinerary flexible
						"label": map[string]interface{}{"type": "string"},
						"stops": map[string]interface{}{
							"type":     "array",
							"minItems": 1,
							"items": map[string]interface{}{
								"type":                 "object",
								"additionalProperties": false,
								"required":             []interface{}{"poi_id", "time_block", "duration_min", "label", "why"},
								"properties": map[string]interface{}{
									"poi_id": map[string]interface{}{"type": "string"},
									"time_block": map[string]interface{}{
										"type": "string",
										"enum": []interface{}{"morning", "midday", "afternoon", "evening"},
									},
									"duration_min": map[string]interface{}{
										"type":    "integer",
										"minimum": minDurationMin,
										"maximum": maxDurationMin,
									},
									"label": map[string]interface{}{"type": "string"},
									"why":   map[string]interface{}{"type": "string"},
									"tips": map[string]interface{}{
										"type":  "array",
										"items": map[string]interface{}{"type": "string"},
									},
								},
							},
						},
					},
				},
			},
		},
	}
}

// GenAISchema mirrors SchemaDoc in the form the Gemini API accepts for
// constrained generation. Gemini has no additionalProperties knob; the
// output validator's structural pass enforces that side.
func GenAISchema() *genai.Schema {
	return &genai.Schema{
		Type:     genai.TypeObject,
		Required: []string{"title", "days"},
		Properties: map[string]*genai.Schema{
			"title": {Type: genai.TypeString},
			"days": {
				Type:     genai.TypeArray,
				MinItems: genai.Ptr[int64](1),
				Items: &genai.Schema{
					Type:     genai.TypeObject,
					Required: []string{"label", "stops"},
					Properties: map[string]*genai.Schema{
						"label": {Type: genai.TypeString, Description: "e.g., Day 1 (Friday)"},
						"stops": {
							Type:     genai.TypeArray,
							MinItems: genai.Ptr[int64](1),
							Items: &genai.Schema{
								Type:     genai.TypeObject,
								Required: []string{"poi_id", "time_block", "duration_min", "label", "why"},
								Properties: map[string]*genai.Schema{
									"poi_id": {Type: genai.TypeString},
									"time_block": {
										Type: genai.TypeString,
										Enum: TimeBlocks,
									},
									"duration_min": {
										Type:    genai.TypeInteger,
										Minimum: genai.Ptr(float64(minDurationMin)),
										Maximum: genai.Ptr(float64(maxDurationMin)),
									},
									"label": {Type: genai.TypeString, Description: "Short stop name for the itinerary panel"},
									"why":   {Type: genai.TypeString},
									"tips": {
										Type:  genai.TypeArray,
										Items: &genai.Schema{Type: genai.TypeString},
									},
								},
							},
						},
					},
				},
			},
		},
	}
}
