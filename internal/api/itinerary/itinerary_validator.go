package itinerary

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/tahoefourseasons/itinerary-api/internal/types"
)

var (
	// ErrMalformedModelOutput means the model's text was not a JSON document.
	ErrMalformedModelOutput = errors.New("model did not return valid JSON")
	// ErrInvalidItinerary means the document violated the itinerary contract:
	// wrong shape, or a poi_id outside the candidate set. Such output is
	// rejected whole; it is never repaired and never cached.
	ErrInvalidItinerary = errors.New("invalid itinerary output")
)

// ParseAndValidate turns the model's raw text into a trusted itinerary.
// Checks run in order: parseable JSON, schema conformance, day shape, and
// finally that every referenced poi_id belongs to the candidate set. The id
// membership check is the last line of defense against the model fabricating
// places the catalog does not have.
func ParseAndValidate(raw string, validIDs map[string]struct{}) (*types.Itinerary, error) {
	var doc interface{}
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedModelOutput, err)
	}

	if err := validateAgainstSchema(doc); err != nil {
		return nil, err
	}

	var itinerary types.Itinerary
	if err := json.Unmarshal([]byte(raw), &itinerary); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedModelOutput, err)
	}

	if err := validateShape(&itinerary, validIDs); err != nil {
		return nil, err
	}
	return &itinerary, nil
}

func validateAgainstSchema(doc interface{}) error {
	schemaLoader := gojsonschema.NewGoLoader(SchemaDoc())
	documentLoader := gojsonschema.NewGoLoader(doc)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("%w: schema validation error: %v", ErrInvalidItinerary, err)
	}
	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("%w: %s", ErrInvalidItinerary, strings.Join(errs, "; "))
	}
	return nil
}

func validateShape(itinerary *types.Itinerary, validIDs map[string]struct{}) error {
	if len(itinerary.Days) == 0 {
		return fmt.Errorf("%w: days missing", ErrInvalidItinerary)
	}
	for i, day := range itinerary.Days {
		if day.Label == "" {
			return fmt.Errorf("%w: day %d has no label", ErrInvalidItinerary, i+1)
		}
		if len(day.Stops) == 0 {
			return fmt.Errorf("%w: day %d has no stops", ErrInvalidItinerary, i+1)
		}
		for _, stop := range day.Stops {
			if _, ok := validIDs[stop.PoiID]; !ok {
				return fmt.Errorf("%w: unknown poi_id: %s", ErrInvalidItinerary, stop.PoiID)
			}
		}
	}
	return nil
}
