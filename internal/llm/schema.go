package llm

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// VerdictSchema is the JSON Schema a classification reply must satisfy.
// Category values are checked separately so an unknown label is reported
// as such rather than as a schema violation.
var VerdictSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"category": map[string]any{
			"type":        "string",
			"description": "One of factual, opinion, math",
		},
		"confidence": map[string]any{
			"type":        "number",
			"description": "Certainty between 0 and 1",
		},
		"reasoning": map[string]any{
			"type":        "string",
			"description": "Brief explanation of the classification",
		},
	},
	"required": []any{"category"},
}

const verdictSchemaURL = "schema://qclassify/verdict.json"

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

// validateVerdict checks a decoded JSON document against VerdictSchema
func validateVerdict(doc any) error {
	compileOnce.Do(func() {
		compiledSchema, compileErr = compileVerdictSchema()
	})
	if compileErr != nil {
		return fmt.Errorf("compile verdict schema: %w", compileErr)
	}
	if err := compiledSchema.Validate(doc); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

func compileVerdictSchema() (*jsonschema.Schema, error) {
	// The compiler expects a decoded JSON value, not Go map literals with []string etc.
	raw, err := json.Marshal(VerdictSchema)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	var def any
	if err := json.Unmarshal(raw, &def); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource(verdictSchemaURL, def); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	return c.Compile(verdictSchemaURL)
}
