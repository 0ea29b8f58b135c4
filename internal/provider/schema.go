package provider

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// resultSchema is the structural contract for model output. Normalization
// repairs missing optional fields afterwards, so the schema only rejects
// shapes that cannot be repaired: wrong top-level type, non-object
// complexity entries, non-array issues.
const resultSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "properties": {
    "fileName": {"type": ["string", "null"]},
    "language": {"type": ["string", "null"]},
    "suggestedName": {"type": ["string", "null"]},
    "timeComplexity": {
      "type": "object",
      "properties": {
        "best": {"$ref": "#/$defs/metric"},
        "average": {"$ref": "#/$defs/metric"},
        "worst": {"$ref": "#/$defs/metric"}
      }
    },
    "spaceComplexity": {"$ref": "#/$defs/metric"},
    "issues": {
      "type": "array",
      "items": {"type": "object"}
    },
    "summary": {"type": ["string", "null"]}
  },
  "$defs": {
    "metric": {
      "type": "object",
      "properties": {
        "notation": {"type": ["string", "null"]},
        "description": {"type": ["string", "null"]},
        "rating": {"type": ["string", "null"]}
      }
    }
  }
}`

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func loadSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(strings.NewReader(resultSchema))
		if err != nil {
			schemaErr = err
			return
		}
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("analysis.json", doc); err != nil {
			schemaErr = err
			return
		}
		compiledSchema, schemaErr = compiler.Compile("analysis.json")
	})
	return compiledSchema, schemaErr
}

// validateResult checks raw model JSON against the report schema before
// unmarshaling it into the typed result.
func validateResult(raw json.RawMessage) error {
	schema, err := loadSchema()
	if err != nil {
		return fmt.Errorf("compile result schema: %w", err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	if err := schema.Validate(inst); err != nil {
		return fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	return nil
}
