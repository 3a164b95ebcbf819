package api

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// requestSchema is a JSON Schema that a request body must satisfy before it
// is bound.
type requestSchema struct {
	Name       string
	Definition map[string]any
}

var (
	nullableString = map[string]any{"type": []any{"string", "null"}}
	idString       = map[string]any{"type": "string", "minLength": 1, "pattern": `\S`}
	plainString    = map[string]any{"type": "string"}
	probability    = map[string]any{"type": "number", "minimum": 0, "maximum": 1}
)

var answerSchema = &requestSchema{
	Name: "answer",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"user_id":     idString,
			"skill_id":    plainString,
			"skill_key":   plainString,
			"correct":     map[string]any{"type": "boolean"},
			"lesson_id":   nullableString,
			"question_id": nullableString,
		},
		"required": []any{"user_id", "correct"},
		"anyOf": []any{
			map[string]any{
				"required":   []any{"skill_id"},
				"properties": map[string]any{"skill_id": idString},
			},
			map[string]any{
				"required":   []any{"skill_key"},
				"properties": map[string]any{"skill_key": idString},
			},
		},
	},
}

var answerCamelSchema = &requestSchema{
	Name: "answer_camel",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"userId":     idString,
			"skillId":    plainString,
			"skillKey":   plainString,
			"correct":    map[string]any{"type": "boolean"},
			"lessonId":   nullableString,
			"questionId": nullableString,
		},
		"required": []any{"userId", "correct"},
		"anyOf": []any{
			map[string]any{
				"required":   []any{"skillId"},
				"properties": map[string]any{"skillId": idString},
			},
			map[string]any{
				"required":   []any{"skillKey"},
				"properties": map[string]any{"skillKey": idString},
			},
		},
	},
}

var userSchema = &requestSchema{
	Name: "user",
	Definition: map[string]any{
		"type":       "object",
		"properties": map[string]any{"userId": idString},
		"required":   []any{"userId"},
	},
}

var seedSchema = &requestSchema{
	Name: "seed",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"userId":        idString,
			"initialPKnown": probability,
		},
		"required": []any{"userId"},
	},
}

var bootstrapSchema = &requestSchema{
	Name: "bootstrap",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"userId": idString,
			"pKnown": probability,
		},
		"required": []any{"userId"},
	},
}

var weakestSchema = &requestSchema{
	Name: "weakest",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"userId": idString,
			"n":      map[string]any{"type": "integer", "minimum": 1, "maximum": 100},
			"seed":   map[string]any{"type": "boolean"},
		},
		"required": []any{"userId"},
	},
}

// schemaCache caches compiled request schemas by name.
var schemaCache sync.Map // map[string]*jsonschema.Schema

// validateBody checks raw against the schema and returns a client-facing
// error when it does not conform.
func validateBody(schema *requestSchema, raw []byte) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	compiled, err := compiledSchema(schema)
	if err != nil {
		return fmt.Errorf("compile schema %q: %w", schema.Name, err)
	}

	if err := compiled.Validate(parsed); err != nil {
		return fmt.Errorf("invalid request: %w", err)
	}
	return nil
}

func compiledSchema(schema *requestSchema) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(schema.Name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// The compiler wants plain decoded JSON, not Go typed maps.
	defBytes, err := json.Marshal(schema.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	schemaURL := fmt.Sprintf("schema://%s.json", schema.Name)
	if err := c.AddResource(schemaURL, defParsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}

	compiled, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	schemaCache.Store(schema.Name, compiled)
	return compiled, nil
}
