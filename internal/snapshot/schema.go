package snapshot

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// recordSchema describes the snapshot file: exactly entities and form_fields.
var recordSchema = map[string]any{
	"type":                 "object",
	"additionalProperties": false,
	"required":             []string{"entities", "form_fields"},
	"properties": map[string]any{
		"entities": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "object",
				"required": []string{"type", "mention_text", "properties"},
				"properties": map[string]any{
					"type":         map[string]any{"type": "string"},
					"mention_text": map[string]any{"type": "string"},
					"properties": map[string]any{
						"type": "array",
						"items": map[string]any{
							"type":     "object",
							"required": []string{"type", "mention_text"},
							"properties": map[string]any{
								"type":         map[string]any{"type": "string"},
								"mention_text": map[string]any{"type": "string"},
							},
						},
					},
				},
			},
		},
		"form_fields": map[string]any{
			"type":                 "object",
			"additionalProperties": map[string]any{"type": "string"},
		},
	},
}

var compiled *jsonschema.Schema

func init() {
	s, err := compileSchema(recordSchema)
	if err != nil {
		panic(fmt.Sprintf("snapshot schema: %v", err))
	}
	compiled = s
}

func compileSchema(schemaMap map[string]any) (*jsonschema.Schema, error) {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("snapshot.json", bytes.NewReader(b)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	return compiler.Compile("snapshot.json")
}

// Validate checks that data is a well-formed snapshot document.
func Validate(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal snapshot: %w", err)
	}
	if err := compiled.Validate(v); err != nil {
		return fmt.Errorf("snapshot does not match schema: %w", err)
	}
	return nil
}
