package tools

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/invopop/jsonschema"
)

// ToolDefinition describes a tool offered to the model and the handler that runs it.
type ToolDefinition struct {
	Name        string
	Description string
	InputSchema anthropic.ToolInputSchemaParam
	Function    func(input json.RawMessage) (string, error)
}

// GenerateSchema derives the input schema for a tool from its input struct.
func GenerateSchema[T any]() anthropic.ToolInputSchemaParam {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	schema := reflector.Reflect(v)
	return anthropic.ToolInputSchemaParam{
		Properties: schema.Properties,
	}
}

// JSONText is a serialized JSON payload passed as a tool argument.
// Models occasionally send the JSON value itself instead of a string holding
// it; both forms decode to the same text.
type JSONText string

func (t *JSONText) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*t = JSONText(s)
		return nil
	}
	*t = JSONText(bytes.TrimSpace(b))
	return nil
}

// safe converts a panic inside fn into a ToolError so nothing escapes the tool boundary.
func safe(fn func(json.RawMessage) (string, error)) func(json.RawMessage) (string, error) {
	return func(input json.RawMessage) (out string, err error) {
		defer func() {
			if r := recover(); r != nil {
				out, err = "", ToolError{Message: fmt.Sprintf("internal error: %v", r)}
			}
		}()
		return fn(input)
	}
}

// encodeResult marshals a successful tool result.
func encodeResult(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", ToolError{Message: fmt.Sprintf("encode result: %v", err)}
	}
	return string(b), nil
}
