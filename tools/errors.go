package tools

import (
	"fmt"

	"github.com/tidwall/sjson"
)

// ToolError is the failure result of a tool. Its Error() is the compact
// {"error":"<message>"} payload handed back to the model.
type ToolError struct {
	Message string `json:"error"`
}

func (e ToolError) Error() string {
	s, err := sjson.Set("{}", "error", e.Message)
	if err != nil {
		return `{"error":"tool failed"}`
	}
	return s
}

func toolError(err error) ToolError {
	return ToolError{Message: err.Error()}
}

func invalidInput(tool string, err error) ToolError {
	return ToolError{Message: fmt.Sprintf("%s: invalid tool input: %v", tool, err)}
}
