package tools

import (
	"context"
	"encoding/xml"
)

// Tool represents a callable browser-automation operation. Tools are
// invoked with XML-formatted arguments and return a typed Outcome rather
// than free-form text, so callers can branch on the error kind without
// parsing a message.
//
// Example invocation format:
//
//	<tool>
//	<tool_name>navigate</tool_name>
//	<arguments>
//	  <session>7d6c...</session>
//	  <url>https://example.com</url>
//	</arguments>
//	</tool>
type Tool interface {
	// Name returns the unique identifier for this tool (e.g., "navigate")
	Name() string

	// Description returns a human-readable description of what this tool does
	Description() string

	// Schema returns the JSON schema for this tool's input parameters
	Schema() map[string]interface{}

	// Execute runs the tool with the given XML arguments. Domain failures
	// (capacity, timeouts, missing elements) are reported in the Outcome;
	// the error return is reserved for malformed or invalid invocations.
	Execute(ctx context.Context, argumentsXML []byte) (*Outcome, error)
}

// Status indicates whether a tool invocation achieved its effect.
type Status string

const (
	// StatusOK means the operation completed.
	StatusOK Status = "ok"

	// StatusError means the operation failed; Kind identifies how.
	StatusError Status = "error"
)

// Outcome is the typed result of a tool invocation. Message is for
// display; Status and Kind drive control flow.
type Outcome struct {
	Status Status `json:"status"`

	// Kind identifies the failure class (e.g., "capacity_exceeded",
	// "operation_timeout"). Empty on success.
	Kind string `json:"kind,omitempty"`

	// Message is a human-readable description of the result.
	Message string `json:"message"`

	// Metadata carries structured data about the result (session ids,
	// extracted values, capture payloads).
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// OK builds a success outcome.
func OK(message string) *Outcome {
	return &Outcome{Status: StatusOK, Message: message}
}

// OKWithMetadata builds a success outcome carrying structured data.
func OKWithMetadata(message string, metadata map[string]interface{}) *Outcome {
	return &Outcome{Status: StatusOK, Message: message, Metadata: metadata}
}

// Fail builds an error outcome with the given kind.
func Fail(kind, message string) *Outcome {
	return &Outcome{Status: StatusError, Kind: kind, Message: message}
}

// ToolCall represents a parsed tool invocation.
type ToolCall struct {
	XMLName   xml.Name       `xml:"tool"`
	ToolName  string         `xml:"tool_name"`
	Arguments ArgumentsBlock `xml:"arguments"`
}

// ArgumentsBlock holds the raw XML of the arguments element
type ArgumentsBlock struct {
	InnerXML []byte `xml:",innerxml"`
}

// GetArgumentsXML returns the arguments wrapped in <arguments> tags for
// unmarshaling. Uses byte slice operations to avoid multiple string
// allocations.
func (tc *ToolCall) GetArgumentsXML() []byte {
	const prefix = "<arguments>"
	const suffix = "</arguments>"

	result := make([]byte, 0, len(prefix)+len(tc.Arguments.InnerXML)+len(suffix))
	result = append(result, []byte(prefix)...)
	result = append(result, tc.Arguments.InnerXML...)
	result = append(result, []byte(suffix)...)
	return result
}

// BaseToolSchema creates a common JSON schema structure for a tool
// with the given properties and required fields
func BaseToolSchema(properties map[string]interface{}, required []string) map[string]interface{} {
	schema := map[string]interface{}{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}
