package browser

import (
	"context"
	"encoding/xml"
	"fmt"

	"github.com/entrhq/webpilot/pkg/browser"
	"github.com/entrhq/webpilot/pkg/tools"
)

// GetAttributeTool reads an attribute value from an element.
type GetAttributeTool struct {
	manager *browser.SessionManager
}

// NewGetAttributeTool creates a new get attribute tool.
func NewGetAttributeTool(manager *browser.SessionManager) *GetAttributeTool {
	return &GetAttributeTool{
		manager: manager,
	}
}

// Name returns the tool name.
func (t *GetAttributeTool) Name() string {
	return "get_attribute"
}

// Description returns the tool description.
func (t *GetAttributeTool) Description() string {
	return "Read an attribute value from the first element matching a CSS selector. A missing attribute returns an empty string."
}

// Schema returns the tool's JSON schema.
func (t *GetAttributeTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"session": map[string]interface{}{
				"type":        "string",
				"description": "Id of the browser session to use",
			},
			"selector": map[string]interface{}{
				"type":        "string",
				"description": "CSS selector for the element to read (e.g., 'a.download', 'img#logo')",
			},
			"attribute": map[string]interface{}{
				"type":        "string",
				"description": "Name of the attribute to read (e.g., 'href', 'src', 'value')",
			},
			"timeout": map[string]interface{}{
				"type":        "number",
				"description": "Timeout in milliseconds. Defaults to the session timeout.",
			},
		},
		[]string{"session", "selector", "attribute"},
	)
}

// GetAttributeInput represents the parameters for attribute extraction.
type GetAttributeInput struct {
	XMLName   xml.Name `xml:"arguments"`
	Session   string   `xml:"session"`
	Selector  string   `xml:"selector"`
	Attribute string   `xml:"attribute"`
	Timeout   float64  `xml:"timeout"`
}

// Execute reads an element attribute.
func (t *GetAttributeTool) Execute(ctx context.Context, argsXML []byte) (*tools.Outcome, error) {
	var input GetAttributeInput
	if err := tools.UnmarshalXMLWithFallback(argsXML, &input); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}

	if input.Session == "" {
		return nil, fmt.Errorf("session id is required")
	}
	if input.Selector == "" {
		return nil, fmt.Errorf("selector is required")
	}
	if input.Attribute == "" {
		return nil, fmt.Errorf("attribute name is required")
	}

	session, err := t.manager.GetSession(input.Session)
	if err != nil {
		return failure(err), nil
	}

	value, err := session.Attribute(input.Selector, input.Attribute, browser.ExtractOptions{Timeout: input.Timeout})
	if err != nil {
		return failure(err), nil
	}

	message := fmt.Sprintf("Attribute %q of element matching %q: %s", input.Attribute, input.Selector, value)
	if value == "" {
		message = fmt.Sprintf("Element matching %q has no %q attribute.", input.Selector, input.Attribute)
	}

	return tools.OKWithMetadata(message, map[string]interface{}{
		"session":   input.Session,
		"selector":  input.Selector,
		"attribute": input.Attribute,
		"value":     value,
	}), nil
}
