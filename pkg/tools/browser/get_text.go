package browser

import (
	"context"
	"encoding/xml"
	"fmt"

	"github.com/entrhq/webpilot/pkg/browser"
	"github.com/entrhq/webpilot/pkg/tools"
)

// GetTextTool extracts the text content of an element.
type GetTextTool struct {
	manager *browser.SessionManager
}

// NewGetTextTool creates a new get text tool.
func NewGetTextTool(manager *browser.SessionManager) *GetTextTool {
	return &GetTextTool{
		manager: manager,
	}
}

// Name returns the tool name.
func (t *GetTextTool) Name() string {
	return "get_text"
}

// Description returns the tool description.
func (t *GetTextTool) Description() string {
	return "Extract the text content of the first element matching a CSS selector. An element with no text returns an empty string."
}

// Schema returns the tool's JSON schema.
func (t *GetTextTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"session": map[string]interface{}{
				"type":        "string",
				"description": "Id of the browser session to use",
			},
			"selector": map[string]interface{}{
				"type":        "string",
				"description": "CSS selector for the element to read (e.g., 'h1', '.price')",
			},
			"timeout": map[string]interface{}{
				"type":        "number",
				"description": "Timeout in milliseconds. Defaults to the session timeout.",
			},
		},
		[]string{"session", "selector"},
	)
}

// GetTextInput represents the parameters for text extraction.
type GetTextInput struct {
	XMLName  xml.Name `xml:"arguments"`
	Session  string   `xml:"session"`
	Selector string   `xml:"selector"`
	Timeout  float64  `xml:"timeout"`
}

// Execute extracts element text.
func (t *GetTextTool) Execute(ctx context.Context, argsXML []byte) (*tools.Outcome, error) {
	var input GetTextInput
	if err := tools.UnmarshalXMLWithFallback(argsXML, &input); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}

	if input.Session == "" {
		return nil, fmt.Errorf("session id is required")
	}
	if input.Selector == "" {
		return nil, fmt.Errorf("selector is required")
	}

	session, err := t.manager.GetSession(input.Session)
	if err != nil {
		return failure(err), nil
	}

	text, err := session.Text(input.Selector, browser.ExtractOptions{Timeout: input.Timeout})
	if err != nil {
		return failure(err), nil
	}

	message := fmt.Sprintf("Text of element matching %q:\n\n%s", input.Selector, text)
	if text == "" {
		message = fmt.Sprintf("Element matching %q has no text content.", input.Selector)
	}

	return tools.OKWithMetadata(message, map[string]interface{}{
		"session":  input.Session,
		"selector": input.Selector,
		"text":     text,
	}), nil
}
