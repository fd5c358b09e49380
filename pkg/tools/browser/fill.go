package browser

import (
	"context"
	"encoding/xml"
	"fmt"

	"github.com/entrhq/webpilot/pkg/browser"
	"github.com/entrhq/webpilot/pkg/tools"
)

// FillTool fills a form input with a value.
type FillTool struct {
	manager *browser.SessionManager
}

// NewFillTool creates a new fill tool.
func NewFillTool(manager *browser.SessionManager) *FillTool {
	return &FillTool{
		manager: manager,
	}
}

// Name returns the tool name.
func (t *FillTool) Name() string {
	return "fill"
}

// Description returns the tool description.
func (t *FillTool) Description() string {
	return "Fill a form input, textarea, or contenteditable element with a value. Clears any existing content first."
}

// Schema returns the tool's JSON schema.
func (t *FillTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"session": map[string]interface{}{
				"type":        "string",
				"description": "Id of the browser session to use",
			},
			"selector": map[string]interface{}{
				"type":        "string",
				"description": "CSS selector for the input to fill (e.g., 'input[name=email]', '#search')",
			},
			"value": map[string]interface{}{
				"type":        "string",
				"description": "Text to fill into the element",
			},
			"timeout": map[string]interface{}{
				"type":        "number",
				"description": "Timeout in milliseconds. Defaults to the session timeout.",
			},
		},
		[]string{"session", "selector", "value"},
	)
}

// FillInput represents the parameters for filling.
type FillInput struct {
	XMLName  xml.Name `xml:"arguments"`
	Session  string   `xml:"session"`
	Selector string   `xml:"selector"`
	Value    string   `xml:"value"`
	Timeout  float64  `xml:"timeout"`
}

// Execute fills a form input.
func (t *FillTool) Execute(ctx context.Context, argsXML []byte) (*tools.Outcome, error) {
	var input FillInput
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

	opts := browser.FillOptions{Timeout: input.Timeout}
	if fillErr := session.Fill(input.Selector, input.Value, opts); fillErr != nil {
		return failure(fillErr), nil
	}

	message := fmt.Sprintf("Filled element matching %q with %d characters.", input.Selector, len(input.Value))

	return tools.OKWithMetadata(message, map[string]interface{}{
		"session":  input.Session,
		"selector": input.Selector,
	}), nil
}
