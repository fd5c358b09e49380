package browser

import (
	"context"
	"encoding/xml"
	"fmt"

	"github.com/entrhq/webpilot/pkg/browser"
	"github.com/entrhq/webpilot/pkg/tools"
)

// SelectOptionTool selects an option in a dropdown element.
type SelectOptionTool struct {
	manager *browser.SessionManager
}

// NewSelectOptionTool creates a new select option tool.
func NewSelectOptionTool(manager *browser.SessionManager) *SelectOptionTool {
	return &SelectOptionTool{
		manager: manager,
	}
}

// Name returns the tool name.
func (t *SelectOptionTool) Name() string {
	return "select_option"
}

// Description returns the tool description.
func (t *SelectOptionTool) Description() string {
	return "Select an option in a <select> dropdown by its value attribute."
}

// Schema returns the tool's JSON schema.
func (t *SelectOptionTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"session": map[string]interface{}{
				"type":        "string",
				"description": "Id of the browser session to use",
			},
			"selector": map[string]interface{}{
				"type":        "string",
				"description": "CSS selector for the select element (e.g., 'select[name=country]')",
			},
			"value": map[string]interface{}{
				"type":        "string",
				"description": "Value attribute of the option to select",
			},
			"timeout": map[string]interface{}{
				"type":        "number",
				"description": "Timeout in milliseconds. Defaults to the session timeout.",
			},
		},
		[]string{"session", "selector", "value"},
	)
}

// SelectOptionInput represents the parameters for option selection.
type SelectOptionInput struct {
	XMLName  xml.Name `xml:"arguments"`
	Session  string   `xml:"session"`
	Selector string   `xml:"selector"`
	Value    string   `xml:"value"`
	Timeout  float64  `xml:"timeout"`
}

// Execute selects a dropdown option.
func (t *SelectOptionTool) Execute(ctx context.Context, argsXML []byte) (*tools.Outcome, error) {
	var input SelectOptionInput
	if err := tools.UnmarshalXMLWithFallback(argsXML, &input); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}

	if input.Session == "" {
		return nil, fmt.Errorf("session id is required")
	}
	if input.Selector == "" {
		return nil, fmt.Errorf("selector is required")
	}
	if input.Value == "" {
		return nil, fmt.Errorf("value is required")
	}

	session, err := t.manager.GetSession(input.Session)
	if err != nil {
		return failure(err), nil
	}

	opts := browser.SelectOptions{Timeout: input.Timeout}
	if selectErr := session.SelectOption(input.Selector, input.Value, opts); selectErr != nil {
		return failure(selectErr), nil
	}

	message := fmt.Sprintf("Selected option %q in element matching %q.", input.Value, input.Selector)

	return tools.OKWithMetadata(message, map[string]interface{}{
		"session":  input.Session,
		"selector": input.Selector,
		"value":    input.Value,
	}), nil
}
