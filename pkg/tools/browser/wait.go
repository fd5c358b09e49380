package browser

import (
	"context"
	"encoding/xml"
	"fmt"

	"github.com/entrhq/webpilot/pkg/browser"
	"github.com/entrhq/webpilot/pkg/tools"
)

// WaitTool waits for an element to reach a state.
type WaitTool struct {
	manager *browser.SessionManager
}

// NewWaitTool creates a new wait tool.
func NewWaitTool(manager *browser.SessionManager) *WaitTool {
	return &WaitTool{
		manager: manager,
	}
}

// Name returns the tool name.
func (t *WaitTool) Name() string {
	return "wait_for"
}

// Description returns the tool description.
func (t *WaitTool) Description() string {
	return "Wait for an element to reach a state (visible, hidden, attached, or detached). Useful for pages that load content dynamically."
}

// Schema returns the tool's JSON schema.
func (t *WaitTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"session": map[string]interface{}{
				"type":        "string",
				"description": "Id of the browser session to use",
			},
			"selector": map[string]interface{}{
				"type":        "string",
				"description": "CSS selector for the element to wait for",
			},
			"state": map[string]interface{}{
				"type":        "string",
				"description": "State to wait for: 'visible' (default), 'hidden', 'attached', or 'detached'",
			},
			"timeout": map[string]interface{}{
				"type":        "number",
				"description": "Timeout in milliseconds. Defaults to the session timeout.",
			},
		},
		[]string{"session", "selector"},
	)
}

// WaitInput represents the parameters for waiting.
type WaitInput struct {
	XMLName  xml.Name `xml:"arguments"`
	Session  string   `xml:"session"`
	Selector string   `xml:"selector"`
	State    string   `xml:"state"`
	Timeout  float64  `xml:"timeout"`
}

// Execute waits for an element.
func (t *WaitTool) Execute(ctx context.Context, argsXML []byte) (*tools.Outcome, error) {
	var input WaitInput
	if err := tools.UnmarshalXMLWithFallback(argsXML, &input); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}

	if input.Session == "" {
		return nil, fmt.Errorf("session id is required")
	}
	if input.Selector == "" {
		return nil, fmt.Errorf("selector is required")
	}

	state := input.State
	if state == "" {
		state = "visible"
	}
	validStates := map[string]bool{
		"visible":  true,
		"hidden":   true,
		"attached": true,
		"detached": true,
	}
	if !validStates[state] {
		return nil, fmt.Errorf("invalid state value: %s (must be 'visible', 'hidden', 'attached', or 'detached')", state)
	}

	session, err := t.manager.GetSession(input.Session)
	if err != nil {
		return failure(err), nil
	}

	opts := browser.WaitOptions{State: state, Timeout: input.Timeout}
	if waitErr := session.WaitFor(input.Selector, opts); waitErr != nil {
		return failure(waitErr), nil
	}

	message := fmt.Sprintf("Element matching %q is now %s.", input.Selector, state)

	return tools.OKWithMetadata(message, map[string]interface{}{
		"session":  input.Session,
		"selector": input.Selector,
		"state":    state,
	}), nil
}
