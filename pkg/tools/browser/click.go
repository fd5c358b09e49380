package browser

import (
	"context"
	"encoding/xml"
	"fmt"

	"github.com/entrhq/webpilot/pkg/browser"
	"github.com/entrhq/webpilot/pkg/tools"
)

// ClickTool clicks an element on the page.
type ClickTool struct {
	manager *browser.SessionManager
}

// NewClickTool creates a new click tool.
func NewClickTool(manager *browser.SessionManager) *ClickTool {
	return &ClickTool{
		manager: manager,
	}
}

// Name returns the tool name.
func (t *ClickTool) Name() string {
	return "click"
}

// Description returns the tool description.
func (t *ClickTool) Description() string {
	return "Click an element identified by a CSS selector. Waits for the element to be actionable before clicking."
}

// Schema returns the tool's JSON schema.
func (t *ClickTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"session": map[string]interface{}{
				"type":        "string",
				"description": "Id of the browser session to use",
			},
			"selector": map[string]interface{}{
				"type":        "string",
				"description": "CSS selector for the element to click (e.g., 'button.submit', '#login-btn')",
			},
			"button": map[string]interface{}{
				"type":        "string",
				"description": "Mouse button: 'left' (default), 'right', or 'middle'",
			},
			"click_count": map[string]interface{}{
				"type":        "integer",
				"description": "Number of clicks: 1 (default) or 2 for double-click",
			},
			"force": map[string]interface{}{
				"type":        "boolean",
				"description": "Bypass actionability checks. Default: false",
			},
			"timeout": map[string]interface{}{
				"type":        "number",
				"description": "Timeout in milliseconds. Defaults to the session timeout.",
			},
		},
		[]string{"session", "selector"},
	)
}

// ClickInput represents the parameters for clicking.
type ClickInput struct {
	XMLName    xml.Name `xml:"arguments"`
	Session    string   `xml:"session"`
	Selector   string   `xml:"selector"`
	Button     string   `xml:"button"`
	ClickCount int      `xml:"click_count"`
	Force      bool     `xml:"force"`
	Timeout    float64  `xml:"timeout"`
}

// Execute clicks an element.
func (t *ClickTool) Execute(ctx context.Context, argsXML []byte) (*tools.Outcome, error) {
	var input ClickInput
	if err := tools.UnmarshalXMLWithFallback(argsXML, &input); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}

	if input.Session == "" {
		return nil, fmt.Errorf("session id is required")
	}
	if input.Selector == "" {
		return nil, fmt.Errorf("selector is required")
	}
	if input.Button != "" && input.Button != "left" && input.Button != "right" && input.Button != "middle" {
		return nil, fmt.Errorf("invalid button value: %s (must be 'left', 'right', or 'middle')", input.Button)
	}

	session, err := t.manager.GetSession(input.Session)
	if err != nil {
		return failure(err), nil
	}

	opts := browser.ClickOptions{
		Button:     input.Button,
		ClickCount: input.ClickCount,
		Force:      input.Force,
		Timeout:    input.Timeout,
	}

	if clickErr := session.Click(input.Selector, opts); clickErr != nil {
		return failure(clickErr), nil
	}

	message := fmt.Sprintf("Clicked element matching %q.\nCurrent URL: %s", input.Selector, session.CurrentURL())

	return tools.OKWithMetadata(message, map[string]interface{}{
		"session":  input.Session,
		"selector": input.Selector,
		"url":      session.CurrentURL(),
	}), nil
}
