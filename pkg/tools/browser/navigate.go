package browser

import (
	"context"
	"encoding/xml"
	"fmt"

	"github.com/entrhq/webpilot/pkg/browser"
	"github.com/entrhq/webpilot/pkg/config"
	"github.com/entrhq/webpilot/pkg/tools"
)

// NavigateTool navigates to a URL in a browser session.
type NavigateTool struct {
	manager *browser.SessionManager
}

// NewNavigateTool creates a new navigate tool.
func NewNavigateTool(manager *browser.SessionManager) *NavigateTool {
	return &NavigateTool{
		manager: manager,
	}
}

// Name returns the tool name.
func (t *NavigateTool) Name() string {
	return "navigate"
}

// Description returns the tool description.
func (t *NavigateTool) Description() string {
	return "Navigate a browser session to a URL. The page will load and be ready for interaction when this returns."
}

// Schema returns the tool's JSON schema.
func (t *NavigateTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"session": map[string]interface{}{
				"type":        "string",
				"description": "Id of the browser session to use",
			},
			"url": map[string]interface{}{
				"type":        "string",
				"description": "URL to navigate to (must include protocol, e.g., https://example.com)",
			},
			"wait_until": map[string]interface{}{
				"type":        "string",
				"description": "When to consider navigation complete: 'load' (default), 'domcontentloaded', or 'networkidle'",
			},
			"timeout": map[string]interface{}{
				"type":        "number",
				"description": "Navigation timeout in milliseconds. Defaults to the session timeout.",
			},
		},
		[]string{"session", "url"},
	)
}

// NavigateInput represents the parameters for navigation.
type NavigateInput struct {
	XMLName   xml.Name `xml:"arguments"`
	Session   string   `xml:"session"`
	URL       string   `xml:"url"`
	WaitUntil string   `xml:"wait_until"`
	Timeout   float64  `xml:"timeout"`
}

// Execute navigates to a URL.
func (t *NavigateTool) Execute(ctx context.Context, argsXML []byte) (*tools.Outcome, error) {
	var input NavigateInput
	if err := tools.UnmarshalXMLWithFallback(argsXML, &input); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}

	if input.Session == "" {
		return nil, fmt.Errorf("session id is required")
	}
	if input.URL == "" {
		return nil, fmt.Errorf("URL is required")
	}

	opts := browser.NavigateOptions{
		WaitUntil: input.WaitUntil,
		Timeout:   input.Timeout,
	}
	if opts.WaitUntil == "" {
		opts.WaitUntil = "load"
	}

	validWaitStates := map[string]bool{
		"load":             true,
		"domcontentloaded": true,
		"networkidle":      true,
	}
	if !validWaitStates[opts.WaitUntil] {
		return nil, fmt.Errorf("invalid wait_until value: %s (must be 'load', 'domcontentloaded', or 'networkidle')", opts.WaitUntil)
	}

	if !config.IsNavigationAllowed(input.URL) {
		return tools.Fail(KindNavigationDenied,
			fmt.Sprintf("navigation to %s is blocked by the navigation policy", input.URL)), nil
	}

	session, err := t.manager.GetSession(input.Session)
	if err != nil {
		return failure(err), nil
	}

	if navErr := session.Navigate(input.URL, opts); navErr != nil {
		return failure(navErr), nil
	}

	title, err := session.Title()
	if err != nil {
		title = "Unknown"
	}

	message := fmt.Sprintf("Navigation successful.\n\nPage details:\n- URL: %s\n- Title: %s\n- Session: %s\n\nThe page has loaded and is ready for interaction.",
		session.CurrentURL(), title, input.Session)

	return tools.OKWithMetadata(message, map[string]interface{}{
		"session": input.Session,
		"url":     session.CurrentURL(),
		"title":   title,
	}), nil
}
