package browser

import (
	"context"
	"encoding/base64"
	"encoding/xml"
	"fmt"

	"github.com/entrhq/webpilot/pkg/browser"
	"github.com/entrhq/webpilot/pkg/tools"
)

// ScreenshotTool captures a screenshot of a session's page.
type ScreenshotTool struct {
	manager *browser.SessionManager
}

// NewScreenshotTool creates a new screenshot tool.
func NewScreenshotTool(manager *browser.SessionManager) *ScreenshotTool {
	return &ScreenshotTool{
		manager: manager,
	}
}

// Name returns the tool name.
func (t *ScreenshotTool) Name() string {
	return "screenshot"
}

// Description returns the tool description.
func (t *ScreenshotTool) Description() string {
	return "Capture a PNG screenshot of the page. Returns the image base64-encoded in the outcome metadata."
}

// Schema returns the tool's JSON schema.
func (t *ScreenshotTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"session": map[string]interface{}{
				"type":        "string",
				"description": "Id of the browser session to capture",
			},
			"full_page": map[string]interface{}{
				"type":        "boolean",
				"description": "Capture the full scrollable page instead of the viewport. Default: false",
			},
			"timeout": map[string]interface{}{
				"type":        "number",
				"description": "Timeout in milliseconds. Defaults to the session timeout.",
			},
		},
		[]string{"session"},
	)
}

// ScreenshotInput represents the parameters for screenshot capture.
type ScreenshotInput struct {
	XMLName  xml.Name `xml:"arguments"`
	Session  string   `xml:"session"`
	FullPage bool     `xml:"full_page"`
	Timeout  float64  `xml:"timeout"`
}

// Execute captures a screenshot.
func (t *ScreenshotTool) Execute(ctx context.Context, argsXML []byte) (*tools.Outcome, error) {
	var input ScreenshotInput
	if err := tools.UnmarshalXMLWithFallback(argsXML, &input); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}

	if input.Session == "" {
		return nil, fmt.Errorf("session id is required")
	}

	session, err := t.manager.GetSession(input.Session)
	if err != nil {
		return failure(err), nil
	}

	opts := browser.ScreenshotOptions{
		FullPage: input.FullPage,
		Timeout:  input.Timeout,
	}
	data, err := session.Screenshot(opts)
	if err != nil {
		return failure(err), nil
	}

	scope := "viewport"
	if input.FullPage {
		scope = "full page"
	}
	message := fmt.Sprintf("Captured %s screenshot of %s (%d bytes).", scope, session.CurrentURL(), len(data))

	return tools.OKWithMetadata(message, map[string]interface{}{
		"session":    input.Session,
		"url":        session.CurrentURL(),
		"full_page":  input.FullPage,
		"size_bytes": len(data),
		"image_b64":  base64.StdEncoding.EncodeToString(data),
	}), nil
}
