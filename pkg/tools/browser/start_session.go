package browser

import (
	"context"
	"encoding/xml"
	"fmt"

	"github.com/entrhq/webpilot/pkg/browser"
	"github.com/entrhq/webpilot/pkg/tools"
)

// StartSessionTool creates a new browser session in the pool.
type StartSessionTool struct {
	manager *browser.SessionManager
}

// NewStartSessionTool creates a new start session tool.
func NewStartSessionTool(manager *browser.SessionManager) *StartSessionTool {
	return &StartSessionTool{
		manager: manager,
	}
}

// Name returns the tool name.
func (t *StartSessionTool) Name() string {
	return "start_session"
}

// Description returns the tool description.
func (t *StartSessionTool) Description() string {
	return "Create a new browser session for web automation. Returns the session id that all page tools require. Sessions persist until closed and count against the pool capacity."
}

// Schema returns the tool's JSON schema.
func (t *StartSessionTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"width": map[string]interface{}{
				"type":        "integer",
				"description": "Browser viewport width in pixels. Default: 1280",
			},
			"height": map[string]interface{}{
				"type":        "integer",
				"description": "Browser viewport height in pixels. Default: 720",
			},
			"timeout": map[string]interface{}{
				"type":        "number",
				"description": "Default timeout for operations in this session, in milliseconds. Default: 30000",
			},
		},
		nil,
	)
}

// StartSessionInput defines the input parameters for starting a session.
type StartSessionInput struct {
	XMLName xml.Name `xml:"arguments"`
	Width   *int     `xml:"width"`
	Height  *int     `xml:"height"`
	Timeout *float64 `xml:"timeout"`
}

// Execute starts a new browser session.
func (t *StartSessionTool) Execute(ctx context.Context, argsXML []byte) (*tools.Outcome, error) {
	var input StartSessionInput
	if err := tools.UnmarshalXMLWithFallback(argsXML, &input); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}

	opts, err := t.buildSessionOptions(&input)
	if err != nil {
		return nil, err
	}

	session, err := t.manager.CreateSession(opts)
	if err != nil {
		return failure(err), nil
	}

	info := session.Info()
	message := fmt.Sprintf("Browser session started.\n\nSession id: %s\nViewport: %dx%d\n\nUse this session id with navigate, click, fill, and the other page tools.",
		info.ID, info.Viewport.Width, info.Viewport.Height)

	return tools.OKWithMetadata(message, map[string]interface{}{
		"session":         info.ID,
		"state":           string(info.State),
		"viewport_width":  info.Viewport.Width,
		"viewport_height": info.Viewport.Height,
	}), nil
}

// buildSessionOptions constructs SessionOptions from input, validating
// viewport dimensions.
func (t *StartSessionTool) buildSessionOptions(input *StartSessionInput) (browser.SessionOptions, error) {
	var opts browser.SessionOptions

	if input.Width != nil || input.Height != nil {
		vp := &browser.Viewport{
			Width:  browser.DefaultViewportWidth,
			Height: browser.DefaultViewportHeight,
		}
		if input.Width != nil {
			vp.Width = *input.Width
		}
		if input.Height != nil {
			vp.Height = *input.Height
		}
		if vp.Width < 100 || vp.Width > 5000 {
			return opts, fmt.Errorf("viewport width must be between 100 and 5000 pixels")
		}
		if vp.Height < 100 || vp.Height > 5000 {
			return opts, fmt.Errorf("viewport height must be between 100 and 5000 pixels")
		}
		opts.Viewport = vp
	}

	if input.Timeout != nil {
		if *input.Timeout <= 0 {
			return opts, fmt.Errorf("timeout must be positive")
		}
		opts.Timeout = *input.Timeout
	}

	return opts, nil
}
