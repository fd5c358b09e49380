package browser

import (
	"context"
	"encoding/xml"
	"fmt"

	"github.com/entrhq/webpilot/pkg/browser"
	"github.com/entrhq/webpilot/pkg/tools"
)

// CloseSessionTool terminates a browser session and frees its pool slot.
type CloseSessionTool struct {
	manager *browser.SessionManager
}

// NewCloseSessionTool creates a new close session tool.
func NewCloseSessionTool(manager *browser.SessionManager) *CloseSessionTool {
	return &CloseSessionTool{
		manager: manager,
	}
}

// Name returns the tool name.
func (t *CloseSessionTool) Name() string {
	return "close_session"
}

// Description returns the tool description.
func (t *CloseSessionTool) Description() string {
	return "Close a browser session and release its capacity slot. The session id becomes invalid after closing."
}

// Schema returns the tool's JSON schema.
func (t *CloseSessionTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"session": map[string]interface{}{
				"type":        "string",
				"description": "Id of the browser session to close",
			},
		},
		[]string{"session"},
	)
}

// CloseSessionInput defines the input parameters for closing a session.
type CloseSessionInput struct {
	XMLName xml.Name `xml:"arguments"`
	Session string   `xml:"session"`
}

// Execute closes a browser session.
func (t *CloseSessionTool) Execute(ctx context.Context, argsXML []byte) (*tools.Outcome, error) {
	var input CloseSessionInput
	if err := tools.UnmarshalXMLWithFallback(argsXML, &input); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}

	if input.Session == "" {
		return nil, fmt.Errorf("session id is required")
	}

	if err := t.manager.RemoveSession(input.Session); err != nil {
		return failure(err), nil
	}

	health := t.manager.HealthCheck()
	message := fmt.Sprintf("Session %s closed. %d of %d pool slots in use.",
		input.Session, health.SessionCount, health.Capacity)

	return tools.OKWithMetadata(message, map[string]interface{}{
		"session":       input.Session,
		"session_count": health.SessionCount,
		"capacity":      health.Capacity,
	}), nil
}
