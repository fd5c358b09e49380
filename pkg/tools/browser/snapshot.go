package browser

import (
	"context"
	"encoding/xml"
	"fmt"

	"github.com/entrhq/webpilot/pkg/browser"
	"github.com/entrhq/webpilot/pkg/tools"
)

// SnapshotTool captures the accessibility tree of a session's page.
type SnapshotTool struct {
	manager *browser.SessionManager
}

// NewSnapshotTool creates a new snapshot tool.
func NewSnapshotTool(manager *browser.SessionManager) *SnapshotTool {
	return &SnapshotTool{
		manager: manager,
	}
}

// Name returns the tool name.
func (t *SnapshotTool) Name() string {
	return "snapshot"
}

// Description returns the tool description.
func (t *SnapshotTool) Description() string {
	return "Capture the page's accessibility tree as a YAML outline. A compact alternative to extract_content for understanding page structure."
}

// Schema returns the tool's JSON schema.
func (t *SnapshotTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"session": map[string]interface{}{
				"type":        "string",
				"description": "Id of the browser session to capture",
			},
		},
		[]string{"session"},
	)
}

// SnapshotInput represents the parameters for snapshot capture.
type SnapshotInput struct {
	XMLName xml.Name `xml:"arguments"`
	Session string   `xml:"session"`
}

// Execute captures the accessibility tree.
func (t *SnapshotTool) Execute(ctx context.Context, argsXML []byte) (*tools.Outcome, error) {
	var input SnapshotInput
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

	snapshot, err := session.Snapshot()
	if err != nil {
		return failure(err), nil
	}

	message := fmt.Sprintf("Accessibility snapshot of %s:\n\n%s", session.CurrentURL(), snapshot)

	return tools.OKWithMetadata(message, map[string]interface{}{
		"session":  input.Session,
		"url":      session.CurrentURL(),
		"snapshot": snapshot,
	}), nil
}
