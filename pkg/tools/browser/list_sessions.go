package browser

import (
	"context"
	"fmt"
	"strings"

	"github.com/entrhq/webpilot/pkg/browser"
	"github.com/entrhq/webpilot/pkg/tools"
)

// ListSessionsTool reports the sessions currently in the pool.
type ListSessionsTool struct {
	manager *browser.SessionManager
}

// NewListSessionsTool creates a new list sessions tool.
func NewListSessionsTool(manager *browser.SessionManager) *ListSessionsTool {
	return &ListSessionsTool{
		manager: manager,
	}
}

// Name returns the tool name.
func (t *ListSessionsTool) Name() string {
	return "list_sessions"
}

// Description returns the tool description.
func (t *ListSessionsTool) Description() string {
	return "List all active browser sessions with their current URL, viewport, and timestamps."
}

// Schema returns the tool's JSON schema.
func (t *ListSessionsTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(map[string]interface{}{}, nil)
}

// Execute lists the active sessions.
func (t *ListSessionsTool) Execute(ctx context.Context, argsXML []byte) (*tools.Outcome, error) {
	sessions := t.manager.ListSessions()

	if len(sessions) == 0 {
		return tools.OKWithMetadata("No active browser sessions. Use start_session to create one.", map[string]interface{}{
			"sessions": []interface{}{},
		}), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Active browser sessions (%d):\n", len(sessions))

	entries := make([]interface{}, 0, len(sessions))
	for _, info := range sessions {
		fmt.Fprintf(&sb, "\n- %s\n  State: %s\n  URL: %s\n  Viewport: %dx%d\n  Created: %s\n  Last used: %s\n",
			info.ID,
			info.State,
			info.CurrentURL,
			info.Viewport.Width,
			info.Viewport.Height,
			info.CreatedAt.Format("2006-01-02 15:04:05"),
			info.LastUsedAt.Format("2006-01-02 15:04:05"),
		)
		entries = append(entries, map[string]interface{}{
			"session":      info.ID,
			"state":        string(info.State),
			"current_url":  info.CurrentURL,
			"created_at":   info.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
			"last_used_at": info.LastUsedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}

	return tools.OKWithMetadata(sb.String(), map[string]interface{}{
		"sessions": entries,
	}), nil
}
