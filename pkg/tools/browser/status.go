package browser

import (
	"context"
	"fmt"

	"github.com/entrhq/webpilot/pkg/browser"
	"github.com/entrhq/webpilot/pkg/tools"
)

// StatusTool reports pool health without touching the engine. It is
// safe to call at any time, including while sessions are being created.
type StatusTool struct {
	manager *browser.SessionManager
}

// NewStatusTool creates a new status tool.
func NewStatusTool(manager *browser.SessionManager) *StatusTool {
	return &StatusTool{
		manager: manager,
	}
}

// Name returns the tool name.
func (t *StatusTool) Name() string {
	return "status"
}

// Description returns the tool description.
func (t *StatusTool) Description() string {
	return "Report the browser pool state: whether the engine is running, how many sessions exist, and the capacity. Never blocks on in-flight operations."
}

// Schema returns the tool's JSON schema.
func (t *StatusTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(map[string]interface{}{}, nil)
}

// Execute reports pool health.
func (t *StatusTool) Execute(ctx context.Context, argsXML []byte) (*tools.Outcome, error) {
	health := t.manager.HealthCheck()

	engineState := "not started"
	if health.Initialized {
		engineState = "running"
	}

	message := fmt.Sprintf("Browser pool status:\n- Engine: %s\n- Sessions: %d of %d",
		engineState, health.SessionCount, health.Capacity)

	return tools.OKWithMetadata(message, map[string]interface{}{
		"initialized":   health.Initialized,
		"session_count": health.SessionCount,
		"capacity":      health.Capacity,
	}), nil
}
