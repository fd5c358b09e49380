package browser

import (
	"github.com/entrhq/webpilot/pkg/browser"
	"github.com/entrhq/webpilot/pkg/tools"
)

// ToolRegistry manages browser tool registration over a shared session
// manager.
type ToolRegistry struct {
	manager *browser.SessionManager
	tools   []tools.Tool
}

// NewToolRegistry creates a new browser tool registry.
func NewToolRegistry(manager *browser.SessionManager) *ToolRegistry {
	return &ToolRegistry{
		manager: manager,
		tools:   make([]tools.Tool, 0),
	}
}

// RegisterTools creates and returns all browser tools.
func (r *ToolRegistry) RegisterTools() []tools.Tool {
	if len(r.tools) > 0 {
		return r.tools
	}

	// Session lifecycle tools (always available)
	r.tools = append(r.tools,
		NewStartSessionTool(r.manager),
		NewListSessionsTool(r.manager),
		NewCloseSessionTool(r.manager),
		NewStatusTool(r.manager),
	)

	// Page interaction tools (require an active session)
	r.tools = append(r.tools,
		NewNavigateTool(r.manager),
		NewClickTool(r.manager),
		NewFillTool(r.manager),
		NewSelectOptionTool(r.manager),
		NewWaitTool(r.manager),
	)

	// Extraction and capture tools
	r.tools = append(r.tools,
		NewGetTextTool(r.manager),
		NewGetAttributeTool(r.manager),
		NewPageInfoTool(r.manager),
		NewExtractContentTool(r.manager),
		NewScreenshotTool(r.manager),
		NewSnapshotTool(r.manager),
		NewSavePageTool(r.manager),
		NewEvaluateTool(r.manager),
	)

	return r.tools
}

// GetTools returns the current set of registered tools.
func (r *ToolRegistry) GetTools() []tools.Tool {
	return r.tools
}

// GetTool returns the registered tool with the given name.
func (r *ToolRegistry) GetTool(name string) (tools.Tool, bool) {
	for _, tool := range r.tools {
		if tool.Name() == name {
			return tool, true
		}
	}
	return nil, false
}

// GetSessionManager returns the underlying session manager.
func (r *ToolRegistry) GetSessionManager() *browser.SessionManager {
	return r.manager
}
