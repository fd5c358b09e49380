package browser

import (
	"context"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/entrhq/webpilot/pkg/browser"
	"github.com/entrhq/webpilot/pkg/tools"
)

// SavePageTool writes the page HTML to a file on disk.
type SavePageTool struct {
	manager *browser.SessionManager
}

// NewSavePageTool creates a new save page tool.
func NewSavePageTool(manager *browser.SessionManager) *SavePageTool {
	return &SavePageTool{
		manager: manager,
	}
}

// Name returns the tool name.
func (t *SavePageTool) Name() string {
	return "save_page"
}

// Description returns the tool description.
func (t *SavePageTool) Description() string {
	return "Save the page's full HTML source to a file. Creates parent directories as needed."
}

// Schema returns the tool's JSON schema.
func (t *SavePageTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"session": map[string]interface{}{
				"type":        "string",
				"description": "Id of the browser session to save from",
			},
			"path": map[string]interface{}{
				"type":        "string",
				"description": "File path to write the HTML to (e.g., '/tmp/page.html')",
			},
		},
		[]string{"session", "path"},
	)
}

// SavePageInput represents the parameters for saving a page.
type SavePageInput struct {
	XMLName xml.Name `xml:"arguments"`
	Session string   `xml:"session"`
	Path    string   `xml:"path"`
}

// Execute saves the page HTML to disk.
func (t *SavePageTool) Execute(ctx context.Context, argsXML []byte) (*tools.Outcome, error) {
	var input SavePageInput
	if err := tools.UnmarshalXMLWithFallback(argsXML, &input); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}

	if input.Session == "" {
		return nil, fmt.Errorf("session id is required")
	}
	if strings.TrimSpace(input.Path) == "" {
		return nil, fmt.Errorf("path is required")
	}

	session, err := t.manager.GetSession(input.Session)
	if err != nil {
		return failure(err), nil
	}

	content, err := session.Content()
	if err != nil {
		return failure(err), nil
	}

	path := filepath.Clean(input.Path)
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return tools.Fail(KindCapture, fmt.Sprintf("failed to create directory: %v", err)), nil
	}
	if err := os.WriteFile(path, []byte(content), 0640); err != nil {
		return tools.Fail(KindCapture, fmt.Sprintf("failed to write file: %v", err)), nil
	}

	message := fmt.Sprintf("Saved %s to %s (%d bytes).", session.CurrentURL(), path, len(content))

	return tools.OKWithMetadata(message, map[string]interface{}{
		"session":    input.Session,
		"url":        session.CurrentURL(),
		"path":       path,
		"size_bytes": len(content),
	}), nil
}
