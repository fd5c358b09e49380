package browser

import (
	"context"
	"encoding/xml"
	"fmt"

	"github.com/entrhq/webpilot/pkg/browser"
	"github.com/entrhq/webpilot/pkg/tools"
)

// PageInfoTool reports the current URL and title of a session's page.
type PageInfoTool struct {
	manager *browser.SessionManager
}

// NewPageInfoTool creates a new page info tool.
func NewPageInfoTool(manager *browser.SessionManager) *PageInfoTool {
	return &PageInfoTool{
		manager: manager,
	}
}

// Name returns the tool name.
func (t *PageInfoTool) Name() string {
	return "page_info"
}

// Description returns the tool description.
func (t *PageInfoTool) Description() string {
	return "Report the current URL and title of a session's page. Useful after clicks that trigger navigation."
}

// Schema returns the tool's JSON schema.
func (t *PageInfoTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"session": map[string]interface{}{
				"type":        "string",
				"description": "Id of the browser session to inspect",
			},
		},
		[]string{"session"},
	)
}

// PageInfoInput represents the parameters for page inspection.
type PageInfoInput struct {
	XMLName xml.Name `xml:"arguments"`
	Session string   `xml:"session"`
}

// Execute reports the page URL and title.
func (t *PageInfoTool) Execute(ctx context.Context, argsXML []byte) (*tools.Outcome, error) {
	var input PageInfoInput
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

	url, err := session.URL()
	if err != nil {
		return failure(err), nil
	}

	title, err := session.Title()
	if err != nil {
		return failure(err), nil
	}

	message := fmt.Sprintf("Page details:\n- URL: %s\n- Title: %s", url, title)

	return tools.OKWithMetadata(message, map[string]interface{}{
		"session": input.Session,
		"url":     url,
		"title":   title,
	}), nil
}
