package browser

import (
	"context"
	"encoding/xml"
	"fmt"

	"github.com/entrhq/webpilot/pkg/browser"
	"github.com/entrhq/webpilot/pkg/tools"
)

// DefaultMaxContentLength bounds extracted content size in characters.
const DefaultMaxContentLength = 10000

// ExtractContentTool extracts cleaned page content from a session.
type ExtractContentTool struct {
	manager *browser.SessionManager
}

// NewExtractContentTool creates a new extract content tool.
func NewExtractContentTool(manager *browser.SessionManager) *ExtractContentTool {
	return &ExtractContentTool{
		manager: manager,
	}
}

// Name returns the tool name.
func (t *ExtractContentTool) Name() string {
	return "extract_content"
}

// Description returns the tool description.
func (t *ExtractContentTool) Description() string {
	return "Extract the page content with scripts, styles, and noise removed. Preserves semantic structure and the attributes needed to build selectors against the result."
}

// Schema returns the tool's JSON schema.
func (t *ExtractContentTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"session": map[string]interface{}{
				"type":        "string",
				"description": "Id of the browser session to extract from",
			},
			"max_length": map[string]interface{}{
				"type":        "integer",
				"description": "Maximum content length in characters. Default: 10000",
			},
		},
		[]string{"session"},
	)
}

// ExtractContentInput represents the parameters for content extraction.
type ExtractContentInput struct {
	XMLName   xml.Name `xml:"arguments"`
	Session   string   `xml:"session"`
	MaxLength *int     `xml:"max_length"`
}

// Execute extracts cleaned content from the page.
func (t *ExtractContentTool) Execute(ctx context.Context, argsXML []byte) (*tools.Outcome, error) {
	var input ExtractContentInput
	if err := tools.UnmarshalXMLWithFallback(argsXML, &input); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}

	if input.Session == "" {
		return nil, fmt.Errorf("session id is required")
	}

	maxLength := DefaultMaxContentLength
	if input.MaxLength != nil {
		if *input.MaxLength < 100 || *input.MaxLength > 100000 {
			return nil, fmt.Errorf("max_length must be between 100 and 100000")
		}
		maxLength = *input.MaxLength
	}

	session, err := t.manager.GetSession(input.Session)
	if err != nil {
		return failure(err), nil
	}

	rawHTML, err := session.Content()
	if err != nil {
		return failure(err), nil
	}

	cleaned, err := cleanHTML(rawHTML, maxLength)
	if err != nil {
		return tools.Fail(KindCapture, fmt.Sprintf("failed to clean page content: %v", err)), nil
	}

	truncatedNote := ""
	if cleaned.Truncated {
		truncatedNote = " (truncated)"
	}

	message := fmt.Sprintf("Content extracted%s.\n\nPage details:\n- URL: %s\n- Title: %s\n- Length: %d characters\n\n---\n\n%s",
		truncatedNote, session.CurrentURL(), cleaned.Title, len(cleaned.HTML), cleaned.HTML)

	return tools.OKWithMetadata(message, map[string]interface{}{
		"session":     input.Session,
		"url":         session.CurrentURL(),
		"title":       cleaned.Title,
		"description": cleaned.Description,
		"truncated":   cleaned.Truncated,
		"content":     cleaned.HTML,
	}), nil
}
