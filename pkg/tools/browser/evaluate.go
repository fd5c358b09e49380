package browser

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"

	"github.com/entrhq/webpilot/pkg/browser"
	"github.com/entrhq/webpilot/pkg/tools"
)

// EvaluateTool executes JavaScript in a session's page.
type EvaluateTool struct {
	manager *browser.SessionManager
}

// NewEvaluateTool creates a new evaluate tool.
func NewEvaluateTool(manager *browser.SessionManager) *EvaluateTool {
	return &EvaluateTool{
		manager: manager,
	}
}

// Name returns the tool name.
func (t *EvaluateTool) Name() string {
	return "evaluate"
}

// Description returns the tool description.
func (t *EvaluateTool) Description() string {
	return "Execute JavaScript in the page and return the result. Use for data extraction or DOM manipulation the other tools cannot express."
}

// Schema returns the tool's JSON schema.
func (t *EvaluateTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"session": map[string]interface{}{
				"type":        "string",
				"description": "Id of the browser session to use",
			},
			"code": map[string]interface{}{
				"type":        "string",
				"description": "JavaScript code to execute. Can be an expression or a function body. For complex operations, wrap in an IIFE: (function() { /* code */ })();",
			},
		},
		[]string{"session", "code"},
	)
}

// EvaluateInput defines the input parameters.
type EvaluateInput struct {
	XMLName xml.Name `xml:"arguments"`
	Session string   `xml:"session"`
	Code    string   `xml:"code"`
}

// Execute runs JavaScript in the page.
func (t *EvaluateTool) Execute(ctx context.Context, argsXML []byte) (*tools.Outcome, error) {
	var input EvaluateInput
	if err := tools.UnmarshalXMLWithFallback(argsXML, &input); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}

	if input.Session == "" {
		return nil, fmt.Errorf("session id is required")
	}
	if input.Code == "" {
		return nil, fmt.Errorf("JavaScript code is required")
	}

	session, err := t.manager.GetSession(input.Session)
	if err != nil {
		return failure(err), nil
	}

	result, err := session.Evaluate(input.Code)
	if err != nil {
		return failure(err), nil
	}

	resultStr := "undefined"
	if result != nil {
		if jsonBytes, jsonErr := json.MarshalIndent(result, "", "  "); jsonErr == nil {
			resultStr = string(jsonBytes)
		} else {
			resultStr = fmt.Sprintf("%v", result)
		}
	}

	message := fmt.Sprintf("JavaScript executed.\n\nSession: %s\nURL: %s\n\nResult:\n%s",
		input.Session, session.CurrentURL(), resultStr)

	return tools.OKWithMetadata(message, map[string]interface{}{
		"session": input.Session,
		"url":     session.CurrentURL(),
		"result":  result,
	}), nil
}
