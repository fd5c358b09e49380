package browser

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entrhq/webpilot/pkg/browser"
	"github.com/entrhq/webpilot/pkg/tools"
)

func TestClickTool_Execute(t *testing.T) {
	manager := newTestManager(t, &stubEngine{})
	sessionID := startTestSession(t, manager)
	tool := NewClickTool(manager)

	argsXML := []byte(fmt.Sprintf(
		"<arguments><session>%s</session><selector>button.submit</selector></arguments>", sessionID))

	outcome, err := tool.Execute(context.Background(), argsXML)
	require.NoError(t, err)
	assert.Equal(t, tools.StatusOK, outcome.Status)
	assert.Equal(t, "button.submit", outcome.Metadata["selector"])
}

func TestClickTool_Execute_ElementNotFound(t *testing.T) {
	engine := &stubEngine{page: newStubPage()}
	engine.page.clickErr = fmt.Errorf("no element matches selector")
	manager := newTestManager(t, engine)
	sessionID := startTestSession(t, manager)
	tool := NewClickTool(manager)

	argsXML := []byte(fmt.Sprintf(
		"<arguments><session>%s</session><selector>#missing</selector></arguments>", sessionID))

	outcome, err := tool.Execute(context.Background(), argsXML)
	require.NoError(t, err)
	assert.Equal(t, tools.StatusError, outcome.Status)
	assert.Equal(t, KindElementNotFound, outcome.Kind)
}

func TestClickTool_Execute_Timeout(t *testing.T) {
	engine := &stubEngine{page: newStubPage()}
	engine.page.clickErr = browser.ErrOperationTimeout
	manager := newTestManager(t, engine)
	sessionID := startTestSession(t, manager)
	tool := NewClickTool(manager)

	argsXML := []byte(fmt.Sprintf(
		"<arguments><session>%s</session><selector>button</selector></arguments>", sessionID))

	outcome, err := tool.Execute(context.Background(), argsXML)
	require.NoError(t, err)
	assert.Equal(t, tools.StatusError, outcome.Status)
	assert.Equal(t, KindOperationTimeout, outcome.Kind)
}

func TestClickTool_Execute_InvalidButton(t *testing.T) {
	manager := newTestManager(t, &stubEngine{})
	sessionID := startTestSession(t, manager)
	tool := NewClickTool(manager)

	argsXML := []byte(fmt.Sprintf(
		"<arguments><session>%s</session><selector>button</selector><button>side</button></arguments>", sessionID))

	_, err := tool.Execute(context.Background(), argsXML)
	assert.Error(t, err)
}

func TestFillTool_Execute(t *testing.T) {
	manager := newTestManager(t, &stubEngine{})
	sessionID := startTestSession(t, manager)
	tool := NewFillTool(manager)

	argsXML := []byte(fmt.Sprintf(
		"<arguments><session>%s</session><selector>input[name=q]</selector><value>golang</value></arguments>", sessionID))

	outcome, err := tool.Execute(context.Background(), argsXML)
	require.NoError(t, err)
	assert.Equal(t, tools.StatusOK, outcome.Status)
}

func TestFillTool_Execute_ValidationErrors(t *testing.T) {
	tool := NewFillTool(newTestManager(t, &stubEngine{}))
	ctx := context.Background()

	_, err := tool.Execute(ctx, []byte("<arguments><selector>input</selector></arguments>"))
	assert.Error(t, err, "missing session")

	_, err = tool.Execute(ctx, []byte("<arguments><session>abc</session></arguments>"))
	assert.Error(t, err, "missing selector")
}

func TestSelectOptionTool_Execute(t *testing.T) {
	manager := newTestManager(t, &stubEngine{})
	sessionID := startTestSession(t, manager)
	tool := NewSelectOptionTool(manager)

	argsXML := []byte(fmt.Sprintf(
		"<arguments><session>%s</session><selector>select[name=country]</selector><value>NL</value></arguments>", sessionID))

	outcome, err := tool.Execute(context.Background(), argsXML)
	require.NoError(t, err)
	assert.Equal(t, tools.StatusOK, outcome.Status)
	assert.Equal(t, "NL", outcome.Metadata["value"])
}

func TestSelectOptionTool_Execute_MissingValue(t *testing.T) {
	manager := newTestManager(t, &stubEngine{})
	sessionID := startTestSession(t, manager)
	tool := NewSelectOptionTool(manager)

	argsXML := []byte(fmt.Sprintf(
		"<arguments><session>%s</session><selector>select</selector></arguments>", sessionID))

	_, err := tool.Execute(context.Background(), argsXML)
	assert.Error(t, err)
}

func TestWaitTool_Execute(t *testing.T) {
	manager := newTestManager(t, &stubEngine{})
	sessionID := startTestSession(t, manager)
	tool := NewWaitTool(manager)

	argsXML := []byte(fmt.Sprintf(
		"<arguments><session>%s</session><selector>.results</selector><state>visible</state></arguments>", sessionID))

	outcome, err := tool.Execute(context.Background(), argsXML)
	require.NoError(t, err)
	assert.Equal(t, tools.StatusOK, outcome.Status)
	assert.Equal(t, "visible", outcome.Metadata["state"])
}

func TestWaitTool_Execute_Timeout(t *testing.T) {
	engine := &stubEngine{page: newStubPage()}
	engine.page.waitErr = fmt.Errorf("Timeout 30000ms exceeded")
	manager := newTestManager(t, engine)
	sessionID := startTestSession(t, manager)
	tool := NewWaitTool(manager)

	argsXML := []byte(fmt.Sprintf(
		"<arguments><session>%s</session><selector>.slow</selector></arguments>", sessionID))

	outcome, err := tool.Execute(context.Background(), argsXML)
	require.NoError(t, err)
	assert.Equal(t, tools.StatusError, outcome.Status)
	assert.Equal(t, KindOperationTimeout, outcome.Kind)
}

func TestWaitTool_Execute_InvalidState(t *testing.T) {
	manager := newTestManager(t, &stubEngine{})
	sessionID := startTestSession(t, manager)
	tool := NewWaitTool(manager)

	argsXML := []byte(fmt.Sprintf(
		"<arguments><session>%s</session><selector>div</selector><state>gone</state></arguments>", sessionID))

	_, err := tool.Execute(context.Background(), argsXML)
	assert.Error(t, err)
}
