package browser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/entrhq/webpilot/pkg/browser"
)

// stubEngine is a minimal in-memory engine for tool tests.
type stubEngine struct {
	launched   bool
	launchErr  error
	contextErr error
	page       *stubPage
}

func (e *stubEngine) Launch() error {
	if e.launchErr != nil {
		return e.launchErr
	}
	e.launched = true
	return nil
}

func (e *stubEngine) NewContext(viewport browser.Viewport) (browser.BrowserContext, error) {
	if e.contextErr != nil {
		return nil, e.contextErr
	}
	if e.page == nil {
		e.page = newStubPage()
	}
	return &stubContext{page: e.page}, nil
}

func (e *stubEngine) Close() error {
	e.launched = false
	return nil
}

type stubContext struct {
	page *stubPage
}

func (c *stubContext) NewPage() (browser.Page, error) { return c.page, nil }
func (c *stubContext) Close() error                   { return nil }

// stubPage records interactions and serves canned responses.
type stubPage struct {
	url        string
	title      string
	html       string
	snapshot   string
	screenshot []byte
	evalResult interface{}
	texts      map[string]string
	attrs      map[string]string

	gotoErr  error
	clickErr error
	waitErr  error
}

func newStubPage() *stubPage {
	return &stubPage{
		url:        "about:blank",
		title:      "Blank",
		html:       "<html><head><title>Blank</title></head><body></body></html>",
		snapshot:   "- document",
		screenshot: []byte("png-bytes"),
		texts:      map[string]string{},
		attrs:      map[string]string{},
	}
}

func (p *stubPage) Goto(url, waitUntil string, timeout float64) error {
	if p.gotoErr != nil {
		return p.gotoErr
	}
	p.url = url
	return nil
}

func (p *stubPage) Click(selector string, opts browser.ClickOptions) error {
	return p.clickErr
}

func (p *stubPage) Fill(selector, value string, timeout float64) error {
	return nil
}

func (p *stubPage) SelectOption(selector, value string, timeout float64) error {
	return nil
}

func (p *stubPage) WaitForSelector(selector, state string, timeout float64) error {
	return p.waitErr
}

func (p *stubPage) TextContent(selector string, timeout float64) (string, error) {
	return p.texts[selector], nil
}

func (p *stubPage) GetAttribute(selector, attribute string, timeout float64) (string, error) {
	return p.attrs[selector+"/"+attribute], nil
}

func (p *stubPage) Title() (string, error) { return p.title, nil }

func (p *stubPage) URL() string { return p.url }

func (p *stubPage) Content() (string, error) { return p.html, nil }

func (p *stubPage) Screenshot(fullPage bool, timeout float64) ([]byte, error) {
	return p.screenshot, nil
}

func (p *stubPage) AriaSnapshot() (string, error) { return p.snapshot, nil }

func (p *stubPage) Evaluate(expression string) (interface{}, error) {
	return p.evalResult, nil
}

func (p *stubPage) Close() error { return nil }

// newTestManager builds a session manager over a stub engine.
func newTestManager(t *testing.T, engine *stubEngine) *browser.SessionManager {
	t.Helper()
	return browser.NewSessionManager(engine, browser.PoolOptions{MaxSessions: 3})
}

// startTestSession creates a session and returns its id.
func startTestSession(t *testing.T, manager *browser.SessionManager) string {
	t.Helper()
	session, err := manager.CreateSession(browser.SessionOptions{})
	require.NoError(t, err)
	return session.ID()
}
