package browser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(page *fakePage) (*Session, *fakeContext) {
	context := &fakeContext{}
	context.pages = append(context.pages, page)
	session := newSession("test-session", context, page, Viewport{Width: 1280, Height: 720}, 5000)
	session.markReady()
	return session, context
}

func TestSessionLifecycleStates(t *testing.T) {
	page := &fakePage{}
	context := &fakeContext{}
	session := newSession("s", context, page, Viewport{}, 0)

	assert.Equal(t, StateCreated, session.State())
	session.markReady()
	assert.Equal(t, StateReady, session.State())
	require.NoError(t, session.Close())
	assert.Equal(t, StateClosed, session.State())
}

func TestSessionCloseIsIdempotent(t *testing.T) {
	page := &fakePage{}
	session, context := newTestSession(page)

	require.NoError(t, session.Close())
	require.NoError(t, session.Close())

	assert.True(t, page.isClosed())
	assert.True(t, context.isClosed())
}

func TestClosedSessionRejectsOperationsWithoutEngineCall(t *testing.T) {
	page := &fakePage{}
	session, _ := newTestSession(page)
	require.NoError(t, session.Close())

	before := page.callCount()

	err := session.Navigate("https://example.com", NavigateOptions{})
	assert.ErrorIs(t, err, ErrSessionClosed)

	err = session.Click("#button", ClickOptions{})
	assert.ErrorIs(t, err, ErrSessionClosed)

	err = session.Fill("#input", "value", FillOptions{})
	assert.ErrorIs(t, err, ErrSessionClosed)

	_, err = session.Text("#content", ExtractOptions{})
	assert.ErrorIs(t, err, ErrSessionClosed)

	_, err = session.Screenshot(ScreenshotOptions{})
	assert.ErrorIs(t, err, ErrSessionClosed)

	_, err = session.Evaluate("1 + 1")
	assert.ErrorIs(t, err, ErrSessionClosed)

	assert.Equal(t, before, page.callCount(), "closed session must not contact the engine")
}

func TestTimeoutResolutionOrder(t *testing.T) {
	tests := []struct {
		name           string
		sessionDefault float64
		override       float64
		want           float64
	}{
		{
			name:           "per-call override wins",
			sessionDefault: 5000,
			override:       1000,
			want:           1000,
		},
		{
			name:           "session default when no override",
			sessionDefault: 5000,
			override:       0,
			want:           5000,
		},
		{
			name:           "package default as last resort",
			sessionDefault: 0,
			override:       0,
			want:           DefaultTimeout,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := &fakePage{texts: map[string]string{}, attrs: map[string]string{}}
			context := &fakeContext{}
			session := newSession("s", context, page, Viewport{}, tt.sessionDefault)
			session.markReady()

			require.NoError(t, session.Fill("#input", "x", FillOptions{Timeout: tt.override}))
			assert.Equal(t, tt.want, page.lastTimeout)
		})
	}
}

func TestNavigate(t *testing.T) {
	page := &fakePage{}
	session, _ := newTestSession(page)

	require.NoError(t, session.Navigate("https://example.com", NavigateOptions{WaitUntil: "networkidle"}))
	assert.Equal(t, "https://example.com", session.CurrentURL())
}

func TestNavigateTimeoutLeavesSessionUsable(t *testing.T) {
	page := &fakePage{gotoErr: ErrOperationTimeout}
	session, _ := newTestSession(page)

	err := session.Navigate("https://slow.example.com", NavigateOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrOperationTimeout)
	assert.Equal(t, StateReady, session.State())

	// The session stays usable after a timeout
	page.mu.Lock()
	page.gotoErr = nil
	page.mu.Unlock()
	require.NoError(t, session.Navigate("https://example.com", NavigateOptions{}))
}

func TestNavigateEngineFailure(t *testing.T) {
	page := &fakePage{gotoErr: errors.New("net::ERR_NAME_NOT_RESOLVED")}
	session, _ := newTestSession(page)

	err := session.Navigate("https://bad.invalid", NavigateOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNavigation)
	assert.NotErrorIs(t, err, ErrOperationTimeout)
}

func TestClickErrors(t *testing.T) {
	tests := []struct {
		name   string
		engine error
		want   error
	}{
		{
			name:   "timeout",
			engine: errors.New("playwright: Timeout 5000ms exceeded"),
			want:   ErrOperationTimeout,
		},
		{
			name:   "element not found",
			engine: errors.New("no node found for selector"),
			want:   ErrElementNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := &fakePage{clickErr: tt.engine}
			session, _ := newTestSession(page)

			err := session.Click("#missing", ClickOptions{})
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, StateReady, session.State())
		})
	}
}

func TestClickUpdatesCurrentURL(t *testing.T) {
	page := &fakePage{url: "https://example.com/next"}
	session, _ := newTestSession(page)

	require.NoError(t, session.Click("a.link", ClickOptions{}))
	assert.Equal(t, "https://example.com/next", session.CurrentURL())
}

func TestFillAndSelect(t *testing.T) {
	page := &fakePage{}
	session, _ := newTestSession(page)

	require.NoError(t, session.Fill("input[name=q]", "query", FillOptions{}))
	require.NoError(t, session.SelectOption("select[name=month]", "3", SelectOptions{}))

	page.selectErr = errors.New("Timeout 5000ms exceeded")
	err := session.SelectOption("select[name=day]", "14", SelectOptions{})
	assert.ErrorIs(t, err, ErrOperationTimeout)
}

func TestWaitFor(t *testing.T) {
	page := &fakePage{}
	session, _ := newTestSession(page)

	require.NoError(t, session.WaitFor("#ready", WaitOptions{State: "visible"}))

	page.waitErr = errors.New("Timeout 5000ms exceeded")
	err := session.WaitFor("#never", WaitOptions{})
	assert.ErrorIs(t, err, ErrOperationTimeout)
	assert.Equal(t, StateReady, session.State())
}

func TestTextExtraction(t *testing.T) {
	page := &fakePage{texts: map[string]string{
		"h1":     "Welcome",
		".empty": "",
	}}
	session, _ := newTestSession(page)

	text, err := session.Text("h1", ExtractOptions{})
	require.NoError(t, err)
	assert.Equal(t, "Welcome", text)

	// Element exists but has no value: empty result, not an error
	text, err = session.Text(".empty", ExtractOptions{})
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestTextElementNotFound(t *testing.T) {
	page := &fakePage{extractErr: errors.New("Timeout 5000ms exceeded waiting for selector")}
	session, _ := newTestSession(page)

	_, err := session.Text("#missing", ExtractOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrElementNotFound)
}

func TestAttributeExtraction(t *testing.T) {
	page := &fakePage{attrs: map[string]string{
		"a.link/href": "https://example.com",
	}}
	session, _ := newTestSession(page)

	href, err := session.Attribute("a.link", "href", ExtractOptions{})
	require.NoError(t, err)
	assert.Equal(t, "https://example.com", href)

	// Missing attribute yields empty string, not an error
	missing, err := session.Attribute("a.link", "data-x", ExtractOptions{})
	require.NoError(t, err)
	assert.Empty(t, missing)
}

func TestTitleAndURL(t *testing.T) {
	page := &fakePage{title: "Example Domain", url: "https://example.com"}
	session, _ := newTestSession(page)

	title, err := session.Title()
	require.NoError(t, err)
	assert.Equal(t, "Example Domain", title)

	url, err := session.URL()
	require.NoError(t, err)
	assert.Equal(t, "https://example.com", url)
}

func TestCaptureOperations(t *testing.T) {
	page := &fakePage{
		screenshot: []byte{0x89, 0x50, 0x4e, 0x47},
		html:       "<html><body>hi</body></html>",
		snapshot:   "- heading \"Welcome\"",
		evalResult: 42.0,
	}
	session, _ := newTestSession(page)

	data, err := session.Screenshot(ScreenshotOptions{FullPage: true})
	require.NoError(t, err)
	assert.Equal(t, []byte{0x89, 0x50, 0x4e, 0x47}, data)

	html, err := session.Content()
	require.NoError(t, err)
	assert.Contains(t, html, "<body>")

	snapshot, err := session.Snapshot()
	require.NoError(t, err)
	assert.Contains(t, snapshot, "heading")

	result, err := session.Evaluate("21 * 2")
	require.NoError(t, err)
	assert.Equal(t, 42.0, result)
}

func TestCaptureError(t *testing.T) {
	page := &fakePage{captureErr: errors.New("target closed")}
	session, _ := newTestSession(page)

	_, err := session.Screenshot(ScreenshotOptions{})
	assert.ErrorIs(t, err, ErrCapture)

	_, err = session.Content()
	assert.ErrorIs(t, err, ErrCapture)

	_, err = session.Snapshot()
	assert.ErrorIs(t, err, ErrCapture)

	_, err = session.Evaluate("1")
	assert.ErrorIs(t, err, ErrCapture)
}

func TestSessionInfo(t *testing.T) {
	page := &fakePage{}
	session, _ := newTestSession(page)

	info := session.Info()
	assert.Equal(t, "test-session", info.ID)
	assert.Equal(t, StateReady, info.State)
	assert.Equal(t, "about:blank", info.CurrentURL)
	assert.Equal(t, Viewport{Width: 1280, Height: 720}, info.Viewport)
	assert.False(t, info.CreatedAt.IsZero())
}
