package browser

import (
	"fmt"
	"sync"
	"time"
)

// Session is a single automation workspace. It exclusively owns one
// browsing context and one page; no other component mutates them.
//
// Every operation resolves its timeout as: explicit per-call value, else
// the session default, else DefaultTimeout. A timed-out operation leaves
// the session in ready state; subsequent operations proceed normally.
type Session struct {
	id       string
	viewport Viewport
	timeout  float64
	context  BrowserContext
	page     Page

	mu         sync.Mutex
	state      State
	createdAt  time.Time
	lastUsedAt time.Time
	currentURL string
}

func newSession(id string, context BrowserContext, page Page, viewport Viewport, timeout float64) *Session {
	now := time.Now()
	return &Session{
		id:         id,
		viewport:   viewport,
		timeout:    timeout,
		context:    context,
		page:       page,
		state:      StateCreated,
		createdAt:  now,
		lastUsedAt: now,
		currentURL: "about:blank",
	}
}

// ID returns the session's unique identifier.
func (s *Session) ID() string {
	return s.id
}

// State returns the session's lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Viewport returns the session's viewport dimensions.
func (s *Session) Viewport() Viewport {
	return s.viewport
}

// DefaultTimeout returns the session's default operation timeout in
// milliseconds.
func (s *Session) DefaultTimeout() float64 {
	return s.timeout
}

// CurrentURL returns the URL of the page as of the last navigation or
// click.
func (s *Session) CurrentURL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentURL
}

// Info returns a point-in-time snapshot of session metadata.
func (s *Session) Info() SessionInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return SessionInfo{
		ID:         s.id,
		State:      s.state,
		CurrentURL: s.currentURL,
		Viewport:   s.viewport,
		CreatedAt:  s.createdAt,
		LastUsedAt: s.lastUsedAt,
	}
}

// markReady transitions created -> ready. Called by the pool once the
// context and page are established.
func (s *Session) markReady() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateCreated {
		s.state = StateReady
	}
}

// ensureReady rejects operations on closed sessions and stamps last use.
func (s *Session) ensureReady() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateClosed {
		return fmt.Errorf("session %s: %w", s.id, ErrSessionClosed)
	}
	s.lastUsedAt = time.Now()
	return nil
}

// resolveTimeout applies the layered timeout configuration: explicit
// per-call value, else session default, else package default.
func (s *Session) resolveTimeout(override float64) float64 {
	if override > 0 {
		return override
	}
	if s.timeout > 0 {
		return s.timeout
	}
	return DefaultTimeout
}

// Navigate navigates the session's page to the specified URL.
func (s *Session) Navigate(url string, opts NavigateOptions) error {
	if err := s.ensureReady(); err != nil {
		return err
	}

	waitUntil := opts.WaitUntil
	if waitUntil == "" {
		waitUntil = "load"
	}

	if err := s.page.Goto(url, waitUntil, s.resolveTimeout(opts.Timeout)); err != nil {
		if isTimeout(err) {
			return fmt.Errorf("navigate to %s: %w", url, ErrOperationTimeout)
		}
		return fmt.Errorf("navigate to %s: %w: %v", url, ErrNavigation, err)
	}

	s.setCurrentURL(s.page.URL())
	return nil
}

// Click clicks an element matching the selector.
func (s *Session) Click(selector string, opts ClickOptions) error {
	if err := s.ensureReady(); err != nil {
		return err
	}

	opts.Timeout = s.resolveTimeout(opts.Timeout)
	if err := s.page.Click(selector, opts); err != nil {
		return interactionError("click", selector, err)
	}

	// Update current URL in case the click caused navigation
	s.setCurrentURL(s.page.URL())
	return nil
}

// Fill fills an input element with the specified value.
func (s *Session) Fill(selector, value string, opts FillOptions) error {
	if err := s.ensureReady(); err != nil {
		return err
	}

	if err := s.page.Fill(selector, value, s.resolveTimeout(opts.Timeout)); err != nil {
		return interactionError("fill", selector, err)
	}
	return nil
}

// SelectOption selects a dropdown option by value.
func (s *Session) SelectOption(selector, value string, opts SelectOptions) error {
	if err := s.ensureReady(); err != nil {
		return err
	}

	if err := s.page.SelectOption(selector, value, s.resolveTimeout(opts.Timeout)); err != nil {
		return interactionError("select", selector, err)
	}
	return nil
}

// WaitFor waits until the element matching the selector reaches the
// requested state.
func (s *Session) WaitFor(selector string, opts WaitOptions) error {
	if err := s.ensureReady(); err != nil {
		return err
	}

	state := opts.State
	if state == "" {
		state = "visible"
	}

	if err := s.page.WaitForSelector(selector, state, s.resolveTimeout(opts.Timeout)); err != nil {
		if isTimeout(err) {
			return fmt.Errorf("wait for %s: %w", selector, ErrOperationTimeout)
		}
		return fmt.Errorf("wait for %s: %w: %v", selector, ErrElementNotFound, err)
	}
	return nil
}

// Text returns the text content of the element matching the selector.
// An element with no text yields an empty string, not an error.
func (s *Session) Text(selector string, opts ExtractOptions) (string, error) {
	if err := s.ensureReady(); err != nil {
		return "", err
	}

	text, err := s.page.TextContent(selector, s.resolveTimeout(opts.Timeout))
	if err != nil {
		return "", extractionError("text", selector, err)
	}
	return text, nil
}

// Attribute returns the value of an attribute on the element matching
// the selector. A missing attribute yields an empty string, not an error.
func (s *Session) Attribute(selector, attribute string, opts ExtractOptions) (string, error) {
	if err := s.ensureReady(); err != nil {
		return "", err
	}

	value, err := s.page.GetAttribute(selector, attribute, s.resolveTimeout(opts.Timeout))
	if err != nil {
		return "", extractionError("attribute", selector, err)
	}
	return value, nil
}

// Title returns the page title.
func (s *Session) Title() (string, error) {
	if err := s.ensureReady(); err != nil {
		return "", err
	}

	title, err := s.page.Title()
	if err != nil {
		return "", fmt.Errorf("get title: %w: %v", ErrCapture, err)
	}
	return title, nil
}

// URL returns the current page URL.
func (s *Session) URL() (string, error) {
	if err := s.ensureReady(); err != nil {
		return "", err
	}

	url := s.page.URL()
	s.setCurrentURL(url)
	return url, nil
}

// Screenshot captures the page as PNG bytes.
func (s *Session) Screenshot(opts ScreenshotOptions) ([]byte, error) {
	if err := s.ensureReady(); err != nil {
		return nil, err
	}

	data, err := s.page.Screenshot(opts.FullPage, s.resolveTimeout(opts.Timeout))
	if err != nil {
		return nil, fmt.Errorf("screenshot: %w: %v", ErrCapture, err)
	}
	return data, nil
}

// Content returns the full rendered HTML of the page.
func (s *Session) Content() (string, error) {
	if err := s.ensureReady(); err != nil {
		return "", err
	}

	html, err := s.page.Content()
	if err != nil {
		return "", fmt.Errorf("page content: %w: %v", ErrCapture, err)
	}
	return html, nil
}

// Snapshot returns the accessibility tree of the page body.
func (s *Session) Snapshot() (string, error) {
	if err := s.ensureReady(); err != nil {
		return "", err
	}

	snapshot, err := s.page.AriaSnapshot()
	if err != nil {
		return "", fmt.Errorf("aria snapshot: %w: %v", ErrCapture, err)
	}
	return snapshot, nil
}

// Evaluate runs a JavaScript expression in the page and returns its
// result.
func (s *Session) Evaluate(expression string) (interface{}, error) {
	if err := s.ensureReady(); err != nil {
		return nil, err
	}

	result, err := s.page.Evaluate(expression)
	if err != nil {
		return nil, fmt.Errorf("evaluate: %w: %v", ErrCapture, err)
	}
	return result, nil
}

// Close terminates the session, closing its page and context. Closing is
// terminal and idempotent; a second call is a no-op.
func (s *Session) Close() error {
	s.mu.Lock()
	if s.state == StateClosed {
		s.mu.Unlock()
		return nil
	}
	s.state = StateClosed
	s.mu.Unlock()

	var errs []error
	if err := s.page.Close(); err != nil {
		errs = append(errs, err)
	}
	if err := s.context.Close(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return fmt.Errorf("closing session %s: %v", s.id, errs)
	}
	return nil
}

func (s *Session) setCurrentURL(url string) {
	s.mu.Lock()
	s.currentURL = url
	s.mu.Unlock()
}

// interactionError maps engine failures from click/fill/select onto the
// error taxonomy.
func interactionError(action, selector string, err error) error {
	if isTimeout(err) {
		return fmt.Errorf("%s %s: %w", action, selector, ErrOperationTimeout)
	}
	return fmt.Errorf("%s %s: %w: %v", action, selector, ErrElementNotFound, err)
}

// extractionError maps engine failures from text/attribute extraction.
// A selector that never resolves within the timeout is ErrElementNotFound,
// not ErrOperationTimeout: the deadline here bounds element lookup.
func extractionError(kind, selector string, err error) error {
	return fmt.Errorf("extract %s from %s: %w: %v", kind, selector, ErrElementNotFound, err)
}
