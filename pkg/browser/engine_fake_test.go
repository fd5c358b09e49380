package browser

import (
	"sync"
)

// fakeEngine is an in-memory Engine for pool and session tests.
type fakeEngine struct {
	mu          sync.Mutex
	launched    bool
	launchErr   error
	contextErr  error
	pageErr     error
	launchCalls int
	closeCalls  int
	contexts    []*fakeContext

	// beforeContext, when set, runs at the start of NewContext. Used to
	// widen race windows in concurrency tests.
	beforeContext func()
}

func (e *fakeEngine) Launch() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.launchCalls++
	if e.launchErr != nil {
		return e.launchErr
	}
	e.launched = true
	return nil
}

func (e *fakeEngine) NewContext(viewport Viewport) (BrowserContext, error) {
	if e.beforeContext != nil {
		e.beforeContext()
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.contextErr != nil {
		return nil, e.contextErr
	}
	ctx := &fakeContext{pageErr: e.pageErr}
	e.contexts = append(e.contexts, ctx)
	return ctx, nil
}

func (e *fakeEngine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closeCalls++
	e.launched = false
	return nil
}

// fakeContext is an in-memory BrowserContext.
type fakeContext struct {
	mu      sync.Mutex
	pageErr error
	closed  bool
	pages   []*fakePage
}

func (c *fakeContext) NewPage() (Page, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pageErr != nil {
		return nil, c.pageErr
	}
	page := &fakePage{
		url:   "about:blank",
		texts: map[string]string{},
		attrs: map[string]string{},
	}
	c.pages = append(c.pages, page)
	return page, nil
}

func (c *fakeContext) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *fakeContext) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// fakePage is an in-memory Page recording calls and configured to fail
// on demand.
type fakePage struct {
	mu sync.Mutex

	url        string
	title      string
	html       string
	snapshot   string
	screenshot []byte
	evalResult interface{}
	texts      map[string]string
	attrs      map[string]string

	gotoErr    error
	clickErr   error
	fillErr    error
	selectErr  error
	waitErr    error
	extractErr error
	captureErr error
	closeErr   error

	calls       int
	lastTimeout float64
	closed      bool
}

func (p *fakePage) record(timeout float64) {
	p.calls++
	p.lastTimeout = timeout
}

func (p *fakePage) Goto(url, waitUntil string, timeout float64) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.record(timeout)
	if p.gotoErr != nil {
		return p.gotoErr
	}
	p.url = url
	return nil
}

func (p *fakePage) Click(selector string, opts ClickOptions) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.record(opts.Timeout)
	return p.clickErr
}

func (p *fakePage) Fill(selector, value string, timeout float64) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.record(timeout)
	return p.fillErr
}

func (p *fakePage) SelectOption(selector, value string, timeout float64) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.record(timeout)
	return p.selectErr
}

func (p *fakePage) WaitForSelector(selector, state string, timeout float64) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.record(timeout)
	return p.waitErr
}

func (p *fakePage) TextContent(selector string, timeout float64) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.record(timeout)
	if p.extractErr != nil {
		return "", p.extractErr
	}
	return p.texts[selector], nil
}

func (p *fakePage) GetAttribute(selector, attribute string, timeout float64) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.record(timeout)
	if p.extractErr != nil {
		return "", p.extractErr
	}
	return p.attrs[selector+"/"+attribute], nil
}

func (p *fakePage) Title() (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	if p.captureErr != nil {
		return "", p.captureErr
	}
	return p.title, nil
}

func (p *fakePage) URL() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.url
}

func (p *fakePage) Content() (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	if p.captureErr != nil {
		return "", p.captureErr
	}
	return p.html, nil
}

func (p *fakePage) Screenshot(fullPage bool, timeout float64) ([]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.record(timeout)
	if p.captureErr != nil {
		return nil, p.captureErr
	}
	return p.screenshot, nil
}

func (p *fakePage) AriaSnapshot() (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	if p.captureErr != nil {
		return "", p.captureErr
	}
	return p.snapshot, nil
}

func (p *fakePage) Evaluate(expression string) (interface{}, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	if p.captureErr != nil {
		return nil, p.captureErr
	}
	return p.evalResult, nil
}

func (p *fakePage) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return p.closeErr
}

func (p *fakePage) callCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

func (p *fakePage) isClosed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}
