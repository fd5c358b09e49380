package browser

import (
	"fmt"
	"io"

	"github.com/playwright-community/playwright-go"
)

// PlaywrightEngine implements Engine on top of Playwright. One browser
// process is launched and shared; each session receives its own context
// and page.
type PlaywrightEngine struct {
	browserType string
	headless    bool
	pw          *playwright.Playwright
	browser     playwright.Browser
}

// NewPlaywrightEngine creates an engine for the given browser type
// ("chromium", "firefox", or "webkit"; anything else falls back to
// chromium).
func NewPlaywrightEngine(browserType string, headless bool) *PlaywrightEngine {
	return &PlaywrightEngine{
		browserType: browserType,
		headless:    headless,
	}
}

// Launch installs the Playwright driver if needed, starts it, and
// launches the browser process.
func (e *PlaywrightEngine) Launch() error {
	if e.browser != nil {
		return fmt.Errorf("engine already launched")
	}

	// Discard driver output so it cannot interfere with the host process
	opts := &playwright.RunOptions{
		Verbose: false,
		Stdout:  io.Discard,
		Stderr:  io.Discard,
	}

	if err := playwright.Install(opts); err != nil {
		return fmt.Errorf("failed to install playwright: %w", err)
	}

	pw, err := playwright.Run(opts)
	if err != nil {
		return fmt.Errorf("failed to start playwright: %w", err)
	}

	var browserType playwright.BrowserType
	switch e.browserType {
	case "firefox":
		browserType = pw.Firefox
	case "webkit":
		browserType = pw.WebKit
	default:
		browserType = pw.Chromium
	}

	browser, err := browserType.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: &e.headless,
	})
	if err != nil {
		pw.Stop()
		return fmt.Errorf("failed to launch browser: %w", err)
	}

	e.pw = pw
	e.browser = browser
	return nil
}

// NewContext creates an isolated browsing context with the given viewport.
func (e *PlaywrightEngine) NewContext(viewport Viewport) (BrowserContext, error) {
	if e.browser == nil {
		return nil, fmt.Errorf("engine not launched")
	}

	ctx, err := e.browser.NewContext(playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  viewport.Width,
			Height: viewport.Height,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create context: %w", err)
	}

	return &playwrightContext{ctx: ctx}, nil
}

// Close terminates the browser process and stops the Playwright driver.
func (e *PlaywrightEngine) Close() error {
	var errs []error

	if e.browser != nil {
		if err := e.browser.Close(); err != nil {
			errs = append(errs, err)
		}
		e.browser = nil
	}
	if e.pw != nil {
		if err := e.pw.Stop(); err != nil {
			errs = append(errs, err)
		}
		e.pw = nil
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors closing engine: %v", errs)
	}
	return nil
}

// playwrightContext adapts playwright.BrowserContext to BrowserContext.
type playwrightContext struct {
	ctx playwright.BrowserContext
}

func (c *playwrightContext) NewPage() (Page, error) {
	page, err := c.ctx.NewPage()
	if err != nil {
		return nil, fmt.Errorf("failed to create page: %w", err)
	}
	return &playwrightPage{page: page}, nil
}

func (c *playwrightContext) Close() error {
	return c.ctx.Close()
}

// playwrightPage adapts playwright.Page to Page.
type playwrightPage struct {
	page playwright.Page
}

func (p *playwrightPage) Goto(url, waitUntil string, timeout float64) error {
	opts := playwright.PageGotoOptions{
		Timeout: &timeout,
	}
	if waitUntil != "" {
		state := playwright.WaitUntilState(waitUntil)
		opts.WaitUntil = &state
	}

	_, err := p.page.Goto(url, opts)
	return err
}

func (p *playwrightPage) Click(selector string, opts ClickOptions) error {
	clickOpts := playwright.PageClickOptions{
		Timeout: &opts.Timeout,
	}
	if opts.Button != "" {
		button := playwright.MouseButton(opts.Button)
		clickOpts.Button = &button
	}
	if opts.ClickCount > 0 {
		clickOpts.ClickCount = &opts.ClickCount
	}
	if opts.Force {
		clickOpts.Force = &opts.Force
	}

	return p.page.Click(selector, clickOpts)
}

func (p *playwrightPage) Fill(selector, value string, timeout float64) error {
	return p.page.Fill(selector, value, playwright.PageFillOptions{
		Timeout: &timeout,
	})
}

func (p *playwrightPage) SelectOption(selector, value string, timeout float64) error {
	values := []string{value}
	_, err := p.page.SelectOption(selector, playwright.SelectOptionValues{
		Values: &values,
	}, playwright.PageSelectOptionOptions{
		Timeout: &timeout,
	})
	return err
}

func (p *playwrightPage) WaitForSelector(selector, state string, timeout float64) error {
	opts := playwright.PageWaitForSelectorOptions{
		Timeout: &timeout,
	}
	if state != "" {
		selectorState := playwright.WaitForSelectorState(state)
		opts.State = &selectorState
	}

	_, err := p.page.WaitForSelector(selector, opts)
	return err
}

func (p *playwrightPage) TextContent(selector string, timeout float64) (string, error) {
	element, err := p.page.WaitForSelector(selector, playwright.PageWaitForSelectorOptions{
		Timeout: &timeout,
	})
	if err != nil {
		return "", err
	}
	if element == nil {
		return "", fmt.Errorf("no element found matching selector: %s", selector)
	}
	return element.TextContent()
}

func (p *playwrightPage) GetAttribute(selector, attribute string, timeout float64) (string, error) {
	element, err := p.page.WaitForSelector(selector, playwright.PageWaitForSelectorOptions{
		Timeout: &timeout,
	})
	if err != nil {
		return "", err
	}
	if element == nil {
		return "", fmt.Errorf("no element found matching selector: %s", selector)
	}
	return element.GetAttribute(attribute)
}

func (p *playwrightPage) Title() (string, error) {
	return p.page.Title()
}

func (p *playwrightPage) URL() string {
	return p.page.URL()
}

func (p *playwrightPage) Content() (string, error) {
	return p.page.Content()
}

func (p *playwrightPage) Screenshot(fullPage bool, timeout float64) ([]byte, error) {
	return p.page.Screenshot(playwright.PageScreenshotOptions{
		FullPage: &fullPage,
		Timeout:  &timeout,
	})
}

func (p *playwrightPage) AriaSnapshot() (string, error) {
	return p.page.Locator("body").AriaSnapshot()
}

func (p *playwrightPage) Evaluate(expression string) (interface{}, error) {
	return p.page.Evaluate(expression)
}

func (p *playwrightPage) Close() error {
	return p.page.Close()
}
