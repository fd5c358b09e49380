package browser

// Engine is the browser automation capability the pool drives. It owns a
// single browser process and hands out isolated browsing contexts. Only
// the SessionManager launches or terminates an Engine; sessions own the
// contexts and pages created from it.
//
// The production implementation is PlaywrightEngine. Tests substitute
// in-memory fakes.
type Engine interface {
	// Launch starts the browser process. Calling Launch on an already
	// launched engine is an error; the pool guards against it.
	Launch() error

	// NewContext creates an isolated browsing context with the given
	// viewport.
	NewContext(viewport Viewport) (BrowserContext, error)

	// Close terminates the browser process and releases all resources.
	Close() error
}

// BrowserContext is an isolated browsing context within the engine.
// Each session owns exactly one.
type BrowserContext interface {
	// NewPage opens a page within this context.
	NewPage() (Page, error)

	// Close destroys the context and every page in it.
	Close() error
}

// Page is the interaction surface of a single page. All timeouts are in
// milliseconds and are resolved by the session before the call crosses
// into the engine; implementations must honor them as hard deadlines.
type Page interface {
	// Goto navigates to url and waits for waitUntil ("load",
	// "domcontentloaded", "networkidle").
	Goto(url, waitUntil string, timeout float64) error

	// Click clicks the first element matching selector.
	Click(selector string, opts ClickOptions) error

	// Fill sets the value of the input matching selector.
	Fill(selector, value string, timeout float64) error

	// SelectOption selects the option with the given value in the
	// dropdown matching selector.
	SelectOption(selector, value string, timeout float64) error

	// WaitForSelector waits until the element matching selector reaches
	// state ("attached", "detached", "visible", "hidden").
	WaitForSelector(selector, state string, timeout float64) error

	// TextContent waits for selector and returns its text content.
	// An element with no text yields an empty string, not an error.
	TextContent(selector string, timeout float64) (string, error)

	// GetAttribute waits for selector and returns the attribute value.
	// A missing attribute yields an empty string, not an error.
	GetAttribute(selector, attribute string, timeout float64) (string, error)

	// Title returns the page title.
	Title() (string, error)

	// URL returns the current page URL.
	URL() string

	// Content returns the full rendered HTML of the page.
	Content() (string, error)

	// Screenshot captures the page as PNG bytes.
	Screenshot(fullPage bool, timeout float64) ([]byte, error)

	// AriaSnapshot returns the accessibility tree of the page body as a
	// YAML-like string.
	AriaSnapshot() (string, error)

	// Evaluate runs a JavaScript expression in the page and returns its
	// result.
	Evaluate(expression string) (interface{}, error)

	// Close closes the page.
	Close() error
}
