package browser

import "time"

// State describes where a session is in its lifecycle.
type State string

const (
	// StateCreated means the session exists but its context and page are
	// not yet established.
	StateCreated State = "created"

	// StateReady means the session can accept operations.
	StateReady State = "ready"

	// StateClosed means the session has been terminated. Closed is terminal;
	// all operations on a closed session fail with ErrSessionClosed.
	StateClosed State = "closed"
)

// Viewport represents the browser viewport dimensions.
type Viewport struct {
	Width  int
	Height int
}

// SessionOptions configures a new browser session. Zero values fall back
// to the pool defaults.
type SessionOptions struct {
	// Viewport sets the initial viewport size
	Viewport *Viewport

	// Timeout sets the default timeout for operations (in milliseconds)
	Timeout float64
}

// NavigateOptions configures page navigation behavior.
type NavigateOptions struct {
	// WaitUntil specifies when to consider navigation successful
	// Valid values: "load", "domcontentloaded", "networkidle"
	WaitUntil string

	// Timeout in milliseconds (0 means session default)
	Timeout float64
}

// ClickOptions configures element clicking behavior.
type ClickOptions struct {
	// Button specifies which mouse button to use (left, right, middle)
	Button string

	// ClickCount is the number of times to click (1 for single, 2 for double)
	ClickCount int

	// Force bypasses actionability checks
	Force bool

	// Timeout in milliseconds (0 means session default)
	Timeout float64
}

// FillOptions configures form input filling.
type FillOptions struct {
	// Timeout in milliseconds (0 means session default)
	Timeout float64
}

// SelectOptions configures dropdown option selection.
type SelectOptions struct {
	// Timeout in milliseconds (0 means session default)
	Timeout float64
}

// WaitOptions configures waiting behavior.
type WaitOptions struct {
	// State to wait for: "attached", "detached", "visible", "hidden"
	State string

	// Timeout in milliseconds (0 means session default)
	Timeout float64
}

// ExtractOptions configures element content extraction.
type ExtractOptions struct {
	// Timeout in milliseconds (0 means session default)
	Timeout float64
}

// ScreenshotOptions configures screenshot capture.
type ScreenshotOptions struct {
	// FullPage captures the full scrollable page instead of the viewport
	FullPage bool

	// Timeout in milliseconds (0 means session default)
	Timeout float64
}

// Health is a synchronous snapshot of pool state. Reading it never
// touches the engine or any live page.
type Health struct {
	Initialized  bool `json:"initialized"`
	SessionCount int  `json:"session_count"`
	Capacity     int  `json:"capacity"`
}

// SessionInfo contains metadata about a browser session.
type SessionInfo struct {
	ID         string
	State      State
	CurrentURL string
	Viewport   Viewport
	CreatedAt  time.Time
	LastUsedAt time.Time
}

// Default values for pool configuration and operations
const (
	DefaultTimeout        = 30000.0 // 30 seconds in milliseconds
	DefaultViewportWidth  = 1280
	DefaultViewportHeight = 720
	DefaultMaxSessions    = 10
)
