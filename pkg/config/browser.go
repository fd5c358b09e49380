package config

import (
	"fmt"
	"sync"
)

// Browser engine defaults.
const (
	DefaultBrowserType      = "chromium"
	DefaultMaxSessions      = 10
	DefaultViewportWidth    = 1280
	DefaultViewportHeight   = 720
	DefaultTimeoutMs        = 30000.0
	DefaultHeadless         = true
)

var validBrowserTypes = map[string]bool{
	"chromium": true,
	"firefox":  true,
	"webkit":   true,
}

// BrowserSection configures the browser engine and session pool.
type BrowserSection struct {
	mu               sync.RWMutex
	enabled          bool
	headless         bool
	browserType      string
	maxSessions      int
	viewportWidth    int
	viewportHeight   int
	defaultTimeoutMs float64
}

// NewBrowserSection creates a browser section with default values.
func NewBrowserSection() *BrowserSection {
	s := &BrowserSection{}
	s.Reset()
	return s
}

func (s *BrowserSection) ID() string    { return "browser" }
func (s *BrowserSection) Title() string { return "Browser" }

func (s *BrowserSection) Description() string {
	return "Browser engine selection, session pool capacity, and page defaults"
}

// Data returns the section's current values in serializable form.
func (s *BrowserSection) Data() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return map[string]interface{}{
		"enabled":            s.enabled,
		"headless":           s.headless,
		"browser_type":       s.browserType,
		"max_sessions":       s.maxSessions,
		"viewport_width":     s.viewportWidth,
		"viewport_height":    s.viewportHeight,
		"default_timeout_ms": s.defaultTimeoutMs,
	}
}

// SetData replaces the section's values from serialized form. Unknown
// keys are ignored; known keys with the wrong type are an error.
func (s *BrowserSection) SetData(data map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v, ok := data["enabled"]; ok {
		b, ok := v.(bool)
		if !ok {
			return fmt.Errorf("enabled must be a boolean, got %T", v)
		}
		s.enabled = b
	}

	if v, ok := data["headless"]; ok {
		b, ok := v.(bool)
		if !ok {
			return fmt.Errorf("headless must be a boolean, got %T", v)
		}
		s.headless = b
	}

	if v, ok := data["browser_type"]; ok {
		str, ok := v.(string)
		if !ok {
			return fmt.Errorf("browser_type must be a string, got %T", v)
		}
		s.browserType = str
	}

	if v, ok := data["max_sessions"]; ok {
		n, err := toInt(v)
		if err != nil {
			return fmt.Errorf("max_sessions: %w", err)
		}
		s.maxSessions = n
	}

	if v, ok := data["viewport_width"]; ok {
		n, err := toInt(v)
		if err != nil {
			return fmt.Errorf("viewport_width: %w", err)
		}
		s.viewportWidth = n
	}

	if v, ok := data["viewport_height"]; ok {
		n, err := toInt(v)
		if err != nil {
			return fmt.Errorf("viewport_height: %w", err)
		}
		s.viewportHeight = n
	}

	if v, ok := data["default_timeout_ms"]; ok {
		f, ok := v.(float64)
		if !ok {
			return fmt.Errorf("default_timeout_ms must be a number, got %T", v)
		}
		s.defaultTimeoutMs = f
	}

	return nil
}

// Validate checks that the section's current values are usable.
func (s *BrowserSection) Validate() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !validBrowserTypes[s.browserType] {
		return fmt.Errorf("invalid browser_type %q (expected chromium, firefox, or webkit)", s.browserType)
	}
	if s.maxSessions < 1 {
		return fmt.Errorf("max_sessions must be at least 1, got %d", s.maxSessions)
	}
	if s.viewportWidth < 1 || s.viewportHeight < 1 {
		return fmt.Errorf("viewport dimensions must be positive, got %dx%d", s.viewportWidth, s.viewportHeight)
	}
	if s.defaultTimeoutMs <= 0 {
		return fmt.Errorf("default_timeout_ms must be positive, got %v", s.defaultTimeoutMs)
	}
	return nil
}

// Reset restores the section to its default values.
func (s *BrowserSection) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.enabled = true
	s.headless = DefaultHeadless
	s.browserType = DefaultBrowserType
	s.maxSessions = DefaultMaxSessions
	s.viewportWidth = DefaultViewportWidth
	s.viewportHeight = DefaultViewportHeight
	s.defaultTimeoutMs = DefaultTimeoutMs
}

// Enabled reports whether browser tooling is enabled.
func (s *BrowserSection) Enabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.enabled
}

// Headless reports whether the engine should run without a window.
func (s *BrowserSection) Headless() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.headless
}

// BrowserType returns the configured engine (chromium, firefox, or webkit).
func (s *BrowserSection) BrowserType() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.browserType
}

// MaxSessions returns the session pool capacity.
func (s *BrowserSection) MaxSessions() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.maxSessions
}

// ViewportWidth returns the default viewport width in pixels.
func (s *BrowserSection) ViewportWidth() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.viewportWidth
}

// ViewportHeight returns the default viewport height in pixels.
func (s *BrowserSection) ViewportHeight() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.viewportHeight
}

// DefaultTimeout returns the default operation timeout in milliseconds.
func (s *BrowserSection) DefaultTimeout() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.defaultTimeoutMs
}

// SetHeadless updates the headless flag.
func (s *BrowserSection) SetHeadless(headless bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.headless = headless
}

// SetBrowserType updates the engine selection.
func (s *BrowserSection) SetBrowserType(browserType string) error {
	if !validBrowserTypes[browserType] {
		return fmt.Errorf("invalid browser_type %q (expected chromium, firefox, or webkit)", browserType)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.browserType = browserType
	return nil
}

// SetMaxSessions updates the session pool capacity.
func (s *BrowserSection) SetMaxSessions(n int) error {
	if n < 1 {
		return fmt.Errorf("max_sessions must be at least 1, got %d", n)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.maxSessions = n
	return nil
}

// toInt converts a decoded JSON value to int. JSON numbers decode as
// float64, but int is accepted for values set in-process.
func toInt(v interface{}) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case float64:
		return int(n), nil
	default:
		return 0, fmt.Errorf("must be a number, got %T", v)
	}
}
