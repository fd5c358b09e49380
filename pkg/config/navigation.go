package config

import (
	"fmt"
	"sync"

	"github.com/gobwas/glob"
)

// SectionIDNavigation is the identifier for the navigation policy section.
const SectionIDNavigation = "navigation"

// NavigationSection controls which URLs sessions may navigate to.
// Denied patterns take precedence over allowed patterns, and an empty
// allow list permits every URL not explicitly denied.
type NavigationSection struct {
	mu              sync.RWMutex
	allowedURLs     []string
	deniedURLs      []string
	allowedPatterns []glob.Glob
	deniedPatterns  []glob.Glob
}

// NewNavigationSection creates a navigation section that allows all URLs.
func NewNavigationSection() *NavigationSection {
	s := &NavigationSection{}
	s.Reset()
	return s
}

func (s *NavigationSection) ID() string    { return SectionIDNavigation }
func (s *NavigationSection) Title() string { return "Navigation Policy" }

func (s *NavigationSection) Description() string {
	return "URL patterns that browser sessions are allowed or denied to navigate to"
}

// Data returns the current configuration data.
func (s *NavigationSection) Data() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	allowed := make([]interface{}, len(s.allowedURLs))
	for i, p := range s.allowedURLs {
		allowed[i] = p
	}
	denied := make([]interface{}, len(s.deniedURLs))
	for i, p := range s.deniedURLs {
		denied[i] = p
	}

	return map[string]interface{}{
		"allowed_urls": allowed,
		"denied_urls":  denied,
	}
}

// SetData updates the configuration from the provided data. Patterns
// are compiled eagerly so invalid globs fail here rather than at
// navigation time.
func (s *NavigationSection) SetData(data map[string]interface{}) error {
	if data == nil {
		return nil
	}

	allowed, err := stringPatterns(data, "allowed_urls")
	if err != nil {
		return err
	}
	denied, err := stringPatterns(data, "denied_urls")
	if err != nil {
		return err
	}

	allowedCompiled, err := compilePatterns(allowed)
	if err != nil {
		return err
	}
	deniedCompiled, err := compilePatterns(denied)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if allowed != nil {
		s.allowedURLs = allowed
		s.allowedPatterns = allowedCompiled
	}
	if denied != nil {
		s.deniedURLs = denied
		s.deniedPatterns = deniedCompiled
	}

	return nil
}

// Validate checks that all configured patterns compile.
func (s *NavigationSection) Validate() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, err := compilePatterns(s.allowedURLs); err != nil {
		return err
	}
	if _, err := compilePatterns(s.deniedURLs); err != nil {
		return err
	}
	return nil
}

// Reset restores the section to its default values (allow everything).
func (s *NavigationSection) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.allowedURLs = nil
	s.deniedURLs = nil
	s.allowedPatterns = nil
	s.deniedPatterns = nil
}

// IsAllowed reports whether a URL passes the navigation policy.
func (s *NavigationSection) IsAllowed(url string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, pattern := range s.deniedPatterns {
		if pattern.Match(url) {
			return false
		}
	}

	if len(s.allowedPatterns) == 0 {
		return true
	}

	for _, pattern := range s.allowedPatterns {
		if pattern.Match(url) {
			return true
		}
	}

	return false
}

// AllowedURLs returns the configured allow patterns.
func (s *NavigationSection) AllowedURLs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.allowedURLs...)
}

// DeniedURLs returns the configured deny patterns.
func (s *NavigationSection) DeniedURLs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.deniedURLs...)
}

// SetAllowedURLs replaces the allow patterns.
func (s *NavigationSection) SetAllowedURLs(patterns []string) error {
	compiled, err := compilePatterns(patterns)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.allowedURLs = append([]string(nil), patterns...)
	s.allowedPatterns = compiled
	return nil
}

// SetDeniedURLs replaces the deny patterns.
func (s *NavigationSection) SetDeniedURLs(patterns []string) error {
	compiled, err := compilePatterns(patterns)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.deniedURLs = append([]string(nil), patterns...)
	s.deniedPatterns = compiled
	return nil
}

func stringPatterns(data map[string]interface{}, key string) ([]string, error) {
	raw, ok := data[key]
	if !ok {
		return nil, nil
	}

	slice, ok := raw.([]interface{})
	if !ok {
		return nil, fmt.Errorf("invalid %s type: expected []interface{}, got %T", key, raw)
	}

	patterns := make([]string, 0, len(slice))
	for i, item := range slice {
		pattern, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("invalid %s entry at index %d: expected string, got %T", key, i, item)
		}
		patterns = append(patterns, pattern)
	}
	return patterns, nil
}

func compilePatterns(patterns []string) ([]glob.Glob, error) {
	compiled := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid URL pattern '%s': %w", pattern, err)
		}
		compiled = append(compiled, g)
	}
	return compiled, nil
}
