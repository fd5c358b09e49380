package browser

import (
	"errors"
	"strings"
)

// Error taxonomy for pool and session operations. Callers match with
// errors.Is; every error returned by this package wraps exactly one of
// these sentinels.
var (
	// ErrEngineLaunch indicates the automation engine process could not
	// start. Initialize may be retried after this error.
	ErrEngineLaunch = errors.New("engine launch failed")

	// ErrCapacityExceeded indicates the pool is at its maximum number of
	// concurrent sessions. Remove a session before creating another.
	ErrCapacityExceeded = errors.New("session capacity exceeded")

	// ErrSessionCreation indicates context or page setup failed after a
	// capacity slot was reserved. The slot has been released.
	ErrSessionCreation = errors.New("session creation failed")

	// ErrSessionNotFound indicates the session id is not registered.
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionClosed indicates an operation on a terminated session.
	ErrSessionClosed = errors.New("session closed")

	// ErrOperationTimeout indicates an engine call exceeded its deadline.
	// The session remains usable and the call may be retried.
	ErrOperationTimeout = errors.New("operation timed out")

	// ErrElementNotFound indicates the selector did not resolve to an element.
	ErrElementNotFound = errors.New("element not found")

	// ErrNavigation indicates a non-timeout navigation failure.
	ErrNavigation = errors.New("navigation failed")

	// ErrCapture indicates screenshot, content, snapshot, or script
	// evaluation failed.
	ErrCapture = errors.New("capture failed")
)

// isTimeout reports whether err represents an engine-side deadline expiry.
// Playwright surfaces these as errors whose message carries "Timeout";
// fake engines in tests return ErrOperationTimeout directly.
func isTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrOperationTimeout) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Timeout") || strings.Contains(msg, "timeout")
}
