package browser

import (
	"errors"

	"github.com/entrhq/webpilot/pkg/browser"
	"github.com/entrhq/webpilot/pkg/tools"
)

// Failure kinds reported in tool outcomes. These mirror the pool's
// error taxonomy so callers can branch without parsing messages.
const (
	KindEngineLaunch     = "engine_launch"
	KindCapacityExceeded = "capacity_exceeded"
	KindSessionCreation  = "session_creation"
	KindSessionNotFound  = "session_not_found"
	KindSessionClosed    = "session_closed"
	KindOperationTimeout = "operation_timeout"
	KindElementNotFound  = "element_not_found"
	KindNavigation       = "navigation"
	KindCapture          = "capture"
	KindNavigationDenied = "navigation_denied"
	KindUnknown          = "unknown"
)

// failureKind maps a pool or session error to its outcome kind.
func failureKind(err error) string {
	switch {
	case errors.Is(err, browser.ErrEngineLaunch):
		return KindEngineLaunch
	case errors.Is(err, browser.ErrCapacityExceeded):
		return KindCapacityExceeded
	case errors.Is(err, browser.ErrSessionCreation):
		return KindSessionCreation
	case errors.Is(err, browser.ErrSessionNotFound):
		return KindSessionNotFound
	case errors.Is(err, browser.ErrSessionClosed):
		return KindSessionClosed
	case errors.Is(err, browser.ErrOperationTimeout):
		return KindOperationTimeout
	case errors.Is(err, browser.ErrElementNotFound):
		return KindElementNotFound
	case errors.Is(err, browser.ErrNavigation):
		return KindNavigation
	case errors.Is(err, browser.ErrCapture):
		return KindCapture
	default:
		return KindUnknown
	}
}

// failure builds an error outcome classified from the given error.
func failure(err error) *tools.Outcome {
	return tools.Fail(failureKind(err), err.Error())
}
