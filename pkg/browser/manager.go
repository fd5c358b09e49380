package browser

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/entrhq/webpilot/pkg/logging"
)

// SessionManager owns the engine's lifetime and the registry of live
// sessions, and enforces the maximum number of concurrently open
// sessions.
//
// Registry bookkeeping (capacity check-and-reserve, register, remove) is
// guarded by a single mutex and never blocks on the engine. Engine calls
// (launch, context and page creation, close) happen outside that mutex,
// so HealthCheck and GetSession never wait on an in-flight create or
// remove.
type SessionManager struct {
	engine Engine
	log    *logging.Logger

	mu          sync.RWMutex
	sessions    map[string]*Session
	reserved    int
	capacity    int
	initialized bool

	// initMu serializes engine launch and teardown
	initMu sync.Mutex

	defaultViewport Viewport
	defaultTimeout  float64
}

// PoolOptions configures a SessionManager.
type PoolOptions struct {
	// MaxSessions caps the number of concurrently open sessions.
	// Zero means DefaultMaxSessions.
	MaxSessions int

	// Viewport is the default viewport for new sessions.
	Viewport Viewport

	// Timeout is the default operation timeout for new sessions, in
	// milliseconds.
	Timeout float64
}

// NewSessionManager creates a session manager driving the given engine.
// The engine is not launched until Initialize or the first CreateSession.
func NewSessionManager(engine Engine, opts PoolOptions) *SessionManager {
	if opts.MaxSessions <= 0 {
		opts.MaxSessions = DefaultMaxSessions
	}
	if opts.Viewport.Width <= 0 || opts.Viewport.Height <= 0 {
		opts.Viewport = Viewport{Width: DefaultViewportWidth, Height: DefaultViewportHeight}
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}

	log, _ := logging.NewLogger("browser")

	return &SessionManager{
		engine:          engine,
		log:             log,
		sessions:        make(map[string]*Session),
		capacity:        opts.MaxSessions,
		defaultViewport: opts.Viewport,
		defaultTimeout:  opts.Timeout,
	}
}

// Initialize launches the engine if it is not already running. Repeated
// calls are no-ops. On failure the manager stays uninitialized and
// Initialize may be retried.
func (m *SessionManager) Initialize() error {
	m.initMu.Lock()
	defer m.initMu.Unlock()

	m.mu.RLock()
	initialized := m.initialized
	m.mu.RUnlock()
	if initialized {
		return nil
	}

	if err := m.engine.Launch(); err != nil {
		return fmt.Errorf("%w: %v", ErrEngineLaunch, err)
	}

	m.mu.Lock()
	m.initialized = true
	m.mu.Unlock()

	m.log.Infof("engine launched")
	return nil
}

// CreateSession creates a new session, initializing the engine first if
// needed. The capacity check and slot reservation are atomic: concurrent
// creates never jointly exceed capacity. If context or page creation
// fails after the slot was reserved, the reservation is rolled back and
// the call fails with ErrSessionCreation.
func (m *SessionManager) CreateSession(opts SessionOptions) (*Session, error) {
	if err := m.Initialize(); err != nil {
		return nil, err
	}

	viewport := m.defaultViewport
	if opts.Viewport != nil {
		viewport = *opts.Viewport
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = m.defaultTimeout
	}

	// Check-and-reserve is the serialization point for capacity
	m.mu.Lock()
	if len(m.sessions)+m.reserved >= m.capacity {
		count := len(m.sessions)
		m.mu.Unlock()
		return nil, fmt.Errorf("%w: %d of %d sessions in use", ErrCapacityExceeded, count, m.capacity)
	}
	m.reserved++
	m.mu.Unlock()

	context, err := m.engine.NewContext(viewport)
	if err != nil {
		m.release()
		return nil, fmt.Errorf("%w: %v", ErrSessionCreation, err)
	}

	page, err := context.NewPage()
	if err != nil {
		if closeErr := context.Close(); closeErr != nil {
			m.log.Warnf("closing context after page failure: %v", closeErr)
		}
		m.release()
		return nil, fmt.Errorf("%w: %v", ErrSessionCreation, err)
	}

	id := uuid.New().String()
	session := newSession(id, context, page, viewport, timeout)
	session.markReady()

	m.mu.Lock()
	m.reserved--
	m.sessions[id] = session
	m.mu.Unlock()

	m.log.Infof("session %s created (%dx%d, timeout %.0fms)", id, viewport.Width, viewport.Height, timeout)
	return session, nil
}

// release rolls back a reserved capacity slot after a failed create.
func (m *SessionManager) release() {
	m.mu.Lock()
	m.reserved--
	m.mu.Unlock()
}

// RemoveSession closes a session and deletes it from the registry,
// freeing one capacity slot. Close failures are logged, not raised.
// A second call with the same id fails with ErrSessionNotFound.
func (m *SessionManager) RemoveSession(id string) error {
	m.mu.Lock()
	session, exists := m.sessions[id]
	if !exists {
		m.mu.Unlock()
		return fmt.Errorf("session %q: %w", id, ErrSessionNotFound)
	}
	delete(m.sessions, id)
	m.mu.Unlock()

	if err := session.Close(); err != nil {
		m.log.Warnf("closing session %s: %v", id, err)
	}

	m.log.Infof("session %s removed", id)
	return nil
}

// GetSession retrieves an active session by id.
func (m *SessionManager) GetSession(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, exists := m.sessions[id]
	if !exists {
		return nil, fmt.Errorf("session %q: %w", id, ErrSessionNotFound)
	}
	return session, nil
}

// HealthCheck returns a snapshot of pool state. It reads pool-local
// bookkeeping only and never invokes the engine or any session's page.
func (m *SessionManager) HealthCheck() Health {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return Health{
		Initialized:  m.initialized,
		SessionCount: len(m.sessions),
		Capacity:     m.capacity,
	}
}

// ListSessions returns metadata for all registered sessions.
func (m *SessionManager) ListSessions() []SessionInfo {
	m.mu.RLock()
	sessions := make([]*Session, 0, len(m.sessions))
	for _, session := range m.sessions {
		sessions = append(sessions, session)
	}
	m.mu.RUnlock()

	infos := make([]SessionInfo, 0, len(sessions))
	for _, session := range sessions {
		infos = append(infos, session.Info())
	}
	return infos
}

// HasSessions returns true if there are any active sessions.
func (m *SessionManager) HasSessions() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions) > 0
}

// Cleanup closes every registered session, continuing past individual
// close failures, then shuts the engine down if it was launched. Safe to
// call when never initialized or more than once; failures are logged and
// never surface to the caller.
func (m *SessionManager) Cleanup() {
	m.initMu.Lock()
	defer m.initMu.Unlock()

	m.mu.Lock()
	sessions := m.sessions
	m.sessions = make(map[string]*Session)
	initialized := m.initialized
	m.initialized = false
	m.mu.Unlock()

	for id, session := range sessions {
		if err := session.Close(); err != nil {
			m.log.Warnf("cleanup: closing session %s: %v", id, err)
		}
	}

	if initialized {
		if err := m.engine.Close(); err != nil {
			m.log.Warnf("cleanup: closing engine: %v", err)
		}
		m.log.Infof("engine shut down")
	}
}
