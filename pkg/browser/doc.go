// Package browser provides the session lifecycle core of webpilot: an
// engine abstraction over Playwright, a session wrapper around one
// browsing context and page, and a capacity-bounded session pool.
//
// # Architecture
//
// The package is built around three core concepts:
//
// 1. Engine: the browser automation capability (process launch, context
// creation), implemented by PlaywrightEngine and faked in tests
//
// 2. Session: one isolated browsing context plus page, exposing the
// navigation, interaction, extraction, and capture operations
//
// 3. SessionManager: the pool that owns the engine's lifetime, bounds the
// number of concurrently open sessions, and reports health without
// blocking
//
// # Session Lifecycle
//
// Sessions follow created -> ready -> closed. The pool creates them and
// hands them out in ready state; RemoveSession or Cleanup transitions
// them to closed. Closing is terminal and idempotent, and every
// operation on a closed session fails with ErrSessionClosed without
// contacting the engine.
//
// # Concurrency
//
// Registry bookkeeping is synchronous under a single mutex per pool;
// engine-facing calls are the only suspension points and run outside
// that mutex. The capacity check-and-reserve in CreateSession is the
// serialization point: two concurrent creates never jointly exceed
// capacity.
//
// # Timeouts
//
// Every engine-facing call carries a deadline resolved as per-call
// override, else session default, else pool default. A timeout surfaces
// as ErrOperationTimeout and leaves the session usable.
//
// # Example Usage
//
//	engine := browser.NewPlaywrightEngine("chromium", true)
//	pool := browser.NewSessionManager(engine, browser.PoolOptions{MaxSessions: 5})
//	defer pool.Cleanup()
//
//	session, err := pool.CreateSession(browser.SessionOptions{})
//	if err != nil {
//		return err
//	}
//
//	err = session.Navigate("https://example.com", browser.NavigateOptions{
//		WaitUntil: "networkidle",
//	})
//	text, err := session.Text("h1", browser.ExtractOptions{})
//
//	err = pool.RemoveSession(session.ID())
package browser
