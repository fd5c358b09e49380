// Package browser exposes the session pool as a set of XML-argument
// tools for web automation.
//
// Every tool is addressed at a specific session by id: the caller
// creates a session with start_session, passes the returned id to the
// page tools (navigate, click, fill, get_text, screenshot, and so on),
// and releases the pool slot with close_session.
//
// # Outcomes
//
// Tools report domain failures (capacity exhaustion, timeouts, missing
// elements) as typed outcomes with a machine-readable kind, reserving
// the Go error return for malformed invocations. Callers branch on
// Outcome.Kind rather than parsing messages.
//
// # Tool groups
//
// Session lifecycle: start_session, close_session, list_sessions,
// status. These are always safe to call; status in particular never
// blocks on in-flight session creation.
//
// Page interaction: navigate, click, fill, select_option, wait_for.
// Navigation is subject to the configured URL policy.
//
// Extraction and capture: get_text, get_attribute, page_info,
// extract_content, screenshot, snapshot, save_page, evaluate.
package browser
