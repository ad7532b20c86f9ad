// Package session implements the debounced auto-save loop that binds a
// local editor buffer to a remote clipboard.
//
// # Overview
//
// The shared-clipboard editor has one job: whatever the user types should
// end up on the server without an explicit save action, and without a
// request per keystroke. The session does this with a debounce timer:
//
//	keystroke ──► SetContent ──► arm/reset timer
//	keystroke ──► SetContent ──► arm/reset timer
//	keystroke ──► SetContent ──► arm/reset timer
//	                  │
//	            (quiet period)
//	                  │
//	                  ▼
//	            save ──► PUT /api/clips/{id}
//
// A burst of edits collapses into a single save carrying the latest
// content. Because save reads the staged content at execution time, the
// session never persists stale text over newer staged text.
//
// # Save States
//
// The session exposes a four-state status for UI surfaces:
//
//	saved   - the server holds the latest local content
//	pending - edits staged, timer armed
//	saving  - a save request is in flight
//	error   - the last save failed; content stays staged locally
//
// Status changes are delivered through an optional callback, which is how
// the web editor drives its "Saved"/"Saving..."/"Save failed" line.
//
// # Lifecycle
//
// Open binds to an existing clipboard by ID; Create makes a fresh one.
// Flush forces an immediate save (the page-leave path), and Close flushes
// then cancels the timer.
package session
