// Package browser abstracts the headless-browser capability the pipeline
// drives: open a session, navigate with a timeout, read rendered content,
// close. The chromedp implementation is the production driver; tests use a
// fixture-backed fake.
package browser

import (
	"context"
	"errors"
)

var (
	// ErrNavigationTimeout marks a navigation that did not settle within
	// the configured timeout. It is retryable.
	ErrNavigationTimeout = errors.New("browser: navigation timeout")

	// ErrSessionClosed is returned by operations on a closed session.
	ErrSessionClosed = errors.New("browser: session closed")
)

// Session is one live browser handle. A session belongs to exactly one
// worker for the worker's lifetime and is never shared.
type Session interface {
	// Navigate loads url and waits for the document body to be ready.
	Navigate(ctx context.Context, url string) error

	// Title returns the current document title.
	Title(ctx context.Context) (string, error)

	// HTML returns the rendered outer HTML of the first node matching the
	// CSS selector.
	HTML(ctx context.Context, selector string) (string, error)

	// Click clicks the first visible node matching the CSS selector.
	Click(ctx context.Context, selector string) error

	// Close releases the session. Safe to call more than once and after a
	// failed open.
	Close() error
}

// Factory opens new sessions. Workers acquire one session at start and
// reacquire through the same factory if theirs dies mid-run.
type Factory interface {
	NewSession(ctx context.Context) (Session, error)
}
