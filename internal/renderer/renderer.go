package renderer

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNavigation wraps every failed page load
	ErrNavigation = errors.New("navigation failed")
	// ErrUnsupported is returned by backends that lack a capability
	ErrUnsupported = errors.New("operation not supported by backend")
	// ErrTimeout is returned when a wait exceeds its deadline
	ErrTimeout = errors.New("wait timed out")
)

// LoadState names a page lifecycle milestone
type LoadState string

const (
	LoadStateDOMContentLoaded LoadState = "domcontentloaded"
	LoadStateLoad             LoadState = "load"
	LoadStateNetworkIdle      LoadState = "networkidle"
)

// ScriptAnchorHrefs returns the resolved href of every anchor in the document
const ScriptAnchorHrefs = `Array.from(document.querySelectorAll('a')).map(a => a.href)`

// Launcher starts a browser backend
type Launcher interface {
	Launch(ctx context.Context) (Browser, error)
}

// Browser owns the backend process or client
type Browser interface {
	NewPage(ctx context.Context) (Page, error)
	Close() error
}

// Page is a single tab driven sequentially by one crawl session
type Page interface {
	Navigate(ctx context.Context, url string, timeout time.Duration) error
	WaitForLoadState(ctx context.Context, state LoadState, timeout time.Duration) error
	Title(ctx context.Context) (string, error)
	URL(ctx context.Context) (string, error)
	// Evaluate runs script in the page and decodes its JSON result into out.
	// Promises are awaited. out may be nil.
	Evaluate(ctx context.Context, script string, out any) error
	LocateAll(ctx context.Context, selector string) ([]Element, error)
	InjectScript(ctx context.Context, script Script) error
	WaitForFunction(ctx context.Context, expression string, timeout time.Duration) error
}

// Element is a DOM node returned by LocateAll
type Element interface {
	InnerText(ctx context.Context) (string, error)
	Attribute(ctx context.Context, name string) (string, bool, error)
}

// Script is either inline source or a remote URL to load into the page
type Script struct {
	Content string
	URL     string
}

// pollUntil calls check every interval until it reports done or timeout elapses
func pollUntil(ctx context.Context, timeout, interval time.Duration, check func(ctx context.Context) (bool, error)) error {
	waitCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	expired := func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		return ErrTimeout
	}

	for {
		done, err := check(waitCtx)
		if err != nil {
			if waitCtx.Err() != nil {
				return expired()
			}
			return err
		}
		if done {
			return nil
		}

		select {
		case <-waitCtx.Done():
			return expired()
		case <-ticker.C:
		}
	}
}
