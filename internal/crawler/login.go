package crawler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/BenjaminSRussell/siteaudit/internal/logging"
	"github.com/BenjaminSRussell/siteaudit/internal/renderer"
	"github.com/BenjaminSRussell/siteaudit/internal/types"
)

// LoginState is where the login gate ended up
type LoginState int

const (
	LoginNotRequired LoginState = iota
	LoginAwaiting
	LoginSatisfied
	LoginTimedOut
)

func (s LoginState) String() string {
	switch s {
	case LoginNotRequired:
		return "not-required"
	case LoginAwaiting:
		return "awaiting"
	case LoginSatisfied:
		return "satisfied"
	case LoginTimedOut:
		return "timed-out"
	}
	return fmt.Sprintf("LoginState(%d)", int(s))
}

// LoginGate waits for a human to log in through the visible browser
type LoginGate struct {
	config types.Config
	sink   logging.Sink
	state  LoginState
}

// NewLoginGate creates a gate for config
func NewLoginGate(config types.Config, sink logging.Sink) *LoginGate {
	if sink == nil {
		sink = logging.Discard
	}
	return &LoginGate{config: config, sink: sink, state: LoginNotRequired}
}

// State returns the gate's current state
func (g *LoginGate) State() LoginState {
	return g.state
}

// Run blocks until login is detected, the timeout passes or ctx is cancelled.
// Only failing to open the login page is returned as an error; a timeout
// falls through so the crawl proceeds with whatever session exists.
func (g *LoginGate) Run(ctx context.Context, page renderer.Page) (LoginState, error) {
	if !g.config.UseLogin {
		g.state = LoginNotRequired
		g.openBase(ctx, page)
		return g.state, nil
	}

	loginURL := g.config.EffectiveLoginURL()
	logging.Emitf(g.sink, "Opening login page: %s", loginURL)

	if err := page.Navigate(ctx, loginURL, g.config.NavigationTimeout); err != nil {
		return g.state, fmt.Errorf("failed to open login page: %w", err)
	}

	g.state = LoginAwaiting
	g.sink.Emit("*** Log in using the browser window, then go to the start URL. The crawl begins once that page is detected. ***")

	deadline := time.Now().Add(g.config.LoginTimeout)
	interval := g.config.LoginPollInterval
	if interval <= 0 {
		interval = 2 * time.Second
	}

	for {
		current, err := page.URL(ctx)
		if err == nil && LoginSatisfiedBy(current, g.config.BaseURL, loginURL) {
			g.state = LoginSatisfied
			g.sink.Emit("Start page detected, starting crawl")
			return g.state, nil
		}

		if !time.Now().Before(deadline) {
			g.state = LoginTimedOut
			logging.Emitf(g.sink, "WARNING: login not detected within %v, continuing without confirmed login", g.config.LoginTimeout)
			return g.state, nil
		}

		if err := sleepCtx(ctx, interval); err != nil {
			return g.state, err
		}
	}
}

// LoginSatisfiedBy reports whether the browser at current has left the login
// page for the site. All three URLs are compared in canonical form.
func LoginSatisfiedBy(current, baseURL, loginURL string) bool {
	current = canonicalURL(current)
	baseURL = canonicalURL(baseURL)
	loginURL = canonicalURL(loginURL)

	if current == baseURL {
		return true
	}
	return strings.HasPrefix(current, baseURL) && current != loginURL
}

func (g *LoginGate) openBase(ctx context.Context, page renderer.Page) {
	if err := page.Navigate(ctx, g.config.BaseURL, g.config.NavigationTimeout); err != nil {
		logging.Emitf(g.sink, "Initial page load error: %v", err)
		return
	}
	if err := page.WaitForLoadState(ctx, renderer.LoadStateDOMContentLoaded, g.config.NavigationTimeout); err != nil {
		logging.Emitf(g.sink, "Initial page load error: %v", err)
	}
}

// sleepCtx waits for d or until ctx is done
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
