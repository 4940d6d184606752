package renderer

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
)

const (
	pollInterval     = 100 * time.Millisecond
	elementOpTimeout = 5 * time.Second
	locateTimeout    = 10 * time.Second
)

// ChromeOptions configures the Chrome process
type ChromeOptions struct {
	Headless bool
	ExecPath string
	Profile  BrowserProfile
}

// ChromeLauncher starts Chrome through chromedp
type ChromeLauncher struct {
	Options ChromeOptions
}

// NewChromeLauncher creates a launcher for the given options
func NewChromeLauncher(opts ChromeOptions) *ChromeLauncher {
	if opts.Profile.UserAgent == "" {
		opts.Profile = DesktopProfile
	}
	return &ChromeLauncher{Options: opts}
}

// Launch creates the exec allocator; Chrome itself starts with the first page
func (l *ChromeLauncher) Launch(ctx context.Context) (Browser, error) {
	profile := l.Options.Profile

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", l.Options.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("lang", profile.primaryLanguage()),
		chromedp.UserAgent(profile.UserAgent),
		chromedp.WindowSize(profile.WindowWidth, profile.WindowHeight),
	)
	if l.Options.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(l.Options.ExecPath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)

	return &ChromeBrowser{
		allocCtx:    allocCtx,
		allocCancel: allocCancel,
	}, nil
}

// ChromeBrowser is a running (or lazily started) Chrome instance
type ChromeBrowser struct {
	allocCtx    context.Context
	allocCancel context.CancelFunc

	mu    sync.Mutex
	pages []*ChromePage
}

// NewPage opens a tab. This is where a missing or broken Chrome surfaces.
func (cb *ChromeBrowser) NewPage(ctx context.Context) (Page, error) {
	tabCtx, tabCancel := chromedp.NewContext(cb.allocCtx)

	p := &ChromePage{
		ctx:    tabCtx,
		cancel: tabCancel,
		events: make(map[cdp.FrameID]map[string]bool),
	}
	chromedp.ListenTarget(tabCtx, p.onEvent)

	if err := chromedp.Run(tabCtx, page.SetLifecycleEventsEnabled(true)); err != nil {
		tabCancel()
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}

	cb.mu.Lock()
	cb.pages = append(cb.pages, p)
	cb.mu.Unlock()

	return p, nil
}

// Close closes every tab and the browser process
func (cb *ChromeBrowser) Close() error {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	for _, p := range cb.pages {
		p.cancel()
	}
	cb.pages = nil

	if cb.allocCancel != nil {
		cb.allocCancel()
	}
	return nil
}

// ChromePage drives one Chrome tab
type ChromePage struct {
	ctx    context.Context
	cancel context.CancelFunc

	// lifecycle events per frame, written from the chromedp event goroutine
	mu     sync.Mutex
	events map[cdp.FrameID]map[string]bool
}

func (p *ChromePage) onEvent(ev interface{}) {
	e, ok := ev.(*page.EventLifecycleEvent)
	if !ok {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if e.Name == "init" || p.events[e.FrameID] == nil {
		p.events[e.FrameID] = make(map[string]bool)
	}
	p.events[e.FrameID][e.Name] = true
}

func (p *ChromePage) sawEvent(frame cdp.FrameID, name string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.events[frame][name]
}

// run executes actions on the tab, bounded by timeout and by the caller's ctx
func (p *ChromePage) run(ctx context.Context, timeout time.Duration, actions ...chromedp.Action) error {
	runCtx, cancel := context.WithCancel(p.ctx)
	defer cancel()

	if timeout > 0 {
		var timeoutCancel context.CancelFunc
		runCtx, timeoutCancel = context.WithTimeout(runCtx, timeout)
		defer timeoutCancel()
	}

	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	return chromedp.Run(runCtx, actions...)
}

// Navigate loads url and waits for the load event
func (p *ChromePage) Navigate(ctx context.Context, url string, timeout time.Duration) error {
	if err := p.run(ctx, timeout, chromedp.Navigate(url)); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrNavigation, url, err)
	}
	return nil
}

// WaitForLoadState blocks until the main frame reaches state
func (p *ChromePage) WaitForLoadState(ctx context.Context, state LoadState, timeout time.Duration) error {
	switch state {
	case LoadStateDOMContentLoaded, LoadStateLoad:
		return pollUntil(ctx, timeout, pollInterval, func(ctx context.Context) (bool, error) {
			var readyState string
			if err := p.run(ctx, 0, chromedp.Evaluate(`document.readyState`, &readyState)); err != nil {
				return false, err
			}
			if state == LoadStateLoad {
				return readyState == "complete", nil
			}
			return readyState != "loading", nil
		})

	case LoadStateNetworkIdle:
		var frame cdp.FrameID
		err := p.run(ctx, elementOpTimeout, chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			frame = tree.Frame.ID
			return nil
		}))
		if err != nil {
			return fmt.Errorf("failed to resolve main frame: %w", err)
		}
		return pollUntil(ctx, timeout, pollInterval, func(ctx context.Context) (bool, error) {
			return p.sawEvent(frame, "networkIdle"), nil
		})
	}

	return fmt.Errorf("%w: load state %q", ErrUnsupported, state)
}

// Title returns document.title
func (p *ChromePage) Title(ctx context.Context) (string, error) {
	var title string
	if err := p.run(ctx, elementOpTimeout, chromedp.Title(&title)); err != nil {
		return "", fmt.Errorf("failed to read title: %w", err)
	}
	return title, nil
}

// URL returns the current document location
func (p *ChromePage) URL(ctx context.Context) (string, error) {
	var location string
	if err := p.run(ctx, elementOpTimeout, chromedp.Location(&location)); err != nil {
		return "", fmt.Errorf("failed to read location: %w", err)
	}
	return location, nil
}

// Evaluate runs script and decodes the JSON result into out
func (p *ChromePage) Evaluate(ctx context.Context, script string, out any) error {
	awaitPromise := func(params *runtime.EvaluateParams) *runtime.EvaluateParams {
		return params.WithAwaitPromise(true)
	}

	if out == nil {
		return p.run(ctx, 0, chromedp.Evaluate(script, nil, awaitPromise))
	}

	var raw json.RawMessage
	if err := p.run(ctx, 0, chromedp.Evaluate(script, &raw, awaitPromise)); err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

// LocateAll returns every node matching selector without waiting for one to appear
func (p *ChromePage) LocateAll(ctx context.Context, selector string) ([]Element, error) {
	var nodes []*cdp.Node
	err := p.run(ctx, locateTimeout, chromedp.Nodes(selector, &nodes, chromedp.ByQueryAll, chromedp.AtLeast(0)))
	if err != nil {
		return nil, fmt.Errorf("failed to locate %q: %w", selector, err)
	}

	elements := make([]Element, 0, len(nodes))
	for _, n := range nodes {
		elements = append(elements, &chromeElement{page: p, id: n.NodeID})
	}
	return elements, nil
}

// InjectScript evaluates inline source or appends a script tag and waits for it to load
func (p *ChromePage) InjectScript(ctx context.Context, script Script) error {
	if script.Content != "" {
		// end on a plain value so the library object itself is never serialized
		return p.Evaluate(ctx, script.Content+"\n;true", nil)
	}
	if script.URL == "" {
		return fmt.Errorf("empty script")
	}

	src, err := json.Marshal(script.URL)
	if err != nil {
		return err
	}
	loader := fmt.Sprintf(`new Promise((resolve, reject) => {
		const s = document.createElement('script');
		s.src = %s;
		s.onload = () => resolve(true);
		s.onerror = () => reject(new Error('failed to load ' + s.src));
		(document.head || document.documentElement).appendChild(s);
	})`, src)

	return p.Evaluate(ctx, loader, nil)
}

// WaitForFunction polls expression until it is truthy
func (p *ChromePage) WaitForFunction(ctx context.Context, expression string, timeout time.Duration) error {
	script := fmt.Sprintf("Boolean(%s)", expression)
	return pollUntil(ctx, timeout, pollInterval, func(ctx context.Context) (bool, error) {
		var ok bool
		if err := p.Evaluate(ctx, script, &ok); err != nil {
			return false, err
		}
		return ok, nil
	})
}

type chromeElement struct {
	page *ChromePage
	id   cdp.NodeID
}

func (e *chromeElement) InnerText(ctx context.Context) (string, error) {
	var text string
	err := e.page.run(ctx, elementOpTimeout,
		chromedp.JavascriptAttribute([]cdp.NodeID{e.id}, "innerText", &text, chromedp.ByNodeID))
	if err != nil {
		return "", err
	}
	return text, nil
}

func (e *chromeElement) Attribute(ctx context.Context, name string) (string, bool, error) {
	var (
		value string
		ok    bool
	)
	err := e.page.run(ctx, elementOpTimeout,
		chromedp.AttributeValue([]cdp.NodeID{e.id}, name, &value, &ok, chromedp.ByNodeID))
	if err != nil {
		return "", false, err
	}
	return value, ok, nil
}
