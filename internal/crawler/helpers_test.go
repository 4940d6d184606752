package crawler

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/BenjaminSRussell/siteaudit/internal/renderer"
	"github.com/BenjaminSRussell/siteaudit/internal/types"
)

// sitePage is one page served by fakePage
type sitePage struct {
	Title string
	Links []string
}

// fakePage is an in-memory renderer.Page over a fixed set of pages
type fakePage struct {
	pages     map[string]sitePage
	failNav   map[string]bool
	panicNav  map[string]bool
	elements  map[string][]renderer.Element
	locateErr map[string]error
	evalErr   error
	idleErr   error

	// urlSequence is returned by URL() one entry per call, the last one repeating
	urlSequence []string

	mu        sync.Mutex
	current   string
	navigated []string
	located   []string
}

func newFakePage(pages map[string]sitePage) *fakePage {
	return &fakePage{
		pages:     pages,
		failNav:   make(map[string]bool),
		panicNav:  make(map[string]bool),
		elements:  make(map[string][]renderer.Element),
		locateErr: make(map[string]error),
	}
}

func (p *fakePage) Navigate(ctx context.Context, url string, timeout time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p.mu.Lock()
	p.navigated = append(p.navigated, url)
	p.mu.Unlock()

	if p.panicNav[url] {
		panic("renderer crashed on " + url)
	}
	if p.failNav[url] {
		return fmt.Errorf("%w: %s: net::ERR_CONNECTION_REFUSED", renderer.ErrNavigation, url)
	}
	if _, ok := p.pages[url]; !ok {
		return fmt.Errorf("%w: %s: not found", renderer.ErrNavigation, url)
	}

	p.current = url
	return nil
}

func (p *fakePage) WaitForLoadState(ctx context.Context, state renderer.LoadState, timeout time.Duration) error {
	if state == renderer.LoadStateNetworkIdle && p.idleErr != nil {
		return p.idleErr
	}
	return ctx.Err()
}

func (p *fakePage) Title(ctx context.Context) (string, error) {
	return p.pages[p.current].Title, nil
}

func (p *fakePage) URL(ctx context.Context) (string, error) {
	if len(p.urlSequence) > 0 {
		u := p.urlSequence[0]
		if len(p.urlSequence) > 1 {
			p.urlSequence = p.urlSequence[1:]
		}
		return u, nil
	}
	if p.current == "" {
		return "about:blank", nil
	}
	return p.current, nil
}

func (p *fakePage) Evaluate(ctx context.Context, script string, out any) error {
	if p.evalErr != nil {
		return p.evalErr
	}
	if script != renderer.ScriptAnchorHrefs {
		return renderer.ErrUnsupported
	}

	links := p.pages[p.current].Links
	if links == nil {
		links = []string{}
	}
	data, err := json.Marshal(links)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

func (p *fakePage) LocateAll(ctx context.Context, selector string) ([]renderer.Element, error) {
	p.located = append(p.located, selector)
	if err := p.locateErr[selector]; err != nil {
		return nil, err
	}
	return p.elements[selector], nil
}

func (p *fakePage) InjectScript(ctx context.Context, script renderer.Script) error {
	return nil
}

func (p *fakePage) WaitForFunction(ctx context.Context, expression string, timeout time.Duration) error {
	return nil
}

// fakeElement is a navigation anchor
type fakeElement struct {
	text    string
	href    string
	hasHref bool
}

func anchor(text, href string) renderer.Element {
	return fakeElement{text: text, href: href, hasHref: true}
}

func (e fakeElement) InnerText(ctx context.Context) (string, error) {
	return e.text, nil
}

func (e fakeElement) Attribute(ctx context.Context, name string) (string, bool, error) {
	if name != "href" || !e.hasHref {
		return "", false, nil
	}
	return e.href, true, nil
}

// fakeLauncher hands out a single fakePage
type fakeLauncher struct {
	page       *fakePage
	launchErr  error
	newPageErr error
	closed     bool
}

func (l *fakeLauncher) Launch(ctx context.Context) (renderer.Browser, error) {
	if l.launchErr != nil {
		return nil, l.launchErr
	}
	return &fakeBrowser{launcher: l}, nil
}

type fakeBrowser struct {
	launcher *fakeLauncher
}

func (b *fakeBrowser) NewPage(ctx context.Context) (renderer.Page, error) {
	if b.launcher.newPageErr != nil {
		return nil, b.launcher.newPageErr
	}
	return b.launcher.page, nil
}

func (b *fakeBrowser) Close() error {
	b.launcher.closed = true
	return nil
}

// fakeAuditor returns canned violations per URL
type fakeAuditor struct {
	violations map[string][]types.Violation
	errs       map[string]error
	calls      int
}

func (a *fakeAuditor) Run(ctx context.Context, page renderer.Page) ([]types.Violation, error) {
	a.calls++
	current, err := page.URL(ctx)
	if err != nil {
		return nil, err
	}
	if err := a.errs[current]; err != nil {
		return nil, err
	}
	return a.violations[current], nil
}

// recordingSink collects emitted messages
type recordingSink struct {
	mu       sync.Mutex
	messages []string
}

func (s *recordingSink) Emit(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, message)
}

func (s *recordingSink) contains(substr string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.messages {
		if strings.Contains(m, substr) {
			return true
		}
	}
	return false
}

func testConfig(baseURL string) types.Config {
	config := types.DefaultConfig()
	config.BaseURL = baseURL
	config.PageDelay = 0
	config.LoginPollInterval = time.Millisecond
	config.LoginTimeout = 50 * time.Millisecond
	return config
}
