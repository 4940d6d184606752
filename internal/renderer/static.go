package renderer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/BenjaminSRussell/siteaudit/internal/parser"
)

const maxStaticBodyBytes = 16 << 20

// StaticLauncher serves pages over plain HTTP without running scripts.
// Useful for server-rendered sites and for machines without Chrome; it cannot
// run the accessibility engine.
type StaticLauncher struct {
	Client  *http.Client
	Profile BrowserProfile
}

// NewStaticLauncher creates a launcher; a nil client gets sane defaults
func NewStaticLauncher(client *http.Client, profile BrowserProfile) *StaticLauncher {
	if client == nil {
		client = &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		}
	}
	if profile.UserAgent == "" {
		profile = DesktopProfile
	}
	return &StaticLauncher{Client: client, Profile: profile}
}

// Launch returns a browser sharing the launcher's client
func (l *StaticLauncher) Launch(ctx context.Context) (Browser, error) {
	return &staticBrowser{client: l.Client, profile: l.Profile}, nil
}

type staticBrowser struct {
	client  *http.Client
	profile BrowserProfile
}

func (b *staticBrowser) NewPage(ctx context.Context) (Page, error) {
	return &StaticPage{client: b.client, profile: b.profile}, nil
}

func (b *staticBrowser) Close() error {
	b.client.CloseIdleConnections()
	return nil
}

// StaticPage holds the last fetched document
type StaticPage struct {
	client  *http.Client
	profile BrowserProfile

	url string
	doc *parser.Document
}

// Navigate fetches url and parses the response body
func (p *StaticPage) Navigate(ctx context.Context, url string, timeout time.Duration) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrNavigation, url, err)
	}
	p.profile.ApplyHeaders(req)

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrNavigation, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("%w: %s: status %d", ErrNavigation, url, resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType != "" && !strings.Contains(contentType, "html") {
		return fmt.Errorf("%w: %s: unsupported content type %q", ErrNavigation, url, contentType)
	}

	finalURL := resp.Request.URL.String()
	doc, err := parser.Parse(io.LimitReader(resp.Body, maxStaticBodyBytes), finalURL)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrNavigation, url, err)
	}

	p.url = finalURL
	p.doc = doc
	return nil
}

// WaitForLoadState returns at once; a fetched document is already complete
func (p *StaticPage) WaitForLoadState(ctx context.Context, state LoadState, timeout time.Duration) error {
	if p.doc == nil {
		return fmt.Errorf("no document loaded")
	}
	return nil
}

// Title returns the <title> text
func (p *StaticPage) Title(ctx context.Context) (string, error) {
	if p.doc == nil {
		return "", fmt.Errorf("no document loaded")
	}
	return p.doc.Title(), nil
}

// URL returns the final URL after redirects, or about:blank
func (p *StaticPage) URL(ctx context.Context) (string, error) {
	if p.url == "" {
		return "about:blank", nil
	}
	return p.url, nil
}

// Evaluate answers ScriptAnchorHrefs from the parsed document; nothing else
// can run without a JavaScript engine.
func (p *StaticPage) Evaluate(ctx context.Context, script string, out any) error {
	if script != ScriptAnchorHrefs {
		return fmt.Errorf("%w: script evaluation", ErrUnsupported)
	}
	if p.doc == nil {
		return fmt.Errorf("no document loaded")
	}
	if out == nil {
		return nil
	}

	data, err := json.Marshal(p.doc.AnchorHrefs())
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

// LocateAll runs a CSS selector over the parsed document
func (p *StaticPage) LocateAll(ctx context.Context, selector string) ([]Element, error) {
	if p.doc == nil {
		return nil, fmt.Errorf("no document loaded")
	}

	nodes, err := p.doc.Select(selector)
	if err != nil {
		return nil, err
	}

	elements := make([]Element, 0, len(nodes))
	for _, n := range nodes {
		elements = append(elements, staticElement{sel: n})
	}
	return elements, nil
}

// InjectScript is not available without a JavaScript engine
func (p *StaticPage) InjectScript(ctx context.Context, script Script) error {
	return fmt.Errorf("%w: script injection", ErrUnsupported)
}

// WaitForFunction is not available without a JavaScript engine
func (p *StaticPage) WaitForFunction(ctx context.Context, expression string, timeout time.Duration) error {
	return fmt.Errorf("%w: script evaluation", ErrUnsupported)
}

type staticElement struct {
	sel *goquery.Selection
}

func (e staticElement) InnerText(ctx context.Context) (string, error) {
	return e.sel.Text(), nil
}

func (e staticElement) Attribute(ctx context.Context, name string) (string, bool, error) {
	v, ok := e.sel.Attr(name)
	return v, ok, nil
}
