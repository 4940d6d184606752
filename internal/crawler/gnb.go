package crawler

import (
	"context"
	"net/url"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/BenjaminSRussell/siteaudit/internal/logging"
	"github.com/BenjaminSRussell/siteaudit/internal/renderer"
	"github.com/BenjaminSRussell/siteaudit/internal/types"
)

// DefaultGNBSelectors are tried in order when no selector is configured
var DefaultGNBSelectors = []string{"nav", ".gnb", "#gnb", ".menu", "#menu", ".header", "header"}

// GNBMapper reads the site's global navigation bar into a path → label map
type GNBMapper struct {
	baseURL string
	filter  *Filter
	sink    logging.Sink
}

// NewGNBMapper creates a mapper resolving hrefs against baseURL
func NewGNBMapper(baseURL string, filter *Filter, sink logging.Sink) *GNBMapper {
	if sink == nil {
		sink = logging.Discard
	}
	return &GNBMapper{baseURL: baseURL, filter: filter, sink: sink}
}

// GNBCandidates returns the selectors to try for a configured selector.
// A bare name like "gnb" is also tried as a class.
func GNBCandidates(selector string) []string {
	selector = strings.TrimSpace(selector)
	if selector == "" {
		return DefaultGNBSelectors
	}

	candidates := []string{selector}
	if !strings.HasPrefix(selector, ".") && !strings.HasPrefix(selector, "#") {
		candidates = append(candidates, "."+selector)
	}
	return candidates
}

// Build locates navigation anchors on page and maps their paths to labels.
// The first candidate selector that yields at least one mapping wins.
func (m *GNBMapper) Build(ctx context.Context, page renderer.Page, selector string) types.GnbMap {
	gnb := make(types.GnbMap)
	explicit := strings.TrimSpace(selector) != ""

	if !explicit {
		m.sink.Emit("No GNB selector configured, trying default selectors")
	}

	for _, candidate := range GNBCandidates(selector) {
		if ctx.Err() != nil {
			break
		}

		elements, err := page.LocateAll(ctx, candidate+" a")
		if err != nil {
			logging.Emitf(m.sink, "GNB selector %s failed: %v", candidate, err)
			continue
		}
		if len(elements) == 0 && explicit {
			elements, err = page.LocateAll(ctx, candidate)
			if err != nil {
				logging.Emitf(m.sink, "GNB selector %s failed: %v", candidate, err)
				continue
			}
		}
		if len(elements) == 0 {
			continue
		}

		logging.Emitf(m.sink, "GNB candidate found: %s (%d links)", candidate, len(elements))

		for _, el := range elements {
			m.addEntry(ctx, gnb, el)
		}

		if len(gnb) > 0 {
			logging.Emitf(m.sink, "GNB mapping complete: %d menu entries", len(gnb))
			break
		}
	}

	return gnb
}

func (m *GNBMapper) addEntry(ctx context.Context, gnb types.GnbMap, el renderer.Element) {
	text, err := el.InnerText(ctx)
	if err != nil {
		return
	}
	text = norm.NFC.String(strings.TrimSpace(text))
	if text == "" {
		return
	}

	href, ok, err := el.Attribute(ctx, "href")
	if err != nil || !ok || strings.TrimSpace(href) == "" {
		return
	}

	base, err := url.Parse(m.baseURL)
	if err != nil {
		return
	}
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return
	}
	resolved := base.ResolveReference(ref)

	host, err := canonicalHostname(resolved.Hostname())
	if err != nil || host != m.filter.Host() {
		return
	}

	path := strings.TrimSuffix(resolved.EscapedPath(), "/")
	if path == "" {
		return
	}
	if _, exists := gnb[path]; !exists {
		gnb[path] = text
	}
}

// BuildGnbMap is a convenience wrapper around GNBMapper.Build
func BuildGnbMap(ctx context.Context, page renderer.Page, baseURL, selector string, sink logging.Sink) (types.GnbMap, error) {
	filter, err := NewFilter(baseURL, nil)
	if err != nil {
		return nil, err
	}
	return NewGNBMapper(baseURL, filter, sink).Build(ctx, page, selector), nil
}
