package parser

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
)

// Document is a parsed HTML page with its own URL for resolving references
type Document struct {
	doc  *goquery.Document
	base *url.URL
}

// Parse reads an HTML document fetched from pageURL
func Parse(r io.Reader, pageURL string) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, err
	}

	// <base href> changes what relative links resolve against
	if href, ok := doc.Find("base[href]").First().Attr("href"); ok {
		if ref, err := url.Parse(strings.TrimSpace(href)); err == nil {
			base = base.ResolveReference(ref)
		}
	}

	return &Document{doc: doc, base: base}, nil
}

// ParseString is Parse for an in-memory document
func ParseString(html, pageURL string) (*Document, error) {
	return Parse(strings.NewReader(html), pageURL)
}

// Title returns the text of the first <title> element
func (d *Document) Title() string {
	return strings.TrimSpace(d.doc.Find("title").First().Text())
}

// AnchorHrefs returns the absolute href of every <a> element, in document order.
// Anchors without an href are skipped.
func (d *Document) AnchorHrefs() []string {
	hrefs := make([]string, 0)
	d.doc.Find("a[href]").Each(func(i int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		if resolved := d.Resolve(href); resolved != "" {
			hrefs = append(hrefs, resolved)
		}
	})
	return hrefs
}

// Resolve turns href into an absolute URL against the document base
func (d *Document) Resolve(href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}

	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return d.base.ResolveReference(u).String()
}

// Select returns each node matching a CSS selector. Unlike goquery's Find, an
// invalid selector is reported instead of matching nothing.
func (d *Document) Select(selector string) ([]*goquery.Selection, error) {
	matcher, err := cascadia.Compile(selector)
	if err != nil {
		return nil, fmt.Errorf("invalid selector %q: %w", selector, err)
	}

	sel := d.doc.FindMatcher(matcher)
	nodes := make([]*goquery.Selection, 0, sel.Length())
	sel.Each(func(i int, s *goquery.Selection) {
		nodes = append(nodes, s)
	})
	return nodes, nil
}
