package crawler

import (
	"fmt"
	"net"
	"net/url"
	"strings"

	"golang.org/x/net/idna"
)

// Filter canonicalizes discovered links and keeps the crawl on one host
type Filter struct {
	host    string
	exclude []string
}

// NewFilter creates a filter scoped to baseURL's hostname. Paths ending in
// one of excludeExt (".pdf", "zip", ...) are rejected.
func NewFilter(baseURL string, excludeExt []string) (*Filter, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base URL must be http or https, got %q", baseURL)
	}

	host, err := canonicalHostname(u.Hostname())
	if err != nil || host == "" {
		return nil, fmt.Errorf("invalid base URL host %q", baseURL)
	}

	exclude := make([]string, 0, len(excludeExt))
	for _, ext := range excludeExt {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exclude = append(exclude, ext)
	}

	return &Filter{host: host, exclude: exclude}, nil
}

// Host returns the canonical start hostname
func (f *Filter) Host() string {
	return f.host
}

// Normalize resolves href against pageURL and returns its canonical form.
// Malformed input reports false.
func (f *Filter) Normalize(href, pageURL string) (string, bool) {
	href = strings.TrimSpace(href)
	if href == "" {
		return "", false
	}

	ref, err := url.Parse(href)
	if err != nil {
		return "", false
	}

	if pageURL != "" {
		base, err := url.Parse(pageURL)
		if err != nil {
			return "", false
		}
		ref = base.ResolveReference(ref)
	}

	canonical, err := canonicalize(ref)
	if err != nil {
		return "", false
	}
	return canonical, true
}

// Valid reports whether u is an http(s) URL on the start host that is not excluded
func (f *Filter) Valid(u string) bool {
	parsed, err := url.Parse(u)
	if err != nil {
		return false
	}

	scheme := strings.ToLower(parsed.Scheme)
	if scheme != "http" && scheme != "https" {
		return false
	}

	host, err := canonicalHostname(parsed.Hostname())
	if err != nil || host != f.host {
		return false
	}

	path := strings.ToLower(parsed.Path)
	for _, ext := range f.exclude {
		if strings.HasSuffix(path, ext) {
			return false
		}
	}

	return true
}

// canonicalURL is canonicalize for a raw string; unparsable input is returned as is
func canonicalURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	c, err := canonicalize(u)
	if err != nil {
		return raw
	}
	return c
}

// canonicalize strips the fragment and normalizes scheme, host, port and empty path
func canonicalize(u *url.URL) (string, error) {
	c := *u
	c.Fragment = ""
	c.RawFragment = ""
	c.Scheme = strings.ToLower(c.Scheme)

	if c.Host != "" {
		host, err := canonicalHostname(c.Hostname())
		if err != nil {
			return "", err
		}
		if strings.Contains(host, ":") {
			host = "[" + host + "]"
		}

		port := c.Port()
		if (c.Scheme == "http" && port == "80") || (c.Scheme == "https" && port == "443") {
			port = ""
		}
		if port != "" {
			host = host + ":" + port
		}
		c.Host = host
	}

	if (c.Scheme == "http" || c.Scheme == "https") && c.Path == "" && c.Opaque == "" {
		c.Path = "/"
		c.RawPath = ""
	}

	return c.String(), nil
}

func canonicalHostname(host string) (string, error) {
	host = strings.ToLower(strings.TrimSuffix(host, "."))
	if host == "" || net.ParseIP(host) != nil {
		return host, nil
	}
	return idna.ToASCII(host)
}
