package export

import (
	"encoding/xml"
	"fmt"
	"os"

	"github.com/BenjaminSRussell/siteaudit/internal/types"
)

// SitemapConfig holds export configuration
type SitemapConfig struct {
	IncludeLastmod    bool
	IncludeChangefreq bool
	DefaultPriority   float64
}

// DefaultSitemapConfig matches what ExportSitemap writes
var DefaultSitemapConfig = SitemapConfig{
	IncludeLastmod:    true,
	IncludeChangefreq: true,
	DefaultPriority:   0.8,
}

// URLSet represents the XML sitemap structure
type URLSet struct {
	XMLName xml.Name `xml:"urlset"`
	XMLNS   string   `xml:"xmlns,attr"`
	URLs    []URL    `xml:"url"`
}

// URL represents a single URL in the sitemap
type URL struct {
	Loc        string  `xml:"loc"`
	Lastmod    string  `xml:"lastmod,omitempty"`
	Changefreq string  `xml:"changefreq,omitempty"`
	Priority   float64 `xml:"priority,omitempty"`
}

// BuildURLSet lists every visited page. The start page gets priority 1.0.
func BuildURLSet(report *types.Report, config SitemapConfig) URLSet {
	urlSet := URLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  make([]URL, 0),
	}

	for _, page := range report.Inventory() {
		u := URL{
			Loc:      page.URL,
			Priority: config.DefaultPriority,
		}
		if page.Depths[0] == "" {
			u.Priority = 1.0
		}

		if config.IncludeLastmod && !report.GeneratedAt.IsZero() {
			u.Lastmod = report.GeneratedAt.Format("2006-01-02")
		}

		if config.IncludeChangefreq {
			u.Changefreq = "weekly"
		}

		urlSet.URLs = append(urlSet.URLs, u)
	}

	return urlSet
}

// ExportSitemap writes the visited pages as an XML sitemap and returns how
// many URLs it contains
func (e *Exporter) ExportSitemap(report *types.Report, outputFile string) (int, error) {
	urlSet := BuildURLSet(report, DefaultSitemapConfig)

	output, err := xml.MarshalIndent(urlSet, "", "  ")
	if err != nil {
		return 0, fmt.Errorf("failed to marshal XML: %w", err)
	}

	xmlContent := []byte(xml.Header + string(output) + "\n")

	if err := os.WriteFile(outputFile, xmlContent, 0644); err != nil {
		return 0, fmt.Errorf("failed to write sitemap: %w", err)
	}

	return len(urlSet.URLs), nil
}
