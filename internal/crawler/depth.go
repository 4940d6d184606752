package crawler

import (
	"net/url"
	"strings"

	"github.com/BenjaminSRussell/siteaudit/internal/types"
)

// MaxDepth is the number of path levels reported per page
const MaxDepth = 4

// Depths labels the first four path segments of rawURL. Each level uses the
// navigation label for the cumulative path when one exists and the raw path
// segment otherwise; missing levels stay empty.
func Depths(rawURL string, gnb types.GnbMap) [MaxDepth]string {
	var depths [MaxDepth]string

	u, err := url.Parse(rawURL)
	if err != nil {
		return depths
	}

	segments := pathSegments(u.EscapedPath())
	for i := 0; i < MaxDepth && i < len(segments); i++ {
		key := "/" + strings.Join(segments[:i+1], "/")
		if label, ok := gnb[key]; ok {
			depths[i] = label
			continue
		}

		depths[i] = segments[i]
	}

	return depths
}

// BuildCrawlResult assembles the inventory entry for a visited page
func BuildCrawlResult(rawURL, title string, gnb types.GnbMap) types.CrawlResult {
	return types.CrawlResult{
		URL:    rawURL,
		Title:  title,
		Depths: Depths(rawURL, gnb),
	}
}

func pathSegments(path string) []string {
	parts := strings.Split(path, "/")
	segments := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			segments = append(segments, p)
		}
	}
	return segments
}
