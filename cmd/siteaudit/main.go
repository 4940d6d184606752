// Command siteaudit crawls a site and audits its pages for accessibility.
//
// Usage:
//
//	siteaudit crawl --url https://example.com/ --format xlsx
//	siteaudit audit --url https://example.com/ --login --platform Mobile -o audit.xlsx
//	siteaudit export siteaudit-audit.json --format md,sqlite
package main

import (
	"os"

	"github.com/BenjaminSRussell/siteaudit/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
