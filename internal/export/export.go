// Package export writes a finished crawl or audit report to disk in the
// formats people hand around: JSON, CSV, Excel workbooks, Markdown, XML
// sitemaps and SQLite databases.
package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BenjaminSRussell/siteaudit/internal/types"
)

// Export formats
const (
	FormatJSON     = "json"
	FormatCSV      = "csv"
	FormatXLSX     = "xlsx"
	FormatMarkdown = "md"
	FormatSitemap  = "sitemap"
	FormatSQLite   = "sqlite"
)

// Formats lists every supported format in the order the CLI documents them
var Formats = []string{FormatJSON, FormatCSV, FormatXLSX, FormatMarkdown, FormatSitemap, FormatSQLite}

// ErrUnknownFormat is returned for a format or file extension we cannot write
var ErrUnknownFormat = errors.New("unknown export format")

var extensions = map[string]string{
	".json":     FormatJSON,
	".csv":      FormatCSV,
	".xlsx":     FormatXLSX,
	".md":       FormatMarkdown,
	".markdown": FormatMarkdown,
	".xml":      FormatSitemap,
	".db":       FormatSQLite,
	".sqlite":   FormatSQLite,
	".sqlite3":  FormatSQLite,
}

// FormatFromPath guesses the export format from a file extension
func FormatFromPath(path string) (string, error) {
	format, ok := extensions[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
	return format, nil
}

// DefaultFileName returns the file name used when only a format is given
func DefaultFileName(report *types.Report, format string) string {
	base := "siteaudit-" + report.Mode
	switch format {
	case FormatSitemap:
		return "sitemap.xml"
	case FormatSQLite:
		return base + ".db"
	default:
		return base + "." + format
	}
}

type Exporter struct {
	outputDir string
}

func NewExporter(outputDir string) (*Exporter, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	return &Exporter{
		outputDir: outputDir,
	}, nil
}

// Path resolves name against the output directory unless it is absolute
func (e *Exporter) Path(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(e.outputDir, name)
}

// Export writes report as format into name and returns the final path.
// An empty format is taken from the file extension.
func (e *Exporter) Export(report *types.Report, format, name string) (string, error) {
	if report == nil {
		return "", errors.New("no report to export")
	}

	if format == "" {
		f, err := FormatFromPath(name)
		if err != nil {
			return "", err
		}
		format = f
	}
	if name == "" {
		name = DefaultFileName(report, format)
	}
	outputFile := e.Path(name)

	var err error
	switch format {
	case FormatJSON:
		err = e.ExportJSON(report, outputFile)
	case FormatCSV:
		err = e.ExportCSV(report, outputFile)
	case FormatXLSX:
		err = e.ExportXLSX(report, outputFile)
	case FormatMarkdown:
		err = e.ExportMarkdown(report, outputFile)
	case FormatSitemap:
		_, err = e.ExportSitemap(report, outputFile)
	case FormatSQLite:
		err = e.ExportSQLite(report, outputFile)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
	if err != nil {
		return "", err
	}

	return outputFile, nil
}

func (e *Exporter) ExportJSON(report *types.Report, outputFile string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if err := os.WriteFile(outputFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write JSON file: %w", err)
	}

	return nil
}

// LoadJSON reads a report previously written by ExportJSON
func LoadJSON(path string) (*types.Report, error) {
	data, err := os.ReadFile(path) //nolint:gosec // user-provided report path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to read report: %w", err)
	}

	var report types.Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("failed to parse report %s: %w", path, err)
	}
	if report.Mode != types.ModeCrawl && report.Mode != types.ModeAudit {
		return nil, fmt.Errorf("failed to parse report %s: unknown mode %q", path, report.Mode)
	}

	return &report, nil
}

// ExportCSV writes one row per page. Audit reports add the audit status and
// violation counts after the inventory columns.
func (e *Exporter) ExportCSV(report *types.Report, outputFile string) error {
	file, err := os.Create(outputFile)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	headers := []string{"URL", "Title", "Depth1", "Depth2", "Depth3", "Depth4"}
	if report.Mode == types.ModeAudit {
		headers = append(headers, "AuditStatus", "Violations", "AffectedNodes", "Rules")
	}
	if err := writer.Write(headers); err != nil {
		return fmt.Errorf("failed to write CSV headers: %w", err)
	}

	if report.Mode == types.ModeAudit {
		for _, a := range report.Audits {
			ids := make([]string, 0, len(a.Violations))
			for _, v := range a.Violations {
				ids = append(ids, v.ID)
			}
			record := append(pageRecord(a.CrawlResult),
				string(a.AuditStatus),
				strconv.Itoa(len(a.Violations)),
				strconv.Itoa(a.TotalViolations),
				strings.Join(ids, " "),
			)
			if err := writer.Write(record); err != nil {
				return fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
	} else {
		for _, p := range report.Pages {
			if err := writer.Write(pageRecord(p)); err != nil {
				return fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV file: %w", err)
	}
	return nil
}

func pageRecord(p types.CrawlResult) []string {
	return []string{p.URL, p.Title, p.Depths[0], p.Depths[1], p.Depths[2], p.Depths[3]}
}
