package export

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/BenjaminSRussell/siteaudit/internal/audit"
	"github.com/BenjaminSRussell/siteaudit/internal/types"
)

// ExportMarkdown writes a readable summary of the report
func (e *Exporter) ExportMarkdown(report *types.Report, outputFile string) error {
	file, err := os.Create(outputFile)
	if err != nil {
		return fmt.Errorf("failed to create markdown file: %w", err)
	}
	defer file.Close()

	if err := WriteMarkdown(file, report); err != nil {
		return fmt.Errorf("failed to write markdown: %w", err)
	}
	return nil
}

// WriteMarkdown renders report to w
func WriteMarkdown(w io.Writer, report *types.Report) error {
	md := markdown.NewMarkdown(w)

	writeMarkdownHeader(md, report)
	if report.Mode == types.ModeAudit {
		writeImpactSummary(md, report.Audits)
		writeChecklist(md, audit.BuildChecklist(report.Audits))
		writeAuditPages(md, report.Audits)
	} else {
		writeInventory(md, report.Pages)
	}

	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Generated by siteaudit on %s*", report.GeneratedAt.Format("2006-01-02 15:04:05 MST"))

	return md.Build()
}

func writeMarkdownHeader(md *markdown.Markdown, report *types.Report) {
	if report.Mode == types.ModeAudit {
		md.H1("Accessibility Audit Report")
	} else {
		md.H1("Site Inventory")
	}
	md.PlainText("")

	rows := [][]string{
		{"Site", report.BaseURL},
		{"Pages", strconv.Itoa(len(report.Inventory()))},
		{"Discovered", strconv.Itoa(report.Stats.Discovered)},
		{"Errors", strconv.Itoa(report.Stats.Errors)},
	}
	if report.Mode == types.ModeAudit {
		meta := reportMetadata(report)
		rows = append(rows,
			[]string{"Platform", meta.Platform},
			[]string{"Auditor", meta.Auditor},
			[]string{"Date", meta.Date},
			[]string{"Audits incomplete", strconv.Itoa(report.Stats.AuditsIncomplete)},
		)
	}
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows:   rows,
	})
	md.PlainText("")

	if report.Stats.LoginTimedOut {
		md.Warning("Login was not detected before the timeout; pages behind the login may be missing.")
		md.PlainText("")
	}
}

func writeInventory(md *markdown.Markdown, pages []types.CrawlResult) {
	md.H2("Pages")
	md.PlainText("")

	rows := make([][]string, len(pages))
	for i, p := range pages {
		rows[i] = []string{p.Depths[0], p.Depths[1], p.Depths[2], p.Depths[3], p.Title, p.URL}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Depth 1", "Depth 2", "Depth 3", "Depth 4", "Title", "URL"},
		Rows:   rows,
	})
	md.PlainText("")
}

func writeImpactSummary(md *markdown.Markdown, audits []types.AuditResult) {
	counts := map[types.Impact]int{}
	total := 0
	for _, a := range audits {
		for _, v := range a.Violations {
			counts[v.Impact] += len(v.Nodes)
			total += len(v.Nodes)
		}
	}

	md.H2("Impact Summary")
	md.PlainText("")

	impacts := []types.Impact{types.ImpactCritical, types.ImpactSerious, types.ImpactModerate, types.ImpactMinor}
	rows := make([][]string, 0, len(impacts)+1)
	for _, impact := range impacts {
		rows = append(rows, []string{string(impact), strconv.Itoa(counts[impact])})
	}
	rows = append(rows, []string{"**Total**", "**" + strconv.Itoa(total) + "**"})
	md.Table(markdown.TableSet{
		Header: []string{"Impact", "Affected elements"},
		Rows:   rows,
	})
	md.PlainText("")

	if total > 0 {
		chart := piechart.NewPieChart(
			io.Discard,
			piechart.WithTitle("Affected elements by impact"),
			piechart.WithShowData(true),
		)
		for _, impact := range impacts {
			if counts[impact] > 0 {
				chart.LabelAndIntValue(string(impact), uint64(counts[impact]))
			}
		}
		md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
		md.PlainText("")
	}

	switch {
	case counts[types.ImpactCritical] > 0:
		md.Cautionf("%d element(s) with critical violations.", counts[types.ImpactCritical])
	case total > 0:
		md.Note("No critical violations found.")
	default:
		md.Tip("No violations found on audited pages.")
	}
	md.PlainText("")
}

func writeChecklist(md *markdown.Markdown, entries []audit.ChecklistEntry) {
	md.H2("KWCAG 2.2 Checklist")
	md.PlainText("")

	rows := make([][]string, len(entries))
	for i, e := range entries {
		rows[i] = []string{strconv.Itoa(e.Seq), e.Code, e.Name, string(e.Status), strconv.Itoa(len(e.Findings))}
	}
	md.Table(markdown.TableSet{
		Header: []string{"No", "Code", "Item", "Status", "Failed rules"},
		Rows:   rows,
	})
	md.PlainText("")
}

func writeAuditPages(md *markdown.Markdown, audits []types.AuditResult) {
	md.H2("Pages")
	md.PlainText("")

	rows := make([][]string, len(audits))
	for i, a := range audits {
		status := VerdictPass
		switch {
		case a.AuditStatus == types.AuditIncomplete:
			status = VerdictIncomplete
		case len(a.Violations) > 0:
			status = VerdictFail
		}
		rows[i] = []string{strconv.Itoa(i + 1), a.Title, a.URL, status, strconv.Itoa(a.TotalViolations)}
	}
	md.Table(markdown.TableSet{
		Header: []string{"No", "Title", "URL", "Verdict", "Affected elements"},
		Rows:   rows,
	})
	md.PlainText("")

	for _, a := range audits {
		if a.AuditStatus == types.AuditIncomplete && a.AuditError != "" {
			md.Details(a.URL, a.AuditError)
			continue
		}
		if len(a.Violations) == 0 {
			continue
		}
		md.H3(a.URL)
		md.PlainText("")
		for _, v := range a.Violations {
			md.Details(
				fmt.Sprintf("%s (%s, %d)", audit.FormatGuideline(v.ID), v.Impact, len(v.Nodes)),
				audit.KoreanDescription(v.ID, audit.Description(v))+"\n\n"+audit.KoreanHelp(v.ID, v.Help)+"\n\n"+v.HelpURL,
			)
		}
		md.PlainText("")
	}
}
