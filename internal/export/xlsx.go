package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/BenjaminSRussell/siteaudit/internal/audit"
	"github.com/BenjaminSRussell/siteaudit/internal/types"
)

// Workbook sheet names
const (
	IASheet        = "IA Definition"
	AuditSheet     = "접근성 진단 결과"
	ChecklistSheet = "KWCAG 체크리스트"
)

// Verdicts written to the audit sheet
const (
	VerdictPass       = "적합"
	VerdictFail       = "부적합"
	VerdictIncomplete = "진단 불가"
)

type sheetSpec struct {
	name    string
	headers []string
	widths  []float64
	rows    [][]any
}

var iaHeaders = []string{"1뎁스", "2뎁스", "3뎁스", "4뎁스", "페이지명", "URL"}

var iaWidths = []float64{15, 15, 15, 15, 40, 60}

var auditHeaders = []string{
	"No", "1뎁스", "2뎁스", "3뎁스", "4뎁스", "페이지명", "URL",
	"플랫폼", "점검자", "점검일",
	"번호", "지침명", "판정", "오류내용", "영향받는 요소 개수", "영향받는 요소 코드", "해결방안",
}

var auditWidths = []float64{6, 15, 15, 15, 15, 40, 60, 10, 15, 12, 8, 35, 10, 50, 12, 80, 70}

var checklistHeaders = []string{"번호", "지침", "검사항목", "설명", "점검 방식", "판정", "위반 규칙", "영향받는 페이지"}

var checklistWidths = []float64{6, 10, 30, 50, 12, 12, 40, 80}

// IARows lays out the inventory: four depth labels, title, URL
func IARows(pages []types.CrawlResult) [][]any {
	rows := make([][]any, 0, len(pages))
	for _, p := range pages {
		rows = append(rows, []any{p.Depths[0], p.Depths[1], p.Depths[2], p.Depths[3], p.Title, p.URL})
	}
	return rows
}

// AuditRows writes one row per violation, or a single row for a page with
// none. Pages the engine could not check are never reported as compliant.
func AuditRows(audits []types.AuditResult, meta types.AuditMetadata) [][]any {
	rows := make([][]any, 0, len(audits))
	for i, page := range audits {
		prefix := []any{
			i + 1,
			page.Depths[0], page.Depths[1], page.Depths[2], page.Depths[3],
			page.Title, page.URL,
			meta.Platform, meta.Auditor, meta.Date,
		}

		if page.AuditStatus == types.AuditIncomplete {
			rows = append(rows, append(prefix, "", "", VerdictIncomplete, page.AuditError, "", "", ""))
			continue
		}

		if len(page.Violations) == 0 {
			rows = append(rows, append(prefix, "", "", VerdictPass, "", "", "", ""))
			continue
		}

		for _, v := range page.Violations {
			row := append([]any{}, prefix...)

			var seq any = ""
			if g := audit.GuidelineFor(v.ID); g.Seq != 0 {
				seq = g.Seq
			}

			rows = append(rows, append(row,
				seq,
				audit.FormatGuideline(v.ID),
				VerdictFail,
				audit.KoreanDescription(v.ID, audit.Description(v)),
				len(v.Nodes),
				affectedCode(v.Nodes),
				fmt.Sprintf("%s\n참고: %s", audit.KoreanHelp(v.ID, v.Help), v.HelpURL),
			))
		}
	}
	return rows
}

func affectedCode(nodes []types.ViolationNode) string {
	parts := make([]string, 0, len(nodes))
	for i, n := range nodes {
		parts = append(parts, fmt.Sprintf("[%d] %s", i+1, n.HTML))
	}
	return strings.Join(parts, "\n\n")
}

// ChecklistRows summarizes the site against all 33 KWCAG items
func ChecklistRows(entries []audit.ChecklistEntry) [][]any {
	rows := make([][]any, 0, len(entries))
	for _, e := range entries {
		mode := "수동"
		if e.Automatic {
			mode = "자동"
		}

		rules := make([]string, 0, len(e.Findings))
		pages := make([]string, 0)
		for _, f := range e.Findings {
			rules = append(rules, f.RuleID)
			for _, p := range f.Pages {
				pages = append(pages, fmt.Sprintf("%s (%d)", p.URL, p.Count))
			}
		}

		rows = append(rows, []any{
			e.Seq, e.Code, e.Name, e.Description, mode, string(e.Status),
			strings.Join(rules, ", "), strings.Join(pages, "\n"),
		})
	}
	return rows
}

// reportMetadata fills in missing metadata the way the audit command does
func reportMetadata(report *types.Report) types.AuditMetadata {
	var meta types.AuditMetadata
	if report.Metadata != nil {
		meta = *report.Metadata
	}
	now := report.GeneratedAt
	if now.IsZero() {
		now = time.Now()
	}
	return types.DefaultAuditMetadata(meta, now)
}

// ExportXLSX writes the IA workbook for a crawl report. Audit reports get the
// audit sheet and the KWCAG checklist in front of the IA sheet.
func (e *Exporter) ExportXLSX(report *types.Report, outputFile string) error {
	sheets := make([]sheetSpec, 0, 3)
	if report.Mode == types.ModeAudit {
		sheets = append(sheets,
			sheetSpec{AuditSheet, auditHeaders, auditWidths, AuditRows(report.Audits, reportMetadata(report))},
			sheetSpec{ChecklistSheet, checklistHeaders, checklistWidths, ChecklistRows(audit.BuildChecklist(report.Audits))},
		)
	}
	sheets = append(sheets, sheetSpec{IASheet, iaHeaders, iaWidths, IARows(report.Inventory())})

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"D9E1F2"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	cellStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Vertical: "top", WrapText: true},
	})
	if err != nil {
		return fmt.Errorf("failed to create cell style: %w", err)
	}

	for i, sheet := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet.name); err != nil {
				return fmt.Errorf("failed to name sheet: %w", err)
			}
		} else if _, err := f.NewSheet(sheet.name); err != nil {
			return fmt.Errorf("failed to add sheet %s: %w", sheet.name, err)
		}

		if err := writeSheet(f, sheet, headerStyle, cellStyle); err != nil {
			return fmt.Errorf("failed to write sheet %s: %w", sheet.name, err)
		}
	}

	f.SetActiveSheet(0)
	if err := f.SaveAs(outputFile); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet sheetSpec, headerStyle, cellStyle int) error {
	header := make([]any, len(sheet.headers))
	for i, h := range sheet.headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet.name, "A1", &header); err != nil {
		return err
	}

	for i, row := range sheet.rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet.name, cell, &row); err != nil {
			return err
		}
	}

	for i, width := range sheet.widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet.name, col, col, width); err != nil {
			return err
		}
	}

	last, err := excelize.CoordinatesToCellName(len(sheet.headers), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet.name, "A1", last, headerStyle); err != nil {
		return err
	}
	if len(sheet.rows) > 0 {
		bottom, err := excelize.CoordinatesToCellName(len(sheet.headers), len(sheet.rows)+1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet.name, "A2", bottom, cellStyle); err != nil {
			return err
		}
	}

	return f.SetPanes(sheet.name, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}
