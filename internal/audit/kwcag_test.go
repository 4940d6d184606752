package audit

import (
	"sort"
	"testing"

	"github.com/BenjaminSRussell/siteaudit/internal/types"
)

func TestFormatGuideline(t *testing.T) {
	tests := []struct {
		rule string
		want string
	}{
		{"image-alt", "[1.1.1] 적절한 대체 텍스트 제공"},
		{"color-contrast", "[1.3.3] 텍스트 콘텐츠의 명도 대비"},
		{"html-has-lang", "[3.1.1] 기본 언어 표시"},
		{"meta-viewport", "기타(WCAG): meta-viewport"},
		{"", "기타(WCAG): "},
	}

	for _, tt := range tests {
		if got := FormatGuideline(tt.rule); got != tt.want {
			t.Errorf("FormatGuideline(%q) = %q, want %q", tt.rule, got, tt.want)
		}
	}
}

func TestGuidelineForUnknownRule(t *testing.T) {
	g := GuidelineFor("does-not-exist")
	if g.Seq != 0 || g.Code != OtherCode {
		t.Errorf("Expected the catch-all guideline, got %+v", g)
	}
}

func TestKoreanText(t *testing.T) {
	if got := KoreanDescription("image-alt", "Images must have alternate text"); got != "이미지에 대체 텍스트(alt 속성)가 없습니다" {
		t.Errorf("Unexpected description %q", got)
	}
	if got := KoreanDescription("meta-viewport", "engine text"); got != "engine text" {
		t.Errorf("Expected fallback description, got %q", got)
	}
	if got := KoreanHelp("meta-viewport", "engine help"); got != "engine help" {
		t.Errorf("Expected fallback help, got %q", got)
	}
	if got := KoreanHelp("image-alt", ""); got == "" {
		t.Error("Expected Korean help for image-alt")
	}
}

func TestRulesFor(t *testing.T) {
	rules := RulesFor(1)
	if len(rules) != 7 {
		t.Errorf("Expected 7 rules for 1.1.1, got %v", rules)
	}
	if !sort.StringsAreSorted(rules) {
		t.Errorf("Expected sorted rules, got %v", rules)
	}
	if got := RulesFor(33); len(got) != 0 {
		t.Errorf("Expected no rules for 6.3.1, got %v", got)
	}
}

func TestChecklistMatchesRuleTable(t *testing.T) {
	if len(Checklist) != 33 {
		t.Fatalf("Expected 33 checklist items, got %d", len(Checklist))
	}

	codes := make(map[int]string, len(Checklist))
	for i, item := range Checklist {
		if item.Seq != i+1 {
			t.Errorf("Checklist[%d].Seq = %d, want %d", i, item.Seq, i+1)
		}
		codes[item.Seq] = item.Code
	}

	for id, g := range ruleGuidelines {
		code, ok := codes[g.Seq]
		if !ok {
			t.Errorf("Rule %s points at missing item %d", id, g.Seq)
			continue
		}
		if code != g.Code {
			t.Errorf("Rule %s has code %s, checklist item %d has %s", id, g.Code, g.Seq, code)
		}
	}
}

func TestBuildChecklist(t *testing.T) {
	audits := []types.AuditResult{
		types.NewAuditResult(types.CrawlResult{URL: "https://example.com/", Title: "Home"}, []types.Violation{
			{ID: "image-alt", Help: "Images must have alternate text", Nodes: make([]types.ViolationNode, 2)},
			{ID: "meta-viewport", Nodes: make([]types.ViolationNode, 1)},
		}),
		types.NewAuditResult(types.CrawlResult{URL: "https://example.com/about", Title: "About"}, []types.Violation{
			{ID: "image-alt", HelpURL: "https://example.com/help", Nodes: make([]types.ViolationNode, 1)},
		}),
	}

	entries := BuildChecklist(audits)
	if len(entries) != 33 {
		t.Fatalf("Expected 33 entries, got %d", len(entries))
	}

	alt := entries[0]
	if alt.Status != StatusFail || !alt.Automatic {
		t.Errorf("Expected 1.1.1 to fail, got %s", alt.Status)
	}
	if len(alt.Findings) != 1 {
		t.Fatalf("Expected one finding, got %d", len(alt.Findings))
	}
	finding := alt.Findings[0]
	if len(finding.Pages) != 2 || finding.Pages[0].Count != 2 || finding.Pages[1].Title != "About" {
		t.Errorf("Unexpected affected pages %+v", finding.Pages)
	}
	if finding.HelpURL != "https://example.com/help" {
		t.Errorf("Expected help URL from the second page, got %s", finding.HelpURL)
	}
	if finding.Description != "이미지에 대체 텍스트(alt 속성)가 없습니다" {
		t.Errorf("Expected Korean description, got %q", finding.Description)
	}

	if entries[4].Status != StatusPass {
		t.Errorf("Expected 1.3.3 to pass, got %s", entries[4].Status)
	}
	if entries[32].Status != StatusManual || entries[32].Automatic {
		t.Errorf("Expected 6.3.1 to need manual review, got %s", entries[32].Status)
	}
}

func TestBuildChecklistIncompleteAudit(t *testing.T) {
	audits := []types.AuditResult{
		types.NewIncompleteAuditResult(types.CrawlResult{URL: "https://example.com/"}, ErrInjection),
	}

	entries := BuildChecklist(audits)

	if entries[0].Status != StatusUnverified {
		t.Errorf("Expected unverified status, got %s", entries[0].Status)
	}
	if entries[3].Status != StatusManual {
		t.Errorf("Expected manual status for an unmapped item, got %s", entries[3].Status)
	}
}

func TestFindRuleFallbackHelpURL(t *testing.T) {
	audits := []types.AuditResult{
		types.NewAuditResult(types.CrawlResult{URL: "https://example.com/"}, []types.Violation{
			{ID: "region", Description: "content outside landmarks", Nodes: make([]types.ViolationNode, 1)},
		}),
	}

	finding, ok := findRule("region", audits)
	if !ok {
		t.Fatal("Expected a finding")
	}
	if finding.HelpURL != "https://dequeuniversity.com/rules/axe/4.4/region" {
		t.Errorf("Unexpected fallback help URL %s", finding.HelpURL)
	}

	if _, ok := findRule("image-alt", audits); ok {
		t.Error("Expected no finding for a rule that did not fail")
	}
}

func TestDescriptionFallsBackToHelp(t *testing.T) {
	tests := []struct {
		name string
		v    types.Violation
		want string
	}{
		{"description set", types.Violation{Description: "Ensures zoom works", Help: "Zooming must not be disabled"}, "Ensures zoom works"},
		{"help only", types.Violation{Help: "Zooming must not be disabled"}, "Zooming must not be disabled"},
		{"neither", types.Violation{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Description(tt.v); got != tt.want {
				t.Errorf("Description() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFindRuleUsesHelpWhenDescriptionMissing(t *testing.T) {
	audits := []types.AuditResult{
		types.NewAuditResult(types.CrawlResult{URL: "https://example.com/"}, []types.Violation{
			{ID: "meta-viewport", Help: "Zooming must not be disabled", Nodes: make([]types.ViolationNode, 1)},
		}),
	}

	finding, ok := findRule("meta-viewport", audits)
	if !ok {
		t.Fatal("Expected a finding")
	}
	if finding.Description != "Zooming must not be disabled" {
		t.Errorf("Expected help text as description, got %q", finding.Description)
	}
}
