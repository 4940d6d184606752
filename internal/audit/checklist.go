package audit

import (
	"github.com/BenjaminSRussell/siteaudit/internal/types"
)

// ChecklistStatus is the verdict for one KWCAG item across a whole site
type ChecklistStatus string

const (
	StatusPass       ChecklistStatus = "적합"
	StatusFail       ChecklistStatus = "부적합"
	StatusManual     ChecklistStatus = "수동 점검"
	StatusUnverified ChecklistStatus = "확인 필요"
)

// fallbackHelpURL is used when the engine gave no help link for a rule
const fallbackHelpURL = "https://dequeuniversity.com/rules/axe/4.4/"

// AffectedPage is a page where a rule failed
type AffectedPage struct {
	Title string `json:"title"`
	URL   string `json:"url"`
	Count int    `json:"count"`
}

// RuleFinding groups the pages one rule failed on
type RuleFinding struct {
	RuleID      string         `json:"ruleId"`
	Description string         `json:"description"`
	Help        string         `json:"help"`
	HelpURL     string         `json:"helpUrl"`
	Pages       []AffectedPage `json:"pages"`
}

// ChecklistEntry is a KWCAG item with the site's findings for it
type ChecklistEntry struct {
	ChecklistItem
	Automatic bool            `json:"automatic"`
	Rules     []string        `json:"rules"`
	Status    ChecklistStatus `json:"status"`
	Findings  []RuleFinding   `json:"findings"`
}

// BuildChecklist aggregates audit results per KWCAG item. Items no rule maps
// to need manual review; automatic items with no findings are only marked
// as passing when every page was audited completely.
func BuildChecklist(audits []types.AuditResult) []ChecklistEntry {
	incomplete := false
	for _, a := range audits {
		if a.AuditStatus == types.AuditIncomplete {
			incomplete = true
			break
		}
	}

	entries := make([]ChecklistEntry, 0, len(Checklist))
	for _, item := range Checklist {
		entry := ChecklistEntry{
			ChecklistItem: item,
			Rules:         RulesFor(item.Seq),
			Findings:      make([]RuleFinding, 0),
		}
		entry.Automatic = len(entry.Rules) > 0

		if !entry.Automatic {
			entry.Status = StatusManual
			entries = append(entries, entry)
			continue
		}

		for _, rule := range entry.Rules {
			if finding, ok := findRule(rule, audits); ok {
				entry.Findings = append(entry.Findings, finding)
			}
		}

		switch {
		case len(entry.Findings) > 0:
			entry.Status = StatusFail
		case incomplete:
			entry.Status = StatusUnverified
		default:
			entry.Status = StatusPass
		}
		entries = append(entries, entry)
	}

	return entries
}

func findRule(rule string, audits []types.AuditResult) (RuleFinding, bool) {
	finding := RuleFinding{RuleID: rule, Pages: make([]AffectedPage, 0)}

	var description, help string
	for _, page := range audits {
		for _, v := range page.Violations {
			if v.ID != rule {
				continue
			}
			finding.Pages = append(finding.Pages, AffectedPage{
				Title: page.Title,
				URL:   page.URL,
				Count: len(v.Nodes),
			})
			if description == "" {
				description = Description(v)
			}
			if help == "" {
				help = v.Help
			}
			if finding.HelpURL == "" {
				finding.HelpURL = v.HelpURL
			}
			break
		}
	}

	if len(finding.Pages) == 0 {
		return finding, false
	}

	finding.Description = KoreanDescription(rule, description)
	finding.Help = KoreanHelp(rule, help)
	if finding.HelpURL == "" {
		finding.HelpURL = fallbackHelpURL + rule
	}
	return finding, true
}
