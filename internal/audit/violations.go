package audit

import (
	"fmt"
	"strings"

	"github.com/BenjaminSRussell/siteaudit/internal/types"
)

// RawResults is the part of axe.run's result object we read
type RawResults struct {
	Violations  []RawViolation `json:"violations"`
	TestEngine  *RawEngine     `json:"testEngine,omitempty"`
	URL         string         `json:"url"`
	Timestamp   string         `json:"timestamp"`
	ToolOptions map[string]any `json:"toolOptions,omitempty"`
}

// RawEngine identifies the axe-core build that produced the results
type RawEngine struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// RawViolation is a violation as axe-core reports it. Impact may be null.
type RawViolation struct {
	ID          string    `json:"id"`
	Impact      *string   `json:"impact"`
	Description string    `json:"description"`
	Help        string    `json:"help"`
	HelpURL     string    `json:"helpUrl"`
	Tags        []string  `json:"tags"`
	Nodes       []RawNode `json:"nodes"`
}

// RawNode is one failing element. Target entries are selectors, or arrays
// of selectors for elements inside shadow roots and iframes.
type RawNode struct {
	HTML           string  `json:"html"`
	FailureSummary *string `json:"failureSummary"`
	Target         []any   `json:"target"`
}

// MapViolations converts raw engine output into report violations
func MapViolations(raw []RawViolation) []types.Violation {
	violations := make([]types.Violation, 0, len(raw))
	for _, rv := range raw {
		violations = append(violations, mapViolation(rv))
	}
	return violations
}

// Description returns the violation's description, or its help text when the
// engine gave none. Reports reloaded from disk go through the same fallback
// as live results.
func Description(v types.Violation) string {
	if v.Description == "" {
		return v.Help
	}
	return v.Description
}

func mapViolation(rv RawViolation) types.Violation {
	impact := ""
	if rv.Impact != nil {
		impact = *rv.Impact
	}

	description := rv.Description
	if description == "" {
		description = rv.Help
	}

	nodes := make([]types.ViolationNode, 0, len(rv.Nodes))
	for _, rn := range rv.Nodes {
		summary := ""
		if rn.FailureSummary != nil {
			summary = *rn.FailureSummary
		}
		nodes = append(nodes, types.ViolationNode{
			HTML:           rn.HTML,
			FailureSummary: summary,
			Target:         flattenTarget(rn.Target),
		})
	}

	return types.Violation{
		ID:          rv.ID,
		Impact:      types.ParseImpact(impact),
		Description: description,
		Help:        rv.Help,
		HelpURL:     rv.HelpURL,
		Nodes:       nodes,
	}
}

// flattenTarget joins nested selector paths with " >>> "
func flattenTarget(target []any) []string {
	out := make([]string, 0, len(target))
	for _, t := range target {
		switch v := t.(type) {
		case string:
			out = append(out, v)
		case []any:
			parts := make([]string, 0, len(v))
			for _, p := range v {
				parts = append(parts, fmt.Sprint(p))
			}
			out = append(out, strings.Join(parts, " >>> "))
		case nil:
		default:
			out = append(out, fmt.Sprint(v))
		}
	}
	return out
}
