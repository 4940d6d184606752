package types

import "time"

// Impact is the severity axe-core assigns to a violation
type Impact string

const (
	ImpactCritical Impact = "critical"
	ImpactSerious  Impact = "serious"
	ImpactModerate Impact = "moderate"
	ImpactMinor    Impact = "minor"
)

// ParseImpact maps a raw engine value onto a known impact, defaulting to minor
func ParseImpact(s string) Impact {
	switch Impact(s) {
	case ImpactCritical, ImpactSerious, ImpactModerate, ImpactMinor:
		return Impact(s)
	}
	return ImpactMinor
}

// AuditStatus tells a clean page apart from a page the engine could not check
type AuditStatus string

const (
	AuditComplete   AuditStatus = "complete"
	AuditIncomplete AuditStatus = "incomplete"
)

// ViolationNode is a single offending DOM node
type ViolationNode struct {
	HTML           string   `json:"html"`
	FailureSummary string   `json:"failureSummary"`
	Target         []string `json:"target"`
}

// Violation is one failed accessibility rule
type Violation struct {
	ID          string          `json:"id"`
	Impact      Impact          `json:"impact"`
	Description string          `json:"description"`
	Help        string          `json:"help"`
	HelpURL     string          `json:"helpUrl"`
	Nodes       []ViolationNode `json:"nodes"`
}

// AuditResult is a CrawlResult with the accessibility findings for the page
type AuditResult struct {
	CrawlResult
	TotalViolations int         `json:"totalViolations"`
	Violations      []Violation `json:"violations"`
	AuditStatus     AuditStatus `json:"auditStatus"`
	AuditError      string      `json:"auditError,omitempty"`
}

// NewAuditResult builds a complete AuditResult, deriving the node total
func NewAuditResult(page CrawlResult, violations []Violation) AuditResult {
	if violations == nil {
		violations = []Violation{}
	}
	return AuditResult{
		CrawlResult:     page,
		TotalViolations: CountNodes(violations),
		Violations:      violations,
		AuditStatus:     AuditComplete,
	}
}

// NewIncompleteAuditResult records a page whose audit failed
func NewIncompleteAuditResult(page CrawlResult, err error) AuditResult {
	r := NewAuditResult(page, nil)
	r.AuditStatus = AuditIncomplete
	if err != nil {
		r.AuditError = err.Error()
	}
	return r
}

// CountNodes sums the affected nodes across violations
func CountNodes(violations []Violation) int {
	total := 0
	for _, v := range violations {
		total += len(v.Nodes)
	}
	return total
}

// AuditMetadata describes who ran an audit and for which platform
type AuditMetadata struct {
	Platform string `json:"platform"`
	Auditor  string `json:"auditor"`
	Date     string `json:"date"`
	BaseURL  string `json:"baseUrl,omitempty"`
}

// DefaultAuditMetadata fills in the blanks the caller left
func DefaultAuditMetadata(m AuditMetadata, now time.Time) AuditMetadata {
	if m.Platform == "" {
		m.Platform = "PC"
	}
	if m.Auditor == "" {
		m.Auditor = "자동진단시스템"
	}
	if m.Date == "" {
		m.Date = now.Format("2006-01-02")
	}
	return m
}

// Report modes
const (
	ModeCrawl = "crawl"
	ModeAudit = "audit"
)

// Report is the session output handed to exporters
type Report struct {
	Mode        string         `json:"mode"`
	BaseURL     string         `json:"baseUrl"`
	GeneratedAt time.Time      `json:"generatedAt"`
	Metadata    *AuditMetadata `json:"metadata,omitempty"`
	Pages       []CrawlResult  `json:"pages,omitempty"`
	Audits      []AuditResult  `json:"audits,omitempty"`
	Stats       Stats          `json:"stats"`
}

// Inventory returns the plain page list regardless of mode
func (r *Report) Inventory() []CrawlResult {
	if r.Mode != ModeAudit {
		return r.Pages
	}
	pages := make([]CrawlResult, 0, len(r.Audits))
	for _, a := range r.Audits {
		pages = append(pages, a.CrawlResult)
	}
	return pages
}
