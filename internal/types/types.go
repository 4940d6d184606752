package types

import (
	"time"
)

// Backend names accepted in Config.Backend
const (
	BackendChrome = "chrome"
	BackendStatic = "static"
)

// Config holds crawl session configuration
type Config struct {
	BaseURL     string `yaml:"base_url" json:"base_url"`
	UseLogin    bool   `yaml:"use_login" json:"use_login"`
	LoginURL    string `yaml:"login_url" json:"login_url,omitempty"`
	GNBSelector string `yaml:"gnb_selector" json:"gnb_selector,omitempty"`
	EnableAudit bool   `yaml:"enable_audit" json:"enable_audit"`

	// Browser backend
	Backend    string `yaml:"backend" json:"backend"`
	Headless   bool   `yaml:"headless" json:"headless"`
	ChromePath string `yaml:"chrome_path" json:"chrome_path,omitempty"`

	// Timing
	NavigationTimeout  time.Duration `yaml:"navigation_timeout" json:"navigation_timeout"`
	NetworkIdleTimeout time.Duration `yaml:"network_idle_timeout" json:"network_idle_timeout"`
	PageDelay          time.Duration `yaml:"page_delay" json:"page_delay"`
	LoginPollInterval  time.Duration `yaml:"login_poll_interval" json:"login_poll_interval"`
	LoginTimeout       time.Duration `yaml:"login_timeout" json:"login_timeout"`

	// Accessibility engine
	AuditReadyTimeout time.Duration `yaml:"audit_ready_timeout" json:"audit_ready_timeout"`
	AxeScriptPath     string        `yaml:"axe_script_path" json:"axe_script_path,omitempty"`
	AxeScriptURL      string        `yaml:"axe_script_url" json:"axe_script_url,omitempty"`
	AuditTags         []string      `yaml:"audit_tags" json:"audit_tags,omitempty"`
	AuditLocale       string        `yaml:"audit_locale" json:"audit_locale,omitempty"`

	// URL filtering
	ExcludeExtensions []string `yaml:"exclude_extensions" json:"exclude_extensions,omitempty"`
}

// DefaultAxeScriptURL is the CDN copy used when no local axe-core is found
const DefaultAxeScriptURL = "https://cdnjs.cloudflare.com/ajax/libs/axe-core/4.10.2/axe.min.js"

// DefaultConfig returns the configuration a session uses when nothing is overridden
func DefaultConfig() Config {
	return Config{
		Backend:            BackendChrome,
		Headless:           false,
		NavigationTimeout:  60 * time.Second,
		NetworkIdleTimeout: 5 * time.Second,
		PageDelay:          500 * time.Millisecond,
		LoginPollInterval:  2 * time.Second,
		LoginTimeout:       300 * time.Second,
		AuditReadyTimeout:  10 * time.Second,
		AxeScriptURL:       DefaultAxeScriptURL,
		AuditTags:          []string{"wcag2a", "wcag2aa", "wcag21a", "wcag21aa"},
		AuditLocale:        "ko",
	}
}

// EffectiveLoginURL returns the page the login gate opens
func (c Config) EffectiveLoginURL() string {
	if c.LoginURL != "" {
		return c.LoginURL
	}
	return c.BaseURL
}

// Stats contains crawl session counters
type Stats struct {
	Discovered       int  `json:"discovered"`
	Processed        int  `json:"processed"`
	Errors           int  `json:"errors"`
	AuditsIncomplete int  `json:"audits_incomplete"`
	Panics           int  `json:"panics"`
	LoginTimedOut    bool `json:"login_timed_out"`
}

// GnbMap maps a normalized path (no trailing slash) to its navigation label
type GnbMap map[string]string

// CrawlResult is one visited page in the site inventory
type CrawlResult struct {
	URL    string    `json:"url"`
	Title  string    `json:"title"`
	Depths [4]string `json:"depths"`
}
