package crawler

import (
	"fmt"
	"net/url"

	"github.com/BenjaminSRussell/siteaudit/internal/renderer"
	"github.com/BenjaminSRussell/siteaudit/internal/types"
)

// NewLauncher creates the browser backend selected by config.Backend
func NewLauncher(config types.Config, profile renderer.BrowserProfile) (renderer.Launcher, error) {
	switch config.Backend {
	case types.BackendChrome, "":
		return renderer.NewChromeLauncher(renderer.ChromeOptions{
			Headless: config.Headless,
			ExecPath: config.ChromePath,
			Profile:  profile,
		}), nil
	case types.BackendStatic:
		return renderer.NewStaticLauncher(nil, profile), nil
	}
	return nil, fmt.Errorf("unknown backend %q", config.Backend)
}

// ValidateConfig validates crawl session configuration
func ValidateConfig(config types.Config) error {
	if config.BaseURL == "" {
		return fmt.Errorf("base URL is required")
	}

	u, err := url.Parse(config.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("base URL must use http or https, got %q", u.Scheme)
	}
	if u.Hostname() == "" {
		return fmt.Errorf("base URL has no host: %q", config.BaseURL)
	}

	if config.LoginURL != "" {
		if _, err := url.Parse(config.LoginURL); err != nil {
			return fmt.Errorf("invalid login URL: %w", err)
		}
	}

	switch config.Backend {
	case types.BackendChrome, "":
	case types.BackendStatic:
		if config.UseLogin {
			return fmt.Errorf("login requires the %s backend", types.BackendChrome)
		}
	default:
		return fmt.Errorf("unknown backend %q", config.Backend)
	}

	if config.NavigationTimeout <= 0 {
		return fmt.Errorf("navigation timeout must be positive, got %v", config.NavigationTimeout)
	}

	if config.PageDelay < 0 {
		return fmt.Errorf("page delay cannot be negative, got %v", config.PageDelay)
	}

	if config.UseLogin {
		if config.LoginTimeout <= 0 {
			return fmt.Errorf("login timeout must be positive, got %v", config.LoginTimeout)
		}
		if config.LoginPollInterval <= 0 {
			return fmt.Errorf("login poll interval must be positive, got %v", config.LoginPollInterval)
		}
	}

	if config.EnableAudit && config.AuditReadyTimeout <= 0 {
		return fmt.Errorf("audit ready timeout must be positive, got %v", config.AuditReadyTimeout)
	}

	return nil
}
