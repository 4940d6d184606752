// Package audit runs axe-core inside a loaded page and maps its findings
// onto KWCAG 2.2 check items.
package audit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"

	"github.com/BenjaminSRussell/siteaudit/internal/logging"
	"github.com/BenjaminSRussell/siteaudit/internal/renderer"
	"github.com/BenjaminSRussell/siteaudit/internal/types"
)

var (
	// ErrInjection is returned when axe-core could not be loaded into the page
	ErrInjection = errors.New("failed to inject axe-core")
	// ErrEvaluation is returned when axe.run fails or returns garbage
	ErrEvaluation = errors.New("axe-core evaluation failed")
)

// AppName names the XDG data directory searched for a local axe-core copy
const AppName = "siteaudit"

// axeReady is true once the engine's global entry point exists
const axeReady = "typeof window.axe !== 'undefined'"

// Options configures engine loading and the rule selection
type Options struct {
	ScriptPath   string
	ScriptURL    string
	ReadyTimeout time.Duration
	Tags         []string
	Locale       string
}

// OptionsFromConfig extracts the audit options from a session config
func OptionsFromConfig(c types.Config) Options {
	return Options{
		ScriptPath:   c.AxeScriptPath,
		ScriptURL:    c.AxeScriptURL,
		ReadyTimeout: c.AuditReadyTimeout,
		Tags:         c.AuditTags,
		Locale:       c.AuditLocale,
	}
}

// Auditor injects axe-core and runs it against the current page
type Auditor struct {
	opts Options
	sink logging.Sink

	loadOnce    sync.Once
	localSource string
	localPath   string

	mu            sync.Mutex
	engineVersion string
}

// NewAuditor creates an auditor; empty options fall back to the defaults
func NewAuditor(opts Options, sink logging.Sink) *Auditor {
	defaults := OptionsFromConfig(types.DefaultConfig())
	if opts.ScriptURL == "" {
		opts.ScriptURL = defaults.ScriptURL
	}
	if opts.ReadyTimeout <= 0 {
		opts.ReadyTimeout = defaults.ReadyTimeout
	}
	if len(opts.Tags) == 0 {
		opts.Tags = defaults.Tags
	}
	if opts.Locale == "" {
		opts.Locale = defaults.Locale
	}
	if sink == nil {
		sink = logging.Discard
	}
	return &Auditor{opts: opts, sink: sink}
}

// LocalScriptCandidates returns where a local axe.min.js is looked for, in order
func LocalScriptCandidates(configured string) []string {
	candidates := make([]string, 0, 4)
	if configured != "" {
		candidates = append(candidates, configured)
	}
	candidates = append(candidates,
		"axe.min.js",
		filepath.Join("node_modules", "axe-core", "axe.min.js"),
		filepath.Join(xdg.DataHome, AppName, "axe.min.js"),
	)
	return candidates
}

// loadLocal reads the first local axe-core copy found, once
func (a *Auditor) loadLocal() (string, string) {
	a.loadOnce.Do(func() {
		for _, path := range LocalScriptCandidates(a.opts.ScriptPath) {
			data, err := os.ReadFile(path) //nolint:gosec // user-configured script path is intentional
			if err != nil || len(data) == 0 {
				continue
			}
			a.localSource = string(data)
			a.localPath = path
			return
		}
	})
	return a.localSource, a.localPath
}

// Inject loads axe-core into page, preferring a local copy over the CDN,
// and waits for it to become available.
func (a *Auditor) Inject(ctx context.Context, page renderer.Page) error {
	source, path := a.loadLocal()

	injected := false
	if source != "" {
		if err := page.InjectScript(ctx, renderer.Script{Content: source}); err != nil {
			logging.Emitf(a.sink, "Local axe-core injection failed (%s), falling back to CDN: %v", path, err)
		} else {
			injected = true
		}
	} else {
		a.sink.Emit("Local axe-core not found, falling back to CDN")
	}

	if !injected {
		if err := page.InjectScript(ctx, renderer.Script{URL: a.opts.ScriptURL}); err != nil {
			logging.Emitf(a.sink, "Failed to inject axe-core: %v", err)
			return fmt.Errorf("%w: %w", ErrInjection, err)
		}
	}

	if err := page.WaitForFunction(ctx, axeReady, a.opts.ReadyTimeout); err != nil {
		logging.Emitf(a.sink, "Failed to inject axe-core: %v", err)
		return fmt.Errorf("%w: %w", ErrInjection, err)
	}

	return nil
}

// runScript builds the axe.run call for the configured tags and locale
func (a *Auditor) runScript() (string, error) {
	tags, err := json.Marshal(a.opts.Tags)
	if err != nil {
		return "", err
	}
	locale, err := json.Marshal(a.opts.Locale)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf(`(async () => {
	if (!window.axe) throw new Error('Axe not loaded');
	return await window.axe.run({
		runOnly: { type: 'tag', values: %s },
		locale: { lang: %s },
		resultTypes: ['violations'],
	});
})()`, tags, locale), nil
}

// Run audits the page currently loaded in page
func (a *Auditor) Run(ctx context.Context, page renderer.Page) ([]types.Violation, error) {
	if err := a.Inject(ctx, page); err != nil {
		logging.Emitf(a.sink, "Accessibility audit failed: %v", err)
		return nil, err
	}

	script, err := a.runScript()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEvaluation, err)
	}

	var results RawResults
	if err := page.Evaluate(ctx, script, &results); err != nil {
		logging.Emitf(a.sink, "Accessibility audit failed: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrEvaluation, err)
	}

	a.noteEngine(results.TestEngine)
	return MapViolations(results.Violations), nil
}

// EngineVersion returns the axe-core version seen in the last run, if any
func (a *Auditor) EngineVersion() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.engineVersion
}

func (a *Auditor) noteEngine(engine *RawEngine) {
	if engine == nil || engine.Version == "" {
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.engineVersion == "" {
		logging.Emitf(a.sink, "axe-core %s loaded", engine.Version)
	}
	a.engineVersion = engine.Version
}
