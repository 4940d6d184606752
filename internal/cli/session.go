package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/BenjaminSRussell/siteaudit/internal/audit"
	"github.com/BenjaminSRussell/siteaudit/internal/config"
	"github.com/BenjaminSRussell/siteaudit/internal/crawler"
	"github.com/BenjaminSRussell/siteaudit/internal/export"
	"github.com/BenjaminSRussell/siteaudit/internal/logging"
	"github.com/BenjaminSRussell/siteaudit/internal/renderer"
	"github.com/BenjaminSRussell/siteaudit/internal/types"
)

// buildConfig loads the config file and applies the flags the user set
func buildConfig(cmd *cobra.Command, mode string) (types.Config, error) {
	cfg, path, err := config.Load(configFile)
	if err != nil {
		return cfg, err
	}
	if path != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Using config file: %s\n", path)
	}

	flags := cmd.Flags()
	if flags.Changed("url") {
		cfg.BaseURL = startURL
	}
	if flags.Changed("login") {
		cfg.UseLogin = useLogin
	}
	if flags.Changed("login-url") {
		cfg.LoginURL = loginURL
	}
	if flags.Changed("gnb-selector") {
		cfg.GNBSelector = gnbSelector
	}
	if flags.Changed("backend") {
		cfg.Backend = backend
	}
	if flags.Changed("headless") {
		cfg.Headless = headless
	}
	if flags.Changed("chrome-path") {
		cfg.ChromePath = chromePath
	}
	if flags.Changed("timeout") {
		cfg.NavigationTimeout = navTimeout
	}
	if flags.Changed("idle-timeout") {
		cfg.NetworkIdleTimeout = idleTimeout
	}
	if flags.Changed("delay") {
		cfg.PageDelay = pageDelay
	}
	if flags.Changed("login-timeout") {
		cfg.LoginTimeout = loginTimeout
	}
	if flags.Changed("exclude-ext") || len(cfg.ExcludeExtensions) == 0 {
		cfg.ExcludeExtensions = splitList(excludeExt)
	}

	cfg.EnableAudit = mode == types.ModeAudit
	if cfg.EnableAudit {
		if flags.Changed("axe-script") {
			cfg.AxeScriptPath = axeScript
		}
		if flags.Changed("axe-url") {
			cfg.AxeScriptURL = axeURL
		}
		if flags.Changed("audit-timeout") {
			cfg.AuditReadyTimeout = auditTimeout
		}
	}

	return cfg, crawler.ValidateConfig(cfg)
}

// runSession crawls (or audits) the configured site and exports the report.
// An interrupted crawl still exports what it collected.
func runSession(cmd *cobra.Command, mode string) error {
	cfg, err := buildConfig(cmd, mode)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	sink := newSink(cmd.OutOrStdout())

	launcher, err := crawler.NewLauncher(cfg, renderer.ProfileFor(platform))
	if err != nil {
		return fmt.Errorf("failed to create browser backend: %w", err)
	}

	var auditor crawler.Auditor
	if mode == types.ModeAudit {
		auditor = audit.NewAuditor(audit.OptionsFromConfig(cfg), sink)
	}

	session, err := crawler.New(cfg, launcher, auditor, sink)
	if err != nil {
		return fmt.Errorf("failed to create crawler: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report := &types.Report{
		Mode:    mode,
		BaseURL: cfg.BaseURL,
	}

	var crawlErr error
	if mode == types.ModeAudit {
		report.Audits, crawlErr = session.CrawlWithAudit(ctx)
		meta := types.DefaultAuditMetadata(types.AuditMetadata{
			Platform: renderer.ProfileFor(platform).Name,
			Auditor:  auditorName,
			BaseURL:  cfg.BaseURL,
		}, time.Now())
		report.Metadata = &meta
	} else {
		report.Pages, crawlErr = session.Crawl(ctx)
	}
	report.GeneratedAt = time.Now()
	report.Stats = session.Stats()

	if crawlErr != nil && !errors.Is(crawlErr, context.Canceled) {
		return fmt.Errorf("crawl failed: %w", crawlErr)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Crawl completed!\n")
	fmt.Fprintf(cmd.OutOrStdout(), "Discovered: %d, Processed: %d, Errors: %d\n",
		report.Stats.Discovered, report.Stats.Processed, report.Stats.Errors)
	if mode == types.ModeAudit {
		fmt.Fprintf(cmd.OutOrStdout(), "Violations: %d, Audits incomplete: %d\n",
			countViolations(report.Audits), report.Stats.AuditsIncomplete)
	}

	if err := writeReport(cmd, report, sink); err != nil {
		return err
	}
	return crawlErr
}

// writeReport exports report once per requested format and output file.
// Explicit --output files replace the default json export.
func writeReport(cmd *cobra.Command, report *types.Report, sink logging.Sink) error {
	exporter, err := export.NewExporter(outputDir)
	if err != nil {
		return err
	}

	type target struct{ format, name string }
	targets := make([]target, 0)

	files := splitList(outputs)
	if len(files) == 0 || cmd.Flags().Changed("format") {
		for _, format := range splitList(formats) {
			targets = append(targets, target{format: format})
		}
	}
	for _, name := range files {
		targets = append(targets, target{name: name})
	}

	for _, t := range targets {
		path, err := exporter.Export(report, t.format, t.name)
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}
		logging.Emitf(sink, "Exported %s", path)
	}
	return nil
}

func countViolations(audits []types.AuditResult) int {
	total := 0
	for _, a := range audits {
		total += a.TotalViolations
	}
	return total
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
