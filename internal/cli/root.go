package cli

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/BenjaminSRussell/siteaudit/internal/logging"
)

var (
	configFile string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "siteaudit",
	Short: "Same-domain site crawler with accessibility auditing",
	Long: `siteaudit walks every page of a site reachable from a start URL, labels each
page with the site's navigation menu, and optionally audits it with axe-core
against KWCAG 2.2.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default ./.siteaudit.yaml or $XDG_CONFIG_HOME/siteaudit/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log through slog on stderr")

	rootCmd.AddCommand(crawlCmd)
	rootCmd.AddCommand(auditCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(versionCmd)
}

func setupLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}

// newSink prints progress lines to out, or hands them to slog with --verbose
func newSink(out io.Writer) logging.Sink {
	if verbose {
		return logging.NewSlogSink(setupLogger(true), slog.LevelInfo)
	}
	return logging.NewWriterSink(out)
}
