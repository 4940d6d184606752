package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/BenjaminSRussell/siteaudit/internal/types"
)

var (
	startURL    string
	useLogin    bool
	loginURL    string
	gnbSelector string

	// Browser
	backend    string
	headless   bool
	chromePath string
	platform   string

	// Timing
	navTimeout   time.Duration
	idleTimeout  time.Duration
	pageDelay    time.Duration
	loginTimeout time.Duration

	excludeExt string

	// Output
	formats   string
	outputs   string
	outputDir string
)

var crawlCmd = &cobra.Command{
	Use:   "crawl",
	Short: "Build the page inventory of a site",
	Long: `Crawl every same-domain page reachable from --url and write the inventory:
URL, title and four navigation depth labels per page.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSession(cmd, types.ModeCrawl)
	},
}

// addSessionFlags registers the flags crawl and audit share
func addSessionFlags(cmd *cobra.Command) {
	defaults := types.DefaultConfig()

	cmd.Flags().StringVar(&startURL, "url", "", "Start URL (required unless set in the config file)")
	cmd.Flags().BoolVar(&useLogin, "login", false, "Open the login page and wait for a manual login first")
	cmd.Flags().StringVar(&loginURL, "login-url", "", "Login page (default: the start URL)")
	cmd.Flags().StringVar(&gnbSelector, "gnb-selector", "", "CSS selector of the navigation menu (default: common GNB selectors)")

	cmd.Flags().StringVar(&backend, "backend", defaults.Backend, "Browser backend: chrome/static")
	cmd.Flags().BoolVar(&headless, "headless", defaults.Headless, "Run Chrome headless (login needs a visible window)")
	cmd.Flags().StringVar(&chromePath, "chrome-path", "", "Chrome executable (default: auto-detect)")
	cmd.Flags().StringVar(&platform, "platform", "PC", "Browser profile: PC/Mobile")

	cmd.Flags().DurationVar(&navTimeout, "timeout", defaults.NavigationTimeout, "Page navigation timeout")
	cmd.Flags().DurationVar(&idleTimeout, "idle-timeout", defaults.NetworkIdleTimeout, "Network idle wait before auditing")
	cmd.Flags().DurationVar(&pageDelay, "delay", defaults.PageDelay, "Pause after each page")
	cmd.Flags().DurationVar(&loginTimeout, "login-timeout", defaults.LoginTimeout, "How long to wait for a manual login")

	cmd.Flags().StringVar(&excludeExt, "exclude-ext", ".pdf", "Comma-separated file extensions never visited")

	cmd.Flags().StringVar(&formats, "format", "json", "Comma-separated export formats: json/csv/xlsx/md/sitemap/sqlite")
	cmd.Flags().StringVarP(&outputs, "output", "o", "", "Comma-separated output files; format taken from the extension")
	cmd.Flags().StringVar(&outputDir, "output-dir", ".", "Directory for exported files")
}

func init() {
	addSessionFlags(crawlCmd)
}
