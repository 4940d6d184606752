package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/BenjaminSRussell/siteaudit/internal/types"
)

var (
	auditorName  string
	axeScript    string
	axeURL       string
	auditTimeout time.Duration
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Crawl a site and run an accessibility audit on every page",
	Long: `Crawl every same-domain page reachable from --url, run axe-core on each page
and map the violations onto KWCAG 2.2 check items.

The xlsx export carries the audit sheet, the 33-item KWCAG checklist and the
IA sheet.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSession(cmd, types.ModeAudit)
	},
}

func init() {
	addSessionFlags(auditCmd)

	defaults := types.DefaultConfig()
	auditCmd.Flags().StringVar(&auditorName, "auditor", "", "Auditor name written to the report (default 자동진단시스템)")
	auditCmd.Flags().StringVar(&axeScript, "axe-script", "", "Local axe.min.js (default: search ./, node_modules and the XDG data dir)")
	auditCmd.Flags().StringVar(&axeURL, "axe-url", defaults.AxeScriptURL, "axe-core CDN URL used when no local copy loads")
	auditCmd.Flags().DurationVar(&auditTimeout, "audit-timeout", defaults.AuditReadyTimeout, "How long to wait for axe-core to load")
}
