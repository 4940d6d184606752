package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/BenjaminSRussell/siteaudit/internal/export"
)

var (
	exportFormats   string
	exportOutputs   string
	exportOutputDir string
)

var exportCmd = &cobra.Command{
	Use:   "export <report.json>",
	Short: "Convert a saved JSON report",
	Long: `Re-render a JSON report written by crawl or audit into other formats:
csv, xlsx, md, sitemap (XML) or sqlite.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		report, err := export.LoadJSON(args[0])
		if err != nil {
			return err
		}

		exporter, err := export.NewExporter(exportOutputDir)
		if err != nil {
			return err
		}

		count := 0
		for _, format := range splitList(exportFormats) {
			path, err := exporter.Export(report, format, "")
			if err != nil {
				return fmt.Errorf("export failed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %s\n", path)
			count++
		}
		for _, name := range splitList(exportOutputs) {
			path, err := exporter.Export(report, "", name)
			if err != nil {
				return fmt.Errorf("export failed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %s\n", path)
			count++
		}

		if count == 0 {
			return fmt.Errorf("nothing to export: pass --format or --output")
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportFormats, "format", "", "Comma-separated formats: json/csv/xlsx/md/sitemap/sqlite")
	exportCmd.Flags().StringVarP(&exportOutputs, "output", "o", "", "Comma-separated output files; format taken from the extension")
	exportCmd.Flags().StringVar(&exportOutputDir, "output-dir", ".", "Directory for exported files")
}
