package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mailkeeper/internal/infrastructure/export"
)

var (
	exportLimit int
	exportOut   string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the newest records to an xlsx file",
	Long: `Write the newest records (highest id first) to an xlsx file.
The document is identical to GET /api/emails/excel.

Example:
  mailkeeper export --limit 500 --out emails.xlsx`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		service, err := newService()
		if err != nil {
			return err
		}

		doc, err := service.Export(cmd.Context(), exportLimit)
		if err != nil {
			return err
		}

		if err := os.WriteFile(exportOut, doc, 0o600); err != nil {
			return fmt.Errorf("write %s: %w", exportOut, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d bytes to %s\n", len(doc), exportOut)
		return nil
	},
}

func init() {
	exportCmd.Flags().IntVar(&exportLimit, "limit", 100, "number of records to export")
	exportCmd.Flags().StringVar(&exportOut, "out", export.FileName, "output file")
}
