package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/quietpath/ripple/internal/core/ports/driving"
)

var exportFormat string

// exportCmd writes the journal to a file.
var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export the journal to a file",
	Long: `Export the journal as JSON or as a readable text digest.

Without a file argument the export is written to a date-named file in
the current directory, e.g. ripple-journal-2026-08-28.json.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "export format: json or text")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	format := driving.ExportFormat(exportFormat)
	if !format.IsValid() {
		return fmt.Errorf("unknown format %q (want json or text)", exportFormat)
	}

	svcs, err := getServices()
	if err != nil {
		return err
	}

	payload, err := svcs.Journal.ExportData(format)
	if err != nil {
		return err
	}

	path := defaultExportPath(format)
	if len(args) == 1 {
		path = args[0]
	}

	if err := os.WriteFile(path, []byte(payload), 0600); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}

	cmd.Printf("Exported journal to %s\n", path)
	return nil
}

func defaultExportPath(format driving.ExportFormat) string {
	ext := "json"
	if format == driving.ExportText {
		ext = "txt"
	}
	return fmt.Sprintf("ripple-journal-%s.%s", time.Now().Format("2006-01-02"), ext)
}
