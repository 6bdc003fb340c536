package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var importMerge bool

// importCmd restores the journal from an exported JSON file.
var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a journal from an exported JSON file",
	Long: `Import a journal previously written by "ripple export".

By default the imported journal replaces the current one. With --merge
the imported answers are merged onto a fresh default document instead,
healing any missing sections.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().BoolVar(&importMerge, "merge", false, "merge onto defaults instead of replacing")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	payload, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading import file: %w", err)
	}

	svcs, err := getServices()
	if err != nil {
		return err
	}

	if err := svcs.Journal.ImportData(payload, importMerge); err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	cmd.Printf("Imported journal from %s\n", args[0])
	return nil
}
