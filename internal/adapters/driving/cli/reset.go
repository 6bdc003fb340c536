package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetConfirm bool

// resetCmd clears all journal data.
var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Erase all journal data",
	Long: `Erase the journal, progress, and start fresh.

The stored credential is kept. This cannot be undone; consider
"ripple export" first.`,
	RunE: runReset,
}

func init() {
	resetCmd.Flags().BoolVar(&resetConfirm, "confirm", false, "confirm erasing all journal data")
	rootCmd.AddCommand(resetCmd)
}

func runReset(cmd *cobra.Command, _ []string) error {
	if !resetConfirm {
		return fmt.Errorf("refusing to erase without --confirm")
	}

	svcs, err := getServices()
	if err != nil {
		return err
	}

	svcs.Journal.ClearAllData()
	svcs.Progress.Reset()

	cmd.Println("Journal erased.")
	return nil
}
