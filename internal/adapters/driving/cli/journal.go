package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/quietpath/ripple/internal/adapters/driving/tui"
)

// journalCmd launches the interactive journey.
var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Open the guided reflection journey",
	Long: `Open the interactive terminal journey.

The journey walks through nine short steps. Answers are saved as you
go; leave and return whenever you like.

Controls:
  tab, ↑/↓  - Move between fields
  ctrl+n/p  - Next / previous step
  esc       - Back to menu
  ctrl+c    - Quit`,
	RunE: runJournal,
}

func init() {
	rootCmd.AddCommand(journalCmd)
}

func runJournal(cmd *cobra.Command, _ []string) error {
	// Panic recovery keeps a stack trace visible after the alternate
	// screen is torn down.
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	svcs, err := getServices()
	if err != nil {
		return err
	}

	ports := tui.NewPorts(svcs.Journal, svcs.Progress, svcs.Diagram, svcs.Insight)

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(cmd.Context())

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	// Debounced edits from the final moments of the session.
	svcs.Journal.Flush()
	return nil
}
