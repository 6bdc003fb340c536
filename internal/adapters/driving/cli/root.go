// Package cli provides the command-line interface for ripple.
// It implements a driving adapter following hexagonal architecture
// principles.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quietpath/ripple/internal/core/ports/driving"
	"github.com/quietpath/ripple/internal/logger"
)

// version is set at build time via ldflags.
var version = "0.1.0"

// Services aggregates the driving ports the commands work against.
type Services struct {
	Journal  driving.JournalService
	Progress driving.ProgressService
	Diagram  driving.DiagramService
	Insight  driving.InsightService

	// Cleanup releases resources (storage handles, watchers) after the
	// command finishes.
	Cleanup func()
}

// serviceFactory builds the services for the resolved data directory.
// Set by main before Execute.
var serviceFactory func(dataDir string) (*Services, error)

// activeServices holds the lazily constructed service aggregate.
var activeServices *Services

var (
	verbose bool
	dataDir string
)

var rootCmd = &cobra.Command{
	Use:   "ripple",
	Short: "A guided self-reflection journal",
	Long: `Ripple is a local-first guided reflection journal.

Nine short steps help you name what you want more of, map the people
and habits that give or drain your energy, and commit to one change.
Everything stays on your machine.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// Bare invocation opens the journey.
		return runJournal(cmd, args)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "data directory (default ~/.ripple)")
}

// SetServiceFactory installs the service constructor. Called by main
// before Execute so commands can build services after flag parsing.
func SetServiceFactory(factory func(dataDir string) (*Services, error)) {
	serviceFactory = factory
}

// getServices builds the service aggregate on first use.
func getServices() (*Services, error) {
	if activeServices != nil {
		return activeServices, nil
	}
	if serviceFactory == nil {
		return nil, fmt.Errorf("services not configured")
	}

	built, err := serviceFactory(dataDir)
	if err != nil {
		return nil, fmt.Errorf("initialising services: %w", err)
	}
	activeServices = built
	return activeServices, nil
}

// Shutdown flushes pending writes and releases resources.
func Shutdown() {
	if activeServices == nil {
		return
	}
	if activeServices.Journal != nil {
		activeServices.Journal.Flush()
	}
	if activeServices.Cleanup != nil {
		activeServices.Cleanup()
	}
	activeServices = nil
}

// Execute runs the root command.
func Execute() error {
	defer Shutdown()
	return rootCmd.Execute()
}

// RootCmd returns the root command (for testing).
func RootCmd() *cobra.Command {
	return rootCmd
}
