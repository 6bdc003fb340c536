// Command ripple is a local-first guided reflection journal.
package main

import (
	"fmt"
	"os"

	"github.com/quietpath/ripple/internal/adapters/driven/config/file"
	"github.com/quietpath/ripple/internal/adapters/driven/insight/gemini"
	"github.com/quietpath/ripple/internal/adapters/driven/storage/memory"
	"github.com/quietpath/ripple/internal/adapters/driven/storage/sqlite"
	"github.com/quietpath/ripple/internal/adapters/driving/cli"
	"github.com/quietpath/ripple/internal/core/ports/driven"
	"github.com/quietpath/ripple/internal/core/services"
	"github.com/quietpath/ripple/internal/logger"
)

func main() {
	cli.SetServiceFactory(buildServices)

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// buildServices wires adapters to services for the resolved data
// directory. A storage failure degrades to an in-memory session rather
// than refusing to start.
func buildServices(dataDir string) (*cli.Services, error) {
	var store driven.SlotStore
	var cleanup []func()

	sqliteStore, err := sqlite.NewStore(dataDir)
	if err != nil {
		logger.Warn("storage unavailable, running in-memory: %v", err)
		store = memory.New()
	} else {
		store = sqliteStore
		cleanup = append(cleanup, func() {
			if err := sqliteStore.Close(); err != nil {
				logger.Warn("closing storage: %v", err)
			}
		})
	}

	configStore, err := file.NewConfigStore(dataDir)
	if err != nil {
		return nil, fmt.Errorf("opening config: %w", err)
	}
	if err := configStore.Watch(); err != nil {
		logger.Debug("config watch unavailable: %v", err)
	}
	cleanup = append(cleanup, func() { configStore.Close() })

	generator := gemini.NewClient(
		gemini.WithBaseURL(configStore.GetString("insight.base_url")),
		gemini.WithModel(configStore.GetString("insight.model")),
	)

	journal := services.NewJournalService(store)
	progress := services.NewProgressService(store)
	diagram := services.NewDiagramService()
	insight := services.NewInsightService(generator, store)

	return &cli.Services{
		Journal:  journal,
		Progress: progress,
		Diagram:  diagram,
		Insight:  insight,
		Cleanup: func() {
			for i := len(cleanup) - 1; i >= 0; i-- {
				cleanup[i]()
			}
		},
	}, nil
}
