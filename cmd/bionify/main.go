// Command bionify converts EPUB books to a bionic reading layout.
package main

import (
	"fmt"
	"os"

	configfile "github.com/inkwell-tools/bionify/internal/adapters/driven/config/file"
	"github.com/inkwell-tools/bionify/internal/adapters/driven/storage/memory"
	"github.com/inkwell-tools/bionify/internal/adapters/driven/storage/sqlite"
	"github.com/inkwell-tools/bionify/internal/adapters/driving/cli"
	"github.com/inkwell-tools/bionify/internal/core/ports/driven"
	"github.com/inkwell-tools/bionify/internal/core/services"
	"github.com/inkwell-tools/bionify/internal/logger"
	htmlrewriter "github.com/inkwell-tools/bionify/internal/rewriters/html"
)

// version is set at build time:
//
//	go build -ldflags "-X main.version=1.2.3"
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run() error {
	configStore, err := configfile.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Conversion history lives in sqlite under ~/.bionify. A store
	// failure (read-only home, corrupt file) degrades to an in-memory
	// history rather than blocking conversions.
	var historyStore driven.HistoryStore
	if configfile.HistoryEnabled(configStore) {
		store, err := sqlite.NewStore("")
		if err != nil {
			logger.Warn("History database unavailable, using in-memory history: %v", err)
			historyStore = memory.NewHistoryStore()
		} else {
			defer store.Close()
			historyStore = store.HistoryStore()
		}
	}

	converter := services.NewConverter(htmlrewriter.New(), historyStore)
	history := services.NewHistory(historyStore)

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Converter: converter,
		History:   history,
		Config:    configStore,
	})

	return cli.Execute()
}
