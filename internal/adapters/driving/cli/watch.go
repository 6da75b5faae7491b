package cli

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	configfile "github.com/inkwell-tools/bionify/internal/adapters/driven/config/file"
	"github.com/inkwell-tools/bionify/internal/core/domain"
	"github.com/inkwell-tools/bionify/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch [directory]",
	Short: "Watch a directory and convert new EPUB files",
	Long: `Monitors a directory and converts every EPUB file that appears in it.
Converted books are written next to the original with a "_bionic"
suffix. Files that already carry the suffix are ignored.

Runs until interrupted with Ctrl+C.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if converterService == nil {
		return errors.New("converter service not configured")
	}

	dir := args[0]
	opts := configfile.EmphasisOptionsFromConfig(configStore)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w := watcher.New(dir)
	defer w.Close()

	events, err := w.Watch(ctx)
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	cmd.Printf("Watching %s for EPUB files (Ctrl+C to stop)...\n", dir)

	for ev := range events {
		job := domain.ConversionJob{
			ID:         uuid.NewString(),
			InputPath:  ev.Path,
			OutputPath: domain.OutputName(ev.Path),
			Options:    opts,
		}

		cmd.Printf("Converting %s...\n", ev.Path)

		report, err := converterService.Convert(ctx, job, nil)
		if err != nil {
			cmd.Printf("Conversion of %s failed: %v\n", ev.Path, err)
			continue
		}

		cmd.Printf("Saved %s (%d of %d entries rewritten)\n",
			report.OutputPath, report.DocumentsRewritten, report.EntriesTotal)
	}

	return nil
}
