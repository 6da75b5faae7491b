// Package cli implements the Bionify command line interface.
package cli

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/inkwell-tools/bionify/internal/core/ports/driven"
	"github.com/inkwell-tools/bionify/internal/core/ports/driving"
	"github.com/inkwell-tools/bionify/internal/logger"
)

// version is overridden at build time via ldflags.
var version = "dev"

// Services wired by the composition root before Execute.
var (
	converterService driving.ConverterService
	historyService   driving.HistoryService
	configStore      driven.ConfigStore
)

// Services bundles the dependencies the commands need.
type Services struct {
	Converter driving.ConverterService
	History   driving.HistoryService
	Config    driven.ConfigStore
}

// SetServices wires the commands to their backing services.
func SetServices(s Services) {
	converterService = s.Converter
	historyService = s.History
	configStore = s.Config
}

// SetVersion overrides the reported version string.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "bionify",
	Short: "Convert EPUB books to bionic reading",
	Long: `Bionify rewrites the HTML documents inside an EPUB so that the leading
letters of each word are emphasized, a presentation style known as
bionic reading. Everything else in the book is left untouched.

Run without arguments in a terminal to launch the interactive UI.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
	RunE: runRoot,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
}

func runRoot(cmd *cobra.Command, args []string) error {
	// A bare invocation in a terminal opens the interactive UI.
	// Piped or scripted invocations get the help text instead.
	if term.IsTerminal(int(os.Stdout.Fd())) {
		return runTUI(cmd, args)
	}
	return cmd.Help()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
