package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	configfile "github.com/inkwell-tools/bionify/internal/adapters/driven/config/file"
	"github.com/inkwell-tools/bionify/internal/core/domain"
)

var convertCmd = &cobra.Command{
	Use:   "convert [input] [output]",
	Short: "Convert an EPUB to bionic reading",
	Long: `Converts an EPUB file by emphasizing the leading letters of each word
in its HTML documents. Images, styles and all other entries are copied
through unchanged.

If no output path is given, the converted book is written next to the
input with a "_bionic" suffix ("book.epub" becomes "book_bionic.epub").`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runConvert,
}

// convertTag is the --tag flag value.
var convertTag string

func init() {
	convertCmd.Flags().StringVarP(&convertTag, "tag", "t", "",
		`Emphasis element to use: "b" or "strong" (default from config)`)
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	if converterService == nil {
		return errors.New("converter service not configured")
	}

	input := args[0]
	output := domain.OutputName(input)
	if len(args) > 1 {
		output = args[1]
	}

	opts := configfile.EmphasisOptionsFromConfig(configStore)
	if convertTag != "" {
		tag := domain.EmphasisTag(convertTag)
		if !tag.IsValid() {
			return fmt.Errorf("invalid emphasis tag %q (use \"b\" or \"strong\")", convertTag)
		}
		opts.Tag = tag
	}

	if _, err := os.Stat(output); err == nil {
		cmd.Printf("Warning: overwriting existing file %s\n", output)
	}

	job := domain.ConversionJob{
		ID:         uuid.NewString(),
		InputPath:  input,
		OutputPath: output,
		Options:    opts,
	}

	cmd.Printf("Converting %s...\n", input)

	report, err := converterService.Convert(cmd.Context(), job, func(ev domain.ProgressEvent) {
		cmd.Printf("\rProgress: %3d%% (%d/%d entries)", ev.Percent, ev.Index, ev.Total)
	})
	if err != nil {
		return fmt.Errorf("conversion failed: %w", err)
	}
	cmd.Println()

	cmd.Printf("Saved bionic version to: %s\n", report.OutputPath)
	cmd.Printf("Rewrote %d of %d entries.\n", report.DocumentsRewritten, report.EntriesTotal)

	if len(report.Failures) > 0 {
		cmd.Printf("Warning: %d entries could not be rewritten and were copied unchanged:\n",
			len(report.Failures))
		for _, f := range report.Failures {
			cmd.Printf("  %s: %s\n", f.Entry, f.Reason)
		}
	}

	return nil
}
