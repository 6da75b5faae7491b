package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	configfile "github.com/inkwell-tools/bionify/internal/adapters/driven/config/file"
	"github.com/inkwell-tools/bionify/internal/core/domain"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long: `View and change Bionify settings.

Available keys:
  emphasis.tag         - Emphasis element, "b" or "strong"
  emphasis.extensions  - Comma-separated document extensions
  history.enabled      - Record conversions, "true" or "false"`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	opts := configfile.EmphasisOptionsFromConfig(configStore)

	cmd.Println("Current Configuration")
	cmd.Println("=====================")
	cmd.Printf("Emphasis tag:    %s\n", opts.Tag)
	cmd.Printf("Extensions:      %s\n", strings.Join(opts.Extensions, ", "))
	cmd.Printf("History enabled: %t\n", configfile.HistoryEnabled(configStore))
	cmd.Printf("Config file:     %s\n", configStore.Path())

	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	key, raw := args[0], args[1]

	var value any
	switch key {
	case configfile.KeyEmphasisTag:
		if !domain.EmphasisTag(raw).IsValid() {
			return fmt.Errorf("invalid emphasis tag %q (use \"b\" or \"strong\")", raw)
		}
		value = raw

	case configfile.KeyExtensions:
		exts := []string{}
		for _, ext := range strings.Split(raw, ",") {
			ext = strings.TrimSpace(ext)
			if ext == "" {
				continue
			}
			if !strings.HasPrefix(ext, ".") {
				ext = "." + ext
			}
			exts = append(exts, ext)
		}
		if len(exts) == 0 {
			return fmt.Errorf("no extensions given")
		}
		value = exts

	case configfile.KeyHistoryEnabled:
		enabled, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("invalid boolean %q", raw)
		}
		value = enabled

	default:
		return fmt.Errorf("unknown configuration key: %s", key)
	}

	if err := configStore.Set(key, value); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	cmd.Printf("Set %s = %s\n", key, raw)
	return nil
}
