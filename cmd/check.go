// =============================================================================
// Bulk Annotation KV - Check Command
// =============================================================================
//
// This file defines the 'check' command, which validates the annotation
// configuration file without transforming anything. It runs the same
// resolution the transform command would, so a configuration that passes
// here will construct cleanly later.
//
// COMMAND USAGE:
//   bulkannot check [--config file]
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openmcy/bulk-annotation-kv/internal/annotation"
	"github.com/openmcy/bulk-annotation-kv/internal/config"
)

// checkCmd represents the 'check' command.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the annotation configuration file",
	Long: `The check command loads the annotation configuration file and resolves
the defaults and every column configuration. Unknown option keys, missing or
empty column names and malformed clientvalue templates are reported as
errors.

Header matching cannot be checked here since it depends on the input table;
it is verified when a table is transformed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCheck()
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

// runCheck resolves the configuration and reports the outcome.
func runCheck() error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load annotation config: %w", err)
	}

	resolved, err := annotation.NewConfiguration(cfg.Defaults, cfg.Columns)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	fmt.Printf("%s: OK (%d column(s) configured)\n", cfgFile, len(resolved.Columns))
	if verbose {
		for _, col := range resolved.Columns {
			fmt.Printf("  - %v\n", col[annotation.OptName])
		}
	}
	return nil
}
