// =============================================================================
// Bulk Annotation KV - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. All other commands
// ('transform', 'check', 'version') are attached to it.
//
// COBRA CLI STRUCTURE:
//   rootCmd (bulkannot)
//   ├── transformCmd (bulkannot transform)
//   ├── checkCmd     (bulkannot check)
//   └── versionCmd   (bulkannot version)
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// cfgFile holds the path to the annotation configuration file.
// This can be overridden using the --config flag.
var cfgFile string

// verbose enables verbose output when set to true.
var verbose bool

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "bulkannot",
	Short: "Bulk Annotation KV - Transform bulk-annotation tables into key/value lists",
	Long: `Bulk Annotation KV is a CLI tool that transforms tabular bulk-annotation
exports (CSV or XLSX) into ordered key/value lists suitable for attaching as
metadata to imaging objects.

Each table column can be configured independently: renamed for client
display, hidden, split into multiple values, or rendered through a value
template.

Example Usage:
  bulkannot transform screen_plate1.csv      # Transform one table
  bulkannot transform --passthrough in.csv   # Pair headers and values as-is
  bulkannot check                            # Validate the column configuration`,

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"annotation.yaml",
		"Path to the annotation configuration file",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output",
	)
}
