// =============================================================================
// Bulk Annotation KV - Main Entry Point
// =============================================================================
//
// This is the main entry point for the Bulk Annotation KV CLI application.
// It initializes the Cobra CLI framework and delegates command execution to
// the cmd package.
//
// USAGE:
//   bulkannot transform [files...] - Transform tables into key/value lists
//   bulkannot check                - Validate the annotation configuration
//   bulkannot version              - Display the application version
//
// ARCHITECTURE:
//   - cmd/        : CLI command definitions (Cobra)
//   - internal/   : Core transformation logic and peripheral modules
//   - pkg/        : Shared utilities
//
// =============================================================================

package main

import (
	"github.com/openmcy/bulk-annotation-kv/cmd"
)

// main is the entry point of the application.
func main() {
	cmd.Execute()
}
