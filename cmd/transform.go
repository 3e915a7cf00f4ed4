// =============================================================================
// Bulk Annotation KV - Transform Command
// =============================================================================
//
// This file defines the 'transform' command, which converts one or more
// bulk-annotation tables into key/value output.
//
// COMMAND USAGE:
//   bulkannot transform [files...] [flags]
//
// PROCESSING PIPELINE (per file):
//   1. Read the table (CSV or XLSX, chosen by extension)
//   2. Build the transformer from the annotation configuration
//   3. Transform every row into ordered (key, values) pairs
//   4. Render the pairs (aligned or TSV) to a file or stdout
//   5. Optionally archive the processed input
//
// Files are processed concurrently, one goroutine per file. Errors in one
// file do not affect the others.
//
// =============================================================================

package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/openmcy/bulk-annotation-kv/internal/annotation"
	"github.com/openmcy/bulk-annotation-kv/internal/config"
	"github.com/openmcy/bulk-annotation-kv/internal/csvparser"
	"github.com/openmcy/bulk-annotation-kv/internal/kvwriter"
	"github.com/openmcy/bulk-annotation-kv/internal/types"
	"github.com/openmcy/bulk-annotation-kv/internal/xlsxparser"
	"github.com/openmcy/bulk-annotation-kv/pkg/utils"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// toStdout renders results to standard output instead of output files.
var toStdout bool

// passthrough pairs headers with values directly, ignoring the column
// configuration.
var passthrough bool

// archiveDir moves successfully processed inputs into this directory.
// Empty disables archival.
var archiveDir string

// outDir overrides the configured output directory.
var outDir string

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// result is the outcome of transforming a single file.
type result struct {
	filePath   string
	outputFile string
	rows       int
	rendered   []byte // set when writing to stdout
	err        error
	elapsed    time.Duration
}

// =============================================================================
// TRANSFORM COMMAND DEFINITION
// =============================================================================

// transformCmd represents the 'transform' command.
var transformCmd = &cobra.Command{
	Use:   "transform [files...]",
	Short: "Transform bulk-annotation tables into key/value lists",
	Long: `The transform command reads each table file, applies the column
configuration from the annotation configuration file, and writes the
resulting key/value lists.

Columns not mentioned in the configuration are dropped. Use --passthrough to
pair every header with its raw value instead.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTransform(args)
	},
}

func init() {
	rootCmd.AddCommand(transformCmd)

	transformCmd.Flags().BoolVar(
		&toStdout,
		"stdout",
		false,
		"Write key/value output to stdout instead of output files",
	)

	transformCmd.Flags().BoolVar(
		&passthrough,
		"passthrough",
		false,
		"Pair headers with values directly, without any transformation",
	)

	transformCmd.Flags().StringVar(
		&archiveDir,
		"archive",
		"",
		"Move processed input files into this directory",
	)

	transformCmd.Flags().StringVar(
		&outDir,
		"out-dir",
		"",
		"Override the configured output directory",
	)
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// runTransform orchestrates the transformation of all requested files.
func runTransform(files []string) error {
	startTime := time.Now()

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load annotation config: %w", err)
	}
	if outDir != "" {
		cfg.Output.Directory = outDir
	}

	format, err := kvwriter.ParseFormat(cfg.Output.Format)
	if err != nil {
		return err
	}
	opts := kvwriter.DefaultOptions()
	opts.Format = format

	if !toStdout {
		if err := utils.EnsureDir(cfg.Output.Directory); err != nil {
			return err
		}
	}

	if verbose {
		fmt.Printf("Loaded configuration from %s (%d column(s) configured)\n",
			cfgFile, len(cfg.Columns))
	}

	var wg sync.WaitGroup
	results := make(chan result, len(files))

	for _, file := range files {
		wg.Add(1)
		go func(filePath string) {
			defer wg.Done()
			results <- transformFile(filePath, cfg, opts)
		}(file)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	var successCount, errorCount int
	for res := range results {
		if res.err != nil {
			errorCount++
			fmt.Fprintf(os.Stderr, "  %s: %v\n", filepath.Base(res.filePath), res.err)
			continue
		}
		successCount++

		if toStdout {
			os.Stdout.Write(res.rendered)
		} else if verbose {
			fmt.Printf("  %s -> %s (%d row(s), %s)\n",
				filepath.Base(res.filePath), res.outputFile, res.rows, res.elapsed)
		}

		if archiveDir != "" {
			if _, err := utils.ArchiveFile(res.filePath, archiveDir, true); err != nil {
				fmt.Fprintf(os.Stderr, "  %v\n", err)
			}
		}
	}

	if !toStdout {
		fmt.Printf("Transformed %d file(s), %d error(s), elapsed %s\n",
			successCount, errorCount, time.Since(startTime).Round(time.Millisecond))
	}
	if errorCount > 0 {
		return fmt.Errorf("%d file(s) failed", errorCount)
	}
	return nil
}

// transformFile runs the whole pipeline for one input file.
//
// The transformer treats a row-shape mismatch as a contract violation and
// panics; a ragged input file must only fail its own result, so the panic is
// recovered here and surfaced as this file's error.
func transformFile(filePath string, cfg *config.AnnotationConfig, opts kvwriter.Options) (res result) {
	defer func() {
		if r := recover(); r != nil {
			res.err = fmt.Errorf("malformed table: %v", r)
		}
	}()

	start := time.Now()
	res = result{filePath: filePath}

	table, err := readTable(filePath, cfg)
	if err != nil {
		res.err = err
		return res
	}
	res.rows = table.RowCount

	var buf bytes.Buffer
	if passthrough {
		p := annotation.NewPassThrough(table.Headers)
		err = kvwriter.WritePairSeqs(&buf, p.Rows(slices.Values(table.Rows)), opts)
	} else {
		var tr *annotation.KeyValueTransformer
		tr, err = annotation.NewKeyValueTransformer(table.Headers, cfg.Defaults, cfg.Columns)
		if err == nil {
			err = kvwriter.WriteRows(&buf, tr.TransformAll(table.Rows), opts)
		}
	}
	if err != nil {
		res.err = err
		return res
	}

	if toStdout {
		res.rendered = buf.Bytes()
	} else {
		name := utils.OutputFileName(cfg.Output.NameFormat, filePath)
		outPath := filepath.Join(cfg.Output.Directory, name)
		if err := os.WriteFile(outPath, buf.Bytes(), 0644); err != nil {
			res.err = fmt.Errorf("failed to write output: %w", err)
			return res
		}
		res.outputFile = outPath
	}

	res.elapsed = time.Since(start).Round(time.Millisecond)
	return res
}

// readTable picks the parser by file extension.
func readTable(filePath string, cfg *config.AnnotationConfig) (*types.Table, error) {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".csv", ".tsv", ".txt":
		return csvparser.Parse(filePath, cfg.CSV)
	case ".xlsx", ".xlsm":
		return xlsxparser.Parse(filePath, cfg.XLSX)
	default:
		return nil, fmt.Errorf("unsupported file type: %s", filePath)
	}
}
