// =============================================================================
// Bulk Annotation KV - Configuration Module
// =============================================================================
//
// This module loads the annotation configuration file. The file carries the
// raw column configuration (defaults plus per-column overrides) together
// with peripheral settings for reading tables and writing output.
//
// FILE LAYOUT (YAML):
//
//   defaults:
//     clientvalue: "{{ value }}"
//   columns:
//     - name: Gene
//       clientname: Gene Symbol
//     - name: Aliases
//       split: ";"
//   csv:
//     delimiter: ","
//     skip_rows: 0
//   xlsx:
//     sheet: ""
//   output:
//     directory: ./output
//     name_format: "{name}_{uuid}.txt"
//     format: aligned
//
// The loader only decodes and fills in peripheral defaults. Legality of the
// defaults/columns mappings is the annotation resolver's job, enforced when
// a transformer is constructed.
//
// =============================================================================

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/openmcy/bulk-annotation-kv/internal/annotation"
)

// =============================================================================
// CONFIGURATION STRUCTURES
// =============================================================================

// AnnotationConfig is the decoded annotation configuration file.
type AnnotationConfig struct {
	// Defaults is the raw default column configuration, possibly empty.
	Defaults annotation.Options `yaml:"defaults"`

	// Columns holds one raw configuration per table column to transform,
	// in output order.
	Columns []annotation.Options `yaml:"columns"`

	// CSV contains settings for reading CSV input files.
	CSV CSVSettings `yaml:"csv"`

	// XLSX contains settings for reading XLSX input files.
	XLSX XLSXSettings `yaml:"xlsx"`

	// Output contains settings for writing the transformed key/value lists.
	Output OutputSettings `yaml:"output"`
}

// CSVSettings contains settings for parsing CSV files.
type CSVSettings struct {
	// Delimiter separates fields. Accepts a literal character or the
	// aliases "tab", "pipe" and "semicolon".
	// Default: ","
	Delimiter string `yaml:"delimiter"`

	// SkipRows is the number of leading rows to discard before the header
	// row. Default: 0
	SkipRows int `yaml:"skip_rows"`
}

// XLSXSettings contains settings for parsing XLSX files.
type XLSXSettings struct {
	// Sheet is the worksheet to read. Empty selects the active sheet.
	Sheet string `yaml:"sheet"`

	// SkipRows is the number of leading rows to discard before the header
	// row. Default: 0
	SkipRows int `yaml:"skip_rows"`
}

// OutputSettings controls where and how key/value output is written.
type OutputSettings struct {
	// Directory is where output files are placed.
	// Default: "./output"
	Directory string `yaml:"directory"`

	// NameFormat defines output file names. Placeholders:
	//   {uuid}      - a random UUID
	//   {timestamp} - current timestamp (YYYYMMDD_HHMMSS)
	//   {name}      - input file name without extension
	// Default: "{name}_{uuid}.txt"
	NameFormat string `yaml:"name_format"`

	// Format selects the output rendering: "aligned" or "tsv".
	// Default: "aligned"
	Format string `yaml:"format"`
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads and decodes an annotation configuration file and applies
// peripheral defaults.
func Load(path string) (*AnnotationConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg AnnotationConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

// applyDefaults sets default values for unset peripheral settings.
func applyDefaults(cfg *AnnotationConfig) {
	if cfg.CSV.Delimiter == "" {
		cfg.CSV.Delimiter = ","
	}
	if cfg.Output.Directory == "" {
		cfg.Output.Directory = "./output"
	}
	if cfg.Output.NameFormat == "" {
		cfg.Output.NameFormat = "{name}_{uuid}.txt"
	}
	if cfg.Output.Format == "" {
		cfg.Output.Format = "aligned"
	}
}
