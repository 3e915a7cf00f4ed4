// =============================================================================
// Bulk Annotation KV - Row Transformation Engine
// =============================================================================
//
// This module converts bulk-annotation table rows into ordered key/value
// lists, driven by the resolved column configurations.
//
// PER-COLUMN RULES:
//   - clientname : rename the output key for client display
//   - visible    : when false, prefix the key with "__" to mark it hidden
//   - split      : split the cell on a delimiter into multiple values
//   - clientvalue: render each value through the {{ value }} template
//
// ORDERING:
//   Output pairs follow the order column configurations were supplied, not
//   table header order. Table columns not mentioned in any column
//   configuration produce no output at all.
//
// CONCURRENCY:
//   A transformer is immutable after construction. Transform calls have no
//   side effects, so rows may be transformed from multiple goroutines.
//
// =============================================================================

package annotation

import (
	"fmt"
	"strings"

	"github.com/openmcy/bulk-annotation-kv/internal/types"
)

// =============================================================================
// TRANSFORMER
// =============================================================================

// outputColumn binds a resolved column configuration to the index of its
// source cell within a row.
type outputColumn struct {
	cfg   Options
	index int
}

// KeyValueTransformer converts bulk-annotation rows into key/value lists
// according to a resolved column configuration.
type KeyValueTransformer struct {
	config      *Configuration
	headerIndex map[string]int
	outputs     []outputColumn
}

// NewKeyValueTransformer builds a transformer for the given table headers and
// raw configuration. It fails with a *ConfigError if the configuration is
// invalid or if a configured column name matches no header.
//
// Duplicate headers collapse to the last occurrence's index; the header index
// map is a bijection from header name to row position.
func NewKeyValueTransformer(headers []string, defaults Options, columnCfgs []Options) (*KeyValueTransformer, error) {
	config, err := NewConfiguration(defaults, columnCfgs)
	if err != nil {
		return nil, err
	}

	headerIndex := make(map[string]int, len(headers))
	for i, h := range headers {
		headerIndex[h] = i
	}

	outputs := make([]outputColumn, 0, len(config.Columns))
	for _, cfg := range config.Columns {
		name := fmt.Sprint(cfg[OptName])
		idx, ok := headerIndex[name]
		if !ok {
			return nil, configErrorf("column configuration name not found in headers: %s", name)
		}
		outputs = append(outputs, outputColumn{cfg: cfg, index: idx})
	}

	return &KeyValueTransformer{
		config:      config,
		headerIndex: headerIndex,
		outputs:     outputs,
	}, nil
}

// Config returns the resolved configuration backing this transformer.
func (t *KeyValueTransformer) Config() *Configuration {
	return t.config
}

// =============================================================================
// TRANSFORMATION FUNCTIONS
// =============================================================================

// TransformValue processes a single cell value under a single column
// configuration. The returned pair holds one value unless `split` is set, in
// which case it may hold several.
func TransformValue(value string, cfg Options) types.Pair {
	key := fmt.Sprint(cfg[OptName])
	if cn, ok := cfg[OptClientName]; ok {
		key = fmt.Sprint(cn)
	}
	if v, ok := cfg[OptVisible].(bool); ok && !v {
		key = "__" + key
	}

	var values []string
	if delim := splitDelimiter(cfg); delim != "" {
		for _, piece := range strings.Split(value, delim) {
			values = append(values, strings.TrimSpace(piece))
		}
	} else {
		values = []string{value}
	}

	if cv, ok := cfg[OptClientValue]; ok {
		template := fmt.Sprint(cv)
		for i, v := range values {
			// Literal replacement: cell values are data, not regexp
			// replacement syntax, so $-sequences must survive untouched.
			values[i] = valueTokenRE.ReplaceAllLiteralString(template, v)
		}
	}

	return types.Pair{Key: key, Values: values}
}

// Transform converts one table row into its ordered key/value pairs.
//
// The row must have exactly one cell per table header; a mismatch is a
// caller contract bug and panics. Columns absent from the configuration are
// silently dropped.
func (t *KeyValueTransformer) Transform(rowValues []string) []types.Pair {
	if len(rowValues) != len(t.headerIndex) {
		panic(fmt.Sprintf(
			"row has %d values, expected %d", len(rowValues), len(t.headerIndex)))
	}

	pairs := make([]types.Pair, 0, len(t.outputs))
	for _, out := range t.outputs {
		pairs = append(pairs, TransformValue(rowValues[out.index], out.cfg))
	}
	return pairs
}

// TransformAll converts every row of a table. See Transform for the row
// contract.
func (t *KeyValueTransformer) TransformAll(rows [][]string) [][]types.Pair {
	out := make([][]types.Pair, len(rows))
	for i, row := range rows {
		out[i] = t.Transform(row)
	}
	return out
}

// =============================================================================
// HELPERS
// =============================================================================

// splitDelimiter returns the configured split delimiter, or "" when
// splitting is disabled. The option is truthy only as a non-empty string;
// the default `false` disables it.
func splitDelimiter(cfg Options) string {
	v, ok := cfg[OptSplit]
	if !ok {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}
