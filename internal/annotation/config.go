// =============================================================================
// Bulk Annotation KV - Column Configuration Resolver
// =============================================================================
//
// This module resolves and validates bulk-annotation column configurations.
// A configuration consists of:
//   1. A defaults mapping, applied as the base for every column
//   2. One mapping per table column to transform
//
// RESOLUTION:
//   Each column configuration is validated against a fixed set of recognized
//   option names, then merged over a copy of the resolved defaults. Column
//   values win on conflict. The resolved list preserves input order, which
//   later determines output column order per row.
//
// VALIDATION:
//   All configuration problems are fatal at construction time and reported
//   as *ConfigError. No partially resolved configuration is ever returned.
//
// =============================================================================

package annotation

import (
	"fmt"
	"regexp"
	"sort"
)

// =============================================================================
// RECOGNIZED OPTIONS
// =============================================================================

// Option names recognized in defaults and column configurations.
const (
	OptName          = "name"
	OptClientName    = "clientname"
	OptClientValue   = "clientvalue"
	OptIncludeClient = "includeclient"
	OptPosition      = "position"
	OptInclude       = "include"
	OptSplit         = "split"
	OptType          = "type"
	OptVisible       = "visible"
)

// defaultOptions is the hard-coded base defaults mapping. Every resolved
// configuration starts from a copy of it.
var defaultOptions = Options{
	OptClientValue:   "{{ value }}",
	OptIncludeClient: true,
	OptInclude:       true,
	OptSplit:         false,
	OptType:          "string",
	OptVisible:       true,
}

// Allowed key sets for the two mapping kinds. A column configuration accepts
// the optional options plus the required "name".
var (
	defaultKeySet = keySet(OptClientValue, OptIncludeClient, OptInclude,
		OptSplit, OptType, OptVisible)
	columnKeySet = keySet(OptName, OptClientName, OptClientValue,
		OptIncludeClient, OptPosition, OptInclude, OptSplit, OptType,
		OptVisible)
)

// Template placeholder patterns. valueTokenRE matches the one supported
// placeholder, whitespace-tolerant. anyTokenRE matches any {{ ... }}-shaped
// token and is used to reject everything else at validation time.
var (
	valueTokenRE = regexp.MustCompile(`\{\{\s*value\s*\}\}`)
	anyTokenRE   = regexp.MustCompile(`\{\{[\s\w]*\}\}`)
)

// =============================================================================
// TYPES AND ERRORS
// =============================================================================

// Options is a raw option mapping as decoded from a configuration file.
// Values keep their decoded types (string, bool, int).
type Options map[string]any

// clone returns a shallow copy of the mapping.
func (o Options) clone() Options {
	c := make(Options, len(o))
	for k, v := range o {
		c[k] = v
	}
	return c
}

// ConfigError reports an invalid defaults or column configuration. All
// configuration errors are fatal at construction time; callers must fix the
// configuration and rebuild.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return e.Message
}

func configErrorf(format string, args ...any) *ConfigError {
	return &ConfigError{Message: fmt.Sprintf(format, args...)}
}

// =============================================================================
// DEFAULTS RESOLUTION
// =============================================================================

// ResolveDefaults merges a raw defaults mapping (possibly nil or empty) over
// the base defaults. Caller-supplied values win. Any key outside the
// recognized option set is a *ConfigError.
func ResolveDefaults(cfg Options) (Options, error) {
	if invalid := unknownKeys(cfg, defaultKeySet); len(invalid) > 0 {
		return nil, configErrorf("invalid key(s) in column defaults: %v", invalid)
	}

	defaults := defaultOptions.clone()
	for k, v := range cfg {
		defaults[k] = v
	}
	return defaults, nil
}

// =============================================================================
// COLUMN CONFIG VALIDATION
// =============================================================================

// ValidateColumnConfig checks a single column configuration without mutating
// it. It returns a *ConfigError when:
//   - "name" is missing, empty or not a string
//   - any key falls outside the recognized option set
//   - "clientvalue" contains a placeholder other than {{ value }}
func ValidateColumnConfig(cfg Options) error {
	name, ok := cfg[OptName]
	if !ok {
		return configErrorf("required key missing from column configuration: %s", OptName)
	}
	s, isString := name.(string)
	if !isString {
		return configErrorf("column configuration name must be a string, got %T: %v", name, name)
	}
	if s == "" {
		return configErrorf("empty name in column configuration: %v", cfg)
	}

	if invalid := unknownKeys(cfg, columnKeySet); len(invalid) > 0 {
		return configErrorf("invalid key(s) in column configuration: %v", invalid)
	}

	if cv, ok := cfg[OptClientValue]; ok {
		if err := checkTemplate(fmt.Sprint(cv)); err != nil {
			return err
		}
	}
	return nil
}

// checkTemplate enforces the template-safety rule: after stripping one
// {{ value }} occurrence, no {{ ... }}-shaped token may remain. This is a
// pair of pattern checks, not a template engine.
func checkTemplate(clientvalue string) error {
	stripped := clientvalue
	if loc := valueTokenRE.FindStringIndex(clientvalue); loc != nil {
		stripped = clientvalue[:loc[0]] + clientvalue[loc[1]:]
	}
	if tok := anyTokenRE.FindString(stripped); tok != "" {
		return configErrorf("clientvalue template parameter not found: %s", tok)
	}
	return nil
}

// =============================================================================
// COLUMN CONFIG RESOLUTION
// =============================================================================

// ResolveColumnConfig validates cfg and merges it over a copy of the
// resolved defaults. Neither input is mutated.
func ResolveColumnConfig(defaults, cfg Options) (Options, error) {
	if err := ValidateColumnConfig(cfg); err != nil {
		return nil, err
	}
	resolved := defaults.clone()
	for k, v := range cfg {
		resolved[k] = v
	}
	return resolved, nil
}

// =============================================================================
// CONFIGURATION
// =============================================================================

// Configuration is a fully resolved bulk-annotation column configuration:
// validated defaults plus one defaults-merged mapping per configured column,
// in input order. Immutable after construction.
type Configuration struct {
	// Defaults is the resolved defaults mapping, containing all six
	// recognized default options.
	Defaults Options

	// Columns holds the resolved column configurations, ordered as supplied.
	Columns []Options
}

// NewConfiguration resolves defaults and every column configuration.
// Construction is all-or-nothing: the first validation failure aborts with a
// *ConfigError and no Configuration is returned.
func NewConfiguration(defaults Options, columnCfgs []Options) (*Configuration, error) {
	resolved, err := ResolveDefaults(defaults)
	if err != nil {
		return nil, err
	}

	columns := make([]Options, 0, len(columnCfgs))
	for _, cfg := range columnCfgs {
		col, err := ResolveColumnConfig(resolved, cfg)
		if err != nil {
			return nil, err
		}
		columns = append(columns, col)
	}

	return &Configuration{Defaults: resolved, Columns: columns}, nil
}

// =============================================================================
// HELPERS
// =============================================================================

// unknownKeys returns the keys of cfg outside the allowed set, sorted for
// deterministic error messages.
func unknownKeys(cfg Options, allowed map[string]bool) []string {
	var invalid []string
	for k := range cfg {
		if !allowed[k] {
			invalid = append(invalid, k)
		}
	}
	sort.Strings(invalid)
	return invalid
}

// keySet builds a lookup set from option names.
func keySet(names ...string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}
