// =============================================================================
// Bulk Annotation KV - Shared Types
// =============================================================================
//
// This package contains shared types used across multiple modules to avoid
// import cycles. Types defined here are used by:
//   - annotation
//   - csvparser / xlsxparser
//   - kvwriter
//
// =============================================================================

package types

// =============================================================================
// OUTPUT TYPES
// =============================================================================

// Pair is one transformed output entry for a single table cell: the client
// key and its value list. Values usually has length one; the `split`
// configuration option can expand a cell into several values.
type Pair struct {
	// Key is the output key, after any clientname renaming and any
	// hidden-field ("__") prefixing.
	Key string

	// Values holds the transformed value(s) for this key, in cell order.
	Values []string
}

// =============================================================================
// INPUT TYPES
// =============================================================================

// Table is a fully materialized tabular input: one header row plus data rows.
// Both parsers (CSV and XLSX) produce this shape, and the transformers
// consume it.
type Table struct {
	// Headers contains the column headers, in file order.
	Headers []string

	// Rows contains the data rows as positional string slices.
	// Every row has exactly len(Headers) cells; parsers pad short rows.
	Rows [][]string

	// SourceFile is the path the table was read from.
	SourceFile string

	// RowCount is the number of data rows (excluding headers).
	RowCount int

	// ColumnCount is the number of columns.
	ColumnCount int
}
