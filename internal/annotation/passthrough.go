// =============================================================================
// Bulk Annotation KV - Pass-Through Transformer
// =============================================================================
//
// The pass-through transformer pairs headers with row values directly, with
// no renaming, splitting or templating. It exists for callers that want the
// raw table as key/value lists, and for interface parity with the
// configuration-driven transformer.
//
// Sequences are lazy: rows are only consumed as the caller iterates, in a
// single forward pass.
//
// =============================================================================

package annotation

import (
	"fmt"
	"iter"
)

// PassThrough converts bulk-annotation rows into (header, value) pairs
// without any transformation.
type PassThrough struct {
	headers []string
}

// NewPassThrough builds a pass-through transformer for the given headers.
// It accepts no configuration; every column passes through unchanged.
func NewPassThrough(headers []string) *PassThrough {
	return &PassThrough{headers: headers}
}

// Headers returns the table headers this transformer pairs values with.
func (p *PassThrough) Headers() []string {
	return p.headers
}

// TransformRow pairs one row's values with the headers, in header order.
// The row must have exactly one value per header; a mismatch is a caller
// contract bug and panics.
func (p *PassThrough) TransformRow(values []string) iter.Seq2[string, string] {
	if len(values) != len(p.headers) {
		panic(fmt.Sprintf(
			"row has %d values, expected %d", len(values), len(p.headers)))
	}
	return func(yield func(string, string) bool) {
		for i, h := range p.headers {
			if !yield(h, values[i]) {
				return
			}
		}
	}
}

// Rows lifts a lazy sequence of rows into a lazy sequence of per-row pair
// sequences. The result is finite, driven by the input, and not restartable.
func (p *PassThrough) Rows(rows iter.Seq[[]string]) iter.Seq[iter.Seq2[string, string]] {
	return func(yield func(iter.Seq2[string, string]) bool) {
		for row := range rows {
			if !yield(p.TransformRow(row)) {
				return
			}
		}
	}
}
