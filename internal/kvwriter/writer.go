// =============================================================================
// Bulk Annotation KV - Key/Value Writer Module
// =============================================================================
//
// This module renders transformed key/value lists for consumers. Two formats
// are supported:
//
//   aligned (default):
//      0       Gene : pax6
//      0  __Aliases : ey
//      0  __Aliases : Dmel_CG1464
//      1       Gene : shh
//
//   tsv:
//     0<TAB>Gene<TAB>pax6
//
// Every value element gets its own line, so split columns fan out into one
// line per value. The row number ties lines of the same source row together.
//
// =============================================================================

package kvwriter

import (
	"fmt"
	"io"
	"iter"

	"github.com/openmcy/bulk-annotation-kv/internal/types"
)

// =============================================================================
// OPTIONS
// =============================================================================

// Format selects the output rendering.
type Format string

const (
	FormatAligned Format = "aligned"
	FormatTSV     Format = "tsv"
)

// Options contains options for rendering key/value output.
type Options struct {
	// Format is the output rendering. Default: FormatAligned.
	Format Format

	// KeyWidth is the right-aligned key column width in aligned output.
	// Default: 10
	KeyWidth int

	// ShowRowNumbers prefixes each line with the zero-based source row
	// number. Default: true
	ShowRowNumbers bool
}

// DefaultOptions returns the default rendering options.
func DefaultOptions() Options {
	return Options{
		Format:         FormatAligned,
		KeyWidth:       10,
		ShowRowNumbers: true,
	}
}

// ParseFormat maps a configuration string to a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatAligned, FormatTSV:
		return Format(s), nil
	case "":
		return FormatAligned, nil
	default:
		return "", fmt.Errorf("unknown output format: %s", s)
	}
}

// =============================================================================
// WRITER FUNCTIONS
// =============================================================================

// WriteRows renders fully materialized per-row pair lists.
func WriteRows(w io.Writer, rows [][]types.Pair, opts Options) error {
	for n, pairs := range rows {
		for _, pair := range pairs {
			for _, value := range pair.Values {
				if err := writeLine(w, n, pair.Key, value, opts); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// WritePairSeqs renders the pass-through transformer's lazy output without
// materializing it. Each pair carries a single value.
func WritePairSeqs(w io.Writer, rows iter.Seq[iter.Seq2[string, string]], opts Options) error {
	n := 0
	for rowSeq := range rows {
		for key, value := range rowSeq {
			if err := writeLine(w, n, key, value, opts); err != nil {
				return err
			}
		}
		n++
	}
	return nil
}

// writeLine writes one (row, key, value) line in the selected format.
func writeLine(w io.Writer, row int, key, value string, opts Options) error {
	var err error
	switch opts.Format {
	case FormatTSV:
		if opts.ShowRowNumbers {
			_, err = fmt.Fprintf(w, "%d\t%s\t%s\n", row, key, value)
		} else {
			_, err = fmt.Fprintf(w, "%s\t%s\n", key, value)
		}
	default:
		if opts.ShowRowNumbers {
			_, err = fmt.Fprintf(w, "%2d %*s : %s\n", row, opts.KeyWidth, key, value)
		} else {
			_, err = fmt.Fprintf(w, "%*s : %s\n", opts.KeyWidth, key, value)
		}
	}
	return err
}
