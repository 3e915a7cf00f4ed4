// =============================================================================
// Bulk Annotation KV - CSV Parser Module
// =============================================================================
//
// This module reads bulk-annotation tables from CSV files. It produces the
// positional row shape the transformers consume: a header row plus data rows
// with exactly one cell per header.
//
// FEATURES:
//   - Configurable delimiter with aliases for tab, pipe and semicolon
//   - Leading rows can be skipped before the header row
//   - Empty rows are dropped
//   - Short rows are padded so every row matches the header width
//   - A streaming variant for large files, exposing a lazy row sequence
//
// =============================================================================

package csvparser

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"iter"
	"os"
	"strings"

	"github.com/openmcy/bulk-annotation-kv/internal/config"
	"github.com/openmcy/bulk-annotation-kv/internal/types"
)

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// Parse reads a whole CSV file into a Table. The first record after any
// skipped rows is the header row; everything below it is data.
func Parse(filePath string, settings config.CSVSettings) (*types.Table, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(bufio.NewReader(file))
	configureReader(reader, settings)

	allRows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(allRows) <= settings.SkipRows {
		return nil, fmt.Errorf("CSV file has no header row")
	}
	allRows = allRows[settings.SkipRows:]

	headers := cleanHeaders(allRows[0])

	rows := make([][]string, 0, len(allRows)-1)
	for _, row := range allRows[1:] {
		if isRowEmpty(row) {
			continue
		}
		rows = append(rows, padRow(row, len(headers)))
	}

	return &types.Table{
		Headers:     headers,
		Rows:        rows,
		SourceFile:  filePath,
		RowCount:    len(rows),
		ColumnCount: len(headers),
	}, nil
}

// configureReader applies the delimiter settings to a csv.Reader.
func configureReader(reader *csv.Reader, settings config.CSVSettings) {
	switch settings.Delimiter {
	case "\\t", "tab", "TAB":
		reader.Comma = '\t'
	case "|", "pipe", "PIPE":
		reader.Comma = '|'
	case ";", "semicolon":
		reader.Comma = ';'
	default:
		if len(settings.Delimiter) > 0 {
			reader.Comma = rune(settings.Delimiter[0])
		} else {
			reader.Comma = ','
		}
	}

	// Rows with a different field count are padded later instead of being
	// rejected by the reader.
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
}

// cleanHeaders trims headers and names any empty ones by position.
func cleanHeaders(headers []string) []string {
	cleaned := make([]string, len(headers))
	for i, header := range headers {
		header = strings.TrimSpace(header)
		if header == "" {
			header = fmt.Sprintf("Column_%d", i+1)
		}
		cleaned[i] = header
	}
	return cleaned
}

// padRow extends a short row with empty cells to the header width. Longer
// rows are left as they are; the transformer treats that as a contract
// violation.
func padRow(row []string, width int) []string {
	if len(row) >= width {
		return row
	}
	padded := make([]string, width)
	copy(padded, row)
	return padded
}

// isRowEmpty reports whether a row contains only blank cells.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// =============================================================================
// STREAMING PARSER FOR LARGE FILES
// =============================================================================

// StreamingParser reads a CSV file one row at a time instead of loading the
// whole file into memory.
//
// USAGE:
//   parser, err := NewStreamingParser(filePath, settings)
//   if err != nil {
//       return err
//   }
//   defer parser.Close()
//
//   for parser.Next() {
//       row := parser.Row()
//       // Process the row...
//   }
//
//   if err := parser.Err(); err != nil {
//       return err
//   }
type StreamingParser struct {
	file       *os.File
	reader     *csv.Reader
	headers    []string
	currentRow []string
	rowNumber  int
	err        error
}

// NewStreamingParser opens a CSV file and reads through the header row.
func NewStreamingParser(filePath string, settings config.CSVSettings) (*StreamingParser, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	reader := csv.NewReader(bufio.NewReader(file))
	configureReader(reader, settings)

	p := &StreamingParser{file: file, reader: reader}

	for i := 0; i < settings.SkipRows; i++ {
		if _, err := reader.Read(); err != nil {
			file.Close()
			return nil, fmt.Errorf("failed to skip leading rows: %w", err)
		}
		p.rowNumber++
	}

	header, err := reader.Read()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to read header row: %w", err)
	}
	p.rowNumber++
	p.headers = cleanHeaders(header)

	return p, nil
}

// Next advances to the next data row. It returns false at end of input or on
// error; check Err afterwards.
func (p *StreamingParser) Next() bool {
	if p.err != nil {
		return false
	}

	for {
		row, err := p.reader.Read()
		if err == io.EOF {
			return false
		}
		if err != nil {
			p.err = fmt.Errorf("error reading row %d: %w", p.rowNumber+1, err)
			return false
		}
		p.rowNumber++

		if isRowEmpty(row) {
			continue
		}
		p.currentRow = padRow(row, len(p.headers))
		return true
	}
}

// Row returns the current data row, padded to the header width.
func (p *StreamingParser) Row() []string {
	return p.currentRow
}

// Headers returns the parsed headers.
func (p *StreamingParser) Headers() []string {
	return p.headers
}

// RowNumber returns the current physical row number (1-indexed).
func (p *StreamingParser) RowNumber() int {
	return p.rowNumber
}

// Err returns any error that occurred during parsing.
func (p *StreamingParser) Err() error {
	return p.err
}

// Close closes the underlying file.
func (p *StreamingParser) Close() error {
	return p.file.Close()
}

// Seq exposes the remaining rows as a lazy sequence, suitable for feeding
// the pass-through transformer. Single forward pass; check Err when done.
func (p *StreamingParser) Seq() iter.Seq[[]string] {
	return func(yield func([]string) bool) {
		for p.Next() {
			if !yield(p.Row()) {
				return
			}
		}
	}
}
