// =============================================================================
// Bulk Annotation KV - XLSX Parser Module
// =============================================================================
//
// This module reads bulk-annotation tables from XLSX workbooks. Spreadsheet
// exports are a common carrier for bulk annotations, so the XLSX reader
// produces exactly the same Table shape as the CSV reader.
//
// NOTES:
//   - excelize trims trailing empty cells from each row, so rows are padded
//     back to the header width before they reach the transformer.
//   - An empty sheet setting selects the workbook's active sheet.
//
// =============================================================================

package xlsxparser

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/openmcy/bulk-annotation-kv/internal/config"
	"github.com/openmcy/bulk-annotation-kv/internal/types"
)

// Parse reads one worksheet of an XLSX file into a Table. The first row
// after any skipped rows is the header row.
func Parse(filePath string, settings config.XLSXSettings) (*types.Table, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheet := settings.Sheet
	if sheet == "" {
		sheet = f.GetSheetName(f.GetActiveSheetIndex())
	}

	allRows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	if len(allRows) <= settings.SkipRows {
		return nil, fmt.Errorf("sheet %q has no header row", sheet)
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

// SheetNames lists the worksheets in a workbook, for error messages and the
// check command.
func SheetNames(filePath string) ([]string, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()
	return f.GetSheetList(), nil
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

// padRow extends a short row with empty cells to the header width.
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
