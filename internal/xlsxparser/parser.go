// =============================================================================
// Taplist Builder - XLSX Taplist Reader
// =============================================================================
//
// Bar staff often keep the taplist in a spreadsheet. This module reads the
// same table the CSV parser produces from an .xlsx workbook, so the rest of
// the pipeline does not care which format the list was saved in.
//
// SHEET LAYOUT:
//   | A       | B       | C    | ... | J         |
//   |---------|---------|------|-----|-----------|
//   | tap_num | brewery | name | ... | price_big |
//   | 1       | Acme    | ...  | ... | $7        |
//
// The first row is the header; every following non-empty row is an entry.
//
// =============================================================================

package xlsxparser

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ginjaninja78/taplist/internal/csvparser"
	"github.com/xuri/excelize/v2"
)

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// ParseFile reads a workbook from disk.
//
// PARAMETERS:
//   - path: The path to the .xlsx file.
//   - sheet: The sheet to read. Empty means the first sheet.
//
// RETURNS:
//   - The table, with header and rows as displayed in the sheet.
//   - An error if the workbook cannot be opened or the sheet does not exist.
func ParseFile(path, sheet string) (*csvparser.Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer file.Close()

	table, err := Parse(file, sheet)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	table.SourceFile = path
	return table, nil
}

// Parse reads a workbook from a stream. The table's SourceFile is left empty.
func Parse(r io.Reader, sheet string) (*csvparser.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	return parseWorkbook(f, sheet)
}

// parseWorkbook extracts the table from an open workbook.
func parseWorkbook(f *excelize.File, sheet string) (*csvparser.Table, error) {
	if sheet == "" {
		sheet = f.GetSheetName(0)
		if sheet == "" {
			return nil, fmt.Errorf("workbook has no sheets")
		}
	} else if index, err := f.GetSheetIndex(sheet); err != nil || index < 0 {
		return nil, fmt.Errorf("sheet %q not found", sheet)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	// Leading blank rows are not allowed by the CSV reader either, but a
	// spreadsheet can have them by accident; skip them.
	start := 0
	for start < len(rows) && isRowEmpty(rows[start]) {
		start++
	}
	if start == len(rows) {
		return &csvparser.Table{}, nil
	}

	headers := trimTrailingEmpty(rows[start])
	table := &csvparser.Table{
		Headers: headers,
		Rows:    make([][]string, 0, len(rows)-start-1),
	}

	for _, row := range rows[start+1:] {
		if isRowEmpty(row) {
			continue
		}
		table.Rows = append(table.Rows, padRow(row, len(headers)))
	}

	return table, nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// isRowEmpty checks if a row contains only empty cells.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// trimTrailingEmpty drops empty cells at the end of the header row. A stray
// formatted cell to the right of the table would otherwise become a column.
func trimTrailingEmpty(row []string) []string {
	end := len(row)
	for end > 0 && row[end-1] == "" {
		end--
	}
	return row[:end]
}

// padRow restores trailing empty cells. excelize omits them, so an entry with
// no prices would look ragged even though the sheet is rectangular.
// Rows wider than the header are left alone so the converter reports them.
func padRow(row []string, width int) []string {
	if len(row) >= width {
		return row
	}
	padded := make([]string, width)
	copy(padded, row)
	return padded
}
