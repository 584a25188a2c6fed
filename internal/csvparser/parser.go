// =============================================================================
// Taplist Builder - CSV Parser Module
// =============================================================================
//
// This module reads the delimiter-separated taplist into a Table. It does not
// know anything about beers: the header check belongs to the validation
// package and row conversion to the converter.
//
// FEATURES:
//   - Configurable delimiter (comma, tab, semicolon, pipe, ...)
//   - Standard CSV quoting rules
//   - Values are kept exactly as written (no trimming)
//   - Rows of different widths are kept so the converter can report them
//     with their row number
//
// =============================================================================

package csvparser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"
)

// utf8BOM is stripped from the first header cell; spreadsheet exports add it.
const utf8BOM = "\ufeff"

// =============================================================================
// TABLE STRUCTURE
// =============================================================================

// Table is a parsed tabular source.
type Table struct {
	// Headers contains the first row of the source.
	Headers []string

	// Rows contains every following row, in source order.
	Rows [][]string

	// SourceFile is the path the table was read from, if any.
	SourceFile string
}

// RowNumber returns the 1-based source row number of Rows[index].
// The header is row 1.
func (t *Table) RowNumber(index int) int {
	return index + 2
}

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// ParseFile reads a taplist file from disk.
//
// PARAMETERS:
//   - filePath: The path to the taplist file.
//   - delimiter: The field separator.
//
// RETURNS:
//   - The parsed table.
//   - An error wrapping the fs error if the file cannot be read, or a parse
//     error.
func ParseFile(filePath string, delimiter rune) (*Table, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open taplist: %w", err)
	}
	defer file.Close()

	table, err := Parse(file, delimiter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filePath, err)
	}
	table.SourceFile = filePath
	return table, nil
}

// ParseString parses an in-memory taplist.
func ParseString(text string, delimiter rune) (*Table, error) {
	return Parse(strings.NewReader(text), delimiter)
}

// Parse reads the whole source and splits it into header and rows.
func Parse(r io.Reader, delimiter rune) (*Table, error) {
	if err := ValidateDelimiter(delimiter); err != nil {
		return nil, err
	}

	reader := csv.NewReader(r)
	configureReader(reader, delimiter)

	allRows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	// An empty source has an empty header, which the validator reports as
	// a header mismatch like any other wrong header.
	if len(allRows) == 0 {
		return &Table{}, nil
	}

	headers := allRows[0]
	if len(headers) > 0 {
		headers[0] = strings.TrimPrefix(headers[0], utf8BOM)
	}

	return &Table{
		Headers: headers,
		Rows:    allRows[1:],
	}, nil
}

// configureReader applies the taplist reading rules to a csv.Reader.
func configureReader(reader *csv.Reader, delimiter rune) {
	reader.Comma = delimiter

	// Width is checked per row by the converter, which knows the row number
	// and the expected columns.
	reader.FieldsPerRecord = -1

	// Descriptions are free text and are copied verbatim, including any
	// leading spaces and bare quotes (Aged in "bourbon" barrels).
	reader.TrimLeadingSpace = false
	reader.LazyQuotes = true
}

// ValidateDelimiter rejects runes encoding/csv cannot use as a separator.
func ValidateDelimiter(delimiter rune) error {
	switch {
	case delimiter == 0:
		return errors.New("delimiter must not be empty")
	case delimiter == '"', delimiter == '\r', delimiter == '\n':
		return fmt.Errorf("invalid delimiter %q", delimiter)
	case delimiter == utf8.RuneError:
		return errors.New("delimiter is not valid UTF-8")
	}
	return nil
}

// DelimiterFromString converts a configured delimiter to a rune.
//
// Named aliases are accepted because YAML makes some separators awkward to
// write ("tab", "pipe", "semicolon", "comma", "\t").
func DelimiterFromString(value string) (rune, error) {
	switch value {
	case "":
		return ',', nil
	case "\\t", "tab", "TAB":
		return '\t', nil
	case "pipe", "PIPE":
		return '|', nil
	case "semicolon", "SEMICOLON":
		return ';', nil
	case "comma", "COMMA":
		return ',', nil
	}

	if utf8.RuneCountInString(value) != 1 {
		return 0, fmt.Errorf("delimiter must be a single character, got %q", value)
	}
	delimiter, _ := utf8.DecodeRuneInString(value)
	if err := ValidateDelimiter(delimiter); err != nil {
		return 0, err
	}
	return delimiter, nil
}
