// =============================================================================
// Taplist Builder - Row Transformer
// =============================================================================
//
// This file turns validated table rows into beer entries, orders them by tap
// number and renders one snippet per entry.
//
// SNIPPET VALUES:
//   {title}          "<tap_num>. <name>"
//   {brewery}        "<brewery>, <country>"
//   {beerstyle}      style
//   {abv}            abv
//   {description}    description
//   {price_small}    price_small
//   {price_big}      price_big
//   {image_snippet}  <img> for the image_url, or the placeholder icon
//
// Values are copied verbatim. Nothing is escaped.
//
// =============================================================================

package converter

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/ginjaninja78/taplist/internal/csvparser"
	"github.com/ginjaninja78/taplist/internal/htmlwriter"
	"github.com/ginjaninja78/taplist/internal/placeholder"
	"github.com/ginjaninja78/taplist/internal/types"
)

// PlaceholderImage is rendered for entries without an image_url.
const PlaceholderImage = `<div class="placeholder"><i class="fas fa-beer"></i></div>`

// ErrInvalidRow is matched by errors.Is for every *DataError.
var ErrInvalidRow = errors.New("invalid taplist row")

// =============================================================================
// DATA ERROR
// =============================================================================

// DataError reports a row that cannot be converted to an entry.
type DataError struct {
	// Row is the 1-based source row (the header is row 1).
	Row int

	// Column is the offending column, empty for whole-row problems.
	Column string

	// Value is the offending value, if any.
	Value string

	// Message describes the problem.
	Message string
}

// Error implements the error interface.
func (e *DataError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("row %d: %s", e.Row, e.Message)
	}
	return fmt.Sprintf("row %d, column %q: %s (value: %q)", e.Row, e.Column, e.Message, e.Value)
}

// Is makes errors.Is(err, ErrInvalidRow) hold.
func (e *DataError) Is(target error) bool {
	return target == ErrInvalidRow
}

// =============================================================================
// ROW CONVERSION
// =============================================================================

// ToBeers converts every row of a table whose header has already been
// validated. Rows are returned in source order.
//
// RETURNS:
//   - One entry per row. No row is dropped or merged.
//   - A *DataError for the first row with the wrong number of fields or a
//     tap number that is not an integer.
func ToBeers(table *csvparser.Table) ([]types.Beer, error) {
	beers := make([]types.Beer, 0, len(table.Rows))

	for i, row := range table.Rows {
		beer, err := toBeer(row, table.RowNumber(i))
		if err != nil {
			return nil, err
		}
		beers = append(beers, beer)
	}

	return beers, nil
}

// toBeer maps one row positionally onto types.ExpectedHeader.
func toBeer(row []string, rowNumber int) (types.Beer, error) {
	if len(row) != len(types.ExpectedHeader) {
		return types.Beer{}, &DataError{
			Row:     rowNumber,
			Message: fmt.Sprintf("has %d fields, expected %d", len(row), len(types.ExpectedHeader)),
		}
	}

	field := make(map[string]string, len(row))
	for i, column := range types.ExpectedHeader {
		field[column] = row[i]
	}

	raw := field[types.ColTapNum]
	tapNum, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return types.Beer{}, &DataError{
			Row:     rowNumber,
			Column:  types.ColTapNum,
			Value:   raw,
			Message: "tap number is not an integer",
		}
	}

	return types.Beer{
		TapNum:      tapNum,
		TapLabel:    raw,
		Brewery:     field[types.ColBrewery],
		Name:        field[types.ColName],
		Style:       field[types.ColStyle],
		Country:     field[types.ColCountry],
		ABV:         field[types.ColABV],
		ImageURL:    field[types.ColImageURL],
		Description: field[types.ColDescription],
		PriceSmall:  field[types.ColPriceSmall],
		PriceBig:    field[types.ColPriceBig],
		RowNumber:   rowNumber,
	}, nil
}

// SortBeers orders entries by ascending tap number. Entries sharing a tap
// number keep their source order.
func SortBeers(beers []types.Beer) {
	slices.SortStableFunc(beers, func(a, b types.Beer) int {
		return cmp.Compare(a.TapNum, b.TapNum)
	})
}

// =============================================================================
// SNIPPET RENDERING
// =============================================================================

// FormatTitle returns "<tap_num>. <name>", with tap_num as written in the
// source. Entries built in code without a label fall back to TapNum.
func FormatTitle(beer types.Beer) string {
	label := beer.TapLabel
	if label == "" {
		label = strconv.Itoa(beer.TapNum)
	}
	return label + ". " + beer.Name
}

// FormatBrewery returns "<brewery>, <country>".
func FormatBrewery(beer types.Beer) string {
	return beer.Brewery + ", " + beer.Country
}

// FormatImage returns the image element for the entry, or PlaceholderImage
// when it has no image_url.
func FormatImage(beer types.Beer) string {
	if !beer.HasImage() {
		return PlaceholderImage
	}
	return fmt.Sprintf("<img src='%s' alt='%s' />", beer.ImageURL, beer.Name)
}

// SnippetValues returns the placeholder values for one entry.
func SnippetValues(beer types.Beer) map[string]string {
	return map[string]string{
		htmlwriter.KeyTitle:        FormatTitle(beer),
		htmlwriter.KeyBrewery:      FormatBrewery(beer),
		htmlwriter.KeyBeerStyle:    beer.Style,
		htmlwriter.KeyABV:          beer.ABV,
		htmlwriter.KeyImageSnippet: FormatImage(beer),
		htmlwriter.KeyDescription:  beer.Description,
		htmlwriter.KeyPriceBig:     beer.PriceBig,
		htmlwriter.KeyPriceSmall:   beer.PriceSmall,
	}
}

// RenderSnippet renders one entry into the snippet template.
func RenderSnippet(tpl string, beer types.Beer) (string, error) {
	snippet, err := placeholder.Format(tpl, SnippetValues(beer))
	if err != nil {
		return "", fmt.Errorf("snippet template (%s): %w", FormatTitle(beer), err)
	}
	return snippet, nil
}

// RenderSnippets renders every entry in the given order and joins the results
// with newlines.
func RenderSnippets(tpl string, beers []types.Beer) (string, error) {
	snippets := make([]string, 0, len(beers))
	for _, beer := range beers {
		snippet, err := RenderSnippet(tpl, beer)
		if err != nil {
			return "", err
		}
		snippets = append(snippets, snippet)
	}
	return strings.Join(snippets, "\n"), nil
}
