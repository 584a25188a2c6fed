// =============================================================================
// Taplist Builder - Shared Types
// =============================================================================
//
// This package contains types shared by the parsers, the validator and the
// converter so none of them has to import the others.
//
// =============================================================================

package types

// =============================================================================
// SCHEMA
// =============================================================================

// Column names of the taplist source, in the order they must appear.
const (
	ColTapNum      = "tap_num"
	ColBrewery     = "brewery"
	ColName        = "name"
	ColStyle       = "style"
	ColCountry     = "country"
	ColABV         = "abv"
	ColImageURL    = "image_url"
	ColDescription = "description"
	ColPriceSmall  = "price_small"
	ColPriceBig    = "price_big"
)

// ExpectedHeader is the exact, ordered header row every taplist must carry.
//
// Callers must not modify it; use ExpectedHeaderCopy when a mutable slice
// is needed.
var ExpectedHeader = []string{
	ColTapNum,
	ColBrewery,
	ColName,
	ColStyle,
	ColCountry,
	ColABV,
	ColImageURL,
	ColDescription,
	ColPriceSmall,
	ColPriceBig,
}

// ExpectedHeaderCopy returns a fresh copy of ExpectedHeader.
func ExpectedHeaderCopy() []string {
	return append([]string(nil), ExpectedHeader...)
}

// =============================================================================
// BEER ENTRY
// =============================================================================

// Beer is a single taplist row.
type Beer struct {
	// TapNum is the serving line number, used as the sort key.
	TapNum int

	// TapLabel is the tap_num cell exactly as written ("07", "+3"). It is
	// the display prefix of the title.
	TapLabel string

	// The remaining fields are copied verbatim into the page.
	Brewery     string
	Name        string
	Style       string
	Country     string
	ABV         string
	ImageURL    string
	Description string
	PriceSmall  string
	PriceBig    string

	// RowNumber is the 1-based row in the source file (the header is row 1).
	// Used for error reporting only.
	RowNumber int
}

// HasImage reports whether the entry carries an image reference.
func (b Beer) HasImage() bool {
	return b.ImageURL != ""
}
