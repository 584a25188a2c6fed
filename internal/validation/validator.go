// =============================================================================
// Taplist Builder - Header Validation
// =============================================================================
//
// The taplist header must match types.ExpectedHeader exactly: same names,
// same order, same count. This is the only validation in the build and it
// runs once, before any row is converted.
//
// =============================================================================

package validation

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/ginjaninja78/taplist/internal/types"
)

// ErrSchemaMismatch is matched by errors.Is for every *SchemaError.
var ErrSchemaMismatch = errors.New("unexpected taplist header")

// =============================================================================
// SCHEMA ERROR
// =============================================================================

// SchemaError reports a header that differs from the expected columns.
type SchemaError struct {
	// Expected is the required header sequence.
	Expected []string

	// Actual is the header found in the source.
	Actual []string
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s, expected: [%s], got: [%s]",
		ErrSchemaMismatch.Error(),
		quoteJoin(e.Expected),
		quoteJoin(e.Actual),
	)
}

// Is makes errors.Is(err, ErrSchemaMismatch) hold.
func (e *SchemaError) Is(target error) bool {
	return target == ErrSchemaMismatch
}

// Diff describes the first position where the headers disagree.
func (e *SchemaError) Diff() string {
	for i := 0; i < len(e.Expected) || i < len(e.Actual); i++ {
		switch {
		case i >= len(e.Actual):
			return fmt.Sprintf("column %d: missing %q", i+1, e.Expected[i])
		case i >= len(e.Expected):
			return fmt.Sprintf("column %d: unexpected extra column %q", i+1, e.Actual[i])
		case e.Expected[i] != e.Actual[i]:
			if slices.Contains(e.Expected, e.Actual[i]) {
				return fmt.Sprintf("column %d: %q is out of order, expected %q", i+1, e.Actual[i], e.Expected[i])
			}
			return fmt.Sprintf("column %d: expected %q, got %q", i+1, e.Expected[i], e.Actual[i])
		}
	}
	return "headers are equal"
}

// =============================================================================
// VALIDATION FUNCTIONS
// =============================================================================

// ValidateHeader checks actual against types.ExpectedHeader.
//
// RETURNS:
//   - nil if the sequences are equal.
//   - A *SchemaError carrying both sequences otherwise.
func ValidateHeader(actual []string) error {
	return ValidateHeaderAgainst(types.ExpectedHeader, actual)
}

// ValidateHeaderAgainst compares actual to an arbitrary expected sequence.
func ValidateHeaderAgainst(expected, actual []string) error {
	if slices.Equal(expected, actual) {
		return nil
	}
	return &SchemaError{
		Expected: slices.Clone(expected),
		Actual:   slices.Clone(actual),
	}
}

// quoteJoin renders a header list the way it is written in the CSV source.
func quoteJoin(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = fmt.Sprintf("%q", v)
	}
	return strings.Join(quoted, ", ")
}
