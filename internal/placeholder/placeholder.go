// =============================================================================
// Taplist Builder - Placeholder Substitution
// =============================================================================
//
// Templates are plain text with named placeholders:
//
//   <h2>{title}</h2>
//
// A placeholder is a key between braces. Literal braces (CSS, inline
// scripts) are written doubled: "{{" renders "{" and "}}" renders "}".
// There are no loops, conditionals, filters or escaping; values are inserted
// verbatim and never scanned again.
//
// =============================================================================

package placeholder

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingKey is matched by errors.Is for every *MissingKeyError.
var ErrMissingKey = errors.New("placeholder has no value")

// MissingKeyError reports a placeholder with no supplied value.
type MissingKeyError struct {
	Key    string
	Offset int
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("placeholder {%s} at offset %d has no value", e.Key, e.Offset)
}

// Is makes errors.Is(err, ErrMissingKey) hold.
func (e *MissingKeyError) Is(target error) bool {
	return target == ErrMissingKey
}

// SyntaxError reports malformed braces in a template.
type SyntaxError struct {
	Offset int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("template syntax error at offset %d: %s", e.Offset, e.Msg)
}

// Format substitutes every {key} in tpl with values[key].
//
// RETURNS:
//   - The rendered text.
//   - A *MissingKeyError for the first key not present in values, or a
//     *SyntaxError for malformed braces. Values not referenced by tpl are
//     ignored.
func Format(tpl string, values map[string]string) (string, error) {
	var out strings.Builder
	out.Grow(len(tpl))

	err := scan(tpl, func(literal string) {
		out.WriteString(literal)
	}, func(key string, offset int) error {
		value, ok := values[key]
		if !ok {
			return &MissingKeyError{Key: key, Offset: offset}
		}
		out.WriteString(value)
		return nil
	})
	if err != nil {
		return "", err
	}
	return out.String(), nil
}

// Keys lists the placeholders referenced by tpl, in order of first
// appearance and without duplicates.
func Keys(tpl string) ([]string, error) {
	var keys []string
	seen := make(map[string]bool)

	err := scan(tpl, func(string) {}, func(key string, _ int) error {
		if !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return keys, nil
}

// Check verifies that every placeholder in tpl is one of supplied.
func Check(tpl string, supplied ...string) error {
	allowed := make(map[string]string, len(supplied))
	for _, key := range supplied {
		allowed[key] = ""
	}
	_, err := Format(tpl, allowed)
	return err
}

// scan walks tpl, handing literal runs to text and placeholder keys to field.
func scan(tpl string, text func(string), field func(key string, offset int) error) error {
	start := 0
	for i := 0; i < len(tpl); i++ {
		switch tpl[i] {
		case '{':
			text(tpl[start:i])
			if i+1 < len(tpl) && tpl[i+1] == '{' {
				text("{")
				i++
				start = i + 1
				continue
			}
			end := strings.IndexAny(tpl[i+1:], "{}")
			if end < 0 || tpl[i+1+end] != '}' {
				return &SyntaxError{Offset: i, Msg: "unterminated placeholder"}
			}
			key := tpl[i+1 : i+1+end]
			if key == "" {
				return &SyntaxError{Offset: i, Msg: "empty placeholder"}
			}
			if err := field(key, i); err != nil {
				return err
			}
			i += end + 1
			start = i + 1
		case '}':
			text(tpl[start:i])
			if i+1 < len(tpl) && tpl[i+1] == '}' {
				text("}")
				i++
				start = i + 1
				continue
			}
			return &SyntaxError{Offset: i, Msg: "single '}' encountered"}
		}
	}
	text(tpl[start:])
	return nil
}
