// =============================================================================
// Taplist Builder - HTML Page Writer
// =============================================================================
//
// This module assembles the final page from the template fragments and the
// rendered entry snippets, and writes it to disk.
//
// PAGE STRUCTURE:
//   index.html   {header} <- head.html (inserted verbatim)
//                {body}   <- body.html with
//                              {beer_snippets} <- all entry snippets
//                              {script}        <- script.html (verbatim)
//
// The page is replaced atomically: readers of the output path see either the
// previous page or the new one, never a partial write.
//
// =============================================================================

package htmlwriter

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/natefinch/atomic"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/js"

	"github.com/ginjaninja78/taplist/internal/placeholder"
	"github.com/ginjaninja78/taplist/pkg/utils"
)

// =============================================================================
// PLACEHOLDER KEYS
// =============================================================================

// Page template keys.
const (
	KeyHeader = "header"
	KeyBody   = "body"
)

// Body template keys.
const (
	KeyBeerSnippets = "beer_snippets"
	KeyScript       = "script"
)

// Snippet template keys.
const (
	KeyTitle        = "title"
	KeyBrewery      = "brewery"
	KeyBeerStyle    = "beerstyle"
	KeyABV          = "abv"
	KeyImageSnippet = "image_snippet"
	KeyDescription  = "description"
	KeyPriceBig     = "price_big"
	KeyPriceSmall   = "price_small"
)

// SnippetKeys lists every key supplied to the snippet template.
var SnippetKeys = []string{
	KeyTitle,
	KeyBrewery,
	KeyBeerStyle,
	KeyABV,
	KeyImageSnippet,
	KeyDescription,
	KeyPriceBig,
	KeyPriceSmall,
}

// =============================================================================
// TEMPLATES
// =============================================================================

// Templates holds the five page fragments. They are read once per build and
// not modified.
type Templates struct {
	// Page is the outer shell, with {header} and {body}.
	Page string

	// Head is inserted verbatim as {header}.
	Head string

	// Body holds {beer_snippets} and {script}.
	Body string

	// Snippet is rendered once per entry.
	Snippet string

	// Script is inserted verbatim as {script}.
	Script string
}

// Check verifies that every placeholder the templates reference is one the
// build supplies, without rendering anything.
func (t Templates) Check() error {
	checks := []struct {
		name string
		tpl  string
		keys []string
	}{
		{"page", t.Page, []string{KeyHeader, KeyBody}},
		{"body", t.Body, []string{KeyBeerSnippets, KeyScript}},
		{"snippet", t.Snippet, SnippetKeys},
	}

	for _, c := range checks {
		if err := placeholder.Check(c.tpl, c.keys...); err != nil {
			return fmt.Errorf("%s template: %w", c.name, err)
		}
	}
	return nil
}

// =============================================================================
// COMPOSITION
// =============================================================================

// Compose builds the full page around the already-joined entry snippets.
//
// PARAMETERS:
//   - t: The template fragments.
//   - snippets: All rendered entries, newline-separated.
//
// RETURNS:
//   - The page text.
//   - An error if the body or page template references an unknown key or
//     has malformed braces.
func Compose(t Templates, snippets string) (string, error) {
	body, err := placeholder.Format(t.Body, map[string]string{
		KeyBeerSnippets: snippets,
		KeyScript:       t.Script,
	})
	if err != nil {
		return "", fmt.Errorf("body template: %w", err)
	}

	page, err := placeholder.Format(t.Page, map[string]string{
		KeyHeader: t.Head,
		KeyBody:   body,
	})
	if err != nil {
		return "", fmt.Errorf("page template: %w", err)
	}

	return page, nil
}

// =============================================================================
// MINIFICATION
// =============================================================================

// pageMinifier minifies the page along with its inline styles and scripts.
// Document and end tags are kept so the page still reads as the templates
// wrote it.
var pageMinifier = newPageMinifier()

func newPageMinifier() *minify.M {
	m := minify.New()
	m.Add("text/html", &html.Minifier{
		KeepDocumentTags: true,
		KeepEndTags:      true,
	})
	m.AddFunc("text/css", css.Minify)
	m.AddFuncRegexp(regexp.MustCompile("^(application|text)/(x-)?(java|ecma)script$"), js.Minify)
	return m
}

// Minify collapses whitespace, drops comments and minifies inline CSS and
// JavaScript. The output depends only on the input.
func Minify(page string) (string, error) {
	out, err := pageMinifier.String("text/html", page)
	if err != nil {
		return "", fmt.Errorf("failed to minify page: %w", err)
	}
	return out, nil
}

// =============================================================================
// OUTPUT
// =============================================================================

// Write replaces the file at path with page, creating parent directories as
// needed. An existing page keeps its permissions.
func Write(path, page string) error {
	if err := utils.EnsureParentDir(path); err != nil {
		return err
	}

	existed := utils.FileExists(path)

	if err := atomic.WriteFile(path, strings.NewReader(page)); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	// A new page comes from a 0600 temp file; the page is public.
	if !existed {
		if err := os.Chmod(path, 0644); err != nil {
			return fmt.Errorf("failed to set permissions on %s: %w", path, err)
		}
	}

	return nil
}
