// =============================================================================
// Taplist Builder - Converter Module
// =============================================================================
//
// This module is the core orchestrator for a build. It coordinates the
// parsers, the header validator, the row transformer and the page writer.
//
// PROCESSING FLOW:
//   1. Load the five template fragments and the taplist
//   2. Validate the taplist header (stops the build on mismatch)
//   3. Convert rows to entries, sort by tap number, render snippets
//   4. Compose the page, minified if configured
//   5. Copy static assets, if configured, then write the page
//
// Any error stops the build before the page is written.
//
// =============================================================================

package converter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/ginjaninja78/taplist/internal/config"
	"github.com/ginjaninja78/taplist/internal/csvparser"
	"github.com/ginjaninja78/taplist/internal/htmlwriter"
	"github.com/ginjaninja78/taplist/internal/placeholder"
	"github.com/ginjaninja78/taplist/internal/types"
	"github.com/ginjaninja78/taplist/internal/validation"
	"github.com/ginjaninja78/taplist/internal/xlsxparser"
	"github.com/ginjaninja78/taplist/pkg/utils"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result is the outcome of a build.
type Result struct {
	// OutputFile is the page path. Set even on a dry run.
	OutputFile string

	// Written is true when the page was written to OutputFile.
	Written bool

	// HTML is the rendered page. Empty for Check.
	HTML string

	// Stats contains processing statistics.
	Stats ProcessingStats
}

// ProcessingStats contains statistics about the build.
type ProcessingStats struct {
	// EntriesRendered is the number of taplist entries on the page.
	EntriesRendered int

	// WithImage is the number of entries rendered with an image.
	WithImage int

	// WithPlaceholder is the number of entries rendered with the placeholder.
	WithPlaceholder int

	// StaticFilesCopied is the number of static asset files copied.
	StaticFilesCopied int

	// ProcessingTime is the time taken by the build.
	ProcessingTime time.Duration
}

// =============================================================================
// CONVERTER STRUCTURE
// =============================================================================

// Options tune a build.
type Options struct {
	// DryRun renders the page without writing anything.
	DryRun bool
}

// Converter runs builds for one configuration.
type Converter struct {
	cfg     *config.Config
	files   *utils.FileManager
	logger  *slog.Logger
	options Options
}

// New creates a new Converter instance.
//
// PARAMETERS:
//   - cfg: The build configuration.
//   - logger: Diagnostics sink. nil discards log output.
//   - options: Build options.
func New(cfg *config.Config, logger *slog.Logger, options Options) *Converter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Converter{
		cfg:     cfg,
		files:   utils.NewFileManager(cfg.AssetsPath()),
		logger:  logger,
		options: options,
	}
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Run executes the build.
//
// RETURNS:
//   - The build result.
//   - The first error encountered. Nothing is written when an error is
//     returned.
func (c *Converter) Run(ctx context.Context) (*Result, error) {
	startTime := time.Now()
	result := &Result{OutputFile: c.cfg.OutputFile()}

	// =========================================================================
	// STEP 1: LOAD TEMPLATES AND TAPLIST
	// =========================================================================

	templates, table, err := c.load()
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// =========================================================================
	// STEPS 2-4: VALIDATE, TRANSFORM, COMPOSE
	// =========================================================================

	html, beers, err := c.render(templates, table)
	if err != nil {
		return nil, err
	}
	if c.cfg.Minify {
		minified, err := htmlwriter.Minify(html)
		if err != nil {
			return nil, err
		}
		c.logger.Debug("minified page", "before", len(html), "after", len(minified))
		html = minified
	}
	result.HTML = html
	result.Stats = countEntries(beers)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// =========================================================================
	// STEP 5: WRITE OUTPUT
	// =========================================================================

	if c.options.DryRun {
		c.logger.Info("dry run, page not written", "output", result.OutputFile, "bytes", len(html))
	} else {
		// Static assets go first so a failed copy leaves the old page in place.
		copied, err := c.copyStatic()
		if err != nil {
			return nil, err
		}
		result.Stats.StaticFilesCopied = copied

		if err := htmlwriter.Write(result.OutputFile, html); err != nil {
			return nil, err
		}
		result.Written = true
		c.logger.Info("wrote page", "output", result.OutputFile, "bytes", len(html))
	}

	result.Stats.ProcessingTime = time.Since(startTime)
	return result, nil
}

// Check loads and validates everything a build would use without rendering
// the page or writing anything: the header, every row, and the placeholders
// of every template.
func (c *Converter) Check(ctx context.Context) (*Result, error) {
	startTime := time.Now()
	result := &Result{OutputFile: c.cfg.OutputFile()}

	templates, table, err := c.load()
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := c.validateHeader(table); err != nil {
		return nil, err
	}
	if err := templates.Check(); err != nil {
		return nil, err
	}
	if keys, err := placeholder.Keys(templates.Snippet); err == nil {
		c.logger.Debug("snippet placeholders", "keys", keys)
	}

	beers, err := ToBeers(table)
	if err != nil {
		return nil, err
	}

	result.Stats = countEntries(beers)
	result.Stats.ProcessingTime = time.Since(startTime)
	return result, nil
}

// Render runs the validate, transform and compose stages on in-memory
// inputs. It is the whole build minus file access.
//
// RETURNS:
//   - The page.
//   - The entries in page order.
//   - A *validation.SchemaError, *DataError or placeholder error.
func Render(templates htmlwriter.Templates, table *csvparser.Table) (string, []types.Beer, error) {
	if err := validation.ValidateHeader(table.Headers); err != nil {
		return "", nil, err
	}

	beers, err := ToBeers(table)
	if err != nil {
		return "", nil, err
	}
	SortBeers(beers)

	snippets, err := RenderSnippets(templates.Snippet, beers)
	if err != nil {
		return "", nil, err
	}

	page, err := htmlwriter.Compose(templates, snippets)
	if err != nil {
		return "", nil, err
	}
	return page, beers, nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// render wraps Render with logging.
func (c *Converter) render(templates htmlwriter.Templates, table *csvparser.Table) (string, []types.Beer, error) {
	html, beers, err := Render(templates, table)
	if err != nil {
		c.logSchemaError(table, err)
		return "", nil, err
	}

	c.logger.Debug("rendered entries", "count", len(beers))
	return html, beers, nil
}

// validateHeader checks the header and logs where it differs.
func (c *Converter) validateHeader(table *csvparser.Table) error {
	err := validation.ValidateHeader(table.Headers)
	c.logSchemaError(table, err)
	return err
}

// logSchemaError logs the first differing column of a header mismatch.
func (c *Converter) logSchemaError(table *csvparser.Table, err error) {
	var schemaErr *validation.SchemaError
	if errors.As(err, &schemaErr) {
		c.logger.Error("taplist header mismatch", "source", table.SourceFile, "detail", schemaErr.Diff())
	}
}

// load checks the configuration, then reads the template fragments and the
// taplist. The configuration may have been built in code rather than by
// config.Load, so it is validated again here.
func (c *Converter) load() (htmlwriter.Templates, *csvparser.Table, error) {
	if err := c.cfg.Validate(); err != nil {
		return htmlwriter.Templates{}, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	templates, err := LoadTemplates(c.files, c.cfg.Templates)
	if err != nil {
		return htmlwriter.Templates{}, nil, err
	}
	c.logger.Debug("loaded templates", "dir", c.files.AssetsDir)

	table, err := LoadTable(c.cfg)
	if err != nil {
		return htmlwriter.Templates{}, nil, err
	}
	c.logger.Debug("loaded taplist", "source", table.SourceFile, "rows", len(table.Rows))

	return templates, table, nil
}

// LoadTemplates reads the five template fragments named by files.
func LoadTemplates(fm *utils.FileManager, files config.TemplateFiles) (htmlwriter.Templates, error) {
	var t htmlwriter.Templates

	targets := []struct {
		name string
		dst  *string
	}{
		{files.Page, &t.Page},
		{files.Head, &t.Head},
		{files.Body, &t.Body},
		{files.Snippet, &t.Snippet},
		{files.Script, &t.Script},
	}

	for _, target := range targets {
		text, err := fm.ReadText(target.name)
		if err != nil {
			return htmlwriter.Templates{}, err
		}
		*target.dst = text
	}

	return t, nil
}

// LoadTable reads the taplist with the reader its extension selects.
func LoadTable(cfg *config.Config) (*csvparser.Table, error) {
	path := cfg.TaplistPath()

	switch cfg.SourceKind() {
	case config.SourceXLSX:
		return xlsxparser.ParseFile(path, cfg.Sheet)
	default:
		delimiter, err := cfg.DelimiterRune()
		if err != nil {
			return nil, err
		}
		return csvparser.ParseFile(path, delimiter)
	}
}

// copyStatic copies the configured static directory next to the page.
func (c *Converter) copyStatic() (int, error) {
	src := c.cfg.StaticPath()
	if src == "" {
		return 0, nil
	}

	dst := filepath.Dir(c.cfg.OutputFile())
	copied, err := utils.CopyTree(src, dst)
	if err != nil {
		return copied, fmt.Errorf("failed to copy static assets: %w", err)
	}

	c.logger.Debug("copied static assets", "from", src, "to", dst, "files", copied)
	return copied, nil
}

// countEntries tallies image and placeholder entries.
func countEntries(beers []types.Beer) ProcessingStats {
	stats := ProcessingStats{EntriesRendered: len(beers)}
	for _, beer := range beers {
		if beer.HasImage() {
			stats.WithImage++
		} else {
			stats.WithPlaceholder++
		}
	}
	return stats
}
