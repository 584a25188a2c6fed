// =============================================================================
// Taplist Builder - Configuration Module
// =============================================================================
//
// This module loads the optional taplist.yaml file. Every setting has a
// default, and the defaults reproduce the fixed layout the builder has always
// used, so running without a config file is the normal case:
//
//   assets/index.html    page shell        ({header}, {body})
//   assets/head.html     head fragment
//   assets/body.html     body              ({beer_snippets}, {script})
//   assets/snippet.html  one entry         ({title}, {brewery}, ...)
//   assets/script.html   script fragment
//   assets/taplist.csv   the taplist
//   docs/index.html      output
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ginjaninja78/taplist/internal/csvparser"
	"gopkg.in/yaml.v3"
)

// =============================================================================
// DEFAULTS
// =============================================================================

const (
	DefaultConfigFile  = "taplist.yaml"
	DefaultAssetsDir   = "assets"
	DefaultTaplistFile = "taplist.csv"
	DefaultOutputPath  = "docs/index.html"
	DefaultLogLevel    = "info"

	DefaultPageTemplate    = "index.html"
	DefaultHeadTemplate    = "head.html"
	DefaultBodyTemplate    = "body.html"
	DefaultSnippetTemplate = "snippet.html"
	DefaultScriptTemplate  = "script.html"
)

// SourceKind identifies the taplist file format.
type SourceKind string

const (
	SourceCSV  SourceKind = "csv"
	SourceXLSX SourceKind = "xlsx"
)

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the build settings.
type Config struct {
	// AssetsDir is the directory holding the templates and the taplist.
	// Relative to the config file's directory.
	AssetsDir string `yaml:"assets_dir"`

	// TaplistFile is the taplist, relative to AssetsDir. The extension picks
	// the reader: .xlsx is read as a workbook, anything else as CSV.
	TaplistFile string `yaml:"taplist_file"`

	// Delimiter separates CSV fields. Accepts a single character or one of
	// "tab", "pipe", "semicolon", "comma". Empty means "," (or tab for .tsv).
	Delimiter string `yaml:"delimiter"`

	// Sheet is the workbook sheet to read. Empty means the first sheet.
	Sheet string `yaml:"sheet"`

	// OutputPath is the rendered page, relative to the config file's
	// directory. It is replaced wholesale on every build.
	OutputPath string `yaml:"output_path"`

	// StaticDir, if set, is copied next to the output page (stylesheets,
	// images). Relative to the config file's directory.
	StaticDir string `yaml:"static_dir"`

	// Minify collapses whitespace and minifies inline CSS and JS in the
	// written page.
	Minify bool `yaml:"minify"`

	// LogLevel is one of "debug", "info", "warn", "error".
	LogLevel string `yaml:"log_level"`

	// Templates names the five template fragments inside AssetsDir.
	Templates TemplateFiles `yaml:"templates"`

	// baseDir is where relative paths are resolved from.
	baseDir string
}

// TemplateFiles names the template fragments.
type TemplateFiles struct {
	Page    string `yaml:"page"`
	Head    string `yaml:"head"`
	Body    string `yaml:"body"`
	Snippet string `yaml:"snippet"`
	Script  string `yaml:"script"`
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// Default returns the built-in configuration, resolving paths against the
// working directory.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads a YAML configuration file.
//
// PARAMETERS:
//   - configPath: The path to the configuration file.
//   - optional: When true, a missing file yields Default() instead of an
//     error. The CLI passes true unless --config was given explicitly.
//
// RETURNS:
//   - The configuration with defaults applied.
//   - An error if the file cannot be read or parsed, or a setting is invalid.
func Load(configPath string, optional bool) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if optional && errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := parse(data, filepath.Dir(configPath))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", configPath, err)
	}
	return cfg, nil
}

// Parse decodes YAML, applies defaults and validates the result. Relative
// paths resolve against the working directory.
func Parse(data []byte) (*Config, error) {
	return parse(data, "")
}

func parse(data []byte, baseDir string) (*Config, error) {
	cfg := Config{baseDir: baseDir}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(cfg *Config) {
	if cfg.AssetsDir == "" {
		cfg.AssetsDir = DefaultAssetsDir
	}
	if cfg.TaplistFile == "" {
		cfg.TaplistFile = DefaultTaplistFile
	}
	if cfg.OutputPath == "" {
		cfg.OutputPath = DefaultOutputPath
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}

	t := &cfg.Templates
	if t.Page == "" {
		t.Page = DefaultPageTemplate
	}
	if t.Head == "" {
		t.Head = DefaultHeadTemplate
	}
	if t.Body == "" {
		t.Body = DefaultBodyTemplate
	}
	if t.Snippet == "" {
		t.Snippet = DefaultSnippetTemplate
	}
	if t.Script == "" {
		t.Script = DefaultScriptTemplate
	}
}

// Validate checks settings that can be checked without touching the disk.
func (c *Config) Validate() error {
	if _, err := c.DelimiterRune(); err != nil {
		return err
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	if c.SourceKind() == SourceCSV && c.Sheet != "" {
		return fmt.Errorf("sheet %q is set but taplist %q is not a workbook", c.Sheet, c.TaplistFile)
	}
	return c.validateStaticDir()
}

// validateStaticDir rejects a static directory that is, or contains, the
// output directory. Copying it would overwrite its own files or recurse into
// its own copies.
func (c *Config) validateStaticDir() error {
	src := c.StaticPath()
	if src == "" {
		return nil
	}

	static, err := filepath.Abs(src)
	if err != nil {
		return fmt.Errorf("failed to resolve static_dir: %w", err)
	}
	output, err := filepath.Abs(filepath.Dir(c.OutputFile()))
	if err != nil {
		return fmt.Errorf("failed to resolve output_path: %w", err)
	}

	rel, err := filepath.Rel(static, output)
	if err != nil {
		return nil
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return nil
	}
	return fmt.Errorf("static_dir %q must not contain the output directory %q", c.StaticDir, filepath.Dir(c.OutputPath))
}

// =============================================================================
// RESOLVED SETTINGS
// =============================================================================

// BaseDir returns the directory relative paths are resolved from.
func (c *Config) BaseDir() string {
	if c.baseDir == "" {
		return "."
	}
	return c.baseDir
}

// SetBaseDir overrides the directory relative paths are resolved from.
func (c *Config) SetBaseDir(dir string) {
	c.baseDir = dir
}

// AssetsPath returns the resolved assets directory.
func (c *Config) AssetsPath() string {
	return c.resolve(c.BaseDir(), c.AssetsDir)
}

// TaplistPath returns the resolved taplist file.
func (c *Config) TaplistPath() string {
	return c.resolve(c.AssetsPath(), c.TaplistFile)
}

// OutputFile returns the resolved output page.
func (c *Config) OutputFile() string {
	return c.resolve(c.BaseDir(), c.OutputPath)
}

// StaticPath returns the resolved static directory, or "" if none is set.
func (c *Config) StaticPath() string {
	if c.StaticDir == "" {
		return ""
	}
	return c.resolve(c.BaseDir(), c.StaticDir)
}

// SourceKind reports how the taplist file is read.
func (c *Config) SourceKind() SourceKind {
	if strings.EqualFold(filepath.Ext(c.TaplistFile), ".xlsx") {
		return SourceXLSX
	}
	return SourceCSV
}

// DelimiterRune returns the CSV field separator.
func (c *Config) DelimiterRune() (rune, error) {
	if c.Delimiter == "" && strings.EqualFold(filepath.Ext(c.TaplistFile), ".tsv") {
		return '\t', nil
	}
	return csvparser.DelimiterFromString(c.Delimiter)
}

// SlogLevel returns LogLevel as a slog.Level. Validate has already rejected
// unknown names, so this falls back to info silently.
func (c *Config) SlogLevel() slog.Level {
	level, err := ParseLogLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

// ParseLogLevel maps a configured level name to a slog.Level.
func ParseLogLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", name)
}

func (c *Config) resolve(base, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}
