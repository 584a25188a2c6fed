// =============================================================================
// Taplist Builder - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. Running the binary
// with no subcommand builds the page, so the usual invocation needs no flags.
//
// COBRA CLI STRUCTURE:
//   rootCmd (taplist)          builds the page
//   ├── buildCmd (taplist build)
//   ├── validateCmd (taplist validate)
//   └── versionCmd (taplist version)
//
// =============================================================================

package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/ginjaninja78/taplist/internal/config"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the configuration file.
// A missing file is only an error when --config is given explicitly.
var cfgFile string

// verbose enables debug logging when set to true.
var verbose bool

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "taplist",
	Short: "Taplist Builder - Render the beer taplist into a static HTML page",
	Long: `Taplist Builder reads the taplist (CSV or XLSX) and the HTML template
fragments from the assets directory and renders them into a single static
page.

The taplist header must be exactly:
  tap_num, brewery, name, style, country, abv, image_url, description,
  price_small, price_big

Entries are sorted by tap number. Any error stops the build before the page
is written.

Example Usage:
  taplist                          # Build docs/index.html
  taplist build --dry-run          # Render without writing
  taplist validate                 # Check taplist and templates
  taplist --config ./site.yaml     # Use a custom configuration file`,

	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the root command. This is called by main.main().
// An interrupt stops the build between stages.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	// RunE is set here rather than in the literal to avoid an initialization
	// cycle (rootCmd -> runBuild -> loadConfig -> rootCmd).
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runBuild(cmd)
	}

	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		config.DefaultConfigFile,
		"Path to the configuration file",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)

	// The root command is a build, so it takes the build flags too.
	addBuildFlags(rootCmd)
}

// =============================================================================
// SHARED HELPERS
// =============================================================================

// loadConfig reads the configuration named by --config.
func loadConfig() (*config.Config, error) {
	optional := !rootCmd.PersistentFlags().Changed("config")

	cfg, err := config.Load(cfgFile, optional)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// newLogger builds the run logger. Every line carries the run id so the lines
// of overlapping CI builds can be told apart.
func newLogger(w io.Writer, cfg *config.Config) *slog.Logger {
	level := cfg.SlogLevel()
	if verbose {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With("run_id", uuid.NewString())
}
