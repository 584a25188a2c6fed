// =============================================================================
// Taplist Builder - Build Command
// =============================================================================
//
// This file defines the 'build' command, which renders and writes the page.
//
// COMMAND USAGE:
//   taplist build [flags]
//
// FLAGS:
//   --dry-run : Render the page without writing it
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/taplist/internal/converter"
)

// dryRun renders without writing output files.
var dryRun bool

// buildCmd represents the 'build' command.
var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Render the taplist page",
	Long: `The build command loads the templates and the taplist, validates the
taplist header, sorts the entries by tap number, renders one snippet per
entry and writes the page to the configured output path, replacing it.

Nothing is written if any step fails.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBuild(cmd)
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)
	addBuildFlags(buildCmd)
}

// addBuildFlags registers the build flags on cmd.
func addBuildFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(
		&dryRun,
		"dry-run",
		false,
		"Render the page without writing it",
	)
}

// runBuild runs one build and prints the completion message.
func runBuild(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger := newLogger(cmd.ErrOrStderr(), cfg)
	conv := converter.New(cfg, logger, converter.Options{DryRun: dryRun})

	result, err := conv.Run(cmd.Context())
	if err != nil {
		return err
	}

	logger.Info("build complete",
		"entries", result.Stats.EntriesRendered,
		"with_image", result.Stats.WithImage,
		"with_placeholder", result.Stats.WithPlaceholder,
		"static_files", result.Stats.StaticFilesCopied,
		"elapsed", result.Stats.ProcessingTime,
	)

	out := cmd.OutOrStdout()
	if !result.Written {
		fmt.Fprintf(out, "Dry run: %d entries, %d bytes, %s not written\n",
			result.Stats.EntriesRendered, len(result.HTML), result.OutputFile)
	}
	fmt.Fprintln(out, "Done")
	return nil
}
