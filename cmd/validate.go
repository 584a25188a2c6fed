// =============================================================================
// Taplist Builder - Validate Command
// =============================================================================
//
// This file defines the 'validate' command. It runs every check a build runs
// (files present, header, rows, template placeholders) without rendering or
// writing the page. Useful as a pre-commit or CI check on taplist edits.
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/taplist/internal/converter"
)

// validateCmd represents the 'validate' command.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the taplist and templates without writing",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		logger := newLogger(cmd.ErrOrStderr(), cfg)
		result, err := converter.New(cfg, logger, converter.Options{}).Check(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Taplist OK: %d entries (%d with image, %d with placeholder)\n",
			result.Stats.EntriesRendered, result.Stats.WithImage, result.Stats.WithPlaceholder)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
