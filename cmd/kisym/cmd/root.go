package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/kisym/pkg/errors"
)

var (
	// Global flags
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "kisym",
	Short: "kisym - KiCad rectangular symbol generator",
	Long: `kisym builds rectangular schematic symbols from pin counts and writes
them to KiCad libraries.

Examples:
  kisym generate OPAMP --pins "L3 R3"              # Append OPAMP to OPAMP.lib
  kisym generate MCU --pins "L8 R8 T4 B4" --truncate
  kisym generate --config opamp.toml                # Read a definition file
  kisym layout MCU --pins "L2 B2 R2 T2"             # Print pin positions
  kisym preview OPAMP --display-unit mm             # Open the preview window`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := log.InfoLevel
		if verbose {
			level = log.DebugLevel
		}
		cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, level)))
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, StyleError.Render("error:"), errors.UserMessage(err))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
