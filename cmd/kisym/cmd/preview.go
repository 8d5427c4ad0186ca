package cmd

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/kisym/internal/ui/preview"
	"github.com/OpenTraceLab/kisym/pkg/config"
	"github.com/OpenTraceLab/kisym/pkg/kicad/symgen"
)

var previewSpec specFlags

var previewCmd = &cobra.Command{
	Use:   "preview [name]",
	Short: "Open an interactive preview window",
	Long: `Render the symbol in a window. Drag to pan, scroll to zoom, F to fit,
Ctrl+T to switch theme. The Generate button writes the symbol with the
same output settings as the generate command.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)
	addSpecFlags(previewCmd, &previewSpec)
}

func runPreview(cmd *cobra.Command, args []string) error {
	logger := loggerFromContext(cmd.Context())

	file, err := resolveFile(cmd, &previewSpec, args)
	if err != nil {
		return err
	}
	spec, err := file.Spec()
	if err != nil {
		return err
	}
	unit, err := file.ParseUnit()
	if err != nil {
		return err
	}
	if _, err := file.OutputFormat(); err != nil {
		return err
	}

	return preview.Run(preview.Options{
		Spec:        spec,
		DisplayUnit: unit,
		IncludePins: file.Output.IncludePins,
		Logger:      logger,
		Save:        saveFunc(file, logger),
	})
}

// saveFunc writes the symbol edited in the window with the output settings
// of file, so the Generate button matches the generate command.
func saveFunc(file config.File, logger *log.Logger) preview.SaveFunc {
	return func(s symgen.Spec, includePins bool) (string, error) {
		f := file
		f.Output.IncludePins = includePins
		path, _, err := writeSymbol(f, s, logger)
		return path, err
	}
}
