package cmd

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/kisym/pkg/config"
	"github.com/OpenTraceLab/kisym/pkg/errors"
	"github.com/OpenTraceLab/kisym/pkg/kicad/library"
	"github.com/OpenTraceLab/kisym/pkg/kicad/symgen"
)

var (
	genSpec     specFlags
	genOutput   string
	genFormat   string
	genTruncate bool
	genNoPins   bool
)

var generateCmd = &cobra.Command{
	Use:   "generate [name]",
	Short: "Generate a symbol into a library file",
	Long: `Compute a rectangular symbol and write it to a KiCad library.

Legacy libraries (.lib) are appended to unless --truncate is given, so
several symbols can be collected in one file. KiCad 6 libraries
(--format kicad_sym) are always written as a complete document.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)
	addSpecFlags(generateCmd, &genSpec)
	generateCmd.Flags().StringVarP(&genOutput, "output", "o", "", "output file (default <name>.lib or <name>.kicad_sym)")
	generateCmd.Flags().StringVarP(&genFormat, "format", "f", config.FormatLegacy, "library format (legacy or kicad_sym)")
	generateCmd.Flags().BoolVar(&genTruncate, "truncate", false, "replace the file instead of appending")
	generateCmd.Flags().BoolVar(&genNoPins, "no-pins", false, "write the outline only")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	logger := loggerFromContext(cmd.Context())

	file, err := resolveFile(cmd, &genSpec, args)
	if err != nil {
		return err
	}
	changed := cmd.Flags().Changed
	if changed("output") {
		file.Output.Path = genOutput
	}
	if changed("format") {
		file.Output.Format = genFormat
	}
	if changed("truncate") {
		file.Output.Truncate = genTruncate
	}
	if changed("no-pins") {
		file.Output.IncludePins = !genNoPins
	}

	spec, err := file.Spec()
	if err != nil {
		return err
	}

	path, geom, err := writeSymbol(file, spec, logger)
	if err != nil {
		return err
	}

	printSummary(cmd, spec, geom, path)
	return nil
}

// writeSymbol writes spec in the format and to the path file selects, and
// returns both. Excluding pins is only possible in legacy libraries.
func writeSymbol(file config.File, spec symgen.Spec, logger *log.Logger) (string, *symgen.Geometry, error) {
	format, err := file.OutputFormat()
	if err != nil {
		return "", nil, err
	}
	path := file.OutputPath(format)

	logger.Debug("generating symbol", "name", spec.Name, "pins", spec.Pins.Total(), "format", format, "path", path)

	if format == config.FormatKicadSym {
		if !file.Output.IncludePins {
			return "", nil, errors.New(errors.ErrCodeUnsupported, "%s output always includes pins", config.FormatKicadSym)
		}
		geom, err := symgen.Compute(spec)
		if err != nil {
			return "", nil, err
		}
		if err := library.ExportKicadSym(path, spec); err != nil {
			return "", nil, err
		}
		return path, geom, nil
	}

	opts := []library.Option{library.WithLogger(logger)}
	if file.Output.Truncate {
		opts = append(opts, library.WithTruncate())
	}
	if !file.Output.IncludePins {
		opts = append(opts, library.WithoutPins())
	}
	geom, err := library.Append(path, spec, opts...)
	if err != nil {
		return "", nil, err
	}
	return path, geom, nil
}

func printSummary(cmd *cobra.Command, spec symgen.Spec, geom *symgen.Geometry, path string) {
	w := cmd.OutOrStdout()
	printSuccess(w, "Symbol %s generated", StyleTitle.Render(spec.Name))
	printDetail(w, "File", path)
	printDetail(w, "Total pins", StyleNumber.Render(fmt.Sprint(spec.Pins.Total())))
	printDetail(w, "Body", fmt.Sprintf("%dx%d mils", geom.Width, geom.Height))
	printDetail(w, "Unit", fmt.Sprintf("%d of %d", spec.Unit, spec.UnitCount))
}
