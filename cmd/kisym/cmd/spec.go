package cmd

import (
	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/kisym/pkg/config"
	"github.com/OpenTraceLab/kisym/pkg/errors"
)

// specFlags are the symbol parameters shared by generate, layout and preview.
// Values given on the command line override the definition file.
type specFlags struct {
	config      string
	designator  string
	pins        string
	displayUnit string
	units       int
	unit        int
	spacing     float64
	stub        float64
	width       float64
	thickness   float64
	textWidth   float64
	textHeight  float64
	noNumbers   bool
}

func addSpecFlags(cmd *cobra.Command, f *specFlags) {
	def := config.Default()
	flags := cmd.Flags()
	flags.StringVarP(&f.config, "config", "c", "", "symbol definition file (TOML)")
	flags.StringVarP(&f.designator, "designator", "d", def.Designator, "reference designator prefix")
	flags.StringVarP(&f.pins, "pins", "p", "", `pin counts per side, e.g. "L3 R3 T0 B0"`)
	flags.StringVar(&f.displayUnit, "display-unit", def.DisplayUnit, "unit of dimension flags (mils or mm)")
	flags.IntVar(&f.units, "units", def.Units, "number of units in the package")
	flags.IntVar(&f.unit, "unit", def.Unit, "unit the body is drawn for (0 = all units)")
	flags.Float64Var(&f.spacing, "spacing", def.PinSpacing, "pin spacing")
	flags.Float64Var(&f.stub, "stub", def.PinLength, "pin stub length")
	flags.Float64Var(&f.width, "width", def.DefaultWidth, "default body width")
	flags.Float64Var(&f.thickness, "thickness", def.OutlineThickness, "outline thickness")
	flags.Float64Var(&f.textWidth, "text-width", def.TextWidth, "pin text width")
	flags.Float64Var(&f.textHeight, "text-height", def.TextHeight, "pin text height")
	flags.BoolVar(&f.noNumbers, "no-pin-numbers", false, "hide pin numbers in previews")
}

// resolveFile loads the definition file, if any, and applies the flags the
// user set explicitly. args[0], when present, is the symbol name.
func resolveFile(cmd *cobra.Command, f *specFlags, args []string) (config.File, error) {
	file := config.Default()
	if f.config != "" {
		loaded, err := config.Load(f.config)
		if err != nil {
			return config.File{}, err
		}
		file = loaded
	}

	if len(args) > 0 {
		file.Name = args[0]
	}
	if file.Name == "" {
		return config.File{}, errors.New(errors.ErrCodeInvalidSpec, "symbol name required (argument or name in --config)")
	}

	changed := cmd.Flags().Changed
	// Dimension flags are given in the selected unit, so switch it first.
	if changed("display-unit") {
		if err := file.SetDisplayUnit(f.displayUnit); err != nil {
			return config.File{}, err
		}
	}
	if changed("designator") {
		file.Designator = f.designator
	}
	if changed("pins") {
		file.Pins.Layout = f.pins
	}
	if changed("units") {
		file.Units = f.units
	}
	if changed("unit") {
		file.Unit = f.unit
	}
	if changed("spacing") {
		file.PinSpacing = f.spacing
	}
	if changed("stub") {
		file.PinLength = f.stub
	}
	if changed("width") {
		file.DefaultWidth = f.width
	}
	if changed("thickness") {
		file.OutlineThickness = f.thickness
	}
	if changed("text-width") {
		file.TextWidth = f.textWidth
	}
	if changed("text-height") {
		file.TextHeight = f.textHeight
	}
	if changed("no-pin-numbers") {
		file.ShowPinNumbers = !f.noNumbers
	}
	return file, nil
}
