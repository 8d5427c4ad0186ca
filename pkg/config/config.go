// Package config loads symbol definitions from TOML files.
//
// A definition file describes one symbol. Dimensions are given in
// display_unit (mils by default) and normalized to mils when the symgen.Spec
// is built:
//
//	name = "OPAMP"
//	designator = "U"
//	display_unit = "mm"
//	pin_spacing = 2.54
//	pin_length = 2.54
//	default_width = 20.32
//
//	[pins]
//	left = 3
//	right = 3
//
//	[output]
//	path = "opamp.lib"
//	truncate = true
package config

import (
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/OpenTraceLab/kisym/pkg/errors"
	"github.com/OpenTraceLab/kisym/pkg/kicad/library"
	"github.com/OpenTraceLab/kisym/pkg/kicad/symgen"
	"github.com/OpenTraceLab/kisym/pkg/kicad/symgen/pinspec"
)

// Output formats
const (
	FormatLegacy   = "legacy"
	FormatKicadSym = "kicad_sym"
)

// File is the decoded form of a symbol definition file.
type File struct {
	Name        string `toml:"name"`
	Designator  string `toml:"designator"`
	Units       int    `toml:"units"`
	Unit        int    `toml:"unit"`
	DisplayUnit string `toml:"display_unit"`

	PinSpacing       float64 `toml:"pin_spacing"`
	PinLength        float64 `toml:"pin_length"`
	DefaultWidth     float64 `toml:"default_width"`
	OutlineThickness float64 `toml:"outline_thickness"`
	TextWidth        float64 `toml:"text_width"`
	TextHeight       float64 `toml:"text_height"`

	ShowPinNumbers bool `toml:"show_pin_numbers"`

	Pins   Pins   `toml:"pins"`
	Output Output `toml:"output"`
}

// Pins holds the per-side pin counts. Layout, when set, is a compact
// pinspec string and takes precedence over the individual counts.
type Pins struct {
	Left   int    `toml:"left"`
	Right  int    `toml:"right"`
	Top    int    `toml:"top"`
	Bottom int    `toml:"bottom"`
	Layout string `toml:"layout"`
}

// Output selects where and how the symbol is written.
type Output struct {
	Path        string `toml:"path"`
	Truncate    bool   `toml:"truncate"`
	Format      string `toml:"format"`
	IncludePins bool   `toml:"include_pins"`
}

// Default returns a File holding the generator's stock parameters in mils.
func Default() File {
	spec := symgen.DefaultSpec("", "U")
	return File{
		Designator:       spec.Designator,
		Units:            spec.UnitCount,
		Unit:             spec.Unit,
		DisplayUnit:      symgen.Mils.String(),
		PinSpacing:       float64(spec.PinSpacing),
		PinLength:        float64(spec.PinStubLength),
		DefaultWidth:     float64(spec.DefaultWidth),
		OutlineThickness: float64(spec.OutlineThickness),
		TextWidth:        float64(spec.TextWidth),
		TextHeight:       float64(spec.TextHeight),
		ShowPinNumbers:   spec.ShowPinNumbers,
		Pins: Pins{
			Left:   spec.Pins.Left,
			Right:  spec.Pins.Right,
			Top:    spec.Pins.Top,
			Bottom: spec.Pins.Bottom,
		},
		Output: Output{
			Format:      FormatLegacy,
			IncludePins: true,
		},
	}
}

// Load reads a definition file over Default.
func Load(path string) (File, error) {
	f := Default()
	md, err := toml.DecodeFile(path, &f)
	if err != nil {
		return File{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode %s", path)
	}
	if err := finish(md, &f, path); err != nil {
		return File{}, err
	}
	return f, nil
}

// Decode parses definition text over Default.
func Decode(data string) (File, error) {
	f := Default()
	md, err := toml.Decode(data, &f)
	if err != nil {
		return File{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode symbol definition")
	}
	if err := finish(md, &f, "symbol definition"); err != nil {
		return File{}, err
	}
	return f, nil
}

// finish rejects unknown keys and expresses the dimensions the file left
// out in its display unit, since Default holds them in mils.
func finish(md toml.MetaData, f *File, source string) error {
	if err := checkUndecoded(md, source); err != nil {
		return err
	}
	u, err := f.ParseUnit()
	if err != nil {
		return err
	}
	for key, v := range f.dimensions() {
		if !md.IsDefined(key) {
			*v = u.FromInternal(*v)
		}
	}
	return nil
}

func checkUndecoded(md toml.MetaData, source string) error {
	undecoded := md.Undecoded()
	if len(undecoded) == 0 {
		return nil
	}

	keys := make([]string, len(undecoded))
	for i, k := range undecoded {
		keys[i] = k.String()
	}
	sort.Strings(keys)
	return errors.New(errors.ErrCodeInvalidConfig, "%s: unknown keys %s", source, strings.Join(keys, ", "))
}

// dimensions maps each dimension key to its field.
func (f *File) dimensions() map[string]*float64 {
	return map[string]*float64{
		"pin_spacing":       &f.PinSpacing,
		"pin_length":        &f.PinLength,
		"default_width":     &f.DefaultWidth,
		"outline_thickness": &f.OutlineThickness,
		"text_width":        &f.TextWidth,
		"text_height":       &f.TextHeight,
	}
}

// SetDisplayUnit switches the file to another display unit, converting
// every dimension so the symbol keeps its size.
func (f *File) SetDisplayUnit(s string) error {
	from, err := f.ParseUnit()
	if err != nil {
		return err
	}
	to, err := symgen.ParseDisplayUnit(s)
	if err != nil {
		return err
	}
	if from != to {
		for _, v := range f.dimensions() {
			*v = to.FromInternal(float64(from.ToInternal(*v)))
		}
	}
	f.DisplayUnit = to.String()
	return nil
}

// ParseUnit returns the display unit dimension keys are written in.
func (f File) ParseUnit() (symgen.DisplayUnit, error) {
	return symgen.ParseDisplayUnit(f.DisplayUnit)
}

// Spec normalizes the file into an immutable symgen.Spec. Dimensions are
// converted from the display unit to mils and the result is validated.
func (f File) Spec() (symgen.Spec, error) {
	u, err := f.ParseUnit()
	if err != nil {
		return symgen.Spec{}, err
	}

	counts := symgen.PinCounts{
		Left:   f.Pins.Left,
		Right:  f.Pins.Right,
		Top:    f.Pins.Top,
		Bottom: f.Pins.Bottom,
	}
	if f.Pins.Layout != "" {
		if counts, err = pinspec.Parse(f.Pins.Layout); err != nil {
			return symgen.Spec{}, err
		}
	}

	spec := symgen.Spec{
		Name:             f.Name,
		Designator:       f.Designator,
		UnitCount:        f.Units,
		Unit:             f.Unit,
		PinSpacing:       u.ToInternal(f.PinSpacing),
		PinStubLength:    u.ToInternal(f.PinLength),
		Pins:             counts,
		DefaultWidth:     u.ToInternal(f.DefaultWidth),
		OutlineThickness: u.ToInternal(f.OutlineThickness),
		TextWidth:        u.ToInternal(f.TextWidth),
		TextHeight:       u.ToInternal(f.TextHeight),
		ShowPinNumbers:   f.ShowPinNumbers,
	}
	if err := spec.Validate(); err != nil {
		return symgen.Spec{}, err
	}
	return spec, nil
}

// OutputFormat returns the validated output format.
func (f File) OutputFormat() (string, error) {
	switch strings.ToLower(f.Output.Format) {
	case "", FormatLegacy, "lib":
		return FormatLegacy, nil
	case FormatKicadSym:
		return FormatKicadSym, nil
	}
	return "", errors.New(errors.ErrCodeInvalidConfig, "unknown output format %q (want %s or %s)",
		f.Output.Format, FormatLegacy, FormatKicadSym)
}

// OutputPath returns the configured path, or the symbol name with the
// extension of format when none is set.
func (f File) OutputPath(format string) string {
	if f.Output.Path != "" {
		return f.Output.Path
	}
	if format == FormatKicadSym {
		return f.Name + library.KicadSymExtension
	}
	return library.FileName(f.Name)
}
