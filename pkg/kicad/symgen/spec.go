package symgen

import (
	"github.com/OpenTraceLab/kisym/pkg/errors"
)

// Spec is a snapshot of every parameter a generation request needs.
// All dimensions are in internal units (mils); callers holding display-unit
// values normalize them with DisplayUnit.ToInternal first.
type Spec struct {
	Name       string // Symbol name, also the F1 value field
	Designator string // Reference designator prefix, e.g. "U"

	UnitCount int // Interchangeable units in the package (>= 1)
	Unit      int // Unit the drawn body belongs to, 0 = common to all units

	PinSpacing    int // Distance between adjacent pin slots
	PinStubLength int // Length of each pin stub
	Pins          PinCounts

	DefaultWidth     int // Body width when top/bottom pins don't need more
	OutlineThickness int // Outline stroke width

	TextWidth  int // Pin number/name text width
	TextHeight int // Pin number/name text height

	// ShowPinNumbers only affects previews; numbers are always written.
	ShowPinNumbers bool
}

// DefaultSpec returns the generator's stock parameters for name and
// designator: a single-unit 5+5 pin body 800 mils wide.
func DefaultSpec(name, designator string) Spec {
	return Spec{
		Name:             name,
		Designator:       designator,
		UnitCount:        1,
		Unit:             1,
		PinSpacing:       200,
		PinStubLength:    200,
		Pins:             PinCounts{Left: 5, Right: 5},
		DefaultWidth:     800,
		OutlineThickness: 5,
		TextWidth:        60,
		TextHeight:       60,
		ShowPinNumbers:   true,
	}
}

// Validate rejects specs that cannot produce a well-formed symbol.
// The returned error has code INVALID_SPEC.
func (s Spec) Validate() error {
	if err := errors.ValidateIdentifier("name", s.Name); err != nil {
		return err
	}
	if err := errors.ValidateIdentifier("designator", s.Designator); err != nil {
		return err
	}

	if s.UnitCount < 1 {
		return errors.New(errors.ErrCodeInvalidSpec, "unit count must be at least 1, got %d", s.UnitCount)
	}
	if s.Unit < 0 || s.Unit > s.UnitCount {
		return errors.New(errors.ErrCodeInvalidSpec, "unit %d out of range 0..%d", s.Unit, s.UnitCount)
	}

	for _, side := range Sides {
		if n := s.Pins.Count(side); n < 0 {
			return errors.New(errors.ErrCodeInvalidSpec, "%s pin count must not be negative, got %d", side, n)
		}
	}

	positive := []struct {
		field string
		value int
	}{
		{"pin spacing", s.PinSpacing},
		{"pin stub length", s.PinStubLength},
		{"default width", s.DefaultWidth},
		{"outline thickness", s.OutlineThickness},
		{"text width", s.TextWidth},
		{"text height", s.TextHeight},
	}
	for _, p := range positive {
		if p.value <= 0 {
			return errors.New(errors.ErrCodeInvalidSpec, "%s must be positive, got %d", p.field, p.value)
		}
	}

	return nil
}
