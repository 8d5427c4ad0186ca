package symgen

import (
	"math"
	"strings"

	"github.com/OpenTraceLab/kisym/pkg/errors"
)

// DisplayUnit is the physical unit a user entered a dimension in.
// Library files always store mils, the internal coordinate unit.
type DisplayUnit int

const (
	// Mils is thousandths of an inch, identical to the internal unit.
	Mils DisplayUnit = iota
	// Millimeters is metric input.
	Millimeters
)

// Scale factors from a display unit to internal mils and to preview pixels.
const (
	milsPerMil = 1.0
	milsPerMM  = 1000.0 / 25.4

	milsPerPixel = 10.416
	mmPerPixel   = 0.264
)

// ParseDisplayUnit accepts "mil", "mils", "mm", "millimeter" and "millimeters"
// in any case. An empty string selects Mils.
func ParseDisplayUnit(s string) (DisplayUnit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "mil", "mils":
		return Mils, nil
	case "mm", "millimeter", "millimeters", "millimetre", "millimetres":
		return Millimeters, nil
	}
	return Mils, errors.New(errors.ErrCodeInvalidUnit, "unknown display unit %q (want mils or mm)", s)
}

// String returns the short unit name.
func (u DisplayUnit) String() string {
	switch u {
	case Millimeters:
		return "mm"
	default:
		return "mils"
	}
}

// ToInternal converts v to the internal coordinate unit, rounding to the
// nearest mil.
func (u DisplayUnit) ToInternal(v float64) int {
	return int(math.Round(v * u.milsPer()))
}

// FromInternal converts a mil value to this unit without rounding.
func (u DisplayUnit) FromInternal(mils float64) float64 {
	return mils / u.milsPer()
}

func (u DisplayUnit) milsPer() float64 {
	if u == Millimeters {
		return milsPerMM
	}
	return milsPerMil
}

// PixelScale is the number of display units drawn as one preview pixel.
func (u DisplayUnit) PixelScale() float64 {
	if u == Millimeters {
		return mmPerPixel
	}
	return milsPerPixel
}

// ToPixels converts v from this unit to preview pixels.
func (u DisplayUnit) ToPixels(v float64) float64 {
	return v / u.PixelScale()
}
