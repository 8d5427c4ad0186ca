package symgen

import "fmt"

// Side is an edge of the symbol outline that carries pins.
type Side int

const (
	Left Side = iota
	Right
	Top
	Bottom
)

// Sides lists every side in emission order.
var Sides = [...]Side{Left, Right, Top, Bottom}

func (s Side) String() string {
	switch s {
	case Left:
		return "left"
	case Right:
		return "right"
	case Top:
		return "top"
	case Bottom:
		return "bottom"
	}
	return fmt.Sprintf("Side(%d)", int(s))
}

// Orientation is the direction a pin stub points from its outer tip.
type Orientation byte

const (
	PointRight Orientation = 'R'
	PointLeft  Orientation = 'L'
	PointUp    Orientation = 'U'
	PointDown  Orientation = 'D'
)

// Orientation returns the stub direction for pins on s: always into the body.
func (s Side) Orientation() Orientation {
	switch s {
	case Right:
		return PointLeft
	case Top:
		return PointDown
	case Bottom:
		return PointUp
	default:
		return PointRight
	}
}

// Code is the single-letter orientation used by library records.
func (o Orientation) Code() string {
	return string(rune(o))
}

// Angle is the orientation in degrees counter-clockwise from +X.
func (o Orientation) Angle() int {
	switch o {
	case PointUp:
		return 90
	case PointLeft:
		return 180
	case PointDown:
		return 270
	default:
		return 0
	}
}

// Delta is the unit step along the stub direction (Y grows upward).
func (o Orientation) Delta() (dx, dy int) {
	switch o {
	case PointUp:
		return 0, 1
	case PointLeft:
		return -1, 0
	case PointDown:
		return 0, -1
	default:
		return 1, 0
	}
}

// Point is a coordinate in internal units (mils), Y growing upward.
type Point struct {
	X int
	Y int
}

func (p Point) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

// PinCounts is the number of pins on each side.
type PinCounts struct {
	Left   int
	Right  int
	Top    int
	Bottom int
}

// Total is the number of pins on all sides.
func (c PinCounts) Total() int {
	return c.Left + c.Right + c.Top + c.Bottom
}

// FourSided reports whether any pins sit on the top or bottom edge.
func (c PinCounts) FourSided() bool {
	return c.Top != 0 || c.Bottom != 0
}

// Count returns the number of pins on side s.
func (c PinCounts) Count(s Side) int {
	switch s {
	case Left:
		return c.Left
	case Right:
		return c.Right
	case Top:
		return c.Top
	case Bottom:
		return c.Bottom
	}
	return 0
}

// Pin is one placed and numbered connection point.
type Pin struct {
	Number   int   // 1..total, unique within the symbol
	Side     Side  // Edge the pin is attached to
	Slot     int   // 1-based index along the side
	Position Point // Outer tip of the stub
}

// Orientation returns the direction the stub points.
func (p Pin) Orientation() Orientation {
	return p.Side.Orientation()
}

// BodyPoint is where a stub of the given length meets the outline.
func (p Pin) BodyPoint(stub int) Point {
	dx, dy := p.Orientation().Delta()
	return Point{X: p.Position.X + dx*stub, Y: p.Position.Y + dy*stub}
}
