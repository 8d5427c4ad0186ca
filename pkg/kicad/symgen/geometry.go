package symgen

// Corners are the outline rectangle corners, centered on the origin.
type Corners struct {
	TopLeft     Point
	BottomLeft  Point
	TopRight    Point
	BottomRight Point
}

// Segment is one straight outline edge.
type Segment struct {
	From Point
	To   Point
}

// Geometry is the complete derived layout of a symbol. It is recomputed for
// every request and shared by the serializers and the preview.
type Geometry struct {
	Width   int
	Height  int
	Corners Corners
	Pins    []Pin // Ordered left, right, top, bottom; slot order within a side
}

// ResolveDimensions derives the body size from the pin layout.
//
// The height leaves one spacing of margin past the last slot of the longer
// vertical side. The width follows whichever of top/bottom has more pins and
// never drops below defaultWidth; when top == bottom the bottom count is used.
func ResolveDimensions(pins PinCounts, spacing, defaultWidth int) (width, height int) {
	height = spacing*max(pins.Left, pins.Right) + spacing

	switch {
	case pins.Top > pins.Bottom:
		width = max(spacing*pins.Top+spacing, defaultWidth)
	case pins.Top == 0 && pins.Bottom == 0:
		width = defaultWidth
	default:
		width = max(spacing*pins.Bottom+spacing, defaultWidth)
	}
	return width, height
}

// OutlineCorners returns the rectangle of size width x height centered on the
// origin. Odd sizes truncate toward zero on both halves.
func OutlineCorners(width, height int) Corners {
	hw, hh := width/2, height/2
	return Corners{
		TopLeft:     Point{X: -hw, Y: hh},
		BottomLeft:  Point{X: -hw, Y: -hh},
		TopRight:    Point{X: hw, Y: hh},
		BottomRight: Point{X: hw, Y: -hh},
	}
}

// Edges returns the closed outline path TL->BL->BR->TR->TL.
func (c Corners) Edges() [4]Segment {
	return [4]Segment{
		{From: c.TopLeft, To: c.BottomLeft},
		{From: c.BottomLeft, To: c.BottomRight},
		{From: c.BottomRight, To: c.TopRight},
		{From: c.TopRight, To: c.TopLeft},
	}
}

// Compute validates spec and derives its geometry.
func Compute(spec Spec) (*Geometry, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	width, height := ResolveDimensions(spec.Pins, spec.PinSpacing, spec.DefaultWidth)
	corners := OutlineCorners(width, height)

	return &Geometry{
		Width:   width,
		Height:  height,
		Corners: corners,
		Pins:    PlacePins(spec.Pins, spec.PinSpacing, spec.PinStubLength, corners),
	}, nil
}

// Edges returns the four outline segments.
func (g *Geometry) Edges() [4]Segment {
	return g.Corners.Edges()
}

// PinsOn returns the pins attached to side in slot order.
func (g *Geometry) PinsOn(side Side) []Pin {
	var pins []Pin
	for _, p := range g.Pins {
		if p.Side == side {
			pins = append(pins, p)
		}
	}
	return pins
}

// Bounds is the smallest box holding the outline and every pin tip.
func (g *Geometry) Bounds() (lo, hi Point) {
	lo, hi = g.Corners.BottomLeft, g.Corners.TopRight
	for _, p := range g.Pins {
		lo.X = min(lo.X, p.Position.X)
		lo.Y = min(lo.Y, p.Position.Y)
		hi.X = max(hi.X, p.Position.X)
		hi.Y = max(hi.Y, p.Position.Y)
	}
	return lo, hi
}
