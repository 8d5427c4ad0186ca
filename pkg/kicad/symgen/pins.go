package symgen

// PlacePins positions and numbers every pin around the outline c.
//
// With no top or bottom pins, left pins are numbered 1..L top to bottom and
// right pins continue L+1..L+R top to bottom.
//
// Otherwise numbers are handed out in the order left, bottom, right, top:
// left and bottom ascend along their slots, while right and top descend, so
// the topmost right pin and the leftmost top pin receive the highest numbers
// of their ranges. Every number in 1..total is used exactly once.
//
// The returned slice is grouped left, right, top, bottom in slot order.
func PlacePins(pins PinCounts, spacing, stub int, c Corners) []Pin {
	placed := make([]Pin, 0, pins.Total())

	leftNumber := func(i int) int { return i }
	rightNumber := func(j int) int { return pins.Left + j }
	topNumber := func(k int) int { return 0 }
	bottomNumber := func(l int) int { return 0 }

	if pins.FourSided() {
		bottomBase := pins.Left
		rightBase := bottomBase + pins.Bottom
		topBase := rightBase + pins.Right

		rightNumber = func(j int) int { return rightBase + pins.Right - j + 1 }
		topNumber = func(k int) int { return topBase + pins.Top - k + 1 }
		bottomNumber = func(l int) int { return bottomBase + l }
	}

	for i := 1; i <= pins.Left; i++ {
		placed = append(placed, Pin{
			Number:   leftNumber(i),
			Side:     Left,
			Slot:     i,
			Position: Point{X: c.TopLeft.X - stub, Y: c.TopLeft.Y - spacing*i},
		})
	}
	for j := 1; j <= pins.Right; j++ {
		placed = append(placed, Pin{
			Number:   rightNumber(j),
			Side:     Right,
			Slot:     j,
			Position: Point{X: c.TopRight.X + stub, Y: c.TopRight.Y - spacing*j},
		})
	}
	for k := 1; k <= pins.Top; k++ {
		placed = append(placed, Pin{
			Number:   topNumber(k),
			Side:     Top,
			Slot:     k,
			Position: Point{X: c.TopLeft.X + spacing*k, Y: c.TopLeft.Y + stub},
		})
	}
	for l := 1; l <= pins.Bottom; l++ {
		placed = append(placed, Pin{
			Number:   bottomNumber(l),
			Side:     Bottom,
			Slot:     l,
			Position: Point{X: c.BottomLeft.X + spacing*l, Y: c.BottomLeft.Y - stub},
		})
	}

	return placed
}
