package renderer

import (
	"image"
	"image/color"
	"math"
	"strconv"

	"gioui.org/f32"
	"gioui.org/font/gofont"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget/material"

	"github.com/OpenTraceLab/kisym/pkg/kicad/symgen"
)

// Global theme for text rendering
var defaultTheme = material.NewTheme()

func init() {
	defaultTheme.Shaper = text.NewShaper(text.WithCollection(gofont.Collection()))
}

// Minimum on-screen stroke width in pixels
const minStrokeWidth = 1.0

// Labels smaller than this many pixels are skipped
const minTextPixels = 4.0

// RenderOptions controls what is drawn besides the outline
type RenderOptions struct {
	ShowGrid bool // Grid at the pin spacing
	ShowPins bool // Pin stubs, and their numbers when the spec shows them
}

// DefaultRenderOptions returns options with everything enabled
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		ShowGrid: true,
		ShowPins: true,
	}
}

// Grids finer than this many pixels are skipped
const minGridPixels = 8.0

// RenderSymbol draws a computed symbol with DefaultRenderOptions.
func RenderSymbol(gtx layout.Context, camera *Camera, spec symgen.Spec, geom *symgen.Geometry, colors *Colors) {
	RenderSymbolWithOptions(gtx, camera, spec, geom, colors, DefaultRenderOptions())
}

// RenderSymbolWithOptions draws the grid, outline, pin stubs and text of a
// computed symbol as selected by opts.
func RenderSymbolWithOptions(gtx layout.Context, camera *Camera, spec symgen.Spec, geom *symgen.Geometry, colors *Colors, opts RenderOptions) {
	if geom == nil {
		return
	}

	paint.Fill(gtx.Ops, colors.Background)

	if opts.ShowGrid {
		RenderGrid(gtx, camera, spec.PinSpacing, colors.Grid)
	}

	RenderOutline(gtx, camera, geom, float64(spec.OutlineThickness), colors.Body)
	for _, seg := range visiblePins(geom, spec.PinStubLength, opts) {
		renderSegment(gtx, camera, seg.From, seg.To, minStrokeWidth, colors.Pin)
	}
	renderPinNumbers(gtx, camera, pinLabels(geom, spec, opts), spec.TextHeight, colors.PinNumber)
	renderFields(gtx, camera, geom, spec, colors.Text)
}

// RenderGrid draws lines every step mils across the visible area.
func RenderGrid(gtx layout.Context, camera *Camera, step int, c color.NRGBA) {
	xs, ys := gridLines(camera, step)
	if len(xs) == 0 && len(ys) == 0 {
		return
	}

	w, h := float64(camera.ScreenWidth), float64(camera.ScreenHeight)
	for _, x := range xs {
		sx, _ := camera.WorldToScreen(symgen.Point{X: x})
		renderLine(gtx, sx, 0, sx, h, minStrokeWidth, c)
	}
	for _, y := range ys {
		_, sy := camera.WorldToScreen(symgen.Point{Y: y})
		renderLine(gtx, 0, sy, w, sy, minStrokeWidth, c)
	}
}

// gridLines returns the world X and Y coordinates of the grid lines that fall
// on screen. It returns nothing when lines would be closer than minGridPixels.
func gridLines(camera *Camera, step int) (xs, ys []int) {
	if step <= 0 || float64(step)*camera.Zoom < minGridPixels {
		return nil, nil
	}

	minX, maxY := camera.ScreenToWorld(0, 0)
	maxX, minY := camera.ScreenToWorld(float64(camera.ScreenWidth), float64(camera.ScreenHeight))

	for k := int(math.Ceil(minX / float64(step))); k*step <= int(math.Floor(maxX)); k++ {
		xs = append(xs, k*step)
	}
	for k := int(math.Ceil(minY / float64(step))); k*step <= int(math.Floor(maxY)); k++ {
		ys = append(ys, k*step)
	}
	return xs, ys
}

// RenderOutline strokes the four body edges.
func RenderOutline(gtx layout.Context, camera *Camera, geom *symgen.Geometry, thickness float64, c color.NRGBA) {
	width := max(thickness*camera.Zoom, minStrokeWidth)
	for _, e := range geom.Edges() {
		renderSegment(gtx, camera, e.From, e.To, width, c)
	}
}

// visiblePins returns the pin segments opts lets through.
func visiblePins(geom *symgen.Geometry, stub int, opts RenderOptions) []symgen.Segment {
	if !opts.ShowPins {
		return nil
	}
	return pinSegments(geom, stub)
}

// pinSegments returns one tip-to-body segment per pin.
func pinSegments(geom *symgen.Geometry, stub int) []symgen.Segment {
	segs := make([]symgen.Segment, len(geom.Pins))
	for i, pin := range geom.Pins {
		segs[i] = symgen.Segment{From: pin.Position, To: pin.BodyPoint(stub)}
	}
	return segs
}

func renderSegment(gtx layout.Context, camera *Camera, from, to symgen.Point, width float64, c color.NRGBA) {
	x1, y1 := camera.WorldToScreen(from)
	x2, y2 := camera.WorldToScreen(to)
	renderLine(gtx, x1, y1, x2, y2, width, c)
}

// renderLine draws a line between two screen points
func renderLine(gtx layout.Context, x1, y1, x2, y2, width float64, lineColor color.NRGBA) {
	var path clip.Path
	path.Begin(gtx.Ops)
	path.MoveTo(f32.Pt(float32(x1), float32(y1)))
	path.LineTo(f32.Pt(float32(x2), float32(y2)))

	stroke := clip.Stroke{
		Path:  path.End(),
		Width: float32(width),
	}.Op()

	paint.FillShape(gtx.Ops, lineColor, stroke)
}

// pinLabel is a pin number anchored at the middle of its stub.
type pinLabel struct {
	Text   string
	Anchor symgen.Point
}

// pinLabels returns the numbers to draw: none unless pins are shown and the
// spec asks for numbers.
func pinLabels(geom *symgen.Geometry, spec symgen.Spec, opts RenderOptions) []pinLabel {
	if !opts.ShowPins || !spec.ShowPinNumbers {
		return nil
	}
	labels := make([]pinLabel, len(geom.Pins))
	for i, pin := range geom.Pins {
		body := pin.BodyPoint(spec.PinStubLength)
		labels[i] = pinLabel{
			Text: strconv.Itoa(pin.Number),
			Anchor: symgen.Point{
				X: (pin.Position.X + body.X) / 2,
				Y: (pin.Position.Y + body.Y) / 2,
			},
		}
	}
	return labels
}

// renderPinNumbers places each label just above its anchor.
func renderPinNumbers(gtx layout.Context, camera *Camera, labels []pinLabel, textHeight int, c color.NRGBA) {
	size := float64(textHeight) * camera.Zoom
	if size < minTextPixels {
		return
	}
	for _, l := range labels {
		x, y := camera.WorldToScreen(l.Anchor)
		renderText(gtx, x, y-size, size, l.Text, c)
	}
}

// renderFields draws the designator above the body and the name at its center.
func renderFields(gtx layout.Context, camera *Camera, geom *symgen.Geometry, spec symgen.Spec, c color.NRGBA) {
	size := float64(spec.TextHeight) * camera.Zoom
	if size < minTextPixels {
		return
	}

	x, y := camera.WorldToScreen(geom.Corners.TopLeft)
	renderText(gtx, x, y-size*1.5, size, spec.Designator+"?", c)

	x, y = camera.WorldToScreen(symgen.Point{})
	renderText(gtx, x-size*float64(len(spec.Name))/4, y-size/2, size, spec.Name, c)
}

// renderText lays out a label with its top-left corner at (x, y) screen pixels
func renderText(gtx layout.Context, x, y, sizePx float64, str string, c color.NRGBA) {
	if str == "" {
		return
	}

	pxPerSp := float64(gtx.Metric.PxPerSp)
	if pxPerSp <= 0 {
		pxPerSp = 1
	}

	stack := op.Offset(image.Pt(int(x), int(y))).Push(gtx.Ops)
	defer stack.Pop()

	lbl := material.Label(defaultTheme, unit.Sp(sizePx/pxPerSp), str)
	lbl.Color = c
	lbl.Alignment = text.Start
	lbl.MaxLines = 1

	gtx.Constraints.Min = image.Point{}
	lbl.Layout(gtx)
}
