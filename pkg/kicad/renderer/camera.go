// Package renderer draws symbol geometry with gio for on-screen previews.
//
// It never lays out a symbol itself: every function takes the
// symgen.Geometry that the library writers serialize.
package renderer

import (
	"github.com/OpenTraceLab/kisym/pkg/kicad/symgen"
)

// Zoom limits in pixels per mil
const (
	minZoom = 0.005
	maxZoom = 10.0
)

// Camera represents a viewport onto symbol space.
// World coordinates are mils with Y increasing upward; screen coordinates are
// pixels with Y increasing downward.
type Camera struct {
	// Center position in world coordinates (mils)
	CenterX float64
	CenterY float64

	// Zoom level (pixels per mil)
	Zoom float64

	// Screen dimensions (pixels)
	ScreenWidth  int
	ScreenHeight int
}

// NewCamera creates a camera centered on the origin at the 96 DPI scale of
// the given display unit.
func NewCamera(screenWidth, screenHeight int, unit symgen.DisplayUnit) *Camera {
	return &Camera{
		Zoom:         PixelsPerMil(unit),
		ScreenWidth:  screenWidth,
		ScreenHeight: screenHeight,
	}
}

// PixelsPerMil is the preview scale for a display unit.
func PixelsPerMil(unit symgen.DisplayUnit) float64 {
	if unit == symgen.Millimeters {
		return unit.ToPixels(0.0254)
	}
	return unit.ToPixels(1)
}

// WorldToScreen converts world coordinates (mils) to screen coordinates (pixels)
func (c *Camera) WorldToScreen(p symgen.Point) (float64, float64) {
	x := (float64(p.X)-c.CenterX)*c.Zoom + float64(c.ScreenWidth)/2.0
	y := float64(c.ScreenHeight)/2.0 - (float64(p.Y)-c.CenterY)*c.Zoom
	return x, y
}

// ScreenToWorld converts screen coordinates (pixels) to world coordinates (mils)
func (c *Camera) ScreenToWorld(screenX, screenY float64) (float64, float64) {
	x := (screenX-float64(c.ScreenWidth)/2.0)/c.Zoom + c.CenterX
	y := (float64(c.ScreenHeight)/2.0-screenY)/c.Zoom + c.CenterY
	return x, y
}

// Pan moves the camera by screen pixel offsets
func (c *Camera) Pan(deltaX, deltaY float64) {
	c.CenterX -= deltaX / c.Zoom
	c.CenterY += deltaY / c.Zoom
}

// ZoomAt zooms in/out keeping the world point under (screenX, screenY) fixed.
// factor > 1 zooms in, factor < 1 zooms out
func (c *Camera) ZoomAt(screenX, screenY, factor float64) {
	beforeX, beforeY := c.ScreenToWorld(screenX, screenY)

	c.Zoom *= factor
	if c.Zoom < minZoom {
		c.Zoom = minZoom
	}
	if c.Zoom > maxZoom {
		c.Zoom = maxZoom
	}

	afterX, afterY := c.ScreenToWorld(screenX, screenY)
	c.CenterX += beforeX - afterX
	c.CenterY += beforeY - afterY
}

// Fit centers the geometry and zooms so it fills 80% of the screen.
func (c *Camera) Fit(g *symgen.Geometry) {
	lo, hi := g.Bounds()
	width := float64(hi.X - lo.X)
	height := float64(hi.Y - lo.Y)

	c.CenterX = float64(lo.X+hi.X) / 2.0
	c.CenterY = float64(lo.Y+hi.Y) / 2.0

	if width <= 0 || height <= 0 {
		return
	}

	zoomX := float64(c.ScreenWidth) * 0.8 / width
	zoomY := float64(c.ScreenHeight) * 0.8 / height
	c.Zoom = min(zoomX, zoomY, maxZoom)
}

// UpdateScreenSize updates camera when window is resized
func (c *Camera) UpdateScreenSize(width, height int) {
	c.ScreenWidth = width
	c.ScreenHeight = height
}
