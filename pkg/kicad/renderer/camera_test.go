package renderer

import (
	"math"
	"testing"

	"github.com/OpenTraceLab/kisym/pkg/kicad/symgen"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestWorldToScreenFlipsY(t *testing.T) {
	cam := &Camera{Zoom: 0.5, ScreenWidth: 800, ScreenHeight: 600}

	x, y := cam.WorldToScreen(symgen.Point{X: 0, Y: 0})
	if !approx(x, 400) || !approx(y, 300) {
		t.Fatalf("origin maps to (%v, %v), want (400, 300)", x, y)
	}

	x, y = cam.WorldToScreen(symgen.Point{X: 200, Y: 200})
	if !approx(x, 500) || !approx(y, 200) {
		t.Errorf("(200,200) maps to (%v, %v), want (500, 200)", x, y)
	}
}

func TestScreenToWorldRoundTrip(t *testing.T) {
	cam := &Camera{CenterX: 120, CenterY: -40, Zoom: 0.3, ScreenWidth: 640, ScreenHeight: 480}
	for _, p := range []symgen.Point{{X: 0, Y: 0}, {X: -600, Y: 400}, {X: 350, Y: -250}} {
		sx, sy := cam.WorldToScreen(p)
		wx, wy := cam.ScreenToWorld(sx, sy)
		if !approx(wx, float64(p.X)) || !approx(wy, float64(p.Y)) {
			t.Errorf("round trip of %v gave (%v, %v)", p, wx, wy)
		}
	}
}

func TestZoomAtKeepsPointFixed(t *testing.T) {
	cam := &Camera{Zoom: 0.1, ScreenWidth: 800, ScreenHeight: 600}
	beforeX, beforeY := cam.ScreenToWorld(100, 50)

	cam.ZoomAt(100, 50, 2)
	if !approx(cam.Zoom, 0.2) {
		t.Fatalf("zoom = %v, want 0.2", cam.Zoom)
	}
	afterX, afterY := cam.ScreenToWorld(100, 50)
	if !approx(beforeX, afterX) || !approx(beforeY, afterY) {
		t.Errorf("anchor moved from (%v, %v) to (%v, %v)", beforeX, beforeY, afterX, afterY)
	}

	cam.ZoomAt(0, 0, 1e9)
	if cam.Zoom != maxZoom {
		t.Errorf("zoom = %v, want clamped to %v", cam.Zoom, maxZoom)
	}
	cam.ZoomAt(0, 0, 1e-12)
	if cam.Zoom != minZoom {
		t.Errorf("zoom = %v, want clamped to %v", cam.Zoom, minZoom)
	}
}

func TestPan(t *testing.T) {
	cam := &Camera{Zoom: 0.5, ScreenWidth: 100, ScreenHeight: 100}
	cam.Pan(10, 20)
	if !approx(cam.CenterX, -20) || !approx(cam.CenterY, 40) {
		t.Errorf("center = (%v, %v), want (-20, 40)", cam.CenterX, cam.CenterY)
	}
}

func TestFit(t *testing.T) {
	geom, err := symgen.Compute(symgen.DefaultSpec("OPAMP", "U"))
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	cam := &Camera{Zoom: 1, ScreenWidth: 1000, ScreenHeight: 500}
	cam.Fit(geom)

	lo, hi := geom.Bounds()
	if !approx(cam.CenterX, float64(lo.X+hi.X)/2) || !approx(cam.CenterY, float64(lo.Y+hi.Y)/2) {
		t.Errorf("center = (%v, %v), want middle of %v..%v", cam.CenterX, cam.CenterY, lo, hi)
	}

	for _, p := range []symgen.Point{lo, hi} {
		x, y := cam.WorldToScreen(p)
		if x < 0 || x > 1000 || y < 0 || y > 500 {
			t.Errorf("bound %v maps off screen to (%v, %v)", p, x, y)
		}
	}
}

func TestPixelsPerMil(t *testing.T) {
	if got := PixelsPerMil(symgen.Mils); !approx(got, 1/10.416) {
		t.Errorf("mils: got %v", got)
	}
	if got := PixelsPerMil(symgen.Millimeters); !approx(got, 0.0254/0.264) {
		t.Errorf("mm: got %v", got)
	}
}

func TestThemeNext(t *testing.T) {
	if ThemeLight.Next() != ThemeDark || ThemeDark.Next() != ThemeLight {
		t.Error("Next should toggle between light and dark")
	}
	if GetColors(ThemeDark).Background == GetColors(ThemeLight).Background {
		t.Error("themes should differ")
	}
}
