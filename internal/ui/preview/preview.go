// Package preview hosts the interactive symbol preview window.
package preview

import (
	"fmt"
	"io"
	"math"
	"os"

	"gioui.org/app"
	"gioui.org/f32"
	"gioui.org/font/gofont"
	"gioui.org/io/key"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"github.com/charmbracelet/log"
	"golang.org/x/exp/shiny/materialdesign/icons"

	"github.com/OpenTraceLab/kisym/pkg/kicad/renderer"
	"github.com/OpenTraceLab/kisym/pkg/kicad/symgen"
)

// SaveFunc writes spec to its library and returns the path written.
type SaveFunc func(spec symgen.Spec, includePins bool) (string, error)

// Options configures a preview window.
type Options struct {
	Spec        symgen.Spec
	DisplayUnit symgen.DisplayUnit
	IncludePins bool
	Logger      *log.Logger
	// Save is called by the Generate button; nil hides the button.
	Save SaveFunc
}

// App is the preview window state.
type App struct {
	window *app.Window
	theme  *material.Theme
	logger *log.Logger

	spec        symgen.Spec
	displayUnit symgen.DisplayUnit
	geom        *symgen.Geometry
	save        SaveFunc

	camera     *renderer.Camera
	colorTheme renderer.Theme
	colors     *renderer.Colors
	fitted     bool

	fitBtn     widget.Clickable
	themeBtn   widget.Clickable
	zoomInBtn  widget.Clickable
	zoomOutBtn widget.Clickable
	saveBtn    widget.Clickable

	unitSlider  widget.Float
	includePins widget.Bool
	showNumbers widget.Bool

	icons struct {
		fit, theme, zoomIn, zoomOut, save *widget.Icon
	}

	lastPointerPos f32.Point
	isDragging     bool

	status string

	onInvalidate func()
}

// Run opens the preview window and blocks in the gio main loop.
// It only returns if the spec is invalid; closing the window exits the process.
func Run(opts Options) error {
	a, err := New(nil, opts)
	if err != nil {
		return err
	}

	go func() {
		w := new(app.Window)
		w.Option(app.Title("kisym - " + opts.Spec.Name))
		w.Option(app.Size(unit.Dp(1000), unit.Dp(700)))
		a.window = w

		if err := a.loop(); err != nil {
			a.logger.Error("preview window failed", "err", err)
			os.Exit(1)
		}
		os.Exit(0)
	}()
	app.Main()
	return nil
}

// New prepares the preview state for spec. win may be nil for headless use.
func New(win *app.Window, opts Options) (*App, error) {
	geom, err := symgen.Compute(opts.Spec)
	if err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	a := &App{
		window:      win,
		theme:       material.NewTheme(),
		logger:      logger,
		spec:        opts.Spec,
		displayUnit: opts.DisplayUnit,
		geom:        geom,
		save:        opts.Save,
		camera:      renderer.NewCamera(1000, 700, opts.DisplayUnit),
		colorTheme:  renderer.ThemeLight,
	}
	a.theme.Shaper = text.NewShaper(text.WithCollection(gofont.Collection()))
	a.colors = renderer.GetColors(a.colorTheme)
	a.includePins.Value = opts.IncludePins
	a.showNumbers.Value = opts.Spec.ShowPinNumbers
	a.unitSlider.Value = sliderFromUnit(opts.Spec.Unit, opts.Spec.UnitCount)
	a.initIcons()

	return a, nil
}

func (a *App) initIcons() {
	makeIcon := func(data []byte, name string) *widget.Icon {
		icon, err := widget.NewIcon(data)
		if err != nil {
			a.logger.Warn("failed to load icon", "icon", name, "err", err)
			return nil
		}
		return icon
	}
	a.icons.fit = makeIcon(icons.NavigationFullscreen, "fit")
	a.icons.theme = makeIcon(icons.ImageBrightness6, "theme")
	a.icons.zoomIn = makeIcon(icons.ActionZoomIn, "zoom-in")
	a.icons.zoomOut = makeIcon(icons.ActionZoomOut, "zoom-out")
	a.icons.save = makeIcon(icons.ContentSave, "save")
}

func (a *App) loop() error {
	var ops op.Ops
	for {
		switch e := a.window.Event().(type) {
		case app.DestroyEvent:
			return e.Err
		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)
			a.handleInput(gtx)
			a.layout(gtx)
			e.Frame(gtx.Ops)
		}
	}
}

func (a *App) invalidate() {
	if a.window != nil {
		a.window.Invalidate()
	}
	if a.onInvalidate != nil {
		a.onInvalidate()
	}
}

// Spec returns the spec as currently edited in the window.
func (a *App) Spec() symgen.Spec {
	return a.spec
}

// Geometry returns the geometry being drawn.
func (a *App) Geometry() *symgen.Geometry {
	return a.geom
}

func (a *App) handleInput(gtx layout.Context) {
	if a.fitBtn.Clicked(gtx) {
		a.fitToView()
	}
	if a.themeBtn.Clicked(gtx) {
		a.toggleTheme()
	}
	if a.zoomInBtn.Clicked(gtx) {
		a.zoomBy(1.25)
	}
	if a.zoomOutBtn.Clicked(gtx) {
		a.zoomBy(0.8)
	}
	if a.saveBtn.Clicked(gtx) {
		a.generate()
	}
	if a.unitSlider.Update(gtx) {
		a.setUnit(unitFromSlider(a.unitSlider.Value, a.spec.UnitCount))
	}
	if a.showNumbers.Update(gtx) {
		a.spec.ShowPinNumbers = a.showNumbers.Value
		a.invalidate()
	}
	if a.includePins.Update(gtx) {
		a.invalidate()
	}

	for {
		ev, ok := gtx.Event(
			key.Filter{Name: "F"},
			key.Filter{Name: "T", Required: key.ModShortcut},
			key.Filter{Name: "S", Required: key.ModShortcut},
			key.Filter{Name: "Q"},
			key.Filter{Name: key.NameEscape},
		)
		if !ok {
			break
		}
		ke, ok := ev.(key.Event)
		if !ok || ke.State != key.Press {
			continue
		}
		switch ke.Name {
		case "F":
			a.fitToView()
		case "T":
			a.toggleTheme()
		case "S":
			a.generate()
		case "Q", key.NameEscape:
			os.Exit(0)
		}
	}
}

func (a *App) handleCanvasPointer(gtx layout.Context) {
	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target: a,
			Kinds:  pointer.Press | pointer.Drag | pointer.Release | pointer.Scroll,
			ScrollY: pointer.ScrollRange{
				Min: math.MinInt32,
				Max: math.MaxInt32,
			},
		})
		if !ok {
			break
		}
		pe, ok := ev.(pointer.Event)
		if !ok {
			continue
		}
		switch pe.Kind {
		case pointer.Press:
			if pe.Buttons == pointer.ButtonPrimary {
				a.isDragging = true
				a.lastPointerPos = pe.Position
			}
		case pointer.Drag:
			if a.isDragging && pe.Buttons == pointer.ButtonPrimary {
				a.camera.Pan(float64(pe.Position.X-a.lastPointerPos.X), float64(pe.Position.Y-a.lastPointerPos.Y))
				a.lastPointerPos = pe.Position
				a.invalidate()
			}
		case pointer.Release:
			a.isDragging = false
		case pointer.Scroll:
			factor := 1.0 - float64(pe.Scroll.Y)*0.1
			a.camera.ZoomAt(float64(pe.Position.X), float64(pe.Position.Y), factor)
			a.invalidate()
		}
	}
}

// setUnit redraws the body for another unit index.
func (a *App) setUnit(u int) {
	if u == a.spec.Unit {
		return
	}
	a.spec.Unit = u
	geom, err := symgen.Compute(a.spec)
	if err != nil {
		a.status = err.Error()
		a.logger.Error("recompute failed", "unit", u, "err", err)
		return
	}
	a.geom = geom
	a.logger.Debug("unit changed", "unit", u)
	a.invalidate()
}

func (a *App) toggleTheme() {
	a.colorTheme = a.colorTheme.Next()
	a.colors = renderer.GetColors(a.colorTheme)
	a.logger.Debug("theme switched", "theme", a.colorTheme)
	a.invalidate()
}

func (a *App) fitToView() {
	a.camera.Fit(a.geom)
	a.invalidate()
}

func (a *App) zoomBy(factor float64) {
	a.camera.ZoomAt(float64(a.camera.ScreenWidth)/2, float64(a.camera.ScreenHeight)/2, factor)
	a.invalidate()
}

func (a *App) generate() {
	if a.save == nil {
		return
	}
	path, err := a.save(a.spec, a.includePins.Value)
	if err != nil {
		a.status = "Error: " + err.Error()
		a.logger.Error("save failed", "symbol", a.spec.Name, "err", err)
	} else {
		a.status = fmt.Sprintf("Wrote %s to %s", a.spec.Name, path)
		a.logger.Info("symbol written", "symbol", a.spec.Name, "path", path)
	}
	a.invalidate()
}

// unitFromSlider maps a 0..1 slider position to a unit index 0..count.
func unitFromSlider(v float32, count int) int {
	u := int(math.Round(float64(v) * float64(count)))
	return min(max(u, 0), count)
}

func sliderFromUnit(u, count int) float32 {
	if count <= 0 {
		return 0
	}
	return float32(u) / float32(count)
}
