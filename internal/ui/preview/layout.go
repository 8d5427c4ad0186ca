package preview

import (
	"fmt"

	"gioui.org/io/event"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"github.com/OpenTraceLab/kisym/pkg/kicad/renderer"
)

func (a *App) layout(gtx layout.Context) layout.Dimensions {
	paint.Fill(gtx.Ops, a.colors.Background)

	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(a.layoutToolbar),
		layout.Flexed(1, a.layoutCanvas),
		layout.Rigid(a.layoutStatus),
	)
}

func (a *App) layoutToolbar(gtx layout.Context) layout.Dimensions {
	inset := layout.UniformInset(unit.Dp(8))
	return inset.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		children := []layout.FlexChild{
			layout.Rigid(a.iconButton(&a.fitBtn, a.icons.fit, "Fit (F)")),
			layout.Rigid(layout.Spacer{Width: unit.Dp(4)}.Layout),
			layout.Rigid(a.iconButton(&a.zoomInBtn, a.icons.zoomIn, "Zoom in")),
			layout.Rigid(layout.Spacer{Width: unit.Dp(4)}.Layout),
			layout.Rigid(a.iconButton(&a.zoomOutBtn, a.icons.zoomOut, "Zoom out")),
			layout.Rigid(layout.Spacer{Width: unit.Dp(4)}.Layout),
			layout.Rigid(a.iconButton(&a.themeBtn, a.icons.theme, "Theme: "+a.colorTheme.String())),
			layout.Rigid(layout.Spacer{Width: unit.Dp(12)}.Layout),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				label := fmt.Sprintf("Unit Number: %d", a.spec.Unit)
				return layout.Center.Layout(gtx, material.Body1(a.theme, label).Layout)
			}),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				gtx.Constraints.Max.X = gtx.Dp(unit.Dp(160))
				gtx.Constraints.Min.X = gtx.Constraints.Max.X
				return material.Slider(a.theme, &a.unitSlider).Layout(gtx)
			}),
			layout.Rigid(layout.Spacer{Width: unit.Dp(12)}.Layout),
			layout.Rigid(material.CheckBox(a.theme, &a.showNumbers, "Pin numbers").Layout),
			layout.Rigid(material.CheckBox(a.theme, &a.includePins, "Include pins").Layout),
		}
		if a.save != nil {
			children = append(children,
				layout.Rigid(layout.Spacer{Width: unit.Dp(12)}.Layout),
				layout.Rigid(a.iconButton(&a.saveBtn, a.icons.save, "Generate (Ctrl+S)")),
			)
		}
		return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx, children...)
	})
}

// iconButton falls back to a text button when the icon failed to load.
func (a *App) iconButton(btn *widget.Clickable, icon *widget.Icon, desc string) layout.Widget {
	return func(gtx layout.Context) layout.Dimensions {
		if icon == nil {
			return material.Button(a.theme, btn, desc).Layout(gtx)
		}
		b := material.IconButton(a.theme, btn, icon, desc)
		b.Size = unit.Dp(20)
		b.Inset = layout.UniformInset(unit.Dp(6))
		return b.Layout(gtx)
	}
}

func (a *App) layoutCanvas(gtx layout.Context) layout.Dimensions {
	size := gtx.Constraints.Max
	a.camera.UpdateScreenSize(size.X, size.Y)
	if !a.fitted && size.X > 0 && size.Y > 0 {
		a.camera.Fit(a.geom)
		a.fitted = true
	}

	defer clip.Rect{Max: size}.Push(gtx.Ops).Pop()
	event.Op(gtx.Ops, a)
	a.handleCanvasPointer(gtx)

	renderer.RenderSymbolWithOptions(gtx, a.camera, a.spec, a.geom, a.colors, a.renderOptions())
	return layout.Dimensions{Size: size}
}

func (a *App) layoutStatus(gtx layout.Context) layout.Dimensions {
	info := fmt.Sprintf("%s | %s | %dx%d mils | %d pins | zoom %.2f px/mil",
		a.spec.Name, a.displayUnit, a.geom.Width, a.geom.Height, len(a.geom.Pins), a.camera.Zoom)
	if a.status != "" {
		info = a.status + " | " + info
	}
	return layout.UniformInset(unit.Dp(6)).Layout(gtx, material.Caption(a.theme, info).Layout)
}

// renderOptions draws what Generate would write: no pins when they are excluded.
func (a *App) renderOptions() renderer.RenderOptions {
	opts := renderer.DefaultRenderOptions()
	opts.ShowPins = a.includePins.Value
	return opts
}
