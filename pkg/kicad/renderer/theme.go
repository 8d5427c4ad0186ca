package renderer

import "image/color"

// Theme represents a color scheme for symbol previews
type Theme int

const (
	// ThemeLight is KiCad's default eeschema look
	ThemeLight Theme = iota
	// ThemeDark is a yellow-on-charcoal scheme
	ThemeDark
)

// Colors defines the color scheme for rendering a symbol
type Colors struct {
	Background color.NRGBA
	Grid       color.NRGBA
	Body       color.NRGBA
	Pin        color.NRGBA
	PinNumber  color.NRGBA
	Text       color.NRGBA
}

// GetColors returns the color scheme for the given theme
func GetColors(theme Theme) *Colors {
	switch theme {
	case ThemeDark:
		return &Colors{
			Background: color.NRGBA{R: 30, G: 30, B: 30, A: 255},
			Grid:       color.NRGBA{R: 60, G: 60, B: 60, A: 255},
			Body:       color.NRGBA{R: 255, G: 255, B: 102, A: 255},
			Pin:        color.NRGBA{R: 255, G: 255, B: 102, A: 255},
			PinNumber:  color.NRGBA{R: 200, G: 200, B: 120, A: 255},
			Text:       color.NRGBA{R: 255, G: 255, B: 102, A: 255},
		}
	default:
		return &Colors{
			Background: color.NRGBA{R: 245, G: 244, B: 239, A: 255},
			Grid:       color.NRGBA{R: 220, G: 220, B: 220, A: 255},
			Body:       color.NRGBA{R: 132, G: 0, B: 0, A: 255},
			Pin:        color.NRGBA{R: 132, G: 0, B: 0, A: 255},
			PinNumber:  color.NRGBA{R: 169, G: 0, B: 0, A: 255},
			Text:       color.NRGBA{R: 0, G: 100, B: 100, A: 255},
		}
	}
}

// Next cycles to the other theme
func (t Theme) Next() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

func (t Theme) String() string {
	switch t {
	case ThemeDark:
		return "Dark"
	default:
		return "Light"
	}
}
