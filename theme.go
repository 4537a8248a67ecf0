package tessera

import (
	"github.com/lucasb-eyer/go-colorful"
)

// ColorTheme is the palette a theme provider supplies. Components turn it
// into a full ComponentStyleSet through ApplyColorTheme.
type ColorTheme struct {
	Name                string
	PrimaryForeground   Color
	SecondaryForeground Color
	PrimaryBackground   Color
	SecondaryBackground Color
	Accent              Color
}

// ThemeProvider resolves color themes by name.
type ThemeProvider interface {
	Theme(name string) (ColorTheme, bool)
}

// DefaultColorTheme is a neutral light-on-dark theme used when a component is
// built without styles.
var DefaultColorTheme = ColorTheme{
	Name:                "default",
	PrimaryForeground:   RGB(0xdd, 0xdd, 0xdd),
	SecondaryForeground: RGB(0x99, 0x99, 0x99),
	PrimaryBackground:   RGB(0x1c, 0x1c, 0x1c),
	SecondaryBackground: RGB(0x33, 0x33, 0x33),
	Accent:              RGB(0x5f, 0x87, 0xd7),
}

// DefaultStyleSetForTheme derives a ComponentStyleSet from theme:
// hover tints the background toward the accent, focus and press invert onto
// the accent (press lighter), and disabled fades the secondary foreground
// into the background.
func DefaultStyleSetForTheme(theme ColorTheme) ComponentStyleSet {
	base := StyleSet{Foreground: theme.PrimaryForeground, Background: theme.PrimaryBackground}
	return ComponentStyleSet{
		Default: base,
		MouseOver: StyleSet{
			Foreground: theme.PrimaryForeground,
			Background: blendColors(theme.PrimaryBackground, theme.Accent, 0.35),
		},
		Focused: StyleSet{
			Foreground: theme.PrimaryBackground,
			Background: theme.Accent,
		},
		Active: StyleSet{
			Foreground: theme.PrimaryBackground,
			Background: lightenColor(theme.Accent, 0.15),
			Attrs:      AttrBold,
		},
		Disabled: StyleSet{
			Foreground: blendColors(theme.SecondaryForeground, theme.SecondaryBackground, 0.5),
			Background: theme.SecondaryBackground,
		},
	}
}

func toColorful(c Color) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func fromColorful(c colorful.Color) Color {
	r, g, b := c.Clamped().RGB255()
	return RGB(r, g, b)
}

// blendColors mixes a toward b by t in Lab space. An unset operand yields the
// other one unchanged.
func blendColors(a, b Color, t float64) Color {
	switch {
	case !a.IsSet():
		return b
	case !b.IsSet():
		return a
	}
	return fromColorful(toColorful(a).BlendLab(toColorful(b), t))
}

// lightenColor raises c's HSL lightness by amount, capped at 1.
func lightenColor(c Color, amount float64) Color {
	if !c.IsSet() {
		return c
	}
	h, s, l := toColorful(c).Hsl()
	return fromColorful(colorful.Hsl(h, s, min(l+amount, 1)))
}
