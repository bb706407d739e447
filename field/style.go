package field

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/PedroHSSoares-Dev/portfolio/prefs"
)

// Style is the theme-dependent look of the field.
type Style struct {
	Background colorful.Color
	Line       colorful.Color
	LineAlpha  float64
	// PointSize is the point diameter in model units.
	PointSize float64
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

var (
	darkStyle = Style{
		Background: mustHex("#09090b"),
		Line:       mustHex("#4b5563"),
		LineAlpha:  0.2,
		PointSize:  0.08,
	}
	lightStyle = Style{
		Background: mustHex("#f8fafc"),
		Line:       mustHex("#cbd5e1"),
		LineAlpha:  0.3,
		PointSize:  0.08,
	}
)

// StyleFor returns the style of the given theme.
func StyleFor(t prefs.Theme) Style {
	if t.IsDark() {
		return darkStyle
	}
	return lightStyle
}

// LineColor is the line colour blended over the background at LineAlpha,
// for renderers without alpha blending.
func (s Style) LineColor() colorful.Color {
	return s.Background.BlendRgb(s.Line, s.LineAlpha)
}

// Shade fades c towards the background with depth, so far points recede.
// near and far bound the camera distance range that is shaded.
func (s Style) Shade(c colorful.Color, depth, near, far float64) colorful.Color {
	if far <= near {
		return c
	}
	t := (depth - near) / (far - near)
	t = min(max(t, 0), 1) * 0.6
	if t == 0 {
		return c
	}
	return c.BlendLab(s.Background, t).Clamped()
}
