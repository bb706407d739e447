// Package termview draws field frames on a terminal.
package termview

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/PedroHSSoares-Dev/portfolio/field"
)

// CellAspect is how many scene pixels tall one terminal cell is, for a
// scene one pixel wide per column.
const CellAspect = 2

const (
	pointRune = '●'
	lineRune  = '·'
)

// SceneSize is the scene size matching a cols×rows terminal.
func SceneSize(cols, rows int) (float64, float64) {
	return float64(cols), float64(rows * CellAspect)
}

// CellToScene maps a terminal cell to the scene pixel at its centre.
func CellToScene(x, y int) (float64, float64) {
	return float64(x) + 0.5, (float64(y) + 0.5) * CellAspect
}

// Color converts a colorful colour to a true-colour terminal colour.
func Color(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// Draw clears the screen to the style background and plots fr: links
// first, points on top, far points faded.
func Draw(screen tcell.Screen, fr field.Frame, st field.Style) {
	bg := tcell.StyleDefault.Background(Color(st.Background))
	screen.SetStyle(bg)
	screen.Clear()
	if fr.Empty() {
		return
	}
	cols, rows := screen.Size()

	lineStyle := bg.Foreground(Color(st.LineColor()))
	for _, l := range fr.Links {
		a, b := fr.Points[l.A], fr.Points[l.B]
		if a.Behind || b.Behind || (!a.Visible && !b.Visible) {
			continue
		}
		x0, y0 := cell(a)
		x1, y1 := cell(b)
		plotLine(x0, y0, x1, y1, func(x, y int) {
			if x >= 0 && x < cols && y >= 0 && y < rows {
				screen.SetContent(x, y, lineRune, nil, lineStyle)
			}
		})
	}

	near, far := depthRange(fr.Points)
	for _, p := range fr.Points {
		if !p.Visible {
			continue
		}
		x, y := cell(p)
		if x < 0 || x >= cols || y < 0 || y >= rows {
			continue
		}
		c := st.Shade(p.Color, float64(p.Depth), near, far)
		screen.SetContent(x, y, pointRune, nil, bg.Foreground(Color(c)))
	}
}

func cell(p field.Point) (int, int) {
	return int(math.Floor(float64(p.X))), int(math.Floor(float64(p.Y) / CellAspect))
}

func depthRange(points []field.Point) (near, far float64) {
	near, far = math.Inf(1), math.Inf(-1)
	for _, p := range points {
		if !p.Visible {
			continue
		}
		near = min(near, float64(p.Depth))
		far = max(far, float64(p.Depth))
	}
	return near, far
}

// plotLine walks the cells between two points with Bresenham's algorithm.
func plotLine(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
