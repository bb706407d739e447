package termview

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PedroHSSoares-Dev/portfolio/field"
	"github.com/PedroHSSoares-Dev/portfolio/prefs"
)

func simScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(40, 12)
	t.Cleanup(screen.Fini)
	return screen
}

func TestSceneSizeAndCells(t *testing.T) {
	w, h := SceneSize(80, 24)
	assert.Equal(t, 80.0, w)
	assert.Equal(t, 48.0, h)

	x, y := CellToScene(3, 4)
	assert.Equal(t, 3.5, x)
	assert.Equal(t, 9.0, y)
}

func TestDrawPlotsPointsOverLinks(t *testing.T) {
	screen := simScreen(t)
	cyan, _ := colorful.Hex("#22d3ee")
	fr := field.Frame{
		Width: 40, Height: 24,
		Points: []field.Point{
			{X: 2.5, Y: 4.5, Depth: 10, Visible: true, Color: cyan},
			{X: 12.5, Y: 4.5, Depth: 10, Visible: true, Color: cyan},
			{X: 30, Y: 30, Depth: 10, Visible: false, Color: cyan},
		},
		Links: []field.Connection{{A: 0, B: 1}},
	}
	st := field.StyleFor(prefs.Dark)
	Draw(screen, fr, st)

	r, _, style, _ := screen.GetContent(2, 2)
	assert.Equal(t, pointRune, r)
	fg, bg, _ := style.Decompose()
	assert.Equal(t, Color(cyan), fg)
	assert.Equal(t, Color(st.Background), bg)

	r, _, _, _ = screen.GetContent(12, 2)
	assert.Equal(t, pointRune, r)

	for x := 3; x < 12; x++ {
		r, _, style, _ := screen.GetContent(x, 2)
		assert.Equal(t, lineRune, r, "cell %d", x)
		fg, _, _ := style.Decompose()
		assert.Equal(t, Color(st.LineColor()), fg)
	}

	r, _, _, _ = screen.GetContent(20, 8)
	assert.Equal(t, ' ', r)
}

func TestDrawSkipsLinksBehindCamera(t *testing.T) {
	screen := simScreen(t)
	cyan, _ := colorful.Hex("#22d3ee")
	fr := field.Frame{
		Width: 40, Height: 24,
		Points: []field.Point{
			{X: 12.5, Y: 4.5, Depth: 10, Visible: true, Color: cyan},
			{Depth: -2, Behind: true, Color: cyan},
		},
		Links: []field.Connection{{A: 0, B: 1}},
	}
	Draw(screen, fr, field.StyleFor(prefs.Dark))

	r, _, _, _ := screen.GetContent(12, 2)
	assert.Equal(t, pointRune, r)
	cols, rows := screen.Size()
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			r, _, _, _ := screen.GetContent(x, y)
			assert.NotEqual(t, lineRune, r, "cell %d,%d", x, y)
		}
	}
}

func TestDrawEmptyFrameClears(t *testing.T) {
	screen := simScreen(t)
	screen.SetContent(1, 1, 'x', nil, tcell.StyleDefault)
	Draw(screen, field.Frame{}, field.StyleFor(prefs.Light))

	r, _, style, _ := screen.GetContent(1, 1)
	assert.Equal(t, ' ', r)
	_, bg, _ := style.Decompose()
	assert.Equal(t, Color(field.StyleFor(prefs.Light).Background), bg)
}

func TestPlotLineEndpoints(t *testing.T) {
	var cells [][2]int
	plotLine(0, 0, 3, 1, func(x, y int) { cells = append(cells, [2]int{x, y}) })
	require.NotEmpty(t, cells)
	assert.Equal(t, [2]int{0, 0}, cells[0])
	assert.Equal(t, [2]int{3, 1}, cells[len(cells)-1])
	assert.Len(t, cells, 4)
}
