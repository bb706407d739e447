// Command fieldview runs the particle field in a desktop window, drawn the
// same way the browser draws the stream.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image/color"
	"math"
	"math/rand/v2"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/PedroHSSoares-Dev/portfolio/field"
	"github.com/PedroHSSoares-Dev/portfolio/prefs"
)

const (
	windowWidth  = 1024
	windowHeight = 640
	lineWidth    = 1
)

type game struct {
	scene  *field.Scene
	camera field.Camera
	theme  prefs.Theme
	frame  field.Frame
	last   time.Time

	// latest Layout size, applied in Update
	width, height int
}

func newGame(params field.Params, theme prefs.Theme) *game {
	rng := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	cam := field.DefaultCamera
	return &game{
		scene:  field.NewScene(field.New(params, rng), cam, windowWidth, windowHeight),
		camera: cam,
		theme:  theme,
		width:  windowWidth,
		height: windowHeight,
	}
}

func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		g.theme = g.theme.Toggle()
	}

	if w, h := g.scene.Size(); w != float64(g.width) || h != float64(g.height) {
		g.scene.Resize(float64(g.width), float64(g.height))
	}

	x, y := ebiten.CursorPosition()
	if ebiten.IsFocused() && x >= 0 && y >= 0 && x < g.width && y < g.height {
		g.scene.PointerMoved(float64(x), float64(y))
	} else {
		g.scene.PointerLeft()
	}

	now := time.Now()
	dt := time.Second / time.Duration(ebiten.TPS())
	if !g.last.IsZero() {
		dt = now.Sub(g.last)
	}
	g.last = now
	g.frame = g.scene.Advance(dt)
	return nil
}

// pointRadius is the on-screen radius of a point of the given diameter in
// model units seen at depth.
func (g *game) pointRadius(size, depth float64) float32 {
	halfTan := math.Tan(g.camera.FOV * math.Pi / 360)
	return float32(size / 2 * float64(g.height) / (2 * depth * halfTan))
}

func (g *game) Draw(screen *ebiten.Image) {
	st := field.StyleFor(g.theme)
	screen.Fill(st.Background)
	if g.frame.Empty() {
		return
	}

	r, gr, b := st.Line.Clamped().RGB255()
	lineColor := color.NRGBA{R: r, G: gr, B: b, A: uint8(st.LineAlpha * 255)}
	for _, l := range g.frame.Links {
		p, q := g.frame.Points[l.A], g.frame.Points[l.B]
		if p.Behind || q.Behind {
			continue
		}
		vector.StrokeLine(screen, p.X, p.Y, q.X, q.Y, lineWidth, lineColor, true)
	}
	for _, p := range g.frame.Points {
		if !p.Visible {
			continue
		}
		vector.DrawFilledCircle(screen, p.X, p.Y, g.pointRadius(st.PointSize, float64(p.Depth)), p.Color.Clamped(), true)
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.width, g.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

func main() {
	configPath := flag.String("config", "", "YAML file with field params")
	light := flag.Bool("light", false, "start with the light theme")
	flag.Parse()

	params, err := field.LoadParams(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fieldview: %v\n", err)
		os.Exit(1)
	}
	theme := prefs.Dark
	if *light {
		theme = prefs.Light
	}

	ebiten.SetWindowSize(windowWidth, windowHeight)
	ebiten.SetWindowTitle("Particle field - T: theme, Esc/Q: quit")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(newGame(params, theme)); err != nil && !errors.Is(err, ebiten.Termination) {
		fmt.Fprintf(os.Stderr, "fieldview: %v\n", err)
		os.Exit(1)
	}
}
