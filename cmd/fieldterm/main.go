// Command fieldterm runs the particle field in a terminal. Move the mouse to
// push particles away; q or Esc quits, t toggles the theme.
package main

import (
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/PedroHSSoares-Dev/portfolio/field"
	"github.com/PedroHSSoares-Dev/portfolio/prefs"
	"github.com/PedroHSSoares-Dev/portfolio/stream"
	"github.com/PedroHSSoares-Dev/portfolio/termview"
)

type app struct {
	screen tcell.Screen
	scene  *field.Scene
	theme  prefs.Theme
}

func newApp(params field.Params, theme prefs.Theme, seed string) (*app, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse()
	screen.HideCursor()

	var rng *rand.Rand
	if seed != "" {
		rng = rand.New(rand.NewPCG(stream.Seed(seed)))
	} else {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	w, h := termview.SceneSize(screen.Size())
	return &app{
		screen: screen,
		scene:  field.NewScene(field.New(params, rng), field.DefaultCamera, w, h),
		theme:  theme,
	}, nil
}

// handle applies one terminal event and reports whether to keep running.
func (a *app) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC, ev.Rune() == 'q':
			return false
		case ev.Rune() == 't':
			a.theme = a.theme.Toggle()
		}
	case *tcell.EventMouse:
		x, y := ev.Position()
		a.scene.PointerMoved(termview.CellToScene(x, y))
	case *tcell.EventFocus:
		if !ev.Focused {
			a.scene.PointerLeft()
		}
	case *tcell.EventResize:
		a.scene.Resize(termview.SceneSize(ev.Size()))
		a.screen.Sync()
	}
	return true
}

func (a *app) run() {
	ticker := time.NewTicker(16 * time.Millisecond)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	last := time.Now()
	for {
		select {
		case ev := <-events:
			if !a.handle(ev) {
				return
			}
		case now := <-ticker.C:
			termview.Draw(a.screen, a.scene.Advance(now.Sub(last)), field.StyleFor(a.theme))
			last = now
			a.screen.Show()
		}
	}
}

func main() {
	configPath := flag.String("config", "", "YAML file with field params")
	light := flag.Bool("light", false, "start with the light theme")
	seed := flag.String("seed", "", "visitor id to seed the field with")
	flag.Parse()

	params, err := field.LoadParams(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fieldterm: %v\n", err)
		os.Exit(1)
	}
	theme := prefs.Dark
	if *light {
		theme = prefs.Light
	}

	a, err := newApp(params, theme, *seed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fieldterm: failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer a.screen.Fini()
	a.run()
}
