package termview

import (
	"fmt"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/smasonuk/backdrop3d"
	"github.com/smasonuk/backdrop3d/scene"
)

// View renders a world onto a tcell screen through a Canvas. Viewport
// sizes are in canvas pixels: the cell columns by twice the cell rows.
type View struct {
	screen tcell.Screen
	canvas *Canvas
}

func NewView(screen tcell.Screen) *View {
	v := &View{screen: screen, canvas: NewCanvas(0, 0)}
	if screen != nil {
		v.canvas.SetSize(PixelSize(screen))
	}
	return v
}

// PixelSize is the canvas size that fills screen.
func PixelSize(screen tcell.Screen) (int, int) {
	cols, rows := screen.Size()
	return cols, rows * 2
}

func (v *View) SetSize(width, height int) {
	if w, h := v.canvas.Size(); w == width && h == height {
		return
	}
	v.canvas.SetSize(width, height)
}

func (v *View) Canvas() *Canvas {
	return v.canvas
}

func (v *View) Render(world *backdrop3d.World) error {
	if v.screen == nil {
		return scene.ErrNoSurface
	}
	w, h := v.canvas.Size()
	if w <= 0 || h <= 0 {
		return fmt.Errorf("%w: terminal is %dx%d pixels", scene.ErrNoSurface, w, h)
	}
	v.canvas.Clear()
	world.PaintObjects(v.canvas, w, h)
	v.canvas.Present(v.screen)
	v.screen.Show()
	return nil
}

// Host feeds terminal events into a scene context and renders it on a
// fixed tick.
type Host struct {
	ctx    *scene.Context
	screen tcell.Screen
	view   *View
}

func NewHost(ctx *scene.Context, screen tcell.Screen) *Host {
	h := &Host{ctx: ctx, screen: screen, view: NewView(screen)}
	ctx.Viewport.SetOutput(h.view)
	ctx.Viewport.Fit(PixelSize(screen))
	return h
}

// HandleEvent applies one terminal event. It returns false when the user
// asked to quit.
func (h *Host) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
			(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
			return false
		}
	case *tcell.EventMouse:
		x, y := ev.Position()
		h.ctx.Viewport.PointerMove(float64(x), float64(y*2))
	case *tcell.EventResize:
		h.screen.Sync()
		h.ctx.Viewport.Fit(PixelSize(h.screen))
	case nil:
		return false
	}
	return true
}

// Run animates until a quit key. The screen must already be initialised;
// Run does not call Fini.
func (h *Host) Run(tick time.Duration) {
	h.screen.EnableMouse(tcell.MouseMotionEvents)
	h.screen.HideCursor()

	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	quit := make(chan struct{})
	defer close(quit)
	go pollEvents(h.screen, eventChan, quit)

	start := time.Now()
	for {
		select {
		case ev := <-eventChan:
			if !h.HandleEvent(ev) {
				log.Printf("Terminal view stopped after %d frames", h.ctx.FrameCount())
				return
			}
		case <-ticker.C:
			h.ctx.Frame(time.Since(start), h.view)
		}
	}
}

// pollEvents forwards screen events until the screen is finalised or quit
// is closed.
func pollEvents(screen tcell.Screen, events chan<- tcell.Event, quit <-chan struct{}) {
	for {
		ev := screen.PollEvent()
		select {
		case events <- ev:
		case <-quit:
			return
		}
		if ev == nil {
			return
		}
	}
}

// Run opens the terminal, animates ctx until a quit key and restores the
// terminal.
func Run(ctx *scene.Context, fps int) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("opening terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initialising terminal: %w", err)
	}
	defer screen.Fini()

	if fps <= 0 {
		fps = 30
	}
	NewHost(ctx, screen).Run(time.Second / time.Duration(fps))
	ctx.Dispose()
	return nil
}
