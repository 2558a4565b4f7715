package render

import (
	"fmt"
	"image/color"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/smasonuk/backdrop3d"
	"github.com/smasonuk/backdrop3d/scene"
)

// Surface paints a world into the current ebiten screen. It is the
// output the viewport resizes.
type Surface struct {
	screen  *ebiten.Image
	batcher *Batcher

	width, height int
}

func NewSurface() *Surface {
	return &Surface{}
}

// Attach sets the image the next Render draws into. nil detaches.
func (s *Surface) Attach(screen *ebiten.Image) {
	s.screen = screen
	if screen == nil {
		return
	}
	if s.batcher == nil {
		s.batcher = NewBatcher(screen)
	} else {
		s.batcher.SetTarget(screen)
	}
}

func (s *Surface) SetSize(width, height int) {
	s.width, s.height = width, height
}

func (s *Surface) Size() (int, int) {
	return s.width, s.height
}

func (s *Surface) Render(world *backdrop3d.World) error {
	if s.screen == nil {
		return scene.ErrNoSurface
	}
	if s.width <= 0 || s.height <= 0 {
		return fmt.Errorf("%w: surface size %dx%d", scene.ErrNoSurface, s.width, s.height)
	}
	world.PaintObjects(s.batcher, s.width, s.height)
	s.batcher.Flush()
	return nil
}

// Game drives a scene context from ebiten's update and draw callbacks.
type Game struct {
	ctx     *scene.Context
	surface *Surface
	showFPS bool

	start    time.Time
	now      func() time.Time
	touchIDs []ebiten.TouchID

	cursorX, cursorY int
	width, height    int
}

func NewGame(ctx *scene.Context, showFPS bool) *Game {
	g := &Game{
		ctx:     ctx,
		surface: NewSurface(),
		showFPS: showFPS,
		now:     time.Now,
	}
	g.start = g.now()
	g.width, g.height = ctx.Viewport.Size()
	ctx.Viewport.SetOutput(g.surface)
	return g
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	g.touchIDs = ebiten.AppendTouchIDs(g.touchIDs[:0])
	if len(g.touchIDs) > 0 {
		x, y := ebiten.TouchPosition(g.touchIDs[0])
		g.ctx.Viewport.PointerMove(float64(x), float64(y))
	} else if x, y := ebiten.CursorPosition(); x != g.cursorX || y != g.cursorY {
		g.cursorX, g.cursorY = x, y
		g.ctx.Viewport.PointerMove(float64(x), float64(y))
	}

	g.ctx.Step(g.now().Sub(g.start))
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)
	g.surface.Attach(screen)
	g.ctx.Render(g.surface)
	g.surface.Attach(nil)

	if g.showFPS {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %0.2f  frames: %d", ebiten.ActualFPS(), g.ctx.FrameCount()))
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.resize(outsideWidth, outsideHeight)
	return g.width, g.height
}

func (g *Game) resize(width, height int) {
	if width == g.width && height == g.height {
		return
	}
	g.ctx.Viewport.Fit(width, height)
	g.width, g.height = g.ctx.Viewport.Size()
}

// Options configure the window.
type Options struct {
	Title   string
	Width   int
	Height  int
	ShowFPS bool
}

// Run opens a window and animates ctx until it is closed or Escape is
// pressed.
func Run(ctx *scene.Context, opts Options) error {
	g := NewGame(ctx, opts.ShowFPS)
	ebiten.SetWindowTitle(opts.Title)
	ebiten.SetWindowSize(opts.Width, opts.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(ebiten.SyncWithFPS)

	log.Println("Initialization Complete.")
	err := ebiten.RunGame(g)
	ctx.Dispose()
	return err
}
