package scene

import (
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/smasonuk/backdrop3d"
)

// ErrNoSurface is returned by a Renderer that has nothing to draw into.
var ErrNoSurface = errors.New("scene: render surface unavailable")

// Renderer draws the world from its active camera.
type Renderer interface {
	Render(world *backdrop3d.World) error
}

const (
	pointerScale = 0.001
	cameraEasing = 0.05

	crystalBobRate      = 0.02
	platformSwing       = 2.0
	failureLogInterval  = 600
	timeScale           = 0.001 // per millisecond
	torusSpinX          = 0.01
	torusSpinY          = 0.005
	torusSpinZ          = 0.01
	crystalSpinX        = 0.01
	crystalSpinY        = 0.015
	platformSpinY       = 0.005
	lightPhaseIncrement = 2 * math.Pi / 3
)

// Context owns a built scene and its viewport for the life of the
// animation. Event handlers and the frame step both mutate it from the
// host's single update goroutine.
type Context struct {
	Scene    *Scene
	Viewport *Viewport

	frames   uint64
	failures int
	disposed bool
}

func NewContext(s *Scene, v *Viewport) (*Context, error) {
	if s == nil || v == nil {
		return nil, fmt.Errorf("%w: context needs a scene and a viewport", ErrInvalidOptions)
	}
	return &Context{Scene: s, Viewport: v}, nil
}

// PlatformY is the platform height at the given time since start.
func PlatformY(elapsed time.Duration) float64 {
	return platformBaseY + math.Sin(millis(elapsed)*timeScale)*platformSwing
}

// LightPosition is where point light i sits at the given time since start.
func LightPosition(i int, elapsed time.Duration) mgl64.Vec3 {
	angle := millis(elapsed)*timeScale + float64(i)*lightPhaseIncrement
	return mgl64.Vec3{
		math.Cos(angle) * lightOrbitRadius,
		lightHeight,
		math.Sin(angle) * lightOrbitRadius,
	}
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// Step advances every animated object by one frame. elapsed is the time
// since the animation started.
func (c *Context) Step(elapsed time.Duration) {
	if c.disposed {
		return
	}
	s := c.Scene
	ms := millis(elapsed)

	px, py := c.Viewport.Pointer()
	targetX := px * pointerScale
	targetY := py * pointerScale
	cam := s.Camera
	cam.Rotation[1] += cameraEasing * (targetX - cam.Rotation[1])
	cam.Rotation[0] += cameraEasing * (targetY - cam.Rotation[0])

	s.Torus.Model.Rotation = s.Torus.Model.Rotation.Add(mgl64.Vec3{torusSpinX, torusSpinY, torusSpinZ})

	// The bob is a nudge, not an absolute height, so it drifts with the
	// frame rate.
	for _, crystal := range s.Crystals {
		m := crystal.Model
		m.Rotation[0] += crystalSpinX
		m.Rotation[1] += crystalSpinY
		m.Position[1] += math.Sin(ms*timeScale+float64(crystal.Index)) * crystalBobRate
	}

	s.Platform.Model.Rotation[1] += platformSpinY
	s.Platform.Model.Position[1] = PlatformY(elapsed)

	for i, light := range s.PointLights {
		light.Position = LightPosition(i, elapsed)
	}

	c.frames++
}

// Render issues one draw of the current state. A failed draw is logged
// and skipped; it reports whether a frame was produced.
func (c *Context) Render(r Renderer) bool {
	if c.disposed {
		return false
	}
	if r == nil {
		return c.renderFailed(ErrNoSurface)
	}
	if err := r.Render(c.Scene.World); err != nil {
		return c.renderFailed(err)
	}
	if c.failures > 0 {
		log.Printf("Rendering resumed after %d skipped frames", c.failures)
		c.failures = 0
	}
	return true
}

func (c *Context) renderFailed(err error) bool {
	if c.failures%failureLogInterval == 0 {
		log.Printf("Frame %d not rendered: %v", c.frames, err)
	}
	c.failures++
	return false
}

// Frame is Step followed by Render.
func (c *Context) Frame(elapsed time.Duration, r Renderer) bool {
	c.Step(elapsed)
	return c.Render(r)
}

func (c *Context) FrameCount() uint64 {
	return c.frames
}

// SkippedFrames is the number of consecutive frames that failed to render.
func (c *Context) SkippedFrames() int {
	return c.failures
}

// Dispose drops every object from the world. Later steps and renders do
// nothing.
func (c *Context) Dispose() {
	if c.disposed {
		return
	}
	c.disposed = true
	w := c.Scene.World
	for _, m := range append([]*backdrop3d.Model(nil), w.Objects()...) {
		w.RemoveObject(m)
	}
	log.Printf("Animation stopped after %d frames", c.frames)
}

func (c *Context) Disposed() bool {
	return c.disposed
}
