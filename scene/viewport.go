package scene

import (
	"log"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/smasonuk/backdrop3d"
)

// OutputSizer is the output surface that follows the viewport size.
type OutputSizer interface {
	SetSize(width, height int)
}

// Viewport tracks the window size and the pointer offset from its centre.
type Viewport struct {
	camera *backdrop3d.Camera
	output OutputSizer

	width, height      int
	pointerX, pointerY float64
}

// NewViewport binds a viewport of the given size to a camera. output may
// be nil until a surface exists.
func NewViewport(camera *backdrop3d.Camera, output OutputSizer, width, height int) *Viewport {
	v := &Viewport{camera: camera, output: output}
	v.Resize(width, height)
	return v
}

// SetOutput replaces the surface notified on resize.
func (v *Viewport) SetOutput(output OutputSizer) {
	v.output = output
	if output != nil && v.width > 0 && v.height > 0 {
		output.SetSize(v.width, v.height)
	}
}

// PointerMove records the signed pixel offset of (x, y) from the viewport
// centre. The offset is not clamped.
func (v *Viewport) PointerMove(x, y float64) {
	v.pointerX = x - float64(v.width)/2
	v.pointerY = y - float64(v.height)/2
}

// Pointer returns the last recorded offset.
func (v *Viewport) Pointer() (float64, float64) {
	return v.pointerX, v.pointerY
}

// Resize sets the camera aspect to width/height and notifies the output.
// Calling it again with the same size leaves the same state. Empty sizes
// are ignored.
func (v *Viewport) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	v.width, v.height = width, height
	v.camera.Aspect = float64(width) / float64(height)
	if v.output != nil {
		v.output.SetSize(width, height)
	}
}

// OrientationChange discards any pointer driven rotation, puts the camera
// back at its start position and reapplies the current size.
func (v *Viewport) OrientationChange(width, height int) {
	v.camera.Position = cameraHome
	v.camera.Rotation = mgl64.Vec3{}
	v.Resize(width, height)
}

// Fit applies a new host size. Flipping between portrait and landscape
// counts as an orientation change.
func (v *Viewport) Fit(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	if (v.height > v.width) != (height > width) {
		log.Printf("Orientation changed to %dx%d", width, height)
		v.OrientationChange(width, height)
		return
	}
	v.Resize(width, height)
}

func (v *Viewport) Size() (int, int) {
	return v.width, v.height
}
