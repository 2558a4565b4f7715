package backdrop3d

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Camera is a perspective camera. Rotation holds Euler angles in XYZ order
// and may be mutated directly every frame.
type Camera struct {
	Position mgl64.Vec3
	Rotation mgl64.Vec3
	Fov      float64 // vertical, degrees
	Aspect   float64
	Near     float64
	Far      float64
}

func NewCamera(fov, aspect, near, far float64) *Camera {
	return &Camera{
		Fov:    fov,
		Aspect: aspect,
		Near:   near,
		Far:    far,
	}
}

func (c *Camera) SetCameraPosition(x, y, z float64) {
	c.Position = mgl64.Vec3{x, y, z}
}

func (c *Camera) GetPosition() mgl64.Vec3 {
	return c.Position
}

func (c *Camera) AddAngle(x, y, z float64) {
	c.Rotation = c.Rotation.Add(mgl64.Vec3{x, y, z})
}

// GetCameraMatrix maps world space to camera space, where x is right, y is
// up and z is the depth in front of the camera.
func (c *Camera) GetCameraMatrix() mgl64.Mat4 {
	flip := mgl64.Scale3D(1, 1, -1)
	inverseRot := EulerMatrix(c.Rotation).Transpose()
	toOrigin := TransMatrix(-c.Position.X(), -c.Position.Y(), -c.Position.Z())
	return flip.Mul4(inverseRot).Mul4(toOrigin)
}

// Projection returns the screen mapping for an output surface of the given
// size. A camera aspect that differs from width/height stretches the image
// horizontally, as a stale projection would.
func (c *Camera) Projection(width, height int) Projection {
	tanHalf := math.Tan(mgl64.DegToRad(c.Fov) / 2)
	aspect := c.Aspect
	if aspect <= 0 {
		aspect = float64(width) / math.Max(float64(height), 1)
	}
	return Projection{
		Width:  float64(width),
		Height: float64(height),
		FocalX: float64(width) / 2 / (tanHalf * aspect),
		FocalY: float64(height) / 2 / tanHalf,
	}
}

// Projection converts camera-space points to pixels.
type Projection struct {
	Width, Height  float64
	FocalX, FocalY float64
}

func (p Projection) ConvertToScreenX(x, z float64) float32 {
	return float32(p.Width/2 + p.FocalX*x/z)
}

func (p Projection) ConvertToScreenY(y, z float64) float32 {
	return float32(p.Height/2 - p.FocalY*y/z)
}

// ConvertFromScreen inverts the projection for a known depth.
func (p Projection) ConvertFromScreen(screenX, screenY, z float64) (float64, float64) {
	x := (screenX - p.Width/2) * z / p.FocalX
	y := (p.Height/2 - screenY) * z / p.FocalY
	return x, y
}
