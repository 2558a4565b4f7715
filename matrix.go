package backdrop3d

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	ROTX = 0
	ROTY = 1
	ROTZ = 2
)

func NewRotationMatrix(aRotation int, theta float64) mgl64.Mat4 {
	switch aRotation {
	case ROTX:
		return mgl64.HomogRotate3DX(theta)
	case ROTY:
		return mgl64.HomogRotate3DY(theta)
	case ROTZ:
		return mgl64.HomogRotate3DZ(theta)
	}
	return mgl64.Ident4()
}

// EulerMatrix builds the rotation for Euler angles applied in XYZ order,
// the same order the camera and every model use.
func EulerMatrix(angles mgl64.Vec3) mgl64.Mat4 {
	x := NewRotationMatrix(ROTX, angles.X())
	y := NewRotationMatrix(ROTY, angles.Y())
	z := NewRotationMatrix(ROTZ, angles.Z())
	return x.Mul4(y).Mul4(z)
}

func TransMatrix(x, y, z float64) mgl64.Mat4 {
	return mgl64.Translate3D(x, y, z)
}

// ModelMatrix places an object: scale, then rotate, then translate.
func ModelMatrix(position, rotation mgl64.Vec3, scale float64) mgl64.Mat4 {
	t := TransMatrix(position.X(), position.Y(), position.Z())
	s := mgl64.Scale3D(scale, scale, scale)
	return t.Mul4(EulerMatrix(rotation)).Mul4(s)
}

// TransformPoint applies rotation and translation.
func TransformPoint(m mgl64.Mat4, p mgl64.Vec3) mgl64.Vec3 {
	return m.Mul4x1(p.Vec4(1)).Vec3()
}

// TransformNormal applies only the 3x3 part of m and renormalises, so it is
// only valid for rigid transforms with uniform scale.
func TransformNormal(m mgl64.Mat4, n mgl64.Vec3) mgl64.Vec3 {
	out := m.Mat3().Mul3x1(n)
	if l := out.Len(); l > 0 {
		return out.Mul(1 / l)
	}
	return out
}

// NormalizeAngle folds an accumulated rotation back into [0, 2π).
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}
