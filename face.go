package backdrop3d

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
)

// Face is a convex polygon referencing its owner's mesh points by index.
type Face struct {
	Indices []int
	Col     color.RGBA
	normal  mgl64.Vec3
}

const (
	FACE_NORMAL  = 0
	FACE_REVERSE = 1
)

func NewFace(indices []int, col color.RGBA) *Face {
	return &Face{
		Indices: indices,
		Col:     col,
	}
}

func (f *Face) SetColor(col color.RGBA) {
	f.Col = col
}

func (f *Face) GetNormal() mgl64.Vec3 {
	return f.normal
}

// Finished computes the face normal from the mesh points. Newell's method
// is used so faces with a repeated vertex still get a usable normal.
func (f *Face) Finished(m *Mesh, reverse int) {
	var n mgl64.Vec3
	count := len(f.Indices)
	for i := 0; i < count; i++ {
		cur := m.Points[f.Indices[i]]
		next := m.Points[f.Indices[(i+1)%count]]
		n[0] += (cur.Y() - next.Y()) * (cur.Z() + next.Z())
		n[1] += (cur.Z() - next.Z()) * (cur.X() + next.X())
		n[2] += (cur.X() - next.X()) * (cur.Y() + next.Y())
	}
	if l := n.Len(); l > 0 {
		n = n.Mul(1 / l)
	} else {
		n = mgl64.Vec3{0, 0, 1}
	}
	if reverse == FACE_REVERSE {
		n = n.Mul(-1)
	}
	f.normal = n
}

// Reverse flips the winding and the normal.
func (f *Face) Reverse() {
	for i, j := 0, len(f.Indices)-1; i < j; i, j = i+1, j-1 {
		f.Indices[i], f.Indices[j] = f.Indices[j], f.Indices[i]
	}
	f.normal = f.normal.Mul(-1)
}

// GetMidPoint returns the centroid of the face's points.
func (f *Face) GetMidPoint(points []mgl64.Vec3) mgl64.Vec3 {
	var sum mgl64.Vec3
	if len(f.Indices) == 0 {
		return sum
	}
	for _, idx := range f.Indices {
		sum = sum.Add(points[idx])
	}
	return sum.Mul(1 / float64(len(f.Indices)))
}
