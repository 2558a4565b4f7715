package backdrop3d

import "github.com/go-gl/mathgl/mgl64"

// Mesh is a de-duplicated vertex list shared by the faces of one model.
type Mesh struct {
	Points     []mgl64.Vec3
	pointIndex map[mgl64.Vec3]int
}

func NewMesh() *Mesh {
	return &Mesh{
		Points:     make([]mgl64.Vec3, 0, 16),
		pointIndex: make(map[mgl64.Vec3]int),
	}
}

// AddPoint returns the index of p, adding it only if an identical point is
// not already present.
func (m *Mesh) AddPoint(p mgl64.Vec3) int {
	if index, found := m.pointIndex[p]; found {
		return index
	}
	m.Points = append(m.Points, p)
	newIndex := len(m.Points) - 1
	m.pointIndex[p] = newIndex
	return newIndex
}

func (m *Mesh) PointCount() int {
	return len(m.Points)
}

// Centre is the mean of all points.
func (m *Mesh) Centre() mgl64.Vec3 {
	var c mgl64.Vec3
	if len(m.Points) == 0 {
		return c
	}
	for _, p := range m.Points {
		c = c.Add(p)
	}
	return c.Mul(1 / float64(len(m.Points)))
}

func (m *Mesh) Copy() *Mesh {
	newPointIndex := make(map[mgl64.Vec3]int, len(m.pointIndex))
	for key, value := range m.pointIndex {
		newPointIndex[key] = value
	}
	points := make([]mgl64.Vec3, len(m.Points))
	copy(points, m.Points)
	return &Mesh{
		Points:     points,
		pointIndex: newPointIndex,
	}
}
