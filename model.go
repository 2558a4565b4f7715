package backdrop3d

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Model is one renderable object: a mesh of convex faces plus its own
// placement. Geometry may be shared between clones; placement never is.
type Model struct {
	mesh  *Mesh
	faces []*Face

	// per-frame buffers, refreshed by ApplyMatrixTemp
	worldPoints  []mgl64.Vec3
	camPoints    []mgl64.Vec3
	worldNormals []mgl64.Vec3
	camNormals   []mgl64.Vec3

	Position mgl64.Vec3
	Rotation mgl64.Vec3
	Scale    float64
	Opacity  float64

	drawLinesOnly bool
	drawAllFaces  bool

	xLength, yLength, zLength float64
}

func NewModel() *Model {
	return &Model{
		mesh:    NewMesh(),
		Scale:   1,
		Opacity: 1,
	}
}

// AddFace appends a polygon given by its local-space corners.
func (o *Model) AddFace(points []mgl64.Vec3, col color.RGBA) *Face {
	indices := make([]int, len(points))
	for i, p := range points {
		indices[i] = o.mesh.AddPoint(p)
	}
	f := NewFace(indices, col)
	o.faces = append(o.faces, f)
	return f
}

// Finished computes normals and sizes. With orientOutward set, faces whose
// normal points toward the mesh centre are reversed; only use it on convex
// meshes.
func (o *Model) Finished(orientOutward bool) {
	centre := o.mesh.Centre()
	for _, f := range o.faces {
		f.Finished(o.mesh, FACE_NORMAL)
		if orientOutward && f.GetNormal().Dot(f.GetMidPoint(o.mesh.Points).Sub(centre)) < 0 {
			f.Reverse()
		}
	}
	o.allocBuffers()
	o.CalcSize()
}

func (o *Model) allocBuffers() {
	n := len(o.mesh.Points)
	o.worldPoints = make([]mgl64.Vec3, n)
	o.camPoints = make([]mgl64.Vec3, n)
	o.worldNormals = make([]mgl64.Vec3, len(o.faces))
	o.camNormals = make([]mgl64.Vec3, len(o.faces))
}

// Clone shares geometry but owns its placement and frame buffers.
func (o *Model) Clone() *Model {
	clone := &Model{
		mesh:          o.mesh,
		faces:         o.faces,
		Position:      o.Position,
		Rotation:      o.Rotation,
		Scale:         o.Scale,
		Opacity:       o.Opacity,
		drawLinesOnly: o.drawLinesOnly,
		drawAllFaces:  o.drawAllFaces,
		xLength:       o.xLength,
		yLength:       o.yLength,
		zLength:       o.zLength,
	}
	clone.allocBuffers()
	return clone
}

func (o *Model) SetDrawLinesOnly(only bool) {
	o.drawLinesOnly = only
}

func (o *Model) GetDrawLinesOnly() bool {
	return o.drawLinesOnly
}

func (o *Model) SetDrawAllFaces(draw bool) {
	o.drawAllFaces = draw
}

func (o *Model) SetPosition(x, y, z float64) {
	o.Position = mgl64.Vec3{x, y, z}
}

func (o *Model) GetPosition() mgl64.Vec3 {
	return o.Position
}

func (o *Model) SetColor(col color.RGBA) {
	for _, f := range o.faces {
		f.SetColor(col)
	}
}

func (o *Model) FaceCount() int {
	return len(o.faces)
}

func (o *Model) PointCount() int {
	return o.mesh.PointCount()
}

func (o *Model) Faces() []*Face {
	return o.faces
}

func (o *Model) GetExtents() (float64, float64, float64) {
	return o.xLength, o.yLength, o.zLength
}

// CalcSize records the local bounding box size, before scaling.
func (o *Model) CalcSize() {
	if len(o.mesh.Points) == 0 {
		o.xLength, o.yLength, o.zLength = 0, 0, 0
		return
	}
	lo, hi := o.mesh.Points[0], o.mesh.Points[0]
	for _, p := range o.mesh.Points {
		for i := 0; i < 3; i++ {
			lo[i] = math.Min(lo[i], p[i])
			hi[i] = math.Max(hi[i], p[i])
		}
	}
	o.xLength = hi[0] - lo[0]
	o.yLength = hi[1] - lo[1]
	o.zLength = hi[2] - lo[2]
}

func (o *Model) ModelMatrix() mgl64.Mat4 {
	return ModelMatrix(o.Position, o.Rotation, o.Scale)
}

// ApplyMatrixTemp refreshes the world and camera space buffers for this
// frame. The model's own placement is not changed.
func (o *Model) ApplyMatrixTemp(camMatrix mgl64.Mat4) {
	if len(o.worldPoints) != len(o.mesh.Points) {
		o.allocBuffers()
	}
	toWorld := o.ModelMatrix()
	for i, p := range o.mesh.Points {
		w := TransformPoint(toWorld, p)
		o.worldPoints[i] = w
		o.camPoints[i] = TransformPoint(camMatrix, w)
	}
	for i, f := range o.faces {
		n := TransformNormal(toWorld, f.GetNormal())
		o.worldNormals[i] = n
		o.camNormals[i] = TransformNormal(camMatrix, n)
	}
}

// PaintObject sends every visible face to the batcher. ApplyMatrixTemp must
// have been called for the current camera first.
func (o *Model) PaintObject(batcher PolygonBatcher, f *Frame) {
	alpha := uint8(clamp(math.Round(o.Opacity*255), 0, 255))
	corners := make([]mgl64.Vec3, 0, 8)
	for i, face := range o.faces {
		corners = corners[:0]
		for _, idx := range face.Indices {
			corners = append(corners, o.camPoints[idx])
		}
		mid := face.GetMidPoint(o.camPoints)
		if !o.drawAllFaces && o.camNormals[i].Dot(mid) >= 0 {
			continue
		}
		if f.Far > 0 && mid.Z() > f.Far {
			continue
		}
		col := face.Col
		col.A = alpha
		if f.Lights != nil {
			col = f.Lights.Shade(face.GetMidPoint(o.worldPoints), o.worldNormals[i], col)
		}
		col = f.Fog.Apply(col, mid.Z())
		o.paintFace(batcher, f, corners, col)
	}
}

func (o *Model) paintFace(batcher PolygonBatcher, f *Frame, corners []mgl64.Vec3, col color.RGBA) {
	pointsToUse := clipPolygonAgainstNearPlane(corners, f.Near)
	if len(pointsToUse) < 2 {
		return
	}
	screenPoints := make([]Point, len(pointsToUse))
	for i, p := range pointsToUse {
		screenPoints[i] = Point{
			X: f.Projection.ConvertToScreenX(p.X(), p.Z()),
			Y: f.Projection.ConvertToScreenY(p.Y(), p.Z()),
		}
	}

	if o.drawLinesOnly {
		xp, yp := splitPoints(screenPoints)
		batcher.AddOutline(xp, yp, col, 1.0)
		return
	}

	clipped := clipPolygon(screenPoints, float32(f.Projection.Width), float32(f.Projection.Height))
	if len(clipped) < 3 {
		return
	}
	xp, yp := splitPoints(clipped)
	batcher.AddPolygon(xp, yp, col)
}

func splitPoints(points []Point) ([]float32, []float32) {
	xp := make([]float32, len(points))
	yp := make([]float32, len(points))
	for i, p := range points {
		xp[i], yp[i] = p.X, p.Y
	}
	return xp, yp
}
