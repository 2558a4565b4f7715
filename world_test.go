package backdrop3d

import (
	"image/color"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

// recordingBatcher is a PolygonBatcher that keeps what it is given.
type recordingBatcher struct {
	polygons []color.RGBA
	outlines []color.RGBA
}

func (b *recordingBatcher) AddPolygon(xp, yp []float32, clr color.RGBA) {
	b.polygons = append(b.polygons, clr)
}

func (b *recordingBatcher) AddOutline(xp, yp []float32, clr color.RGBA, strokeWidth float32) {
	b.outlines = append(b.outlines, clr)
}

func newTestWorld() *World {
	w := NewWorld()
	w.AddCamera(NewCamera(75, 800.0/600.0, 0.1, 1000))
	w.Lights.Ambient = &AmbientLight{Color: white, Intensity: 1}
	return w
}

func TestPaintCullsBackFaces(t *testing.T) {
	w := newTestWorld()
	w.AddObject(NewOctahedron(1, white), 0, 0, -10)

	b := &recordingBatcher{}
	w.PaintObjects(b, 800, 600)
	if len(b.polygons) != 4 {
		t.Errorf("painted %d faces, want the 4 facing the camera", len(b.polygons))
	}
	if len(b.outlines) != 0 {
		t.Errorf("solid model produced %d outlines", len(b.outlines))
	}
}

func TestPaintSkipsObjectsBehindCamera(t *testing.T) {
	w := newTestWorld()
	w.AddObject(NewOctahedron(1, white), 0, 0, 10)

	b := &recordingBatcher{}
	w.PaintObjects(b, 800, 600)
	if len(b.polygons) != 0 {
		t.Errorf("painted %d faces behind the camera", len(b.polygons))
	}
}

func TestPaintWireframeDrawsEveryFace(t *testing.T) {
	w := newTestWorld()
	torus := NewTorus(10, 3, 4, 8, white)
	torus.SetDrawLinesOnly(true)
	torus.SetDrawAllFaces(true)
	w.AddObject(torus, 0, 0, -60)

	b := &recordingBatcher{}
	w.PaintObjects(b, 800, 600)
	if len(b.outlines) != torus.FaceCount() {
		t.Errorf("outlines = %d, want %d", len(b.outlines), torus.FaceCount())
	}
	if len(b.polygons) != 0 {
		t.Errorf("wireframe produced %d filled polygons", len(b.polygons))
	}
}

func TestPaintFarToNear(t *testing.T) {
	red := color.RGBA{R: 255, A: 255}
	blue := color.RGBA{B: 255, A: 255}

	w := newTestWorld()
	w.AddObject(NewOctahedron(1, blue), 0, 0, -10)
	w.AddObject(NewOctahedron(1, red), 0, 0, -50)

	b := &recordingBatcher{}
	w.PaintObjects(b, 800, 600)
	if len(b.polygons) != 8 {
		t.Fatalf("painted %d faces, want 8", len(b.polygons))
	}
	if b.polygons[0] != red || b.polygons[7] != blue {
		t.Errorf("paint order = %v first, %v last; want far red first", b.polygons[0], b.polygons[7])
	}
}

func TestPaintAppliesOpacity(t *testing.T) {
	w := newTestWorld()
	m := NewOctahedron(1, white)
	m.Opacity = 0.6
	w.AddObject(m, 0, 0, -10)

	b := &recordingBatcher{}
	w.PaintObjects(b, 800, 600)
	for _, c := range b.polygons {
		if c.A != 153 {
			t.Fatalf("alpha = %d, want 153", c.A)
		}
	}
}

func TestFogFollowsViewDepth(t *testing.T) {
	fog := &Fog{Color: color.RGBA{A: 255}, Density: 0.02}
	w := newTestWorld()
	w.Fog = fog

	for _, x := range []float64{0, 30} {
		m := NewModel()
		m.AddFace([]mgl64.Vec3{{-1, -1, 0}, {1, -1, 0}, {0, 1, 0}}, white)
		m.Finished(false)
		m.SetDrawAllFaces(true)
		w.AddObject(m, x, 1.0/3, -50)
	}

	b := &recordingBatcher{}
	w.PaintObjects(b, 800, 600)
	if len(b.polygons) != 2 {
		t.Fatalf("painted %d faces, want 2", len(b.polygons))
	}
	want := fog.Apply(white, 50)
	for i, c := range b.polygons {
		if c != want {
			t.Errorf("face %d colour = %v, want %v for depth 50", i, c, want)
		}
	}
}

func TestPaintWithoutSurfaceOrCamera(t *testing.T) {
	w := NewWorld()
	w.AddObject(NewOctahedron(1, white), 0, 0, -10)
	b := &recordingBatcher{}
	w.PaintObjects(b, 800, 600)
	if len(b.polygons) != 0 {
		t.Errorf("painted without a camera")
	}

	w.AddCamera(NewCamera(75, 1, 0.1, 1000))
	w.PaintObjects(b, 0, 0)
	if len(b.polygons) != 0 {
		t.Errorf("painted onto an empty surface")
	}
}

func TestRemoveObject(t *testing.T) {
	w := NewWorld()
	a := NewOctahedron(1, white)
	c := NewOctahedron(1, white)
	w.AddObject(a, 0, 0, 0)
	w.AddObject(c, 1, 1, 1)

	if !w.RemoveObject(a) {
		t.Fatal("RemoveObject reported a missing object")
	}
	if w.RemoveObject(a) {
		t.Error("second RemoveObject should report false")
	}
	if w.ObjectCount() != 1 || w.Objects()[0] != c {
		t.Errorf("objects = %v", w.Objects())
	}
}
