package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/smasonuk/backdrop3d"
)

const threshold = 1e-6

func almostEqual(a, b float64) bool {
	d := a - b
	return d < threshold && d > -threshold
}

// recordingSizer keeps every size it is told about.
type recordingSizer struct {
	sizes [][2]int
}

func (r *recordingSizer) SetSize(width, height int) {
	r.sizes = append(r.sizes, [2]int{width, height})
}

func (r *recordingSizer) last() [2]int {
	return r.sizes[len(r.sizes)-1]
}

func TestPointerMoveIsOffsetFromCentre(t *testing.T) {
	cam := backdrop3d.NewCamera(75, 1, 0.1, 1000)
	v := NewViewport(cam, nil, 800, 600)

	testCases := []struct {
		x, y         float64
		wantX, wantY float64
	}{
		{400, 300, 0, 0},
		{500, 250, 100, -50},
		{0, 0, -400, -300},
		{2000, -100, 1600, -400},
	}
	for _, tc := range testCases {
		v.PointerMove(tc.x, tc.y)
		gotX, gotY := v.Pointer()
		if gotX != tc.wantX || gotY != tc.wantY {
			t.Errorf("PointerMove(%g, %g) offset = (%g, %g), want (%g, %g)", tc.x, tc.y, gotX, gotY, tc.wantX, tc.wantY)
		}
	}
}

func TestResizeIdempotent(t *testing.T) {
	cam := backdrop3d.NewCamera(75, 1, 0.1, 1000)
	sizer := &recordingSizer{}
	v := NewViewport(cam, sizer, 800, 600)

	v.Resize(1024, 768)
	aspect := cam.Aspect
	first := sizer.last()

	v.Resize(1024, 768)
	if cam.Aspect != aspect {
		t.Errorf("aspect changed from %g to %g", aspect, cam.Aspect)
	}
	if sizer.last() != first {
		t.Errorf("output size changed from %v to %v", first, sizer.last())
	}
	if !almostEqual(cam.Aspect, 1024.0/768.0) {
		t.Errorf("aspect = %g", cam.Aspect)
	}
	if w, h := v.Size(); w != 1024 || h != 768 {
		t.Errorf("size = %dx%d", w, h)
	}
}

func TestResizeIgnoresEmptySize(t *testing.T) {
	cam := backdrop3d.NewCamera(75, 1, 0.1, 1000)
	sizer := &recordingSizer{}
	v := NewViewport(cam, sizer, 800, 600)
	v.Resize(0, 600)
	v.Resize(800, -1)

	if len(sizer.sizes) != 1 {
		t.Errorf("sizer called %d times, want 1", len(sizer.sizes))
	}
	if !almostEqual(cam.Aspect, 800.0/600.0) {
		t.Errorf("aspect = %g", cam.Aspect)
	}
}

func TestSetOutputReceivesCurrentSize(t *testing.T) {
	cam := backdrop3d.NewCamera(75, 1, 0.1, 1000)
	v := NewViewport(cam, nil, 640, 480)
	sizer := &recordingSizer{}
	v.SetOutput(sizer)
	if len(sizer.sizes) != 1 || sizer.last() != [2]int{640, 480} {
		t.Errorf("sizes = %v", sizer.sizes)
	}
}

func TestOrientationChangeResetsCamera(t *testing.T) {
	cam := backdrop3d.NewCamera(75, 1, 0.1, 1000)
	cam.Position = mgl64.Vec3{3, 4, 5}
	cam.Rotation = mgl64.Vec3{0.2, -0.3, 0.1}
	sizer := &recordingSizer{}
	v := NewViewport(cam, sizer, 800, 600)

	v.OrientationChange(600, 800)
	if cam.Position != (mgl64.Vec3{0, 5, 30}) {
		t.Errorf("position = %v", cam.Position)
	}
	if cam.Rotation != (mgl64.Vec3{}) {
		t.Errorf("rotation = %v", cam.Rotation)
	}
	if !almostEqual(cam.Aspect, 0.75) || sizer.last() != [2]int{600, 800} {
		t.Errorf("aspect = %g, output = %v", cam.Aspect, sizer.last())
	}
}

func TestFit(t *testing.T) {
	testCases := []struct {
		name          string
		width, height int
		expectReset   bool
	}{
		{"Same orientation", 1024, 700, false},
		{"Landscape to portrait", 600, 800, true},
		{"Square counts as landscape", 600, 600, false},
		{"Empty size", 0, 0, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cam := backdrop3d.NewCamera(75, 1, 0.1, 1000)
			v := NewViewport(cam, nil, 800, 600)
			cam.Rotation = mgl64.Vec3{0.3, 0.2, 0}

			v.Fit(tc.width, tc.height)
			reset := cam.Rotation == (mgl64.Vec3{})
			if reset != tc.expectReset {
				t.Errorf("camera reset = %v, want %v", reset, tc.expectReset)
			}
			if tc.width > 0 {
				if w, h := v.Size(); w != tc.width || h != tc.height {
					t.Errorf("size = %dx%d", w, h)
				}
			}
		})
	}
}
