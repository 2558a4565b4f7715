package termview

import (
	"image/color"
	"testing"

	"github.com/gdamore/tcell/v2"
)

var (
	black = color.RGBA{A: 255}
	red   = color.RGBA{R: 255, A: 255}
	green = color.RGBA{G: 255, A: 255}
)

func TestAddPolygonCoversPixelCentres(t *testing.T) {
	testCases := []struct {
		name   string
		xp, yp []float32
		inside [][2]int
		empty  [][2]int
	}{
		{
			name:   "Axis aligned square",
			xp:     []float32{2, 6, 6, 2},
			yp:     []float32{1, 1, 5, 5},
			inside: [][2]int{{2, 1}, {5, 1}, {2, 4}, {5, 4}},
			empty:  [][2]int{{1, 1}, {6, 1}, {2, 0}, {2, 5}},
		},
		{
			name:   "Triangle",
			xp:     []float32{0, 8, 0},
			yp:     []float32{0, 0, 8},
			inside: [][2]int{{0, 0}, {6, 0}, {0, 6}, {3, 3}},
			empty:  [][2]int{{7, 7}, {5, 5}, {9, 0}},
		},
		{
			name:   "Partly off canvas",
			xp:     []float32{-5, 3, 3, -5},
			yp:     []float32{-5, -5, 2, 2},
			inside: [][2]int{{0, 0}, {2, 1}},
			empty:  [][2]int{{3, 0}, {0, 2}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := NewCanvas(10, 10)
			c.AddPolygon(tc.xp, tc.yp, red)
			for _, p := range tc.inside {
				if got := c.At(p[0], p[1]); got != red {
					t.Errorf("pixel %v = %v, want filled", p, got)
				}
			}
			for _, p := range tc.empty {
				if got := c.At(p[0], p[1]); got != black {
					t.Errorf("pixel %v = %v, want empty", p, got)
				}
			}
		})
	}
}

func TestBlendUsesAlpha(t *testing.T) {
	c := NewCanvas(4, 4)
	c.AddPolygon([]float32{0, 4, 4, 0}, []float32{0, 0, 4, 4}, red)
	c.AddPolygon([]float32{0, 4, 4, 0}, []float32{0, 0, 4, 4}, color.RGBA{G: 255, A: 153})

	got := c.At(1, 1)
	if got.R != 102 || got.G != 153 || got.B != 0 || got.A != 255 {
		t.Errorf("blended pixel = %v, want {102 153 0 255}", got)
	}
}

func TestAddOutline(t *testing.T) {
	c := NewCanvas(10, 10)
	c.AddOutline([]float32{1, 8, 8, 1}, []float32{1, 1, 8, 8}, green, 1)

	for _, p := range [][2]int{{1, 1}, {8, 1}, {8, 8}, {1, 8}, {4, 1}, {8, 4}, {4, 8}, {1, 4}} {
		if got := c.At(p[0], p[1]); got != green {
			t.Errorf("edge pixel %v = %v", p, got)
		}
	}
	if got := c.At(4, 4); got != black {
		t.Errorf("interior pixel = %v, want untouched", got)
	}
}

func TestSetSizeClears(t *testing.T) {
	c := NewCanvas(4, 4)
	c.AddPolygon([]float32{0, 4, 4, 0}, []float32{0, 0, 4, 4}, red)
	c.SetSize(3, 2)
	if w, h := c.Size(); w != 3 || h != 2 {
		t.Fatalf("size = %dx%d", w, h)
	}
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			if c.At(x, y) != black {
				t.Fatalf("pixel %d,%d not cleared", x, y)
			}
		}
	}
	if c.At(5, 5) != black {
		t.Error("out of range pixel should read as background")
	}
}

func TestPresentHalfBlocks(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	defer screen.Fini()
	screen.SetSize(4, 2)

	c := NewCanvas(PixelSize(screen))
	c.AddPolygon([]float32{0, 4, 4, 0}, []float32{0, 0, 1, 1}, red)
	c.AddPolygon([]float32{0, 4, 4, 0}, []float32{1, 1, 2, 2}, green)
	c.Present(screen)

	mainc, _, style, _ := screen.GetContent(2, 0)
	if mainc != halfBlock {
		t.Errorf("cell rune = %q, want %q", mainc, halfBlock)
	}
	fg, bg, _ := style.Decompose()
	if fg != tcell.NewRGBColor(255, 0, 0) || bg != tcell.NewRGBColor(0, 255, 0) {
		t.Errorf("cell colours = %v on %v, want red on green", fg, bg)
	}

	_, _, style, _ = screen.GetContent(0, 1)
	fg, bg, _ = style.Decompose()
	if fg != tcell.NewRGBColor(0, 0, 0) || bg != tcell.NewRGBColor(0, 0, 0) {
		t.Errorf("empty cell colours = %v on %v", fg, bg)
	}
}
