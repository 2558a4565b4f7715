package termview

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"
)

// halfBlock shows the top pixel as foreground and the bottom pixel as
// background, so one cell holds two square-ish pixels.
const halfBlock = '▀'

// Canvas is a small RGBA framebuffer that rasterises polygons for a
// terminal. It has two pixel rows per cell row.
type Canvas struct {
	width, height int
	pix           []color.RGBA
	background    color.RGBA
}

func NewCanvas(width, height int) *Canvas {
	c := &Canvas{background: color.RGBA{A: 255}}
	c.SetSize(width, height)
	return c
}

// SetSize resizes the canvas in pixels and clears it.
func (c *Canvas) SetSize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	c.width, c.height = width, height
	if cap(c.pix) >= width*height {
		c.pix = c.pix[:width*height]
	} else {
		c.pix = make([]color.RGBA, width*height)
	}
	c.Clear()
}

func (c *Canvas) Size() (int, int) {
	return c.width, c.height
}

func (c *Canvas) Clear() {
	for i := range c.pix {
		c.pix[i] = c.background
	}
}

func (c *Canvas) At(x, y int) color.RGBA {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return c.background
	}
	return c.pix[y*c.width+x]
}

// blend paints clr over the pixel using its alpha.
func (c *Canvas) blend(x, y int, clr color.RGBA) {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return
	}
	i := y*c.width + x
	if clr.A == 255 {
		c.pix[i] = clr
		return
	}
	dst := c.pix[i]
	a := uint32(clr.A)
	mix := func(s, d uint8) uint8 {
		return uint8((uint32(s)*a + uint32(d)*(255-a) + 127) / 255)
	}
	c.pix[i] = color.RGBA{R: mix(clr.R, dst.R), G: mix(clr.G, dst.G), B: mix(clr.B, dst.B), A: 255}
}

// AddPolygon fills a convex polygon, sampling at pixel centres.
func (c *Canvas) AddPolygon(xp, yp []float32, clr color.RGBA) {
	n := len(xp)
	if n < 3 {
		return
	}
	minY, maxY := yp[0], yp[0]
	for _, y := range yp[1:] {
		minY = float32(math.Min(float64(minY), float64(y)))
		maxY = float32(math.Max(float64(maxY), float64(y)))
	}
	startRow := int(math.Ceil(float64(minY) - 0.5))
	endRow := int(math.Floor(float64(maxY) - 0.5))
	if startRow < 0 {
		startRow = 0
	}
	if endRow >= c.height {
		endRow = c.height - 1
	}

	for row := startRow; row <= endRow; row++ {
		sy := float64(row) + 0.5
		left, right := math.Inf(1), math.Inf(-1)
		for i := 0; i < n; i++ {
			j := (i + 1) % n
			y0, y1 := float64(yp[i]), float64(yp[j])
			if (sy < y0) == (sy < y1) {
				continue
			}
			x0, x1 := float64(xp[i]), float64(xp[j])
			x := x0 + (sy-y0)*(x1-x0)/(y1-y0)
			left = math.Min(left, x)
			right = math.Max(right, x)
		}
		if left > right {
			continue
		}
		first := int(math.Ceil(left - 0.5))
		last := int(math.Floor(right - 0.5))
		for x := first; x <= last; x++ {
			c.blend(x, row, clr)
		}
	}
}

// AddOutline draws the closed outline with Bresenham lines. strokeWidth is
// ignored; a terminal pixel is already coarse.
func (c *Canvas) AddOutline(xp, yp []float32, clr color.RGBA, strokeWidth float32) {
	n := len(xp)
	if n < 2 {
		return
	}
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		if n == 2 && i == 1 {
			break
		}
		c.line(int(math.Floor(float64(xp[i]))), int(math.Floor(float64(yp[i]))),
			int(math.Floor(float64(xp[j]))), int(math.Floor(float64(yp[j]))), clr)
	}
}

func (c *Canvas) line(x0, y0, x1, y1 int, clr color.RGBA) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		c.blend(x0, y0, clr)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func rgb(clr color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(clr.R), int32(clr.G), int32(clr.B))
}

// Present copies the canvas onto screen, two pixel rows per cell.
func (c *Canvas) Present(screen tcell.Screen) {
	cols, rows := screen.Size()
	for cy := 0; cy < rows; cy++ {
		for cx := 0; cx < cols; cx++ {
			top := c.At(cx, cy*2)
			bottom := c.At(cx, cy*2+1)
			style := tcell.StyleDefault.Foreground(rgb(top)).Background(rgb(bottom))
			screen.SetContent(cx, cy, halfBlock, nil, style)
		}
	}
}
