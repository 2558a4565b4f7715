package render

import (
	"image"
	"image/color"
	"math"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// maxVertices keeps every index inside uint16.
const maxVertices = math.MaxUint16

var (
	whiteOnce sync.Once
	whiteSub  *ebiten.Image
)

func whiteSubImage() *ebiten.Image {
	whiteOnce.Do(func() {
		whiteImage := ebiten.NewImage(3, 3)
		whiteImage.Fill(color.White)
		whiteSub = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	})
	return whiteSub
}

// Batcher collects polygons and outlines as triangles and draws them in as
// few DrawTriangles calls as the index range allows.
type Batcher struct {
	vertices []ebiten.Vertex
	indices  []uint16

	strokeVertices []ebiten.Vertex
	strokeIndices  []uint16

	draw func(vertices []ebiten.Vertex, indices []uint16)
}

// NewBatcher returns a batcher that draws into target on Flush.
func NewBatcher(target *ebiten.Image) *Batcher {
	b := &Batcher{}
	b.SetTarget(target)
	return b
}

func (b *Batcher) SetTarget(target *ebiten.Image) {
	src := whiteSubImage()
	op := &ebiten.DrawTrianglesOptions{AntiAlias: true}
	b.draw = func(vertices []ebiten.Vertex, indices []uint16) {
		target.DrawTriangles(vertices, indices, src, op)
	}
}

func rgba(clr color.RGBA) (float32, float32, float32, float32) {
	return float32(clr.R) / 255.0, float32(clr.G) / 255.0, float32(clr.B) / 255.0, float32(clr.A) / 255.0
}

// AddPolygon queues a filled convex polygon as a triangle fan.
func (b *Batcher) AddPolygon(xp, yp []float32, clr color.RGBA) {
	if len(xp) < 3 {
		return
	}
	if len(b.vertices)+len(xp) > maxVertices {
		b.Flush()
	}

	base := uint16(len(b.vertices))
	for i := 2; i < len(xp); i++ {
		b.indices = append(b.indices, base, base+uint16(i-1), base+uint16(i))
	}

	cr, cg, cb, ca := rgba(clr)
	for i := range xp {
		b.vertices = append(b.vertices, ebiten.Vertex{
			DstX:   xp[i],
			DstY:   yp[i],
			SrcX:   1,
			SrcY:   1,
			ColorR: cr,
			ColorG: cg,
			ColorB: cb,
			ColorA: ca,
		})
	}
}

// AddOutline queues the closed outline of a polygon.
func (b *Batcher) AddOutline(xp, yp []float32, clr color.RGBA, strokeWidth float32) {
	if len(xp) < 2 {
		return
	}

	var path vector.Path
	path.MoveTo(xp[0], yp[0])
	for i := 1; i < len(xp); i++ {
		path.LineTo(xp[i], yp[i])
	}
	path.Close()

	strokeOp := &vector.StrokeOptions{Width: strokeWidth}
	b.strokeVertices, b.strokeIndices = path.AppendVerticesAndIndicesForStroke(b.strokeVertices[:0], b.strokeIndices[:0], strokeOp)
	if len(b.strokeVertices) == 0 {
		return
	}
	if len(b.vertices)+len(b.strokeVertices) > maxVertices {
		b.Flush()
	}

	base := uint16(len(b.vertices))
	for _, idx := range b.strokeIndices {
		b.indices = append(b.indices, base+idx)
	}
	cr, cg, cb, ca := rgba(clr)
	for _, v := range b.strokeVertices {
		v.SrcX, v.SrcY = 1, 1
		v.ColorR, v.ColorG, v.ColorB, v.ColorA = cr, cg, cb, ca
		b.vertices = append(b.vertices, v)
	}
}

// Flush draws everything queued and empties the batch.
func (b *Batcher) Flush() {
	if len(b.indices) > 0 && b.draw != nil {
		b.draw(b.vertices, b.indices)
	}
	b.vertices = b.vertices[:0]
	b.indices = b.indices[:0]
}

func (b *Batcher) Pending() (vertices, indices int) {
	return len(b.vertices), len(b.indices)
}
