package backdrop3d

import "github.com/go-gl/mathgl/mgl64"

// Point is a projected screen position.
type Point struct {
	X, Y float32
}

// clipPolygonAgainstNearPlane keeps the part of a camera-space polygon with
// depth >= near (Sutherland-Hodgman against a single plane).
func clipPolygonAgainstNearPlane(points []mgl64.Vec3, near float64) []mgl64.Vec3 {
	if len(points) == 0 {
		return []mgl64.Vec3{}
	}
	out := make([]mgl64.Vec3, 0, len(points)+2)
	prev := points[len(points)-1]
	prevIn := prev.Z() >= near
	for _, cur := range points {
		curIn := cur.Z() >= near
		switch {
		case curIn && prevIn:
			out = append(out, cur)
		case curIn && !prevIn:
			out = append(out, intersectNearPlane(prev, cur, near), cur)
		case !curIn && prevIn:
			out = append(out, intersectNearPlane(prev, cur, near))
		}
		prev, prevIn = cur, curIn
	}
	return out
}

// intersectNearPlane returns where p1->p2 crosses depth near. A segment
// parallel to the plane yields p1.
func intersectNearPlane(p1, p2 mgl64.Vec3, near float64) mgl64.Vec3 {
	dz := p2.Z() - p1.Z()
	if dz == 0 {
		return p1
	}
	t := (near - p1.Z()) / dz
	return p1.Add(p2.Sub(p1).Mul(t))
}

type screenEdge int

const (
	edgeLeft screenEdge = iota
	edgeRight
	edgeTop
	edgeBottom
)

// clipPolygon clips a projected polygon to the screen rectangle, allowing a
// one pixel margin on every side.
func clipPolygon(points []Point, screenWidth, screenHeight float32) []Point {
	minX, minY := float32(-1), float32(-1)
	maxX, maxY := screenWidth+1, screenHeight+1

	out := points
	for _, edge := range []screenEdge{edgeLeft, edgeRight, edgeTop, edgeBottom} {
		if len(out) == 0 {
			return []Point{}
		}
		in := out
		out = make([]Point, 0, len(in)+2)
		inside := func(p Point) bool {
			switch edge {
			case edgeLeft:
				return p.X >= minX
			case edgeRight:
				return p.X <= maxX
			case edgeTop:
				return p.Y >= minY
			default:
				return p.Y <= maxY
			}
		}
		cross := func(a, b Point) Point {
			switch edge {
			case edgeLeft:
				return lerpAtX(a, b, minX)
			case edgeRight:
				return lerpAtX(a, b, maxX)
			case edgeTop:
				return lerpAtY(a, b, minY)
			default:
				return lerpAtY(a, b, maxY)
			}
		}
		prev := in[len(in)-1]
		for _, cur := range in {
			switch {
			case inside(cur) && inside(prev):
				out = append(out, cur)
			case inside(cur):
				out = append(out, cross(prev, cur), cur)
			case inside(prev):
				out = append(out, cross(prev, cur))
			}
			prev = cur
		}
	}
	return out
}

func lerpAtX(a, b Point, x float32) Point {
	t := (x - a.X) / (b.X - a.X)
	return Point{X: x, Y: a.Y + (b.Y-a.Y)*t}
}

func lerpAtY(a, b Point, y float32) Point {
	t := (y - a.Y) / (b.Y - a.Y)
	return Point{X: a.X + (b.X-a.X)*t, Y: y}
}
