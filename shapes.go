package backdrop3d

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// NewTorus builds a torus around the z axis. Faces are wound so their
// normals point away from the tube centre line.
func NewTorus(radius, tube float64, radialSegments, tubularSegments int, col color.RGBA) *Model {
	obj := NewModel()
	point := func(j, i int) mgl64.Vec3 {
		u := float64(i%tubularSegments) / float64(tubularSegments) * 2 * math.Pi
		v := float64(j%radialSegments) / float64(radialSegments) * 2 * math.Pi
		return mgl64.Vec3{
			(radius + tube*math.Cos(v)) * math.Cos(u),
			(radius + tube*math.Cos(v)) * math.Sin(u),
			tube * math.Sin(v),
		}
	}
	for j := 0; j < radialSegments; j++ {
		for i := 0; i < tubularSegments; i++ {
			obj.AddFace([]mgl64.Vec3{
				point(j, i),
				point(j, i+1),
				point(j+1, i+1),
				point(j+1, i),
			}, col)
		}
	}
	obj.Finished(false)
	return obj
}

// NewOctahedron builds a regular octahedron with its vertices on the axes.
func NewOctahedron(radius float64, col color.RGBA) *Model {
	obj := NewModel()
	top := mgl64.Vec3{0, radius, 0}
	bottom := mgl64.Vec3{0, -radius, 0}
	ring := []mgl64.Vec3{
		{radius, 0, 0},
		{0, 0, radius},
		{-radius, 0, 0},
		{0, 0, -radius},
	}
	for i := range ring {
		a, b := ring[i], ring[(i+1)%len(ring)]
		obj.AddFace([]mgl64.Vec3{top, b, a}, col)
		obj.AddFace([]mgl64.Vec3{bottom, a, b}, col)
	}
	obj.Finished(true)
	return obj
}

// NewCylinder builds a capped cylinder along the y axis.
func NewCylinder(radiusTop, radiusBottom, height float64, radialSegments int, col color.RGBA) *Model {
	obj := NewModel()
	half := height / 2
	top := make([]mgl64.Vec3, radialSegments)
	bottom := make([]mgl64.Vec3, radialSegments)
	for i := 0; i < radialSegments; i++ {
		theta := float64(i) / float64(radialSegments) * 2 * math.Pi
		s, c := math.Sin(theta), math.Cos(theta)
		top[i] = mgl64.Vec3{radiusTop * s, half, radiusTop * c}
		bottom[i] = mgl64.Vec3{radiusBottom * s, -half, radiusBottom * c}
	}
	for i := 0; i < radialSegments; i++ {
		next := (i + 1) % radialSegments
		obj.AddFace([]mgl64.Vec3{top[i], bottom[i], bottom[next], top[next]}, col)
	}

	topCap := make([]mgl64.Vec3, radialSegments)
	copy(topCap, top)
	obj.AddFace(topCap, col)

	bottomCap := make([]mgl64.Vec3, radialSegments)
	for i := range bottom {
		bottomCap[i] = bottom[radialSegments-1-i]
	}
	obj.AddFace(bottomCap, col)

	obj.Finished(true)
	return obj
}

// NewUVSphere builds a latitude/longitude sphere. The polar rows are
// triangles so no face has a repeated vertex.
func NewUVSphere(radius float64, widthSegments, heightSegments int, col color.RGBA) *Model {
	obj := NewModel()
	point := func(row, column int) mgl64.Vec3 {
		phi := float64(column%widthSegments) / float64(widthSegments) * 2 * math.Pi
		theta := float64(row) / float64(heightSegments) * math.Pi
		return mgl64.Vec3{
			-radius * math.Cos(phi) * math.Sin(theta),
			radius * math.Cos(theta),
			radius * math.Sin(phi) * math.Sin(theta),
		}
	}
	north := mgl64.Vec3{0, radius, 0}
	south := mgl64.Vec3{0, -radius, 0}
	for row := 0; row < heightSegments; row++ {
		for column := 0; column < widthSegments; column++ {
			switch {
			case heightSegments == 1:
				continue
			case row == 0:
				obj.AddFace([]mgl64.Vec3{north, point(1, column+1), point(1, column)}, col)
			case row == heightSegments-1:
				obj.AddFace([]mgl64.Vec3{point(row, column), point(row, column+1), south}, col)
			default:
				obj.AddFace([]mgl64.Vec3{
					point(row, column),
					point(row, column+1),
					point(row+1, column+1),
					point(row+1, column),
				}, col)
			}
		}
	}
	obj.Finished(true)
	return obj
}
