package backdrop3d

import "image/color"

// PolygonBatcher receives screen-space convex polygons from the painter.
// Implementations decide how and when they reach the output surface.
type PolygonBatcher interface {
	AddPolygon(xp, yp []float32, clr color.RGBA)
	AddOutline(xp, yp []float32, clr color.RGBA, strokeWidth float32)
}
