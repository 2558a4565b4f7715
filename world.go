package backdrop3d

import (
	"sort"
)

// Frame carries everything a model needs to paint itself for one camera.
type Frame struct {
	Projection Projection
	Near       float64
	Far        float64
	Lights     *Lights
	Fog        *Fog
}

// World owns the renderable objects, the light rig and the active camera.
type World struct {
	objects []*Model
	camera  *Camera
	Lights  Lights
	Fog     *Fog

	order []int
}

func NewWorld() *World {
	return &World{}
}

func (w *World) AddObject(obj *Model, x, y, z float64) {
	obj.SetPosition(x, y, z)
	w.objects = append(w.objects, obj)
}

// RemoveObject drops obj from the world and reports whether it was present.
func (w *World) RemoveObject(obj *Model) bool {
	for i, o := range w.objects {
		if o == obj {
			w.objects = append(w.objects[:i], w.objects[i+1:]...)
			return true
		}
	}
	return false
}

func (w *World) Objects() []*Model {
	return w.objects
}

func (w *World) ObjectCount() int {
	return len(w.objects)
}

func (w *World) AddCamera(c *Camera) {
	w.camera = c
}

func (w *World) Camera() *Camera {
	return w.camera
}

// PaintObjects draws every object far-to-near into the batcher.
func (w *World) PaintObjects(batcher PolygonBatcher, width, height int) {
	if w.camera == nil || width <= 0 || height <= 0 {
		return
	}
	cam := w.camera
	camPos := cam.GetPosition()
	camMatrix := cam.GetCameraMatrix()

	w.order = w.order[:0]
	for i := range w.objects {
		w.order = append(w.order, i)
	}
	sort.Slice(w.order, func(i, j int) bool {
		distanceI := w.objects[w.order[i]].Position.Sub(camPos).Len()
		distanceJ := w.objects[w.order[j]].Position.Sub(camPos).Len()
		return distanceI > distanceJ
	})

	frame := &Frame{
		Projection: cam.Projection(width, height),
		Near:       cam.Near,
		Far:        cam.Far,
		Lights:     &w.Lights,
		Fog:        w.Fog,
	}
	for _, i := range w.order {
		obj := w.objects[i]
		obj.ApplyMatrixTemp(camMatrix)
		obj.PaintObject(batcher, frame)
	}
}
