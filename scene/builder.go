package scene

import (
	"fmt"
	"image/color"
	"log"
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/smasonuk/backdrop3d"
)

// Kind tags what a scene object is.
type Kind int

const (
	KindTorus Kind = iota
	KindCrystal
	KindPlatform
	KindStar
)

func (k Kind) String() string {
	switch k {
	case KindTorus:
		return "torus"
	case KindCrystal:
		return "crystal"
	case KindPlatform:
		return "platform"
	case KindStar:
		return "star"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Object is one renderable item. Index is the creation order within its
// kind and is the crystal bob phase.
type Object struct {
	Kind  Kind
	Index int
	Model *backdrop3d.Model
}

var (
	torusColor    = color.RGBA{R: 0x2e, G: 0xcc, B: 0x71, A: 255}
	platformColor = color.RGBA{R: 0x34, G: 0x98, B: 0xdb, A: 255}
	starColor     = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	lightColors   = []color.RGBA{
		{R: 255, A: 255},
		{G: 255, A: 255},
		{B: 255, A: 255},
	}
	whiteLight = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

const (
	torusZ            = -15.0
	platformBaseY     = -10.0
	platformOpacity   = 0.6
	crystalOpacity    = 0.8
	lightOrbitRadius  = 20.0
	lightHeight       = 5.0
	starRadius        = 0.25
	cameraFov         = 75.0
	cameraNear        = 0.1
	cameraFar         = 1000.0
	fogDensity        = 0.01
	pointLightRange   = 50.0
	spotLightHeight   = 25.0
	spotLightRange    = 200.0
	spotLightDecay    = 2.0
	spotLightPenumbra = 0.1
)

var cameraHome = mgl64.Vec3{0, 5, 30}

// Scene is the fixed object population plus the lights and camera that
// show it.
type Scene struct {
	World  *backdrop3d.World
	Camera *backdrop3d.Camera

	Torus    *Object
	Platform *Object
	Crystals []*Object
	Stars    []*Object

	Ambient     *backdrop3d.AmbientLight
	Spot        *backdrop3d.SpotLight
	PointLights []*backdrop3d.PointLight

	Profile        DeviceProfile
	profileApplied bool

	opts         Options
	rng          *rand.Rand
	starTemplate *backdrop3d.Model
}

// Build constructs the default population for a viewport of the given size.
func Build(opts Options, rng *rand.Rand, width, height int) (*Scene, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("%w: no random source", ErrInvalidOptions)
	}

	log.Println("Initializing World...")
	s := &Scene{
		World: backdrop3d.NewWorld(),
		opts:  opts,
		rng:   rng,
	}

	aspect := 1.0
	if width > 0 && height > 0 {
		aspect = float64(width) / float64(height)
	}
	s.Camera = backdrop3d.NewCamera(cameraFov, aspect, cameraNear, cameraFar)
	s.Camera.Position = cameraHome
	s.World.AddCamera(s.Camera)

	if opts.Fog {
		s.World.Fog = &backdrop3d.Fog{Color: color.RGBA{A: 255}, Density: fogDensity}
	}

	torus := backdrop3d.NewTorus(10, 3, opts.TorusRadialSegments, opts.TorusTubularSegments, torusColor)
	torus.SetDrawLinesOnly(true)
	torus.SetDrawAllFaces(true)
	s.World.AddObject(torus, 0, 0, torusZ)
	s.Torus = &Object{Kind: KindTorus, Model: torus}

	s.addCrystals(opts.Full.Crystals, opts.Full.Spread)

	platform := backdrop3d.NewCylinder(15, 15, 1, opts.PlatformSegments, platformColor)
	platform.Opacity = platformOpacity
	s.World.AddObject(platform, 0, platformBaseY, 0)
	s.Platform = &Object{Kind: KindPlatform, Model: platform}

	s.addLights()

	s.starTemplate = backdrop3d.NewUVSphere(starRadius, opts.StarSegments, opts.StarSegments, starColor)
	s.addStars(opts.Full.Stars)

	log.Printf("Scene built: %d crystals, %d stars, %d objects", len(s.Crystals), len(s.Stars), s.World.ObjectCount())
	return s, nil
}

func (s *Scene) addLights() {
	s.Ambient = &backdrop3d.AmbientLight{Color: whiteLight, Intensity: 0.5}
	s.Spot = &backdrop3d.SpotLight{
		Position:  mgl64.Vec3{0, spotLightHeight, 0},
		Color:     whiteLight,
		Intensity: 1,
		Angle:     math.Pi / 4,
		Penumbra:  spotLightPenumbra,
		Decay:     spotLightDecay,
		Distance:  spotLightRange,
	}
	s.PointLights = make([]*backdrop3d.PointLight, len(lightColors))
	for i, c := range lightColors {
		angle := float64(i) / float64(len(lightColors)) * math.Pi * 2
		s.PointLights[i] = &backdrop3d.PointLight{
			Position:  mgl64.Vec3{math.Cos(angle) * lightOrbitRadius, lightHeight, math.Sin(angle) * lightOrbitRadius},
			Color:     c,
			Intensity: 1,
			Distance:  pointLightRange,
			Decay:     1,
		}
	}
	s.World.Lights = backdrop3d.Lights{
		Ambient: s.Ambient,
		Spot:    s.Spot,
		Points:  s.PointLights,
	}
}

// spread returns a uniform sample in [-halfWidth, halfWidth).
func (s *Scene) spread(halfWidth float64) float64 {
	return (s.rng.Float64() - 0.5) * 2 * halfWidth
}

func (s *Scene) addCrystals(n int, halfWidth float64) {
	for i := 0; i < n; i++ {
		size := s.rng.Float64()*2 + 1
		hue := s.rng.Float64() * 360
		r, g, b := colorful.Hsl(hue, 0.7, 0.5).Clamped().RGB255()
		crystal := backdrop3d.NewOctahedron(size, color.RGBA{R: r, G: g, B: b, A: 255})
		crystal.Opacity = crystalOpacity

		x, y, z := s.spread(halfWidth), s.spread(halfWidth), s.spread(halfWidth)
		crystal.Rotation = mgl64.Vec3{
			s.rng.Float64() * math.Pi,
			s.rng.Float64() * math.Pi,
			s.rng.Float64() * math.Pi,
		}
		s.World.AddObject(crystal, x, y, z)
		s.Crystals = append(s.Crystals, &Object{Kind: KindCrystal, Index: i, Model: crystal})
	}
}

func (s *Scene) addStars(n int) {
	half := s.opts.StarSpread
	for i := 0; i < n; i++ {
		star := s.starTemplate.Clone()
		x, y, z := s.spread(half), s.spread(half), s.spread(half)
		s.World.AddObject(star, x, y, z)
		s.Stars = append(s.Stars, &Object{Kind: KindStar, Index: i, Model: star})
	}
}

// removeAll drops every object of the given kind from the world and
// clears the matching collection.
func (s *Scene) removeAll(kind Kind) int {
	var objs *[]*Object
	switch kind {
	case KindCrystal:
		objs = &s.Crystals
	case KindStar:
		objs = &s.Stars
	default:
		return 0
	}
	removed := 0
	for _, o := range *objs {
		if s.World.RemoveObject(o.Model) {
			removed++
		}
	}
	*objs = nil
	return removed
}

// Objects returns every object of the given kind.
func (s *Scene) Objects(kind Kind) []*Object {
	switch kind {
	case KindTorus:
		return []*Object{s.Torus}
	case KindPlatform:
		return []*Object{s.Platform}
	case KindCrystal:
		return s.Crystals
	case KindStar:
		return s.Stars
	}
	return nil
}
