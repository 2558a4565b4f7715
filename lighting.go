package backdrop3d

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

type AmbientLight struct {
	Color     color.RGBA
	Intensity float64
}

type SpotLight struct {
	Position  mgl64.Vec3
	Target    mgl64.Vec3
	Color     color.RGBA
	Intensity float64
	Angle     float64 // cone half angle, radians
	Penumbra  float64 // 0..1 share of the cone that fades out
	Decay     float64
	Distance  float64 // 0 means unlimited
}

type PointLight struct {
	Position  mgl64.Vec3
	Color     color.RGBA
	Intensity float64
	Distance  float64 // 0 means unlimited
	Decay     float64
}

// Lights is the full light rig of a world.
type Lights struct {
	Ambient *AmbientLight
	Spot    *SpotLight
	Points  []*PointLight
}

// Fog is exponential-squared distance fog.
type Fog struct {
	Color   color.RGBA
	Density float64
}

// Shade computes the lit colour of a surface point with a unit world-space
// normal. Alpha passes through untouched.
func (l *Lights) Shade(pos, normal mgl64.Vec3, base color.RGBA) color.RGBA {
	var r, g, b float64
	add := func(c color.RGBA, amount float64) {
		r += float64(c.R) / 255 * amount
		g += float64(c.G) / 255 * amount
		b += float64(c.B) / 255 * amount
	}

	if l.Ambient != nil {
		add(l.Ambient.Color, l.Ambient.Intensity)
	}

	for _, p := range l.Points {
		toLight := p.Position.Sub(pos)
		dist := toLight.Len()
		if dist == 0 {
			continue
		}
		lambert := normal.Dot(toLight) / dist
		if lambert <= 0 {
			continue
		}
		add(p.Color, p.Intensity*lambert*attenuation(dist, p.Distance, p.Decay))
	}

	if s := l.Spot; s != nil {
		toLight := s.Position.Sub(pos)
		dist := toLight.Len()
		if dist > 0 {
			lambert := normal.Dot(toLight) / dist
			axis := s.Target.Sub(s.Position)
			if lambert > 0 && axis.Len() > 0 {
				cosAngle := toLight.Mul(-1 / dist).Dot(axis.Normalize())
				cone := smoothstep(math.Cos(s.Angle), math.Cos(s.Angle*(1-s.Penumbra)), cosAngle)
				add(s.Color, s.Intensity*lambert*cone*attenuation(dist, s.Distance, s.Decay))
			}
		}
	}

	return color.RGBA{
		R: channel(float64(base.R) * r),
		G: channel(float64(base.G) * g),
		B: channel(float64(base.B) * b),
		A: base.A,
	}
}

// Apply blends c toward the fog colour for a surface at the given depth.
func (f *Fog) Apply(c color.RGBA, depth float64) color.RGBA {
	if f == nil || f.Density <= 0 {
		return c
	}
	d := f.Density * depth
	amount := 1 - math.Exp(-d*d)
	mix := func(a, b uint8) uint8 {
		return channel(float64(a)*(1-amount) + float64(b)*amount)
	}
	return color.RGBA{
		R: mix(c.R, f.Color.R),
		G: mix(c.G, f.Color.G),
		B: mix(c.B, f.Color.B),
		A: c.A,
	}
}

func attenuation(dist, cutoff, decay float64) float64 {
	if cutoff <= 0 {
		return 1
	}
	if dist >= cutoff {
		return 0
	}
	if decay <= 0 {
		decay = 1
	}
	return math.Pow(1-dist/cutoff, decay)
}

func smoothstep(edge0, edge1, x float64) float64 {
	if edge0 == edge1 {
		if x < edge0 {
			return 0
		}
		return 1
	}
	t := clamp((x-edge0)/(edge1-edge0), 0, 1)
	return t * t * (3 - 2*t)
}

func clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

func channel(v float64) uint8 {
	return uint8(clamp(math.Round(v), 0, 255))
}
