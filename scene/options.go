package scene

import (
	"errors"
	"fmt"
)

// ErrInvalidOptions is returned by Build and NewContext for options that
// cannot describe a scene.
var ErrInvalidOptions = errors.New("scene: invalid options")

// Population is the size of the two randomised object groups.
type Population struct {
	Crystals int
	Stars    int
	Spread   float64 // crystal cube half-width
}

var (
	FullPopulation        = Population{Crystals: 10, Stars: 200, Spread: 25}
	ConstrainedPopulation = Population{Crystals: 5, Stars: 50, Spread: 15}
)

// Options configure scene construction.
type Options struct {
	Full        Population
	Constrained Population

	StarSpread   float64
	StarSegments int

	TorusRadialSegments  int
	TorusTubularSegments int
	PlatformSegments     int
	Fog                  bool
}

func DefaultOptions() Options {
	return Options{
		Full:                 FullPopulation,
		Constrained:          ConstrainedPopulation,
		StarSpread:           50,
		StarSegments:         6,
		TorusRadialSegments:  16,
		TorusTubularSegments: 100,
		PlatformSegments:     32,
		Fog:                  true,
	}
}

func (p Population) validate(name string) error {
	if p.Crystals < 0 || p.Stars < 0 {
		return fmt.Errorf("%w: %s population has a negative count", ErrInvalidOptions, name)
	}
	if p.Spread <= 0 {
		return fmt.Errorf("%w: %s crystal spread must be positive, got %g", ErrInvalidOptions, name, p.Spread)
	}
	return nil
}

// Validate reports the first problem found in o.
func (o Options) Validate() error {
	if err := o.Full.validate("full"); err != nil {
		return err
	}
	if err := o.Constrained.validate("constrained"); err != nil {
		return err
	}
	if o.StarSpread <= 0 {
		return fmt.Errorf("%w: star spread must be positive, got %g", ErrInvalidOptions, o.StarSpread)
	}
	if o.StarSegments < 3 {
		return fmt.Errorf("%w: star segments must be at least 3, got %d", ErrInvalidOptions, o.StarSegments)
	}
	if o.TorusRadialSegments < 3 || o.TorusTubularSegments < 3 {
		return fmt.Errorf("%w: torus needs at least 3x3 segments", ErrInvalidOptions)
	}
	if o.PlatformSegments < 3 {
		return fmt.Errorf("%w: platform needs at least 3 segments", ErrInvalidOptions)
	}
	return nil
}
