package scene

import (
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"
)

// DeviceProfile selects the object population size.
type DeviceProfile int

const (
	ProfileFull DeviceProfile = iota
	ProfileConstrained
)

func (p DeviceProfile) String() string {
	if p == ProfileConstrained {
		return "constrained"
	}
	return "full"
}

// Capabilities describes the host. Mode forces a profile when it is
// "full" or "constrained"; "auto" or empty classifies UserAgent.
type Capabilities struct {
	UserAgent string
	Mode      string
}

var ErrProfileApplied = errors.New("scene: device profile already applied")

var mobileAgent = regexp.MustCompile(`(?i)Android|webOS|iPhone|iPad|iPod|BlackBerry|IEMobile|Opera Mini`)

// ResolveProfile classifies the host once from its capabilities.
func ResolveProfile(caps Capabilities) (DeviceProfile, error) {
	switch strings.ToLower(caps.Mode) {
	case "", "auto":
		if mobileAgent.MatchString(caps.UserAgent) {
			return ProfileConstrained, nil
		}
		return ProfileFull, nil
	case "full":
		return ProfileFull, nil
	case "constrained":
		return ProfileConstrained, nil
	}
	return ProfileFull, fmt.Errorf("%w: unknown profile mode %q", ErrInvalidOptions, caps.Mode)
}

// ApplyProfile swaps the star and crystal populations for the constrained
// sizes. It runs at most once per scene; a full profile is a no-op that
// still counts as the one run.
func (s *Scene) ApplyProfile(p DeviceProfile) error {
	if s.profileApplied {
		return ErrProfileApplied
	}
	s.profileApplied = true
	s.Profile = p
	if p != ProfileConstrained {
		log.Printf("Device profile %s: keeping %d crystals, %d stars", p, len(s.Crystals), len(s.Stars))
		return nil
	}

	stars := s.removeAll(KindStar)
	s.addStars(s.opts.Constrained.Stars)

	crystals := s.removeAll(KindCrystal)
	s.addCrystals(s.opts.Constrained.Crystals, s.opts.Constrained.Spread)

	log.Printf("Device profile %s: replaced %d stars with %d, %d crystals with %d",
		p, stars, len(s.Stars), crystals, len(s.Crystals))
	return nil
}
