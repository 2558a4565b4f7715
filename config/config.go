package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/smasonuk/backdrop3d/scene"
)

// DefaultPath is where the CLI looks for a config file, relative to the
// process working directory.
const DefaultPath = "backdrop.yaml"

// ErrInvalid wraps every problem found in a config file.
var ErrInvalid = errors.New("config: invalid configuration")

type Window struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// Profile picks the population. Mode is auto, full or constrained.
type Profile struct {
	Mode      string `yaml:"mode"`
	UserAgent string `yaml:"user_agent,omitempty"`
}

type Population struct {
	Crystals int     `yaml:"crystals"`
	Stars    int     `yaml:"stars"`
	Spread   float64 `yaml:"spread"`
}

type Populations struct {
	Full        Population `yaml:"full"`
	Constrained Population `yaml:"constrained"`
}

type TorusSegments struct {
	Radial  int `yaml:"radial"`
	Tubular int `yaml:"tubular"`
}

type Render struct {
	ShowFPS       bool          `yaml:"show_fps"`
	Fog           bool          `yaml:"fog"`
	StarSegments  int           `yaml:"star_segments"`
	TorusSegments TorusSegments `yaml:"torus_segments"`
}

// Config is the on-disk configuration. Seed 0 means seed from the clock.
type Config struct {
	Window     Window      `yaml:"window"`
	Profile    Profile     `yaml:"profile"`
	Population Populations `yaml:"population"`
	Render     Render      `yaml:"render"`
	Seed       int64       `yaml:"seed"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	opts := scene.DefaultOptions()
	return Config{
		Window: Window{
			Width:  1280,
			Height: 720,
			Title:  "backdrop",
		},
		Profile: Profile{Mode: "auto"},
		Population: Populations{
			Full:        fromPopulation(opts.Full),
			Constrained: fromPopulation(opts.Constrained),
		},
		Render: Render{
			ShowFPS:      false,
			Fog:          opts.Fog,
			StarSegments: opts.StarSegments,
			TorusSegments: TorusSegments{
				Radial:  opts.TorusRadialSegments,
				Tubular: opts.TorusTubularSegments,
			},
		},
	}
}

func fromPopulation(p scene.Population) Population {
	return Population{Crystals: p.Crystals, Stars: p.Stars, Spread: p.Spread}
}

func (p Population) toScene() scene.Population {
	return scene.Population{Crystals: p.Crystals, Stars: p.Stars, Spread: p.Spread}
}

// Load reads the config at path on top of Default. A missing file is not an
// error; a file that cannot be read or parsed, or that fails Validate, is.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("reading %s: %w", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Default(), fmt.Errorf("%w: %s: %v", ErrInvalid, path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path, creating the parent directory if needed.
func Save(path string, cfg Config) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate reports the first problem in c, wrapped in ErrInvalid.
func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	}
	switch strings.ToLower(c.Profile.Mode) {
	case "", "auto", "full", "constrained":
	default:
		return fmt.Errorf("%w: profile mode %q is not auto, full or constrained", ErrInvalid, c.Profile.Mode)
	}
	if err := c.SceneOptions().Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// SceneOptions converts the population and render settings for scene.Build.
func (c Config) SceneOptions() scene.Options {
	opts := scene.DefaultOptions()
	opts.Full = c.Population.Full.toScene()
	opts.Constrained = c.Population.Constrained.toScene()
	opts.Fog = c.Render.Fog
	opts.StarSegments = c.Render.StarSegments
	opts.TorusRadialSegments = c.Render.TorusSegments.Radial
	opts.TorusTubularSegments = c.Render.TorusSegments.Tubular
	return opts
}

// Capabilities is the injected device description for the profile selector.
func (c Config) Capabilities() scene.Capabilities {
	return scene.Capabilities{UserAgent: c.Profile.UserAgent, Mode: c.Profile.Mode}
}
