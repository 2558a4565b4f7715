package main

import (
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/smasonuk/backdrop3d/config"
	"github.com/smasonuk/backdrop3d/render"
	"github.com/smasonuk/backdrop3d/scene"
	"github.com/smasonuk/backdrop3d/termview"
)

type flags struct {
	configPath string
	profile    string
	userAgent  string
	seed       int64
	showFPS    bool
	width      int
	height     int
	termFPS    int
	logFile    string
}

func newRootCmd() *cobra.Command {
	f := &flags{}

	cmd := &cobra.Command{
		Use:   "backdrop",
		Short: "Animated 3D background",
		Long: `backdrop - animated 3D background

Opens a window showing a rotating wireframe torus, floating crystals,
a pulsing platform and a starfield lit by three orbiting lights.
The pointer steers the camera. Esc quits.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, closeLog, err := f.load(cmd)
			defer closeLog()
			if err != nil {
				return err
			}
			ctx, _, err := newContext(cfg, cfg.Window.Width, cfg.Window.Height)
			if err != nil {
				return err
			}
			return render.Run(ctx, render.Options{
				Title:   cfg.Window.Title,
				Width:   cfg.Window.Width,
				Height:  cfg.Window.Height,
				ShowFPS: cfg.Render.ShowFPS,
			})
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&f.configPath, "config", "c", config.DefaultPath, "Path to the YAML config file")
	pf.StringVar(&f.profile, "profile", "", "Device profile: auto, full or constrained")
	pf.StringVar(&f.userAgent, "user-agent", "", "Device identifier used by the auto profile")
	pf.Int64Var(&f.seed, "seed", 0, "Random seed (0 seeds from the clock)")
	pf.IntVar(&f.width, "width", 0, "Viewport width")
	pf.IntVar(&f.height, "height", 0, "Viewport height")
	pf.StringVar(&f.logFile, "log-file", "", "Append log output to this file")
	cmd.Flags().BoolVar(&f.showFPS, "fps", false, "Show the FPS overlay")

	termCmd := &cobra.Command{
		Use:   "term",
		Short: "Animate the scene in the terminal",
		Long:  "Draw the scene with half-block characters. The mouse steers the camera; Esc, q or Ctrl-C quits.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if f.logFile == "" {
				log.SetOutput(io.Discard)
			}
			cfg, closeLog, err := f.load(cmd)
			defer closeLog()
			if err != nil {
				return err
			}
			// the terminal host resizes the viewport once it knows the screen
			ctx, _, err := newContext(cfg, 80, 48)
			if err != nil {
				return err
			}
			return termview.Run(ctx, f.termFPS)
		},
	}
	termCmd.Flags().IntVar(&f.termFPS, "tick", 30, "Frames per second")
	cmd.AddCommand(termCmd)

	infoCmd := &cobra.Command{
		Use:   "info",
		Short: "Print the resolved profile and population",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, closeLog, err := f.load(cmd)
			defer closeLog()
			if err != nil {
				return err
			}
			return runInfo(cmd.OutOrStdout(), cfg)
		},
	}
	cmd.AddCommand(infoCmd)

	initCmd := &cobra.Command{
		Use:   "init-config",
		Short: "Write the default config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(f.configPath); err == nil {
				return fmt.Errorf("%s already exists", f.configPath)
			}
			if err := config.Save(f.configPath, config.Default()); err != nil {
				return fmt.Errorf("writing %s: %w", f.configPath, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", f.configPath)
			return nil
		},
	}
	cmd.AddCommand(initCmd)

	return cmd
}

// load reads the config file and applies any flags the user set. The
// returned func restores the log output and closes the log file; it is
// never nil.
func (f *flags) load(cmd *cobra.Command) (config.Config, func(), error) {
	closeLog := func() {}
	if f.logFile != "" {
		out, err := os.OpenFile(f.logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return config.Config{}, closeLog, fmt.Errorf("opening log file: %w", err)
		}
		log.SetOutput(out)
		closeLog = func() {
			log.SetOutput(os.Stderr)
			if err := out.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "closing log file: %v\n", err)
			}
		}
	}

	cfg, err := config.Load(f.configPath)
	if err != nil {
		return cfg, closeLog, err
	}

	changed := cmd.Flags().Changed
	if changed("profile") {
		cfg.Profile.Mode = f.profile
	}
	if changed("user-agent") {
		cfg.Profile.UserAgent = f.userAgent
	}
	if changed("seed") {
		cfg.Seed = f.seed
	}
	if changed("width") {
		cfg.Window.Width = f.width
	}
	if changed("height") {
		cfg.Window.Height = f.height
	}
	if changed("fps") {
		cfg.Render.ShowFPS = f.showFPS
	}
	return cfg, closeLog, cfg.Validate()
}

// newContext builds the scene, applies the device profile once and wraps
// both in an animation context.
func newContext(cfg config.Config, width, height int) (*scene.Context, scene.DeviceProfile, error) {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	profile, err := scene.ResolveProfile(cfg.Capabilities())
	if err != nil {
		return nil, profile, err
	}

	s, err := scene.Build(cfg.SceneOptions(), rand.New(rand.NewSource(seed)), width, height)
	if err != nil {
		return nil, profile, fmt.Errorf("building scene: %w", err)
	}
	if err := s.ApplyProfile(profile); err != nil {
		return nil, profile, err
	}

	ctx, err := scene.NewContext(s, scene.NewViewport(s.Camera, nil, width, height))
	return ctx, profile, err
}

func runInfo(w io.Writer, cfg config.Config) error {
	ctx, profile, err := newContext(cfg, cfg.Window.Width, cfg.Window.Height)
	if err != nil {
		return err
	}
	s := ctx.Scene

	faces := 0
	for _, m := range s.World.Objects() {
		faces += m.FaceCount()
	}

	fmt.Fprintf(w, "Profile:    %s\n", profile)
	fmt.Fprintf(w, "Viewport:   %dx%d\n", cfg.Window.Width, cfg.Window.Height)
	fmt.Fprintln(w)
	for _, kind := range []scene.Kind{scene.KindTorus, scene.KindCrystal, scene.KindPlatform, scene.KindStar} {
		name := kind.String()
		fmt.Fprintf(w, "%-11s %d\n", strings.ToUpper(name[:1])+name[1:]+":", len(s.Objects(kind)))
	}
	fmt.Fprintf(w, "Lights:     1 ambient, 1 spot, %d point\n", len(s.PointLights))
	fmt.Fprintf(w, "Objects:    %d\n", s.World.ObjectCount())
	fmt.Fprintf(w, "Faces:      %d\n", faces)
	fmt.Fprintf(w, "Fog:        %t\n", s.World.Fog != nil)
	return nil
}
