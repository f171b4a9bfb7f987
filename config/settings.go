package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"

	"github.com/BurntSushi/toml"
)

// Settings holds every tunable of the viewer
type Settings struct {
	Window     WindowSettings     `toml:"window"`
	Camera     CameraSettings     `toml:"camera"`
	Simulation SimulationSettings `toml:"simulation"`
	Assets     AssetSettings      `toml:"assets"`
	Panel      PanelSettings      `toml:"panel"`
}

type WindowSettings struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
	VSync  bool   `toml:"vsync"`
}

// CameraSettings sets the camera clip planes and zoom bounds. They replace the
// built-in values; the eye position and field of view still follow the viewport width.
type CameraSettings struct {
	Near        float32 `toml:"near"`
	Far         float32 `toml:"far"`
	ZoomStep    float32 `toml:"zoomStep"`
	MinDistance float32 `toml:"minDistance"`
	MaxDistance float32 `toml:"maxDistance"`
}

type SimulationSettings struct {
	Seed       uint64  `toml:"seed"` // 0 picks a time-based seed
	StarCount  int     `toml:"starCount"`
	StarSpread float64 `toml:"starSpread"`
}

type AssetSettings struct {
	Dir string `toml:"dir"`
}

type PanelSettings struct {
	Enabled bool   `toml:"enabled"`
	Addr    string `toml:"addr"`
}

// Default returns the built-in settings
func Default() Settings {
	return Settings{
		Window: WindowSettings{
			Width:  1280,
			Height: 720,
			Title:  "Solar System",
			VSync:  true,
		},
		Camera: CameraSettings{
			Near:        0.1,
			Far:         1000,
			ZoomStep:    10,
			MinDistance: 50,
			MaxDistance: 500,
		},
		Simulation: SimulationSettings{
			StarCount:  1000,
			StarSpread: 2000,
		},
		Assets: AssetSettings{
			Dir: "assets",
		},
		Panel: PanelSettings{
			Enabled: true,
			Addr:    "127.0.0.1:8080",
		},
	}
}

// Load reads settings from a TOML file over the defaults.
// A missing file is not an error.
func Load(path string) (Settings, error) {
	s := Default()
	if path == "" {
		return s, nil
	}

	md, err := toml.DecodeFile(path, &s)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Printf("config: no %s found, using defaults", path)
			return Default(), nil
		}
		return Default(), fmt.Errorf("error parsing %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		log.Printf("config: ignoring unknown keys %v", undecoded)
	}

	if err := s.Validate(); err != nil {
		return Default(), fmt.Errorf("%s: %w", path, err)
	}
	log.Printf("config: loaded %s (%dx%d, %d stars)", path, s.Window.Width, s.Window.Height, s.Simulation.StarCount)
	return s, nil
}

// Validate rejects settings the viewer cannot run with
func (s Settings) Validate() error {
	if s.Window.Width <= 0 || s.Window.Height <= 0 {
		return fmt.Errorf("window size %dx%d must be positive", s.Window.Width, s.Window.Height)
	}
	if s.Camera.Near <= 0 || s.Camera.Far <= s.Camera.Near {
		return fmt.Errorf("camera planes near=%v far=%v invalid", s.Camera.Near, s.Camera.Far)
	}
	if s.Camera.MinDistance <= 0 || s.Camera.MaxDistance < s.Camera.MinDistance {
		return fmt.Errorf("zoom bounds [%v, %v] invalid", s.Camera.MinDistance, s.Camera.MaxDistance)
	}
	if s.Camera.ZoomStep <= 0 {
		return fmt.Errorf("zoom step %v must be positive", s.Camera.ZoomStep)
	}
	if s.Simulation.StarCount < 0 {
		return fmt.Errorf("star count %d must not be negative", s.Simulation.StarCount)
	}
	return nil
}
