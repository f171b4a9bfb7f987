package main

import (
	"log"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"solarsystem/config"
)

func init() {
	// GLFW and the GL context must stay on the main OS thread
	runtime.LockOSThread()
}

type flags struct {
	configPath string
	width      int
	height     int
	assetDir   string
	panelAddr  string
	noPanel    bool
	seed       uint64
}

func newRootCmd() *cobra.Command {
	var f flags
	cmd := &cobra.Command{
		Use:   "solarsystem",
		Short: "Animated 3D model of the solar system",
		Long: `Opens a window showing the sun and eight planets on their orbits.

Controls:
  Mouse drag   Rotate the view
  Scroll, +/-  Zoom in/out
  P, Space     Pause/resume
  F1           Toggle stats
  ESC          Exit

Planet speeds can be edited from the control panel page (default
http://127.0.0.1:8080).`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := config.Load(f.configPath)
			if err != nil {
				return err
			}
			settings = applyFlags(settings, f, cmd.Flags().Changed)
			if err := settings.Validate(); err != nil {
				return err
			}
			return run(cmd.Context(), settings)
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&f.configPath, "config", "settings.toml", "settings file")
	fl.IntVar(&f.width, "width", 0, "window width")
	fl.IntVar(&f.height, "height", 0, "window height")
	fl.StringVar(&f.assetDir, "assets", "", "texture directory")
	fl.StringVar(&f.panelAddr, "panel", "", "control panel listen address")
	fl.BoolVar(&f.noPanel, "no-panel", false, "disable the control panel")
	fl.Uint64Var(&f.seed, "seed", 0, "random seed for star field and start angles (0 = time based)")
	return cmd
}

// applyFlags overrides settings with the flags set on the command line
func applyFlags(s config.Settings, f flags, changed func(string) bool) config.Settings {
	if changed("width") {
		s.Window.Width = f.width
	}
	if changed("height") {
		s.Window.Height = f.height
	}
	if changed("assets") {
		s.Assets.Dir = f.assetDir
	}
	if changed("panel") {
		s.Panel.Addr = f.panelAddr
		s.Panel.Enabled = true
	}
	if f.noPanel {
		s.Panel.Enabled = false
	}
	if changed("seed") {
		s.Simulation.Seed = f.seed
	}
	return s
}

func main() {
	log.SetFlags(log.Ltime | log.Lmicroseconds)
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
