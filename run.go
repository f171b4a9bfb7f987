package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/exp/rand"

	"solarsystem/assets"
	"solarsystem/config"
	"solarsystem/controlpanel"
	"solarsystem/core"
	"solarsystem/rendering/opengl"
	"solarsystem/rendering/opengl/overlay"
)

// cameraConfig merges the settings into the viewport-dependent camera defaults
func cameraConfig(s config.Settings) core.CameraConfig {
	cfg := core.DefaultCameraConfig(s.Window.Width)
	cfg.Near = s.Camera.Near
	cfg.Far = s.Camera.Far
	cfg.ZoomStep = s.Camera.ZoomStep
	cfg.MinDistance = s.Camera.MinDistance
	cfg.MaxDistance = s.Camera.MaxDistance
	return cfg
}

// newWorld builds the scene, camera and command queue
func newWorld(s config.Settings) (*core.World, uint64, error) {
	seed := s.Simulation.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewSource(seed))

	scene, err := core.BuildScene(core.SceneOptions{
		ViewportWidth: s.Window.Width,
		StarCount:     s.Simulation.StarCount,
		StarSpread:    s.Simulation.StarSpread,
	}, rng)
	if err != nil {
		return nil, seed, fmt.Errorf("failed to build scene: %w", err)
	}

	cam := core.NewCamera(cameraConfig(s), s.Window.Width, s.Window.Height)
	return core.NewWorld(scene, cam, core.NewCommandQueue(), s.Window.Width, s.Window.Height), seed, nil
}

func bodyNames(scene *core.Scene) []string {
	names := make([]string, 0, len(scene.Bodies))
	for _, b := range scene.Bodies {
		names = append(names, b.Name)
	}
	return names
}

func run(ctx context.Context, s config.Settings) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	world, seed, err := newWorld(s)
	if err != nil {
		return err
	}
	log.Printf("scene: %d bodies, %d stars, seed %d", len(world.Scene.Bodies), world.Scene.Stars.Count(), seed)

	renderer, err := opengl.NewRenderer(opengl.WindowOptions{
		Width:  s.Window.Width,
		Height: s.Window.Height,
		Title:  s.Window.Title,
		VSync:  s.Window.VSync,
	}, world)
	if err != nil {
		return err
	}
	defer renderer.Terminate()

	loader := assets.NewLoader(s.Assets.Dir)
	defer loader.Close()
	loader.Load(world.Scene.Textures()...)

	var panel *controlpanel.Server
	if s.Panel.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		panel = controlpanel.New(world.Queue(), bodyNames(world.Scene), reg, reg)
		if _, err := panel.Start(ctx, s.Panel.Addr); err != nil {
			log.Printf("controlpanel: disabled: %v", err)
			panel = nil
		}
	}

	var (
		frames      int
		fps         float64
		lastFPSTime = time.Now()
		counts      = loader.Counts()
	)

	for !renderer.ShouldClose() {
		renderer.PollEvents()
		if ctx.Err() != nil {
			renderer.Close()
		}

		if settled := loader.Poll(); len(settled) > 0 {
			renderer.UploadTextures(settled)
			counts = loader.Counts()
			if panel != nil {
				panel.Metrics().SetAssets(counts)
			}
			if loader.AllSettled() {
				log.Printf("assets: %d ready, %d failed", counts[assets.Ready], counts[assets.Failed])
			}
		}

		rep := world.Frame(renderer.Now())
		for _, err := range rep.Errors {
			log.Printf("command rejected: %v", err)
		}
		if panel != nil {
			panel.Metrics().ObserveFrame(rep, world.Sim.Paused)
			panel.Publish(controlpanel.SnapshotOf(world))
		}

		renderer.UpdateStats(overlay.Stats{
			FPS:           fps,
			Paused:        world.Sim.Paused,
			Multiplier:    world.Sim.GlobalSpeedMultiplier,
			Distance:      world.Camera.Distance(),
			AssetsPending: counts[assets.Pending],
			AssetsFailed:  counts[assets.Failed],
		})
		renderer.Render()
		renderer.SwapBuffers()

		frames++
		if elapsed := time.Since(lastFPSTime).Seconds(); elapsed >= 1.0 {
			fps = float64(frames) / elapsed
			if panel != nil {
				panel.Metrics().SetFPS(fps)
			}
			frames = 0
			lastFPSTime = time.Now()
		}
	}

	log.Println("shutting down")
	return nil
}
