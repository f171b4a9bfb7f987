package core

import (
	"math"
	"sync"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestDefaultCameraConfig(t *testing.T) {
	wide := NewCamera(DefaultCameraConfig(1280), 1280, 720)
	want := mgl32.Vec3{0, 80, 220}
	for i, got := range wide.Position() {
		if math.Abs(float64(got-want[i])) > 1e-3 {
			t.Errorf("wide position = %v, want %v", wide.Position(), want)
			break
		}
	}
	narrow := DefaultCameraConfig(480)
	if narrow.FOV != 90 || narrow.Position != (mgl32.Vec3{0, 60, 180}) {
		t.Errorf("narrow config = %+v", narrow)
	}
}

func TestStartDistanceClamped(t *testing.T) {
	tests := []struct {
		name     string
		min, max float32
		want     float32
	}{
		{"raised to minimum", 300, 500, 300},
		{"lowered to maximum", 50, 100, 100},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultCameraConfig(1280)
			cfg.MinDistance, cfg.MaxDistance = tc.min, tc.max
			cam := NewCamera(cfg, 1280, 720)
			if math.Abs(float64(cam.Distance()-tc.want)) > 1e-3 {
				t.Fatalf("start distance = %v, want %v", cam.Distance(), tc.want)
			}
			if math.Abs(float64(cam.Position().Len()-tc.want)) > 1e-2 {
				t.Errorf("eye at %v, distance %v", cam.Position(), cam.Position().Len())
			}

			// Zooming in never moves the eye further out
			before := cam.Distance()
			cam.Zoom(1)
			if cam.Distance() > before {
				t.Errorf("zoom in moved from %v to %v", before, cam.Distance())
			}
		})
	}
}

func TestZoomBounds(t *testing.T) {
	cam := NewCamera(DefaultCameraConfig(1280), 1280, 720)
	start := cam.Distance()
	want := float32(math.Sqrt(80*80 + 220*220))
	if math.Abs(float64(start-want)) > 1e-3 {
		t.Fatalf("start distance = %v, want %v", start, want)
	}

	cam.Zoom(1)
	if math.Abs(float64(cam.Distance()-(want-10))) > 1e-3 {
		t.Errorf("after zoom in distance = %v", cam.Distance())
	}

	for i := 0; i < 100; i++ {
		cam.Zoom(1)
	}
	if cam.Distance() != 50 {
		t.Errorf("zoomed past minimum: %v", cam.Distance())
	}
	// Eye stays on the same side of the scene
	if cam.Position().Z() <= 0 {
		t.Errorf("camera passed through the scene: %v", cam.Position())
	}

	for i := 0; i < 100; i++ {
		cam.Zoom(-1)
	}
	if cam.Distance() != 500 {
		t.Errorf("zoomed past maximum: %v", cam.Distance())
	}
}

func TestZoomCommands(t *testing.T) {
	w := newTestWorld(t, 11)
	d := w.Camera.Distance()
	w.Queue().Push(ZoomIn)
	w.Queue().Push(ZoomIn)
	w.Queue().Push(ZoomOut)
	w.Frame(0)
	if math.Abs(float64(w.Camera.Distance()-(d-10))) > 1e-3 {
		t.Errorf("distance = %v, want %v", w.Camera.Distance(), d-10)
	}
}

func TestRotateClampsPitch(t *testing.T) {
	cam := NewCamera(DefaultCameraConfig(1280), 1280, 720)
	d := cam.Distance()
	cam.Rotate(0.3, 10)
	if math.Abs(float64(cam.Position().Len()-d)) > 1e-2 {
		t.Errorf("rotation changed distance: %v -> %v", d, cam.Position().Len())
	}
	wantY := d * float32(math.Sin(1.5))
	if math.Abs(float64(cam.Position().Y()-wantY)) > 1e-2 {
		t.Errorf("pitch not clamped: y = %v, want %v", cam.Position().Y(), wantY)
	}
}

func TestProject(t *testing.T) {
	cam := NewCamera(DefaultCameraConfig(1280), 1280, 720)
	x, y, ok := cam.Project(mgl32.Vec3{0, 0, 0}, 1280, 720)
	if !ok {
		t.Fatal("origin not visible")
	}
	if math.Abs(float64(x-640)) > 0.01 || math.Abs(float64(y-360)) > 0.01 {
		t.Errorf("origin projected to (%v, %v), want centre", x, y)
	}
	if _, _, ok := cam.Project(mgl32.Vec3{0, 160, 440}, 1280, 720); ok {
		t.Error("point behind the camera reported visible")
	}
}

func TestCommandQueue(t *testing.T) {
	q := NewCommandQueue()
	if q.Drain() != nil {
		t.Fatal("empty queue returned commands")
	}

	q.Push(SetGlobalSpeed{Value: 2})
	q.Push(SetGlobalSpeed{Value: 3})
	got := q.Drain()
	if len(got) != 2 || got[0] != (SetGlobalSpeed{Value: 2}) || got[1] != (SetGlobalSpeed{Value: 3}) {
		t.Fatalf("drain = %v", got)
	}
	if q.Len() != 0 {
		t.Error("drain left commands behind")
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				q.Push(TogglePause{})
			}
		}()
	}
	wg.Wait()
	if n := len(q.Drain()); n != 800 {
		t.Errorf("drained %d, want 800", n)
	}
}

func TestCommandClamps(t *testing.T) {
	tests := []struct {
		name      string
		cmd       Command
		wantSpeed float64
		wantMult  float64
	}{
		{"speed in range", SetBodySpeed{Name: "Earth", Value: 0.03}, 0.03, 1},
		{"speed above range", SetBodySpeed{Name: "Earth", Value: 1}, MaxBodySpeed, 1},
		{"speed below range", SetBodySpeed{Name: "Earth", Value: -1}, 0, 1},
		{"multiplier above range", SetGlobalSpeed{Value: 9}, 0.01, MaxSpeedMultiplier},
		{"multiplier below range", SetGlobalSpeed{Value: -2}, 0.01, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := newTestWorld(t, 12)
			if err := tc.cmd.Apply(w); err != nil {
				t.Fatal(err)
			}
			earth, _ := w.Scene.Body("Earth")
			if earth.AngularSpeed != tc.wantSpeed {
				t.Errorf("speed = %v, want %v", earth.AngularSpeed, tc.wantSpeed)
			}
			if w.Sim.GlobalSpeedMultiplier != tc.wantMult {
				t.Errorf("multiplier = %v, want %v", w.Sim.GlobalSpeedMultiplier, tc.wantMult)
			}
		})
	}
}
