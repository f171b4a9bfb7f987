package core

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/exp/rand"
)

const (
	testWidth  = 1280
	testHeight = 720
)

func newTestWorld(t *testing.T, seed uint64) *World {
	t.Helper()
	scene, err := BuildScene(SceneOptions{ViewportWidth: testWidth, StarCount: 10}, rand.New(rand.NewSource(seed)))
	if err != nil {
		t.Fatalf("BuildScene: %v", err)
	}
	cam := NewCamera(DefaultCameraConfig(testWidth), testWidth, testHeight)
	return NewWorld(scene, cam, nil, testWidth, testHeight)
}

func angles(w *World) []float64 {
	out := make([]float64, len(w.Scene.Bodies))
	for i, b := range w.Scene.Bodies {
		out[i] = b.Angle
	}
	return out
}

func positions(w *World) []mgl32.Vec3 {
	out := make([]mgl32.Vec3, len(w.Scene.Bodies))
	for i, b := range w.Scene.Bodies {
		out[i] = b.Position
	}
	return out
}

func TestFrameAdvancesAngles(t *testing.T) {
	w := newTestWorld(t, 1)
	start := angles(w)

	const frames = 120
	for i := 0; i < frames; i++ {
		rep := w.Frame(float64(i) * 16)
		if !rep.Advanced {
			t.Fatalf("frame %d did not advance", i)
		}
	}

	for i, b := range w.Scene.Bodies {
		want := start[i] + frames*b.AngularSpeed
		if math.Abs(b.Angle-want) > 1e-9 {
			t.Errorf("%s: angle = %v, want %v", b.Name, b.Angle, want)
		}
		wantX := b.OrbitRadius * math.Cos(want)
		wantZ := b.OrbitRadius * math.Sin(want)
		if math.Abs(float64(b.Position.X())-wantX) > 1e-3 || math.Abs(float64(b.Position.Z())-wantZ) > 1e-3 || b.Position.Y() != 0 {
			t.Errorf("%s: position = %v, want (%v, 0, %v)", b.Name, b.Position, wantX, wantZ)
		}
	}
	if got, want := w.Scene.Sun.Spin, frames*SunSpinStep; math.Abs(got-want) > 1e-9 {
		t.Errorf("sun spin = %v, want %v", got, want)
	}
}

func TestPauseFreezesBodies(t *testing.T) {
	w := newTestWorld(t, 2)
	w.Frame(0)

	w.Queue().Push(TogglePause{})
	rep := w.Frame(16)
	if rep.Advanced {
		t.Fatal("pause command drained in the same frame should stop the step")
	}
	frozen := positions(w)
	spin := w.Scene.Sun.Spin

	for i := 0; i < 30; i++ {
		w.Frame(float64(32 + i*16))
	}
	for i, p := range positions(w) {
		if p != frozen[i] {
			t.Errorf("%s moved while paused: %v -> %v", w.Scene.Bodies[i].Name, frozen[i], p)
		}
	}
	if w.Scene.Sun.Spin != spin {
		t.Errorf("sun rotated while paused")
	}

	w.Queue().Push(TogglePause{})
	if rep := w.Frame(1000); !rep.Advanced {
		t.Fatal("resume did not advance")
	}
	if positions(w)[0] == frozen[0] {
		t.Error("bodies still frozen after resume")
	}
}

func TestMultiplierScalesLinearly(t *testing.T) {
	tests := []struct {
		name       string
		multiplier float64
	}{
		{"stopped", 0},
		{"half", 0.5},
		{"double", 2},
		{"max", 5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := newTestWorld(t, 3)
			start := angles(w)
			w.Queue().Push(SetGlobalSpeed{Value: tc.multiplier})
			w.Frame(0)
			for i, b := range w.Scene.Bodies {
				delta := b.Angle - start[i]
				want := b.AngularSpeed * tc.multiplier
				if math.Abs(delta-want) > 1e-12 {
					t.Errorf("%s: delta = %v, want %v", b.Name, delta, want)
				}
			}
		})
	}
}

func TestStepPaused(t *testing.T) {
	w := newTestWorld(t, 4)
	before := angles(w)
	if Step(SimulationState{Paused: true, GlobalSpeedMultiplier: 1}, w.Scene) {
		t.Fatal("Step reported progress while paused")
	}
	for i, a := range angles(w) {
		if a != before[i] {
			t.Errorf("angle %d changed while paused", i)
		}
	}
}

func TestFramePicksUnderPointer(t *testing.T) {
	w := newTestWorld(t, 5)
	// Earth nearest the camera, everything else on the far side
	for _, b := range w.Scene.Bodies {
		b.Angle = -math.Pi / 2
		b.updatePosition()
	}
	earth, _ := w.Scene.Body("Earth")
	earth.Angle = math.Pi / 2
	earth.updatePosition()

	w.Queue().Push(TogglePause{})
	w.Frame(0)

	px, py, ok := w.Camera.Project(earth.Position, testWidth, testHeight)
	if !ok {
		t.Fatal("earth is behind the camera")
	}
	w.MovePointer(float64(px), float64(py))
	if w.Tooltip.ScreenX != float64(px)+TooltipOffset || w.Tooltip.ScreenY != float64(py)+TooltipOffset {
		t.Errorf("tooltip at (%v, %v), want pointer + %d", w.Tooltip.ScreenX, w.Tooltip.ScreenY, TooltipOffset)
	}

	// Picking still runs while paused
	rep := w.Frame(16)
	if rep.Picked != "Earth" || !w.Tooltip.Visible || w.Tooltip.Text != "Earth" {
		t.Fatalf("picked %q (tooltip %+v), want Earth", rep.Picked, w.Tooltip)
	}

	// Top-left corner looks up into empty space
	w.MovePointer(0, 0)
	rep = w.Frame(32)
	if rep.Picked != "" || w.Tooltip.Visible {
		t.Errorf("picked %q in empty space", rep.Picked)
	}
}

func TestFrameCollectsCommandErrors(t *testing.T) {
	w := newTestWorld(t, 6)
	w.Queue().Push(SetBodySpeed{Name: "Pluto", Value: 0.01})
	w.Queue().Push(SetBodySpeed{Name: "Mars", Value: 0.02})

	rep := w.Frame(0)
	if rep.Applied != 2 {
		t.Errorf("applied %d commands, want 2", rep.Applied)
	}
	if len(rep.Errors) != 1 {
		t.Fatalf("errors = %v, want one", rep.Errors)
	}
	mars, _ := w.Scene.Body("Mars")
	if mars.AngularSpeed != 0.02 {
		t.Errorf("mars speed = %v, want 0.02", mars.AngularSpeed)
	}
}

type fakeSurface struct {
	w, h  int
	calls int
}

func (f *fakeSurface) SetSize(w, h int) {
	f.w, f.h = w, h
	f.calls++
}

func TestResize(t *testing.T) {
	w := newTestWorld(t, 7)
	primary, labels := &fakeSurface{}, &fakeSurface{}
	w.AddSurface(primary)
	w.AddSurface(labels)

	w.Resize(800, 400)
	if got := w.Camera.Aspect(); got != 2 {
		t.Errorf("aspect = %v, want 2", got)
	}
	want := mgl32.Perspective(mgl32.DegToRad(75), 2, 0.1, 1000)
	if !w.Camera.Projection().ApproxEqual(want) {
		t.Errorf("projection not recomputed")
	}
	for _, s := range []*fakeSurface{primary, labels} {
		if s.w != 800 || s.h != 400 {
			t.Errorf("surface size = %dx%d, want 800x400", s.w, s.h)
		}
	}

	// Every event is applied, no debouncing
	w.Resize(801, 400)
	w.Resize(802, 400)
	if primary.calls != 3 || labels.calls != 3 {
		t.Errorf("calls = %d/%d, want 3", primary.calls, labels.calls)
	}

	w.Resize(802, 0)
	if primary.calls != 3 {
		t.Error("zero-height resize should be ignored")
	}
	if gw, gh := w.Size(); gw != 802 || gh != 400 {
		t.Errorf("size = %dx%d", gw, gh)
	}
}

func TestPointerFromWindow(t *testing.T) {
	tests := []struct {
		name   string
		px, py float64
		want   PointerState
	}{
		{"top-left", 0, 0, PointerState{-1, 1}},
		{"centre", 640, 360, PointerState{0, 0}},
		{"bottom-right", 1280, 720, PointerState{1, -1}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := PointerFromWindow(tc.px, tc.py, testWidth, testHeight)
			if got != tc.want {
				t.Errorf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}
