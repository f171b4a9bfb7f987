package core

import (
	"math"
	"testing"

	"golang.org/x/exp/rand"
)

func TestBuildSceneLayout(t *testing.T) {
	scene, err := BuildScene(SceneOptions{ViewportWidth: testWidth, StarCount: DefaultStarCount}, rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatalf("BuildScene: %v", err)
	}

	radii := []float64{25, 35, 48, 60, 75, 90, 105, 120}
	if len(scene.Bodies) != len(radii) {
		t.Fatalf("bodies = %d, want %d", len(scene.Bodies), len(radii))
	}
	if len(scene.Orbits) != 8 || len(scene.Labels) != 8 {
		t.Fatalf("orbits = %d, labels = %d, want 8 each", len(scene.Orbits), len(scene.Labels))
	}

	for i, b := range scene.Bodies {
		if b.OrbitRadius != radii[i] {
			t.Errorf("%s orbit = %v, want %v", b.Name, b.OrbitRadius, radii[i])
		}
		if b.Angle < 0 || b.Angle >= 2*math.Pi {
			t.Errorf("%s initial angle %v outside [0, 2π)", b.Name, b.Angle)
		}

		orbit := scene.Orbits[i]
		if len(orbit.Points) != OrbitSegments+1 {
			t.Errorf("%s orbit has %d points", b.Name, len(orbit.Points))
		}
		if !orbit.Points[0].ApproxEqualThreshold(orbit.Points[OrbitSegments], 1e-3) {
			t.Errorf("%s orbit loop not closed", b.Name)
		}
		for _, p := range orbit.Points {
			if math.Abs(float64(p.Len())-radii[i]) > 1e-3 || p.Y() != 0 {
				t.Errorf("%s orbit point %v off circle", b.Name, p)
				break
			}
		}

		label := scene.Labels[i]
		angle := float64(i) / 8 * 2 * math.Pi
		if label.Text != b.Name {
			t.Errorf("label %d text = %q, want %q", i, label.Text, b.Name)
		}
		if math.Abs(float64(label.Position.X())-radii[i]*math.Cos(angle)) > 1e-3 ||
			math.Abs(float64(label.Position.Z())-radii[i]*math.Sin(angle)) > 1e-3 {
			t.Errorf("label %s at %v, want angle %v on radius %v", b.Name, label.Position, angle, radii[i])
		}
	}

	if scene.Stars.Count() != DefaultStarCount {
		t.Errorf("stars = %d", scene.Stars.Count())
	}
}

func TestLabelsDoNotTrackBodies(t *testing.T) {
	w := newTestWorld(t, 9)
	before := append([]Label(nil), w.Scene.Labels...)
	for i := 0; i < 50; i++ {
		w.Frame(float64(i))
	}
	for i, l := range w.Scene.Labels {
		if l != before[i] {
			t.Errorf("label %s moved: %v -> %v", l.Text, before[i].Position, l.Position)
		}
	}
}

func TestResponsiveScaling(t *testing.T) {
	tests := []struct {
		name  string
		width int
		scale float64
	}{
		{"wide", 1024, 1},
		{"boundary", NarrowViewport, 1},
		{"narrow", 480, narrowScale},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			scene, err := BuildScene(SceneOptions{ViewportWidth: tc.width}, rand.New(rand.NewSource(1)))
			if err != nil {
				t.Fatal(err)
			}
			for i, spec := range Planets {
				b := scene.Bodies[i]
				if math.Abs(b.OrbitRadius-spec.Orbit*tc.scale) > 1e-9 || math.Abs(b.Size-spec.Size*tc.scale) > 1e-9 {
					t.Errorf("%s: orbit %v size %v, want scale %v", b.Name, b.OrbitRadius, b.Size, tc.scale)
				}
			}
			saturn, _ := scene.Body("Saturn")
			if saturn.Ring == nil {
				t.Fatal("saturn has no ring")
			}
			if math.Abs(saturn.Ring.Inner-(7*tc.scale+1.5)) > 1e-9 || math.Abs(saturn.Ring.Outer-(7*tc.scale+4)) > 1e-9 {
				t.Errorf("saturn ring = %+v", saturn.Ring)
			}
		})
	}
}

func TestBuildSceneRejectsBadTables(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	dup := []BodySpec{{Name: "A", Orbit: 1, Size: 1}, {Name: "A", Orbit: 2, Size: 1}}
	if _, err := BuildScene(SceneOptions{Bodies: dup}, rng); err == nil {
		t.Error("duplicate names accepted")
	}
	zero := []BodySpec{{Name: "A", Orbit: 0, Size: 1}}
	if _, err := BuildScene(SceneOptions{Bodies: zero}, rng); err == nil {
		t.Error("zero orbit accepted")
	}
}

func TestSceneTextures(t *testing.T) {
	scene, err := BuildScene(SceneOptions{ViewportWidth: testWidth}, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatal(err)
	}
	tex := scene.Textures()
	// background, sun, eight planets, two rings
	if len(tex) != 12 {
		t.Fatalf("textures = %v", tex)
	}
	if tex[0] != BackgroundTexture || tex[1] != SunTexture {
		t.Errorf("unexpected leading textures %v", tex[:2])
	}
}

func TestStarBlink(t *testing.T) {
	sf := NewStarField(50, DefaultStarSpread, rand.New(rand.NewSource(3)))
	for i := 0; i < sf.Count(); i++ {
		for k := 0; k < 3; k++ {
			v := sf.Positions[i*3+k]
			if v < -1000 || v > 1000 {
				t.Fatalf("star %d outside cube: %v", i, v)
			}
		}
		if sf.Sizes[i] < 0.5 || sf.Sizes[i] >= 2 {
			t.Errorf("star %d size %v", i, sf.Sizes[i])
		}
	}

	const now = 12345.0
	sf.Blink(now)
	for i, a := range sf.Alpha {
		want := 0.5 + 0.5*math.Sin(now*0.002+float64(i))
		if math.Abs(float64(a)-want) > 1e-6 {
			t.Errorf("star %d alpha = %v, want %v", i, a, want)
		}
	}
	if sf.Alpha[0] == sf.Alpha[1] {
		t.Error("neighbouring stars share a phase")
	}
}
