package overlay

import (
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"solarsystem/core"
)

func TestAtlas(t *testing.T) {
	a := NewAtlas()
	if a.Advance != 7 || a.Height != 13 {
		t.Fatalf("cell = %dx%d, want 7x13", a.Advance, a.Height)
	}
	if got, want := a.Image.Bounds().Dx(), 95*7; got != want {
		t.Errorf("atlas width = %d, want %d", got, want)
	}

	// 'A' has ink, ' ' has none
	cell := func(r rune) int {
		x0 := int(r-firstGlyph) * a.Advance
		ink := 0
		for y := 0; y < a.Height; y++ {
			for x := x0; x < x0+a.Advance; x++ {
				if a.Image.AlphaAt(x, y).A > 0 {
					ink++
				}
			}
		}
		return ink
	}
	if cell('A') == 0 {
		t.Error("glyph A is blank")
	}
	if cell(' ') != 0 {
		t.Error("space has ink")
	}
}

func TestLayout(t *testing.T) {
	a := NewAtlas()
	tests := []struct {
		name  string
		text  string
		quads int
	}{
		{"word", "Earth", 5},
		{"space skipped", "a b", 2},
		{"non-ascii falls back", "Ürn", 3},
		{"empty", "", 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			verts := a.Layout(10, 20, tc.text, 1)
			if got := len(verts) / 24; got != tc.quads {
				t.Errorf("quads = %d, want %d", got, tc.quads)
			}
		})
	}

	verts := a.Layout(10, 20, "ab", 2)
	// Second glyph starts one scaled advance to the right
	if verts[0] != 10 || verts[1] != 20 || verts[24] != 10+14 {
		t.Errorf("unexpected placement %v", verts[:2])
	}
	if a.Width("ab", 2) != 28 {
		t.Errorf("width = %v", a.Width("ab", 2))
	}
}

func TestPlaceLabels(t *testing.T) {
	cam := core.NewCamera(core.DefaultCameraConfig(1280), 1280, 720)
	a := NewAtlas()
	labels := []core.Label{
		{Text: "Sun", Position: mgl32.Vec3{0, 0, 0}},
		{Text: "Behind", Position: mgl32.Vec3{0, 160, 440}},
	}

	got := PlaceLabels(labels, cam, a, 1280, 720)
	if len(got) != 1 {
		t.Fatalf("placements = %+v, want only the visible label", got)
	}
	p := got[0]
	wantX := float32(640) - a.Width("Sun", 1)/2
	wantY := float32(360) - float32(a.Height)/2
	if abs(p.X-wantX) > 0.01 || abs(p.Y-wantY) > 0.01 {
		t.Errorf("placement = (%v, %v), want (%v, %v)", p.X, p.Y, wantX, wantY)
	}
}

func TestStatsLines(t *testing.T) {
	lines := Stats{FPS: 59.94, Paused: true, Multiplier: 2, Distance: 234, AssetsPending: 3}.Lines()
	joined := strings.Join(lines, "\n")
	for _, want := range []string{"FPS: 59.9", "2.00x (PAUSED)", "Dist: 234", "Loading 3 textures"} {
		if !strings.Contains(joined, want) {
			t.Errorf("missing %q in %q", want, joined)
		}
	}
	if strings.Contains(joined, "missing") {
		t.Error("reported missing textures with none failed")
	}
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
