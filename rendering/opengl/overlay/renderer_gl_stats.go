package overlay

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Stats is what the stats overlay shows
type Stats struct {
	FPS           float64
	Paused        bool
	Multiplier    float64
	Distance      float32
	AssetsPending int
	AssetsFailed  int
}

// Lines formats the stats for display
func (s Stats) Lines() []string {
	state := "running"
	if s.Paused {
		state = "PAUSED"
	}
	lines := []string{
		fmt.Sprintf("FPS: %.1f", s.FPS),
		fmt.Sprintf("Speed: %.2fx (%s)", s.Multiplier, state),
		fmt.Sprintf("Dist: %.0f", s.Distance),
	}
	if s.AssetsPending > 0 {
		lines = append(lines, fmt.Sprintf("Loading %d textures", s.AssetsPending))
	}
	if s.AssetsFailed > 0 {
		lines = append(lines, fmt.Sprintf("%d textures missing", s.AssetsFailed))
	}
	return lines
}

const statsLineHeight = 16

// StatsOverlay renders performance stats in the top-left corner
type StatsOverlay struct {
	text  *TextRenderer
	rects *RectShader
	stats Stats
}

// NewStatsOverlay shares the label overlay's text and rectangle shaders
func NewStatsOverlay(labels *LabelOverlay) *StatsOverlay {
	return &StatsOverlay{text: labels.Text(), rects: labels.Rects()}
}

// UpdateStats updates the stats to display
func (so *StatsOverlay) UpdateStats(s Stats) {
	so.stats = s
}

// Render draws the stats box
func (so *StatsOverlay) Render() {
	lines := so.stats.Lines()

	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	boxX, boxY := float32(10), float32(10)
	var boxW float32
	for _, l := range lines {
		if w := so.text.Atlas().Width(l, 1); w > boxW {
			boxW = w
		}
	}
	so.rects.Draw(boxX, boxY, boxW+20, float32(len(lines)*statsLineHeight)+12, mgl32.Vec4{0, 0, 0, 0.5})

	y := boxY + 6
	for _, l := range lines {
		so.text.Draw(boxX+10, y, l, 1, mgl32.Vec4{0.6, 1.0, 0.6, 1.0})
		y += statsLineHeight
	}

	gl.Disable(gl.BLEND)
	gl.Enable(gl.DEPTH_TEST)
}
