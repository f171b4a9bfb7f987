package overlay

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"solarsystem/core"
)

const (
	labelScale   = 1.0
	tooltipScale = 1.0
	tooltipPad   = 4
)

var (
	labelColor      = mgl32.Vec4{1, 1, 1, 1}
	tooltipColor    = mgl32.Vec4{1, 1, 1, 1}
	tooltipBoxColor = mgl32.Vec4{0, 0, 0, 0.7}
)

// Placement is a label's on-screen text position (top-left corner)
type Placement struct {
	Text string
	X, Y float32
}

// PlaceLabels projects each label's anchor and centres its text on it.
// Labels behind the camera are skipped.
func PlaceLabels(labels []core.Label, cam *core.Camera, atlas *Atlas, width, height int) []Placement {
	out := make([]Placement, 0, len(labels))
	for _, l := range labels {
		x, y, ok := cam.Project(l.Position, width, height)
		if !ok {
			continue
		}
		out = append(out, Placement{
			Text: l.Text,
			X:    x - atlas.Width(l.Text, labelScale)/2,
			Y:    y - float32(atlas.Height)*labelScale/2,
		})
	}
	return out
}

// LabelOverlay is the second render pass: static labels and the hover tooltip
type LabelOverlay struct {
	text  *TextRenderer
	rects *RectShader

	width, height int
}

// NewLabelOverlay creates the label pass for a width x height viewport
func NewLabelOverlay(width, height int) (*LabelOverlay, error) {
	text, err := NewTextRenderer(width, height)
	if err != nil {
		return nil, err
	}
	rects, err := NewRectShader(width, height)
	if err != nil {
		text.Release()
		return nil, err
	}
	return &LabelOverlay{text: text, rects: rects, width: width, height: height}, nil
}

// SetSize resizes the overlay surface
func (lo *LabelOverlay) SetSize(width, height int) {
	lo.width, lo.height = width, height
	lo.text.SetSize(width, height)
	lo.rects.SetSize(width, height)
}

// Text exposes the text renderer for other overlays sharing the atlas
func (lo *LabelOverlay) Text() *TextRenderer { return lo.text }

// Rects exposes the rectangle shader for other overlays
func (lo *LabelOverlay) Rects() *RectShader { return lo.rects }

// Render draws labels and, if visible, the tooltip
func (lo *LabelOverlay) Render(w *core.World) {
	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	for _, p := range PlaceLabels(w.Scene.Labels, w.Camera, lo.text.Atlas(), lo.width, lo.height) {
		lo.text.Draw(p.X, p.Y, p.Text, labelScale, labelColor)
	}

	if t := w.Tooltip; t.Visible {
		x, y := float32(t.ScreenX), float32(t.ScreenY)
		atlas := lo.text.Atlas()
		lo.rects.Draw(x, y,
			atlas.Width(t.Text, tooltipScale)+2*tooltipPad,
			float32(atlas.Height)*tooltipScale+2*tooltipPad,
			tooltipBoxColor)
		lo.text.Draw(x+tooltipPad, y+tooltipPad, t.Text, tooltipScale, tooltipColor)
	}

	gl.Disable(gl.BLEND)
	gl.Enable(gl.DEPTH_TEST)
}

// Release cleans up resources
func (lo *LabelOverlay) Release() {
	lo.text.Release()
	lo.rects.Release()
}
