package opengl

import "solarsystem/rendering/opengl/overlay"

// UpdateStats updates the stats overlay contents
func (r *Renderer) UpdateStats(s overlay.Stats) {
	r.statsOverlay.UpdateStats(s)
}

// renderOverlays draws the screen-space pass: labels, tooltip, then stats
func (r *Renderer) renderOverlays() {
	r.labels.Render(r.world)
	if r.showStats {
		r.statsOverlay.Render()
	}
}
