package opengl

import (
	"math"

	"github.com/go-gl/glfw/v3.3/glfw"

	"solarsystem/core"
)

// rotateSensitivity is radians of camera orbit per dragged pixel
const rotateSensitivity = 0.008

// inputState tracks the drag gesture between cursor events and the
// scroll offset not yet turned into zoom steps
type inputState struct {
	dragging bool
	lastX    float64
	lastY    float64
	scroll   float64
}

// DragRotation converts a cursor delta in pixels into a camera rotation command
func DragRotation(dx, dy float64) core.Rotate {
	return core.Rotate{
		Yaw:   float32(dx) * rotateSensitivity,
		Pitch: float32(dy) * rotateSensitivity,
	}
}

// scrollZoom adds a scroll offset and returns the whole zoom steps it
// completes. Fractional trackpad offsets carry over to later events.
func (in *inputState) scrollZoom(yoff float64) (core.Zoom, bool) {
	in.scroll += yoff
	whole := math.Trunc(in.scroll)
	if whole == 0 {
		return core.Zoom{}, false
	}
	in.scroll -= whole
	return core.Zoom{Steps: int(whole)}, true
}

// KeyCommand maps a pressed key to a simulation command
func KeyCommand(key glfw.Key) (core.Command, bool) {
	switch key {
	case glfw.KeyP, glfw.KeySpace:
		return core.TogglePause{}, true
	case glfw.KeyEqual, glfw.KeyKPAdd:
		return core.ZoomIn, true
	case glfw.KeyMinus, glfw.KeyKPSubtract:
		return core.ZoomOut, true
	}
	return nil, false
}

func (r *Renderer) onKey(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
	if action != glfw.Press && action != glfw.Repeat {
		return
	}
	switch key {
	case glfw.KeyEscape:
		r.Close()
		return
	case glfw.KeyF1:
		if action == glfw.Press {
			r.showStats = !r.showStats
		}
		return
	}
	if cmd, ok := KeyCommand(key); ok {
		r.world.Queue().Push(cmd)
	}
}

func (r *Renderer) onScroll(_ *glfw.Window, _, yoff float64) {
	if cmd, ok := r.input.scrollZoom(yoff); ok {
		r.world.Queue().Push(cmd)
	}
}

func (r *Renderer) onMouseButton(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
	if button != glfw.MouseButtonLeft {
		return
	}
	switch action {
	case glfw.Press:
		r.input.dragging = true
		r.input.lastX, r.input.lastY = r.window.GetCursorPos()
	case glfw.Release:
		r.input.dragging = false
	}
}

// onCursorPos feeds the pointer to picking and, while dragging, orbits the camera
func (r *Renderer) onCursorPos(_ *glfw.Window, xpos, ypos float64) {
	r.world.MovePointer(xpos, ypos)

	if !r.input.dragging {
		return
	}
	dx, dy := xpos-r.input.lastX, ypos-r.input.lastY
	r.input.lastX, r.input.lastY = xpos, ypos
	if dx != 0 || dy != 0 {
		r.world.Queue().Push(DragRotation(dx, dy))
	}
}

func (r *Renderer) onFramebufferSize(_ *glfw.Window, width, height int) {
	r.setViewport(width, height)
}
