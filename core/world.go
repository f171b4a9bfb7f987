package core

// SimulationState holds the parameters the control panel edits.
// It is only written by commands during the frame drain.
type SimulationState struct {
	Paused                bool
	GlobalSpeedMultiplier float64
}

// Tooltip is the hover label that names the body under the pointer
type Tooltip struct {
	Visible          bool
	Text             string
	ScreenX, ScreenY float64
}

// TooltipOffset is the pixel offset of the tooltip from the pointer
const TooltipOffset = 10

// Surface is a drawing surface that follows the viewport size
type Surface interface {
	SetSize(width, height int)
}

// FrameReport summarises one call to World.Frame
type FrameReport struct {
	Frame    uint64
	Advanced bool   // Bodies moved this frame
	Picked   string // Name of the hovered body, empty if none
	Applied  int    // Commands drained
	Errors   []error
}

// World ties the scene, camera and interaction state together.
// All methods run on the frame loop's goroutine.
type World struct {
	Scene   *Scene
	Camera  *Camera
	Sim     SimulationState
	Pointer PointerState
	Tooltip Tooltip

	width, height int
	queue         *CommandQueue
	surfaces      []Surface
	frame         uint64
}

// NewWorld creates a world for a width x height viewport
func NewWorld(scene *Scene, camera *Camera, queue *CommandQueue, width, height int) *World {
	if queue == nil {
		queue = NewCommandQueue()
	}
	return &World{
		Scene:  scene,
		Camera: camera,
		Sim:    SimulationState{GlobalSpeedMultiplier: DefaultSpeedFactor},
		queue:  queue,
		width:  width,
		height: height,
	}
}

// Queue returns the world's command queue
func (w *World) Queue() *CommandQueue { return w.queue }

// Size returns the current viewport size
func (w *World) Size() (int, int) { return w.width, w.height }

// AddSurface registers a surface to be resized with the viewport
func (w *World) AddSurface(s Surface) {
	w.surfaces = append(w.surfaces, s)
}

// Frame runs one animation step: drain commands, advance bodies unless paused,
// pick under the pointer and blink the stars. The caller draws afterwards
// regardless of the paused state.
func (w *World) Frame(nowMs float64) FrameReport {
	w.frame++
	rep := FrameReport{Frame: w.frame}

	for _, cmd := range w.queue.Drain() {
		rep.Applied++
		if err := cmd.Apply(w); err != nil {
			rep.Errors = append(rep.Errors, err)
		}
	}

	rep.Advanced = Step(w.Sim, w.Scene)

	if hit, ok := Pick(RayFromCamera(w.Camera, w.Pointer), w.Scene.Bodies); ok {
		w.Tooltip.Visible = true
		w.Tooltip.Text = hit.Body.Name
		rep.Picked = hit.Body.Name
	} else {
		w.Tooltip.Visible = false
	}

	w.Scene.Stars.Blink(nowMs)
	return rep
}

// Step advances the sun and every body by one frame. It does nothing when paused
// and reports whether anything moved.
func Step(sim SimulationState, s *Scene) bool {
	if sim.Paused {
		return false
	}
	s.Sun.Spin += SunSpinStep
	for _, b := range s.Bodies {
		b.Angle += b.AngularSpeed * sim.GlobalSpeedMultiplier
		b.updatePosition()
		b.Spin += b.SpinRate
	}
	return true
}

// MovePointer records a pointer-move event in window pixels.
// The tooltip follows the pointer immediately; picking waits for the next frame.
func (w *World) MovePointer(px, py float64) {
	w.Pointer = PointerFromWindow(px, py, w.width, w.height)
	w.Tooltip.ScreenX = px + TooltipOffset
	w.Tooltip.ScreenY = py + TooltipOffset
}

// Resize updates the camera aspect and every registered surface.
// Zero-sized events (minimised windows) are ignored.
func (w *World) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	w.width, w.height = width, height
	w.Camera.SetAspect(width, height)
	for _, s := range w.surfaces {
		s.SetSize(width, height)
	}
}
