package core

import (
	"fmt"
	"sync"
)

// Control ranges exposed by the control panel
const (
	MaxBodySpeed       = 0.05
	MaxSpeedMultiplier = 5.0
	DefaultSpeedFactor = 1.0
)

// Command is a deferred mutation of the world, applied during the frame drain
type Command interface {
	Apply(w *World) error
}

// SetBodySpeed sets one body's angular speed, clamped to [0, MaxBodySpeed]
type SetBodySpeed struct {
	Name  string
	Value float64
}

func (c SetBodySpeed) Apply(w *World) error {
	b, ok := w.Scene.Body(c.Name)
	if !ok {
		return fmt.Errorf("unknown body %q", c.Name)
	}
	b.AngularSpeed = clamp64(c.Value, 0, MaxBodySpeed)
	return nil
}

// SetGlobalSpeed sets the global speed multiplier, clamped to [0, MaxSpeedMultiplier]
type SetGlobalSpeed struct {
	Value float64
}

func (c SetGlobalSpeed) Apply(w *World) error {
	w.Sim.GlobalSpeedMultiplier = clamp64(c.Value, 0, MaxSpeedMultiplier)
	return nil
}

// TogglePause flips the paused flag
type TogglePause struct{}

func (TogglePause) Apply(w *World) error {
	w.Sim.Paused = !w.Sim.Paused
	return nil
}

// Zoom moves the camera Steps zoom increments closer (negative moves away)
type Zoom struct {
	Steps int
}

func (c Zoom) Apply(w *World) error {
	w.Camera.Zoom(c.Steps)
	return nil
}

// ZoomIn and ZoomOut are the panel's two stepped zoom actions
var (
	ZoomIn  = Zoom{Steps: 1}
	ZoomOut = Zoom{Steps: -1}
)

// Rotate orbits the camera around the origin
type Rotate struct {
	Yaw, Pitch float32
}

func (c Rotate) Apply(w *World) error {
	w.Camera.Rotate(c.Yaw, c.Pitch)
	return nil
}

// CommandQueue is a FIFO of pending commands.
// Push is safe from any goroutine; Drain is called by the frame loop only.
type CommandQueue struct {
	mu      sync.Mutex
	pending []Command
}

func NewCommandQueue() *CommandQueue {
	return &CommandQueue{}
}

// Push appends a command
func (q *CommandQueue) Push(cmd Command) {
	q.mu.Lock()
	q.pending = append(q.pending, cmd)
	q.mu.Unlock()
}

// Drain removes and returns all pending commands in arrival order
func (q *CommandQueue) Drain() []Command {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.pending) == 0 {
		return nil
	}
	out := q.pending
	q.pending = nil
	return out
}

// Len returns the number of pending commands
func (q *CommandQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

func clamp64(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
