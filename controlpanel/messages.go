package controlpanel

import (
	"fmt"

	"solarsystem/core"
)

// Message is one widget action sent by the panel page
type Message struct {
	Op    string  `json:"op"`
	Body  string  `json:"body,omitempty"`
	Value float64 `json:"value,omitempty"`
}

// Widget ops
const (
	OpSpeed      = "speed"
	OpMultiplier = "multiplier"
	OpPause      = "pause"
	OpZoomIn     = "zoom_in"
	OpZoomOut    = "zoom_out"
)

// Reply is sent back to a client whose message was rejected
type Reply struct {
	Error string `json:"error"`
}

// BodySpeed is one body's slider value
type BodySpeed struct {
	Name  string  `json:"name"`
	Speed float64 `json:"speed"`
}

// Snapshot is the panel-visible simulation state
type Snapshot struct {
	Bodies     []BodySpeed `json:"bodies"`
	Multiplier float64     `json:"multiplier"`
	Paused     bool        `json:"paused"`
	Distance   float32     `json:"distance"`
	MaxSpeed   float64     `json:"maxSpeed"`
	MaxFactor  float64     `json:"maxMultiplier"`
}

// SnapshotOf captures the world's panel state. Call from the frame loop.
func SnapshotOf(w *core.World) Snapshot {
	s := Snapshot{
		Multiplier: w.Sim.GlobalSpeedMultiplier,
		Paused:     w.Sim.Paused,
		Distance:   w.Camera.Distance(),
		MaxSpeed:   core.MaxBodySpeed,
		MaxFactor:  core.MaxSpeedMultiplier,
	}
	for _, b := range w.Scene.Bodies {
		s.Bodies = append(s.Bodies, BodySpeed{Name: b.Name, Speed: b.AngularSpeed})
	}
	return s
}

// Equal reports whether two snapshots show the same state
func (s Snapshot) Equal(o Snapshot) bool {
	if s.Multiplier != o.Multiplier || s.Paused != o.Paused || s.Distance != o.Distance || len(s.Bodies) != len(o.Bodies) {
		return false
	}
	for i := range s.Bodies {
		if s.Bodies[i] != o.Bodies[i] {
			return false
		}
	}
	return true
}

// ToCommand maps a widget message to a queued command. Body names are
// checked against known so typos are reported to the sender; values are
// clamped to the slider ranges when the command is applied.
func (m Message) ToCommand(known map[string]bool) (core.Command, error) {
	switch m.Op {
	case OpSpeed:
		if !known[m.Body] {
			return nil, fmt.Errorf("unknown body %q", m.Body)
		}
		return core.SetBodySpeed{Name: m.Body, Value: m.Value}, nil
	case OpMultiplier:
		return core.SetGlobalSpeed{Value: m.Value}, nil
	case OpPause:
		return core.TogglePause{}, nil
	case OpZoomIn:
		return core.ZoomIn, nil
	case OpZoomOut:
		return core.ZoomOut, nil
	}
	return nil, fmt.Errorf("unknown op %q", m.Op)
}
