package core

import (
	"math"

	"golang.org/x/exp/rand"
)

// Star field defaults
const (
	DefaultStarCount  = 1000
	DefaultStarSpread = 2000.0
	blinkRate         = 0.002 // Per millisecond
)

// StarField is a cloud of point stars sharing one additive material.
// Alpha holds the per-star opacity for the current frame.
type StarField struct {
	Positions []float32 // xyz triples
	Sizes     []float32
	Base      []float32 // Initial opacity, used before the first blink
	Alpha     []float32
}

// NewStarField scatters count stars uniformly in a cube of side spread centred on the origin
func NewStarField(count int, spread float64, rng *rand.Rand) *StarField {
	sf := &StarField{
		Positions: make([]float32, 0, count*3),
		Sizes:     make([]float32, 0, count),
		Base:      make([]float32, 0, count),
		Alpha:     make([]float32, count),
	}
	for i := 0; i < count; i++ {
		x := (rng.Float64() - 0.5) * spread
		y := (rng.Float64() - 0.5) * spread
		z := (rng.Float64() - 0.5) * spread
		sf.Positions = append(sf.Positions, float32(x), float32(y), float32(z))
		sf.Sizes = append(sf.Sizes, float32(rng.Float64()*1.5+0.5))
		sf.Base = append(sf.Base, float32(rng.Float64()))
	}
	copy(sf.Alpha, sf.Base)
	return sf
}

// Count returns the number of stars
func (sf *StarField) Count() int {
	return len(sf.Sizes)
}

// Blink recomputes every star's opacity for the given time in milliseconds.
// Star i pulses as 0.5 + 0.5·sin(t·0.002 + i), so neighbours are out of phase.
func (sf *StarField) Blink(nowMs float64) {
	phase := nowMs * blinkRate
	for i := range sf.Alpha {
		sf.Alpha[i] = float32(BlinkOpacity(phase, i))
	}
}

// BlinkOpacity is the pulsation curve for star i at the given phase
func BlinkOpacity(phase float64, i int) float64 {
	return 0.5 + 0.5*math.Sin(phase+float64(i))
}
