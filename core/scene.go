package core

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/exp/rand"
)

// NarrowViewport is the width (pixels) below which the scene is shrunk
const NarrowViewport = 600

// narrowScale shrinks sizes and orbits on narrow viewports
const narrowScale = 0.6

// Asset names outside the planet table
const (
	BackgroundTexture = "star.jpg"
	SunTexture        = "sunmap.jpg"
)

// IsNarrow reports whether a viewport width triggers responsive scaling
func IsNarrow(width int) bool {
	return width < NarrowViewport
}

// SceneOptions controls one-time scene construction
type SceneOptions struct {
	ViewportWidth int
	StarCount     int
	StarSpread    float64
	Bodies        []BodySpec // Defaults to Planets
}

// Scene is the full set of visual objects. Only body state changes after setup.
type Scene struct {
	Sun    *Sun
	Bodies []*Body
	Orbits []OrbitPath
	Labels []Label
	Stars  *StarField

	byName map[string]*Body
}

// BuildScene constructs the scene graph from the body table
func BuildScene(opts SceneOptions, rng *rand.Rand) (*Scene, error) {
	specs := opts.Bodies
	if specs == nil {
		specs = Planets
	}
	if opts.StarCount < 0 {
		return nil, fmt.Errorf("negative star count %d", opts.StarCount)
	}
	spread := opts.StarSpread
	if spread <= 0 {
		spread = DefaultStarSpread
	}

	scale := 1.0
	if IsNarrow(opts.ViewportWidth) {
		scale = narrowScale
	}

	s := &Scene{
		Sun:    &Sun{Radius: SunRadius, Texture: SunTexture},
		byName: make(map[string]*Body, len(specs)),
		Stars:  NewStarField(opts.StarCount, spread, rng),
	}

	for _, spec := range specs {
		if _, dup := s.byName[spec.Name]; dup {
			return nil, fmt.Errorf("duplicate body %q", spec.Name)
		}
		if spec.Orbit <= 0 {
			return nil, fmt.Errorf("body %q: orbit radius must be positive", spec.Name)
		}
		col, err := colorful.Hex(spec.Color)
		if err != nil {
			col = colorful.Color{R: 0.5, G: 0.5, B: 0.5}
		}

		b := &Body{
			Name:         spec.Name,
			OrbitRadius:  spec.Orbit * scale,
			AngularSpeed: spec.Speed,
			Angle:        rng.Float64() * 2 * math.Pi,
			SpinRate:     spec.SpinRate,
			Size:         spec.Size * scale,
			AxialTilt:    spec.AxialTilt,
			Texture:      spec.Texture,
			Color:        col,
		}
		if rs, ok := Rings[spec.Name]; ok {
			b.Ring = &Ring{Inner: b.Size + rs.InnerPad, Outer: b.Size + rs.OuterPad, Texture: rs.Texture}
		}
		b.updatePosition()

		s.Bodies = append(s.Bodies, b)
		s.byName[b.Name] = b
	}

	for i, b := range s.Bodies {
		s.Orbits = append(s.Orbits, OrbitPath{Body: b.Name, Points: OrbitPathPoints(b.OrbitRadius, OrbitSegments)})
		s.Labels = append(s.Labels, Label{Text: b.Name, Position: LabelPosition(i, len(s.Bodies), b.OrbitRadius)})
	}

	return s, nil
}

// LabelPosition spaces labels evenly around the full circle: label i of n sits at
// angle (i/n)·2π on its own orbit radius
func LabelPosition(i, n int, radius float64) mgl32.Vec3 {
	angle := float64(i) / float64(n) * 2 * math.Pi
	return mgl32.Vec3{float32(radius * math.Cos(angle)), 0, float32(radius * math.Sin(angle))}
}

// Body looks up a body by name
func (s *Scene) Body(name string) (*Body, bool) {
	b, ok := s.byName[name]
	return b, ok
}

// Textures lists every texture the scene references, background first
func (s *Scene) Textures() []string {
	out := []string{BackgroundTexture, s.Sun.Texture}
	for _, b := range s.Bodies {
		out = append(out, b.Texture)
		if b.Ring != nil {
			out = append(out, b.Ring.Texture)
		}
	}
	return out
}
