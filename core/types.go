package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// SunRadius is the visual radius of the sun mesh
const SunRadius = 10

// SunSpinStep is the sun's self rotation per unpaused frame (radians)
const SunSpinStep = 0.004

// BodySpec is one row of the fixed planet configuration table
type BodySpec struct {
	Name      string
	Size      float64 // Visual radius
	Orbit     float64 // Orbit radius
	Speed     float64 // Radians per frame
	SpinRate  float64 // Self rotation per frame (radians)
	AxialTilt float64 // Radians, applied about Z
	Texture   string
	Color     string // Hex fallback while the texture is missing
}

// RingSpec describes a textured annulus attached to a body
type RingSpec struct {
	InnerPad float64 // Added to body size for the inner radius
	OuterPad float64 // Added to body size for the outer radius
	Texture  string
}

// Planets is the configured planet table, innermost first
var Planets = []BodySpec{
	{Name: "Mercury", Size: 3, Orbit: 25, Speed: 0.02, SpinRate: 0.004, AxialTilt: 0, Texture: "mercurymap.jpg", Color: "#b5b5b5"},
	{Name: "Venus", Size: 4, Orbit: 35, Speed: 0.015, SpinRate: -0.001, AxialTilt: 3.1, Texture: "venusmap.jpg", Color: "#e8cda2"},
	{Name: "Earth", Size: 5, Orbit: 48, Speed: 0.01, SpinRate: 0.02, AxialTilt: 0.41, Texture: "earthmap.jpg", Color: "#2e86ab"},
	{Name: "Mars", Size: 4.5, Orbit: 60, Speed: 0.008, SpinRate: 0.018, AxialTilt: 0.44, Texture: "marsmap.jpg", Color: "#c1440e"},
	{Name: "Jupiter", Size: 8, Orbit: 75, Speed: 0.006, SpinRate: 0.04, AxialTilt: 0.05, Texture: "jupitermap.jpg", Color: "#c88b3a"},
	{Name: "Saturn", Size: 7, Orbit: 90, Speed: 0.005, SpinRate: 0.03, AxialTilt: 0.46, Texture: "saturnmap.jpg", Color: "#e3c07b"},
	{Name: "Uranus", Size: 6, Orbit: 105, Speed: 0.004, SpinRate: -0.025, AxialTilt: 0.46, Texture: "uranusmap.jpg", Color: "#9fd8e0"},
	{Name: "Neptune", Size: 6, Orbit: 120, Speed: 0.003, SpinRate: 0.028, AxialTilt: 0.49, Texture: "neptunemap.jpg", Color: "#3f54ba"},
}

// Rings maps body names to their ring, if any
var Rings = map[string]RingSpec{
	"Saturn": {InnerPad: 1.5, OuterPad: 4, Texture: "saturnring.png"},
	"Uranus": {InnerPad: 1, OuterPad: 2.5, Texture: "uranusring.png"},
}

// Ring is a body's annulus. It is a child of the body: it follows the body's
// position, spin and tilt, and is laid flat by a -π/2 rotation about X.
type Ring struct {
	Inner, Outer float64
	Texture      string
}

// Body is one orbiting planet and its simulation state
type Body struct {
	Name         string
	OrbitRadius  float64
	AngularSpeed float64
	Angle        float64
	SpinRate     float64
	Spin         float64
	Size         float64
	AxialTilt    float64
	Texture      string
	Color        colorful.Color
	Ring         *Ring
	Position     mgl32.Vec3
}

// updatePosition places the body on its orbit circle at the current angle
func (b *Body) updatePosition() {
	b.Position = mgl32.Vec3{
		float32(b.OrbitRadius * math.Cos(b.Angle)),
		0,
		float32(b.OrbitRadius * math.Sin(b.Angle)),
	}
}

// Model returns the body's world transform: translate, tilt about Z, then spin about Y
func (b *Body) Model() mgl32.Mat4 {
	return mgl32.Translate3D(b.Position.X(), b.Position.Y(), b.Position.Z()).
		Mul4(mgl32.HomogRotate3DZ(float32(b.AxialTilt))).
		Mul4(mgl32.HomogRotate3DY(float32(b.Spin))).
		Mul4(mgl32.Scale3D(float32(b.Size), float32(b.Size), float32(b.Size)))
}

// RingModel returns the ring's world transform (parent transform without the size scale)
func (b *Body) RingModel() mgl32.Mat4 {
	return mgl32.Translate3D(b.Position.X(), b.Position.Y(), b.Position.Z()).
		Mul4(mgl32.HomogRotate3DZ(float32(b.AxialTilt))).
		Mul4(mgl32.HomogRotate3DY(float32(b.Spin))).
		Mul4(mgl32.HomogRotate3DX(-math.Pi / 2))
}

// Sun is the central, self-rotating body. It is never picked.
type Sun struct {
	Radius  float64
	Spin    float64
	Texture string
}

// Model returns the sun's world transform
func (s *Sun) Model() mgl32.Mat4 {
	r := float32(s.Radius)
	return mgl32.HomogRotate3DY(float32(s.Spin)).Mul4(mgl32.Scale3D(r, r, r))
}

// Label is a static text annotation anchored at a fixed world position
type Label struct {
	Text     string
	Position mgl32.Vec3
}

// OrbitPath is a closed line loop tracing one body's orbit
type OrbitPath struct {
	Body   string
	Points []mgl32.Vec3
}
