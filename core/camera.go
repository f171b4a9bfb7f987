package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// CameraConfig holds the projection and zoom parameters of the orbit camera
type CameraConfig struct {
	Position    mgl32.Vec3 // Initial eye position; always looks at the origin
	FOV         float32    // Vertical field of view in degrees
	Near, Far   float32
	ZoomStep    float32
	MinDistance float32
	MaxDistance float32
}

// DefaultCameraConfig returns the camera setup for a viewport of the given width.
// Narrow viewports get a closer, wider-angle camera.
func DefaultCameraConfig(width int) CameraConfig {
	cfg := CameraConfig{
		Position:    mgl32.Vec3{0, 80, 220},
		FOV:         75,
		Near:        0.1,
		Far:         1000,
		ZoomStep:    10,
		MinDistance: 50,
		MaxDistance: 500,
	}
	if IsNarrow(width) {
		cfg.Position = mgl32.Vec3{0, 60, 180}
		cfg.FOV = 90
	}
	return cfg
}

// Camera is a perspective camera orbiting the origin.
// Its eye is stored in spherical form (distance, yaw, pitch) like the drag controls use it.
type Camera struct {
	cfg      CameraConfig
	aspect   float32
	distance float32
	yaw      float32 // Rotation around Y, measured from +X towards +Z
	pitch    float32 // Elevation above the XZ plane

	position mgl32.Vec3
	view     mgl32.Mat4
	proj     mgl32.Mat4
}

// NewCamera creates a camera for a width x height viewport
func NewCamera(cfg CameraConfig, width, height int) *Camera {
	p := cfg.Position
	dist := p.Len()
	if cfg.MaxDistance > 0 && cfg.MaxDistance >= cfg.MinDistance {
		dist = clamp32(dist, cfg.MinDistance, cfg.MaxDistance)
	}
	c := &Camera{
		cfg:      cfg,
		aspect:   aspectOf(width, height),
		distance: dist,
		yaw:      float32(math.Atan2(float64(p.Z()), float64(p.X()))),
	}
	if dist > 0 {
		c.pitch = float32(math.Asin(float64(p.Y() / dist)))
	}
	c.updateMatrices()
	return c
}

func aspectOf(width, height int) float32 {
	if height <= 0 {
		return 1
	}
	return float32(width) / float32(height)
}

// updateMatrices recomputes the eye position, view and projection matrices
func (c *Camera) updateMatrices() {
	cp := float32(math.Cos(float64(c.pitch)))
	c.position = mgl32.Vec3{
		c.distance * cp * float32(math.Cos(float64(c.yaw))),
		c.distance * float32(math.Sin(float64(c.pitch))),
		c.distance * cp * float32(math.Sin(float64(c.yaw))),
	}
	c.view = mgl32.LookAtV(c.position, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 1, 0})
	c.proj = mgl32.Perspective(mgl32.DegToRad(c.cfg.FOV), c.aspect, c.cfg.Near, c.cfg.Far)
}

// SetAspect updates the aspect ratio and reapplies the projection
func (c *Camera) SetAspect(width, height int) {
	c.aspect = aspectOf(width, height)
	c.updateMatrices()
}

// Zoom moves the eye along its view direction by steps*ZoomStep.
// Positive steps move closer. Distance is clamped to [MinDistance, MaxDistance].
func (c *Camera) Zoom(steps int) {
	d := c.distance - float32(steps)*c.cfg.ZoomStep
	c.distance = clamp32(d, c.cfg.MinDistance, c.cfg.MaxDistance)
	c.updateMatrices()
}

// Rotate orbits the eye around the origin. Pitch stays within ±1.5 rad.
func (c *Camera) Rotate(dYaw, dPitch float32) {
	c.yaw += dYaw
	c.pitch = clamp32(c.pitch+dPitch, -1.5, 1.5)
	c.updateMatrices()
}

func (c *Camera) Position() mgl32.Vec3   { return c.position }
func (c *Camera) View() mgl32.Mat4       { return c.view }
func (c *Camera) Projection() mgl32.Mat4 { return c.proj }
func (c *Camera) Aspect() float32        { return c.aspect }
func (c *Camera) Distance() float32      { return c.distance }

// ViewProjection returns projection * view
func (c *Camera) ViewProjection() mgl32.Mat4 {
	return c.proj.Mul4(c.view)
}

// Project maps a world position to window pixels (origin top-left).
// ok is false when the point is behind the camera.
func (c *Camera) Project(p mgl32.Vec3, width, height int) (x, y float32, ok bool) {
	clip := c.ViewProjection().Mul4x1(p.Vec4(1))
	if clip.W() <= 0 {
		return 0, 0, false
	}
	ndc := clip.Vec3().Mul(1 / clip.W())
	x = (ndc.X() + 1) / 2 * float32(width)
	y = (1 - ndc.Y()) / 2 * float32(height)
	return x, y, true
}

func clamp32(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
