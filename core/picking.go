package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// PointerState is the pointer position in normalized device coordinates
type PointerState struct {
	X, Y float32 // [-1, 1], +Y up
}

// PointerFromWindow converts window pixel coordinates (origin top-left) to NDC
func PointerFromWindow(px, py float64, width, height int) PointerState {
	if width <= 0 || height <= 0 {
		return PointerState{}
	}
	return PointerState{
		X: float32(px/float64(width)*2 - 1),
		Y: float32(-(py/float64(height))*2 + 1),
	}
}

// Ray is a half-line with a unit direction
type Ray struct {
	Origin mgl32.Vec3
	Dir    mgl32.Vec3
}

// RayFromCamera builds the world-space ray through an NDC point
func RayFromCamera(c *Camera, p PointerState) Ray {
	invViewProj := c.ViewProjection().Inv()

	nearWorld := invViewProj.Mul4x1(mgl32.Vec4{p.X, p.Y, -1.0, 1.0})
	farWorld := invViewProj.Mul4x1(mgl32.Vec4{p.X, p.Y, 1.0, 1.0})

	// Perspective divide
	nearWorld = nearWorld.Mul(1.0 / nearWorld[3])
	farWorld = farWorld.Mul(1.0 / farWorld[3])

	origin := nearWorld.Vec3()
	return Ray{
		Origin: origin,
		Dir:    farWorld.Vec3().Sub(origin).Normalize(),
	}
}

// IntersectSphere returns the nearest non-negative ray parameter at which the ray
// meets the sphere, or false when it misses or the sphere is entirely behind.
func (r Ray) IntersectSphere(center mgl32.Vec3, radius float32) (float32, bool) {
	oc := r.Origin.Sub(center)
	b := oc.Dot(r.Dir)
	c := oc.Dot(oc) - radius*radius
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}

	sqrtD := float32(math.Sqrt(float64(disc)))
	t := -b - sqrtD
	if t < 0 {
		t = -b + sqrtD
		if t < 0 {
			return 0, false
		}
	}
	return t, true
}

// Hit is a picked body and its distance along the ray
type Hit struct {
	Body     *Body
	Distance float32
}

// Pick returns the body nearest along the ray. Only bodies are tested;
// the sun, rings, orbit paths and stars are never candidates.
func Pick(r Ray, bodies []*Body) (Hit, bool) {
	var best Hit
	found := false
	for _, b := range bodies {
		t, ok := r.IntersectSphere(b.Position, float32(b.Size))
		if !ok {
			continue
		}
		if !found || t < best.Distance {
			best = Hit{Body: b, Distance: t}
			found = true
		}
	}
	return best, found
}
