package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// OrbitSegments is the number of line segments in an orbit path
const OrbitSegments = 100

// RingSegments is the angular resolution of ring annuli
const RingSegments = 64

// GenerateSphereData generates vertex and index data for a UV sphere
// Returns vertices (position, normal, texcoord) and indices
func GenerateSphereData(radius float32, segments, rings int) ([]float32, []uint32) {
	if segments <= 0 {
		segments = 64
	}
	if rings <= 0 {
		rings = 32
	}

	vertices := make([]float32, 0, (rings+1)*(segments+1)*8)
	indices := make([]uint32, 0, rings*segments*6)

	for ring := 0; ring <= rings; ring++ {
		theta := float64(ring) * math.Pi / float64(rings)
		sinTheta := float32(math.Sin(theta))
		cosTheta := float32(math.Cos(theta))

		for seg := 0; seg <= segments; seg++ {
			phi := float64(seg) * 2.0 * math.Pi / float64(segments)
			sinPhi := float32(math.Sin(phi))
			cosPhi := float32(math.Cos(phi))

			x := cosPhi * sinTheta
			y := cosTheta
			z := sinPhi * sinTheta

			vertices = append(vertices, x*radius, y*radius, z*radius)
			vertices = append(vertices, x, y, z)
			vertices = append(vertices, float32(seg)/float32(segments), float32(ring)/float32(rings))
		}
	}

	for ring := 0; ring < rings; ring++ {
		for seg := 0; seg < segments; seg++ {
			current := uint32(ring*(segments+1) + seg)
			next := current + uint32(segments) + 1

			indices = append(indices, current, next, current+1)
			indices = append(indices, current+1, next, next+1)
		}
	}

	return vertices, indices
}

// GenerateRingData generates a flat annulus in the XY plane, facing +Z.
// Layout matches GenerateSphereData. Texture U runs from inner (0) to outer (1) edge.
func GenerateRingData(inner, outer float32, segments int) ([]float32, []uint32) {
	if segments <= 0 {
		segments = RingSegments
	}

	vertices := make([]float32, 0, (segments+1)*2*8)
	indices := make([]uint32, 0, segments*6)

	for seg := 0; seg <= segments; seg++ {
		phi := float64(seg) * 2.0 * math.Pi / float64(segments)
		c := float32(math.Cos(phi))
		s := float32(math.Sin(phi))
		v := float32(seg) / float32(segments)

		vertices = append(vertices, c*inner, s*inner, 0, 0, 0, 1, 0, v)
		vertices = append(vertices, c*outer, s*outer, 0, 0, 0, 1, 1, v)
	}

	for seg := 0; seg < segments; seg++ {
		i := uint32(seg * 2)
		indices = append(indices, i, i+1, i+2)
		indices = append(indices, i+2, i+1, i+3)
	}

	return vertices, indices
}

// OrbitPathPoints returns segments+1 points on a circle of the given radius in the
// XZ plane. The first and last points coincide.
func OrbitPathPoints(radius float64, segments int) []mgl32.Vec3 {
	points := make([]mgl32.Vec3, 0, segments+1)
	for i := 0; i <= segments; i++ {
		theta := float64(i) / float64(segments) * 2 * math.Pi
		points = append(points, mgl32.Vec3{
			float32(radius * math.Cos(theta)),
			0,
			float32(radius * math.Sin(theta)),
		})
	}
	return points
}

// FlattenPoints packs points into an xyz float buffer for upload
func FlattenPoints(points []mgl32.Vec3) []float32 {
	out := make([]float32, 0, len(points)*3)
	for _, p := range points {
		out = append(out, p[0], p[1], p[2])
	}
	return out
}
