// Package physics provides the overlap tests used for rocket collisions.
package physics

import "github.com/go-gl/mathgl/mgl32"

// DistanceSquared returns the squared distance between two points on the
// ground (X/Z) plane. Height is ignored.
func DistanceSquared(a, b mgl32.Vec3) float32 {
	dx := b.X() - a.X()
	dz := b.Z() - a.Z()
	return dx*dx + dz*dz
}

// CirclesOverlap checks if two circles on the ground plane overlap.
func CirclesOverlap(a mgl32.Vec3, ra float32, b mgl32.Vec3, rb float32) bool {
	minDist := ra + rb
	return DistanceSquared(a, b) < minDist*minDist
}

// SweptCircleOverlap checks if a circle moving in a straight line from `from`
// to `to` touches a stationary circle at any point of its path. Like
// CirclesOverlap it works on the ground plane.
func SweptCircleOverlap(a mgl32.Vec3, ra float32, from, to mgl32.Vec3, rb float32) bool {
	dx := to.X() - from.X()
	dz := to.Z() - from.Z()
	lenSq := dx*dx + dz*dz

	closest := to
	if lenSq > 0 {
		t := ((a.X()-from.X())*dx + (a.Z()-from.Z())*dz) / lenSq
		t = mgl32.Clamp(t, 0, 1)
		closest = mgl32.Vec3{from.X() + dx*t, to.Y(), from.Z() + dz*t}
	}
	return CirclesOverlap(a, ra, closest, rb)
}
