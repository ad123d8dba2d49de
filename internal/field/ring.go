package field

import "github.com/go-gl/mathgl/mgl32"

// Shape selects one of the asteroid mesh/texture pairs.
type Shape int

const (
	ShapeRound Shape = iota
	ShapeJagged
	ShapeShard

	ShapeCount = 3
)

// String returns the shape name.
func (s Shape) String() string {
	switch s {
	case ShapeRound:
		return "round"
	case ShapeJagged:
		return "jagged"
	case ShapeShard:
		return "shard"
	default:
		return "unknown"
	}
}

// asteroidHeight is the fixed local height of every asteroid above the ring plane.
const asteroidHeight = 1.0

// Transform places an asteroid relative to its ring.
type Transform struct {
	Translation mgl32.Vec3
	Rotation    mgl32.Quat
	Scale       float32
}

// Asteroid is a single rock. It never changes after spawning.
type Asteroid struct {
	Shape     Shape
	Transform Transform
}

// Ring is a slice of the field spawned together and moved as a rigid group.
type Ring struct {
	ID        uint64
	Position  mgl32.Vec3 // Anchor; X follows the field translation, Z scrolls toward the camera
	Asteroids []Asteroid // Interior asteroids, laterally spaced
	Border    []Asteroid // Wall pairs at both lateral bounds
}

// All returns interior and border asteroids together.
func (r *Ring) All() []Asteroid {
	all := make([]Asteroid, 0, len(r.Asteroids)+len(r.Border))
	all = append(all, r.Asteroids...)
	return append(all, r.Border...)
}

// WorldPosition returns the world position of an asteroid belonging to the ring.
func (r *Ring) WorldPosition(a Asteroid) mgl32.Vec3 {
	return r.Position.Add(a.Transform.Translation)
}
