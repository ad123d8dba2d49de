package field

import (
	"errors"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrPlacementExhausted is returned when no lateral offset honoring the minimum
// spacing was found within Config.MaxPlacementAttempts redraws.
var ErrPlacementExhausted = errors.New("asteroid placement attempts exhausted")

// placement draws one interior asteroid. seed is advanced and the stream
// reseeded before the first draw and before every lateral redraw.
func (s *State) placement(seed *uint64, placed []float32) (Asteroid, error) {
	*seed++
	s.rng.Seed(*seed)

	shape := Shape(s.rng.Uint32Range(0, 2))
	z := s.rng.Float32() * s.cfg.ZRand
	x := s.lateral()

	for attempts := 0; s.tooClose(x, placed); attempts++ {
		if attempts >= s.cfg.MaxPlacementAttempts {
			return Asteroid{}, ErrPlacementExhausted
		}
		*seed++
		s.rng.Seed(*seed)
		x = s.lateral()
	}

	rotation, scale := s.orientation()
	return Asteroid{
		Shape: shape,
		Transform: Transform{
			Translation: mgl32.Vec3{x, asteroidHeight, z},
			Rotation:    rotation,
			Scale:       scale,
		},
	}, nil
}

// lateral draws an offset in [-MaxX, MaxX).
func (s *State) lateral() float32 {
	return s.rng.Float32()*s.cfg.MaxX*2 - s.cfg.MaxX
}

func (s *State) tooClose(x float32, placed []float32) bool {
	for _, p := range placed {
		if abs(p-x) < s.cfg.MinXSpacing {
			return true
		}
	}
	return false
}

// orientation draws a rotation about a random axis in the XY plane and a
// uniform scale in [0.75, 1).
func (s *State) orientation() (mgl32.Quat, float32) {
	axis := mgl32.Vec3{s.rng.Float32(), s.rng.Float32(), 0}
	if axis.Len() == 0 {
		axis = mgl32.Vec3{1, 0, 0}
	} else {
		axis = axis.Normalize()
	}
	angle := s.rng.Float32() * math.Pi
	scale := s.rng.Float32()*0.25 + 0.75
	return mgl32.QuatRotate(angle, axis), scale
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
