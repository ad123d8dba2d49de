package field

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// SpawnDue reports whether the field has scrolled a full interval since the last ring.
func (s *State) SpawnDue() bool {
	return s.LastZPosition >= s.cfg.ZSpawnPosition+s.cfg.ZInterval
}

// MaybeSpawnRing spawns the next ring at the spawn plane when one is due.
// It returns the new ring, or nil when nothing was spawned.
//
// Must run before Integrate in a frame: Integrate advances LastZPosition, and
// observing it afterwards can skip or repeat a spawn.
func (s *State) MaybeSpawnRing(playing bool) (*Ring, error) {
	if !playing || !s.SpawnDue() {
		return nil, nil
	}

	seed := s.placementSeed()
	s.rng.Seed(seed)
	count := s.rng.Int32Range(0, s.cfg.MaxInteriorAsteroids+1)

	s.nextID++
	ring := &Ring{
		ID:        s.nextID,
		Position:  mgl32.Vec3{s.XTranslation, 0, s.cfg.ZSpawnPosition},
		Asteroids: make([]Asteroid, 0, count),
	}

	placed := make([]float32, 0, count)
	for i := int32(0); i < count; i++ {
		a, err := s.placement(&seed, placed)
		if err != nil {
			return nil, fmt.Errorf("ring %d asteroid %d: %w", ring.ID, i, err)
		}
		placed = append(placed, a.Transform.Translation.X())
		ring.Asteroids = append(ring.Asteroids, a)
	}

	ring.Border = s.border()
	s.Rings = append(s.Rings, ring)
	s.LastZPosition = s.cfg.ZSpawnPosition

	return ring, nil
}

// placementSeed derives the base seed from the distance traveled, in hundredths.
func (s *State) placementSeed() uint64 {
	hundredths := s.DistanceTraveled * 100
	return uint64(math.Round(float64(hundredths)))
}

// border builds the wall pairs pinned at both lateral bounds. The shape is the
// same for every pair; rotation and scale continue the current stream.
func (s *State) border() []Asteroid {
	pairs := s.cfg.BorderPairs()
	shape := Shape(pairs % ShapeCount)
	wall := make([]Asteroid, 0, pairs*2)

	for i := 0; i < pairs; i++ {
		z := float32(i) * s.cfg.BorderSpacing
		for _, x := range [2]float32{-s.cfg.MaxX, s.cfg.MaxX} {
			rotation, scale := s.orientation()
			wall = append(wall, Asteroid{
				Shape: shape,
				Transform: Transform{
					Translation: mgl32.Vec3{x, asteroidHeight, z},
					Rotation:    rotation,
					Scale:       scale,
				},
			})
		}
	}
	return wall
}
