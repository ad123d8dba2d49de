package loop

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/tomz197/rocketrun/internal/field"
	"github.com/tomz197/rocketrun/internal/loop/config"
	"github.com/tomz197/rocketrun/internal/object"
	"github.com/tomz197/rocketrun/internal/physics"
)

// collides reports whether the rocket touched any asteroid while the rings
// moved by shift this frame. Each asteroid is tested along its whole path, so
// a long frame cannot carry a rock through the rocket.
// Interior asteroids and border walls count alike.
func (s *State) collides(shift mgl32.Vec3) bool {
	rocket := s.Rocket.Position()

	for _, ring := range s.Field.Rings {
		for _, group := range [2][]field.Asteroid{ring.Asteroids, ring.Border} {
			for _, a := range group {
				to := ring.WorldPosition(a)
				if physics.SweptCircleOverlap(rocket, object.RocketRadius,
					to.Sub(shift), to, a.Transform.Scale*config.AsteroidRadius) {
					return true
				}
			}
		}
	}
	return false
}
