package field

import "github.com/go-gl/mathgl/mgl32"

// Integrate advances lateral velocity and translation from the steering intent
// and scrolls the field forward by one frame of dt seconds.
//
// Steering left pushes the field toward +X (the rocket drifts left relative to
// the rocks). With no input the velocity decays toward zero by the same step.
func (s *State) Integrate(dt float32, steer Steer, specs RocketSpecs) {
	angle := dt * specs.SteeringSpeed
	percentTurned := angle / specs.MaxSteeringAngle
	dv := percentTurned * specs.MaxXVelocity

	switch steer {
	case SteerLeft:
		if s.XTranslation >= s.cfg.MaxX {
			dv = 0
		}
	case SteerRight:
		if s.XTranslation <= -s.cfg.MaxX {
			dv = 0
		} else {
			dv = -dv
		}
	default:
		// Close enough to zero: stop instead of oscillating around it.
		if abs(dv) > abs(s.XVelocity) {
			s.XVelocity = 0
			dv = 0
		}
		if s.XVelocity < 0 {
			dv = abs(dv)
		} else if s.XVelocity > 0 {
			dv = -abs(dv)
		}
	}

	s.XVelocity += dv
	s.XVelocity = mgl32.Clamp(s.XVelocity, -specs.MaxXVelocity, specs.MaxXVelocity)

	// Clamped before the step, so the translation may sit past the bound by at
	// most one frame of velocity until the next frame pulls it back.
	s.XTranslation = mgl32.Clamp(s.XTranslation, -s.cfg.MaxX, s.cfg.MaxX)
	s.XTranslation += s.XVelocity * dt

	dz := s.cfg.ZVelocity * dt
	s.LastZPosition += dz
	s.DistanceTraveled += dz
}

// MoveRings scrolls every ring forward and snaps it to the field translation.
// Rings move laterally as one rigid group.
func (s *State) MoveRings(dt float32) {
	dz := s.cfg.ZVelocity * dt
	for _, r := range s.Rings {
		r.Position = mgl32.Vec3{s.XTranslation, 0, r.Position.Z() + dz}
	}
}
