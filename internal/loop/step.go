package loop

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/tomz197/rocketrun/internal/field"
	"github.com/tomz197/rocketrun/internal/input"
	"github.com/tomz197/rocketrun/internal/loop/config"
	"github.com/tomz197/rocketrun/internal/object"
)

// Intent derives the steering direction for one frame. A held left mouse
// button wins over keys: left of centerCol steers left, otherwise right.
func Intent(inp input.Input, centerCol int) field.Steer {
	if inp.MouseDown && inp.MouseCol > 0 {
		if inp.MouseCol < centerCol {
			return field.SteerLeft
		}
		return field.SteerRight
	}
	switch {
	case inp.Left && !inp.Right:
		return field.SteerLeft
	case inp.Right && !inp.Left:
		return field.SteerRight
	default:
		return field.SteerNone
	}
}

// Step advances a session by one frame. The order is fixed: state machine,
// spawner, integrator, ring movement, despawn sweep, then collision. The
// collision test itself runs on the rings' positions before the sweep.
func Step(s *State, delta time.Duration, inp input.Input, steer field.Steer) error {
	if delta > config.MaxFrameDelta {
		delta = config.MaxFrameDelta
	}
	dt := float32(delta.Seconds())

	if inp.ConfirmPressed {
		if err := s.confirm(); err != nil {
			return err
		}
	}
	playing := s.GameState == GameStatePlaying

	ring, err := s.Field.MaybeSpawnRing(playing)
	if err != nil {
		return fmt.Errorf("spawn ring: %w", err)
	}
	if ring != nil {
		s.observer.RingSpawned(len(ring.Asteroids))
		s.logger.Debug("ring spawned", "id", ring.ID, "interior", len(ring.Asteroids), "x", ring.Position.X())
	}

	hit := false
	if playing {
		prevX := s.Field.XTranslation
		s.Field.Integrate(dt, steer, s.opts.Specs)
		s.Field.MoveRings(dt)

		// Tested before the sweep so rings that passed the rocket this frame
		// still count.
		shift := mgl32.Vec3{s.Field.XTranslation - prevX, 0, s.Field.Config().ZVelocity * dt}
		hit = s.opts.Collisions && s.collides(shift)
	}
	s.Field.Sweep()

	if err := s.updateObjects(delta, steer, playing); err != nil {
		return err
	}

	if playing {
		s.Score = int(s.Field.DistanceTraveled)
		if hit {
			s.crash()
		}
	}
	return nil
}

// confirm applies a confirm press. Menu and Dead start a run; other states
// ignore it.
func (s *State) confirm() error {
	switch s.GameState {
	case GameStateMenu, GameStateDead:
		return s.startRun()
	default:
		return nil
	}
}

// startRun begins a fresh run. The best score survives.
func (s *State) startRun() error {
	if err := s.resetRun(); err != nil {
		return err
	}
	s.GameState = GameStatePlaying
	s.observer.RunStarted()
	s.logger.Info("run started", "best", s.Best)
	return nil
}

// crash ends the current run.
func (s *State) crash() {
	s.GameState = GameStateDead
	if s.Score > s.Best {
		s.Best = s.Score
	}
	s.observer.RunEnded(s.Field.DistanceTraveled)
	s.logger.Info("run ended", "distance", s.Field.DistanceTraveled, "score", s.Score, "best", s.Best)

	object.SpawnExplosion(s.Rocket.Position(), config.CrashParticles,
		config.CrashSpeed, config.CrashLifetime, s.rnd, s)
	s.FlushSpawned()
}

// updateObjects updates the rocket and effects and removes any effects that
// request removal. The rocket only moves during a run.
func (s *State) updateObjects(delta time.Duration, steer field.Steer, playing bool) error {
	ctx := object.UpdateContext{
		Delta:   delta,
		Steer:   steer,
		Specs:   s.opts.Specs,
		Spawner: s,
	}

	if playing {
		if _, err := s.Rocket.Update(ctx); err != nil {
			return err
		}
	}

	kept := s.Effects[:0] // reuse backing array
	for _, obj := range s.Effects {
		remove, err := obj.Update(ctx)
		if err != nil {
			return err
		}
		if remove {
			object.ReleaseObject(obj)
			continue
		}
		kept = append(kept, obj)
	}
	clear(s.Effects[len(kept):])
	s.Effects = kept

	s.FlushSpawned()
	return nil
}
