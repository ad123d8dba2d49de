// Package field implements the asteroid field: ring spawning, lateral steering,
// forward scrolling and despawning.
//
// Coordinates follow the camera: X is lateral, Y is up and the rocket flies
// toward -Z. Rings spawn far ahead at a negative Z and scroll toward +Z until
// they pass the camera plane at Z = 0.
package field

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned by Config.Validate for unusable tunables.
var ErrInvalidConfig = errors.New("invalid field config")

// Config holds the field tunables. They do not change during a run.
type Config struct {
	ZSpawnPosition       float32 // Spawn plane, how far ahead of the rocket rings appear
	ZInterval            float32 // Forward distance between consecutive rings
	ZRand                float32 // Forward jitter window of interior asteroids
	MinXSpacing          float32 // Closest two interior asteroids of a ring may be laterally
	ZVelocity            float32 // Forward scroll speed
	MaxX                 float32 // Lateral bound of the field translation and border walls
	BorderSpacing        float32 // Forward distance between border wall pairs
	MaxInteriorAsteroids int32   // Interior asteroid count is drawn from [0, MaxInteriorAsteroids]
	MaxPlacementAttempts int     // Lateral redraws before a placement is abandoned
}

// DefaultConfig returns the tuning the game ships with.
func DefaultConfig() Config {
	return Config{
		ZSpawnPosition:       -300,
		ZInterval:            24,
		ZRand:                15,
		MinXSpacing:          2,
		ZVelocity:            60,
		MaxX:                 12,
		BorderSpacing:        4,
		MaxInteriorAsteroids: 2,
		MaxPlacementAttempts: 4096,
	}
}

// BorderPairs returns the number of border wall pairs per ring.
func (c Config) BorderPairs() int {
	if c.BorderSpacing <= 0 {
		return 0
	}
	return int(c.ZInterval / c.BorderSpacing)
}

// Validate reports tunables under which spawning would misbehave, in particular
// spacing constraints that rejection sampling can never satisfy.
func (c Config) Validate() error {
	switch {
	case c.ZInterval <= 0:
		return fmt.Errorf("%w: z interval %v must be positive", ErrInvalidConfig, c.ZInterval)
	case c.ZSpawnPosition+c.ZInterval >= 0:
		return fmt.Errorf("%w: spawn plane %v must lie at least one interval ahead of the camera", ErrInvalidConfig, c.ZSpawnPosition)
	case c.MaxX <= 0:
		return fmt.Errorf("%w: max x %v must be positive", ErrInvalidConfig, c.MaxX)
	case c.ZRand < 0 || c.MinXSpacing < 0 || c.ZVelocity < 0:
		return fmt.Errorf("%w: z rand, min x spacing and z velocity must not be negative", ErrInvalidConfig)
	case c.BorderSpacing <= 0:
		return fmt.Errorf("%w: border spacing %v must be positive", ErrInvalidConfig, c.BorderSpacing)
	case c.MaxInteriorAsteroids < 0:
		return fmt.Errorf("%w: max interior asteroids %d must not be negative", ErrInvalidConfig, c.MaxInteriorAsteroids)
	case c.MaxPlacementAttempts <= 0:
		return fmt.Errorf("%w: max placement attempts %d must be positive", ErrInvalidConfig, c.MaxPlacementAttempts)
	}

	if c.MaxInteriorAsteroids > 1 {
		needed := c.MinXSpacing * float32(c.MaxInteriorAsteroids-1)
		if needed >= 2*c.MaxX {
			return fmt.Errorf("%w: %d asteroids %v apart do not fit in lane width %v",
				ErrInvalidConfig, c.MaxInteriorAsteroids, c.MinXSpacing, 2*c.MaxX)
		}
	}
	return nil
}

// RocketSpecs describes how quickly the rocket can steer.
type RocketSpecs struct {
	SteeringSpeed    float32 // Radians per second of banking
	MaxSteeringAngle float32 // Bank angle at which lateral speed is maxed out
	MaxXVelocity     float32 // Lateral speed limit
}

// DefaultRocketSpecs returns the rocket the game ships with.
func DefaultRocketSpecs() RocketSpecs {
	return RocketSpecs{
		SteeringSpeed:    1.0,
		MaxSteeringAngle: 2.0 * 30.0 / 180.0,
		MaxXVelocity:     18.0,
	}
}
