package field

import (
	"github.com/tomz197/rocketrun/internal/rng"
)

// Steer is the lateral steering intent for a frame.
type Steer int

const (
	SteerNone Steer = iota
	SteerLeft
	SteerRight
)

// String returns the steering direction name.
func (s Steer) String() string {
	switch s {
	case SteerLeft:
		return "left"
	case SteerRight:
		return "right"
	default:
		return "none"
	}
}

// State is the field of one run: spawner bookkeeping, lateral motion and the
// active rings. Each session owns exactly one; it is not safe for concurrent use.
type State struct {
	cfg Config

	LastZPosition    float32 // Scrolls forward each frame; reset to the spawn plane on spawn
	XVelocity        float32 // Lateral velocity of the field
	XTranslation     float32 // Lateral offset of the field relative to the rocket
	DistanceTraveled float32 // Total forward distance, the seed source for placement

	Rings []*Ring

	rng    *rng.Stream
	nextID uint64
}

// NewState creates the field for a new run.
func NewState(cfg Config) (*State, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &State{
		cfg: cfg,
		rng: rng.New(0),
	}, nil
}

// Config returns the tunables the field was created with.
func (s *State) Config() Config {
	return s.cfg
}

// AsteroidCount returns the number of asteroids across all active rings.
func (s *State) AsteroidCount() int {
	n := 0
	for _, r := range s.Rings {
		n += len(r.Asteroids) + len(r.Border)
	}
	return n
}
