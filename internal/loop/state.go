package loop

import (
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/tomz197/rocketrun/internal/field"
	"github.com/tomz197/rocketrun/internal/object"
)

// GameState represents the current game phase of a session.
type GameState int

const (
	GameStateMenu     GameState = iota // Title screen
	GameStatePlaying                   // Active run
	GameStateDead                      // Rocket crashed, show restart prompt
	GameStateShutdown                  // Server going down
)

// String returns the state name.
func (g GameState) String() string {
	switch g {
	case GameStateMenu:
		return "menu"
	case GameStatePlaying:
		return "playing"
	case GameStateDead:
		return "dead"
	case GameStateShutdown:
		return "shutdown"
	default:
		return "unknown"
	}
}

// Observer receives run events, e.g. for metrics. All methods must be safe to
// call from the session goroutine.
type Observer interface {
	RunStarted()
	RunEnded(distance float32)
	RingSpawned(interior int)
}

type nopObserver struct{}

func (nopObserver) RunStarted()      {}
func (nopObserver) RunEnded(float32) {}
func (nopObserver) RingSpawned(int)  {}

// Options configures a game session.
type Options struct {
	Field      field.Config
	Specs      field.RocketSpecs
	Collisions bool
	EffectSeed uint64 // Seeds exhaust and crash particles only
	Observer   Observer
	Logger     *log.Logger
}

// DefaultOptions returns the standard game tunables with collisions on.
func DefaultOptions() Options {
	return Options{
		Field:      field.DefaultConfig(),
		Specs:      field.DefaultRocketSpecs(),
		Collisions: true,
	}
}

// State holds everything a single session simulates.
type State struct {
	Field     *field.State
	Rocket    *object.Rocket
	Effects   []object.Object // Particles
	toSpawn   []object.Object // Objects to add after current update cycle
	GameState GameState
	Score     int // Whole units traveled in the current run
	Best      int // Best score of this session
	Running   bool

	opts     Options
	rnd      *rand.Rand
	observer Observer
	logger   *log.Logger
}

// NewState creates a session in the menu with an empty field.
func NewState(opts Options) (*State, error) {
	fs, err := field.NewState(opts.Field)
	if err != nil {
		return nil, fmt.Errorf("new field: %w", err)
	}

	s := &State{
		Field:     fs,
		GameState: GameStateMenu,
		Running:   true,
		opts:      opts,
		rnd:       rand.New(rand.NewPCG(opts.EffectSeed, opts.EffectSeed^0x5bd1e995)),
		observer:  opts.Observer,
		logger:    opts.Logger,
	}
	if s.observer == nil {
		s.observer = nopObserver{}
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}
	s.Rocket = object.NewRocket(s.rnd)
	return s, nil
}

// Specs returns the rocket handling parameters of the session.
func (s *State) Specs() field.RocketSpecs {
	return s.opts.Specs
}

// Collisions reports whether crashes end runs.
func (s *State) Collisions() bool {
	return s.opts.Collisions
}

// Spawn queues an object to be added after the current update cycle.
// Implements object.Spawner interface.
func (s *State) Spawn(obj object.Object) {
	s.toSpawn = append(s.toSpawn, obj)
}

// FlushSpawned adds all queued objects to the effects and clears the queue.
func (s *State) FlushSpawned() {
	s.Effects = append(s.Effects, s.toSpawn...)
	s.toSpawn = s.toSpawn[:0]
}

// resetRun replaces the field and rocket with fresh ones. Best is kept.
func (s *State) resetRun() error {
	fs, err := field.NewState(s.opts.Field)
	if err != nil {
		return fmt.Errorf("new field: %w", err)
	}
	s.Field = fs
	s.Rocket = object.NewRocket(s.rnd)
	s.Score = 0

	for _, obj := range s.Effects {
		object.ReleaseObject(obj)
	}
	s.Effects = s.Effects[:0]
	s.toSpawn = s.toSpawn[:0]
	return nil
}
