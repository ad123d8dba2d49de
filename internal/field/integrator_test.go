package field

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const frame = float32(1.0 / 60)

func TestSteerLeftApproachesMaxVelocity(t *testing.T) {
	s := newTestState(t, DefaultConfig())
	specs := DefaultRocketSpecs()

	prev := s.XVelocity
	for i := 0; i < 120; i++ {
		s.Integrate(frame, SteerLeft, specs)
		require.GreaterOrEqual(t, s.XVelocity, prev)
		require.LessOrEqual(t, s.XVelocity, specs.MaxXVelocity)
		prev = s.XVelocity
	}
	assert.Equal(t, specs.MaxXVelocity, s.XVelocity)
}

func TestSteerRightNegatesDelta(t *testing.T) {
	s := newTestState(t, DefaultConfig())
	specs := DefaultRocketSpecs()

	s.Integrate(frame, SteerRight, specs)

	// (1/60) / (1/3) * 18
	assert.InDelta(t, -0.9, float64(s.XVelocity), 1e-4)
	assert.Less(t, s.XTranslation, float32(0))
}

func TestSteerSuppressedAtBound(t *testing.T) {
	tests := []struct {
		name  string
		steer Steer
		x     float32
	}{
		{"left at +max", SteerLeft, 12},
		{"left beyond +max", SteerLeft, 12.5},
		{"right at -max", SteerRight, -12},
		{"right beyond -max", SteerRight, -13},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestState(t, DefaultConfig())
			s.XTranslation = tt.x
			s.Integrate(frame, tt.steer, DefaultRocketSpecs())
			assert.Equal(t, float32(0), s.XVelocity)
		})
	}
}

func TestNoInputDecelerates(t *testing.T) {
	s := newTestState(t, DefaultConfig())
	specs := DefaultRocketSpecs()
	s.XVelocity = 5

	s.Integrate(frame, SteerNone, specs)
	assert.InDelta(t, 4.1, float64(s.XVelocity), 1e-4)

	s.XVelocity = -5
	s.Integrate(frame, SteerNone, specs)
	assert.InDelta(t, -4.1, float64(s.XVelocity), 1e-4)
}

func TestNoInputSnapsToZero(t *testing.T) {
	s := newTestState(t, DefaultConfig())
	s.XVelocity = 0.5
	x := s.XTranslation

	s.Integrate(frame, SteerNone, DefaultRocketSpecs())

	assert.Equal(t, float32(0), s.XVelocity)
	assert.Equal(t, x, s.XTranslation)
}

func TestNoInputEventuallyStops(t *testing.T) {
	s := newTestState(t, DefaultConfig())
	s.XVelocity = -18
	for i := 0; i < 60; i++ {
		s.Integrate(frame, SteerNone, DefaultRocketSpecs())
	}
	assert.Equal(t, float32(0), s.XVelocity)
}

func TestTranslationClampedBeforeStep(t *testing.T) {
	s := newTestState(t, DefaultConfig())
	s.XTranslation = 13
	s.XVelocity = 18

	s.Integrate(0.1, SteerLeft, DefaultRocketSpecs())

	// Clamped to 12 first, then moved by 18 * 0.1.
	assert.InDelta(t, 13.8, float64(s.XTranslation), 1e-4)

	s.XVelocity = 0
	s.Integrate(0.1, SteerNone, DefaultRocketSpecs())
	assert.Equal(t, float32(12), s.XTranslation)
}

func TestBoundsHoldOverLongRun(t *testing.T) {
	cfg := DefaultConfig()
	s := newTestState(t, cfg)
	specs := DefaultRocketSpecs()
	overshoot := specs.MaxXVelocity * frame

	for i := 0; i < 2000; i++ {
		steer := SteerLeft
		if (i/150)%2 == 1 {
			steer = SteerRight
		}
		s.Integrate(frame, steer, specs)
		require.LessOrEqual(t, abs(s.XVelocity), specs.MaxXVelocity)
		require.LessOrEqual(t, abs(s.XTranslation), cfg.MaxX+overshoot+1e-4)
	}
}

func TestForwardScroll(t *testing.T) {
	s := newTestState(t, DefaultConfig())
	s.LastZPosition = -300

	s.Integrate(0.5, SteerLeft, DefaultRocketSpecs())

	assert.Equal(t, float32(-270), s.LastZPosition)
	assert.Equal(t, float32(30), s.DistanceTraveled)
}

func TestMoveRingsRigidGroup(t *testing.T) {
	s := newTestState(t, DefaultConfig())
	s.Rings = []*Ring{
		{ID: 1, Position: mgl32.Vec3{0, 0, -300}},
		{ID: 2, Position: mgl32.Vec3{4, 0, -100}},
	}
	s.XTranslation = -3

	s.MoveRings(0.5)

	assert.Equal(t, mgl32.Vec3{-3, 0, -270}, s.Rings[0].Position)
	assert.Equal(t, mgl32.Vec3{-3, 0, -70}, s.Rings[1].Position)
}

func TestSweepRemovesRingsPastCamera(t *testing.T) {
	s := newTestState(t, DefaultConfig())
	s.Rings = []*Ring{
		{ID: 1, Position: mgl32.Vec3{0, 0, -1}},
		{ID: 2, Position: mgl32.Vec3{0, 0, 0}},
		{ID: 3, Position: mgl32.Vec3{0, 0, 0.5}},
		{ID: 4, Position: mgl32.Vec3{0, 0, 40}},
	}

	assert.Equal(t, 2, s.Sweep())
	require.Len(t, s.Rings, 2)
	assert.Equal(t, uint64(1), s.Rings[0].ID)
	assert.Equal(t, uint64(2), s.Rings[1].ID)

	assert.Equal(t, 0, s.Sweep())
	assert.Len(t, s.Rings, 2)
}

func TestRingRemovedOnFirstPositiveFrame(t *testing.T) {
	s := newTestState(t, DefaultConfig())
	s.Rings = []*Ring{{ID: 1, Position: mgl32.Vec3{0, 0, -2}}}

	// 60 * 1/60 = 1 unit per frame.
	removedAt := -1
	for i := 0; i < 5; i++ {
		s.MoveRings(frame)
		if s.Sweep() > 0 {
			removedAt = i
			break
		}
	}
	// -1, 0, then positive on the third frame.
	assert.Equal(t, 2, removedAt)
	assert.Empty(t, s.Rings)
}
