// Package config centralizes the tunable parameters of the game loop.
package config

import "time"

// View resolution - the visible viewport in logical units.
// Actual rendering scales to fit terminal size.
const (
	ViewWidth  = 120 // Logical viewport width
	ViewHeight = 80  // Logical viewport height (in sub-pixels, so 40 terminal rows)
)

// Max render area; larger terminals get a centered canvas.
const (
	MaxTermWidth  = 240
	MaxTermHeight = 80
)

// Collisions
const (
	AsteroidRadius = 0.9 // Collision radius of a unit-scale asteroid
)

// Crash effect
const (
	CrashParticles = 28
	CrashSpeed     = 9.0
	CrashLifetime  = 1.2 // Seconds
)

// Shutdown
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show shutdown message before auto-disconnect
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// Frame rate
const (
	TargetFPS       = 60
	TargetFrameTime = time.Second / TargetFPS
)

// MaxFrameDelta caps a single simulation step after a stall (e.g. a suspended
// terminal) so the field does not jump.
const MaxFrameDelta = 100 * time.Millisecond
