package object

import (
	"math"
	"math/rand/v2"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

// exhaustInterval is the time between exhaust puffs.
const exhaustInterval = 0.04

// particlePool is a sync.Pool for reusing Particle objects to reduce allocations.
var particlePool = sync.Pool{
	New: func() any {
		return &Particle{}
	},
}

// Particle is a short-lived visual effect in world space.
type Particle struct {
	Pos         mgl32.Vec3
	Vel         mgl32.Vec3
	Lifetime    float32 // Seconds remaining
	MaxLifetime float32 // Initial lifetime (for fade calculation)
	Drag        float32 // Velocity decay per 1/60 s (1.0 = no drag)
	Fade        bool    // Whether to fade out over lifetime
}

// NewParticle creates a single particle from the pool.
func NewParticle(pos, vel mgl32.Vec3, lifetime float32) *Particle {
	p := particlePool.Get().(*Particle)
	p.Pos = pos
	p.Vel = vel
	p.Lifetime = lifetime
	p.MaxLifetime = lifetime
	p.Drag = 0.95
	p.Fade = true
	return p
}

// Release returns the particle to the pool for reuse.
// Should be called when the particle is removed from the game.
func (p *Particle) Release() {
	particlePool.Put(p)
}

// SpawnExplosion creates particles in a spherical burst around pos.
func SpawnExplosion(pos mgl32.Vec3, count int, speed, lifetime float32, rnd *rand.Rand, spawner Spawner) {
	if spawner == nil {
		return
	}

	for i := 0; i < count; i++ {
		// Random direction, flattened so the burst spreads along the ground.
		yaw := rnd.Float64() * 2 * math.Pi
		pitch := (rnd.Float64() - 0.3) * math.Pi / 3
		dir := mgl32.Vec3{
			float32(math.Cos(pitch) * math.Cos(yaw)),
			float32(math.Sin(pitch)),
			float32(math.Cos(pitch) * math.Sin(yaw)),
		}
		spd := speed * (0.5 + rnd.Float32())
		life := lifetime * (0.5 + rnd.Float32()*0.5)

		spawner.Spawn(NewParticle(pos, dir.Mul(spd), life))
	}
}

// SpawnExhaust creates one or two particles trailing behind the rocket.
func SpawnExhaust(pos mgl32.Vec3, rnd *rand.Rand, spawner Spawner) {
	if spawner == nil {
		return
	}

	count := 1 + rnd.IntN(2)
	for i := 0; i < count; i++ {
		vel := mgl32.Vec3{
			(rnd.Float32() - 0.5) * 1.5,
			(rnd.Float32() - 0.5) * 0.5,
			8 + rnd.Float32()*4,
		}
		p := NewParticle(pos, vel, 0.15+rnd.Float32()*0.15)
		p.Drag = 0.85
		spawner.Spawn(p)
	}
}

// Update moves the particle and checks lifetime.
func (p *Particle) Update(ctx UpdateContext) (bool, error) {
	dt := float32(ctx.Delta.Seconds())

	p.Lifetime -= dt
	if p.Lifetime <= 0 {
		return true, nil
	}

	// Normalize drag to ~60fps
	drag := float32(math.Pow(float64(p.Drag), float64(dt)*60))
	p.Vel = p.Vel.Mul(drag)
	p.Pos = p.Pos.Add(p.Vel.Mul(dt))

	return false, nil
}

// Draw renders the particle as a single pixel on the canvas.
func (p *Particle) Draw(ctx DrawContext) error {
	// Skip faded particles (< 25% lifetime)
	if p.Fade && p.MaxLifetime > 0 && p.Lifetime/p.MaxLifetime < 0.25 {
		return nil
	}

	pt, _, ok := ctx.Camera.Project(p.Pos)
	if !ok {
		return nil
	}
	ctx.Canvas.SetFloat(pt.X, pt.Y)
	return nil
}
