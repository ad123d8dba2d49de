package object

import (
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/tomz197/rocketrun/internal/field"
)

// RocketRadius is the collision radius of the rocket in the x/z plane.
const RocketRadius = 0.6

// Rocket is the player's ship. It stays at the origin; the field moves around it.
// Steering only banks the model, the lateral motion lives in the field state.
type Rocket struct {
	Yaw float32 // Radians around +Y, positive when banking left

	Length float32
	Span   float32

	exhaustCooldown float32
	rnd             *rand.Rand
}

// NewRocket creates a level rocket at the origin.
func NewRocket(rnd *rand.Rand) *Rocket {
	return &Rocket{
		Length: 2.4,
		Span:   1.6,
		rnd:    rnd,
	}
}

// Steer banks the rocket toward the steering direction until MaxSteeringAngle
// and eases it back to level without input, snapping to zero on the last step.
func (r *Rocket) Steer(dt float32, steer field.Steer, specs field.RocketSpecs) {
	angle := dt * specs.SteeringSpeed

	switch steer {
	case field.SteerLeft:
		if r.Yaw >= specs.MaxSteeringAngle {
			return
		}
	case field.SteerRight:
		if r.Yaw <= -specs.MaxSteeringAngle {
			return
		}
		angle = -angle
	default:
		if r.Yaw == 0 {
			return
		}
		if abs32(r.Yaw) < angle {
			r.Yaw = 0
			return
		}
		if r.Yaw > 0 {
			angle = -angle
		}
	}
	r.Yaw += angle
}

// Rotation returns the rocket orientation as a quaternion.
func (r *Rocket) Rotation() mgl32.Quat {
	return mgl32.QuatRotate(r.Yaw, mgl32.Vec3{0, 1, 0})
}

// Position returns the rocket's world position.
func (r *Rocket) Position() mgl32.Vec3 {
	return mgl32.Vec3{}
}

// Update steers the rocket and emits exhaust.
func (r *Rocket) Update(ctx UpdateContext) (bool, error) {
	dt := float32(ctx.Delta.Seconds())
	r.Steer(dt, ctx.Steer, ctx.Specs)

	r.exhaustCooldown -= dt
	if r.exhaustCooldown <= 0 && ctx.Spawner != nil && r.rnd != nil {
		r.exhaustCooldown = exhaustInterval
		tail := r.Rotation().Rotate(mgl32.Vec3{0, 0, r.Length / 2})
		SpawnExhaust(tail, r.rnd, ctx.Spawner)
	}
	return false, nil
}

// Draw renders the rocket as a filled triangle seen through the camera.
func (r *Rocket) Draw(ctx DrawContext) error {
	rot := r.Rotation()
	local := [3]mgl32.Vec3{
		{0, 0, -r.Length / 2},         // Nose
		{-r.Span / 2, 0, r.Length / 2}, // Left wing
		{r.Span / 2, 0, r.Length / 2},  // Right wing
	}

	points := ctx.Canvas.BorrowPoints(len(local))
	for i, v := range local {
		pt, _, ok := ctx.Camera.Project(rot.Rotate(v))
		if !ok {
			return nil
		}
		points[i] = pt
	}
	ctx.Canvas.DrawPolygon(points, 1)
	return nil
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

var _ Object = (*Rocket)(nil)
