package object

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/tomz197/rocketrun/internal/asset"
	"github.com/tomz197/rocketrun/internal/draw"
	"github.com/tomz197/rocketrun/internal/field"
)

// minDrawRadius is the projected radius below which an asteroid is a single pixel.
const minDrawRadius = 0.75

// FieldView draws the rings of a field. It never mutates the field.
type FieldView struct {
	Field *field.State
}

// Update is a no-op; the field is advanced by the game loop.
func (v FieldView) Update(ctx UpdateContext) (bool, error) {
	return false, nil
}

// Draw renders every ring from farthest to nearest.
func (v FieldView) Draw(ctx DrawContext) error {
	if v.Field == nil {
		return nil
	}
	// Rings are appended at the spawn plane, so older rings are nearer.
	for i := len(v.Field.Rings) - 1; i >= 0; i-- {
		ring := v.Field.Rings[i]
		for _, a := range ring.Asteroids {
			DrawAsteroid(ctx, ring.WorldPosition(a), a)
		}
		for _, a := range ring.Border {
			DrawAsteroid(ctx, ring.WorldPosition(a), a)
		}
	}
	return nil
}

// DrawAsteroid draws one asteroid instance at a world position as a polygon
// built from its mesh profile and stippled by its texture shade.
func DrawAsteroid(ctx DrawContext, world mgl32.Vec3, a field.Asteroid) {
	center, depth, ok := ctx.Camera.Project(world)
	if !ok {
		return
	}

	radius := ctx.Camera.PixelsPerUnit(depth) * float64(a.Transform.Scale)
	if radius < minDrawRadius {
		ctx.Canvas.SetFloat(center.X, center.Y)
		return
	}

	var mesh asset.Mesh
	var tex asset.Texture
	if ctx.Assets != nil {
		mesh = ctx.Assets.Mesh(a.Shape)
		tex = ctx.Assets.Texture(a.Shape)
	}
	if len(mesh.Radii) < 3 {
		mesh = asset.Mesh{Radii: []float32{1, 1, 1, 1, 1, 1}}
	}

	spin := screenSpin(a.Transform.Rotation)
	n := len(mesh.Radii)
	points := ctx.Canvas.BorrowPoints(n)
	for i, r := range mesh.Radii {
		theta := spin + float64(i)*2*math.Pi/float64(n)
		points[i] = draw.Point{
			X: center.X + math.Cos(theta)*radius*float64(r),
			Y: center.Y + math.Sin(theta)*radius*float64(r),
		}
	}
	ctx.Canvas.DrawPolygon(points, float64(tex.Shade))
}

// screenSpin reduces an orientation to a single in-plane angle for the flat
// polygon: the rotation angle signed by the axis' x component.
func screenSpin(q mgl32.Quat) float64 {
	w := math.Max(-1, math.Min(1, float64(q.W)))
	angle := 2 * math.Acos(w)
	if q.V.X() < 0 {
		angle = -angle
	}
	return angle
}

var _ Object = FieldView{}
