package object

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/tomz197/rocketrun/internal/draw"
)

// Default camera placement: above and behind the rocket, looking at it.
var (
	DefaultEye    = mgl32.Vec3{0, 9, 20}
	DefaultTarget = mgl32.Vec3{0, 0, 0}
)

const (
	defaultFovY = 45.0 // Degrees
	nearPlane   = 0.1
	farPlane    = 1000.0
)

// Camera projects world positions onto the logical canvas.
type Camera struct {
	Eye    mgl32.Vec3
	Target mgl32.Vec3

	width, height float64 // Logical canvas size
	focal         float64 // 1 / tan(fovY/2)
	viewProj      mgl32.Mat4
}

// NewCamera creates the default perspective camera for a logical canvas.
func NewCamera(width, height float64) *Camera {
	c := &Camera{Eye: DefaultEye, Target: DefaultTarget}
	c.Resize(width, height)
	return c
}

// Resize recomputes the projection for new logical dimensions.
func (c *Camera) Resize(width, height float64) {
	c.width = width
	c.height = height

	fov := mgl32.DegToRad(defaultFovY)
	c.focal = 1 / math.Tan(float64(fov)/2)

	aspect := float32(width / height)
	proj := mgl32.Perspective(fov, aspect, nearPlane, farPlane)
	view := mgl32.LookAtV(c.Eye, c.Target, mgl32.Vec3{0, 1, 0})
	c.viewProj = proj.Mul4(view)
}

// Project maps a world position to canvas coordinates. depth is the distance
// along the view axis; ok is false for points behind the camera.
func (c *Camera) Project(p mgl32.Vec3) (pt draw.Point, depth float32, ok bool) {
	clip := c.viewProj.Mul4x1(p.Vec4(1))
	w := clip.W()
	if w <= nearPlane {
		return draw.Point{}, 0, false
	}
	ndc := clip.Vec3().Mul(1 / w)
	pt = draw.Point{
		X: (float64(ndc.X()) + 1) / 2 * c.width,
		Y: (1 - float64(ndc.Y())) / 2 * c.height,
	}
	return pt, w, true
}

// PixelsPerUnit returns how many logical pixels one world unit spans at depth.
func (c *Camera) PixelsPerUnit(depth float32) float64 {
	if depth <= 0 {
		return 0
	}
	return c.focal / float64(depth) * c.height / 2
}
