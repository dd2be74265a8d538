package engine

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Camera is a pinhole camera described by position, look-at target, up hint,
// vertical field of view in degrees and aspect ratio. The orthonormal basis
// is rebuilt on every GenerateRay call so parameter edits (live camera drags
// in the UI) take effect without any cache invalidation step.
type Camera struct {
	Position mgl64.Vec3
	Target   mgl64.Vec3
	Up       mgl64.Vec3
	FOV      float64
	Aspect   float64
}

// DefaultCamera looks at the origin from (0,0,5).
func DefaultCamera() Camera {
	return Camera{
		Position: mgl64.Vec3{0, 0, 5},
		Target:   mgl64.Vec3{0, 0, 0},
		Up:       mgl64.Vec3{0, 1, 0},
		FOV:      60,
		Aspect:   16.0 / 9.0,
	}
}

// GenerateRay maps normalized image coordinates u,v in [0,1] (u across the
// width, v down the height) to a primary ray through the pixel.
func (c Camera) GenerateRay(u, v float64) Ray {
	ndcX := 2*u - 1
	ndcY := 1 - 2*v // v=0 is the top row

	forward := c.Target.Sub(c.Position).Normalize()
	right := forward.Cross(c.Up).Normalize()
	trueUp := right.Cross(forward)

	tanHalf := math.Tan(mgl64.DegToRad(c.FOV) / 2)
	dir := forward.
		Add(right.Mul(ndcX * tanHalf * c.Aspect)).
		Add(trueUp.Mul(ndcY * tanHalf))

	return NewRay(c.Position, dir)
}
