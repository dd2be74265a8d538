package engine

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// HitRecord is the result of a ray-primitive intersection test. Distance is
// initialized to +Inf so any real hit compares smaller. Object is the index
// of the hit primitive inside its scene, or -1 when unknown; it is filled in
// by Scene.Trace, not by the primitives themselves.
type HitRecord struct {
	Hit      bool
	Distance float64
	Point    mgl64.Vec3
	Normal   mgl64.Vec3
	Material Material
	Object   int
}

// miss returns the canonical no-hit record.
func miss() HitRecord {
	return HitRecord{Distance: math.Inf(1), Object: -1}
}

// Primitive is the closed set of renderable shapes. Intersect must be pure:
// it never mutates the primitive, so concurrent calls from render workers are
// safe without locking. SetTransform and SetMaterial may only be called while
// no render is in flight.
type Primitive interface {
	Intersect(r Ray) HitRecord
	Material() Material
	SetMaterial(m Material)
	SetTransform(t mgl64.Mat4)
}
