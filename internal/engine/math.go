package engine

import "github.com/go-gl/mathgl/mgl64"

const (
	// hitEpsilon is the minimum parametric distance accepted by every
	// intersection test. Secondary rays are offset by the same amount so
	// they cannot immediately re-hit the surface they originate from.
	hitEpsilon = 1e-4

	// parallelEpsilon is the direction-component magnitude below which a
	// ray counts as parallel to an axis slab.
	parallelEpsilon = 1e-12

	// faceEpsilon is the coordinate tolerance for matching a hit point to
	// a box face when picking its normal.
	faceEpsilon = 1e-3
)

// Ray is a half-line with a unit direction. Build it with NewRay so the
// direction is normalized exactly once.
type Ray struct {
	Origin mgl64.Vec3
	Dir    mgl64.Vec3
}

func NewRay(origin, dir mgl64.Vec3) Ray {
	if l := dir.Len(); l > 0 {
		dir = dir.Mul(1 / l)
	}
	return Ray{Origin: origin, Dir: dir}
}

// At returns the point at parametric distance t along the ray.
func (r Ray) At(t float64) mgl64.Vec3 {
	return r.Origin.Add(r.Dir.Mul(t))
}

// reflect mirrors v about the unit normal n.
func reflect(v, n mgl64.Vec3) mgl64.Vec3 {
	return v.Sub(n.Mul(2 * v.Dot(n)))
}

// mulVec multiplies two vectors componentwise (color modulation).
func mulVec(a, b mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{a[0] * b[0], a[1] * b[1], a[2] * b[2]}
}

func clamp(x, minVal, maxVal float64) float64 {
	if x < minVal {
		return minVal
	}
	if x > maxVal {
		return maxVal
	}
	return x
}

// clampColor clamps every channel to [0,1] so additive lighting cannot
// overflow the framebuffer.
func clampColor(c mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{clamp(c[0], 0, 1), clamp(c[1], 0, 1), clamp(c[2], 0, 1)}
}
