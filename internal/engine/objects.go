package engine

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Sphere is defined by a world-space center and radius.
type Sphere struct {
	center mgl64.Vec3
	radius float64
	mat    Material
}

func NewSphere(center mgl64.Vec3, radius float64) *Sphere {
	return &Sphere{center: center, radius: radius, mat: DefaultMaterial()}
}

func (s *Sphere) Intersect(r Ray) HitRecord {
	oc := r.Origin.Sub(s.center)
	a := r.Dir.Dot(r.Dir)
	halfB := oc.Dot(r.Dir)
	c := oc.Dot(oc) - s.radius*s.radius

	disc := halfB*halfB - a*c
	if disc < 0 {
		return miss()
	}
	sqrtD := math.Sqrt(disc)

	// Prefer the near root; fall back to the far root when the near one is
	// behind the origin or within the self-intersection threshold.
	t := (-halfB - sqrtD) / a
	if t < hitEpsilon {
		t = (-halfB + sqrtD) / a
		if t < hitEpsilon {
			return miss()
		}
	}

	p := r.At(t)
	return HitRecord{
		Hit:      true,
		Distance: t,
		Point:    p,
		Normal:   p.Sub(s.center).Mul(1 / s.radius),
		Material: s.mat,
		Object:   -1,
	}
}

func (s *Sphere) Material() Material     { return s.mat }
func (s *Sphere) SetMaterial(m Material) { s.mat = m }

// SetTransform moves the center through the matrix and scales the radius by
// the length of the transformed x axis (uniform scale assumed).
func (s *Sphere) SetTransform(t mgl64.Mat4) {
	s.center = mgl64.TransformCoordinate(s.center, t)
	s.radius *= mgl64.TransformNormal(mgl64.Vec3{1, 0, 0}, t).Len()
}

// Box is axis-aligned in its local space; an affine transform and its cached
// inverse map between local and world space.
type Box struct {
	min, max mgl64.Vec3
	xform    mgl64.Mat4
	inv      mgl64.Mat4
	mat      Material
}

func NewBox(min, max mgl64.Vec3) *Box {
	return &Box{
		min:   min,
		max:   max,
		xform: mgl64.Ident4(),
		inv:   mgl64.Ident4(),
		mat:   DefaultMaterial(),
	}
}

func (b *Box) Intersect(r Ray) HitRecord {
	// Work in local space. The direction is deliberately not re-normalized
	// so the slab parameter t matches the world-space ray parameter.
	localOrig := mgl64.TransformCoordinate(r.Origin, b.inv)
	localDir := mgl64.TransformNormal(r.Dir, b.inv)

	tMin, tMax := math.Inf(-1), math.Inf(1)
	for i := 0; i < 3; i++ {
		if math.Abs(localDir[i]) < parallelEpsilon {
			// Ray parallel to this slab: miss unless the origin lies inside it.
			if localOrig[i] < b.min[i] || localOrig[i] > b.max[i] {
				return miss()
			}
			continue
		}
		invD := 1 / localDir[i]
		tNear := (b.min[i] - localOrig[i]) * invD
		tFar := (b.max[i] - localOrig[i]) * invD
		if invD < 0 {
			tNear, tFar = tFar, tNear
		}
		if tNear > tMin {
			tMin = tNear
		}
		if tFar < tMax {
			tMax = tFar
		}
		if tMax < tMin {
			return miss()
		}
	}

	t := tMin
	if t < hitEpsilon {
		if tMax < hitEpsilon {
			return miss() // box entirely behind the ray
		}
		t = tMax // origin is inside the box, use the exit face
	}

	localPoint := localOrig.Add(localDir.Mul(t))
	localNormal := b.faceNormal(localPoint)

	// Normals transform by the inverse transpose, which stays correct under
	// non-uniform scale.
	worldNormal := mgl64.TransformNormal(localNormal, b.inv.Transpose())

	return HitRecord{
		Hit:      true,
		Distance: t,
		Point:    r.At(t),
		Normal:   worldNormal.Normalize(),
		Material: b.mat,
		Object:   -1,
	}
}

// faceNormal selects the axis unit normal of the face containing p.
func (b *Box) faceNormal(p mgl64.Vec3) mgl64.Vec3 {
	switch {
	case math.Abs(p[0]-b.min[0]) < faceEpsilon:
		return mgl64.Vec3{-1, 0, 0}
	case math.Abs(p[0]-b.max[0]) < faceEpsilon:
		return mgl64.Vec3{1, 0, 0}
	case math.Abs(p[1]-b.min[1]) < faceEpsilon:
		return mgl64.Vec3{0, -1, 0}
	case math.Abs(p[1]-b.max[1]) < faceEpsilon:
		return mgl64.Vec3{0, 1, 0}
	case math.Abs(p[2]-b.min[2]) < faceEpsilon:
		return mgl64.Vec3{0, 0, -1}
	default:
		return mgl64.Vec3{0, 0, 1}
	}
}

func (b *Box) Material() Material     { return b.mat }
func (b *Box) SetMaterial(m Material) { b.mat = m }

func (b *Box) SetTransform(t mgl64.Mat4) {
	b.xform = t
	b.inv = t.Inv()
}

// Triangle stores three world-space vertices and a precomputed unit face
// normal (flat shading).
type Triangle struct {
	v0, v1, v2 mgl64.Vec3
	normal     mgl64.Vec3
	mat        Material
}

func NewTriangle(v0, v1, v2 mgl64.Vec3) *Triangle {
	t := &Triangle{v0: v0, v1: v1, v2: v2, mat: DefaultMaterial()}
	t.computeNormal()
	return t
}

func (t *Triangle) computeNormal() {
	t.normal = t.v1.Sub(t.v0).Cross(t.v2.Sub(t.v0)).Normalize()
}

// Intersect implements the Möller–Trumbore algorithm.
func (t *Triangle) Intersect(r Ray) HitRecord {
	e1 := t.v1.Sub(t.v0)
	e2 := t.v2.Sub(t.v0)

	h := r.Dir.Cross(e2)
	a := e1.Dot(h)
	if a > -hitEpsilon && a < hitEpsilon {
		return miss() // ray parallel to the triangle plane
	}

	f := 1 / a
	s := r.Origin.Sub(t.v0)
	u := f * s.Dot(h)
	if u < 0 || u > 1 {
		return miss()
	}

	q := s.Cross(e1)
	v := f * r.Dir.Dot(q)
	if v < 0 || u+v > 1 {
		return miss()
	}

	dist := f * e2.Dot(q)
	if dist < hitEpsilon {
		return miss() // behind the ray origin
	}

	return HitRecord{
		Hit:      true,
		Distance: dist,
		Point:    r.At(dist),
		Normal:   t.normal,
		Material: t.mat,
		Object:   -1,
	}
}

func (t *Triangle) Material() Material     { return t.mat }
func (t *Triangle) SetMaterial(m Material) { t.mat = m }

func (t *Triangle) SetTransform(m mgl64.Mat4) {
	t.v0 = mgl64.TransformCoordinate(t.v0, m)
	t.v1 = mgl64.TransformCoordinate(t.v1, m)
	t.v2 = mgl64.TransformCoordinate(t.v2, m)
	t.computeNormal()
}
