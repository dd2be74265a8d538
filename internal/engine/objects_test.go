package engine

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSphereIntersectFrontHit(t *testing.T) {
	s := NewSphere(mgl64.Vec3{0, 0, 0}, 1)
	r := NewRay(mgl64.Vec3{0, 0, 5}, mgl64.Vec3{0, 0, -1})

	hit := s.Intersect(r)
	require.True(t, hit.Hit)
	assert.InDelta(t, 4.0, hit.Distance, 1e-9) // 5 - radius
	assert.InDelta(t, 0.0, hit.Normal[0], 1e-9)
	assert.InDelta(t, 0.0, hit.Normal[1], 1e-9)
	assert.InDelta(t, 1.0, hit.Normal[2], 1e-9)
}

func TestSphereIntersectMiss(t *testing.T) {
	s := NewSphere(mgl64.Vec3{0, 0, 0}, 1)
	r := NewRay(mgl64.Vec3{0, 0, 5}, mgl64.Vec3{0, 1, 0})

	assert.False(t, s.Intersect(r).Hit)
}

func TestSphereIntersectBehindOrigin(t *testing.T) {
	s := NewSphere(mgl64.Vec3{0, 0, 0}, 1)
	// Ray starts past the sphere, pointing away from it.
	r := NewRay(mgl64.Vec3{0, 0, -5}, mgl64.Vec3{0, 0, -1})

	assert.False(t, s.Intersect(r).Hit)
}

func TestSphereIntersectFromInside(t *testing.T) {
	s := NewSphere(mgl64.Vec3{0, 0, 0}, 2)
	r := NewRay(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 0, -1})

	hit := s.Intersect(r)
	require.True(t, hit.Hit)
	assert.InDelta(t, 2.0, hit.Distance, 1e-9) // far root used
}

func TestTriangleIntersectVertexAndEdges(t *testing.T) {
	tri := NewTriangle(
		mgl64.Vec3{0, 0, 0},
		mgl64.Vec3{1, 0, 0},
		mgl64.Vec3{0, 1, 0},
	)
	down := mgl64.Vec3{0, 0, -1}

	cases := []struct {
		name string
		from mgl64.Vec3
		hit  bool
	}{
		{"exact vertex v0", mgl64.Vec3{0, 0, 1}, true},
		{"inside near u edge", mgl64.Vec3{0.01, 0.3, 1}, true},
		{"outside u edge", mgl64.Vec3{-0.01, 0.3, 1}, false},
		{"inside near v edge", mgl64.Vec3{0.3, 0.01, 1}, true},
		{"outside v edge", mgl64.Vec3{0.3, -0.01, 1}, false},
		{"inside near hypotenuse", mgl64.Vec3{0.45, 0.45, 1}, true},
		{"outside hypotenuse", mgl64.Vec3{0.6, 0.6, 1}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := tri.Intersect(NewRay(tc.from, down))
			assert.Equal(t, tc.hit, got.Hit)
		})
	}
}

func TestTriangleParallelRay(t *testing.T) {
	tri := NewTriangle(
		mgl64.Vec3{0, 0, 0},
		mgl64.Vec3{1, 0, 0},
		mgl64.Vec3{0, 1, 0},
	)
	// Ray lies in the triangle's plane.
	r := NewRay(mgl64.Vec3{-1, 0.2, 0}, mgl64.Vec3{1, 0, 0})

	assert.False(t, tri.Intersect(r).Hit)
}

func TestTriangleFlatNormal(t *testing.T) {
	tri := NewTriangle(
		mgl64.Vec3{0, 0, 0},
		mgl64.Vec3{1, 0, 0},
		mgl64.Vec3{0, 1, 0},
	)
	hit := tri.Intersect(NewRay(mgl64.Vec3{0.2, 0.2, 1}, mgl64.Vec3{0, 0, -1}))
	require.True(t, hit.Hit)
	assert.InDelta(t, 1.0, hit.Normal[2], 1e-9)
}

func TestBoxIntersectFromOutside(t *testing.T) {
	b := NewBox(mgl64.Vec3{-1, -1, -1}, mgl64.Vec3{1, 1, 1})
	hit := b.Intersect(NewRay(mgl64.Vec3{0, 0, 5}, mgl64.Vec3{0, 0, -1}))

	require.True(t, hit.Hit)
	assert.InDelta(t, 4.0, hit.Distance, 1e-9)
	assert.InDelta(t, 1.0, hit.Normal[2], 1e-9)
}

func TestBoxIntersectFromInside(t *testing.T) {
	b := NewBox(mgl64.Vec3{-1, -1, -1}, mgl64.Vec3{1, 1, 1})
	hit := b.Intersect(NewRay(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 0, -1}))

	require.True(t, hit.Hit)
	assert.InDelta(t, 1.0, hit.Distance, 1e-9) // far slab boundary
	// Outward normal of the exit face.
	assert.InDelta(t, -1.0, hit.Normal[2], 1e-9)
}

func TestBoxIntersectMiss(t *testing.T) {
	b := NewBox(mgl64.Vec3{-1, -1, -1}, mgl64.Vec3{1, 1, 1})
	r := NewRay(mgl64.Vec3{5, 5, 5}, mgl64.Vec3{0, 0, -1})

	assert.False(t, b.Intersect(r).Hit)
}

func TestBoxIntersectParallelSlab(t *testing.T) {
	b := NewBox(mgl64.Vec3{-1, -1, -1}, mgl64.Vec3{1, 1, 1})
	// Direction has zero x and y components; origin outside the x slab.
	r := NewRay(mgl64.Vec3{3, 0, 5}, mgl64.Vec3{0, 0, -1})

	assert.False(t, b.Intersect(r).Hit)
}

func TestBoxTransform(t *testing.T) {
	b := NewBox(mgl64.Vec3{-1, -1, -1}, mgl64.Vec3{1, 1, 1})
	b.SetTransform(mgl64.Translate3D(3, 0, 0))

	// The old location no longer intersects.
	assert.False(t, b.Intersect(NewRay(mgl64.Vec3{0, 0, 5}, mgl64.Vec3{0, 0, -1})).Hit)

	hit := b.Intersect(NewRay(mgl64.Vec3{3, 0, 5}, mgl64.Vec3{0, 0, -1}))
	require.True(t, hit.Hit)
	assert.InDelta(t, 4.0, hit.Distance, 1e-9)
	assert.InDelta(t, 1.0, hit.Normal[2], 1e-9)
}

func TestTriangleTransformRecomputesNormal(t *testing.T) {
	tri := NewTriangle(
		mgl64.Vec3{0, 0, 0},
		mgl64.Vec3{1, 0, 0},
		mgl64.Vec3{0, 1, 0},
	)
	// Rotate 90 degrees about x: the triangle moves into the xz plane.
	tri.SetTransform(mgl64.HomogRotate3DX(mgl64.DegToRad(90)))

	hit := tri.Intersect(NewRay(mgl64.Vec3{0.2, 1, 0.2}, mgl64.Vec3{0, -1, 0}))
	require.True(t, hit.Hit)
	assert.InDelta(t, 0.0, hit.Normal[2], 1e-9)
	assert.InDelta(t, 1.0, math.Abs(hit.Normal[1]), 1e-9)
}
