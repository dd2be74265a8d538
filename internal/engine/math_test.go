package engine

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestNewRayNormalizesDirection(t *testing.T) {
	r := NewRay(mgl64.Vec3{1, 2, 3}, mgl64.Vec3{0, 0, -10})
	assert.InDelta(t, 1.0, r.Dir.Len(), 1e-9)
	assert.Equal(t, mgl64.Vec3{0, 0, -1}, r.Dir)
}

func TestRayAt(t *testing.T) {
	r := NewRay(mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 1, 0})
	assert.Equal(t, mgl64.Vec3{1, 3, 0}, r.At(3))
}

func TestReflect(t *testing.T) {
	// 45-degree incidence on a floor bounces up at 45 degrees.
	in := mgl64.Vec3{1, -1, 0}.Normalize()
	out := reflect(in, mgl64.Vec3{0, 1, 0})
	assert.InDelta(t, in[0], out[0], 1e-9)
	assert.InDelta(t, -in[1], out[1], 1e-9)
}

func TestClampColor(t *testing.T) {
	c := clampColor(mgl64.Vec3{1.5, -0.2, 0.5})
	assert.Equal(t, mgl64.Vec3{1, 0, 0.5}, c)
}
