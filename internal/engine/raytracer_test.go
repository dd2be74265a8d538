package engine

import (
	"bytes"
	"image/color"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTracer(width, height int) *RayTracer {
	rt := NewRayTracer(width, height)
	cam := DefaultCamera()
	cam.Aspect = float64(width) / float64(height)
	rt.Scene().SetCamera(cam)
	return rt
}

func redSphereScene(rt *RayTracer) {
	sp := NewSphere(mgl64.Vec3{0, 0, 0}, 1)
	mat := DefaultMaterial()
	mat.Color = mgl64.Vec3{0.9, 0.1, 0.1}
	sp.SetMaterial(mat)
	rt.Scene().AddPrimitive(sp)
	rt.Scene().AddLight(NewLight(mgl64.Vec3{5, 5, 5}, 1))
}

func TestTraceRayDepthZeroIsBlack(t *testing.T) {
	rt := testTracer(8, 8)
	redSphereScene(rt)

	ray := NewRay(mgl64.Vec3{0, 0, 5}, mgl64.Vec3{0, 0, -1})
	assert.Equal(t, mgl64.Vec3{}, rt.traceRay(ray, 0))
}

func TestTraceRayMissReturnsBackground(t *testing.T) {
	rt := testTracer(8, 8)
	redSphereScene(rt)
	bg := mgl64.Vec3{0.2, 0.2, 0.3}
	rt.Scene().SetBackground(bg)

	ray := NewRay(mgl64.Vec3{0, 0, 5}, mgl64.Vec3{0, 1, 0})
	assert.Equal(t, bg, rt.traceRay(ray, rt.MaxDepth()))
}

func TestTraceRayOutputClamped(t *testing.T) {
	rt := testTracer(8, 8)
	sp := NewSphere(mgl64.Vec3{0, 0, 0}, 1)
	mat := DefaultMaterial()
	mat.Color = mgl64.Vec3{1, 1, 1}
	mat.Diffuse = 1
	sp.SetMaterial(mat)
	rt.Scene().AddPrimitive(sp)
	// Three strong lights push the raw sum well past 1.
	rt.Scene().AddLight(NewLight(mgl64.Vec3{0, 0, 5}, 10))
	rt.Scene().AddLight(NewLight(mgl64.Vec3{5, 0, 5}, 10))
	rt.Scene().AddLight(NewLight(mgl64.Vec3{-5, 0, 5}, 10))

	c := rt.traceRay(NewRay(mgl64.Vec3{0, 0, 5}, mgl64.Vec3{0, 0, -1}), 1)
	for i := 0; i < 3; i++ {
		assert.LessOrEqual(t, c[i], 1.0)
		assert.GreaterOrEqual(t, c[i], 0.0)
	}
}

func TestShadowLeavesAmbientOnly(t *testing.T) {
	rt := testTracer(8, 8)

	ground := NewTriangle(
		mgl64.Vec3{-10, 0, -10},
		mgl64.Vec3{0, 0, 10},
		mgl64.Vec3{10, 0, -10},
	)
	mat := DefaultMaterial()
	mat.Color = mgl64.Vec3{0.5, 0.5, 0.5}
	ground.SetMaterial(mat)
	rt.Scene().AddPrimitive(ground)

	// Occluder on the segment between the lit point and the light.
	rt.Scene().AddPrimitive(NewSphere(mgl64.Vec3{0, 2.5, 0}, 0.5))
	rt.Scene().AddLight(NewLight(mgl64.Vec3{0, 5, 0}, 1))

	ray := NewRay(mgl64.Vec3{0, 1, 5}, mgl64.Vec3{0, -1, -5})

	shadowed := rt.traceRay(ray, 1)
	want := mat.Color.Mul(mat.Ambient)
	for i := 0; i < 3; i++ {
		assert.InDelta(t, want[i], shadowed[i], 1e-9)
	}

	// With shadows disabled the light contributes again.
	rt.EnableShadows(false)
	lit := rt.traceRay(ray, 1)
	assert.Greater(t, lit[0], shadowed[0])
}

func TestReflectionBlend(t *testing.T) {
	mkTracer := func(reflectivity float64) (*RayTracer, Ray) {
		rt := testTracer(8, 8)
		ground := NewTriangle(
			mgl64.Vec3{-5, 0, -5},
			mgl64.Vec3{0, 0, 5},
			mgl64.Vec3{5, 0, -5},
		)
		mat := DefaultMaterial()
		mat.Color = mgl64.Vec3{0.4, 0.4, 0.4}
		mat.Diffuse = 0.5
		mat.Reflectivity = reflectivity
		ground.SetMaterial(mat)
		rt.Scene().AddPrimitive(ground)
		rt.Scene().AddLight(NewLight(mgl64.Vec3{0, 5, 0}, 0.5))
		rt.Scene().SetBackground(mgl64.Vec3{0.1, 0.3, 0.6})

		// Hits the ground at the origin and reflects up into the background.
		return rt, NewRay(mgl64.Vec3{0, 1, 1}, mgl64.Vec3{0, -1, -1})
	}

	matte, ray := mkTracer(0)
	local := matte.traceRay(ray, 3)

	k := 0.5
	mirror, ray := mkTracer(k)
	got := mirror.traceRay(ray, 3)

	bg := mirror.Scene().Background()
	for i := 0; i < 3; i++ {
		want := local[i]*(1-k) + bg[i]*k
		assert.InDelta(t, want, got[i], 1e-9)
	}
}

func TestReflectionsDisabled(t *testing.T) {
	rt := testTracer(8, 8)
	sp := NewSphere(mgl64.Vec3{0, 0, 0}, 1)
	mat := DefaultMaterial()
	mat.Reflectivity = 0.8
	sp.SetMaterial(mat)
	rt.Scene().AddPrimitive(sp)
	// Weak light keeps the local color under 1 so the clamp cannot mask
	// the difference between the two traces.
	rt.Scene().AddLight(NewLight(mgl64.Vec3{0, 0, 5}, 0.3))
	rt.Scene().SetBackground(mgl64.Vec3{0, 0, 1})

	ray := NewRay(mgl64.Vec3{0, 0, 5}, mgl64.Vec3{0, 0, -1})
	withRefl := rt.traceRay(ray, 3)
	rt.EnableReflections(false)
	withoutRefl := rt.traceRay(ray, 3)

	assert.NotEqual(t, withRefl, withoutRefl)
	// No blue leaks in from the background without the reflection bounce.
	assert.Less(t, withoutRefl[2], withRefl[2])
}

func TestRenderEndToEnd(t *testing.T) {
	rt := testTracer(64, 64)
	redSphereScene(rt)
	rt.Scene().SetBackground(mgl64.Vec3{0.2, 0.2, 0.3})

	rt.Render()

	img := rt.Framebuffer().Image()
	center := img.RGBAAt(32, 32)
	assert.Greater(t, center.R, center.G, "sphere center should look red")
	assert.Greater(t, center.R, center.B)

	// Corner rays escape the sphere and land on the background,
	// quantized to 0.2*255 = 51 and 0.3*255 = 76.
	want := color.RGBA{R: 51, G: 51, B: 76, A: 255}
	for _, p := range [][2]int{{0, 0}, {63, 0}, {0, 63}, {63, 63}} {
		assert.Equal(t, want, img.RGBAAt(p[0], p[1]))
	}
}

func TestRenderDeterministic(t *testing.T) {
	rt := testTracer(32, 32)
	redSphereScene(rt)

	rt.Render()
	first := rt.Framebuffer().Image()
	rt.Render()
	second := rt.Framebuffer().Image()

	assert.True(t, bytes.Equal(first.Pix, second.Pix))
}

func TestRenderNoopWithoutLights(t *testing.T) {
	rt := testTracer(8, 8)
	rt.Scene().AddPrimitive(NewSphere(mgl64.Vec3{}, 1))
	rt.Framebuffer().Fill(mgl64.Vec3{0, 1, 0})

	rt.Render()

	img := rt.Framebuffer().Image()
	assert.Equal(t, uint8(255), img.RGBAAt(4, 4).G, "buffer must be untouched")
}

func TestRenderNoopWithoutPrimitives(t *testing.T) {
	rt := testTracer(8, 8)
	rt.Scene().AddLight(NewLight(mgl64.Vec3{0, 5, 0}, 1))
	rt.Framebuffer().Fill(mgl64.Vec3{1, 0, 0})

	rt.Render()

	assert.Equal(t, uint8(255), rt.Framebuffer().Image().RGBAAt(1, 1).R)
}

func TestRenderZeroSizeFramebuffer(t *testing.T) {
	for _, dim := range [][2]int{{8, 0}, {0, 8}, {0, 0}} {
		rt := NewRayTracer(dim[0], dim[1])
		redSphereScene(rt)
		require.NotPanics(t, rt.Render)
	}
}

func TestRenderSingleRowImage(t *testing.T) {
	// More CPUs than rows: worker count must clamp to the row count.
	rt := testTracer(16, 1)
	redSphereScene(rt)
	require.NotPanics(t, rt.Render)
}

func TestWorkerCountEnvOverride(t *testing.T) {
	t.Setenv("RAYTRACER_WORKERS", "3")
	assert.Equal(t, 3, workerCount())

	t.Setenv("RAYTRACER_WORKERS", "0")
	assert.GreaterOrEqual(t, workerCount(), 1)

	t.Setenv("RAYTRACER_WORKERS", "junk")
	assert.GreaterOrEqual(t, workerCount(), 1)
}

func TestSetMaxDepthFloor(t *testing.T) {
	rt := testTracer(4, 4)
	rt.SetMaxDepth(-2)
	assert.Equal(t, 1, rt.MaxDepth())
	rt.SetMaxDepth(7)
	assert.Equal(t, 7, rt.MaxDepth())
}

func TestSetDimensionsUpdatesAspect(t *testing.T) {
	rt := testTracer(4, 4)
	rt.SetDimensions(200, 100)

	w, h := rt.Framebuffer().Size()
	assert.Equal(t, 200, w)
	assert.Equal(t, 100, h)
	assert.InDelta(t, 2.0, rt.Scene().Camera().Aspect, 1e-9)
}
