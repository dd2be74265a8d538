package engine

import (
	"math"
	"os"
	"runtime"
	"strconv"
	"sync"

	"github.com/go-gl/mathgl/mgl64"
)

// DefaultMaxDepth is the recursion limit for reflection rays.
const DefaultMaxDepth = 3

// RayTracer owns a scene and a framebuffer and renders the former into the
// latter with a recursive Whitted-style shader. Parameter setters may be
// called freely between Render calls but never during one.
type RayTracer struct {
	scene       *Scene
	fb          *Framebuffer
	maxDepth    int
	shadows     bool
	reflections bool
}

func NewRayTracer(width, height int) *RayTracer {
	return &RayTracer{
		scene:       NewScene(),
		fb:          NewFramebuffer(width, height),
		maxDepth:    DefaultMaxDepth,
		shadows:     true,
		reflections: true,
	}
}

func (rt *RayTracer) Scene() *Scene             { return rt.scene }
func (rt *RayTracer) Framebuffer() *Framebuffer { return rt.fb }
func (rt *RayTracer) MaxDepth() int             { return rt.maxDepth }
func (rt *RayTracer) ShadowsEnabled() bool      { return rt.shadows }
func (rt *RayTracer) ReflectionsEnabled() bool  { return rt.reflections }

// SetDimensions replaces the framebuffer and updates the camera aspect.
func (rt *RayTracer) SetDimensions(width, height int) {
	rt.fb = NewFramebuffer(width, height)
	cam := rt.scene.Camera()
	cam.Aspect = float64(width) / float64(height)
	rt.scene.SetCamera(cam)
}

func (rt *RayTracer) SetMaxDepth(depth int) {
	if depth < 1 {
		depth = 1
	}
	rt.maxDepth = depth
}

func (rt *RayTracer) EnableShadows(enable bool)     { rt.shadows = enable }
func (rt *RayTracer) EnableReflections(enable bool) { rt.reflections = enable }

// workerCount mirrors the hardware concurrency, overridable through the
// RAYTRACER_WORKERS environment variable.
func workerCount() int {
	n := runtime.NumCPU()
	if n < 1 {
		n = 1
	}
	if env := os.Getenv("RAYTRACER_WORKERS"); env != "" {
		if custom, err := strconv.Atoi(env); err == nil && custom > 0 && custom <= 128 {
			n = custom
		}
	}
	return n
}

// Render traces every pixel of the framebuffer. The image rows are split
// into contiguous horizontal bands, one worker goroutine per band, and the
// call blocks until all workers have joined. With no primitives, no lights or
// an empty framebuffer there is nothing to do, so the call is a no-op and the
// previous buffer contents are left untouched.
func (rt *RayTracer) Render() {
	if len(rt.scene.primitives) == 0 || len(rt.scene.lights) == 0 {
		return
	}

	width, height := rt.fb.Size()
	if width == 0 || height == 0 {
		return
	}
	workers := workerCount()
	if workers > height {
		workers = height
	}
	bandRows := height / workers

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		startY := i * bandRows
		endY := startY + bandRows
		if i == workers-1 {
			endY = height // last band absorbs the remainder rows
		}

		wg.Add(1)
		go func(y0, y1 int) {
			defer wg.Done()
			for y := y0; y < y1; y++ {
				for x := 0; x < width; x++ {
					u := (float64(x) + 0.5) / float64(width)
					v := (float64(y) + 0.5) / float64(height)
					ray := rt.scene.camera.GenerateRay(u, v)
					rt.fb.SetPixel(x, y, rt.traceRay(ray, rt.maxDepth))
				}
			}
		}(startY, endY)
	}
	wg.Wait()
}

// traceRay resolves the color seen along ray, recursing into reflections
// until depth reaches zero or a ray escapes the scene.
func (rt *RayTracer) traceRay(ray Ray, depth int) mgl64.Vec3 {
	if depth <= 0 {
		return mgl64.Vec3{}
	}

	hit := rt.scene.Trace(ray)
	if !hit.Hit {
		return rt.scene.background
	}

	color := rt.lighting(hit, ray)

	if rt.reflections && hit.Material.Reflectivity > 0 {
		reflDir := reflect(ray.Dir, hit.Normal)
		reflRay := NewRay(hit.Point.Add(reflDir.Mul(hitEpsilon)), reflDir)
		reflColor := rt.traceRay(reflRay, depth-1)

		// Blend instead of add so reflection cannot gain energy.
		k := hit.Material.Reflectivity
		color = color.Mul(1 - k).Add(reflColor.Mul(k))
	}

	return clampColor(color)
}

// lighting evaluates the Phong local illumination model at a hit point:
// ambient always, diffuse and specular per light unless the point is in that
// light's shadow.
func (rt *RayTracer) lighting(hit HitRecord, ray Ray) mgl64.Vec3 {
	mat := hit.Material
	color := mat.Color.Mul(mat.Ambient)

	for _, light := range rt.scene.lights {
		toLight := light.Position.Sub(hit.Point)
		lightDist := toLight.Len()
		if lightDist == 0 {
			continue
		}
		lightDir := toLight.Mul(1 / lightDist)

		if rt.shadows && rt.inShadow(hit.Point, lightDir, lightDist) {
			continue
		}

		diff := math.Max(hit.Normal.Dot(lightDir), 0)
		diffuse := mulVec(mat.Color, light.Color).Mul(mat.Diffuse * diff * light.Intensity)

		viewDir := ray.Dir.Mul(-1)
		reflectDir := reflect(lightDir.Mul(-1), hit.Normal)
		spec := math.Pow(math.Max(viewDir.Dot(reflectDir), 0), mat.Shininess)
		specular := light.Color.Mul(mat.Specular * spec * light.Intensity)

		color = color.Add(diffuse).Add(specular)
	}

	return color
}

// inShadow reports whether an occluder sits between point and the light.
// The shadow ray starts slightly off the surface along the light direction.
func (rt *RayTracer) inShadow(point, lightDir mgl64.Vec3, lightDist float64) bool {
	shadowRay := NewRay(point.Add(lightDir.Mul(hitEpsilon)), lightDir)
	h := rt.scene.Trace(shadowRay)
	return h.Hit && h.Distance < lightDist
}
