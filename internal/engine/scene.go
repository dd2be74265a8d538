package engine

import "github.com/go-gl/mathgl/mgl64"

// Light is a point light.
type Light struct {
	Position  mgl64.Vec3
	Color     mgl64.Vec3
	Intensity float64
}

// NewLight returns a white light of the given intensity.
func NewLight(position mgl64.Vec3, intensity float64) Light {
	return Light{Position: position, Color: mgl64.Vec3{1, 1, 1}, Intensity: intensity}
}

// Scene owns the primitives, lights, camera and background color for a
// render. It must not be mutated while a render is in flight: populate or
// edit it strictly before Render is called or strictly after it returns.
type Scene struct {
	primitives []Primitive
	lights     []Light
	camera     Camera
	background mgl64.Vec3
}

func NewScene() *Scene {
	return &Scene{
		camera:     DefaultCamera(),
		background: mgl64.Vec3{0.2, 0.2, 0.2},
	}
}

// AddPrimitive takes ownership of p and returns its index in the scene.
func (s *Scene) AddPrimitive(p Primitive) int {
	s.primitives = append(s.primitives, p)
	return len(s.primitives) - 1
}

func (s *Scene) AddLight(l Light) {
	s.lights = append(s.lights, l)
}

func (s *Scene) SetCamera(c Camera)             { s.camera = c }
func (s *Scene) Camera() Camera                 { return s.camera }
func (s *Scene) SetBackground(c mgl64.Vec3)     { s.background = c }
func (s *Scene) Background() mgl64.Vec3         { return s.background }
func (s *Scene) Lights() []Light                { return s.lights }
func (s *Scene) Primitives() []Primitive        { return s.primitives }
func (s *Scene) Primitive(i int) Primitive      { return s.primitives[i] }

// Clear drops all primitives and lights. Camera and background are kept.
func (s *Scene) Clear() {
	s.primitives = nil
	s.lights = nil
}

// Trace returns the nearest intersection of r with any primitive, or the
// no-hit record when nothing is hit. The record's Object field is the index
// of the hit primitive.
func (s *Scene) Trace(r Ray) HitRecord {
	closest := miss()
	for i, p := range s.primitives {
		if h := p.Intersect(r); h.Hit && h.Distance < closest.Distance {
			h.Object = i
			closest = h
		}
	}
	return closest
}
