package engine

import (
	"fmt"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/user/raytracer/internal/mesh"
	"github.com/user/raytracer/internal/scene"
)

func vec(v scene.Vec3) mgl64.Vec3 { return mgl64.Vec3{v.X, v.Y, v.Z} }
func col(c scene.Color) mgl64.Vec3 { return mgl64.Vec3{c.R, c.G, c.B} }

// BuildRayTracer constructs a ready-to-render tracer from a scene document.
// baseDir resolves relative mesh paths (normally the scene file's directory).
func BuildRayTracer(doc *scene.Scene, baseDir string) (*RayTracer, error) {
	width, height := doc.Settings.Width, doc.Settings.Height
	if width <= 0 || height <= 0 {
		width, height = 800, 600
	}

	rt := NewRayTracer(width, height)
	if doc.Settings.MaxDepth > 0 {
		rt.SetMaxDepth(doc.Settings.MaxDepth)
	}
	if doc.Settings.Shadows != nil {
		rt.EnableShadows(*doc.Settings.Shadows)
	}
	if doc.Settings.Reflections != nil {
		rt.EnableReflections(*doc.Settings.Reflections)
	}

	if err := PopulateScene(rt.Scene(), doc, baseDir); err != nil {
		return nil, err
	}

	cam := rt.Scene().Camera()
	if cam.Aspect == 0 {
		cam.Aspect = float64(width) / float64(height)
		rt.Scene().SetCamera(cam)
	}
	return rt, nil
}

// PopulateScene clears s and rebuilds it from the document. Referenced OFF
// meshes are loaded, sliced and fan-triangulated here.
func PopulateScene(s *Scene, doc *scene.Scene, baseDir string) error {
	s.Clear()
	s.SetBackground(col(doc.Background))
	s.SetCamera(convertCamera(doc.Camera))

	for _, l := range doc.Lights {
		light := Light{Position: vec(l.Position), Color: col(l.Color), Intensity: l.Intensity}
		if light.Color == (mgl64.Vec3{}) {
			light.Color = mgl64.Vec3{1, 1, 1}
		}
		s.AddLight(light)
	}

	materials := make(map[string]Material, len(doc.Materials))
	for _, m := range doc.Materials {
		materials[m.ID] = Material{
			Color:        col(m.Color),
			Ambient:      m.Ambient,
			Diffuse:      m.Diffuse,
			Specular:     m.Specular,
			Shininess:    m.Shininess,
			Reflectivity: m.Reflectivity,
		}
	}

	for _, o := range doc.Objects {
		prim, err := buildPrimitive(o, baseDir)
		if err != nil {
			return fmt.Errorf("object %q: %w", o.ID, err)
		}
		if mat, ok := materials[o.MaterialID]; ok {
			prim.SetMaterial(mat)
		}
		if o.Transform != nil {
			prim.SetTransform(transformMatrix(o.Transform))
		}
		s.AddPrimitive(prim)
	}
	return nil
}

func convertCamera(c scene.Camera) Camera {
	cam := DefaultCamera()
	cam.Position = vec(c.Position)
	cam.Target = vec(c.Target)
	if up := vec(c.Up); up != (mgl64.Vec3{}) {
		cam.Up = up
	}
	if c.FOV > 0 {
		cam.FOV = c.FOV
	}
	cam.Aspect = c.AspectRatio // zero means "derive from image size" upstream
	return cam
}

func buildPrimitive(o scene.Object, baseDir string) (Primitive, error) {
	switch o.Type {
	case scene.ObjectSphere:
		if o.Radius <= 0 {
			return nil, fmt.Errorf("sphere radius must be positive")
		}
		return NewSphere(vec(o.Center), o.Radius), nil

	case scene.ObjectBox:
		return NewBox(vec(o.Min), vec(o.Max)), nil

	case scene.ObjectMesh:
		path := o.MeshPath
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}
		m, err := mesh.LoadOFF(path)
		if err != nil {
			return nil, err
		}
		if len(o.Slices) > 0 {
			planes := make([]mesh.Plane, len(o.Slices))
			for i, p := range o.Slices {
				planes[i] = mesh.Plane{Point: vec(p.Point), Normal: vec(p.Normal).Normalize()}
			}
			m = mesh.Slice(m, planes)
		}
		return NewMeshObject(m), nil

	default:
		return nil, fmt.Errorf("unknown object type %q", o.Type)
	}
}

// transformMatrix composes translate * rotateZ * rotateY * rotateX * scale.
// An omitted (zero) scale is treated as identity.
func transformMatrix(t *scene.Transform) mgl64.Mat4 {
	sc := vec(t.Scale)
	if sc == (mgl64.Vec3{}) {
		sc = mgl64.Vec3{1, 1, 1}
	}

	m := mgl64.Translate3D(t.Translate.X, t.Translate.Y, t.Translate.Z)
	m = m.Mul4(mgl64.HomogRotate3DZ(mgl64.DegToRad(t.Rotate.Z)))
	m = m.Mul4(mgl64.HomogRotate3DY(mgl64.DegToRad(t.Rotate.Y)))
	m = m.Mul4(mgl64.HomogRotate3DX(mgl64.DegToRad(t.Rotate.X)))
	m = m.Mul4(mgl64.Scale3D(sc[0], sc[1], sc[2]))
	return m
}
