package engine

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/user/raytracer/internal/raster"
)

// Edged primitives can report their outline segments for the wireframe view.
type Edged interface {
	Edges() [][2]mgl64.Vec3
}

// Faced primitives can report their polygon faces for the flat 2D view.
type Faced interface {
	Faces() [][]mgl64.Vec3
}

// sphereSegments is the great-circle tessellation used for sphere outlines.
const sphereSegments = 32

func (s *Sphere) Edges() [][2]mgl64.Vec3 {
	// Three axis-aligned great circles approximate the outline.
	axes := [3][2]mgl64.Vec3{
		{{1, 0, 0}, {0, 1, 0}},
		{{1, 0, 0}, {0, 0, 1}},
		{{0, 1, 0}, {0, 0, 1}},
	}
	var edges [][2]mgl64.Vec3
	for _, ax := range axes {
		prev := s.center.Add(ax[0].Mul(s.radius))
		for i := 1; i <= sphereSegments; i++ {
			ang := 2 * math.Pi * float64(i) / sphereSegments
			p := s.center.
				Add(ax[0].Mul(s.radius * math.Cos(ang))).
				Add(ax[1].Mul(s.radius * math.Sin(ang)))
			edges = append(edges, [2]mgl64.Vec3{prev, p})
			prev = p
		}
	}
	return edges
}

// corners returns the eight box corners in world space.
func (b *Box) corners() [8]mgl64.Vec3 {
	var c [8]mgl64.Vec3
	for i := 0; i < 8; i++ {
		local := mgl64.Vec3{b.min[0], b.min[1], b.min[2]}
		if i&1 != 0 {
			local[0] = b.max[0]
		}
		if i&2 != 0 {
			local[1] = b.max[1]
		}
		if i&4 != 0 {
			local[2] = b.max[2]
		}
		c[i] = mgl64.TransformCoordinate(local, b.xform)
	}
	return c
}

func (b *Box) Edges() [][2]mgl64.Vec3 {
	c := b.corners()
	idx := [12][2]int{
		{0, 1}, {1, 3}, {3, 2}, {2, 0}, // min-z face
		{4, 5}, {5, 7}, {7, 6}, {6, 4}, // max-z face
		{0, 4}, {1, 5}, {2, 6}, {3, 7},
	}
	edges := make([][2]mgl64.Vec3, len(idx))
	for i, e := range idx {
		edges[i] = [2]mgl64.Vec3{c[e[0]], c[e[1]]}
	}
	return edges
}

func (b *Box) Faces() [][]mgl64.Vec3 {
	c := b.corners()
	idx := [6][4]int{
		{0, 1, 3, 2}, {4, 5, 7, 6},
		{0, 1, 5, 4}, {2, 3, 7, 6},
		{0, 2, 6, 4}, {1, 3, 7, 5},
	}
	faces := make([][]mgl64.Vec3, len(idx))
	for i, f := range idx {
		faces[i] = []mgl64.Vec3{c[f[0]], c[f[1]], c[f[2]], c[f[3]]}
	}
	return faces
}

func (t *Triangle) Edges() [][2]mgl64.Vec3 {
	return [][2]mgl64.Vec3{{t.v0, t.v1}, {t.v1, t.v2}, {t.v2, t.v0}}
}

func (t *Triangle) Faces() [][]mgl64.Vec3 {
	return [][]mgl64.Vec3{{t.v0, t.v1, t.v2}}
}

func (mo *MeshObject) Edges() [][2]mgl64.Vec3 {
	var edges [][2]mgl64.Vec3
	for _, tri := range mo.triangles {
		edges = append(edges, tri.Edges()...)
	}
	return edges
}

func (mo *MeshObject) Faces() [][]mgl64.Vec3 {
	var faces [][]mgl64.Vec3
	for _, tri := range mo.triangles {
		faces = append(faces, tri.Faces()...)
	}
	return faces
}

// projectPoint maps a world-space point through the camera onto pixel
// coordinates. Points at or behind the camera plane report ok=false.
func projectPoint(cam Camera, width, height int, p mgl64.Vec3) (image.Point, bool) {
	forward := cam.Target.Sub(cam.Position).Normalize()
	right := forward.Cross(cam.Up).Normalize()
	trueUp := right.Cross(forward)

	d := p.Sub(cam.Position)
	z := d.Dot(forward)
	if z <= hitEpsilon {
		return image.Point{}, false
	}

	tanHalf := math.Tan(mgl64.DegToRad(cam.FOV) / 2)
	x := d.Dot(right) / (z * tanHalf * cam.Aspect)
	y := d.Dot(trueUp) / (z * tanHalf)

	return image.Point{
		X: int(math.Round((x + 1) / 2 * float64(width))),
		Y: int(math.Round((1 - y) / 2 * float64(height))),
	}, true
}

func rgba(c mgl64.Vec3) color.RGBA {
	c = clampColor(c)
	return color.RGBA{
		R: uint8(c[0] * 255),
		G: uint8(c[1] * 255),
		B: uint8(c[2] * 255),
		A: 255,
	}
}

func (rt *RayTracer) background2D() *image.RGBA {
	width, height := rt.fb.Size()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(rgba(rt.scene.background)), image.Point{}, draw.Src)
	return img
}

// RenderWireframe projects every primitive's outline through the camera and
// rasterizes it with Bresenham lines, in the primitive's material color.
// Segments with an endpoint behind the camera are skipped rather than clipped.
func (rt *RayTracer) RenderWireframe() *image.RGBA {
	img := rt.background2D()
	width, height := rt.fb.Size()
	cam := rt.scene.camera

	for _, p := range rt.scene.primitives {
		e, ok := p.(Edged)
		if !ok {
			continue
		}
		c := rgba(p.Material().Color)
		for _, seg := range e.Edges() {
			a, okA := projectPoint(cam, width, height, seg[0])
			b, okB := projectPoint(cam, width, height, seg[1])
			if okA && okB {
				raster.DrawLine(img, a.X, a.Y, b.X, b.Y, c)
			}
		}
	}
	return img
}

type flatFace struct {
	verts []image.Point
	depth float64
	color color.RGBA
}

// RenderFlat projects every primitive's faces and scan-fills them back to
// front (painter's algorithm ordered by mean camera distance). Faces with any
// vertex behind the camera are skipped.
func (rt *RayTracer) RenderFlat() *image.RGBA {
	img := rt.background2D()
	width, height := rt.fb.Size()
	cam := rt.scene.camera

	var faces []flatFace
	for _, p := range rt.scene.primitives {
		f, ok := p.(Faced)
		if !ok {
			continue
		}
		c := rgba(p.Material().Color)
		for _, face := range f.Faces() {
			verts := make([]image.Point, 0, len(face))
			depth := 0.0
			behind := false
			for _, v := range face {
				pt, ok := projectPoint(cam, width, height, v)
				if !ok {
					behind = true
					break
				}
				verts = append(verts, pt)
				depth += v.Sub(cam.Position).Len()
			}
			if behind {
				continue
			}
			faces = append(faces, flatFace{
				verts: verts,
				depth: depth / float64(len(face)),
				color: c,
			})
		}
	}

	sort.Slice(faces, func(i, j int) bool { return faces[i].depth > faces[j].depth })
	for _, f := range faces {
		raster.DrawPolygon(img, f.verts, f.color)
	}
	return img
}
