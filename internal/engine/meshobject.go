package engine

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/user/raytracer/internal/mesh"
)

// MeshObject renders a polygon mesh as a flat set of triangles. Faces are
// fan-triangulated once at construction; intersection is a linear scan over
// every triangle, which is fine at the scales this demo targets.
type MeshObject struct {
	triangles []*Triangle
	mat       Material
}

// NewMeshObject fan-triangulates every face of m: a face v0..vn yields
// triangles (v0, vi, vi+1) for i = 1..n-2. Degenerate faces with fewer than
// three vertices are skipped.
func NewMeshObject(m *mesh.Mesh) *MeshObject {
	mo := &MeshObject{mat: DefaultMaterial()}
	for _, face := range m.Faces {
		if len(face) < 3 {
			continue
		}
		for i := 1; i < len(face)-1; i++ {
			tri := NewTriangle(
				m.Vertices[face[0]],
				m.Vertices[face[i]],
				m.Vertices[face[i+1]],
			)
			tri.SetMaterial(mo.mat)
			mo.triangles = append(mo.triangles, tri)
		}
	}
	return mo
}

// TriangleCount reports how many triangles the fan triangulation produced.
func (mo *MeshObject) TriangleCount() int { return len(mo.triangles) }

func (mo *MeshObject) Intersect(r Ray) HitRecord {
	closest := miss()
	for _, tri := range mo.triangles {
		if h := tri.Intersect(r); h.Hit && h.Distance < closest.Distance {
			closest = h
		}
	}
	return closest
}

func (mo *MeshObject) Material() Material { return mo.mat }

func (mo *MeshObject) SetMaterial(m Material) {
	mo.mat = m
	for _, tri := range mo.triangles {
		tri.SetMaterial(m)
	}
}

func (mo *MeshObject) SetTransform(t mgl64.Mat4) {
	for _, tri := range mo.triangles {
		tri.SetTransform(t)
	}
}
