// Package mesh holds polygon meshes parsed from OFF files and the plane
// slicing operation applied to them before rendering.
package mesh

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Mesh is an indexed polygon mesh. Faces are variable-length ordered vertex
// index lists; the engine fan-triangulates them when it builds a renderable
// object.
type Mesh struct {
	Vertices []mgl64.Vec3
	Normals  []mgl64.Vec3 // per-vertex, area-weighted from face normals
	Faces    [][]int

	Min, Max mgl64.Vec3
	Extent   float64
}

// ComputeNormals accumulates face normals into per-vertex normals and
// normalizes the result. Degenerate faces contribute nothing.
func (m *Mesh) ComputeNormals() {
	m.Normals = make([]mgl64.Vec3, len(m.Vertices))
	for _, face := range m.Faces {
		if len(face) < 3 {
			continue
		}
		e1 := m.Vertices[face[1]].Sub(m.Vertices[face[0]])
		e2 := m.Vertices[face[2]].Sub(m.Vertices[face[0]])
		n := e1.Cross(e2)
		for _, idx := range face {
			m.Normals[idx] = m.Normals[idx].Add(n)
		}
	}
	for i, n := range m.Normals {
		if l := n.Len(); l > 0 {
			m.Normals[i] = n.Mul(1 / l)
		}
	}
}

// ComputeBounds refreshes the bounding box and the maximum extent.
func (m *Mesh) ComputeBounds() {
	if len(m.Vertices) == 0 {
		m.Min, m.Max, m.Extent = mgl64.Vec3{}, mgl64.Vec3{}, 0
		return
	}
	m.Min = m.Vertices[0]
	m.Max = m.Vertices[0]
	for _, v := range m.Vertices[1:] {
		for i := 0; i < 3; i++ {
			m.Min[i] = math.Min(m.Min[i], v[i])
			m.Max[i] = math.Max(m.Max[i], v[i])
		}
	}
	m.Extent = math.Max(m.Max[0]-m.Min[0], math.Max(m.Max[1]-m.Min[1], m.Max[2]-m.Min[2]))
}
