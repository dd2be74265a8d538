package mesh

import "github.com/go-gl/mathgl/mgl64"

// Plane is defined by a point on it and its normal. Distance is signed:
// positive on the side the normal points toward.
type Plane struct {
	Point  mgl64.Vec3
	Normal mgl64.Vec3
}

func (p Plane) Distance(v mgl64.Vec3) float64 {
	return v.Sub(p.Point).Dot(p.Normal)
}

// Slice clips the mesh against each plane in turn, keeping the geometry on
// the positive side of every plane. Faces crossing a plane are clipped with
// interpolated edge-crossing vertices.
func Slice(m *Mesh, planes []Plane) *Mesh {
	result := m
	for _, plane := range planes {
		result = clipWithPlane(result, plane)
	}
	return result
}

// clipWithPlane runs Sutherland-Hodgman clipping of every face against a
// single plane. Output vertices are re-emitted per face; the mesh is not
// re-indexed afterwards since the slicer output is only rendered, not edited.
func clipWithPlane(m *Mesh, plane Plane) *Mesh {
	out := &Mesh{}

	addVertex := func(v mgl64.Vec3) int {
		out.Vertices = append(out.Vertices, v)
		return len(out.Vertices) - 1
	}

	for _, face := range m.Faces {
		if len(face) < 3 {
			continue
		}

		verts := make([]mgl64.Vec3, len(face))
		dists := make([]float64, len(face))
		allPositive, allNegative := true, true
		for i, idx := range face {
			verts[i] = m.Vertices[idx]
			dists[i] = plane.Distance(verts[i])
			if dists[i] < 0 {
				allPositive = false
			}
			if dists[i] > 0 {
				allNegative = false
			}
		}

		if allNegative {
			continue // fully behind the plane, discard
		}

		var clipped []mgl64.Vec3
		if allPositive {
			clipped = verts
		} else {
			clipped = clipPolygon(verts, dists)
			if len(clipped) < 3 {
				continue
			}
		}

		newFace := make([]int, len(clipped))
		for i, v := range clipped {
			newFace[i] = addVertex(v)
		}
		out.Faces = append(out.Faces, newFace)
	}

	out.ComputeBounds()
	out.ComputeNormals()
	return out
}

// clipPolygon keeps the part of the polygon with non-negative distance,
// inserting an interpolated vertex wherever an edge crosses the plane.
func clipPolygon(verts []mgl64.Vec3, dists []float64) []mgl64.Vec3 {
	var out []mgl64.Vec3
	n := len(verts)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		d1, d2 := dists[i], dists[j]

		if d1 >= 0 {
			out = append(out, verts[i])
		}
		if (d1 < 0) != (d2 < 0) {
			t := d1 / (d1 - d2)
			out = append(out, verts[i].Add(verts[j].Sub(verts[i]).Mul(t)))
		}
	}
	return out
}
