package engine

import "github.com/go-gl/mathgl/mgl64"

// Material holds the Phong surface parameters used by the shading engine.
// Coefficients are conventionally in [0,1]; Shininess controls the tightness
// of the specular lobe; Reflectivity is the fraction of the local color
// replaced by a traced reflection ray.
type Material struct {
	Color        mgl64.Vec3
	Ambient      float64
	Diffuse      float64
	Specular     float64
	Shininess    float64
	Reflectivity float64
}

// DefaultMaterial returns a matte white surface.
func DefaultMaterial() Material {
	return Material{
		Color:     mgl64.Vec3{1, 1, 1},
		Ambient:   0.1,
		Diffuse:   0.7,
		Specular:  0.5,
		Shininess: 32,
	}
}
