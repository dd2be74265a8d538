// Package scene defines the JSON scene description consumed by both the CLI
// and the interactive frontends. The engine builds its renderable scene from
// these documents.
package scene

// Vec3 is a point or direction in the scene file.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Color is an RGB color in linear [0,1] space.
type Color struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

// Camera describes the viewpoint. Zero Up, FOV or AspectRatio fields fall
// back to engine defaults when the document is converted.
type Camera struct {
	Position    Vec3    `json:"position"`
	Target      Vec3    `json:"target"`
	Up          Vec3    `json:"up"`
	FOV         float64 `json:"fov"`
	AspectRatio float64 `json:"aspect_ratio"`
}

// Light is a point light.
type Light struct {
	Position  Vec3    `json:"position"`
	Color     Color   `json:"color"`
	Intensity float64 `json:"intensity"`
}

// Material describes Phong surface properties, referenced by ID from objects.
type Material struct {
	ID           string  `json:"id"`
	Color        Color   `json:"color"`
	Ambient      float64 `json:"ambient"`
	Diffuse      float64 `json:"diffuse"`
	Specular     float64 `json:"specular"`
	Shininess    float64 `json:"shininess"`
	Reflectivity float64 `json:"reflectivity"`
}

// ObjectType enumerates supported geometric primitives.
type ObjectType string

const (
	ObjectSphere ObjectType = "sphere"
	ObjectBox    ObjectType = "box"
	ObjectMesh   ObjectType = "mesh"
)

// Transform is an optional object-space transform: translation, per-axis
// scale and XYZ Euler rotation in degrees. A nil Transform means identity.
type Transform struct {
	Translate Vec3 `json:"translate"`
	Scale     Vec3 `json:"scale"`
	Rotate    Vec3 `json:"rotate"`
}

// Object is a single renderable entity.
type Object struct {
	ID   string     `json:"id"`
	Type ObjectType `json:"type"`

	// Sphere fields.
	Center Vec3    `json:"center"`
	Radius float64 `json:"radius"`

	// Box fields (local-space corners).
	Min Vec3 `json:"min"`
	Max Vec3 `json:"max"`

	// Mesh fields: OFF file path relative to the scene file, plus optional
	// slicing planes applied before triangulation.
	MeshPath string  `json:"mesh_path"`
	Slices   []Plane `json:"slices,omitempty"`

	Transform  *Transform `json:"transform,omitempty"`
	MaterialID string     `json:"material_id"`
}

// Plane is a slicing plane in the scene file.
type Plane struct {
	Point  Vec3 `json:"point"`
	Normal Vec3 `json:"normal"`
}

// Settings holds render parameters. Shadows and Reflections are pointers so
// that an absent field keeps the engine default (both enabled).
type Settings struct {
	Width       int   `json:"width"`
	Height      int   `json:"height"`
	MaxDepth    int   `json:"max_depth"`
	Shadows     *bool `json:"shadows,omitempty"`
	Reflections *bool `json:"reflections,omitempty"`
}

// Override merges command-line overrides into the settings. Non-positive
// dimensions and depth keep the document values; nil toggle pointers keep
// whatever the document said (including "absent").
func (s *Settings) Override(width, height, depth int, shadows, reflections *bool) {
	if width > 0 && height > 0 {
		s.Width, s.Height = width, height
	}
	if depth > 0 {
		s.MaxDepth = depth
	}
	if shadows != nil {
		s.Shadows = shadows
	}
	if reflections != nil {
		s.Reflections = reflections
	}
}

// Scene holds everything needed to render an image.
type Scene struct {
	Name       string     `json:"name"`
	Camera     Camera     `json:"camera"`
	Lights     []Light    `json:"lights"`
	Materials  []Material `json:"materials"`
	Objects    []Object   `json:"objects"`
	Background Color      `json:"background"`
	Settings   Settings   `json:"settings"`
}

// Default returns the built-in demo scene used when no scene file is given:
// a reflective red sphere, a matte box and two lights.
func Default() *Scene {
	on := true
	return &Scene{
		Name: "default",
		Camera: Camera{
			Position: Vec3{X: 0, Y: 1.5, Z: 6},
			Target:   Vec3{Y: 0.5},
			Up:       Vec3{Y: 1},
			FOV:      60,
		},
		Lights: []Light{
			{Position: Vec3{X: 5, Y: 5, Z: 5}, Color: Color{R: 1, G: 1, B: 1}, Intensity: 1},
			{Position: Vec3{X: -4, Y: 3, Z: 2}, Color: Color{R: 0.4, G: 0.4, B: 0.6}, Intensity: 0.6},
		},
		Materials: []Material{
			{ID: "red", Color: Color{R: 0.9, G: 0.15, B: 0.1}, Ambient: 0.1, Diffuse: 0.7, Specular: 0.5, Shininess: 32, Reflectivity: 0.3},
			{ID: "gray", Color: Color{R: 0.6, G: 0.6, B: 0.6}, Ambient: 0.1, Diffuse: 0.8, Specular: 0.2, Shininess: 8},
		},
		Objects: []Object{
			{ID: "ball", Type: ObjectSphere, Center: Vec3{Y: 0.5}, Radius: 1, MaterialID: "red"},
			{
				ID: "floor", Type: ObjectBox,
				Min: Vec3{X: -6, Y: -1.5, Z: -6}, Max: Vec3{X: 6, Y: -0.5, Z: 6},
				MaterialID: "gray",
			},
		},
		Background: Color{R: 0.2, G: 0.2, B: 0.3},
		Settings: Settings{
			Width:       800,
			Height:      600,
			MaxDepth:    3,
			Shadows:     &on,
			Reflections: &on,
		},
	}
}
