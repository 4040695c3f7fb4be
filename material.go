package pathtracer

// Texture samples a color and, optionally, a perturbed normal at (u, v).
// Kept as a narrow capability interface rather than folding image
// decoding into Material itself.
type Texture interface {
	Sample(u, v float64) Vec3
}

// SolidTexture is a Texture that ignores (u, v); the default when a
// material has no bound image.
type SolidTexture struct{ Color Vec3 }

func (s SolidTexture) Sample(u, v float64) Vec3 { return s.Color }

// Material holds the texture/value triples every Element shades with,
// flattened from a polymorphic material-type hierarchy into one plain
// value struct. Shape.Projection already supplies the projection policy,
// so Material need only carry the sampled quantities.
type Material struct {
	Albedo          Texture
	Roughness       float64
	Metalness       float64
	Emissive        float64
	Transparency    float64
	RefractionIndex float64
	NormalMap       Texture
	Opacity         float64
}

// NewDiffuseMaterial is the common case: an opaque, non-metallic surface
// with a flat albedo color.
func NewDiffuseMaterial(albedo Vec3, roughness float64) *Material {
	return &Material{
		Albedo:          SolidTexture{albedo},
		Roughness:       roughness,
		RefractionIndex: 1,
		Opacity:         1,
	}
}

// NewGlassMaterial builds a fully transparent, refractive material, the
// shape nested-transparent-sphere scenarios are built from.
func NewGlassMaterial(refractionIndex float64) *Material {
	return &Material{
		Albedo:          SolidTexture{Vec3{1, 1, 1}},
		Transparency:    1,
		RefractionIndex: refractionIndex,
		Opacity:         1,
	}
}

func (m *Material) IsTransparent() bool {
	return m.Transparency > 1e-6
}

func (m *Material) IsEmissive() bool {
	return m.Emissive > 1e-6
}

func (m *Material) sampleAlbedo(u, v float64) Vec3 {
	if m.Albedo == nil {
		return Vec3{1, 0, 1} // magenta default for a missing texture
	}
	return m.Albedo.Sample(u, v)
}
