package pathtracer

import (
	"math"
	"math/rand"
)

// Integrator shades a Hit under the scene's configured view mode: a
// Simple ambient+diffuse pass, and a stochastic HighDef path tracer.
type Integrator struct {
	scene *Scene
	rng   *rand.Rand // thread-local: never shared across goroutines
}

// NewIntegrator binds an integrator to a scene and a private RNG seed.
// Each worker goroutine owns one.
func NewIntegrator(scene *Scene, seed int64) *Integrator {
	return &Integrator{scene: scene, rng: rand.New(rand.NewSource(seed))}
}

// Shade is the top-level entry point a worker calls per primary ray. It
// dispatches on Settings.ViewMode.
func (in *Integrator) Shade(ray *Ray) RadianceColor {
	bvh := in.scene.BVH()
	if bvh == nil || bvh.Root == nil {
		return RadianceFromAlbedo(in.scene.Skybox.Sample(ray.Direction))
	}

	hit := bvh.Traverse(ray, in.scene.Settings.BVHFullTraversal)
	if math.IsInf(hit.T, 1) {
		return RadianceFromAlbedo(in.scene.Skybox.Sample(ray.Direction))
	}

	switch in.scene.Settings.ViewMode {
	case ViewNormal:
		n := hit.Normal
		return RadianceColor{0.5 * (n.X + 1), 0.5 * (n.Y + 1), 0.5 * (n.Z + 1)}
	case ViewBVH:
		return in.shadeBVHDebug(ray, hit)
	case ViewSimple:
		return in.shadeSimple(hit)
	default:
		return in.shadeHighDef(ray, hit)
	}
}

// shadeSimple implements Simple mode: color = albedo*ambient +
// diffuse(parallel_light)*albedo, no bounces.
func (in *Integrator) shadeSimple(hit Hit) RadianceColor {
	elem := in.scene.Element(hit.Element)
	albedo := Vec3{1, 1, 1}
	if elem != nil && elem.Material != nil {
		albedo = elem.Material.sampleAlbedo(hit.U, hit.V)
	}

	result := albedo.Mul(in.scene.Ambient)
	for _, l := range in.scene.Lights {
		diff := math.Max(hit.Normal.Dot(l.Direction), 0)
		contribution := l.Color.Scale(l.Intensity * diff).Mul(albedo)
		result = result.Add(contribution)
	}
	return RadianceFromAlbedo(result)
}

// shadeBVHDebug colors a hit by the number of traversal steps the ray
// took to reach it, re-traversing once with a counting wrapper — kept
// separate from the hot Traverse path so normal renders pay nothing for
// it.
func (in *Integrator) shadeBVHDebug(ray *Ray, hit Hit) RadianceColor {
	steps := in.scene.BVH().countSteps(ray)
	intensity := clamp(float64(steps)/32, 0, 1)
	c := IntensityToColor(intensity)
	return RadianceColor{float64(c.R) / 255, float64(c.G) / 255, float64(c.B) / 255}
}

// shadeHighDef is the stochastic path-traced integrator: emissive
// short-circuit, depth termination, transparency/parity/refraction-index
// resolution, Fresnel reflectance, then a weighted random choice between
// reflection, refraction, and indirect bounce.
func (in *Integrator) shadeHighDef(ray *Ray, hit Hit) RadianceColor {
	elem := in.scene.Element(hit.Element)
	if elem == nil || elem.Material == nil {
		return RadianceColor{}
	}
	mat := elem.Material
	albedo := mat.sampleAlbedo(hit.U, hit.V)

	// Step 1: emissive surfaces terminate the path immediately.
	if mat.IsEmissive() {
		return RadianceFromAlbedo(albedo.Scale(mat.Emissive))
	}

	// Step 2: depth-bounded termination.
	if ray.Depth >= in.scene.Settings.Depth {
		return RadianceColor{}
	}

	normal := hit.Normal
	n1, n2 := 1.0, 1.0

	// Step 3: transparent media — determine inside/outside via t_list
	// parity and resolve the surrounding medium's refraction index.
	if mat.IsTransparent() {
		isInside := hit.TList.InsideParity(hit.Element)
		parentRefraction := 1.0
		if parentID, ok := hit.TList.ParentElement(hit.T); ok {
			if parent := in.scene.Element(parentID); parent != nil && parent.Material != nil {
				parentRefraction = parent.Material.RefractionIndex
			}
		}
		if isInside {
			n1 = mat.RefractionIndex
			n2 = parentRefraction
			normal = normal.Negate()
		} else {
			n1 = parentRefraction
			n2 = mat.RefractionIndex
		}
	}

	// Step 4: Fresnel/Schlick reflectance, scaled by (1 - roughness).
	fresnel := fresnelReflectRatio(n1, n2, normal, ray.Direction, 1-mat.Roughness)

	// Step 5: branch weights.
	reflected := fresnel * (1 - mat.Metalness)
	absorbed := 1 - mat.Metalness - reflected

	result := RadianceColor{}
	r := in.rng.Float64()

	switch {
	case r > absorbed && in.scene.Settings.Reflections:
		refl := in.reflectedLight(ray, hit, normal, mat.Roughness)
		if r > absorbed+mat.Metalness {
			result = result.Add(refl)
		} else {
			result = result.Add(refl.Mul(RadianceFromAlbedo(albedo)))
		}
	case r < absorbed*mat.Transparency:
		result = result.Add(in.refractedLight(ray, hit, normal, n1, n2))
	case in.scene.Settings.Indirect:
		result = result.Add(in.indirectLight(ray, hit, normal).Mul(RadianceFromAlbedo(albedo)))
	}

	return result
}

// fresnelReflectRatio implements Schlick's approximation with a
// total-internal-reflection short-circuit that returns the base
// reflectivity unchanged.
func fresnelReflectRatio(n1, n2 float64, norm, rayDir Vec3, reflectivity float64) float64 {
	r0 := (n1 - n2) / (n1 + n2)
	r0 *= r0
	cosX := math.Abs(norm.Dot(rayDir))

	if n1 > n2 {
		n := n1 / n2
		sinT2 := n * n * (1 - cosX*cosX)
		if sinT2 > 1 {
			return reflectivity
		}
		cosX = math.Sqrt(1 - sinT2)
	}

	x := 1 - cosX
	return reflectivity * (r0 + (1-r0)*math.Pow(x, 5))
}

func (in *Integrator) reflectedLight(ray *Ray, hit Hit, normal Vec3, roughness float64) RadianceColor {
	dir := Reflect(ray.Direction, normal).Add(RandomUnitVector(in.rng).Scale(roughness)).Normalize()
	if dir.Dot(normal) <= 1e-9 {
		return RadianceColor{}
	}
	next := ray.Bounce(hit.Position, dir)
	return in.traceFrom(next)
}

// refractedLight follows Snell's law. The offset origin (-0.2*normal)
// biases the next ray past its own surface to avoid immediate
// self-intersection, and the bounce does not consume Depth: refraction
// recurses at the same depth, bounded instead by RefractionDepthLimit.
func (in *Integrator) refractedLight(ray *Ray, hit Hit, normal Vec3, n1, n2 float64) RadianceColor {
	if ray.refractionChainLength() >= RefractionDepthLimit {
		return RadianceColor{}
	}
	dir, ok := Refract(ray.Direction, normal, n1/n2)
	if !ok {
		return RadianceColor{}
	}
	next := ray.Continue(hit.Position.Sub(normal.Scale(0.2)), dir)
	next.refractionDepth = ray.refractionDepth + 1
	return in.traceFrom(next)
}

func (in *Integrator) indirectLight(ray *Ray, hit Hit, normal Vec3) RadianceColor {
	dir := normal.Add(RandomUnitVector(in.rng))
	if dir.Length() < 0.01 {
		dir = normal
	}
	next := ray.Bounce(hit.Position, dir.Normalize())
	return in.traceFrom(next)
}

// traceFrom re-enters the integrator for a bounce/refraction ray,
// bypassing view-mode dispatch since bounces are always HighDef.
func (in *Integrator) traceFrom(ray *Ray) RadianceColor {
	bvh := in.scene.BVH()
	hit := bvh.Traverse(ray, in.scene.Settings.BVHFullTraversal)
	if math.IsInf(hit.T, 1) {
		return RadianceFromAlbedo(in.scene.Skybox.Sample(ray.Direction))
	}
	return in.shadeHighDef(ray, hit)
}
