package pathtracer

// Shape is the capability interface every intersectable primitive must
// satisfy. Concrete shapes are not enumerated exhaustively here — the
// catalog beyond this contract is an external concern. Sphere, Plane and
// Triangle are kept as the minimal set the lighting/BVH scenarios
// require; mesh shapes compose Triangle instances loaded via
// adapters/mesh.
type Shape interface {
	// Distance returns the signed distance from p to the surface
	// (negative inside, for SDF-style shapes; analytic shapes may
	// approximate this for debug tooling only).
	Distance(p Vec3) float64

	// Intersect returns every real intersection t-value along the ray,
	// in the order the shape's own algebra produces them (sign included,
	// not limited to t > 0) — callers build the Hit.t_list from this.
	Intersect(r *Ray) []float64

	// OuterIntersect is Intersect but tolerant of the shape's own
	// displacement/thickness, used for wireframe/shell variants.
	OuterIntersect(r *Ray, tolerance float64) []float64

	// Normal returns the outward surface normal at a point on the shape.
	Normal(p Vec3) Vec3

	// Projection maps a surface point to (u, v) texture space.
	Projection(p Vec3) (u, v float64)

	// Bounds returns the shape's tight world-space AABB.
	Bounds() AABB

	// Name identifies the shape variant, e.g. for BVH-debug coloring or
	// scene-load diagnostics.
	Name() string
}
