package pathtracer

import (
	"math"
	"sort"
)

// Sphere is an analytic sphere — the primary shape exercised by
// nested-transparent-medium test scenarios.
type Sphere struct {
	Center Vec3
	Radius float64
}

func (s *Sphere) Distance(p Vec3) float64 {
	return p.Sub(s.Center).Length() - s.Radius
}

func (s *Sphere) Intersect(r *Ray) []float64 {
	oc := r.Origin.Sub(s.Center)
	a := r.Direction.Dot(r.Direction)
	b := 2 * oc.Dot(r.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	disc := b*b - 4*a*c
	if disc < 0 {
		return nil
	}
	sq := math.Sqrt(disc)
	t1 := (-b - sq) / (2 * a)
	t2 := (-b + sq) / (2 * a)
	if t1 > t2 {
		t1, t2 = t2, t1
	}
	return []float64{t1, t2}
}

func (s *Sphere) OuterIntersect(r *Ray, tolerance float64) []float64 {
	grown := &Sphere{Center: s.Center, Radius: s.Radius + tolerance}
	return grown.Intersect(r)
}

func (s *Sphere) Normal(p Vec3) Vec3 {
	return p.Sub(s.Center).Normalize()
}

func (s *Sphere) Projection(p Vec3) (u, v float64) {
	d := p.Sub(s.Center).Normalize()
	u = 0.5 + math.Atan2(d.Z, d.X)/(2*math.Pi)
	v = 0.5 - math.Asin(d.Y)/math.Pi
	return
}

func (s *Sphere) Bounds() AABB {
	r := Vec3{s.Radius, s.Radius, s.Radius}
	return AABB{Min: s.Center.Sub(r), Max: s.Center.Add(r)}
}

func (s *Sphere) Name() string { return "sphere" }

// Plane is an infinite plane through Point with the given unit Normal —
// used for ground planes and as a cheap skybox-free backdrop in tests.
type Plane struct {
	Point Vec3
	Norm  Vec3
}

func (p *Plane) Distance(q Vec3) float64 {
	return q.Sub(p.Point).Dot(p.Norm)
}

func (p *Plane) Intersect(r *Ray) []float64 {
	denom := p.Norm.Dot(r.Direction)
	if math.Abs(denom) < 1e-12 {
		return nil
	}
	t := p.Point.Sub(r.Origin).Dot(p.Norm) / denom
	return []float64{t}
}

func (p *Plane) OuterIntersect(r *Ray, tolerance float64) []float64 {
	return p.Intersect(r)
}

func (p *Plane) Normal(Vec3) Vec3 { return p.Norm }

func (p *Plane) Projection(q Vec3) (u, v float64) {
	return q.X - math.Floor(q.X), q.Z - math.Floor(q.Z)
}

func (p *Plane) Bounds() AABB {
	inf := math.Inf(1)
	return AABB{Min: Vec3{-inf, -inf, -inf}, Max: Vec3{inf, inf, inf}}
}

func (p *Plane) Name() string { return "plane" }

// Triangle is a single triangle, the unit mesh shapes are built from.
// Intersection uses Möller-Trumbore, returning the full t-value (not
// just a bool) since the t_list model needs it.
type Triangle struct {
	P0, P1, P2 Vec3
	N          Vec3 // precomputed face normal
}

func NewTriangle(p0, p1, p2 Vec3) *Triangle {
	n := p1.Sub(p0).Cross(p2.Sub(p0)).Normalize()
	return &Triangle{P0: p0, P1: p1, P2: p2, N: n}
}

func (t *Triangle) Distance(p Vec3) float64 {
	return p.Sub(t.P0).Dot(t.N)
}

func (t *Triangle) Intersect(r *Ray) []float64 {
	const eps = 1e-9
	edge1 := t.P1.Sub(t.P0)
	edge2 := t.P2.Sub(t.P0)
	h := r.Direction.Cross(edge2)
	a := edge1.Dot(h)
	if math.Abs(a) < eps {
		return nil
	}
	f := 1 / a
	s := r.Origin.Sub(t.P0)
	u := f * s.Dot(h)
	if u < 0 || u > 1 {
		return nil
	}
	q := s.Cross(edge1)
	v := f * r.Direction.Dot(q)
	if v < 0 || u+v > 1 {
		return nil
	}
	tt := f * edge2.Dot(q)
	return []float64{tt}
}

func (t *Triangle) OuterIntersect(r *Ray, tolerance float64) []float64 {
	return t.Intersect(r)
}

func (t *Triangle) Normal(Vec3) Vec3 { return t.N }

func (t *Triangle) Projection(p Vec3) (u, v float64) {
	return 0, 0
}

func (t *Triangle) Bounds() AABB {
	return AABBFromPoints(t.P0, t.P1, t.P2)
}

func (t *Triangle) Name() string { return "triangle" }

// MeshShape composes many triangles into one Shape (the `obj-mesh`
// variant); Intersect merges all member triangle t-values, which keeps
// it compatible with the t_list model used by the BVH traversal.
type MeshShape struct {
	Triangles []*Triangle
	bounds    AABB
}

func NewMeshShape(tris []*Triangle) *MeshShape {
	b := EmptyAABB()
	for _, t := range tris {
		b = b.Merge(t.Bounds())
	}
	return &MeshShape{Triangles: tris, bounds: b}
}

func (m *MeshShape) Distance(p Vec3) float64 {
	best := math.Inf(1)
	for _, t := range m.Triangles {
		if d := t.Distance(p); math.Abs(d) < math.Abs(best) {
			best = d
		}
	}
	return best
}

func (m *MeshShape) Intersect(r *Ray) []float64 {
	var ts []float64
	for _, t := range m.Triangles {
		ts = append(ts, t.Intersect(r)...)
	}
	sort.Float64s(ts)
	return ts
}

func (m *MeshShape) OuterIntersect(r *Ray, tolerance float64) []float64 {
	return m.Intersect(r)
}

func (m *MeshShape) Normal(p Vec3) Vec3 {
	best := m.Triangles[0]
	bestDist := math.Inf(1)
	for _, t := range m.Triangles {
		if d := math.Abs(t.Distance(p)); d < bestDist {
			bestDist = d
			best = t
		}
	}
	return best.N
}

func (m *MeshShape) Projection(p Vec3) (u, v float64) { return 0, 0 }

func (m *MeshShape) Bounds() AABB { return m.bounds }

func (m *MeshShape) Name() string { return "obj-mesh" }
