package pathtracer

import "math"

// AABB is an axis-aligned bounding box, tested via the slab method and
// reporting the ray entry distance the BVH traversal needs for
// near-first child ordering.
type AABB struct {
	Min, Max Vec3
}

func NewAABB(min, max Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// EmptyAABB returns a degenerate box suitable as the identity element for
// repeated Merge calls.
func EmptyAABB() AABB {
	inf := math.Inf(1)
	return AABB{Min: Vec3{inf, inf, inf}, Max: Vec3{-inf, -inf, -inf}}
}

func AABBFromPoints(pts ...Vec3) AABB {
	b := EmptyAABB()
	for _, p := range pts {
		b = b.ExpandPoint(p)
	}
	return b
}

func (b AABB) ExpandPoint(p Vec3) AABB {
	return AABB{
		Min: Vec3{math.Min(b.Min.X, p.X), math.Min(b.Min.Y, p.Y), math.Min(b.Min.Z, p.Z)},
		Max: Vec3{math.Max(b.Max.X, p.X), math.Max(b.Max.Y, p.Y), math.Max(b.Max.Z, p.Z)},
	}
}

func (b AABB) Merge(o AABB) AABB {
	return AABB{
		Min: Vec3{math.Min(b.Min.X, o.Min.X), math.Min(b.Min.Y, o.Min.Y), math.Min(b.Min.Z, o.Min.Z)},
		Max: Vec3{math.Max(b.Max.X, o.Max.X), math.Max(b.Max.Y, o.Max.Y), math.Max(b.Max.Z, o.Max.Z)},
	}
}

func (b AABB) Center() Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

func (b AABB) Extent() Vec3 {
	return b.Max.Sub(b.Min)
}

// Contains reports whether o is fully inside b — the invariant BVH build
// relies on ("internal nodes' aabbs strictly contain their children's").
func (b AABB) Contains(o AABB) bool {
	return o.Min.X >= b.Min.X && o.Min.Y >= b.Min.Y && o.Min.Z >= b.Min.Z &&
		o.Max.X <= b.Max.X && o.Max.Y <= b.Max.Y && o.Max.Z <= b.Max.Z
}

// LargestAxis returns 0/1/2 for X/Y/Z, the axis along which to median-split
// during BVH build.
func (b AABB) LargestAxis() int {
	e := b.Extent()
	if e.X >= e.Y && e.X >= e.Z {
		return 0
	}
	if e.Y >= e.Z {
		return 1
	}
	return 2
}

func (b AABB) AxisValue(axis int, v Vec3) float64 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// IntersectRay implements the slab method. ok is false when the ray misses
// entirely; tEntry/tExit bound the overlap interval along the ray
// (tEntry may be negative if the origin is inside the box).
func (b AABB) IntersectRay(r *Ray) (tEntry, tExit float64, ok bool) {
	tMin, tMax := math.Inf(-1), math.Inf(1)

	for axis := 0; axis < 3; axis++ {
		origin := b.AxisValue(axis, r.Origin)
		dir := b.AxisValue(axis, r.Direction)
		lo := b.AxisValue(axis, b.Min)
		hi := b.AxisValue(axis, b.Max)

		if math.Abs(dir) < 1e-12 {
			if origin < lo || origin > hi {
				return 0, 0, false
			}
			continue
		}

		invD := 1 / dir
		t1 := (lo - origin) * invD
		t2 := (hi - origin) * invD
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tMin {
			tMin = t1
		}
		if t2 < tMax {
			tMax = t2
		}
		if tMin > tMax {
			return 0, 0, false
		}
	}

	return tMin, tMax, true
}

// Overlaps reports whether two AABBs share any volume — used by the
// full-traversal-flag heuristic.
func (b AABB) Overlaps(o AABB) bool {
	return b.Min.X <= o.Max.X && b.Max.X >= o.Min.X &&
		b.Min.Y <= o.Max.Y && b.Max.Y >= o.Min.Y &&
		b.Min.Z <= o.Max.Z && b.Max.Z >= o.Min.Z
}
