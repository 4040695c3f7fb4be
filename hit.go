package pathtracer

import "sort"

// TListEntry carries every t-value found for one element along a ray's
// path. Ts is kept sorted per entry, but entries themselves are appended
// in traversal-encounter order; ordering across entries is never relied
// upon.
type TListEntry struct {
	Element ElementID
	Ts      []float64
}

// TList is the per-ray intersection-distance list: the union of every
// t-value ever produced for every element the traversal considered. It is
// the data structure that makes nested-medium parity possible.
type TList []TListEntry

func (tl TList) find(id ElementID) int {
	for i := range tl {
		if tl[i].Element == id {
			return i
		}
	}
	return -1
}

// Add records ts (unsorted is fine) for element id, merging with any
// existing entry and keeping Ts sorted.
func (tl TList) Add(id ElementID, ts []float64) TList {
	if len(ts) == 0 {
		return tl
	}
	if i := tl.find(id); i >= 0 {
		tl[i].Ts = append(tl[i].Ts, ts...)
		sort.Float64s(tl[i].Ts)
		return tl
	}
	sorted := append([]float64(nil), ts...)
	sort.Float64s(sorted)
	return append(tl, TListEntry{Element: id, Ts: sorted})
}

// Merge adds every entry of other into tl, folding t-values into tl's
// existing entry when both carry the same element. No t-value is ever lost,
// regardless of which side wins the closest-hit comparison.
func (tl TList) Merge(other TList) TList {
	for _, e := range other {
		tl = tl.Add(e.Element, e.Ts)
	}
	return tl
}

// Hit is the result of a BVH traversal: the closest forward intersection
// plus the full t_list accumulated along the way.
type Hit struct {
	Element  ElementID
	T        float64
	Position Vec3
	Normal   Vec3
	U, V     float64
	TList    TList
}

// ParentElement finds the innermost enclosing element at this hit, by
// shifting every t-value by -closestDist so the hit sits at 0, then
// picking, among elements with an even total count AND an even count of
// positive-remaining t-values, the one with the smallest positive
// remaining t. Returns (0, false) when the hit is in vacuum.
func (tl TList) ParentElement(closestDist float64) (ElementID, bool) {
	bestT := 0.0
	bestID := ElementID(0)
	found := false

	for _, entry := range tl {
		if len(entry.Ts)%2 != 0 {
			continue
		}
		positiveCount := 0
		smallestPositive := 0.0
		hasPositive := false
		for _, t := range entry.Ts {
			shifted := t - closestDist
			if shifted > 0 {
				positiveCount++
				if !hasPositive || shifted < smallestPositive {
					smallestPositive = shifted
					hasPositive = true
				}
			}
		}
		if positiveCount%2 != 0 || !hasPositive {
			continue
		}
		if !found || smallestPositive < bestT {
			bestT = smallestPositive
			bestID = entry.Element
			found = true
		}
	}

	return bestID, found
}

// InsideParity reports whether the ray origin is inside the given element
// at this point in its t_list: an odd count of positive t-values means
// the origin sits between an odd number of crossings, i.e. inside. A
// shape with an odd total crossing count isn't closed (a single-sided
// Plane, say), so there's no well-defined inside/outside to report;
// such shapes never flip their normal here.
func (tl TList) InsideParity(id ElementID) bool {
	i := tl.find(id)
	if i < 0 {
		return false
	}
	ts := tl[i].Ts
	if len(ts)%2 != 0 {
		return false
	}
	positive := 0
	for _, t := range ts {
		if t > 0 {
			positive++
		}
	}
	return positive%2 != 0
}
