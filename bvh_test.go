package pathtracer

import (
	"math"
	"testing"
)

func sphereElement(id ElementID, center Vec3, radius float64) *Element {
	return &Element{ID: id, Shape: &Sphere{Center: center, Radius: radius}, Material: NewDiffuseMaterial(Vec3{1, 1, 1}, 1)}
}

func TestBVHTraverseFindsClosestHit(t *testing.T) {
	elements := []*Element{
		sphereElement(1, Vec3{0, 0, 5}, 1),
		sphereElement(2, Vec3{0, 0, 10}, 1),
	}
	bvh := BuildBVH(elements)

	ray := NewRay(Vec3{0, 0, 0}, Vec3{0, 0, 1})
	hit := bvh.Traverse(ray, false)

	if hit.Element != 1 {
		t.Errorf("expected the nearer sphere (1) to win, got %v", hit.Element)
	}
	if absDiff(hit.T, 4) > 1e-9 {
		t.Errorf("expected t=4 (sphere surface at z=4), got %v", hit.T)
	}
}

func TestBVHTraverseMissReturnsInfiniteT(t *testing.T) {
	elements := []*Element{sphereElement(1, Vec3{0, 0, 5}, 1)}
	bvh := BuildBVH(elements)

	ray := NewRay(Vec3{0, 0, 0}, Vec3{1, 0, 0})
	hit := bvh.Traverse(ray, false)

	if !math.IsInf(hit.T, 1) {
		t.Errorf("expected t=+Inf on a miss, got %v", hit.T)
	}
	if hit.Element != 0 {
		t.Errorf("expected no element hit, got %v", hit.Element)
	}
}

func TestBVHTraverseAccumulatesTListForEveryTestedElement(t *testing.T) {
	// Two overlapping spheres along the same ray: full traversal should
	// still record both elements' t-values even though only one wins.
	elements := []*Element{
		sphereElement(1, Vec3{0, 0, 5}, 2),
		sphereElement(2, Vec3{0, 0, 6}, 2),
	}
	bvh := BuildBVH(elements)
	ray := NewRay(Vec3{0, 0, 0}, Vec3{0, 0, 1})
	hit := bvh.Traverse(ray, true)

	if hit.TList.find(1) < 0 || hit.TList.find(2) < 0 {
		t.Fatalf("expected both elements in the t_list, got %+v", hit.TList)
	}
}

func TestRefreshBVHFullTraversalDetectsOverlap(t *testing.T) {
	overlapping := []*Element{
		sphereElement(1, Vec3{0, 0, 0}, 2),
		sphereElement(2, Vec3{1, 0, 0}, 2),
	}
	if !RefreshBVHFullTraversal(overlapping) {
		t.Error("expected overlapping AABBs to require full traversal")
	}

	separate := []*Element{
		sphereElement(1, Vec3{-10, 0, 0}, 1),
		sphereElement(2, Vec3{10, 0, 0}, 1),
	}
	if RefreshBVHFullTraversal(separate) {
		t.Error("expected disjoint, opaque elements not to require full traversal")
	}
}

func TestRefreshBVHFullTraversalDetectsTransparency(t *testing.T) {
	glass := &Element{ID: 1, Shape: &Sphere{Center: Vec3{0, 0, 0}, Radius: 1}, Material: NewGlassMaterial(1.5)}
	if !RefreshBVHFullTraversal([]*Element{glass}) {
		t.Error("expected a transparent element to require full traversal even alone")
	}
}

func TestBuildBVHHandlesManyElements(t *testing.T) {
	var elements []*Element
	for i := 0; i < 50; i++ {
		elements = append(elements, sphereElement(ElementID(i), Vec3{float64(i) * 3, 0, 10}, 1))
	}
	bvh := BuildBVH(elements)
	if bvh.Root == nil {
		t.Fatal("expected a non-nil root")
	}

	ray := NewRay(Vec3{30, 0, 0}, Vec3{0, 0, 1})
	hit := bvh.Traverse(ray, false)
	if hit.Element != 10 {
		t.Errorf("expected element 10 (centered at x=30) to be hit, got %v", hit.Element)
	}
}
