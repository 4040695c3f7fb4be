package pathtracer

import "testing"

func TestTListAddMergesAndSorts(t *testing.T) {
	var tl TList
	tl = tl.Add(1, []float64{3, 1})
	tl = tl.Add(1, []float64{2})

	if len(tl) != 1 {
		t.Fatalf("expected one entry, got %d", len(tl))
	}
	got := tl[0].Ts
	want := []float64{1, 2, 3}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Ts not sorted: got %v, want %v", got, want)
		}
	}
}

func TestTListMergeLosesNoTValues(t *testing.T) {
	var a TList
	a = a.Add(1, []float64{1, 2})
	var b TList
	b = b.Add(2, []float64{3, 4})
	b = b.Add(1, []float64{5})

	merged := a.Merge(b)
	if len(merged) != 2 {
		t.Fatalf("expected 2 entries after merge, got %d", len(merged))
	}
	if got := merged[merged.find(1)].Ts; len(got) != 3 {
		t.Fatalf("expected element 1 to carry 3 t-values after merge, got %v", got)
	}
}

func TestInsideParityOddPositiveMeansInside(t *testing.T) {
	var tl TList
	// One positive, one negative crossing: the ray origin sits between
	// them, i.e. inside the sphere.
	tl = tl.Add(1, []float64{-2, 3})
	if !tl.InsideParity(1) {
		t.Error("expected odd positive-t count to report inside")
	}

	var tl2 TList
	tl2 = tl2.Add(1, []float64{1, 3})
	if tl2.InsideParity(1) {
		t.Error("expected even positive-t count to report outside")
	}
}

func TestInsideParityOddCrossingCountIsOutside(t *testing.T) {
	// A single crossing means the shape isn't closed (e.g. one side of a
	// transparent plane); there's no inside to report.
	var tl TList
	tl = tl.Add(1, []float64{2})
	if tl.InsideParity(1) {
		t.Error("expected an odd total crossing count to report outside")
	}
}

func TestInsideParityUnknownElementIsOutside(t *testing.T) {
	var tl TList
	tl = tl.Add(1, []float64{1, 2})
	if tl.InsideParity(99) {
		t.Error("an element absent from the t_list can't be considered inside")
	}
}

func TestParentElementPicksNearestUpcomingEvenCrossing(t *testing.T) {
	// Two elements with both their remaining crossings still ahead of the
	// hit (even total count, even positive count after the shift); the
	// one with the nearer upcoming crossing wins.
	var tl TList
	tl = tl.Add(1, []float64{3, 4})
	tl = tl.Add(2, []float64{1, 2})

	parent, ok := tl.ParentElement(0)
	if !ok {
		t.Fatal("expected a parent to be found")
	}
	if parent != 2 {
		t.Errorf("expected the nearer element (2) as parent, got %v", parent)
	}
}

func TestParentElementSkipsOddCrossingCounts(t *testing.T) {
	// An entry with an odd positive count after the shift (the hit sits
	// strictly between this element's two crossings) is not a parent
	// candidate — only even-parity entries qualify.
	var tl TList
	tl = tl.Add(1, []float64{-5, 5})
	tl = tl.Add(2, []float64{1, 2})

	parent, ok := tl.ParentElement(0)
	if !ok {
		t.Fatal("expected element 2 to still qualify")
	}
	if parent != 2 {
		t.Errorf("expected element 2 (even parity) as parent, got %v", parent)
	}
}

func TestParentElementVacuumReturnsFalse(t *testing.T) {
	var tl TList
	tl = tl.Add(1, []float64{-10, -5}) // element entirely behind the hit
	_, ok := tl.ParentElement(0)
	if ok {
		t.Error("an element with no remaining positive t-value can't enclose the hit")
	}
}
