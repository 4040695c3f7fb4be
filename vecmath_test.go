package pathtracer

import (
	"math"
	"math/rand"
	"testing"
)

func TestReflectPreservesLength(t *testing.T) {
	d := Vec3{1, -1, 0.5}.Normalize()
	n := Vec3{0, 1, 0}
	r := Reflect(d, n)

	if absDiff(r.Length(), 1) > 1e-9 {
		t.Errorf("reflected vector not unit length: %v", r.Length())
	}
	if r.Y != -d.Y {
		t.Errorf("reflection about Y should flip Y component: got %v, want %v", r.Y, -d.Y)
	}
}

func TestRefractRoundTrip(t *testing.T) {
	n := Vec3{0, 1, 0}
	d := Vec3{0.3, -1, 0}.Normalize()
	eta := 1.0 / 1.5

	refracted, ok := Refract(d, n, eta)
	if !ok {
		t.Fatal("expected refraction to succeed for a shallow angle")
	}
	if absDiff(refracted.Length(), 1) > 1e-9 {
		t.Errorf("refracted vector not unit length: %v", refracted.Length())
	}

	back, ok := Refract(refracted, n.Negate(), 1/eta)
	if !ok {
		t.Fatal("expected the reverse refraction to succeed")
	}
	if absDiff(back.X, d.X) > 1e-6 || absDiff(back.Y, d.Y) > 1e-6 || absDiff(back.Z, d.Z) > 1e-6 {
		t.Errorf("round-tripped refraction mismatch: got %v, want %v", back, d)
	}
}

func TestRefractTotalInternalReflection(t *testing.T) {
	n := Vec3{0, 1, 0}
	d := Vec3{0.99, -0.05, 0}.Normalize()
	_, ok := Refract(d, n, 1.5)
	if ok {
		t.Error("expected total internal reflection at a grazing angle from a denser into a rarer medium")
	}
}

func TestNormalizeZeroVectorDoesNotNaN(t *testing.T) {
	v := Vec3{}.Normalize()
	if math.IsNaN(v.X) || math.IsNaN(v.Y) || math.IsNaN(v.Z) {
		t.Fatalf("normalizing the zero vector produced NaN: %v", v)
	}
	if absDiff(v.Length(), 1) > 1e-9 {
		t.Errorf("zero-vector normalize should still return a unit vector, got %v", v)
	}
}

func TestRandomUnitVectorIsUnit(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		v := RandomUnitVector(rng)
		if absDiff(v.Length(), 1) > 1e-9 {
			t.Fatalf("RandomUnitVector returned non-unit vector: %v (len %v)", v, v.Length())
		}
	}
}
