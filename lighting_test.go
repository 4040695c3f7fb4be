package pathtracer

import "testing"

func TestFresnelReflectRatioBoundedZeroToOne(t *testing.T) {
	normal := Vec3{0, 1, 0}
	for _, angle := range []Vec3{
		{0, -1, 0},
		{0.3, -1, 0},
		{0.9, -0.1, 0},
	} {
		dir := angle.Normalize()
		r := fresnelReflectRatio(1.0, 1.5, normal, dir, 1)
		if r < 0 || r > 1 {
			t.Errorf("fresnel ratio out of [0,1] for dir %v: %v", dir, r)
		}
	}
}

func TestFresnelReflectRatioGrazingApproachesFullReflectance(t *testing.T) {
	normal := Vec3{0, 1, 0}
	grazing := Vec3{0.999, -0.001, 0}.Normalize()
	straight := Vec3{0, -1, 0}

	rGrazing := fresnelReflectRatio(1.0, 1.5, normal, grazing, 1)
	rStraight := fresnelReflectRatio(1.0, 1.5, normal, straight, 1)

	if rGrazing <= rStraight {
		t.Errorf("expected grazing incidence (%v) to reflect more than straight-on (%v)", rGrazing, rStraight)
	}
}

func TestFresnelReflectRatioTotalInternalReflection(t *testing.T) {
	normal := Vec3{0, 1, 0}
	// n1 > n2 (exiting glass into air) at a steep enough angle to exceed
	// the critical angle triggers the short-circuit to full reflectivity.
	dir := Vec3{0.99, -0.05, 0}.Normalize()
	r := fresnelReflectRatio(1.5, 1.0, normal, dir, 0.7)
	if absDiff(r, 0.7) > 1e-9 {
		t.Errorf("expected TIR to return the reflectivity unchanged (0.7), got %v", r)
	}
}

func TestShadeSimpleUsesAmbientAndDiffuse(t *testing.T) {
	s := NewScene(DefaultSettings())
	s.Settings.ViewMode = ViewSimple
	s.Ambient = Vec3{0.1, 0.1, 0.1}
	// Light toward the camera, so it falls head-on on the hit point (0,0,4)
	// whose normal is (0,0,-1): diffuse = 1, albedo = 1.
	s.Lights = append(s.Lights, NewParallelLight(Vec3{0, 0, -1}, Vec3{1, 1, 1}, 1))
	elem := sphereElement(1, Vec3{0, 0, 5}, 1)
	s.AddElement(elem)
	s.RebuildBVH()

	in := NewIntegrator(s, 1)
	ray := NewRay(Vec3{0, 0, 0}, Vec3{0, 0, 1})
	c := in.Shade(ray)

	if absDiff(c.R, 1.1) > 1e-9 || absDiff(c.G, 1.1) > 1e-9 || absDiff(c.B, 1.1) > 1e-9 {
		t.Errorf("expected ambient 0.1 + diffuse 1.0 = 1.1 per channel, got %+v", c)
	}
}

func TestShadeHighDefEmissiveSurfaceShortCircuits(t *testing.T) {
	s := NewScene(DefaultSettings())
	s.Settings.ViewMode = ViewHighDef
	mat := NewDiffuseMaterial(Vec3{1, 1, 1}, 1)
	mat.Emissive = 2
	s.AddElement(&Element{ID: 1, Shape: &Sphere{Center: Vec3{0, 0, 5}, Radius: 1}, Material: mat})
	s.RebuildBVH()

	in := NewIntegrator(s, 1)
	ray := NewRay(Vec3{0, 0, 0}, Vec3{0, 0, 1})
	c := in.Shade(ray)

	if absDiff(c.R, 2) > 1e-9 || absDiff(c.G, 2) > 1e-9 || absDiff(c.B, 2) > 1e-9 {
		t.Errorf("expected emissive radiance of 2 per channel, got %+v", c)
	}
}

func TestShadeHighDefDepthTerminationReturnsBlack(t *testing.T) {
	s := NewScene(DefaultSettings())
	s.Settings.ViewMode = ViewHighDef
	s.Settings.Depth = 0
	s.AddElement(sphereElement(1, Vec3{0, 0, 5}, 1))
	s.RebuildBVH()

	in := NewIntegrator(s, 1)
	ray := NewRay(Vec3{0, 0, 0}, Vec3{0, 0, 1})
	ray.Depth = 0
	c := in.Shade(ray)

	if c != (RadianceColor{}) {
		t.Errorf("expected depth-terminated path to return black, got %+v", c)
	}
}
