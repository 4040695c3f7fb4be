package pathtracer

import "testing"

func TestPrimaryRayCenterPixelMatchesDirection(t *testing.T) {
	cam := NewCameraAt(0, 0, 0)
	cam.LookAt(Vec3{0, 0, 1})

	// Odd dimensions so pixel (400, 300) with a 0.5 sub-pixel offset lands
	// exactly on the screen's optical center: (400+0.5)/801 == 0.5.
	ray := cam.PrimaryRay(400, 300, 801, 601, 0.5, 0.5)
	dir := cam.Direction()

	if absDiff(ray.Direction.X, dir.X) > 1e-6 ||
		absDiff(ray.Direction.Y, dir.Y) > 1e-6 ||
		absDiff(ray.Direction.Z, dir.Z) > 1e-6 {
		t.Errorf("center pixel ray should match camera direction: got %v, want %v", ray.Direction, dir)
	}
}

func TestPrimaryRayIsUnitLength(t *testing.T) {
	cam := NewCameraAt(1, 2, 3)
	cam.LookAt(Vec3{5, 0, 10})

	for _, px := range []struct{ x, y int }{{0, 0}, {799, 0}, {0, 599}, {799, 599}, {400, 300}} {
		ray := cam.PrimaryRay(px.x, px.y, 800, 600, 0.5, 0.5)
		if absDiff(ray.Direction.Length(), 1) > 1e-9 {
			t.Errorf("pixel (%d,%d): expected unit ray direction, got length %v", px.x, px.y, ray.Direction.Length())
		}
	}
}

func TestScreenBasisUIsAlwaysHorizontal(t *testing.T) {
	cam := NewCamera()
	cam.RotatePitch(0.7) // tilt up/down; u should stay in the XZ plane
	_, u, _ := cam.screenBasis()

	if absDiff(u.Y, 0) > 1e-9 {
		t.Errorf("expected u.Y == 0 regardless of camera pitch, got %v", u.Y)
	}
}

func TestStereoCamerasSeparateAlongU(t *testing.T) {
	cam := NewCameraAt(0, 0, 0)
	cam.EyeSeparation = 0.2
	left, right := cam.StereoCameras()

	sep := right.Position().Sub(left.Position()).Length()
	if absDiff(sep, cam.EyeSeparation) > 1e-9 {
		t.Errorf("expected eye separation of %v between cameras, got %v", cam.EyeSeparation, sep)
	}
}
