package pathtracer

import "math"

// Camera owns the eye transform, field of view, and the screen-plane
// basis used to generate primary rays.
type Camera struct {
	Transform     *Transform
	FOVDegrees    float64
	EyeSeparation float64 // eye offset for stereo rendering
}

func NewCamera() *Camera {
	return &Camera{
		Transform:  NewTransform(),
		FOVDegrees: 70,
	}
}

func NewCameraAt(x, y, z float64) *Camera {
	cam := NewCamera()
	cam.Transform.SetPosition(x, y, z)
	return cam
}

func (cam *Camera) Position() Vec3 { return cam.Transform.GetWorldPosition() }

// Direction returns the camera's forward-looking unit vector.
func (cam *Camera) Direction() Vec3 {
	return cam.Transform.GetForwardVector().Normalize()
}

func (cam *Camera) MoveForward(d float64) {
	f := cam.Transform.GetForwardVector()
	cam.Transform.Translate(f.X*d, f.Y*d, f.Z*d)
}

func (cam *Camera) MoveRight(d float64) {
	r := cam.Transform.GetRightVector()
	cam.Transform.Translate(r.X*d, r.Y*d, r.Z*d)
}

func (cam *Camera) MoveUp(d float64) {
	cam.Transform.Translate(0, d, 0)
}

func (cam *Camera) RotateYaw(angle float64)   { cam.Transform.Rotate(0, angle, 0) }
func (cam *Camera) RotatePitch(angle float64) { cam.Transform.Rotate(angle, 0, 0) }

func (cam *Camera) LookAt(target Vec3) { cam.Transform.LookAt(target) }

// screenBasis computes u = normalize(dir.z, 0, -dir.x), v = -normalize(dir
// x u), a basis where u is always horizontal regardless of camera roll.
func (cam *Camera) screenBasis() (dir, u, v Vec3) {
	dir = cam.Direction()
	u = Vec3{dir.Z, 0, -dir.X}.Normalize()
	v = dir.Cross(u).Normalize().Negate()
	return
}

// PrimaryRay builds the ray through screen pixel (x, y) of a screenW x
// screenH image, with an optional sub-pixel jitter (ox, oy in [0,1)) for
// anti-aliased/progressive sampling.
func (cam *Camera) PrimaryRay(x, y, screenW, screenH int, ox, oy float64) *Ray {
	dir, u, v := cam.screenBasis()
	aspect := float64(screenW) / float64(screenH)
	fovScale := math.Tan(cam.FOVDegrees * math.Pi / 180 / 2)

	// Normalize pixel to [-1, 1], then to the screen plane's physical
	// extent at unit distance from the camera. v points down the screen,
	// so py grows with y.
	px := (2*((float64(x)+ox)/float64(screenW)) - 1) * aspect * fovScale
	py := (2*((float64(y)+oy)/float64(screenH)) - 1) * fovScale

	target := cam.Position().Add(dir).Add(u.Scale(px)).Add(v.Scale(py))
	rayDir := target.Sub(cam.Position()).Normalize()
	return NewRay(cam.Position(), rayDir)
}

// StereoCameras returns the left/right eye cameras for stereo rendering.
// The UI post-compositor, not this package, decides how to merge the two
// resulting images.
func (cam *Camera) StereoCameras() (left, right *Camera) {
	_, u, _ := cam.screenBasis()
	half := cam.EyeSeparation / 2
	pos := cam.Position()

	l := *cam
	lt := *cam.Transform
	lt.Position = pos.Sub(u.Scale(half))
	l.Transform = &lt

	r := *cam
	rt := *cam.Transform
	rt.Position = pos.Add(u.Scale(half))
	r.Transform = &rt

	return &l, &r
}
