// Package skybox provides SkyboxSampler implementations for rays that
// escape the scene's BVH entirely.
package skybox

import (
	"fmt"
	"image"
	"math"
	"os"

	_ "golang.org/x/image/bmp"
	_ "image/jpeg"
	_ "image/png"

	pathtracer "github.com/mirstar13/go-pathtracer"
)

// Equirectangular samples a full equirectangular HDRI-style image by ray
// direction, bilinearly filtered with repeat wrapping on U and clamp on
// V.
type Equirectangular struct {
	width, height int
	pixels        []pathtracer.Vec3
}

// LoadEquirectangular decodes an image file (png/jpeg/bmp) into a
// direction-sampled skybox.
func LoadEquirectangular(path string) (*Equirectangular, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open skybox image: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("cannot decode skybox image: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	pixels := make([]pathtracer.Vec3, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			pixels[y*w+x] = pathtracer.Vec3{
				X: float64(r) / 65535,
				Y: float64(g) / 65535,
				Z: float64(b) / 65535,
			}
		}
	}
	return &Equirectangular{width: w, height: h, pixels: pixels}, nil
}

// Sample implements pathtracer.SkyboxSampler: direction is expected to
// be unit length.
func (e *Equirectangular) Sample(direction pathtracer.Vec3) pathtracer.Vec3 {
	u := 0.5 + math.Atan2(direction.Z, direction.X)/(2*math.Pi)
	v := 0.5 - math.Asin(clamp(direction.Y, -1, 1))/math.Pi
	return e.sampleLinear(u, v)
}

func (e *Equirectangular) sampleLinear(u, v float64) pathtracer.Vec3 {
	u = wrapRepeat(u)
	v = clamp(v, 0, 1)

	fx := u*float64(e.width) - 0.5
	fy := v*float64(e.height) - 0.5
	x0 := int(math.Floor(fx))
	y0 := int(math.Floor(fy))
	tx := fx - float64(x0)
	ty := fy - float64(y0)

	c00 := e.at(x0, y0)
	c10 := e.at(x0+1, y0)
	c01 := e.at(x0, y0+1)
	c11 := e.at(x0+1, y0+1)

	top := c00.Scale(1 - tx).Add(c10.Scale(tx))
	bottom := c01.Scale(1 - tx).Add(c11.Scale(tx))
	return top.Scale(1 - ty).Add(bottom.Scale(ty))
}

func (e *Equirectangular) at(x, y int) pathtracer.Vec3 {
	x = ((x % e.width) + e.width) % e.width
	if y < 0 {
		y = 0
	}
	if y >= e.height {
		y = e.height - 1
	}
	return e.pixels[y*e.width+x]
}

func wrapRepeat(u float64) float64 {
	u = math.Mod(u, 1)
	if u < 0 {
		u += 1
	}
	return u
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
