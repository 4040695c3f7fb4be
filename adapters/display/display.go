// Package display provides DisplaySink implementations: the UI
// collaborator that overlays its own pixels on the orchestrator's
// published image and presents the result.
package display

import pathtracer "github.com/mirstar13/go-pathtracer"

// Sink presents a rendered frame and reports the logical screen size it
// wants frames produced at.
type Sink interface {
	ScreenSize() (width, height int)
	Present(scene pathtracer.Image, ui pathtracer.Image) error
	Close() error
}

// PassthroughSentinel marks a ui pixel as "no UI content here" so
// Blend can leave the scene pixel untouched.
var PassthroughSentinel = [4]byte{0xff, 0xff, 0xff, 0xff}

// Blend overlays ui on top of scene, pixel for pixel: any ui pixel
// exactly equal to PassthroughSentinel leaves the scene pixel as-is,
// everything else replaces it outright.
func Blend(scene, ui pathtracer.Image) pathtracer.Image {
	out := pathtracer.Image{Width: scene.Width, Height: scene.Height, Pixels: make([]byte, len(scene.Pixels))}
	copy(out.Pixels, scene.Pixels)

	if ui.Width != scene.Width || ui.Height != scene.Height {
		return out
	}

	for i := 0; i+3 < len(ui.Pixels); i += 4 {
		if ui.Pixels[i] == PassthroughSentinel[0] &&
			ui.Pixels[i+1] == PassthroughSentinel[1] &&
			ui.Pixels[i+2] == PassthroughSentinel[2] &&
			ui.Pixels[i+3] == PassthroughSentinel[3] {
			continue
		}
		out.Pixels[i] = ui.Pixels[i]
		out.Pixels[i+1] = ui.Pixels[i+1]
		out.Pixels[i+2] = ui.Pixels[i+2]
		out.Pixels[i+3] = ui.Pixels[i+3]
	}
	return out
}

// StereoCompose places a left and right eye image side by side into one
// wider frame.
func StereoCompose(left, right pathtracer.Image) pathtracer.Image {
	out := pathtracer.Image{
		Width:  left.Width + right.Width,
		Height: left.Height,
		Pixels: make([]byte, (left.Width+right.Width)*left.Height*4),
	}
	for y := 0; y < left.Height; y++ {
		leftRow := left.Pixels[y*left.Width*4 : (y+1)*left.Width*4]
		rightRow := right.Pixels[y*right.Width*4 : (y+1)*right.Width*4]
		outRowStart := y * out.Width * 4
		copy(out.Pixels[outRowStart:], leftRow)
		copy(out.Pixels[outRowStart+len(leftRow):], rightRow)
	}
	return out
}
