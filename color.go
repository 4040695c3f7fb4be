package pathtracer

import (
	"fmt"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color is an 8-bit RGB color used for BVH-debug keying and terminal
// preview output, where a gradient lookup is cheaper than a full
// radiance accumulation.
type Color struct {
	R, G, B uint8
}

// Predefined color palette
var (
	ColorBlack   = Color{0, 0, 0}
	ColorRed     = Color{255, 0, 0}
	ColorGreen   = Color{0, 255, 0}
	ColorBlue    = Color{0, 0, 255}
	ColorYellow  = Color{255, 255, 0}
	ColorCyan    = Color{0, 255, 255}
	ColorMagenta = Color{255, 0, 255}
	ColorWhite   = Color{255, 255, 255}
	ColorOrange  = Color{255, 165, 0}
	ColorPurple  = Color{128, 0, 128}
)

func NewColor(r, g, b uint8) Color {
	return Color{r, g, b}
}

func (c Color) ToANSI() string {
	return fmt.Sprintf("\033[38;2;%d;%d;%dm", c.R, c.G, c.B)
}

func (c Color) ToANSIBackground() string {
	return fmt.Sprintf("\033[48;2;%d;%d;%dm", c.R, c.G, c.B)
}

func ColorReset() string {
	return "\033[0m"
}

func (c Color) Lerp(other Color, t float64) Color {
	t = clamp(t, 0, 1)

	r := float64(c.R) + t*(float64(other.R)-float64(c.R))
	g := float64(c.G) + t*(float64(other.G)-float64(c.G))
	b := float64(c.B) + t*(float64(other.B)-float64(c.B))

	return Color{
		R: uint8(clamp(r, 0, 255)),
		G: uint8(clamp(g, 0, 255)),
		B: uint8(clamp(b, 0, 255)),
	}
}

// IntensityToColor maps a BVH traversal-step count (normalized 0..1) to a
// gradient, used by the BVH-debug view mode.
func IntensityToColor(intensity float64) Color {
	intensity = clamp(intensity, 0, 1)

	switch {
	case intensity < 0.2:
		return Color{0, 0, 100}.Lerp(ColorBlue, intensity/0.2)
	case intensity < 0.4:
		return ColorBlue.Lerp(ColorCyan, (intensity-0.2)/0.2)
	case intensity < 0.6:
		return ColorCyan.Lerp(ColorGreen, (intensity-0.4)/0.2)
	case intensity < 0.8:
		return ColorGreen.Lerp(ColorYellow, (intensity-0.6)/0.2)
	default:
		return ColorYellow.Lerp(ColorWhite, (intensity-0.8)/0.2)
	}
}

// RadianceColor is a linear-light RGB accumulator: the integrator adds
// into it sample by sample, and it is only quantized to 8-bit display
// space once, on publish — never between samples.
type RadianceColor struct {
	R, G, B float64
}

func (c RadianceColor) Add(o RadianceColor) RadianceColor {
	return RadianceColor{c.R + o.R, c.G + o.G, c.B + o.B}
}

func (c RadianceColor) Scale(s float64) RadianceColor {
	return RadianceColor{c.R * s, c.G * s, c.B * s}
}

func (c RadianceColor) Mul(o RadianceColor) RadianceColor {
	return RadianceColor{c.R * o.R, c.G * o.G, c.B * o.B}
}

func RadianceFromAlbedo(v Vec3) RadianceColor {
	return RadianceColor{v.X, v.Y, v.Z}
}

// ToRGBA quantizes the linear accumulator to 8-bit sRGB using go-colorful's
// gamma-correct conversion, replacing a hand-rolled pow(1/2.2) approximation.
func (c RadianceColor) ToRGBA() (r, g, b, a uint8) {
	lin := colorful.LinearRgb(clamp(c.R, 0, 1), clamp(c.G, 0, 1), clamp(c.B, 0, 1))
	rf, gf, bf := lin.Clamped().R, lin.Clamped().G, lin.Clamped().B
	return uint8(math.Round(rf * 255)), uint8(math.Round(gf * 255)), uint8(math.Round(bf * 255)), 255
}

// MagentaDefault is magenta as a RadianceColor. No loader or sampler
// substitutes it: a skybox image that fails to load is a scene-load error,
// and Material.sampleAlbedo returns its own magenta Vec3 for a nil albedo.
var MagentaDefault = RadianceColor{1, 0, 1}
