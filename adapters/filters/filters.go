// Package filters is a seam for tone curves, denoising, or overlays
// applied to a finished frame before it reaches a DisplaySink. No such
// pass ships yet, so the only implementation is the identity.
package filters

import pathtracer "github.com/mirstar13/go-pathtracer"

// PostFilter transforms a finished frame before presentation.
type PostFilter interface {
	Apply(img pathtracer.Image) pathtracer.Image
}

// Identity returns its input unchanged.
type Identity struct{}

func (Identity) Apply(img pathtracer.Image) pathtracer.Image { return img }
