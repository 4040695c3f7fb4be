// Package mesh provides loader implementations that turn an external
// mesh asset on disk into triangles a pathtracer.Shape can be built from.
package mesh

import pathtracer "github.com/mirstar13/go-pathtracer"

// Loader turns a mesh asset path into triangles in object space, ready
// to be wrapped in a pathtracer.MeshShape and placed by the scene loader.
type Loader interface {
	Load(path string) ([]*pathtracer.Triangle, error)
}
