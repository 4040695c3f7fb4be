package mesh

import (
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	pathtracer "github.com/mirstar13/go-pathtracer"
)

// GLTFLoader reads .gltf/.glb assets, flattening every mesh primitive in
// the document into object-space triangles, using the modeler
// sub-package to decode accessor data directly into plain floats.
type GLTFLoader struct{}

func (GLTFLoader) Load(path string) ([]*pathtracer.Triangle, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open gltf asset: %w", err)
	}

	var tris []*pathtracer.Triangle
	for _, m := range doc.Meshes {
		for _, prim := range m.Primitives {
			positions, err := modeler.ReadPosition(doc, doc.Accessors[prim.Attributes[gltf.POSITION]], nil)
			if err != nil {
				return nil, fmt.Errorf("reading positions: %w", err)
			}
			var indices []uint32
			if prim.Indices != nil {
				indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
				if err != nil {
					return nil, fmt.Errorf("reading indices: %w", err)
				}
			} else {
				indices = make([]uint32, len(positions))
				for i := range indices {
					indices[i] = uint32(i)
				}
			}

			verts := make([]pathtracer.Vec3, len(positions))
			for i, p := range positions {
				verts[i] = pathtracer.Vec3{X: float64(p[0]), Y: float64(p[1]), Z: float64(p[2])}
			}

			for i := 0; i+2 < len(indices); i += 3 {
				a, b, c := indices[i], indices[i+1], indices[i+2]
				if int(a) >= len(verts) || int(b) >= len(verts) || int(c) >= len(verts) {
					continue
				}
				tris = append(tris, pathtracer.NewTriangle(verts[a], verts[b], verts[c]))
			}
		}
	}

	if len(tris) == 0 {
		return nil, fmt.Errorf("gltf asset %s contains no triangles", path)
	}
	return tris, nil
}
