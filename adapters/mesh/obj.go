package mesh

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	pathtracer "github.com/mirstar13/go-pathtracer"
)

// OBJLoader reads legacy Wavefront .obj files, triangulating n-gons by
// fan triangulation. It ignores MTL/material directives: materials live
// on pathtracer.Element rather than on mesh faces, so the scene loader
// assigns one Material to the whole mesh shape.
type OBJLoader struct{}

func (OBJLoader) Load(path string) ([]*pathtracer.Triangle, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open obj file: %w", err)
	}
	defer file.Close()

	var vertices []pathtracer.Vec3
	var faces [][]int

	scanner := bufio.NewScanner(file)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "v":
			if len(parts) < 4 {
				return nil, fmt.Errorf("line %d: invalid vertex definition", lineNum)
			}
			x, err1 := strconv.ParseFloat(parts[1], 64)
			y, err2 := strconv.ParseFloat(parts[2], 64)
			z, err3 := strconv.ParseFloat(parts[3], 64)
			if err1 != nil || err2 != nil || err3 != nil {
				return nil, fmt.Errorf("line %d: invalid vertex coordinates", lineNum)
			}
			vertices = append(vertices, pathtracer.Vec3{X: x, Y: y, Z: z})

		case "f":
			if len(parts) < 4 {
				return nil, fmt.Errorf("line %d: face must have at least 3 vertices", lineNum)
			}
			indices := make([]int, 0, len(parts)-1)
			for i := 1; i < len(parts); i++ {
				idx, err := parseFaceVertexIndex(parts[i])
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNum, err)
				}
				if idx-1 < 0 || idx-1 >= len(vertices) {
					return nil, fmt.Errorf("line %d: vertex index out of range", lineNum)
				}
				indices = append(indices, idx-1)
			}
			faces = append(faces, indices)

		default:
			continue
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading obj file: %w", err)
	}
	if len(vertices) == 0 {
		return nil, fmt.Errorf("no vertices found in obj file")
	}

	var tris []*pathtracer.Triangle
	for _, face := range faces {
		for i := 1; i < len(face)-1; i++ {
			tris = append(tris, pathtracer.NewTriangle(
				vertices[face[0]], vertices[face[i]], vertices[face[i+1]]))
		}
	}
	return tris, nil
}

// parseFaceVertexIndex parses the vertex-index component of a face
// element (v, v/vt, v/vt/vn, v//vn) and returns the 1-based vertex
// index, ignoring any texture/normal indices.
func parseFaceVertexIndex(s string) (int, error) {
	vertPart := strings.SplitN(s, "/", 2)[0]
	idx, err := strconv.Atoi(vertPart)
	if err != nil {
		return 0, fmt.Errorf("invalid face index %q", s)
	}
	return idx, nil
}
