// Package scene loads a pathtracer.Scene from an external JSON
// description: the scene-loader collaborator for the CLI binary.
package scene

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	pathtracer "github.com/mirstar13/go-pathtracer"
	meshadapter "github.com/mirstar13/go-pathtracer/adapters/mesh"
	skyboxadapter "github.com/mirstar13/go-pathtracer/adapters/skybox"
)

// Loader reads a scene description file and builds a ready-to-render
// pathtracer.Scene, resolving any referenced mesh/skybox assets through
// its own Loader so the scene format and the scene in memory never need
// to share a representation.
type Loader interface {
	Load(path string) (*pathtracer.Scene, error)
}

// JSONLoader is the default Loader: a comment-stripped JSON document
// naming the camera, lights, ambient term, skybox, and elements. Mesh
// and skybox assets referenced by path are resolved relative to the
// scene file's own directory.
type JSONLoader struct {
	MeshLoaders map[string]meshadapter.Loader // file extension -> loader
}

// NewJSONLoader returns a JSONLoader wired to the default mesh
// collaborators: glTF for .gltf/.glb, Wavefront for legacy .obj.
func NewJSONLoader() *JSONLoader {
	return &JSONLoader{
		MeshLoaders: map[string]meshadapter.Loader{
			".gltf": meshadapter.GLTFLoader{},
			".glb":  meshadapter.GLTFLoader{},
			".obj":  meshadapter.OBJLoader{},
		},
	}
}

type sceneDoc struct {
	Settings *settingsDoc  `json:"settings"`
	Camera   cameraDoc     `json:"camera"`
	Ambient  [3]float64    `json:"ambient"`
	Skybox   *skyboxDoc    `json:"skybox"`
	Lights   []lightDoc    `json:"lights"`
	Elements []elementDoc  `json:"elements"`
	Composed []composedDoc `json:"composed"`
}

type settingsDoc struct {
	Reflections  *bool    `json:"reflections"`
	Indirect     *bool    `json:"indirect"`
	Iterations   *uint32  `json:"iterations"`
	Depth        *uint32  `json:"depth"`
	AntiAliasing *float64 `json:"anti_aliasing"`
	ViewMode     *string  `json:"view_mode"`
	MaxThreads   *uint32  `json:"max_threads"`
	TileSize     *uint32  `json:"tile_size"`
	ScreenWidth  *int     `json:"screen_width"`
	ScreenHeight *int     `json:"screen_height"`
}

type cameraDoc struct {
	Position      [3]float64 `json:"position"`
	LookAt        [3]float64 `json:"look_at"`
	Up            [3]float64 `json:"up"`
	FOVDegrees    float64    `json:"fov_degrees"`
	EyeSeparation float64    `json:"eye_separation"`
}

type skyboxDoc struct {
	Type  string     `json:"type"` // "solid" | "equirectangular"
	Color [3]float64 `json:"color"`
	Path  string     `json:"path"`
}

type lightDoc struct {
	Direction [3]float64 `json:"direction"`
	Color     [3]float64 `json:"color"`
	Intensity float64    `json:"intensity"`
}

type materialDoc struct {
	Albedo          [3]float64 `json:"albedo"`
	Roughness       float64    `json:"roughness"`
	Metalness       float64    `json:"metalness"`
	Emissive        float64    `json:"emissive"`
	Transparency    float64    `json:"transparency"`
	RefractionIndex float64    `json:"refraction_index"`
	Opacity         float64    `json:"opacity"`
}

type elementDoc struct {
	ID       int         `json:"id"`
	Shape    string      `json:"shape"` // "sphere" | "plane" | "mesh"
	Center   [3]float64  `json:"center"`
	Radius   float64     `json:"radius"`
	Point    [3]float64  `json:"point"`
	Normal   [3]float64  `json:"normal"`
	MeshPath string      `json:"mesh_path"`
	Material materialDoc `json:"material"`
}

type composedDoc struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Members []int  `json:"members"`
}

func (l *JSONLoader) Load(path string) (*pathtracer.Scene, error) {
	raw, err := readStripped(path)
	if err != nil {
		return nil, err
	}

	var doc sceneDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parsing scene %s: %w", path, err)
	}

	settings := pathtracer.DefaultSettings()
	applySettings(&settings, doc.Settings)

	s := pathtracer.NewScene(settings)
	s.Ambient = vec3From(doc.Ambient)

	s.Camera = buildCamera(doc.Camera)

	if doc.Skybox != nil {
		sky, err := l.buildSkybox(*doc.Skybox, filepath.Dir(path))
		if err != nil {
			return nil, err
		}
		s.Skybox = sky
	}

	for _, ld := range doc.Lights {
		s.Lights = append(s.Lights, pathtracer.NewParallelLight(vec3From(ld.Direction), vec3From(ld.Color), ld.Intensity))
	}

	for _, ed := range doc.Elements {
		elem, err := l.buildElement(ed, filepath.Dir(path))
		if err != nil {
			return nil, err
		}
		s.AddElement(elem)
	}

	for _, cd := range doc.Composed {
		ids := make([]pathtracer.ElementID, len(cd.Members))
		for i, m := range cd.Members {
			ids[i] = pathtracer.ElementID(m)
		}
		s.AddComposed(&pathtracer.ComposedElement{
			ID:        pathtracer.ElementID(cd.ID),
			Name:      cd.Name,
			MemberIDs: ids,
		})
	}

	s.RebuildBVH()
	return s, nil
}

func applySettings(s *pathtracer.Settings, doc *settingsDoc) {
	if doc == nil {
		return
	}
	if doc.Reflections != nil {
		s.Reflections = *doc.Reflections
	}
	if doc.Indirect != nil {
		s.Indirect = *doc.Indirect
	}
	if doc.Iterations != nil {
		s.Iterations = *doc.Iterations
	}
	if doc.Depth != nil {
		s.Depth = *doc.Depth
	}
	if doc.AntiAliasing != nil {
		s.AntiAliasing = *doc.AntiAliasing
	}
	if doc.ViewMode != nil {
		s.ViewMode = parseViewMode(*doc.ViewMode)
	}
	if doc.MaxThreads != nil {
		s.MaxThreads = *doc.MaxThreads
	}
	if doc.TileSize != nil {
		s.TileSize = *doc.TileSize
	}
	if doc.ScreenWidth != nil {
		s.ScreenWidth = *doc.ScreenWidth
	}
	if doc.ScreenHeight != nil {
		s.ScreenHeight = *doc.ScreenHeight
	}
}

func parseViewMode(s string) pathtracer.ViewMode {
	switch strings.ToLower(s) {
	case "normal", "norm":
		return pathtracer.ViewNormal
	case "bvh":
		return pathtracer.ViewBVH
	case "highdef":
		return pathtracer.ViewHighDef
	default:
		return pathtracer.ViewSimple
	}
}

func buildCamera(cd cameraDoc) *pathtracer.Camera {
	pos := cd.Position
	cam := pathtracer.NewCameraAt(pos[0], pos[1], pos[2])
	if cd.FOVDegrees > 0 {
		cam.FOVDegrees = cd.FOVDegrees
	}
	cam.EyeSeparation = cd.EyeSeparation
	cam.LookAt(vec3From(cd.LookAt))
	return cam
}

func (l *JSONLoader) buildSkybox(doc skyboxDoc, baseDir string) (pathtracer.SkyboxSampler, error) {
	switch doc.Type {
	case "equirectangular":
		return skyboxadapter.LoadEquirectangular(resolvePath(baseDir, doc.Path))
	default:
		return pathtracer.SolidSkybox{Color: vec3From(doc.Color)}, nil
	}
}

func (l *JSONLoader) buildElement(ed elementDoc, baseDir string) (*pathtracer.Element, error) {
	mat := buildMaterial(ed.Material)

	var shape pathtracer.Shape
	switch ed.Shape {
	case "sphere":
		shape = &pathtracer.Sphere{Center: vec3From(ed.Center), Radius: ed.Radius}
	case "plane":
		shape = &pathtracer.Plane{Point: vec3From(ed.Point), Norm: vec3From(ed.Normal).Normalize()}
	case "mesh":
		tris, err := l.loadMesh(resolvePath(baseDir, ed.MeshPath))
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", ed.ID, err)
		}
		shape = pathtracer.NewMeshShape(tris)
	default:
		return nil, fmt.Errorf("element %d: unknown shape %q", ed.ID, ed.Shape)
	}

	return &pathtracer.Element{ID: pathtracer.ElementID(ed.ID), Shape: shape, Material: mat}, nil
}

func (l *JSONLoader) loadMesh(path string) ([]*pathtracer.Triangle, error) {
	ext := strings.ToLower(filepath.Ext(path))
	loader, ok := l.MeshLoaders[ext]
	if !ok {
		return nil, fmt.Errorf("no mesh loader registered for extension %q", ext)
	}
	return loader.Load(path)
}

func buildMaterial(md materialDoc) *pathtracer.Material {
	opacity := md.Opacity
	if opacity == 0 {
		opacity = 1
	}
	return &pathtracer.Material{
		Albedo:          pathtracer.SolidTexture{Color: vec3From(md.Albedo)},
		Roughness:       md.Roughness,
		Metalness:       md.Metalness,
		Emissive:        md.Emissive,
		Transparency:    md.Transparency,
		RefractionIndex: md.RefractionIndex,
		Opacity:         opacity,
	}
}

func vec3From(v [3]float64) pathtracer.Vec3 { return pathtracer.Vec3{X: v[0], Y: v[1], Z: v[2]} }

func resolvePath(baseDir, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(baseDir, p)
}
