package pathtracer

// ViewMode selects the top-level shading algorithm applied at a hit.
type ViewMode int

const (
	ViewSimple ViewMode = iota
	ViewNormal
	ViewBVH
	ViewHighDef
)

func (v ViewMode) String() string {
	switch v {
	case ViewSimple:
		return "Simple"
	case ViewNormal:
		return "Norm"
	case ViewBVH:
		return "BVH"
	case ViewHighDef:
		return "HighDef"
	default:
		return "Unknown"
	}
}

// Settings is the single explicit configuration value threaded through
// the scene and orchestrator, held as data instead of package-level
// mutable globals.
type Settings struct {
	Reflections bool
	Indirect    bool
	Iterations  uint32
	Depth       uint32

	AntiAliasing float64
	ViewMode     ViewMode

	// BVHFullTraversal is auto-derived by RefreshBVHFullTraversal, which
	// (*Scene).RebuildBVH calls, not set by hand; kept here because the orchestrator and workers both
	// need to read it alongside the rest of the render configuration.
	BVHFullTraversal bool

	MaxThreads  uint32
	TileSize    uint32
	UIRefreshMs uint32

	SkyboxTexture string

	ScreenWidth  int
	ScreenHeight int
}

// DefaultSettings returns the baseline render configuration.
func DefaultSettings() Settings {
	return Settings{
		Reflections:  true,
		Indirect:     true,
		Iterations:   4,
		Depth:        4,
		AntiAliasing: 1.0,
		ViewMode:     ViewHighDef,
		MaxThreads:   4,
		TileSize:     64,
		UIRefreshMs:  50,
		ScreenWidth:  800,
		ScreenHeight: 600,
	}
}

// RefractionDepthLimit bounds refraction-chain recursion (which does not
// consume a bounce of Settings.Depth) so pathologically nested transparent
// media cannot exhaust the stack. See DESIGN.md, Open Question 2.
const RefractionDepthLimit = 16
