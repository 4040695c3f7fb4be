package pathtracer

import (
	"sync"
	"sync/atomic"
	"time"
)

// RenderState is the orchestrator's top-level state.
type RenderState int

const (
	StateIdle RenderState = iota
	StateRendering
	StateFinalized
)

// SceneRender is the live render for the current scene: its framebuffer,
// wave bookkeeping, and the render_id/version pair that invalidates
// superseded tile deliveries.
type SceneRender struct {
	RenderID uint64
	Version  uint64

	mu          sync.Mutex
	framebuffer []RadianceColor
	width       int
	height      int

	// waveRemaining maps a wave's Factor to the count of its tiles still
	// outstanding. A wave publishes a partial image the moment its count
	// reaches zero; the factor-1 wave reaching zero is what finalizes
	// the render.
	waveRemaining map[int]int
}

func newSceneRender(w, h int, renderID, version uint64) *SceneRender {
	return &SceneRender{
		RenderID:    renderID,
		Version:     version,
		framebuffer: make([]RadianceColor, w*h),
		width:       w,
		height:      h,
	}
}

func (sr *SceneRender) index(x, y int) int { return y*sr.width + x }

// Image is a published RGBA frame sized to the logical screen.
type Image struct {
	Width, Height int
	Pixels        []byte // RGBA8, row-major
}

// ControlMessage is the UI collaborator's control-channel vocabulary.
type ControlMessage struct {
	Kind  ControlKind
	Scene *Scene
}

type ControlKind int

const (
	CtrlSceneChange ControlKind = iota
	CtrlAskImage
)

// ResultMessage is what the orchestrator publishes to the UI collaborator.
type ResultMessage struct {
	Image Image
	Final bool
}

// Orchestrator owns the current render: applies tile results to the
// framebuffer, publishes partial/final images, and enforces at-most-one
// active render with stale-delivery dropping. Exactly one scene is ever
// "current" — matching a single-viewport usage pattern — so one
// TileQueue and one WorkerPool are shared across every scene change,
// rather than one per scene (see DESIGN.md for the rationale).
type Orchestrator struct {
	mu      sync.RWMutex
	state   RenderState
	scene   *Scene
	current *SceneRender

	nextRenderID atomic.Uint64

	queue      *TileQueue
	pool       *WorkerPool
	numWorkers int

	control chan ControlMessage
	results chan ResultMessage

	stop chan struct{}
}

func NewOrchestrator(numWorkers int) *Orchestrator {
	return &Orchestrator{
		state:      StateIdle,
		numWorkers: numWorkers,
		queue:      &TileQueue{},
		control:    make(chan ControlMessage, 16),
		results:    make(chan ResultMessage, 16),
		stop:       make(chan struct{}),
	}
}

func (o *Orchestrator) Control() chan<- ControlMessage { return o.control }
func (o *Orchestrator) Results() <-chan ResultMessage  { return o.results }

func (o *Orchestrator) State() RenderState {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.state
}

// Run drains the control channel and the worker pool's completion
// channel, waking periodically so partial deliveries get merged even
// when no new control message arrives.
func (o *Orchestrator) Run() {
	const refresh = 25 * time.Millisecond
	for {
		select {
		case <-o.stop:
			return
		case msg := <-o.control:
			o.handleControl(msg)
		case <-time.After(refresh):
			o.drainCompletions()
		}
	}
}

func (o *Orchestrator) Stop() {
	close(o.stop)
	if o.pool != nil {
		o.pool.Stop()
	}
}

func (o *Orchestrator) handleControl(msg ControlMessage) {
	switch msg.Kind {
	case CtrlSceneChange:
		o.sceneChange(msg.Scene)
	case CtrlAskImage:
		o.askImage()
	}
}

// sceneChange handles a scene-change control message: bump render_id
// (every new SceneRender starts at version 1; version is not bumped),
// clear and refill the shared queue with coarse-first waves, and move
// to Rendering. A render_id bump alone invalidates every tile
// still in flight from the previous scene, whether or not it was the
// same *Scene value.
func (o *Orchestrator) sceneChange(scene *Scene) {
	scene.Lock()
	scene.RebuildBVH()
	settings := scene.Settings
	scene.Unlock()

	renderID := o.nextRenderID.Add(1)
	sr := newSceneRender(settings.ScreenWidth, settings.ScreenHeight, renderID, 1)

	o.mu.Lock()
	o.scene = scene
	o.current = sr
	o.state = StateRendering
	o.mu.Unlock()

	tileSize := int(settings.TileSize)
	if tileSize <= 0 {
		tileSize = 64
	}
	baseFactor := 1
	for baseFactor*2 <= tileSize {
		baseFactor *= 2
	}

	finest := o.queue.Fill(sr.RenderID, sr.Version, sr.width, sr.height, tileSize, baseFactor)
	sr.waveRemaining = map[int]int{}
	for _, factor := range waveFactors(baseFactor) {
		sr.waveRemaining[factor] = finest
	}

	if o.pool == nil {
		o.pool = NewWorkerPool(scene, o.queue, o.numWorkers)
		o.pool.Start(o.numWorkers, func() (uint64, uint64) {
			o.mu.RLock()
			defer o.mu.RUnlock()
			if o.current == nil {
				return 0, 0
			}
			return o.current.RenderID, o.current.Version
		})
	} else {
		o.pool.SetScene(scene)
	}
}

// waveFactors returns the coarse-to-fine sequence of super-pixel strides
// TileQueue.Fill generates tiles for: baseFactor, baseFactor/2, ..., 1.
// Every wave covers the same tileSize grid over the screen, so they all
// carry the same tile count.
func waveFactors(baseFactor int) []int {
	var factors []int
	for factor := baseFactor; factor >= 1; factor /= 2 {
		factors = append(factors, factor)
		if factor == 1 {
			break
		}
	}
	return factors
}

// askImage handles an ask-image control message: publish the current
// framebuffer with final=false, whatever its completeness.
func (o *Orchestrator) askImage() {
	o.mu.RLock()
	sr := o.current
	o.mu.RUnlock()
	if sr == nil {
		return
	}
	o.publish(sr, false)
}

// drainCompletions merges every pending tile result into the current
// framebuffer, publishing partial/final images as resolution waves
// complete.
func (o *Orchestrator) drainCompletions() {
	if o.pool == nil {
		return
	}
	for {
		select {
		case result := <-o.pool.Completions():
			o.applyTile(result)
		default:
			return
		}
	}
}

func (o *Orchestrator) applyTile(result TileResult) {
	o.mu.RLock()
	sr := o.current
	o.mu.RUnlock()
	if sr == nil || result.Tile.RenderID != sr.RenderID || result.Tile.Version != sr.Version {
		return // stale delivery: render_id/version no longer current, dropped silently
	}

	sr.mu.Lock()
	for _, s := range result.Samples {
		if s.X < 0 || s.Y < 0 || s.X >= sr.width || s.Y >= sr.height {
			continue
		}
		sr.framebuffer[sr.index(s.X, s.Y)] = s.Color
	}
	factor := result.Tile.Factor
	sr.waveRemaining[factor]--
	remaining := sr.waveRemaining[factor]
	sr.mu.Unlock()

	if remaining != 0 {
		return
	}

	// This wave just finished: publish it, whether it's a coarse preview
	// or the factor-1 wave that finalizes the render.
	final := factor == 1
	o.publish(sr, final)
	if final {
		o.mu.Lock()
		o.state = StateFinalized
		o.mu.Unlock()
	}
}

func (sr *SceneRender) toImage() Image {
	sr.mu.Lock()
	defer sr.mu.Unlock()
	pixels := make([]byte, sr.width*sr.height*4)
	for i, c := range sr.framebuffer {
		r, g, b, a := c.ToRGBA()
		pixels[i*4] = r
		pixels[i*4+1] = g
		pixels[i*4+2] = b
		pixels[i*4+3] = a
	}
	return Image{Width: sr.width, Height: sr.height, Pixels: pixels}
}

func (o *Orchestrator) publish(sr *SceneRender, final bool) {
	select {
	case o.results <- ResultMessage{Image: sr.toImage(), Final: final}:
	default:
		// UI is behind; drop rather than block the orchestrator loop.
	}
}
