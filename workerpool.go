package pathtracer

import (
	"sync"
	"sync/atomic"
	"time"
)

// PixelSample is one finished pixel inside a tile's local buffer.
type PixelSample struct {
	X, Y  int
	Color RadianceColor
}

// TileResult is what a worker hands back on the completion channel —
// metadata plus its local buffer. Workers never touch the shared
// framebuffer directly; only the orchestrator merges results into it.
type TileResult struct {
	Tile    Tile
	Samples []PixelSample
}

// WorkerPool is N long-lived goroutines draining a TileQueue, each
// ray-casting its tile's pixels through the BVH and shading them.
type WorkerPool struct {
	scene       atomic.Pointer[Scene]
	queue       *TileQueue
	completions chan TileResult

	stop chan struct{}
	wg   sync.WaitGroup
}

func NewWorkerPool(scene *Scene, queue *TileQueue, n int) *WorkerPool {
	p := &WorkerPool{
		queue:       queue,
		completions: make(chan TileResult, n*4),
		stop:        make(chan struct{}),
	}
	p.scene.Store(scene)
	return p
}

// Completions is the multi-producer/single-consumer channel the
// orchestrator drains.
func (p *WorkerPool) Completions() <-chan TileResult { return p.completions }

// SetScene rewires the pool to render a different scene. Workers read it
// lock-free via an atomic pointer, so this is safe to call while workers
// are in flight: a worker either finishes its in-progress tile against
// the old scene or picks up the new one on its next Pop.
func (p *WorkerPool) SetScene(scene *Scene) { p.scene.Store(scene) }

// Start launches n worker goroutines, each owning its private RNG seeded
// distinctly so no two goroutines ever share a generator.
func (p *WorkerPool) Start(n int, current func() (renderID, version uint64)) {
	for i := 0; i < n; i++ {
		p.wg.Add(1)
		go p.worker(int64(i)+1, current)
	}
}

func (p *WorkerPool) Stop() {
	close(p.stop)
	p.wg.Wait()
}

func (p *WorkerPool) worker(seed int64, current func() (renderID, version uint64)) {
	defer p.wg.Done()

	for {
		select {
		case <-p.stop:
			return
		default:
		}

		rid, ver := current()
		tile, ok := p.queue.Pop(rid, ver)
		if !ok {
			select {
			case <-p.stop:
				return
			case <-time.After(time.Millisecond):
			}
			continue
		}

		result := p.renderTile(tile, seed)
		select {
		case p.completions <- result:
		case <-p.stop:
			return
		}
	}
}

// renderTile casts every pixel the tile is responsible for through the
// camera and integrator, averaging over Settings.Iterations samples per
// pixel. The scene read lock is held for the entire render loop, not
// just a settings snapshot: a BVH rebuild or camera mutation under the
// write lock can swap scene.bvh or scene.Camera in place at any time,
// and Shade/PrimaryRay read through p.scene for the whole pixel loop, so
// releasing the lock early would let those reads race the swap.
func (p *WorkerPool) renderTile(tile Tile, seed int64) TileResult {
	scene := p.scene.Load()
	scene.RLock()
	defer scene.RUnlock()

	settings := scene.Settings
	camera := scene.Camera
	screenW, screenH := settings.ScreenWidth, settings.ScreenHeight
	integrator := NewIntegrator(scene, seed)

	var samples []PixelSample
	ForEachUncalculatedPixel(tile, func(x, y int) {
		if x < 0 || y < 0 || x >= screenW || y >= screenH {
			return
		}
		acc := RadianceColor{}
		iterations := settings.Iterations
		if iterations == 0 {
			iterations = 1
		}
		for i := uint32(0); i < iterations; i++ {
			ox, oy := 0.5, 0.5
			if settings.AntiAliasing > 0 {
				ox = 0.5 + (integrator.rng.Float64()-0.5)*settings.AntiAliasing
				oy = 0.5 + (integrator.rng.Float64()-0.5)*settings.AntiAliasing
			}
			ray := camera.PrimaryRay(x, y, screenW, screenH, ox, oy)
			acc = acc.Add(integrator.Shade(ray))
		}
		samples = append(samples, PixelSample{X: x, Y: y, Color: acc.Scale(1 / float64(iterations))})
	})

	return TileResult{Tile: tile, Samples: samples}
}
