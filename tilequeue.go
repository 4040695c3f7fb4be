package pathtracer

import "sync"

// Tile is a rectangular screen region processed as a unit by one worker.
// factor is the current super-pixel stride; render_id/version discriminate
// tiles from superseded requests.
type Tile struct {
	X, Y          int
	Width, Height int
	Factor        int
	BaseFactor    int
	RenderID      uint64
	Version       uint64
}

// TileQueue is the work queue, protected by a single exclusive lock held
// only during push/pop/clear: row-major tile order, generated
// wave-by-wave from coarse to fine, kept as one slice behind one mutex.
// The orchestrator owns one TileQueue and reuses it across every scene
// change, since at most one render is active at a time.
type TileQueue struct {
	mu    sync.Mutex
	tiles []Tile
}

// Fill clears the queue and refills it with coarse-first resolution
// waves for a freshly activated render. Returns the tile count of the
// finest (factor == 1) wave, used by the orchestrator to size each
// wave's SceneRender.waveRemaining count.
func (q *TileQueue) Fill(renderID, version uint64, screenW, screenH, tileSize, baseFactor int) int {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.tiles = q.tiles[:0]
	finestCount := 0

	for factor := baseFactor; factor >= 1; factor /= 2 {
		for y := 0; y < screenH; y += tileSize {
			for x := 0; x < screenW; x += tileSize {
				w := tileSize
				if x+w > screenW {
					w = screenW - x
				}
				h := tileSize
				if y+h > screenH {
					h = screenH - y
				}
				if factor == 1 {
					finestCount++
				}
				q.tiles = append(q.tiles, Tile{
					X: x, Y: y, Width: w, Height: h,
					Factor: factor, BaseFactor: baseFactor,
					RenderID: renderID, Version: version,
				})
			}
		}
		if factor == 1 {
			break
		}
	}

	return finestCount
}

// Pop removes and returns the first tile whose render_id/version are
// current, discarding any stale tiles ahead of it. Stale tiles are
// dropped, not requeued — they belong to a defunct render.
func (q *TileQueue) Pop(currentRenderID, currentVersion uint64) (Tile, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for len(q.tiles) > 0 {
		t := q.tiles[0]
		q.tiles = q.tiles[1:]
		if t.RenderID == currentRenderID && t.Version == currentVersion {
			return t, true
		}
	}
	return Tile{}, false
}

// Clear empties the queue (scene change on a defunct render_id).
func (q *TileQueue) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.tiles = nil
}

// ForEachUncalculatedPixel visits exactly the pixels this tile is
// responsible for writing at its factor: the corner pixel of each
// super-cell is visited only in the coarsest wave (Factor == BaseFactor)
// and skipped in finer waves, since that wave has already drawn it.
func ForEachUncalculatedPixel(t Tile, visit func(x, y int)) {
	oldFactor := t.Factor * 2
	for offsetX := 0; offsetX < t.Width; offsetX += oldFactor {
		for offsetY := 0; offsetY < t.Height; offsetY += oldFactor {
			x := t.X + offsetX
			y := t.Y + offsetY
			if t.Factor == t.BaseFactor {
				visit(x, y)
			}
			visit(x+t.Factor, y)
			visit(x, y+t.Factor)
			visit(x+t.Factor, y+t.Factor)
		}
	}
}
