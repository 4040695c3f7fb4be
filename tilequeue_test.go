package pathtracer

import "testing"

func TestTileQueueFillProducesCoarseToFineWaves(t *testing.T) {
	q := &TileQueue{}
	finest := q.Fill(1, 1, 128, 128, 64, 4)

	if finest == 0 {
		t.Fatal("expected a non-zero finest-wave tile count")
	}

	var factors []int
	seen := map[int]bool{}
	for {
		tile, ok := q.Pop(1, 1)
		if !ok {
			break
		}
		if !seen[tile.Factor] {
			seen[tile.Factor] = true
			factors = append(factors, tile.Factor)
		}
	}

	want := []int{4, 2, 1}
	if len(factors) != len(want) {
		t.Fatalf("expected factors %v in order, got %v", want, factors)
	}
	for i := range want {
		if factors[i] != want[i] {
			t.Fatalf("expected coarse-to-fine wave order %v, got %v", want, factors)
		}
	}
}

func TestTileQueuePopDropsStaleTiles(t *testing.T) {
	q := &TileQueue{}
	q.Fill(1, 1, 64, 64, 64, 1)

	// Nothing with render_id/version (2, 1) exists yet; Pop should drain
	// the stale (1, 1) tiles and report none found.
	_, ok := q.Pop(2, 1)
	if ok {
		t.Error("expected Pop to find no tiles for an unseen render_id")
	}
}

func TestTileQueueClearEmptiesQueue(t *testing.T) {
	q := &TileQueue{}
	q.Fill(1, 1, 128, 128, 64, 1)
	q.Clear()
	_, ok := q.Pop(1, 1)
	if ok {
		t.Error("expected Clear to empty the queue")
	}
}

func TestForEachUncalculatedPixelCoversFinestWaveOnce(t *testing.T) {
	tile := Tile{X: 0, Y: 0, Width: 4, Height: 4, Factor: 1, BaseFactor: 1}
	visited := map[[2]int]int{}
	ForEachUncalculatedPixel(tile, func(x, y int) {
		visited[[2]int{x, y}]++
	})

	if len(visited) != 16 {
		t.Fatalf("expected 16 distinct pixels visited in a 4x4 base-factor-1 tile, got %d", len(visited))
	}
	for k, n := range visited {
		if n != 1 {
			t.Errorf("pixel %v visited %d times, expected exactly once", k, n)
		}
	}
}

func TestForEachUncalculatedPixelFinerWaveSkipsAlreadyDrawnCorner(t *testing.T) {
	// At factor=1 inside a factor=2 wave (BaseFactor=2), the (0,0)-style
	// corner pixel was already drawn by the coarser wave and must not be
	// visited again.
	tile := Tile{X: 0, Y: 0, Width: 4, Height: 4, Factor: 1, BaseFactor: 2}
	visited := map[[2]int]bool{}
	ForEachUncalculatedPixel(tile, func(x, y int) {
		visited[[2]int{x, y}] = true
	})

	if visited[[2]int{0, 0}] {
		t.Error("expected the coarse-wave corner pixel (0,0) to be skipped when Factor != BaseFactor")
	}
}
