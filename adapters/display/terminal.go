package display

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	pathtracer "github.com/mirstar13/go-pathtracer"
)

// Terminal presents frames as a grid of colored cells in a terminal, one
// cell per pixel (pixels beyond the terminal's size are not drawn), using tcell.Screen's cell model so resize and color-downsampling come
// from the library instead of hand-rolled escape sequences.
type Terminal struct {
	screen tcell.Screen
	width  int
	height int
}

func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("creating terminal screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("initializing terminal screen: %w", err)
	}
	screen.HideCursor()
	w, h := screen.Size()
	return &Terminal{screen: screen, width: w, height: h}, nil
}

func (t *Terminal) ScreenSize() (int, int) { return t.width, t.height }

func (t *Terminal) Present(scene, ui pathtracer.Image) error {
	w, h := t.screen.Size()
	if w != t.width || h != t.height {
		t.width, t.height = w, h
	}

	merged := Blend(scene, ui)
	style := tcell.StyleDefault
	for y := 0; y < t.height && y < merged.Height; y++ {
		for x := 0; x < t.width && x < merged.Width; x++ {
			i := (y*merged.Width + x) * 4
			r, g, b := merged.Pixels[i], merged.Pixels[i+1], merged.Pixels[i+2]
			cellStyle := style.Background(tcell.NewRGBColor(int32(r), int32(g), int32(b)))
			t.screen.SetContent(x, y, ' ', nil, cellStyle)
		}
	}
	t.screen.Show()
	return nil
}

func (t *Terminal) Close() error {
	t.screen.Fini()
	return nil
}

// PollEvent exposes the underlying screen's event loop so cmd/pathtracer
// can drive SceneChange/AskImage control messages from terminal resize
// and key events without this package depending on the control-channel
// types.
func (t *Terminal) PollEvent() tcell.Event { return t.screen.PollEvent() }
