// Command pathtracer renders a scene description interactively, either
// to a terminal or an OpenGL window, refreshing progressively as the
// orchestrator's resolution waves complete.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime/pprof"
	"time"

	"github.com/eiannone/keyboard"

	pathtracer "github.com/mirstar13/go-pathtracer"
	"github.com/mirstar13/go-pathtracer/adapters/display"
	sceneadapter "github.com/mirstar13/go-pathtracer/adapters/scene"
)

func main() {
	scenePath := flag.String("scene", "", "path to a scene JSON file")
	backend := flag.String("backend", "terminal", "display backend: terminal | gl")
	workers := flag.Int("workers", 4, "worker goroutine count")
	tileSize := flag.Uint("tile-size", 64, "tile size in pixels")
	cpuprofile := flag.String("cpuprofile", "", "write cpu profile to file")
	memprofile := flag.String("memprofile", "", "write memory profile to file")
	flag.Parse()

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "could not create cpu profile: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "could not start cpu profile: %v\n", err)
			os.Exit(1)
		}
		defer pprof.StopCPUProfile()
	}
	if *memprofile != "" {
		defer func() {
			f, err := os.Create(*memprofile)
			if err != nil {
				fmt.Fprintf(os.Stderr, "could not create memory profile: %v\n", err)
				return
			}
			defer f.Close()
			pprof.WriteHeapProfile(f)
		}()
	}

	if *scenePath == "" {
		fmt.Fprintln(os.Stderr, "usage: pathtracer -scene <path.json> [-backend terminal|gl]")
		os.Exit(1)
	}

	pathtracer.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	loader := sceneadapter.NewJSONLoader()
	sc, err := loader.Load(*scenePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading scene: %v\n", err)
		os.Exit(1)
	}
	sc.Settings.TileSize = uint32(*tileSize)

	sink, err := openSink(*backend, sc.Settings.ScreenWidth, sc.Settings.ScreenHeight)
	if err != nil {
		fmt.Fprintf(os.Stderr, "opening display: %v\n", err)
		os.Exit(1)
	}
	defer sink.Close()

	orch := pathtracer.NewOrchestrator(*workers)
	go orch.Run()
	defer orch.Stop()

	orch.Control() <- pathtracer.ControlMessage{Kind: pathtracer.CtrlSceneChange, Scene: sc}

	blankUI := pathtracer.Image{
		Width:  sc.Settings.ScreenWidth,
		Height: sc.Settings.ScreenHeight,
		Pixels: passthroughPixels(sc.Settings.ScreenWidth, sc.Settings.ScreenHeight),
	}

	stopKeys := startKeyboardControl(orch, sc)
	defer stopKeys()

	refresh := time.Duration(sc.Settings.UIRefreshMs) * time.Millisecond
	if refresh <= 0 {
		refresh = 50 * time.Millisecond
	}
	ticker := time.NewTicker(refresh)
	defer ticker.Stop()

	for {
		select {
		case result, ok := <-orch.Results():
			if !ok {
				return
			}
			if err := sink.Present(result.Image, blankUI); err != nil {
				if display.ErrClosed(err) {
					return
				}
				fmt.Fprintf(os.Stderr, "present: %v\n", err)
				return
			}
		case <-ticker.C:
			orch.Control() <- pathtracer.ControlMessage{Kind: pathtracer.CtrlAskImage}
		}
	}
}

func openSink(backend string, w, h int) (display.Sink, error) {
	switch backend {
	case "gl":
		return display.NewGL(w, h, "pathtracer")
	default:
		return display.NewTerminal()
	}
}

func passthroughPixels(w, h int) []byte {
	pixels := make([]byte, w*h*4)
	for i := 0; i < len(pixels); i += 4 {
		pixels[i] = display.PassthroughSentinel[0]
		pixels[i+1] = display.PassthroughSentinel[1]
		pixels[i+2] = display.PassthroughSentinel[2]
		pixels[i+3] = display.PassthroughSentinel[3]
	}
	return pixels
}

// startKeyboardControl reads raw keystrokes in a background goroutine
// via a non-blocking keyboard.Open/GetKey loop, and drives camera
// movement plus a SceneChange re-render whenever the camera moves.
func startKeyboardControl(orch *pathtracer.Orchestrator, sc *pathtracer.Scene) func() {
	if err := keyboard.Open(); err != nil {
		return func() {}
	}

	done := make(chan struct{})
	go func() {
		const moveStep = 0.25
		const rotStep = 0.05
		for {
			select {
			case <-done:
				return
			default:
			}
			_, key, err := keyboard.GetKey()
			if err != nil {
				continue
			}

			sc.Lock()
			moved := true
			switch key {
			case keyboard.KeyArrowUp:
				sc.Camera.MoveForward(moveStep)
			case keyboard.KeyArrowDown:
				sc.Camera.MoveForward(-moveStep)
			case keyboard.KeyArrowLeft:
				sc.Camera.RotateYaw(-rotStep)
			case keyboard.KeyArrowRight:
				sc.Camera.RotateYaw(rotStep)
			case keyboard.KeyEsc:
				sc.Unlock()
				close(done)
				return
			default:
				moved = false
			}
			sc.Unlock()

			if moved {
				orch.Control() <- pathtracer.ControlMessage{Kind: pathtracer.CtrlSceneChange, Scene: sc}
			}
		}
	}()

	return func() {
		select {
		case <-done:
		default:
			close(done)
		}
		keyboard.Close()
	}
}
