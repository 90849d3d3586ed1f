package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	debug := flag.Bool("debug", false, "show the FPS line and the debug panel")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	sceneName := flag.String("scene", "scene.yaml", "scene spec in prefabs/ (.yaml optional)")
	seed := flag.Uint64("seed", 0, "glitch seed; 0 picks one from the clock")
	watch := flag.Bool("watch", false, "hot reload scene specs, ease scripts and shaders")
	orbit := flag.Bool("orbit", false, "start with orbit controls enabled")
	flag.Parse()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(1280, 720)
	ebiten.SetWindowTitle("redact")

	game, err := NewGame(Options{
		Debug: *debug,
		Scene: *sceneName,
		Seed:  *seed,
		Watch: *watch,
		Orbit: *orbit,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	// The page draws its own cursor follower.
	ebiten.SetCursorMode(ebiten.CursorModeHidden)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
