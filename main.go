package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/clawmachine/ecs/component"
	"github.com/milk9111/clawmachine/ecs/system"
)

func main() {
	modeName := flag.String("mode", "", "start a game mode directly: speed or number")
	debug := flag.Bool("debug", false, "show claw state and invariant counters")
	mute := flag.Bool("mute", false, "disable audio")
	watch := flag.Bool("watch", false, "hot reload tuning from prefabs/claw_machine.yaml")
	flag.Parse()

	opts := Options{Debug: *debug, Mute: *mute, Watch: *watch}
	if *modeName != "" {
		mode, ok := component.ParseGamemode(*modeName)
		if !ok {
			log.Fatalf("unknown mode %q, want speed or number", *modeName)
		}
		opts.Mode = mode
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("claw machine")
	ebiten.SetTPS(int(1/system.DefaultStep + 0.5))

	game, err := NewGame(opts)
	if err != nil {
		log.Fatalf("claw machine: %v", err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil && err != ebiten.Termination {
		log.Fatal(err)
	}
}
