package main

import (
	"fmt"
	"log"
	"slices"
	"strings"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/clawmachine/ecs"
	"github.com/milk9111/clawmachine/ecs/component"
	"github.com/milk9111/clawmachine/ecs/entity"
	"github.com/milk9111/clawmachine/ecs/system"
	"github.com/milk9111/clawmachine/platform"
	"github.com/milk9111/clawmachine/prefabs"
	"golang.org/x/image/colornames"
)

const (
	baseWidth  = 1280
	baseHeight = 720
)

type phase int

const (
	phaseMenu phase = iota
	phaseInGame
	phaseResults
)

type Options struct {
	// Mode skips the menu when set.
	Mode  component.Gamemode
	Debug bool
	Mute  bool
	Watch bool
}

type Game struct {
	world     *ecs.World
	scheduler *ecs.Scheduler
	physics   *system.PhysicsSystem
	machine   *entity.Machine

	phase phase
	quit  bool
	debug bool

	audio   *platform.AudioPlayer
	watcher *prefabs.Watcher
	menu    *ebitenui.UI
	hud     *platform.HUD
	view    platform.View
}

func NewGame(opts Options) (*Game, error) {
	spec, err := prefabs.LoadMachineSpec()
	if err != nil {
		return nil, err
	}

	world := ecs.NewWorld()
	machine, err := entity.BuildClawMachine(world, spec)
	if err != nil {
		return nil, err
	}

	g := &Game{
		world:   world,
		physics: system.NewPhysicsSystem(spec.Physics.Gravity),
		machine: machine,
		debug:   opts.Debug,
		hud:     platform.NewHUD(),
		view:    machineView(spec),
	}

	var player system.CuePlayer = platform.MutedPlayer{}
	if !opts.Mute {
		manifest, err := prefabs.LoadAudioManifest()
		if err != nil {
			return nil, err
		}
		g.audio, err = platform.NewAudioPlayer(audio.NewContext(manifest.SampleRate), manifest)
		if err != nil {
			return nil, err
		}
		player = g.audio
	}

	g.scheduler = system.NewClawMachineScheduler(platform.NewInputSystem(), g.physics, player, system.DefaultStep)

	if opts.Watch {
		g.watcher, err = prefabs.NewWatcher(prefabs.Dir)
		if err != nil {
			return nil, fmt.Errorf("watch %s: %w", prefabs.Dir, err)
		}
	}

	g.menu = NewMenuUI(g.hud.Face(), func(mode component.Gamemode) {
		g.startSession(mode)
	}, func() {
		g.quit = true
	})

	if opts.Mode != component.GamemodeNone {
		g.startSession(opts.Mode)
	}
	return g, nil
}

// machineView frames the cabinet with a margin around the glass.
func machineView(spec *prefabs.MachineSpec) platform.View {
	height := 2*spec.Glass.HalfHeight + 0.8
	return platform.View{
		CenterX: spec.Glass.CenterX,
		CenterY: spec.Glass.CenterY,
		Scale:   baseHeight / height,
		Width:   baseWidth,
		Height:  baseHeight,
	}
}

func (g *Game) startSession(mode component.Gamemode) {
	if err := system.StartSession(g.world, mode); err != nil {
		log.Printf("start session: %v", err)
		return
	}
	g.phase = phaseInGame
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}
	g.reloadTuning()

	switch g.phase {
	case phaseMenu:
		g.menu.Update()
		if inpututil.IsKeyJustPressed(ebiten.Key1) {
			g.startSession(component.GamemodeSpeedGame)
		} else if inpututil.IsKeyJustPressed(ebiten.Key2) {
			g.startSession(component.GamemodeNumberGame)
		} else if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			g.quit = true
		}
	case phaseResults:
		if platform.ContinuePressed() {
			system.EndSession(g.world)
			g.phase = phaseMenu
		}
	}

	g.scheduler.Update(g.world)

	if g.phase == phaseInGame {
		if _, ok := system.CurrentResult(g.world); ok {
			g.phase = phaseResults
		}
	}
	return nil
}

func (g *Game) reloadTuning() {
	if g.watcher == nil {
		return
	}
	select {
	case err := <-g.watcher.Errors:
		if err != nil {
			log.Printf("watch: %v", err)
		}
	default:
	}
	for _, name := range g.watcher.Drain() {
		if name != prefabs.MachineSpecFile {
			continue
		}
		spec, err := prefabs.LoadMachineSpec()
		if err != nil {
			log.Printf("reload %s: %v", name, err)
			continue
		}
		if err := entity.ApplyTuning(g.world, spec); err != nil {
			log.Printf("reload %s: %v", name, err)
			continue
		}
		log.Printf("reloaded %s", name)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Black)
	platform.DrawPhysics(g.physics.Space(), screen, g.view)

	switch g.phase {
	case phaseMenu:
		g.menu.Draw(screen)
	case phaseInGame:
		g.hud.DrawCentered(screen, baseWidth/2, 24, 3, colornames.White, system.SessionDisplay(g.world))
	case phaseResults:
		res, _ := system.CurrentResult(g.world)
		clr := colornames.Tomato
		if res.Win {
			clr = colornames.Limegreen
		}
		g.hud.DrawCentered(screen, baseWidth/2, baseHeight/3, 3, clr, res.DisplayText)
		g.hud.DrawCentered(screen, baseWidth/2, baseHeight/3+64, 2, colornames.White, "Press Enter to continue")
	}

	if g.debug {
		ebitenutil.DebugPrintAt(screen, g.debugText(), 10, baseHeight-120)
	}
}

func (g *Game) debugText() string {
	var b strings.Builder
	fmt.Fprintf(&b, "FPS: %.1f  TPS: %.1f  tick: %d\n", ebiten.ActualFPS(), ebiten.ActualTPS(), ecs.Tick(g.world))
	if ctrl, ok := ecs.Get(g.world, g.machine.Controller, component.ClawControllerComponent.Kind()); ok {
		fmt.Fprintf(&b, "controller: %s\n", ctrl.Mode)
	}
	if lift, ok := ecs.Get(g.world, g.machine.Lift, component.ClawLiftComponent.Kind()); ok {
		height := 0.0
		if t, ok := ecs.Get(g.world, g.machine.Lift, component.TransformComponent.Kind()); ok {
			height = t.Y
		}
		fmt.Fprintf(&b, "lift: %s  height: %.2f  dwell: %.2f\n", lift.State, height, lift.DwellRemaining)
	}
	fmt.Fprintf(&b, "glued: %v  joints: %d\n", ecs.Has(g.world, g.machine.Sensor, component.GlueComponent.Kind()), g.physics.JointCount())

	if e, ok := ecs.First(g.world, component.DiagnosticsComponent.Kind()); ok {
		if diag, ok := ecs.Get(g.world, e, component.DiagnosticsComponent.Kind()); ok && len(diag.InvariantViolations) > 0 {
			names := make([]string, 0, len(diag.InvariantViolations))
			for name := range diag.InvariantViolations {
				names = append(names, name)
			}
			slices.Sort(names)
			for _, name := range names {
				fmt.Fprintf(&b, "violations %s: %d\n", name, diag.InvariantViolations[name])
			}
		}
	}
	return b.String()
}

// Close releases the audio players and the spec watcher.
func (g *Game) Close() {
	if g.audio != nil {
		g.audio.Close()
	}
	if g.watcher != nil {
		if err := g.watcher.Close(); err != nil {
			log.Printf("watch: close: %v", err)
		}
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return baseWidth, baseHeight
}
