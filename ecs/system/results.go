package system

import (
	"fmt"
	"log"

	"github.com/milk9111/clawmachine/ecs"
	"github.com/milk9111/clawmachine/ecs/component"
)

// EvaluateSpeedGame derives the result of a finished Speed Game. A Speed
// Game is won iff a toy was caught.
func EvaluateSpeedGame(p component.SpeedGameProgress) component.GameResult {
	text := fmt.Sprintf("Time: %.2fs, no toy", p.Timer.Elapsed)
	caught := 0
	if p.ToyCaught {
		text = fmt.Sprintf("Time: %.2fs, toy caught!", p.Timer.Elapsed)
		caught = 1
	}
	return component.GameResult{
		Mode:        component.GamemodeSpeedGame,
		Win:         p.ToyCaught,
		DisplayText: text,
		Elapsed:     p.Timer.Elapsed,
		ToysCaught:  caught,
	}
}

// EvaluateNumberGame derives the result of a finished Number Game. A Number
// Game is won iff at least one toy was caught.
func EvaluateNumberGame(p component.NumberGameProgress) component.GameResult {
	noun := "toys"
	if p.ToysCaught == 1 {
		noun = "toy"
	}
	return component.GameResult{
		Mode:        component.GamemodeNumberGame,
		Win:         p.ToysCaught > 0,
		DisplayText: fmt.Sprintf("%d %s caught", p.ToysCaught, noun),
		Elapsed:     p.Timer.Elapsed,
		ToysCaught:  p.ToysCaught,
	}
}

// reportSpeedGame moves the progress of e into a result entity and destroys
// the session entity.
func reportSpeedGame(w *ecs.World, e ecs.Entity) {
	progress, ok := ecs.Get(w, e, component.SpeedGameProgressComponent.Kind())
	if !ok {
		return
	}
	result := EvaluateSpeedGame(*progress)
	ecs.DestroyEntity(w, e)
	spawnResult(w, result)
}

func reportNumberGame(w *ecs.World, e ecs.Entity) {
	progress, ok := ecs.Get(w, e, component.NumberGameProgressComponent.Kind())
	if !ok {
		return
	}
	result := EvaluateNumberGame(*progress)
	ecs.DestroyEntity(w, e)
	spawnResult(w, result)
}

func spawnResult(w *ecs.World, result component.GameResult) {
	ent := ecs.CreateEntity(w)
	if err := ecs.Add(w, ent, component.GameResultComponent.Kind(), &result); err != nil {
		panic("results: add game result: " + err.Error())
	}
}

// ResultsSystem announces new results with the win or defeat cue.
type ResultsSystem struct{}

func NewResultsSystem() *ResultsSystem {
	return &ResultsSystem{}
}

func (s *ResultsSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach(w, component.GameResultComponent.Kind(), func(_ ecs.Entity, res *component.GameResult) {
		if res.Announced {
			return
		}
		res.Announced = true

		pool := component.PoolDefeat
		if res.Win {
			pool = component.PoolWin
		}
		StopChannel(w, component.ChannelBackground)
		RequestCue(w, component.AudioCue{Channel: component.ChannelBackground, Pool: pool})
		log.Printf("game results: mode=%s win=%t time=%.2f toys=%d", res.Mode, res.Win, res.Elapsed, res.ToysCaught)
	})
}

// CurrentResult returns the result of the last finished session, if any.
func CurrentResult(w *ecs.World) (component.GameResult, bool) {
	e, ok := ecs.First(w, component.GameResultComponent.Kind())
	if !ok {
		return component.GameResult{}, false
	}
	res, ok := ecs.Get(w, e, component.GameResultComponent.Kind())
	if !ok {
		return component.GameResult{}, false
	}
	return *res, true
}
