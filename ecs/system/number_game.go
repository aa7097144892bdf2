package system

import (
	"fmt"

	"github.com/milk9111/clawmachine/ecs"
	"github.com/milk9111/clawmachine/ecs/component"
)

const numberGameSystemName = "number_game"

// NumberGameSystem runs a Number Game: catch as many toys as possible before
// the countdown timer expires. Every return to base re-arms the claw while
// time remains.
type NumberGameSystem struct {
	started  *ecs.EventReader[component.CountdownFinished]
	caught   *ecs.EventReader[component.ToyCaught]
	returned *ecs.EventReader[component.ClawReturnedToBase]
}

func NewNumberGameSystem() *NumberGameSystem {
	return &NumberGameSystem{
		started:  ecs.NewEventReader(component.CountdownFinishedEvent),
		caught:   ecs.NewEventReader(component.ToyCaughtEvent),
		returned: ecs.NewEventReader(component.ClawReturnedToBaseEvent),
	}
}

func (s *NumberGameSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	e, ok := ecs.First(w, component.NumberGameProgressComponent.Kind())
	if !ok {
		s.started.Clear(w)
		s.caught.Clear(w)
		s.returned.Clear(w)
		return
	}
	progress, ok := ecs.Get(w, e, component.NumberGameProgressComponent.Kind())
	if !ok {
		return
	}
	if len(s.started.Read(w)) > 0 {
		RequestCue(w, component.AudioCue{Channel: component.ChannelBackground, Pool: component.PoolGameplay, Loop: true})
	}

	if progress.AllowManualRelease && !progress.Timer.Finished() && currentInput(w).ReleasePressed {
		ecs.Emit(w, component.ReleaseClawEvent, component.ReleaseClaw{})
	}
	if progress.Timer.Tick(deltaTime(w)).JustFinished() {
		ecs.Emit(w, component.ReleaseClawEvent, component.ReleaseClaw{})
	}

	if !progress.HeartbeatPlayed && progress.HeartbeatAt > 0 && progress.Timer.Remaining() <= progress.HeartbeatAt {
		progress.HeartbeatPlayed = true
		RequestCue(w, component.AudioCue{Channel: component.ChannelEffects, Pool: component.PoolHeartbeat})
	}

	if text, ok := ecs.Get(w, e, component.SessionTextComponent.Kind()); ok {
		text.Value = fmt.Sprintf("%.2f", progress.Timer.Remaining())
	}

	for range s.caught.Read(w) {
		progress.ToysCaught++
		RequestCue(w, component.AudioCue{Channel: component.ChannelEffects, Pool: component.PoolCatch})
	}

	if len(s.returned.Read(w)) == 0 {
		return
	}
	if numberGameOver(progress) {
		reportNumberGame(w, e)
		return
	}
	_, ctrl, ok := clawController(w, numberGameSystemName)
	if !ok {
		return
	}
	ctrl.Mode = component.ClawManual
	RequestCue(w, component.AudioCue{Channel: component.ChannelBackground, Pool: component.PoolGameplay, Loop: true})
}

// numberGameOver decides what a return to base means: results once the timer
// has expired, another drop otherwise.
func numberGameOver(p *component.NumberGameProgress) bool {
	return p.Timer.Finished()
}
