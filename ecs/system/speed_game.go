package system

import (
	"fmt"

	"github.com/milk9111/clawmachine/ecs"
	"github.com/milk9111/clawmachine/ecs/component"
)

// SpeedGameSystem runs a Speed Game: the timer counts up, the claw drops on
// its own when time runs out, and the session ends once the claw is home.
type SpeedGameSystem struct {
	started  *ecs.EventReader[component.CountdownFinished]
	caught   *ecs.EventReader[component.ToyCaught]
	returned *ecs.EventReader[component.ClawReturnedToBase]
}

func NewSpeedGameSystem() *SpeedGameSystem {
	return &SpeedGameSystem{
		started:  ecs.NewEventReader(component.CountdownFinishedEvent),
		caught:   ecs.NewEventReader(component.ToyCaughtEvent),
		returned: ecs.NewEventReader(component.ClawReturnedToBaseEvent),
	}
}

func (s *SpeedGameSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	e, ok := ecs.First(w, component.SpeedGameProgressComponent.Kind())
	if !ok {
		s.started.Clear(w)
		s.caught.Clear(w)
		s.returned.Clear(w)
		return
	}
	progress, ok := ecs.Get(w, e, component.SpeedGameProgressComponent.Kind())
	if !ok {
		return
	}
	if len(s.started.Read(w)) > 0 {
		RequestCue(w, component.AudioCue{Channel: component.ChannelBackground, Pool: component.PoolGameplay, Loop: true})
	}

	running := !progress.Timer.Paused() && !progress.Timer.Finished()
	if running && progress.AllowManualRelease && currentInput(w).ReleasePressed {
		progress.Timer.Pause()
		ecs.Emit(w, component.ReleaseClawEvent, component.ReleaseClaw{})
	} else if running && progress.Timer.Tick(deltaTime(w)).JustFinished() {
		progress.Timer.Pause()
		ecs.Emit(w, component.ReleaseClawEvent, component.ReleaseClaw{})
	}

	if text, ok := ecs.Get(w, e, component.SessionTextComponent.Kind()); ok {
		text.Value = fmt.Sprintf("%.2f", progress.Timer.Elapsed)
	}

	if len(s.caught.Read(w)) > 0 {
		if !progress.ToyCaught {
			RequestCue(w, component.AudioCue{Channel: component.ChannelEffects, Pool: component.PoolCatch})
		}
		progress.ToyCaught = true
	}

	if len(s.returned.Read(w)) > 0 {
		reportSpeedGame(w, e)
	}
}
