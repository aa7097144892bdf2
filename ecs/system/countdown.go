package system

import (
	"github.com/milk9111/clawmachine/ecs"
	"github.com/milk9111/clawmachine/ecs/component"
)

const countdownSystemName = "countdown"

// CountdownSystem runs the pre-game countdown and arms the claw when it ends.
type CountdownSystem struct{}

func NewCountdownSystem() *CountdownSystem {
	return &CountdownSystem{}
}

func (s *CountdownSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := deltaTime(w)

	var finished []ecs.Entity
	ecs.ForEach(w, component.CountdownComponent.Kind(), func(e ecs.Entity, c *component.Countdown) {
		c.Timer.Tick(dt)
		if text, ok := ecs.Get(w, e, component.SessionTextComponent.Kind()); ok {
			text.Value = countdownText(c.Timer.Duration, c.Timer.Elapsed)
		}
		if c.Timer.Finished() {
			finished = append(finished, e)
		}
	})

	for _, e := range finished {
		// The countdown waits for the controller before it is consumed.
		_, ctrl, ok := clawController(w, countdownSystemName)
		if !ok {
			return
		}
		ctrl.Mode = component.ClawManual
		ecs.DestroyEntity(w, e)

		beginMode(w)
		ecs.Emit(w, component.CountdownFinishedEvent, component.CountdownFinished{})
	}
}
