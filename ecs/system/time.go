package system

import (
	"github.com/milk9111/clawmachine/ecs"
	"github.com/milk9111/clawmachine/ecs/component"
)

// DefaultStep is the fixed simulation tick in seconds.
const DefaultStep = 1.0 / 60.0

type TimeSystem struct {
	step float64
}

func NewTimeSystem(step float64) *TimeSystem {
	if step <= 0 {
		step = DefaultStep
	}
	return &TimeSystem{step: step}
}

func (s *TimeSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	_, t := singleton(w, component.TimeComponent.Kind())
	t.Delta = s.step
	t.Elapsed += s.step
}
