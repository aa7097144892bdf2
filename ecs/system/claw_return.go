package system

import (
	"github.com/milk9111/clawmachine/common"
	"github.com/milk9111/clawmachine/ecs"
	"github.com/milk9111/clawmachine/ecs/component"
)

const clawReturnSystemName = "claw_return"

// stepReturn moves pos toward base along the origin-to-base line at a rate
// that covers the whole line in stepSeconds. done is reported once the
// remaining distance is within one tick's step; pos is then base.
func stepReturn(posX, posY, originX, originY, baseX, baseY, stepSeconds, dt float64) (x, y float64, done bool) {
	if stepSeconds <= 0 {
		return baseX, baseY, true
	}
	stepX := (baseX - originX) / stepSeconds * dt
	stepY := (baseY - originY) / stepSeconds * dt

	if common.MaxAbs(baseX-posX, baseY-posY) > common.MaxAbs(stepX, stepY) {
		return posX + stepX, posY + stepY, false
	}
	return baseX, baseY, true
}

// ClawReturnSystem drives a returning controller back to its base and locks
// it on arrival.
type ClawReturnSystem struct{}

func NewClawReturnSystem() *ClawReturnSystem {
	return &ClawReturnSystem{}
}

func (s *ClawReturnSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	e, ctrl, ok := clawController(w, clawReturnSystemName)
	if !ok || ctrl.Mode != component.ClawReturningToBase {
		return
	}
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		recordViolation(w, clawReturnSystemName, "claw controller has no transform")
		return
	}

	x, y, done := stepReturn(t.X, t.Y, ctrl.OriginX, ctrl.OriginY, ctrl.BaseX, ctrl.BaseY, ctrl.Step, deltaTime(w))
	t.X, t.Y = x, y
	if !done {
		return
	}
	ctrl.Mode = component.ClawLocked
	ecs.Emit(w, component.ClawReturnedToBaseEvent, component.ClawReturnedToBase{})
}
