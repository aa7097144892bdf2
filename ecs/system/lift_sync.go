package system

import (
	"github.com/milk9111/clawmachine/ecs"
	"github.com/milk9111/clawmachine/ecs/component"
)

const liftSyncSystemName = "lift_sync"

// LiftSyncSystem keeps the lift under the controller on the horizontal axis.
type LiftSyncSystem struct{}

func NewLiftSyncSystem() *LiftSyncSystem {
	return &LiftSyncSystem{}
}

func (s *LiftSyncSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ctrlEnt, _, ok := clawController(w, liftSyncSystemName)
	if !ok {
		return
	}
	liftEnt, _, ok := clawLift(w, liftSyncSystemName)
	if !ok {
		return
	}
	ct, ok := ecs.Get(w, ctrlEnt, component.TransformComponent.Kind())
	if !ok {
		return
	}
	lt, ok := ecs.Get(w, liftEnt, component.TransformComponent.Kind())
	if !ok {
		return
	}
	lt.X = ct.X
}
