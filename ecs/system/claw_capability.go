package system

import (
	"github.com/milk9111/clawmachine/ecs"
	"github.com/milk9111/clawmachine/ecs/component"
)

const clawCapabilitySystemName = "claw_capability"

// ClawCapabilitySystem grants ManualDrive to the controller while it is in
// manual mode and revokes it otherwise.
type ClawCapabilitySystem struct{}

func NewClawCapabilitySystem() *ClawCapabilitySystem {
	return &ClawCapabilitySystem{}
}

func (s *ClawCapabilitySystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	e, ctrl, ok := clawController(w, clawCapabilitySystemName)
	if !ok {
		return
	}

	has := ecs.Has(w, e, component.ManualDriveComponent.Kind())
	switch {
	case ctrl.Mode == component.ClawManual && !has:
		if err := ecs.Add(w, e, component.ManualDriveComponent.Kind(), &component.ManualDrive{}); err != nil {
			panic("claw capability: add manual drive: " + err.Error())
		}
	case ctrl.Mode != component.ClawManual && has:
		ecs.Remove(w, e, component.ManualDriveComponent.Kind())
	}
}
