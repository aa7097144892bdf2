package system

import (
	"github.com/milk9111/clawmachine/common"
	"github.com/milk9111/clawmachine/ecs"
	"github.com/milk9111/clawmachine/ecs/component"
)

// ManualDriveSystem moves controllers holding ManualDrive from the
// horizontal input axis.
type ManualDriveSystem struct{}

func NewManualDriveSystem() *ManualDriveSystem {
	return &ManualDriveSystem{}
}

func (s *ManualDriveSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := deltaTime(w)
	in := currentInput(w)
	if dt <= 0 || in.MoveX == 0 {
		return
	}

	ecs.ForEach3(w, component.ManualDriveComponent.Kind(), component.ClawControllerComponent.Kind(), component.TransformComponent.Kind(),
		func(_ ecs.Entity, _ *component.ManualDrive, ctrl *component.ClawController, t *component.Transform) {
			if ctrl.Mode != component.ClawManual {
				return
			}
			t.X += common.Clamp(in.MoveX, -1, 1) * ctrl.MoveSpeed * dt
			if ctrl.MaxX > ctrl.MinX {
				t.X = common.Clamp(t.X, ctrl.MinX, ctrl.MaxX)
			}
		})
}
