package system

import (
	"github.com/milk9111/clawmachine/ecs"
	"github.com/milk9111/clawmachine/ecs/component"
)

const clawReleaseSystemName = "claw_release"

// ClawReleaseSystem drops the claw on ReleaseClaw. Releases arriving while
// the controller is not in manual mode are ignored.
type ClawReleaseSystem struct {
	release *ecs.EventReader[component.ReleaseClaw]
}

func NewClawReleaseSystem() *ClawReleaseSystem {
	return &ClawReleaseSystem{release: ecs.NewEventReader(component.ReleaseClawEvent)}
}

func (s *ClawReleaseSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	if len(s.release.Read(w)) == 0 {
		return
	}

	_, ctrl, ok := clawController(w, clawReleaseSystemName)
	if !ok {
		return
	}
	_, lift, ok := clawLift(w, clawReleaseSystemName)
	if !ok {
		return
	}
	if ctrl.Mode != component.ClawManual {
		return
	}

	ctrl.Mode = component.ClawLocked
	lift.State = component.LiftDescending
	lift.DwellRemaining = 0

	StopChannel(w, component.ChannelBackground)
	RequestCue(w, component.AudioCue{Channel: component.ChannelEffects, Pool: component.PoolDrop})
}
