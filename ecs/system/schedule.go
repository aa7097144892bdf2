package system

import "github.com/milk9111/clawmachine/ecs"

// NewClawMachineScheduler wires the claw machine systems in tick order.
// input samples the player's controls and may be nil; the physics system
// also backs the glue joints.
func NewClawMachineScheduler(input ecs.System, physics *PhysicsSystem, player CuePlayer, step float64) *ecs.Scheduler {
	var joints Joints
	if physics != nil {
		joints = physics
	}
	var physicsSystem ecs.System
	if physics != nil {
		physicsSystem = physics
	}

	return ecs.NewScheduler(
		input,
		NewTimeSystem(step),
		NewCountdownSystem(),
		NewSpeedGameSystem(),
		NewNumberGameSystem(),
		NewClawReleaseSystem(),
		NewClawCapabilitySystem(),
		NewManualDriveSystem(),
		NewLiftSyncSystem(),
		physicsSystem,
		NewGlassHitSystem(),
		NewClawLiftSystem(),
		NewClawReturnSystem(),
		NewGlueSystem(joints),
		NewResultsSystem(),
		NewAudioSystem(player),
	)
}
