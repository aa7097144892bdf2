package system

import (
	"github.com/milk9111/clawmachine/ecs"
	"github.com/milk9111/clawmachine/ecs/component"
)

const clawLiftSystemName = "claw_lift"

// liftTick is everything one lift transition depends on.
type liftTick struct {
	Height     float64
	Dt         float64
	Collisions []component.CollisionStarted

	Sensor  uint64
	Stopper uint64
	// ToyOf resolves a toy sensor to its toy.
	ToyOf func(sensor uint64) (uint64, bool)
}

// liftOutcome is what a lift transition asks the rest of the machine to do.
type liftOutcome struct {
	Height   float64
	Caught   []uint64
	Ascended bool
}

// stepLift advances the lift by one tick.
func stepLift(lift component.ClawLift, in liftTick) (component.ClawLift, liftOutcome) {
	out := liftOutcome{Height: in.Height}

	switch lift.State {
	case component.LiftDescending:
		out.Height -= lift.Speed * in.Dt

		stopped := false
		for _, c := range in.Collisions {
			if toy, ok := caughtToy(c, in); ok {
				out.Caught = append(out.Caught, toy)
			}
			if !stopped && c.Involves(in.Stopper) {
				stopped = true
				lift.State = component.LiftDwelling
				lift.DwellRemaining = lift.DwellSeconds
			}
		}

	case component.LiftDwelling:
		lift.DwellRemaining -= in.Dt
		if lift.DwellRemaining <= 0 {
			lift.DwellRemaining = 0
			lift.State = component.LiftAscending
		}

	case component.LiftAscending:
		out.Height += lift.Speed * in.Dt
		if out.Height >= lift.StartHeight {
			out.Height = lift.StartHeight
			out.Ascended = true
			lift.State = component.LiftOff
		}
	}

	return lift, out
}

func caughtToy(c component.CollisionStarted, in liftTick) (uint64, bool) {
	if !c.Involves(in.Sensor) || in.ToyOf == nil {
		return 0, false
	}
	return in.ToyOf(c.Other(in.Sensor))
}

// ClawLiftSystem sequences descent, dwell and ascent of the claw. Collision
// events are drained every tick so a descent never sees stale contacts.
type ClawLiftSystem struct {
	collisions *ecs.EventReader[component.CollisionStarted]
}

func NewClawLiftSystem() *ClawLiftSystem {
	return &ClawLiftSystem{collisions: ecs.NewEventReader(component.CollisionStartedEvent)}
}

func (s *ClawLiftSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	collisions := s.collisions.Read(w)

	liftEnt, lift, ok := clawLift(w, clawLiftSystemName)
	if !ok {
		return
	}
	t, ok := ecs.Get(w, liftEnt, component.TransformComponent.Kind())
	if !ok {
		recordViolation(w, clawLiftSystemName, "claw lift has no transform")
		return
	}
	if lift.State == component.LiftOff {
		return
	}

	sensor, _ := ecs.First(w, component.ClawSensorComponent.Kind())
	stopper, _ := ecs.First(w, component.ClawStopperComponent.Kind())

	next, out := stepLift(*lift, liftTick{
		Height:     t.Y,
		Dt:         deltaTime(w),
		Collisions: collisions,
		Sensor:     entityRef(sensor),
		Stopper:    entityRef(stopper),
		ToyOf: func(ref uint64) (uint64, bool) {
			ts, ok := ecs.Get(w, entityOf(ref), component.ToySensorComponent.Kind())
			if !ok || !ecs.IsAlive(w, entityOf(ts.Toy)) {
				return 0, false
			}
			return ts.Toy, true
		},
	})

	// Finishing the ascent hands the claw to the controller. Without one the
	// step is not committed and the lift tries again next tick.
	var ctrl *component.ClawController
	var ct *component.Transform
	if out.Ascended {
		ctrlEnt, c, ok := clawController(w, clawLiftSystemName)
		if !ok {
			return
		}
		ct, ok = ecs.Get(w, ctrlEnt, component.TransformComponent.Kind())
		if !ok {
			recordViolation(w, clawLiftSystemName, "claw controller has no transform")
			return
		}
		ctrl = c
	}

	*lift = next
	t.Y = out.Height

	for _, toy := range out.Caught {
		if !ecs.Has(w, sensor, component.GlueComponent.Kind()) {
			if err := Attach(w, sensor, entityOf(toy)); err != nil {
				recordViolation(w, clawLiftSystemName, err.Error())
			}
		}
		ecs.Emit(w, component.ToyCaughtEvent, component.ToyCaught{Toy: toy})
	}

	if out.Ascended {
		Detach(w, sensor)
		ctrl.Mode = component.ClawReturningToBase
		ctrl.OriginX = ct.X
		ctrl.OriginY = ct.Y
	}
}
