package system

import (
	"log"

	"github.com/milk9111/clawmachine/ecs"
	"github.com/milk9111/clawmachine/ecs/component"
)

// singleton returns the one entity holding kind, creating it with a zero
// value when none exists.
func singleton[T any](w *ecs.World, kind component.ComponentKind[T]) (ecs.Entity, *T) {
	if e, ok := ecs.First(w, kind); ok {
		if v, ok := ecs.Get(w, e, kind); ok {
			return e, v
		}
	}
	e := ecs.CreateEntity(w)
	v := new(T)
	if err := ecs.Add(w, e, kind, v); err != nil {
		panic("system: add singleton: " + err.Error())
	}
	return e, v
}

func deltaTime(w *ecs.World) float64 {
	e, ok := ecs.First(w, component.TimeComponent.Kind())
	if !ok {
		return 0
	}
	t, ok := ecs.Get(w, e, component.TimeComponent.Kind())
	if !ok {
		return 0
	}
	return t.Delta
}

func currentInput(w *ecs.World) component.Input {
	e, ok := ecs.First(w, component.InputComponent.Kind())
	if !ok {
		return component.Input{}
	}
	in, ok := ecs.Get(w, e, component.InputComponent.Kind())
	if !ok {
		return component.Input{}
	}
	return *in
}

// recordViolation counts an absorbed invariant violation for a system. The
// first occurrence and every 600th after it are logged.
func recordViolation(w *ecs.World, system, detail string) {
	_, diag := singleton(w, component.DiagnosticsComponent.Kind())
	if diag.InvariantViolations == nil {
		diag.InvariantViolations = make(map[string]int)
	}
	diag.InvariantViolations[system]++
	n := diag.InvariantViolations[system]
	if n == 1 || n%600 == 0 {
		log.Printf("%s: invariant violation (%d): %s", system, n, detail)
	}
}

// clawController returns the single claw controller. Zero or several
// controllers are recorded as a violation against system.
func clawController(w *ecs.World, system string) (ecs.Entity, *component.ClawController, bool) {
	e, ctrl, count, ok := ecs.Single(w, component.ClawControllerComponent.Kind())
	if !ok {
		recordViolation(w, system, countDetail("claw controller", count))
		return 0, nil, false
	}
	return e, ctrl, true
}

func clawLift(w *ecs.World, system string) (ecs.Entity, *component.ClawLift, bool) {
	e, lift, count, ok := ecs.Single(w, component.ClawLiftComponent.Kind())
	if !ok {
		recordViolation(w, system, countDetail("claw lift", count))
		return 0, nil, false
	}
	return e, lift, true
}

func countDetail(what string, count int) string {
	if count == 0 {
		return "no " + what
	}
	return "more than one " + what
}

func entityRef(e ecs.Entity) uint64 {
	return e.Ref()
}

func entityOf(ref uint64) ecs.Entity {
	return ecs.EntityOf(ref)
}
