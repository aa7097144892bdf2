package system

import (
	"testing"

	"github.com/milk9111/clawmachine/ecs"
	"github.com/milk9111/clawmachine/ecs/component"
)

const testStep = 0.1

// rig is a claw machine without physics: controller, lift, claw sensor,
// stopper and toys with sensors.
type rig struct {
	w          *ecs.World
	controller ecs.Entity
	lift       ecs.Entity
	sensor     ecs.Entity
	stopper    ecs.Entity
	floor      ecs.Entity
	toys       []ecs.Entity
	toySensors []ecs.Entity
}

func newRig(t *testing.T, toys int) *rig {
	t.Helper()
	w := ecs.NewWorld()
	_, tm := singleton(w, component.TimeComponent.Kind())
	tm.Delta = testStep
	singleton(w, component.InputComponent.Kind())

	r := &rig{w: w}
	r.controller = mustSpawn(t, w,
		func(e ecs.Entity) error {
			return ecs.Add(w, e, component.ClawControllerComponent.Kind(), &component.ClawController{
				BaseX: 0.54, BaseY: 3.65, Step: 1.2, MoveSpeed: 10, MinX: -0.8, MaxX: 0.8,
			})
		},
		func(e ecs.Entity) error {
			return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: 0.54, Y: 3.65})
		},
	)
	r.lift = mustSpawn(t, w,
		func(e ecs.Entity) error {
			return ecs.Add(w, e, component.ClawLiftComponent.Kind(), &component.ClawLift{
				StartHeight: 3.65, Speed: 1, DwellSeconds: 1,
			})
		},
		func(e ecs.Entity) error {
			return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: 0.54, Y: 3.65})
		},
	)
	r.sensor = mustSpawn(t, w, func(e ecs.Entity) error {
		return ecs.Add(w, e, component.ClawSensorComponent.Kind(), &component.ClawSensor{})
	})
	r.stopper = mustSpawn(t, w, func(e ecs.Entity) error {
		return ecs.Add(w, e, component.ClawStopperComponent.Kind(), &component.ClawStopper{})
	})
	r.floor = mustSpawn(t, w, func(e ecs.Entity) error {
		return ecs.Add(w, e, component.GlassComponent.Kind(), &component.Glass{Bottom: true})
	})
	for i := 0; i < toys; i++ {
		toy := mustSpawn(t, w, func(e ecs.Entity) error {
			return ecs.Add(w, e, component.ToyComponent.Kind(), &component.Toy{Name: "duck"})
		})
		ts := mustSpawn(t, w, func(e ecs.Entity) error {
			return ecs.Add(w, e, component.ToySensorComponent.Kind(), &component.ToySensor{Toy: entityRef(toy)})
		})
		r.toys = append(r.toys, toy)
		r.toySensors = append(r.toySensors, ts)
	}
	return r
}

func mustSpawn(t *testing.T, w *ecs.World, adds ...func(ecs.Entity) error) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	for _, add := range adds {
		if err := add(e); err != nil {
			t.Fatalf("spawn: %v", err)
		}
	}
	return e
}

func (r *rig) ctrl(t *testing.T) *component.ClawController {
	t.Helper()
	c, ok := ecs.Get(r.w, r.controller, component.ClawControllerComponent.Kind())
	if !ok {
		t.Fatalf("controller missing")
	}
	return c
}

func (r *rig) liftState(t *testing.T) *component.ClawLift {
	t.Helper()
	l, ok := ecs.Get(r.w, r.lift, component.ClawLiftComponent.Kind())
	if !ok {
		t.Fatalf("lift missing")
	}
	return l
}

func (r *rig) transform(t *testing.T, e ecs.Entity) *component.Transform {
	t.Helper()
	tr, ok := ecs.Get(r.w, e, component.TransformComponent.Kind())
	if !ok {
		t.Fatalf("transform missing on %v", e)
	}
	return tr
}

func (r *rig) collide(a, b ecs.Entity) {
	ecs.Emit(r.w, component.CollisionStartedEvent, component.CollisionStarted{A: entityRef(a), B: entityRef(b)})
}

func (r *rig) setInput(in component.Input) {
	_, cur := singleton(r.w, component.InputComponent.Kind())
	*cur = in
}

// fakeJoints records joints without a physics space.
type fakeJoints struct {
	next    uint64
	live    map[uint64][2]ecs.Entity
	created int
	refuse  bool
}

func newFakeJoints() *fakeJoints {
	return &fakeJoints{live: make(map[uint64][2]ecs.Entity)}
}

func (f *fakeJoints) AddFixedJoint(_ *ecs.World, holder, target ecs.Entity) (uint64, bool) {
	if f.refuse {
		return 0, false
	}
	f.next++
	f.created++
	f.live[f.next] = [2]ecs.Entity{holder, target}
	return f.next, true
}

func (f *fakeJoints) RemoveJoint(id uint64) bool {
	if _, ok := f.live[id]; !ok {
		return false
	}
	delete(f.live, id)
	return true
}

func (f *fakeJoints) JointCount() int {
	return len(f.live)
}

func (f *fakeJoints) between(holder, target ecs.Entity) int {
	n := 0
	for _, pair := range f.live {
		if pair[0] == holder && pair[1] == target {
			n++
		}
	}
	return n
}

func countCues(w *ecs.World, pool string) int {
	n := 0
	ecs.ForEach(w, component.AudioCueComponent.Kind(), func(_ ecs.Entity, cue *component.AudioCue) {
		if cue.Pool == pool {
			n++
		}
	})
	return n
}

// violations returns how many invariant violations a system has absorbed.
func violations(w *ecs.World, system string) int {
	e, ok := ecs.First(w, component.DiagnosticsComponent.Kind())
	if !ok {
		return 0
	}
	diag, ok := ecs.Get(w, e, component.DiagnosticsComponent.Kind())
	if !ok {
		return 0
	}
	return diag.InvariantViolations[system]
}
