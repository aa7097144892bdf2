package system

import (
	"math"
	"testing"

	"github.com/milk9111/clawmachine/ecs"
	"github.com/milk9111/clawmachine/ecs/component"
)

func TestStepLift(t *testing.T) {
	const (
		sensor      = 10
		stopper     = 11
		floor       = 12
		toySensor   = 20
		toy         = 21
		startHeight = 3.65
	)
	toyOf := func(ref uint64) (uint64, bool) {
		if ref == toySensor {
			return toy, true
		}
		return 0, false
	}
	base := component.ClawLift{StartHeight: startHeight, Speed: 1, DwellSeconds: 1}
	with := func(state component.LiftState, dwell float64) component.ClawLift {
		l := base
		l.State = state
		l.DwellRemaining = dwell
		return l
	}

	cases := []struct {
		name       string
		lift       component.ClawLift
		height     float64
		dt         float64
		collisions []component.CollisionStarted
		wantState  component.LiftState
		wantDwell  float64
		wantHeight float64
		wantCaught int
		wantUp     bool
	}{
		{
			name: "off_does_nothing", lift: with(component.LiftOff, 0), height: 3.65, dt: 0.1,
			collisions: []component.CollisionStarted{{A: stopper, B: floor}},
			wantState:  component.LiftOff, wantHeight: 3.65,
		},
		{
			name: "descending_moves_down", lift: with(component.LiftDescending, 0), height: 3.65, dt: 0.1,
			wantState: component.LiftDescending, wantHeight: 3.55,
		},
		{
			name: "catch_keeps_descending", lift: with(component.LiftDescending, 0), height: 2, dt: 0.1,
			collisions: []component.CollisionStarted{{A: toySensor, B: sensor}},
			wantState:  component.LiftDescending, wantHeight: 1.9, wantCaught: 1,
		},
		{
			name: "stopper_starts_dwell", lift: with(component.LiftDescending, 0), height: 2, dt: 0.1,
			collisions: []component.CollisionStarted{{A: floor, B: stopper}},
			wantState:  component.LiftDwelling, wantDwell: 1, wantHeight: 1.9,
		},
		{
			name: "catch_then_stopper_same_batch", lift: with(component.LiftDescending, 0), height: 2, dt: 0.1,
			collisions: []component.CollisionStarted{{A: sensor, B: toySensor}, {A: stopper, B: floor}},
			wantState:  component.LiftDwelling, wantDwell: 1, wantHeight: 1.9, wantCaught: 1,
		},
		{
			name: "stopper_then_catch_same_batch", lift: with(component.LiftDescending, 0), height: 2, dt: 0.1,
			collisions: []component.CollisionStarted{{A: stopper, B: floor}, {A: stopper, B: toySensor}, {A: sensor, B: toySensor}},
			wantState:  component.LiftDwelling, wantDwell: 1, wantHeight: 1.9, wantCaught: 1,
		},
		{
			name: "unrelated_collisions_ignored", lift: with(component.LiftDescending, 0), height: 2, dt: 0.1,
			collisions: []component.CollisionStarted{{A: floor, B: toySensor}, {A: 99, B: 98}},
			wantState:  component.LiftDescending, wantHeight: 1.9,
		},
		{
			name: "dwell_counts_down", lift: with(component.LiftDwelling, 1), height: 1, dt: 0.25,
			wantState: component.LiftDwelling, wantDwell: 0.75, wantHeight: 1,
		},
		{
			name: "dwell_expires", lift: with(component.LiftDwelling, 0.05), height: 1, dt: 0.1,
			wantState: component.LiftAscending, wantHeight: 1,
		},
		{
			name: "ascending_moves_up", lift: with(component.LiftAscending, 0), height: 1, dt: 0.1,
			wantState: component.LiftAscending, wantHeight: 1.1,
		},
		{
			name: "ascending_clamps_overshoot", lift: with(component.LiftAscending, 0), height: 3.6, dt: 0.5,
			wantState: component.LiftOff, wantHeight: startHeight, wantUp: true,
		},
		{
			name: "ascending_reaches_top", lift: with(component.LiftAscending, 0), height: 3.58, dt: 0.1,
			wantState: component.LiftOff, wantHeight: startHeight, wantUp: true,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			next, out := stepLift(c.lift, liftTick{
				Height:     c.height,
				Dt:         c.dt,
				Collisions: c.collisions,
				Sensor:     sensor,
				Stopper:    stopper,
				ToyOf:      toyOf,
			})
			if next.State != c.wantState {
				t.Fatalf("expected state %s, got %s", c.wantState, next.State)
			}
			if math.Abs(next.DwellRemaining-c.wantDwell) > 1e-9 {
				t.Fatalf("expected dwell %v, got %v", c.wantDwell, next.DwellRemaining)
			}
			if math.Abs(out.Height-c.wantHeight) > 1e-9 {
				t.Fatalf("expected height %v, got %v", c.wantHeight, out.Height)
			}
			if out.Height > startHeight {
				t.Fatalf("height %v above start height", out.Height)
			}
			if len(out.Caught) != c.wantCaught {
				t.Fatalf("expected %d catches, got %d", c.wantCaught, len(out.Caught))
			}
			if out.Ascended != c.wantUp {
				t.Fatalf("expected ascended=%v, got %v", c.wantUp, out.Ascended)
			}
		})
	}
}

func TestAscendNeverExceedsStartHeight(t *testing.T) {
	lift := component.ClawLift{State: component.LiftAscending, StartHeight: 3.65, Speed: 1.7}
	height := 0.3
	for i := 0; i < 1000 && lift.State == component.LiftAscending; i++ {
		var out liftOutcome
		lift, out = stepLift(lift, liftTick{Height: height, Dt: 0.37})
		height = out.Height
		if height > lift.StartHeight {
			t.Fatalf("tick %d: height %v above %v", i, height, lift.StartHeight)
		}
	}
	if lift.State != component.LiftOff || height != lift.StartHeight {
		t.Fatalf("expected lift parked at start height, got %s at %v", lift.State, height)
	}
}

func TestClawLiftSystemStopperWinsOverCatch(t *testing.T) {
	r := newRig(t, 1)
	r.liftState(t).State = component.LiftDescending
	caught := ecs.NewEventReader(component.ToyCaughtEvent)

	r.collide(r.sensor, r.toySensors[0])
	r.collide(r.stopper, r.floor)
	NewClawLiftSystem().Update(r.w)

	lift := r.liftState(t)
	if lift.State != component.LiftDwelling || lift.DwellRemaining != 1 {
		t.Fatalf("expected Dwelling(1), got %s(%v)", lift.State, lift.DwellRemaining)
	}
	glue, ok := ecs.Get(r.w, r.sensor, component.GlueComponent.Kind())
	if !ok || glue.Target != entityRef(r.toys[0]) {
		t.Fatalf("expected claw sensor glued to toy, got %+v ok=%v", glue, ok)
	}
	events := caught.Read(r.w)
	if len(events) != 1 || events[0].Toy != entityRef(r.toys[0]) {
		t.Fatalf("expected one ToyCaught for the toy, got %+v", events)
	}
}

func TestClawLiftSystemWaitsForControllerAtTop(t *testing.T) {
	r := newRig(t, 1)
	r.liftState(t).State = component.LiftAscending
	r.transform(t, r.lift).Y = 3.6
	r.transform(t, r.controller).X = -0.5
	if err := Attach(r.w, r.sensor, r.toys[0]); err != nil {
		t.Fatalf("attach: %v", err)
	}
	saved := *r.ctrl(t)
	ecs.Remove(r.w, r.controller, component.ClawControllerComponent.Kind())

	lift := NewClawLiftSystem()
	lift.Update(r.w)
	ecs.EndTick(r.w)

	if got := r.liftState(t).State; got != component.LiftAscending {
		t.Fatalf("expected the lift to keep ascending without a controller, got %s", got)
	}
	if y := r.transform(t, r.lift).Y; y != 3.6 {
		t.Fatalf("expected the lift to hold at 3.6, got %v", y)
	}
	if !ecs.Has(r.w, r.sensor, component.GlueComponent.Kind()) {
		t.Fatalf("glue released before the controller took over")
	}
	if n := violations(r.w, clawLiftSystemName); n != 1 {
		t.Fatalf("expected 1 violation, got %d", n)
	}

	if err := ecs.Add(r.w, r.controller, component.ClawControllerComponent.Kind(), &saved); err != nil {
		t.Fatalf("restore controller: %v", err)
	}
	back := NewClawReturnSystem()
	returned := ecs.NewEventReader(component.ClawReturnedToBaseEvent)
	events := 0
	for tick := 0; tick < 200 && events == 0; tick++ {
		lift.Update(r.w)
		back.Update(r.w)
		events += len(returned.Read(r.w))
		ecs.EndTick(r.w)
	}
	if events != 1 {
		t.Fatalf("claw never returned to base")
	}
	if r.liftState(t).State != component.LiftOff || r.ctrl(t).Mode != component.ClawLocked {
		t.Fatalf("expected Off/Locked, got %s/%s", r.liftState(t).State, r.ctrl(t).Mode)
	}
	if ecs.Has(r.w, r.sensor, component.GlueComponent.Kind()) {
		t.Fatalf("expected glue released at the top")
	}
}

func TestClawLiftSystemKeepsFirstGlueTarget(t *testing.T) {
	r := newRig(t, 2)
	r.liftState(t).State = component.LiftDescending
	caught := ecs.NewEventReader(component.ToyCaughtEvent)

	r.collide(r.sensor, r.toySensors[0])
	r.collide(r.toySensors[1], r.sensor)
	NewClawLiftSystem().Update(r.w)

	glue, _ := ecs.Get(r.w, r.sensor, component.GlueComponent.Kind())
	if glue == nil || glue.Target != entityRef(r.toys[0]) {
		t.Fatalf("expected glue to stay on the first toy, got %+v", glue)
	}
	if n := len(caught.Read(r.w)); n != 2 {
		t.Fatalf("expected both catches reported, got %d", n)
	}
}

func TestClawLiftSystemEventsAreNotReplayed(t *testing.T) {
	r := newRig(t, 0)
	sys := NewClawLiftSystem()

	// A stopper contact while the lift is parked must not stop a later descent.
	r.collide(r.stopper, r.floor)
	sys.Update(r.w)
	ecs.EndTick(r.w)

	r.liftState(t).State = component.LiftDescending
	sys.Update(r.w)
	if got := r.liftState(t).State; got != component.LiftDescending {
		t.Fatalf("expected Descending, got %s", got)
	}
}

func TestClawLiftSystemAscendedStartsReturn(t *testing.T) {
	r := newRig(t, 1)
	lift := r.liftState(t)
	lift.State = component.LiftAscending
	r.transform(t, r.lift).Y = 3.6
	r.transform(t, r.controller).X = -0.4
	if err := Attach(r.w, r.sensor, r.toys[0]); err != nil {
		t.Fatalf("attach: %v", err)
	}

	NewClawLiftSystem().Update(r.w)

	if got := r.liftState(t).State; got != component.LiftOff {
		t.Fatalf("expected Off, got %s", got)
	}
	if y := r.transform(t, r.lift).Y; y != 3.65 {
		t.Fatalf("expected lift clamped to 3.65, got %v", y)
	}
	if ecs.Has(r.w, r.sensor, component.GlueComponent.Kind()) {
		t.Fatalf("expected glue released at the top")
	}
	ctrl := r.ctrl(t)
	if ctrl.Mode != component.ClawReturningToBase || ctrl.OriginX != -0.4 || ctrl.OriginY != 3.65 {
		t.Fatalf("expected ReturningToBase from (-0.4, 3.65), got %s from (%v, %v)", ctrl.Mode, ctrl.OriginX, ctrl.OriginY)
	}
}

func TestClawLiftSystemMissingLift(t *testing.T) {
	r := newRig(t, 0)
	ecs.DestroyEntity(r.w, r.lift)

	NewClawLiftSystem().Update(r.w)
	if n := violations(r.w, clawLiftSystemName); n != 1 {
		t.Fatalf("expected 1 violation, got %d", n)
	}
}
