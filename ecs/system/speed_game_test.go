package system

import (
	"testing"

	"github.com/milk9111/clawmachine/common"
	"github.com/milk9111/clawmachine/ecs"
	"github.com/milk9111/clawmachine/ecs/component"
)

func spawnSpeedGame(t *testing.T, r *rig, allowRelease bool) ecs.Entity {
	t.Helper()
	return mustSpawn(t, r.w,
		func(e ecs.Entity) error {
			return ecs.Add(r.w, e, component.SpeedGameProgressComponent.Kind(), &component.SpeedGameProgress{
				Timer:              common.NewTimer(20),
				AllowManualRelease: allowRelease,
			})
		},
		func(e ecs.Entity) error {
			return ecs.Add(r.w, e, component.SessionTextComponent.Kind(), &component.SessionText{})
		},
	)
}

func TestSpeedGameOutcome(t *testing.T) {
	cases := []struct {
		name    string
		catchAt int // tick of the catch, -1 = never
		win     bool
	}{
		{"no_catch_loses", -1, false},
		{"early_catch_wins", 3, true},
		{"late_catch_wins", 199, true},
		{"catch_while_returning_wins", 210, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := newRig(t, 1)
			spawnSpeedGame(t, r, false)
			sys := NewSpeedGameSystem()
			releases := ecs.NewEventReader(component.ReleaseClawEvent)

			released := 0
			for tick := 0; tick < 220; tick++ {
				if tick == c.catchAt {
					ecs.Emit(r.w, component.ToyCaughtEvent, component.ToyCaught{Toy: entityRef(r.toys[0])})
				}
				sys.Update(r.w)
				released += len(releases.Read(r.w))
				ecs.EndTick(r.w)
			}
			if released != 1 {
				t.Fatalf("expected exactly one automatic release, got %d", released)
			}
			if _, ok := CurrentResult(r.w); ok {
				t.Fatalf("result before the claw returned")
			}

			ecs.Emit(r.w, component.ClawReturnedToBaseEvent, component.ClawReturnedToBase{})
			sys.Update(r.w)

			res, ok := CurrentResult(r.w)
			if !ok {
				t.Fatalf("expected a result")
			}
			if res.Win != c.win || res.Mode != component.GamemodeSpeedGame {
				t.Fatalf("expected win=%v, got %+v", c.win, res)
			}
			if res.Elapsed != 20 {
				t.Fatalf("expected elapsed clamped to 20, got %v", res.Elapsed)
			}
			if ecs.Count(r.w, component.SpeedGameProgressComponent.Kind()) != 0 {
				t.Fatalf("progress must be consumed with the result")
			}
		})
	}
}

func TestSpeedGameManualReleasePausesTimer(t *testing.T) {
	cases := []struct {
		name  string
		allow bool
		want  int
	}{
		{"disabled", false, 0},
		{"enabled", true, 1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := newRig(t, 0)
			e := spawnSpeedGame(t, r, c.allow)
			sys := NewSpeedGameSystem()
			releases := ecs.NewEventReader(component.ReleaseClawEvent)

			for i := 0; i < 10; i++ {
				sys.Update(r.w)
			}
			r.setInput(component.Input{ReleasePressed: true})
			sys.Update(r.w)
			r.setInput(component.Input{})
			if got := len(releases.Read(r.w)); got != c.want {
				t.Fatalf("expected %d releases, got %d", c.want, got)
			}

			p, _ := ecs.Get(r.w, e, component.SpeedGameProgressComponent.Kind())
			if p.Timer.Paused() != c.allow {
				t.Fatalf("expected paused=%v, got %v", c.allow, p.Timer.Paused())
			}
			before := p.Timer.Elapsed
			sys.Update(r.w)
			if c.allow && p.Timer.Elapsed != before {
				t.Fatalf("paused timer advanced")
			}
		})
	}
}

func TestSpeedGameDisplaysElapsed(t *testing.T) {
	r := newRig(t, 0)
	spawnSpeedGame(t, r, false)
	sys := NewSpeedGameSystem()
	for i := 0; i < 15; i++ {
		sys.Update(r.w)
	}
	if got := SessionDisplay(r.w); got != "1.50" {
		t.Fatalf("expected 1.50, got %q", got)
	}
}
