package system

import (
	"testing"

	"github.com/milk9111/clawmachine/common"
	"github.com/milk9111/clawmachine/ecs"
	"github.com/milk9111/clawmachine/ecs/component"
)

func spawnNumberGame(t *testing.T, r *rig, duration float64) ecs.Entity {
	t.Helper()
	return mustSpawn(t, r.w,
		func(e ecs.Entity) error {
			return ecs.Add(r.w, e, component.NumberGameProgressComponent.Kind(), &component.NumberGameProgress{
				Timer:              common.NewTimer(duration),
				HeartbeatAt:        5,
				AllowManualRelease: true,
			})
		},
		func(e ecs.Entity) error {
			return ecs.Add(r.w, e, component.SessionTextComponent.Kind(), &component.SessionText{})
		},
	)
}

func TestNumberGameOutcome(t *testing.T) {
	cases := []struct {
		name    string
		catches []int
		win     bool
	}{
		{"no_catch", nil, false},
		{"one_catch", []int{30}, true},
		{"two_catches", []int{10, 60}, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := newRig(t, 1)
			spawnNumberGame(t, r, 7)
			sys := NewNumberGameSystem()

			for tick := 0; tick < 80; tick++ {
				for _, at := range c.catches {
					if tick == at {
						ecs.Emit(r.w, component.ToyCaughtEvent, component.ToyCaught{Toy: entityRef(r.toys[0])})
					}
				}
				sys.Update(r.w)
				ecs.EndTick(r.w)
			}
			ecs.Emit(r.w, component.ClawReturnedToBaseEvent, component.ClawReturnedToBase{})
			sys.Update(r.w)

			res, ok := CurrentResult(r.w)
			if !ok {
				t.Fatalf("expected a result once time ran out")
			}
			if res.Win != c.win || res.ToysCaught != len(c.catches) {
				t.Fatalf("expected win=%v toys=%d, got %+v", c.win, len(c.catches), res)
			}
			if countCues(r.w, component.PoolCatch) != len(c.catches) {
				t.Fatalf("expected a catch cue per catch")
			}
		})
	}
}

func TestNumberGameHeartbeatOnce(t *testing.T) {
	steps := []float64{0.1, 1.0 / 60, 0.3, 2.0 / 3}
	for _, dt := range steps {
		r := newRig(t, 0)
		_, tm := singleton(r.w, component.TimeComponent.Kind())
		tm.Delta = dt
		spawnNumberGame(t, r, 7)
		sys := NewNumberGameSystem()

		for i := 0; i < int(8/dt); i++ {
			sys.Update(r.w)
		}
		if n := countCues(r.w, component.PoolHeartbeat); n != 1 {
			t.Fatalf("dt=%v: expected one heartbeat, got %d", dt, n)
		}
	}
}

func TestNumberGameRearmsWhileTimeRemains(t *testing.T) {
	r := newRig(t, 0)
	spawnNumberGame(t, r, 7)
	sys := NewNumberGameSystem()
	releases := ecs.NewEventReader(component.ReleaseClawEvent)

	sys.Update(r.w)
	r.ctrl(t).Mode = component.ClawLocked
	ecs.Emit(r.w, component.ClawReturnedToBaseEvent, component.ClawReturnedToBase{})
	sys.Update(r.w)

	if r.ctrl(t).Mode != component.ClawManual {
		t.Fatalf("expected re-arm to Manual, got %s", r.ctrl(t).Mode)
	}
	if _, ok := CurrentResult(r.w); ok {
		t.Fatalf("no result while time remains")
	}

	r.setInput(component.Input{ReleasePressed: true})
	sys.Update(r.w)
	if len(releases.Read(r.w)) != 1 {
		t.Fatalf("expected manual release to be honoured")
	}
}

func TestNumberGameOverPolicy(t *testing.T) {
	cases := []struct {
		name    string
		elapsed float64
		over    bool
	}{
		{"fresh", 0, false},
		{"almost", 6.99, false},
		{"expired", 7, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := component.NumberGameProgress{Timer: common.NewTimer(7)}
			p.Timer.Tick(c.elapsed)
			if got := numberGameOver(&p); got != c.over {
				t.Fatalf("expected over=%v, got %v", c.over, got)
			}
		})
	}
}
