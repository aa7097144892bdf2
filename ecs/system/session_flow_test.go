package system

import (
	"testing"

	"github.com/milk9111/clawmachine/ecs"
	"github.com/milk9111/clawmachine/ecs/component"
)

// scriptedContacts stands in for physics: it reports the claw sensor
// touching the toy and the stopper touching the floor at fixed lift heights.
type scriptedContacts struct {
	r       *rig
	toyAt   float64
	floorAt float64
	// catches is how many descents may still meet the toy.
	catches int

	toySent   bool
	floorSent bool
}

func (s *scriptedContacts) Update(w *ecs.World) {
	lift, ok := ecs.Get(w, s.r.lift, component.ClawLiftComponent.Kind())
	if !ok {
		return
	}
	if lift.State != component.LiftDescending {
		s.toySent, s.floorSent = false, false
		return
	}
	tr, ok := ecs.Get(w, s.r.lift, component.TransformComponent.Kind())
	if !ok {
		return
	}
	y := tr.Y
	if s.catches > 0 && !s.toySent && y <= s.toyAt {
		s.toySent = true
		s.catches--
		s.r.collide(s.r.sensor, s.r.toySensors[0])
	}
	if !s.floorSent && y <= s.floorAt {
		s.floorSent = true
		s.r.collide(s.r.stopper, s.r.floor)
	}
}

func flowScheduler(r *rig, joints Joints, player CuePlayer, contacts ecs.System) *ecs.Scheduler {
	return ecs.NewScheduler(
		NewTimeSystem(testStep),
		NewCountdownSystem(),
		NewSpeedGameSystem(),
		NewNumberGameSystem(),
		NewClawReleaseSystem(),
		NewClawCapabilitySystem(),
		NewManualDriveSystem(),
		NewLiftSyncSystem(),
		contacts,
		NewGlassHitSystem(),
		NewClawLiftSystem(),
		NewClawReturnSystem(),
		NewGlueSystem(joints),
		NewResultsSystem(),
		NewAudioSystem(player),
	)
}

func runUntilResult(t *testing.T, r *rig, sched *ecs.Scheduler, limit int) component.GameResult {
	t.Helper()
	for i := 0; i < limit; i++ {
		sched.Update(r.w)
		if res, ok := CurrentResult(r.w); ok {
			return res
		}
	}
	t.Fatalf("no result after %d ticks", limit)
	return component.GameResult{}
}

func TestSpeedGameFlow(t *testing.T) {
	cases := []struct {
		name    string
		catches int
		win     bool
	}{
		{"catch", 1, true},
		{"miss", 0, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := newRig(t, 1)
			joints := newFakeJoints()
			player := &recordingPlayer{}
			contacts := &scriptedContacts{r: r, toyAt: 1.5, floorAt: 1.0, catches: c.catches}
			sched := flowScheduler(r, joints, player, contacts)

			if err := StartSession(r.w, component.GamemodeSpeedGame); err != nil {
				t.Fatalf("start session: %v", err)
			}
			res := runUntilResult(t, r, sched, 1000)

			if res.Win != c.win {
				t.Fatalf("expected win=%v, got %+v", c.win, res)
			}
			if r.ctrl(t).Mode != component.ClawLocked {
				t.Fatalf("expected claw locked at results, got %s", r.ctrl(t).Mode)
			}
			if x := r.transform(t, r.controller).X; x != 0.54 {
				t.Fatalf("expected claw at base, got %v", x)
			}
			wantJoints := 0
			if c.win {
				wantJoints = 1
			}
			if joints.created != wantJoints || joints.JointCount() != 0 {
				t.Fatalf("expected %d joints created and none left, got %d/%d", wantJoints, joints.created, joints.JointCount())
			}

			sched.Update(r.w)
			pools := map[string]int{}
			for _, cue := range player.cues {
				pools[cue.Pool]++
			}
			wantPool := component.PoolDefeat
			if c.win {
				wantPool = component.PoolWin
			}
			if pools[component.PoolCountdown] != 1 || pools[component.PoolDrop] != 1 || pools[wantPool] != 1 {
				t.Fatalf("unexpected cues %v", pools)
			}
		})
	}
}

func TestNumberGameFlow(t *testing.T) {
	r := newRig(t, 1)
	joints := newFakeJoints()
	player := &recordingPlayer{}
	contacts := &scriptedContacts{r: r, toyAt: 1.5, floorAt: 1.0, catches: 1}
	sched := flowScheduler(r, joints, player, contacts)

	if err := StartSession(r.w, component.GamemodeNumberGame); err != nil {
		t.Fatalf("start session: %v", err)
	}
	r.setInput(component.Input{ReleasePressed: true})
	res := runUntilResult(t, r, sched, 1000)

	if !res.Win || res.ToysCaught != 1 {
		t.Fatalf("expected one toy caught, got %+v", res)
	}
	if ecs.Count(r.w, component.NumberGameProgressComponent.Kind()) != 0 {
		t.Fatalf("progress must be consumed")
	}
	for i := 0; i < 3; i++ {
		sched.Update(r.w)
	}
	if r.ctrl(t).Mode != component.ClawLocked {
		t.Fatalf("claw must stay locked on the results screen, got %s", r.ctrl(t).Mode)
	}
}
