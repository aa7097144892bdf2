package system

import (
	"fmt"
	"math"

	"github.com/milk9111/clawmachine/common"
	"github.com/milk9111/clawmachine/ecs"
	"github.com/milk9111/clawmachine/ecs/component"
)

const (
	defaultCountdownSeconds = 3.0
	defaultSpeedDuration    = 20.0
	defaultNumberDuration   = 7.0
	defaultHeartbeatAt      = 5.0
)

// DefaultGameSettings returns the stock rules of both modes.
func DefaultGameSettings() component.GameSettings {
	return component.GameSettings{
		CountdownSeconds: defaultCountdownSeconds,
		Speed: component.SpeedGameRules{
			Duration: defaultSpeedDuration,
		},
		Number: component.NumberGameRules{
			Duration:           defaultNumberDuration,
			HeartbeatAt:        defaultHeartbeatAt,
			AllowManualRelease: true,
		},
	}
}

// StartSession tears down any previous session, locks the claw and starts
// the pre-game countdown for mode.
func StartSession(w *ecs.World, mode component.Gamemode) error {
	if w == nil {
		return fmt.Errorf("system: start session: nil world")
	}
	if mode != component.GamemodeSpeedGame && mode != component.GamemodeNumberGame {
		return fmt.Errorf("system: start session: unsupported mode %q", mode)
	}

	EndSession(w)

	_, settings := gameSettings(w)
	settings.Mode = mode

	seconds := settings.CountdownSeconds
	if seconds <= 0 {
		seconds = defaultCountdownSeconds
	}
	ent := ecs.CreateEntity(w)
	if err := ecs.Add(w, ent, component.CountdownComponent.Kind(), &component.Countdown{Timer: common.NewTimer(seconds)}); err != nil {
		return fmt.Errorf("system: start session: add countdown: %w", err)
	}
	if err := ecs.Add(w, ent, component.SessionTextComponent.Kind(), &component.SessionText{Value: countdownText(seconds, 0)}); err != nil {
		return fmt.Errorf("system: start session: add session text: %w", err)
	}

	RequestCue(w, component.AudioCue{Channel: component.ChannelUI, Pool: component.PoolCountdown})
	return nil
}

// EndSession destroys the countdown, progress and result entities, drops
// any held toy and parks the claw.
func EndSession(w *ecs.World) {
	if w == nil {
		return
	}
	destroyAll(w, component.CountdownComponent.Kind())
	destroyAll(w, component.SpeedGameProgressComponent.Kind())
	destroyAll(w, component.NumberGameProgressComponent.Kind())
	destroyAll(w, component.GameResultComponent.Kind())

	ecs.ForEach(w, component.ClawSensorComponent.Kind(), func(e ecs.Entity, _ *component.ClawSensor) {
		Detach(w, e)
	})
	ecs.ForEach(w, component.ClawControllerComponent.Kind(), func(_ ecs.Entity, ctrl *component.ClawController) {
		ctrl.Mode = component.ClawLocked
	})
	ecs.ForEach(w, component.ClawLiftComponent.Kind(), func(_ ecs.Entity, lift *component.ClawLift) {
		lift.State = component.LiftOff
		lift.DwellRemaining = 0
	})
	StopChannel(w, component.ChannelBackground)
}

func destroyAll[T any](w *ecs.World, kind component.ComponentKind[T]) {
	var doomed []ecs.Entity
	ecs.ForEach(w, kind, func(e ecs.Entity, _ *T) {
		doomed = append(doomed, e)
	})
	for _, e := range doomed {
		ecs.DestroyEntity(w, e)
	}
}

func gameSettings(w *ecs.World) (ecs.Entity, *component.GameSettings) {
	if e, ok := ecs.First(w, component.GameSettingsComponent.Kind()); ok {
		if s, ok := ecs.Get(w, e, component.GameSettingsComponent.Kind()); ok {
			return e, s
		}
	}
	e := ecs.CreateEntity(w)
	s := DefaultGameSettings()
	if err := ecs.Add(w, e, component.GameSettingsComponent.Kind(), &s); err != nil {
		panic("system: add game settings: " + err.Error())
	}
	return e, &s
}

// beginMode spawns the progress entity of the selected mode.
func beginMode(w *ecs.World) {
	_, settings := gameSettings(w)
	ent := ecs.CreateEntity(w)

	switch settings.Mode {
	case component.GamemodeSpeedGame:
		rules := settings.Speed
		if rules.Duration <= 0 {
			rules.Duration = defaultSpeedDuration
		}
		_ = ecs.Add(w, ent, component.SpeedGameProgressComponent.Kind(), &component.SpeedGameProgress{
			Timer:              common.NewTimer(rules.Duration),
			AllowManualRelease: rules.AllowManualRelease,
		})
		_ = ecs.Add(w, ent, component.SessionTextComponent.Kind(), &component.SessionText{Value: fmt.Sprintf("%.2f", 0.0)})
	case component.GamemodeNumberGame:
		rules := settings.Number
		if rules.Duration <= 0 {
			rules.Duration = defaultNumberDuration
		}
		_ = ecs.Add(w, ent, component.NumberGameProgressComponent.Kind(), &component.NumberGameProgress{
			Timer:              common.NewTimer(rules.Duration),
			HeartbeatAt:        rules.HeartbeatAt,
			AllowManualRelease: rules.AllowManualRelease,
		})
		_ = ecs.Add(w, ent, component.SessionTextComponent.Kind(), &component.SessionText{Value: fmt.Sprintf("%.2f", rules.Duration)})
	default:
		ecs.DestroyEntity(w, ent)
	}
}

// SessionDisplay returns the text the UI shows for the running session: the
// countdown digit, the mode timer or the result line.
func SessionDisplay(w *ecs.World) string {
	if e, ok := ecs.First(w, component.GameResultComponent.Kind()); ok {
		if res, ok := ecs.Get(w, e, component.GameResultComponent.Kind()); ok {
			return res.DisplayText
		}
	}
	if e, ok := ecs.First(w, component.SessionTextComponent.Kind()); ok {
		if text, ok := ecs.Get(w, e, component.SessionTextComponent.Kind()); ok {
			return text.Value
		}
	}
	return ""
}

func countdownText(duration, elapsed float64) string {
	left := duration - math.Floor(elapsed)
	if left < 1 {
		left = 1
	}
	return fmt.Sprintf("%d", int(left))
}
