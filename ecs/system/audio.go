package system

import (
	"github.com/milk9111/clawmachine/ecs"
	"github.com/milk9111/clawmachine/ecs/component"
)

// CuePlayer turns audio cues into sound. The ebiten implementation lives in
// the platform package.
type CuePlayer interface {
	Play(cue component.AudioCue)
}

type AudioSystem struct {
	player CuePlayer
}

func NewAudioSystem(player CuePlayer) *AudioSystem {
	return &AudioSystem{player: player}
}

// RequestCue spawns a cue request entity. AudioSystem consumes it at the end
// of the tick.
func RequestCue(w *ecs.World, cue component.AudioCue) {
	if w == nil {
		return
	}
	if cue.Volume <= 0 && !cue.Stop {
		cue.Volume = 1
	}
	ent := ecs.CreateEntity(w)
	_ = ecs.Add(w, ent, component.AudioCueComponent.Kind(), &cue)
}

func StopChannel(w *ecs.World, channel string) {
	RequestCue(w, component.AudioCue{Channel: channel, Stop: true})
}

func (a *AudioSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	var requests []ecs.Entity
	ecs.ForEach(w, component.AudioCueComponent.Kind(), func(e ecs.Entity, cue *component.AudioCue) {
		if a.player != nil {
			a.player.Play(*cue)
		}
		requests = append(requests, e)
	})
	for _, e := range requests {
		ecs.DestroyEntity(w, e)
	}
}
