package platform

import (
	"bytes"
	"fmt"
	"log"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/milk9111/clawmachine/assets"
	"github.com/milk9111/clawmachine/ecs/component"
	"github.com/milk9111/clawmachine/prefabs"
)

type clip struct {
	pcm    []byte
	volume float64
}

// AudioPlayer plays cue pools on named channels. A channel keeps every
// player it started until it is stopped or the clip ends.
type AudioPlayer struct {
	ctx      *audio.Context
	pools    map[string][]clip
	channels map[string][]*audio.Player
}

// NewAudioPlayer decodes every clip of manifest up front. ctx must match
// the manifest's sample rate.
func NewAudioPlayer(ctx *audio.Context, manifest *prefabs.AudioManifest) (*AudioPlayer, error) {
	if ctx == nil || manifest == nil {
		return nil, fmt.Errorf("platform: audio player needs a context and a manifest")
	}
	p := &AudioPlayer{
		ctx:      ctx,
		pools:    make(map[string][]clip, len(manifest.Pools)),
		channels: make(map[string][]*audio.Player),
	}
	for pool, specs := range manifest.Pools {
		for i, spec := range specs {
			pcm, err := decodeClip(ctx.SampleRate(), spec)
			if err != nil {
				return nil, fmt.Errorf("platform: pool %s clip %d: %w", pool, i, err)
			}
			volume := spec.Volume
			if volume <= 0 {
				volume = 1
			}
			p.pools[pool] = append(p.pools[pool], clip{pcm: pcm, volume: volume})
		}
	}
	return p, nil
}

func decodeClip(sampleRate int, spec prefabs.ClipSpec) ([]byte, error) {
	if spec.File != "" {
		return assets.LoadAudio(spec.File, sampleRate)
	}
	seconds := spec.Seconds
	if seconds <= 0 {
		seconds = 0.2
	}
	return synthTone(sampleRate, spec.Tone, seconds), nil
}

// Play implements system.CuePlayer.
func (p *AudioPlayer) Play(cue component.AudioCue) {
	if cue.Stop {
		p.stop(cue.Channel)
		return
	}

	clips := p.pools[cue.Pool]
	if len(clips) == 0 {
		log.Printf("audio: no clips for pool %q", cue.Pool)
		return
	}
	c := clips[rand.IntN(len(clips))]

	var player *audio.Player
	var err error
	if cue.Loop {
		loop := audio.NewInfiniteLoop(bytes.NewReader(c.pcm), int64(len(c.pcm)))
		player, err = p.ctx.NewPlayer(loop)
	} else {
		player = p.ctx.NewPlayerFromBytes(c.pcm)
	}
	if err != nil {
		log.Printf("audio: play %s: %v", cue.Pool, err)
		return
	}

	player.SetVolume(cue.Volume * c.volume)
	player.Play()
	p.channels[cue.Channel] = append(p.prune(cue.Channel), player)
}

// prune drops players of channel that finished on their own.
func (p *AudioPlayer) prune(channel string) []*audio.Player {
	live := p.channels[channel][:0]
	for _, pl := range p.channels[channel] {
		if pl.IsPlaying() {
			live = append(live, pl)
			continue
		}
		_ = pl.Close()
	}
	return live
}

func (p *AudioPlayer) stop(channel string) {
	for _, pl := range p.channels[channel] {
		pl.Pause()
		_ = pl.Close()
	}
	delete(p.channels, channel)
}

// Close stops every channel.
func (p *AudioPlayer) Close() {
	for channel := range p.channels {
		p.stop(channel)
	}
}

// MutedPlayer drops every cue.
type MutedPlayer struct{}

func (MutedPlayer) Play(component.AudioCue) {}
