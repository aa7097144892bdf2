package component

// Audio channels route cues to independent players.
const (
	ChannelUI         = "ui"
	ChannelBackground = "background"
	ChannelGlass      = "glass"
	ChannelEffects    = "effects"
)

// Sound pools named in the audio manifest.
const (
	PoolCountdown = "countdown"
	PoolGameplay  = "gameplay"
	PoolGlass     = "glass"
	PoolDrop      = "drop"
	PoolCatch     = "catch"
	PoolHeartbeat = "heartbeat"
	PoolWin       = "win"
	PoolDefeat    = "defeat"
)

// AudioCue is a fire-and-forget playback request. Stop silences the
// channel instead of playing a clip. A zero Volume plays at full volume.
type AudioCue struct {
	Channel string
	Pool    string
	Volume  float64
	Loop    bool
	Stop    bool
}

var AudioCueComponent = NewComponent[AudioCue]()
