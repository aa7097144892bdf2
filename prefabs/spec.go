package prefabs

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

const (
	MachineSpecFile   = "claw_machine.yaml"
	AudioManifestFile = "audio.yaml"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// MachineSpec describes one claw machine cabinet and its session tuning.
type MachineSpec struct {
	Name       string         `yaml:"name"`
	Physics    PhysicsSpec    `yaml:"physics"`
	Glass      GlassSpec      `yaml:"glass"`
	Shelf      ShelfSpec      `yaml:"shelf"`
	Controller ControllerSpec `yaml:"controller"`
	Lift       LiftSpec       `yaml:"lift"`
	Claw       ClawSpec       `yaml:"claw"`
	Stopper    StopperSpec    `yaml:"stopper"`
	Toys       []ToySpec      `yaml:"toys"`
	Session    SessionSpec    `yaml:"session"`
}

type PhysicsSpec struct {
	Gravity float64 `yaml:"gravity"`
}

// GlassSpec is the cabinet box. HalfWidth and HalfHeight are measured from
// the centre to the inner face of each pane.
type GlassSpec struct {
	CenterX    float64 `yaml:"center_x"`
	CenterY    float64 `yaml:"center_y"`
	HalfWidth  float64 `yaml:"half_width"`
	HalfHeight float64 `yaml:"half_height"`
	Thickness  float64 `yaml:"thickness"`
	Friction   float64 `yaml:"friction"`
}

// ShelfSpec places the ejection shelves relative to the bottom pane.
type ShelfSpec struct {
	AngleDegrees float64 `yaml:"angle_degrees"`
	OffsetX      float64 `yaml:"offset_x"`
	Drop         float64 `yaml:"drop"`
}

type ControllerSpec struct {
	BaseX     float64 `yaml:"base_x"`
	BaseY     float64 `yaml:"base_y"`
	Step      float64 `yaml:"step"`
	MoveSpeed float64 `yaml:"move_speed"`
	MinX      float64 `yaml:"min_x"`
	MaxX      float64 `yaml:"max_x"`
}

type LiftSpec struct {
	StartHeight  float64 `yaml:"start_height"`
	Speed        float64 `yaml:"speed"`
	DwellSeconds float64 `yaml:"dwell_seconds"`
}

type ClawSpec struct {
	HalfExtent    float64 `yaml:"half_extent"`
	Mass          float64 `yaml:"mass"`
	Restitution   float64 `yaml:"restitution"`
	Damping       float64 `yaml:"damping"`
	HangLength    float64 `yaml:"hang_length"`
	SensorRadius  float64 `yaml:"sensor_radius"`
	SensorOffsetY float64 `yaml:"sensor_offset_y"`
}

type StopperSpec struct {
	HalfWidth  float64 `yaml:"half_width"`
	HalfHeight float64 `yaml:"half_height"`
	Mass       float64 `yaml:"mass"`
	OffsetY    float64 `yaml:"offset_y"`
}

type ToySpec struct {
	Name         string  `yaml:"name"`
	X            float64 `yaml:"x"`
	Y            float64 `yaml:"y"`
	Radius       float64 `yaml:"radius"`
	Mass         float64 `yaml:"mass"`
	Friction     float64 `yaml:"friction"`
	SensorRadius float64 `yaml:"sensor_radius"`
}

type SessionSpec struct {
	CountdownSeconds float64        `yaml:"countdown_seconds"`
	Speed            SpeedGameSpec  `yaml:"speed_game"`
	Number           NumberGameSpec `yaml:"number_game"`
}

type SpeedGameSpec struct {
	Duration           float64 `yaml:"duration"`
	AllowManualRelease bool    `yaml:"allow_manual_release"`
}

type NumberGameSpec struct {
	Duration           float64 `yaml:"duration"`
	HeartbeatAt        float64 `yaml:"heartbeat_at"`
	AllowManualRelease bool    `yaml:"allow_manual_release"`
}

func LoadMachineSpec() (*MachineSpec, error) {
	spec, err := LoadSpec[MachineSpec](MachineSpecFile)
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", MachineSpecFile, err)
	}
	return &spec, nil
}

// Validate rejects tunings the claw state machines cannot run with.
func (s *MachineSpec) Validate() error {
	switch {
	case s.Lift.Speed <= 0:
		return fmt.Errorf("lift.speed must be positive, got %v", s.Lift.Speed)
	case s.Lift.DwellSeconds < 0:
		return fmt.Errorf("lift.dwell_seconds must not be negative, got %v", s.Lift.DwellSeconds)
	case s.Controller.Step <= 0:
		return fmt.Errorf("controller.step must be positive, got %v", s.Controller.Step)
	case s.Controller.MaxX < s.Controller.MinX:
		return fmt.Errorf("controller.max_x %v is below min_x %v", s.Controller.MaxX, s.Controller.MinX)
	case s.Glass.HalfWidth <= 0 || s.Glass.HalfHeight <= 0:
		return fmt.Errorf("glass half extents must be positive")
	case s.Claw.HalfExtent <= 0 || s.Claw.SensorRadius <= 0:
		return fmt.Errorf("claw half_extent and sensor_radius must be positive")
	case s.Session.Speed.Duration <= 0 || s.Session.Number.Duration <= 0:
		return fmt.Errorf("session durations must be positive")
	}
	for i, toy := range s.Toys {
		if toy.Radius <= 0 || toy.SensorRadius <= 0 {
			return fmt.Errorf("toys[%d] %q: radius and sensor_radius must be positive", i, toy.Name)
		}
	}
	return nil
}

// AudioManifest maps cue pools to the clips played for them.
type AudioManifest struct {
	SampleRate int                   `yaml:"sample_rate"`
	Pools      map[string][]ClipSpec `yaml:"pools"`
}

// ClipSpec is either an asset file (wav or ogg) or a generated tone.
type ClipSpec struct {
	File    string  `yaml:"file,omitempty"`
	Tone    float64 `yaml:"tone,omitempty"`
	Seconds float64 `yaml:"seconds,omitempty"`
	Volume  float64 `yaml:"volume,omitempty"`
}

func LoadAudioManifest() (*AudioManifest, error) {
	manifest, err := LoadSpec[AudioManifest](AudioManifestFile)
	if err != nil {
		return nil, err
	}
	for pool, clips := range manifest.Pools {
		for i, clip := range clips {
			if clip.File == "" && clip.Tone <= 0 {
				return nil, fmt.Errorf("prefabs: %s: pools.%s[%d] needs a file or a tone", AudioManifestFile, pool, i)
			}
		}
	}
	if manifest.SampleRate <= 0 {
		manifest.SampleRate = 44100
	}
	return &manifest, nil
}
