package component

import "github.com/milk9111/clawmachine/common"

type Gamemode int

const (
	GamemodeNone Gamemode = iota
	GamemodeSpeedGame
	GamemodeNumberGame
)

func (g Gamemode) String() string {
	switch g {
	case GamemodeSpeedGame:
		return "speed_game"
	case GamemodeNumberGame:
		return "number_game"
	default:
		return "none"
	}
}

// ParseGamemode maps a mode name to its Gamemode.
func ParseGamemode(name string) (Gamemode, bool) {
	switch name {
	case "speed", "speed_game":
		return GamemodeSpeedGame, true
	case "number", "number_game":
		return GamemodeNumberGame, true
	default:
		return GamemodeNone, false
	}
}

type SpeedGameRules struct {
	Duration           float64
	AllowManualRelease bool
}

type NumberGameRules struct {
	Duration           float64
	HeartbeatAt        float64
	AllowManualRelease bool
}

// GameSettings is the singleton holding the selected mode and its rules.
type GameSettings struct {
	Mode             Gamemode
	CountdownSeconds float64
	Speed            SpeedGameRules
	Number           NumberGameRules
}

var GameSettingsComponent = NewComponent[GameSettings]()

// Countdown is the pre-game countdown entity. The claw is armed when it
// finishes.
type Countdown struct {
	Timer common.Timer
}

var CountdownComponent = NewComponent[Countdown]()

// SpeedGameProgress tracks one Speed Game session. The timer counts up.
type SpeedGameProgress struct {
	Timer              common.Timer
	ToyCaught          bool
	AllowManualRelease bool
}

var SpeedGameProgressComponent = NewComponent[SpeedGameProgress]()

// NumberGameProgress tracks one Number Game session. The timer counts down.
type NumberGameProgress struct {
	Timer              common.Timer
	ToysCaught         int
	HeartbeatPlayed    bool
	HeartbeatAt        float64
	AllowManualRelease bool
}

var NumberGameProgressComponent = NewComponent[NumberGameProgress]()

// SessionText is the on-screen countdown or progress value of a session.
type SessionText struct {
	Value string
}

var SessionTextComponent = NewComponent[SessionText]()
