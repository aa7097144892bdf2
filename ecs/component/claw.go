package component

type ClawControlMode int

const (
	// ClawLocked ignores input and does not move.
	ClawLocked ClawControlMode = iota
	// ClawManual accepts horizontal drive input each tick.
	ClawManual
	// ClawReturningToBase moves from Origin to the base at a constant rate.
	ClawReturningToBase
)

func (m ClawControlMode) String() string {
	switch m {
	case ClawLocked:
		return "locked"
	case ClawManual:
		return "manual"
	case ClawReturningToBase:
		return "returning_to_base"
	default:
		return "unknown"
	}
}

// ClawController is the crane carriage. Its Transform is the carriage
// position; the lift owns the vertical axis.
type ClawController struct {
	Mode    ClawControlMode
	OriginX float64
	OriginY float64

	BaseX     float64
	BaseY     float64
	Step      float64 // seconds to travel from origin to base
	MoveSpeed float64 // manual drive, metres per second

	// MinX and MaxX bound manual travel. Equal values disable the bound.
	MinX float64
	MaxX float64
}

var ClawControllerComponent = NewComponent[ClawController]()

// ManualDrive is the capability that lets input move the controller. It is
// present only while the controller is in ClawManual.
type ManualDrive struct{}

var ManualDriveComponent = NewComponent[ManualDrive]()

type LiftState int

const (
	LiftOff LiftState = iota
	LiftDescending
	LiftDwelling
	LiftAscending
)

func (s LiftState) String() string {
	switch s {
	case LiftOff:
		return "off"
	case LiftDescending:
		return "descending"
	case LiftDwelling:
		return "dwelling"
	case LiftAscending:
		return "ascending"
	default:
		return "unknown"
	}
}

// ClawLift is the vertical actuator. Its height is the entity's Transform.Y.
type ClawLift struct {
	State          LiftState
	DwellRemaining float64

	StartHeight  float64
	Speed        float64
	DwellSeconds float64
}

var ClawLiftComponent = NewComponent[ClawLift]()

type ClawObject struct{}

var ClawObjectComponent = NewComponent[ClawObject]()

// ClawSensor is the non-colliding probe on the claw that detects toys.
type ClawSensor struct{}

var ClawSensorComponent = NewComponent[ClawSensor]()

// ClawStopper is the proxy body under the claw whose first contact marks
// the bottom of the descent.
type ClawStopper struct{}

var ClawStopperComponent = NewComponent[ClawStopper]()

type Toy struct {
	Name string
}

var ToyComponent = NewComponent[Toy]()

// ToySensor is the probe region of a toy. Toy is the owning toy entity.
type ToySensor struct {
	Toy uint64
}

var ToySensorComponent = NewComponent[ToySensor]()

type Glass struct {
	Bottom bool
}

var GlassComponent = NewComponent[Glass]()
