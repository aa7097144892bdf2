package component

// Input stores per-frame input state for the claw.
type Input struct {
	MoveX          float64
	ReleasePressed bool
}

var InputComponent = NewComponent[Input]()
