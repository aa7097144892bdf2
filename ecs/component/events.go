package component

// CollisionStarted reports two colliders that began touching this step.
type CollisionStarted struct {
	A uint64
	B uint64
}

// Involves reports whether e is one side of the pair.
func (c CollisionStarted) Involves(e uint64) bool {
	return e != 0 && (c.A == e || c.B == e)
}

// Other returns the side that is not e.
func (c CollisionStarted) Other(e uint64) uint64 {
	if c.A == e {
		return c.B
	}
	return c.A
}

var CollisionStartedEvent = NewEventKind[CollisionStarted]()

type ToyCaught struct {
	Toy uint64
}

var ToyCaughtEvent = NewEventKind[ToyCaught]()

// ReleaseClaw drops the claw when the controller is in manual mode.
type ReleaseClaw struct{}

var ReleaseClawEvent = NewEventKind[ReleaseClaw]()

type ClawReturnedToBase struct{}

var ClawReturnedToBaseEvent = NewEventKind[ClawReturnedToBase]()

type CountdownFinished struct{}

var CountdownFinishedEvent = NewEventKind[CountdownFinished]()
