package component

// Diagnostics is the singleton where systems record absorbed invariant
// violations, keyed by system name.
type Diagnostics struct {
	InvariantViolations map[string]int
}

var DiagnosticsComponent = NewComponent[Diagnostics]()
