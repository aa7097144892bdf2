package component

// GameResult is the immutable outcome of a finished session.
type GameResult struct {
	Mode        Gamemode
	Win         bool
	DisplayText string
	Elapsed     float64
	ToysCaught  int
	// Announced is set once the win or lose cue was requested.
	Announced bool
}

var GameResultComponent = NewComponent[GameResult]()
