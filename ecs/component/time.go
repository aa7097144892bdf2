package component

// Time is the world clock singleton. Delta is the current tick's duration in
// seconds.
type Time struct {
	Delta   float64
	Elapsed float64
}

var TimeComponent = NewComponent[Time]()
