package component

// Transform is a body's pose in machine space: X horizontal, Y up, in metres.
type Transform struct {
	X        float64
	Y        float64
	Rotation float64
}

var TransformComponent = NewComponent[Transform]()
