package component

import "github.com/jakecoffman/cp"

type BodyKind int

const (
	BodyDynamic BodyKind = iota
	// BodyKinematic bodies follow their Transform; the physics system derives
	// their velocity from the requested move each step.
	BodyKinematic
	BodyStatic
)

// PhysicsBody stores Chipmunk2D runtime data and collider configuration.
type PhysicsBody struct {
	Body  *cp.Body
	Shape *cp.Shape

	Kind       BodyKind
	Width      float64
	Height     float64
	Radius     float64
	Mass       float64
	Friction   float64
	Elasticity float64
	Damping    float64
	Sensor     bool
	// Shapeless bodies have no collider and only carry joints.
	Shapeless bool

	// Parent, when set, adds this entity's shape to the parent's body
	// instead of creating a new body. OffsetX/OffsetY are local to it.
	Parent  uint64
	OffsetX float64
	OffsetY float64
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
