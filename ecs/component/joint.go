package component

import "github.com/jakecoffman/cp"

type JointKind int

const (
	// JointSpherical lets the bodies rotate freely around a shared anchor.
	JointSpherical JointKind = iota
	// JointFixed pins the anchor and locks relative rotation.
	JointFixed
)

// JointRequest asks the physics system to join this entity's body to
// Other's body once both exist. Anchors are local to each body.
type JointRequest struct {
	Kind         JointKind
	Other        uint64
	AnchorX      float64
	AnchorY      float64
	OtherAnchorX float64
	OtherAnchorY float64
	Applied      bool
}

var JointRequestComponent = NewComponent[JointRequest]()

// JointConstraints stores the constraint handles created for a JointRequest.
type JointConstraints struct {
	Constraints []*cp.Constraint
}

var JointConstraintsComponent = NewComponent[JointConstraints]()
