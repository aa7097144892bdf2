package component

// Glue asks for the holder entity to be rigidly joined to Target. Removing
// the component releases the joint within the same tick.
type Glue struct {
	Target uint64
}

var GlueComponent = NewComponent[Glue]()

// GlueJoint records the joint the glue system created for a Glue relation.
// It is owned by the glue system; other systems must not touch it.
type GlueJoint struct {
	Target uint64
	Joint  uint64
}

var GlueJointComponent = NewComponent[GlueJoint]()
