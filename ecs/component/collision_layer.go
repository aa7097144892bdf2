package component

// Collision categories of the machine. A shape collides with another when
// each one's category is in the other's mask.
const (
	LayerClaw uint32 = 1 << iota
	LayerGlass
	LayerClawStopper
	LayerEjectionShelf
	LayerEjectedToy
	LayerBottomGlass

	LayerAll uint32 = ^uint32(0)
)

// CollisionLayer allows entities to declare a collision category and mask
// so the physics system can selectively enable/disable collisions between
// groups of objects.
type CollisionLayer struct {
	// Category is a bitmask of this entity's collision category. If zero,
	// the physics system will treat it as all categories.
	Category uint32 `yaml:"category,omitempty"`
	// Mask is a bitmask of categories this entity should collide with. If
	// zero, the physics system will treat it as all-bits set (collide with all).
	Mask uint32 `yaml:"mask,omitempty"`
}

var CollisionLayerComponent = NewComponent[CollisionLayer]()
