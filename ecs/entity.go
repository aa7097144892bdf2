package ecs

// Entity packs a slot id in the low 32 bits and the slot's generation in the
// high 32 bits, so a destroyed entity never aliases its recycled slot.
type Entity uint64

type entityID uint32
type generation uint32

const entityIDBits = 32

func makeEntity(id entityID, gen generation) Entity {
	return Entity(uint64(gen)<<entityIDBits | uint64(id))
}

func (e Entity) id() entityID {
	return entityID(uint32(e))
}

func (e Entity) generation() generation {
	return generation(uint32(uint64(e) >> entityIDBits))
}

// Ref is the form components and events store to point at another entity.
func (e Entity) Ref() uint64 {
	return uint64(e)
}

// EntityOf turns a stored reference back into an entity. The result may be
// dead; check it with IsAlive.
func EntityOf(ref uint64) Entity {
	return Entity(ref)
}
