package ecs

import "github.com/milk9111/clawmachine/ecs/component"

// World owns entities, component stores and event channels.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]componentStore
	events   map[component.EventID]eventStore
	tick     uint64
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{
		stores: make(map[component.ComponentID]componentStore),
		events: make(map[component.EventID]eventStore),
	}
}

// CreateEntity allocates a new entity.
func CreateEntity(w *World) Entity {
	return w.entities.create()
}

// DestroyEntity removes every component of e and frees its id. It reports
// false when e was already dead.
func DestroyEntity(w *World, e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, store := range w.stores {
		store.remove(e)
	}
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is valid.
func IsAlive(w *World, e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// Entities returns all live entities in id order.
func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	out := make([]Entity, 0, w.entities.count)
	w.entities.each(func(e Entity) { out = append(out, e) })
	return out
}

// Tick returns the number of completed scheduler ticks.
func Tick(w *World) uint64 {
	if w == nil {
		return 0
	}
	return w.tick
}

func storeFor[T any](w *World, kind component.ComponentKind[T], create bool) *sparseSet[T] {
	if w == nil || !kind.Valid() {
		return nil
	}
	if w.stores == nil {
		w.stores = make(map[component.ComponentID]componentStore)
	}
	if store, ok := w.stores[kind.ID()]; ok {
		typed, _ := store.(*sparseSet[T])
		return typed
	}
	if !create {
		return nil
	}
	typed := newSparseSet[T]()
	w.stores[kind.ID()] = typed
	return typed
}
