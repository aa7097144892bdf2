package ecs

import "github.com/milk9111/clawmachine/ecs/component"

// Add inserts or replaces the component of the given kind on e.
func Add[T any](w *World, e Entity, kind component.ComponentKind[T], value *T) error {
	if !kind.Valid() {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return component.ErrNilComponent
	}
	if !IsAlive(w, e) {
		return component.ErrEntityNotAlive
	}
	storeFor(w, kind, true).set(e, value)
	return nil
}

// Remove deletes the component of the given kind from e. It reports whether
// a component was present.
func Remove[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	store := storeFor(w, kind, false)
	if store == nil {
		return false
	}
	return store.remove(e)
}

func Has[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	store := storeFor(w, kind, false)
	if store == nil || !IsAlive(w, e) {
		return false
	}
	return store.has(e)
}

func Get[T any](w *World, e Entity, kind component.ComponentKind[T]) (*T, bool) {
	store := storeFor(w, kind, false)
	if store == nil || !IsAlive(w, e) {
		return nil, false
	}
	return store.get(e)
}

// ForEach visits every live entity holding the component. The callback may
// add or remove components, or destroy entities.
func ForEach[T any](w *World, kind component.ComponentKind[T], fn func(Entity, *T)) {
	store := storeFor(w, kind, false)
	if store == nil || fn == nil {
		return
	}
	for _, e := range store.snapshot() {
		v, ok := store.get(e)
		if !ok || !IsAlive(w, e) {
			continue
		}
		fn(e, v)
	}
}

// First returns the first live entity holding the component.
func First[T any](w *World, kind component.ComponentKind[T]) (Entity, bool) {
	store := storeFor(w, kind, false)
	if store == nil {
		return 0, false
	}
	for _, e := range store.entities {
		if IsAlive(w, e) {
			return e, true
		}
	}
	return 0, false
}

// Count returns how many live entities hold the component.
func Count[T any](w *World, kind component.ComponentKind[T]) int {
	store := storeFor(w, kind, false)
	if store == nil {
		return 0
	}
	return store.len()
}

// Single returns the only entity holding the component together with the
// number of holders. ok is false unless exactly one holder exists.
func Single[T any](w *World, kind component.ComponentKind[T]) (e Entity, value *T, count int, ok bool) {
	store := storeFor(w, kind, false)
	if store == nil {
		return 0, nil, 0, false
	}
	count = store.len()
	if count != 1 {
		return 0, nil, count, false
	}
	e = store.entities[0]
	return e, store.values[0], count, true
}
