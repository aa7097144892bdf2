package ecs

// componentStore is the type-erased view of a sparseSet the world needs for
// entity teardown.
type componentStore interface {
	remove(e Entity) bool
	has(e Entity) bool
	len() int
}

// sparseSet is a cache-friendly storage for components keyed by entity id.
// The dense arrays keep full entity handles so stale generations never match.
type sparseSet[T any] struct {
	entities []Entity
	values   []*T
	sparse   []int
}

func newSparseSet[T any]() *sparseSet[T] {
	return &sparseSet[T]{}
}

func (s *sparseSet[T]) index(e Entity) (int, bool) {
	id := int(e.id())
	if id <= 0 || id > len(s.sparse) {
		return 0, false
	}
	idx := s.sparse[id-1]
	if idx < 0 || idx >= len(s.entities) || s.entities[idx] != e {
		return 0, false
	}
	return idx, true
}

func (s *sparseSet[T]) has(e Entity) bool {
	_, ok := s.index(e)
	return ok
}

func (s *sparseSet[T]) get(e Entity) (*T, bool) {
	idx, ok := s.index(e)
	if !ok {
		return nil, false
	}
	return s.values[idx], true
}

func (s *sparseSet[T]) set(e Entity, v *T) {
	if idx, ok := s.index(e); ok {
		s.values[idx] = v
		return
	}
	id := int(e.id())
	for len(s.sparse) < id {
		s.sparse = append(s.sparse, -1)
	}
	// A stale generation may still occupy the slot.
	if old := s.sparse[id-1]; old >= 0 && old < len(s.entities) && s.entities[old].id() == e.id() {
		s.removeAt(old)
	}
	s.entities = append(s.entities, e)
	s.values = append(s.values, v)
	s.sparse[id-1] = len(s.entities) - 1
}

func (s *sparseSet[T]) remove(e Entity) bool {
	idx, ok := s.index(e)
	if !ok {
		return false
	}
	s.removeAt(idx)
	return true
}

func (s *sparseSet[T]) removeAt(idx int) {
	last := len(s.entities) - 1
	removed := s.entities[idx]
	moved := s.entities[last]

	s.entities[idx] = moved
	s.values[idx] = s.values[last]
	s.sparse[moved.id()-1] = idx

	s.entities = s.entities[:last]
	s.values[last] = nil
	s.values = s.values[:last]
	s.sparse[removed.id()-1] = -1
}

func (s *sparseSet[T]) len() int {
	return len(s.entities)
}

// snapshot copies the dense entity list so callers may mutate the set while
// iterating.
func (s *sparseSet[T]) snapshot() []Entity {
	out := make([]Entity, len(s.entities))
	copy(out, s.entities)
	return out
}
