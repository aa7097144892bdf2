package ecs

// entityStore tracks entity generations and free ids. Ids start at 1 so the
// zero Entity is never valid.
type entityStore struct {
	generations []generation
	alive       []bool
	free        []entityID
	count       int
}

func (s *entityStore) create() Entity {
	var id entityID
	if n := len(s.free); n > 0 {
		id = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		s.generations = append(s.generations, 0)
		s.alive = append(s.alive, false)
		id = entityID(len(s.generations))
	}
	s.alive[id-1] = true
	s.count++
	return makeEntity(id, s.generations[id-1])
}

func (s *entityStore) destroy(e Entity) bool {
	if !s.isAlive(e) {
		return false
	}
	idx := e.id() - 1
	s.alive[idx] = false
	s.generations[idx]++
	s.free = append(s.free, e.id())
	s.count--
	return true
}

func (s *entityStore) isAlive(e Entity) bool {
	id := e.id()
	if id == 0 || int(id) > len(s.generations) {
		return false
	}
	return s.alive[id-1] && s.generations[id-1] == e.generation()
}

func (s *entityStore) each(fn func(Entity)) {
	for i, alive := range s.alive {
		if !alive {
			continue
		}
		fn(makeEntity(entityID(i+1), s.generations[i]))
	}
}
