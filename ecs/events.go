package ecs

import "github.com/milk9111/clawmachine/ecs/component"

// eventStore is the type-erased view of an event channel used to rotate
// buffers at the end of a tick.
type eventStore interface {
	rotate()
}

// eventChannel is double buffered: events emitted during tick N stay
// readable until the end of tick N+1, so a reader scheduled before the
// emitter still sees them exactly once on the following tick.
type eventChannel[T any] struct {
	prev      []T
	curr      []T
	prevStart uint64
	currStart uint64
}

func (c *eventChannel[T]) rotate() {
	c.prev, c.curr = c.curr, c.prev[:0]
	c.prevStart = c.currStart
	c.currStart = c.prevStart + uint64(len(c.prev))
}

func (c *eventChannel[T]) end() uint64 {
	return c.currStart + uint64(len(c.curr))
}

func channelFor[T any](w *World, kind component.EventKind[T], create bool) *eventChannel[T] {
	if w == nil || !kind.Valid() {
		return nil
	}
	if w.events == nil {
		w.events = make(map[component.EventID]eventStore)
	}
	if ch, ok := w.events[kind.ID()]; ok {
		typed, _ := ch.(*eventChannel[T])
		return typed
	}
	if !create {
		return nil
	}
	typed := &eventChannel[T]{}
	w.events[kind.ID()] = typed
	return typed
}

// Emit appends an event to the current tick's buffer.
func Emit[T any](w *World, kind component.EventKind[T], evt T) {
	ch := channelFor(w, kind, true)
	if ch == nil {
		return
	}
	ch.curr = append(ch.curr, evt)
}

// EndTick rotates every event channel and advances the tick counter.
// Scheduler.Update calls it after the last system.
func EndTick(w *World) {
	if w == nil {
		return
	}
	for _, ch := range w.events {
		ch.rotate()
	}
	w.tick++
}

// EventReader tracks how far one consumer has read a channel, so every
// reader sees each event once.
type EventReader[T any] struct {
	kind   component.EventKind[T]
	cursor uint64
}

func NewEventReader[T any](kind component.EventKind[T]) *EventReader[T] {
	return &EventReader[T]{kind: kind}
}

// Read returns the events this reader has not seen yet, oldest first.
func (r *EventReader[T]) Read(w *World) []T {
	if r == nil {
		return nil
	}
	ch := channelFor(w, r.kind, false)
	if ch == nil {
		return nil
	}
	if r.cursor < ch.prevStart {
		r.cursor = ch.prevStart
	}
	end := ch.end()
	if r.cursor >= end {
		return nil
	}

	out := make([]T, 0, end-r.cursor)
	if r.cursor < ch.currStart {
		out = append(out, ch.prev[r.cursor-ch.prevStart:]...)
		out = append(out, ch.curr...)
	} else {
		out = append(out, ch.curr[r.cursor-ch.currStart:]...)
	}
	r.cursor = end
	return out
}

// Clear marks every pending event as read.
func (r *EventReader[T]) Clear(w *World) {
	if r == nil {
		return
	}
	if ch := channelFor(w, r.kind, false); ch != nil {
		r.cursor = ch.end()
	}
}
