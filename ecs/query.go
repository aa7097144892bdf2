package ecs

import "github.com/milk9111/clawmachine/ecs/component"

// ForEach2 visits entities holding both components, iterating the smaller
// store.
func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(Entity, *A, *B)) {
	sa := storeFor(w, ka, false)
	sb := storeFor(w, kb, false)
	if sa == nil || sb == nil || fn == nil {
		return
	}
	ents := sa.snapshot()
	if sb.len() < sa.len() {
		ents = sb.snapshot()
	}
	for _, e := range ents {
		if !IsAlive(w, e) {
			continue
		}
		a, ok := sa.get(e)
		if !ok {
			continue
		}
		b, ok := sb.get(e)
		if !ok {
			continue
		}
		fn(e, a, b)
	}
}

// ForEach3 visits entities holding all three components.
func ForEach3[A, B, C any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], fn func(Entity, *A, *B, *C)) {
	sc := storeFor(w, kc, false)
	if sc == nil || fn == nil {
		return
	}
	ForEach2(w, ka, kb, func(e Entity, a *A, b *B) {
		c, ok := sc.get(e)
		if !ok {
			return
		}
		fn(e, a, b, c)
	})
}
