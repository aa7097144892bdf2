package system

import (
	"github.com/milk9111/clawmachine/common"
	"github.com/milk9111/clawmachine/ecs"
	"github.com/milk9111/clawmachine/ecs/component"
)

const (
	glassHitInterval     = 0.5
	glassHitMaxIntensity = 1.5
)

// GlassHitSystem plays the glass cue when the claw swings into the glass,
// louder the faster it moves, at most once per glassHitInterval.
type GlassHitSystem struct {
	collisions *ecs.EventReader[component.CollisionStarted]
	lastHit    float64
	hit        bool
}

func NewGlassHitSystem() *GlassHitSystem {
	return &GlassHitSystem{collisions: ecs.NewEventReader(component.CollisionStartedEvent)}
}

func (s *GlassHitSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	collisions := s.collisions.Read(w)
	if len(collisions) == 0 {
		return
	}
	claw, ok := ecs.First(w, component.ClawObjectComponent.Kind())
	if !ok {
		return
	}

	now := 0.0
	if e, ok := ecs.First(w, component.TimeComponent.Kind()); ok {
		if t, ok := ecs.Get(w, e, component.TimeComponent.Kind()); ok {
			now = t.Elapsed
		}
	}

	for _, c := range collisions {
		if !c.Involves(entityRef(claw)) {
			continue
		}
		if !ecs.Has(w, entityOf(c.Other(entityRef(claw))), component.GlassComponent.Kind()) {
			continue
		}
		if s.hit && now-s.lastHit <= glassHitInterval {
			return
		}
		// A resting claw touching glass is silent and leaves the cooldown alone.
		volume := glassHitIntensity(w, claw)
		if volume <= 0 {
			continue
		}
		s.hit = true
		s.lastHit = now
		RequestCue(w, component.AudioCue{
			Channel: component.ChannelGlass,
			Pool:    component.PoolGlass,
			Volume:  volume,
		})
		return
	}
}

func glassHitIntensity(w *ecs.World, claw ecs.Entity) float64 {
	body, ok := ecs.Get(w, claw, component.PhysicsBodyComponent.Kind())
	if !ok || body.Body == nil {
		return 0
	}
	v := body.Body.Velocity()
	return common.Clamp(common.MaxAbs(v.X, v.Y), 0, glassHitMaxIntensity)
}
