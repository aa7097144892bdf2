package system

import (
	"fmt"

	"github.com/milk9111/clawmachine/ecs"
	"github.com/milk9111/clawmachine/ecs/component"
)

// Joints creates and removes the rigid joints backing glue relations.
// PhysicsSystem implements it on a Chipmunk space.
type Joints interface {
	// AddFixedJoint joins holder to target, using the holder's current
	// orientation as the reference frame and the target's position as anchor.
	AddFixedJoint(w *ecs.World, holder, target ecs.Entity) (uint64, bool)
	RemoveJoint(id uint64) bool
	JointCount() int
}

// Attach glues holder to target. The joint is created by the next glue pass.
func Attach(w *ecs.World, holder, target ecs.Entity) error {
	if holder == target {
		return fmt.Errorf("glue: attach %v to itself", holder)
	}
	if !ecs.IsAlive(w, target) {
		return fmt.Errorf("glue: attach %v: %w", target, component.ErrEntityNotAlive)
	}
	if err := ecs.Add(w, holder, component.GlueComponent.Kind(), &component.Glue{Target: entityRef(target)}); err != nil {
		return fmt.Errorf("glue: attach %v: %w", holder, err)
	}
	return nil
}

// Detach removes holder's glue relation. The joint goes away in the glue
// pass of the same tick.
func Detach(w *ecs.World, holder ecs.Entity) bool {
	return ecs.Remove(w, holder, component.GlueComponent.Kind())
}

// GlueSystem keeps joints in step with glue relations. It first removes
// joints whose relation is gone, retargeted or whose entities died, then
// creates one joint for every relation that lacks one.
type GlueSystem struct {
	joints Joints
	links  map[ecs.Entity]component.GlueJoint
}

func NewGlueSystem(joints Joints) *GlueSystem {
	return &GlueSystem{
		joints: joints,
		links:  make(map[ecs.Entity]component.GlueJoint),
	}
}

func (s *GlueSystem) Update(w *ecs.World) {
	if w == nil || s.joints == nil {
		return
	}
	s.detachPass(w)
	s.attachPass(w)
}

func (s *GlueSystem) detachPass(w *ecs.World) {
	for holder, link := range s.links {
		if glue, ok := ecs.Get(w, holder, component.GlueComponent.Kind()); ok &&
			glue.Target == link.Target && ecs.IsAlive(w, entityOf(link.Target)) {
			continue
		}
		s.joints.RemoveJoint(link.Joint)
		delete(s.links, holder)
		ecs.Remove(w, holder, component.GlueJointComponent.Kind())
	}
}

func (s *GlueSystem) attachPass(w *ecs.World) {
	ecs.ForEach(w, component.GlueComponent.Kind(), func(holder ecs.Entity, glue *component.Glue) {
		if _, ok := s.links[holder]; ok {
			return
		}
		target := entityOf(glue.Target)
		if !ecs.IsAlive(w, target) {
			return
		}
		id, ok := s.joints.AddFixedJoint(w, holder, target)
		if !ok {
			return
		}
		link := component.GlueJoint{Target: glue.Target, Joint: id}
		s.links[holder] = link
		_ = ecs.Add(w, holder, component.GlueJointComponent.Kind(), &link)
	})
}
