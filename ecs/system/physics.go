package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/clawmachine/ecs"
	"github.com/milk9111/clawmachine/ecs/component"
)

const collisionTypeBody cp.CollisionType = 1

// DefaultGravity pulls along -Y in metres per second squared.
const DefaultGravity = -9.81

const (
	defaultIterations = 20
	defaultShapeSize  = 0.1
)

// PhysicsSystem mirrors PhysicsBody components into a Chipmunk space, steps
// it and reports collision starts as CollisionStarted events. It also owns
// the joints behind glue relations.
type PhysicsSystem struct {
	space         *cp.Space
	handlersReady bool

	entities map[ecs.Entity]*bodyInfo
	started  []component.CollisionStarted

	joints    map[uint64]*jointInfo
	nextJoint uint64
}

type bodyInfo struct {
	body  *cp.Body
	shape *cp.Shape
	kind  component.BodyKind
	// owned is false for child shapes living on a parent's body.
	owned  bool
	offset cp.Vector
}

type jointInfo struct {
	a, b        *cp.Body
	constraints []*cp.Constraint
}

func NewPhysicsSystem(gravity float64) *PhysicsSystem {
	space := cp.NewSpace()
	space.Iterations = defaultIterations
	space.SetGravity(cp.Vector{X: 0, Y: gravity})
	return &PhysicsSystem{
		space:    space,
		entities: make(map[ecs.Entity]*bodyInfo),
		joints:   make(map[uint64]*jointInfo),
	}
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}
	dt := deltaTime(w)

	ps.ensureHandlers()
	ps.syncEntities(w)
	ps.processJointRequests(w)

	ps.started = ps.started[:0]
	if dt > 0 {
		ps.driveKinematic(w, dt)
		ps.space.Step(dt)
	}

	ps.syncTransforms(w)
	for _, c := range ps.started {
		ecs.Emit(w, component.CollisionStartedEvent, c)
	}
}

func (ps *PhysicsSystem) ensureHandlers() {
	if ps.handlersReady {
		return
	}

	handler := ps.space.NewCollisionHandler(collisionTypeBody, collisionTypeBody)
	handler.UserData = ps
	handler.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		sys, ok := userData.(*PhysicsSystem)
		if !ok || sys == nil {
			return true
		}
		shapeA, shapeB := arb.Shapes()
		a, okA := shapeA.UserData.(ecs.Entity)
		b, okB := shapeB.UserData.(ecs.Entity)
		if okA && okB {
			sys.started = append(sys.started, component.CollisionStarted{A: entityRef(a), B: entityRef(b)})
		}
		return true
	}

	ps.handlersReady = true
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	ps.cleanupEntities(w)

	// Bodies first so child shapes find their parent in the same pass.
	var children []ecs.Entity
	ecs.ForEach(w, component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, pb *component.PhysicsBody) {
		if _, exists := ps.entities[e]; exists {
			return
		}
		if pb.Parent != 0 {
			children = append(children, e)
			return
		}
		t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			return
		}
		info := ps.createBody(w, e, *t, pb)
		ps.entities[e] = info
		pb.Body = info.body
		pb.Shape = info.shape
	})

	for _, e := range children {
		pb, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		if !ok {
			continue
		}
		parent := ps.entities[entityOf(pb.Parent)]
		if parent == nil || parent.body == nil {
			continue
		}
		offset := cp.Vector{X: pb.OffsetX, Y: pb.OffsetY}
		shape := ps.newShape(w, e, parent.body, pb, offset)
		ps.entities[e] = &bodyInfo{body: parent.body, shape: shape, kind: parent.kind, offset: offset}
		pb.Body = parent.body
		pb.Shape = shape
	}
}

func (ps *PhysicsSystem) createBody(w *ecs.World, e ecs.Entity, t component.Transform, pb *component.PhysicsBody) *bodyInfo {
	var body *cp.Body
	switch pb.Kind {
	case component.BodyStatic:
		body = cp.NewStaticBody()
	case component.BodyKinematic:
		body = cp.NewKinematicBody()
	default:
		mass := pb.Mass
		if mass <= 0 {
			mass = 1
		}
		var moment float64
		if pb.Radius > 0 {
			moment = cp.MomentForCircle(mass, 0, pb.Radius, cp.Vector{})
		} else {
			width, height := shapeSize(pb)
			moment = cp.MomentForBox(mass, width, height)
		}
		body = cp.NewBody(mass, moment)
		if pb.Damping > 0 {
			damping := pb.Damping
			body.SetVelocityUpdateFunc(func(b *cp.Body, gravity cp.Vector, spaceDamping, dt float64) {
				cp.BodyUpdateVelocity(b, gravity, spaceDamping*math.Exp(-damping*dt), dt)
			})
		}
	}

	body.SetPosition(cp.Vector{X: t.X, Y: t.Y})
	body.SetAngle(t.Rotation)
	ps.space.AddBody(body)

	info := &bodyInfo{body: body, kind: pb.Kind, owned: true}
	if !pb.Shapeless {
		info.shape = ps.newShape(w, e, body, pb, cp.Vector{})
	}
	return info
}

func (ps *PhysicsSystem) newShape(w *ecs.World, e ecs.Entity, body *cp.Body, pb *component.PhysicsBody, offset cp.Vector) *cp.Shape {
	var shape *cp.Shape
	if pb.Radius > 0 {
		shape = cp.NewCircle(body, pb.Radius, offset)
	} else {
		width, height := shapeSize(pb)
		bb := cp.BB{L: offset.X - width/2, B: offset.Y - height/2, R: offset.X + width/2, T: offset.Y + height/2}
		shape = cp.NewBox2(body, bb, 0)
	}

	shape.SetFriction(pb.Friction)
	shape.SetElasticity(pb.Elasticity)
	shape.SetSensor(pb.Sensor)
	shape.SetCollisionType(collisionTypeBody)
	shape.SetFilter(shapeFilter(w, e))
	shape.UserData = e

	ps.space.AddShape(shape)
	return shape
}

func shapeSize(pb *component.PhysicsBody) (float64, float64) {
	width, height := pb.Width, pb.Height
	if width <= 0 {
		width = defaultShapeSize
	}
	if height <= 0 {
		height = defaultShapeSize
	}
	return width, height
}

func shapeFilter(w *ecs.World, e ecs.Entity) cp.ShapeFilter {
	layer, ok := ecs.Get(w, e, component.CollisionLayerComponent.Kind())
	if !ok {
		return cp.SHAPE_FILTER_ALL
	}
	category := cp.ALL_CATEGORIES
	if layer.Category != 0 {
		category = uint(layer.Category)
	}
	mask := cp.ALL_CATEGORIES
	if layer.Mask != 0 {
		mask = uint(layer.Mask)
	}
	return cp.NewShapeFilter(cp.NO_GROUP, category, mask)
}

func (ps *PhysicsSystem) processJointRequests(w *ecs.World) {
	ecs.ForEach(w, component.JointRequestComponent.Kind(), func(e ecs.Entity, req *component.JointRequest) {
		if req.Applied {
			return
		}
		a := ps.entities[e]
		b := ps.entities[entityOf(req.Other)]
		if a == nil || b == nil || a.body == b.body {
			return
		}

		anchorA := cp.Vector{X: req.AnchorX, Y: req.AnchorY}
		anchorB := cp.Vector{X: req.OtherAnchorX, Y: req.OtherAnchorY}

		constraints := []*cp.Constraint{cp.NewPivotJoint2(a.body, b.body, anchorA, anchorB)}
		if req.Kind == component.JointFixed {
			constraints = append(constraints, cp.NewGearJoint(a.body, b.body, b.body.Angle()-a.body.Angle(), 1))
		}
		for _, c := range constraints {
			c.SetCollideBodies(false)
			ps.space.AddConstraint(c)
		}

		if err := ecs.Add(w, e, component.JointConstraintsComponent.Kind(), &component.JointConstraints{Constraints: constraints}); err != nil {
			panic("physics system: add joint constraints: " + err.Error())
		}
		req.Applied = true
	})
}

// AddFixedJoint implements Joints.
func (ps *PhysicsSystem) AddFixedJoint(w *ecs.World, holder, target ecs.Entity) (uint64, bool) {
	h := ps.entities[holder]
	t := ps.entities[target]
	if h == nil || t == nil || h.body == t.body {
		return 0, false
	}
	a, b := h.body, t.body

	pivot := cp.NewPivotJoint(a, b, b.Position())
	gear := cp.NewGearJoint(a, b, b.Angle()-a.Angle(), 1)
	for _, c := range []*cp.Constraint{pivot, gear} {
		c.SetCollideBodies(false)
		ps.space.AddConstraint(c)
	}

	ps.nextJoint++
	ps.joints[ps.nextJoint] = &jointInfo{a: a, b: b, constraints: []*cp.Constraint{pivot, gear}}
	return ps.nextJoint, true
}

// RemoveJoint implements Joints.
func (ps *PhysicsSystem) RemoveJoint(id uint64) bool {
	info, ok := ps.joints[id]
	if !ok {
		return false
	}
	for _, c := range info.constraints {
		if ps.space.ContainsConstraint(c) {
			ps.space.RemoveConstraint(c)
		}
	}
	delete(ps.joints, id)
	return true
}

// JointCount implements Joints.
func (ps *PhysicsSystem) JointCount() int {
	return len(ps.joints)
}

func (ps *PhysicsSystem) driveKinematic(w *ecs.World, dt float64) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, _ *component.PhysicsBody, t *component.Transform) {
		info := ps.entities[e]
		if info == nil || !info.owned || info.kind != component.BodyKinematic {
			return
		}
		pos := info.body.Position()
		info.body.SetVelocityVector(cp.Vector{X: (t.X - pos.X) / dt, Y: (t.Y - pos.Y) / dt})
		info.body.SetAngularVelocity((t.Rotation - info.body.Angle()) / dt)
	})
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, _ *component.PhysicsBody, t *component.Transform) {
		info := ps.entities[e]
		if info == nil || info.kind != component.BodyDynamic {
			return
		}
		pos := info.body.Position()
		if !info.owned {
			pos = info.body.LocalToWorld(info.offset)
		}
		t.X = pos.X
		t.Y = pos.Y
		t.Rotation = info.body.Angle()
	})
}

func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	var removed []*cp.Body
	for e, info := range ps.entities {
		if ecs.IsAlive(w, e) && ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) {
			continue
		}
		if info.owned {
			removed = append(removed, info.body)
		} else if info.shape != nil && ps.space.ContainsShape(info.shape) {
			ps.space.RemoveShape(info.shape)
		}
		delete(ps.entities, e)
	}

	for _, body := range removed {
		ps.removeBody(body)
	}
}

// removeBody takes a body out of the space together with every shape and
// constraint attached to it, including child shapes of other entities.
func (ps *PhysicsSystem) removeBody(body *cp.Body) {
	var shapes []*cp.Shape
	body.EachShape(func(s *cp.Shape) { shapes = append(shapes, s) })
	for _, s := range shapes {
		ps.space.RemoveShape(s)
	}

	var constraints []*cp.Constraint
	body.EachConstraint(func(c *cp.Constraint) { constraints = append(constraints, c) })
	for _, c := range constraints {
		ps.space.RemoveConstraint(c)
	}
	for id, joint := range ps.joints {
		if joint.a == body || joint.b == body {
			delete(ps.joints, id)
		}
	}

	for e, info := range ps.entities {
		if info.body == body {
			delete(ps.entities, e)
		}
	}
	if ps.space.ContainsBody(body) {
		ps.space.RemoveBody(body)
	}
}
