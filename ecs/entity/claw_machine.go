package entity

import (
	"fmt"
	"math"

	"github.com/milk9111/clawmachine/ecs"
	"github.com/milk9111/clawmachine/ecs/component"
	"github.com/milk9111/clawmachine/prefabs"
)

// Machine holds the entities of a built claw machine.
type Machine struct {
	Controller ecs.Entity
	Lift       ecs.Entity
	Claw       ecs.Entity
	Sensor     ecs.Entity
	Stopper    ecs.Entity
	Glass      []ecs.Entity
	Shelves    []ecs.Entity
	Toys       []ecs.Entity
	ToySensors []ecs.Entity
}

type componentAdder func(w *ecs.World, e ecs.Entity) error

func with[T any](kind component.ComponentKind[T], value *T) componentAdder {
	return func(w *ecs.World, e ecs.Entity) error {
		return ecs.Add(w, e, kind, value)
	}
}

// spawn creates one entity from adders. The entity is destroyed again when
// any component fails to attach.
func spawn(w *ecs.World, name string, adders ...componentAdder) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	for _, add := range adders {
		if err := add(w, e); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("claw machine: spawn %s: %w", name, err)
		}
	}
	return e, nil
}

// BuildClawMachine spawns the cabinet, the claw rig and the toys described
// by spec, plus the world singletons the systems read.
func BuildClawMachine(w *ecs.World, spec *prefabs.MachineSpec) (*Machine, error) {
	if w == nil {
		return nil, fmt.Errorf("claw machine: world is nil")
	}
	if spec == nil {
		return nil, fmt.Errorf("claw machine: spec is nil")
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("claw machine: %w", err)
	}

	if err := buildSingletons(w, spec); err != nil {
		return nil, err
	}

	m := &Machine{}
	var err error
	if m.Glass, err = buildGlass(w, spec.Glass); err != nil {
		return nil, err
	}
	if m.Shelves, err = buildShelves(w, spec.Glass, spec.Shelf); err != nil {
		return nil, err
	}
	if err := buildClaw(w, spec, m); err != nil {
		return nil, err
	}
	for _, toy := range spec.Toys {
		body, sensor, err := buildToy(w, toy)
		if err != nil {
			return nil, err
		}
		m.Toys = append(m.Toys, body)
		m.ToySensors = append(m.ToySensors, sensor)
	}
	return m, nil
}

func buildSingletons(w *ecs.World, spec *prefabs.MachineSpec) error {
	settings := sessionSettings(spec.Session)
	singletons := []struct {
		name string
		add  componentAdder
		has  func() bool
	}{
		{"time", with(component.TimeComponent.Kind(), &component.Time{}), func() bool { return ecs.Count(w, component.TimeComponent.Kind()) > 0 }},
		{"input", with(component.InputComponent.Kind(), &component.Input{}), func() bool { return ecs.Count(w, component.InputComponent.Kind()) > 0 }},
		{"game settings", with(component.GameSettingsComponent.Kind(), &settings), func() bool { return ecs.Count(w, component.GameSettingsComponent.Kind()) > 0 }},
		{"diagnostics", with(component.DiagnosticsComponent.Kind(), &component.Diagnostics{InvariantViolations: map[string]int{}}), func() bool {
			return ecs.Count(w, component.DiagnosticsComponent.Kind()) > 0
		}},
	}
	for _, s := range singletons {
		if s.has() {
			continue
		}
		if _, err := spawn(w, s.name, s.add); err != nil {
			return err
		}
	}
	return nil
}

func sessionSettings(s prefabs.SessionSpec) component.GameSettings {
	return component.GameSettings{
		CountdownSeconds: s.CountdownSeconds,
		Speed: component.SpeedGameRules{
			Duration:           s.Speed.Duration,
			AllowManualRelease: s.Speed.AllowManualRelease,
		},
		Number: component.NumberGameRules{
			Duration:           s.Number.Duration,
			HeartbeatAt:        s.Number.HeartbeatAt,
			AllowManualRelease: s.Number.AllowManualRelease,
		},
	}
}

// glassPanes returns the four panes of the cabinet as centre and size.
// Index 2 is the bottom pane.
func glassPanes(g prefabs.GlassSpec) [4][4]float64 {
	t := g.Thickness
	if t <= 0 {
		t = 0.02
	}
	outerW := 2 * (g.HalfWidth + 2*t)
	outerH := 2 * (g.HalfHeight + 2*t)
	return [4][4]float64{
		{g.CenterX + g.HalfWidth + t, g.CenterY, 2 * t, outerH},
		{g.CenterX - g.HalfWidth - t, g.CenterY, 2 * t, outerH},
		{g.CenterX, g.CenterY - g.HalfHeight - t, outerW, 2 * t},
		{g.CenterX, g.CenterY + g.HalfHeight + t, outerW, 2 * t},
	}
}

func buildGlass(w *ecs.World, g prefabs.GlassSpec) ([]ecs.Entity, error) {
	var panes []ecs.Entity
	for i, p := range glassPanes(g) {
		bottom := i == 2
		category := component.LayerGlass
		if bottom {
			category = component.LayerBottomGlass
		}
		e, err := spawn(w, fmt.Sprintf("glass pane %d", i),
			with(component.TransformComponent.Kind(), &component.Transform{X: p[0], Y: p[1]}),
			with(component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
				Kind:     component.BodyStatic,
				Width:    p[2],
				Height:   p[3],
				Friction: g.Friction,
			}),
			with(component.CollisionLayerComponent.Kind(), &component.CollisionLayer{Category: category, Mask: component.LayerAll}),
			with(component.GlassComponent.Kind(), &component.Glass{Bottom: bottom}),
		)
		if err != nil {
			return nil, err
		}
		panes = append(panes, e)
	}
	return panes, nil
}

// buildShelves places an inclined copy of the bottom pane and a flat one
// below it. They only catch ejected toys.
func buildShelves(w *ecs.World, g prefabs.GlassSpec, s prefabs.ShelfSpec) ([]ecs.Entity, error) {
	floor := glassPanes(g)[2]
	placements := []component.Transform{
		{X: floor[0] + s.OffsetX, Y: floor[1], Rotation: s.AngleDegrees * math.Pi / 180},
		{X: floor[0], Y: floor[1] - s.Drop},
	}

	var shelves []ecs.Entity
	for i, tr := range placements {
		e, err := spawn(w, fmt.Sprintf("shelf %d", i),
			with(component.TransformComponent.Kind(), &tr),
			with(component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
				Kind:   component.BodyStatic,
				Width:  floor[2],
				Height: floor[3],
			}),
			with(component.CollisionLayerComponent.Kind(), &component.CollisionLayer{
				Category: component.LayerEjectionShelf,
				Mask:     component.LayerEjectedToy,
			}),
		)
		if err != nil {
			return nil, err
		}
		shelves = append(shelves, e)
	}
	return shelves, nil
}

func buildClaw(w *ecs.World, spec *prefabs.MachineSpec, m *Machine) error {
	c := spec.Controller
	var err error

	m.Controller, err = spawn(w, "claw controller",
		with(component.TransformComponent.Kind(), &component.Transform{X: c.BaseX, Y: c.BaseY}),
		with(component.ClawControllerComponent.Kind(), &component.ClawController{
			Mode:      component.ClawLocked,
			BaseX:     c.BaseX,
			BaseY:     c.BaseY,
			Step:      c.Step,
			MoveSpeed: c.MoveSpeed,
			MinX:      c.MinX,
			MaxX:      c.MaxX,
		}),
	)
	if err != nil {
		return err
	}

	l := spec.Lift
	m.Lift, err = spawn(w, "claw lift",
		with(component.TransformComponent.Kind(), &component.Transform{X: c.BaseX, Y: l.StartHeight}),
		with(component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Kind: component.BodyKinematic, Shapeless: true}),
		with(component.ClawLiftComponent.Kind(), &component.ClawLift{
			State:        component.LiftOff,
			StartHeight:  l.StartHeight,
			Speed:        l.Speed,
			DwellSeconds: l.DwellSeconds,
		}),
	)
	if err != nil {
		return err
	}

	cl := spec.Claw
	clawY := l.StartHeight - cl.HangLength
	m.Claw, err = spawn(w, "claw object",
		with(component.TransformComponent.Kind(), &component.Transform{X: c.BaseX, Y: clawY}),
		with(component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
			Kind:       component.BodyDynamic,
			Width:      2 * cl.HalfExtent,
			Height:     2 * cl.HalfExtent,
			Mass:       cl.Mass,
			Elasticity: cl.Restitution,
			Damping:    cl.Damping,
		}),
		with(component.CollisionLayerComponent.Kind(), &component.CollisionLayer{
			Category: component.LayerClaw,
			Mask:     component.LayerGlass,
		}),
		with(component.ClawObjectComponent.Kind(), &component.ClawObject{}),
		with(component.JointRequestComponent.Kind(), &component.JointRequest{
			Kind:         component.JointSpherical,
			Other:        m.Lift.Ref(),
			OtherAnchorY: -cl.HangLength,
		}),
	)
	if err != nil {
		return err
	}

	m.Sensor, err = spawn(w, "claw sensor",
		with(component.TransformComponent.Kind(), &component.Transform{X: c.BaseX, Y: clawY + cl.SensorOffsetY}),
		with(component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
			Parent:  m.Claw.Ref(),
			Radius:  cl.SensorRadius,
			Sensor:  true,
			OffsetY: cl.SensorOffsetY,
		}),
		with(component.CollisionLayerComponent.Kind(), &component.CollisionLayer{
			Category: component.LayerAll,
			Mask:     component.LayerAll &^ (component.LayerClaw | component.LayerClawStopper),
		}),
		with(component.ClawSensorComponent.Kind(), &component.ClawSensor{}),
	)
	if err != nil {
		return err
	}

	st := spec.Stopper
	m.Stopper, err = spawn(w, "claw stopper",
		with(component.TransformComponent.Kind(), &component.Transform{X: c.BaseX, Y: clawY + st.OffsetY}),
		with(component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
			Kind:   component.BodyDynamic,
			Width:  2 * st.HalfWidth,
			Height: 2 * st.HalfHeight,
			Mass:   st.Mass,
		}),
		with(component.CollisionLayerComponent.Kind(), &component.CollisionLayer{
			Category: component.LayerClawStopper,
			Mask:     component.LayerAll &^ component.LayerClaw,
		}),
		with(component.ClawStopperComponent.Kind(), &component.ClawStopper{}),
		with(component.JointRequestComponent.Kind(), &component.JointRequest{
			Kind:         component.JointFixed,
			Other:        m.Claw.Ref(),
			OtherAnchorY: st.OffsetY,
		}),
	)
	return err
}

func buildToy(w *ecs.World, spec prefabs.ToySpec) (ecs.Entity, ecs.Entity, error) {
	name := spec.Name
	if name == "" {
		name = "toy"
	}
	body, err := spawn(w, name,
		with(component.TransformComponent.Kind(), &component.Transform{X: spec.X, Y: spec.Y}),
		with(component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
			Kind:     component.BodyDynamic,
			Radius:   spec.Radius,
			Mass:     spec.Mass,
			Friction: spec.Friction,
		}),
		with(component.ToyComponent.Kind(), &component.Toy{Name: name}),
	)
	if err != nil {
		return 0, 0, err
	}

	// The stopper must not trip on the probe region, only on the toy body.
	sensor, err := spawn(w, name+" sensor",
		with(component.TransformComponent.Kind(), &component.Transform{X: spec.X, Y: spec.Y}),
		with(component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
			Parent: body.Ref(),
			Radius: spec.SensorRadius,
			Sensor: true,
		}),
		with(component.CollisionLayerComponent.Kind(), &component.CollisionLayer{
			Category: component.LayerAll,
			Mask:     component.LayerAll &^ component.LayerClawStopper,
		}),
		with(component.ToySensorComponent.Kind(), &component.ToySensor{Toy: body.Ref()}),
	)
	if err != nil {
		ecs.DestroyEntity(w, body)
		return 0, 0, err
	}
	return body, sensor, nil
}

// ApplyTuning re-applies the tunable values of spec to a running machine:
// controller and lift rates, and the session rules used by the next
// session. Geometry is left alone.
func ApplyTuning(w *ecs.World, spec *prefabs.MachineSpec) error {
	if w == nil || spec == nil {
		return fmt.Errorf("claw machine: apply tuning: nil world or spec")
	}
	if err := spec.Validate(); err != nil {
		return fmt.Errorf("claw machine: apply tuning: %w", err)
	}

	ecs.ForEach(w, component.ClawControllerComponent.Kind(), func(_ ecs.Entity, ctrl *component.ClawController) {
		ctrl.Step = spec.Controller.Step
		ctrl.MoveSpeed = spec.Controller.MoveSpeed
		ctrl.MinX = spec.Controller.MinX
		ctrl.MaxX = spec.Controller.MaxX
	})
	ecs.ForEach(w, component.ClawLiftComponent.Kind(), func(_ ecs.Entity, lift *component.ClawLift) {
		lift.Speed = spec.Lift.Speed
		lift.DwellSeconds = spec.Lift.DwellSeconds
	})
	ecs.ForEach(w, component.GameSettingsComponent.Kind(), func(_ ecs.Entity, s *component.GameSettings) {
		mode := s.Mode
		*s = sessionSettings(spec.Session)
		s.Mode = mode
	})
	return nil
}
