package rope

import (
	"fmt"
	"log"
)

// World owns every body, shape and constraint of a simulation and advances
// them with a fixed timestep.
type World struct {
	// Iterations is the number of passes over the pins per sub-step.
	Iterations int
	// Substeps splits every Step so stiff springs stay stable at 60Hz.
	Substeps int

	gravity Vector

	stamp   uint
	curr_dt float64

	dynamicBodies []*Body
	staticBodies  []*Body
	shapes        []*Segment
	constraints   []*Constraint

	bodyIDCounter       int
	constraintIDCounter int

	unstable bool

	StaticBody *Body
}

func NewWorld() *World {
	world := &World{
		Iterations:    10,
		Substeps:      10,
		dynamicBodies: []*Body{},
		staticBodies:  []*Body{},
		shapes:        []*Segment{},
		constraints:   []*Constraint{},
	}
	world.StaticBody = world.AddBody(NewStaticBody())
	return world
}

func (world *World) Gravity() Vector {
	return world.gravity
}

func (world *World) SetGravity(gravity Vector) {
	world.gravity = gravity
}

// TimeStep is the dt passed to the most recent Step.
func (world *World) TimeStep() float64 {
	return world.curr_dt
}

// Stamp counts completed steps.
func (world *World) Stamp() uint {
	return world.stamp
}

func (world *World) AddBody(body *Body) *Body {
	assert(body.world == nil, "Body already added to a world")

	body.id = world.bodyIDCounter
	world.bodyIDCounter++

	if body.GetType() == BODY_STATIC {
		world.staticBodies = append(world.staticBodies, body)
	} else {
		world.dynamicBodies = append(world.dynamicBodies, body)
	}
	body.world = world
	return body
}

func (world *World) AddShape(shape *Segment) *Segment {
	body := shape.Body()
	assert(body.world == world, "The shape's body must be added to the world first")

	body.AddShape(shape)
	shape.CacheData(body.transform)
	world.shapes = append(world.shapes, shape)
	return shape
}

func (world *World) AddConstraint(constraint *Constraint) *Constraint {
	assert(constraint.world == nil, "Constraint already added to a world")
	assert(constraint.a.world == world && constraint.b.world == world, "Constraint bodies must be added to the world first")

	constraint.id = world.constraintIDCounter
	world.constraintIDCounter++

	constraint.a.constraintList = append(constraint.a.constraintList, constraint)
	constraint.b.constraintList = append(constraint.b.constraintList, constraint)

	world.constraints = append(world.constraints, constraint)
	constraint.world = world
	return constraint
}

func (world *World) EachBody(f func(*Body)) {
	for _, body := range world.dynamicBodies {
		f(body)
	}
	for _, body := range world.staticBodies {
		f(body)
	}
}

func (world *World) EachShape(f func(*Segment)) {
	for _, shape := range world.shapes {
		f(shape)
	}
}

func (world *World) EachConstraint(f func(*Constraint)) {
	for _, constraint := range world.constraints {
		f(constraint)
	}
}

// Step advances the world by dt. Each sub-step applies gravity and spring
// forces, integrates velocities then positions (semi-implicit Euler) and
// finally solves the pins.
func (world *World) Step(dt float64) {
	if dt == 0 {
		return
	}

	world.stamp++
	world.curr_dt = dt

	substeps := max(world.Substeps, 1)
	h := dt / float64(substeps)
	for i := 0; i < substeps; i++ {
		world.substep(h)
	}

	for _, shape := range world.shapes {
		shape.CacheData(shape.body.transform)
	}

	if !world.unstable && !world.IsStable() {
		world.unstable = true
		log.Println("World became unstable at step", world.stamp)
	}
}

func (world *World) substep(dt float64) {
	bodies := world.dynamicBodies
	constraints := world.constraints

	gravity := world.gravity
	for _, body := range bodies {
		body.f = body.f.Add(gravity.Mult(body.m))
	}

	for _, constraint := range constraints {
		constraint.Class.ApplyForce(dt)
	}

	for _, body := range bodies {
		body.UpdateVelocity(dt)
	}

	for _, body := range bodies {
		body.UpdatePosition(dt)
	}

	iterations := max(world.Iterations, 1)
	for i := 0; i < iterations; i++ {
		for _, constraint := range constraints {
			constraint.Class.Solve(dt)
		}
	}

	for _, body := range bodies {
		body.f = Vector{}
		body.t = 0
	}
}

// IsStable is false once any dynamic body holds a NaN or infinite value.
// The world does not recover on its own; callers should stop or rebuild it.
func (world *World) IsStable() bool {
	for _, body := range world.dynamicBodies {
		if !body.IsFinite() {
			return false
		}
	}
	return true
}

// RetargetPin moves the static anchor of a pin joint owned by this world.
func (world *World) RetargetPin(constraint *Constraint, target Vector) error {
	if constraint == nil || constraint.world != world {
		return ErrUnknownPin
	}
	joint, ok := constraint.Class.(*PinJoint)
	if !ok {
		return fmt.Errorf("%w: constraint %d", ErrUnknownPin, constraint.id)
	}
	return joint.SetTarget(target)
}

type Energy struct {
	Kinetic, Gravitational, Elastic float64
}

func (e Energy) Total() float64 {
	return e.Kinetic + e.Gravitational + e.Elastic
}

// Energy measures the mechanical energy of the world. Gravitational energy is
// relative to the origin.
func (world *World) Energy() Energy {
	var e Energy
	world.EachBody(func(body *Body) {
		e.Kinetic += body.KineticEnergy()
		e.Gravitational += body.potentialEnergy(world.gravity)
	})
	world.EachConstraint(func(constraint *Constraint) {
		if spring, ok := constraint.Class.(*DampedSpring); ok {
			e.Elastic += spring.PotentialEnergy()
		}
	})
	return e
}

// BodyState is a copy of a dynamic body's state for renderers and comparisons.
type BodyState struct {
	ID              int
	Position        Vector
	Center          Vector
	Velocity        Vector
	Angle           float64
	AngularVelocity float64
}

func (s BodyState) String() string {
	return fmt.Sprintf("body %d p=(%.17g,%.17g) v=(%.17g,%.17g) a=%.17g w=%.17g",
		s.ID, s.Position.X, s.Position.Y, s.Velocity.X, s.Velocity.Y, s.Angle, s.AngularVelocity)
}

// Snapshot returns the state of every dynamic body in insertion order.
func (world *World) Snapshot() []BodyState {
	states := make([]BodyState, 0, len(world.dynamicBodies))
	for _, body := range world.dynamicBodies {
		states = append(states, BodyState{
			ID:              body.id,
			Position:        body.Position(),
			Center:          body.p,
			Velocity:        body.v,
			Angle:           body.a,
			AngularVelocity: body.w,
		})
	}
	return states
}
