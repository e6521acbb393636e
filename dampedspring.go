package rope

import "math"

type DampedSpring struct {
	*Constraint

	AnchorA, AnchorB               Vector
	RestLength, Stiffness, Damping float64

	r1, r2 Vector
	n      Vector
	dist   float64

	// force applied along n during the last sub-step, positive when pulling
	// the bodies together
	force float64
	dt    float64
}

func NewDampedSpring(a, b *Body, anchorA, anchorB Vector, restLength, stiffness, damping float64) *Constraint {
	assert(restLength > 0, "Rest length must be positive")
	assert(stiffness >= 0 && damping >= 0, "Stiffness and damping must not be negative")

	spring := &DampedSpring{
		AnchorA:    anchorA,
		AnchorB:    anchorB,
		RestLength: restLength,
		Stiffness:  stiffness,
		Damping:    damping,
	}
	spring.Constraint = NewConstraint(spring, a, b)
	return spring.Constraint
}

func (spring *DampedSpring) ApplyForce(dt float64) {
	a := spring.a
	b := spring.b
	spring.dt = dt

	spring.r1 = a.transform.Vect(spring.AnchorA.Sub(a.cog))
	spring.r2 = b.transform.Vect(spring.AnchorB.Sub(b.cog))

	delta := b.p.Add(spring.r2).Sub(a.p.Add(spring.r1))
	dist := delta.Length()
	spring.dist = dist
	if dist != 0 {
		spring.n = delta.Mult(1.0 / dist)
	} else {
		// coincident anchors have no axis to push along
		spring.n = Vector{}
		spring.force = 0
		return
	}

	// opening speed along the axis, negative while closing
	vrn := normal_relative_velocity(a, b, spring.r1, spring.r2, spring.n)

	spring.force = (dist-spring.RestLength)*spring.Stiffness + spring.Damping*vrn
	f := spring.n.Mult(spring.force)
	a.ApplyForceAtWorldPoint(f, a.p.Add(spring.r1))
	b.ApplyForceAtWorldPoint(f.Neg(), b.p.Add(spring.r2))
}

func (spring *DampedSpring) Solve(dt float64) {
	// nothing to do here
}

// GetImpulse is the magnitude of the impulse the spring delivered to each
// body during the last sub-step.
func (spring *DampedSpring) GetImpulse() float64 {
	return math.Abs(spring.force) * spring.dt
}

// Force is the signed tension from the last step: positive when the spring
// pulls its bodies together.
func (spring *DampedSpring) Force() float64 {
	return spring.force
}

// Length is the anchor separation measured at the last step.
func (spring *DampedSpring) Length() float64 {
	return spring.dist
}

// WorldAnchors returns the current world positions of both anchors.
func (spring *DampedSpring) WorldAnchors() (Vector, Vector) {
	return spring.a.LocalToWorld(spring.AnchorA), spring.b.LocalToWorld(spring.AnchorB)
}

// PotentialEnergy of the elastic part at the current anchor positions.
func (spring *DampedSpring) PotentialEnergy() float64 {
	pa, pb := spring.WorldAnchors()
	stretch := pa.Distance(pb) - spring.RestLength
	return 0.5 * spring.Stiffness * stretch * stretch
}
