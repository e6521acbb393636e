package rope

import "math"

// PinJoint holds an anchor on each body together with zero rest distance.
// Position error left over by integration is removed after every sub-step,
// followed by an impulse that cancels the anchors' relative velocity.
//
// Pins are inelastic: the velocity impulse only ever removes energy.
type PinJoint struct {
	*Constraint
	AnchorA, AnchorB Vector

	r1, r2 Vector
	k      Mat2x2

	jAcc Vector
}

func NewPinJoint(a, b *Body, anchorA, anchorB Vector) *Constraint {
	joint := &PinJoint{
		AnchorA: anchorA,
		AnchorB: anchorB,
	}
	joint.Constraint = NewConstraint(joint, a, b)
	return joint.Constraint
}

func (joint *PinJoint) ApplyForce(dt float64) {
	// nothing to do here
}

func (joint *PinJoint) prepare() Vector {
	a := joint.a
	b := joint.b

	joint.r1 = a.transform.Vect(joint.AnchorA.Sub(a.cog))
	joint.r2 = b.transform.Vect(joint.AnchorB.Sub(b.cog))
	joint.k = k_tensor(a, b, joint.r1, joint.r2)

	return b.p.Add(joint.r2).Sub(a.p.Add(joint.r1))
}

func (joint *PinJoint) Solve(dt float64) {
	a := joint.a
	b := joint.b

	delta := joint.prepare()
	if delta.LengthSq() > pinSlop*pinSlop {
		// Rotate by the linearized solution, limited so a far away target
		// cannot spin a body around, then translate away what is left.
		j := joint.k.Transform(delta.Neg())
		da := -a.i_inv * joint.r1.Cross(j)
		db := b.i_inv * joint.r2.Cross(j)
		if m := math.Max(math.Abs(da), math.Abs(db)); m > maxPinRotation {
			da *= maxPinRotation / m
			db *= maxPinRotation / m
		}
		a.translate(Vector{}, da)
		b.translate(Vector{}, db)

		delta = joint.prepare()
		m_sum := a.m_inv + b.m_inv
		a.translate(delta.Mult(a.m_inv/m_sum), 0)
		b.translate(delta.Mult(-b.m_inv/m_sum), 0)
		joint.prepare()
	}

	vr := relative_velocity(a, b, joint.r1, joint.r2)
	j := joint.k.Transform(vr.Neg())
	joint.jAcc = j
	apply_impulses(a, b, joint.r1, joint.r2, j)
}

func (joint *PinJoint) GetImpulse() float64 {
	return joint.jAcc.Length()
}

// Error is the current world distance between the two anchors.
func (joint *PinJoint) Error() float64 {
	return joint.a.LocalToWorld(joint.AnchorA).Distance(joint.b.LocalToWorld(joint.AnchorB))
}

func (joint *PinJoint) WorldAnchors() (Vector, Vector) {
	return joint.a.LocalToWorld(joint.AnchorA), joint.b.LocalToWorld(joint.AnchorB)
}

// Retargetable pins have a static side whose anchor can be moved.
func (joint *PinJoint) Retargetable() bool {
	return joint.a.IsStatic() || joint.b.IsStatic()
}

// Target is the world position of the static side's anchor.
func (joint *PinJoint) Target() Vector {
	if joint.a.IsStatic() {
		return joint.a.LocalToWorld(joint.AnchorA)
	}
	return joint.b.LocalToWorld(joint.AnchorB)
}

// SetTarget moves the static side's anchor to a new world position.
func (joint *PinJoint) SetTarget(target Vector) error {
	switch {
	case joint.a.IsStatic():
		joint.AnchorA = joint.a.WorldToLocal(target)
	case joint.b.IsStatic():
		joint.AnchorB = joint.b.WorldToLocal(target)
	default:
		return ErrNotRetargetable
	}
	return nil
}

// Attached is the dynamic body held by a retargetable pin along with its
// local anchor.
func (joint *PinJoint) Attached() (*Body, Vector) {
	if joint.a.IsStatic() {
		return joint.b, joint.AnchorB
	}
	return joint.a, joint.AnchorA
}
