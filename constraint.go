package rope

// Constrainer is implemented by every constraint kind. A World calls
// ApplyForce for all constraints before integrating velocities and Solve for
// all constraints after integrating positions.
type Constrainer interface {
	ApplyForce(dt float64)
	Solve(dt float64)
	GetImpulse() float64
}

type Constraint struct {
	Class Constrainer
	world *World
	id    int

	a, b *Body

	UserData interface{}
}

func NewConstraint(class Constrainer, a, b *Body) *Constraint {
	assert(a != nil && b != nil, "Constraints need two bodies, use the world's static body for fixed anchors")
	assert(a != b, "Cannot constrain a body to itself")
	return &Constraint{
		Class: class,
		id:    -1,
		a:     a,
		b:     b,
	}
}

func (c *Constraint) ID() int {
	return c.id
}

func (c *Constraint) World() *World {
	return c.world
}

func (c *Constraint) BodyA() *Body {
	return c.a
}

func (c *Constraint) BodyB() *Body {
	return c.b
}

func relative_velocity(a, b *Body, r1, r2 Vector) Vector {
	v1_sum := a.v.Add(r1.Perp().Mult(a.w))
	v2_sum := b.v.Add(r2.Perp().Mult(b.w))
	return v2_sum.Sub(v1_sum)
}

func normal_relative_velocity(a, b *Body, r1, r2, n Vector) float64 {
	return relative_velocity(a, b, r1, r2).Dot(n)
}

func apply_impulses(a, b *Body, r1, r2, j Vector) {
	apply_impulse(a, j.Neg(), r1)
	apply_impulse(b, j, r2)
}

// k_tensor returns the inverse of the effective mass matrix seen by a point
// constraint with lever arms r1 and r2.
func k_tensor(a, b *Body, r1, r2 Vector) Mat2x2 {
	m_sum := a.m_inv + b.m_inv

	// start with Identity*m_sum
	k11 := m_sum
	k12 := 0.0
	k21 := 0.0
	k22 := m_sum

	// add the influence from r1
	a_i_inv := a.i_inv
	r1xsq := r1.X * r1.X * a_i_inv
	r1ysq := r1.Y * r1.Y * a_i_inv
	r1nxy := -r1.X * r1.Y * a_i_inv
	k11 += r1ysq
	k12 += r1nxy
	k21 += r1nxy
	k22 += r1xsq

	// add the influence from r2
	b_i_inv := b.i_inv
	r2xsq := r2.X * r2.X * b_i_inv
	r2ysq := r2.Y * r2.Y * b_i_inv
	r2nxy := -r2.X * r2.Y * b_i_inv
	k11 += r2ysq
	k12 += r2nxy
	k21 += r2nxy
	k22 += r2xsq

	// invert
	det := k11*k22 - k12*k21
	assert(det != 0.0, "Unsolvable constraint")

	det_inv := 1.0 / det
	return Mat2x2{
		k22 * det_inv, -k12 * det_inv,
		-k21 * det_inv, k11 * det_inv,
	}
}
