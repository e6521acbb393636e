package rope

import "fmt"

// body types
const (
	BODY_DYNAMIC = iota
	BODY_STATIC
)

type Body struct {
	id       int
	bodyType int

	// mass and it's inverse
	m     float64
	m_inv float64

	// moment of inertia and it's inverse
	i     float64
	i_inv float64

	// center of gravity
	cog Vector

	// position, velocity, force
	p Vector
	v Vector
	f Vector

	// Angle, angular velocity, torque (radians)
	a float64
	w float64
	t float64

	transform Transform

	UserData interface{}

	world *World

	shapeList      []*Segment
	constraintList []*Constraint
}

func (b Body) String() string {
	return fmt.Sprint("Body ", b.id)
}

func NewBody(mass, moment float64) *Body {
	assert(mass > 0 && moment > 0, "Body's mass and moment must be positive")

	body := &Body{
		id:        -1,
		bodyType:  BODY_DYNAMIC,
		transform: NewTransformIdentity(),
	}
	body.SetMass(mass)
	body.SetMoment(moment)
	body.SetAngle(0)
	return body
}

// NewStaticBody returns an infinite mass body. Static bodies are skipped by
// integration and never moved by constraints.
func NewStaticBody() *Body {
	return &Body{
		id:        -1,
		bodyType:  BODY_STATIC,
		m:         INFINITY,
		i:         INFINITY,
		transform: NewTransformIdentity(),
	}
}

func (body *Body) ID() int {
	return body.id
}

func (body *Body) GetType() int {
	return body.bodyType
}

func (body *Body) IsStatic() bool {
	return body.bodyType == BODY_STATIC
}

func (body *Body) Mass() float64 {
	return body.m
}

func (body *Body) SetMass(mass float64) {
	assert(body.bodyType == BODY_DYNAMIC, "Static bodies have infinite mass")
	body.m = mass
	body.m_inv = 1 / mass
}

func (body *Body) Moment() float64 {
	return body.i
}

func (body *Body) SetMoment(moment float64) {
	assert(body.bodyType == BODY_DYNAMIC, "Static bodies have infinite moment")
	body.i = moment
	body.i_inv = 1 / moment
}

func (body *Body) CenterOfGravity() Vector {
	return body.cog
}

// SetCenterOfGravity moves the center of gravity in body local coordinates
// while keeping the body's origin where it is.
func (body *Body) SetCenterOfGravity(cog Vector) {
	pos := body.Position()
	body.cog = cog
	body.SetPosition(pos)
}

func (body *Body) Angle() float64 {
	return body.a
}

func (body *Body) SetAngle(angle float64) {
	body.a = angle
	body.SetTransform(body.p, angle)
}

// Position is the world position of the body's origin.
func (body *Body) Position() Vector {
	return body.transform.Point(Vector{})
}

func (body *Body) SetPosition(position Vector) {
	body.p = body.transform.Vect(body.cog).Add(position)
	body.SetTransform(body.p, body.a)
}

// CenterPosition is the world position of the center of gravity.
func (body *Body) CenterPosition() Vector {
	return body.p
}

func (body *Body) Velocity() Vector {
	return body.v
}

func (body *Body) SetVelocity(x, y float64) {
	body.v = Vector{x, y}
}

func (body *Body) SetVelocityVector(v Vector) {
	body.v = v
}

func (body *Body) AngularVelocity() float64 {
	return body.w
}

func (body *Body) SetAngularVelocity(angularVelocity float64) {
	body.w = angularVelocity
}

func (body *Body) Force() Vector {
	return body.f
}

func (body *Body) SetForce(force Vector) {
	body.f = force
}

func (body *Body) Torque() float64 {
	return body.t
}

func (body *Body) SetTransform(p Vector, a float64) {
	rot := ForAngle(a)
	c := body.cog

	body.transform = NewTransformTranspose(
		rot.X, -rot.Y, p.X-(c.X*rot.X-c.Y*rot.Y),
		rot.Y, rot.X, p.Y-(c.X*rot.Y+c.Y*rot.X),
	)
}

func (body *Body) Transform() Transform {
	return body.transform
}

func (body *Body) WorldToLocal(point Vector) Vector {
	return NewTransformRigidInverse(body.transform).Point(point)
}

func (body *Body) LocalToWorld(point Vector) Vector {
	return body.transform.Point(point)
}

func (body *Body) ApplyForceAtWorldPoint(force, point Vector) {
	if body.bodyType == BODY_STATIC {
		return
	}
	body.f = body.f.Add(force)

	r := point.Sub(body.transform.Point(body.cog))
	body.t += r.Cross(force)
}

func (body *Body) VelocityAtLocalPoint(point Vector) Vector {
	r := body.transform.Vect(point.Sub(body.cog))
	return body.v.Add(r.Perp().Mult(body.w))
}

// KineticEnergy is the translational plus rotational kinetic energy.
func (body *Body) KineticEnergy() float64 {
	if body.bodyType == BODY_STATIC {
		return 0
	}
	return 0.5*body.m*body.v.Dot(body.v) + 0.5*body.i*body.w*body.w
}

// IsFinite reports whether the body's state is free of NaN and infinities.
func (body *Body) IsFinite() bool {
	return body.p.IsFinite() && body.v.IsFinite() && isFinite(body.a) && isFinite(body.w)
}

func (body *Body) UpdateVelocity(dt float64) {
	if body.bodyType == BODY_STATIC {
		return
	}

	body.v = body.v.Add(body.f.Mult(body.m_inv * dt))
	body.w = body.w + body.t*body.i_inv*dt

	body.f = Vector{}
	body.t = 0
}

func (body *Body) UpdatePosition(dt float64) {
	if body.bodyType == BODY_STATIC {
		return
	}

	body.p = body.p.Add(body.v.Mult(dt))
	body.a = body.a + body.w*dt
	body.SetTransform(body.p, body.a)
}

// translate shifts the center of gravity and rotates by da without touching
// velocities. Used by position-level constraint correction.
func (body *Body) translate(dp Vector, da float64) {
	body.p = body.p.Add(dp)
	body.a += da
	body.SetTransform(body.p, body.a)
}

func (body *Body) AddShape(shape *Segment) *Segment {
	body.shapeList = append(body.shapeList, shape)
	return shape
}

func (body *Body) EachShape(f func(*Segment)) {
	for i := 0; i < len(body.shapeList); i++ {
		f(body.shapeList[i])
	}
}

func (body *Body) EachConstraint(f func(*Constraint)) {
	for i := 0; i < len(body.constraintList); i++ {
		f(body.constraintList[i])
	}
}

func apply_impulse(body *Body, j, r Vector) {
	body.v = body.v.Add(j.Mult(body.m_inv))
	body.w += body.i_inv * r.Cross(j)
}

// MomentForSegment is the moment of inertia of a thin uniform rod about its center.
func MomentForSegment(mass, length float64) float64 {
	return mass * length * length / 12
}

func (body *Body) potentialEnergy(gravity Vector) float64 {
	if body.bodyType == BODY_STATIC {
		return 0
	}
	return -body.m * gravity.Dot(body.p)
}
