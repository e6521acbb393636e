package rope

import "math"

// Segment is a capsule from A to B with radius r in body local coordinates.
// It only carries geometry for rendering; nothing collides with it.
type Segment struct {
	body *Body

	A, B   Vector
	ta, tb Vector
	r      float64
	bb     BB

	UserData interface{}
}

func NewSegment(body *Body, a, b Vector, r float64) *Segment {
	seg := &Segment{
		body: body,
		A:    a,
		B:    b,
		r:    r,
	}
	seg.CacheData(body.transform)
	return seg
}

// NewSegmentBody creates a dynamic body for a uniform rod of the given mass and
// length whose origin sits at position. The rod extends +length along local x
// and its center of gravity is the rod's midpoint.
func NewSegmentBody(mass, length float64, position Vector) *Body {
	body := NewBody(mass, MomentForSegment(mass, length))
	body.SetCenterOfGravity(Vector{length / 2, 0})
	body.SetPosition(position)
	return body
}

func (seg *Segment) Body() *Body {
	return seg.body
}

func (seg *Segment) Radius() float64 {
	return seg.r
}

func (seg *Segment) Length() float64 {
	return seg.A.Distance(seg.B)
}

// CacheData updates the world endpoints and bounding box for transform.
func (seg *Segment) CacheData(transform Transform) BB {
	seg.ta = transform.Point(seg.A)
	seg.tb = transform.Point(seg.B)

	rad := seg.r
	seg.bb = BB{
		math.Min(seg.ta.X, seg.tb.X) - rad,
		math.Min(seg.ta.Y, seg.tb.Y) - rad,
		math.Max(seg.ta.X, seg.tb.X) + rad,
		math.Max(seg.ta.Y, seg.tb.Y) + rad,
	}
	return seg.bb
}

// BB is the capsule's bounding box as of the last step.
func (seg *Segment) BB() BB {
	return seg.bb
}

// WorldEndpoints returns the endpoints cached by the last step.
func (seg *Segment) WorldEndpoints() (Vector, Vector) {
	return seg.ta, seg.tb
}
