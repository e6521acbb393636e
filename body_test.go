package rope

import (
	"math"
	"testing"
)

func near(a, b Vector, eps float64) bool {
	return a.Distance(b) < eps
}

func TestNewSegmentBody(t *testing.T) {
	body := NewSegmentBody(2, 30, Vector{100, 50})

	if body.Mass() != 2 {
		t.Errorf("Expected mass 2, got %v", body.Mass())
	}
	if body.Moment() != 150 {
		t.Errorf("Expected thin rod moment 150, got %v", body.Moment())
	}
	if !near(body.Position(), Vector{100, 50}, 1e-12) {
		t.Errorf("Expected origin at 100,50 got %v", body.Position())
	}
	if !near(body.CenterPosition(), Vector{115, 50}, 1e-12) {
		t.Errorf("Expected center at 115,50 got %v", body.CenterPosition())
	}
	if !near(body.LocalToWorld(Vector{30, 0}), Vector{130, 50}, 1e-12) {
		t.Errorf("Expected far end at 130,50 got %v", body.LocalToWorld(Vector{30, 0}))
	}
}

func TestNewBodyRejectsNonPositiveMass(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected a panic for zero mass")
		}
	}()
	NewBody(0, 1)
}

func TestBodyUpdatePosition(t *testing.T) {
	body := NewSegmentBody(1, 30, Vector{0, 0})
	body.SetAngularVelocity(math.Pi / 2)

	body.UpdatePosition(1)

	if math.Abs(body.Angle()-math.Pi/2) > 1e-12 {
		t.Errorf("Expected quarter turn, got %v", body.Angle())
	}
	// rotates about the center of gravity, not the origin
	if !near(body.CenterPosition(), Vector{15, 0}, 1e-12) {
		t.Errorf("Center moved to %v", body.CenterPosition())
	}
	if !near(body.Position(), Vector{15, -15}, 1e-9) {
		t.Errorf("Expected origin at 15,-15 got %v", body.Position())
	}
}

func TestBodyUpdateVelocity(t *testing.T) {
	body := NewSegmentBody(2, 30, Vector{0, 0})
	body.ApplyForceAtWorldPoint(Vector{0, 10}, body.LocalToWorld(Vector{30, 0}))

	if body.Torque() != 150 {
		t.Errorf("Expected torque 150, got %v", body.Torque())
	}

	body.UpdateVelocity(0.5)

	if !near(body.Velocity(), Vector{0, 2.5}, 1e-12) {
		t.Errorf("Expected velocity 0,2.5 got %v", body.Velocity())
	}
	if math.Abs(body.AngularVelocity()-0.5) > 1e-12 {
		t.Errorf("Expected angular velocity 0.5, got %v", body.AngularVelocity())
	}
	if body.Force() != (Vector{}) || body.Torque() != 0 {
		t.Error("Expected accumulators to be cleared")
	}
}

func TestStaticBodyIgnoresForces(t *testing.T) {
	body := NewStaticBody()
	body.ApplyForceAtWorldPoint(Vector{100, 100}, Vector{1, 1})
	body.UpdateVelocity(1)
	body.UpdatePosition(1)

	if body.Position() != (Vector{}) || body.Velocity() != (Vector{}) {
		t.Errorf("Static body moved: %v %v", body.Position(), body.Velocity())
	}
	if body.KineticEnergy() != 0 {
		t.Error("Static bodies have no kinetic energy")
	}
}

func TestBodyVelocityAtLocalPoint(t *testing.T) {
	body := NewSegmentBody(1, 30, Vector{0, 0})
	body.SetVelocity(1, 0)
	body.SetAngularVelocity(2)

	// far end is 15 to the right of the center, so spinning adds 30 upwards
	v := body.VelocityAtLocalPoint(Vector{30, 0})
	if !near(v, Vector{1, 30}, 1e-12) {
		t.Errorf("Expected 1,30 got %v", v)
	}
}

func TestBodyKineticEnergy(t *testing.T) {
	body := NewSegmentBody(2, 30, Vector{0, 0})
	body.SetVelocity(3, 4)
	body.SetAngularVelocity(1)

	// 0.5*2*25 + 0.5*150*1
	if e := body.KineticEnergy(); math.Abs(e-100) > 1e-12 {
		t.Errorf("Expected 100, got %v", e)
	}
}
