package rope

import (
	"errors"
	"math"
	"testing"
)

func TestBuildRope(t *testing.T) {
	tests := []struct {
		count int
		mode  AnchorMode
		pins  int
	}{
		{1, AnchorSingle, 1},
		{1, AnchorDouble, 2},
		{5, AnchorSingle, 1},
		{30, AnchorDouble, 2},
	}
	for _, test := range tests {
		cfg := PresetHanging()
		cfg.SegmentCount = test.count
		cfg.AnchorMode = test.mode

		world := NewWorld()
		rope, err := BuildRope(world, cfg)
		if err != nil {
			t.Fatal(err)
		}

		if len(rope.Bodies) != test.count || len(rope.Shapes) != test.count {
			t.Errorf("%d/%v: expected %d bodies and shapes, got %d and %d", test.count, test.mode, test.count, len(rope.Bodies), len(rope.Shapes))
		}
		if len(rope.Springs) != test.count-1 {
			t.Errorf("%d/%v: expected %d springs, got %d", test.count, test.mode, test.count-1, len(rope.Springs))
		}
		if len(rope.Pins) != test.pins {
			t.Errorf("%d/%v: expected %d pins, got %d", test.count, test.mode, test.pins, len(rope.Pins))
		}
		if (rope.Draggable != nil) != (test.mode == AnchorDouble) {
			t.Errorf("%d/%v: unexpected draggable pin %v", test.count, test.mode, rope.Draggable)
		}

		var constraints int
		world.EachConstraint(func(*Constraint) { constraints++ })
		if constraints != len(rope.Springs)+len(rope.Pins) {
			t.Errorf("%d/%v: world holds %d constraints", test.count, test.mode, constraints)
		}
		if len(world.Snapshot()) != test.count {
			t.Errorf("%d/%v: world holds %d dynamic bodies", test.count, test.mode, len(world.Snapshot()))
		}
	}
}

func TestBuildRopeStartsAtRest(t *testing.T) {
	cfg := PresetDraggable()
	world := NewWorld()
	rope, err := BuildRope(world, cfg)
	if err != nil {
		t.Fatal(err)
	}

	for i, body := range rope.Bodies {
		expected := Vector{cfg.StartPosition.X + float64(i)*cfg.SegmentLength, cfg.StartPosition.Y}
		if !near(body.Position(), expected, 1e-9) {
			t.Errorf("Body %d: expected origin %v, got %v", i, expected, body.Position())
		}
		if body.Angle() != 0 || body.Velocity() != (Vector{}) {
			t.Errorf("Body %d is not at rest", i)
		}
	}
	for i, spring := range rope.Springs {
		if e := spring.Class.(*DampedSpring).PotentialEnergy(); e > 1e-12 {
			t.Errorf("Spring %d starts stretched, energy %v", i, e)
		}
	}
	for i, pin := range rope.Pins {
		if e := pin.Class.(*PinJoint).Error(); e > 1e-9 {
			t.Errorf("Pin %d starts with error %v", i, e)
		}
	}

	joint := rope.Draggable.Class.(*PinJoint)
	if !near(joint.Target(), Vector{700, 100}, 1e-9) {
		t.Errorf("Expected draggable anchor at 700,100 got %v", joint.Target())
	}
	if !near(rope.FreeEnd(), Vector{700, 100}, 1e-9) {
		t.Errorf("Expected free end at 700,100 got %v", rope.FreeEnd())
	}
}

func TestBuildRopeRejectsInvalidConfig(t *testing.T) {
	mutations := map[string]func(*Config){
		"no segments":      func(c *Config) { c.SegmentCount = 0 },
		"zero mass":        func(c *Config) { c.Mass = 0 },
		"negative length":  func(c *Config) { c.SegmentLength = -1 },
		"negative k":       func(c *Config) { c.Stiffness = -1 },
		"negative damping": func(c *Config) { c.Damping = -0.5 },
		"unknown mode":     func(c *Config) { c.AnchorMode = AnchorMode(7) },
		"non finite start": func(c *Config) { c.StartPosition = Vector{math.Inf(1), 0} },
		"nan mass":         func(c *Config) { c.Mass = math.NaN() },
	}
	for name, mutate := range mutations {
		cfg := PresetHanging()
		mutate(&cfg)

		world := NewWorld()
		rope, err := BuildRope(world, cfg)
		if !errors.Is(err, ErrInvalidConfiguration) {
			t.Errorf("%s: expected ErrInvalidConfiguration, got %v", name, err)
		}
		if rope != nil {
			t.Errorf("%s: expected no rope", name)
		}
		if len(world.Snapshot()) != 0 {
			t.Errorf("%s: world was modified", name)
		}
	}
}

func TestNewSimulationRejectsInvalidConfig(t *testing.T) {
	cfg := PresetDraggable()
	cfg.StepRateHz = 0
	if _, err := NewSimulation(cfg); !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("Expected ErrInvalidConfiguration, got %v", err)
	}

	cfg = PresetDraggable()
	cfg.PickRadius = 0
	if _, err := NewSimulation(cfg); !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("Expected ErrInvalidConfiguration, got %v", err)
	}
}

func TestSimulationStep(t *testing.T) {
	sim, err := NewSimulation(PresetHanging())
	if err != nil {
		t.Fatal(err)
	}
	if sim.World.Substeps != 15 || sim.World.Iterations != 10 {
		t.Errorf("Expected world tuning copied from config, got %d/%d", sim.World.Substeps, sim.World.Iterations)
	}

	if sim.Step(nil) {
		t.Error("Expected no quit without events")
	}
	if sim.World.Stamp() != 1 || sim.World.TimeStep() != 1.0/60 {
		t.Errorf("Expected one step of 1/60, got %d of %v", sim.World.Stamp(), sim.World.TimeStep())
	}
	if !sim.Step([]Event{Quit{}}) {
		t.Error("Expected quit")
	}
	if sim.World.Stamp() != 2 {
		t.Error("Expected the quitting frame to still step")
	}
}

func TestConfigPresets(t *testing.T) {
	names := PresetNames()
	if len(names) != 2 || names[0] != "draggable" || names[1] != "hanging" {
		t.Errorf("Unexpected presets %v", names)
	}
	for _, name := range names {
		cfg, err := LookupPreset(name)
		if err != nil {
			t.Fatal(err)
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("Preset %s is invalid: %v", name, err)
		}
	}
	if _, err := LookupPreset("slinky"); !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("Expected ErrInvalidConfiguration, got %v", err)
	}

	if mode, err := ParseAnchorMode(" Double "); err != nil || mode != AnchorDouble {
		t.Errorf("Expected double, got %v %v", mode, err)
	}
	if mode, err := ParseAnchorMode("1"); err != nil || mode != AnchorSingle {
		t.Errorf("Expected single, got %v %v", mode, err)
	}
	if _, err := ParseAnchorMode("triple"); !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("Expected ErrInvalidConfiguration, got %v", err)
	}
}

func TestRopeBounds(t *testing.T) {
	cfg := PresetHanging()
	world := NewWorld()
	rope, err := BuildRope(world, cfg)
	if err != nil {
		t.Fatal(err)
	}

	expected := NewBB(295, 395, 605, 405)
	if rope.Bounds() != expected {
		t.Errorf("Expected %v, got %v", expected, rope.Bounds())
	}
	if !rope.Bounds().ContainsVect(rope.FreeEnd()) {
		t.Error("Expected the bounds to cover the free end")
	}
	if c := rope.Bounds().Center(); !near(c, Vector{450, 400}, 1e-9) {
		t.Errorf("Expected center 450,400 got %v", c)
	}
}

func TestStableSubsteps(t *testing.T) {
	for name, want := range map[string]int{"hanging": 15, "draggable": 43} {
		cfg, err := LookupPreset(name)
		if err != nil {
			t.Fatal(err)
		}
		if got := cfg.StableSubsteps(); got != want {
			t.Errorf("%v: expected %d sub-steps, got %d", name, want, got)
		}
	}

	cfg := PresetHanging()
	cfg.Stiffness = 0
	cfg.Damping = 0
	if got := cfg.StableSubsteps(); got != 1 {
		t.Errorf("Expected a slack rope to need one sub-step, got %d", got)
	}
}

func TestSubstepsIsLowerBound(t *testing.T) {
	cfg := PresetHanging()
	cfg.Substeps = 1
	sim, err := NewSimulation(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if sim.World.Substeps != 15 {
		t.Errorf("Expected too few sub-steps raised to 15, got %d", sim.World.Substeps)
	}

	reach := float64(cfg.SegmentCount) * cfg.SegmentLength * 1.5
	for i := 0; i < 600; i++ {
		sim.Step(nil)
	}
	if d := sim.Rope.FreeEnd().Distance(cfg.StartPosition); !(d < reach) {
		t.Errorf("Expected the free end within %v of the anchor, got %v", reach, d)
	}

	cfg.Substeps = 50
	sim, err = NewSimulation(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if sim.World.Substeps != 50 {
		t.Errorf("Expected explicit sub-steps kept, got %d", sim.World.Substeps)
	}
}

func TestValidateRejectsStiffRope(t *testing.T) {
	cfg := PresetHanging()
	cfg.Stiffness = 1e12
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("Expected ErrInvalidConfiguration, got %v", err)
	}

	cfg = PresetHanging()
	cfg.Substeps = -1
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("Expected ErrInvalidConfiguration, got %v", err)
	}
}
