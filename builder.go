package rope

// Rope is a chain of segment bodies. Springs link neighbours only and pins
// link the ends to the world's static body.
type Rope struct {
	Bodies  []*Body
	Shapes  []*Segment
	Springs []*Constraint
	Pins    []*Constraint

	// Draggable is the end pin in double anchor mode, nil otherwise.
	Draggable *Constraint

	SegmentLength float64
}

// BuildRope lays out cfg.SegmentCount segments to the right of
// cfg.StartPosition and adds them to world along with their springs and pins.
//
// Each spring joins the leading ends of two neighbouring segments (half a
// segment behind each center of gravity), so a freshly built rope starts with
// every spring exactly at its rest length. Nothing holds a segment's trailing
// end, so each one turns freely about its leading end and a sagging rope
// looks like a fringe of short pendulums rather than a continuous curve.
func BuildRope(world *World, cfg Config) (*Rope, error) {
	if err := cfg.validateRope(); err != nil {
		return nil, err
	}

	length := cfg.SegmentLength
	start := cfg.StartPosition
	rope := &Rope{SegmentLength: length}

	// leading end, in body local coordinates
	anchor := Vector{0, 0}

	var prev *Body
	for i := 0; i < cfg.SegmentCount; i++ {
		pos := Vector{start.X + float64(i)*length, start.Y}
		body := world.AddBody(NewSegmentBody(cfg.Mass, length, pos))
		shape := world.AddShape(NewSegment(body, Vector{0, 0}, Vector{length, 0}, cfg.Radius))

		rope.Bodies = append(rope.Bodies, body)
		rope.Shapes = append(rope.Shapes, shape)

		if prev != nil {
			spring := world.AddConstraint(NewDampedSpring(prev, body, anchor, anchor, length, cfg.Stiffness, cfg.Damping))
			rope.Springs = append(rope.Springs, spring)
		}
		prev = body
	}

	static := world.StaticBody
	first := rope.Bodies[0]
	rope.Pins = append(rope.Pins, world.AddConstraint(NewPinJoint(static, first, start, Vector{0, 0})))

	if cfg.AnchorMode == AnchorDouble {
		last := rope.Bodies[len(rope.Bodies)-1]
		end := Vector{start.X + float64(cfg.SegmentCount)*length, start.Y}
		pin := world.AddConstraint(NewPinJoint(static, last, end, Vector{length, 0}))
		rope.Pins = append(rope.Pins, pin)
		rope.Draggable = pin
	}

	return rope, nil
}

func (rope *Rope) First() *Body {
	return rope.Bodies[0]
}

func (rope *Rope) Last() *Body {
	return rope.Bodies[len(rope.Bodies)-1]
}

// FreeEnd is the world position of the last segment's trailing end.
func (rope *Rope) FreeEnd() Vector {
	return rope.Last().LocalToWorld(Vector{rope.SegmentLength, 0})
}

// Bounds covers every segment of the rope as of the last step.
func (rope *Rope) Bounds() BB {
	bb := rope.Shapes[0].BB()
	for _, shape := range rope.Shapes[1:] {
		bb = bb.Merge(shape.BB())
	}
	return bb
}

// Simulation bundles a world, its rope and the drag controller for front-ends.
type Simulation struct {
	Config     Config
	World      *World
	Rope       *Rope
	Controller *DragController
}

func NewSimulation(cfg Config) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	world := NewWorld()
	world.SetGravity(cfg.Gravity)
	world.Substeps = max(cfg.Substeps, cfg.StableSubsteps())
	world.Iterations = cfg.Iterations

	rope, err := BuildRope(world, cfg)
	if err != nil {
		return nil, err
	}

	controller := NewDragController(world, rope.Draggable, cfg.PickRadius)
	controller.SetSmoothing(cfg.DragSmoothing, cfg.StepRateHz)

	return &Simulation{
		Config:     cfg,
		World:      world,
		Rope:       rope,
		Controller: controller,
	}, nil
}

// Step drains a frame's input and advances the world by one fixed step.
// It reports whether a Quit event was seen.
func (sim *Simulation) Step(events []Event) bool {
	quit := sim.Controller.HandleEvents(events)
	sim.Controller.Update()
	sim.World.Step(sim.Config.TimeStep())
	return quit
}
