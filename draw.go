package rope

//Draw flags
const (
	DRAW_SHAPES      = 1 << 0
	DRAW_CONSTRAINTS = 1 << 1
	DRAW_ANCHOR      = 1 << 2
)

// Radius of the highlight drawn around the draggable anchor.
const AnchorHighlightRadius = 10.0

// 16 bytes
type FColor struct {
	R, G, B, A float32
}

// Drawer is the render sink. DrawWorld only ever calls it with world coordinates.
type Drawer interface {
	DrawCircle(pos Vector, angle, radius float64, outline, fill FColor, data interface{})
	DrawSegment(a, b Vector, fill FColor, data interface{})
	DrawFatSegment(a, b Vector, radius float64, outline, fill FColor, data interface{})
	DrawDot(size float64, pos Vector, fill FColor, data interface{})

	Flags() uint
	OutlineColor() FColor
	ShapeColor(shape *Segment, data interface{}) FColor
	ConstraintColor() FColor
	AnchorColor() FColor
	Data() interface{}
}

func DrawShape(shape *Segment, options Drawer) {
	data := options.Data()
	outline := options.OutlineColor()
	fill := options.ShapeColor(shape, data)

	ta, tb := shape.WorldEndpoints()
	options.DrawFatSegment(ta, tb, shape.r, outline, fill, data)
}

func DrawConstraint(constraint *Constraint, options Drawer) {
	data := options.Data()
	color := options.ConstraintColor()

	var a, b Vector
	switch joint := constraint.Class.(type) {
	case *DampedSpring:
		a, b = joint.WorldAnchors()
	case *PinJoint:
		a, b = joint.WorldAnchors()
	default:
		panic("Unknown constraint type")
	}

	options.DrawDot(5, a, color, data)
	options.DrawDot(5, b, color, data)
	options.DrawSegment(a, b, color, data)
}

// DrawAnchor circles the draggable pin's target. A nil pin draws nothing.
func DrawAnchor(pin *Constraint, options Drawer) {
	if pin == nil {
		return
	}
	joint := pin.Class.(*PinJoint)
	color := options.AnchorColor()
	options.DrawCircle(joint.Target(), 0, AnchorHighlightRadius, color, FColor{}, options.Data())
}

func DrawWorld(world *World, options Drawer) {
	if options.Flags()&DRAW_SHAPES != 0 {
		world.EachShape(func(shape *Segment) {
			DrawShape(shape, options)
		})
	}

	if options.Flags()&DRAW_CONSTRAINTS != 0 {
		world.EachConstraint(func(constraint *Constraint) {
			DrawConstraint(constraint, options)
		})
	}
}

// Draw renders the world and, when enabled, the draggable anchor highlight.
func (sim *Simulation) Draw(options Drawer) {
	DrawWorld(sim.World, options)
	if options.Flags()&DRAW_ANCHOR != 0 {
		DrawAnchor(sim.Rope.Draggable, options)
	}
}
