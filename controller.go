package rope

import (
	"log"

	"github.com/charmbracelet/harmonica"
)

type DragState int

const (
	Idle DragState = iota
	Dragging
)

func (s DragState) String() string {
	if s == Dragging {
		return "dragging"
	}
	return "idle"
}

// DragController turns pointer events into retargets of a rope's draggable pin.
type DragController struct {
	world *World
	pin   *Constraint

	PickRadius float64

	state DragState

	// pointer is where the target is heading when smoothing is on
	pointer  Vector
	smooth   bool
	settling bool
	spring   harmonica.Spring
	pos, vel Vector
}

// NewDragController returns an idle controller. A nil pin is allowed and
// makes every grab miss, which is the single anchor case.
func NewDragController(world *World, pin *Constraint, pickRadius float64) *DragController {
	return &DragController{
		world:      world,
		pin:        pin,
		PickRadius: pickRadius,
	}
}

// SetSmoothing makes the pin target trail the pointer through a critically
// damped spring of the given angular frequency, advanced once per step at
// stepRateHz. A frequency of zero turns smoothing off.
func (c *DragController) SetSmoothing(frequency float64, stepRateHz int) {
	if frequency <= 0 || stepRateHz <= 0 {
		c.smooth = false
		return
	}
	c.smooth = true
	c.spring = harmonica.NewSpring(harmonica.FPS(stepRateHz), frequency, 1.0)
}

func (c *DragController) State() DragState {
	return c.state
}

// Pin is the draggable pin, nil in single anchor mode.
func (c *DragController) Pin() *Constraint {
	return c.pin
}

// Target is the current world position of the draggable anchor.
func (c *DragController) Target() (Vector, bool) {
	if c.pin == nil {
		return Vector{}, false
	}
	return c.pin.Class.(*PinJoint).Target(), true
}

// HandleEvents processes a frame's events in order and reports whether the
// batch contained a Quit. Events that make no sense in the current state are
// ignored.
func (c *DragController) HandleEvents(events []Event) bool {
	quit := false
	for _, event := range events {
		switch e := event.(type) {
		case PointerDown:
			c.pointerDown(e)
		case PointerUp:
			if e.Button == PrimaryButton {
				c.state = Idle
			}
		case PointerMove:
			if c.state == Dragging {
				c.moveTo(e.Pos)
			}
		case Quit:
			quit = true
		}
	}
	return quit
}

func (c *DragController) pointerDown(e PointerDown) {
	if e.Button != PrimaryButton || c.state == Dragging {
		return
	}
	target, ok := c.Target()
	if !ok || !e.Pos.Near(target, c.PickRadius) {
		return
	}
	c.state = Dragging
	if c.smooth && !c.settling {
		c.pos, c.vel = target, Vector{}
	}
}

func (c *DragController) moveTo(p Vector) {
	if c.smooth {
		c.pointer = p
		c.settling = true
		return
	}
	c.retarget(p)
}

// Update advances drag smoothing by one step. It does nothing when smoothing
// is off.
func (c *DragController) Update() {
	if !c.smooth || !c.settling {
		return
	}

	c.pos.X, c.vel.X = c.spring.Update(c.pos.X, c.vel.X, c.pointer.X)
	c.pos.Y, c.vel.Y = c.spring.Update(c.pos.Y, c.vel.Y, c.pointer.Y)
	c.retarget(c.pos)

	if c.state == Idle && c.pos.Near(c.pointer, 1e-3) && c.vel.LengthSq() < 1e-6 {
		c.settling = false
	}
}

func (c *DragController) retarget(p Vector) {
	if err := c.world.RetargetPin(c.pin, p); err != nil {
		log.Println("Retarget failed:", err)
	}
}
