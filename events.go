package rope

// Event is one input event. Coordinates are world coordinates.
type Event interface {
	isEvent()
}

// PrimaryButton is the only button that grabs the draggable anchor.
const PrimaryButton = 1

type PointerDown struct {
	Pos    Vector
	Button int
}

type PointerUp struct {
	Button int
}

type PointerMove struct {
	Pos Vector
}

type Quit struct{}

func (PointerDown) isEvent() {}
func (PointerUp) isEvent()   {}
func (PointerMove) isEvent() {}
func (Quit) isEvent()        {}
