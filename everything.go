package rope

import (
	"errors"
	"math"
)

const INFINITY = math.MaxFloat64

// Pin corrections stop once the anchors are closer than this.
const pinSlop = 1e-9

// Largest rotation in radians a single pin correction may apply to a body.
const maxPinRotation = 0.25

var (
	// ErrInvalidConfiguration is returned before any simulation runs when a
	// rope cannot be built from the given parameters.
	ErrInvalidConfiguration = errors.New("invalid configuration")
	// ErrNotRetargetable is returned when retargeting a pin between two dynamic bodies.
	ErrNotRetargetable = errors.New("pin has no static anchor to retarget")
	// ErrUnknownPin is returned when retargeting a constraint that is not a pin in this world.
	ErrUnknownPin = errors.New("constraint is not a pin joint in this world")
)
