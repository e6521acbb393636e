package rope

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

type AnchorMode int

const (
	// AnchorSingle pins only the first segment.
	AnchorSingle AnchorMode = iota
	// AnchorDouble also pins the last segment to a draggable target.
	AnchorDouble
)

func (m AnchorMode) String() string {
	switch m {
	case AnchorSingle:
		return "single"
	case AnchorDouble:
		return "double"
	}
	return fmt.Sprintf("AnchorMode(%d)", int(m))
}

func ParseAnchorMode(s string) (AnchorMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "single", "1":
		return AnchorSingle, nil
	case "double", "2":
		return AnchorDouble, nil
	}
	return 0, fmt.Errorf("%w: unknown anchor mode %q", ErrInvalidConfiguration, s)
}

// Config is fixed for the lifetime of a simulation.
type Config struct {
	Gravity       Vector
	SegmentLength float64
	SegmentCount  int
	Mass          float64
	Stiffness     float64
	Damping       float64
	AnchorMode    AnchorMode
	StartPosition Vector

	// PickRadius is how close a pointer-down must land to the draggable anchor.
	PickRadius float64
	StepRateHz int

	// Radius of each segment's capsule, only used for drawing.
	Radius float64
	// Substeps is a lower bound on the World's sub-step count. The
	// simulation never runs fewer than StableSubsteps. Zero picks that.
	Substeps   int
	Iterations int
	// DragSmoothing is the angular frequency of the spring the drag target
	// follows the pointer with. Zero moves the target exactly with the pointer.
	DragSmoothing float64
}

// PresetDraggable is the rope both ends of which are pinned, with gravity
// pointing down the screen (y grows downwards) on a 1200x700 canvas.
func PresetDraggable() Config {
	return Config{
		Gravity:       Vector{0, 900},
		SegmentLength: 10,
		SegmentCount:  30,
		Mass:          0.25,
		Stiffness:     2000,
		Damping:       20,
		AnchorMode:    AnchorDouble,
		StartPosition: Vector{400, 100},
		PickRadius:    100,
		StepRateHz:    60,
		Radius:        5,
		Iterations:    10,
	}
}

// PresetHanging is a single-anchored rope in y-up coordinates that sags from
// a horizontal start.
func PresetHanging() Config {
	return Config{
		Gravity:       Vector{0, -900},
		SegmentLength: 30,
		SegmentCount:  10,
		Mass:          1,
		Stiffness:     1000,
		Damping:       10,
		AnchorMode:    AnchorSingle,
		StartPosition: Vector{300, 400},
		PickRadius:    100,
		StepRateHz:    60,
		Radius:        5,
		Iterations:    10,
	}
}

var presets = map[string]func() Config{
	"draggable": PresetDraggable,
	"hanging":   PresetHanging,
}

// LookupPreset returns a fresh copy of the named preset.
func LookupPreset(name string) (Config, error) {
	preset, ok := presets[strings.ToLower(name)]
	if !ok {
		return Config{}, fmt.Errorf("%w: unknown preset %q (have %s)", ErrInvalidConfiguration, name, strings.Join(PresetNames(), ", "))
	}
	return preset(), nil
}

func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// TimeStep is the fixed step length derived from StepRateHz.
func (cfg Config) TimeStep() float64 {
	return 1 / float64(cfg.StepRateHz)
}

const (
	// bounds on the per sub-step phase advance of a single spring
	maxStiffnessStep = 0.1
	maxDampingStep   = 0.25

	maxSubsteps = 1000
)

// StableSubsteps is the fewest sub-steps per TimeStep that keep the explicit
// spring update stable. A rod's end has an effective inverse mass of 4/m and
// a spring couples two of them, hence 8/m.
func (cfg Config) StableSubsteps() int {
	h := cfg.TimeStep()
	invMass := 8 / cfg.Mass
	n := math.Max(h*math.Sqrt(cfg.Stiffness*invMass)/maxStiffnessStep, h*cfg.Damping*invMass/maxDampingStep)
	if !(n < maxSubsteps+1) {
		return maxSubsteps + 1
	}
	return max(1, int(math.Ceil(n)))
}

func (cfg Config) validateRope() error {
	switch {
	case cfg.SegmentCount < 1:
		return fmt.Errorf("%w: segment count %d must be at least 1", ErrInvalidConfiguration, cfg.SegmentCount)
	case !(cfg.Mass > 0) || math.IsInf(cfg.Mass, 0):
		return fmt.Errorf("%w: mass %v must be positive", ErrInvalidConfiguration, cfg.Mass)
	case !(cfg.SegmentLength > 0) || math.IsInf(cfg.SegmentLength, 0):
		return fmt.Errorf("%w: segment length %v must be positive", ErrInvalidConfiguration, cfg.SegmentLength)
	case !(cfg.Stiffness >= 0):
		return fmt.Errorf("%w: stiffness %v must not be negative", ErrInvalidConfiguration, cfg.Stiffness)
	case !(cfg.Damping >= 0):
		return fmt.Errorf("%w: damping %v must not be negative", ErrInvalidConfiguration, cfg.Damping)
	case !cfg.StartPosition.IsFinite():
		return fmt.Errorf("%w: start position %v", ErrInvalidConfiguration, cfg.StartPosition)
	case cfg.AnchorMode != AnchorSingle && cfg.AnchorMode != AnchorDouble:
		return fmt.Errorf("%w: %v", ErrInvalidConfiguration, cfg.AnchorMode)
	}
	return nil
}

// Validate checks every field, not only the ones BuildRope needs.
func (cfg Config) Validate() error {
	if err := cfg.validateRope(); err != nil {
		return err
	}
	switch {
	case !cfg.Gravity.IsFinite():
		return fmt.Errorf("%w: gravity %v", ErrInvalidConfiguration, cfg.Gravity)
	case !(cfg.PickRadius > 0):
		return fmt.Errorf("%w: pick radius %v must be positive", ErrInvalidConfiguration, cfg.PickRadius)
	case cfg.StepRateHz <= 0:
		return fmt.Errorf("%w: step rate %d must be positive", ErrInvalidConfiguration, cfg.StepRateHz)
	case !(cfg.Radius >= 0):
		return fmt.Errorf("%w: radius %v must not be negative", ErrInvalidConfiguration, cfg.Radius)
	case cfg.Substeps < 0:
		return fmt.Errorf("%w: substeps %d must not be negative", ErrInvalidConfiguration, cfg.Substeps)
	case cfg.StableSubsteps() > maxSubsteps:
		return fmt.Errorf("%w: stiffness %v and damping %v are too stiff for a %d Hz step rate", ErrInvalidConfiguration, cfg.Stiffness, cfg.Damping, cfg.StepRateHz)
	case cfg.Iterations < 1:
		return fmt.Errorf("%w: iterations %d must be at least 1", ErrInvalidConfiguration, cfg.Iterations)
	case !(cfg.DragSmoothing >= 0):
		return fmt.Errorf("%w: drag smoothing %v must not be negative", ErrInvalidConfiguration, cfg.DragSmoothing)
	}
	return nil
}
