package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/jakecoffman/rope"
	"github.com/joho/godotenv"
)

// Prefix of every environment variable read by Load.
const Prefix = "ROPE_"

const (
	KeyPreset        = Prefix + "PRESET"
	KeyGravity       = Prefix + "GRAVITY"
	KeySegmentLength = Prefix + "SEGMENT_LENGTH"
	KeySegmentCount  = Prefix + "SEGMENT_COUNT"
	KeyMass          = Prefix + "MASS"
	KeyStiffness     = Prefix + "STIFFNESS"
	KeyDamping       = Prefix + "DAMPING"
	KeyAnchorMode    = Prefix + "ANCHOR_MODE"
	KeyStartPosition = Prefix + "START_POSITION"
	KeyPickRadius    = Prefix + "PICK_RADIUS"
	KeyStepRateHz    = Prefix + "STEP_RATE_HZ"
	KeyRadius        = Prefix + "RADIUS"
	KeySubsteps      = Prefix + "SUBSTEPS"
	KeyIterations    = Prefix + "ITERATIONS"
	KeyDragSmoothing = Prefix + "DRAG_SMOOTHING"
)

// Load reads envFile (if it exists) and the process environment, then applies
// every ROPE_* variable on top of the named preset. Process variables win over
// the file, matching godotenv.Load. An empty preset falls back to ROPE_PRESET
// and then to "draggable".
func Load(preset, envFile string) (rope.Config, error) {
	vars := map[string]string{}
	if envFile != "" {
		fileVars, err := godotenv.Read(envFile)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			log.Println("No env file at", envFile, "using defaults")
		case err != nil:
			return rope.Config{}, fmt.Errorf("reading %s: %w", envFile, err)
		default:
			vars = fileVars
		}
	}

	for _, kv := range os.Environ() {
		key, value, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(key, Prefix) {
			vars[key] = value
		}
	}

	return FromMap(preset, vars)
}

// FromMap is Load without touching the file system or the environment.
func FromMap(preset string, vars map[string]string) (rope.Config, error) {
	if preset == "" {
		preset = vars[KeyPreset]
	}
	if preset == "" {
		preset = "draggable"
	}

	cfg, err := rope.LookupPreset(preset)
	if err != nil {
		return rope.Config{}, err
	}

	p := parser{vars: vars}
	p.vector(KeyGravity, &cfg.Gravity)
	p.float(KeySegmentLength, &cfg.SegmentLength)
	p.integer(KeySegmentCount, &cfg.SegmentCount)
	p.float(KeyMass, &cfg.Mass)
	p.float(KeyStiffness, &cfg.Stiffness)
	p.float(KeyDamping, &cfg.Damping)
	p.anchorMode(KeyAnchorMode, &cfg.AnchorMode)
	p.vector(KeyStartPosition, &cfg.StartPosition)
	p.float(KeyPickRadius, &cfg.PickRadius)
	p.integer(KeyStepRateHz, &cfg.StepRateHz)
	p.float(KeyRadius, &cfg.Radius)
	p.integer(KeySubsteps, &cfg.Substeps)
	p.integer(KeyIterations, &cfg.Iterations)
	p.float(KeyDragSmoothing, &cfg.DragSmoothing)
	if p.err != nil {
		return rope.Config{}, p.err
	}

	if err := cfg.Validate(); err != nil {
		return rope.Config{}, err
	}
	return cfg, nil
}

// parser keeps the first error and skips the rest.
type parser struct {
	vars map[string]string
	err  error
}

func (p *parser) lookup(key string) (string, bool) {
	if p.err != nil {
		return "", false
	}
	value, ok := p.vars[key]
	value = strings.TrimSpace(value)
	return value, ok && value != ""
}

func (p *parser) fail(key, value string, err error) {
	p.err = fmt.Errorf("%w: %s=%q: %v", rope.ErrInvalidConfiguration, key, value, err)
}

func (p *parser) float(key string, dst *float64) {
	value, ok := p.lookup(key)
	if !ok {
		return
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		p.fail(key, value, err)
		return
	}
	*dst = f
}

func (p *parser) integer(key string, dst *int) {
	value, ok := p.lookup(key)
	if !ok {
		return
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		p.fail(key, value, err)
		return
	}
	*dst = i
}

// vector parses "x,y".
func (p *parser) vector(key string, dst *rope.Vector) {
	value, ok := p.lookup(key)
	if !ok {
		return
	}
	xs, ys, found := strings.Cut(value, ",")
	if !found {
		p.fail(key, value, errors.New("want x,y"))
		return
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		p.fail(key, value, err)
		return
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		p.fail(key, value, err)
		return
	}
	*dst = rope.Vector{X: x, Y: y}
}

func (p *parser) anchorMode(key string, dst *rope.AnchorMode) {
	value, ok := p.lookup(key)
	if !ok {
		return
	}
	mode, err := rope.ParseAnchorMode(value)
	if err != nil {
		p.err = err
		return
	}
	*dst = mode
}
