package marble

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-marbles/internal/core"
)

// Mixing and capture tuning.
const (
	MaxMixPerStep      = 0.75 // per-step cap on colour blending
	CaptureRadiusScale = 0.8  // large balls capture within 0.8 of their radius
)

// Pair is two ball ids whose colours mixed during a step.
type Pair struct {
	A, B string
}

// StepResult summarises one call to Step.
type StepResult struct {
	Advanced float64  // seconds actually simulated
	Mixed    []Pair   // detection order; a ball may appear in several pairs
	Deleted  []string // swept by the delete zone
	Captured []string // moved into the inventory
	Released []string // always empty; release happens only through spit calls
}

func newStepResult(dt float64) StepResult {
	return StepResult{
		Advanced: dt,
		Mixed:    make([]Pair, 0),
		Deleted:  make([]string, 0),
		Captured: make([]string, 0),
		Released: make([]string, 0),
	}
}

// Empty reports whether nothing was mixed, deleted, captured or released.
func (r StepResult) Empty() bool {
	return len(r.Mixed) == 0 && len(r.Deleted) == 0 && len(r.Captured) == 0 && len(r.Released) == 0
}

// Step advances the world by dt seconds.
//
// Phases run in a fixed order, each over the active set as it stands when
// the phase begins:
//  1. Damping factor exp(-k·dt)
//  2. Suction force (if active)
//  3. Motion integration and boundary handling
//  4. Capture into the inventory (if suction active)
//  5. Colour mixing of overlapping pairs
//  6. Delete-zone sweep
//
// Negative dt is treated as zero. A zero step changes nothing. A non-finite
// dt returns ErrInvalidInput without touching the world.
func (w *World) Step(dt float64) (StepResult, error) {
	if !core.IsFinite(dt) {
		return StepResult{}, fmt.Errorf("marble: step dt %v: %w", dt, ErrInvalidInput)
	}
	dt = math.Max(0, dt)
	result := newStepResult(dt)
	if dt == 0 {
		return result, nil
	}

	// 1. Continuous-time damping
	damping := math.Exp(-w.damping * dt)

	// 2. Suction
	if w.suction.Active {
		w.applySuction(dt)
	}

	// 3. Motion and boundaries
	for _, b := range w.balls.Slice() {
		w.integrate(b, dt, damping)
	}

	// 4. Capture, after motion so suction keeps pulling into the mouth
	if w.suction.Active {
		result.Captured = w.capture()
	}

	// 5. Colour mixing
	result.Mixed = w.mixColors(dt)

	// 6. Delete zone
	result.Deleted = w.sweepDeleteZone()

	return result, nil
}

func (w *World) applySuction(dt float64) {
	s := w.suction
	for _, b := range w.balls.Slice() {
		to := s.Position.Sub(b.Position)
		dist := to.Len()
		if dist > s.Radius || dist <= suctionSingularity {
			continue
		}
		pull := to.Scale(1 / dist)
		falloff := 1.0 - dist/s.Radius
		accel := s.Strength * falloff * falloff / b.mass
		b.Velocity = b.Velocity.Add(pull.Scale(accel * dt))
	}
}

func (w *World) integrate(b *Ball, dt, damping float64) {
	v := b.Velocity.Add(w.gravity.Scale(dt)).Scale(damping)
	p := b.Position.Add(v.Scale(dt))
	r := b.radius

	switch w.boundary {
	case BoundaryBounce:
		if p.X-r < 0 {
			p.X = r
			v.X = math.Abs(v.X)
		} else if p.X+r > w.width {
			p.X = w.width - r
			v.X = -math.Abs(v.X)
		}
		if p.Y-r < 0 {
			p.Y = r
			v.Y = math.Abs(v.Y)
		} else if p.Y+r > w.height {
			p.Y = w.height - r
			v.Y = -math.Abs(v.Y)
		}
	case BoundaryWrap:
		if p.X < -r {
			p.X = w.width + r
		} else if p.X > w.width+r {
			p.X = -r
		}
		if p.Y < -r {
			p.Y = w.height + r
		} else if p.Y > w.height+r {
			p.Y = -r
		}
	}

	b.Position = p
	b.Velocity = v
}

// capture decides the full batch before moving anything, so removal order
// cannot influence which balls are taken.
func (w *World) capture() []string {
	s := w.suction
	captured := make([]string, 0)
	for _, b := range w.balls.Slice() {
		if b.Position.Dist(s.Position) <= math.Max(s.CaptureRadius, b.radius*CaptureRadiusScale) {
			captured = append(captured, b.ID)
		}
	}
	for _, id := range captured {
		w.inventory.Push(w.balls.Remove(id))
	}
	return captured
}

// mixColors blends every overlapping pair. Within a pair, a moves toward b
// first and b then moves toward a's updated colour; a ball in several pairs
// accumulates the mixes in pair order.
func (w *World) mixColors(dt float64) []Pair {
	mixed := make([]Pair, 0)
	t := core.ClampF(w.mixRate*dt, 0, MaxMixPerStep)
	if t <= 0 {
		return mixed
	}

	balls := w.balls.Slice()
	for i := 0; i < len(balls); i++ {
		a := balls[i]
		for j := i + 1; j < len(balls); j++ {
			b := balls[j]
			if a.Position.Dist(b.Position) > a.radius+b.radius {
				continue
			}
			a.Color = core.MixTowards(a.Color, b.Color, t)
			b.Color = core.MixTowards(b.Color, a.Color, t)
			mixed = append(mixed, Pair{A: a.ID, B: b.ID})
		}
	}
	return mixed
}

func (w *World) sweepDeleteZone() []string {
	deleted := make([]string, 0)
	for _, b := range w.balls.Slice() {
		if w.deleteZone.Contains(b.Position) {
			deleted = append(deleted, b.ID)
		}
	}
	for _, id := range deleted {
		w.balls.Remove(id)
	}
	return deleted
}
