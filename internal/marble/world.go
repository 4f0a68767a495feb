// Package marble implements the deterministic marble simulation: balls moving
// in a bounded 2D world under gravity and damping, a pointer-driven suction
// field that captures balls into an inventory, inventory release ("spit"),
// perceptual colour mixing on contact and a delete zone.
//
// A World is not safe for concurrent use. Hosts own one World per game and
// serialise every call (Step, AddBall, suction and spit operations) on a
// single goroutine, such as the Bubble Tea update loop.
package marble

import (
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/vovakirdan/tui-marbles/internal/core"
)

// Physics limits and defaults.
const (
	MinMass            = 1e-6
	MaxDampingPerSec   = 5.0
	MaxMixRatePerSec   = 5.0
	DefaultDamping     = 0.15
	DefaultMixRate     = 0.85
	DefaultZoneSize    = 120.0
	suctionSingularity = 1e-6
)

// Boundary selects how balls interact with the world edges.
type Boundary int

const (
	// BoundaryBounce keeps balls fully inside the world and reflects velocity.
	BoundaryBounce Boundary = iota
	// BoundaryWrap teleports balls that fully leave one side to the opposite side.
	BoundaryWrap
)

// String returns the config name of the boundary policy.
func (b Boundary) String() string {
	switch b {
	case BoundaryBounce:
		return "bounce"
	case BoundaryWrap:
		return "wrap"
	default:
		return "unknown"
	}
}

// ParseBoundary converts a config string to a Boundary.
func ParseBoundary(s string) (Boundary, bool) {
	switch strings.ToLower(s) {
	case "bounce", "":
		return BoundaryBounce, true
	case "wrap":
		return BoundaryWrap, true
	default:
		return BoundaryBounce, false
	}
}

// Ball is a single marble. Radius is fixed at construction, so mass
// (derived from radius) never goes stale.
type Ball struct {
	ID       string
	Position core.Vec2
	Velocity core.Vec2
	Color    core.RGB

	radius float64
	mass   float64
}

// NewBall builds a ball and derives its mass from the radius.
func NewBall(id string, pos, vel core.Vec2, radius float64, color core.RGB) Ball {
	return Ball{
		ID:       id,
		Position: pos,
		Velocity: vel,
		Color:    color,
		radius:   radius,
		mass:     MassForRadius(radius),
	}
}

// Radius returns the ball radius.
func (b Ball) Radius() float64 { return b.radius }

// Mass returns max(MinMass, π·r²).
func (b Ball) Mass() float64 { return b.mass }

// MassForRadius uses disc area as mass, floored at MinMass.
func MassForRadius(r float64) float64 {
	return math.Max(MinMass, math.Pi*r*r)
}

// BallSpec describes a ball to add. An empty ID asks the world to generate one.
type BallSpec struct {
	ID       string
	Position core.Vec2
	Velocity core.Vec2
	Radius   float64
	Color    core.RGB
}

// Params configures a World at construction time.
type Params struct {
	Width, Height float64

	// DeleteZone defaults to a DefaultZoneSize square in the bottom-right corner.
	DeleteZone *core.RectF

	Boundary Boundary

	// Clamped to [0, MaxDampingPerSec].
	LinearDampingPerSec float64

	// Clamped to [0, MaxMixRatePerSec].
	MaxColorMixPerSec float64

	Gravity core.Vec2

	// NewID generates ball ids. Defaults to random UUIDs; replays inject a
	// deterministic generator.
	NewID func() string
}

// DefaultParams returns the standard tuning for a world of the given size.
func DefaultParams(width, height float64) Params {
	return Params{
		Width:               width,
		Height:              height,
		Boundary:            BoundaryBounce,
		LinearDampingPerSec: DefaultDamping,
		MaxColorMixPerSec:   DefaultMixRate,
	}
}

// World holds all balls, the inventory, the suction field and world tuning.
type World struct {
	width, height float64
	deleteZone    core.RectF
	boundary      Boundary
	damping       float64
	mixRate       float64
	gravity       core.Vec2
	newID         func() string

	balls     *ballSet
	inventory *ballSet
	suction   Suction
}

// New validates p and creates an empty world.
func New(p Params) (*World, error) {
	if !core.IsFinite(p.Width) || !core.IsFinite(p.Height) || p.Width <= 0 || p.Height <= 0 {
		return nil, fmt.Errorf("marble: world size %gx%g: %w", p.Width, p.Height, ErrConfiguration)
	}
	if !p.Gravity.IsFinite() {
		return nil, fmt.Errorf("marble: gravity %v: %w", p.Gravity, ErrInvalidInput)
	}
	if p.Boundary != BoundaryBounce && p.Boundary != BoundaryWrap {
		return nil, fmt.Errorf("marble: boundary policy %d: %w", p.Boundary, ErrConfiguration)
	}

	zone := core.NewRectF(p.Width-DefaultZoneSize, p.Height-DefaultZoneSize, DefaultZoneSize, DefaultZoneSize)
	if p.DeleteZone != nil {
		zone = *p.DeleteZone
	}

	newID := p.NewID
	if newID == nil {
		newID = randomID
	}

	return &World{
		width:      p.Width,
		height:     p.Height,
		deleteZone: zone,
		boundary:   p.Boundary,
		damping:    clampRate(p.LinearDampingPerSec, MaxDampingPerSec),
		mixRate:    clampRate(p.MaxColorMixPerSec, MaxMixRatePerSec),
		gravity:    p.Gravity,
		newID:      newID,
		balls:      newBallSet(),
		inventory:  newBallSet(),
		suction:    defaultSuction(),
	}, nil
}

func clampRate(v, max float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return core.ClampF(v, 0, max)
}

func randomID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// Width returns the world width.
func (w *World) Width() float64 { return w.width }

// Height returns the world height.
func (w *World) Height() float64 { return w.height }

// Boundary returns the boundary policy.
func (w *World) Boundary() Boundary { return w.boundary }

// DampingPerSec returns the clamped linear damping rate.
func (w *World) DampingPerSec() float64 { return w.damping }

// MixRatePerSec returns the clamped colour mix rate.
func (w *World) MixRatePerSec() float64 { return w.mixRate }

// Gravity returns the gravity vector.
func (w *World) Gravity() core.Vec2 { return w.gravity }

// DeleteZone returns the current delete zone.
func (w *World) DeleteZone() core.RectF { return w.deleteZone }

// SetDeleteZone replaces the delete zone. The zone may lie partly or fully
// outside the world.
func (w *World) SetDeleteZone(r core.RectF) {
	w.deleteZone = r
}

// AddBall inserts a new active ball and returns its id.
func (w *World) AddBall(spec BallSpec) (string, error) {
	if !spec.Position.IsFinite() || !spec.Velocity.IsFinite() || !core.IsFinite(spec.Radius) || !spec.Color.IsFinite() {
		return "", fmt.Errorf("marble: add ball %q: non-finite value: %w", spec.ID, ErrInvalidInput)
	}
	if spec.Radius <= 0 {
		return "", fmt.Errorf("marble: add ball %q: radius %g: %w", spec.ID, spec.Radius, ErrConfiguration)
	}

	id := spec.ID
	if id == "" {
		id = w.newID()
	}
	if w.balls.Has(id) || w.inventory.Has(id) {
		return "", fmt.Errorf("marble: add ball %q: %w", id, ErrIDCollision)
	}

	b := NewBall(id, spec.Position, spec.Velocity, spec.Radius, spec.Color.Clamp())
	w.balls.Push(&b)
	return id, nil
}

// RemoveBall deletes an active ball. Inventory balls are not removable here.
func (w *World) RemoveBall(id string) bool {
	return w.balls.Remove(id) != nil
}

// Balls returns a copy of the active balls in insertion order.
func (w *World) Balls() []Ball {
	return copyBalls(w.balls)
}

// Inventory returns a copy of the captured balls in capture order.
func (w *World) Inventory() []Ball {
	return copyBalls(w.inventory)
}

// InventoryIDs returns the captured ball ids in capture order.
func (w *World) InventoryIDs() []string {
	ids := make([]string, 0, w.inventory.Len())
	for _, b := range w.inventory.Slice() {
		ids = append(ids, b.ID)
	}
	return ids
}

// Ball returns a copy of the active ball with the given id.
func (w *World) Ball(id string) (Ball, bool) {
	b, ok := w.balls.Get(id)
	if !ok {
		return Ball{}, false
	}
	return *b, true
}

// Len returns the number of active balls.
func (w *World) Len() int { return w.balls.Len() }

// InventoryLen returns the number of captured balls.
func (w *World) InventoryLen() int { return w.inventory.Len() }

// InInventory reports whether id is currently captured.
func (w *World) InInventory(id string) bool { return w.inventory.Has(id) }

// Clone returns an independent deep copy of the world, suitable for
// snapshots, undo and replay comparisons.
func (w *World) Clone() *World {
	c := *w
	c.balls = w.balls.clone()
	c.inventory = w.inventory.clone()
	return &c
}

func copyBalls(s *ballSet) []Ball {
	out := make([]Ball, 0, s.Len())
	for _, b := range s.Slice() {
		out = append(out, *b)
	}
	return out
}
