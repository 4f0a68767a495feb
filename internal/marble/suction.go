package marble

import (
	"fmt"

	"github.com/vovakirdan/tui-marbles/internal/core"
)

// Suction defaults applied the first time suction starts.
const (
	DefaultSuctionRadius   = 160.0
	DefaultSuctionStrength = 1200.0
	DefaultCaptureRadius   = 28.0
)

// Suction is the pointer-anchored attractive field.
type Suction struct {
	Active        bool
	Position      core.Vec2
	Radius        float64 // influence range
	Strength      float64 // force scale
	CaptureRadius float64 // capture threshold
}

func defaultSuction() Suction {
	return Suction{
		Radius:        DefaultSuctionRadius,
		Strength:      DefaultSuctionStrength,
		CaptureRadius: DefaultCaptureRadius,
	}
}

// SuctionOption overrides one suction parameter in StartSuction.
type SuctionOption func(*Suction)

// WithSuctionRadius sets the influence range.
func WithSuctionRadius(r float64) SuctionOption {
	return func(s *Suction) { s.Radius = r }
}

// WithSuctionStrength sets the force scale.
func WithSuctionStrength(k float64) SuctionOption {
	return func(s *Suction) { s.Strength = k }
}

// WithCaptureRadius sets the capture threshold.
func WithCaptureRadius(r float64) SuctionOption {
	return func(s *Suction) { s.CaptureRadius = r }
}

// StartSuction activates suction at pos. Parameters not overridden keep
// their previous values. A non-finite position or parameter leaves the
// suction state untouched and returns ErrInvalidInput.
func (w *World) StartSuction(pos core.Vec2, opts ...SuctionOption) error {
	next := w.suction
	next.Active = true
	next.Position = pos
	for _, opt := range opts {
		opt(&next)
	}
	if !next.Position.IsFinite() || !core.IsFinite(next.Radius) ||
		!core.IsFinite(next.Strength) || !core.IsFinite(next.CaptureRadius) {
		return fmt.Errorf("marble: start suction at %v: non-finite value: %w", pos, ErrInvalidInput)
	}
	w.suction = next
	return nil
}

// UpdateSuction moves an active suction point. It does nothing while
// suction is stopped.
func (w *World) UpdateSuction(pos core.Vec2) error {
	if !pos.IsFinite() {
		return fmt.Errorf("marble: update suction to %v: %w", pos, ErrInvalidInput)
	}
	if w.suction.Active {
		w.suction.Position = pos
	}
	return nil
}

// StopSuction deactivates suction, keeping its parameters for the next start.
func (w *World) StopSuction() {
	w.suction.Active = false
}

// Suction returns a copy of the suction state.
func (w *World) Suction() Suction {
	return w.suction
}
