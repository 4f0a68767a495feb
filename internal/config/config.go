// Package config provides YAML-based marble configuration loading,
// validation and difficulty management.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-marbles/internal/core"
	"github.com/vovakirdan/tui-marbles/internal/marble"
)

// MarblesConfig contains all configuration for the marble game.
type MarblesConfig struct {
	World      WorldConfig      `yaml:"world"`
	Suction    SuctionConfig    `yaml:"suction"`
	Spit       SpitConfig       `yaml:"spit"`
	Balls      BallsConfig      `yaml:"balls"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// WorldConfig defines the physics tuning of the world.
type WorldConfig struct {
	Boundary       string  `yaml:"boundary"` // "bounce" or "wrap"
	GravityX       float64 `yaml:"gravity_x"`
	GravityY       float64 `yaml:"gravity_y"`
	DampingPerSec  float64 `yaml:"damping_per_sec"`
	MixRatePerSec  float64 `yaml:"mix_rate_per_sec"`
	DeleteZoneSize float64 `yaml:"delete_zone_size"` // square side in world units
}

// SuctionConfig defines the pointer suction field.
type SuctionConfig struct {
	Radius        float64 `yaml:"radius"`
	Strength      float64 `yaml:"strength"`
	CaptureRadius float64 `yaml:"capture_radius"`
}

// SpitConfig defines inventory release.
type SpitConfig struct {
	Speed float64 `yaml:"speed"`
}

// BallsConfig defines how balls are spawned.
type BallsConfig struct {
	Count          int      `yaml:"count"`           // balls spawned on reset
	Reinforcements int      `yaml:"reinforcements"`  // extra balls dripped in during a run
	SpawnEvery     int      `yaml:"spawn_every"`     // ticks between reinforcements
	MinRadius      float64  `yaml:"min_radius"`
	MaxRadius      float64  `yaml:"max_radius"`
	MaxSpeed       float64  `yaml:"max_speed"`
	Palette        []string `yaml:"palette"` // hex colours
}

// ScoringConfig defines how a run is scored.
type ScoringConfig struct {
	PointsPerDelete int `yaml:"points_per_delete"`
	MixesPerPoint   int `yaml:"mixes_per_point"` // 0 disables the mix bonus
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier   float64 `yaml:"speed_multiplier"`   // Multiplier added to spawn speed at max difficulty
	IntervalReduction int     `yaml:"interval_reduction"` // Spawn interval reduction at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a flag value to a preset.
func ParsePreset(s string) (DifficultyPreset, bool) {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, true
	case "":
		return DifficultyNormal, true
	default:
		return DifficultyNormal, false
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ConfigError describes one invalid configuration value.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Reason)
}

// Unwrap lets callers match config problems with errors.Is(err, marble.ErrConfiguration).
func (e *ConfigError) Unwrap() error {
	return marble.ErrConfiguration
}

// Validate checks every field and returns all problems joined together,
// or nil if the config is usable.
func (c MarblesConfig) Validate() error {
	var errs []error
	bad := func(field, format string, args ...any) {
		errs = append(errs, &ConfigError{Field: field, Reason: fmt.Sprintf(format, args...)})
	}

	if _, ok := marble.ParseBoundary(c.World.Boundary); !ok {
		bad("world.boundary", "unknown policy %q", c.World.Boundary)
	}
	if !core.IsFinite(c.World.GravityX) || !core.IsFinite(c.World.GravityY) {
		bad("world.gravity", "must be finite")
	}
	if !core.IsFinite(c.World.DampingPerSec) || c.World.DampingPerSec < 0 || c.World.DampingPerSec > marble.MaxDampingPerSec {
		bad("world.damping_per_sec", "%g outside [0, %g]", c.World.DampingPerSec, marble.MaxDampingPerSec)
	}
	if !core.IsFinite(c.World.MixRatePerSec) || c.World.MixRatePerSec < 0 || c.World.MixRatePerSec > marble.MaxMixRatePerSec {
		bad("world.mix_rate_per_sec", "%g outside [0, %g]", c.World.MixRatePerSec, marble.MaxMixRatePerSec)
	}
	if !core.IsFinite(c.World.DeleteZoneSize) || c.World.DeleteZoneSize <= 0 {
		bad("world.delete_zone_size", "must be finite and positive")
	}

	if !core.IsFinite(c.Suction.Radius) || c.Suction.Radius <= 0 {
		bad("suction.radius", "must be finite and positive")
	}
	if !core.IsFinite(c.Suction.Strength) || c.Suction.Strength < 0 {
		bad("suction.strength", "must be finite and not negative")
	}
	if !core.IsFinite(c.Suction.CaptureRadius) || c.Suction.CaptureRadius < 0 {
		bad("suction.capture_radius", "must be finite and not negative")
	}
	if !core.IsFinite(c.Spit.Speed) || c.Spit.Speed < 0 {
		bad("spit.speed", "must be finite and not negative")
	}

	if c.Balls.Count < 0 || c.Balls.Reinforcements < 0 {
		bad("balls.count", "counts must not be negative")
	}
	if c.Balls.Reinforcements > 0 && c.Balls.SpawnEvery <= 0 {
		bad("balls.spawn_every", "must be positive when reinforcements are enabled")
	}
	if !core.IsFinite(c.Balls.MinRadius) || !core.IsFinite(c.Balls.MaxRadius) ||
		c.Balls.MinRadius <= 0 || c.Balls.MaxRadius < c.Balls.MinRadius {
		bad("balls.radius", "need 0 < min_radius <= max_radius, got %g..%g", c.Balls.MinRadius, c.Balls.MaxRadius)
	}
	if !core.IsFinite(c.Balls.MaxSpeed) || c.Balls.MaxSpeed < 0 {
		bad("balls.max_speed", "must be finite and not negative")
	}
	if len(c.Balls.Palette) == 0 {
		bad("balls.palette", "must contain at least one colour")
	}
	for i, hex := range c.Balls.Palette {
		if _, err := core.ParseHex(hex); err != nil {
			bad(fmt.Sprintf("balls.palette[%d]", i), "invalid colour %q", hex)
		}
	}

	if c.Scoring.PointsPerDelete < 0 || c.Scoring.MixesPerPoint < 0 {
		bad("scoring", "values must not be negative")
	}
	switch c.Difficulty.Progression.Type {
	case "score", "time", "none", "":
	default:
		bad("difficulty.progression.type", "unknown type %q", c.Difficulty.Progression.Type)
	}

	return errors.Join(errs...)
}

// Palette parses the configured hex colours. Invalid entries are skipped;
// call Validate to report them.
func (c MarblesConfig) Palette() []core.RGB {
	out := make([]core.RGB, 0, len(c.Balls.Palette))
	for _, hex := range c.Balls.Palette {
		if col, err := core.ParseHex(hex); err == nil {
			out = append(out, col)
		}
	}
	return out
}

// ToParams builds world parameters for a playfield of the given size.
func (c MarblesConfig) ToParams(width, height float64) marble.Params {
	p := marble.DefaultParams(width, height)
	p.Boundary, _ = marble.ParseBoundary(c.World.Boundary)
	p.Gravity = core.V(c.World.GravityX, c.World.GravityY)
	p.LinearDampingPerSec = c.World.DampingPerSec
	p.MaxColorMixPerSec = c.World.MixRatePerSec

	size := c.World.DeleteZoneSize
	zone := core.NewRectF(width-size, height-size, size, size)
	p.DeleteZone = &zone
	return p
}

// SuctionOptions returns the configured suction parameters as options for
// marble.World.StartSuction.
func (c MarblesConfig) SuctionOptions() []marble.SuctionOption {
	return []marble.SuctionOption{
		marble.WithSuctionRadius(c.Suction.Radius),
		marble.WithSuctionStrength(c.Suction.Strength),
		marble.WithCaptureRadius(c.Suction.CaptureRadius),
	}
}
