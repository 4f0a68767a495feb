package config

import (
	_ "embed"
)

//go:embed defaults/marbles.yaml
var defaultMarblesYAML []byte

// DefaultMarblesYAML returns the embedded default configuration file.
func DefaultMarblesYAML() []byte {
	return defaultMarblesYAML
}

// DefaultMarblesConfig returns the default marble configuration.
func DefaultMarblesConfig() MarblesConfig {
	return MarblesConfig{
		World: WorldConfig{
			Boundary:       "bounce",
			GravityX:       0,
			GravityY:       60,
			DampingPerSec:  0.15,
			MixRatePerSec:  0.85,
			DeleteZoneSize: 120,
		},
		Suction: SuctionConfig{
			Radius:        160,
			Strength:      1200,
			CaptureRadius: 28,
		},
		Spit: SpitConfig{
			Speed: 520,
		},
		Balls: BallsConfig{
			Count:          12,
			Reinforcements: 8,
			SpawnEvery:     180,
			MinRadius:      8,
			MaxRadius:      14,
			MaxSpeed:       90,
			Palette: []string{
				"#e63946",
				"#f4a261",
				"#e9c46a",
				"#2a9d8f",
				"#457b9d",
				"#9b5de5",
			},
		},
		Scoring: ScoringConfig{
			PointsPerDelete: 10,
			MixesPerPoint:   60,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "time",
				MaxAt: 3600,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier:   1.0,
				IntervalReduction: 120,
			},
		},
	}
}
