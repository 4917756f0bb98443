package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/oddtile.yaml
var defaultYAML []byte

// DefaultConfig returns the built-in OddTile rules.
func DefaultConfig() Config {
	return Config{
		Session: SessionConfig{
			InitialTime:  60,
			MissPenalty:  3,
			TickInterval: time.Second,
		},
		Difficulty: DifficultyConfig{
			InitialDelta: 20,
			MinDelta:     1.5,
			Slope:        3.5,
		},
		Milestone: MilestoneConfig{
			Every: 10,
		},
		Grades: GradeConfig{
			S: 40,
			A: 30,
			B: 20,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
