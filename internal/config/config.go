// Package config provides YAML-based game configuration loading and
// difficulty management for OddTile.
package config

import (
	"errors"
	"fmt"
	"time"
)

// Config contains all tunable rules for an OddTile session.
type Config struct {
	Session    SessionConfig    `yaml:"session"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Milestone  MilestoneConfig  `yaml:"milestone"`
	Grades     GradeConfig      `yaml:"grades"`
}

// SessionConfig defines the clock of a session.
type SessionConfig struct {
	InitialTime  int           `yaml:"initial_time"`  // Seconds on the clock at start
	MissPenalty  int           `yaml:"miss_penalty"`  // Seconds lost per wrong tile
	TickInterval time.Duration `yaml:"tick_interval"` // Wall time per clock second
}

// DifficultyConfig defines the lightness delta curve.
// delta = max(MinDelta, InitialDelta - Slope*log2(score+1))
type DifficultyConfig struct {
	InitialDelta float64 `yaml:"initial_delta"` // Lightness delta at score 0, percent
	MinDelta     float64 `yaml:"min_delta"`     // Floor of the curve, percent
	Slope        float64 `yaml:"slope"`         // Percent removed per doubling of score
}

// MilestoneConfig defines when the celebration fires.
type MilestoneConfig struct {
	Every int `yaml:"every"`
}

// GradeConfig holds the exclusive score thresholds for each grade.
// A score strictly above S earns an S, and so on; anything else is a C.
type GradeConfig struct {
	S int `yaml:"s"`
	A int `yaml:"a"`
	B int `yaml:"b"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a flag value into a preset.
// An empty string selects normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(s) {
	case "", DifficultyNormal:
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s), nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
// Normal leaves the loaded values untouched.
func ApplyPreset(cfg *Config, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Session.InitialTime = 90
		cfg.Session.MissPenalty = 2
	case DifficultyHard:
		cfg.Session.InitialTime = 45
		cfg.Session.MissPenalty = 5
	case DifficultyFixed:
		// No progression: every level uses the initial delta
		cfg.Difficulty.Slope = 0
	}
}

// Validate reports every rule that would make the game unplayable.
func (c Config) Validate() error {
	var errs []error

	if c.Session.InitialTime <= 0 {
		errs = append(errs, fmt.Errorf("session.initial_time must be positive, got %d", c.Session.InitialTime))
	}
	if c.Session.MissPenalty < 0 {
		errs = append(errs, fmt.Errorf("session.miss_penalty must not be negative, got %d", c.Session.MissPenalty))
	}
	if c.Session.TickInterval <= 0 {
		errs = append(errs, fmt.Errorf("session.tick_interval must be positive, got %s", c.Session.TickInterval))
	}
	if c.Difficulty.MinDelta <= 0 {
		errs = append(errs, fmt.Errorf("difficulty.min_delta must be positive, got %g", c.Difficulty.MinDelta))
	}
	if c.Difficulty.InitialDelta < c.Difficulty.MinDelta {
		errs = append(errs, fmt.Errorf("difficulty.initial_delta (%g) must be >= min_delta (%g)",
			c.Difficulty.InitialDelta, c.Difficulty.MinDelta))
	}
	if c.Difficulty.InitialDelta > 100 {
		errs = append(errs, fmt.Errorf("difficulty.initial_delta must be <= 100, got %g", c.Difficulty.InitialDelta))
	}
	if c.Difficulty.Slope < 0 {
		errs = append(errs, fmt.Errorf("difficulty.slope must not be negative, got %g", c.Difficulty.Slope))
	}
	if c.Milestone.Every <= 0 {
		errs = append(errs, fmt.Errorf("milestone.every must be positive, got %d", c.Milestone.Every))
	}
	if !(c.Grades.S >= c.Grades.A && c.Grades.A >= c.Grades.B) {
		errs = append(errs, fmt.Errorf("grades must satisfy s >= a >= b, got s=%d a=%d b=%d",
			c.Grades.S, c.Grades.A, c.Grades.B))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid: %w", errors.Join(errs...))
	}
	return nil
}
