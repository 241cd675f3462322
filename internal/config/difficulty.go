package config

import (
	"math"
	"time"
)

// DifficultyManager calculates the gravity interval from lines cleared or elapsed time.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level (0.0 to 1.0).
func (d *DifficultyManager) Level(lines int, elapsed time.Duration) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	var progress float64
	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}

	switch d.cfg.Progression.Type {
	case "lines":
		progress = float64(lines) / maxAt
	case "time":
		progress = elapsed.Seconds() / maxAt
	default:
		return d.initialLevel
	}

	progress = clampF(progress, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// Speed returns the gravity speed factor: 1 at level 0, 1+speed_multiplier at level 1.
func (d *DifficultyManager) Speed(lines int, elapsed time.Duration) float64 {
	return 1.0 + d.Level(lines, elapsed)*d.cfg.Scaling.SpeedMultiplier
}

// GravityInterval returns the time between gravity steps.
// The result never drops below min_gravity_ms (or 1ms when unset).
func (d *DifficultyManager) GravityInterval(base time.Duration, lines int, elapsed time.Duration) time.Duration {
	speed := d.Speed(lines, elapsed)
	if speed <= 0 {
		speed = 1
	}
	interval := time.Duration(float64(base) / speed)

	floor := time.Duration(d.cfg.Scaling.MinGravityMS) * time.Millisecond
	if floor <= 0 {
		floor = time.Millisecond
	}
	if interval < floor {
		interval = floor
	}
	return interval
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
