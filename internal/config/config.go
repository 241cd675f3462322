// Package config provides YAML-based game configuration loading and
// difficulty management for the tetris engine.
package config

import "time"

// TetrisConfig contains all configuration for a tetris session.
type TetrisConfig struct {
	Timing     TetrisTiming     `yaml:"timing"`
	Rules      TetrisRules      `yaml:"rules"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// TetrisTiming defines the clock parameters, in milliseconds.
type TetrisTiming struct {
	GravityMS   int `yaml:"gravity_ms"`    // Interval between gravity steps at difficulty 0
	LockDelayMS int `yaml:"lock_delay_ms"` // Grace period after landing
	DASMS       int `yaml:"das_ms"`        // Delay before the first auto-repeat
	ARRMS       int `yaml:"arr_ms"`        // Interval between further auto-repeats
	SoftDropMS  int `yaml:"soft_drop_ms"`  // Gravity interval while soft drop is held
}

// Gravity returns the base gravity interval.
func (t TetrisTiming) Gravity() time.Duration { return ms(t.GravityMS) }

// LockDelay returns the lock delay.
func (t TetrisTiming) LockDelay() time.Duration { return ms(t.LockDelayMS) }

// DAS returns the delayed auto shift.
func (t TetrisTiming) DAS() time.Duration { return ms(t.DASMS) }

// ARR returns the auto repeat rate interval.
func (t TetrisTiming) ARR() time.Duration { return ms(t.ARRMS) }

// SoftDrop returns the soft drop interval.
func (t TetrisTiming) SoftDrop() time.Duration { return ms(t.SoftDropMS) }

func ms(v int) time.Duration {
	return time.Duration(v) * time.Millisecond
}

// TetrisRules defines gameplay rules that are not timing.
type TetrisRules struct {
	MaxLockResets   int    `yaml:"max_lock_resets"`
	LockResetPolicy string `yaml:"lock_reset_policy"` // "cap" or "force"
	Preview         int    `yaml:"preview"`           // Number of queued pieces shown
	SpawnX          int    `yaml:"spawn_x"`
	SpawnY          int    `yaml:"spawn_y"`
	SprintLines     int    `yaml:"sprint_lines"` // Lines to clear in sprint mode
}

// Lock reset policies.
const (
	LockResetCap   = "cap"   // Stop granting resets, the timer still runs out
	LockResetForce = "force" // Lock immediately once the cap is reached
)

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over a session.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "lines", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Lines, or seconds, at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Gravity speed added at max difficulty
	MinGravityMS    int     `yaml:"min_gravity_ms"`   // Floor for the gravity interval
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets lists the accepted preset names in display order.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}

// ParsePreset resolves a preset name. The empty string means normal.
func ParsePreset(name string) (DifficultyPreset, bool) {
	if name == "" {
		return DifficultyNormal, true
	}
	for _, p := range Presets {
		if string(p) == name {
			return p, true
		}
	}
	return "", false
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.0
	case DifficultyHard:
		return 0.2 // roughly 200ms gravity with the default scaling
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
