package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadTetris loads tetris configuration.
// Search order: customPath -> ~/.tetris/configs/tetris.yaml -> ./configs/tetris.yaml -> embedded default
// Fields missing from a file keep their default values. A file that exists
// but does not parse or validate is an error, never silently skipped.
func LoadTetris(customPath string) (TetrisConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return TetrisConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parseTetris(data)
		if err != nil {
			return TetrisConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory, then the local configs directory
	for _, path := range []string{userConfigPath("tetris.yaml"), filepath.Join("configs", "tetris.yaml")} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		cfg, err := parseTetris(data)
		if err != nil {
			return TetrisConfig{}, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
		return cfg, nil
	}

	// Use embedded default YAML
	cfg, err := parseTetris(defaultTetrisYAML)
	if err != nil {
		return DefaultTetrisConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parseTetris decodes YAML over the hardcoded defaults and validates the result.
func parseTetris(data []byte) (TetrisConfig, error) {
	cfg := DefaultTetrisConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return TetrisConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return TetrisConfig{}, err
	}
	return cfg, nil
}

// Validate rejects values the engine cannot run with.
func (c TetrisConfig) Validate() error {
	t := c.Timing
	switch {
	case t.GravityMS <= 0:
		return fmt.Errorf("timing.gravity_ms must be positive, got %d", t.GravityMS)
	case t.LockDelayMS <= 0:
		return fmt.Errorf("timing.lock_delay_ms must be positive, got %d", t.LockDelayMS)
	case t.DASMS < 0 || t.ARRMS < 0:
		return fmt.Errorf("timing.das_ms and timing.arr_ms must not be negative")
	case t.SoftDropMS <= 0:
		return fmt.Errorf("timing.soft_drop_ms must be positive, got %d", t.SoftDropMS)
	}

	r := c.Rules
	if r.MaxLockResets < 0 {
		return fmt.Errorf("rules.max_lock_resets must not be negative, got %d", r.MaxLockResets)
	}
	if r.LockResetPolicy != LockResetCap && r.LockResetPolicy != LockResetForce {
		return fmt.Errorf("rules.lock_reset_policy must be %q or %q, got %q", LockResetCap, LockResetForce, r.LockResetPolicy)
	}
	if r.Preview < 0 || r.Preview > 6 {
		return fmt.Errorf("rules.preview must be in 0..6, got %d", r.Preview)
	}
	if r.SprintLines <= 0 {
		return fmt.Errorf("rules.sprint_lines must be positive, got %d", r.SprintLines)
	}

	switch c.Difficulty.Progression.Type {
	case "lines", "time", "none":
	default:
		return fmt.Errorf("difficulty.progression.type must be lines, time or none, got %q", c.Difficulty.Progression.Type)
	}
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tetris", "configs", filename)
}

// ApplyTetrisPreset modifies the config based on a difficulty preset.
func ApplyTetrisPreset(cfg *TetrisConfig, preset DifficultyPreset) {
	if IsFixedPreset(preset) {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust forgiveness based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Timing.LockDelayMS = 750
		cfg.Rules.MaxLockResets = 30
	case DifficultyHard:
		cfg.Timing.LockDelayMS = 350
		cfg.Rules.MaxLockResets = 8
		cfg.Rules.LockResetPolicy = LockResetForce
	}
}
