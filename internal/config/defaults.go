package config

import (
	_ "embed"
)

//go:embed defaults/tetris.yaml
var defaultTetrisYAML []byte

// DefaultTetrisConfig returns the default tetris configuration.
// It mirrors defaults/tetris.yaml and is used when the embedded file fails to parse.
func DefaultTetrisConfig() TetrisConfig {
	return TetrisConfig{
		Timing: TetrisTiming{
			GravityMS:   1000,
			LockDelayMS: 500,
			DASMS:       170,
			ARRMS:       50,
			SoftDropMS:  50,
		},
		Rules: TetrisRules{
			MaxLockResets:   15,
			LockResetPolicy: LockResetCap,
			Preview:         3,
			SpawnX:          3,
			SpawnY:          19,
			SprintLines:     40,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "lines",
				MaxAt: 150,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 19.0,
				MinGravityMS:    16,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game, or nil.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "tetris", "tetris_sprint":
		return defaultTetrisYAML
	default:
		return nil
	}
}
