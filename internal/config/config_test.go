package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestEmbeddedMatchesHardcodedDefault(t *testing.T) {
	cfg, err := parseTetris(defaultTetrisYAML)
	if err != nil {
		t.Fatalf("embedded config does not parse: %v", err)
	}
	if cfg != DefaultTetrisConfig() {
		t.Errorf("embedded config %+v differs from DefaultTetrisConfig %+v", cfg, DefaultTetrisConfig())
	}
}

func TestLoadTetrisCustomPathPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tetris.yaml")
	data := []byte("timing:\n  lock_delay_ms: 900\nrules:\n  lock_reset_policy: force\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadTetris(path)
	if err != nil {
		t.Fatalf("LoadTetris failed: %v", err)
	}
	if cfg.Timing.LockDelayMS != 900 {
		t.Errorf("expected lock delay 900, got %d", cfg.Timing.LockDelayMS)
	}
	if cfg.Rules.LockResetPolicy != LockResetForce {
		t.Errorf("expected policy force, got %q", cfg.Rules.LockResetPolicy)
	}
	// Unset fields keep defaults
	if cfg.Timing.GravityMS != 1000 {
		t.Errorf("expected default gravity 1000, got %d", cfg.Timing.GravityMS)
	}
}

func TestLoadTetrisRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"bad yaml", "timing: [1, 2"},
		{"zero gravity", "timing:\n  gravity_ms: 0\n"},
		{"unknown policy", "rules:\n  lock_reset_policy: sometimes\n"},
		{"huge preview", "rules:\n  preview: 9\n"},
		{"unknown progression", "difficulty:\n  progression:\n    type: score\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "tetris.yaml")
			if err := os.WriteFile(path, []byte(tt.yaml), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadTetris(path); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestLoadTetrisMissingCustomPath(t *testing.T) {
	if _, err := LoadTetris(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadTetrisFallsBackToEmbedded(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, err := LoadTetris("")
	if err != nil {
		t.Fatalf("LoadTetris failed: %v", err)
	}
	if cfg != DefaultTetrisConfig() {
		t.Errorf("expected default config, got %+v", cfg)
	}
}

func TestLoadTetrisReportsBrokenUserFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(t.TempDir())

	dir := filepath.Join(home, ".tetris", "configs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "tetris.yaml"), []byte("timing: [oops"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadTetris("")
	if err == nil {
		t.Fatal("expected an error for a broken user config")
	}
	if !strings.Contains(err.Error(), filepath.Join(dir, "tetris.yaml")) {
		t.Errorf("error should name the broken file: %v", err)
	}
}

func TestLoadTetrisReportsInvalidLocalFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	if err := os.MkdirAll("configs", 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join("configs", "tetris.yaml"), []byte("timing:\n  gravity_ms: -5\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadTetris(""); err == nil || !strings.Contains(err.Error(), "gravity_ms") {
		t.Errorf("expected a validation error, got %v", err)
	}
}

func TestApplyTetrisPreset(t *testing.T) {
	cfg := DefaultTetrisConfig()
	ApplyTetrisPreset(&cfg, DifficultyFixed)
	if cfg.Difficulty.Enabled {
		t.Error("fixed preset should disable progression")
	}

	cfg = DefaultTetrisConfig()
	ApplyTetrisPreset(&cfg, DifficultyHard)
	if !cfg.Difficulty.Enabled || cfg.Difficulty.InitialLevel != 0.2 {
		t.Errorf("hard preset: enabled=%v level=%v", cfg.Difficulty.Enabled, cfg.Difficulty.InitialLevel)
	}
	if cfg.Rules.LockResetPolicy != LockResetForce {
		t.Errorf("hard preset should force lock at the reset cap, got %q", cfg.Rules.LockResetPolicy)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("hard preset produced invalid config: %v", err)
	}
}

func TestParsePreset(t *testing.T) {
	if p, ok := ParsePreset(""); !ok || p != DifficultyNormal {
		t.Errorf("empty preset: got %q, %v", p, ok)
	}
	if p, ok := ParsePreset("easy"); !ok || p != DifficultyEasy {
		t.Errorf("easy preset: got %q, %v", p, ok)
	}
	if _, ok := ParsePreset("insane"); ok {
		t.Error("expected unknown preset to be rejected")
	}
}

func TestDifficultyLevelByLines(t *testing.T) {
	dm := NewDifficultyManager(DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: "lines", MaxAt: 100},
		Scaling:     ScalingConfig{SpeedMultiplier: 1.0},
	})

	tests := []struct {
		lines int
		want  float64
	}{
		{0, 0.0},
		{50, 0.5},
		{100, 1.0},
		{500, 1.0},
	}
	for _, tt := range tests {
		if got := dm.Level(tt.lines, 0); got != tt.want {
			t.Errorf("Level(%d) = %v, expected %v", tt.lines, got, tt.want)
		}
	}
}

func TestDifficultyLevelByTime(t *testing.T) {
	dm := NewDifficultyManager(DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: "time", MaxAt: 60},
	})
	if got := dm.Level(1000, 30*time.Second); got != 0.5 {
		t.Errorf("expected level 0.5 at 30s, got %v", got)
	}
}

func TestDifficultyDisabledKeepsInitialLevel(t *testing.T) {
	dm := NewDifficultyManager(DifficultyConfig{
		Enabled:      false,
		InitialLevel: 0.3,
		Progression:  ProgressionConfig{Type: "lines", MaxAt: 10},
	})
	if got := dm.Level(100, time.Hour); got != 0.3 {
		t.Errorf("expected 0.3, got %v", got)
	}
	if dm.IsEnabled() {
		t.Error("expected progression disabled")
	}
}

func TestGravityInterval(t *testing.T) {
	dm := NewDifficultyManager(DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: "lines", MaxAt: 100},
		Scaling:     ScalingConfig{SpeedMultiplier: 3.0, MinGravityMS: 100},
	})
	base := time.Second

	if got := dm.GravityInterval(base, 0, 0); got != time.Second {
		t.Errorf("level 0: expected 1s, got %v", got)
	}
	if got := dm.GravityInterval(base, 100, 0); got != 250*time.Millisecond {
		t.Errorf("level 1: expected 250ms, got %v", got)
	}

	dm = NewDifficultyManager(DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: "lines", MaxAt: 1},
		Scaling:     ScalingConfig{SpeedMultiplier: 100, MinGravityMS: 100},
	})
	if got := dm.GravityInterval(base, 1, 0); got != 100*time.Millisecond {
		t.Errorf("expected floor 100ms, got %v", got)
	}
}
