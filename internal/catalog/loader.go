package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

//go:embed defaults/catalog.yaml
var defaultCatalogYAML []byte

// catalogFile mirrors the YAML layout of a catalog data file.
type catalogFile struct {
	Palette []string             `yaml:"palette"`
	Pieces  map[string]pieceFile `yaml:"pieces"`
	Kicks   struct {
		Normal []kickFile `yaml:"normal"`
		I      []kickFile `yaml:"i"`
	} `yaml:"kicks"`
	Score scoreFile `yaml:"score"`
	Spin  struct {
		UpgradeTransitions [][2]int `yaml:"upgrade_transitions"`
	} `yaml:"spin"`
}

type pieceFile struct {
	Color     int        `yaml:"color"`
	Rotations [][]string `yaml:"rotations"`
}

type kickFile struct {
	CW  [][2]int `yaml:"cw"`
	CCW [][2]int `yaml:"ccw"`
}

type scoreFile struct {
	Lines     []int `yaml:"lines"`
	TSpin     []int `yaml:"tspin"`
	TSpinMini []int `yaml:"tspin_mini"`
	ComboBase int   `yaml:"combo_base"`
	SoftDrop  int   `yaml:"soft_drop"`
	HardDrop  int   `yaml:"hard_drop"`
}

// Parse decodes and validates a catalog from YAML.
func Parse(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("catalog: cannot parse YAML: %w", err)
	}

	c, err := f.build()
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	if err := Validate(c); err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	return c, nil
}

// build converts the file layout into a Catalog. Structural problems that
// cannot be represented in a Catalog (missing pieces, wrong table lengths)
// are reported here; everything else is left to Validate.
func (f catalogFile) build() (*Catalog, error) {
	c := &Catalog{}

	for _, name := range f.Palette {
		col, err := core.ParseColor(name)
		if err != nil {
			return nil, ValidationError{Code: "BAD_COLOR", Message: err.Error()}
		}
		c.palette = append(c.palette, col)
	}

	for _, t := range AllPieces {
		p, ok := f.Pieces[t.String()]
		if !ok {
			return nil, ValidationError{
				Code:    "MISSING_PIECE",
				Message: fmt.Sprintf("piece %s is not defined", t),
			}
		}
		if len(p.Rotations) != RotationCount {
			return nil, ValidationError{
				Code:    "ROTATION_COUNT",
				Message: fmt.Sprintf("piece %s has %d rotations, want %d", t, len(p.Rotations), RotationCount),
			}
		}
		for r, rows := range p.Rotations {
			if err := checkRows(t, Rotation(r), rows); err != nil {
				return nil, err
			}
			c.shapes[t][r] = NewShape(rows)
		}
		c.colors[t] = p.Color
	}
	if len(f.Pieces) != PieceCount {
		return nil, ValidationError{
			Code:    "UNKNOWN_PIECE",
			Message: fmt.Sprintf("expected %d pieces, found %d", PieceCount, len(f.Pieces)),
		}
	}

	tables := []struct {
		name string
		cat  KickCategory
		rows []kickFile
	}{
		{"normal", KickNormal, f.Kicks.Normal},
		{"i", KickI, f.Kicks.I},
	}
	for _, tbl := range tables {
		if len(tbl.rows) != RotationCount {
			return nil, ValidationError{
				Code:    "KICK_TABLE",
				Message: fmt.Sprintf("kick table %q has %d rows, want %d", tbl.name, len(tbl.rows), RotationCount),
			}
		}
		for r, row := range tbl.rows {
			c.kicks[tbl.cat][r][CW] = toPoints(row.CW)
			c.kicks[tbl.cat][r][CCW] = toPoints(row.CCW)
		}
	}

	s := f.Score
	if len(s.Lines) != 4 || len(s.TSpin) != 4 || len(s.TSpinMini) != 3 {
		return nil, ValidationError{
			Code: "SCORE_TABLE",
			Message: fmt.Sprintf("score table needs 4 line, 4 tspin and 3 tspin_mini entries, got %d/%d/%d",
				len(s.Lines), len(s.TSpin), len(s.TSpinMini)),
		}
	}
	copy(c.Score.Lines[:], s.Lines)
	copy(c.Score.TSpin[:], s.TSpin)
	copy(c.Score.TSpinMini[:], s.TSpinMini)
	c.Score.ComboBase = s.ComboBase
	c.Score.SoftDrop = s.SoftDrop
	c.Score.HardDrop = s.HardDrop

	for _, tr := range f.Spin.UpgradeTransitions {
		if tr[0] < 0 || tr[0] >= RotationCount || tr[1] < 0 || tr[1] >= RotationCount {
			return nil, ValidationError{
				Code:    "BAD_TRANSITION",
				Message: fmt.Sprintf("upgrade transition %v is outside 0..3", tr),
			}
		}
		c.SpinUpgrades = append(c.SpinUpgrades, Transition{From: Rotation(tr[0]), To: Rotation(tr[1])})
	}

	return c, nil
}

func checkRows(t PieceType, r Rotation, rows []string) error {
	size := len(rows)
	if size == 0 || size > MaxShapeSize {
		return ValidationError{
			Code:    "SHAPE_SIZE",
			Message: fmt.Sprintf("piece %s rotation %s has %d rows, want 1..%d", t, r, size, MaxShapeSize),
		}
	}
	for _, row := range rows {
		if len(row) != size {
			return ValidationError{
				Code:    "SHAPE_NOT_SQUARE",
				Message: fmt.Sprintf("piece %s rotation %s row %q is not %d wide", t, r, row, size),
			}
		}
	}
	return nil
}

func toPoints(pairs [][2]int) []core.Point {
	pts := make([]core.Point, len(pairs))
	for i, p := range pairs {
		pts[i] = core.Pt(p[0], p[1])
	}
	return pts
}

// Load loads the catalog.
// Search order: customPath -> ~/.tetris/catalog.yaml -> ./configs/catalog.yaml -> embedded default
// The first file that exists is used; if it is invalid, Load reports it.
func Load(customPath string) (*Catalog, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return nil, fmt.Errorf("catalog: failed to read %s: %w", customPath, err)
		}
		c, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", customPath, err)
		}
		return c, nil
	}

	for _, path := range []string{userCatalogPath(), filepath.Join("configs", "catalog.yaml")} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		c, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return c, nil
	}

	return Default(), nil
}

func userCatalogPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tetris", "catalog.yaml")
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the embedded standard catalog.
// It panics if the embedded data is invalid, which the tests rule out.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Parse(defaultCatalogYAML)
		if err != nil {
			panic(fmt.Sprintf("embedded catalog is invalid: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// DefaultYAML returns the embedded catalog source, for use as a template.
func DefaultYAML() []byte {
	return defaultCatalogYAML
}
