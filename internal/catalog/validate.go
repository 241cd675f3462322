package catalog

import "fmt"

// ValidationError contains details about validation failure.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Validate checks that a catalog is complete enough for the engine to run
// without further bounds checks.
// Checks:
//   - Every rotation of every piece is a square 3x3 or 4x4 matrix with 4 cells
//   - All rotations of a piece share one size
//   - Color indexes refer to the palette
//   - Every kick list is non-empty
//   - Score values are non-negative
func Validate(c *Catalog) error {
	if c == nil {
		return ValidationError{Code: "NIL_CATALOG", Message: "catalog is nil"}
	}

	if err := validateShapes(c); err != nil {
		return err
	}
	if err := validateColors(c); err != nil {
		return err
	}
	if err := validateKicks(c); err != nil {
		return err
	}
	if err := validateScore(c.Score); err != nil {
		return err
	}
	return nil
}

func validateShapes(c *Catalog) error {
	for _, t := range AllPieces {
		size := c.shapes[t][RotSpawn].Size()
		if size < 3 {
			return ValidationError{
				Code:    "SHAPE_SIZE",
				Message: fmt.Sprintf("piece %s matrix is %dx%d, want 3x3 or 4x4", t, size, size),
			}
		}
		for r := range Rotation(RotationCount) {
			s := c.shapes[t][r]
			if s.Size() != size {
				return ValidationError{
					Code:    "MIXED_SIZE",
					Message: fmt.Sprintf("piece %s rotation %s is %dx%d, rotation 0 is %dx%d", t, r, s.Size(), s.Size(), size, size),
				}
			}
			if n := len(s.Blocks()); n != 4 {
				return ValidationError{
					Code:    "BLOCK_COUNT",
					Message: fmt.Sprintf("piece %s rotation %s has %d cells, want 4", t, r, n),
				}
			}
		}
	}
	return nil
}

func validateColors(c *Catalog) error {
	if len(c.palette) == 0 {
		return ValidationError{Code: "EMPTY_PALETTE", Message: "palette has no colors"}
	}
	for _, t := range AllPieces {
		if idx := c.colors[t]; idx < 1 || idx > len(c.palette) {
			return ValidationError{
				Code:    "COLOR_RANGE",
				Message: fmt.Sprintf("piece %s color %d is outside palette 1..%d", t, idx, len(c.palette)),
			}
		}
	}
	return nil
}

func validateKicks(c *Catalog) error {
	names := [...]string{KickNormal: "normal", KickI: "i"}
	for cat, table := range c.kicks {
		for r := range table {
			for d, offsets := range table[r] {
				if len(offsets) == 0 {
					return ValidationError{
						Code: "EMPTY_KICKS",
						Message: fmt.Sprintf("kick table %q has no candidates for %s %s",
							names[cat], Rotation(r), Direction(d)),
					}
				}
			}
		}
	}
	return nil
}

func validateScore(s ScoreTable) error {
	values := make([]int, 0, 14)
	values = append(values, s.Lines[:]...)
	values = append(values, s.TSpin[:]...)
	values = append(values, s.TSpinMini[:]...)
	values = append(values, s.ComboBase, s.SoftDrop, s.HardDrop)
	for _, v := range values {
		if v < 0 {
			return ValidationError{
				Code:    "NEGATIVE_SCORE",
				Message: fmt.Sprintf("score table contains negative value %d", v),
			}
		}
	}
	return nil
}
