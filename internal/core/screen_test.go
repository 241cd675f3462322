package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(40, 24)

	if s.Width() != 40 || s.Height() != 24 {
		t.Fatalf("dimensions = %dx%d, expected 40x24", s.Width(), s.Height())
	}

	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if c := s.GetCell(x, y); c != blankCell {
				t.Fatalf("new screen cell (%d, %d) = %+v, expected blank", x, y, c)
			}
		}
	}
}

func TestScreenSetColored(t *testing.T) {
	s := NewScreen(10, 10)

	s.SetColored(3, 4, '█', ColorCyan)
	c := s.GetCell(3, 4)
	if c.Rune != '█' || c.Color != ColorCyan {
		t.Errorf("GetCell(3, 4) = %+v, expected cyan block", c)
	}

	// Out of bounds writes are dropped, reads return blank
	s.SetColored(-1, 0, 'A', ColorRed)
	s.SetColored(0, 10, 'A', ColorRed)
	if s.Get(-1, 0) != ' ' || s.Get(0, 10) != ' ' {
		t.Error("out of bounds Get should return space")
	}
}

func TestScreenClearResetsColor(t *testing.T) {
	s := NewScreen(4, 4)
	s.FillRect(NewRect(0, 0, 4, 4), '#', ColorRed)
	s.Clear()

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if c := s.GetCell(x, y); c.Rune != ' ' || c.Color != ColorDefault {
				t.Errorf("after Clear, cell (%d, %d) = %+v", x, y, c)
			}
		}
	}
}

func TestScreenDrawTextClipsAndCounts(t *testing.T) {
	s := NewScreen(12, 2)
	s.DrawTextColored(9, 0, "Tetris", ColorYellow)

	if s.Row(0) != "         Tet" {
		t.Errorf("Row(0) = %q", s.Row(0))
	}
	if s.GetCell(10, 0).Color != ColorYellow {
		t.Error("clipped text should keep its color")
	}

	// Multi-byte runes advance one column each
	s.DrawText(0, 1, "·'")
	if s.Get(1, 1) != '\'' {
		t.Errorf("rune after a multi-byte rune landed at wrong column: %q", s.Row(1))
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(20, 3)
	s.DrawTextCentered(NewRect(4, 0, 10, 3), 1, "HOLD")

	// (10 - 4) / 2 = 3 columns into the rect
	if !strings.HasPrefix(s.Row(1)[7:], "HOLD") {
		t.Errorf("centered text misplaced: %q", s.Row(1))
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawBox(NewRect(1, 1, 5, 4), ColorGray)

	corners := map[[2]int]rune{
		{1, 1}: '┌',
		{5, 1}: '┐',
		{1, 4}: '└',
		{5, 4}: '┘',
	}
	for pos, want := range corners {
		if got := s.Get(pos[0], pos[1]); got != want {
			t.Errorf("corner %v = %q, expected %q", pos, got, want)
		}
	}
	for x := 2; x < 5; x++ {
		if s.Get(x, 1) != '─' || s.Get(x, 4) != '─' {
			t.Errorf("horizontal edge missing at x=%d", x)
		}
	}
	for y := 2; y < 4; y++ {
		if s.Get(1, y) != '│' || s.Get(5, y) != '│' {
			t.Errorf("vertical edge missing at y=%d", y)
		}
	}
	if s.GetCell(1, 1).Color != ColorGray {
		t.Error("box should use the given color")
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(3, 2)
	s.DrawText(0, 0, "[]#")
	s.DrawTextColored(0, 1, "##", ColorRed)

	if got := s.String(); got != "[]#\n## " {
		t.Errorf("String() = %q", got)
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawTextColored(0, 0, "Score", ColorGreen)

	s.Resize(4, 3)
	if s.Width() != 4 || s.Height() != 3 {
		t.Fatalf("after resize, dimensions should be 4x3, got %dx%d", s.Width(), s.Height())
	}
	if s.Row(0) != "Scor" {
		t.Errorf("content should be preserved, row 0 = %q", s.Row(0))
	}

	s.Resize(12, 6)
	if !strings.HasPrefix(s.Row(0), "Scor ") {
		t.Errorf("content should be preserved after enlarging, row 0 = %q", s.Row(0))
	}
	if s.GetCell(0, 0).Color != ColorGreen {
		t.Error("resize should keep cell colors")
	}
}
