package tetris

import (
	"fmt"

	"github.com/vovakirdan/tui-tetris/internal/catalog"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris/engine"
)

// Visual characters for rendering
const (
	BlockGlyph = "██"
	GhostGlyph = "░░"
	EmptyGlyph = " ·"
)

// Layout in screen cells. Each board column is two characters wide.
const (
	cellW     = 2
	boardW    = engine.Width*cellW + 2
	boardH    = engine.VisibleRows + 2
	panelW    = 14
	holdH     = 6
	layoutW   = panelW + 1 + boardW + 1 + panelW
	layoutH   = boardH + 1
	panelText = panelW - 2
)

// MinScreenSize returns the smallest screen the game can draw on.
func MinScreenSize() (w, h int) {
	return layoutW, layoutH
}

// Render draws the current game state to the screen buffer.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.session == nil {
		return
	}

	w, h := dst.Width(), dst.Height()
	if w < layoutW || h < layoutH {
		full := core.NewRect(0, 0, w, h)
		dst.DrawTextCentered(full, h/2-1, "Terminal too small")
		dst.DrawTextCentered(full, h/2, fmt.Sprintf("need %dx%d, have %dx%d", layoutW, layoutH, w, h))
		return
	}

	ox := (w - layoutW) / 2
	oy := (h - layoutH) / 2
	holdRect := core.NewRect(ox, oy, panelW, holdH)
	boardRect := core.NewRect(holdRect.Right()+1, oy, boardW, boardH)
	nextX := boardRect.Right() + 1

	g.drawBoard(dst, boardRect)
	g.drawHold(dst, holdRect)
	g.drawStats(dst, ox+1, holdRect.Bottom()+1)

	debugY := oy
	if n := g.cfg.Rules.Preview; n > 0 {
		nextRect := core.NewRect(nextX, oy, panelW, 3*n+2)
		g.drawNext(dst, nextRect, n)
		debugY = nextRect.Bottom() + 1
	}
	if g.session.Debug() {
		g.drawDebug(dst, nextX+1, debugY, oy+layoutH)
	}

	if g.banner != "" {
		dst.DrawTextCentered(core.NewRect(ox, 0, layoutW, 1), boardRect.Bottom(), g.banner)
	}

	switch {
	case g.session.GameOver() && g.Completed():
		drawCenteredMessage(dst, boardRect, "SPRINT CLEAR", FormatElapsed(g.session.Stats().Elapsed), "R to restart")
	case g.session.GameOver():
		drawCenteredMessage(dst, boardRect, "GAME OVER", fmt.Sprintf("Score %d", g.session.Stats().Score), "R to restart")
	case g.session.Paused():
		drawCenteredMessage(dst, boardRect, "PAUSED", "P to resume")
	}
}

// drawBoard draws the well, the locked cells, the ghost and the active piece.
// Only the visible rows are drawn; the buffer zone above stays hidden.
func (g *Game) drawBoard(dst *core.Screen, r core.Rect) {
	dst.DrawBox(r, core.ColorGray)

	cat := g.session.Catalog()
	b := g.session.Board()
	for y := engine.BufferRows; y < engine.Rows; y++ {
		for x := range engine.Width {
			if idx := b.Cell(x, y); idx != 0 {
				g.drawCell(dst, r, x, y, BlockGlyph, cat.Color(idx))
			} else {
				g.drawCell(dst, r, x, y, EmptyGlyph, core.ColorDarkGray)
			}
		}
	}

	if g.session.GameOver() {
		return
	}

	active := g.session.Active()
	color := cat.PieceColor(active.Type)
	for _, c := range g.session.Ghost().Cells(cat) {
		g.drawCell(dst, r, c.X, c.Y, GhostGlyph, color)
	}
	for _, c := range active.Cells(cat) {
		g.drawCell(dst, r, c.X, c.Y, BlockGlyph, color)
	}
}

// drawCell draws a two-character board cell. Cells in the buffer zone are skipped.
func (g *Game) drawCell(dst *core.Screen, r core.Rect, x, y int, glyph string, c core.Color) {
	if y < engine.BufferRows {
		return
	}
	dst.DrawTextColored(r.X+1+x*cellW, r.Y+1+y-engine.BufferRows, glyph, c)
}

func (g *Game) drawHold(dst *core.Screen, r core.Rect) {
	dst.DrawBox(r, core.ColorGray)
	dst.DrawText(r.X+2, r.Y, " HOLD ")

	held, canHold := g.session.HoldSlot()
	if held == catalog.NoPiece {
		return
	}
	color := g.session.Catalog().PieceColor(held)
	if !canHold {
		color = core.ColorDarkGray
	}
	drawPreviewPiece(dst, g.session.Catalog(), held, r.X+1, r.Y+2, panelText, color)
}

func (g *Game) drawNext(dst *core.Screen, r core.Rect, n int) {
	dst.DrawBox(r, core.ColorGray)
	dst.DrawText(r.X+2, r.Y, " NEXT ")

	cat := g.session.Catalog()
	for i, t := range g.session.Preview(n) {
		drawPreviewPiece(dst, cat, t, r.X+1, r.Y+1+i*3, panelText, cat.PieceColor(t))
	}
}

// drawPreviewPiece draws the spawn rotation of t trimmed to its blocks,
// centered in a column of the given width.
func drawPreviewPiece(dst *core.Screen, cat *catalog.Catalog, t catalog.PieceType, x, y, width int, c core.Color) {
	blocks := cat.Shape(t, catalog.RotSpawn).Blocks()
	if len(blocks) == 0 {
		return
	}
	minX, minY, maxX := blocks[0].X, blocks[0].Y, blocks[0].X
	for _, b := range blocks[1:] {
		minX = min(minX, b.X)
		minY = min(minY, b.Y)
		maxX = max(maxX, b.X)
	}
	offset := (width - (maxX-minX+1)*cellW) / 2
	for _, b := range blocks {
		dst.DrawTextColored(x+offset+(b.X-minX)*cellW, y+b.Y-minY, BlockGlyph, c)
	}
}

func (g *Game) drawStats(dst *core.Screen, x, y int) {
	st := g.session.Stats()

	lines := fmt.Sprintf("%d", st.Lines)
	if g.mode == ModeSprint {
		lines = fmt.Sprintf("%d/%d", st.Lines, g.cfg.Rules.SprintLines)
	}

	rows := []struct{ label, value string }{
		{"SCORE", fmt.Sprintf("%d", st.Score)},
		{"LINES", lines},
		{"TIME", FormatElapsed(st.Elapsed)},
		{"SPEED", fmt.Sprintf("%.1fx", g.Speed())},
	}
	for i, row := range rows {
		dst.DrawTextColored(x, y+i*3, row.label, core.ColorGray)
		dst.DrawText(x, y+i*3+1, row.value)
	}
}

// drawDebug lists the lock-delay bookkeeping, stopping at maxY.
func (g *Game) drawDebug(dst *core.Screen, x, y, maxY int) {
	st := g.session.Stats()
	held, canHold := g.session.HoldSlot()

	landed := "no"
	if st.Phase == engine.PhaseLanded {
		landed = "yes"
	}
	lines := []string{
		"DEBUG",
		fmt.Sprintf("hold   %s %v", held, canHold),
		fmt.Sprintf("landed %s", landed),
		fmt.Sprintf("lock   %dms", st.LandedFor.Milliseconds()),
		fmt.Sprintf("resets %d/%d", st.LockResets, g.cfg.Rules.MaxLockResets),
		fmt.Sprintf("move   %s", st.LastMove),
		fmt.Sprintf("combo  %d", st.Combo),
		fmt.Sprintf("grav   %dms", g.session.GravityInterval().Milliseconds()),
		fmt.Sprintf("stack  %d", g.session.Board().StackHeight()),
	}
	for i, line := range lines {
		if y+i >= maxY {
			return
		}
		dst.DrawTextColored(x, y+i, line, core.ColorYellow)
	}
}

// drawCenteredMessage draws a boxed message in the middle of r.
func drawCenteredMessage(dst *core.Screen, r core.Rect, lines ...string) {
	width := 0
	for _, l := range lines {
		width = max(width, len([]rune(l)))
	}
	box := r.Centered(width+4, len(lines)+2)
	dst.FillRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorWhite)
	for i, l := range lines {
		dst.DrawTextCentered(box, box.Y+1+i, l)
	}
}
