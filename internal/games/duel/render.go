package duel

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vovakirdan/tile-duel/internal/core"
	"github.com/vovakirdan/tile-duel/internal/games/duel/engine"
)

const (
	cellWidth  = 6 // Width of each cell (including left border)
	cellHeight = 2 // Height of each cell (including top border)

	boardW = engine.Size*cellWidth + 1
	boardH = engine.Size*cellHeight + 1
	gapW   = 5 // Space between the boards, separator in the middle

	hudHeight    = 3
	footerHeight = 4

	minWidth  = 2*boardW + gapW
	minHeight = hudHeight + boardH + footerHeight
)

// tileColors follows the classic palette, warming up as tiles grow.
var tileColors = map[int]core.Color{
	2:    core.ColorWhite,
	4:    core.ColorBrightWhite,
	8:    core.ColorYellow,
	16:   core.ColorOrange,
	32:   core.ColorRed,
	64:   core.ColorBrightRed,
	128:  core.ColorBrightYellow,
	256:  core.ColorGreen,
	512:  core.ColorBrightGreen,
	1024: core.ColorCyan,
	2048: core.ColorBrightMagenta,
	4096: core.ColorMagenta,
}

// tileColor picks the color of a tile. Tiles at or above target use ColorTarget.
func tileColor(v, target int) core.Color {
	if v >= target {
		return core.ColorTarget
	}
	if c, ok := tileColors[v]; ok {
		return c
	}
	return core.ColorBrightCyan
}

// Render draws both boards, the HUD and any overlay.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	totalW := 2*boardW + gapW
	left := (g.screenW - totalW) / 2
	right := left + boardW + gapW
	boardY := hudHeight

	g.renderHUD(dst, left, totalW)

	// AI on the left, player on the right
	g.renderBoard(dst, g.match.AI, left, boardY)
	g.renderBoard(dst, g.match.Player, right, boardY)
	dst.DrawVLine(left+boardW+gapW/2, boardY-1, boardH+footerHeight, '┃')

	footerY := boardY + boardH
	g.renderSide(dst, "AI", g.match.AI, left, footerY)
	g.renderSide(dst, "Player", g.match.Player, right, footerY)

	hint := "Arrows/WASD move  P pause  R restart  Q quit"
	dst.DrawTextColor((g.screenW-len(hint))/2, footerY+3, hint, core.ColorGray)

	g.renderOverlays(dst, left, boardY, totalW)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	msg := "Window too small"
	y := g.screenH / 2
	dst.DrawText((g.screenW-len(msg))/2, y, msg)

	hint := fmt.Sprintf("Need at least %dx%d", minWidth, minHeight)
	dst.DrawText((g.screenW-len(hint))/2, y+1, hint)
}

// renderHUD draws the title, target and difficulty.
func (g *Game) renderHUD(dst *core.Screen, x, w int) {
	title := "TILE DUEL"
	dst.DrawTextColor(x+(w-len(title))/2, 0, title, core.ColorBrightYellow)

	info := fmt.Sprintf("Target: %d   AI: %s (depth %d)", g.target, g.difficulty.Title(), g.preset.Depth)
	dst.DrawText(x+(w-len(info))/2, 1, info)
}

// renderBoard draws a 7x7 grid with colored tiles.
func (g *Game) renderBoard(dst *core.Screen, s *Session, boardX, boardY int) {
	for y := range engine.Size + 1 {
		for x := range engine.Size + 1 {
			px := boardX + x*cellWidth
			py := boardY + y*cellHeight

			var corner rune
			switch {
			case y == 0 && x == 0:
				corner = '┌'
			case y == 0 && x == engine.Size:
				corner = '┐'
			case y == engine.Size && x == 0:
				corner = '└'
			case y == engine.Size && x == engine.Size:
				corner = '┘'
			case y == 0:
				corner = '┬'
			case y == engine.Size:
				corner = '┴'
			case x == 0:
				corner = '├'
			case x == engine.Size:
				corner = '┤'
			default:
				corner = '┼'
			}
			dst.Set(px, py, corner)

			if x < engine.Size {
				for i := 1; i < cellWidth; i++ {
					dst.Set(px+i, py, '─')
				}
			}
			if y < engine.Size {
				dst.DrawVLine(px, py+1, cellHeight-1, '│')
			}
		}
	}

	for r := range engine.Size {
		for c := range engine.Size {
			v := s.Board.Get(r, c)
			if v == 0 {
				continue
			}
			text := strconv.Itoa(v)
			pad := max((cellWidth-1-len(text))/2, 0)
			dst.DrawTextColor(boardX+c*cellWidth+1+pad, boardY+r*cellHeight+1, text, tileColor(v, s.Target))
		}
	}
}

// renderSide draws a side's timer and move counter under its board.
func (g *Game) renderSide(dst *core.Screen, name string, s *Session, x, y int) {
	secs := s.Seconds()
	timer := fmt.Sprintf("%s Time: %d:%02d", name, secs/60, secs%60)
	moves := fmt.Sprintf("%s Moves: %d", name, s.MoveCount)
	dst.DrawText(x+(boardW-len(timer))/2, y, timer)
	dst.DrawText(x+(boardW-len(moves))/2, y+1, moves)

	var status string
	switch {
	case s.HasWon():
		status = "REACHED TARGET"
	case s.Finished():
		status = "NO MOVES LEFT"
	}
	if status != "" {
		dst.DrawTextColor(x+(boardW-len(status))/2, y+2, status, core.ColorBrightGreen)
	}
}

// renderOverlays draws pause, banner and result boxes over the boards.
func (g *Game) renderOverlays(dst *core.Screen, x, boardY, w int) {
	centerX := x + w/2
	centerY := boardY + boardH/2

	switch {
	case g.paused:
		drawOverlay(dst, centerX, centerY, "PAUSED", "Press P to resume")
	case g.result != nil:
		lines := strings.Split(g.result.Message(), "\n")
		lines = append(lines, "Press R to play again")
		drawOverlay(dst, centerX, centerY, lines...)
	case g.banner != "":
		drawOverlay(dst, centerX, centerY, g.banner)
	}
}

// drawOverlay draws a centered boxed text overlay.
func drawOverlay(dst *core.Screen, centerX, centerY int, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len(line))
	}

	w := maxLen + 4
	h := len(lines) + 2
	box := core.NewRect(centerX-w/2, centerY-h/2, w, h)

	dst.FillRect(box, ' ')
	dst.DrawBox(box)
	for i, line := range lines {
		dst.DrawTextColor(box.X+(w-len(line))/2, box.Y+1+i, line, core.ColorBrightWhite)
	}
}
