package heist

import (
	"fmt"
	"strconv"

	"github.com/vovakirdan/array-heist/internal/core"
)

const (
	cellWidth  = 5 // box width per slot, borders included
	cellHeight = 3 // box height per slot, borders included

	boardW = Capacity * cellWidth
	minW   = boardW + 2
	minH   = ViewRows
)

// ViewRows is the number of screen rows Render needs.
const ViewRows = 12

// Overlay is transient presentation state layered over a Snapshot:
// animation cues, the board cursor, and the latest feedback message.
type Overlay struct {
	Shift       *ShiftDescriptor // slots to flash after insert/delete
	Step        *SearchStep      // window under comparison
	Cursor      int              // board cursor index, -1 when hidden
	Message     *Event           // feedback line
	EmptyGlyph  string           // drawn inside empty slots
	ShowIndices bool
}

// Render draws the session onto dst.
func Render(dst *core.Screen, snap Snapshot, ov Overlay) {
	dst.Clear()

	if dst.Width() < minW || dst.Height() < minH {
		renderTooSmall(dst)
		return
	}

	boardX := (dst.Width() - boardW) / 2
	renderHUD(dst, snap, boardX)
	renderBoard(dst, snap, ov, boardX, 3)
	renderFooter(dst, snap, ov, boardX, 3+cellHeight+2)
}

// renderTooSmall shows a "window too small" message.
func renderTooSmall(dst *core.Screen) {
	y := dst.Height() / 2
	dst.DrawTextCentered(y, "Window too small", core.ColorYellow)
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need at least %dx%d", minW, minH), core.ColorGray)
}

// renderHUD draws the title, level and clock.
func renderHUD(dst *core.Screen, snap Snapshot, boardX int) {
	dst.DrawTextCentered(0, "CODE BREAKER – THE ARRAY HEIST", core.ColorBrightCyan)

	level := fmt.Sprintf("Level %d/%d  %s", snap.Level, MaxLevel, snap.LevelName)
	dst.DrawText(boardX, 1, level)

	clock := fmt.Sprintf("Time: %2ds", snap.Remaining)
	dst.DrawTextColored(boardX+boardW-len(clock), 1, clock, clockColor(snap))

	dst.DrawTextColored(boardX, 2, "Target: "+snap.Target, core.ColorGray)

	filled := fmt.Sprintf("Slots %d/%d", snap.Filled, Capacity)
	dst.DrawTextColored(boardX+boardW-len(filled), 2, filled, core.ColorGray)
}

// renderBoard draws one box per slot, the index row and the cursor.
func renderBoard(dst *core.Screen, snap Snapshot, ov Overlay, boardX, boardY int) {
	glyph := ov.EmptyGlyph
	if glyph == "" {
		glyph = "–"
	}

	cells := core.Row(boardX, boardY, cellWidth, cellHeight, Capacity)
	for i, slot := range snap.Slots {
		cell := cells[i]
		color := slotColor(i, slot, ov)
		dst.DrawBox(cell, color)

		text := glyph
		if d, ok := slot.Digit(); ok {
			text = strconv.Itoa(d)
		}
		dst.DrawTextColored(cell.CenterX(), cell.Y+1, text, color)

		if ov.ShowIndices {
			dst.DrawTextColored(cell.CenterX(), cell.Bottom(), strconv.Itoa(i), core.ColorGray)
		}
		if ov.Cursor == i {
			dst.SetColored(cell.CenterX(), cell.Bottom()+1, '▲', core.ColorBrightYellow)
		}
	}
}

// renderFooter draws the empty notice or scan line, feedback, hint and
// next-step prompt.
func renderFooter(dst *core.Screen, snap Snapshot, ov Overlay, boardX, y int) {
	switch {
	case snap.Empty():
		dst.DrawTextColored(boardX, y, "Array is empty. Insert a digit to begin.", core.ColorGray)
	case snap.Searching:
		scan := fmt.Sprintf("Scanning for %s across %d windows...", snap.SearchPattern, snap.SearchWindows)
		dst.DrawTextColored(boardX, y, scan, core.ColorCyan)
	}
	y++

	if ov.Message != nil {
		dst.DrawTextColored(boardX, y, ov.Message.Message, severityColor(ov.Message.Severity))
	}
	y++

	if snap.HintVisible {
		dst.DrawTextColored(boardX, y, snap.Hint, core.ColorMagenta)
	}
	y++

	switch {
	case snap.Status == StatusWon && snap.CanAdvance:
		dst.DrawTextColored(boardX, y, "Press Ctrl+N for the next level.", core.ColorBrightGreen)
	case snap.Status == StatusWon:
		dst.DrawTextColored(boardX, y, "All levels cracked! Press Ctrl+R to play again.", core.ColorBrightGreen)
	case snap.Status == StatusTimedOut:
		dst.DrawTextColored(boardX, y, "Press Ctrl+R to retry this level.", core.ColorBrightRed)
	}
}

// slotColor picks the box color for slot i. Search highlights win over
// shift flashes, which win over plain content.
func slotColor(i int, slot Slot, ov Overlay) core.Color {
	if ov.Step != nil && ov.Step.Window().Contains(i) {
		if ov.Step.Matched {
			return core.ColorBrightGreen
		}
		return core.ColorBrightRed
	}
	if ov.Shift != nil {
		switch {
		case ov.Shift.Op == OpInsert && ov.Shift.Index == i:
			return core.ColorGreen
		case ov.Shift.Op == OpDelete && ov.Shift.Index == i:
			return core.ColorOrange
		case ov.Shift.Shifted.Contains(i):
			return core.ColorCyan
		}
	}
	if slot.IsEmpty() {
		return core.ColorGray
	}
	return core.ColorWhite
}

func clockColor(snap Snapshot) core.Color {
	switch {
	case snap.Status == StatusWon:
		return core.ColorGreen
	case snap.Status == StatusTimedOut, snap.Remaining <= 10:
		return core.ColorRed
	case snap.Remaining <= 20:
		return core.ColorYellow
	default:
		return core.ColorDefault
	}
}

func severityColor(s Severity) core.Color {
	switch s {
	case SeverityOK:
		return core.ColorGreen
	case SeverityWarn:
		return core.ColorYellow
	case SeverityErr:
		return core.ColorRed
	default:
		return core.ColorDefault
	}
}
