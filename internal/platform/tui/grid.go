package tui

import "github.com/vovakirdan/tui-skirmish/internal/combat"

// ButtonGrid lays buttons out row-major and tracks keyboard focus.
type ButtonGrid struct {
	buttons []combat.ButtonBinding
	cols    int
	focus   int
}

// NewButtonGrid creates a grid with cols columns; focus starts on the first button.
func NewButtonGrid(buttons []combat.ButtonBinding, cols int) *ButtonGrid {
	if cols <= 0 {
		cols = 1
	}
	return &ButtonGrid{buttons: buttons, cols: cols}
}

// Len returns the number of buttons.
func (g *ButtonGrid) Len() int {
	return len(g.buttons)
}

// Cols returns the number of columns.
func (g *ButtonGrid) Cols() int {
	return g.cols
}

// Rows returns the number of rows needed for all buttons.
func (g *ButtonGrid) Rows() int {
	return (len(g.buttons) + g.cols - 1) / g.cols
}

// FocusIndex returns the index of the focused button.
func (g *ButtonGrid) FocusIndex() int {
	return g.focus
}

// Focused returns the focused button.
func (g *ButtonGrid) Focused() (combat.ButtonBinding, bool) {
	return g.At(g.focus)
}

// At returns the i-th button in layout order.
func (g *ButtonGrid) At(i int) (combat.ButtonBinding, bool) {
	if i < 0 || i >= len(g.buttons) {
		return combat.ButtonBinding{}, false
	}
	return g.buttons[i], true
}

// Move shifts focus by columns and rows, wrapping within the row or
// column. Cells past the last button are skipped.
func (g *ButtonGrid) Move(dx, dy int) {
	n := len(g.buttons)
	if n == 0 {
		return
	}
	row, col := g.focus/g.cols, g.focus%g.cols

	if dx != 0 {
		width := min(g.cols, n-row*g.cols)
		col = ((col+dx)%width + width) % width
	}
	if dy != 0 {
		rows := g.Rows()
		for range rows {
			row = ((row+dy)%rows + rows) % rows
			if row*g.cols+col < n {
				break
			}
		}
	}
	g.focus = row*g.cols + col
}
