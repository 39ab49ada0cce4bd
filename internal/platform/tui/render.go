package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-skirmish/internal/combat"
	"github.com/vovakirdan/tui-skirmish/internal/core"
	"github.com/vovakirdan/tui-skirmish/internal/eventlog"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:     lipgloss.NewStyle(),
	core.ColorRed:         lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:       lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:      lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBlue:        lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorMagenta:     lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	core.ColorCyan:        lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorWhite:       lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorBrightRed:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	core.ColorBrightGreen: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorBrightBlue:  lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	core.ColorOrange:      lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGray:        lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	buttonStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			Align(lipgloss.Center)

	focusedButtonStyle = buttonStyle.
				BorderForeground(lipgloss.Color("229")).
				Foreground(lipgloss.Color("229")).
				Bold(true)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229"))

	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// RenderLine converts a log line to a styled string.
// Adjacent segments keep their own colors.
func RenderLine(l eventlog.Line) string {
	var sb strings.Builder
	for _, seg := range l.Segments {
		style, ok := colorStyles[seg.Color]
		if !ok {
			style = colorStyles[core.ColorDefault]
		}
		sb.WriteString(style.Render(seg.Text))
	}
	return sb.String()
}

// RenderLog renders every line of the buffer, one per row.
func RenderLog(b *eventlog.Buffer) string {
	lines := b.Lines()
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = RenderLine(l)
	}
	return strings.Join(out, "\n")
}

// healthBar renders "name [#####.....] 40/50" with a color that follows
// the remaining fraction.
func healthBar(name string, h combat.CurrMax, width int) string {
	if width < 4 {
		width = 4
	}
	filled := 0
	if h.Max > 0 {
		filled = h.Current * width / h.Max
	}
	if h.Current > 0 && filled == 0 {
		filled = 1
	}

	color := core.ColorGreen
	switch {
	case h.Dead():
		color = core.ColorGray
	case h.Current*4 <= h.Max:
		color = core.ColorRed
	case h.Current*2 <= h.Max:
		color = core.ColorYellow
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return fmt.Sprintf("%-10s %s %s", name, colorStyles[color].Render(bar), h)
}

// renderButtons lays the grid out as rows of bordered cells.
func renderButtons(grid *ButtonGrid, cellWidth int) string {
	rows := make([]string, 0, grid.Rows())
	for r := range grid.Rows() {
		cells := make([]string, 0, grid.Cols())
		for c := range grid.Cols() {
			i := r*grid.Cols() + c
			b, ok := grid.At(i)
			if !ok {
				break
			}
			label := b.Label
			if i < 9 {
				label = fmt.Sprintf("%d %s", i+1, label)
			}
			style := buttonStyle
			if i == grid.FocusIndex() {
				style = focusedButtonStyle
			}
			cells = append(cells, style.Width(cellWidth).Render(label))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}
