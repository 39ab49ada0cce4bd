// Package eventlog turns combat outcomes into displayable log lines.
package eventlog

import (
	"strings"

	"github.com/vovakirdan/tui-skirmish/internal/core"
)

// Segment is a run of text drawn in one color.
type Segment struct {
	Text  string
	Color core.Color
}

// Line is one log entry made of colored segments.
type Line struct {
	Segments []Segment
}

// Plain creates a single-segment line in the default color.
func Plain(text string) Line {
	return Line{Segments: []Segment{{Text: text}}}
}

// Add appends a segment and returns the line for chaining.
func (l Line) Add(text string, color core.Color) Line {
	l.Segments = append(l.Segments, Segment{Text: text, Color: color})
	return l
}

// Text returns the line without color information.
func (l Line) Text() string {
	var sb strings.Builder
	for _, s := range l.Segments {
		sb.WriteString(s.Text)
	}
	return sb.String()
}

// Buffer is the append-only combat log shown to the player.
type Buffer struct {
	lines []Line
}

// NewBuffer creates a buffer seeded with an intro line.
// An empty intro leaves the buffer empty.
func NewBuffer(intro string) *Buffer {
	b := &Buffer{}
	if intro != "" {
		b.Append(Plain(intro))
	}
	return b
}

// Append adds a line at the end.
func (b *Buffer) Append(l Line) {
	b.lines = append(b.lines, l)
}

// Lines returns a copy of every line in order.
func (b *Buffer) Lines() []Line {
	out := make([]Line, len(b.lines))
	copy(out, b.lines)
	return out
}

// Len returns the number of lines.
func (b *Buffer) Len() int {
	return len(b.lines)
}

// Tail returns at most n of the newest lines, oldest first.
func (b *Buffer) Tail(n int) []Line {
	if n <= 0 {
		return nil
	}
	start := max(0, len(b.lines)-n)
	out := make([]Line, len(b.lines)-start)
	copy(out, b.lines[start:])
	return out
}

// String joins the plain text of all lines with newlines.
func (b *Buffer) String() string {
	parts := make([]string, len(b.lines))
	for i, l := range b.lines {
		parts[i] = l.Text()
	}
	return strings.Join(parts, "\n")
}
