package eventlog

import (
	"github.com/vovakirdan/tui-skirmish/internal/combat"
	"github.com/vovakirdan/tui-skirmish/internal/eventbus"
)

// Sink reads outcomes from a bus and appends one line per outcome.
// It never touches combat state.
type Sink struct {
	bus    *eventbus.Bus[combat.Event]
	cursor *eventbus.Cursor
	buffer *Buffer
	namer  Namer
}

// NewSink subscribes to bus. Only outcomes published after the call are logged.
func NewSink(bus *eventbus.Bus[combat.Event], namer Namer, buffer *Buffer) *Sink {
	return &Sink{
		bus:    bus,
		cursor: bus.Subscribe(),
		buffer: buffer,
		namer:  namer,
	}
}

// Drain formats every unread outcome.
func (s *Sink) Drain() {
	for _, ev := range s.bus.ReadSince(s.cursor) {
		s.buffer.Append(Format(ev, s.namer))
	}
}

// Buffer returns the log the sink writes to.
func (s *Sink) Buffer() *Buffer {
	return s.buffer
}

// Attach creates a sink on the session's bus and registers it as an
// in-tick subscriber.
func Attach(session *combat.Session, buffer *Buffer) *Sink {
	sink := NewSink(session.Bus(), session, buffer)
	session.AddSubscriber(sink)
	return sink
}
