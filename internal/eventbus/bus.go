// Package eventbus provides an ordered, multi-reader broadcast log.
// One writer appends events; every subscriber owns an independent cursor
// and reads at its own pace. Events are never removed during a session.
package eventbus

// Cursor marks how far a subscriber has read.
// The zero value is not usable; obtain cursors from Bus.Subscribe.
type Cursor struct {
	offset int
	bus    any // owning bus, guards against cross-bus reads
}

// Offset returns the number of events this cursor has consumed
// since the bus was created.
func (c *Cursor) Offset() int {
	return c.offset
}

// Bus is an unbounded append-only event log with per-reader cursors.
// It is not safe for concurrent use; a combat session drives it from a
// single goroutine.
type Bus[T any] struct {
	events []T
}

// New creates an empty bus.
func New[T any]() *Bus[T] {
	return &Bus[T]{}
}

// Publish appends an event. It never blocks.
func (b *Bus[T]) Publish(evt T) {
	b.events = append(b.events, evt)
}

// Subscribe registers a new reader positioned at the current end of the log.
// Events published before the call are not delivered to it.
func (b *Bus[T]) Subscribe() *Cursor {
	return &Cursor{offset: len(b.events), bus: b}
}

// ReadSince returns every event published since the cursor's last read,
// in publication order, and moves the cursor to the end.
// The returned slice is a copy and may be retained by the caller.
func (b *Bus[T]) ReadSince(c *Cursor) []T {
	if c == nil || c.bus != any(b) {
		return nil
	}
	if c.offset >= len(b.events) {
		return nil
	}

	out := make([]T, len(b.events)-c.offset)
	copy(out, b.events[c.offset:])
	c.offset = len(b.events)
	return out
}

// Pending returns how many events the cursor has not read yet.
func (b *Bus[T]) Pending(c *Cursor) int {
	if c == nil || c.bus != any(b) {
		return 0
	}
	return len(b.events) - c.offset
}

// Len returns the total number of events ever published.
func (b *Bus[T]) Len() int {
	return len(b.events)
}
