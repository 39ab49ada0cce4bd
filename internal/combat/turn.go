package combat

import "errors"

// ErrEmptyTurnOrder is returned when a turn order is built without participants.
var ErrEmptyTurnOrder = errors.New("combat: turn order must not be empty")

// TurnOrder is a round-robin scheduler over combat participants.
// Units are never removed from the rotation, dead or alive.
type TurnOrder struct {
	units []UnitReference
	head  int
}

// NewTurnOrder creates a scheduler whose first actor is units[0].
func NewTurnOrder(units []UnitReference) (*TurnOrder, error) {
	if len(units) == 0 {
		return nil, ErrEmptyTurnOrder
	}

	owned := make([]UnitReference, len(units))
	copy(owned, units)
	return &TurnOrder{units: owned}, nil
}

// Current returns the unit whose turn it is.
func (t *TurnOrder) Current() UnitReference {
	return t.units[t.head]
}

// Advance hands the turn to the next unit, wrapping around.
func (t *TurnOrder) Advance() {
	t.head = (t.head + 1) % len(t.units)
}

// Len returns the number of participants in the rotation.
func (t *TurnOrder) Len() int {
	return len(t.units)
}

// Units returns the rotation starting with the current unit.
func (t *TurnOrder) Units() []UnitReference {
	out := make([]UnitReference, 0, len(t.units))
	out = append(out, t.units[t.head:]...)
	out = append(out, t.units[:t.head]...)
	return out
}
