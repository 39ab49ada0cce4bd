package combat

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-skirmish/internal/core"
)

// SpellTemplate describes what a cast does.
type SpellTemplate struct {
	Name   string
	Damage int // Never negative
}

// ButtonAction is what a button does when clicked.
// Implementations: CastSpell, Nothing.
type ButtonAction interface {
	buttonAction()
}

// CastSpell casts Spell at the player's current target.
type CastSpell struct {
	Spell SpellTemplate
}

func (CastSpell) buttonAction() {}

// Nothing is a placeholder button with no combat effect.
type Nothing struct{}

func (Nothing) buttonAction() {}

// ButtonBinding pairs a stable button id and its label with an action.
type ButtonBinding struct {
	ID     core.ButtonID
	Label  string
	Action ButtonAction
}

// ErrDuplicateButton is returned when two bindings share an id.
var ErrDuplicateButton = errors.New("combat: duplicate button id")

// ButtonMap maps stable button ids to actions. Built once, read-only after.
type ButtonMap struct {
	actions map[core.ButtonID]ButtonAction
	order   []ButtonBinding
}

// NewButtonMap builds the map from bindings in layout order.
// A binding with an empty ID gets "button-<n>" (1-indexed position).
func NewButtonMap(bindings []ButtonBinding) (ButtonMap, error) {
	m := ButtonMap{
		actions: make(map[core.ButtonID]ButtonAction, len(bindings)),
		order:   make([]ButtonBinding, 0, len(bindings)),
	}

	for i, b := range bindings {
		if b.ID == "" {
			b.ID = core.ButtonID(fmt.Sprintf("button-%d", i+1))
		}
		if b.Action == nil {
			b.Action = Nothing{}
		}
		if cast, ok := b.Action.(CastSpell); ok && cast.Spell.Damage < 0 {
			return ButtonMap{}, fmt.Errorf("combat: button %q: negative spell damage %d", b.ID, cast.Spell.Damage)
		}
		if _, exists := m.actions[b.ID]; exists {
			return ButtonMap{}, fmt.Errorf("%w: %q", ErrDuplicateButton, b.ID)
		}
		m.actions[b.ID] = b.Action
		m.order = append(m.order, b)
	}

	return m, nil
}

// Lookup returns the action bound to id.
func (m ButtonMap) Lookup(id core.ButtonID) (ButtonAction, bool) {
	a, ok := m.actions[id]
	return a, ok
}

// Bindings returns the buttons in layout order.
func (m ButtonMap) Bindings() []ButtonBinding {
	out := make([]ButtonBinding, len(m.order))
	copy(out, m.order)
	return out
}

// Len returns the number of mapped buttons.
func (m ButtonMap) Len() int {
	return len(m.order)
}
