package combat

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-skirmish/internal/core"
)

// Dispatcher turns clicks from the front end into player intents.
// Clicks outside the player's turn are dropped, never buffered.
type Dispatcher struct {
	buttons ButtonMap
	source  string        // Name written as the intent's source
	target  UnitReference // Target of every player spell
	logger  *log.Logger
}

// NewDispatcher creates a dispatcher for the given button layout.
func NewDispatcher(buttons ButtonMap, source string, target UnitReference, logger *log.Logger) *Dispatcher {
	return &Dispatcher{
		buttons: buttons,
		source:  source,
		target:  target,
		logger:  logger,
	}
}

// Dispatch returns the intent produced by this tick's clicks, or nil.
// When several qualifying clicks arrive in one frame the last one wins.
func (d *Dispatcher) Dispatch(current UnitReference, frame core.InputFrame) *Event {
	if !current.IsPlayer() {
		if !frame.Empty() {
			d.logger.Debug("ignoring clicks outside player turn", "actor", current, "clicks", len(frame.Clicks))
		}
		return nil
	}

	var intent *Event
	for _, click := range frame.Clicks {
		if click.Type != core.ClickStart {
			continue
		}

		action, ok := d.buttons.Lookup(click.Button)
		if !ok {
			d.logger.Warn("button not mapped", "button", click.Button)
			continue
		}

		switch a := action.(type) {
		case CastSpell:
			d.logger.Debug("casting", "button", click.Button, "spell", a.Spell.Name, "damage", a.Spell.Damage)
			intent = NewEvent(d.source, d.target, a.Spell)
		case Nothing:
			d.logger.Info("pressed a nothing button", "button", click.Button)
		}
	}

	return intent
}
