package combat

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-skirmish/internal/core"
	"github.com/vovakirdan/tui-skirmish/internal/eventbus"
)

// Subscriber drains its own cursor on the session's bus once per tick,
// after publication and before the turn advances.
type Subscriber interface {
	Drain()
}

// Setup holds everything needed to start a fight.
type Setup struct {
	Player    Player
	Monsters  []Monster
	TurnOrder []UnitReference
	Buttons   []ButtonBinding
	Target    *UnitReference // Target of player spells; nil means the first monster
}

// Status summarizes the fight for display. It never affects scheduling.
type Status int

const (
	StatusOngoing Status = iota
	StatusVictory        // Every monster is at zero health
	StatusDefeat         // The player is at zero health
)

// String returns a human-readable status.
func (s Status) String() string {
	switch s {
	case StatusOngoing:
		return "ongoing"
	case StatusVictory:
		return "victory"
	case StatusDefeat:
		return "defeat"
	default:
		return "unknown"
	}
}

// TickResult reports what happened during one tick.
type TickResult struct {
	Actor    UnitReference
	Event    *Event // Published outcome, nil if nothing resolved
	Advanced bool   // Whether the turn moved on
	Dropped  bool   // An intent existed but its target could not be resolved
}

// Session is the combat context. It owns the units, the scheduler, the
// button layout and the outcome bus, and hands them to the components
// that need them.
type Session struct {
	player     *Player
	monsters   []*Monster
	turns      *TurnOrder
	buttons    ButtonMap
	bus        *eventbus.Bus[Event]
	dispatcher *Dispatcher
	resolver   *Resolver
	subs       []Subscriber
	logger     *log.Logger
	resolved   int
}

var errNoMonsters = errors.New("combat: at least one monster is required")

// NewSession validates the setup and wires the components.
func NewSession(setup Setup, logger *log.Logger) (*Session, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if len(setup.Monsters) == 0 {
		return nil, errNoMonsters
	}
	if err := validHealth("player", setup.Player.Health); err != nil {
		return nil, err
	}

	player := setup.Player
	if player.Name == "" {
		player.Name = "You"
	}

	monsters := make([]*Monster, 0, len(setup.Monsters))
	seen := make(map[MonsterID]bool, len(setup.Monsters))
	for i := range setup.Monsters {
		m := setup.Monsters[i]
		if seen[m.ID] {
			return nil, fmt.Errorf("combat: duplicate monster id %d", m.ID)
		}
		seen[m.ID] = true
		if err := validHealth(m.Name, m.Health); err != nil {
			return nil, err
		}
		if m.Attack < 0 {
			return nil, fmt.Errorf("combat: monster %q has negative attack %d", m.Name, m.Attack)
		}
		monsters = append(monsters, &m)
	}

	order := setup.TurnOrder
	if order == nil {
		order = defaultOrder(monsters)
	}
	for _, u := range order {
		if !u.IsPlayer() && !seen[u.Monster] {
			return nil, fmt.Errorf("combat: turn order names unknown %s", u)
		}
	}
	turns, err := NewTurnOrder(order)
	if err != nil {
		return nil, err
	}

	target := monsters[0].Ref()
	if setup.Target != nil {
		target = *setup.Target
		if !target.IsPlayer() && !seen[target.Monster] {
			logger.Warn("player target is not in the session; spells will be dropped", "target", target)
		}
	}

	buttons, err := NewButtonMap(setup.Buttons)
	if err != nil {
		return nil, err
	}

	s := &Session{
		player:   &player,
		monsters: monsters,
		turns:    turns,
		buttons:  buttons,
		bus:      eventbus.New[Event](),
		logger:   logger,
	}
	s.dispatcher = NewDispatcher(buttons, player.Name, target, logger)
	s.resolver = NewResolver(s.player, monsters, logger)
	return s, nil
}

// defaultOrder puts the player first, then monsters in setup order.
func defaultOrder(monsters []*Monster) []UnitReference {
	order := []UnitReference{PlayerRef()}
	for _, m := range monsters {
		order = append(order, m.Ref())
	}
	return order
}

func validHealth(who string, h CurrMax) error {
	if h.Max <= 0 || h.Current < 0 || h.Current > h.Max {
		return fmt.Errorf("combat: %s has invalid health %s", who, h)
	}
	return nil
}

// AddSubscriber registers a reader drained inside every tick.
func (s *Session) AddSubscriber(sub Subscriber) {
	s.subs = append(s.subs, sub)
}

// Tick runs one pass: pick the intent, resolve it, publish the outcome,
// let subscribers drain, then advance the turn. Without an intent (or
// with an unresolvable target) nothing changes.
func (s *Session) Tick(frame core.InputFrame) TickResult {
	actor := s.turns.Current()
	result := TickResult{Actor: actor}

	var intent *Event
	if actor.IsPlayer() {
		intent = s.dispatcher.Dispatch(actor, frame)
	} else {
		if !frame.Empty() {
			// Clicks are still routed through the dispatcher so they get logged.
			s.dispatcher.Dispatch(actor, frame)
		}
		intent = s.resolver.Intent(actor)
	}
	if intent == nil {
		return result
	}

	if err := s.resolver.Resolve(intent); err != nil {
		s.logger.Warn("dropping combat event", "error", err, "source", intent.Source)
		result.Dropped = true
		return result
	}

	outcome := intent.Clone()
	s.bus.Publish(outcome)
	for _, sub := range s.subs {
		sub.Drain()
	}

	s.turns.Advance()
	s.resolved++
	s.logger.Debug("turn resolved", "event", outcome.String(), "next", s.turns.Current())

	result.Event = intent
	result.Advanced = true
	return result
}

// Player returns the player.
func (s *Session) Player() Player {
	return *s.player
}

// Monsters returns a snapshot of all monsters in setup order.
func (s *Session) Monsters() []Monster {
	out := make([]Monster, len(s.monsters))
	for i, m := range s.monsters {
		out[i] = *m
	}
	return out
}

// Monster returns a snapshot of one monster.
func (s *Session) Monster(id MonsterID) (Monster, bool) {
	for _, m := range s.monsters {
		if m.ID == id {
			return *m, true
		}
	}
	return Monster{}, false
}

// TurnOrder returns the session's scheduler. Callers must not advance it.
func (s *Session) TurnOrder() *TurnOrder {
	return s.turns
}

// Current returns whose turn it is.
func (s *Session) Current() UnitReference {
	return s.turns.Current()
}

// Buttons returns the read-only button map.
func (s *Session) Buttons() ButtonMap {
	return s.buttons
}

// Bus returns the outcome bus for subscribers that need a cursor.
func (s *Session) Bus() *eventbus.Bus[Event] {
	return s.bus
}

// Turn returns how many intents have been resolved.
func (s *Session) Turn() int {
	return s.resolved
}

// Name returns a display name for a unit reference.
func (s *Session) Name(u UnitReference) string {
	if u.IsPlayer() {
		return s.player.Name
	}
	if m, ok := s.Monster(u.Monster); ok && m.Name != "" {
		return m.Name
	}
	return u.String()
}

// Status derives victory or defeat from current health.
func (s *Session) Status() Status {
	if s.player.Health.Dead() {
		return StatusDefeat
	}
	for _, m := range s.monsters {
		if !m.Health.Dead() {
			return StatusOngoing
		}
	}
	return StatusVictory
}
