package combat

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
)

// ErrTargetNotFound is returned when an intent names a monster that is not
// part of the session. The intent is dropped without touching any state.
var ErrTargetNotFound = errors.New("combat: target not found")

// Resolver owns all health mutations during a session.
type Resolver struct {
	player   *Player
	monsters []*Monster
	logger   *log.Logger
}

// NewResolver creates a resolver over the session's units.
func NewResolver(player *Player, monsters []*Monster, logger *log.Logger) *Resolver {
	return &Resolver{
		player:   player,
		monsters: monsters,
		logger:   logger,
	}
}

// monster finds a monster by id.
func (r *Resolver) monster(id MonsterID) *Monster {
	for _, m := range r.monsters {
		if m.ID == id {
			return m
		}
	}
	return nil
}

// Intent synthesizes the scripted action of a monster actor: its own
// attack, aimed at the player. Returns nil for the player or an unknown id.
func (r *Resolver) Intent(actor UnitReference) *Event {
	if actor.IsPlayer() {
		return nil
	}

	m := r.monster(actor.Monster)
	if m == nil {
		r.logger.Warn("scripted actor not found", "actor", actor)
		return nil
	}

	spell := SpellTemplate{Name: m.AttackName, Damage: m.Attack}
	return NewEvent(m.Name, PlayerRef(), spell)
}

// Resolve applies the intent to its target and appends the results.
// On ErrTargetNotFound the event is left without results.
func (r *Resolver) Resolve(ev *Event) error {
	r.logger.Debug("resolving combat event", "source", ev.Source, "target", ev.Target, "spell", ev.Spell.Name)

	var health *CurrMax
	if ev.Target.IsPlayer() {
		health = &r.player.Health
	} else {
		m := r.monster(ev.Target.Monster)
		if m == nil {
			return fmt.Errorf("%w: %s", ErrTargetNotFound, ev.Target)
		}
		health = &m.Health
	}

	applyDamage(health, ev)
	return nil
}

// applyDamage is the single damage rule shared by every target.
// The reported damage never exceeds the health actually removed, and a
// lethal hit is followed by Death.
func applyDamage(health *CurrMax, ev *Event) {
	damage := ev.Spell.Damage
	if damage < 0 {
		damage = 0
	}

	remaining := health.Current - damage
	if remaining > 0 {
		ev.addResult(TakeDamage{Amount: damage})
		health.Current = remaining
		return
	}

	ev.addResult(TakeDamage{Amount: max(health.Current, 0)})
	ev.addResult(Death{})
	health.Current = 0
}
