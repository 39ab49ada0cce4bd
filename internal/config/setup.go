package config

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-skirmish/internal/combat"
	"github.com/vovakirdan/tui-skirmish/internal/core"
)

// Encounter is a validated fight ready to become a session.
type Encounter struct {
	ID    string
	Name  string
	Intro string
	Setup combat.Setup
}

// ToEncounter validates the config and converts it into session setup,
// scaling monster stats with the configured difficulty.
func (c EncounterConfig) ToEncounter() (Encounter, error) {
	if c.Player.Health <= 0 {
		return Encounter{}, fmt.Errorf("%w: player health must be positive, got %d", ErrInvalidEncounter, c.Player.Health)
	}
	if len(c.Monsters) == 0 {
		return Encounter{}, fmt.Errorf("%w: no monsters", ErrInvalidEncounter)
	}

	diff := NewDifficultyManager(c.Difficulty)
	monsters := make([]combat.Monster, 0, len(c.Monsters))
	for _, m := range c.Monsters {
		if m.Health <= 0 {
			return Encounter{}, fmt.Errorf("%w: monster %d health must be positive, got %d", ErrInvalidEncounter, m.ID, m.Health)
		}
		if m.Attack < 0 {
			return Encounter{}, fmt.Errorf("%w: monster %d attack must not be negative, got %d", ErrInvalidEncounter, m.ID, m.Attack)
		}
		name := m.Name
		if name == "" {
			name = combat.MonsterRef(combat.MonsterID(m.ID)).String()
		}
		attackName := m.AttackName
		if attackName == "" {
			attackName = "Attack"
		}
		monsters = append(monsters, combat.Monster{
			ID:         combat.MonsterID(m.ID),
			Name:       name,
			Attack:     diff.Attack(m.Attack),
			AttackName: attackName,
			Health:     combat.Full(diff.Health(m.Health)),
		})
	}

	var order []combat.UnitReference
	if len(c.TurnOrder) > 0 {
		order = make([]combat.UnitReference, 0, len(c.TurnOrder))
		for _, s := range c.TurnOrder {
			u, err := combat.ParseUnitReference(s)
			if err != nil {
				return Encounter{}, fmt.Errorf("%w: turn_order: %w", ErrInvalidEncounter, err)
			}
			order = append(order, u)
		}
	}

	var target *combat.UnitReference
	if c.Target != "" {
		u, err := combat.ParseUnitReference(c.Target)
		if err != nil {
			return Encounter{}, fmt.Errorf("%w: target: %w", ErrInvalidEncounter, err)
		}
		target = &u
	}

	buttons := make([]combat.ButtonBinding, 0, len(c.Buttons))
	for i, b := range c.Buttons {
		action, err := b.action()
		if err != nil {
			return Encounter{}, fmt.Errorf("%w: button %d: %w", ErrInvalidEncounter, i+1, err)
		}
		buttons = append(buttons, combat.ButtonBinding{
			ID:     core.ButtonID(b.ID),
			Label:  b.Label,
			Action: action,
		})
	}

	return Encounter{
		ID:    c.ID,
		Name:  c.Name,
		Intro: c.Intro,
		Setup: combat.Setup{
			Player:    combat.Player{Name: c.Player.Name, Health: combat.Full(c.Player.Health)},
			Monsters:  monsters,
			TurnOrder: order,
			Buttons:   buttons,
			Target:    target,
		},
	}, nil
}

func (b ButtonConfig) action() (combat.ButtonAction, error) {
	switch strings.ToLower(b.Action) {
	case "cast":
		if b.Spell.Damage < 0 {
			return nil, fmt.Errorf("spell %q has negative damage %d", b.Spell.Name, b.Spell.Damage)
		}
		name := b.Spell.Name
		if name == "" {
			name = b.Label
		}
		return combat.CastSpell{Spell: combat.SpellTemplate{Name: name, Damage: b.Spell.Damage}}, nil
	case "nothing", "":
		return combat.Nothing{}, nil
	default:
		return nil, fmt.Errorf("unknown action %q (want cast or nothing)", b.Action)
	}
}
