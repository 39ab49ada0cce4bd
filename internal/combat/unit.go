// Package combat implements the turn-based combat engine: turn scheduling,
// translation of button clicks into intents, damage resolution and
// publication of outcomes. It has no knowledge of the terminal front end.
package combat

import (
	"fmt"
	"strconv"
	"strings"
)

// MonsterID identifies a monster within one combat session.
type MonsterID uint32

// UnitKind tags which variant a UnitReference holds.
type UnitKind int

const (
	KindPlayer UnitKind = iota
	KindMonster
)

// UnitReference names a combat participant. It is a plain value:
// comparable with == and usable as a map key.
type UnitReference struct {
	Kind    UnitKind
	Monster MonsterID // Only meaningful when Kind == KindMonster
}

// PlayerRef returns the reference to the single player.
func PlayerRef() UnitReference {
	return UnitReference{Kind: KindPlayer}
}

// MonsterRef returns a reference to the monster with the given id.
func MonsterRef(id MonsterID) UnitReference {
	return UnitReference{Kind: KindMonster, Monster: id}
}

// IsPlayer reports whether the reference names the player.
func (u UnitReference) IsPlayer() bool {
	return u.Kind == KindPlayer
}

// String renders the reference as "player" or "monster:<id>".
func (u UnitReference) String() string {
	if u.Kind == KindMonster {
		return "monster:" + strconv.FormatUint(uint64(u.Monster), 10)
	}
	return "player"
}

// ParseUnitReference parses the form produced by String.
func ParseUnitReference(s string) (UnitReference, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "player" {
		return PlayerRef(), nil
	}

	idStr, ok := strings.CutPrefix(s, "monster:")
	if !ok {
		return UnitReference{}, fmt.Errorf("combat: invalid unit reference %q", s)
	}
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		return UnitReference{}, fmt.Errorf("combat: invalid monster id in %q: %w", s, err)
	}
	return MonsterRef(MonsterID(id)), nil
}

// CurrMax is a current/maximum pair. After every mutation 0 <= Current <= Max.
type CurrMax struct {
	Current int
	Max     int
}

// Full returns a pair at its maximum.
func Full(max int) CurrMax {
	return CurrMax{Current: max, Max: max}
}

// Dead reports whether the pool is exhausted.
func (c CurrMax) Dead() bool {
	return c.Current <= 0
}

// String renders the pair as "current/max".
func (c CurrMax) String() string {
	return fmt.Sprintf("%d/%d", c.Current, c.Max)
}

// Monster is a hostile participant. Monsters are created at setup and
// stay in the session even after dying; their health clamps at zero.
type Monster struct {
	ID         MonsterID
	Name       string
	Attack     int    // Damage of the scripted attack
	AttackName string // Spell name used when the monster acts
	Health     CurrMax
}

// Ref returns the monster's unit reference.
func (m *Monster) Ref() UnitReference {
	return MonsterRef(m.ID)
}

// Player is the single human-controlled participant.
type Player struct {
	Name   string
	Health CurrMax
}
