package eventlog

import (
	"fmt"

	"github.com/vovakirdan/tui-skirmish/internal/combat"
	"github.com/vovakirdan/tui-skirmish/internal/core"
)

// Namer resolves a unit reference to a display name.
type Namer interface {
	Name(u combat.UnitReference) string
}

// secondPerson is the player name that renders as "you".
const secondPerson = "You"

// Format renders one resolved outcome, for example
// "You cast Fireball on Gnoll, it hits for 10 damage".
// A player with another name is written in the third person.
func Format(ev combat.Event, namer Namer) Line {
	player := namer.Name(combat.PlayerRef())

	verb := " casts "
	sourceColor := core.ColorOrange
	if ev.Source == player {
		sourceColor = core.ColorBrightGreen
		if player == secondPerson {
			verb = " cast "
		}
	}

	target := namer.Name(ev.Target)
	targetColor := core.ColorOrange
	if ev.Target.IsPlayer() {
		targetColor = core.ColorBrightGreen
		if player == secondPerson {
			target = "you"
		}
	}

	spell := ev.Spell.Name
	if spell == "" {
		spell = "an attack"
	}

	l := Line{}.
		Add(ev.Source, sourceColor).
		Add(verb, core.ColorDefault).
		Add(spell, core.ColorMagenta).
		Add(" on ", core.ColorDefault).
		Add(target, targetColor)

	for _, r := range ev.Results {
		switch r := r.(type) {
		case combat.TakeDamage:
			l = l.Add(", it hits for ", core.ColorDefault).
				Add(fmt.Sprintf("%d", r.Amount), core.ColorRed).
				Add(" damage", core.ColorDefault)
		case combat.Death:
			death := target + " dies"
			if ev.Target.IsPlayer() && player == secondPerson {
				death = "You die"
			}
			l = l.Add(". ", core.ColorDefault).Add(death, core.ColorBrightRed)
		}
	}
	return l
}
