package combat

import (
	"fmt"
	"strings"
)

// Result is one consequence of a resolved intent.
// Implementations: TakeDamage, Death.
type Result interface {
	combatResult()
	String() string
}

// TakeDamage records health actually removed from the target.
// Amount never exceeds what the target had left.
type TakeDamage struct {
	Amount int
}

func (TakeDamage) combatResult() {}

func (r TakeDamage) String() string {
	return fmt.Sprintf("TakeDamage(%d)", r.Amount)
}

// Death records that the target's health reached zero.
// It always follows the TakeDamage that killed.
type Death struct{}

func (Death) combatResult() {}

func (Death) String() string {
	return "Death"
}

// Event is a combat intent before resolution and an outcome after it.
// Only the resolver appends results; a published Event is never modified.
type Event struct {
	Source  string
	Target  UnitReference
	Spell   SpellTemplate
	Results []Result
}

// NewEvent creates an intent with no results.
func NewEvent(source string, target UnitReference, spell SpellTemplate) *Event {
	return &Event{Source: source, Target: target, Spell: spell}
}

func (e *Event) addResult(r Result) {
	e.Results = append(e.Results, r)
}

// Damage returns the total damage dealt by the event.
func (e Event) Damage() int {
	total := 0
	for _, r := range e.Results {
		if d, ok := r.(TakeDamage); ok {
			total += d.Amount
		}
	}
	return total
}

// Killed reports whether the event contains a Death result.
func (e Event) Killed() bool {
	for _, r := range e.Results {
		if _, ok := r.(Death); ok {
			return true
		}
	}
	return false
}

// Clone returns a copy that shares no result storage with e.
func (e Event) Clone() Event {
	c := e
	c.Results = make([]Result, len(e.Results))
	copy(c.Results, e.Results)
	return c
}

// String renders the event for diagnostics.
func (e Event) String() string {
	parts := make([]string, len(e.Results))
	for i, r := range e.Results {
		parts[i] = r.String()
	}
	return fmt.Sprintf("%s -> %s [%s %d] [%s]",
		e.Source, e.Target, e.Spell.Name, e.Spell.Damage, strings.Join(parts, ", "))
}
