package combat

import (
	"testing"

	"github.com/vovakirdan/tui-skirmish/internal/core"
)

func testButtons(t *testing.T) ButtonMap {
	t.Helper()
	m, err := NewButtonMap([]ButtonBinding{
		{ID: "stab", Label: "Stab", Action: CastSpell{Spell: SpellTemplate{Name: "Stab", Damage: 10}}},
		{ID: "fireball", Label: "Fireball", Action: CastSpell{Spell: SpellTemplate{Name: "Fireball", Damage: 25}}},
		{ID: "inventory", Label: "Inventory", Action: Nothing{}},
	})
	if err != nil {
		t.Fatalf("NewButtonMap() failed: %v", err)
	}
	return m
}

func TestDispatchCastSpell(t *testing.T) {
	d := NewDispatcher(testButtons(t), "You", MonsterRef(1), quietLogger())

	frame := core.NewInputFrame()
	frame.Press("stab")

	ev := d.Dispatch(PlayerRef(), frame)
	if ev == nil {
		t.Fatal("Dispatch() = nil, expected intent")
	}
	if ev.Source != "You" || ev.Target != MonsterRef(1) {
		t.Errorf("intent = %s -> %s, expected You -> monster:1", ev.Source, ev.Target)
	}
	if ev.Spell.Damage != 10 {
		t.Errorf("spell damage = %d, expected 10", ev.Spell.Damage)
	}
	if len(ev.Results) != 0 {
		t.Errorf("intent already has results: %v", ev.Results)
	}
}

func TestDispatchIgnoresNonPlayerTurn(t *testing.T) {
	d := NewDispatcher(testButtons(t), "You", MonsterRef(1), quietLogger())

	frame := core.NewInputFrame()
	frame.Press("stab")

	if ev := d.Dispatch(MonsterRef(1), frame); ev != nil {
		t.Errorf("Dispatch() on monster turn = %v, expected nil", ev)
	}
}

func TestDispatchOnlyClickStart(t *testing.T) {
	d := NewDispatcher(testButtons(t), "You", MonsterRef(1), quietLogger())

	frame := core.NewInputFrame()
	frame.Add(core.Click{Button: "stab", Type: core.HoverStart})
	frame.Add(core.Click{Button: "stab", Type: core.ClickStop})

	if ev := d.Dispatch(PlayerRef(), frame); ev != nil {
		t.Errorf("Dispatch() with no ClickStart = %v, expected nil", ev)
	}
}

func TestDispatchNothingAndUnmapped(t *testing.T) {
	d := NewDispatcher(testButtons(t), "You", MonsterRef(1), quietLogger())

	tests := []struct {
		name   string
		button core.ButtonID
	}{
		{"nothing button", "inventory"},
		{"unmapped button", "escape"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			frame := core.NewInputFrame()
			frame.Press(tc.button)
			if ev := d.Dispatch(PlayerRef(), frame); ev != nil {
				t.Errorf("Dispatch() = %v, expected nil", ev)
			}
		})
	}
}

func TestDispatchLastClickWins(t *testing.T) {
	d := NewDispatcher(testButtons(t), "You", MonsterRef(1), quietLogger())

	frame := core.NewInputFrame()
	frame.Press("stab")
	frame.Press("fireball")
	frame.Press("inventory") // Nothing does not clear the earlier cast

	ev := d.Dispatch(PlayerRef(), frame)
	if ev == nil {
		t.Fatal("Dispatch() = nil, expected intent")
	}
	if ev.Spell.Name != "Fireball" {
		t.Errorf("spell = %q, expected Fireball", ev.Spell.Name)
	}
}

func TestNewButtonMapIDs(t *testing.T) {
	m, err := NewButtonMap([]ButtonBinding{
		{Label: "Claw", Action: CastSpell{Spell: SpellTemplate{Damage: 3}}},
		{Label: ""},
	})
	if err != nil {
		t.Fatalf("NewButtonMap() failed: %v", err)
	}

	if _, ok := m.Lookup("button-1"); !ok {
		t.Error("expected derived id button-1")
	}
	action, ok := m.Lookup("button-2")
	if !ok {
		t.Fatal("expected derived id button-2")
	}
	if _, isNothing := action.(Nothing); !isNothing {
		t.Errorf("nil action should become Nothing, got %T", action)
	}
	if m.Len() != 2 || m.Bindings()[0].Label != "Claw" {
		t.Errorf("Bindings() = %+v, expected layout order", m.Bindings())
	}
}

func TestNewButtonMapRejectsBadBindings(t *testing.T) {
	if _, err := NewButtonMap([]ButtonBinding{{ID: "a"}, {ID: "a"}}); err == nil {
		t.Error("expected duplicate id error")
	}
	bad := []ButtonBinding{{ID: "a", Action: CastSpell{Spell: SpellTemplate{Damage: -1}}}}
	if _, err := NewButtonMap(bad); err == nil {
		t.Error("expected negative damage error")
	}
}
