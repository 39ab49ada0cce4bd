package combat

import (
	"errors"
	"reflect"
	"testing"

	"github.com/vovakirdan/tui-skirmish/internal/core"
	"github.com/vovakirdan/tui-skirmish/internal/eventbus"
)

// gnollSetup mirrors the default encounter: one player, one Gnoll.
func gnollSetup(monsterHP int) Setup {
	return Setup{
		Player: Player{Name: "You", Health: Full(200)},
		Monsters: []Monster{
			{ID: 1, Name: "Gnoll", Attack: 12, AttackName: "Claw", Health: CurrMax{Current: monsterHP, Max: 50}},
		},
		TurnOrder: []UnitReference{PlayerRef(), MonsterRef(1)},
		Buttons: []ButtonBinding{
			{ID: "stab", Label: "Stab", Action: CastSpell{Spell: SpellTemplate{Name: "Stab", Damage: 10}}},
			{ID: "fireball", Label: "Fireball", Action: CastSpell{Spell: SpellTemplate{Name: "Fireball", Damage: 12}}},
			{ID: "inventory", Label: "Inventory", Action: Nothing{}},
		},
	}
}

func newTestSession(t *testing.T, setup Setup) *Session {
	t.Helper()
	s, err := NewSession(setup, quietLogger())
	if err != nil {
		t.Fatalf("NewSession() failed: %v", err)
	}
	return s
}

func press(id core.ButtonID) core.InputFrame {
	f := core.NewInputFrame()
	f.Press(id)
	return f
}

func TestScenarioANonLethal(t *testing.T) {
	s := newTestSession(t, gnollSetup(50))

	res := s.Tick(press("stab"))

	if !res.Advanced || res.Event == nil {
		t.Fatalf("Tick() = %+v, expected resolved event", res)
	}
	gnoll, _ := s.Monster(1)
	if gnoll.Health != (CurrMax{Current: 40, Max: 50}) {
		t.Errorf("gnoll health = %v, expected 40/50", gnoll.Health)
	}
	if !reflect.DeepEqual(res.Event.Results, []Result{TakeDamage{Amount: 10}}) {
		t.Errorf("results = %v, expected [TakeDamage(10)]", res.Event.Results)
	}
	if s.Current() != MonsterRef(1) {
		t.Errorf("Current() = %v, expected monster:1", s.Current())
	}
}

func TestScenarioBScriptedMonsterTurn(t *testing.T) {
	s := newTestSession(t, gnollSetup(50))
	s.Tick(press("stab"))

	res := s.Tick(core.NewInputFrame())

	if res.Event == nil {
		t.Fatal("monster tick produced no event")
	}
	if res.Event.Source != "Gnoll" || res.Event.Target != PlayerRef() {
		t.Errorf("event = %s -> %s, expected Gnoll -> player", res.Event.Source, res.Event.Target)
	}
	if got := s.Player().Health; got != (CurrMax{Current: 188, Max: 200}) {
		t.Errorf("player health = %v, expected 188/200", got)
	}
	if !reflect.DeepEqual(res.Event.Results, []Result{TakeDamage{Amount: 12}}) {
		t.Errorf("results = %v, expected [TakeDamage(12)]", res.Event.Results)
	}
	if s.Current() != PlayerRef() {
		t.Errorf("Current() = %v, expected player", s.Current())
	}
}

func TestScenarioCLethal(t *testing.T) {
	s := newTestSession(t, gnollSetup(8))

	res := s.Tick(press("fireball"))

	want := []Result{TakeDamage{Amount: 8}, Death{}}
	if res.Event == nil || !reflect.DeepEqual(res.Event.Results, want) {
		t.Fatalf("results = %v, expected %v", res.Event, want)
	}
	gnoll, _ := s.Monster(1)
	if gnoll.Health != (CurrMax{Current: 0, Max: 50}) {
		t.Errorf("gnoll health = %v, expected 0/50", gnoll.Health)
	}
	if !res.Advanced || s.Current() != MonsterRef(1) {
		t.Errorf("turn did not advance: %v", s.Current())
	}
	if s.Status() != StatusVictory {
		t.Errorf("Status() = %v, expected victory", s.Status())
	}
}

func TestScenarioDUnmappedButton(t *testing.T) {
	s := newTestSession(t, gnollSetup(50))

	res := s.Tick(press("escape"))

	if res.Event != nil || res.Advanced {
		t.Errorf("Tick() = %+v, expected no effect", res)
	}
	if s.Bus().Len() != 0 {
		t.Errorf("bus has %d events, expected 0", s.Bus().Len())
	}
	gnoll, _ := s.Monster(1)
	if gnoll.Health.Current != 50 || s.Player().Health.Current != 200 {
		t.Error("health changed on ignored click")
	}
	if s.Current() != PlayerRef() {
		t.Errorf("Current() = %v, expected player", s.Current())
	}
}

func TestPlayerTurnWithoutClickWaits(t *testing.T) {
	s := newTestSession(t, gnollSetup(50))

	for range 10 {
		if res := s.Tick(core.NewInputFrame()); res.Advanced {
			t.Fatal("turn advanced without an action")
		}
	}
	if s.Turn() != 0 {
		t.Errorf("Turn() = %d, expected 0", s.Turn())
	}
}

func TestClickDuringMonsterTurnHasNoEffect(t *testing.T) {
	s := newTestSession(t, gnollSetup(50))
	s.Tick(press("stab")) // now the Gnoll's turn

	res := s.Tick(press("fireball"))

	// The Gnoll still acts; the click is discarded, not queued.
	if res.Event == nil || res.Event.Source != "Gnoll" {
		t.Fatalf("expected Gnoll's scripted attack, got %+v", res.Event)
	}
	gnoll, _ := s.Monster(1)
	if gnoll.Health.Current != 40 {
		t.Errorf("gnoll health = %d, expected 40", gnoll.Health.Current)
	}

	// Back on the player's turn, the earlier click is not replayed.
	if res := s.Tick(core.NewInputFrame()); res.Advanced {
		t.Error("buffered click was replayed")
	}
}

func TestDeadUnitsKeepTheirTurn(t *testing.T) {
	s := newTestSession(t, gnollSetup(8))
	s.Tick(press("fireball")) // kills the Gnoll

	res := s.Tick(core.NewInputFrame())
	if res.Event == nil || res.Event.Source != "Gnoll" {
		t.Fatalf("dead Gnoll did not act: %+v", res)
	}
	if s.Current() != PlayerRef() {
		t.Errorf("Current() = %v, expected player", s.Current())
	}

	res = s.Tick(press("stab"))
	want := []Result{TakeDamage{Amount: 0}, Death{}}
	if !reflect.DeepEqual(res.Event.Results, want) {
		t.Errorf("hitting a dead Gnoll = %v, expected %v", res.Event.Results, want)
	}
}

func TestUnresolvedTargetIsDropped(t *testing.T) {
	setup := gnollSetup(50)
	ghost := MonsterRef(9)
	setup.Target = &ghost
	s := newTestSession(t, setup)

	res := s.Tick(press("stab"))

	if !res.Dropped {
		t.Error("expected Dropped for unknown target")
	}
	if res.Advanced || res.Event != nil {
		t.Errorf("dropped intent advanced or published: %+v", res)
	}
	if s.Bus().Len() != 0 {
		t.Errorf("bus has %d events, expected 0", s.Bus().Len())
	}
	if s.Current() != PlayerRef() {
		t.Errorf("Current() = %v, expected player", s.Current())
	}
}

// orderProbe records what it reads and whose turn it was at drain time.
type orderProbe struct {
	s       *Session
	cursor  *eventbus.Cursor
	drained []UnitReference
	events  []Event
}

func (p *orderProbe) Drain() {
	p.events = append(p.events, p.s.Bus().ReadSince(p.cursor)...)
	p.drained = append(p.drained, p.s.Current())
}

func TestSubscribersDrainBeforeAdvance(t *testing.T) {
	s := newTestSession(t, gnollSetup(50))
	probe := &orderProbe{s: s, cursor: s.Bus().Subscribe()}
	s.AddSubscriber(probe)

	s.Tick(press("stab"))
	s.Tick(core.NewInputFrame())

	if len(probe.events) != 2 {
		t.Fatalf("probe saw %d events, expected 2", len(probe.events))
	}
	// During the player's outcome drain, the turn still belonged to the player.
	wantOwners := []UnitReference{PlayerRef(), MonsterRef(1)}
	if !reflect.DeepEqual(probe.drained, wantOwners) {
		t.Errorf("turn owners during drain = %v, expected %v", probe.drained, wantOwners)
	}
	if probe.events[0].Source != "You" || probe.events[1].Source != "Gnoll" {
		t.Errorf("events out of order: %v", probe.events)
	}
}

func TestPublishedEventIsIsolated(t *testing.T) {
	s := newTestSession(t, gnollSetup(50))
	c := s.Bus().Subscribe()

	res := s.Tick(press("stab"))
	res.Event.Results[0] = Death{}

	evs := s.Bus().ReadSince(c)
	if _, ok := evs[0].Results[0].(TakeDamage); !ok {
		t.Errorf("mutating the tick result changed the published event: %v", evs[0].Results)
	}
}

func TestNewSessionValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Setup)
		target error
	}{
		{"empty turn order", func(s *Setup) { s.TurnOrder = []UnitReference{} }, ErrEmptyTurnOrder},
		{"no monsters", func(s *Setup) { s.Monsters = nil }, errNoMonsters},
		{"unknown monster in order", func(s *Setup) { s.TurnOrder = []UnitReference{PlayerRef(), MonsterRef(5)} }, nil},
		{"duplicate monster", func(s *Setup) { s.Monsters = append(s.Monsters, s.Monsters[0]) }, nil},
		{"bad player health", func(s *Setup) { s.Player.Health = CurrMax{Current: 5, Max: 0} }, nil},
		{"negative attack", func(s *Setup) { s.Monsters[0].Attack = -1 }, nil},
		{"duplicate button", func(s *Setup) { s.Buttons = append(s.Buttons, s.Buttons[0]) }, ErrDuplicateButton},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			setup := gnollSetup(50)
			tc.mutate(&setup)
			_, err := NewSession(setup, nil)
			if err == nil {
				t.Fatal("NewSession() succeeded, expected error")
			}
			if tc.target != nil && !errors.Is(err, tc.target) {
				t.Errorf("NewSession() error = %v, expected %v", err, tc.target)
			}
		})
	}
}

func TestDefaultTurnOrderAndTarget(t *testing.T) {
	setup := gnollSetup(50)
	setup.TurnOrder = nil
	setup.Monsters = append(setup.Monsters, Monster{ID: 2, Name: "Rat", Attack: 1, AttackName: "Bite", Health: Full(5)})
	s := newTestSession(t, setup)

	want := []UnitReference{PlayerRef(), MonsterRef(1), MonsterRef(2)}
	if got := s.TurnOrder().Units(); !reflect.DeepEqual(got, want) {
		t.Errorf("default order = %v, expected %v", got, want)
	}

	res := s.Tick(press("stab"))
	if res.Event.Target != MonsterRef(1) {
		t.Errorf("default target = %v, expected monster:1", res.Event.Target)
	}
	if s.Name(MonsterRef(2)) != "Rat" || s.Name(PlayerRef()) != "You" {
		t.Errorf("Name() mismatch: %q %q", s.Name(MonsterRef(2)), s.Name(PlayerRef()))
	}
}

func TestTurnAdvancesOncePerResolvedIntent(t *testing.T) {
	s := newTestSession(t, gnollSetup(50))
	initial := s.TurnOrder().Units()

	// Alternate: player clicks, Gnoll acts automatically.
	for k := range 8 {
		frame := core.NewInputFrame()
		if s.Current().IsPlayer() {
			frame.Press("stab")
		}
		s.Tick(frame)
		if got, want := s.Current(), initial[(k+1)%len(initial)]; got != want {
			t.Fatalf("after %d resolved intents Current() = %v, expected %v", k+1, got, want)
		}
	}
	if s.Turn() != 8 {
		t.Errorf("Turn() = %d, expected 8", s.Turn())
	}
}
