package combat

import (
	"errors"
	"io"
	"reflect"
	"testing"

	"github.com/charmbracelet/log"
)

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func TestApplyDamageProperties(t *testing.T) {
	for current := 0; current <= 30; current++ {
		for damage := 0; damage <= 40; damage++ {
			h := CurrMax{Current: current, Max: 30}
			ev := NewEvent("You", MonsterRef(1), SpellTemplate{Damage: damage})

			applyDamage(&h, ev)

			want := max(0, current-damage)
			if h.Current != want {
				t.Fatalf("current=%d damage=%d: new current = %d, expected %d", current, damage, h.Current, want)
			}
			if h.Current < 0 || h.Current > current {
				t.Fatalf("current=%d damage=%d: health %d out of range", current, damage, h.Current)
			}
			if len(ev.Results) == 0 {
				t.Fatalf("current=%d damage=%d: no results", current, damage)
			}

			dealt := ev.Damage()
			if dealt != current-h.Current {
				t.Fatalf("current=%d damage=%d: reported %d, removed %d", current, damage, dealt, current-h.Current)
			}

			if ev.Killed() {
				last := ev.Results[len(ev.Results)-1]
				if _, ok := last.(Death); !ok {
					t.Fatalf("current=%d damage=%d: Death is not last: %v", current, damage, ev.Results)
				}
				prev, ok := ev.Results[len(ev.Results)-2].(TakeDamage)
				if !ok || prev.Amount != current {
					t.Fatalf("current=%d damage=%d: result before Death = %v, expected TakeDamage(%d)",
						current, damage, ev.Results[len(ev.Results)-2], current)
				}
			}
		}
	}
}

func TestApplyDamageNonLethal(t *testing.T) {
	h := Full(50)
	ev := NewEvent("You", MonsterRef(1), SpellTemplate{Name: "Stab", Damage: 10})

	applyDamage(&h, ev)

	if h != (CurrMax{Current: 40, Max: 50}) {
		t.Errorf("health = %v, expected 40/50", h)
	}
	if !reflect.DeepEqual(ev.Results, []Result{TakeDamage{Amount: 10}}) {
		t.Errorf("results = %v, expected [TakeDamage(10)]", ev.Results)
	}
}

func TestApplyDamageExactlyLethal(t *testing.T) {
	h := CurrMax{Current: 12, Max: 50}
	ev := NewEvent("You", MonsterRef(1), SpellTemplate{Damage: 12})

	applyDamage(&h, ev)

	want := []Result{TakeDamage{Amount: 12}, Death{}}
	if !reflect.DeepEqual(ev.Results, want) {
		t.Errorf("results = %v, expected %v", ev.Results, want)
	}
	if h.Current != 0 {
		t.Errorf("health = %d, expected 0", h.Current)
	}
}

func TestApplyDamageOnDeadTarget(t *testing.T) {
	// Dead units keep taking hits: nothing left to remove, Death again.
	h := CurrMax{Current: 0, Max: 50}
	ev := NewEvent("You", MonsterRef(1), SpellTemplate{Damage: 10})

	applyDamage(&h, ev)

	want := []Result{TakeDamage{Amount: 0}, Death{}}
	if !reflect.DeepEqual(ev.Results, want) {
		t.Errorf("results = %v, expected %v", ev.Results, want)
	}
}

func TestResolverTargetsPlayerAndMonster(t *testing.T) {
	player := &Player{Name: "You", Health: Full(200)}
	gnoll := &Monster{ID: 1, Name: "Gnoll", Attack: 12, AttackName: "Claw", Health: Full(50)}
	r := NewResolver(player, []*Monster{gnoll}, quietLogger())

	if err := r.Resolve(NewEvent("You", MonsterRef(1), SpellTemplate{Damage: 5})); err != nil {
		t.Fatalf("Resolve() on monster failed: %v", err)
	}
	if gnoll.Health.Current != 45 {
		t.Errorf("gnoll health = %d, expected 45", gnoll.Health.Current)
	}

	if err := r.Resolve(NewEvent("Gnoll", PlayerRef(), SpellTemplate{Damage: 12})); err != nil {
		t.Fatalf("Resolve() on player failed: %v", err)
	}
	if player.Health.Current != 188 {
		t.Errorf("player health = %d, expected 188", player.Health.Current)
	}
}

func TestResolverUnknownMonsterIsDropped(t *testing.T) {
	player := &Player{Health: Full(200)}
	gnoll := &Monster{ID: 1, Health: Full(50)}
	r := NewResolver(player, []*Monster{gnoll}, quietLogger())

	ev := NewEvent("You", MonsterRef(7), SpellTemplate{Damage: 10})
	err := r.Resolve(ev)

	if !errors.Is(err, ErrTargetNotFound) {
		t.Fatalf("Resolve() error = %v, expected ErrTargetNotFound", err)
	}
	if len(ev.Results) != 0 {
		t.Errorf("dropped event has results: %v", ev.Results)
	}
	if gnoll.Health.Current != 50 || player.Health.Current != 200 {
		t.Error("dropped event changed health")
	}
}

func TestResolverIntentUsesMonsterStats(t *testing.T) {
	player := &Player{Health: Full(200)}
	ogre := &Monster{ID: 3, Name: "Ogre", Attack: 30, AttackName: "Smash", Health: Full(90)}
	r := NewResolver(player, []*Monster{ogre}, quietLogger())

	ev := r.Intent(MonsterRef(3))
	if ev == nil {
		t.Fatal("Intent() = nil, expected scripted attack")
	}
	if ev.Source != "Ogre" || ev.Target != PlayerRef() {
		t.Errorf("Intent() = %s -> %s, expected Ogre -> player", ev.Source, ev.Target)
	}
	if ev.Spell != (SpellTemplate{Name: "Smash", Damage: 30}) {
		t.Errorf("Intent() spell = %+v, expected Smash/30", ev.Spell)
	}
	if len(ev.Results) != 0 {
		t.Errorf("fresh intent has results: %v", ev.Results)
	}

	if r.Intent(PlayerRef()) != nil {
		t.Error("Intent(player) should be nil")
	}
	if r.Intent(MonsterRef(99)) != nil {
		t.Error("Intent(unknown monster) should be nil")
	}
}
