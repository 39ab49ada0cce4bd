package combat

import (
	"errors"
	"reflect"
	"testing"
)

func TestNewTurnOrderRejectsEmpty(t *testing.T) {
	if _, err := NewTurnOrder(nil); !errors.Is(err, ErrEmptyTurnOrder) {
		t.Errorf("NewTurnOrder(nil) error = %v, expected ErrEmptyTurnOrder", err)
	}
	if _, err := NewTurnOrder([]UnitReference{}); !errors.Is(err, ErrEmptyTurnOrder) {
		t.Errorf("NewTurnOrder([]) error = %v, expected ErrEmptyTurnOrder", err)
	}
}

func TestTurnOrderCurrentDoesNotMutate(t *testing.T) {
	order, err := NewTurnOrder([]UnitReference{PlayerRef(), MonsterRef(1)})
	if err != nil {
		t.Fatalf("NewTurnOrder() failed: %v", err)
	}

	for range 3 {
		if got := order.Current(); got != PlayerRef() {
			t.Fatalf("Current() = %v, expected player", got)
		}
	}
}

func TestTurnOrderAdvanceWraps(t *testing.T) {
	initial := []UnitReference{PlayerRef(), MonsterRef(1), MonsterRef(2), MonsterRef(3)}

	order, err := NewTurnOrder(initial)
	if err != nil {
		t.Fatalf("NewTurnOrder() failed: %v", err)
	}

	for k := range 3 * len(initial) {
		if got, want := order.Current(), initial[k%len(initial)]; got != want {
			t.Errorf("after %d advances Current() = %v, expected %v", k, got, want)
		}
		order.Advance()
	}

	// M advances return to the start
	if order.Current() != initial[0] {
		t.Errorf("Current() = %v after full cycles, expected %v", order.Current(), initial[0])
	}
}

func TestTurnOrderSingleUnit(t *testing.T) {
	order, err := NewTurnOrder([]UnitReference{PlayerRef()})
	if err != nil {
		t.Fatalf("NewTurnOrder() failed: %v", err)
	}
	order.Advance()
	if order.Current() != PlayerRef() {
		t.Errorf("Current() = %v, expected player", order.Current())
	}
}

func TestTurnOrderUnitsStartsAtHead(t *testing.T) {
	order, _ := NewTurnOrder([]UnitReference{PlayerRef(), MonsterRef(1), MonsterRef(2)})
	order.Advance()

	want := []UnitReference{MonsterRef(1), MonsterRef(2), PlayerRef()}
	if got := order.Units(); !reflect.DeepEqual(got, want) {
		t.Errorf("Units() = %v, expected %v", got, want)
	}
	if order.Len() != 3 {
		t.Errorf("Len() = %d, expected 3", order.Len())
	}
}

func TestTurnOrderOwnsItsSlice(t *testing.T) {
	units := []UnitReference{PlayerRef(), MonsterRef(1)}
	order, _ := NewTurnOrder(units)
	units[0] = MonsterRef(9)

	if order.Current() != PlayerRef() {
		t.Errorf("caller mutation leaked into turn order: %v", order.Current())
	}
}

func TestParseUnitReference(t *testing.T) {
	tests := []struct {
		in      string
		want    UnitReference
		wantErr bool
	}{
		{"player", PlayerRef(), false},
		{" Player ", PlayerRef(), false},
		{"monster:1", MonsterRef(1), false},
		{"monster:42", MonsterRef(42), false},
		{"monster:", UnitReference{}, true},
		{"monster:-1", UnitReference{}, true},
		{"goblin", UnitReference{}, true},
	}

	for _, tc := range tests {
		got, err := ParseUnitReference(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseUnitReference(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			continue
		}
		if !tc.wantErr && got != tc.want {
			t.Errorf("ParseUnitReference(%q) = %v, expected %v", tc.in, got, tc.want)
		}
		if !tc.wantErr && got.String() != tc.want.String() {
			t.Errorf("round trip of %q produced %q", tc.in, got.String())
		}
	}
}
