package engine

import (
	"encoding/json"
	"testing"
)

func TestCardString(t *testing.T) {
	if got := (Card{1, SuitSword}).String(); got != "1-sword" {
		t.Fatalf("String = %q, want 1-sword", got)
	}
}

// TestCardJSON verifies cards encode suits by name.
func TestCardJSON(t *testing.T) {
	b, err := json.Marshal(Card{7, SuitCoin})
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `{"value":7,"suit":"coin"}` {
		t.Fatalf("json = %s", b)
	}
	var c Card
	if err := json.Unmarshal([]byte(`{"value":12,"suit":"Cup"}`), &c); err != nil {
		t.Fatal(err)
	}
	if c != (Card{12, SuitCup}) {
		t.Fatalf("decoded %v", c)
	}
	if err := json.Unmarshal([]byte(`{"value":1,"suit":"star"}`), &c); err == nil {
		t.Fatal("unknown suit decoded without error")
	}
}

func TestBetCallFamily(t *testing.T) {
	tests := []struct {
		call BetCall
		want BetFamily
	}{
		{CallEnvido, BetEnvido},
		{CallEnvido2, BetEnvido},
		{CallRealEnvido, BetEnvido},
		{CallFaltaEnvido, BetEnvido},
		{CallTruco, BetTruco},
		{CallRetruco, BetTruco},
		{CallValeCuatro, BetTruco},
		{"flor", BetNone},
	}
	for _, tt := range tests {
		if got := tt.call.Family(); got != tt.want {
			t.Errorf("%s.Family() = %q, want %q", tt.call, got, tt.want)
		}
		if tt.call.Valid() != (tt.want != BetNone) {
			t.Errorf("%s.Valid() = %v", tt.call, tt.call.Valid())
		}
	}
}

func TestValidatePlayerCount(t *testing.T) {
	r := DefaultRules()
	for n, ok := range map[int]bool{0: false, 1: false, 2: true, 3: false, 4: true, 5: false} {
		if err := r.ValidatePlayerCount(n); (err == nil) != ok {
			t.Errorf("ValidatePlayerCount(%d) = %v", n, err)
		}
	}
}
