package engine

import (
	"errors"
	"fmt"
	"reflect"
	"testing"
)

// pid returns the test player id for seat i.
func pid(i int) string { return fmt.Sprintf("p%d", i) }

// newStartedGame seats n players and force-starts with a fixed seed.
func newStartedGame(t *testing.T, n int) *GameState {
	t.Helper()
	g := NewGame(42, DefaultRules())
	for i := 0; i < n; i++ {
		if err := g.AddPlayer(pid(i), fmt.Sprintf("Player %d", i)); err != nil {
			t.Fatalf("AddPlayer(%d): %v", i, err)
		}
	}
	if err := g.ForceStart(); err != nil {
		t.Fatalf("ForceStart: %v", err)
	}
	return &g
}

// setDealer moves the dealer button and re-derives mono and the opening turn.
func setDealer(g *GameState, dealer int) {
	g.Dealer = dealer
	g.Mono = g.NextSeat(dealer)
	g.CurrentPlayer = g.Mono
	g.TrickLeader = g.Mono
}

// setHands replaces the hands of seats 0..len(hands)-1.
func setHands(g *GameState, hands ...[]Card) {
	for i, h := range hands {
		g.Players[i].Hand = append([]Card(nil), h...)
	}
}

// mustDo fails the test if err is non-nil.
func mustDo(t *testing.T, what string, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("%s: %v", what, err)
	}
}

// expectRejected applies fn and checks it fails with want and leaves the
// state untouched.
func expectRejected(t *testing.T, g *GameState, what string, want error, fn func() error) {
	t.Helper()
	before := g.Clone()
	err := fn()
	if !errors.Is(err, want) {
		t.Fatalf("%s: err = %v, want %v", what, err, want)
	}
	if after := g.Clone(); !reflect.DeepEqual(before, after) {
		t.Fatalf("%s: rejected action mutated state", what)
	}
}
