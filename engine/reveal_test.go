package engine

import "testing"

// acceptedEnvido deals fixed hands to two players, has mono (seat 1) call
// envido and seat 0 accept it.
func acceptedEnvido(t *testing.T, hand0, hand1 []Card) *GameState {
	t.Helper()
	g := newStartedGame(t, 2)
	setDealer(g, 0)
	setHands(g, hand0, hand1)
	mustDo(t, "envido", g.MakeBet(pid(1), CallEnvido))
	mustDo(t, "accept", g.AcceptBet(pid(0)))
	return g
}

// TestEnvidoTieGoesToMono verifies equal counts pay mono's team.
func TestEnvidoTieGoesToMono(t *testing.T) {
	g := acceptedEnvido(t,
		[]Card{{4, SuitCoin}, {12, SuitCoin}, {1, SuitSword}}, // 24
		[]Card{{4, SuitCup}, {11, SuitCup}, {2, SuitSword}},   // 24
	)
	mustDo(t, "reveal mono", g.RevealEnvido(pid(1), 24))
	if g.Phase != PhaseEnvidoReveal || g.CurrentPlayer != 0 {
		t.Fatalf("after first reveal: phase=%s current=%d", g.Phase, g.CurrentPlayer)
	}
	mustDo(t, "reveal dealer", g.RevealEnvido(pid(0), 24))

	if g.TeamScores != [2]int{0, 2} {
		t.Fatalf("scores = %v, want [0 2]", g.TeamScores)
	}
	if g.Phase != PhaseTruco || g.CurrentPlayer != g.Mono {
		t.Fatalf("phase=%s current=%d, want truco with mono %d", g.Phase, g.CurrentPlayer, g.Mono)
	}
	if g.CurrentBet.Open() || g.EnvidoReveals != nil {
		t.Fatal("envido state not cleared")
	}
	if g.LastEnvido == nil || g.LastEnvido.Winner != 1 || g.LastEnvido.TeamValues != [2]int{24, 24} {
		t.Fatalf("LastEnvido = %+v", g.LastEnvido)
	}
	if g.CanCallEnvido() {
		t.Fatal("envido callable again after resolution")
	}
}

// TestEnvidoHigherWins verifies the strictly greater count wins.
func TestEnvidoHigherWins(t *testing.T) {
	g := acceptedEnvido(t,
		[]Card{{7, SuitCoin}, {6, SuitCoin}, {1, SuitSword}}, // 33
		[]Card{{4, SuitCup}, {11, SuitCup}, {2, SuitSword}},  // 24
	)
	mustDo(t, "reveal mono", g.RevealEnvido(pid(1), 24))
	mustDo(t, "reveal dealer", g.RevealEnvido(pid(0), 33))
	if g.TeamScores != [2]int{2, 0} {
		t.Fatalf("scores = %v, want [2 0]", g.TeamScores)
	}
}

// TestEnvidoPass verifies a pass never counts toward the team maximum.
func TestEnvidoPass(t *testing.T) {
	g := acceptedEnvido(t,
		[]Card{{7, SuitCoin}, {6, SuitCoin}, {1, SuitSword}},
		[]Card{{4, SuitCup}, {11, SuitCup}, {2, SuitSword}},
	)
	mustDo(t, "reveal mono", g.RevealEnvido(pid(1), 24))
	mustDo(t, "pass", g.RevealEnvido(pid(0), 0))
	if g.TeamScores != [2]int{0, 2} {
		t.Fatalf("scores = %v, want [0 2]", g.TeamScores)
	}
	if g.LastEnvido.TeamValues[0] != 0 {
		t.Fatalf("passing team value = %d, want 0", g.LastEnvido.TeamValues[0])
	}
}

// TestRevealRejections covers turn order and value checks.
func TestRevealRejections(t *testing.T) {
	g := acceptedEnvido(t,
		[]Card{{4, SuitCoin}, {12, SuitCoin}, {1, SuitSword}},
		[]Card{{4, SuitCup}, {11, SuitCup}, {2, SuitSword}},
	)
	expectRejected(t, g, "out of order", ErrNotYourReveal, func() error { return g.RevealEnvido(pid(0), 24) })
	expectRejected(t, g, "wrong value", ErrInvalidEnvido, func() error { return g.RevealEnvido(pid(1), 31) })
	expectRejected(t, g, "play during reveal", ErrBetPending, func() error { return g.PlayCard(pid(1), 0) })

	h := newStartedGame(t, 2)
	expectRejected(t, h, "reveal outside phase", ErrNotYourReveal, func() error { return h.RevealEnvido(pid(h.CurrentPlayer), 0) })
}

// TestEnvidoFourPlayers verifies team maxima across partners.
func TestEnvidoFourPlayers(t *testing.T) {
	g := newStartedGame(t, 4)
	setDealer(g, 3) // mono is seat 0, team 0
	setHands(g,
		[]Card{{1, SuitCup}, {2, SuitSword}, {3, SuitClub}},  // 3
		[]Card{{5, SuitCup}, {6, SuitCup}, {12, SuitSword}},  // 31
		[]Card{{7, SuitCoin}, {5, SuitCoin}, {10, SuitClub}}, // 32
		[]Card{{4, SuitClub}, {11, SuitCoin}, {1, SuitSword}}, // 4
	)
	mustDo(t, "envido", g.MakeBet(pid(0), CallEnvido))
	mustDo(t, "real-envido", g.MakeBet(pid(1), CallRealEnvido))
	mustDo(t, "accept", g.AcceptBet(pid(0)))
	if g.CurrentPlayer != 0 {
		t.Fatalf("first revealer = %d, want opener 0", g.CurrentPlayer)
	}
	mustDo(t, "seat 0", g.RevealEnvido(pid(0), 0))
	mustDo(t, "seat 1", g.RevealEnvido(pid(1), 31))
	mustDo(t, "seat 2", g.RevealEnvido(pid(2), 32))
	mustDo(t, "seat 3", g.RevealEnvido(pid(3), 0))

	if g.TeamScores != [2]int{5, 0} {
		t.Fatalf("scores = %v, want [5 0]", g.TeamScores)
	}
}
