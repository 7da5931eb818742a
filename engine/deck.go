package engine

// NewDeck returns the 40-card deck in suit-major order, unshuffled.
func NewDeck() []Card {
	deck := make([]Card, 0, DeckSize)
	for s := Suit(0); s < NumSuits; s++ {
		for _, r := range Ranks {
			deck = append(deck, NewCard(r, s))
		}
	}
	return deck
}

// ---------------------------------------------------------------------------
// xorshift64 RNG, seeded through NewGame
// ---------------------------------------------------------------------------

func (g *GameState) nextRand() uint64 {
	x := g.RNG
	x ^= x << 13
	x ^= x >> 7
	x ^= x << 17
	g.RNG = x
	return x
}

// randN returns a random number in [0, n).
func (g *GameState) randN(n uint64) uint64 {
	return g.nextRand() % n
}

// shuffle permutes cards in place with Fisher-Yates.
func (g *GameState) shuffle(cards []Card) {
	for i := len(cards) - 1; i > 0; i-- {
		j := int(g.randN(uint64(i + 1)))
		cards[i], cards[j] = cards[j], cards[i]
	}
}

// deal shuffles a fresh deck and gives HandSize cards to every player,
// one at a time, starting from the seat after the dealer.
// The undealt remainder stays in g.Deck.
func (g *GameState) deal() {
	deck := NewDeck()
	g.shuffle(deck)

	n := len(g.Players)
	for i := range g.Players {
		g.Players[i].Hand = make([]Card, 0, g.Rules.HandSize)
	}
	top := len(deck)
	for c := 0; c < g.Rules.HandSize; c++ {
		for i := 1; i <= n; i++ {
			seat := (g.Dealer + i) % n
			top--
			g.Players[seat].Hand = append(g.Players[seat].Hand, deck[top])
		}
	}
	g.Deck = deck[:top]
}
