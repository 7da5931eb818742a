package engine

import "fmt"

// strengthOrder is the fixed trick hierarchy, strongest first.
var strengthOrder = [DeckSize]Card{
	{1, SuitSword}, {1, SuitClub},
	{7, SuitSword}, {7, SuitCoin},
	{3, SuitSword}, {3, SuitClub}, {3, SuitCoin}, {3, SuitCup},
	{2, SuitSword}, {2, SuitClub}, {2, SuitCoin}, {2, SuitCup},
	{1, SuitCoin}, {1, SuitCup},
	{12, SuitSword}, {12, SuitClub}, {12, SuitCoin}, {12, SuitCup},
	{11, SuitSword}, {11, SuitClub}, {11, SuitCoin}, {11, SuitCup},
	{10, SuitSword}, {10, SuitClub}, {10, SuitCoin}, {10, SuitCup},
	{7, SuitClub}, {7, SuitCup},
	{6, SuitSword}, {6, SuitClub}, {6, SuitCoin}, {6, SuitCup},
	{5, SuitSword}, {5, SuitClub}, {5, SuitCoin}, {5, SuitCup},
	{4, SuitSword}, {4, SuitClub}, {4, SuitCoin}, {4, SuitCup},
}

// strengthIndex maps rank*NumSuits+suit to a position in strengthOrder, -1 if absent.
var strengthIndex = func() [13 * NumSuits]int8 {
	var idx [13 * NumSuits]int8
	for i := range idx {
		idx[i] = -1
	}
	for pos, c := range strengthOrder {
		idx[int(c.Rank)*NumSuits+int(c.Suit)] = int8(pos)
	}
	return idx
}()

// Strength returns the card's position in the trick hierarchy, 0 being the
// strongest and DeckSize-1 the weakest. It panics on a card outside the deck.
func Strength(c Card) int {
	if int(c.Suit) >= NumSuits || int(c.Rank) >= 13 {
		panic(fmt.Sprintf("engine: strength of malformed card %v", c))
	}
	s := strengthIndex[int(c.Rank)*NumSuits+int(c.Suit)]
	if s < 0 {
		panic(fmt.Sprintf("engine: strength of malformed card %v", c))
	}
	return int(s)
}

// Beats reports whether a wins a trick against b.
func Beats(a, b Card) bool { return Strength(a) < Strength(b) }

// trickWinner returns the position within cards of the strongest card.
func trickWinner(cards []Card) int {
	best := 0
	bestStrength := Strength(cards[0])
	for i := 1; i < len(cards); i++ {
		if s := Strength(cards[i]); s < bestStrength {
			best, bestStrength = i, s
		}
	}
	return best
}
