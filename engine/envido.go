package engine

// EnvidoValue returns the best envido count for a hand.
//
// Two or more cards of one suit score 20 plus their two highest card points
// (face cards are worth zero); the best suit wins when more than one pairs.
// Without a pair the value is the single highest card point.
func EnvidoValue(hand []Card) int {
	var top [NumSuits][2]int
	var count [NumSuits]int
	best := 0
	for _, c := range hand {
		p := c.EnvidoPoints()
		s := c.Suit
		count[s]++
		switch {
		case p > top[s][0]:
			top[s][1] = top[s][0]
			top[s][0] = p
		case p > top[s][1]:
			top[s][1] = p
		}
		if p > best {
			best = p
		}
	}

	paired := -1
	for s := 0; s < NumSuits; s++ {
		if count[s] < 2 {
			continue
		}
		if v := 20 + top[s][0] + top[s][1]; v > paired {
			paired = v
		}
	}
	if paired >= 0 {
		return paired
	}
	return best
}
