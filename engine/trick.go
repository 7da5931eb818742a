package engine

// PlayCard plays hand[cardIndex] of the player whose turn it is. Completing a
// trick resolves it; the second trick won by a team ends the hand.
func (g *GameState) PlayCard(playerID string, cardIndex int) error {
	seat, err := g.actingSeat(playerID)
	if err != nil {
		return err
	}
	if g.Phase != PhaseTruco || g.CurrentBet.Open() {
		return ErrBetPending
	}
	if seat != g.CurrentPlayer {
		return ErrNotYourTurn
	}
	hand := g.Players[seat].Hand
	if cardIndex < 0 || cardIndex >= len(hand) {
		return ErrInvalidCard
	}

	card := hand[cardIndex]
	g.Players[seat].Hand = append(hand[:cardIndex:cardIndex], hand[cardIndex+1:]...)
	if len(g.CurrentTrick) == 0 {
		g.TrickLeader = seat
	}
	g.CurrentTrick = append(g.CurrentTrick, card)
	g.CurrentPlayer = g.NextSeat(seat)

	if len(g.CurrentTrick) == len(g.Players) {
		g.resolveTrick()
	}
	return nil
}

// resolveTrick awards the full trick to the strongest card's team, clears the
// trick and passes the lead to the winner.
func (g *GameState) resolveTrick() {
	if len(g.CurrentTrick) != len(g.Players) {
		panic("engine: resolving incomplete trick")
	}
	pos := trickWinner(g.CurrentTrick)
	winner := (g.TrickLeader + pos) % len(g.Players)
	team := g.TeamOf(winner)

	g.LastTrick = &TrickResult{
		Cards:  g.CurrentTrick,
		Leader: g.TrickLeader,
		Winner: winner,
	}
	g.TricksWon[team]++
	g.CurrentTrick = make([]Card, 0, len(g.Players))
	g.CurrentRound++

	if g.TricksWon[0] >= 2 || g.TricksWon[1] >= 2 {
		g.endRound()
		return
	}
	g.CurrentPlayer = winner
	g.TrickLeader = winner
}

// endRound pays the hand's stake to the team with more tricks (team 1 on a
// tie) and deals the next hand unless the game is over.
func (g *GameState) endRound() {
	team := 1
	if g.TricksWon[0] > g.TricksWon[1] {
		team = 0
	}
	if g.award(team, g.RoundStake()) {
		return
	}
	g.startNewRound()
}

// Fold forfeits the hand ("irse al mazo"): the other team scores the current
// bet's amount, at least 1, and the next hand is dealt unless the game is over. Any open
// negotiation is abandoned.
func (g *GameState) Fold(playerID string) error {
	seat, err := g.actingSeat(playerID)
	if err != nil {
		return err
	}
	opp := 1 - g.TeamOf(seat)
	if g.award(opp, max(g.CurrentBet.Amount, 1)) {
		return nil
	}
	g.startNewRound()
	return nil
}
