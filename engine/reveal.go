package engine

// beginEnvidoReveal enters the reveal phase after an accepted envido.
// The chain's opener reveals first.
func (g *GameState) beginEnvidoReveal() {
	g.Phase = PhaseEnvidoReveal
	g.EnvidoReveals = make([]EnvidoReveal, len(g.Players))
	for i, p := range g.Players {
		g.EnvidoReveals[i] = EnvidoReveal{PlayerID: p.ID}
	}
	g.CurrentPlayer = g.CurrentBet.Opener
}

// RevealEnvido records the current revealer's envido count. A value of 0
// passes. Any other value must match the player's hand.
func (g *GameState) RevealEnvido(playerID string, value int) error {
	seat, err := g.actingSeat(playerID)
	if err != nil {
		return err
	}
	if g.Phase != PhaseEnvidoReveal || seat != g.CurrentPlayer {
		return ErrNotYourReveal
	}
	if value != 0 && value != EnvidoValue(g.Players[seat].Hand) {
		return ErrInvalidEnvido
	}

	entry := &g.EnvidoReveals[seat]
	if value == 0 {
		entry.Passed = true
	} else {
		entry.Value = value
		entry.Revealed = true
	}
	g.CurrentPlayer = g.NextSeat(seat)

	for _, e := range g.EnvidoReveals {
		if !e.Settled() {
			return nil
		}
	}
	g.resolveEnvido()
	return nil
}

// resolveEnvido pays the accepted envido stake to the team with the higher
// revealed count. Mono's team wins ties.
func (g *GameState) resolveEnvido() {
	var best [2]int
	for i, e := range g.EnvidoReveals {
		if !e.Revealed {
			continue
		}
		if team := g.TeamOf(i); e.Value > best[team] {
			best[team] = e.Value
		}
	}

	winner := g.TeamOf(g.Mono)
	switch {
	case best[0] > best[1]:
		winner = 0
	case best[1] > best[0]:
		winner = 1
	}
	points := g.CurrentBet.Amount

	g.LastEnvido = &EnvidoResult{TeamValues: best, Winner: winner, Points: points}
	g.CurrentBet = emptyBet()
	g.EnvidoReveals = nil
	g.EnvidoClosed = true
	g.Phase = PhaseTruco
	g.CurrentPlayer = g.Mono
	g.award(winner, points)
}
