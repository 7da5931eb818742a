package engine

// CanCallEnvido reports whether an envido chain may be opened: first trick of
// the hand, no card played yet, no truco called, no envido already settled,
// and no negotiation open.
func (g *GameState) CanCallEnvido() bool {
	return g.InProgress() &&
		g.Phase == PhaseTruco &&
		!g.CurrentBet.Open() &&
		g.CurrentRound == 1 &&
		len(g.CurrentTrick) == 0 &&
		!g.EnvidoClosed &&
		g.TrucoLevel == 0 &&
		!g.TrucoClosed
}

// FaltaEnvidoPoints returns the falta-envido stake for a call from seat: what
// the other team still needs to reach the midpoint, or the target score once
// past the midpoint.
func (g *GameState) FaltaEnvidoPoints(seat int) int {
	opp := 1 - g.TeamOf(seat)
	score := g.TeamScores[opp]
	if score < g.Rules.FaltaMidpoint {
		return g.Rules.FaltaMidpoint - score
	}
	return g.Rules.TargetScore - score
}

// RoundStake returns the points the current hand is worth: the accumulated
// truco stake, or 1 when no truco is in play.
func (g *GameState) RoundStake() int {
	if g.CurrentBet.Type == BetTruco && g.CurrentBet.Amount > 1 {
		return g.CurrentBet.Amount
	}
	return 1
}

// MakeBet opens a negotiation or raises the one waiting on this player.
// Opening does not require the turn.
func (g *GameState) MakeBet(playerID string, call BetCall) error {
	seat, err := g.actingSeat(playerID)
	if err != nil {
		return err
	}
	switch call.Family() {
	case BetEnvido:
		return g.callEnvido(seat, call)
	case BetTruco:
		return g.callTruco(seat, call)
	default:
		return ErrInvalidBet
	}
}

// callEnvido handles envido, envido2, real-envido and falta-envido.
func (g *GameState) callEnvido(seat int, call BetCall) error {
	bet := g.CurrentBet
	info := callTable[call]
	opener := seat
	base := 0

	if bet.Open() {
		if bet.WaitingFor != seat {
			return ErrInvalidBet
		}
		if bet.Type != BetEnvido {
			return ErrEnvidoUnavailable
		}
		last := callTable[bet.Last]
		if info.tier <= last.tier {
			return ErrInvalidBet
		}
		if call == CallEnvido2 && bet.Last != CallEnvido {
			return ErrInvalidBet
		}
		opener = bet.Opener
		base = bet.Amount
	} else {
		if !g.CanCallEnvido() {
			return ErrEnvidoUnavailable
		}
		if call == CallEnvido2 {
			return ErrInvalidBet
		}
	}

	points := info.points
	if call == CallFaltaEnvido {
		points = g.FaltaEnvidoPoints(seat)
	}
	g.CurrentBet = Bet{
		Type:       BetEnvido,
		Amount:     base + points,
		Caller:     seat,
		WaitingFor: g.firstOpponent(seat),
		Opener:     opener,
		Last:       call,
	}
	g.Phase = PhaseEnvido
	return nil
}

// callTruco handles the truco, retruco, vale-cuatro ladder. Each call must be
// the next rung. An accepted truco may later be raised only by the team that
// accepted it.
func (g *GameState) callTruco(seat int, call BetCall) error {
	if g.Phase != PhaseTruco || g.TrucoClosed {
		return ErrInvalidBet
	}
	info := callTable[call]
	if info.tier != g.TrucoLevel+1 {
		return ErrInvalidBet
	}

	bet := g.CurrentBet
	opener := seat
	base := 0
	if bet.Open() {
		if bet.Type != BetTruco || bet.WaitingFor != seat {
			return ErrInvalidBet
		}
		opener = bet.Opener
	} else {
		if g.TrucoRaiser != NoTeam && g.TeamOf(seat) != g.TrucoRaiser {
			return ErrInvalidBet
		}
	}
	if bet.Type == BetTruco {
		base = bet.Amount
	}

	g.CurrentBet = Bet{
		Type:       BetTruco,
		Amount:     base + info.points,
		Caller:     seat,
		WaitingFor: g.nextOpponent(seat),
		Opener:     opener,
		Last:       call,
	}
	g.TrucoLevel = info.tier
	return nil
}

// AcceptBet settles the pending negotiation with "quiero". An envido moves to
// the reveal phase; a truco stake stays in effect for the rest of the hand.
func (g *GameState) AcceptBet(playerID string) error {
	seat, err := g.actingSeat(playerID)
	if err != nil {
		return err
	}
	if !g.CurrentBet.Open() || g.CurrentBet.WaitingFor != seat {
		return ErrNotWaiting
	}

	g.CurrentBet.WaitingFor = NoPlayer
	switch g.CurrentBet.Type {
	case BetEnvido:
		g.beginEnvidoReveal()
	case BetTruco:
		g.TrucoRaiser = g.TeamOf(seat)
	default:
		panic("engine: accepted bet with no family")
	}
	return nil
}

// DenyBet refuses the pending negotiation with "no quiero". The caller's team
// scores 1 point however far the chain escalated, and that ladder is closed
// for the rest of the hand.
func (g *GameState) DenyBet(playerID string) error {
	seat, err := g.actingSeat(playerID)
	if err != nil {
		return err
	}
	if !g.CurrentBet.Open() || g.CurrentBet.WaitingFor != seat {
		return ErrNotWaiting
	}

	callerTeam := g.TeamOf(g.CurrentBet.Caller)
	switch g.CurrentBet.Type {
	case BetEnvido:
		g.EnvidoClosed = true
	case BetTruco:
		g.TrucoClosed = true
		g.TrucoRaiser = NoTeam
	default:
		panic("engine: denied bet with no family")
	}
	g.CurrentBet = emptyBet()
	g.Phase = PhaseTruco
	g.award(callerTeam, 1)
	return nil
}
