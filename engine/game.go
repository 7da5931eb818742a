// Package engine implements the rules of two-team Truco with the 40-card
// Spanish deck.
//
// GameState is the single authoritative state machine. Every player action is
// a method that validates against the current phase and turn, then either
// commits fully or returns an error with no mutation. The engine performs no
// I/O and is not safe for concurrent use; callers serialize actions.
package engine

// GameState holds the complete state of one Truco table.
type GameState struct {
	Phase      Phase       `json:"phase"`
	Players    []Player    `json:"players"`
	Spectators []Spectator `json:"spectators"`
	TeamScores [2]int      `json:"teamScores"`

	// Round state.
	CurrentTrick  []Card `json:"currentTrick"`
	TrickLeader   int    `json:"trickLeader"`
	TricksWon     [2]int `json:"tricksWon"`
	CurrentPlayer int    `json:"currentPlayer"`
	Dealer        int    `json:"dealer"`
	Mono          int    `json:"mono"`
	CurrentRound  int    `json:"currentRound"` // trick number within the hand, 1-based
	HandNumber    int    `json:"handNumber"`
	Deck          []Card `json:"-"`

	// Negotiation state.
	CurrentBet    Bet            `json:"currentBet"`
	EnvidoReveals []EnvidoReveal `json:"envidoValues,omitempty"`
	EnvidoClosed  bool           `json:"envidoClosed"`
	TrucoLevel    int            `json:"trucoLevel"` // 0 none, 1 truco, 2 retruco, 3 vale-cuatro
	TrucoClosed   bool           `json:"trucoClosed"`
	TrucoRaiser   int            `json:"trucoRaiser"` // team allowed to raise an accepted truco

	LastTrick  *TrickResult  `json:"lastTrick,omitempty"`
	LastEnvido *EnvidoResult `json:"lastEnvido,omitempty"`

	GameStarted bool `json:"gameStarted"`
	GameEnded   bool `json:"gameEnded"`
	Winner      int  `json:"winner"`

	Rules Rules  `json:"-"`
	RNG   uint64 `json:"-"`
}

// NewGame returns a waiting table with the given RNG seed and rules.
func NewGame(seed uint64, rules Rules) GameState {
	g := GameState{Rules: rules, RNG: seed}
	if g.RNG == 0 {
		g.RNG = 1 // xorshift can't start at 0
	}
	g.clear()
	return g
}

// clear resets everything except rules and the RNG stream.
func (g *GameState) clear() {
	rules, rng := g.Rules, g.RNG
	*g = GameState{
		Phase:         PhaseWaiting,
		Players:       []Player{},
		Spectators:    []Spectator{},
		CurrentTrick:  []Card{},
		CurrentPlayer: 0,
		CurrentBet:    emptyBet(),
		TrucoRaiser:   NoTeam,
		Winner:        NoTeam,
		Rules:         rules,
		RNG:           rng,
	}
}

// ---------------------------------------------------------------------------
// Query methods
// ---------------------------------------------------------------------------

// NumPlayers returns the number of seated players.
func (g *GameState) NumPlayers() int { return len(g.Players) }

// PlayerIndex returns the seat of the player with the given id, or -1.
func (g *GameState) PlayerIndex(id string) int {
	for i := range g.Players {
		if g.Players[i].ID == id {
			return i
		}
	}
	return -1
}

// SpectatorIndex returns the position of the spectator with the given id, or -1.
func (g *GameState) SpectatorIndex(id string) int {
	for i := range g.Spectators {
		if g.Spectators[i].ID == id {
			return i
		}
	}
	return -1
}

// TeamOf returns the team of the player in seat.
func (g *GameState) TeamOf(seat int) int {
	if seat < 0 || seat >= len(g.Players) {
		panic("engine: team of invalid seat")
	}
	return g.Players[seat].Team
}

// IsGameOver reports whether a team has reached the target score.
func (g *GameState) IsGameOver() bool { return g.GameEnded }

// InProgress reports whether a hand is being played.
func (g *GameState) InProgress() bool { return g.GameStarted && !g.GameEnded }

// NextSeat returns the seat clockwise from seat.
func (g *GameState) NextSeat(seat int) int { return (seat + 1) % len(g.Players) }

// nextOpponent returns the first seat clockwise from seat on the other team.
func (g *GameState) nextOpponent(seat int) int {
	n := len(g.Players)
	team := g.TeamOf(seat)
	for i := 1; i < n; i++ {
		s := (seat + i) % n
		if g.Players[s].Team != team {
			return s
		}
	}
	panic("engine: no opponent seated")
}

// firstOpponent returns the lowest seat on the other team.
func (g *GameState) firstOpponent(seat int) int {
	team := g.TeamOf(seat)
	for s := range g.Players {
		if g.Players[s].Team != team {
			return s
		}
	}
	panic("engine: no opponent seated")
}

// actingSeat resolves the seat for an in-game action.
func (g *GameState) actingSeat(playerID string) (int, error) {
	if !g.GameStarted {
		return NoPlayer, ErrNotStarted
	}
	if g.GameEnded {
		return NoPlayer, ErrGameOver
	}
	seat := g.PlayerIndex(playerID)
	if seat < 0 {
		return NoPlayer, ErrPlayerNotFound
	}
	return seat, nil
}

// ---------------------------------------------------------------------------
// Roster
// ---------------------------------------------------------------------------

// AddPlayer seats a new player, alternating teams by join order. A known id
// is marked connected again instead.
func (g *GameState) AddPlayer(id, name string) error {
	if seat := g.PlayerIndex(id); seat >= 0 {
		g.Players[seat].Connected = true
		return nil
	}
	if g.GameStarted || len(g.Players) >= g.Rules.MaxPlayers {
		return ErrFullOrStarted
	}
	g.Players = append(g.Players, Player{
		ID:        id,
		Name:      name,
		Hand:      []Card{},
		Team:      teamForSeat(len(g.Players)),
		Connected: true,
	})
	return nil
}

// AddSpectator adds a watcher. It never fails; a known id is ignored.
func (g *GameState) AddSpectator(id, name string) {
	if g.SpectatorIndex(id) >= 0 {
		return
	}
	g.Spectators = append(g.Spectators, Spectator{ID: id, Name: name})
}

// RemovePlayer handles a disconnect. Before the game starts the seat is freed
// and teams are reassigned by seat; afterwards the player is only marked
// disconnected so seat indices held by turns and bets stay valid.
func (g *GameState) RemovePlayer(id string) {
	if seat := g.PlayerIndex(id); seat >= 0 {
		if g.GameStarted {
			g.Players[seat].Connected = false
		} else {
			g.Players = append(g.Players[:seat], g.Players[seat+1:]...)
			for i := range g.Players {
				g.Players[i].Team = teamForSeat(i)
			}
		}
	}
	if i := g.SpectatorIndex(id); i >= 0 {
		g.Spectators = append(g.Spectators[:i], g.Spectators[i+1:]...)
	}
}

// ---------------------------------------------------------------------------
// Lifecycle
// ---------------------------------------------------------------------------

// ForceStart begins a game with the current roster: random dealer, mono at
// dealer+1, first hand dealt, truco phase. A finished game must be Reset
// before another can start.
func (g *GameState) ForceStart() error {
	if g.GameEnded {
		return ErrGameOver
	}
	if g.GameStarted {
		return ErrAlreadyStarted
	}
	if err := g.Rules.ValidatePlayerCount(len(g.Players)); err != nil {
		return err
	}

	g.Dealer = int(g.randN(uint64(len(g.Players))))
	g.GameStarted = true
	g.beginHand()
	return nil
}

// Reset discards all state and returns to an empty waiting table.
// Players and spectators must join again.
func (g *GameState) Reset() { g.clear() }

// beginHand clears per-hand state, sets mono from the dealer and deals.
func (g *GameState) beginHand() {
	g.Phase = PhaseTruco
	g.Mono = g.NextSeat(g.Dealer)
	g.CurrentPlayer = g.Mono
	g.TrickLeader = g.Mono
	g.CurrentRound = 1
	g.HandNumber++
	g.CurrentTrick = make([]Card, 0, len(g.Players))
	g.TricksWon = [2]int{}
	g.CurrentBet = emptyBet()
	g.EnvidoReveals = nil
	g.EnvidoClosed = false
	g.TrucoLevel = 0
	g.TrucoClosed = false
	g.TrucoRaiser = NoTeam
	g.deal()
}

// startNewRound rotates the dealer one seat and deals the next hand.
func (g *GameState) startNewRound() {
	g.Dealer = g.NextSeat(g.Dealer)
	g.beginHand()
}

// award adds points to team, capped at the target score, and ends the game
// when the target is reached. It reports whether the game ended.
func (g *GameState) award(team, points int) bool {
	if g.GameEnded {
		panic("engine: award after game end")
	}
	g.TeamScores[team] += points
	if g.TeamScores[team] >= g.Rules.TargetScore {
		g.TeamScores[team] = g.Rules.TargetScore
		g.GameEnded = true
		g.Winner = team
		return true
	}
	return false
}

// ---------------------------------------------------------------------------
// Snapshot Undo (Save / Restore)
// ---------------------------------------------------------------------------

// Clone returns a deep copy that shares no memory with g.
func (g *GameState) Clone() GameState {
	c := *g
	c.Players = make([]Player, len(g.Players))
	for i, p := range g.Players {
		p.Hand = append([]Card(nil), p.Hand...)
		c.Players[i] = p
	}
	c.Spectators = append([]Spectator{}, g.Spectators...)
	c.CurrentTrick = append([]Card{}, g.CurrentTrick...)
	c.Deck = append([]Card(nil), g.Deck...)
	if g.EnvidoReveals != nil {
		c.EnvidoReveals = append([]EnvidoReveal{}, g.EnvidoReveals...)
	}
	c.Rules.AllowedPlayerCounts = append([]int(nil), g.Rules.AllowedPlayerCounts...)
	if g.LastTrick != nil {
		lt := *g.LastTrick
		lt.Cards = append([]Card(nil), lt.Cards...)
		c.LastTrick = &lt
	}
	if g.LastEnvido != nil {
		le := *g.LastEnvido
		c.LastEnvido = &le
	}
	return c
}

// Snapshot is a deep copy of GameState for undo support.
type Snapshot GameState

// Save returns a snapshot of the current game state.
func (g *GameState) Save() Snapshot { return Snapshot(g.Clone()) }

// Restore replaces the game state with a copy of the given snapshot.
func (g *GameState) Restore(s Snapshot) {
	gs := GameState(s)
	*g = gs.Clone()
}
