// internal/game/sync_state.go
package game

import (
	"github.com/google/uuid"
	"github.com/jason-s-yu/truco/engine"
)

// ObfPlayerState is one seat as seen by a particular recipient.
type ObfPlayerState struct {
	PlayerID      string        `json:"playerId"`
	Name          string        `json:"name"`
	Team          int           `json:"team"`
	Connected     bool          `json:"isConnected"`
	HandSize      int           `json:"handSize"`
	Hand          []engine.Card `json:"cards,omitempty"` // Own hand, or every hand once the game is over.
	IsCurrentTurn bool          `json:"isCurrentTurn"`
	IsDealer      bool          `json:"isDealer"`
	IsMono        bool          `json:"isMono"`
}

// ObfGameState is the table as seen by a particular recipient: opponents'
// hands are reduced to a card count and spectators see no hands.
type ObfGameState struct {
	GameID        uuid.UUID             `json:"gameId"`
	You           uuid.UUID             `json:"you"`
	YourSeat      int                   `json:"yourSeat"` // -1 when not seated
	Phase         engine.Phase          `json:"phase"`
	Started       bool                  `json:"gameStarted"`
	GameOver      bool                  `json:"gameEnded"`
	Winner        int                   `json:"winner"`
	TargetScore   int                   `json:"targetScore"`
	TeamScores    [2]int                `json:"teamScores"`
	Players       []ObfPlayerState      `json:"players"`
	Spectators    []engine.Spectator    `json:"spectators"`
	CurrentTrick  []engine.Card         `json:"currentTrick"`
	TrickLeader   int                   `json:"trickLeader"`
	TricksWon     [2]int                `json:"tricksWon"`
	CurrentPlayer int                   `json:"currentPlayer"`
	Dealer        int                   `json:"dealer"`
	Mono          int                   `json:"mono"`
	CurrentRound  int                   `json:"currentRound"`
	HandNumber    int                   `json:"handNumber"`
	CurrentBet    engine.Bet            `json:"currentBet"`
	TrucoLevel    int                   `json:"trucoLevel"`
	RoundStake    int                   `json:"roundStake"`
	CanEnvido     bool                  `json:"canCallEnvido"`
	EnvidoReveals []engine.EnvidoReveal `json:"envidoValues,omitempty"`
	LastTrick     *engine.TrickResult   `json:"lastTrick,omitempty"`
	LastEnvido    *engine.EnvidoResult  `json:"lastEnvido,omitempty"`
}

// GetCurrentObfuscatedGameState builds the view for one recipient.
// Assumes lock is held by caller.
func (g *TrucoGame) GetCurrentObfuscatedGameState(forUser uuid.UUID) ObfGameState {
	e := &g.Engine
	obf := ObfGameState{
		GameID:        g.ID,
		You:           forUser,
		YourSeat:      e.PlayerIndex(forUser.String()),
		Phase:         e.Phase,
		Started:       e.GameStarted,
		GameOver:      e.GameEnded,
		Winner:        e.Winner,
		TargetScore:   e.Rules.TargetScore,
		TeamScores:    e.TeamScores,
		Spectators:    append([]engine.Spectator{}, e.Spectators...),
		CurrentTrick:  append([]engine.Card{}, e.CurrentTrick...),
		TrickLeader:   e.TrickLeader,
		TricksWon:     e.TricksWon,
		CurrentPlayer: e.CurrentPlayer,
		Dealer:        e.Dealer,
		Mono:          e.Mono,
		CurrentRound:  e.CurrentRound,
		HandNumber:    e.HandNumber,
		CurrentBet:    e.CurrentBet,
		TrucoLevel:    e.TrucoLevel,
		LastTrick:     e.LastTrick,
		LastEnvido:    e.LastEnvido,
	}
	if e.InProgress() {
		obf.RoundStake = e.RoundStake()
		obf.CanEnvido = e.CanCallEnvido()
	}
	if e.EnvidoReveals != nil {
		obf.EnvidoReveals = append([]engine.EnvidoReveal{}, e.EnvidoReveals...)
	}

	obf.Players = make([]ObfPlayerState, len(e.Players))
	for i, p := range e.Players {
		ps := ObfPlayerState{
			PlayerID:      p.ID,
			Name:          p.Name,
			Team:          p.Team,
			Connected:     p.Connected,
			HandSize:      len(p.Hand),
			IsCurrentTurn: e.InProgress() && e.CurrentPlayer == i,
			IsDealer:      e.GameStarted && e.Dealer == i,
			IsMono:        e.GameStarted && e.Mono == i,
		}
		if i == obf.YourSeat || e.GameEnded {
			ps.Hand = append([]engine.Card{}, p.Hand...)
		}
		obf.Players[i] = ps
	}
	return obf
}

// sendSyncState sends the current view to one connection.
// Assumes lock is held by caller.
func (g *TrucoGame) sendSyncState(clientID uuid.UUID) {
	state := g.GetCurrentObfuscatedGameState(clientID)
	g.fireEventToPlayer(clientID, GameEvent{Type: EventSyncState, State: &state})
}

// broadcastSyncStateToAll sends every live connection its own view.
// Assumes lock is held by caller.
func (g *TrucoGame) broadcastSyncStateToAll() {
	for id := range g.Clients {
		g.sendSyncState(id)
	}
}
