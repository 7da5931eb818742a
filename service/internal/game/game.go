// internal/game/game.go
package game

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/jason-s-yu/truco/engine"
	"github.com/jason-s-yu/truco/service/internal/models"
	"github.com/sirupsen/logrus"
)

// OnGameEndFunc defines the signature for a callback executed once when a game ends.
type OnGameEndFunc func(gameID uuid.UUID, winner int, scores [2]int)

// PresenceTracker records which connections are live. Failures are logged and
// never block play.
type PresenceTracker interface {
	Mark(ctx context.Context, gameID, clientID uuid.UUID, role models.Role) error
	Clear(ctx context.Context, gameID, clientID uuid.UUID) error
	List(ctx context.Context, gameID uuid.UUID) (map[uuid.UUID]models.Role, error)
}

// ErrInternal is returned when the engine fails mid-action. The table is
// restored to its state before the action.
var ErrInternal = errors.New("internal error, action rolled back")

// GameEventType represents the type of a game event sent over WebSockets.
type GameEventType string

const (
	EventPlayerID       GameEventType = "player_id"       // Private: id assigned to a new connection.
	EventSyncState      GameEventType = "sync_state"      // Private: per-recipient state view.
	EventActionError    GameEventType = "action_error"    // Private: a rejected action.
	EventChatMessage    GameEventType = "chat_message"    // Public: relayed chat line.
	EventTrickResolved  GameEventType = "trick_resolved"  // Public: a trick completed.
	EventEnvidoResolved GameEventType = "envido_resolved" // Public: an envido showdown settled.
	EventGameEnd        GameEventType = "game_end"        // Public: a team reached the target.
)

// GameEvent is the standard structure for everything the server pushes.
type GameEvent struct {
	Type    GameEventType          `json:"type"`
	Payload map[string]interface{} `json:"payload,omitempty"`
	State   *ObfGameState          `json:"state,omitempty"`
	Chat    *models.ChatMessage    `json:"chat,omitempty"`
}

// TrucoGame serializes every action against one engine.GameState and fans
// the results out to connected clients.
type TrucoGame struct {
	ID uuid.UUID

	Engine  engine.GameState             // The authoritative game state.
	Clients map[uuid.UUID]*models.Client // Live connections by id.

	Mu  sync.Mutex // Guards everything above and below.
	log *logrus.Entry

	// Communication callbacks. Both are invoked with Mu held and must not
	// call back into the game.
	BroadcastFn         func(ev GameEvent)
	BroadcastToPlayerFn func(playerID uuid.UUID, ev GameEvent)
	OnGameEnd           OnGameEndFunc

	Presence PresenceTracker // Optional.

	endAnnounced bool
}

// NewTrucoGame creates a waiting table seeded for dealing.
func NewTrucoGame(seed uint64, logger logrus.FieldLogger) *TrucoGame {
	id := uuid.New()
	return &TrucoGame{
		ID:      id,
		Engine:  engine.NewGame(seed, engine.DefaultRules()),
		Clients: make(map[uuid.UUID]*models.Client),
		log:     logger.WithField("game_id", id),
	}
}

// Connect registers a new connection and sends it its id and the current state.
func (g *TrucoGame) Connect(ctx context.Context, clientID uuid.UUID) {
	g.Mu.Lock()
	defer g.Mu.Unlock()

	g.Clients[clientID] = &models.Client{ID: clientID, Role: models.RolePending, ConnectedAt: now()}
	g.log.WithField("player_id", clientID).Info("client connected")
	g.markPresence(ctx, clientID)

	g.fireEventToPlayer(clientID, GameEvent{
		Type:    EventPlayerID,
		Payload: map[string]interface{}{"playerId": clientID},
	})
	g.sendSyncState(clientID)
}

// Disconnect drops a connection. A seated player keeps their seat marked
// disconnected once the game has started; otherwise the seat is freed.
func (g *TrucoGame) Disconnect(ctx context.Context, clientID uuid.UUID) {
	g.Mu.Lock()
	defer g.Mu.Unlock()

	c, ok := g.Clients[clientID]
	if !ok {
		return
	}
	delete(g.Clients, clientID)
	g.log.WithFields(logrus.Fields{"player_id": clientID, "role": c.Role}).Info("client disconnected")

	if g.Presence != nil {
		if err := g.Presence.Clear(ctx, g.ID, clientID); err != nil {
			g.log.WithError(err).Warn("presence clear failed")
		}
	}
	if err := g.apply(engine.Leave{PlayerID: clientID.String()}); err != nil {
		g.log.WithError(err).Error("leave rejected")
	}
}

// TouchPresence refreshes a live connection's presence entry.
func (g *TrucoGame) TouchPresence(ctx context.Context, clientID uuid.UUID) {
	g.Mu.Lock()
	defer g.Mu.Unlock()
	if _, ok := g.Clients[clientID]; ok {
		g.markPresence(ctx, clientID)
	}
}

// ForceStart starts the game with the current roster, bypassing client checks.
// Used by the host console and the host HTTP endpoint.
func (g *TrucoGame) ForceStart() error {
	g.Mu.Lock()
	defer g.Mu.Unlock()
	return g.apply(engine.Start{})
}

// Reset returns the table to waiting. Every connection must join again.
func (g *TrucoGame) Reset() {
	g.Mu.Lock()
	defer g.Mu.Unlock()

	g.endAnnounced = false
	for _, c := range g.Clients {
		c.Role = models.RolePending
		c.Name = ""
	}
	if err := g.apply(engine.Reset{}); err != nil {
		g.log.WithError(err).Error("reset rejected")
		return
	}
	g.log.Info("game reset")
}

// Status is a point-in-time summary for host tooling.
type Status struct {
	GameID      uuid.UUID          `json:"gameId"`
	Phase       engine.Phase       `json:"phase"`
	Started     bool               `json:"started"`
	Ended       bool               `json:"ended"`
	Winner      int                `json:"winner"`
	Scores      [2]int             `json:"scores"`
	HandNumber  int                `json:"handNumber"`
	Players     []engine.Player    `json:"players"`
	Spectators  []engine.Spectator `json:"spectators"`
	Connections int                `json:"connections"`
}

// Status summarizes the table. Player hands are omitted.
func (g *TrucoGame) Status() Status {
	g.Mu.Lock()
	defer g.Mu.Unlock()

	players := make([]engine.Player, len(g.Engine.Players))
	for i, p := range g.Engine.Players {
		p.Hand = nil
		players[i] = p
	}
	return Status{
		GameID:      g.ID,
		Phase:       g.Engine.Phase,
		Started:     g.Engine.GameStarted,
		Ended:       g.Engine.GameEnded,
		Winner:      g.Engine.Winner,
		Scores:      g.Engine.TeamScores,
		HandNumber:  g.Engine.HandNumber,
		Players:     players,
		Spectators:  append([]engine.Spectator(nil), g.Engine.Spectators...),
		Connections: len(g.Clients),
	}
}

// LivePresence lists the connections the presence store still considers
// live. It returns nil when no tracker is configured.
func (g *TrucoGame) LivePresence(ctx context.Context) (map[uuid.UUID]models.Role, error) {
	g.Mu.Lock()
	defer g.Mu.Unlock()
	if g.Presence == nil {
		return nil, nil
	}
	return g.Presence.List(ctx, g.ID)
}

// apply runs one engine action and publishes its consequences.
// Assumes lock is held by caller.
func (g *TrucoGame) apply(a engine.Action) error {
	prevTrick, prevEnvido := g.Engine.LastTrick, g.Engine.LastEnvido
	startedBefore := g.Engine.InProgress()

	if err := g.applyEngine(a); err != nil {
		return err
	}

	if _, ok := a.(engine.Start); ok && !startedBefore {
		g.endAnnounced = false
		g.log.WithField("players", g.Engine.NumPlayers()).Info("game started")
	}
	if t := g.Engine.LastTrick; t != nil && t != prevTrick {
		g.fireEvent(GameEvent{
			Type:    EventTrickResolved,
			Payload: map[string]interface{}{"trick": t, "winnerId": g.playerIDAt(t.Winner)},
		})
	}
	if e := g.Engine.LastEnvido; e != nil && e != prevEnvido {
		g.fireEvent(GameEvent{
			Type:    EventEnvidoResolved,
			Payload: map[string]interface{}{"envido": e},
		})
	}
	g.broadcastSyncStateToAll()
	if g.Engine.GameEnded && !g.endAnnounced {
		g.endGame()
	}
	return nil
}

// applyEngine runs a on the engine and rolls the state back if it panics.
// Assumes lock is held by caller.
func (g *TrucoGame) applyEngine(a engine.Action) (err error) {
	snap := g.Engine.Save()
	defer func() {
		if r := recover(); r != nil {
			g.Engine.Restore(snap)
			g.log.WithFields(logrus.Fields{"panic": r, "action": a}).Error("engine failed, state restored")
			err = ErrInternal
		}
	}()
	return g.Engine.ApplyAction(a)
}

// endGame announces the result once.
// Assumes lock is held by caller.
func (g *TrucoGame) endGame() {
	g.endAnnounced = true
	winner, scores := g.Engine.Winner, g.Engine.TeamScores
	g.log.WithFields(logrus.Fields{"winner": winner, "scores": scores}).Info("game ended")

	g.fireEvent(GameEvent{
		Type:    EventGameEnd,
		Payload: map[string]interface{}{"winner": winner, "scores": scores},
	})
	if g.OnGameEnd != nil {
		g.OnGameEnd(g.ID, winner, scores)
	}
}

// playerIDAt returns the id of the player in seat, or "".
func (g *TrucoGame) playerIDAt(seat int) string {
	if seat < 0 || seat >= len(g.Engine.Players) {
		return ""
	}
	return g.Engine.Players[seat].ID
}

// markPresence records a connection's role.
// Assumes lock is held by caller.
func (g *TrucoGame) markPresence(ctx context.Context, clientID uuid.UUID) {
	if g.Presence == nil {
		return
	}
	c := g.Clients[clientID]
	if err := g.Presence.Mark(ctx, g.ID, clientID, c.Role); err != nil {
		g.log.WithError(err).Warn("presence mark failed")
	}
}

// fireEvent broadcasts an event to all connections via BroadcastFn.
// Assumes lock is held by caller.
func (g *TrucoGame) fireEvent(ev GameEvent) {
	if g.BroadcastFn == nil {
		g.log.WithField("event", ev.Type).Warn("BroadcastFn is nil, dropping event")
		return
	}
	g.BroadcastFn(ev)
}

// fireEventToPlayer sends an event to one live connection.
// Assumes lock is held by caller.
func (g *TrucoGame) fireEventToPlayer(clientID uuid.UUID, ev GameEvent) {
	if g.BroadcastToPlayerFn == nil {
		g.log.WithField("event", ev.Type).Warn("BroadcastToPlayerFn is nil, dropping event")
		return
	}
	if _, ok := g.Clients[clientID]; !ok {
		return
	}
	g.BroadcastToPlayerFn(clientID, ev)
}
