// internal/game/actions.go
package game

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jason-s-yu/truco/engine"
	"github.com/jason-s-yu/truco/service/internal/models"
	"github.com/sirupsen/logrus"
)

// Client message types.
const (
	MsgJoinPlayer    = "join_player"
	MsgJoinSpectator = "join_spectator"
	MsgPlayCard      = "play_card"
	MsgMakeBet       = "make_bet"
	MsgAcceptBet     = "accept_bet"
	MsgDenyBet       = "deny_bet"
	MsgRevealEnvido  = "reveal_envido"
	MsgFold          = "fold"
	MsgChat          = "chat"
	MsgStartGame     = "start_game"
)

const maxNameLen = 32

var (
	ErrUnknownMessage = errors.New("unknown message type")
	ErrNameRequired   = errors.New("name required")
	ErrAlreadyJoined  = errors.New("already joined")
	ErrNotJoined      = errors.New("join the table first")
	ErrNotSeated      = errors.New("only seated players can start the game")
)

// HandleClientMessage routes one client message. Failures are reported
// privately to the sender with an action_error event.
func (g *TrucoGame) HandleClientMessage(ctx context.Context, clientID uuid.UUID, msg models.GameAction) {
	g.Mu.Lock()
	defer g.Mu.Unlock()

	c, ok := g.Clients[clientID]
	if !ok {
		g.log.WithField("player_id", clientID).Warn("message from unknown connection ignored")
		return
	}
	entry := g.log.WithFields(logrus.Fields{"player_id": clientID, "action": msg.Type})

	if msg.Type == MsgChat {
		if err := g.handleChat(c, msg.Payload); err != nil {
			g.rejectAction(entry, clientID, err)
		}
		return
	}

	action, err := decodeAction(clientID, msg)
	if err == nil {
		err = g.checkRole(c, action)
	}
	if err == nil {
		err = g.apply(action)
	}
	if err != nil {
		g.rejectAction(entry, clientID, err)
		return
	}

	switch a := action.(type) {
	case engine.Join:
		c.Role, c.Name = models.RolePlayer, a.Name
		g.markPresence(ctx, clientID)
	case engine.Spectate:
		c.Role, c.Name = models.RoleSpectator, a.Name
		g.markPresence(ctx, clientID)
	}
	entry.Info("action applied")
}

// rejectAction logs and reports a failed action to its sender.
// Assumes lock is held by caller.
func (g *TrucoGame) rejectAction(entry *logrus.Entry, clientID uuid.UUID, err error) {
	entry.WithError(err).Warn("action rejected")
	g.fireEventToPlayer(clientID, GameEvent{
		Type:    EventActionError,
		Payload: map[string]interface{}{"message": err.Error()},
	})
}

// checkRole enforces what each kind of connection may do before the engine
// sees the action.
func (g *TrucoGame) checkRole(c *models.Client, a engine.Action) error {
	switch a.(type) {
	case engine.Join, engine.Spectate:
		if c.Joined() {
			return ErrAlreadyJoined
		}
	case engine.Start:
		if c.Role != models.RolePlayer {
			return ErrNotSeated
		}
	default:
		if !c.Joined() {
			return ErrNotJoined
		}
	}
	return nil
}

// decodeAction maps a client message onto the engine's closed action set.
func decodeAction(clientID uuid.UUID, msg models.GameAction) (engine.Action, error) {
	id := clientID.String()
	switch msg.Type {
	case MsgJoinPlayer, MsgJoinSpectator:
		var p models.JoinPayload
		if err := decodePayload(msg, &p); err != nil {
			return nil, err
		}
		name, err := cleanName(p.Name)
		if err != nil {
			return nil, err
		}
		if msg.Type == MsgJoinPlayer {
			return engine.Join{PlayerID: id, Name: name}, nil
		}
		return engine.Spectate{PlayerID: id, Name: name}, nil
	case MsgPlayCard:
		var p models.PlayCardPayload
		if err := decodePayload(msg, &p); err != nil {
			return nil, err
		}
		return engine.PlayCard{PlayerID: id, CardIndex: p.CardIndex}, nil
	case MsgMakeBet:
		var p models.BetPayload
		if err := decodePayload(msg, &p); err != nil {
			return nil, err
		}
		return engine.Call{PlayerID: id, Bet: engine.BetCall(p.BetType)}, nil
	case MsgAcceptBet:
		return engine.Accept{PlayerID: id}, nil
	case MsgDenyBet:
		return engine.Deny{PlayerID: id}, nil
	case MsgRevealEnvido:
		var p models.RevealPayload
		if err := decodePayload(msg, &p); err != nil {
			return nil, err
		}
		return engine.Reveal{PlayerID: id, Value: p.Value}, nil
	case MsgFold:
		return engine.Fold{PlayerID: id}, nil
	case MsgStartGame:
		return engine.Start{PlayerID: id}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMessage, msg.Type)
	}
}

func decodePayload(msg models.GameAction, v interface{}) error {
	if len(msg.Payload) == 0 {
		return fmt.Errorf("%s: missing payload", msg.Type)
	}
	if err := json.Unmarshal(msg.Payload, v); err != nil {
		return fmt.Errorf("%s: bad payload: %w", msg.Type, err)
	}
	return nil
}

// cleanName trims a display name and caps its length.
func cleanName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrNameRequired
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		name = string([]rune(name)[:maxNameLen])
	}
	return name, nil
}
