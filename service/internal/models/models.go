// internal/models/models.go
package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Role is what a connection currently is at the table.
type Role string

const (
	RolePending   Role = "pending"   // connected, not yet joined
	RolePlayer    Role = "player"    // holds a seat
	RoleSpectator Role = "spectator" // watching
)

// Client is one live connection to the table.
type Client struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Role        Role      `json:"role"`
	ConnectedAt time.Time `json:"connectedAt"`
}

// Joined reports whether the client has joined as a player or spectator.
func (c *Client) Joined() bool { return c.Role == RolePlayer || c.Role == RoleSpectator }

// GameAction is the envelope every client message arrives in.
type GameAction struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Payloads for the individual client message types.
type (
	JoinPayload struct {
		Name string `json:"name"`
	}
	PlayCardPayload struct {
		CardIndex int `json:"cardIndex"`
	}
	BetPayload struct {
		BetType string `json:"betType"`
	}
	RevealPayload struct {
		Value int `json:"value"`
	}
	ChatPayload struct {
		Message string `json:"message"`
	}
)

// ChatMessage is a relayed table chat line.
type ChatMessage struct {
	ID         uuid.UUID `json:"id"`
	PlayerID   uuid.UUID `json:"playerId"`
	PlayerName string    `json:"playerName"`
	Message    string    `json:"message"`
	Timestamp  time.Time `json:"timestamp"`
}
