// internal/game/chat.go
package game

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jason-s-yu/truco/service/internal/models"
)

// MaxChatLen caps a chat message, in runes.
const MaxChatLen = 500

var now = func() time.Time { return time.Now().UTC() }

// handleChat relays a chat line from a joined player or spectator to everyone.
// Blank messages are dropped silently.
// Assumes lock is held by caller.
func (g *TrucoGame) handleChat(c *models.Client, payload json.RawMessage) error {
	if !c.Joined() {
		return ErrNotJoined
	}
	var p models.ChatPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return fmt.Errorf("chat: bad payload: %w", err)
	}
	text := strings.TrimSpace(p.Message)
	if text == "" {
		return nil
	}
	if utf8.RuneCountInString(text) > MaxChatLen {
		text = string([]rune(text)[:MaxChatLen])
	}

	msg := &models.ChatMessage{
		ID:         uuid.New(),
		PlayerID:   c.ID,
		PlayerName: c.Name,
		Message:    text,
		Timestamp:  now(),
	}
	g.log.WithField("player_id", c.ID).Debug("chat relayed")
	g.fireEvent(GameEvent{Type: EventChatMessage, Chat: msg})
	return nil
}
