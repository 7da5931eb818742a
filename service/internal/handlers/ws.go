// internal/handlers/ws.go
package handlers

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/google/uuid"
	"github.com/jason-s-yu/truco/service/internal/game"
	"github.com/jason-s-yu/truco/service/internal/models"
	"github.com/sirupsen/logrus"
)

const (
	sendBuffer   = 64
	readLimit    = 8 << 10
	writeTimeout = 10 * time.Second
	pingPeriod   = 25 * time.Second
)

// ------------ Hub ------------

// Hub owns the live WebSocket connections of one table and delivers the
// table's events to them.
type Hub struct {
	game           *game.TrucoGame
	originPatterns []string
	log            *logrus.Entry

	mu      sync.RWMutex
	clients map[uuid.UUID]*wsClient

	pingPeriod time.Duration
}

type wsClient struct {
	id      uuid.UUID
	send    chan game.GameEvent
	dropped atomic.Bool
}

// NewHub creates a hub and installs it as the game's broadcaster.
func NewHub(g *game.TrucoGame, originPatterns []string, logger logrus.FieldLogger) *Hub {
	h := &Hub{
		game:           g,
		originPatterns: originPatterns,
		log:            logger.WithField("component", "ws"),
		clients:        make(map[uuid.UUID]*wsClient),
		pingPeriod:     pingPeriod,
	}
	g.BroadcastFn = h.broadcast
	g.BroadcastToPlayerFn = h.sendTo
	return h
}

// broadcast queues ev for every connection. Called with the game lock held,
// so it never blocks: a connection whose buffer is full is dropped.
func (h *Hub) broadcast(ev game.GameEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, c := range h.clients {
		h.enqueue(c, ev)
	}
}

// sendTo queues ev for one connection.
func (h *Hub) sendTo(id uuid.UUID, ev game.GameEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if c, ok := h.clients[id]; ok {
		h.enqueue(c, ev)
	}
}

// enqueue assumes h.mu is held.
func (h *Hub) enqueue(c *wsClient, ev game.GameEvent) {
	select {
	case c.send <- ev:
	default:
		h.log.WithField("player_id", c.id).Warn("send buffer full, dropping connection")
		c.dropped.Store(true)
		delete(h.clients, c.id)
		close(c.send)
	}
}

func (h *Hub) register(c *wsClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c.id] = c
}

func (h *Hub) unregister(c *wsClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if cur, ok := h.clients[c.id]; ok && cur == c {
		delete(h.clients, c.id)
		close(c.send)
	}
}

// Connections returns the number of live connections.
func (h *Hub) Connections() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// ------------ WS Handler ------------

// ServeHTTP upgrades the request and runs the connection until it closes.
// Every connection gets a fresh id; there is no resume.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: h.originPatterns,
	})
	if err != nil {
		h.log.WithError(err).Warn("websocket accept failed")
		return
	}
	defer conn.CloseNow()
	conn.SetReadLimit(readLimit)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	c := &wsClient{id: uuid.New(), send: make(chan game.GameEvent, sendBuffer)}
	h.register(c)
	go h.writePump(ctx, cancel, conn, c)

	h.game.Connect(ctx, c.id)
	h.readPump(ctx, conn, c)

	h.unregister(c)
	h.game.Disconnect(context.WithoutCancel(ctx), c.id)
}

// readPump feeds client messages to the game until the connection fails.
func (h *Hub) readPump(ctx context.Context, conn *websocket.Conn, c *wsClient) {
	for {
		var msg models.GameAction
		if err := wsjson.Read(ctx, conn, &msg); err != nil {
			h.logReadError(c, err)
			return
		}
		h.game.HandleClientMessage(ctx, c.id, msg)
	}
}

// writePump drains the send queue and keeps the connection alive with pings.
func (h *Hub) writePump(ctx context.Context, cancel context.CancelFunc, conn *websocket.Conn, c *wsClient) {
	defer cancel()
	ticker := time.NewTicker(h.pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case ev, ok := <-c.send:
			if !ok {
				if c.dropped.Load() {
					conn.Close(websocket.StatusPolicyViolation, "too slow")
				}
				return
			}
			wctx, wcancel := context.WithTimeout(ctx, writeTimeout)
			err := wsjson.Write(wctx, conn, ev)
			wcancel()
			if err != nil {
				h.log.WithError(err).WithField("player_id", c.id).Debug("write failed")
				return
			}
		case <-ticker.C:
			pctx, pcancel := context.WithTimeout(ctx, writeTimeout)
			err := conn.Ping(pctx)
			pcancel()
			if err != nil {
				h.log.WithError(err).WithField("player_id", c.id).Debug("ping failed")
				return
			}
			h.game.TouchPresence(ctx, c.id)
		case <-ctx.Done():
			return
		}
	}
}

func (h *Hub) logReadError(c *wsClient, err error) {
	entry := h.log.WithField("player_id", c.id)
	switch websocket.CloseStatus(err) {
	case websocket.StatusNormalClosure, websocket.StatusGoingAway:
		entry.Debug("connection closed")
	default:
		if errors.Is(err, context.Canceled) {
			entry.Debug("connection closed")
			return
		}
		entry.WithError(err).Info("connection read failed")
	}
}
