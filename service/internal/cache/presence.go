// internal/cache/presence.go
package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jason-s-yu/truco/service/internal/models"
	"github.com/redis/go-redis/v9"
)

const presencePrefix = "truco:presence"

// ConnectRedis opens a client and checks it with a PING.
func ConnectRedis(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return rdb, nil
}

// Presence tracks live connections as expiring keys, one per connection.
// Entries vanish on their own if the process dies without clearing them.
type Presence struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewPresence creates a tracker whose entries expire after ttl unless refreshed.
func NewPresence(rdb *redis.Client, ttl time.Duration) *Presence {
	return &Presence{rdb: rdb, ttl: ttl}
}

func presenceKey(gameID, clientID uuid.UUID) string {
	return fmt.Sprintf("%s:%s:%s", presencePrefix, gameID, clientID)
}

// Mark records or refreshes a connection with its current role.
func (p *Presence) Mark(ctx context.Context, gameID, clientID uuid.UUID, role models.Role) error {
	if err := p.rdb.Set(ctx, presenceKey(gameID, clientID), string(role), p.ttl).Err(); err != nil {
		return fmt.Errorf("presence mark: %w", err)
	}
	return nil
}

// Clear removes a connection.
func (p *Presence) Clear(ctx context.Context, gameID, clientID uuid.UUID) error {
	if err := p.rdb.Del(ctx, presenceKey(gameID, clientID)).Err(); err != nil {
		return fmt.Errorf("presence clear: %w", err)
	}
	return nil
}

// List returns the live connections of a game and their roles.
func (p *Presence) List(ctx context.Context, gameID uuid.UUID) (map[uuid.UUID]models.Role, error) {
	prefix := fmt.Sprintf("%s:%s:", presencePrefix, gameID)
	var keys []string
	iter := p.rdb.Scan(ctx, 0, prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("presence scan: %w", err)
	}

	out := make(map[uuid.UUID]models.Role, len(keys))
	if len(keys) == 0 {
		return out, nil
	}
	vals, err := p.rdb.MGet(ctx, keys...).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("presence mget: %w", err)
	}
	for i, key := range keys {
		role, ok := vals[i].(string)
		if !ok {
			continue // expired between SCAN and MGET
		}
		id, err := uuid.Parse(strings.TrimPrefix(key, prefix))
		if err != nil {
			continue
		}
		out[id] = models.Role(role)
	}
	return out, nil
}
