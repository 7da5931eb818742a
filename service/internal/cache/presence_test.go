// internal/cache/presence_test.go
package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/jason-s-yu/truco/service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupPresence(t *testing.T) (*Presence, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb, err := ConnectRedis(context.Background(), mr.Addr(), "", 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })
	return NewPresence(rdb, time.Minute), mr
}

func TestPresenceKey(t *testing.T) {
	g := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	c := uuid.MustParse("22222222-2222-2222-2222-222222222222")
	assert.Equal(t,
		"truco:presence:11111111-1111-1111-1111-111111111111:22222222-2222-2222-2222-222222222222",
		presenceKey(g, c))
}

func TestMarkListClear(t *testing.T) {
	p, mr := setupPresence(t)
	ctx := context.Background()
	game, other := uuid.New(), uuid.New()
	a, b := uuid.New(), uuid.New()

	require.NoError(t, p.Mark(ctx, game, a, models.RolePending))
	require.NoError(t, p.Mark(ctx, game, a, models.RolePlayer))
	require.NoError(t, p.Mark(ctx, game, b, models.RoleSpectator))
	require.NoError(t, p.Mark(ctx, other, uuid.New(), models.RolePlayer))

	assert.Equal(t, time.Minute, mr.TTL(presenceKey(game, a)))

	live, err := p.List(ctx, game)
	require.NoError(t, err)
	assert.Equal(t, map[uuid.UUID]models.Role{a: models.RolePlayer, b: models.RoleSpectator}, live)

	require.NoError(t, p.Clear(ctx, game, a))
	live, err = p.List(ctx, game)
	require.NoError(t, err)
	assert.Equal(t, map[uuid.UUID]models.Role{b: models.RoleSpectator}, live)
}

func TestPresenceExpires(t *testing.T) {
	p, mr := setupPresence(t)
	ctx := context.Background()
	game, a := uuid.New(), uuid.New()

	require.NoError(t, p.Mark(ctx, game, a, models.RolePlayer))
	mr.FastForward(2 * time.Minute)

	live, err := p.List(ctx, game)
	require.NoError(t, err)
	assert.Empty(t, live)
}

func TestConnectRedisFails(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := ConnectRedis(context.Background(), addr, "", 0)
	assert.Error(t, err)
}
