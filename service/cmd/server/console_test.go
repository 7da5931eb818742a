// cmd/server/console_test.go
package main

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/jason-s-yu/truco/engine"
	"github.com/jason-s-yu/truco/service/internal/game"
	"github.com/pterm/pterm"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupConsole(t *testing.T, players int) *console {
	t.Helper()
	pterm.DisableOutput()
	t.Cleanup(pterm.EnableOutput)

	logger, _ := test.NewNullLogger()
	g := game.NewTrucoGame(3, logger)
	g.BroadcastFn = func(game.GameEvent) {}
	for i := 0; i < players; i++ {
		require.NoError(t, g.Engine.AddPlayer(string(rune('a'+i)), "P"))
	}
	return newConsole(g, logger)
}

func TestConsoleCommands(t *testing.T) {
	c := setupConsole(t, 2)

	require.NoError(t, c.runCommand("  STATUS "))
	require.NoError(t, c.runCommand("help"))
	require.NoError(t, c.runCommand(""))

	require.NoError(t, c.runCommand("start"))
	assert.True(t, c.game.Status().Started)

	err := c.runCommand("start")
	assert.ErrorIs(t, err, engine.ErrAlreadyStarted)

	require.NoError(t, c.runCommand("status"))
	require.NoError(t, c.runCommand("reset"))
	st := c.game.Status()
	assert.False(t, st.Started)
	assert.Empty(t, st.Players)

	assert.ErrorIs(t, c.runCommand("deal"), errUnknownCommand)
}

func TestConsoleStartNeedsPlayers(t *testing.T) {
	c := setupConsole(t, 3)
	assert.ErrorIs(t, c.runCommand("start"), engine.ErrNeedPlayers)
}

func TestConsoleRunReadsLines(t *testing.T) {
	c := setupConsole(t, 2)
	done := make(chan struct{})
	go func() {
		c.run(context.Background(), strings.NewReader("status\nstart\n"))
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("console did not stop at end of input")
	}
	assert.True(t, c.game.Status().Started)
}

func TestPrintResultDoesNotPanic(t *testing.T) {
	pterm.DisableOutput()
	t.Cleanup(pterm.EnableOutput)
	assert.NotPanics(t, func() { printResult(1, [2]int{12, 30}) })
}
