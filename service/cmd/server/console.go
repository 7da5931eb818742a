// cmd/server/console.go
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jason-s-yu/truco/service/internal/game"
	"github.com/pterm/pterm"
	"github.com/sirupsen/logrus"
)

var errUnknownCommand = errors.New("unknown command")

// console is the stdin host console.
type console struct {
	game *game.TrucoGame
	log  *logrus.Entry
}

func newConsole(g *game.TrucoGame, logger logrus.FieldLogger) *console {
	return &console{game: g, log: logger.WithField("component", "console")}
}

// run reads commands line by line until in is exhausted or ctx is done.
func (c *console) run(ctx context.Context, in io.Reader) {
	printHelp()
	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			lines <- sc.Text()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-lines:
			if !ok {
				return
			}
			if err := c.runCommand(line); err != nil {
				pterm.Error.Println(err)
			}
		}
	}
}

func (c *console) runCommand(line string) error {
	switch cmd := strings.ToLower(strings.TrimSpace(line)); cmd {
	case "":
		return nil
	case "start":
		if err := c.game.ForceStart(); err != nil {
			return fmt.Errorf("start: %w", err)
		}
		c.log.Info("game force-started from console")
		pterm.Success.Println("Game started")
		printStatus(c.game.Status())
	case "reset":
		c.game.Reset()
		c.log.Info("game reset from console")
		pterm.Success.Println("Game reset; everyone must join again")
	case "status":
		printStatus(c.game.Status())
	case "help":
		printHelp()
	default:
		return fmt.Errorf("%w %q, type help", errUnknownCommand, cmd)
	}
	return nil
}

func printHelp() {
	_ = pterm.DefaultTable.WithHasHeader().WithData(pterm.TableData{
		{"Command", "Effect"},
		{"start", "Start the game with the seated players (2 or 4)"},
		{"reset", "Clear the table; players and spectators rejoin"},
		{"status", "Show scores and the roster"},
		{"help", "Show this list"},
	}).Render()
}

func printStatus(s game.Status) {
	state := pterm.LightYellow("waiting")
	switch {
	case s.Ended:
		state = pterm.LightGreen(fmt.Sprintf("over, team %d won", s.Winner))
	case s.Started:
		state = pterm.LightCyan(fmt.Sprintf("hand %d, phase %s", s.HandNumber, s.Phase))
	}
	summary := pterm.Sprintfln("Game: %s\nState: %s\nScore: %d - %d\nConnections: %d",
		s.GameID, state, s.Scores[0], s.Scores[1], s.Connections)
	pterm.DefaultBox.WithTitle("|TABLE|").WithTitleTopCenter().WithHorizontalPadding(4).Println(summary)

	rows := pterm.TableData{{"Seat", "Name", "Team", "Connected"}}
	for i, p := range s.Players {
		conn := pterm.LightGreen("yes")
		if !p.Connected {
			conn = pterm.LightRed("no")
		}
		rows = append(rows, []string{strconv.Itoa(i), p.Name, strconv.Itoa(p.Team), conn})
	}
	for _, sp := range s.Spectators {
		rows = append(rows, []string{"-", sp.Name, "spectator", pterm.LightGreen("yes")})
	}
	if len(rows) > 1 {
		_ = pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
	}
}

func printResult(winner int, scores [2]int) {
	msg := pterm.Sprintfln("Team %d wins %d - %d", winner, scores[winner], scores[1-winner])
	pterm.DefaultBox.WithTitle(pterm.LightGreen("|GAME OVER|")).WithTitleTopCenter().Println(msg)
}
