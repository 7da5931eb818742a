package engine

import "errors"

// User action errors. A rejected action leaves the state unchanged.
var (
	ErrFullOrStarted     = errors.New("game full or already started")
	ErrNeedPlayers       = errors.New("need 2 or 4 players")
	ErrAlreadyStarted    = errors.New("game already started")
	ErrNotStarted        = errors.New("game not started")
	ErrGameOver          = errors.New("game is already over")
	ErrPlayerNotFound    = errors.New("player not found")
	ErrNotYourTurn       = errors.New("not your turn")
	ErrInvalidCard       = errors.New("invalid card")
	ErrInvalidBet        = errors.New("invalid bet")
	ErrEnvidoUnavailable = errors.New("envido unavailable")
	ErrNotWaiting        = errors.New("not waiting for your response")
	ErrNotYourReveal     = errors.New("not your turn to reveal")
	ErrInvalidEnvido     = errors.New("envido value does not match hand")
	ErrBetPending        = errors.New("waiting for a bet response")
)
