package engine

import "fmt"

// Rules holds the table configuration. Team assignment and legal roster sizes
// are decided here rather than scattered across the action handlers.
type Rules struct {
	TargetScore         int   // game ends when a team reaches this score
	FaltaMidpoint       int   // falta-envido counts toward this score first, then TargetScore
	HandSize            int   // cards dealt to each player per hand
	MaxPlayers          int   // roster cap
	AllowedPlayerCounts []int // roster sizes accepted at start
}

// DefaultRules returns the standard 30-point, two-team configuration.
func DefaultRules() Rules {
	return Rules{
		TargetScore:         30,
		FaltaMidpoint:       15,
		HandSize:            3,
		MaxPlayers:          4,
		AllowedPlayerCounts: []int{2, 4},
	}
}

// ValidatePlayerCount reports whether a game can start with n seated players.
func (r *Rules) ValidatePlayerCount(n int) error {
	for _, allowed := range r.AllowedPlayerCounts {
		if n == allowed {
			return nil
		}
	}
	return fmt.Errorf("%w: have %d", ErrNeedPlayers, n)
}

// teamForSeat assigns teams by join order, alternating 0/1/0/1.
func teamForSeat(seat int) int { return seat % 2 }
