package engine

import "fmt"

// Action is one discrete request against the table. The set of actions is
// closed: only the types in this file implement it.
type Action interface {
	isAction()
	// Actor returns the id of the requesting player, or "" for host actions.
	Actor() string
}

// Join seats a player.
type Join struct {
	PlayerID string
	Name     string
}

// Spectate adds a watcher.
type Spectate struct {
	PlayerID string
	Name     string
}

// Leave disconnects a player or spectator.
type Leave struct{ PlayerID string }

// Start force-starts the game with the current roster.
type Start struct{ PlayerID string }

// PlayCard plays the card at CardIndex of the actor's hand.
type PlayCard struct {
	PlayerID  string
	CardIndex int
}

// Call makes or raises a bet.
type Call struct {
	PlayerID string
	Bet      BetCall
}

// Accept answers the pending call with "quiero".
type Accept struct{ PlayerID string }

// Deny answers the pending call with "no quiero".
type Deny struct{ PlayerID string }

// Reveal declares an envido count; 0 passes.
type Reveal struct {
	PlayerID string
	Value    int
}

// Fold abandons the hand.
type Fold struct{ PlayerID string }

// Reset returns the table to waiting.
type Reset struct{}

func (Join) isAction()     {}
func (Spectate) isAction() {}
func (Leave) isAction()    {}
func (Start) isAction()    {}
func (PlayCard) isAction() {}
func (Call) isAction()     {}
func (Accept) isAction()   {}
func (Deny) isAction()     {}
func (Reveal) isAction()   {}
func (Fold) isAction()     {}
func (Reset) isAction()    {}

func (a Join) Actor() string     { return a.PlayerID }
func (a Spectate) Actor() string { return a.PlayerID }
func (a Leave) Actor() string    { return a.PlayerID }
func (a Start) Actor() string    { return a.PlayerID }
func (a PlayCard) Actor() string { return a.PlayerID }
func (a Call) Actor() string     { return a.PlayerID }
func (a Accept) Actor() string   { return a.PlayerID }
func (a Deny) Actor() string     { return a.PlayerID }
func (a Reveal) Actor() string   { return a.PlayerID }
func (a Fold) Actor() string     { return a.PlayerID }
func (Reset) Actor() string      { return "" }

// ApplyAction dispatches an action to its method. Returns an error if the
// action is illegal; the state is then unchanged.
func (g *GameState) ApplyAction(a Action) error {
	switch a := a.(type) {
	case Join:
		return g.AddPlayer(a.PlayerID, a.Name)
	case Spectate:
		g.AddSpectator(a.PlayerID, a.Name)
		return nil
	case Leave:
		g.RemovePlayer(a.PlayerID)
		return nil
	case Start:
		return g.ForceStart()
	case PlayCard:
		return g.PlayCard(a.PlayerID, a.CardIndex)
	case Call:
		if !a.Bet.Valid() {
			return ErrInvalidBet
		}
		return g.MakeBet(a.PlayerID, a.Bet)
	case Accept:
		return g.AcceptBet(a.PlayerID)
	case Deny:
		return g.DenyBet(a.PlayerID)
	case Reveal:
		return g.RevealEnvido(a.PlayerID, a.Value)
	case Fold:
		return g.Fold(a.PlayerID)
	case Reset:
		g.Reset()
		return nil
	default:
		return fmt.Errorf("unhandled action %T", a)
	}
}

// Result is the success/failure outcome of one action.
type Result struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// ResultOf converts an action error into a Result.
func ResultOf(err error) Result {
	if err != nil {
		return Result{Success: false, Error: err.Error()}
	}
	return Result{Success: true}
}
