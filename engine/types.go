package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// Suit is one of the four Spanish-deck suits.
type Suit uint8

// Suit constants, in the order used by the strength table tie-breaks.
const (
	SuitClub  Suit = 0
	SuitCoin  Suit = 1
	SuitCup   Suit = 2
	SuitSword Suit = 3
)

// NumSuits is the number of suits in the deck.
const NumSuits = 4

var suitNames = [NumSuits]string{"club", "coin", "cup", "sword"}

// String returns the lowercase suit name ("club", "coin", "cup", "sword").
func (s Suit) String() string {
	if int(s) < NumSuits {
		return suitNames[s]
	}
	return "suit(" + strconv.Itoa(int(s)) + ")"
}

// ParseSuit converts a suit name back into a Suit.
func ParseSuit(name string) (Suit, bool) {
	for i, n := range suitNames {
		if strings.EqualFold(n, name) {
			return Suit(i), true
		}
	}
	return 0, false
}

// MarshalText encodes the suit by name so JSON payloads read "sword" rather than 3.
func (s Suit) MarshalText() ([]byte, error) {
	if int(s) >= NumSuits {
		return nil, fmt.Errorf("invalid suit %d", s)
	}
	return []byte(suitNames[s]), nil
}

// UnmarshalText decodes a suit name.
func (s *Suit) UnmarshalText(b []byte) error {
	v, ok := ParseSuit(string(b))
	if !ok {
		return fmt.Errorf("unknown suit %q", b)
	}
	*s = v
	return nil
}

// Ranks lists the ten ranks of the 40-card deck. There are no 8s or 9s.
var Ranks = [...]uint8{1, 2, 3, 4, 5, 6, 7, 10, 11, 12}

// DeckSize is the number of distinct cards in a full deck.
const DeckSize = len(Ranks) * NumSuits

// Card is an immutable (rank, suit) value.
type Card struct {
	Rank uint8 `json:"value"`
	Suit Suit  `json:"suit"`
}

// NewCard constructs a Card. It does not validate; see Valid.
func NewCard(rank uint8, suit Suit) Card {
	return Card{Rank: rank, Suit: suit}
}

// Valid reports whether c is one of the 40 deck cards.
func (c Card) Valid() bool {
	if int(c.Suit) >= NumSuits {
		return false
	}
	for _, r := range Ranks {
		if r == c.Rank {
			return true
		}
	}
	return false
}

// IsFace reports whether the card is a 10, 11 or 12.
func (c Card) IsFace() bool { return c.Rank >= 10 }

// EnvidoPoints returns the card's contribution to an envido count.
// Face cards count as zero.
func (c Card) EnvidoPoints() int {
	if c.IsFace() {
		return 0
	}
	return int(c.Rank)
}

// String renders the card as "<rank>-<suit>", e.g. "1-sword".
func (c Card) String() string {
	return strconv.Itoa(int(c.Rank)) + "-" + c.Suit.String()
}

// Phase is the engine's top-level state tag.
type Phase string

const (
	PhaseWaiting      Phase = "waiting"
	PhaseTruco        Phase = "truco"
	PhaseEnvido       Phase = "envido"
	PhaseEnvidoReveal Phase = "envido-reveal"
)

// NoPlayer marks an unset seat reference (bet caller, bet responder).
const NoPlayer = -1

// NoTeam marks an unset team reference (winner, truco raise holder).
const NoTeam = -1

// BetFamily groups the individual calls into the two negotiation ladders.
type BetFamily string

const (
	BetNone   BetFamily = ""
	BetEnvido BetFamily = "envido"
	BetTruco  BetFamily = "truco"
)

// BetCall is a single call a player can make.
type BetCall string

const (
	CallEnvido      BetCall = "envido"
	CallEnvido2     BetCall = "envido2"
	CallRealEnvido  BetCall = "real-envido"
	CallFaltaEnvido BetCall = "falta-envido"
	CallTruco       BetCall = "truco"
	CallRetruco     BetCall = "retruco"
	CallValeCuatro  BetCall = "vale-cuatro"
)

type callInfo struct {
	family BetFamily
	tier   int
	points int // fixed stake; falta-envido is computed
}

var callTable = map[BetCall]callInfo{
	CallEnvido:      {BetEnvido, 1, 2},
	CallEnvido2:     {BetEnvido, 2, 2},
	CallRealEnvido:  {BetEnvido, 3, 3},
	CallFaltaEnvido: {BetEnvido, 4, 0},
	CallTruco:       {BetTruco, 1, 2},
	CallRetruco:     {BetTruco, 2, 3},
	CallValeCuatro:  {BetTruco, 3, 4},
}

// Family returns the ladder the call belongs to, or BetNone for an unknown call.
func (c BetCall) Family() BetFamily { return callTable[c].family }

// Valid reports whether c is a known call.
func (c BetCall) Valid() bool {
	_, ok := callTable[c]
	return ok
}

// Bet is the in-flight negotiation. Amount accumulates across raises.
type Bet struct {
	Type       BetFamily `json:"type"`
	Amount     int       `json:"amount"`
	Caller     int       `json:"caller"`
	WaitingFor int       `json:"waitingFor"`
	Opener     int       `json:"opener"`
	Last       BetCall   `json:"last,omitempty"`
}

// emptyBet returns the no-negotiation value.
func emptyBet() Bet {
	return Bet{Caller: NoPlayer, WaitingFor: NoPlayer, Opener: NoPlayer}
}

// Open reports whether a response is still pending.
func (b Bet) Open() bool { return b.WaitingFor != NoPlayer }

// Player is one seat at the table.
type Player struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Hand      []Card `json:"cards"`
	Team      int    `json:"team"`
	Connected bool   `json:"isConnected"`
}

// Spectator watches without a seat.
type Spectator struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// EnvidoReveal is one player's entry during the reveal phase.
// A pass is recorded with Passed and never counts toward the team maximum.
type EnvidoReveal struct {
	PlayerID string `json:"playerId"`
	Value    int    `json:"value"`
	Revealed bool   `json:"revealed"`
	Passed   bool   `json:"passed"`
}

// Settled reports whether the entry has been revealed or passed.
func (e EnvidoReveal) Settled() bool { return e.Revealed || e.Passed }

// TrickResult records the most recently resolved trick.
type TrickResult struct {
	Cards  []Card `json:"cards"`
	Leader int    `json:"leader"`
	Winner int    `json:"winner"`
}

// EnvidoResult records the most recently resolved envido showdown.
type EnvidoResult struct {
	TeamValues [2]int `json:"teamValues"`
	Winner     int    `json:"winner"`
	Points     int    `json:"points"`
}
