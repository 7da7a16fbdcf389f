package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// BetType discriminates what a bet is about.
type BetType string

const (
	BetTypeResult      BetType = "result"
	BetTypePlayerEvent BetType = "player_event"
	BetTypeCustomPvP   BetType = "custom_pvp"
)

// BetMode discriminates who the counter-party is.
type BetMode string

const (
	// BetModeStandard is a wager against the house at fixed odds.
	BetModeStandard BetMode = "standard"
	// BetModePvP is a wager between two players; the house holds no stake.
	BetModePvP BetMode = "pvp"
)

// BetStatus is the bet lifecycle state.
//
//	pending  (standard) ──────────────→ won | lost
//	proposed (pvp)      ──→ active ───→ won | lost
//	         └─ match played first ───→ void
type BetStatus string

const (
	BetStatusPending  BetStatus = "pending"
	BetStatusProposed BetStatus = "proposed"
	BetStatusActive   BetStatus = "active"
	BetStatusWon      BetStatus = "won"
	BetStatusLost     BetStatus = "lost"
	BetStatusVoid     BetStatus = "void"
)

// Terminal reports whether the status admits no further transition.
func (s BetStatus) Terminal() bool {
	return s == BetStatusWon || s == BetStatusLost || s == BetStatusVoid
}

// OpenBetStatuses are the statuses settlement acts on. The open-status
// filter is what makes match resolution exactly-once: a second pass over
// the same match selects nothing.
var OpenBetStatuses = []BetStatus{BetStatusPending, BetStatusActive, BetStatusProposed}

// PlayerEvent names a per-player occurrence that can be bet on.
type PlayerEvent string

const (
	EventScores   PlayerEvent = "scores"
	EventAssists  PlayerEvent = "assists"
	EventGetsCard PlayerEvent = "gets_card"
	EventNoCard   PlayerEvent = "no_card"
	EventCagadas  PlayerEvent = "cagadas"
)

// BetDetails is the tagged union of per-type bet payloads. The concrete
// variant is determined by the bet's Type.
type BetDetails interface {
	betDetails()
}

// ResultDetails predicts the exact final score.
type ResultDetails struct {
	Us   int `json:"us"`
	Them int `json:"them"`
}

func (ResultDetails) betDetails() {}

// PlayerEventDetails predicts an occurrence for a named player.
type PlayerEventDetails struct {
	PlayerID uuid.UUID   `json:"playerId"`
	Event    PlayerEvent `json:"event"`
}

func (PlayerEventDetails) betDetails() {}

// CustomDetails carries a free-form PvP wager with caller-specified odds.
type CustomDetails struct {
	Description string  `json:"custom_description"`
	Odds        float64 `json:"custom_odds"`
}

func (CustomDetails) betDetails() {}

// UnmarshalBetDetails decodes a details payload into the variant matching
// the bet type.
func UnmarshalBetDetails(t BetType, data []byte) (BetDetails, error) {
	switch t {
	case BetTypeResult:
		var d ResultDetails
		if err := json.Unmarshal(data, &d); err != nil {
			return nil, fmt.Errorf("decode result details: %w", err)
		}
		return d, nil
	case BetTypePlayerEvent:
		var d PlayerEventDetails
		if err := json.Unmarshal(data, &d); err != nil {
			return nil, fmt.Errorf("decode player_event details: %w", err)
		}
		return d, nil
	case BetTypeCustomPvP:
		var d CustomDetails
		if err := json.Unmarshal(data, &d); err != nil {
			return nil, fmt.Errorf("decode custom_pvp details: %w", err)
		}
		return d, nil
	default:
		return nil, fmt.Errorf("unknown bet type %q", t)
	}
}

// Bet represents a bets row, the central wagering entity.
type Bet struct {
	ID      uuid.UUID  `json:"id"`
	MatchID uuid.UUID  `json:"match_id"`
	Type    BetType    `json:"type"`
	Mode    BetMode    `json:"bet_mode"`
	Amount  int64      `json:"amount"`
	Details BetDetails `json:"details"`

	// PlayerID is the bettor for standard bets.
	PlayerID *uuid.UUID `json:"player_id,omitempty"`
	// ProposerID / AccepterID are the two sides of a pvp bet. AccepterID is
	// nil until acceptance.
	ProposerID *uuid.UUID `json:"proposer_id,omitempty"`
	AccepterID *uuid.UUID `json:"accepter_id,omitempty"`

	// AccepterStake is the counter-stake escrowed at acceptance. It is
	// computed once (round-half-up of amount x odds) and persisted so
	// settlement pays out exactly what was escrowed even if the odds table
	// were ever to change between acceptance and settlement.
	AccepterStake *int64 `json:"accepter_stake,omitempty"`

	Status    BetStatus  `json:"status"`
	PlacedAt  time.Time  `json:"placed_at"`
	SettledAt *time.Time `json:"settled_at,omitempty"`
}

// ValidateDetails checks that the details variant matches the bet type and
// carries the per-variant required fields. Validation runs before any
// ledger mutation.
func (b *Bet) ValidateDetails() error {
	switch b.Type {
	case BetTypeResult:
		d, ok := b.Details.(ResultDetails)
		if !ok {
			return ErrInvalidBetDetails("result bet requires {us, them}")
		}
		if d.Us < 0 || d.Them < 0 {
			return ErrInvalidBetDetails("scores cannot be negative")
		}
	case BetTypePlayerEvent:
		d, ok := b.Details.(PlayerEventDetails)
		if !ok {
			return ErrInvalidBetDetails("player_event bet requires {playerId, event}")
		}
		switch d.Event {
		case EventScores, EventAssists, EventGetsCard, EventNoCard, EventCagadas:
		default:
			return ErrInvalidBetDetails(fmt.Sprintf("unknown player event %q", d.Event))
		}
		if d.PlayerID == uuid.Nil {
			return ErrInvalidBetDetails("player_event bet requires a player")
		}
	case BetTypeCustomPvP:
		if b.Mode != BetModePvP {
			return ErrInvalidBetDetails("custom bets are pvp only")
		}
		d, ok := b.Details.(CustomDetails)
		if !ok {
			return ErrInvalidBetDetails("custom_pvp bet requires {custom_description, custom_odds}")
		}
		if d.Description == "" {
			return ErrInvalidBetDetails("custom bet needs a description")
		}
		if d.Odds <= 1 {
			return ErrInvalidBetDetails("custom odds must be greater than 1")
		}
	default:
		return ErrInvalidBetDetails(fmt.Sprintf("unknown bet type %q", b.Type))
	}
	return nil
}

// Multiplier returns the payout multiplier for this bet: the caller-set
// odds for custom bets, the fixed table otherwise.
func (b *Bet) Multiplier() float64 {
	if b.Type == BetTypeCustomPvP {
		if d, ok := b.Details.(CustomDetails); ok {
			return d.Odds
		}
	}
	return OddsFor(b.Type, b.Details)
}
