package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// NewCoinsPostedEvent creates the standard wallet event for a ledger entry.
func NewCoinsPostedEvent(entry *CoinTransaction) OutboxDraft {
	payload, _ := json.Marshal(entry)
	return OutboxDraft{
		EventID:       uuid.New(),
		AggregateType: AggregateWallet,
		AggregateID:   entry.PlayerID.String(),
		EventType:     EventCoinsPosted,
		PartitionKey:  entry.PlayerID.String(),
		Payload:       payload,
		OccurredAt:    time.Now(),
	}
}

// NewBetPlacedEvent announces a freshly placed bet.
func NewBetPlacedEvent(bet *Bet) OutboxDraft {
	return newBetEvent(EventBetPlaced, bet)
}

// NewBetAcceptedEvent announces a pvp bet going active.
func NewBetAcceptedEvent(bet *Bet) OutboxDraft {
	return newBetEvent(EventBetAccepted, bet)
}

// NewBetSettledEvent announces a bet reaching a terminal status.
func NewBetSettledEvent(bet *Bet) OutboxDraft {
	return newBetEvent(EventBetSettled, bet)
}

func newBetEvent(t EventType, bet *Bet) OutboxDraft {
	payload, _ := json.Marshal(bet)
	return OutboxDraft{
		EventID:       uuid.New(),
		AggregateType: AggregateBet,
		AggregateID:   bet.ID.String(),
		EventType:     t,
		PartitionKey:  bet.MatchID.String(),
		Payload:       payload,
		OccurredAt:    time.Now(),
	}
}

// NewMatchFinalizedEvent announces a match transitioning to played.
func NewMatchFinalizedEvent(match *Match) OutboxDraft {
	payload, _ := json.Marshal(map[string]interface{}{
		"match_id": match.ID.String(),
		"opponent": match.Opponent,
		"result":   match.Result,
	})
	return OutboxDraft{
		EventID:       uuid.New(),
		AggregateType: AggregateMatch,
		AggregateID:   match.ID.String(),
		EventType:     EventMatchFinalized,
		PartitionKey:  match.ID.String(),
		Payload:       payload,
		OccurredAt:    time.Now(),
	}
}

// NewPlayerCreatedEvent creates a player lifecycle event.
func NewPlayerCreatedEvent(player *Player) OutboxDraft {
	payload, _ := json.Marshal(map[string]string{
		"player_id": player.ID.String(),
		"name":      player.Name,
		"position":  player.Position,
	})
	return OutboxDraft{
		EventID:       uuid.New(),
		AggregateType: AggregatePlayer,
		AggregateID:   player.ID.String(),
		EventType:     EventPlayerCreated,
		PartitionKey:  player.ID.String(),
		Payload:       payload,
		OccurredAt:    time.Now(),
	}
}
