package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// EventType enumerates all domain event types published through the outbox.
type EventType string

const (
	EventPlayerCreated  EventType = "team.player.created"
	EventBetPlaced      EventType = "team.bet.placed"
	EventBetAccepted    EventType = "team.bet.accepted"
	EventBetSettled     EventType = "team.bet.settled"
	EventMatchFinalized EventType = "team.match.finalized"
	EventCoinsPosted    EventType = "team.wallet.transaction.posted"
)

// AggregateType enumerates the aggregate root types for outbox events.
type AggregateType string

const (
	AggregatePlayer AggregateType = "player"
	AggregateBet    AggregateType = "bet"
	AggregateMatch  AggregateType = "match"
	AggregateWallet AggregateType = "wallet"
)

// OutboxDraft is the payload written to the event_outbox table within the
// same transaction as the state change it describes.
type OutboxDraft struct {
	EventID       uuid.UUID       `json:"eventId"`
	AggregateType AggregateType   `json:"aggregateType"`
	AggregateID   string          `json:"aggregateId"`
	EventType     EventType       `json:"eventType"`
	PartitionKey  string          `json:"partitionKey"`
	Payload       json.RawMessage `json:"payload"`
	OccurredAt    time.Time       `json:"occurredAt"`
}
