package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// CoinTransactionType enumerates all coin ledger entry types.
type CoinTransactionType string

const (
	// TxSigningBonus is the one-time grant when a player joins the roster.
	TxSigningBonus CoinTransactionType = "signing_bonus"
	// TxBetStake escrows a stake against an open bet.
	TxBetStake CoinTransactionType = "bet_stake"
	// TxBetPayout credits winnings (or the pooled pvp stakes) to the winner.
	TxBetPayout CoinTransactionType = "bet_payout"
	// TxBetRefund returns an escrowed stake on void.
	TxBetRefund CoinTransactionType = "bet_refund"
)

// CoinTransaction represents a coin_transactions row: an append-only ledger
// entry with a post-update balance snapshot. Amount is signed (debits are
// negative) so summing a player's entries reproduces their balance.
type CoinTransaction struct {
	ID           uuid.UUID           `json:"id"`
	PlayerID     uuid.UUID           `json:"player_id"`
	Type         CoinTransactionType `json:"type"`
	Amount       int64               `json:"amount"`
	BalanceAfter int64               `json:"balance_after"`
	BetID        *uuid.UUID          `json:"bet_id,omitempty"`
	Metadata     json.RawMessage     `json:"metadata"`
	CreatedAt    time.Time           `json:"created_at"`
}

// PostEntryParams is the input to the atomic PostEntry operation.
type PostEntryParams struct {
	PlayerID uuid.UUID
	Type     CoinTransactionType
	// Delta is applied to the player's coins with server-side arithmetic.
	Delta    int64
	BetID    *uuid.UUID
	Metadata json.RawMessage
}

// CommandResult is the return value from all ledger commands.
type CommandResult struct {
	Entry  *CoinTransaction
	Player *Player
}

// EscrowStakeParams holds the input for ExecuteEscrowStake.
type EscrowStakeParams struct {
	PlayerID uuid.UUID
	Amount   int64
	BetID    uuid.UUID
	Metadata json.RawMessage
}

// CreditPayoutParams holds the input for ExecuteCreditPayout.
type CreditPayoutParams struct {
	PlayerID uuid.UUID
	Amount   int64
	BetID    uuid.UUID
	Metadata json.RawMessage
}

// RefundStakeParams holds the input for ExecuteRefundStake.
type RefundStakeParams struct {
	PlayerID uuid.UUID
	Amount   int64
	BetID    uuid.UUID
	Metadata json.RawMessage
}

// SigningBonusParams holds the input for ExecuteSigningBonus.
type SigningBonusParams struct {
	PlayerID uuid.UUID
	Amount   int64
	Metadata json.RawMessage
}
