package ledger

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/tiesadafc/teamapp/internal/domain"
	"github.com/tiesadafc/teamapp/internal/repository"
)

// Engine provides the 2 foundational coin-ledger operations:
//  1. LockPlayerForUpdate: row-level pessimistic lock
//  2. PostEntry: atomic balance update + append-only insert + outbox event
//
// Every coin a bet escrows, pays out or refunds flows through PostEntry, so
// summing a player's ledger entries always reproduces their balance.
type Engine struct {
	players repository.PlayerRepository
	entries repository.CoinTransactionRepository
	outbox  repository.OutboxRepository
}

// NewEngine creates a ledger engine with the given repositories.
func NewEngine(
	players repository.PlayerRepository,
	entries repository.CoinTransactionRepository,
	outbox repository.OutboxRepository,
) *Engine {
	return &Engine{players: players, entries: entries, outbox: outbox}
}

// LockPlayerForUpdate acquires a row-level lock and returns the player.
// Must be called within a transaction. Holding the lock through the balance
// check and update closes the read-stale-balance race of concurrent debits.
func (e *Engine) LockPlayerForUpdate(ctx context.Context, tx pgx.Tx, playerID uuid.UUID) (*domain.Player, error) {
	player, err := e.players.LockForUpdate(ctx, tx, playerID)
	if err != nil {
		return nil, fmt.Errorf("lock player: %w", err)
	}
	if player == nil {
		return nil, domain.ErrPlayerNotFound(playerID.String())
	}
	return player, nil
}

// PostEntry atomically updates the player's coins and inserts a ledger entry.
// All commands delegate to this.
//
// Steps, all within the caller's transaction:
//  1. Apply the delta with server-side arithmetic (coins = coins + $delta)
//  2. Insert the ledger entry with the post-update balance snapshot
//  3. Insert the outbox event
func (e *Engine) PostEntry(ctx context.Context, tx pgx.Tx, params domain.PostEntryParams) (*domain.CoinTransaction, *domain.Player, error) {
	player, err := e.players.ApplyCoinsDelta(ctx, tx, params.PlayerID, params.Delta)
	if err != nil {
		return nil, nil, fmt.Errorf("apply coins delta: %w", err)
	}
	if player == nil {
		return nil, nil, domain.ErrPlayerNotFound(params.PlayerID.String())
	}

	entry, err := e.entries.Insert(ctx, tx, params, player.Coins)
	if err != nil {
		return nil, nil, fmt.Errorf("insert ledger entry: %w", err)
	}

	if err := e.outbox.Insert(ctx, tx, domain.NewCoinsPostedEvent(entry)); err != nil {
		return nil, nil, fmt.Errorf("insert outbox event: %w", err)
	}

	return entry, player, nil
}
