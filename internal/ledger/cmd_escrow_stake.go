package ledger

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tiesadafc/teamapp/internal/domain"
)

// ExecuteEscrowStake debits a stake from the player's coins, holding it
// against an open bet. Fails with InsufficientFunds when the balance cannot
// cover the stake; the check runs under the player's row lock so concurrent
// escrows cannot both see a stale sufficient balance.
func (e *Engine) ExecuteEscrowStake(ctx context.Context, tx pgx.Tx, params domain.EscrowStakeParams) (*domain.CommandResult, error) {
	if err := domain.ValidatePositiveAmount(params.Amount); err != nil {
		return nil, domain.ErrValidation(err.Error())
	}

	player, err := e.LockPlayerForUpdate(ctx, tx, params.PlayerID)
	if err != nil {
		return nil, fmt.Errorf("escrow stake: %w", err)
	}
	if player.Coins < params.Amount {
		return nil, domain.ErrInsufficientFunds(player.Coins, params.Amount)
	}

	betID := params.BetID
	entry, updated, err := e.PostEntry(ctx, tx, domain.PostEntryParams{
		PlayerID: params.PlayerID,
		Type:     domain.TxBetStake,
		Delta:    -params.Amount,
		BetID:    &betID,
		Metadata: ensureJSON(params.Metadata),
	})
	if err != nil {
		return nil, fmt.Errorf("escrow stake post: %w", err)
	}

	return &domain.CommandResult{Entry: entry, Player: updated}, nil
}
