package ledger

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tiesadafc/teamapp/internal/domain"
)

// ExecuteCreditPayout credits winnings (or the pooled pvp stakes) to a
// player. Credits always succeed for a resolvable player.
func (e *Engine) ExecuteCreditPayout(ctx context.Context, tx pgx.Tx, params domain.CreditPayoutParams) (*domain.CommandResult, error) {
	if err := domain.ValidatePositiveAmount(params.Amount); err != nil {
		return nil, domain.ErrValidation(err.Error())
	}

	if _, err := e.LockPlayerForUpdate(ctx, tx, params.PlayerID); err != nil {
		return nil, fmt.Errorf("credit payout: %w", err)
	}

	betID := params.BetID
	entry, updated, err := e.PostEntry(ctx, tx, domain.PostEntryParams{
		PlayerID: params.PlayerID,
		Type:     domain.TxBetPayout,
		Delta:    params.Amount,
		BetID:    &betID,
		Metadata: ensureJSON(params.Metadata),
	})
	if err != nil {
		return nil, fmt.Errorf("credit payout post: %w", err)
	}

	return &domain.CommandResult{Entry: entry, Player: updated}, nil
}
