package ledger

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tiesadafc/teamapp/internal/domain"
)

// ExecuteRefundStake returns an escrowed stake to its owner when a bet is
// voided. The refund is always the original escrowed amount, never an
// odds-adjusted figure.
func (e *Engine) ExecuteRefundStake(ctx context.Context, tx pgx.Tx, params domain.RefundStakeParams) (*domain.CommandResult, error) {
	if err := domain.ValidatePositiveAmount(params.Amount); err != nil {
		return nil, domain.ErrValidation(err.Error())
	}

	if _, err := e.LockPlayerForUpdate(ctx, tx, params.PlayerID); err != nil {
		return nil, fmt.Errorf("refund stake: %w", err)
	}

	betID := params.BetID
	entry, updated, err := e.PostEntry(ctx, tx, domain.PostEntryParams{
		PlayerID: params.PlayerID,
		Type:     domain.TxBetRefund,
		Delta:    params.Amount,
		BetID:    &betID,
		Metadata: ensureJSON(params.Metadata),
	})
	if err != nil {
		return nil, fmt.Errorf("refund stake post: %w", err)
	}

	return &domain.CommandResult{Entry: entry, Player: updated}, nil
}
