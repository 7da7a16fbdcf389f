package ledger

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tiesadafc/teamapp/internal/domain"
)

// ExecuteSigningBonus grants the one-time coin allowance a new roster
// member starts with. Issued through the ledger so the conservation audit
// holds from a player's very first entry.
func (e *Engine) ExecuteSigningBonus(ctx context.Context, tx pgx.Tx, params domain.SigningBonusParams) (*domain.CommandResult, error) {
	if err := domain.ValidatePositiveAmount(params.Amount); err != nil {
		return nil, domain.ErrValidation(err.Error())
	}

	if _, err := e.LockPlayerForUpdate(ctx, tx, params.PlayerID); err != nil {
		return nil, fmt.Errorf("signing bonus: %w", err)
	}

	entry, updated, err := e.PostEntry(ctx, tx, domain.PostEntryParams{
		PlayerID: params.PlayerID,
		Type:     domain.TxSigningBonus,
		Delta:    params.Amount,
		Metadata: ensureJSON(params.Metadata),
	})
	if err != nil {
		return nil, fmt.Errorf("signing bonus post: %w", err)
	}

	return &domain.CommandResult{Entry: entry, Player: updated}, nil
}
