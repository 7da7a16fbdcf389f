package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/tiesadafc/teamapp/internal/domain"
)

type coinTxRepo struct{}

// NewCoinTransactionRepository returns a pgx-backed CoinTransactionRepository.
func NewCoinTransactionRepository() CoinTransactionRepository {
	return &coinTxRepo{}
}

const coinTxColumns = `id, player_id, type, amount, balance_after, bet_id, metadata, created_at`

func (r *coinTxRepo) Insert(ctx context.Context, db DBTX, params domain.PostEntryParams, balanceAfter int64) (*domain.CoinTransaction, error) {
	meta := params.Metadata
	if meta == nil {
		meta = json.RawMessage(`{}`)
	}

	row := db.QueryRow(ctx, `
		INSERT INTO coin_transactions (player_id, type, amount, balance_after, bet_id, metadata)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+coinTxColumns,
		params.PlayerID, string(params.Type), params.Delta, balanceAfter, params.BetID, meta)
	return scanCoinTx(row)
}

func (r *coinTxRepo) ListByPlayer(ctx context.Context, db DBTX, playerID uuid.UUID, limit int) ([]domain.CoinTransaction, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	rows, err := db.Query(ctx, `
		SELECT `+coinTxColumns+`
		FROM coin_transactions
		WHERE player_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2`, playerID, limit)
	if err != nil {
		return nil, fmt.Errorf("query coin transactions: %w", err)
	}
	defer rows.Close()

	var entries []domain.CoinTransaction
	for rows.Next() {
		e, err := scanCoinTx(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

func scanCoinTx(row pgx.Row) (*domain.CoinTransaction, error) {
	var (
		e   domain.CoinTransaction
		typ string
	)
	err := row.Scan(&e.ID, &e.PlayerID, &typ, &e.Amount, &e.BalanceAfter, &e.BetID, &e.Metadata, &e.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan coin transaction: %w", err)
	}
	e.Type = domain.CoinTransactionType(typ)
	return &e, nil
}
