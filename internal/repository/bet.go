package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/tiesadafc/teamapp/internal/domain"
)

type betRepo struct{}

// NewBetRepository returns a pgx-backed BetRepository.
func NewBetRepository() BetRepository {
	return &betRepo{}
}

const betColumns = `id, match_id, type, bet_mode, amount, details,
		player_id, proposer_id, accepter_id, accepter_stake,
		status, placed_at, settled_at`

func (r *betRepo) Insert(ctx context.Context, db DBTX, bet *domain.Bet) error {
	details, err := json.Marshal(bet.Details)
	if err != nil {
		return fmt.Errorf("encode bet details: %w", err)
	}
	_, err = db.Exec(ctx, `
		INSERT INTO bets (id, match_id, type, bet_mode, amount, details,
			player_id, proposer_id, accepter_id, accepter_stake, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		bet.ID, bet.MatchID, string(bet.Type), string(bet.Mode), bet.Amount, details,
		bet.PlayerID, bet.ProposerID, bet.AccepterID, bet.AccepterStake, string(bet.Status))
	if err != nil {
		return fmt.Errorf("insert bet: %w", err)
	}
	return nil
}

func (r *betRepo) FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.Bet, error) {
	row := db.QueryRow(ctx, `
		SELECT `+betColumns+`
		FROM bets WHERE id = $1`, id)
	return scanBet(row)
}

func (r *betRepo) ListOpenByMatch(ctx context.Context, db DBTX, matchID uuid.UUID) ([]domain.Bet, error) {
	rows, err := db.Query(ctx, `
		SELECT `+betColumns+`
		FROM bets
		WHERE match_id = $1 AND status = ANY($2)
		ORDER BY placed_at`, matchID, openStatusStrings())
	if err != nil {
		return nil, fmt.Errorf("query open bets: %w", err)
	}
	return collectBets(rows)
}

func (r *betRepo) ListByPlayer(ctx context.Context, db DBTX, playerID uuid.UUID) ([]domain.Bet, error) {
	rows, err := db.Query(ctx, `
		SELECT `+betColumns+`
		FROM bets
		WHERE (bet_mode = 'standard' AND player_id = $1)
		   OR (bet_mode = 'pvp' AND (proposer_id = $1 OR accepter_id = $1))
		ORDER BY placed_at DESC`, playerID)
	if err != nil {
		return nil, fmt.Errorf("query player bets: %w", err)
	}
	return collectBets(rows)
}

func (r *betRepo) ListOpenPvP(ctx context.Context, db DBTX, excludingPlayerID uuid.UUID) ([]domain.Bet, error) {
	rows, err := db.Query(ctx, `
		SELECT `+betColumns+`
		FROM bets
		WHERE bet_mode = 'pvp' AND status = 'proposed' AND proposer_id <> $1
		ORDER BY placed_at DESC`, excludingPlayerID)
	if err != nil {
		return nil, fmt.Errorf("query open pvp bets: %w", err)
	}
	return collectBets(rows)
}

// MarkAccepted guards on status = 'proposed' so two racing accepters cannot
// both win the bet.
func (r *betRepo) MarkAccepted(ctx context.Context, tx pgx.Tx, betID, accepterID uuid.UUID, accepterStake int64) (*domain.Bet, error) {
	row := tx.QueryRow(ctx, `
		UPDATE bets SET accepter_id = $2, accepter_stake = $3, status = 'active'
		WHERE id = $1 AND status = 'proposed'
		RETURNING `+betColumns, betID, accepterID, accepterStake)
	return scanBet(row)
}

func (r *betRepo) Transition(ctx context.Context, db DBTX, betID uuid.UUID, from, to domain.BetStatus) (*domain.Bet, error) {
	var settledAt *time.Time
	if to.Terminal() {
		now := time.Now()
		settledAt = &now
	}
	row := db.QueryRow(ctx, `
		UPDATE bets SET status = $3, settled_at = $4
		WHERE id = $1 AND status = $2
		RETURNING `+betColumns, betID, string(from), string(to), settledAt)
	return scanBet(row)
}

func (r *betRepo) SumStakedSince(ctx context.Context, db DBTX, playerID uuid.UUID, since time.Time) (int64, error) {
	var total int64
	err := db.QueryRow(ctx, `
		SELECT COALESCE(SUM(
			CASE
				WHEN player_id = $1 OR proposer_id = $1 THEN amount
				ELSE COALESCE(accepter_stake, 0)
			END), 0)
		FROM bets
		WHERE (player_id = $1 OR proposer_id = $1 OR accepter_id = $1)
		  AND placed_at >= $2`, playerID, since).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum staked: %w", err)
	}
	return total, nil
}

func openStatusStrings() []string {
	out := make([]string, len(domain.OpenBetStatuses))
	for i, s := range domain.OpenBetStatuses {
		out[i] = string(s)
	}
	return out
}

func collectBets(rows pgx.Rows) ([]domain.Bet, error) {
	defer rows.Close()
	var bets []domain.Bet
	for rows.Next() {
		b, err := scanBet(rows)
		if err != nil {
			return nil, err
		}
		bets = append(bets, *b)
	}
	return bets, rows.Err()
}

func scanBet(row pgx.Row) (*domain.Bet, error) {
	var (
		b          domain.Bet
		typ, mode  string
		status     string
		rawDetails []byte
	)
	err := row.Scan(&b.ID, &b.MatchID, &typ, &mode, &b.Amount, &rawDetails,
		&b.PlayerID, &b.ProposerID, &b.AccepterID, &b.AccepterStake,
		&status, &b.PlacedAt, &b.SettledAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan bet: %w", err)
	}
	b.Type = domain.BetType(typ)
	b.Mode = domain.BetMode(mode)
	b.Status = domain.BetStatus(status)
	b.Details, err = domain.UnmarshalBetDetails(b.Type, rawDetails)
	if err != nil {
		return nil, fmt.Errorf("bet %s: %w", b.ID, err)
	}
	return &b, nil
}
