package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/tiesadafc/teamapp/internal/domain"
)

type matchRepo struct{}

// NewMatchRepository returns a pgx-backed MatchRepository.
func NewMatchRepository() MatchRepository {
	return &matchRepo{}
}

const matchColumns = `id, opponent, kickoff, emoji, played, result, stats, attending, lineup, created_at, updated_at`

func (r *matchRepo) FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.Match, error) {
	row := db.QueryRow(ctx, `
		SELECT `+matchColumns+`
		FROM matches WHERE id = $1`, id)
	return scanMatch(row)
}

func (r *matchRepo) List(ctx context.Context, db DBTX) ([]domain.Match, error) {
	rows, err := db.Query(ctx, `
		SELECT `+matchColumns+`
		FROM matches ORDER BY kickoff`)
	if err != nil {
		return nil, fmt.Errorf("query matches: %w", err)
	}
	defer rows.Close()

	var matches []domain.Match
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		matches = append(matches, *m)
	}
	return matches, rows.Err()
}

func (r *matchRepo) Create(ctx context.Context, db DBTX, match *domain.Match) error {
	_, err := db.Exec(ctx, `
		INSERT INTO matches (id, opponent, kickoff, emoji, played, attending, lineup)
		VALUES ($1, $2, $3, $4, false, $5, $6)`,
		match.ID, match.Opponent, match.Kickoff, match.Emoji, match.Attending, match.Lineup)
	if err != nil {
		return fmt.Errorf("insert match: %w", err)
	}
	return nil
}

func (r *matchRepo) Update(ctx context.Context, db DBTX, match *domain.Match) error {
	tag, err := db.Exec(ctx, `
		UPDATE matches SET opponent = $2, kickoff = $3, emoji = $4, updated_at = now()
		WHERE id = $1 AND played = false`,
		match.ID, match.Opponent, match.Kickoff, match.Emoji)
	if err != nil {
		return fmt.Errorf("update match: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConflict("match is already played or missing")
	}
	return nil
}

func (r *matchRepo) Delete(ctx context.Context, db DBTX, id uuid.UUID) error {
	_, err := db.Exec(ctx, `DELETE FROM matches WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete match: %w", err)
	}
	return nil
}

func (r *matchRepo) SetAttending(ctx context.Context, db DBTX, id uuid.UUID, attending []uuid.UUID) error {
	_, err := db.Exec(ctx, `
		UPDATE matches SET attending = $2, updated_at = now() WHERE id = $1`,
		id, attending)
	if err != nil {
		return fmt.Errorf("update attendance: %w", err)
	}
	return nil
}

func (r *matchRepo) SetLineup(ctx context.Context, db DBTX, id uuid.UUID, lineup domain.Lineup) error {
	_, err := db.Exec(ctx, `
		UPDATE matches SET lineup = $2, updated_at = now() WHERE id = $1`,
		id, lineup)
	if err != nil {
		return fmt.Errorf("update lineup: %w", err)
	}
	return nil
}

// Finalize flips played exactly once; the WHERE played = false guard makes a
// second finalize a no-op reported to the caller.
func (r *matchRepo) Finalize(ctx context.Context, db DBTX, id uuid.UUID, result domain.MatchResult, stats []domain.PlayerStatLine) (bool, error) {
	tag, err := db.Exec(ctx, `
		UPDATE matches SET played = true, result = $2, stats = $3, updated_at = now()
		WHERE id = $1 AND played = false`,
		id, result, stats)
	if err != nil {
		return false, fmt.Errorf("finalize match: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func scanMatch(row pgx.Row) (*domain.Match, error) {
	var m domain.Match
	err := row.Scan(&m.ID, &m.Opponent, &m.Kickoff, &m.Emoji, &m.Played,
		&m.Result, &m.Stats, &m.Attending, &m.Lineup, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan match: %w", err)
	}
	return &m, nil
}
