package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/tiesadafc/teamapp/internal/domain"
)

type playerRepo struct{}

// NewPlayerRepository returns a pgx-backed PlayerRepository.
func NewPlayerRepository() PlayerRepository {
	return &playerRepo{}
}

const playerColumns = `id, name, position, photo_url, coins, created_at, updated_at`

func (r *playerRepo) FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.Player, error) {
	row := db.QueryRow(ctx, `
		SELECT `+playerColumns+`
		FROM players WHERE id = $1`, id)
	return scanPlayer(row)
}

func (r *playerRepo) LockForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Player, error) {
	row := tx.QueryRow(ctx, `
		SELECT `+playerColumns+`
		FROM players WHERE id = $1 FOR UPDATE`, id)
	return scanPlayer(row)
}

func (r *playerRepo) Create(ctx context.Context, db DBTX, player *domain.Player) error {
	_, err := db.Exec(ctx, `
		INSERT INTO players (id, name, position, photo_url, coins)
		VALUES ($1, $2, $3, $4, $5)`,
		player.ID, player.Name, player.Position, player.PhotoURL, player.Coins)
	if err != nil {
		return fmt.Errorf("insert player: %w", err)
	}
	return nil
}

func (r *playerRepo) List(ctx context.Context, db DBTX) ([]domain.Player, error) {
	rows, err := db.Query(ctx, `
		SELECT `+playerColumns+`
		FROM players ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("query players: %w", err)
	}
	defer rows.Close()

	var players []domain.Player
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		players = append(players, *p)
	}
	return players, rows.Err()
}

// ApplyCoinsDelta uses server-side arithmetic so the balance math happens in
// the database, under the row lock the caller already holds.
func (r *playerRepo) ApplyCoinsDelta(ctx context.Context, tx pgx.Tx, id uuid.UUID, delta int64) (*domain.Player, error) {
	row := tx.QueryRow(ctx, `
		UPDATE players SET coins = coins + $1, updated_at = now()
		WHERE id = $2
		RETURNING `+playerColumns, delta, id)
	return scanPlayer(row)
}

func scanPlayer(row pgx.Row) (*domain.Player, error) {
	var p domain.Player
	err := row.Scan(&p.ID, &p.Name, &p.Position, &p.PhotoURL, &p.Coins, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan player: %w", err)
	}
	return &p, nil
}
