package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/tiesadafc/teamapp/internal/domain"
)

// DBTX abstracts pgx.Tx and pgxpool.Pool so repositories work with both.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// PlayerRepository provides access to players.
type PlayerRepository interface {
	// FindByID returns a player by ID, nil when absent.
	FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.Player, error)

	// LockForUpdate acquires a row-level lock (SELECT FOR UPDATE) and returns the player.
	LockForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Player, error)

	// Create inserts a new player.
	Create(ctx context.Context, db DBTX, player *domain.Player) error

	// List returns the whole roster ordered by name.
	List(ctx context.Context, db DBTX) ([]domain.Player, error)

	// ApplyCoinsDelta updates the balance with server-side arithmetic and
	// returns the post-update row. Must run within a transaction that holds
	// the player's row lock.
	ApplyCoinsDelta(ctx context.Context, tx pgx.Tx, id uuid.UUID, delta int64) (*domain.Player, error)
}

// MatchRepository provides access to matches.
type MatchRepository interface {
	FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.Match, error)

	// List returns all matches ordered by kickoff.
	List(ctx context.Context, db DBTX) ([]domain.Match, error)

	Create(ctx context.Context, db DBTX, match *domain.Match) error

	// Update rewrites the mutable columns of an unplayed match.
	Update(ctx context.Context, db DBTX, match *domain.Match) error

	Delete(ctx context.Context, db DBTX, id uuid.UUID) error

	// SetAttending replaces the attendance list.
	SetAttending(ctx context.Context, db DBTX, id uuid.UUID, attending []uuid.UUID) error

	// SetLineup replaces the lineup slots.
	SetLineup(ctx context.Context, db DBTX, id uuid.UUID, lineup domain.Lineup) error

	// Finalize flips an unplayed match to played with its final result and
	// stats. Returns false when the match was already played (the guard is
	// the WHERE played = false clause, so finalize is once-only).
	Finalize(ctx context.Context, db DBTX, id uuid.UUID, result domain.MatchResult, stats []domain.PlayerStatLine) (bool, error)
}

// BetRepository provides access to bets.
type BetRepository interface {
	Insert(ctx context.Context, db DBTX, bet *domain.Bet) error

	FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.Bet, error)

	// ListOpenByMatch returns the match's bets with an open status
	// (pending, active or proposed). Terminal bets are excluded, which is
	// what makes settlement exactly-once.
	ListOpenByMatch(ctx context.Context, db DBTX, matchID uuid.UUID) ([]domain.Bet, error)

	// ListByPlayer returns standard bets owned by the player plus pvp bets
	// the player proposed or accepted.
	ListByPlayer(ctx context.Context, db DBTX, playerID uuid.UUID) ([]domain.Bet, error)

	// ListOpenPvP returns proposed pvp bets from other players.
	ListOpenPvP(ctx context.Context, db DBTX, excludingPlayerID uuid.UUID) ([]domain.Bet, error)

	// MarkAccepted transitions a proposed bet to active, recording the
	// accepter and the escrowed counter-stake. Returns nil when the bet is
	// no longer proposed (lost the race).
	MarkAccepted(ctx context.Context, tx pgx.Tx, betID, accepterID uuid.UUID, accepterStake int64) (*domain.Bet, error)

	// Transition moves a bet from one status to another, stamping
	// settled_at for terminal targets. Returns nil when the bet was not in
	// the expected source status.
	Transition(ctx context.Context, db DBTX, betID uuid.UUID, from, to domain.BetStatus) (*domain.Bet, error)

	// SumStakedSince totals stakes escrowed by a player since the cutoff
	// (standard amounts plus pvp proposer amounts plus accepter stakes).
	SumStakedSince(ctx context.Context, db DBTX, playerID uuid.UUID, since time.Time) (int64, error)
}

// CoinTransactionRepository provides access to the coin_transactions ledger.
type CoinTransactionRepository interface {
	// Insert creates a new ledger entry with the post-update balance snapshot.
	Insert(ctx context.Context, db DBTX, params domain.PostEntryParams, balanceAfter int64) (*domain.CoinTransaction, error)

	// ListByPlayer returns entries for a player, newest first.
	ListByPlayer(ctx context.Context, db DBTX, playerID uuid.UUID, limit int) ([]domain.CoinTransaction, error)
}

// OutboxRepository provides access to the event_outbox table.
type OutboxRepository interface {
	// Insert writes an outbox event within the same transaction as the
	// state change it describes.
	Insert(ctx context.Context, db DBTX, draft domain.OutboxDraft) error

	// FetchUnpublished returns unpublished events, oldest first.
	FetchUnpublished(ctx context.Context, db DBTX, limit int) ([]domain.OutboxDraft, error)

	// MarkPublished stamps events as published.
	MarkPublished(ctx context.Context, db DBTX, ids []uuid.UUID) error
}

// AuthUserRepository provides access to auth_users.
type AuthUserRepository interface {
	FindByEmail(ctx context.Context, db DBTX, email string) (*domain.AuthUser, error)
	Create(ctx context.Context, db DBTX, user *domain.AuthUser) error
}
