package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tiesadafc/teamapp/internal/domain"
	"github.com/tiesadafc/teamapp/internal/repository"
	"github.com/tiesadafc/teamapp/internal/settlement"
)

// MatchService handles the match schedule: fixtures, attendance, lineups
// and the one-way transition to played.
type MatchService struct {
	pool       *pgxpool.Pool
	matches    repository.MatchRepository
	players    repository.PlayerRepository
	outbox     repository.OutboxRepository
	settlement *settlement.Engine
	logger     *slog.Logger
}

// NewMatchService creates a MatchService.
func NewMatchService(
	pool *pgxpool.Pool,
	matches repository.MatchRepository,
	players repository.PlayerRepository,
	outbox repository.OutboxRepository,
	settlementEngine *settlement.Engine,
	logger *slog.Logger,
) *MatchService {
	return &MatchService{
		pool:       pool,
		matches:    matches,
		players:    players,
		outbox:     outbox,
		settlement: settlementEngine,
		logger:     logger,
	}
}

// CreateMatchInput holds a new fixture.
type CreateMatchInput struct {
	Opponent string    `json:"opponent"`
	Kickoff  time.Time `json:"kickoff"`
	Emoji    string    `json:"emoji"`
}

// CreateMatch schedules a fixture.
func (s *MatchService) CreateMatch(ctx context.Context, input CreateMatchInput) (*domain.Match, error) {
	if input.Opponent == "" {
		return nil, domain.ErrValidation("opponent is required")
	}
	if input.Kickoff.IsZero() {
		return nil, domain.ErrValidation("kickoff is required")
	}

	match := &domain.Match{
		ID:       uuid.New(),
		Opponent: input.Opponent,
		Kickoff:  input.Kickoff,
		Emoji:    input.Emoji,
	}
	if err := s.matches.Create(ctx, s.pool, match); err != nil {
		return nil, domain.ErrInternal("insert match", err)
	}
	return match, nil
}

// ListMatches returns the full schedule ordered by kickoff.
func (s *MatchService) ListMatches(ctx context.Context) ([]domain.Match, error) {
	matches, err := s.matches.List(ctx, s.pool)
	if err != nil {
		return nil, domain.ErrInternal("query matches", err)
	}
	return matches, nil
}

// GetMatch returns one match by ID.
func (s *MatchService) GetMatch(ctx context.Context, id uuid.UUID) (*domain.Match, error) {
	match, err := s.matches.FindByID(ctx, s.pool, id)
	if err != nil {
		return nil, domain.ErrInternal("load match", err)
	}
	if match == nil {
		return nil, domain.ErrNotFound("match", id.String())
	}
	return match, nil
}

// UpdateMatchInput holds the editable fixture fields.
type UpdateMatchInput struct {
	Opponent string    `json:"opponent"`
	Kickoff  time.Time `json:"kickoff"`
	Emoji    string    `json:"emoji"`
}

// UpdateMatch edits a fixture. Played matches are immutable.
func (s *MatchService) UpdateMatch(ctx context.Context, id uuid.UUID, input UpdateMatchInput) (*domain.Match, error) {
	match, err := s.GetMatch(ctx, id)
	if err != nil {
		return nil, err
	}
	if match.Played {
		return nil, domain.ErrConflict("played matches cannot be edited")
	}

	if input.Opponent != "" {
		match.Opponent = input.Opponent
	}
	if !input.Kickoff.IsZero() {
		match.Kickoff = input.Kickoff
	}
	if input.Emoji != "" {
		match.Emoji = input.Emoji
	}

	if err := s.matches.Update(ctx, s.pool, match); err != nil {
		return nil, err
	}
	return match, nil
}

// DeleteMatch removes an unplayed fixture.
func (s *MatchService) DeleteMatch(ctx context.Context, id uuid.UUID) error {
	match, err := s.GetMatch(ctx, id)
	if err != nil {
		return err
	}
	if match.Played {
		return domain.ErrConflict("played matches cannot be deleted")
	}
	if err := s.matches.Delete(ctx, s.pool, id); err != nil {
		return domain.ErrInternal("delete match", err)
	}
	return nil
}

// ToggleAttendance flips the player's presence on the attendance list.
func (s *MatchService) ToggleAttendance(ctx context.Context, matchID, playerID uuid.UUID) (*domain.Match, error) {
	match, err := s.GetMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if match.Played {
		return nil, domain.ErrConflict("attendance is closed for played matches")
	}

	attending := make([]uuid.UUID, 0, len(match.Attending)+1)
	found := false
	for _, id := range match.Attending {
		if id == playerID {
			found = true
			continue
		}
		attending = append(attending, id)
	}
	if !found {
		attending = append(attending, playerID)
	}

	if err := s.matches.SetAttending(ctx, s.pool, matchID, attending); err != nil {
		return nil, domain.ErrInternal("update attendance", err)
	}
	match.Attending = attending
	return match, nil
}

// SetLineup assigns the five field slots for a fixture.
func (s *MatchService) SetLineup(ctx context.Context, matchID uuid.UUID, lineup domain.Lineup) (*domain.Match, error) {
	match, err := s.GetMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if match.Played {
		return nil, domain.ErrConflict("lineup is closed for played matches")
	}

	if err := s.matches.SetLineup(ctx, s.pool, matchID, lineup); err != nil {
		return nil, domain.ErrInternal("update lineup", err)
	}
	match.Lineup = lineup
	return match, nil
}

// FinalizeMatchInput carries the final score and per-player stat lines.
type FinalizeMatchInput struct {
	Result domain.MatchResult      `json:"result"`
	Stats  []domain.PlayerStatLine `json:"stats"`
}

// FinalizeResult is what a finalization returns: the played match plus the
// per-bet settlement outcomes.
type FinalizeResult struct {
	Match    *domain.Match           `json:"match"`
	Outcomes []settlement.BetOutcome `json:"outcomes"`
}

// FinalizeMatch records the result, flips the match to played and settles
// every open bet on it.
//
// The flip and the finalized event commit in one transaction; settlement
// then runs bet by bet in its own transactions. If the process dies in
// between, re-finalizing is rejected but settlement can be re-driven
// safely, since settled bets are never selected again.
func (s *MatchService) FinalizeMatch(ctx context.Context, matchID uuid.UUID, input FinalizeMatchInput) (*FinalizeResult, error) {
	if input.Result.Us < 0 || input.Result.Them < 0 {
		return nil, domain.ErrValidation("scores cannot be negative")
	}

	match, err := s.GetMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, domain.ErrInternal("begin tx", err)
	}
	defer tx.Rollback(ctx)

	flipped, err := s.matches.Finalize(ctx, tx, matchID, input.Result, input.Stats)
	if err != nil {
		return nil, domain.ErrInternal("finalize match", err)
	}
	if !flipped {
		return nil, domain.ErrConflict("match already played")
	}

	match.Played = true
	match.Result = &input.Result
	match.Stats = input.Stats

	if err := s.outbox.Insert(ctx, tx, domain.NewMatchFinalizedEvent(match)); err != nil {
		return nil, domain.ErrInternal("insert outbox event", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, domain.ErrInternal("commit tx", err)
	}

	s.logger.Info("match finalized",
		"match_id", matchID, "opponent", match.Opponent,
		"us", input.Result.Us, "them", input.Result.Them)

	outcomes, err := s.settlement.ResolveBetsForMatch(ctx, matchID)
	if err != nil {
		// The match is played either way; report settlement trouble without
		// undoing the result.
		s.logger.Error("settlement after finalize failed", "match_id", matchID, "error", err)
		return &FinalizeResult{Match: match}, nil
	}

	return &FinalizeResult{Match: match, Outcomes: outcomes}, nil
}
