package service

import (
	"context"
	"log/slog"
	"sort"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tiesadafc/teamapp/internal/domain"
	"github.com/tiesadafc/teamapp/internal/ledger"
	"github.com/tiesadafc/teamapp/internal/repository"
)

// RosterService handles the player roster and career stats.
type RosterService struct {
	pool    *pgxpool.Pool
	players repository.PlayerRepository
	matches repository.MatchRepository
	entries repository.CoinTransactionRepository
	engine  *ledger.Engine
	outbox  repository.OutboxRepository
	logger  *slog.Logger
}

// NewRosterService creates a RosterService.
func NewRosterService(
	pool *pgxpool.Pool,
	players repository.PlayerRepository,
	matches repository.MatchRepository,
	entries repository.CoinTransactionRepository,
	engine *ledger.Engine,
	outbox repository.OutboxRepository,
	logger *slog.Logger,
) *RosterService {
	return &RosterService{
		pool:    pool,
		players: players,
		matches: matches,
		entries: entries,
		engine:  engine,
		outbox:  outbox,
		logger:  logger,
	}
}

// CreatePlayerInput holds a new roster member.
type CreatePlayerInput struct {
	Name     string `json:"name"`
	Position string `json:"position"`
	PhotoURL string `json:"photo_url"`
}

// CreatePlayer adds a player to the roster and grants the signing bonus.
// The player row and the bonus ledger entry commit together, so a roster
// member without starting coins cannot exist.
func (s *RosterService) CreatePlayer(ctx context.Context, input CreatePlayerInput) (*domain.Player, error) {
	if err := domain.ValidatePlayerName(input.Name); err != nil {
		return nil, domain.ErrValidation(err.Error())
	}

	player := &domain.Player{
		ID:       uuid.New(),
		Name:     input.Name,
		Position: input.Position,
		PhotoURL: input.PhotoURL,
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, domain.ErrInternal("begin tx", err)
	}
	defer tx.Rollback(ctx)

	if err := s.players.Create(ctx, tx, player); err != nil {
		return nil, domain.ErrInternal("insert player", err)
	}

	result, err := s.engine.ExecuteSigningBonus(ctx, tx, domain.SigningBonusParams{
		PlayerID: player.ID,
		Amount:   domain.SigningBonusCoins,
	})
	if err != nil {
		return nil, err
	}

	if err := s.outbox.Insert(ctx, tx, domain.NewPlayerCreatedEvent(player)); err != nil {
		return nil, domain.ErrInternal("insert outbox event", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, domain.ErrInternal("commit tx", err)
	}

	player.Coins = result.Player.Coins

	s.logger.Info("player joined roster",
		"player_id", player.ID, "name", player.Name, "coins", player.Coins)
	return player, nil
}

// ListPlayers returns the whole roster.
func (s *RosterService) ListPlayers(ctx context.Context) ([]domain.Player, error) {
	players, err := s.players.List(ctx, s.pool)
	if err != nil {
		return nil, domain.ErrInternal("query players", err)
	}
	return players, nil
}

// GetPlayer returns one player by ID.
func (s *RosterService) GetPlayer(ctx context.Context, id uuid.UUID) (*domain.Player, error) {
	player, err := s.players.FindByID(ctx, s.pool, id)
	if err != nil {
		return nil, domain.ErrInternal("load player", err)
	}
	if player == nil {
		return nil, domain.ErrPlayerNotFound(id.String())
	}
	return player, nil
}

// GetLedger returns a player's recent coin transactions, newest first.
func (s *RosterService) GetLedger(ctx context.Context, playerID uuid.UUID, limit int) ([]domain.CoinTransaction, error) {
	if _, err := s.GetPlayer(ctx, playerID); err != nil {
		return nil, err
	}
	entries, err := s.entries.ListByPlayer(ctx, s.pool, playerID, limit)
	if err != nil {
		return nil, domain.ErrInternal("query ledger", err)
	}
	return entries, nil
}

// Scoreboard aggregates every played match's stat lines into career totals,
// ordered by MVP score descending.
func (s *RosterService) Scoreboard(ctx context.Context) ([]domain.PlayerCareerStats, error) {
	players, err := s.players.List(ctx, s.pool)
	if err != nil {
		return nil, domain.ErrInternal("query players", err)
	}
	matches, err := s.matches.List(ctx, s.pool)
	if err != nil {
		return nil, domain.ErrInternal("query matches", err)
	}

	totals := make(map[uuid.UUID]*domain.PlayerCareerStats, len(players))
	for _, p := range players {
		totals[p.ID] = &domain.PlayerCareerStats{
			PlayerID: p.ID,
			Name:     p.Name,
			Position: p.Position,
		}
	}

	for _, m := range matches {
		if !m.Played {
			continue
		}
		for _, line := range m.Stats {
			t, ok := totals[line.PlayerID]
			if !ok {
				// Stat line for someone off the roster; skip it.
				continue
			}
			t.Goals += line.Goals
			t.Assists += line.Assists
			t.YellowCards += line.YellowCards
			t.RedCards += line.RedCards
			t.Cagadas += line.Cagadas
		}
	}

	board := make([]domain.PlayerCareerStats, 0, len(totals))
	for _, t := range totals {
		t.MVPScore = domain.ComputeMVPScore(t.Goals, t.Assists, t.Cagadas)
		board = append(board, *t)
	}
	sort.Slice(board, func(i, j int) bool {
		if board[i].MVPScore != board[j].MVPScore {
			return board[i].MVPScore > board[j].MVPScore
		}
		return board[i].Name < board[j].Name
	})
	return board, nil
}
