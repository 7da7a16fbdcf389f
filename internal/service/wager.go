package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tiesadafc/teamapp/internal/domain"
	"github.com/tiesadafc/teamapp/internal/ledger"
	"github.com/tiesadafc/teamapp/internal/policy"
	"github.com/tiesadafc/teamapp/internal/repository"
	"github.com/tiesadafc/teamapp/internal/settlement"
)

// WagerService handles bet placement and pvp acceptance.
type WagerService struct {
	pool    *pgxpool.Pool
	engine  *ledger.Engine
	bets    repository.BetRepository
	matches repository.MatchRepository
	outbox  repository.OutboxRepository
	limits  policy.StakeLimitPolicy
	logger  *slog.Logger
}

// NewWagerService creates a WagerService.
func NewWagerService(
	pool *pgxpool.Pool,
	engine *ledger.Engine,
	bets repository.BetRepository,
	matches repository.MatchRepository,
	outbox repository.OutboxRepository,
	limits policy.StakeLimitPolicy,
	logger *slog.Logger,
) *WagerService {
	return &WagerService{
		pool:    pool,
		engine:  engine,
		bets:    bets,
		matches: matches,
		outbox:  outbox,
		limits:  limits,
		logger:  logger,
	}
}

// PlaceBetInput holds a bet placement request. Details is decoded against
// the declared type before anything touches the ledger.
type PlaceBetInput struct {
	MatchID uuid.UUID       `json:"match_id"`
	Type    domain.BetType  `json:"type"`
	Amount  int64           `json:"amount"`
	Details json.RawMessage `json:"details"`
}

// PlaceStandardBet places a fixed-odds bet against the house.
//
// Validation, the match check and the stake-limit check all run before the
// transaction opens; escrow, the bet row and the outbox event then commit
// atomically, so a failed placement can never strand escrowed coins.
func (s *WagerService) PlaceStandardBet(ctx context.Context, playerID uuid.UUID, input PlaceBetInput) (*domain.Bet, error) {
	bet, err := s.buildBet(ctx, input)
	if err != nil {
		return nil, err
	}
	bet.Mode = domain.BetModeStandard
	bet.Status = domain.BetStatusPending
	bet.PlayerID = &playerID

	if bet.Type == domain.BetTypeCustomPvP {
		return nil, domain.ErrInvalidBetDetails("custom bets are pvp only")
	}
	if err := bet.ValidateDetails(); err != nil {
		return nil, err
	}
	if err := s.checkStakeLimits(ctx, playerID, bet.Amount); err != nil {
		return nil, err
	}

	if err := s.escrowAndInsert(ctx, playerID, bet); err != nil {
		return nil, err
	}

	s.logger.Info("standard bet placed",
		"bet_id", bet.ID, "player_id", playerID, "match_id", bet.MatchID,
		"type", bet.Type, "amount", bet.Amount)
	return bet, nil
}

// PlacePvPBet proposes a wager for another player to accept. Only the
// proposer's stake is escrowed now; the accepter pays at acceptance.
func (s *WagerService) PlacePvPBet(ctx context.Context, proposerID uuid.UUID, input PlaceBetInput) (*domain.Bet, error) {
	bet, err := s.buildBet(ctx, input)
	if err != nil {
		return nil, err
	}
	bet.Mode = domain.BetModePvP
	bet.Status = domain.BetStatusProposed
	bet.ProposerID = &proposerID

	if err := bet.ValidateDetails(); err != nil {
		return nil, err
	}
	if err := s.checkStakeLimits(ctx, proposerID, bet.Amount); err != nil {
		return nil, err
	}

	if err := s.escrowAndInsert(ctx, proposerID, bet); err != nil {
		return nil, err
	}

	s.logger.Info("pvp bet proposed",
		"bet_id", bet.ID, "proposer_id", proposerID, "match_id", bet.MatchID,
		"type", bet.Type, "amount", bet.Amount)
	return bet, nil
}

// buildBet decodes and shapes the common part of a placement request.
func (s *WagerService) buildBet(ctx context.Context, input PlaceBetInput) (*domain.Bet, error) {
	if input.Amount <= 0 {
		return nil, domain.ErrValidation("amount must be positive")
	}

	details, err := domain.UnmarshalBetDetails(input.Type, input.Details)
	if err != nil {
		return nil, domain.ErrInvalidBetDetails(err.Error())
	}

	match, err := s.matches.FindByID(ctx, s.pool, input.MatchID)
	if err != nil {
		return nil, domain.ErrInternal("load match", err)
	}
	if match == nil {
		return nil, domain.ErrNotFound("match", input.MatchID.String())
	}
	if match.Played {
		return nil, domain.ErrConflict("match already played, betting is closed")
	}

	return &domain.Bet{
		ID:      uuid.New(),
		MatchID: input.MatchID,
		Type:    input.Type,
		Amount:  input.Amount,
		Details: details,
	}, nil
}

func (s *WagerService) checkStakeLimits(ctx context.Context, playerID uuid.UUID, stake int64) error {
	midnight := time.Now().UTC().Truncate(24 * time.Hour)
	staked, err := s.bets.SumStakedSince(ctx, s.pool, playerID, midnight)
	if err != nil {
		return domain.ErrInternal("daily stake query", err)
	}
	eval := policy.EvaluateStakeLimits(s.limits, stake, staked)
	if !eval.Allowed {
		return &domain.AppError{
			Code:    "STAKE_LIMIT_BREACHED",
			Message: fmt.Sprintf("stake exceeds %s limit of %d", eval.BreachedLimit, eval.LimitValue),
			Status:  422,
		}
	}
	return nil
}

// escrowAndInsert runs the single placement transaction: stake escrow, the
// bet row and the placed event all commit or all roll back together.
func (s *WagerService) escrowAndInsert(ctx context.Context, stakerID uuid.UUID, bet *domain.Bet) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return domain.ErrInternal("begin tx", err)
	}
	defer tx.Rollback(ctx)

	_, err = s.engine.ExecuteEscrowStake(ctx, tx, domain.EscrowStakeParams{
		PlayerID: stakerID,
		Amount:   bet.Amount,
		BetID:    bet.ID,
		Metadata: placementMeta(bet),
	})
	if err != nil {
		return err
	}

	if err := s.bets.Insert(ctx, tx, bet); err != nil {
		return domain.ErrInternal("insert bet", err)
	}

	if err := s.outbox.Insert(ctx, tx, domain.NewBetPlacedEvent(bet)); err != nil {
		return domain.ErrInternal("insert outbox event", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.ErrInternal("commit tx", err)
	}
	return nil
}

// AcceptPvPBet takes the other side of a proposed wager. The accepter
// escrows the counter-stake (stake x odds, rounded half up) and the bet
// goes active. The guarded MarkAccepted update makes sure two racing
// accepters cannot both win the bet.
func (s *WagerService) AcceptPvPBet(ctx context.Context, accepterID, betID uuid.UUID) (*domain.Bet, error) {
	bet, err := s.bets.FindByID(ctx, s.pool, betID)
	if err != nil {
		return nil, domain.ErrInternal("load bet", err)
	}
	if bet == nil {
		return nil, domain.ErrBetNotFound(betID.String())
	}
	if bet.Mode != domain.BetModePvP {
		return nil, domain.ErrValidation("only pvp bets can be accepted")
	}
	if bet.Status != domain.BetStatusProposed {
		return nil, domain.ErrBetNotOpen(fmt.Sprintf("bet %s is %s, not open for acceptance", bet.ID, bet.Status))
	}
	if bet.ProposerID != nil && *bet.ProposerID == accepterID {
		return nil, domain.ErrValidation("cannot accept your own bet")
	}

	counterStake := settlement.AccepterCounterStake(bet)
	if err := s.checkStakeLimits(ctx, accepterID, counterStake); err != nil {
		return nil, err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, domain.ErrInternal("begin tx", err)
	}
	defer tx.Rollback(ctx)

	// Claim the bet first; escrow only once the claim is ours.
	accepted, err := s.bets.MarkAccepted(ctx, tx, bet.ID, accepterID, counterStake)
	if err != nil {
		return nil, domain.ErrInternal("mark accepted", err)
	}
	if accepted == nil {
		return nil, domain.ErrBetNotOpen(fmt.Sprintf("bet %s was just accepted by someone else", bet.ID))
	}

	_, err = s.engine.ExecuteEscrowStake(ctx, tx, domain.EscrowStakeParams{
		PlayerID: accepterID,
		Amount:   counterStake,
		BetID:    bet.ID,
		Metadata: placementMeta(accepted),
	})
	if err != nil {
		return nil, err
	}

	if err := s.outbox.Insert(ctx, tx, domain.NewBetAcceptedEvent(accepted)); err != nil {
		return nil, domain.ErrInternal("insert outbox event", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, domain.ErrInternal("commit tx", err)
	}

	s.logger.Info("pvp bet accepted",
		"bet_id", bet.ID, "accepter_id", accepterID, "counter_stake", counterStake)
	return accepted, nil
}

// GetBet returns one bet by ID.
func (s *WagerService) GetBet(ctx context.Context, betID uuid.UUID) (*domain.Bet, error) {
	bet, err := s.bets.FindByID(ctx, s.pool, betID)
	if err != nil {
		return nil, domain.ErrInternal("load bet", err)
	}
	if bet == nil {
		return nil, domain.ErrBetNotFound(betID.String())
	}
	return bet, nil
}

// GetPlayerBets returns the player's bet history, both sides of pvp included.
func (s *WagerService) GetPlayerBets(ctx context.Context, playerID uuid.UUID) ([]domain.Bet, error) {
	bets, err := s.bets.ListByPlayer(ctx, s.pool, playerID)
	if err != nil {
		return nil, domain.ErrInternal("query bets", err)
	}
	return bets, nil
}

// GetOpenPvPBets returns proposals the player could accept.
func (s *WagerService) GetOpenPvPBets(ctx context.Context, playerID uuid.UUID) ([]domain.Bet, error) {
	bets, err := s.bets.ListOpenPvP(ctx, s.pool, playerID)
	if err != nil {
		return nil, domain.ErrInternal("query open pvp bets", err)
	}
	return bets, nil
}

func placementMeta(bet *domain.Bet) json.RawMessage {
	out, _ := json.Marshal(map[string]string{
		"match_id": bet.MatchID.String(),
		"bet_type": string(bet.Type),
		"bet_mode": string(bet.Mode),
	})
	return out
}
