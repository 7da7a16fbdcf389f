package settlement

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tiesadafc/teamapp/internal/domain"
	"github.com/tiesadafc/teamapp/internal/ledger"
	"github.com/tiesadafc/teamapp/internal/repository"
)

// Engine settles every open bet of a finalized match against its recorded
// result and stats, and handles manual resolution of custom pvp wagers.
type Engine struct {
	pool    *pgxpool.Pool
	ledger  *ledger.Engine
	bets    repository.BetRepository
	matches repository.MatchRepository
	outbox  repository.OutboxRepository
	logger  *slog.Logger
}

// NewEngine creates a settlement engine.
func NewEngine(
	pool *pgxpool.Pool,
	ledgerEngine *ledger.Engine,
	bets repository.BetRepository,
	matches repository.MatchRepository,
	outbox repository.OutboxRepository,
	logger *slog.Logger,
) *Engine {
	return &Engine{
		pool:    pool,
		ledger:  ledgerEngine,
		bets:    bets,
		matches: matches,
		outbox:  outbox,
		logger:  logger,
	}
}

// BetOutcome is the per-bet result of a settlement pass. A failed bet
// carries its error here instead of aborting the rest of the match.
type BetOutcome struct {
	BetID  uuid.UUID        `json:"bet_id"`
	Status domain.BetStatus `json:"status"`
	Err    error            `json:"-"`
}

// ResolveBetsForMatch settles all open bets for a match.
//
// Calling it on a missing or unplayed match is a silent no-op, so callers
// may invoke it speculatively. Each bet settles in its own transaction,
// best-effort: one bet failing is logged and reported in its outcome while
// the remaining bets still settle. Terminal bets are never selected, which
// makes a repeated call for the same match pay nothing twice.
func (s *Engine) ResolveBetsForMatch(ctx context.Context, matchID uuid.UUID) ([]BetOutcome, error) {
	match, err := s.matches.FindByID(ctx, s.pool, matchID)
	if err != nil {
		return nil, domain.ErrInternal("load match", err)
	}
	if match == nil || !match.Played {
		s.logger.Info("settlement skipped, match not playable", "match_id", matchID)
		return nil, nil
	}

	bets, err := s.bets.ListOpenByMatch(ctx, s.pool, matchID)
	if err != nil {
		return nil, domain.ErrInternal("load open bets", err)
	}

	outcomes := make([]BetOutcome, 0, len(bets))
	for i := range bets {
		bet := &bets[i]
		status, err := s.settleOne(ctx, bet, match)
		if err != nil {
			s.logger.Error("bet settlement failed",
				"bet_id", bet.ID, "match_id", matchID, "error", err)
		}
		outcomes = append(outcomes, BetOutcome{BetID: bet.ID, Status: status, Err: err})
	}

	s.logger.Info("match bets resolved", "match_id", matchID, "bets", len(outcomes))
	return outcomes, nil
}

// settleOne runs a single bet's settlement in its own transaction.
func (s *Engine) settleOne(ctx context.Context, bet *domain.Bet, match *domain.Match) (domain.BetStatus, error) {
	// Never-accepted pvp proposals are voided with a full refund to the
	// proposer; the accepter side was never debited.
	if bet.Mode == domain.BetModePvP && bet.Status == domain.BetStatusProposed {
		if err := s.voidProposed(ctx, bet); err != nil {
			return bet.Status, err
		}
		return domain.BetStatusVoid, nil
	}

	// Custom wagers have no structured win condition; they stay active
	// until someone resolves them by hand.
	if bet.Type == domain.BetTypeCustomPvP {
		return bet.Status, nil
	}

	win := Evaluate(bet, match)

	switch {
	case bet.Mode == domain.BetModeStandard:
		return s.settleStandard(ctx, bet, win)
	case bet.Mode == domain.BetModePvP && bet.Status == domain.BetStatusActive:
		return s.settlePvP(ctx, bet, win)
	default:
		return bet.Status, domain.ErrBetNotOpen(
			fmt.Sprintf("bet %s in unexpected state %s/%s", bet.ID, bet.Mode, bet.Status))
	}
}

func (s *Engine) voidProposed(ctx context.Context, bet *domain.Bet) error {
	return s.inTx(ctx, func(tx pgx.Tx) error {
		updated, err := s.bets.Transition(ctx, tx, bet.ID, domain.BetStatusProposed, domain.BetStatusVoid)
		if err != nil {
			return err
		}
		if updated == nil {
			return domain.ErrBetNotOpen(fmt.Sprintf("bet %s no longer proposed", bet.ID))
		}
		_, err = s.ledger.ExecuteRefundStake(ctx, tx, domain.RefundStakeParams{
			PlayerID: *bet.ProposerID,
			Amount:   bet.Amount,
			BetID:    bet.ID,
			Metadata: settleMeta("void_unaccepted"),
		})
		if err != nil {
			return err
		}
		return s.outbox.Insert(ctx, tx, domain.NewBetSettledEvent(updated))
	})
}

func (s *Engine) settleStandard(ctx context.Context, bet *domain.Bet, win bool) (domain.BetStatus, error) {
	target := domain.BetStatusLost
	if win {
		target = domain.BetStatusWon
	}
	err := s.inTx(ctx, func(tx pgx.Tx) error {
		updated, err := s.bets.Transition(ctx, tx, bet.ID, domain.BetStatusPending, target)
		if err != nil {
			return err
		}
		if updated == nil {
			return domain.ErrBetNotOpen(fmt.Sprintf("bet %s no longer pending", bet.ID))
		}
		if win {
			// The losing stake stays forfeited in escrow; only wins move coins.
			_, err = s.ledger.ExecuteCreditPayout(ctx, tx, domain.CreditPayoutParams{
				PlayerID: *bet.PlayerID,
				Amount:   StandardPayout(bet),
				BetID:    bet.ID,
				Metadata: settleMeta("standard_win"),
			})
			if err != nil {
				return err
			}
		}
		return s.outbox.Insert(ctx, tx, domain.NewBetSettledEvent(updated))
	})
	if err != nil {
		return bet.Status, err
	}
	return target, nil
}

func (s *Engine) settlePvP(ctx context.Context, bet *domain.Bet, proposerWins bool) (domain.BetStatus, error) {
	// Won/lost is recorded from the proposer's perspective; either way
	// exactly one side is credited the whole pool.
	target := domain.BetStatusLost
	winner := bet.AccepterID
	if proposerWins {
		target = domain.BetStatusWon
		winner = bet.ProposerID
	}
	err := s.inTx(ctx, func(tx pgx.Tx) error {
		updated, err := s.bets.Transition(ctx, tx, bet.ID, domain.BetStatusActive, target)
		if err != nil {
			return err
		}
		if updated == nil {
			return domain.ErrBetNotOpen(fmt.Sprintf("bet %s no longer active", bet.ID))
		}
		_, err = s.ledger.ExecuteCreditPayout(ctx, tx, domain.CreditPayoutParams{
			PlayerID: *winner,
			Amount:   PvPPool(bet),
			BetID:    bet.ID,
			Metadata: settleMeta("pvp_pool"),
		})
		if err != nil {
			return err
		}
		return s.outbox.Insert(ctx, tx, domain.NewBetSettledEvent(updated))
	})
	if err != nil {
		return bet.Status, err
	}
	return target, nil
}

func (s *Engine) inTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return domain.ErrInternal("begin tx", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func settleMeta(kind string) json.RawMessage {
	out, _ := json.Marshal(map[string]string{"settlement": kind})
	return out
}
