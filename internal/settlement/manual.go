package settlement

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/tiesadafc/teamapp/internal/domain"
)

// Resolution is the human verdict on a custom pvp wager.
type Resolution string

const (
	ResolutionProposerWins Resolution = "proposer_wins"
	ResolutionAccepterWins Resolution = "accepter_wins"
	ResolutionVoid         Resolution = "void"
)

// ResolveCustomPvPBet settles a free-form pvp wager by explicit verdict.
// Custom bets carry no structured win condition, so this is the only path
// that ever moves their escrow.
//
// The bet must still be proposed or active; the guarded transition
// underneath makes sure a terminal bet never pays twice. A proposed bet
// can only be voided, since no accepter was ever debited.
func (s *Engine) ResolveCustomPvPBet(ctx context.Context, betID uuid.UUID, resolution Resolution) (*domain.Bet, error) {
	switch resolution {
	case ResolutionProposerWins, ResolutionAccepterWins, ResolutionVoid:
	default:
		return nil, domain.ErrValidation(fmt.Sprintf("unknown resolution %q", resolution))
	}

	bet, err := s.bets.FindByID(ctx, s.pool, betID)
	if err != nil {
		return nil, domain.ErrInternal("load bet", err)
	}
	if bet == nil {
		return nil, domain.ErrBetNotFound(betID.String())
	}
	if bet.Type != domain.BetTypeCustomPvP {
		return nil, domain.ErrValidation("only custom pvp bets are resolved manually")
	}

	switch bet.Status {
	case domain.BetStatusProposed:
		if resolution != ResolutionVoid {
			return nil, domain.ErrBetNotOpen("an unaccepted bet can only be voided")
		}
		return s.manualVoidProposed(ctx, bet)
	case domain.BetStatusActive:
		return s.manualResolveActive(ctx, bet, resolution)
	default:
		return nil, domain.ErrBetNotOpen(fmt.Sprintf("bet %s already %s", bet.ID, bet.Status))
	}
}

func (s *Engine) manualVoidProposed(ctx context.Context, bet *domain.Bet) (*domain.Bet, error) {
	var resolved *domain.Bet
	err := s.inTx(ctx, func(tx pgx.Tx) error {
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
			Metadata: settleMeta("manual_void"),
		})
		if err != nil {
			return err
		}
		resolved = updated
		return s.outbox.Insert(ctx, tx, domain.NewBetSettledEvent(updated))
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("custom bet voided", "bet_id", bet.ID)
	return resolved, nil
}

func (s *Engine) manualResolveActive(ctx context.Context, bet *domain.Bet, resolution Resolution) (*domain.Bet, error) {
	accepterStake := persistedAccepterStake(bet)

	var resolved *domain.Bet
	err := s.inTx(ctx, func(tx pgx.Tx) error {
		switch resolution {
		case ResolutionVoid:
			// Both sides get their own escrow back, nothing changes hands.
			updated, err := s.bets.Transition(ctx, tx, bet.ID, domain.BetStatusActive, domain.BetStatusVoid)
			if err != nil {
				return err
			}
			if updated == nil {
				return domain.ErrBetNotOpen(fmt.Sprintf("bet %s no longer active", bet.ID))
			}
			if _, err := s.ledger.ExecuteRefundStake(ctx, tx, domain.RefundStakeParams{
				PlayerID: *bet.ProposerID,
				Amount:   bet.Amount,
				BetID:    bet.ID,
				Metadata: settleMeta("manual_void"),
			}); err != nil {
				return err
			}
			if _, err := s.ledger.ExecuteRefundStake(ctx, tx, domain.RefundStakeParams{
				PlayerID: *bet.AccepterID,
				Amount:   accepterStake,
				BetID:    bet.ID,
				Metadata: settleMeta("manual_void"),
			}); err != nil {
				return err
			}
			resolved = updated
			return s.outbox.Insert(ctx, tx, domain.NewBetSettledEvent(updated))

		default:
			target := domain.BetStatusLost
			winner := bet.AccepterID
			if resolution == ResolutionProposerWins {
				target = domain.BetStatusWon
				winner = bet.ProposerID
			}
			updated, err := s.bets.Transition(ctx, tx, bet.ID, domain.BetStatusActive, target)
			if err != nil {
				return err
			}
			if updated == nil {
				return domain.ErrBetNotOpen(fmt.Sprintf("bet %s no longer active", bet.ID))
			}
			if _, err := s.ledger.ExecuteCreditPayout(ctx, tx, domain.CreditPayoutParams{
				PlayerID: *winner,
				Amount:   PvPPool(bet),
				BetID:    bet.ID,
				Metadata: settleMeta("manual_" + string(resolution)),
			}); err != nil {
				return err
			}
			resolved = updated
			return s.outbox.Insert(ctx, tx, domain.NewBetSettledEvent(updated))
		}
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("custom bet resolved", "bet_id", bet.ID, "resolution", resolution)
	return resolved, nil
}
