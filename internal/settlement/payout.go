package settlement

import (
	"math"

	"github.com/tiesadafc/teamapp/internal/domain"
)

// RoundHalfUp rounds to the nearest integer, halves away from zero upward.
// Coin amounts derived from fractional odds (x3.5, x1/3) all round this
// way, so the amount escrowed at acceptance and the amount paid at
// settlement are always the same integer.
func RoundHalfUp(x float64) int64 {
	return int64(math.Floor(x + 0.5))
}

// StandardPayout is what a winning standard bet credits back: the stake
// multiplied by the fixed odds.
func StandardPayout(bet *domain.Bet) int64 {
	return RoundHalfUp(float64(bet.Amount) * bet.Multiplier())
}

// AccepterCounterStake is what accepting a pvp proposal costs: the
// proposer's stake multiplied by the bet's odds. The proposer risks little
// for a long-shot prediction; the accepter covers the payout.
func AccepterCounterStake(bet *domain.Bet) int64 {
	return RoundHalfUp(float64(bet.Amount) * bet.Multiplier())
}

// PvPPool is the total escrowed on an accepted pvp bet; the winner takes
// it whole and the engine leaves no residue behind.
func PvPPool(bet *domain.Bet) int64 {
	return bet.Amount + persistedAccepterStake(bet)
}

// persistedAccepterStake prefers the stake recorded at acceptance and only
// recomputes for rows that predate the accepter_stake column.
func persistedAccepterStake(bet *domain.Bet) int64 {
	if bet.AccepterStake != nil {
		return *bet.AccepterStake
	}
	return AccepterCounterStake(bet)
}
