package settlement

import (
	"github.com/tiesadafc/teamapp/internal/domain"
)

// Evaluate reports whether the bet's prediction holds against the played
// match. For pvp bets this is the proposer's side of the wager.
//
// Only result and player_event bets can be auto-evaluated; custom bets have
// no structured win condition, always report false here, and the engine
// never routes them through this path anyway.
func Evaluate(bet *domain.Bet, match *domain.Match) bool {
	switch bet.Type {
	case domain.BetTypeResult:
		d, ok := bet.Details.(domain.ResultDetails)
		if !ok || match.Result == nil {
			return false
		}
		// Exact score only; a correct winner with the wrong score loses.
		return match.Result.Us == d.Us && match.Result.Them == d.Them

	case domain.BetTypePlayerEvent:
		d, ok := bet.Details.(domain.PlayerEventDetails)
		if !ok {
			return false
		}
		stat := match.StatFor(d.PlayerID)
		switch d.Event {
		case domain.EventScores:
			return stat.Goals > 0
		case domain.EventAssists:
			return stat.Assists > 0
		case domain.EventGetsCard:
			return stat.YellowCards > 0 || stat.RedCards > 0
		case domain.EventNoCard:
			return stat.YellowCards == 0 && stat.RedCards == 0
		case domain.EventCagadas:
			return stat.Cagadas > 0
		}
	}
	return false
}
