package domain

// Fixed payout multipliers per bet category. Custom pvp bets carry their
// own odds and never consult this table.
const (
	OddsResult         = 5.0
	OddsPlayerScores   = 3.5
	OddsPlayerAssists  = 2.5
	OddsPlayerGetsCard = 3.0
	OddsPlayerNoCard   = 1.0 / 3.0
	OddsPlayerCagadas  = 2.0
)

// OddsFor returns the fixed multiplier for a bet category. Unrecognized
// combinations fall back to 1 rather than erroring.
func OddsFor(t BetType, details BetDetails) float64 {
	switch t {
	case BetTypeResult:
		return OddsResult
	case BetTypePlayerEvent:
		d, ok := details.(PlayerEventDetails)
		if !ok {
			return 1
		}
		switch d.Event {
		case EventScores:
			return OddsPlayerScores
		case EventAssists:
			return OddsPlayerAssists
		case EventGetsCard:
			return OddsPlayerGetsCard
		case EventNoCard:
			return OddsPlayerNoCard
		case EventCagadas:
			return OddsPlayerCagadas
		}
	}
	return 1
}
