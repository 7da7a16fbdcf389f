package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestOddsForResult(t *testing.T) {
	assert.Equal(t, 5.0, OddsFor(BetTypeResult, ResultDetails{Us: 2, Them: 1}))
}

func TestOddsForPlayerEvents(t *testing.T) {
	cases := []struct {
		event PlayerEvent
		want  float64
	}{
		{EventScores, 3.5},
		{EventAssists, 2.5},
		{EventGetsCard, 3.0},
		{EventNoCard, 1.0 / 3.0},
		{EventCagadas, 2.0},
	}
	for _, tc := range cases {
		t.Run(string(tc.event), func(t *testing.T) {
			details := PlayerEventDetails{PlayerID: uuid.New(), Event: tc.event}
			assert.InDelta(t, tc.want, OddsFor(BetTypePlayerEvent, details), 1e-9)
		})
	}
}

func TestOddsForUnknownFallsBackToEven(t *testing.T) {
	details := PlayerEventDetails{PlayerID: uuid.New(), Event: PlayerEvent("moonwalks")}
	assert.Equal(t, 1.0, OddsFor(BetTypePlayerEvent, details))
}

func TestMultiplierCustomUsesCallerOdds(t *testing.T) {
	bet := &Bet{
		Type:    BetTypeCustomPvP,
		Mode:    BetModePvP,
		Details: CustomDetails{Description: "we win the raffle", Odds: 7.5},
	}
	assert.Equal(t, 7.5, bet.Multiplier())
}

func TestMultiplierStandardUsesTable(t *testing.T) {
	bet := &Bet{
		Type:    BetTypeResult,
		Mode:    BetModeStandard,
		Details: ResultDetails{Us: 1, Them: 0},
	}
	assert.Equal(t, 5.0, bet.Multiplier())
}
