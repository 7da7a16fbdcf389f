package settlement

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/tiesadafc/teamapp/internal/domain"
)

func playedMatch(us, them int, stats ...domain.PlayerStatLine) *domain.Match {
	return &domain.Match{
		ID:     uuid.New(),
		Played: true,
		Result: &domain.MatchResult{Us: us, Them: them},
		Stats:  stats,
	}
}

func resultBet(us, them int) *domain.Bet {
	return &domain.Bet{
		ID:      uuid.New(),
		Type:    domain.BetTypeResult,
		Mode:    domain.BetModeStandard,
		Details: domain.ResultDetails{Us: us, Them: them},
	}
}

func eventBet(playerID uuid.UUID, event domain.PlayerEvent) *domain.Bet {
	return &domain.Bet{
		ID:      uuid.New(),
		Type:    domain.BetTypePlayerEvent,
		Mode:    domain.BetModeStandard,
		Details: domain.PlayerEventDetails{PlayerID: playerID, Event: event},
	}
}

func TestEvaluateResult(t *testing.T) {
	match := playedMatch(3, 1)

	t.Run("exact score wins", func(t *testing.T) {
		assert.True(t, Evaluate(resultBet(3, 1), match))
	})

	t.Run("right winner wrong score loses", func(t *testing.T) {
		assert.False(t, Evaluate(resultBet(2, 1), match))
	})

	t.Run("reversed score loses", func(t *testing.T) {
		assert.False(t, Evaluate(resultBet(1, 3), match))
	})

	t.Run("missing result loses", func(t *testing.T) {
		noResult := &domain.Match{ID: uuid.New(), Played: true}
		assert.False(t, Evaluate(resultBet(3, 1), noResult))
	})
}

func TestEvaluatePlayerEvent(t *testing.T) {
	scorer := uuid.New()
	carded := uuid.New()
	clean := uuid.New()
	benched := uuid.New()

	match := playedMatch(2, 2,
		domain.PlayerStatLine{PlayerID: scorer, Goals: 2, Assists: 1},
		domain.PlayerStatLine{PlayerID: carded, YellowCards: 1, Cagadas: 3},
		domain.PlayerStatLine{PlayerID: clean},
	)

	cases := []struct {
		name     string
		playerID uuid.UUID
		event    domain.PlayerEvent
		want     bool
	}{
		{"scores with goals", scorer, domain.EventScores, true},
		{"scores without goals", clean, domain.EventScores, false},
		{"assists", scorer, domain.EventAssists, true},
		{"no assists", carded, domain.EventAssists, false},
		{"gets card on yellow", carded, domain.EventGetsCard, true},
		{"gets card without any", clean, domain.EventGetsCard, false},
		{"no card clean sheet", clean, domain.EventNoCard, true},
		{"no card when booked", carded, domain.EventNoCard, false},
		{"cagadas", carded, domain.EventCagadas, true},
		{"no cagadas", scorer, domain.EventCagadas, false},
		// Players with no stat row count as all zeroes, so "no card" holds
		// even for someone who never stepped on the pitch.
		{"absent player no card wins", benched, domain.EventNoCard, true},
		{"absent player scores loses", benched, domain.EventScores, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Evaluate(eventBet(tc.playerID, tc.event), match))
		})
	}
}

func TestEvaluateCustomAlwaysFalse(t *testing.T) {
	bet := &domain.Bet{
		ID:      uuid.New(),
		Type:    domain.BetTypeCustomPvP,
		Mode:    domain.BetModePvP,
		Details: domain.CustomDetails{Description: "next round is on Marco", Odds: 2},
	}
	assert.False(t, Evaluate(bet, playedMatch(1, 0)))
}
