package domain

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatLineUnmarshalCanonical(t *testing.T) {
	id := uuid.New()
	raw := []byte(`{"playerId":"` + id.String() + `","goals":2,"assists":1,"yellowCards":1,"redCards":0,"cagadas":3}`)

	var s PlayerStatLine
	require.NoError(t, json.Unmarshal(raw, &s))
	assert.Equal(t, id, s.PlayerID)
	assert.Equal(t, 2, s.Goals)
	assert.Equal(t, 1, s.Assists)
	assert.Equal(t, 1, s.YellowCards)
	assert.Equal(t, 0, s.RedCards)
	assert.Equal(t, 3, s.Cagadas)
}

func TestStatLineUnmarshalLegacySpellings(t *testing.T) {
	id := uuid.New()

	t.Run("short keys", func(t *testing.T) {
		raw := []byte(`{"playerId":"` + id.String() + `","g":1,"a":2,"yc":1,"rc":1}`)
		var s PlayerStatLine
		require.NoError(t, json.Unmarshal(raw, &s))
		assert.Equal(t, 1, s.Goals)
		assert.Equal(t, 2, s.Assists)
		assert.Equal(t, 1, s.YellowCards)
		assert.Equal(t, 1, s.RedCards)
	})

	t.Run("snake case", func(t *testing.T) {
		raw := []byte(`{"playerId":"` + id.String() + `","yellow_cards":2,"red_cards":1,"errors":4}`)
		var s PlayerStatLine
		require.NoError(t, json.Unmarshal(raw, &s))
		assert.Equal(t, 2, s.YellowCards)
		assert.Equal(t, 1, s.RedCards)
		assert.Equal(t, 4, s.Cagadas)
	})

	t.Run("canonical wins over legacy when both present", func(t *testing.T) {
		raw := []byte(`{"playerId":"` + id.String() + `","goals":3,"g":1}`)
		var s PlayerStatLine
		require.NoError(t, json.Unmarshal(raw, &s))
		assert.Equal(t, 3, s.Goals)
	})

	t.Run("missing fields default to zero", func(t *testing.T) {
		raw := []byte(`{"playerId":"` + id.String() + `"}`)
		var s PlayerStatLine
		require.NoError(t, json.Unmarshal(raw, &s))
		assert.Zero(t, s.Goals)
		assert.Zero(t, s.Cagadas)
	})
}

func TestStatForMissingPlayerIsZeroLine(t *testing.T) {
	scorer := uuid.New()
	benched := uuid.New()
	m := Match{Stats: []PlayerStatLine{{PlayerID: scorer, Goals: 1}}}

	line := m.StatFor(benched)
	assert.Equal(t, benched, line.PlayerID)
	assert.Zero(t, line.Goals)
	assert.Zero(t, line.YellowCards)
}

func TestComputeMVPScore(t *testing.T) {
	assert.Equal(t, 5, ComputeMVPScore(2, 1, 0))
	assert.Equal(t, 2, ComputeMVPScore(2, 1, 3))
	assert.Equal(t, -2, ComputeMVPScore(0, 0, 2))
}
