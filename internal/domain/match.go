package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// MatchResult is the final score from our side's point of view.
type MatchResult struct {
	Us   int `json:"us"`
	Them int `json:"them"`
}

// PlayerStatLine is one player's stat row for a played match.
//
// Historical rows exist in two schema generations (camelCase and
// snake_case/short keys), so unmarshalling tolerates both spellings and
// defaults every field to 0. New rows are always written in the canonical
// camelCase form.
type PlayerStatLine struct {
	PlayerID    uuid.UUID `json:"playerId"`
	Goals       int       `json:"goals"`
	Assists     int       `json:"assists"`
	YellowCards int       `json:"yellowCards"`
	RedCards    int       `json:"redCards"`
	Cagadas     int       `json:"cagadas"`
}

func (s *PlayerStatLine) UnmarshalJSON(data []byte) error {
	var raw struct {
		PlayerID    uuid.UUID `json:"playerId"`
		Goals       *int      `json:"goals"`
		G           *int      `json:"g"`
		Assists     *int      `json:"assists"`
		A           *int      `json:"a"`
		YellowCards *int      `json:"yellowCards"`
		YellowSnake *int      `json:"yellow_cards"`
		YC          *int      `json:"yc"`
		RedCards    *int      `json:"redCards"`
		RedSnake    *int      `json:"red_cards"`
		RC          *int      `json:"rc"`
		Cagadas     *int      `json:"cagadas"`
		Errors      *int      `json:"errors"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	s.PlayerID = raw.PlayerID
	s.Goals = coalesce(raw.Goals, raw.G)
	s.Assists = coalesce(raw.Assists, raw.A)
	s.YellowCards = coalesce(raw.YellowCards, raw.YellowSnake, raw.YC)
	s.RedCards = coalesce(raw.RedCards, raw.RedSnake, raw.RC)
	s.Cagadas = coalesce(raw.Cagadas, raw.Errors)
	return nil
}

func coalesce(vals ...*int) int {
	for _, v := range vals {
		if v != nil {
			return *v
		}
	}
	return 0
}

// Lineup maps the five field positions to player IDs. A nil entry is an
// unassigned slot.
type Lineup struct {
	GK   *uuid.UUID `json:"gk"`
	Def1 *uuid.UUID `json:"def1"`
	Def2 *uuid.UUID `json:"def2"`
	Fwd1 *uuid.UUID `json:"fwd1"`
	Fwd2 *uuid.UUID `json:"fwd2"`
}

// Match represents a matches row. A match transitions exactly once from
// unplayed to played; Result and Stats are set at that transition and are
// immutable afterwards.
type Match struct {
	ID        uuid.UUID        `json:"id"`
	Opponent  string           `json:"opponent"`
	Kickoff   time.Time        `json:"kickoff"`
	Emoji     string           `json:"emoji,omitempty"`
	Played    bool             `json:"played"`
	Result    *MatchResult     `json:"result,omitempty"`
	Stats     []PlayerStatLine `json:"stats,omitempty"`
	Attending []uuid.UUID      `json:"attending"`
	Lineup    Lineup           `json:"lineup"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// StatFor returns the stat line for a player, or a zero line when the
// player has no row for this match.
func (m *Match) StatFor(playerID uuid.UUID) PlayerStatLine {
	for _, s := range m.Stats {
		if s.PlayerID == playerID {
			return s
		}
	}
	return PlayerStatLine{PlayerID: playerID}
}
