package domain

import (
	"time"

	"github.com/google/uuid"
)

// SigningBonusCoins is the coin grant every new roster member receives.
const SigningBonusCoins int64 = 1000

// Player represents a players row. Coins are mutated only through the
// coin ledger, never written directly.
type Player struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Position  string    `json:"position"`
	PhotoURL  string    `json:"photo_url,omitempty"`
	Coins     int64     `json:"coins"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AuthUser holds credentials from auth_users. The ID doubles as the player ID.
type AuthUser struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// PlayerCareerStats aggregates a player's stat lines over all played matches.
type PlayerCareerStats struct {
	PlayerID    uuid.UUID `json:"player_id"`
	Name        string    `json:"name"`
	Position    string    `json:"position"`
	Goals       int       `json:"goals"`
	Assists     int       `json:"assists"`
	YellowCards int       `json:"yellow_cards"`
	RedCards    int       `json:"red_cards"`
	Cagadas     int       `json:"cagadas"`
	MVPScore    int       `json:"mvp_score"`
}

// ComputeMVPScore weighs goals double, assists single and cagadas against.
func ComputeMVPScore(goals, assists, cagadas int) int {
	return goals*2 + assists - cagadas
}
