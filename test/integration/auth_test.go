//go:build integration

package integration

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tiesadafc/teamapp/test/integration/testutil"
)

// ─── Registration Tests ─────────────────────────────────────────────────────

func TestRegister_Success(t *testing.T) {
	env := testutil.NewTestEnv(t)
	resp := env.POST("/auth/register", map[string]string{
		"email": "newplayer@test.com", "password": "securepass123",
		"name": "Nacho", "position": "goalkeeper",
	}, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var result struct {
		Token    string    `json:"token"`
		PlayerID uuid.UUID `json:"player_id"`
		Email    string    `json:"email"`
		Name     string    `json:"name"`
		Coins    int64     `json:"coins"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.NotEmpty(t, result.Token)
	assert.NotEqual(t, uuid.Nil, result.PlayerID)
	assert.Equal(t, "newplayer@test.com", result.Email)
	assert.Equal(t, "Nacho", result.Name)
	assert.Equal(t, int64(1000), result.Coins)
}

func TestRegister_GrantsSigningBonus(t *testing.T) {
	env := testutil.NewTestEnv(t)
	_, playerID := env.RegisterPlayer("bonus@test.com", "securepass123", "Bonus Guy")

	testutil.AssertCoins(t, env, playerID, 1000)
	assert.Equal(t, 1, testutil.CountTransactions(t, env, playerID))
	assert.GreaterOrEqual(t, testutil.CountOutboxEvents(t, env, playerID.String()), 1)
}

func TestRegister_CreatesBothRows(t *testing.T) {
	env := testutil.NewTestEnv(t)
	_, playerID := env.RegisterPlayer("tworows@test.com", "securepass123", "Two Rows")

	var authCount, playerCount int
	env.Pool.QueryRow(t.Context(), "SELECT COUNT(*) FROM auth_users WHERE id = $1", playerID).Scan(&authCount)
	env.Pool.QueryRow(t.Context(), "SELECT COUNT(*) FROM players WHERE id = $1", playerID).Scan(&playerCount)

	assert.Equal(t, 1, authCount)
	assert.Equal(t, 1, playerCount)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.RegisterPlayer("dup@test.com", "securepass123", "First")

	resp := env.POST("/auth/register", map[string]string{
		"email": "dup@test.com", "password": "securepass123", "name": "Second",
	}, "")
	testutil.AssertStatus(t, resp, http.StatusConflict)
	testutil.AssertErrorCode(t, resp, "CONFLICT")
}

func TestRegister_ShortPassword(t *testing.T) {
	env := testutil.NewTestEnv(t)
	resp := env.POST("/auth/register", map[string]string{
		"email": "shortpw@test.com", "password": "short", "name": "Shorty",
	}, "")
	testutil.AssertStatus(t, resp, http.StatusBadRequest)
	testutil.AssertErrorCode(t, resp, "VALIDATION_ERROR")
}

func TestRegister_BadEmail(t *testing.T) {
	env := testutil.NewTestEnv(t)
	resp := env.POST("/auth/register", map[string]string{
		"email": "not-an-email", "password": "securepass123", "name": "Bad Email",
	}, "")
	testutil.AssertStatus(t, resp, http.StatusBadRequest)
	testutil.AssertErrorCode(t, resp, "VALIDATION_ERROR")
}

// ─── Login Tests ────────────────────────────────────────────────────────────

func TestLogin_Success(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.RegisterPlayer("login@test.com", "securepass123", "Login Guy")

	token := env.LoginPlayer("login@test.com", "securepass123")
	assert.NotEmpty(t, token)

	resp := env.AuthGET("/players/me", token)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var me struct {
		Name  string `json:"name"`
		Coins int64  `json:"coins"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&me))
	assert.Equal(t, "Login Guy", me.Name)
	assert.Equal(t, int64(1000), me.Coins)
}

func TestLogin_WrongPassword(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.RegisterPlayer("wrongpw@test.com", "securepass123", "Wrong PW")

	resp := env.POST("/auth/login", map[string]string{
		"email": "wrongpw@test.com", "password": "definitely-wrong",
	}, "")
	testutil.AssertStatus(t, resp, http.StatusUnauthorized)
	testutil.AssertErrorCode(t, resp, "UNAUTHORIZED")
}

func TestLogin_UnknownEmail(t *testing.T) {
	env := testutil.NewTestEnv(t)
	resp := env.POST("/auth/login", map[string]string{
		"email": "ghost@test.com", "password": "securepass123",
	}, "")
	testutil.AssertStatus(t, resp, http.StatusUnauthorized)
	testutil.AssertErrorCode(t, resp, "UNAUTHORIZED")
}

// ─── Token Guard Tests ──────────────────────────────────────────────────────

func TestAuth_MissingToken(t *testing.T) {
	env := testutil.NewTestEnv(t)
	resp := env.GET("/players/me")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuth_GarbageToken(t *testing.T) {
	env := testutil.NewTestEnv(t)
	resp := env.AuthGET("/players/me", "not.a.jwt")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
