//go:build integration

package integration

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tiesadafc/teamapp/test/integration/testutil"
)

type matchResponse struct {
	ID        uuid.UUID   `json:"id"`
	Opponent  string      `json:"opponent"`
	Played    bool        `json:"played"`
	Attending []uuid.UUID `json:"attending"`
	Result    *struct {
		Us   int `json:"us"`
		Them int `json:"them"`
	} `json:"result"`
	Lineup struct {
		GK *uuid.UUID `json:"gk"`
	} `json:"lineup"`
}

// ─── Schedule Tests ─────────────────────────────────────────────────────────

func TestMatch_CreateAndGet(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, _ := env.RegisterPlayer("sched@test.com", "securepass123", "Sched")
	matchID := env.CreateMatch(token, "Deportivo Lunes")

	resp := env.AuthGET("/matches/"+matchID.String(), token)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var match matchResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&match))
	assert.Equal(t, "Deportivo Lunes", match.Opponent)
	assert.False(t, match.Played)
	assert.Nil(t, match.Result)
}

func TestMatch_CreateRequiresOpponent(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, _ := env.RegisterPlayer("noopp@test.com", "securepass123", "No Opp")

	resp := env.AuthPOST("/matches", map[string]interface{}{
		"kickoff": time.Now().Add(24 * time.Hour).UTC().Format(time.RFC3339),
	}, token)
	testutil.AssertStatus(t, resp, http.StatusBadRequest)
	testutil.AssertErrorCode(t, resp, "VALIDATION_ERROR")
}

func TestMatch_List(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, _ := env.RegisterPlayer("list@test.com", "securepass123", "List")
	env.CreateMatch(token, "Rival A")
	env.CreateMatch(token, "Rival B")

	resp := env.AuthGET("/matches", token)
	var matches []matchResponse
	testutil.DecodeJSON(t, resp, &matches)
	assert.Len(t, matches, 2)
}

func TestMatch_Update(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, _ := env.RegisterPlayer("upd@test.com", "securepass123", "Upd")
	matchID := env.CreateMatch(token, "Old Name FC")

	resp := env.AuthPATCH("/matches/"+matchID.String(),
		map[string]string{"opponent": "New Name FC"}, token)
	var match matchResponse
	testutil.DecodeJSON(t, resp, &match)
	assert.Equal(t, "New Name FC", match.Opponent)
}

func TestMatch_UpdatePlayedRejected(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, _ := env.RegisterPlayer("updplayed@test.com", "securepass123", "Upd Played")
	matchID := env.CreateMatch(token, "Los Tigres")

	finalizeMatch(t, env, token, matchID, 1, 1, nil).Body.Close()

	resp := env.AuthPATCH("/matches/"+matchID.String(),
		map[string]string{"opponent": "Revisionists FC"}, token)
	testutil.AssertStatus(t, resp, http.StatusConflict)
	testutil.AssertErrorCode(t, resp, "CONFLICT")
}

func TestMatch_Delete(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, _ := env.RegisterPlayer("del@test.com", "securepass123", "Del")
	matchID := env.CreateMatch(token, "Ephemeral FC")

	resp := env.AuthDELETE("/matches/"+matchID.String(), token)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	gresp := env.AuthGET("/matches/"+matchID.String(), token)
	testutil.AssertStatus(t, gresp, http.StatusNotFound)
	testutil.AssertErrorCode(t, gresp, "NOT_FOUND")
}

func TestMatch_DeletePlayedRejected(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, _ := env.RegisterPlayer("delplayed@test.com", "securepass123", "Del Played")
	matchID := env.CreateMatch(token, "Los Tigres")

	finalizeMatch(t, env, token, matchID, 2, 2, nil).Body.Close()

	resp := env.AuthDELETE("/matches/"+matchID.String(), token)
	testutil.AssertStatus(t, resp, http.StatusConflict)
	testutil.AssertErrorCode(t, resp, "CONFLICT")
}

// ─── Attendance and Lineup Tests ────────────────────────────────────────────

func TestMatch_ToggleAttendance(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, playerID := env.RegisterPlayer("attend@test.com", "securepass123", "Attend")
	matchID := env.CreateMatch(token, "Los Tigres")

	resp := env.AuthPOST("/matches/"+matchID.String()+"/attendance", nil, token)
	var match matchResponse
	testutil.DecodeJSON(t, resp, &match)
	assert.Contains(t, match.Attending, playerID)

	// Toggling again removes the player.
	resp = env.AuthPOST("/matches/"+matchID.String()+"/attendance", nil, token)
	testutil.DecodeJSON(t, resp, &match)
	assert.NotContains(t, match.Attending, playerID)
}

func TestMatch_SetLineup(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, playerID := env.RegisterPlayer("lineup@test.com", "securepass123", "Lineup")
	matchID := env.CreateMatch(token, "Los Tigres")

	resp := env.AuthPUT("/matches/"+matchID.String()+"/lineup",
		map[string]interface{}{"gk": playerID}, token)
	var match matchResponse
	testutil.DecodeJSON(t, resp, &match)
	require.NotNil(t, match.Lineup.GK)
	assert.Equal(t, playerID, *match.Lineup.GK)
}

// ─── Finalization Tests ─────────────────────────────────────────────────────

func TestMatch_Finalize(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, playerID := env.RegisterPlayer("fin@test.com", "securepass123", "Fin")
	matchID := env.CreateMatch(token, "Los Tigres")

	resp := finalizeMatch(t, env, token, matchID, 3, 1, []map[string]interface{}{
		{"playerId": playerID, "goals": 2, "assists": 1},
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	gresp := env.AuthGET("/matches/"+matchID.String(), token)
	var match matchResponse
	testutil.DecodeJSON(t, gresp, &match)
	assert.True(t, match.Played)
	require.NotNil(t, match.Result)
	assert.Equal(t, 3, match.Result.Us)
	assert.Equal(t, 1, match.Result.Them)
}

func TestMatch_FinalizeNegativeScore(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, _ := env.RegisterPlayer("negfin@test.com", "securepass123", "Neg Fin")
	matchID := env.CreateMatch(token, "Los Tigres")

	resp := finalizeMatch(t, env, token, matchID, -1, 0, nil)
	testutil.AssertStatus(t, resp, http.StatusBadRequest)
	testutil.AssertErrorCode(t, resp, "VALIDATION_ERROR")
}

// ─── Scoreboard Tests ───────────────────────────────────────────────────────

func TestScoreboard_AggregatesAndOrders(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, starID := env.RegisterPlayer("star@test.com", "securepass123", "Star")
	_, grinderID := env.RegisterPlayer("grinder@test.com", "securepass123", "Grinder")

	first := env.CreateMatch(token, "Round One FC")
	finalizeMatch(t, env, token, first, 3, 0, []map[string]interface{}{
		{"playerId": starID, "goals": 2, "assists": 1},
		{"playerId": grinderID, "goals": 1, "cagadas": 2},
	}).Body.Close()

	second := env.CreateMatch(token, "Round Two FC")
	finalizeMatch(t, env, token, second, 1, 1, []map[string]interface{}{
		{"playerId": grinderID, "assists": 1},
	}).Body.Close()

	resp := env.AuthGET("/players/scoreboard", token)
	var board []struct {
		PlayerID uuid.UUID `json:"player_id"`
		Name     string    `json:"name"`
		Goals    int       `json:"goals"`
		Assists  int       `json:"assists"`
		Cagadas  int       `json:"cagadas"`
		MVPScore int       `json:"mvp_score"`
	}
	testutil.DecodeJSON(t, resp, &board)
	require.Len(t, board, 2)

	// Star: 2 goals + 1 assist = 5. Grinder: 1 goal + 1 assist - 2 cagadas = 1.
	assert.Equal(t, starID, board[0].PlayerID)
	assert.Equal(t, 5, board[0].MVPScore)
	assert.Equal(t, grinderID, board[1].PlayerID)
	assert.Equal(t, 2, board[1].Goals+board[1].Assists)
	assert.Equal(t, 1, board[1].MVPScore)
}

// ─── Ledger Reading Tests ───────────────────────────────────────────────────

func TestLedger_ListsEntriesNewestFirst(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, playerID := env.RegisterPlayer("ledger@test.com", "securepass123", "Ledger")
	matchID := env.CreateMatch(token, "Los Tigres")

	placeBet(t, env, token, "/bets", matchID, "result", 100,
		map[string]interface{}{"us": 1, "them": 0}).Body.Close()

	resp := env.AuthGET("/players/me/transactions", token)
	var entries []struct {
		Type   string `json:"type"`
		Amount int64  `json:"amount"`
	}
	testutil.DecodeJSON(t, resp, &entries)
	require.Len(t, entries, 2)
	assert.Equal(t, "bet_stake", entries[0].Type)
	assert.Equal(t, int64(-100), entries[0].Amount)
	assert.Equal(t, "signing_bonus", entries[1].Type)

	assert.Equal(t, 2, testutil.CountTransactions(t, env, playerID))
}
