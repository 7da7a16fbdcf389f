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

type betResponse struct {
	ID            uuid.UUID       `json:"id"`
	Status        string          `json:"status"`
	Amount        int64           `json:"amount"`
	AccepterStake *int64          `json:"accepter_stake"`
	Details       json.RawMessage `json:"details"`
}

func placeBet(t *testing.T, env *testutil.TestEnv, token, path string, matchID uuid.UUID, betType string, amount int64, details map[string]interface{}) *http.Response {
	t.Helper()
	return env.AuthPOST(path, map[string]interface{}{
		"match_id": matchID,
		"type":     betType,
		"amount":   amount,
		"details":  details,
	}, token)
}

func finalizeMatch(t *testing.T, env *testutil.TestEnv, token string, matchID uuid.UUID, us, them int, stats []map[string]interface{}) *http.Response {
	t.Helper()
	return env.AuthPOST("/matches/"+matchID.String()+"/finalize", map[string]interface{}{
		"result": map[string]int{"us": us, "them": them},
		"stats":  stats,
	}, token)
}

// ─── Placement Tests ────────────────────────────────────────────────────────

func TestPlaceBet_EscrowsStake(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, playerID := env.RegisterPlayer("escrow@test.com", "securepass123", "Escrow")
	matchID := env.CreateMatch(token, "Los Tigres")

	resp := placeBet(t, env, token, "/bets", matchID, "result", 100,
		map[string]interface{}{"us": 2, "them": 1})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var bet betResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&bet))
	assert.Equal(t, "pending", bet.Status)
	assert.Equal(t, int64(100), bet.Amount)

	testutil.AssertCoins(t, env, playerID, 900)
	testutil.AssertBetStatus(t, env, bet.ID, "pending")
}

func TestPlaceBet_UnknownMatch(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, _ := env.RegisterPlayer("nomatch@test.com", "securepass123", "No Match")

	resp := placeBet(t, env, token, "/bets", uuid.New(), "result", 100,
		map[string]interface{}{"us": 1, "them": 0})
	testutil.AssertStatus(t, resp, http.StatusNotFound)
	testutil.AssertErrorCode(t, resp, "NOT_FOUND")
}

func TestPlaceBet_PlayedMatchRejected(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, _ := env.RegisterPlayer("closed@test.com", "securepass123", "Closed")
	matchID := env.CreateMatch(token, "Los Tigres")

	finalizeMatch(t, env, token, matchID, 1, 0, nil).Body.Close()

	resp := placeBet(t, env, token, "/bets", matchID, "result", 100,
		map[string]interface{}{"us": 1, "them": 0})
	testutil.AssertStatus(t, resp, http.StatusConflict)
	testutil.AssertErrorCode(t, resp, "CONFLICT")
}

func TestPlaceBet_InvalidDetails(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, playerID := env.RegisterPlayer("baddetails@test.com", "securepass123", "Bad Details")
	matchID := env.CreateMatch(token, "Los Tigres")

	resp := placeBet(t, env, token, "/bets", matchID, "result", 100,
		map[string]interface{}{"us": -1, "them": 0})
	testutil.AssertStatus(t, resp, http.StatusBadRequest)
	testutil.AssertErrorCode(t, resp, "INVALID_BET_DETAILS")

	// Nothing escrowed on a failed placement.
	testutil.AssertCoins(t, env, playerID, 1000)
}

func TestPlaceBet_CustomViaStandardRejected(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, _ := env.RegisterPlayer("customstd@test.com", "securepass123", "Custom Std")
	matchID := env.CreateMatch(token, "Los Tigres")

	resp := placeBet(t, env, token, "/bets", matchID, "custom_pvp", 100,
		map[string]interface{}{"custom_description": "hat-trick", "custom_odds": 4})
	testutil.AssertStatus(t, resp, http.StatusBadRequest)
	testutil.AssertErrorCode(t, resp, "INVALID_BET_DETAILS")
}

func TestPlaceBet_SingleStakeLimit(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, playerID := env.RegisterPlayer("single@test.com", "securepass123", "Single")
	env.DirectCredit(playerID, 1000)
	matchID := env.CreateMatch(token, "Los Tigres")

	resp := placeBet(t, env, token, "/bets", matchID, "result", 501,
		map[string]interface{}{"us": 1, "them": 0})
	testutil.AssertStatus(t, resp, http.StatusUnprocessableEntity)
	testutil.AssertErrorCode(t, resp, "STAKE_LIMIT_BREACHED")
}

func TestPlaceBet_DailyStakeLimit(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, playerID := env.RegisterPlayer("daily@test.com", "securepass123", "Daily")
	env.DirectCredit(playerID, 3000)
	matchID := env.CreateMatch(token, "Los Tigres")

	for i := 0; i < 4; i++ {
		resp := placeBet(t, env, token, "/bets", matchID, "result", 500,
			map[string]interface{}{"us": i, "them": 0})
		testutil.AssertStatus(t, resp, http.StatusCreated)
		resp.Body.Close()
	}

	resp := placeBet(t, env, token, "/bets", matchID, "result", 100,
		map[string]interface{}{"us": 5, "them": 0})
	testutil.AssertStatus(t, resp, http.StatusUnprocessableEntity)
	testutil.AssertErrorCode(t, resp, "STAKE_LIMIT_BREACHED")
}

func TestPlaceBet_InsufficientFunds(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, playerID := env.RegisterPlayer("broke@test.com", "securepass123", "Broke")
	matchID := env.CreateMatch(token, "Los Tigres")

	for _, score := range []int{1, 2} {
		resp := placeBet(t, env, token, "/bets", matchID, "result", 500,
			map[string]interface{}{"us": score, "them": 0})
		testutil.AssertStatus(t, resp, http.StatusCreated)
		resp.Body.Close()
	}
	testutil.AssertCoins(t, env, playerID, 0)

	resp := placeBet(t, env, token, "/bets", matchID, "result", 100,
		map[string]interface{}{"us": 3, "them": 0})
	testutil.AssertStatus(t, resp, http.StatusBadRequest)
	testutil.AssertErrorCode(t, resp, "INSUFFICIENT_FUNDS")
}

// ─── Settlement Tests ───────────────────────────────────────────────────────

func TestSettlement_ResultBetWins(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, playerID := env.RegisterPlayer("winner@test.com", "securepass123", "Winner")
	matchID := env.CreateMatch(token, "Los Tigres")

	resp := placeBet(t, env, token, "/bets", matchID, "result", 100,
		map[string]interface{}{"us": 2, "them": 1})
	var bet betResponse
	testutil.DecodeJSON(t, resp, &bet)

	fresp := finalizeMatch(t, env, token, matchID, 2, 1, nil)
	defer fresp.Body.Close()
	assert.Equal(t, http.StatusOK, fresp.StatusCode)

	var result struct {
		Outcomes []struct {
			BetID  uuid.UUID `json:"bet_id"`
			Status string    `json:"status"`
		} `json:"outcomes"`
	}
	require.NoError(t, json.NewDecoder(fresp.Body).Decode(&result))
	require.Len(t, result.Outcomes, 1)
	assert.Equal(t, bet.ID, result.Outcomes[0].BetID)
	assert.Equal(t, "won", result.Outcomes[0].Status)

	// 1000 - 100 stake + 500 payout (stake x 5.0)
	testutil.AssertCoins(t, env, playerID, 1400)
	testutil.AssertBetStatus(t, env, bet.ID, "won")
}

func TestSettlement_ResultBetLoses(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, playerID := env.RegisterPlayer("loser@test.com", "securepass123", "Loser")
	matchID := env.CreateMatch(token, "Los Tigres")

	resp := placeBet(t, env, token, "/bets", matchID, "result", 100,
		map[string]interface{}{"us": 2, "them": 1})
	var bet betResponse
	testutil.DecodeJSON(t, resp, &bet)

	finalizeMatch(t, env, token, matchID, 0, 3, nil).Body.Close()

	testutil.AssertCoins(t, env, playerID, 900)
	testutil.AssertBetStatus(t, env, bet.ID, "lost")
}

func TestSettlement_PlayerEventBetWins(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, playerID := env.RegisterPlayer("scorer@test.com", "securepass123", "Scorer")
	matchID := env.CreateMatch(token, "Los Tigres")

	resp := placeBet(t, env, token, "/bets", matchID, "player_event", 100,
		map[string]interface{}{"playerId": playerID, "event": "scores"})
	var bet betResponse
	testutil.DecodeJSON(t, resp, &bet)

	finalizeMatch(t, env, token, matchID, 1, 0, []map[string]interface{}{
		{"playerId": playerID, "goals": 1},
	}).Body.Close()

	// 1000 - 100 stake + 350 payout (stake x 3.5)
	testutil.AssertCoins(t, env, playerID, 1250)
	testutil.AssertBetStatus(t, env, bet.ID, "won")
}

func TestSettlement_RefinalizeRejected(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, playerID := env.RegisterPlayer("refin@test.com", "securepass123", "Refin")
	matchID := env.CreateMatch(token, "Los Tigres")

	resp := placeBet(t, env, token, "/bets", matchID, "result", 100,
		map[string]interface{}{"us": 2, "them": 1})
	resp.Body.Close()

	finalizeMatch(t, env, token, matchID, 2, 1, nil).Body.Close()
	testutil.AssertCoins(t, env, playerID, 1400)

	second := finalizeMatch(t, env, token, matchID, 2, 1, nil)
	testutil.AssertStatus(t, second, http.StatusConflict)
	testutil.AssertErrorCode(t, second, "CONFLICT")

	// Balance must not move again.
	testutil.AssertCoins(t, env, playerID, 1400)
}

// ─── PvP Tests ──────────────────────────────────────────────────────────────

func TestPvP_ProposeAndAccept(t *testing.T) {
	env := testutil.NewTestEnv(t)
	tokenA, playerA := env.RegisterPlayer("proposer@test.com", "securepass123", "Proposer")
	tokenB, playerB := env.RegisterPlayer("accepter@test.com", "securepass123", "Accepter")
	matchID := env.CreateMatch(tokenA, "Los Tigres")

	resp := placeBet(t, env, tokenA, "/bets/pvp", matchID, "player_event", 100,
		map[string]interface{}{"playerId": playerA, "event": "scores"})
	var bet betResponse
	testutil.DecodeJSON(t, resp, &bet)
	assert.Equal(t, "proposed", bet.Status)
	testutil.AssertCoins(t, env, playerA, 900)

	aresp := env.AuthPOST("/bets/"+bet.ID.String()+"/accept", nil, tokenB)
	var accepted betResponse
	testutil.DecodeJSON(t, aresp, &accepted)
	assert.Equal(t, "active", accepted.Status)
	require.NotNil(t, accepted.AccepterStake)

	// Counter-stake is stake x odds, rounded half up: 100 x 3.5 = 350.
	assert.Equal(t, int64(350), *accepted.AccepterStake)
	testutil.AssertCoins(t, env, playerB, 650)
}

func TestPvP_SelfAcceptRejected(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, playerID := env.RegisterPlayer("selfish@test.com", "securepass123", "Selfish")
	matchID := env.CreateMatch(token, "Los Tigres")

	resp := placeBet(t, env, token, "/bets/pvp", matchID, "player_event", 100,
		map[string]interface{}{"playerId": playerID, "event": "scores"})
	var bet betResponse
	testutil.DecodeJSON(t, resp, &bet)

	aresp := env.AuthPOST("/bets/"+bet.ID.String()+"/accept", nil, token)
	testutil.AssertStatus(t, aresp, http.StatusBadRequest)
	testutil.AssertErrorCode(t, aresp, "VALIDATION_ERROR")
}

func TestPvP_SecondAccepterRejected(t *testing.T) {
	env := testutil.NewTestEnv(t)
	tokenA, playerA := env.RegisterPlayer("pvpa@test.com", "securepass123", "A")
	tokenB, _ := env.RegisterPlayer("pvpb@test.com", "securepass123", "B")
	tokenC, _ := env.RegisterPlayer("pvpc@test.com", "securepass123", "C")
	matchID := env.CreateMatch(tokenA, "Los Tigres")

	resp := placeBet(t, env, tokenA, "/bets/pvp", matchID, "player_event", 100,
		map[string]interface{}{"playerId": playerA, "event": "scores"})
	var bet betResponse
	testutil.DecodeJSON(t, resp, &bet)

	env.AuthPOST("/bets/"+bet.ID.String()+"/accept", nil, tokenB).Body.Close()

	cresp := env.AuthPOST("/bets/"+bet.ID.String()+"/accept", nil, tokenC)
	testutil.AssertStatus(t, cresp, http.StatusConflict)
	testutil.AssertErrorCode(t, cresp, "BET_NOT_OPEN")
}

func TestPvP_WinnerTakesPool(t *testing.T) {
	env := testutil.NewTestEnv(t)
	tokenA, playerA := env.RegisterPlayer("pool-a@test.com", "securepass123", "Pool A")
	tokenB, playerB := env.RegisterPlayer("pool-b@test.com", "securepass123", "Pool B")
	matchID := env.CreateMatch(tokenA, "Los Tigres")

	resp := placeBet(t, env, tokenA, "/bets/pvp", matchID, "player_event", 100,
		map[string]interface{}{"playerId": playerA, "event": "scores"})
	var bet betResponse
	testutil.DecodeJSON(t, resp, &bet)

	env.AuthPOST("/bets/"+bet.ID.String()+"/accept", nil, tokenB).Body.Close()

	finalizeMatch(t, env, tokenA, matchID, 1, 0, []map[string]interface{}{
		{"playerId": playerA, "goals": 2},
	}).Body.Close()

	// Proposer wins the pool: own 100 plus the accepter's 350.
	testutil.AssertCoins(t, env, playerA, 1350)
	testutil.AssertCoins(t, env, playerB, 650)
	testutil.AssertBetStatus(t, env, bet.ID, "won")
}

func TestPvP_AccepterWinsOnMiss(t *testing.T) {
	env := testutil.NewTestEnv(t)
	tokenA, playerA := env.RegisterPlayer("miss-a@test.com", "securepass123", "Miss A")
	tokenB, playerB := env.RegisterPlayer("miss-b@test.com", "securepass123", "Miss B")
	matchID := env.CreateMatch(tokenA, "Los Tigres")

	resp := placeBet(t, env, tokenA, "/bets/pvp", matchID, "player_event", 100,
		map[string]interface{}{"playerId": playerA, "event": "scores"})
	var bet betResponse
	testutil.DecodeJSON(t, resp, &bet)

	env.AuthPOST("/bets/"+bet.ID.String()+"/accept", nil, tokenB).Body.Close()

	finalizeMatch(t, env, tokenA, matchID, 0, 0, nil).Body.Close()

	testutil.AssertCoins(t, env, playerA, 900)
	testutil.AssertCoins(t, env, playerB, 1100)
	testutil.AssertBetStatus(t, env, bet.ID, "lost")
}

func TestPvP_UnacceptedProposalVoidedAtFinalize(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, playerID := env.RegisterPlayer("lonely@test.com", "securepass123", "Lonely")
	matchID := env.CreateMatch(token, "Los Tigres")

	resp := placeBet(t, env, token, "/bets/pvp", matchID, "player_event", 100,
		map[string]interface{}{"playerId": playerID, "event": "scores"})
	var bet betResponse
	testutil.DecodeJSON(t, resp, &bet)
	testutil.AssertCoins(t, env, playerID, 900)

	finalizeMatch(t, env, token, matchID, 1, 0, nil).Body.Close()

	testutil.AssertCoins(t, env, playerID, 1000)
	testutil.AssertBetStatus(t, env, bet.ID, "void")
}

func TestPvP_OpenProposalsListing(t *testing.T) {
	env := testutil.NewTestEnv(t)
	tokenA, playerA := env.RegisterPlayer("lister-a@test.com", "securepass123", "Lister A")
	tokenB, _ := env.RegisterPlayer("lister-b@test.com", "securepass123", "Lister B")
	matchID := env.CreateMatch(tokenA, "Los Tigres")

	placeBet(t, env, tokenA, "/bets/pvp", matchID, "player_event", 100,
		map[string]interface{}{"playerId": playerA, "event": "scores"}).Body.Close()

	// B sees A's proposal; A does not see their own.
	bresp := env.AuthGET("/bets/pvp/open", tokenB)
	var forB []betResponse
	testutil.DecodeJSON(t, bresp, &forB)
	assert.Len(t, forB, 1)

	aresp := env.AuthGET("/bets/pvp/open", tokenA)
	var forA []betResponse
	testutil.DecodeJSON(t, aresp, &forA)
	assert.Empty(t, forA)
}

// ─── Custom PvP Tests ───────────────────────────────────────────────────────

func proposeCustom(t *testing.T, env *testutil.TestEnv, token string, matchID uuid.UUID) betResponse {
	t.Helper()
	resp := placeBet(t, env, token, "/bets/pvp", matchID, "custom_pvp", 100,
		map[string]interface{}{"custom_description": "first goal is a header", "custom_odds": 2})
	var bet betResponse
	testutil.DecodeJSON(t, resp, &bet)
	return bet
}

func TestCustomPvP_UntouchedByFinalize(t *testing.T) {
	env := testutil.NewTestEnv(t)
	tokenA, _ := env.RegisterPlayer("cust-a@test.com", "securepass123", "Cust A")
	tokenB, _ := env.RegisterPlayer("cust-b@test.com", "securepass123", "Cust B")
	matchID := env.CreateMatch(tokenA, "Los Tigres")

	bet := proposeCustom(t, env, tokenA, matchID)
	env.AuthPOST("/bets/"+bet.ID.String()+"/accept", nil, tokenB).Body.Close()

	finalizeMatch(t, env, tokenA, matchID, 3, 0, nil).Body.Close()

	// Custom wagers never settle automatically.
	testutil.AssertBetStatus(t, env, bet.ID, "active")
}

func TestCustomPvP_ManualResolveProposerWins(t *testing.T) {
	env := testutil.NewTestEnv(t)
	tokenA, playerA := env.RegisterPlayer("manual-a@test.com", "securepass123", "Manual A")
	tokenB, playerB := env.RegisterPlayer("manual-b@test.com", "securepass123", "Manual B")
	matchID := env.CreateMatch(tokenA, "Los Tigres")

	bet := proposeCustom(t, env, tokenA, matchID)
	env.AuthPOST("/bets/"+bet.ID.String()+"/accept", nil, tokenB).Body.Close()
	testutil.AssertCoins(t, env, playerA, 900)
	testutil.AssertCoins(t, env, playerB, 800)

	rresp := env.AuthPOST("/bets/"+bet.ID.String()+"/resolve",
		map[string]string{"resolution": "proposer_wins"}, tokenA)
	defer rresp.Body.Close()
	assert.Equal(t, http.StatusOK, rresp.StatusCode)

	// Pool is 100 + 200 at odds 2.
	testutil.AssertCoins(t, env, playerA, 1200)
	testutil.AssertCoins(t, env, playerB, 800)
	testutil.AssertBetStatus(t, env, bet.ID, "won")
}

func TestCustomPvP_ManualResolveAccepterWins(t *testing.T) {
	env := testutil.NewTestEnv(t)
	tokenA, playerA := env.RegisterPlayer("acc-a@test.com", "securepass123", "Acc A")
	tokenB, playerB := env.RegisterPlayer("acc-b@test.com", "securepass123", "Acc B")
	matchID := env.CreateMatch(tokenA, "Los Tigres")

	bet := proposeCustom(t, env, tokenA, matchID)
	env.AuthPOST("/bets/"+bet.ID.String()+"/accept", nil, tokenB).Body.Close()

	env.AuthPOST("/bets/"+bet.ID.String()+"/resolve",
		map[string]string{"resolution": "accepter_wins"}, tokenA).Body.Close()

	testutil.AssertCoins(t, env, playerA, 900)
	testutil.AssertCoins(t, env, playerB, 1100)
	testutil.AssertBetStatus(t, env, bet.ID, "lost")
}

func TestCustomPvP_ManualVoidRefundsBoth(t *testing.T) {
	env := testutil.NewTestEnv(t)
	tokenA, playerA := env.RegisterPlayer("void-a@test.com", "securepass123", "Void A")
	tokenB, playerB := env.RegisterPlayer("void-b@test.com", "securepass123", "Void B")
	matchID := env.CreateMatch(tokenA, "Los Tigres")

	bet := proposeCustom(t, env, tokenA, matchID)
	env.AuthPOST("/bets/"+bet.ID.String()+"/accept", nil, tokenB).Body.Close()

	env.AuthPOST("/bets/"+bet.ID.String()+"/resolve",
		map[string]string{"resolution": "void"}, tokenA).Body.Close()

	testutil.AssertCoins(t, env, playerA, 1000)
	testutil.AssertCoins(t, env, playerB, 1000)
	testutil.AssertBetStatus(t, env, bet.ID, "void")
}

func TestCustomPvP_ResolveTwiceRejected(t *testing.T) {
	env := testutil.NewTestEnv(t)
	tokenA, playerA := env.RegisterPlayer("twice-a@test.com", "securepass123", "Twice A")
	tokenB, _ := env.RegisterPlayer("twice-b@test.com", "securepass123", "Twice B")
	matchID := env.CreateMatch(tokenA, "Los Tigres")

	bet := proposeCustom(t, env, tokenA, matchID)
	env.AuthPOST("/bets/"+bet.ID.String()+"/accept", nil, tokenB).Body.Close()

	env.AuthPOST("/bets/"+bet.ID.String()+"/resolve",
		map[string]string{"resolution": "proposer_wins"}, tokenA).Body.Close()
	testutil.AssertCoins(t, env, playerA, 1200)

	second := env.AuthPOST("/bets/"+bet.ID.String()+"/resolve",
		map[string]string{"resolution": "proposer_wins"}, tokenA)
	testutil.AssertStatus(t, second, http.StatusConflict)
	testutil.AssertErrorCode(t, second, "BET_NOT_OPEN")

	testutil.AssertCoins(t, env, playerA, 1200)
}

func TestCustomPvP_ProposedOnlyVoidable(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, playerID := env.RegisterPlayer("onlyvoid@test.com", "securepass123", "Only Void")
	matchID := env.CreateMatch(token, "Los Tigres")

	bet := proposeCustom(t, env, token, matchID)

	wresp := env.AuthPOST("/bets/"+bet.ID.String()+"/resolve",
		map[string]string{"resolution": "proposer_wins"}, token)
	testutil.AssertStatus(t, wresp, http.StatusConflict)
	testutil.AssertErrorCode(t, wresp, "BET_NOT_OPEN")

	vresp := env.AuthPOST("/bets/"+bet.ID.String()+"/resolve",
		map[string]string{"resolution": "void"}, token)
	defer vresp.Body.Close()
	assert.Equal(t, http.StatusOK, vresp.StatusCode)

	testutil.AssertCoins(t, env, playerID, 1000)
	testutil.AssertBetStatus(t, env, bet.ID, "void")
}

// ─── Bet Reading Tests ──────────────────────────────────────────────────────

func TestBets_MyBetsListsBothSides(t *testing.T) {
	env := testutil.NewTestEnv(t)
	tokenA, playerA := env.RegisterPlayer("hist-a@test.com", "securepass123", "Hist A")
	tokenB, _ := env.RegisterPlayer("hist-b@test.com", "securepass123", "Hist B")
	matchID := env.CreateMatch(tokenA, "Los Tigres")

	resp := placeBet(t, env, tokenA, "/bets/pvp", matchID, "player_event", 100,
		map[string]interface{}{"playerId": playerA, "event": "scores"})
	var bet betResponse
	testutil.DecodeJSON(t, resp, &bet)
	env.AuthPOST("/bets/"+bet.ID.String()+"/accept", nil, tokenB).Body.Close()

	bresp := env.AuthGET("/bets/me", tokenB)
	var mine []betResponse
	testutil.DecodeJSON(t, bresp, &mine)
	require.Len(t, mine, 1)
	assert.Equal(t, bet.ID, mine[0].ID)
}

func TestBets_GetUnknownBet(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, _ := env.RegisterPlayer("getbet@test.com", "securepass123", "Get Bet")

	resp := env.AuthGET("/bets/"+uuid.NewString(), token)
	testutil.AssertStatus(t, resp, http.StatusNotFound)
	testutil.AssertErrorCode(t, resp, "BET_NOT_FOUND")
}
