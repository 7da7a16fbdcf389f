//go:build integration

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// RegisterPlayer creates a new player and returns the auth token and player ID.
func (env *TestEnv) RegisterPlayer(email, password, name string) (token string, playerID uuid.UUID) {
	env.t.Helper()
	body := map[string]string{
		"email":    email,
		"password": password,
		"name":     name,
		"position": "midfielder",
	}

	resp := env.POST("/auth/register", body, "")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		env.t.Fatalf("RegisterPlayer: expected 201, got %d", resp.StatusCode)
	}

	var result struct {
		Token    string    `json:"token"`
		PlayerID uuid.UUID `json:"player_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		env.t.Fatalf("RegisterPlayer: decode: %v", err)
	}
	return result.Token, result.PlayerID
}

// LoginPlayer authenticates an existing player and returns the auth token.
func (env *TestEnv) LoginPlayer(email, password string) string {
	env.t.Helper()
	resp := env.POST("/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, "")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		env.t.Fatalf("LoginPlayer: expected 200, got %d", resp.StatusCode)
	}

	var result struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		env.t.Fatalf("LoginPlayer: decode: %v", err)
	}
	return result.Token
}

// GET performs an unauthenticated GET request.
func (env *TestEnv) GET(path string) *http.Response {
	env.t.Helper()
	resp, err := http.Get(env.Server.URL + path)
	if err != nil {
		env.t.Fatalf("GET %s: %v", path, err)
	}
	return resp
}

// POST performs a POST request with optional auth token.
func (env *TestEnv) POST(path string, body interface{}, token string) *http.Response {
	env.t.Helper()
	return env.request("POST", path, body, token)
}

// AuthGET performs an authenticated GET request.
func (env *TestEnv) AuthGET(path, token string) *http.Response {
	env.t.Helper()
	req, err := http.NewRequest("GET", env.Server.URL+path, nil)
	if err != nil {
		env.t.Fatalf("AuthGET %s: new request: %v", path, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		env.t.Fatalf("AuthGET %s: %v", path, err)
	}
	return resp
}

// AuthPOST performs an authenticated POST request.
func (env *TestEnv) AuthPOST(path string, body interface{}, token string) *http.Response {
	env.t.Helper()
	return env.POST(path, body, token)
}

// AuthPATCH performs an authenticated PATCH request.
func (env *TestEnv) AuthPATCH(path string, body interface{}, token string) *http.Response {
	env.t.Helper()
	return env.request("PATCH", path, body, token)
}

// AuthPUT performs an authenticated PUT request.
func (env *TestEnv) AuthPUT(path string, body interface{}, token string) *http.Response {
	env.t.Helper()
	return env.request("PUT", path, body, token)
}

// AuthDELETE performs an authenticated DELETE request.
func (env *TestEnv) AuthDELETE(path, token string) *http.Response {
	env.t.Helper()
	req, err := http.NewRequest("DELETE", env.Server.URL+path, nil)
	if err != nil {
		env.t.Fatalf("DELETE %s: new request: %v", path, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		env.t.Fatalf("DELETE %s: %v", path, err)
	}
	return resp
}

func (env *TestEnv) request(method, path string, body interface{}, token string) *http.Response {
	env.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			env.t.Fatalf("%s %s: encode: %v", method, path, err)
		}
	}
	req, err := http.NewRequest(method, env.Server.URL+path, &buf)
	if err != nil {
		env.t.Fatalf("%s %s: new request: %v", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		env.t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

// CreateMatch inserts an upcoming fixture via the API and returns its ID.
func (env *TestEnv) CreateMatch(token, opponent string) uuid.UUID {
	env.t.Helper()
	resp := env.AuthPOST("/matches", map[string]interface{}{
		"opponent": opponent,
		"kickoff":  time.Now().Add(48 * time.Hour).UTC().Format(time.RFC3339),
		"emoji":    "🔥",
	}, token)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		env.t.Fatalf("CreateMatch: expected 201, got %d", resp.StatusCode)
	}

	var match struct {
		ID uuid.UUID `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&match); err != nil {
		env.t.Fatalf("CreateMatch: decode: %v", err)
	}
	return match.ID
}

// DirectCredit credits a player's coins directly against the ledger tables
// (bypasses bet settlement). Useful to fund players past the signing bonus.
func (env *TestEnv) DirectCredit(playerID uuid.UUID, amount int64) {
	env.t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	tx, err := env.Pool.Begin(ctx)
	if err != nil {
		env.t.Fatalf("DirectCredit: begin tx: %v", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, "SELECT id FROM players WHERE id = $1 FOR UPDATE", playerID)
	if err != nil {
		env.t.Fatalf("DirectCredit: lock: %v", err)
	}

	_, err = tx.Exec(ctx,
		"UPDATE players SET coins = coins + $2, updated_at = now() WHERE id = $1",
		playerID, amount)
	if err != nil {
		env.t.Fatalf("DirectCredit: update coins: %v", err)
	}

	var balAfter int64
	err = tx.QueryRow(ctx, "SELECT coins FROM players WHERE id = $1", playerID).Scan(&balAfter)
	if err != nil {
		env.t.Fatalf("DirectCredit: read coins: %v", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO coin_transactions (player_id, type, amount, balance_after, metadata)
		VALUES ($1, 'signing_bonus', $2, $3, '{"source":"test_credit"}')`,
		playerID, amount, balAfter)
	if err != nil {
		env.t.Fatalf("DirectCredit: insert tx: %v", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO event_outbox (event_id, aggregate_type, aggregate_id, event_type, partition_key, payload, occurred_at)
		VALUES ($1, 'wallet', $2, 'team.wallet.transaction.posted', $2, '{}', now())`,
		uuid.New(), playerID.String())
	if err != nil {
		env.t.Fatalf("DirectCredit: insert outbox: %v", err)
	}

	if err := tx.Commit(ctx); err != nil {
		env.t.Fatalf("DirectCredit: commit: %v", err)
	}
}
