//go:build integration

package testutil

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
)

// DecodeJSON reads and decodes a JSON response body into dst.
func DecodeJSON(t *testing.T, resp *http.Response, dst interface{}) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		t.Fatalf("DecodeJSON: %v", err)
	}
}

// AssertStatus checks that the response has the expected HTTP status code.
func AssertStatus(t *testing.T, resp *http.Response, expected int) {
	t.Helper()
	if resp.StatusCode != expected {
		t.Errorf("expected status %d, got %d", expected, resp.StatusCode)
	}
}

// AssertErrorCode checks that the response body contains the expected error code.
func AssertErrorCode(t *testing.T, resp *http.Response, expectedCode string) {
	t.Helper()
	var errResp struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	DecodeJSON(t, resp, &errResp)
	if errResp.Code != expectedCode {
		t.Errorf("expected error code %q, got %q (message: %s)", expectedCode, errResp.Code, errResp.Message)
	}
}

// AssertCoins queries the players table and asserts the player's coin balance.
func AssertCoins(t *testing.T, env *TestEnv, playerID uuid.UUID, coins int64) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var got int64
	err := env.Pool.QueryRow(ctx,
		"SELECT coins FROM players WHERE id = $1", playerID).Scan(&got)
	if err != nil {
		t.Fatalf("AssertCoins: query: %v", err)
	}
	if got != coins {
		t.Errorf("coins: expected %d, got %d", coins, got)
	}
}

// AssertBetStatus queries the bets table and asserts the bet's status.
func AssertBetStatus(t *testing.T, env *TestEnv, betID uuid.UUID, status string) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var got string
	err := env.Pool.QueryRow(ctx,
		"SELECT status FROM bets WHERE id = $1", betID).Scan(&got)
	if err != nil {
		t.Fatalf("AssertBetStatus: query: %v", err)
	}
	if got != status {
		t.Errorf("bet status: expected %q, got %q", status, got)
	}
}

// CountTransactions returns the number of ledger entries for a player.
func CountTransactions(t *testing.T, env *TestEnv, playerID uuid.UUID) int {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var count int
	err := env.Pool.QueryRow(ctx,
		"SELECT COUNT(*) FROM coin_transactions WHERE player_id = $1", playerID).Scan(&count)
	if err != nil {
		t.Fatalf("CountTransactions: %v", err)
	}
	return count
}

// CountOutboxEvents returns the number of outbox events for an aggregate.
func CountOutboxEvents(t *testing.T, env *TestEnv, aggregateID string) int {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var count int
	err := env.Pool.QueryRow(ctx,
		"SELECT COUNT(*) FROM event_outbox WHERE aggregate_id = $1", aggregateID).Scan(&count)
	if err != nil {
		t.Fatalf("CountOutboxEvents: %v", err)
	}
	return count
}
