package ledger

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureJSON(t *testing.T) {
	t.Run("nil returns empty object", func(t *testing.T) {
		assert.Equal(t, json.RawMessage(`{}`), ensureJSON(nil))
	})

	t.Run("empty returns empty object", func(t *testing.T) {
		assert.Equal(t, json.RawMessage(`{}`), ensureJSON(json.RawMessage{}))
	})

	t.Run("non-nil passthrough", func(t *testing.T) {
		data := json.RawMessage(`{"key":"value"}`)
		assert.Equal(t, data, ensureJSON(data))
	})
}

func TestMergeMeta(t *testing.T) {
	t.Run("nil base with extras", func(t *testing.T) {
		result := mergeMeta(nil, map[string]interface{}{"betId": "b1", "stake": 100})
		var m map[string]interface{}
		require.NoError(t, json.Unmarshal(result, &m))
		assert.Equal(t, "b1", m["betId"])
		assert.Equal(t, float64(100), m["stake"])
	})

	t.Run("existing base with extras", func(t *testing.T) {
		base := json.RawMessage(`{"matchId":"m1"}`)
		result := mergeMeta(base, map[string]interface{}{"stake": 250})
		var m map[string]interface{}
		require.NoError(t, json.Unmarshal(result, &m))
		assert.Equal(t, "m1", m["matchId"])
		assert.Equal(t, float64(250), m["stake"])
	})

	t.Run("extras overwrite base", func(t *testing.T) {
		base := json.RawMessage(`{"stake":100}`)
		result := mergeMeta(base, map[string]interface{}{"stake": 200})
		var m map[string]interface{}
		require.NoError(t, json.Unmarshal(result, &m))
		assert.Equal(t, float64(200), m["stake"])
	})
}
