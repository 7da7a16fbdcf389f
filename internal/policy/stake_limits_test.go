package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluateStakeLimits_AllowsWithinLimits(t *testing.T) {
	policy := DefaultStakeLimits()
	result := EvaluateStakeLimits(policy, 100, 0)
	assert.True(t, result.Allowed)
}

func TestEvaluateStakeLimits_BlocksSingleStakeOverLimit(t *testing.T) {
	policy := DefaultStakeLimits()
	result := EvaluateStakeLimits(policy, 600, 0)
	assert.False(t, result.Allowed)
	assert.Equal(t, "single_stake", result.BreachedLimit)
	assert.Equal(t, int64(600), result.RequestedAmt)
}

func TestEvaluateStakeLimits_BlocksDailyStakeOverLimit(t *testing.T) {
	policy := DefaultStakeLimits()
	// Already staked 1800 today, trying 300 more (total 2100 > 2000)
	result := EvaluateStakeLimits(policy, 300, 1_800)
	assert.False(t, result.Allowed)
	assert.Equal(t, "daily_stake", result.BreachedLimit)
	assert.Equal(t, int64(2_100), result.RequestedAmt)
}

func TestEvaluateStakeLimits_AllowsExactLimit(t *testing.T) {
	policy := DefaultStakeLimits()
	result := EvaluateStakeLimits(policy, 500, 1_500)
	assert.True(t, result.Allowed)
}

func TestEvaluateStakeLimits_ZeroLimitDisablesCheck(t *testing.T) {
	result := EvaluateStakeLimits(StakeLimitPolicy{}, 1_000_000, 1_000_000)
	assert.True(t, result.Allowed)
}
