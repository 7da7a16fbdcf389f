package policy

// StakeLimitPolicy bounds how many coins a player can put at risk.
type StakeLimitPolicy struct {
	SingleStakeMax int64 `json:"single_stake_max"` // coins
	DailyStakeMax  int64 `json:"daily_stake_max"`  // coins
}

// DefaultStakeLimits returns the team house rules (500 per bet, 2000 per day).
func DefaultStakeLimits() StakeLimitPolicy {
	return StakeLimitPolicy{
		SingleStakeMax: 500,
		DailyStakeMax:  2_000,
	}
}

// StakeEvaluation holds the result of a stake limits check.
type StakeEvaluation struct {
	Allowed       bool   `json:"allowed"`
	BreachedLimit string `json:"breached_limit,omitempty"`
	LimitValue    int64  `json:"limit_value,omitempty"`
	RequestedAmt  int64  `json:"requested_amount,omitempty"`
}

// EvaluateStakeLimits checks a stake against the player's limits.
// dailyStaked is the running total the player has already put on bets today.
// A zero limit disables that check.
func EvaluateStakeLimits(policy StakeLimitPolicy, stake, dailyStaked int64) StakeEvaluation {
	if policy.SingleStakeMax > 0 && stake > policy.SingleStakeMax {
		return StakeEvaluation{
			Allowed:       false,
			BreachedLimit: "single_stake",
			LimitValue:    policy.SingleStakeMax,
			RequestedAmt:  stake,
		}
	}

	if policy.DailyStakeMax > 0 && dailyStaked+stake > policy.DailyStakeMax {
		return StakeEvaluation{
			Allowed:       false,
			BreachedLimit: "daily_stake",
			LimitValue:    policy.DailyStakeMax,
			RequestedAmt:  dailyStaked + stake,
		}
	}

	return StakeEvaluation{Allowed: true}
}
