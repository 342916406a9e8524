// Copyright (C) 2019-2025, Dytallix Labs. All rights reserved.
// See the file LICENSE for licensing terms.

package types

// RewardIndexScale is the fixed-point scale factor (S) applied to the
// staking reward index (spec.md §4.H).
const RewardIndexScale = 1_000_000_000_000 // 1e12

// StakingLedger is the global accrual accumulator. It has no notion of
// individual delegators; per-delegator claims are computed externally from
// (stake, RewardIndex) pairs by the staking package.
type StakingLedger struct {
	TotalStake         Balance `json:"total_stake"`
	RewardIndex        Balance `json:"reward_index"`
	PendingUnallocated Balance `json:"pending_unallocated"`
}
