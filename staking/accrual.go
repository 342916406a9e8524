// Copyright (C) 2019-2025, Dytallix Labs. All rights reserved.
// See the file LICENSE for licensing terms.

package staking

import (
	"encoding/json"
	"sync"

	"github.com/dytallix-labs/pqchain/state"
	"github.com/dytallix-labs/pqchain/types"
)

const ledgerKey = "staking/ledger"

// Accrual is the global reward-index accumulator. It holds no per-delegator
// bookkeeping of its own; callers track each delegator's stake and
// last-claimed index externally and call DelegatorReward to compute what is
// currently owed.
type Accrual struct {
	mu sync.Mutex
	st state.Store
}

// NewAccrual wraps st, the same store the block pipeline commits so the
// ledger participates in each block's atomic commit.
func NewAccrual(st state.Store) *Accrual {
	return &Accrual{st: st}
}

func (a *Accrual) ledger() types.StakingLedger {
	raw, ok := a.st.Get(ledgerKey)
	if !ok {
		return types.StakingLedger{}
	}
	var l types.StakingLedger
	if err := json.Unmarshal(raw, &l); err != nil {
		return types.StakingLedger{}
	}
	return l
}

func (a *Accrual) setLedger(l types.StakingLedger) {
	raw, _ := json.Marshal(l)
	a.st.Put(ledgerKey, raw)
}

// Ledger returns a copy of the current accrual state.
func (a *Accrual) Ledger() types.StakingLedger {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.ledger()
}

// ApplyExternalEmission folds this block's staking_rewards pool share into
// the reward index, per spec.md §4.H. When total_stake is zero the rewards
// have nowhere to accrue and are parked in pending_unallocated until a
// non-zero stake base appears.
func (a *Accrual) ApplyExternalEmission(stakingRewardsThisBlock types.Balance) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	l := a.ledger()
	if l.TotalStake.IsZero() {
		l.PendingUnallocated = l.PendingUnallocated.SaturatingAdd(stakingRewardsThisBlock)
		a.setLedger(l)
		return nil
	}

	pool, err := stakingRewardsThisBlock.Add(l.PendingUnallocated)
	if err != nil {
		return err
	}
	delta, err := pool.MulDivFloor(types.RewardIndexScale, mustUint64(l.TotalStake))
	if err != nil {
		return err
	}
	l.RewardIndex = l.RewardIndex.SaturatingAdd(delta)
	l.PendingUnallocated = types.ZeroBalance
	a.setLedger(l)
	return nil
}

// SetTotalStake atomically changes the global stake base. If there is a
// pending_unallocated balance accrued during a zero-stake period and n is
// non-zero, that balance is folded into the reward index against the new
// stake base before the stake change takes effect, so rewards earned while
// unstaked land on the first delegators to (re)stake rather than vanishing.
func (a *Accrual) SetTotalStake(n types.Balance) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	l := a.ledger()
	if !l.PendingUnallocated.IsZero() && !n.IsZero() {
		delta, err := l.PendingUnallocated.MulDivFloor(types.RewardIndexScale, mustUint64(n))
		if err != nil {
			return err
		}
		l.RewardIndex = l.RewardIndex.SaturatingAdd(delta)
		l.PendingUnallocated = types.ZeroBalance
	}
	l.TotalStake = n
	a.setLedger(l)
	return nil
}

// DelegatorReward computes the total rewards a delegator with the given
// stake is owed against the current index: s * reward_index / S. Callers
// subtract whatever they have already paid out to that delegator.
func (a *Accrual) DelegatorReward(stake types.Balance) types.Balance {
	a.mu.Lock()
	defer a.mu.Unlock()

	l := a.ledger()
	reward, err := stake.MulBalanceDivFloor(l.RewardIndex, types.RewardIndexScale)
	if err != nil {
		return types.ZeroBalance
	}
	return reward
}

// mustUint64 truncates a Balance to uint64 for use as a MulDivFloor
// denominator. Stake totals are economically bounded well under 2^64 micro
// units; a Balance exceeding that range here indicates a configuration
// error upstream, not a value this accrual math is expected to handle.
func mustUint64(b types.Balance) uint64 {
	v, _ := b.Uint64()
	return v
}
