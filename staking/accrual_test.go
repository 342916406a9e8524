// Copyright (C) 2019-2025, Dytallix Labs. All rights reserved.
// See the file LICENSE for licensing terms.

package staking

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dytallix-labs/pqchain/state"
	"github.com/dytallix-labs/pqchain/types"
)

func TestApplyExternalEmissionAccumulatesWhenStakeZero(t *testing.T) {
	a := NewAccrual(state.NewMemStore())
	require.NoError(t, a.ApplyExternalEmission(types.NewBalance(500)))

	l := a.Ledger()
	require.Equal(t, "500", l.PendingUnallocated.String())
	require.True(t, l.RewardIndex.IsZero())
}

func TestApplyExternalEmissionUpdatesIndexWithNonZeroStake(t *testing.T) {
	a := NewAccrual(state.NewMemStore())
	require.NoError(t, a.SetTotalStake(types.NewBalance(1000)))
	require.NoError(t, a.ApplyExternalEmission(types.NewBalance(100)))

	l := a.Ledger()
	require.True(t, l.PendingUnallocated.IsZero())
	// reward_index = 100 * 1e12 / 1000 = 1e11
	require.Equal(t, "100000000000", l.RewardIndex.String())
}

func TestSetTotalStakeFoldsPendingIntoIndexOnFirstNonZeroStake(t *testing.T) {
	a := NewAccrual(state.NewMemStore())
	require.NoError(t, a.ApplyExternalEmission(types.NewBalance(500)))
	require.NoError(t, a.SetTotalStake(types.NewBalance(1000)))

	l := a.Ledger()
	require.True(t, l.PendingUnallocated.IsZero())
	// 500 * 1e12 / 1000 = 5e11
	require.Equal(t, "500000000000", l.RewardIndex.String())
	require.Equal(t, "1000", l.TotalStake.String())
}

func TestSetTotalStakeToZeroLeavesPendingUntouched(t *testing.T) {
	a := NewAccrual(state.NewMemStore())
	require.NoError(t, a.SetTotalStake(types.NewBalance(0)))
	require.NoError(t, a.ApplyExternalEmission(types.NewBalance(300)))

	l := a.Ledger()
	require.Equal(t, "300", l.PendingUnallocated.String())
}

func TestDelegatorRewardScalesWithStakeShare(t *testing.T) {
	a := NewAccrual(state.NewMemStore())
	require.NoError(t, a.SetTotalStake(types.NewBalance(1000)))
	require.NoError(t, a.ApplyExternalEmission(types.NewBalance(100)))

	reward := a.DelegatorReward(types.NewBalance(250))
	// stake 250 of 1000, reward_index = 1e11 -> 250 * 1e11 / 1e12 = 25
	require.Equal(t, "25", reward.String())
}

func TestDelegatorRewardZeroWhenNoIndexYet(t *testing.T) {
	a := NewAccrual(state.NewMemStore())
	reward := a.DelegatorReward(types.NewBalance(1000))
	require.True(t, reward.IsZero())
}

func TestApplyExternalEmissionAccumulatesAcrossMultipleZeroStakeBlocks(t *testing.T) {
	a := NewAccrual(state.NewMemStore())
	require.NoError(t, a.ApplyExternalEmission(types.NewBalance(100)))
	require.NoError(t, a.ApplyExternalEmission(types.NewBalance(200)))

	l := a.Ledger()
	require.Equal(t, "300", l.PendingUnallocated.String())
}
