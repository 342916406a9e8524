// Copyright (C) 2019-2025, Dytallix Labs. All rights reserved.
// See the file LICENSE for licensing terms.

package burn

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dytallix-labs/pqchain/state"
	"github.com/dytallix-labs/pqchain/types"
)

func creditCollector(st state.Store, amount types.Balance) {
	st.SetBalance(types.FeeCollectorAddress, types.DenomDGT, amount)
}

func TestProcessFeeBurnBasic(t *testing.T) {
	st := state.NewMemStore()
	creditCollector(st, types.NewBalance(10_000))
	e, err := NewEngine(st, DefaultConfig)
	require.NoError(t, err)

	record, err := e.ProcessFeeBurn("tx1", 100, 1000, types.NewBalance(10_000))
	require.NoError(t, err)
	require.NotNil(t, record)
	require.Equal(t, "2500", record.BurnAmount.String()) // 25% of 10,000
	require.Equal(t, types.DenomDGT, record.BurnToken)
	require.Equal(t, "2500", e.GetBurnStats().TotalBurned.String())
}

func TestProcessFeeBurnBelowThreshold(t *testing.T) {
	st := state.NewMemStore()
	creditCollector(st, types.NewBalance(500))
	e, err := NewEngine(st, DefaultConfig)
	require.NoError(t, err)

	record, err := e.ProcessFeeBurn("tx1", 100, 1000, types.NewBalance(500))
	require.NoError(t, err)
	require.Nil(t, record)
	require.True(t, e.GetBurnStats().TotalBurned.IsZero())
}

func TestProcessFeeBurnDisabled(t *testing.T) {
	st := state.NewMemStore()
	creditCollector(st, types.NewBalance(10_000))
	cfg := DefaultConfig
	cfg.Enabled = false
	e, err := NewEngine(st, cfg)
	require.NoError(t, err)

	record, err := e.ProcessFeeBurn("tx1", 100, 1000, types.NewBalance(10_000))
	require.NoError(t, err)
	require.Nil(t, record)
}

func TestProcessFeeBurnFailsWhenCollectorCannotCover(t *testing.T) {
	st := state.NewMemStore()
	// Collector has no DRT even though burn_token is DRT.
	cfg := DefaultConfig
	cfg.BurnToken = types.DenomDRT
	e, err := NewEngine(st, cfg)
	require.NoError(t, err)

	_, err = e.ProcessFeeBurn("tx1", 100, 1000, types.NewBalance(10_000))
	require.Error(t, err)
}

func TestUpdateConfigRejectsExcessiveBurnRate(t *testing.T) {
	st := state.NewMemStore()
	e, err := NewEngine(st, DefaultConfig)
	require.NoError(t, err)

	bad := DefaultConfig
	bad.BurnRateBps = 15_000
	require.ErrorIs(t, e.UpdateConfig(bad), ErrInvalidBurnRate)
}

func TestUpdateConfigRejectsUnrecognizedToken(t *testing.T) {
	st := state.NewMemStore()
	e, err := NewEngine(st, DefaultConfig)
	require.NoError(t, err)

	bad := DefaultConfig
	bad.BurnToken = types.Denom("uusd")
	require.ErrorIs(t, e.UpdateConfig(bad), ErrUnrecognizedBurnToken)
}

func TestGetRecentEventsReturnsBoundedWindow(t *testing.T) {
	st := state.NewMemStore()
	creditCollector(st, types.NewBalance(1_000_000))
	e, err := NewEngine(st, DefaultConfig)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		_, err := e.ProcessFeeBurn("tx", uint64(i), 1000, types.NewBalance(10_000))
		require.NoError(t, err)
	}

	recent := e.GetRecentEvents(2)
	require.Len(t, recent, 2)
	require.Equal(t, uint64(3), recent[0].Height)
	require.Equal(t, uint64(4), recent[1].Height)
}

func TestNewEngineRejectsInvalidConfig(t *testing.T) {
	st := state.NewMemStore()
	bad := DefaultConfig
	bad.BurnRateBps = 20_000
	_, err := NewEngine(st, bad)
	require.ErrorIs(t, err, ErrInvalidBurnRate)
}
