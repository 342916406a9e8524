// Copyright (C) 2019-2025, Dytallix Labs. All rights reserved.
// See the file LICENSE for licensing terms.

package execution

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dytallix-labs/pqchain/gas"
	"github.com/dytallix-labs/pqchain/state"
	"github.com/dytallix-labs/pqchain/types"
)

func mkAddr(t *testing.T, s string) types.Address {
	t.Helper()
	a, err := types.NewAddress(s)
	require.NoError(t, err)
	return a
}

func sendTx(t *testing.T, from, to types.Address, amount uint64, nonce uint64, gasLimit, gasPrice uint64) types.Transaction {
	t.Helper()
	amt := types.NewBalance(amount)
	return types.Transaction{
		ChainID:  "pqchain-1",
		Nonce:    nonce,
		Msgs:     []types.Msg{types.MsgSend{From: from, To: to, Denom: types.DenomDGT, Amount: amt}},
		GasLimit: gasLimit,
		GasPrice: gasPrice,
	}
}

func TestExecuteSuccessTransfersAndAdvancesNonce(t *testing.T) {
	st := state.NewMemStore()
	alice := mkAddr(t, "alice")
	bob := mkAddr(t, "bob")
	st.SetBalance(alice, types.DenomDGT, types.NewBalance(1_000_000))

	tx := sendTx(t, alice, bob, 1000, 0, 100_000, 1)
	res, err := Execute(tx, st, 1, 0, gas.DefaultSchedule)
	require.NoError(t, err)
	require.True(t, res.Success)
	require.Equal(t, types.StatusSuccess, res.Receipt.Status)
	require.Equal(t, uint64(1), st.NonceOf(alice))
	require.Equal(t, 0, st.BalanceOf(bob, types.DenomDGT).Cmp(types.NewBalance(1000)))
	require.Equal(t, res.Receipt.Fee.String(), st.BalanceOf(types.FeeCollectorAddress, types.DenomDGT).String())
}

func TestExecuteInvalidNonceNoStateChange(t *testing.T) {
	st := state.NewMemStore()
	alice := mkAddr(t, "alice")
	bob := mkAddr(t, "bob")
	st.SetBalance(alice, types.DenomDGT, types.NewBalance(1_000_000))

	tx := sendTx(t, alice, bob, 1000, 5, 100_000, 1)
	res, err := Execute(tx, st, 1, 0, gas.DefaultSchedule)
	require.NoError(t, err)
	require.False(t, res.Success)
	require.Equal(t, uint64(0), st.NonceOf(alice))
	require.Equal(t, 0, st.BalanceOf(alice, types.DenomDGT).Cmp(types.NewBalance(1_000_000)))
}

func TestExecuteInsufficientFundsNoFeeCharged(t *testing.T) {
	st := state.NewMemStore()
	alice := mkAddr(t, "alice")
	bob := mkAddr(t, "bob")
	st.SetBalance(alice, types.DenomDGT, types.NewBalance(100))

	tx := sendTx(t, alice, bob, 1000, 0, 100_000, 1)
	res, err := Execute(tx, st, 1, 0, gas.DefaultSchedule)
	require.NoError(t, err)
	require.False(t, res.Success)
	require.Equal(t, uint64(0), res.Receipt.GasUsed)
	require.Equal(t, 0, st.BalanceOf(alice, types.DenomDGT).Cmp(types.NewBalance(100)))
	require.Equal(t, uint64(0), st.NonceOf(alice))
}

func TestExecuteFeeOverflowNoStateChange(t *testing.T) {
	st := state.NewMemStore()
	alice := mkAddr(t, "alice")
	bob := mkAddr(t, "bob")
	st.SetBalance(alice, types.DenomDGT, types.NewBalance(1_000_000))

	tx := sendTx(t, alice, bob, 1000, 0, math.MaxUint64, math.MaxUint64)
	res, err := Execute(tx, st, 1, 0, gas.DefaultSchedule)
	require.NoError(t, err)
	require.False(t, res.Success)
	require.Equal(t, uint64(0), st.NonceOf(alice))
	require.Equal(t, 0, st.BalanceOf(alice, types.DenomDGT).Cmp(types.NewBalance(1_000_000)))
}

func TestExecuteOutOfGasDuringIntrinsicKeepsFee(t *testing.T) {
	st := state.NewMemStore()
	alice := mkAddr(t, "alice")
	bob := mkAddr(t, "bob")
	st.SetBalance(alice, types.DenomDGT, types.NewBalance(1_000_000))

	tx := sendTx(t, alice, bob, 1000, 0, 10, 1) // limit far below intrinsic base
	res, err := Execute(tx, st, 1, 0, gas.DefaultSchedule)
	require.NoError(t, err)
	require.False(t, res.Success)
	require.Equal(t, uint64(0), st.NonceOf(alice))
	// fee (10) was deducted and kept; transfer never happened
	require.Equal(t, 0, st.BalanceOf(alice, types.DenomDGT).Cmp(types.NewBalance(999_990)))
	require.True(t, st.BalanceOf(bob, types.DenomDGT).IsZero())
}

func TestExecuteOutOfGasDuringTransferKeepsFeeRevertsTransfer(t *testing.T) {
	st := state.NewMemStore()
	alice := mkAddr(t, "alice")
	bob := mkAddr(t, "bob")
	st.SetBalance(alice, types.DenomDGT, types.NewBalance(1_000_000))

	// PerByte=0 makes intrinsic gas exactly IntrinsicBase, so the remaining
	// 250 covers the two kv reads and the first kv write (200) but not the
	// second kv write.
	sched := gas.DefaultSchedule
	sched.PerByte = 0
	tx := sendTx(t, alice, bob, 1000, 0, sched.IntrinsicBase+250, 1)
	res, err := Execute(tx, st, 1, 0, sched)
	require.NoError(t, err)
	require.False(t, res.Success)
	require.Equal(t, uint64(0), st.NonceOf(alice))
	require.True(t, st.BalanceOf(bob, types.DenomDGT).IsZero())
}

func TestExecuteLegacyFeeFallback(t *testing.T) {
	st := state.NewMemStore()
	alice := mkAddr(t, "alice")
	bob := mkAddr(t, "bob")
	st.SetBalance(alice, types.DenomDGT, types.NewBalance(1_000_000))

	fee := types.NewBalance(50_000)
	tx := types.Transaction{
		ChainID: "pqchain-1",
		Nonce:   0,
		Msgs:    []types.Msg{types.MsgSend{From: alice, To: bob, Denom: types.DenomDGT, Amount: types.NewBalance(10)}},
		Fee:     &fee,
	}
	res, err := Execute(tx, st, 1, 0, gas.DefaultSchedule)
	require.NoError(t, err)
	require.True(t, res.Success)
	require.Equal(t, uint64(1), res.Receipt.GasPrice)
	require.Equal(t, uint64(50_000), res.Receipt.GasLimit)
}
