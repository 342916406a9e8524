// Copyright (C) 2019-2025, Dytallix Labs. All rights reserved.
// See the file LICENSE for licensing terms.

//go:build pqcmock

package mempool

import (
	"context"
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

func signedSend(t *testing.T, from, to types.Address, amount, nonce, gasLimit, gasPrice uint64) types.SignedTransaction {
	t.Helper()
	tx := types.Transaction{
		ChainID:  "pqchain-1",
		Nonce:    nonce,
		Msgs:     []types.Msg{types.MsgSend{From: from, To: to, Denom: types.DenomDGT, Amount: types.NewBalance(amount)}},
		GasLimit: gasLimit,
		GasPrice: gasPrice,
	}
	return types.SignedTransaction{
		Tx:        tx,
		PublicKey: []byte("pk"),
		Signature: []byte("sig"),
		Algorithm: types.AlgDilithium5,
		Version:   types.SignedTransactionVersion,
	}
}

func newTestPool(t *testing.T) *Pool {
	t.Helper()
	p, err := New(Config{ChainID: "pqchain-1", MaxTxs: 2, BaseMinGasPrice: 1}, nil)
	require.NoError(t, err)
	return p
}

func TestAdmitHappyPath(t *testing.T) {
	p := newTestPool(t)
	st := state.NewMemStore()
	alice := mkAddr(t, "alice")
	bob := mkAddr(t, "bob")
	st.SetBalance(alice, types.DenomDGT, types.NewBalance(1_000_000))

	stx := signedSend(t, alice, bob, 100, 0, 1000, 1)
	err := p.Admit(context.Background(), stx, st, gas.DefaultSchedule)
	require.NoError(t, err)
	require.Equal(t, 1, p.Len())
}

func TestAdmitRejectsWrongChainID(t *testing.T) {
	p := newTestPool(t)
	st := state.NewMemStore()
	alice := mkAddr(t, "alice")
	bob := mkAddr(t, "bob")
	st.SetBalance(alice, types.DenomDGT, types.NewBalance(1_000_000))

	stx := signedSend(t, alice, bob, 100, 0, 1000, 1)
	stx.Tx.ChainID = "other-chain"
	err := p.Admit(context.Background(), stx, st, gas.DefaultSchedule)
	require.ErrorIs(t, err, ErrInvalidChainID)
}

func TestAdmitRejectsNonceGap(t *testing.T) {
	p := newTestPool(t)
	st := state.NewMemStore()
	alice := mkAddr(t, "alice")
	bob := mkAddr(t, "bob")
	st.SetBalance(alice, types.DenomDGT, types.NewBalance(1_000_000))

	stx := signedSend(t, alice, bob, 100, 5, 1000, 1)
	err := p.Admit(context.Background(), stx, st, gas.DefaultSchedule)
	require.ErrorIs(t, err, ErrNonceGap)
}

func TestAdmitRejectsDuplicateLowerNonce(t *testing.T) {
	p := newTestPool(t)
	st := state.NewMemStore()
	alice := mkAddr(t, "alice")
	bob := mkAddr(t, "bob")
	st.SetBalance(alice, types.DenomDGT, types.NewBalance(1_000_000))

	first := signedSend(t, alice, bob, 100, 0, 1000, 1)
	require.NoError(t, p.Admit(context.Background(), first, st, gas.DefaultSchedule))

	dup := signedSend(t, alice, bob, 50, 0, 1000, 1)
	err := p.Admit(context.Background(), dup, st, gas.DefaultSchedule)
	require.ErrorIs(t, err, ErrDuplicateTransaction)
}

func TestAdmitRejectsInsufficientFunds(t *testing.T) {
	p := newTestPool(t)
	st := state.NewMemStore()
	alice := mkAddr(t, "alice")
	bob := mkAddr(t, "bob")
	st.SetBalance(alice, types.DenomDGT, types.NewBalance(10))

	stx := signedSend(t, alice, bob, 100, 0, 1000, 1)
	err := p.Admit(context.Background(), stx, st, gas.DefaultSchedule)
	require.ErrorIs(t, err, ErrInsufficientFunds)
}

func TestAdmitRejectsGasPriceBelowFloor(t *testing.T) {
	p := newTestPool(t)
	p.cfg.BaseMinGasPrice = 2
	st := state.NewMemStore()
	alice := mkAddr(t, "alice")
	bob := mkAddr(t, "bob")
	st.SetBalance(alice, types.DenomDGT, types.NewBalance(1_000_000))

	stx := signedSend(t, alice, bob, 100, 0, 1000, 1)
	err := p.Admit(context.Background(), stx, st, gas.DefaultSchedule)
	require.ErrorIs(t, err, ErrGasPriceTooLow)
}

func TestAdmitEvictsLowerPriorityOnCapacity(t *testing.T) {
	p := newTestPool(t)
	st := state.NewMemStore()
	alice := mkAddr(t, "alice")
	bob := mkAddr(t, "bob")
	carol := mkAddr(t, "carol")
	st.SetBalance(alice, types.DenomDGT, types.NewBalance(1_000_000))
	st.SetBalance(bob, types.DenomDGT, types.NewBalance(1_000_000))
	st.SetBalance(carol, types.DenomDGT, types.NewBalance(1_000_000))

	low := signedSend(t, alice, carol, 10, 0, 1000, 1)
	require.NoError(t, p.Admit(context.Background(), low, st, gas.DefaultSchedule))
	mid := signedSend(t, bob, carol, 10, 0, 1000, 2)
	require.NoError(t, p.Admit(context.Background(), mid, st, gas.DefaultSchedule))
	require.Equal(t, 2, p.Len())

	high := signedSend(t, carol, alice, 10, 0, 1000, 50)
	require.NoError(t, p.Admit(context.Background(), high, st, gas.DefaultSchedule))
	require.Equal(t, 2, p.Len())
}

func TestPendingOrdersByEffectiveGasPriceDescending(t *testing.T) {
	p := newTestPool(t)
	p.cfg.MaxTxs = 10
	st := state.NewMemStore()
	alice := mkAddr(t, "alice")
	bob := mkAddr(t, "bob")
	carol := mkAddr(t, "carol")
	st.SetBalance(alice, types.DenomDGT, types.NewBalance(1_000_000))
	st.SetBalance(bob, types.DenomDGT, types.NewBalance(1_000_000))

	low := signedSend(t, alice, carol, 10, 0, 1000, 2)
	high := signedSend(t, bob, carol, 10, 0, 1000, 10)
	require.NoError(t, p.Admit(context.Background(), low, st, gas.DefaultSchedule))
	require.NoError(t, p.Admit(context.Background(), high, st, gas.DefaultSchedule))

	pending := p.Pending(0)
	require.Len(t, pending, 2)
	require.GreaterOrEqual(t, pending[0].EffectiveGasPrice, pending[1].EffectiveGasPrice)
}

func TestGossipDedup(t *testing.T) {
	p := newTestPool(t)
	require.False(t, p.SeenBefore("abc"))
	require.True(t, p.SeenBefore("abc"))
}
