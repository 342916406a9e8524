// Copyright (C) 2019-2025, Dytallix Labs. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dytallix-labs/pqchain/types"
)

func addr(t *testing.T, s string) types.Address {
	t.Helper()
	a, err := types.NewAddress(s)
	require.NoError(t, err)
	return a
}

func TestBalanceRoundTrip(t *testing.T) {
	s := NewMemStore()
	alice := addr(t, "alice")
	require.True(t, s.BalanceOf(alice, types.DenomDGT).IsZero())

	amt := types.NewBalance(500)
	s.SetBalance(alice, types.DenomDGT, amt)
	require.Equal(t, 0, s.BalanceOf(alice, types.DenomDGT).Cmp(amt))
}

func TestNonceIncrement(t *testing.T) {
	s := NewMemStore()
	alice := addr(t, "alice")
	require.Equal(t, uint64(0), s.NonceOf(alice))
	s.IncrementNonce(alice)
	s.IncrementNonce(alice)
	require.Equal(t, uint64(2), s.NonceOf(alice))
}

func TestSnapshotRestoreUndoesWrites(t *testing.T) {
	s := NewMemStore()
	alice := addr(t, "alice")
	s.SetBalance(alice, types.DenomDGT, types.NewBalance(100))

	snap := s.Snapshot()
	s.SetBalance(alice, types.DenomDGT, types.NewBalance(999))
	s.IncrementNonce(alice)

	require.Equal(t, 0, s.BalanceOf(alice, types.DenomDGT).Cmp(types.NewBalance(999)))
	s.Restore(snap)

	require.Equal(t, 0, s.BalanceOf(alice, types.DenomDGT).Cmp(types.NewBalance(100)))
	require.Equal(t, uint64(0), s.NonceOf(alice))
}

func TestSnapshotRestoreOfNewKeyRemovesIt(t *testing.T) {
	s := NewMemStore()
	alice := addr(t, "alice")
	snap := s.Snapshot()
	s.SetBalance(alice, types.DenomDGT, types.NewBalance(42))
	s.Restore(snap)
	require.True(t, s.BalanceOf(alice, types.DenomDGT).IsZero())
}

func TestNestedSnapshotDiscardKeepsParentRestorable(t *testing.T) {
	s := NewMemStore()
	alice := addr(t, "alice")
	s.SetBalance(alice, types.DenomDGT, types.NewBalance(10))

	outer := s.Snapshot()
	s.SetBalance(alice, types.DenomDGT, types.NewBalance(20))

	inner := s.Snapshot()
	s.SetBalance(alice, types.DenomDGT, types.NewBalance(30))
	s.DiscardSnapshot(inner)

	require.Equal(t, 0, s.BalanceOf(alice, types.DenomDGT).Cmp(types.NewBalance(30)))
	s.Restore(outer)
	require.Equal(t, 0, s.BalanceOf(alice, types.DenomDGT).Cmp(types.NewBalance(10)))
}

func TestCommitClearsJournal(t *testing.T) {
	s := NewMemStore()
	alice := addr(t, "alice")
	_ = s.Snapshot()
	s.SetBalance(alice, types.DenomDGT, types.NewBalance(1))
	require.NoError(t, s.Commit())
	require.Len(t, s.journal, 0)
}
