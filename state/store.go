// Copyright (C) 2019-2025, Dytallix Labs. All rights reserved.
// See the file LICENSE for licensing terms.

// Package state implements the deterministic key-value store of spec.md
// §4.C: balance/nonce accessors layered over a generic byte-oriented
// get/put surface, copy-on-write snapshots, and O(|changes|) restore. The
// store is not thread-safe; callers (the block package) serialize access.
package state

import (
	"encoding/json"
	"fmt"

	"github.com/dytallix-labs/pqchain/types"
)

// Store is the full surface the executor, mempool and emission/staking
// engines operate against (spec.md §4.C).
type Store interface {
	BalanceOf(addr types.Address, denom types.Denom) types.Balance
	SetBalance(addr types.Address, denom types.Denom, amount types.Balance)
	NonceOf(addr types.Address) uint64
	IncrementNonce(addr types.Address)

	Get(key string) ([]byte, bool)
	Put(key string, value []byte)

	Snapshot() Snapshot
	Restore(snap Snapshot)
	Commit() error
}

// Snapshot is an opaque copy-on-write marker produced by Store.Snapshot.
// Restoring it rewinds the store to exactly the state at the time it was
// taken; the cost of Restore is proportional to the number of keys changed
// since the snapshot, not to the size of the store.
type Snapshot struct {
	gen   uint64
	dirty map[string][]byte
}

func balanceKey(addr types.Address, denom types.Denom) string {
	return fmt.Sprintf("balance/%s/%s", addr, denom)
}

func nonceKey(addr types.Address) string {
	return fmt.Sprintf("nonce/%s", addr)
}

// AccountOf reconstructs a types.AccountState for addr from its raw keys.
// It is a convenience built on the generic interface, not part of Store
// itself, since most callers only need one denom at a time.
func AccountOf(s Store, addr types.Address, denoms []types.Denom) types.AccountState {
	out := types.AccountState{Nonce: s.NonceOf(addr), Balances: make(map[types.Denom]types.Balance, len(denoms))}
	for _, d := range denoms {
		out.Balances[d] = s.BalanceOf(addr, d)
	}
	return out
}

func encodeNonce(n uint64) []byte {
	b, _ := json.Marshal(n)
	return b
}

func decodeNonce(b []byte) uint64 {
	var n uint64
	_ = json.Unmarshal(b, &n)
	return n
}

func encodeBalance(b types.Balance) []byte {
	raw, _ := json.Marshal(b)
	return raw
}

func decodeBalance(raw []byte) types.Balance {
	var b types.Balance
	if err := json.Unmarshal(raw, &b); err != nil {
		return types.ZeroBalance
	}
	return b
}
