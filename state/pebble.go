// Copyright (C) 2019-2025, Dytallix Labs. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import (
	"fmt"

	"github.com/cockroachdb/pebble"

	"github.com/dytallix-labs/pqchain/types"
)

// PebbleStore is the durable Store backed by a single pebble database. It
// keeps the same copy-on-write journal as MemStore for snapshot/restore
// (pebble batches model atomic commit, not mid-block revert), and only
// touches the database itself on Commit.
type PebbleStore struct {
	db *pebble.DB
	// pending buffers writes made since the last Commit; it is the
	// authoritative read surface (read-through to db on miss) so a reverted
	// snapshot never needs to touch disk.
	pending *MemStore
}

// OpenPebbleStore opens (creating if absent) a pebble database at dir.
func OpenPebbleStore(dir string) (*PebbleStore, error) {
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("state: open pebble store at %q: %w", dir, err)
	}
	return &PebbleStore{db: db, pending: NewMemStore()}, nil
}

func (p *PebbleStore) Close() error { return p.db.Close() }

func (p *PebbleStore) Get(key string) ([]byte, bool) {
	if v, ok := p.pending.Get(key); ok {
		return v, true
	}
	v, closer, err := p.db.Get([]byte(key))
	if err != nil {
		return nil, false
	}
	cp := make([]byte, len(v))
	copy(cp, v)
	_ = closer.Close()
	return cp, true
}

func (p *PebbleStore) Put(key string, value []byte) { p.pending.Put(key, value) }

func (p *PebbleStore) BalanceOf(addr types.Address, denom types.Denom) types.Balance {
	raw, ok := p.Get(balanceKey(addr, denom))
	if !ok {
		return types.ZeroBalance
	}
	return decodeBalance(raw)
}

func (p *PebbleStore) SetBalance(addr types.Address, denom types.Denom, amount types.Balance) {
	p.Put(balanceKey(addr, denom), encodeBalance(amount))
}

func (p *PebbleStore) NonceOf(addr types.Address) uint64 {
	raw, ok := p.Get(nonceKey(addr))
	if !ok {
		return 0
	}
	return decodeNonce(raw)
}

func (p *PebbleStore) IncrementNonce(addr types.Address) {
	p.Put(nonceKey(addr), encodeNonce(p.NonceOf(addr)+1))
}

func (p *PebbleStore) Snapshot() Snapshot { return p.pending.Snapshot() }
func (p *PebbleStore) Restore(s Snapshot) { p.pending.Restore(s) }

// Commit flushes the pending in-memory overlay to pebble in a single batch,
// the atomicity boundary spec.md §4.J requires between receipts and state.
func (p *PebbleStore) Commit() error {
	batch := p.db.NewBatch()
	for key, val := range p.pending.data {
		if err := batch.Set([]byte(key), val, nil); err != nil {
			return fmt.Errorf("state: pebble batch set: %w", err)
		}
	}
	if err := batch.Commit(pebble.Sync); err != nil {
		return fmt.Errorf("state: pebble batch commit: %w", err)
	}
	p.pending = NewMemStore()
	return nil
}
