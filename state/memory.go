// Copyright (C) 2019-2025, Dytallix Labs. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import "github.com/dytallix-labs/pqchain/types"

// MemStore is the in-memory Store implementation used by tests and by any
// deployment that does not need cross-restart persistence. It is the
// reference implementation the executor's revert semantics are specified
// against.
type MemStore struct {
	data map[string][]byte
	// journal is a stack of snapshots taken but not yet restored or
	// discarded. Each entry records, per key, the value that key held at
	// the moment the snapshot was taken (nil meaning "absent"). A later
	// write to a key already recorded in an outstanding snapshot does not
	// overwrite the pre-image, so Restore always rewinds to exactly the
	// state at Snapshot time regardless of how many writes happened after.
	journal []journalFrame
	nextGen uint64
}

type journalFrame struct {
	gen      uint64
	preimage map[string][]byte
	existed  map[string]bool
}

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{data: make(map[string][]byte)}
}

func (m *MemStore) recordPreimage(key string) {
	if len(m.journal) == 0 {
		return
	}
	top := &m.journal[len(m.journal)-1]
	if _, seen := top.existed[key]; seen {
		return
	}
	val, ok := m.data[key]
	top.existed[key] = ok
	if ok {
		cp := make([]byte, len(val))
		copy(cp, val)
		top.preimage[key] = cp
	}
}

func (m *MemStore) Get(key string) ([]byte, bool) {
	v, ok := m.data[key]
	if !ok {
		return nil, false
	}
	cp := make([]byte, len(v))
	copy(cp, v)
	return cp, true
}

func (m *MemStore) Put(key string, value []byte) {
	m.recordPreimage(key)
	cp := make([]byte, len(value))
	copy(cp, value)
	m.data[key] = cp
}

func (m *MemStore) delete(key string) {
	m.recordPreimage(key)
	delete(m.data, key)
}

func (m *MemStore) BalanceOf(addr types.Address, denom types.Denom) types.Balance {
	raw, ok := m.Get(balanceKey(addr, denom))
	if !ok {
		return types.ZeroBalance
	}
	return decodeBalance(raw)
}

func (m *MemStore) SetBalance(addr types.Address, denom types.Denom, amount types.Balance) {
	if amount.IsZero() {
		m.delete(balanceKey(addr, denom))
		return
	}
	m.Put(balanceKey(addr, denom), encodeBalance(amount))
}

func (m *MemStore) NonceOf(addr types.Address) uint64 {
	raw, ok := m.Get(nonceKey(addr))
	if !ok {
		return 0
	}
	return decodeNonce(raw)
}

func (m *MemStore) IncrementNonce(addr types.Address) {
	m.Put(nonceKey(addr), encodeNonce(m.NonceOf(addr)+1))
}

// Snapshot opens a new journal frame. Every key written after this call
// (and not already written since an even older still-open snapshot) has its
// pre-snapshot value captured, so Restore(snap) can undo exactly those
// writes in O(|changes since snap|).
func (m *MemStore) Snapshot() Snapshot {
	m.nextGen++
	frame := journalFrame{
		gen:      m.nextGen,
		preimage: make(map[string][]byte),
		existed:  make(map[string]bool),
	}
	m.journal = append(m.journal, frame)
	return Snapshot{gen: frame.gen}
}

// Restore rewinds the store to the state it had when snap was taken,
// discarding all writes (and any nested snapshots) made since. Restoring a
// snapshot that is not the most recently taken also discards everything
// taken after it, matching stack discipline: snapshots are opened and
// restored/discarded in LIFO order by the executor and block pipeline.
func (m *MemStore) Restore(snap Snapshot) {
	idx := -1
	for i := len(m.journal) - 1; i >= 0; i-- {
		if m.journal[i].gen == snap.gen {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}
	for i := len(m.journal) - 1; i >= idx; i-- {
		frame := m.journal[i]
		for key, existed := range frame.existed {
			if existed {
				m.data[key] = frame.preimage[key]
			} else {
				delete(m.data, key)
			}
		}
	}
	m.journal = m.journal[:idx]
}

// discardSnapshot drops a snapshot without restoring it, folding its
// pre-images into the next-older frame so an ancestor Restore still works.
// Used when a step succeeds and its intermediate snapshot is no longer
// needed.
func (m *MemStore) discardSnapshot(snap Snapshot) {
	idx := -1
	for i := len(m.journal) - 1; i >= 0; i-- {
		if m.journal[i].gen == snap.gen {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}
	frame := m.journal[idx]
	m.journal = append(m.journal[:idx], m.journal[idx+1:]...)
	if idx > 0 {
		parent := &m.journal[idx-1]
		for key, existed := range frame.existed {
			if _, seen := parent.existed[key]; seen {
				continue
			}
			parent.existed[key] = existed
			if existed {
				parent.preimage[key] = frame.preimage[key]
			}
		}
	}
}

// DiscardSnapshot exposes discardSnapshot for callers that keep a step's
// changes rather than reverting them. The executor does not call it; the
// frames it leaves open are dropped by Commit.
func (m *MemStore) DiscardSnapshot(snap Snapshot) { m.discardSnapshot(snap) }

// Commit drops every open snapshot frame; writes are already visible
// immediately, so nothing else happens. It exists to satisfy Store for
// callers that treat commit as the atomicity boundary against a durable
// backend.
func (m *MemStore) Commit() error {
	m.journal = m.journal[:0]
	return nil
}
