// Copyright (C) 2019-2025, Dytallix Labs. All rights reserved.
// See the file LICENSE for licensing terms.

package mempool

import (
	"context"
	"fmt"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru"

	"github.com/dytallix-labs/pqchain/codec"
	"github.com/dytallix-labs/pqchain/crypto/pqc"
	"github.com/dytallix-labs/pqchain/gas"
	"github.com/dytallix-labs/pqchain/state"
	"github.com/dytallix-labs/pqchain/types"
)

// Config governs admission policy and capacity.
type Config struct {
	ChainID          string
	MaxTxs           int
	MaxBytes         int
	BaseMinGasPrice  uint64
	AdmissionTimeout time.Duration
	GossipCacheSize  int
}

// DefaultAdmissionTimeout is the wall-clock deadline spec.md §5 assigns to
// admission: signature verification is aborted and admission discarded
// without side effects if it is exceeded.
const DefaultAdmissionTimeout = 30 * time.Second

// Pool is the single-writer priced mempool. Readers call Pending to obtain
// a cloned, ordered snapshot; nothing here is safe to mutate concurrently
// with Admit, by design (spec.md §5: "mempool is guarded by a single
// writer lock; readers get a cloned snapshot").
type Pool struct {
	mu      sync.Mutex
	cfg     Config
	metrics *Metrics

	entries  map[string]*types.MempoolEntry
	bySender map[types.Address][]string // tx hashes, nonce ascending

	gossipSeen *lru.Cache
}

// New constructs an empty pool. metrics may be nil, in which case a
// no-op metrics set is used.
func New(cfg Config, metrics *Metrics) (*Pool, error) {
	if cfg.AdmissionTimeout <= 0 {
		cfg.AdmissionTimeout = DefaultAdmissionTimeout
	}
	if cfg.GossipCacheSize <= 0 {
		cfg.GossipCacheSize = 4096
	}
	if metrics == nil {
		metrics = noopMetrics()
	}
	cache, err := lru.New(cfg.GossipCacheSize)
	if err != nil {
		return nil, fmt.Errorf("mempool: gossip cache: %w", err)
	}
	return &Pool{
		cfg:        cfg,
		metrics:    metrics,
		entries:    make(map[string]*types.MempoolEntry),
		bySender:   make(map[types.Address][]string),
		gossipSeen: cache,
	}, nil
}

// SeenBefore reports whether txHash has already been gossiped, recording it
// if not. Callers use this to suppress re-broadcast of duplicates.
func (p *Pool) SeenBefore(txHash string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.gossipSeen.Contains(txHash) {
		p.metrics.GossipDuplicate.Inc()
		return true
	}
	p.gossipSeen.Add(txHash, struct{}{})
	return false
}

// Admit runs the full admission pipeline of spec.md §4.F against stx. The
// call is bounded by cfg.AdmissionTimeout on top of ctx's own deadline. The
// context is checked on entry and during signature verification (the only
// step that could meaningfully be slow); later steps do not check it.
func (p *Pool) Admit(ctx context.Context, stx types.SignedTransaction, st state.Store, sched gas.Schedule) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	ctx, cancel := context.WithTimeout(ctx, p.cfg.AdmissionTimeout)
	defer cancel()

	// 1. Signature.
	if err := verifyWithDeadline(ctx, stx); err != nil {
		p.reject("invalid_signature")
		return fmt.Errorf("%w: %s", ErrInvalidSignature, err)
	}

	// 2. Chain id.
	if stx.Tx.ChainID != p.cfg.ChainID {
		p.reject("invalid_chain_id")
		return fmt.Errorf("%w: %s", ErrInvalidChainID, stx.Tx.ChainID)
	}

	// 3. Schema/denom/amount/fee.
	if err := stx.Tx.Validate(); err != nil {
		p.reject("invalid_schema")
		return fmt.Errorf("%w: %s", ErrInvalidSchema, err)
	}
	gasLimit, gasPrice, err := stx.Tx.GasParams()
	if err != nil {
		p.reject("invalid_schema")
		return fmt.Errorf("%w: %s", ErrInvalidSchema, err)
	}
	upfrontFee, err := gas.UpfrontFee(gasLimit, gasPrice)
	if err != nil {
		p.reject("fee_overflow")
		return err
	}
	if upfrontFee.IsZero() {
		p.reject("invalid_schema")
		return fmt.Errorf("%w: zero fee", ErrInvalidSchema)
	}

	from, err := stx.Tx.Sender()
	if err != nil {
		p.reject("invalid_schema")
		return fmt.Errorf("%w: %s", ErrInvalidSchema, err)
	}

	txHash, err := txHashHex(stx.Tx)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if _, exists := p.entries[txHash]; exists {
		p.metrics.RejectedByReason.WithLabelValues("duplicate_transaction").Inc()
		return ErrDuplicateTransaction
	}

	pending := p.bySender[from]
	nonceNext := st.NonceOf(from)
	expected := nonceNext + uint64(len(pending))
	switch {
	case stx.Tx.Nonce < expected:
		p.metrics.RejectedByReason.WithLabelValues("duplicate_transaction").Inc()
		return fmt.Errorf("%w: nonce %d < expected %d", ErrDuplicateTransaction, stx.Tx.Nonce, expected)
	case stx.Tx.Nonce > expected:
		p.metrics.RejectedByReason.WithLabelValues("nonce_gap").Inc()
		return fmt.Errorf("%w: nonce %d > expected %d", ErrNonceGap, stx.Tx.Nonce, expected)
	}

	// 5. Sufficient funds, counting prior pending txs from the same sender.
	required := upfrontFee
	for _, hash := range pending {
		e := p.entries[hash]
		fee, ferr := gas.UpfrontFee(mustGasParams(e.Tx.Tx))
		if ferr == nil {
			required, _ = required.Add(fee)
		}
	}
	available := st.BalanceOf(from, types.DenomDGT)
	if available.LessThan(required) {
		p.metrics.RejectedByReason.WithLabelValues("insufficient_funds").Inc()
		return fmt.Errorf("%w: required %s, available %s", ErrInsufficientFunds, required, available)
	}

	// 6. Gas price floor.
	floor := p.gasPriceFloor()
	if gasPrice < floor {
		p.metrics.RejectedByReason.WithLabelValues("gas_price_too_low").Inc()
		return fmt.Errorf("%w: %d < floor %d", ErrGasPriceTooLow, gasPrice, floor)
	}

	// 7. Capacity.
	size := wireSize(stx)
	if p.isFull(size) {
		evicted, ok := p.lowestPriority()
		if !ok || gasPrice <= evicted.EffectiveGasPrice {
			p.metrics.RejectedByReason.WithLabelValues("mempool_full").Inc()
			return ErrMempoolFull
		}
		p.removeLocked(evicted.TxHash)
		p.metrics.EvictedByReason.WithLabelValues(EvictionReasonCapacity).Inc()
	}

	entry := &types.MempoolEntry{
		Tx:                stx,
		TxHash:            txHash,
		AdmissionTime:     time.Now(),
		ByteSize:          size,
		EffectiveGasPrice: gasPrice,
	}
	p.entries[txHash] = entry
	p.bySender[from] = append(p.bySender[from], txHash)
	p.metrics.Admitted.Inc()
	return nil
}

func (p *Pool) reject(reason string) {
	p.mu.Lock()
	p.metrics.RejectedByReason.WithLabelValues(reason).Inc()
	p.mu.Unlock()
}

func (p *Pool) removeLocked(txHash string) {
	e, ok := p.entries[txHash]
	if !ok {
		return
	}
	delete(p.entries, txHash)
	from, err := e.Tx.Tx.Sender()
	if err != nil {
		return
	}
	list := p.bySender[from]
	for i, h := range list {
		if h == txHash {
			p.bySender[from] = append(list[:i], list[i+1:]...)
			break
		}
	}
	if len(p.bySender[from]) == 0 {
		delete(p.bySender, from)
	}
}

func (p *Pool) isFull(candidateSize int) bool {
	if p.cfg.MaxTxs > 0 && len(p.entries) >= p.cfg.MaxTxs {
		return true
	}
	if p.cfg.MaxBytes > 0 {
		total := candidateSize
		for _, e := range p.entries {
			total += e.ByteSize
		}
		if total > p.cfg.MaxBytes {
			return true
		}
	}
	return false
}

func (p *Pool) lowestPriority() (*types.MempoolEntry, bool) {
	var lowest *types.MempoolEntry
	for _, e := range p.entries {
		if lowest == nil || lessPriority(e, lowest) {
			lowest = e
		}
	}
	return lowest, lowest != nil
}

// gasPriceFloor is max(base_min_gas_price, eviction_threshold); the
// eviction threshold is the lowest resident's price once the pool is at
// capacity, otherwise it contributes nothing.
func (p *Pool) gasPriceFloor() uint64 {
	floor := p.cfg.BaseMinGasPrice
	if p.cfg.MaxTxs > 0 && len(p.entries) >= p.cfg.MaxTxs {
		if lowest, ok := p.lowestPriority(); ok && lowest.EffectiveGasPrice > floor {
			floor = lowest.EffectiveGasPrice
		}
	}
	return floor
}

// lessPriority reports whether a has strictly lower block-inclusion
// priority than b: lower effective gas price first, then later admission
// time, then lexicographically larger tx hash loses ties deterministically.
func lessPriority(a, b *types.MempoolEntry) bool {
	if a.EffectiveGasPrice != b.EffectiveGasPrice {
		return a.EffectiveGasPrice < b.EffectiveGasPrice
	}
	if !a.AdmissionTime.Equal(b.AdmissionTime) {
		return a.AdmissionTime.After(b.AdmissionTime)
	}
	return a.TxHash > b.TxHash
}

// Pending returns up to limit entries ordered for block inclusion:
// per-sender FIFO over nonce, global priority by effective gas price
// descending, ties by admission timestamp then tx hash (spec.md §4.F).
// It is a cloned snapshot safe to read without holding the pool's lock.
func (p *Pool) Pending(limit int) []types.MempoolEntry {
	p.mu.Lock()
	defer p.mu.Unlock()

	heads := make([]types.MempoolEntry, 0, len(p.bySender))
	cursor := make(map[types.Address]int, len(p.bySender))
	for sender := range p.bySender {
		cursor[sender] = 0
	}

	out := make([]types.MempoolEntry, 0, len(p.entries))
	for len(out) < len(p.entries) {
		heads = heads[:0]
		for sender, list := range p.bySender {
			i := cursor[sender]
			if i < len(list) {
				heads = append(heads, *p.entries[list[i]])
			}
		}
		if len(heads) == 0 {
			break
		}
		best := pickHighestPriority(heads)
		out = append(out, best)
		fromAddr, _ := best.Tx.Tx.Sender()
		cursor[fromAddr]++
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out
}

func pickHighestPriority(heads []types.MempoolEntry) types.MempoolEntry {
	best := heads[0]
	for _, h := range heads[1:] {
		hh, bb := h, best
		if lessPriority(&bb, &hh) {
			best = h
		}
	}
	return best
}

// Remove deletes txHash from the pool, e.g. after it has been included in a
// block. It is a no-op if the hash is not present.
func (p *Pool) Remove(txHash string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.removeLocked(txHash)
}

// Len returns the current resident count.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.entries)
}

func verifyWithDeadline(ctx context.Context, stx types.SignedTransaction) error {
	done := make(chan error, 1)
	go func() { done <- pqc.VerifyEnvelope(stx) }()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func txHashHex(tx types.Transaction) (string, error) {
	d, err := codec.TxDigest(tx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", d), nil
}

func wireSize(stx types.SignedTransaction) int {
	b, err := codec.CanonicalJSON(stx)
	if err != nil {
		return 0
	}
	return len(b)
}

func mustGasParams(tx types.Transaction) (uint64, uint64) {
	l, p, err := tx.GasParams()
	if err != nil {
		return 0, 0
	}
	return l, p
}
