// Copyright (C) 2019-2025, Dytallix Labs. All rights reserved.
// See the file LICENSE for licensing terms.

package block

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/dytallix-labs/pqchain/burn"
	"github.com/dytallix-labs/pqchain/emission"
	"github.com/dytallix-labs/pqchain/execution"
	"github.com/dytallix-labs/pqchain/gas"
	"github.com/dytallix-labs/pqchain/staking"
	"github.com/dytallix-labs/pqchain/state"
	"github.com/dytallix-labs/pqchain/types"
)

// Block is the unit of work the pipeline applies: an ordered batch of
// transactions sealed at a given height.
type Block struct {
	Height    uint64
	Timestamp int64
	Txs       []types.Transaction
}

// Result is the outcome of applying one Block.
type Result struct {
	Receipts       []types.Receipt
	EmissionEvents []types.EmissionEvent
	NewHeight      uint64
}

// Pipeline wires the transaction executor, fee-burn engine, and
// emission/staking accrual into the single ordered sequence spec.md §4.J
// requires, committing the whole batch as one atomic unit.
type Pipeline struct {
	mu sync.Mutex

	st       state.Store
	sched    gas.Schedule
	emission *emission.Engine
	staking  *staking.Accrual
	burn     *burn.Engine
	log      *zap.Logger

	halted    bool
	haltCause error
}

// NewPipeline constructs a Pipeline over the given components. All four
// must share the same underlying state.Store so a single Commit call seals
// every change a block makes.
func NewPipeline(st state.Store, sched gas.Schedule, em *emission.Engine, st2 *staking.Accrual, bn *burn.Engine, log *zap.Logger) *Pipeline {
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{st: st, sched: sched, emission: em, staking: st2, burn: bn, log: log}
}

// Halted reports whether a prior ApplyBlock call halted the pipeline, and
// the cause if so.
func (p *Pipeline) Halted() (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.halted, p.haltCause
}

func (p *Pipeline) halt(cause error) error {
	p.halted = true
	p.haltCause = cause
	p.log.Error("pipeline halted: determinism violation", zap.Error(cause))
	return cause
}

// ApplyBlock runs every tx in b.Txs through the executor in order, burns
// fees on each success, then advances emission and staking accrual for the
// new height before committing state; the receipts are returned in Result,
// not written to the store. A non-nil
// error means the pipeline is now halted; no further blocks will be
// accepted.
func (p *Pipeline) ApplyBlock(b Block) (Result, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.halted {
		return Result{}, fmt.Errorf("%w: %v", ErrHalted, p.haltCause)
	}

	receipts := make([]types.Receipt, 0, len(b.Txs))
	for i, tx := range b.Txs {
		res, err := execution.Execute(tx, p.st, b.Height, uint32(i), p.sched)
		if err != nil {
			return Result{}, p.halt(fmt.Errorf("%w: tx %d malformed past admission: %v", ErrDeterminismViolation, i, err))
		}
		receipts = append(receipts, res.Receipt)

		if res.Success {
			if _, err := p.burn.ProcessFeeBurn(res.Receipt.TxHash, b.Height, b.Timestamp, res.Receipt.Fee); err != nil {
				return Result{}, p.halt(fmt.Errorf("%w: fee burn for tx %d: %v", ErrDeterminismViolation, i, err))
			}
		}
	}

	events := p.emission.ApplyUntil(b.Height, b.Timestamp)
	for _, ev := range events {
		stakingShare := ev.Pools[types.PoolStakingRewards]
		if err := p.staking.ApplyExternalEmission(stakingShare); err != nil {
			return Result{}, p.halt(fmt.Errorf("%w: staking accrual at height %d: %v", ErrDeterminismViolation, ev.Height, err))
		}
	}

	if err := p.st.Commit(); err != nil {
		return Result{}, p.halt(fmt.Errorf("%w: %v", ErrStorageCommit, err))
	}

	return Result{Receipts: receipts, EmissionEvents: events, NewHeight: b.Height}, nil
}
