// Copyright (C) 2019-2025, Dytallix Labs. All rights reserved.
// See the file LICENSE for licensing terms.

package emission

import (
	"fmt"
	"sync"

	"github.com/dytallix-labs/pqchain/state"
	"github.com/dytallix-labs/pqchain/types"
)

// BootstrapEmission is the fixed per-block amount a Percentage schedule
// emits while total_supply is still zero, avoiding a 0*rate stall before
// any tokens exist.
var BootstrapEmission = types.NewBalance(1_000_000)

// PerBlockFloor is the minimum non-zero per-block emission a Percentage
// schedule ever rounds down to, preventing integer-division-to-zero
// stalls once the annual emission is computed but blocks-per-year exceeds
// it.
var PerBlockFloor = types.NewBalance(100)

const maxEventHistory = 100_000 // bound on in-memory event retention

// Engine is the per-block minting engine. State (pool balances, circulating
// supply, last accounted height) is persisted through a state.Store so it
// survives restarts and participates in the block pipeline's atomic
// commit; the event log is kept in memory as a bounded ring, mirroring the
// burn engine's audit trail.
type Engine struct {
	mu     sync.Mutex
	st     state.Store
	cfg    Config
	events []types.EmissionEvent
}

// NewEngine constructs an emission engine over st with the given starting
// configuration. st is expected to be the same store the block pipeline
// commits, so emission's persistent counters land in the same atomic unit
// as transaction receipts.
func NewEngine(st state.Store, cfg Config) (*Engine, error) {
	if !cfg.Breakdown.Valid() {
		return nil, ErrInvalidBreakdown
	}
	return &Engine{st: st, cfg: cfg}, nil
}

const (
	lastHeightKey  = "emission/last_height"
	circulatingKey = "emission/circulating_supply"
)

func poolKey(pool string) string { return "emission/pool/" + pool }

func (e *Engine) poolAmount(pool string) types.Balance {
	raw, ok := e.st.Get(poolKey(pool))
	if !ok {
		return types.ZeroBalance
	}
	return decodeBalance(raw)
}

func (e *Engine) setPoolAmount(pool string, amt types.Balance) {
	e.st.Put(poolKey(pool), encodeBalance(amt))
}

// LastAccountedHeight returns the last height emission has been applied
// through.
func (e *Engine) LastAccountedHeight() uint64 {
	raw, ok := e.st.Get(lastHeightKey)
	if !ok {
		return 0
	}
	return decodeUint64(raw)
}

func (e *Engine) setLastHeight(h uint64) {
	e.st.Put(lastHeightKey, encodeUint64(h))
}

// CirculatingSupply returns the cumulative amount emitted so far.
func (e *Engine) CirculatingSupply() types.Balance {
	raw, ok := e.st.Get(circulatingKey)
	if !ok {
		return types.ZeroBalance
	}
	return decodeBalance(raw)
}

func (e *Engine) setCirculatingSupply(v types.Balance) {
	e.st.Put(circulatingKey, encodeBalance(v))
}

// calculatePerBlockEmission implements the schedule-variant dispatch of
// spec.md §4.G.
func (e *Engine) calculatePerBlockEmission(height uint64) types.Balance {
	switch e.cfg.Schedule.Kind {
	case ScheduleStatic:
		return e.cfg.Schedule.StaticPerBlock

	case SchedulePhased:
		for _, phase := range e.cfg.Schedule.Phases {
			if height < phase.StartHeight {
				continue
			}
			if phase.EndHeight != nil && height > *phase.EndHeight {
				continue
			}
			return phase.PerBlockAmount
		}
		return types.ZeroBalance

	case SchedulePercentage:
		totalSupply := e.cfg.InitialSupply.SaturatingAdd(e.CirculatingSupply())
		if totalSupply.IsZero() {
			return BootstrapEmission
		}
		annual, err := totalSupply.MulDivFloor(uint64(e.cfg.Schedule.AnnualInflationRateBps), 10_000)
		if err != nil {
			return types.ZeroBalance
		}
		if annual.IsZero() {
			return types.ZeroBalance
		}
		perBlock, err := annual.MulDivFloor(1, BlocksPerYear)
		if err != nil {
			return types.ZeroBalance
		}
		if perBlock.LessThan(PerBlockFloor) {
			return PerBlockFloor
		}
		return perBlock

	default:
		return types.ZeroBalance
	}
}

// calculatePoolDistributions splits total by the configured breakdown,
// with any rounding remainder going to bridge_operations so no emitted
// unit is lost.
func (e *Engine) calculatePoolDistributions(total types.Balance) map[string]types.Balance {
	b := e.cfg.Breakdown
	blockRewards, _ := total.MulDivFloor(uint64(b.BlockRewards), 100)
	stakingRewards, _ := total.MulDivFloor(uint64(b.StakingRewards), 100)
	aiIncentives, _ := total.MulDivFloor(uint64(b.AIModuleIncentives), 100)

	allocated := blockRewards.SaturatingAdd(stakingRewards).SaturatingAdd(aiIncentives)
	bridgeOps, err := total.Sub(allocated)
	if err != nil {
		bridgeOps = types.ZeroBalance
	}

	return map[string]types.Balance{
		types.PoolBlockRewards:       blockRewards,
		types.PoolStakingRewards:     stakingRewards,
		types.PoolAIModuleIncentives: aiIncentives,
		types.PoolBridgeOperations:   bridgeOps,
	}
}

// ApplyUntil advances emission from the last accounted height through
// targetHeight, inclusive, appending one EmissionEvent per block. It is
// idempotent: calling it again with a height already accounted for is a
// no-op.
func (e *Engine) ApplyUntil(targetHeight uint64, timestamp int64) []types.EmissionEvent {
	e.mu.Lock()
	defer e.mu.Unlock()

	var applied []types.EmissionEvent
	h := e.LastAccountedHeight()
	for h < targetHeight {
		h++
		total := e.calculatePerBlockEmission(h)
		dist := e.calculatePoolDistributions(total)
		for _, pool := range types.PoolNames {
			amt := dist[pool]
			e.setPoolAmount(pool, e.poolAmount(pool).SaturatingAdd(amt))
		}
		newSupply := e.CirculatingSupply().SaturatingAdd(total)
		e.setCirculatingSupply(newSupply)

		event := types.EmissionEvent{
			Height:            h,
			Timestamp:         timestamp,
			TotalEmitted:      total,
			Pools:             dist,
			CirculatingSupply: newSupply,
		}
		e.appendEvent(event)
		applied = append(applied, event)
	}
	e.setLastHeight(h)
	return applied
}

func (e *Engine) appendEvent(ev types.EmissionEvent) {
	e.events = append(e.events, ev)
	if len(e.events) > maxEventHistory {
		e.events = e.events[len(e.events)-maxEventHistory:]
	}
}

// Claim deducts amount from pool and credits recipient's DRT balance,
// failing with ErrInsufficientPool if the pool cannot cover it.
func (e *Engine) Claim(pool string, amount types.Balance, recipient types.Address) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	current := e.poolAmount(pool)
	if current.LessThan(amount) {
		return fmt.Errorf("%w: pool %s has %s, requested %s", ErrInsufficientPool, pool, current, amount)
	}
	remaining, err := current.Sub(amount)
	if err != nil {
		return err
	}
	e.setPoolAmount(pool, remaining)

	credited, err := e.st.BalanceOf(recipient, types.DenomDRT).Add(amount)
	if err != nil {
		return err
	}
	e.st.SetBalance(recipient, types.DenomDRT, credited)
	return nil
}

// PoolAmount returns the current balance of a named pool.
func (e *Engine) PoolAmount(pool string) types.Balance { return e.poolAmount(pool) }

// SupplyInfo is the supplemented accessor from the original implementation
// (emission.rs's get_supply_info).
type SupplyInfo struct {
	InitialSupply     types.Balance
	CirculatingSupply types.Balance
	TotalSupply       types.Balance
	LastUpdatedHeight uint64
}

// GetSupplyInfo returns a snapshot of the engine's current supply figures.
func (e *Engine) GetSupplyInfo() SupplyInfo {
	circ := e.CirculatingSupply()
	return SupplyInfo{
		InitialSupply:     e.cfg.InitialSupply,
		CirculatingSupply: circ,
		TotalSupply:       e.cfg.InitialSupply.SaturatingAdd(circ),
		LastUpdatedHeight: e.LastAccountedHeight(),
	}
}

// GetRecentEvents returns up to limit of the most recently applied
// emission events, oldest first.
func (e *Engine) GetRecentEvents(limit int) []types.EmissionEvent {
	e.mu.Lock()
	defer e.mu.Unlock()
	if limit <= 0 || limit >= len(e.events) {
		out := make([]types.EmissionEvent, len(e.events))
		copy(out, e.events)
		return out
	}
	out := make([]types.EmissionEvent, limit)
	copy(out, e.events[len(e.events)-limit:])
	return out
}

// UpdateConfig replaces the engine's configuration. Callers (governance
// execution paths) must ensure the new breakdown sums to 100; this check is
// re-verified here rather than trusted.
func (e *Engine) UpdateConfig(cfg Config) error {
	if !cfg.Breakdown.Valid() {
		return ErrInvalidBreakdown
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cfg = cfg
	return nil
}
