// Copyright (C) 2019-2025, Dytallix Labs. All rights reserved.
// See the file LICENSE for licensing terms.

package burn

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/dytallix-labs/pqchain/state"
	"github.com/dytallix-labs/pqchain/types"
)

func totalBurnedKey(denom types.Denom) string { return "burn/total/" + string(denom) }

// Engine applies the configured burn share to each successful transaction's
// fee, as the block pipeline drives it once per transaction. Persistent
// counters (total burned per denom) live in the shared state.Store so they
// commit atomically with everything else in the block; the audit ring is
// kept in memory, mirroring the emission engine's event log.
type Engine struct {
	mu     sync.Mutex
	st     state.Store
	cfg    Config
	events []types.BurnRecord
}

// NewEngine constructs a burn engine over st with the given starting
// configuration.
func NewEngine(st state.Store, cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Engine{st: st, cfg: cfg}, nil
}

func (e *Engine) totalBurned(denom types.Denom) types.Balance {
	raw, ok := e.st.Get(totalBurnedKey(denom))
	if !ok {
		return types.ZeroBalance
	}
	var b types.Balance
	if err := json.Unmarshal(raw, &b); err != nil {
		return types.ZeroBalance
	}
	return b
}

func (e *Engine) setTotalBurned(denom types.Denom, amt types.Balance) {
	raw, _ := json.Marshal(amt)
	e.st.Put(totalBurnedKey(denom), raw)
}

// ProcessFeeBurn applies the engine's configured burn rate to feePaid for a
// single transaction. It returns (nil, nil) whenever no burn occurs:
// burning disabled, fee below the dust threshold, or a zero rounded burn
// amount. It returns a non-nil error only when the fee collector account
// cannot cover the computed burn amount in burn_token, which indicates a
// governance misconfiguration (burn_token not actually backed by the fees
// being collected).
func (e *Engine) ProcessFeeBurn(txHash string, height uint64, timestamp int64, feePaid types.Balance) (*types.BurnRecord, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.cfg.Enabled {
		return nil, nil
	}
	if feePaid.LessThan(e.cfg.MinBurnThreshold) {
		return nil, nil
	}

	burnAmount, err := feePaid.MulDivFloor(uint64(e.cfg.BurnRateBps), 10_000)
	if err != nil {
		return nil, err
	}
	if burnAmount.IsZero() {
		return nil, nil
	}

	collectorBalance := e.st.BalanceOf(types.FeeCollectorAddress, e.cfg.BurnToken)
	newCollectorBalance, err := collectorBalance.Sub(burnAmount)
	if err != nil {
		return nil, fmt.Errorf("burn: fee collector cannot cover burn of %s %s: %w", burnAmount, e.cfg.BurnToken, err)
	}
	e.st.SetBalance(types.FeeCollectorAddress, e.cfg.BurnToken, newCollectorBalance)

	runningTotal := e.totalBurned(e.cfg.BurnToken).SaturatingAdd(burnAmount)
	e.setTotalBurned(e.cfg.BurnToken, runningTotal)

	record := types.BurnRecord{
		TxHash:       txHash,
		Height:       height,
		Timestamp:    timestamp,
		FeePaid:      feePaid,
		BurnAmount:   burnAmount,
		BurnToken:    e.cfg.BurnToken,
		RunningTotal: runningTotal,
	}
	e.events = append(e.events, record)
	if len(e.events) > types.MaxBurnEventHistory {
		e.events = e.events[len(e.events)-types.MaxBurnEventHistory:]
	}
	return &record, nil
}

// UpdateConfig validates and atomically swaps the engine's configuration.
func (e *Engine) UpdateConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cfg = cfg
	return nil
}

// GetBurnStats returns the aggregate view for the currently configured
// burn token.
func (e *Engine) GetBurnStats() types.BurnStats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return types.BurnStats{
		TotalBurned: e.totalBurned(e.cfg.BurnToken),
		EventCount:  uint64(len(e.events)),
		BurnToken:   e.cfg.BurnToken,
		BurnRateBps: e.cfg.BurnRateBps,
		Enabled:     e.cfg.Enabled,
	}
}

// GetRecentEvents returns up to limit of the most recent burn records,
// oldest first. limit<=0 returns the full retained history.
func (e *Engine) GetRecentEvents(limit int) []types.BurnRecord {
	e.mu.Lock()
	defer e.mu.Unlock()
	if limit <= 0 || limit >= len(e.events) {
		out := make([]types.BurnRecord, len(e.events))
		copy(out, e.events)
		return out
	}
	out := make([]types.BurnRecord, limit)
	copy(out, e.events[len(e.events)-limit:])
	return out
}
