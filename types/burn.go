// Copyright (C) 2019-2025, Dytallix Labs. All rights reserved.
// See the file LICENSE for licensing terms.

package types

// MaxBurnEventHistory bounds the in-memory audit ring buffer kept by the
// burn engine (spec.md §4.I "Supplemented").
const MaxBurnEventHistory = 1000

// BurnRecord is a single fee-burn audit entry.
type BurnRecord struct {
	TxHash       string  `json:"tx_hash"`
	Height       uint64  `json:"height"`
	Timestamp    int64   `json:"timestamp"`
	FeePaid      Balance `json:"fee_paid"`
	BurnAmount   Balance `json:"burn_amount"`
	BurnToken    Denom   `json:"burn_token"`
	RunningTotal Balance `json:"running_total"`
}

// BurnStats is the aggregate view returned by the burn engine's
// GetBurnStats accessor (supplemented from fee_burn.rs).
type BurnStats struct {
	TotalBurned Balance `json:"total_burned"`
	EventCount  uint64  `json:"event_count"`
	BurnToken   Denom   `json:"burn_token"`
	BurnRateBps uint32  `json:"burn_rate_bps"`
	Enabled     bool    `json:"enabled"`
}
