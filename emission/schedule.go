// Copyright (C) 2019-2025, Dytallix Labs. All rights reserved.
// See the file LICENSE for licensing terms.

package emission

import "github.com/dytallix-labs/pqchain/types"

// BlocksPerYear is the block-time assumption the Percentage schedule
// divides annual inflation by (~6 second blocks).
const BlocksPerYear = 5_256_000

// ScheduleKind tags the active emission mode.
type ScheduleKind string

const (
	ScheduleStatic     ScheduleKind = "static"
	SchedulePhased     ScheduleKind = "phased"
	SchedulePercentage ScheduleKind = "percentage"
)

// Phase is one entry of a Phased schedule: an ordered, non-overlapping
// height range emitting a fixed per-block amount. EndHeight of nil means
// unlimited.
type Phase struct {
	StartHeight    uint64
	EndHeight      *uint64
	PerBlockAmount types.Balance
}

// Schedule is the configuration variant driving per-block emission.
type Schedule struct {
	Kind                   ScheduleKind
	StaticPerBlock         types.Balance
	Phases                 []Phase
	AnnualInflationRateBps uint16 // basis points, e.g. 500 = 5%
}

// Breakdown is the fixed pool share set; shares must sum to 100.
type Breakdown struct {
	BlockRewards       uint8
	StakingRewards     uint8
	AIModuleIncentives uint8
	BridgeOperations   uint8
}

// Valid reports whether the breakdown's shares sum to exactly 100.
func (b Breakdown) Valid() bool {
	sum := int(b.BlockRewards) + int(b.StakingRewards) + int(b.AIModuleIncentives) + int(b.BridgeOperations)
	return sum == 100
}

// DefaultBreakdown mirrors the original implementation's default split.
var DefaultBreakdown = Breakdown{
	BlockRewards:       60,
	StakingRewards:     25,
	AIModuleIncentives: 10,
	BridgeOperations:   5,
}

// Config bundles the emission schedule, starting supply, and pool split;
// this is the governance-mutable surface (UpdateConfig).
type Config struct {
	Schedule      Schedule
	InitialSupply types.Balance
	Breakdown     Breakdown
}
