// Copyright (C) 2019-2025, Dytallix Labs. All rights reserved.
// See the file LICENSE for licensing terms.

// Package genesis loads the initial chain state a node is bootstrapped
// with: account allocations and the emission/burn/mempool configuration
// that governs it from genesis height onward. genesis/config.go unmarshals
// its allocation config from YAML the way the node's own runtime config
// does, adapted to this chain's account and denom model.
package genesis

import (
	"fmt"

	"github.com/dytallix-labs/pqchain/burn"
	"github.com/dytallix-labs/pqchain/emission"
	"github.com/dytallix-labs/pqchain/mempool"
	"github.com/dytallix-labs/pqchain/state"
	"github.com/dytallix-labs/pqchain/types"
)

// Allocation credits one address with a starting balance of one denom.
type Allocation struct {
	Address types.Address `yaml:"address"`
	Denom   types.Denom   `yaml:"denom"`
	Amount  uint64        `yaml:"amount"`
}

// Config is the full genesis document: the chain identity, starting
// balances, and the component configs a fresh node boots with.
type Config struct {
	ChainID     string       `yaml:"chain_id"`
	Allocations []Allocation `yaml:"allocations"`

	Emission emissionYAML `yaml:"emission"`
	Burn     burnYAML     `yaml:"burn"`
	Mempool  mempoolYAML  `yaml:"mempool"`
}

type emissionYAML struct {
	ScheduleKind           string `yaml:"schedule_kind"`
	StaticPerBlock         uint64 `yaml:"static_per_block"`
	AnnualInflationRateBps uint16 `yaml:"annual_inflation_rate_bps"`
	InitialSupply          uint64 `yaml:"initial_supply"`
	Breakdown              struct {
		BlockRewards       uint8 `yaml:"block_rewards"`
		StakingRewards     uint8 `yaml:"staking_rewards"`
		AIModuleIncentives uint8 `yaml:"ai_module_incentives"`
		BridgeOperations   uint8 `yaml:"bridge_operations"`
	} `yaml:"breakdown"`
}

type burnYAML struct {
	Enabled          bool   `yaml:"enabled"`
	BurnRateBps      uint32 `yaml:"burn_rate_bps"`
	MinBurnThreshold uint64 `yaml:"min_burn_threshold"`
	BurnToken        string `yaml:"burn_token"`
}

type mempoolYAML struct {
	MaxTxs          int    `yaml:"max_txs"`
	MaxBytes        int    `yaml:"max_bytes"`
	BaseMinGasPrice uint64 `yaml:"base_min_gas_price"`
}

// Validate checks structural invariants that must hold before the
// document is applied: a non-empty chain id, no duplicate
// (address, denom) allocations, a valid emission breakdown and schedule
// kind, and a valid burn token.
func (c Config) Validate() error {
	if c.ChainID == "" {
		return fmt.Errorf("genesis: chain_id must not be empty")
	}

	seen := make(map[types.Address]map[types.Denom]struct{})
	for i, a := range c.Allocations {
		if _, err := types.NewAddress(string(a.Address)); err != nil {
			return fmt.Errorf("genesis: allocation %d: %w", i, err)
		}
		if !a.Denom.Valid() {
			return fmt.Errorf("genesis: allocation %d: %w: %q", i, types.ErrUnknownDenom, a.Denom)
		}
		if seen[a.Address] == nil {
			seen[a.Address] = make(map[types.Denom]struct{})
		}
		if _, dup := seen[a.Address][a.Denom]; dup {
			return fmt.Errorf("genesis: duplicate allocation for %s/%s", a.Address, a.Denom)
		}
		seen[a.Address][a.Denom] = struct{}{}
	}

	switch emission.ScheduleKind(c.Emission.ScheduleKind) {
	case emission.ScheduleStatic, emission.SchedulePhased, emission.SchedulePercentage:
	default:
		return fmt.Errorf("genesis: unrecognized emission schedule kind %q", c.Emission.ScheduleKind)
	}

	breakdown := c.emissionBreakdown()
	if !breakdown.Valid() {
		return fmt.Errorf("genesis: %w", emission.ErrInvalidBreakdown)
	}

	if err := c.BurnConfig().Validate(); err != nil {
		return fmt.Errorf("genesis: %w", err)
	}

	return nil
}

func (c Config) emissionBreakdown() emission.Breakdown {
	return emission.Breakdown{
		BlockRewards:       c.Emission.Breakdown.BlockRewards,
		StakingRewards:     c.Emission.Breakdown.StakingRewards,
		AIModuleIncentives: c.Emission.Breakdown.AIModuleIncentives,
		BridgeOperations:   c.Emission.Breakdown.BridgeOperations,
	}
}

// EmissionConfig converts the document's emission section into
// emission.Config.
func (c Config) EmissionConfig() emission.Config {
	return emission.Config{
		Schedule: emission.Schedule{
			Kind:                   emission.ScheduleKind(c.Emission.ScheduleKind),
			StaticPerBlock:         types.NewBalance(c.Emission.StaticPerBlock),
			AnnualInflationRateBps: c.Emission.AnnualInflationRateBps,
		},
		InitialSupply: types.NewBalance(c.Emission.InitialSupply),
		Breakdown:     c.emissionBreakdown(),
	}
}

// BurnConfig converts the document's burn section into burn.Config.
func (c Config) BurnConfig() burn.Config {
	return burn.Config{
		BurnRateBps:      c.Burn.BurnRateBps,
		MinBurnThreshold: types.NewBalance(c.Burn.MinBurnThreshold),
		BurnToken:        types.Denom(c.Burn.BurnToken),
		Enabled:          c.Burn.Enabled,
	}
}

// MempoolConfig converts the document's mempool section into
// mempool.Config.
func (c Config) MempoolConfig() mempool.Config {
	return mempool.Config{
		MaxTxs:          c.Mempool.MaxTxs,
		MaxBytes:        c.Mempool.MaxBytes,
		BaseMinGasPrice: c.Mempool.BaseMinGasPrice,
	}
}

// Apply seeds st with every allocation in the document. It does not call
// st.Commit; the caller commits once genesis has finished applying.
func (c Config) Apply(st state.Store) {
	for _, a := range c.Allocations {
		current := st.BalanceOf(a.Address, a.Denom)
		st.SetBalance(a.Address, a.Denom, current.SaturatingAdd(types.NewBalance(a.Amount)))
	}
}
