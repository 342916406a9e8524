// Copyright (C) 2019-2025, Dytallix Labs. All rights reserved.
// See the file LICENSE for licensing terms.

// Package config builds the node's runtime configuration from a config
// file plus command-line flag overrides, the way avalanchego's own
// config package layers pflag over viper.
package config

import "github.com/spf13/pflag"

const (
	ChainIDKey          = "chain-id"
	ConfigFileKey       = "config-file"
	MinGasPriceKey      = "min-gas-price"
	MempoolMaxTxsKey    = "mempool-max-txs"
	MempoolMaxBytesKey  = "mempool-max-bytes"
	EmissionScheduleKey = "emission-schedule"
	InitialSupplyKey    = "emission-initial-supply"
	BurnRateBpsKey      = "burn-rate-bps"
	BurnMinThresholdKey = "burn-min-threshold"
	BurnTokenKey        = "burn-token"
	BurnEnabledKey      = "burn-enabled"
	DataDirKey          = "data-dir"
)

// BuildFlagSet declares every flag the node accepts. Flags override
// whatever the config file at ConfigFileKey sets; BuildViper binds them
// in that order.
func BuildFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("pqchain", pflag.ContinueOnError)

	fs.String(ConfigFileKey, "", "path to a YAML config file")
	fs.String(DataDirKey, "./data", "directory for persistent state")
	fs.String(ChainIDKey, "pqchain-1", "chain id new transactions must target")
	fs.Uint64(MinGasPriceKey, 1, "minimum gas price the mempool admits")
	fs.Int(MempoolMaxTxsKey, 5000, "maximum number of transactions held in the mempool")
	fs.Int(MempoolMaxBytesKey, 32<<20, "maximum total encoded size of the mempool")
	fs.String(EmissionScheduleKey, "percentage", "emission schedule kind: static, phased, or percentage")
	fs.Uint64(InitialSupplyKey, 0, "initial circulating supply at genesis, in micro-DRT")
	fs.Uint32(BurnRateBpsKey, 2500, "basis points of each successful tx fee that are burned")
	fs.Uint64(BurnMinThresholdKey, 1000, "minimum fee, in micro-units, eligible for burning")
	fs.String(BurnTokenKey, "udgt", "denom the burn engine draws from")
	fs.Bool(BurnEnabledKey, true, "whether the fee-burn engine is active")

	return fs
}
