// Copyright (C) 2019-2025, Dytallix Labs. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"fmt"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/dytallix-labs/pqchain/burn"
	"github.com/dytallix-labs/pqchain/emission"
	"github.com/dytallix-labs/pqchain/mempool"
	"github.com/dytallix-labs/pqchain/types"
)

// phaseConfig is emission.Phase's YAML shape; types.Balance's internal
// uint256.Int can't be decoded directly by viper's mapstructure, so the
// config file expresses amounts as plain uint64 micro-units instead.
type phaseConfig struct {
	StartHeight    uint64
	EndHeight      *uint64
	PerBlockAmount uint64
}

// Config is the fully resolved, validated node configuration.
type Config struct {
	ChainID     string
	DataDir     string
	MinGasPrice uint64

	Mempool  mempool.Config
	Emission emission.Config
	Burn     burn.Config
}

// BuildViper binds fs to a fresh viper instance, parses args against it,
// and loads ConfigFileKey's YAML file (if set) underneath the flag
// values, mirroring the layering avalanchego's own config package uses:
// flags win, the file fills in anything a flag didn't set.
func BuildViper(fs *pflag.FlagSet, args []string) (*viper.Viper, error) {
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	if err := v.BindPFlags(fs); err != nil {
		return nil, fmt.Errorf("config: bind flags: %w", err)
	}

	if path := v.GetString(ConfigFileKey); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	return v, nil
}

// GetConfig resolves a Config from a bound viper instance, validating
// every component's config before returning.
func GetConfig(v *viper.Viper) (*Config, error) {
	burnToken, err := types.ParseDenom(v.GetString(BurnTokenKey))
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", BurnTokenKey, err)
	}

	scheduleKind, err := parseScheduleKind(v.GetString(EmissionScheduleKey))
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", EmissionScheduleKey, err)
	}

	breakdown := emission.DefaultBreakdown
	if v.IsSet("emission-breakdown") {
		if err := v.UnmarshalKey("emission-breakdown", &breakdown); err != nil {
			return nil, fmt.Errorf("config: emission-breakdown: %w", err)
		}
	}

	var phases []emission.Phase
	if v.IsSet("emission-phases") {
		var raw []phaseConfig
		if err := v.UnmarshalKey("emission-phases", &raw); err != nil {
			return nil, fmt.Errorf("config: emission-phases: %w", err)
		}
		phases = make([]emission.Phase, len(raw))
		for i, p := range raw {
			phases[i] = emission.Phase{
				StartHeight:    p.StartHeight,
				EndHeight:      p.EndHeight,
				PerBlockAmount: types.NewBalance(p.PerBlockAmount),
			}
		}
	}

	cfg := &Config{
		ChainID:     v.GetString(ChainIDKey),
		DataDir:     v.GetString(DataDirKey),
		MinGasPrice: v.GetUint64(MinGasPriceKey),
		Mempool: mempool.Config{
			MaxTxs:          v.GetInt(MempoolMaxTxsKey),
			MaxBytes:        v.GetInt(MempoolMaxBytesKey),
			BaseMinGasPrice: v.GetUint64(MinGasPriceKey),
		},
		Emission: emission.Config{
			Schedule: emission.Schedule{
				Kind:                   scheduleKind,
				StaticPerBlock:         types.NewBalance(v.GetUint64("emission-static-per-block")),
				Phases:                 phases,
				AnnualInflationRateBps: uint16(v.GetUint32("emission-annual-inflation-bps")),
			},
			InitialSupply: types.NewBalance(v.GetUint64(InitialSupplyKey)),
			Breakdown:     breakdown,
		},
		Burn: burn.Config{
			BurnRateBps:      v.GetUint32(BurnRateBpsKey),
			MinBurnThreshold: types.NewBalance(v.GetUint64(BurnMinThresholdKey)),
			BurnToken:        burnToken,
			Enabled:          v.GetBool(BurnEnabledKey),
		},
	}

	if !cfg.Emission.Breakdown.Valid() {
		return nil, fmt.Errorf("config: emission breakdown: %w", emission.ErrInvalidBreakdown)
	}
	if err := cfg.Burn.Validate(); err != nil {
		return nil, fmt.Errorf("config: burn: %w", err)
	}
	if cfg.ChainID == "" {
		return nil, fmt.Errorf("config: %s must not be empty", ChainIDKey)
	}

	return cfg, nil
}

func parseScheduleKind(s string) (emission.ScheduleKind, error) {
	switch emission.ScheduleKind(s) {
	case emission.ScheduleStatic, emission.SchedulePhased, emission.SchedulePercentage:
		return emission.ScheduleKind(s), nil
	default:
		return "", fmt.Errorf("unrecognized emission schedule kind %q", s)
	}
}
