// Copyright (C) 2019-2025, Dytallix Labs. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dytallix-labs/pqchain/burn"
	"github.com/dytallix-labs/pqchain/emission"
)

func TestGetConfigUsesFlagDefaults(t *testing.T) {
	fs := BuildFlagSet()
	v, err := BuildViper(fs, nil)
	require.NoError(t, err)

	cfg, err := GetConfig(v)
	require.NoError(t, err)
	require.Equal(t, "pqchain-1", cfg.ChainID)
	require.Equal(t, uint64(1), cfg.MinGasPrice)
	require.Equal(t, burn.DefaultConfig.BurnRateBps, cfg.Burn.BurnRateBps)
	require.Equal(t, emission.SchedulePercentage, cfg.Emission.Schedule.Kind)
}

func TestGetConfigFlagOverridesChainID(t *testing.T) {
	fs := BuildFlagSet()
	v, err := BuildViper(fs, []string{"--" + ChainIDKey, "pqchain-testnet"})
	require.NoError(t, err)

	cfg, err := GetConfig(v)
	require.NoError(t, err)
	require.Equal(t, "pqchain-testnet", cfg.ChainID)
}

func TestGetConfigLoadsFileUnderFlags(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "node.yaml")
	require.NoError(t, os.WriteFile(path, []byte("chain-id: pqchain-from-file\nburn-rate-bps: 500\n"), 0o600))

	fs := BuildFlagSet()
	v, err := BuildViper(fs, []string{"--" + ConfigFileKey, path})
	require.NoError(t, err)

	cfg, err := GetConfig(v)
	require.NoError(t, err)
	require.Equal(t, "pqchain-from-file", cfg.ChainID)
	require.Equal(t, uint32(500), cfg.Burn.BurnRateBps)
}

func TestGetConfigRejectsUnrecognizedBurnToken(t *testing.T) {
	fs := BuildFlagSet()
	v, err := BuildViper(fs, []string{"--" + BurnTokenKey, "uusd"})
	require.NoError(t, err)

	_, err = GetConfig(v)
	require.Error(t, err)
}

func TestGetConfigRejectsUnrecognizedScheduleKind(t *testing.T) {
	fs := BuildFlagSet()
	v, err := BuildViper(fs, []string{"--" + EmissionScheduleKey, "bogus"})
	require.NoError(t, err)

	_, err = GetConfig(v)
	require.Error(t, err)
}

func TestGetConfigRejectsEmptyChainID(t *testing.T) {
	fs := BuildFlagSet()
	v, err := BuildViper(fs, []string{"--" + ChainIDKey, ""})
	require.NoError(t, err)

	_, err = GetConfig(v)
	require.Error(t, err)
}
