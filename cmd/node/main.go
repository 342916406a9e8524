// Copyright (C) 2019-2025, Dytallix Labs. All rights reserved.
// See the file LICENSE for licensing terms.

// Command node is the pqchain node binary: load config, open the
// durable store, wire the block pipeline, and apply whatever blocks it
// is handed until shutdown or a halt. Per spec.md §6, block assembly
// and peer networking are out of scope here — this binary is the
// external-collaborator boundary, not the consensus or RPC layer.
package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/dytallix-labs/pqchain/block"
	"github.com/dytallix-labs/pqchain/burn"
	"github.com/dytallix-labs/pqchain/config"
	"github.com/dytallix-labs/pqchain/crypto/pqc"
	"github.com/dytallix-labs/pqchain/emission"
	"github.com/dytallix-labs/pqchain/gas"
	"github.com/dytallix-labs/pqchain/genesis"
	"github.com/dytallix-labs/pqchain/metrics"
	"github.com/dytallix-labs/pqchain/staking"
	"github.com/dytallix-labs/pqchain/state"
)

const genesisFileKey = "genesis-file"
const blocksFileKey = "blocks-file"

var rootCmd = &cobra.Command{
	Use:   "pqchain-node",
	Short: "Run a pqchain node: config, store, and block pipeline, wired and idle until fed blocks",
	RunE:  runNode,
}

func init() {
	rootCmd.Flags().AddFlagSet(config.BuildFlagSet())
	rootCmd.Flags().String(genesisFileKey, "", "path to a genesis YAML document to apply on first boot")
	rootCmd.Flags().String(blocksFileKey, "", "path to a newline-delimited JSON file of blocks to apply, then exit")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		var exitErr *exitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Error())
			os.Exit(int(exitErr.code))
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(int(block.ExitConfigError))
	}
}

// exitError pairs an error with the exit code main() should use,
// distinguishing a classified runtime failure from a bare cobra usage
// error (which always exits 1).
type exitError struct {
	code block.ExitCode
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func runNode(cmd *cobra.Command, _ []string) error {
	logger, err := zap.NewProduction()
	if err != nil {
		return &exitError{block.ExitConfigError, fmt.Errorf("node: build logger: %w", err)}
	}
	defer logger.Sync() //nolint:errcheck

	v := viper.New()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return &exitError{block.ExitConfigError, fmt.Errorf("node: bind flags: %w", err)}
	}
	if path := v.GetString(config.ConfigFileKey); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return &exitError{block.ExitConfigError, fmt.Errorf("node: read config %s: %w", path, err)}
		}
	}
	cfg, err := config.GetConfig(v)
	if err != nil {
		return &exitError{block.ExitConfigError, err}
	}

	logger.Info("pqc build mode", zap.String("mode", pqc.BuildMode()))

	st, err := state.OpenPebbleStore(cfg.DataDir)
	if err != nil {
		return &exitError{block.ExitStorageCorruption, err}
	}
	defer st.Close() //nolint:errcheck

	if genesisPath := v.GetString(genesisFileKey); genesisPath != "" {
		gen, err := genesis.LoadFile(genesisPath)
		if err != nil {
			return &exitError{block.ExitConfigError, err}
		}
		gen.Apply(st)
		if err := st.Commit(); err != nil {
			return &exitError{block.ExitStorageCorruption, err}
		}
		logger.Info("genesis applied", zap.String("chain_id", gen.ChainID), zap.Int("allocations", len(gen.Allocations)))
	}

	reg := prometheus.NewRegistry()
	metrics.New(reg, "pqchain")

	em, err := emission.NewEngine(st, cfg.Emission)
	if err != nil {
		return &exitError{block.ExitConfigError, err}
	}
	sk := staking.NewAccrual(st)
	bn, err := burn.NewEngine(st, cfg.Burn)
	if err != nil {
		return &exitError{block.ExitConfigError, err}
	}
	pipeline := block.NewPipeline(st, gas.DefaultSchedule, em, sk, bn, logger)

	if blocksPath := v.GetString(blocksFileKey); blocksPath != "" {
		return applyBlocksFile(pipeline, blocksPath, logger)
	}

	return waitForShutdown(logger)
}

func applyBlocksFile(p *block.Pipeline, path string, logger *zap.Logger) error {
	f, err := os.Open(path)
	if err != nil {
		return &exitError{block.ExitConfigError, fmt.Errorf("node: open blocks file: %w", err)}
	}
	defer f.Close() //nolint:errcheck

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16<<20)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var b block.Block
		if err := json.Unmarshal(line, &b); err != nil {
			return &exitError{block.ExitConfigError, fmt.Errorf("node: parse block at line %d: %w", lineNo, err)}
		}
		res, err := p.ApplyBlock(b)
		if err != nil {
			return &exitError{block.ClassifyErr(err), err}
		}
		logger.Info("block applied", zap.Uint64("height", res.NewHeight), zap.Int("receipts", len(res.Receipts)))
	}
	if err := scanner.Err(); err != nil {
		return &exitError{block.ExitConfigError, fmt.Errorf("node: read blocks file: %w", err)}
	}
	return nil
}

func waitForShutdown(logger *zap.Logger) error {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	logger.Info("node ready, waiting for blocks or shutdown signal")
	<-sig
	logger.Info("shutdown signal received")
	return nil
}
