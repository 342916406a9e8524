// Copyright (C) 2019-2025, Dytallix Labs. All rights reserved.
// See the file LICENSE for licensing terms.

// Package block orchestrates the per-height pipeline of spec.md §4.J:
// execute every transaction in order, burn fees on success, then advance
// emission and staking accrual before committing receipts and state as one
// atomic unit.
package block

import "errors"

// ErrDeterminismViolation is returned by ApplyBlock when an invariant the
// node relies on for replay-determinism is found broken. Per spec.md §7,
// this halts the pipeline: once returned, the Pipeline refuses all further
// ApplyBlock calls.
var ErrDeterminismViolation = errors.New("block: determinism violation")

// ErrHalted is returned by ApplyBlock once a prior call has already halted
// the pipeline.
var ErrHalted = errors.New("block: pipeline halted, no further blocks accepted")

// ErrStorageCommit is returned when the underlying state store fails to
// commit a block atomically.
var ErrStorageCommit = errors.New("block: storage commit failed")

// ExitCode is the process exit status cmd/node reports for a given class
// of failure, per spec.md §6/§7.
type ExitCode int

const (
	ExitOK                 ExitCode = 0
	ExitConfigError        ExitCode = 1
	ExitStorageCorruption  ExitCode = 2
	ExitDeterminismHalt    ExitCode = 3
)

// ClassifyErr maps an error returned from ApplyBlock (or node startup) to
// the exit code cmd/node should use. Unrecognized errors are treated as
// configuration errors, since anything ApplyBlock and the config/genesis
// loaders haven't already classified indicates a setup mistake rather
// than a runtime fault the node can attribute more precisely.
func ClassifyErr(err error) ExitCode {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrDeterminismViolation), errors.Is(err, ErrHalted):
		return ExitDeterminismHalt
	case errors.Is(err, ErrStorageCommit):
		return ExitStorageCorruption
	default:
		return ExitConfigError
	}
}
