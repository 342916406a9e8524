// Copyright (C) 2019-2025, Dytallix Labs. All rights reserved.
// See the file LICENSE for licensing terms.

// Package gas implements the gas schedule and meter of spec.md §4.D: named
// per-operation costs, a consuming meter that fails closed at the limit,
// and the intrinsic-gas/upfront-fee calculations the executor and mempool
// both depend on.
package gas

// Schedule is the table of named costs a meter charges against. Field
// names mirror the operations named in spec.md §4.D/§4.E.
type Schedule struct {
	IntrinsicBase uint64
	PerByte       uint64
	KVRead        uint64
	KVWrite       uint64
	TransferStep  uint64
}

// DefaultSchedule is the baseline cost table; genesis/config may override
// individual fields but must keep kv_read and kv_write ordering consistent
// with the executor's fixed step sequence.
var DefaultSchedule = Schedule{
	IntrinsicBase: 21_000,
	PerByte:       16,
	KVRead:        40,
	KVWrite:       120,
	TransferStep:  0,
}

// TxKind distinguishes the message types intrinsic gas is computed for.
type TxKind string

const (
	TxKindSend TxKind = "send"
	TxKindData TxKind = "data"
)

// IntrinsicGas computes the pre-execution minimum gas a transaction must
// reserve: a fixed base plus a per-byte charge over the wire size, scaled
// by message count since every message needs at least a base allotment of
// state touches.
func IntrinsicGas(kind TxKind, txSize int, msgCount int, sched Schedule) uint64 {
	if msgCount < 1 {
		msgCount = 1
	}
	base := sched.IntrinsicBase * uint64(msgCount)
	perByte := sched.PerByte * uint64(txSize)
	return base + perByte
}
