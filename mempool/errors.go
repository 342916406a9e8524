// Copyright (C) 2019-2025, Dytallix Labs. All rights reserved.
// See the file LICENSE for licensing terms.

// Package mempool implements the priced, sender-aware admission pipeline of
// spec.md §4.F: an ordered admission gate with bounded capacity, per-sender
// nonce tracking, gossip dedup, and eviction by effective gas price.
package mempool

import "errors"

// Rejection reasons, in the order spec.md §4.F checks them. Each is a
// distinct sentinel so callers can map to RPC status codes without string
// matching.
var (
	ErrInvalidSignature     = errors.New("mempool: invalid signature")
	ErrInvalidChainID       = errors.New("mempool: chain id mismatch")
	ErrInvalidSchema        = errors.New("mempool: invalid message schema")
	ErrDuplicateTransaction = errors.New("mempool: duplicate transaction")
	ErrNonceGap             = errors.New("mempool: nonce gap")
	ErrInsufficientFunds    = errors.New("mempool: insufficient funds")
	ErrGasPriceTooLow       = errors.New("mempool: gas price below floor")
	ErrMempoolFull          = errors.New("mempool: full")
)

// EvictionReasonCapacity tags metrics/events for entries displaced to make
// room for a higher-priced candidate.
const EvictionReasonCapacity = "capacity"
