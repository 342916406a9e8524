// Copyright (C) 2019-2025, Dytallix Labs. All rights reserved.
// See the file LICENSE for licensing terms.

// Package execution implements the single-transaction executor of spec.md
// §4.E: upfront fee charging with full-revert-on-failure semantics and a
// fixed step order that is itself part of the determinism contract.
package execution

import (
	"errors"
	"fmt"
)

var (
	// ErrInsufficientFunds means sender balance < amount + upfront_fee.
	// No fee is charged and the nonce is not advanced.
	ErrInsufficientFunds = errors.New("execution: insufficient funds")
)

// InvalidNonceError reports a nonce that does not match state.nonce_of(from).
type InvalidNonceError struct {
	Expected uint64
	Actual   uint64
}

func (e *InvalidNonceError) Error() string {
	return fmt.Sprintf("execution: invalid nonce: expected %d, got %d", e.Expected, e.Actual)
}
