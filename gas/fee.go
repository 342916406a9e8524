// Copyright (C) 2019-2025, Dytallix Labs. All rights reserved.
// See the file LICENSE for licensing terms.

package gas

import (
	"errors"
	"fmt"

	"github.com/dytallix-labs/pqchain/types"
	"github.com/dytallix-labs/pqchain/utils/safemath"
)

// ErrFeeOverflow is a non-retryable admission error: the transaction's
// declared gas_limit and gas_price cannot be multiplied without
// overflowing, so no fee can be computed at all.
var ErrFeeOverflow = errors.New("gas: fee overflow")

// UpfrontFee computes gas_limit * gas_price using 64-bit checked
// multiplication, matching the scale of the user-supplied fields
// themselves (both are wire-level uint64s; spec.md §3's FeeOverflow
// boundary case is gas_limit = gas_price = math.MaxUint64, which this
// check correctly rejects). The result is returned as a types.Balance so
// it composes with account balances (128-bit ceiling) downstream.
func UpfrontFee(gasLimit, gasPrice uint64) (types.Balance, error) {
	product, err := safemath.Mul64(gasLimit, gasPrice)
	if err != nil {
		return types.ZeroBalance, fmt.Errorf("%w: %d * %d", ErrFeeOverflow, gasLimit, gasPrice)
	}
	return types.NewBalance(product), nil
}
