// Copyright (C) 2019-2025, Dytallix Labs. All rights reserved.
// See the file LICENSE for licensing terms.

// Package safemath provides overflow-checked arithmetic over uint64, in the
// style of avalanchego's utils/math package. gas.UpfrontFee uses it to bound
// the upfront-fee calculation (gas_limit * gas_price) to 64-bit scale,
// matching the user-supplied inputs rather than promoting to a wider type.
package safemath

import "errors"

// ErrOverflow is returned when an operation would exceed the range of
// uint64.
var ErrOverflow = errors.New("safemath: overflow")

// Add64 returns a+b, or ErrOverflow if the sum exceeds math.MaxUint64.
func Add64(a, b uint64) (uint64, error) {
	sum := a + b
	if sum < a {
		return 0, ErrOverflow
	}
	return sum, nil
}

// Mul64 returns a*b, or ErrOverflow if the product exceeds math.MaxUint64.
func Mul64(a, b uint64) (uint64, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	prod := a * b
	if prod/a != b {
		return 0, ErrOverflow
	}
	return prod, nil
}

// Sub64 returns a-b, or ErrOverflow if b > a.
func Sub64(a, b uint64) (uint64, error) {
	if b > a {
		return 0, ErrOverflow
	}
	return a - b, nil
}
