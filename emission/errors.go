// Copyright (C) 2019-2025, Dytallix Labs. All rights reserved.
// See the file LICENSE for licensing terms.

// Package emission implements the per-block deterministic minting of
// spec.md §4.G: Static/Phased/Percentage schedules, fixed-share pool
// distribution, and a pool claim API credited in DRT.
package emission

import "errors"

// ErrInsufficientPool is returned by Claim when amount exceeds the pool's
// current balance.
var ErrInsufficientPool = errors.New("emission: insufficient pool balance")

// ErrInvalidBreakdown is returned when a pool breakdown's shares do not sum
// to 100.
var ErrInvalidBreakdown = errors.New("emission: pool breakdown must sum to 100")
