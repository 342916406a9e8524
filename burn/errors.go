// Copyright (C) 2019-2025, Dytallix Labs. All rights reserved.
// See the file LICENSE for licensing terms.

// Package burn implements the configurable per-block fee burn of spec.md
// §4.I: a governance-tunable share of each collected fee is destroyed from
// the fee collector account, with a bounded audit ring of BurnRecords.
package burn

import "errors"

var (
	// ErrInvalidBurnRate is returned when a configuration's burn_rate_bps
	// exceeds 10000 (100%).
	ErrInvalidBurnRate = errors.New("burn: burn_rate_bps exceeds 10000")
	// ErrUnrecognizedBurnToken is returned when a configuration's burn_token
	// is not udgt or udrt.
	ErrUnrecognizedBurnToken = errors.New("burn: burn_token not recognized")
)
