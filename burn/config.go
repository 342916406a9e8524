// Copyright (C) 2019-2025, Dytallix Labs. All rights reserved.
// See the file LICENSE for licensing terms.

package burn

import "github.com/dytallix-labs/pqchain/types"

// Config is the governance-mutable surface of the burn engine.
type Config struct {
	BurnRateBps      uint32
	MinBurnThreshold types.Balance
	BurnToken        types.Denom
	Enabled          bool
}

// DefaultConfig mirrors the original implementation's starting parameters:
// a 25% burn of DGT fees once they clear a dust threshold.
var DefaultConfig = Config{
	BurnRateBps:      2500,
	MinBurnThreshold: types.NewBalance(1000),
	BurnToken:        types.DenomDGT,
	Enabled:          true,
}

// Validate enforces spec.md §4.I's governance update constraints.
func (c Config) Validate() error {
	if c.BurnRateBps > 10_000 {
		return ErrInvalidBurnRate
	}
	if !c.BurnToken.Valid() {
		return ErrUnrecognizedBurnToken
	}
	return nil
}
