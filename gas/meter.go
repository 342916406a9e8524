// Copyright (C) 2019-2025, Dytallix Labs. All rights reserved.
// See the file LICENSE for licensing terms.

package gas

import (
	"errors"
	"fmt"
)

// ErrOutOfGas is returned by Consume when charging amount would exceed the
// meter's limit.
var ErrOutOfGas = errors.New("gas: out of gas")

// Meter tracks cumulative consumption against a fixed limit, set once at
// construction from the transaction's gas_limit.
type Meter struct {
	limit uint64
	used  uint64
}

// NewMeter returns a meter that allows up to limit gas to be consumed.
func NewMeter(limit uint64) *Meter {
	return &Meter{limit: limit}
}

// Consume charges amount against the meter, attributed to reason for
// diagnostics. It fails with ErrOutOfGas without mutating GasUsed further
// than necessary: the meter's used counter is pinned at limit on overflow,
// matching the receipt contract that a failed step's gas_used equals the
// meter's final value.
func (m *Meter) Consume(amount uint64, reason string) error {
	next := m.used + amount
	if next > m.limit || next < m.used {
		m.used = m.limit
		return fmt.Errorf("%w: %s (used=%d limit=%d)", ErrOutOfGas, reason, m.used, m.limit)
	}
	m.used = next
	return nil
}

// GasUsed returns cumulative consumption so far.
func (m *Meter) GasUsed() uint64 { return m.used }

// Limit returns the meter's configured ceiling.
func (m *Meter) Limit() uint64 { return m.limit }

// Remaining returns how much gas can still be consumed before ErrOutOfGas.
func (m *Meter) Remaining() uint64 {
	if m.used >= m.limit {
		return 0
	}
	return m.limit - m.used
}
