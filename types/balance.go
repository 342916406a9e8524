// Copyright (C) 2019-2025, Dytallix Labs. All rights reserved.
// See the file LICENSE for licensing terms.

package types

import (
	"errors"
	"fmt"

	"github.com/holiman/uint256"
)

// Balance is an unsigned 128-bit quantity of micro-units of some
// denomination. It is backed by uint256.Int (already part of this module's
// dependency graph) rather than a hand-rolled 128-bit pair, but every
// arithmetic operation additionally enforces the 128-bit ceiling the data
// model promises: the top 128 bits of the underlying 256-bit word are
// never allowed to be set.
type Balance struct {
	v uint256.Int
}

var (
	ErrBalanceOverflow  = errors.New("balance: arithmetic overflow")
	ErrBalanceUnderflow = errors.New("balance: arithmetic underflow")
	ErrBalanceParse     = errors.New("balance: invalid decimal string")
)

// max128 is 2^128 - 1, the largest value a Balance may hold.
var max128 = func() *uint256.Int {
	one := uint256.NewInt(1)
	shifted := new(uint256.Int).Lsh(one, 128)
	return new(uint256.Int).Sub(shifted, one)
}()

// ZeroBalance is the additive identity.
var ZeroBalance = Balance{}

// NewBalance constructs a Balance from a uint64.
func NewBalance(v uint64) Balance {
	return Balance{v: *uint256.NewInt(v)}
}

// ParseBalance parses an unsigned base-10 string, as produced by the
// canonical codec for 128-bit fields (spec.md §4.A).
func ParseBalance(s string) (Balance, error) {
	var b Balance
	if err := b.v.SetFromDecimal(s); err != nil {
		return Balance{}, fmt.Errorf("%w: %v", ErrBalanceParse, err)
	}
	if b.v.Gt(max128) {
		return Balance{}, fmt.Errorf("%w: %s exceeds 128 bits", ErrBalanceOverflow, s)
	}
	return b, nil
}

func (b Balance) String() string {
	return b.v.Dec()
}

func (b Balance) IsZero() bool {
	return b.v.IsZero()
}

func (b Balance) Cmp(o Balance) int {
	return b.v.Cmp(&o.v)
}

func (b Balance) LessThan(o Balance) bool {
	return b.v.Lt(&o.v)
}

// Add returns b+o, failing if the 128-bit ceiling would be exceeded.
func (b Balance) Add(o Balance) (Balance, error) {
	var sum uint256.Int
	if sum.AddOverflow(&b.v, &o.v) {
		return Balance{}, ErrBalanceOverflow
	}
	if sum.Gt(max128) {
		return Balance{}, ErrBalanceOverflow
	}
	return Balance{v: sum}, nil
}

// Sub returns b-o, failing if the result would be negative.
func (b Balance) Sub(o Balance) (Balance, error) {
	var diff uint256.Int
	if diff.SubOverflow(&b.v, &o.v) {
		return Balance{}, ErrBalanceUnderflow
	}
	return Balance{v: diff}, nil
}

// Mul returns b*o, failing if the 128-bit ceiling would be exceeded.
func (b Balance) Mul(o Balance) (Balance, error) {
	var prod uint256.Int
	if prod.MulOverflow(&b.v, &o.v) {
		return Balance{}, ErrBalanceOverflow
	}
	if prod.Gt(max128) {
		return Balance{}, ErrBalanceOverflow
	}
	return Balance{v: prod}, nil
}

// MulDivFloor computes floor(b * num / den), matching the bps-scaled
// percentage math the emission and staking engines both need (annual
// inflation rate, pool share splits, reward-index accrual). The
// intermediate product is computed at full 256-bit width so it cannot
// overflow the way a naive Balance.Mul(num).Div(den) would for values near
// the 128-bit ceiling; only the final result is bound-checked.
func (b Balance) MulDivFloor(num, den uint64) (Balance, error) {
	if den == 0 {
		return Balance{}, fmt.Errorf("%w: division by zero", ErrBalanceOverflow)
	}
	var product uint256.Int
	product.Mul(&b.v, uint256.NewInt(num))
	var quotient uint256.Int
	quotient.Div(&product, uint256.NewInt(den))
	if quotient.Gt(max128) {
		return Balance{}, ErrBalanceOverflow
	}
	return Balance{v: quotient}, nil
}

// MulBalanceDivFloor computes floor(b * other / den). Both operands are
// bound to 128 bits, so their product always fits the full 256-bit width
// without overflowing; only the final division result is bound-checked.
// Used by the staking package's reward-index math, where both the stake
// and the reward index are themselves Balance-scale quantities.
func (b Balance) MulBalanceDivFloor(other Balance, den uint64) (Balance, error) {
	if den == 0 {
		return Balance{}, fmt.Errorf("%w: division by zero", ErrBalanceOverflow)
	}
	var product uint256.Int
	product.Mul(&b.v, &other.v)
	var quotient uint256.Int
	quotient.Div(&product, uint256.NewInt(den))
	if quotient.Gt(max128) {
		return Balance{}, ErrBalanceOverflow
	}
	return Balance{v: quotient}, nil
}

// Uint64 returns b truncated to 64 bits, along with whether any bits above
// the 64th were set. Used by callers that need a plain uint64 denominator
// (e.g. staking's reward-index math) and are prepared to treat overflow as
// a configuration error.
func (b Balance) Uint64() (uint64, bool) {
	return b.v.Uint64(), !b.v.IsUint64()
}

// SaturatingAdd adds without returning an error, clamping at the 128-bit
// ceiling. Used by the emission/staking ledgers per spec.md's
// "saturating_add" bookkeeping semantics, where a clamp is preferable to a
// hard fault on a purely cumulative counter.
func (b Balance) SaturatingAdd(o Balance) Balance {
	sum, err := b.Add(o)
	if err != nil {
		return Balance{v: *max128}
	}
	return sum
}

// MarshalJSON renders the balance as a quoted decimal string, matching the
// canonical codec's rule that 128-bit fields never pass through a JSON
// number literal.
func (b Balance) MarshalJSON() ([]byte, error) {
	return []byte(`"` + b.v.Dec() + `"`), nil
}

func (b *Balance) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	if s == "" {
		b.v = uint256.Int{}
		return nil
	}
	parsed, err := ParseBalance(s)
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}
