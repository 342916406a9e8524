// Copyright (C) 2019-2025, Dytallix Labs. All rights reserved.
// See the file LICENSE for licensing terms.

package types

import (
	"errors"
	"fmt"
)

// MaxAddressLen is the largest number of bytes an Address may occupy.
const MaxAddressLen = 128

var (
	ErrAddressEmpty   = errors.New("address: empty")
	ErrAddressTooLong = errors.New("address: exceeds maximum length")
	ErrAddressCharset = errors.New("address: contains disallowed characters")
)

// Address is an opaque, bounded identifier for a ledger account. It is
// intentionally not tied to any particular key scheme or HRP-prefixed
// bech32 alphabet: the PQC signature layer (crypto/pqc) produces public
// keys of varying byte lengths depending on algorithm, so address identity
// here is just a validated string. Equality is byte equality.
type Address string

// NewAddress validates s and returns it as an Address. Allowed characters
// are lowercase alphanumerics plus '_' and '-', matching the bech32-style
// data-part alphabet the rest of the stack already assumes.
func NewAddress(s string) (Address, error) {
	if len(s) == 0 {
		return "", ErrAddressEmpty
	}
	if len(s) > MaxAddressLen {
		return "", fmt.Errorf("%w: %d > %d", ErrAddressTooLong, len(s), MaxAddressLen)
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9':
		case r == '_' || r == '-':
		default:
			return "", fmt.Errorf("%w: %q", ErrAddressCharset, r)
		}
	}
	return Address(s), nil
}

// MustAddress is NewAddress, panicking on error. Intended for tests and
// genesis-time literal construction only.
func MustAddress(s string) Address {
	a, err := NewAddress(s)
	if err != nil {
		panic(err)
	}
	return a
}

func (a Address) String() string {
	return string(a)
}

func (a Address) Equal(o Address) bool {
	return a == o
}

func (a Address) Empty() bool {
	return len(a) == 0
}

// FeeCollectorAddress is the reserved account every upfront transaction fee
// is credited to. The fee-burn engine (package burn) draws from this
// account each block; whatever remains accumulates as protocol revenue.
var FeeCollectorAddress = MustAddress("fee_collector")
