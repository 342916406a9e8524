// Copyright (C) 2019-2025, Dytallix Labs. All rights reserved.
// See the file LICENSE for licensing terms.

package pqc

import (
	"fmt"

	"github.com/dytallix-labs/pqchain/types"
)

// Verifier checks a detached signature against a message digest for a
// single algorithm family.
type Verifier interface {
	// Verify reports whether sig is a valid signature by pubkey over msg.
	// A well-formed but non-matching signature returns
	// *VerificationFailedError, never a bare bool false.
	Verify(pubkey, msg, sig []byte) error
}

// MockLegacyAllowed reports whether this build accepts the "mock-blake3"
// legacy algorithm alias (true only under the pqcmock tag); it is the flag
// to pass to types.ParseAlgorithm. SignedTransaction's JSON decoding does
// not call ParseAlgorithm: it keeps the algorithm string as given.
var MockLegacyAllowed = mockLegacyAllowed

// Verify dispatches to the build's algorithm table. It never panics: any
// unrecognized or uncompiled algorithm returns a typed error, so a caller
// that forgets to check the error cannot be fooled into treating an
// unverified transaction as signed.
func Verify(pubkey, msg, sig []byte, alg types.Algorithm) error {
	v, ok := algorithms()[alg]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnsupportedAlgorithm, alg)
	}
	return v.Verify(pubkey, msg, sig)
}

// SupportedAlgorithms lists the algorithms this build can attempt to
// verify (whether or not each one is actually wired to an implementation;
// an unwired entry still fails closed with FeatureNotCompiledError).
func SupportedAlgorithms() []types.Algorithm {
	tbl := algorithms()
	out := make([]types.Algorithm, 0, len(tbl))
	for a := range tbl {
		out = append(out, a)
	}
	return out
}
