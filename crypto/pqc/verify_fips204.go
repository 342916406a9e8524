// Copyright (C) 2019-2025, Dytallix Labs. All rights reserved.
// See the file LICENSE for licensing terms.

//go:build pqcfips204

package pqc

import "github.com/dytallix-labs/pqchain/types"

const mockLegacyAllowed = false
const buildMode = "fips204"

// mlDSA87Verifier is the seam a FIPS-204 build wires to an ML-DSA-87
// implementation under the dilithium5 name. No such library is present in
// this tree; the seam fails closed rather than fabricating one.
type mlDSA87Verifier struct{}

func (mlDSA87Verifier) Verify(_, _, _ []byte) error {
	return &FeatureNotCompiledError{Feature: "ml-dsa-87"}
}

// algorithms in a FIPS-204 build recognizes only Dilithium5 (wired to
// ML-DSA-87); everything else is unsupported by name, not merely
// uncompiled, matching spec.md §4.B.
func algorithms() map[types.Algorithm]Verifier {
	return map[types.Algorithm]Verifier{
		types.AlgDilithium5: mlDSA87Verifier{},
	}
}

// BuildMode reports the compiled-in verification policy.
func BuildMode() string { return buildMode }
