// Copyright (C) 2019-2025, Dytallix Labs. All rights reserved.
// See the file LICENSE for licensing terms.

//go:build pqcreal

package pqc

import "github.com/dytallix-labs/pqchain/types"

const mockLegacyAllowed = false
const buildMode = "real"

// unwiredVerifier is the seam, one entry per algorithm, that a production
// build wires to an actual PQC implementation (e.g. a cgo binding or a
// pure-Go port of the reference code). None is available in this tree, so
// each entry fails closed with FeatureNotCompiledError rather than
// silently accepting unverifiable signatures.
type unwiredVerifier struct {
	feature string
}

func (v unwiredVerifier) Verify(_, _, _ []byte) error {
	return &FeatureNotCompiledError{Feature: v.feature}
}

func algorithms() map[types.Algorithm]Verifier {
	return map[types.Algorithm]Verifier{
		types.AlgDilithium5:    unwiredVerifier{feature: "dilithium5"},
		types.AlgFalcon1024:    unwiredVerifier{feature: "falcon1024"},
		types.AlgSphincsSimple: unwiredVerifier{feature: "sphincs_sha2_128s_simple"},
	}
}

// BuildMode reports the compiled-in verification policy.
func BuildMode() string { return buildMode }
