// Copyright (C) 2019-2025, Dytallix Labs. All rights reserved.
// See the file LICENSE for licensing terms.

//go:build !pqcmock && !pqcreal && !pqcfips204

package pqc

import "github.com/dytallix-labs/pqchain/types"

const mockLegacyAllowed = false

// buildMode identifies the compiled-in algorithm policy, surfaced by
// config/genesis validation so an operator can confirm what they shipped.
const buildMode = "absent"

type failClosedVerifier struct {
	feature string
}

func (v failClosedVerifier) Verify(_, _, _ []byte) error {
	return &FeatureNotCompiledError{Feature: v.feature}
}

// algorithms returns every known algorithm mapped to a verifier that always
// fails closed. No PQC library is linked into this build; the testable
// property of spec.md §4.B ("in any non-mock build with no PQC feature
// compiled, verify must return FeatureNotCompiled for all inputs") holds by
// construction.
func algorithms() map[types.Algorithm]Verifier {
	return map[types.Algorithm]Verifier{
		types.AlgDilithium5:    failClosedVerifier{feature: "dilithium5"},
		types.AlgFalcon1024:    failClosedVerifier{feature: "falcon1024"},
		types.AlgSphincsSimple: failClosedVerifier{feature: "sphincs_sha2_128s_simple"},
	}
}

// BuildMode reports the compiled-in verification policy.
func BuildMode() string { return buildMode }
