// Copyright (C) 2019-2025, Dytallix Labs. All rights reserved.
// See the file LICENSE for licensing terms.

// Package pqc implements the post-quantum signature verifier of spec.md
// §4.B. The effective algorithm set is a compile-time decision, selected by
// build tag: the default (no tag) build and the pqcfips204/pqcreal builds
// are fail-closed for anything not wired to a real verifier; the pqcmock
// build exists for local development only and must never ship.
package pqc

import (
	"errors"
	"fmt"

	"github.com/dytallix-labs/pqchain/types"
)

// ErrUnsupportedAlgorithm is returned when alg is not recognized in the
// current build mode at all (distinct from FeatureNotCompiled, which means
// the algorithm is known but its implementation was not compiled in).
var ErrUnsupportedAlgorithm = errors.New("pqc: unsupported algorithm")

// InvalidPublicKeyError reports a malformed public key for alg.
type InvalidPublicKeyError struct {
	Algorithm types.Algorithm
	Details   string
}

func (e *InvalidPublicKeyError) Error() string {
	return fmt.Sprintf("pqc: invalid public key for %s: %s", e.Algorithm, e.Details)
}

// InvalidSignatureError reports a malformed signature encoding for alg.
type InvalidSignatureError struct {
	Algorithm types.Algorithm
	Details   string
}

func (e *InvalidSignatureError) Error() string {
	return fmt.Sprintf("pqc: invalid signature for %s: %s", e.Algorithm, e.Details)
}

// VerificationFailedError reports a well-formed signature that did not
// validate against pubkey/msg.
type VerificationFailedError struct {
	Algorithm types.Algorithm
}

func (e *VerificationFailedError) Error() string {
	return fmt.Sprintf("pqc: verification failed for %s", e.Algorithm)
}

// FeatureNotCompiledError reports an algorithm recognized by name but whose
// implementation is absent from this build.
type FeatureNotCompiledError struct {
	Feature string
}

func (e *FeatureNotCompiledError) Error() string {
	return fmt.Sprintf("pqc: feature not compiled: %s", e.Feature)
}
