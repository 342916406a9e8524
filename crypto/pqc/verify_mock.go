// Copyright (C) 2019-2025, Dytallix Labs. All rights reserved.
// See the file LICENSE for licensing terms.

//go:build pqcmock

package pqc

import (
	"go.uber.org/zap"

	"github.com/dytallix-labs/pqchain/types"
)

const mockLegacyAllowed = true
const buildMode = "mock"

// mockLogger receives the per-call mock-mode warning. It defaults to a
// no-op so library code never requires a logger to function; the warning
// is only visible once a caller installs a logger with SetLogger.
var mockLogger = zap.NewNop()

// SetLogger wires the mock build's warning sink. Nothing in this module
// calls it (cmd/node does not), so it is left to the embedding program.
func SetLogger(l *zap.Logger) {
	if l != nil {
		mockLogger = l
	}
}

type mockVerifier struct {
	alg types.Algorithm
}

// Verify accepts any non-empty (pubkey, msg, sig) triple. It exists purely
// to let local development and integration tests exercise the rest of the
// pipeline without a real PQC library; it must never be the build an
// operator ships.
func (v mockVerifier) Verify(pubkey, msg, sig []byte) error {
	mockLogger.Warn("PQC verification running in mock mode; this build must never be used in production",
		zap.String("algorithm", string(v.alg)))
	if len(pubkey) == 0 || len(msg) == 0 || len(sig) == 0 {
		return &InvalidSignatureError{Algorithm: v.alg, Details: "empty input"}
	}
	return nil
}

func algorithms() map[types.Algorithm]Verifier {
	return map[types.Algorithm]Verifier{
		types.AlgDilithium5:    mockVerifier{alg: types.AlgDilithium5},
		types.AlgFalcon1024:    mockVerifier{alg: types.AlgFalcon1024},
		types.AlgSphincsSimple: mockVerifier{alg: types.AlgSphincsSimple},
	}
}

// BuildMode reports the compiled-in verification policy.
func BuildMode() string { return buildMode }
