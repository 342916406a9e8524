// Copyright (C) 2019-2025, Dytallix Labs. All rights reserved.
// See the file LICENSE for licensing terms.

//go:build pqcmock

package pqc

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dytallix-labs/pqchain/types"
)

func TestMockVerifyAcceptsNonEmptyInput(t *testing.T) {
	err := Verify([]byte("pk"), []byte("msg"), []byte("sig"), types.AlgDilithium5)
	require.NoError(t, err)
}

func TestMockVerifyRejectsEmptyInput(t *testing.T) {
	err := Verify(nil, []byte("msg"), []byte("sig"), types.AlgDilithium5)
	require.Error(t, err)
	var sigErr *InvalidSignatureError
	require.ErrorAs(t, err, &sigErr)
}

func TestMockLegacyAliasAccepted(t *testing.T) {
	alg, err := types.ParseAlgorithm("mock-blake3", MockLegacyAllowed)
	require.NoError(t, err)
	require.Equal(t, types.AlgDilithium5, alg)
}

func TestBuildModeMock(t *testing.T) {
	require.Equal(t, "mock", BuildMode())
}
