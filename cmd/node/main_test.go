// Copyright (C) 2019-2025, Dytallix Labs. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dytallix-labs/pqchain/block"
)

func TestExitErrorUnwrapsToUnderlyingError(t *testing.T) {
	cause := errors.New("boom")
	e := &exitError{code: block.ExitStorageCorruption, err: cause}

	require.Equal(t, "boom", e.Error())
	require.ErrorIs(t, e, cause)

	var target *exitError
	require.True(t, errors.As(e, &target))
	require.Equal(t, block.ExitStorageCorruption, target.code)
}

func TestRootCmdRejectsUnknownScheduleKind(t *testing.T) {
	rootCmd.SetArgs([]string{"--emission-schedule", "bogus", "--blocks-file", ""})
	err := rootCmd.Execute()
	require.Error(t, err)

	var exitErr *exitError
	require.True(t, errors.As(err, &exitErr))
	require.Equal(t, block.ExitConfigError, exitErr.code)
}
