// Copyright (C) 2019-2025, Dytallix Labs. All rights reserved.
// See the file LICENSE for licensing terms.

package block

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassifyErr(t *testing.T) {
	require.Equal(t, ExitOK, ClassifyErr(nil))
	require.Equal(t, ExitDeterminismHalt, ClassifyErr(ErrDeterminismViolation))
	require.Equal(t, ExitDeterminismHalt, ClassifyErr(ErrHalted))
	require.Equal(t, ExitStorageCorruption, ClassifyErr(ErrStorageCommit))
	require.Equal(t, ExitConfigError, ClassifyErr(errors.New("something unrelated")))
}
