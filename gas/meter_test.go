// Copyright (C) 2019-2025, Dytallix Labs. All rights reserved.
// See the file LICENSE for licensing terms.

package gas

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMeterConsumeWithinLimit(t *testing.T) {
	m := NewMeter(1000)
	require.NoError(t, m.Consume(400, "intrinsic"))
	require.NoError(t, m.Consume(600, "transfer"))
	require.Equal(t, uint64(1000), m.GasUsed())
	require.Equal(t, uint64(0), m.Remaining())
}

func TestMeterConsumeOutOfGas(t *testing.T) {
	m := NewMeter(100)
	err := m.Consume(200, "intrinsic")
	require.ErrorIs(t, err, ErrOutOfGas)
	require.Equal(t, uint64(100), m.GasUsed())
}

func TestIntrinsicGasScalesByMessageCount(t *testing.T) {
	one := IntrinsicGas(TxKindSend, 200, 1, DefaultSchedule)
	two := IntrinsicGas(TxKindSend, 200, 2, DefaultSchedule)
	require.Greater(t, two, one)
}

func TestUpfrontFeeHappyPath(t *testing.T) {
	fee, err := UpfrontFee(21_000, 5)
	require.NoError(t, err)
	require.Equal(t, "105000", fee.String())
}

func TestUpfrontFeeOverflowBoundary(t *testing.T) {
	_, err := UpfrontFee(math.MaxUint64, math.MaxUint64)
	require.ErrorIs(t, err, ErrFeeOverflow)
}

func TestUpfrontFeeZero(t *testing.T) {
	fee, err := UpfrontFee(0, 5)
	require.NoError(t, err)
	require.True(t, fee.IsZero())
}
