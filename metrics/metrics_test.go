// Copyright (C) 2019-2025, Dytallix Labs. All rights reserved.
// See the file LICENSE for licensing terms.

package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func TestNewRegistersAllCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg, "pqchain")
	require.NotNil(t, m)

	m.TxExecuted.WithLabelValues("success").Inc()
	m.RiskDecisions.WithLabelValues("auto_approve").Inc()

	families, err := reg.Gather()
	require.NoError(t, err)
	require.NotEmpty(t, families)
}

func TestNewWithNilRegistererDoesNotPanic(t *testing.T) {
	require.NotPanics(t, func() {
		m := New(nil, "pqchain")
		m.BlocksApplied.Inc()
	})
}
