// Copyright (C) 2019-2025, Dytallix Labs. All rights reserved.
// See the file LICENSE for licensing terms.

// Package metrics collects the Prometheus instrumentation for the
// components that don't already own their own metrics (mempool registers
// its own, in mempool.NewMetrics): block execution, emission, fee
// burning, staking accrual, and risk-based admission decisions.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics bundles the node-wide collectors registered at startup.
type Metrics struct {
	TxExecuted         *prometheus.CounterVec
	GasUsedTotal       prometheus.Counter
	BlocksApplied      prometheus.Counter
	PipelineHalted     prometheus.Counter

	EmissionPerBlock   prometheus.Gauge
	CirculatingSupply  prometheus.Gauge

	FeesBurnedTotal    prometheus.Counter
	BurnEventsTotal    prometheus.Counter

	StakingRewardIndex prometheus.Gauge
	TotalStake         prometheus.Gauge

	RiskDecisions      *prometheus.CounterVec
}

// New constructs and registers every collector under namespace. reg may
// be nil, in which case the returned Metrics is usable but inert.
func New(reg prometheus.Registerer, namespace string) *Metrics {
	m := &Metrics{
		TxExecuted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "execution",
			Name:      "tx_total",
			Help:      "Number of transactions executed, by outcome (success/failed).",
		}, []string{"outcome"}),
		GasUsedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "execution",
			Name:      "gas_used_total",
			Help:      "Cumulative gas consumed across all executed transactions.",
		}),
		BlocksApplied: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "block",
			Name:      "applied_total",
			Help:      "Number of blocks successfully applied by the pipeline.",
		}),
		PipelineHalted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "block",
			Name:      "halted_total",
			Help:      "Number of times the pipeline halted on a determinism violation.",
		}),
		EmissionPerBlock: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "emission",
			Name:      "per_block_amount",
			Help:      "Micro-DRT emitted at the most recently accounted height.",
		}),
		CirculatingSupply: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "emission",
			Name:      "circulating_supply",
			Help:      "Total circulating DRT supply, in micro-units.",
		}),
		FeesBurnedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "burn",
			Name:      "fees_burned_total",
			Help:      "Cumulative fee amount burned, in the burn token's micro-units.",
		}),
		BurnEventsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "burn",
			Name:      "events_total",
			Help:      "Number of fee-burn events recorded.",
		}),
		StakingRewardIndex: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "staking",
			Name:      "reward_index",
			Help:      "Current scaled staking reward index.",
		}),
		TotalStake: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "staking",
			Name:      "total_stake",
			Help:      "Total staked DGT, in micro-units.",
		}),
		RiskDecisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "risk",
			Name:      "decisions_total",
			Help:      "Admission decisions, by kind (auto_approve/manual_review/auto_reject).",
		}, []string{"decision"}),
	}

	if reg != nil {
		reg.MustRegister(
			m.TxExecuted, m.GasUsedTotal, m.BlocksApplied, m.PipelineHalted,
			m.EmissionPerBlock, m.CirculatingSupply,
			m.FeesBurnedTotal, m.BurnEventsTotal,
			m.StakingRewardIndex, m.TotalStake,
			m.RiskDecisions,
		)
	}
	return m
}
