// Copyright (C) 2019-2025, Dytallix Labs. All rights reserved.
// See the file LICENSE for licensing terms.

package mempool

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the counters spec.md §4.F requires: admitted, rejected by
// reason, evicted by reason, and gossip duplicates.
type Metrics struct {
	Admitted         prometheus.Counter
	RejectedByReason *prometheus.CounterVec
	EvictedByReason  *prometheus.CounterVec
	GossipDuplicate  prometheus.Counter
}

// NewMetrics constructs and registers mempool counters under namespace.
func NewMetrics(reg prometheus.Registerer, namespace string) *Metrics {
	m := &Metrics{
		Admitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "mempool",
			Name:      "admitted_total",
			Help:      "Number of transactions admitted to the mempool.",
		}),
		RejectedByReason: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "mempool",
			Name:      "rejected_total",
			Help:      "Number of transactions rejected, by reason.",
		}, []string{"reason"}),
		EvictedByReason: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "mempool",
			Name:      "evicted_total",
			Help:      "Number of transactions evicted, by reason.",
		}, []string{"reason"}),
		GossipDuplicate: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "mempool",
			Name:      "gossip_duplicate_total",
			Help:      "Number of gossiped transactions suppressed as duplicates.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.Admitted, m.RejectedByReason, m.EvictedByReason, m.GossipDuplicate)
	}
	return m
}

// noopMetrics is used by callers (tests, or a pool constructed without a
// registry) that don't care about metrics wiring.
func noopMetrics() *Metrics { return NewMetrics(nil, "pqchain") }
