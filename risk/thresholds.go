// Copyright (C) 2019-2025, Dytallix Labs. All rights reserved.
// See the file LICENSE for licensing terms.

package risk

import (
	"github.com/dytallix-labs/pqchain/gas"
	"github.com/dytallix-labs/pqchain/types"
)

// Thresholds configures the score boundaries and uplift rules Decide
// applies for one transaction kind. Scores and probabilities are in
// [0, 1]; lower risk_score means safer.
type Thresholds struct {
	// MinConfidence: a Verified result with confidence below this is
	// treated as too unreliable to trust outright (rule 1).
	MinConfidence float64

	// HighValueThreshold: transactions moving at least this much trigger
	// the high-value uplift (rule 2).
	HighValueThreshold types.Balance
	HighValueUplift    float64

	// AutoApproveMax: effective risk score at or below this auto-approves
	// (rule 3).
	AutoApproveMax float64

	// AutoRejectMin: effective risk score at or above this auto-rejects
	// (rule 4).
	AutoRejectMin float64

	// FraudProbabilityThreshold: at or above this, AutoReject uses
	// FraudRisk instead of SuspiciousActivity.
	FraudProbabilityThreshold float64

	// CriticalEpsilon: a ManualReview score within this distance of
	// AutoRejectMin escalates to Critical priority (rule 5).
	CriticalEpsilon float64
}

// DefaultSendThresholds governs value-transfer transactions. Send moves
// funds directly, so it is the tightest-gated kind.
var DefaultSendThresholds = Thresholds{
	MinConfidence:             0.5,
	HighValueThreshold:        types.NewBalance(1_000_000),
	HighValueUplift:           0.15,
	AutoApproveMax:            0.3,
	AutoRejectMin:             0.8,
	FraudProbabilityThreshold: 0.7,
	CriticalEpsilon:           0.05,
}

// DefaultDataThresholds governs data-anchor transactions, which move no
// value and so tolerate a wider approve band and a higher reject bar.
var DefaultDataThresholds = Thresholds{
	MinConfidence:             0.4,
	HighValueThreshold:        types.NewBalance(1_000_000),
	HighValueUplift:           0.10,
	AutoApproveMax:            0.5,
	AutoRejectMin:             0.9,
	FraudProbabilityThreshold: 0.7,
	CriticalEpsilon:           0.05,
}

// ThresholdsFor returns the configured thresholds for a transaction kind.
func ThresholdsFor(kind gas.TxKind, cfg Config) Thresholds {
	if kind == gas.TxKindData {
		return cfg.Data
	}
	return cfg.Send
}

// Config bundles thresholds per transaction kind. Zero value is invalid;
// use DefaultConfig.
type Config struct {
	Send Thresholds
	Data Thresholds
}

// DefaultConfig pairs DefaultSendThresholds and DefaultDataThresholds.
var DefaultConfig = Config{Send: DefaultSendThresholds, Data: DefaultDataThresholds}
