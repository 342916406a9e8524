// Copyright (C) 2019-2025, Dytallix Labs. All rights reserved.
// See the file LICENSE for licensing terms.

package risk

import (
	"github.com/dytallix-labs/pqchain/gas"
	"github.com/dytallix-labs/pqchain/types"
)

const (
	reviewSecsLow      = 3600
	reviewSecsMedium   = 1800
	reviewSecsHigh     = 900
	reviewSecsCritical = 300
)

// Decide turns an oracle verification result into an admission decision
// for a transaction of the given kind and value, following spec.md §4.K's
// ordered rules: low-confidence review, high-value uplift, approve/reject
// bands, priority-ramped review, then the Unavailable and Failed
// fallbacks.
func Decide(kind gas.TxKind, amount types.Balance, vr VerificationResult, cfg Config) Decision {
	th := ThresholdsFor(kind, cfg)

	switch vr.Kind {
	case VerificationFailed:
		return Decision{Kind: DecisionAutoReject, Code: CodeTechnicalFailure, Reason: "verification failed"}

	case VerificationUnavailable:
		if vr.FallbackAllowed {
			return Decision{
				Kind:                DecisionManualReview,
				Priority:            PriorityHigh,
				EstimatedReviewSecs: reviewSecsHigh,
				Reason:              "verification unavailable, fallback to manual review",
			}
		}
		return Decision{Kind: DecisionAutoReject, Code: CodeServiceUnavailable, Reason: "verification unavailable, no fallback"}

	case VerificationVerified:
		return decideVerified(amount, vr, th)

	default:
		return Decision{Kind: DecisionAutoReject, Code: CodeTechnicalFailure, Reason: "unrecognized verification result"}
	}
}

func decideVerified(amount types.Balance, vr VerificationResult, th Thresholds) Decision {
	confidence := 0.0
	if vr.Confidence != nil {
		confidence = *vr.Confidence
	}

	// Rule 1: low confidence always forces manual review regardless of
	// how safe the risk score looks, since the score itself isn't trusted.
	if confidence < th.MinConfidence {
		return Decision{
			Kind:                DecisionManualReview,
			Priority:             PriorityHigh,
			EstimatedReviewSecs: reviewSecsHigh,
			Reason:              "verified result has low confidence",
		}
	}

	score := 1.0
	if vr.RiskScore != nil {
		score = *vr.RiskScore
	}

	// Rule 2: high-value transactions get a score uplift before the
	// approve/reject bands are checked.
	if !amount.IsZero() && amount.Cmp(th.HighValueThreshold) >= 0 {
		score += th.HighValueUplift
	}
	if score > 1 {
		score = 1
	}

	// Rule 3.
	if score <= th.AutoApproveMax {
		return Decision{Kind: DecisionAutoApprove, Reason: "risk score within auto-approve threshold"}
	}

	// Rule 4.
	if score >= th.AutoRejectMin {
		fraudProb := 0.0
		if vr.FraudProbability != nil {
			fraudProb = *vr.FraudProbability
		}
		if fraudProb >= th.FraudProbabilityThreshold {
			return Decision{Kind: DecisionAutoReject, Code: CodeFraudRisk, Reason: "risk score and fraud probability exceed auto-reject threshold"}
		}
		return Decision{Kind: DecisionAutoReject, Code: CodeSuspiciousActivity, Reason: "risk score exceeds auto-reject threshold"}
	}

	// Rule 5: priority ramps from Low to Critical as the score approaches
	// AutoRejectMin; Critical once within CriticalEpsilon of the reject
	// boundary.
	priority, secs := reviewPriority(score, th)
	return Decision{
		Kind:                DecisionManualReview,
		Priority:            priority,
		EstimatedReviewSecs: secs,
		Reason:              "risk score falls between auto-approve and auto-reject thresholds",
	}
}

func reviewPriority(score float64, th Thresholds) (ReviewPriority, uint32) {
	if th.AutoRejectMin-score <= th.CriticalEpsilon {
		return PriorityCritical, reviewSecsCritical
	}

	span := th.AutoRejectMin - th.AutoApproveMax
	if span <= 0 {
		return PriorityHigh, reviewSecsHigh
	}
	position := (score - th.AutoApproveMax) / span

	switch {
	case position < 0.33:
		return PriorityLow, reviewSecsLow
	case position < 0.66:
		return PriorityMedium, reviewSecsMedium
	default:
		return PriorityHigh, reviewSecsHigh
	}
}
