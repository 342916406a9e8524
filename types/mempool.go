// Copyright (C) 2019-2025, Dytallix Labs. All rights reserved.
// See the file LICENSE for licensing terms.

package types

import "time"

// MempoolEntry wraps a signed transaction with the admission-time metadata
// the priced mempool needs to order and evict it without re-deriving it on
// every comparison.
type MempoolEntry struct {
	Tx                SignedTransaction `json:"tx"`
	TxHash            string            `json:"tx_hash"`
	AdmissionTime     time.Time         `json:"admission_time"`
	ByteSize          int               `json:"byte_size"`
	EffectiveGasPrice uint64            `json:"effective_gas_price"`
}
