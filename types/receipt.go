// Copyright (C) 2019-2025, Dytallix Labs. All rights reserved.
// See the file LICENSE for licensing terms.

package types

// ReceiptVersion is the current on-disk/wire receipt format. Bumped only
// when the receipt schema changes in a way that breaks old readers.
const ReceiptVersion = 1

// Status is the terminal outcome of an executed transaction.
type Status string

const (
	StatusSuccess Status = "Success"
	StatusFailed  Status = "Failed"
)

// Receipt is the immutable, replay-deterministic outcome of executing a
// single transaction (spec.md §3). Once written it is never mutated;
// Version allows the on-disk format to evolve without breaking old
// readers.
type Receipt struct {
	Version     int     `json:"version"`
	TxHash      string  `json:"tx_hash"`
	Status      Status  `json:"status"`
	BlockHeight uint64  `json:"block_height"`
	Index       uint32  `json:"index"`
	From        Address `json:"from"`
	To          Address `json:"to"`
	Amount      Balance `json:"amount"`
	Fee         Balance `json:"fee"`
	Nonce       uint64  `json:"nonce"`
	Error       *string `json:"error,omitempty"`
	GasUsed     uint64  `json:"gas_used"`
	GasLimit    uint64  `json:"gas_limit"`
	GasPrice    uint64  `json:"gas_price"`
	GasRefund   uint64  `json:"gas_refund"`
	Success     bool    `json:"success"`
}
