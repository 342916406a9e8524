// Copyright (C) 2019-2025, Dytallix Labs. All rights reserved.
// See the file LICENSE for licensing terms.

package types

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrNoMessages      = errors.New("transaction: must carry at least one message")
	ErrMixedSenders    = errors.New("transaction: all messages must share a sender")
	ErrMissingChainID  = errors.New("transaction: missing chain_id")
	ErrMissingGasParams = errors.New("transaction: missing both fee and gas_limit/gas_price")
)

// Transaction is the unsigned, chain-agnostic transaction body. Its
// canonical JSON form (via codec.CanonicalJSON) is what gets hashed and
// signed.
type Transaction struct {
	ChainID  string  `json:"chain_id"`
	Nonce    uint64  `json:"nonce"`
	Msgs     []Msg   `json:"msgs"`
	Fee      *Balance `json:"fee,omitempty"`
	Memo     string  `json:"memo"`
	GasLimit uint64  `json:"gas_limit"`
	GasPrice uint64  `json:"gas_price"`
}

// txWire mirrors Transaction but with a JSON-tagged-union Msgs slice, used
// only for marshaling/unmarshaling.
type txWire struct {
	ChainID  string    `json:"chain_id"`
	Nonce    uint64    `json:"nonce"`
	Msgs     []wireMsg `json:"msgs"`
	Fee      *Balance  `json:"fee,omitempty"`
	Memo     string    `json:"memo"`
	GasLimit uint64    `json:"gas_limit"`
	GasPrice uint64    `json:"gas_price"`
}

func (t Transaction) MarshalJSON() ([]byte, error) {
	w := txWire{
		ChainID:  t.ChainID,
		Nonce:    t.Nonce,
		Fee:      t.Fee,
		Memo:     t.Memo,
		GasLimit: t.GasLimit,
		GasPrice: t.GasPrice,
	}
	w.Msgs = make([]wireMsg, len(t.Msgs))
	for i, m := range t.Msgs {
		w.Msgs[i] = msgToWire(m)
	}
	return json.Marshal(w)
}

func (t *Transaction) UnmarshalJSON(data []byte) error {
	var w txWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	msgs := make([]Msg, len(w.Msgs))
	for i, wm := range w.Msgs {
		m, err := wireToMsg(wm)
		if err != nil {
			return err
		}
		msgs[i] = m
	}
	t.ChainID = w.ChainID
	t.Nonce = w.Nonce
	t.Msgs = msgs
	t.Fee = w.Fee
	t.Memo = w.Memo
	t.GasLimit = w.GasLimit
	t.GasPrice = w.GasPrice
	return nil
}

// Sender returns the single sender shared by every message in the
// transaction, validating the single-sender invariant along the way.
func (t Transaction) Sender() (Address, error) {
	if len(t.Msgs) == 0 {
		return "", ErrNoMessages
	}
	sender := t.Msgs[0].Sender()
	for _, m := range t.Msgs[1:] {
		if m.Sender() != sender {
			return "", ErrMixedSenders
		}
	}
	return sender, nil
}

// GasParams resolves (gas_limit, gas_price) honoring the legacy
// fallback described in spec.md §3/§4.E: when both gas_limit and
// gas_price are present and nonzero they are used as-is; otherwise a
// legacy transaction collapses its flat fee into gas_limit with an
// implicit gas_price of 1.
func (t Transaction) GasParams() (gasLimit, gasPrice uint64, err error) {
	if t.GasLimit > 0 && t.GasPrice > 0 {
		return t.GasLimit, t.GasPrice, nil
	}
	if t.Fee != nil {
		if !t.Fee.v.IsUint64() {
			return 0, 0, fmt.Errorf("%w: legacy fee exceeds uint64", ErrMissingGasParams)
		}
		return t.Fee.v.Uint64(), 1, nil
	}
	return 0, 0, ErrMissingGasParams
}

// Validate performs schema-level checks shared by mempool admission and
// execution pre-validation.
func (t Transaction) Validate() error {
	if t.ChainID == "" {
		return ErrMissingChainID
	}
	if len(t.Msgs) == 0 {
		return ErrNoMessages
	}
	if _, err := t.Sender(); err != nil {
		return err
	}
	for _, m := range t.Msgs {
		if err := m.Validate(); err != nil {
			return err
		}
	}
	if _, _, err := t.GasParams(); err != nil {
		return err
	}
	return nil
}
