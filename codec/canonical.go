// Copyright (C) 2019-2025, Dytallix Labs. All rights reserved.
// See the file LICENSE for licensing terms.

// Package codec implements the canonical serialization and digest rules of
// spec.md §4.A: deterministic object key ordering, decimal-string 128-bit
// numbers, and a SHA3-256 transaction digest that signatures bind to.
package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"golang.org/x/crypto/sha3"

	"github.com/dytallix-labs/pqchain/types"
)

// ErrInvalidTransaction is returned when a byte string fails to parse as a
// canonical transaction.
var ErrInvalidTransaction = errors.New("codec: invalid transaction")

// CanonicalJSON re-serializes v (already one of the types.* wire-shaped
// structs, or anything implementing json.Marshaler consistently with them)
// into canonical form: object keys sorted lexicographically by codepoint,
// no insignificant whitespace, array order preserved. It works by marshaling
// v through the standard encoding/json package (whose struct tag order
// governs float/number/string rendering, notably types.Balance's
// decimal-string form) and then normalizing key order and whitespace.
func CanonicalJSON(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("codec: marshal: %w", err)
	}
	var generic any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&generic); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTransaction, err)
	}
	var buf bytes.Buffer
	if err := writeCanonical(&buf, generic); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeCanonical(buf *bytes.Buffer, v any) error {
	switch val := v.(type) {
	case nil:
		buf.WriteString("null")
	case bool:
		if val {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case json.Number:
		buf.WriteString(val.String())
	case string:
		encoded, err := json.Marshal(val)
		if err != nil {
			return fmt.Errorf("codec: string escape: %w", err)
		}
		buf.Write(encoded)
	case []any:
		buf.WriteByte('[')
		for i, elem := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeCanonical(buf, elem); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		buf.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			kb, err := json.Marshal(k)
			if err != nil {
				return fmt.Errorf("codec: key escape: %w", err)
			}
			buf.Write(kb)
			buf.WriteByte(':')
			if err := writeCanonical(buf, val[k]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("%w: unsupported type %T", ErrInvalidTransaction, v)
	}
	return nil
}

// Digest256 returns the SHA3-256 digest of b.
func Digest256(b []byte) [32]byte {
	return sha3.Sum256(b)
}

// TxDigest returns SHA3-256(canonical_json(tx)), the value PQC signatures
// bind to (spec.md §4.A).
func TxDigest(tx types.Transaction) ([32]byte, error) {
	cj, err := CanonicalJSON(tx)
	if err != nil {
		return [32]byte{}, err
	}
	return Digest256(cj), nil
}

// SignDoc is the envelope-style signing document (spec.md §4.A), used by
// account-sequenced flows in addition to the plain transaction digest.
type SignDoc struct {
	ChainID       string         `json:"chain_id"`
	AccountNumber uint64         `json:"account_number"`
	Sequence      uint64         `json:"sequence"`
	Msgs          []types.Msg    `json:"msgs"`
	Fee           *types.Balance `json:"fee,omitempty"`
	Memo          string         `json:"memo"`
}

type signDocWire struct {
	ChainID       string            `json:"chain_id"`
	AccountNumber uint64            `json:"account_number"`
	Sequence      uint64            `json:"sequence"`
	Msgs          []json.RawMessage `json:"msgs"`
	Fee           *types.Balance    `json:"fee,omitempty"`
	Memo          string            `json:"memo"`
}

// MarshalJSON encodes Msgs through the same tagged-union wire form
// Transaction uses, so a SignDoc and its underlying Transaction hash
// identically over their shared fields.
func (d SignDoc) MarshalJSON() ([]byte, error) {
	msgs := make([]json.RawMessage, len(d.Msgs))
	for i, m := range d.Msgs {
		raw, err := types.MarshalMsg(m)
		if err != nil {
			return nil, fmt.Errorf("codec: sign doc: %w", err)
		}
		msgs[i] = raw
	}
	return json.Marshal(signDocWire{
		ChainID:       d.ChainID,
		AccountNumber: d.AccountNumber,
		Sequence:      d.Sequence,
		Msgs:          msgs,
		Fee:           d.Fee,
		Memo:          d.Memo,
	})
}

// SignDocDigest returns SHA3-256(canonical_json(sign_doc)).
func SignDocDigest(doc SignDoc) ([32]byte, error) {
	cj, err := CanonicalJSON(doc)
	if err != nil {
		return [32]byte{}, err
	}
	return Digest256(cj), nil
}

// ParseTransaction decodes a canonical transaction byte string. It does not
// check the input itself; the round-trip law
// canonical_json(parse(canonical_json(tx))) == canonical_json(tx) holds
// because types.Transaction decodes and re-encodes the same wire shape.
func ParseTransaction(b []byte) (types.Transaction, error) {
	var tx types.Transaction
	if err := json.Unmarshal(b, &tx); err != nil {
		return types.Transaction{}, fmt.Errorf("%w: %s", ErrInvalidTransaction, err)
	}
	return tx, nil
}
