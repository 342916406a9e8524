// Copyright (C) 2019-2025, Dytallix Labs. All rights reserved.
// See the file LICENSE for licensing terms.

package types

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
)

// Algorithm identifies a post-quantum signature scheme.
type Algorithm string

const (
	AlgDilithium5     Algorithm = "dilithium5"
	AlgFalcon1024     Algorithm = "falcon1024"
	AlgSphincsSimple  Algorithm = "sphincs_sha2_128s_simple"
	// algMockLegacy is accepted only under the pqcmock build tag, mirroring
	// the original implementation's "mock-blake3" legacy alias.
	algMockLegacy Algorithm = "mock-blake3"
)

var ErrUnsupportedAlgorithm = errors.New("algorithm: unsupported")

// ParseAlgorithm validates an algorithm string from the signed envelope.
// mockLegacyAllowed is true only in pqcmock builds (crypto/pqc wires this).
func ParseAlgorithm(s string, mockLegacyAllowed bool) (Algorithm, error) {
	switch Algorithm(s) {
	case AlgDilithium5, AlgFalcon1024, AlgSphincsSimple:
		return Algorithm(s), nil
	case algMockLegacy:
		if mockLegacyAllowed {
			return AlgDilithium5, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, s)
}

func (a Algorithm) String() string { return string(a) }

// SignedTransactionVersion is the only envelope version this module
// understands.
const SignedTransactionVersion = 1

// SignedTransaction is the wire envelope: an unsigned Transaction plus the
// PQC signature binding it to a specific public key and algorithm.
type SignedTransaction struct {
	Tx        Transaction `json:"tx"`
	PublicKey []byte      `json:"public_key"`
	Signature []byte      `json:"signature"`
	Algorithm Algorithm   `json:"algorithm"`
	Version   int         `json:"version"`
}

type signedTxWire struct {
	Tx        Transaction `json:"tx"`
	PublicKey string      `json:"public_key"`
	Signature string      `json:"signature"`
	Algorithm string      `json:"algorithm"`
	Version   int         `json:"version"`
}

func (s SignedTransaction) MarshalJSON() ([]byte, error) {
	return json.Marshal(signedTxWire{
		Tx:        s.Tx,
		PublicKey: base64.StdEncoding.EncodeToString(s.PublicKey),
		Signature: base64.StdEncoding.EncodeToString(s.Signature),
		Algorithm: string(s.Algorithm),
		Version:   s.Version,
	})
}

func (s *SignedTransaction) UnmarshalJSON(data []byte) error {
	var w signedTxWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	pk, err := base64.StdEncoding.DecodeString(w.PublicKey)
	if err != nil {
		return fmt.Errorf("signed transaction: invalid public_key encoding: %w", err)
	}
	sig, err := base64.StdEncoding.DecodeString(w.Signature)
	if err != nil {
		return fmt.Errorf("signed transaction: invalid signature encoding: %w", err)
	}
	s.Tx = w.Tx
	s.PublicKey = pk
	s.Signature = sig
	s.Algorithm = Algorithm(w.Algorithm)
	s.Version = w.Version
	return nil
}
