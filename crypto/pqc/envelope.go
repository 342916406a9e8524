// Copyright (C) 2019-2025, Dytallix Labs. All rights reserved.
// See the file LICENSE for licensing terms.

package pqc

import (
	"fmt"

	"github.com/dytallix-labs/pqchain/codec"
	"github.com/dytallix-labs/pqchain/types"
)

// VerifyEnvelope checks that stx.Signature is a valid signature by
// stx.PublicKey over SHA3-256(canonical_json(stx.Tx)), the transaction
// digest defined in spec.md §4.A.
func VerifyEnvelope(stx types.SignedTransaction) error {
	if stx.Version != types.SignedTransactionVersion {
		return fmt.Errorf("pqc: unsupported envelope version %d", stx.Version)
	}
	digest, err := codec.TxDigest(stx.Tx)
	if err != nil {
		return err
	}
	return Verify(stx.PublicKey, digest[:], stx.Signature, stx.Algorithm)
}
