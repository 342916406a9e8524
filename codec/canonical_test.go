// Copyright (C) 2019-2025, Dytallix Labs. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dytallix-labs/pqchain/types"
)

func sampleTx(t *testing.T) types.Transaction {
	t.Helper()
	amt, err := types.ParseBalance("1000")
	require.NoError(t, err)
	from, err := types.NewAddress("alice")
	require.NoError(t, err)
	to, err := types.NewAddress("bob")
	require.NoError(t, err)
	return types.Transaction{
		ChainID:  "pqchain-1",
		Nonce:    1,
		Msgs:     []types.Msg{types.MsgSend{From: from, To: to, Denom: types.DenomDGT, Amount: amt}},
		GasLimit: 21000,
		GasPrice: 1,
	}
}

func TestCanonicalJSONKeyOrdering(t *testing.T) {
	tx := sampleTx(t)
	b, err := CanonicalJSON(tx)
	require.NoError(t, err)
	require.NotContains(t, string(b), " ")
	require.NotContains(t, string(b), "\n")
	require.Equal(t, `{"chain_id":"pqchain-1","gas_limit":21000,"gas_price":1,"memo":"","msgs":[{"amount":"1000","denom":"udgt","from":"alice","to":"bob","type":"send"}],"nonce":1}`, string(b))
}

func TestCanonicalJSONRoundTrip(t *testing.T) {
	tx := sampleTx(t)
	first, err := CanonicalJSON(tx)
	require.NoError(t, err)

	parsed, err := ParseTransaction(first)
	require.NoError(t, err)

	second, err := CanonicalJSON(parsed)
	require.NoError(t, err)

	require.Equal(t, string(first), string(second))
}

func TestCanonicalJSONDeterministic(t *testing.T) {
	tx := sampleTx(t)
	a, err := CanonicalJSON(tx)
	require.NoError(t, err)
	b, err := CanonicalJSON(tx)
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestTxDigestStable(t *testing.T) {
	tx := sampleTx(t)
	d1, err := TxDigest(tx)
	require.NoError(t, err)
	d2, err := TxDigest(tx)
	require.NoError(t, err)
	require.Equal(t, d1, d2)

	tx.Nonce = 2
	d3, err := TxDigest(tx)
	require.NoError(t, err)
	require.NotEqual(t, d1, d3)
}

func TestParseTransactionInvalid(t *testing.T) {
	_, err := ParseTransaction([]byte(`{not json`))
	require.ErrorIs(t, err, ErrInvalidTransaction)
}

func TestSignDocDigest(t *testing.T) {
	tx := sampleTx(t)
	doc := SignDoc{
		ChainID:       tx.ChainID,
		AccountNumber: 7,
		Sequence:      tx.Nonce,
		Msgs:          tx.Msgs,
		Memo:          tx.Memo,
	}
	d1, err := SignDocDigest(doc)
	require.NoError(t, err)
	d2, err := SignDocDigest(doc)
	require.NoError(t, err)
	require.Equal(t, d1, d2)
}
