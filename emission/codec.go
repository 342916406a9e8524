// Copyright (C) 2019-2025, Dytallix Labs. All rights reserved.
// See the file LICENSE for licensing terms.

package emission

import (
	"encoding/binary"
	"encoding/json"

	"github.com/dytallix-labs/pqchain/types"
)

func encodeBalance(b types.Balance) []byte {
	raw, _ := json.Marshal(b)
	return raw
}

func decodeBalance(raw []byte) types.Balance {
	var b types.Balance
	if err := json.Unmarshal(raw, &b); err != nil {
		return types.ZeroBalance
	}
	return b
}

func encodeUint64(n uint64) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, n)
	return buf
}

func decodeUint64(raw []byte) uint64 {
	if len(raw) != 8 {
		return 0
	}
	return binary.BigEndian.Uint64(raw)
}
