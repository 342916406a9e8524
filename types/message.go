// Copyright (C) 2019-2025, Dytallix Labs. All rights reserved.
// See the file LICENSE for licensing terms.

package types

import (
	"encoding/json"
	"errors"
	"fmt"
)

// MaxDataMsgBytes bounds the payload of a Data message.
const MaxDataMsgBytes = 1 << 20 // 1 MiB

// MsgKind tags the variant of a transaction message.
type MsgKind string

const (
	MsgKindSend MsgKind = "send"
	MsgKindData MsgKind = "data"
)

var (
	ErrUnknownMsgKind  = errors.New("message: unknown kind")
	ErrDataMsgTooLarge = errors.New("message: data payload exceeds maximum size")
	ErrZeroAmount      = errors.New("message: amount must be nonzero")
)

// Msg is a single transaction message. Every Transaction carries one or
// more, each with a single sender.
type Msg interface {
	Kind() MsgKind
	Sender() Address
	// Validate performs message-local schema checks independent of chain
	// state (nonzero amount, recognized denom, payload bound). State-
	// dependent checks (balance, nonce) live in execution/mempool.
	Validate() error
}

// MsgSend transfers amount of denom from From to To.
type MsgSend struct {
	From   Address `json:"from"`
	To     Address `json:"to"`
	Denom  Denom   `json:"denom"`
	Amount Balance `json:"amount"`
}

func (m MsgSend) Kind() MsgKind    { return MsgKindSend }
func (m MsgSend) Sender() Address  { return m.From }

func (m MsgSend) Validate() error {
	if m.From.Empty() || m.To.Empty() {
		return ErrAddressEmpty
	}
	if !m.Denom.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownDenom, m.Denom)
	}
	if m.Amount.IsZero() {
		return ErrZeroAmount
	}
	return nil
}

// MsgData anchors an opaque payload on behalf of From. It carries no
// value transfer; its cost is driven by payload size in the gas schedule.
type MsgData struct {
	From Address `json:"from"`
	Data []byte  `json:"data"`
}

func (m MsgData) Kind() MsgKind   { return MsgKindData }
func (m MsgData) Sender() Address { return m.From }

func (m MsgData) Validate() error {
	if m.From.Empty() {
		return ErrAddressEmpty
	}
	if len(m.Data) > MaxDataMsgBytes {
		return fmt.Errorf("%w: %d > %d", ErrDataMsgTooLarge, len(m.Data), MaxDataMsgBytes)
	}
	return nil
}

// wireMsg is the tagged-union JSON encoding of a Msg, consumed by the
// canonical codec (types.Transaction's MarshalJSON/UnmarshalJSON).
type wireMsg struct {
	Type   MsgKind `json:"type"`
	From   Address `json:"from,omitempty"`
	To     Address `json:"to,omitempty"`
	Denom  Denom   `json:"denom,omitempty"`
	Amount *Balance `json:"amount,omitempty"`
	Data   []byte  `json:"data,omitempty"`
}

func msgToWire(m Msg) wireMsg {
	switch v := m.(type) {
	case MsgSend:
		amt := v.Amount
		return wireMsg{Type: MsgKindSend, From: v.From, To: v.To, Denom: v.Denom, Amount: &amt}
	case MsgData:
		return wireMsg{Type: MsgKindData, From: v.From, Data: v.Data}
	default:
		return wireMsg{}
	}
}

func wireToMsg(w wireMsg) (Msg, error) {
	switch w.Type {
	case MsgKindSend:
		if w.Amount == nil {
			return nil, fmt.Errorf("%w: send message missing amount", ErrUnknownMsgKind)
		}
		return MsgSend{From: w.From, To: w.To, Denom: w.Denom, Amount: *w.Amount}, nil
	case MsgKindData:
		return MsgData{From: w.From, Data: w.Data}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMsgKind, w.Type)
	}
}

// MarshalMsg implements the tagged-variant wire encoding for a bare Msg,
// used by callers (the codec package's sign-doc, tests) that need to embed
// a Msg in a larger structure without going through Transaction.
func MarshalMsg(m Msg) ([]byte, error) {
	return json.Marshal(msgToWire(m))
}

// UnmarshalMsg is the inverse of MarshalMsg.
func UnmarshalMsg(data []byte) (Msg, error) {
	var w wireMsg
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, err
	}
	return wireToMsg(w)
}
