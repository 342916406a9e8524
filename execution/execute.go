// Copyright (C) 2019-2025, Dytallix Labs. All rights reserved.
// See the file LICENSE for licensing terms.

package execution

import (
	"fmt"

	"github.com/dytallix-labs/pqchain/codec"
	"github.com/dytallix-labs/pqchain/gas"
	"github.com/dytallix-labs/pqchain/state"
	"github.com/dytallix-labs/pqchain/types"
)

// Result is the outcome of executing a single transaction against state.
type Result struct {
	Receipt types.Receipt
	Success bool
	GasUsed uint64
}

// Execute runs tx against st in the fixed step order spec.md §4.E defines.
// It never returns a non-nil error for ordinary transaction failures
// (insufficient funds, bad nonce, out of gas); those produce a Failed
// receipt. A non-nil error here means tx could not be interpreted at all
// (e.g. admission should have rejected it and did not), which the block
// pipeline treats as a determinism violation.
func Execute(tx types.Transaction, st state.Store, height uint64, index uint32, sched gas.Schedule) (Result, error) {
	from, err := tx.Sender()
	if err != nil {
		return Result{}, fmt.Errorf("execution: malformed transaction reached executor: %w", err)
	}

	txHash, err := digestHex(tx)
	if err != nil {
		return Result{}, err
	}

	// Step 1: nonce pre-validation. No state touched on either branch.
	expected := st.NonceOf(from)
	if expected != tx.Nonce {
		return failed(tx, txHash, from, height, index, 0, 0, 0,
			(&InvalidNonceError{Expected: expected, Actual: tx.Nonce}).Error()), nil
	}
	// Schema, denom and amount checks are repeated here after admission.
	if err := tx.Validate(); err != nil {
		return failed(tx, txHash, from, height, index, 0, 0, 0, err.Error()), nil
	}

	// Step 2: gas params, legacy-fallback aware.
	gasLimit, gasPrice, err := tx.GasParams()
	if err != nil {
		return failed(tx, txHash, from, height, index, 0, 0, 0, err.Error()), nil
	}

	// Step 3: upfront fee.
	upfrontFee, err := gas.UpfrontFee(gasLimit, gasPrice)
	if err != nil {
		return failed(tx, txHash, from, height, index, gasLimit, gasPrice, 0, err.Error()), nil
	}

	sendMsg, transferAmount := firstSend(tx)
	sendTotals, err := sendTotalsByDenom(tx)
	if err != nil {
		return failed(tx, txHash, from, height, index, gasLimit, gasPrice, 0,
			fmt.Errorf("%w: %s", ErrInsufficientFunds, err).Error()), nil
	}
	feeBalance := st.BalanceOf(from, types.DenomDGT)

	// Fees are always charged in DGT. Every Send message's amount is
	// checked, not just the first: requiredFeeDenom accumulates the upfront
	// fee plus the sum of all DGT-denominated Send amounts, and every other
	// denom moved by a Send message is checked against its own balance.
	requiredFeeDenom := upfrontFee
	if dgtSent, ok := sendTotals[types.DenomDGT]; ok {
		sum, err := upfrontFee.Add(dgtSent)
		if err != nil {
			return failed(tx, txHash, from, height, index, gasLimit, gasPrice, 0,
				fmt.Errorf("%w: %s", ErrInsufficientFunds, err).Error()), nil
		}
		requiredFeeDenom = sum
	}
	if feeBalance.LessThan(requiredFeeDenom) {
		return failed(tx, txHash, from, height, index, gasLimit, gasPrice, 0,
			fmt.Errorf("%w: required %s, available %s", ErrInsufficientFunds, requiredFeeDenom, feeBalance).Error()), nil
	}
	for denom, amount := range sendTotals {
		if denom == types.DenomDGT {
			continue
		}
		otherBalance := st.BalanceOf(from, denom)
		if otherBalance.LessThan(amount) {
			return failed(tx, txHash, from, height, index, gasLimit, gasPrice, 0,
				fmt.Errorf("%w: required %s %s, available %s", ErrInsufficientFunds, amount, denom, otherBalance).Error()), nil
		}
	}

	meter := gas.NewMeter(gasLimit)

	// Step 4: deduct upfront fee. This change survives any later revert.
	newFeeBalance, err := feeBalance.Sub(upfrontFee)
	if err != nil {
		return failed(tx, txHash, from, height, index, gasLimit, gasPrice, 0, err.Error()), nil
	}
	st.SetBalance(from, types.DenomDGT, newFeeBalance)

	collectorBalance := st.BalanceOf(types.FeeCollectorAddress, types.DenomDGT)
	st.SetBalance(types.FeeCollectorAddress, types.DenomDGT, collectorBalance.SaturatingAdd(upfrontFee))

	// Step 5: intrinsic gas. On OutOfGas, revert everything recorded since
	// (nothing yet, since intrinsic charging touches no state) but the fee
	// stays charged.
	intrinsicSnap := st.Snapshot()
	txSize := wireSize(tx)
	intrinsic := gas.IntrinsicGas(txKind(tx), txSize, len(tx.Msgs), sched)
	if err := meter.Consume(intrinsic, "intrinsic"); err != nil {
		st.Restore(intrinsicSnap)
		return failed(tx, txHash, from, height, index, gasLimit, gasPrice, meter.GasUsed(), "OutOfGas"), nil
	}

	// Step 6: execute the message body. Any OutOfGas here reverts only this
	// step's state changes; the fee (step 4) is retained.
	execSnap := st.Snapshot()
	if err := applyMsgs(tx, st, meter, from, sched); err != nil {
		st.Restore(execSnap)
		return failed(tx, txHash, from, height, index, gasLimit, gasPrice, meter.GasUsed(), "OutOfGas"), nil
	}

	// Step 7: commit. Success never loses gas and never refunds.
	st.IncrementNonce(from)

	to := types.Address("")
	if sendMsg != nil {
		to = sendMsg.To
	}
	receipt := types.Receipt{
		Version:     types.ReceiptVersion,
		TxHash:      txHash,
		Status:      types.StatusSuccess,
		BlockHeight: height,
		Index:       index,
		From:        from,
		To:          to,
		Amount:      transferAmount,
		Fee:         upfrontFee,
		Nonce:       tx.Nonce,
		GasUsed:     meter.GasUsed(),
		GasLimit:    gasLimit,
		GasPrice:    gasPrice,
		GasRefund:   0,
		Success:     true,
	}
	return Result{Receipt: receipt, Success: true, GasUsed: meter.GasUsed()}, nil
}

func failed(tx types.Transaction, txHash string, from types.Address, height uint64, index uint32, gasLimit, gasPrice, gasUsed uint64, errMsg string) Result {
	r := types.Receipt{
		Version:     types.ReceiptVersion,
		TxHash:      txHash,
		Status:      types.StatusFailed,
		BlockHeight: height,
		Index:       index,
		From:        from,
		Nonce:       tx.Nonce,
		Error:       &errMsg,
		GasUsed:     gasUsed,
		GasLimit:    gasLimit,
		GasPrice:    gasPrice,
		GasRefund:   0,
		Success:     false,
	}
	return Result{Receipt: r, Success: false, GasUsed: gasUsed}
}

func digestHex(tx types.Transaction) (string, error) {
	d, err := codec.TxDigest(tx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", d), nil
}

func wireSize(tx types.Transaction) int {
	b, err := codec.CanonicalJSON(tx)
	if err != nil {
		return 0
	}
	return len(b)
}

func txKind(tx types.Transaction) gas.TxKind {
	for _, m := range tx.Msgs {
		if m.Kind() == types.MsgKindSend {
			return gas.TxKindSend
		}
	}
	return gas.TxKindData
}

// firstSend returns the first Send message in tx (if any) and its amount.
// A tx with no Send message (pure data-anchor) has a zero transfer amount.
// The receipt's singular To/Amount fields report only this first leg; a tx
// carrying more than one Send message (types.Transaction.Validate permits
// several, all from the same sender) is fully applied by applyMsgs, but
// its receipt summarizes only the first transfer. sendTotalsByDenom is
// what guards funds sufficiency across every leg, not just this one.
func firstSend(tx types.Transaction) (*types.MsgSend, types.Balance) {
	for _, m := range tx.Msgs {
		if send, ok := m.(types.MsgSend); ok {
			s := send
			return &s, s.Amount
		}
	}
	return nil, types.ZeroBalance
}

// sendTotalsByDenom sums every Send message's amount in tx, grouped by
// denom, so the upfront-funds precheck covers every transfer a multi-Send
// transaction makes rather than just the first.
func sendTotalsByDenom(tx types.Transaction) (map[types.Denom]types.Balance, error) {
	totals := make(map[types.Denom]types.Balance)
	for _, m := range tx.Msgs {
		send, ok := m.(types.MsgSend)
		if !ok {
			continue
		}
		sum, err := totals[send.Denom].Add(send.Amount)
		if err != nil {
			return nil, err
		}
		totals[send.Denom] = sum
	}
	return totals, nil
}

// applyMsgs consumes the fixed-order kv gas costs and mutates state for
// each message in tx, in message order. A Send message performs the four
// fixed-order balance touches from spec.md §4.E step 6; a Data message
// anchors its payload with a single kv_write.
func applyMsgs(tx types.Transaction, st state.Store, meter *gas.Meter, from types.Address, sched gas.Schedule) error {
	for i, m := range tx.Msgs {
		switch msg := m.(type) {
		case types.MsgSend:
			if err := meter.Consume(sched.KVRead, "kv_read_from"); err != nil {
				return err
			}
			fromBal := st.BalanceOf(msg.From, msg.Denom)
			if err := meter.Consume(sched.KVRead, "kv_read_to"); err != nil {
				return err
			}
			toBal := st.BalanceOf(msg.To, msg.Denom)

			newFrom, err := fromBal.Sub(msg.Amount)
			if err != nil {
				return err
			}
			newTo, err := toBal.Add(msg.Amount)
			if err != nil {
				return err
			}

			if err := meter.Consume(sched.KVWrite, "kv_write_from"); err != nil {
				return err
			}
			st.SetBalance(msg.From, msg.Denom, newFrom)
			if err := meter.Consume(sched.KVWrite, "kv_write_to"); err != nil {
				return err
			}
			st.SetBalance(msg.To, msg.Denom, newTo)
		case types.MsgData:
			if err := meter.Consume(sched.KVWrite, "kv_write_data"); err != nil {
				return err
			}
			key := fmt.Sprintf("data/%s/%d", from, i)
			st.Put(key, msg.Data)
		}
	}
	return nil
}
