package main

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/shopspring/decimal"

	"github.com/HumanFS/humanfs-apps-sdk/pkg/txs"
)

func (o *Operator) handleSend() error {
	fmt.Fprintln(o.out, "What is the recipient address?")
	to := o.readExtraArg("to")
	if !common.IsHexAddress(to) {
		fmt.Fprintln(o.out, "Invalid address format. Please provide a valid Ethereum address.")
		return nil
	}

	fmt.Fprintln(o.out, "How much of the native token do you want to send?")
	amountStr := o.readExtraArg("amount")
	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		fmt.Fprintf(o.out, "Invalid amount format: %s\n", err.Error())
		return nil
	}

	fmt.Fprintln(o.out, "Calldata (leave empty for a plain transfer):")
	data := o.readExtraArg("data")
	if data == "" {
		data = "0x"
	}

	return o.sendTransaction(to, amount, data)
}

func (o *Operator) sendTransaction(to string, amount decimal.Decimal, data string) error {
	wei := amount.Shift(nativeDecimals)
	if !wei.IsInteger() {
		fmt.Fprintf(o.out, "Amount %s has more than %d decimals.\n", amount.String(), nativeDecimals)
		return nil
	}

	res, err := o.apps.Txs.SendTransactions(o.ctx, txs.SendTransactionsParams{
		Txs: []txs.BaseTransaction{{To: to, Value: wei.String(), Data: data}},
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(o.out, "Transaction proposed. safeTxHash: %s\n", res.SafeTxHash)
	return nil
}

func (o *Operator) handleTx(args []string) error {
	if len(args) < 2 {
		fmt.Fprintln(o.out, "Usage: tx <safe_tx_hash>")
		return nil
	}

	details, err := o.apps.Txs.GetBySafeTxHash(o.ctx, args[1])
	if err != nil {
		return err
	}

	executedAt := "N/A"
	if details.ExecutedAt != nil {
		executedAt = fmt.Sprintf("%d", *details.ExecutedAt)
	}

	t := o.newTable()
	t.AppendHeader(table.Row{"Tx ID", "Status", "Executed At", "Tx Hash"})
	t.AppendSeparator()
	t.AppendRow(table.Row{details.TxID, details.TxStatus, executedAt, details.TxHash})
	t.Render()
	return nil
}

func (o *Operator) handleSign(s string) error {
	message := restAfter(s, 1)
	if message == "" {
		fmt.Fprintln(o.out, "Usage: sign <message>")
		return nil
	}

	res, err := o.apps.Txs.SignMessage(o.ctx, message)
	if err != nil {
		return err
	}
	if res.SafeTxHash != "" {
		fmt.Fprintf(o.out, "Signature requested. safeTxHash: %s\n", res.SafeTxHash)
	}
	if len(res.Signature) > 0 {
		fmt.Fprintf(o.out, "Signature: %s\n", res.Signature.String())
	}
	return nil
}
