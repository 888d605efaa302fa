package main

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

const nativeDecimals = 18

func (o *Operator) handleBlock() error {
	number, err := o.apps.Eth.BlockNumber(o.ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(o.out, "Latest block: %d\n", number)
	return nil
}

func (o *Operator) handleEthBalance(args []string) error {
	addr, ok := o.addressArg(args, "eth-balance")
	if !ok {
		return nil
	}

	wei, err := o.apps.Eth.GetBalance(o.ctx, addr, "")
	if err != nil {
		return err
	}
	fmt.Fprintf(o.out, "Balance of %s: %s\n", addr.Hex(), fmtDec(decimal.NewFromBigInt(wei, -nativeDecimals)))
	return nil
}

func (o *Operator) handleCode(args []string) error {
	addr, ok := o.addressArg(args, "code")
	if !ok {
		return nil
	}

	code, err := o.apps.Eth.GetCode(o.ctx, addr, "")
	if err != nil {
		return err
	}
	if len(code) == 0 {
		fmt.Fprintf(o.out, "%s has no code.\n", addr.Hex())
		return nil
	}
	fmt.Fprintf(o.out, "%s has %d bytes of code.\n", addr.Hex(), len(code))
	return nil
}

func (o *Operator) handleNonce(args []string) error {
	addr, ok := o.addressArg(args, "nonce")
	if !ok {
		return nil
	}

	nonce, err := o.apps.Eth.GetTransactionCount(o.ctx, addr, "")
	if err != nil {
		return err
	}
	fmt.Fprintf(o.out, "Nonce of %s: %d\n", addr.Hex(), nonce)
	return nil
}

func (o *Operator) addressArg(args []string, command string) (common.Address, bool) {
	if len(args) < 2 {
		fmt.Fprintf(o.out, "Usage: %s <address>\n", command)
		return common.Address{}, false
	}
	if !common.IsHexAddress(args[1]) {
		fmt.Fprintln(o.out, "Invalid address format. Please provide a valid Ethereum address.")
		return common.Address{}, false
	}
	return common.HexToAddress(args[1]), true
}

func fmtDec(value decimal.Decimal) string {
	if value.Equal(value.Floor()) {
		return value.StringFixed(1)
	}

	return value.String()
}
