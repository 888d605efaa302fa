package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/c-bata/go-prompt"

	"github.com/HumanFS/humanfs-apps-sdk/pkg/rpc"
	"github.com/HumanFS/humanfs-apps-sdk/pkg/sdk"
	"github.com/HumanFS/humanfs-apps-sdk/pkg/sign"
)

type Operator struct {
	ctx  context.Context
	apps *sdk.SDK
	out  io.Writer
	// owner signs hashes for owner-sign; nil when no owner key is configured.
	owner *sign.EthereumSigner

	exitCh chan struct{}
}

func NewOperator(ctx context.Context, apps *sdk.SDK, out io.Writer) *Operator {
	return &Operator{
		ctx:    ctx,
		apps:   apps,
		out:    out,
		exitCh: make(chan struct{}),
	}
}

func (o *Operator) Complete(d prompt.Document) []prompt.Suggest {
	return prompt.FilterHasPrefix(o.complete(d), d.GetWordBeforeCursor(), true)
}

func (o *Operator) complete(d prompt.Document) []prompt.Suggest {
	args := strings.Split(d.TextBeforeCursor(), " ")

	if len(args) < 2 {
		return []prompt.Suggest{
			{Text: "info", Description: "Show the Safe the app runs on"},
			{Text: "chain", Description: "Show the chain of the Safe"},
			{Text: "env", Description: "Show the host environment"},
			{Text: "balances", Description: "List Safe balances in a fiat currency"},
			{Text: "address-book", Description: "List the address book (asks for permission)"},
			{Text: "permissions", Description: "List permissions granted to the app"},
			{Text: "request-permission", Description: "Ask the host for a permission"},
			{Text: "hash", Description: "Compute the personal message hash of a message"},
			{Text: "verify", Description: "Check an EIP-1271 signature of a message hash"},
			{Text: "verify-message", Description: "Check an EIP-1271 signature of a message"},
			{Text: "owner-signature", Description: "Check an owner ECDSA signature of a message hash"},
			{Text: "owner-sign", Description: "Sign a message hash with the configured owner key"},
			{Text: "block", Description: "Show the latest block number"},
			{Text: "eth-balance", Description: "Show the native balance of an address"},
			{Text: "code", Description: "Show the size of the code at an address"},
			{Text: "nonce", Description: "Show the transaction count of an address"},
			{Text: "send", Description: "Propose a transaction to the Safe"},
			{Text: "tx", Description: "Look up a transaction by safeTxHash"},
			{Text: "sign", Description: "Ask the Safe to sign a message"},
			{Text: "exit", Description: "Exit the application"},
		}
	}

	if len(args) < 3 {
		switch args[0] {
		case "balances":
			return []prompt.Suggest{
				{Text: "usd", Description: "US dollar"},
				{Text: "eur", Description: "Euro"},
				{Text: "gbp", Description: "Pound sterling"},
			}
		case "request-permission":
			return []prompt.Suggest{
				{Text: rpc.GetAddressBookMethod.String(), Description: "Read the address book"},
			}
		default:
			return nil
		}
	}

	return nil
}

func (o *Operator) Execute(s string) {
	args := strings.Fields(s)
	if len(args) == 0 {
		return
	}

	var err error
	switch args[0] {
	case "info":
		err = o.handleInfo()
	case "chain":
		err = o.handleChain()
	case "env":
		err = o.handleEnv()
	case "balances":
		err = o.handleBalances(args)
	case "address-book":
		err = o.handleAddressBook()
	case "permissions":
		err = o.handlePermissions()
	case "request-permission":
		err = o.handleRequestPermission(args)
	case "hash":
		o.handleHash(s)
	case "verify":
		o.handleVerify(args)
	case "verify-message":
		o.handleVerifyMessage(args, s)
	case "owner-signature":
		o.handleOwnerSignature(args)
	case "owner-sign":
		err = o.handleOwnerSign(args)
	case "block":
		err = o.handleBlock()
	case "eth-balance":
		err = o.handleEthBalance(args)
	case "code":
		err = o.handleCode(args)
	case "nonce":
		err = o.handleNonce(args)
	case "send":
		err = o.handleSend()
	case "tx":
		err = o.handleTx(args)
	case "sign":
		err = o.handleSign(s)
	case "exit":
		o.exit()
	default:
		fmt.Fprintf(o.out, "Unknown command: %s\n", s)
	}

	if err != nil {
		fmt.Fprintf(o.out, "Command %s failed: %s\n", args[0], err.Error())
	}
}

func (o *Operator) Wait() <-chan struct{} {
	return o.exitCh
}

func (o *Operator) exit() {
	select {
	case <-o.exitCh:
	default:
		close(o.exitCh)
	}
}

func (o *Operator) readExtraArg(name string) string {
	promptPrefix := fmt.Sprintf("{%s}>>> ", name)
	return prompt.Input(promptPrefix, emptyCompleter,
		prompt.OptionTitle("Safe Probe"),
		prompt.OptionPrefixTextColor(prompt.Yellow),
	)
}

// restAfter returns s without its first n space separated words.
func restAfter(s string, n int) string {
	s = strings.TrimSpace(s)
	for i := 0; i < n; i++ {
		idx := strings.IndexByte(s, ' ')
		if idx < 0 {
			return ""
		}
		s = strings.TrimLeft(s[idx:], " ")
	}
	return s
}
