package main

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"

	"github.com/HumanFS/humanfs-apps-sdk/pkg/rpc"
	"github.com/HumanFS/humanfs-apps-sdk/pkg/wallet"
)

func (o *Operator) newTable() table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(o.out)
	return t
}

func (o *Operator) handleInfo() error {
	info, err := o.apps.Safe.GetInfo(o.ctx)
	if err != nil {
		return err
	}

	t := o.newTable()
	t.AppendHeader(table.Row{"Field", "Value"})
	t.AppendSeparator()
	t.AppendRow(table.Row{"Address", info.SafeAddress.Hex()})
	t.AppendRow(table.Row{"Chain ID", info.ChainID})
	t.AppendRow(table.Row{"Threshold", fmt.Sprintf("%d of %d", info.Threshold, len(info.Owners))})
	for _, owner := range info.Owners {
		t.AppendRow(table.Row{"Owner", owner.Hex()})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, AutoMerge: true},
	})
	t.Render()
	return nil
}

func (o *Operator) handleChain() error {
	chain, err := o.apps.Safe.GetChainInfo(o.ctx)
	if err != nil {
		return err
	}

	t := o.newTable()
	t.AppendHeader(table.Row{"ID", "Name", "Short Name", "Currency", "Decimals"})
	t.AppendSeparator()
	t.AppendRow(table.Row{chain.ChainID, chain.ChainName, chain.ShortName, chain.NativeCurrency.Symbol, chain.NativeCurrency.Decimals})
	t.Render()
	return nil
}

func (o *Operator) handleEnv() error {
	env, err := o.apps.Safe.GetEnvironmentInfo(o.ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(o.out, "Origin: %s\n", env.Origin)
	return nil
}

func (o *Operator) handleBalances(args []string) error {
	currency := ""
	if len(args) > 1 {
		currency = args[1]
	}

	balances, err := o.apps.Safe.GetBalances(o.ctx, currency)
	if err != nil {
		return err
	}

	t := o.newTable()
	t.AppendHeader(table.Row{"Token", "Balance", "Fiat Balance", "Fiat Conversion"})
	t.AppendSeparator()
	for _, item := range balances.Items {
		amount := item.Balance.Shift(-int32(item.TokenInfo.Decimals))
		t.AppendRow(table.Row{item.TokenInfo.Symbol, amount.String(), item.FiatBalance.StringFixed(2), item.FiatConversion.String()})
	}
	t.AppendFooter(table.Row{"Total", "", balances.FiatTotal.StringFixed(2), ""})
	t.Render()
	return nil
}

func (o *Operator) handleAddressBook() error {
	items, err := o.apps.Safe.GetAddressBook(o.ctx)
	if err != nil {
		return err
	}

	if len(items) == 0 {
		fmt.Fprintln(o.out, "Address book is empty.")
		return nil
	}

	t := o.newTable()
	t.AppendHeader(table.Row{"Name", "Address", "Chain ID"})
	t.AppendSeparator()
	for _, item := range items {
		t.AppendRow(table.Row{item.Name, item.Address.Hex(), item.ChainID})
	}
	t.Render()
	return nil
}

func (o *Operator) handlePermissions() error {
	permissions, err := o.apps.Wallet.GetPermissions(o.ctx)
	if err != nil {
		return err
	}
	o.renderPermissions(permissions)
	return nil
}

func (o *Operator) handleRequestPermission(args []string) error {
	if len(args) < 2 {
		fmt.Fprintln(o.out, "Usage: request-permission <method>")
		return nil
	}

	granted, err := o.apps.Wallet.RequestPermissions(o.ctx, []wallet.PermissionRequest{
		wallet.NewPermissionRequest(rpc.Method(args[1])),
	})
	if err != nil {
		return err
	}
	o.renderPermissions(granted)
	return nil
}

func (o *Operator) renderPermissions(permissions []wallet.Permission) {
	if len(permissions) == 0 {
		fmt.Fprintln(o.out, "No permissions granted.")
		return
	}

	t := o.newTable()
	t.AppendHeader(table.Row{"Capability", "Invoker", "Date"})
	t.AppendSeparator()
	for _, p := range permissions {
		t.AppendRow(table.Row{p.ParentCapability.String(), p.Invoker, p.Date})
	}
	t.Render()
}

func (o *Operator) handleHash(s string) {
	message := restAfter(s, 1)
	fmt.Fprintf(o.out, "Message hash: %s\n", o.apps.Safe.CalculateMessageHash(message))
}

func (o *Operator) handleVerify(args []string) {
	if len(args) < 2 {
		fmt.Fprintln(o.out, "Usage: verify <message_hash> [signature]")
		return
	}
	signature := ""
	if len(args) > 2 {
		signature = args[2]
	}

	o.printVerdict("EIP-1271", o.apps.Safe.IsMessageHashSigned(o.ctx, args[1], signature))
}

func (o *Operator) handleVerifyMessage(args []string, s string) {
	if len(args) < 3 {
		fmt.Fprintln(o.out, "Usage: verify-message <signature> <message>")
		return
	}

	o.printVerdict("EIP-1271", o.apps.Safe.IsMessageSigned(o.ctx, restAfter(s, 2), args[1]))
}

func (o *Operator) handleOwnerSignature(args []string) {
	if len(args) < 3 {
		fmt.Fprintln(o.out, "Usage: owner-signature <message_hash> <signature>")
		return
	}

	o.printVerdict("Owner", o.apps.Safe.IsOwnerSignature(o.ctx, args[1], args[2]))
}

func (o *Operator) handleOwnerSign(args []string) error {
	if len(args) < 2 {
		fmt.Fprintln(o.out, "Usage: owner-sign <message_hash>")
		return nil
	}
	if o.owner == nil {
		return errors.New("no owner key configured, set SAFE_OWNER_KEY")
	}

	hash, err := hexutil.Decode(args[1])
	if err != nil {
		return errors.Wrap(err, "invalid message hash")
	}
	if len(hash) != common.HashLength {
		return errors.Errorf("invalid message hash: got %d bytes, want %d", len(hash), common.HashLength)
	}

	sig, err := o.owner.Sign(hash)
	if err != nil {
		return errors.Wrap(err, "failed to sign message hash")
	}
	fmt.Fprintf(o.out, "Signer: %s\n", o.owner.Address().Hex())
	fmt.Fprintf(o.out, "Signature: %s\n", sig.String())
	return nil
}

func (o *Operator) printVerdict(kind string, valid bool) {
	if valid {
		fmt.Fprintf(o.out, "%s signature is valid.\n", kind)
		return
	}
	fmt.Fprintf(o.out, "%s signature is not valid.\n", kind)
}
