package safe

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/HumanFS/humanfs-apps-sdk/pkg/log"
	"github.com/HumanFS/humanfs-apps-sdk/pkg/rpc"
	"github.com/HumanFS/humanfs-apps-sdk/pkg/sign"
	"github.com/HumanFS/humanfs-apps-sdk/pkg/wallet"
)

// DefaultCurrency is the fiat currency balances are valued in when none is
// given.
const DefaultCurrency = "usd"

const emptySignature = sign.EmptySignature

// PermissionGate decides whether the app may use a privileged host method.
// *wallet.Wallet implements it.
type PermissionGate interface {
	HasPermission(ctx context.Context, method rpc.Method) (bool, error)
	RequestPermissions(ctx context.Context, requests []wallet.PermissionRequest) ([]wallet.Permission, error)
	FindPermission(permissions []wallet.Permission, method rpc.Method) *wallet.Permission
}

var _ PermissionGate = (*wallet.Wallet)(nil)

// Safe reads the wallet through the host. It keeps no state between calls:
// every operation fetches what it needs.
type Safe struct {
	comm rpc.Communicator
	gate PermissionGate
}

func New(comm rpc.Communicator, gate PermissionGate) *Safe {
	return &Safe{comm: comm, gate: gate}
}

func (s *Safe) GetChainInfo(ctx context.Context) (ChainInfo, error) {
	return rpc.Call[ChainInfo](ctx, s.comm, rpc.GetChainInfoMethod, nil)
}

// GetInfo fetches the current wallet snapshot. It is never cached.
func (s *Safe) GetInfo(ctx context.Context) (SafeInfo, error) {
	return rpc.Call[SafeInfo](ctx, s.comm, rpc.GetSafeInfoMethod, nil)
}

// GetBalances returns the wallet assets valued in currency, or in
// DefaultCurrency when currency is empty.
func (s *Safe) GetBalances(ctx context.Context, currency string) (SafeBalances, error) {
	if currency == "" {
		currency = DefaultCurrency
	}
	return rpc.Call[SafeBalances](ctx, s.comm, rpc.GetSafeBalancesMethod, getBalancesParams{Currency: currency})
}

func (s *Safe) GetEnvironmentInfo(ctx context.Context) (EnvironmentInfo, error) {
	return rpc.Call[EnvironmentInfo](ctx, s.comm, rpc.GetEnvironmentInfoMethod, nil)
}

// CalculateMessageHash returns the EIP-191 personal message hash of message
// as 0x-prefixed hex.
func (s *Safe) CalculateMessageHash(message string) string {
	return sign.HashMessage(message).Hex()
}

// GetAddressBook returns the user's address book. When the app does not hold
// the getAddressBook permission it asks for it once; if the host still does
// not grant it the call fails with a *wallet.PermissionsError.
func (s *Safe) GetAddressBook(ctx context.Context) ([]AddressBookItem, error) {
	lg := log.FromContext(ctx)

	granted, err := s.gate.HasPermission(ctx, rpc.GetAddressBookMethod)
	if err != nil {
		return nil, err
	}

	if !granted {
		lg.Debug("requesting permission", "method", rpc.GetAddressBookMethod.String())
		permissions, err := s.gate.RequestPermissions(ctx, []wallet.PermissionRequest{
			wallet.NewPermissionRequest(rpc.GetAddressBookMethod),
		})
		if err != nil {
			return nil, err
		}
		granted = s.gate.FindPermission(permissions, rpc.GetAddressBookMethod) != nil
	}

	if !granted {
		return nil, wallet.NewPermissionsError("permissions rejected", wallet.PermissionsRequestRejected, nil)
	}

	return rpc.Call[[]AddressBookItem](ctx, s.comm, rpc.GetAddressBookMethod, []any{})
}

// IsOwnerSignature reports whether signature is a 65-byte ECDSA signature of
// messageHash made by one of the current owners. Like the EIP-1271 probes it
// never fails: any error yields false.
func (s *Safe) IsOwnerSignature(ctx context.Context, messageHash, signature string) bool {
	lg := log.FromContext(ctx)

	signer, err := recoverSigner(messageHash, signature)
	if err != nil {
		lg.Debug("owner signature check failed", "error", err)
		return false
	}

	info, err := s.GetInfo(ctx)
	if err != nil {
		lg.Debug("owner signature check failed", "error", err)
		return false
	}
	return info.IsOwner(signer)
}

func recoverSigner(messageHash, signature string) (common.Address, error) {
	hash, err := hexutil.Decode(messageHash)
	if err != nil {
		return common.Address{}, fmt.Errorf("%w: %w", ErrInvalidHash, err)
	}
	if len(hash) != common.HashLength {
		return common.Address{}, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidHash, len(hash), common.HashLength)
	}

	sig, err := sign.ParseSignature(signature)
	if err != nil {
		return common.Address{}, err
	}
	return sign.RecoverAddressFromHash(hash, sig)
}
