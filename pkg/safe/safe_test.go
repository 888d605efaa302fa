package safe_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HumanFS/humanfs-apps-sdk/pkg/rpc"
	"github.com/HumanFS/humanfs-apps-sdk/pkg/rpc/rpctest"
	"github.com/HumanFS/humanfs-apps-sdk/pkg/safe"
	"github.com/HumanFS/humanfs-apps-sdk/pkg/sign"
	"github.com/HumanFS/humanfs-apps-sdk/pkg/wallet"
)

const (
	testSafeAddress = "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	testOwnerKey    = "0x4c0883a69102937d6231471b5dbb6204fe5129617082792ae468d01a3f362318"
	testOwner       = "0x2c7536E3605D9C16a7a3D7b1898e529396a65c23"
)

var testCtx = context.Background()

func newTestSafe(t *testing.T) (*safe.Safe, *rpctest.MockDialer) {
	t.Helper()

	client, dialer := rpctest.NewClient()
	dialer.RegisterResult(rpc.GetSafeInfoMethod, map[string]any{
		"safeAddress": testSafeAddress,
		"chainId":     100,
		"threshold":   2,
		"owners":      []string{testOwner, "0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"},
	})
	return safe.New(client, wallet.New(client)), dialer
}

func TestSafe_GetInfo(t *testing.T) {
	t.Parallel()

	s, dialer := newTestSafe(t)

	info, err := s.GetInfo(testCtx)
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress(testSafeAddress), info.SafeAddress)
	assert.Equal(t, uint64(100), info.ChainID)
	assert.Equal(t, uint64(2), info.Threshold)
	assert.True(t, info.IsOwner(common.HexToAddress(testOwner)))
	assert.False(t, info.IsOwner(common.HexToAddress(testSafeAddress)))

	_, err = s.GetInfo(testCtx)
	require.NoError(t, err)
	assert.Equal(t, 2, dialer.CallCount(rpc.GetSafeInfoMethod), "safe info must not be cached")
}

func TestSafe_Passthrough(t *testing.T) {
	t.Parallel()

	s, dialer := newTestSafe(t)
	dialer.RegisterResult(rpc.GetChainInfoMethod, map[string]any{
		"chainName": "Gnosis",
		"chainId":   "100",
		"shortName": "gno",
		"nativeCurrency": map[string]any{
			"name": "xDai", "symbol": "XDAI", "decimals": 18,
		},
	})
	dialer.RegisterResult(rpc.GetEnvironmentInfoMethod, map[string]any{"origin": "https://app.safe.global"})

	chain, err := s.GetChainInfo(testCtx)
	require.NoError(t, err)
	assert.Equal(t, "100", chain.ChainID)
	assert.Equal(t, "XDAI", chain.NativeCurrency.Symbol)
	assert.Equal(t, uint8(18), chain.NativeCurrency.Decimals)

	env, err := s.GetEnvironmentInfo(testCtx)
	require.NoError(t, err)
	assert.Equal(t, "https://app.safe.global", env.Origin)

	for _, c := range dialer.Calls() {
		assert.Empty(t, c.Params)
	}
}

func TestSafe_Passthrough_Errors(t *testing.T) {
	t.Parallel()

	cause := errors.New("request timed out")
	client, dialer := rpctest.NewClient()
	dialer.RegisterError(rpc.GetChainInfoMethod, cause)
	s := safe.New(client, wallet.New(client))

	_, err := s.GetChainInfo(testCtx)

	var commErr *rpc.CommunicationError
	require.ErrorAs(t, err, &commErr)
	assert.Equal(t, rpc.GetChainInfoMethod, commErr.Method)
	assert.Same(t, cause, commErr.Err)
	assert.Equal(t, 1, dialer.CallCount(rpc.GetChainInfoMethod))
}

func TestSafe_GetBalances(t *testing.T) {
	t.Parallel()

	s, dialer := newTestSafe(t)
	dialer.RegisterHandler(rpc.GetSafeBalancesMethod, func(req rpc.Request) (any, error) {
		var params map[string]string
		require.NoError(t, req.Translate(&params))
		return map[string]any{
			"fiatTotal": "1234.5678901234567890",
			"items": []map[string]any{{
				"tokenInfo":      map[string]any{"type": "NATIVE_TOKEN", "symbol": "XDAI", "decimals": 18},
				"balance":        "1000000000000000000000000",
				"fiatBalance":    "1234.5678901234567890",
				"fiatConversion": "0.00000000123456789",
			}},
			"currency": params["currency"],
		}, nil
	})

	balances, err := s.GetBalances(testCtx, "")
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("1234.567890123456789").Equal(balances.FiatTotal))
	require.Len(t, balances.Items, 1)
	assert.Equal(t, "1000000000000000000000000", balances.Items[0].Balance.String())

	_, err = s.GetBalances(testCtx, "eur")
	require.NoError(t, err)

	calls := dialer.Calls()
	require.Len(t, calls, 2)
	assert.JSONEq(t, `{"currency":"usd"}`, string(calls[0].Params))
	assert.JSONEq(t, `{"currency":"eur"}`, string(calls[1].Params))
}

func TestSafe_CalculateMessageHash(t *testing.T) {
	t.Parallel()

	s, _ := newTestSafe(t)
	assert.Equal(t, "0x5f35dce98ba4fba25530a026ed80b2cecdaa31091ba4958b99b52ea1d068adad", s.CalculateMessageHash(""))
	assert.Equal(t, sign.HashMessage("hello").Hex(), s.CalculateMessageHash("hello"))
}

func TestSafe_GetAddressBook(t *testing.T) {
	t.Parallel()

	book := []map[string]any{{"address": testOwner, "chainId": "100", "name": "Alice"}}
	granted := []wallet.Permission{{ParentCapability: rpc.GetAddressBookMethod, Invoker: "app"}}

	t.Run("already granted", func(t *testing.T) {
		t.Parallel()

		s, dialer := newTestSafe(t)
		dialer.RegisterResult(rpc.WalletGetPermissionsMethod, granted)
		dialer.RegisterResult(rpc.GetAddressBookMethod, book)

		items, err := s.GetAddressBook(testCtx)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "Alice", items[0].Name)
		assert.Equal(t, common.HexToAddress(testOwner), items[0].Address)

		assert.Zero(t, dialer.CallCount(rpc.WalletRequestPermissionsMethod))
		calls := dialer.Calls()
		assert.JSONEq(t, `[]`, string(calls[len(calls)-1].Params))
	})

	t.Run("granted on request", func(t *testing.T) {
		t.Parallel()

		s, dialer := newTestSafe(t)
		dialer.RegisterResult(rpc.WalletGetPermissionsMethod, []wallet.Permission{})
		dialer.RegisterHandler(rpc.WalletRequestPermissionsMethod, func(req rpc.Request) (any, error) {
			assert.JSONEq(t, `[{"getAddressBook":{}}]`, string(req.Params))
			return granted, nil
		})
		dialer.RegisterResult(rpc.GetAddressBookMethod, book)

		items, err := s.GetAddressBook(testCtx)
		require.NoError(t, err)
		assert.Len(t, items, 1)
		assert.Equal(t, 1, dialer.CallCount(rpc.WalletRequestPermissionsMethod))
	})

	t.Run("denied", func(t *testing.T) {
		t.Parallel()

		s, dialer := newTestSafe(t)
		dialer.RegisterResult(rpc.WalletGetPermissionsMethod, []wallet.Permission{})
		dialer.RegisterResult(rpc.WalletRequestPermissionsMethod, []wallet.Permission{
			{ParentCapability: rpc.GetSafeInfoMethod},
		})
		dialer.RegisterResult(rpc.GetAddressBookMethod, book)

		items, err := s.GetAddressBook(testCtx)
		assert.Nil(t, items)

		var permErr *wallet.PermissionsError
		require.ErrorAs(t, err, &permErr)
		assert.Equal(t, wallet.PermissionsRequestRejected, permErr.Code)
		assert.Equal(t, 1, dialer.CallCount(rpc.WalletRequestPermissionsMethod))
		assert.Zero(t, dialer.CallCount(rpc.GetAddressBookMethod))
	})

	t.Run("request rejected by host", func(t *testing.T) {
		t.Parallel()

		s, dialer := newTestSafe(t)
		dialer.RegisterResult(rpc.WalletGetPermissionsMethod, []wallet.Permission{})
		dialer.RegisterError(rpc.WalletRequestPermissionsMethod, &rpc.HostError{Message: "rejected", Code: 4001})

		_, err := s.GetAddressBook(testCtx)

		var permErr *wallet.PermissionsError
		require.ErrorAs(t, err, &permErr)
		assert.Equal(t, wallet.PermissionsRequestRejected, permErr.Code)
		assert.Zero(t, dialer.CallCount(rpc.GetAddressBookMethod))
	})

	t.Run("permission lookup fails", func(t *testing.T) {
		t.Parallel()

		s, dialer := newTestSafe(t)
		dialer.RegisterError(rpc.WalletGetPermissionsMethod, errors.New("down"))

		_, err := s.GetAddressBook(testCtx)

		var commErr *rpc.CommunicationError
		require.ErrorAs(t, err, &commErr)
		assert.Zero(t, dialer.CallCount(rpc.WalletRequestPermissionsMethod))
		assert.Zero(t, dialer.CallCount(rpc.GetAddressBookMethod))
	})
}

func TestSafe_IsOwnerSignature(t *testing.T) {
	t.Parallel()

	signer, err := sign.NewEthereumSigner(testOwnerKey)
	require.NoError(t, err)

	hash := sign.HashMessage("approve")
	sig, err := signer.Sign(hash.Bytes())
	require.NoError(t, err)

	outsider, err := sign.NewEthereumSigner("0x" + strings.Repeat("11", 32))
	require.NoError(t, err)
	outsiderSig, err := outsider.Sign(hash.Bytes())
	require.NoError(t, err)

	s, dialer := newTestSafe(t)

	assert.True(t, s.IsOwnerSignature(testCtx, hash.Hex(), sig.String()))
	assert.False(t, s.IsOwnerSignature(testCtx, hash.Hex(), outsiderSig.String()))
	assert.False(t, s.IsOwnerSignature(testCtx, sign.HashMessage("other").Hex(), sig.String()))
	assert.Equal(t, 3, dialer.CallCount(rpc.GetSafeInfoMethod))

	// malformed input is rejected before any round trip
	assert.False(t, s.IsOwnerSignature(testCtx, hash.Hex(), "0x"))
	assert.False(t, s.IsOwnerSignature(testCtx, "0x1234", sig.String()))
	assert.False(t, s.IsOwnerSignature(testCtx, hash.Hex(), "not hex"))
	assert.Equal(t, 3, dialer.CallCount(rpc.GetSafeInfoMethod))

	dialer.RegisterError(rpc.GetSafeInfoMethod, errors.New("down"))
	assert.False(t, s.IsOwnerSignature(testCtx, hash.Hex(), sig.String()))
}

func TestSafeInfo_JSON(t *testing.T) {
	t.Parallel()

	var info safe.SafeInfo
	err := json.Unmarshal([]byte(`{"safeAddress":"0x1234","chainId":1,"threshold":1,"owners":[]}`), &info)
	assert.Error(t, err)
}
