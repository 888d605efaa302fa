package txs_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HumanFS/humanfs-apps-sdk/pkg/rpc"
	"github.com/HumanFS/humanfs-apps-sdk/pkg/rpc/rpctest"
	"github.com/HumanFS/humanfs-apps-sdk/pkg/txs"
)

var testCtx = context.Background()

const recipient = "0x2c7536E3605D9C16a7a3D7b1898e529396a65c23"

func TestTxs_SendTransactions(t *testing.T) {
	t.Parallel()

	client, dialer := rpctest.NewClient()
	dialer.RegisterResult(rpc.SendTransactionsMethod, map[string]string{"safeTxHash": "0xfeed"})
	tx := txs.New(client)

	res, err := tx.SendTransactions(testCtx, txs.SendTransactionsParams{
		Txs: []txs.BaseTransaction{
			{To: recipient, Value: "1000000000000000000", Data: "0x"},
			{To: recipient, Value: "0", Data: "0xa9059cbb"},
		},
		Params: &txs.SendTransactionRequestParams{SafeTxGas: "50000"},
	})
	require.NoError(t, err)
	assert.Equal(t, "0xfeed", res.SafeTxHash)

	calls := dialer.Calls()
	require.Len(t, calls, 1)
	assert.JSONEq(t, `{
		"txs": [
			{"to": "`+recipient+`", "value": "1000000000000000000", "data": "0x"},
			{"to": "`+recipient+`", "value": "0", "data": "0xa9059cbb"}
		],
		"params": {"safeTxGas": "50000"}
	}`, string(calls[0].Params))
}

func TestTxs_SendTransactions_Invalid(t *testing.T) {
	t.Parallel()

	tcs := []struct {
		name   string
		params txs.SendTransactionsParams
	}{
		{"no transactions", txs.SendTransactionsParams{}},
		{"empty batch", txs.SendTransactionsParams{Txs: []txs.BaseTransaction{}}},
		{"missing recipient", txs.SendTransactionsParams{Txs: []txs.BaseTransaction{{Value: "1"}}}},
		{"bad recipient", txs.SendTransactionsParams{Txs: []txs.BaseTransaction{{To: "0x1234"}}}},
		{"negative value", txs.SendTransactionsParams{Txs: []txs.BaseTransaction{{To: recipient, Value: "-1"}}}},
		{"fractional value", txs.SendTransactionsParams{Txs: []txs.BaseTransaction{{To: recipient, Value: "1.5"}}}},
		{"odd calldata", txs.SendTransactionsParams{Txs: []txs.BaseTransaction{{To: recipient, Data: "0xabc"}}}},
		{"calldata without prefix", txs.SendTransactionsParams{Txs: []txs.BaseTransaction{{To: recipient, Data: "abcd"}}}},
		{"bad nonce", txs.SendTransactionsParams{
			Txs:    []txs.BaseTransaction{{To: recipient}},
			Params: &txs.SendTransactionRequestParams{Nonce: "next"},
		}},
	}

	for _, tc := range tcs {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			client, dialer := rpctest.NewClient()
			_, err := txs.New(client).SendTransactions(testCtx, tc.params)
			assert.ErrorIs(t, err, txs.ErrInvalidTransactions)
			assert.Empty(t, dialer.Calls())
		})
	}
}

func TestTxs_GetBySafeTxHash(t *testing.T) {
	t.Parallel()

	client, dialer := rpctest.NewClient()
	dialer.RegisterHandler(rpc.GetTxBySafeTxHashMethod, func(req rpc.Request) (any, error) {
		var params map[string]string
		require.NoError(t, req.Translate(&params))
		return map[string]any{
			"safeAddress": recipient,
			"txId":        "multisig_" + params["safeTxHash"],
			"executedAt":  nil,
			"txStatus":    "AWAITING_CONFIRMATIONS",
			"txInfo":      map[string]string{"type": "Transfer"},
		}, nil
	})
	tx := txs.New(client)

	details, err := tx.GetBySafeTxHash(testCtx, "0xfeed")
	require.NoError(t, err)
	assert.Equal(t, "multisig_0xfeed", details.TxID)
	assert.Equal(t, "AWAITING_CONFIRMATIONS", details.TxStatus)
	assert.Nil(t, details.ExecutedAt)
	assert.JSONEq(t, `{"type":"Transfer"}`, string(details.TxInfo))

	_, err = tx.GetBySafeTxHash(testCtx, "")
	assert.ErrorIs(t, err, txs.ErrInvalidSafeTxHash)
	assert.Equal(t, 1, dialer.CallCount(rpc.GetTxBySafeTxHashMethod))
}

func TestTxs_SignMessage(t *testing.T) {
	t.Parallel()

	client, dialer := rpctest.NewClient()
	dialer.RegisterHandler(rpc.SignMessageMethod, func(req rpc.Request) (any, error) {
		assert.JSONEq(t, `{"message":"gm"}`, string(req.Params))
		return map[string]string{"safeTxHash": "0xbeef"}, nil
	})

	res, err := txs.New(client).SignMessage(testCtx, "gm")
	require.NoError(t, err)
	assert.Equal(t, "0xbeef", res.SafeTxHash)
	assert.Empty(t, res.Signature)

	dialer.RegisterError(rpc.SignMessageMethod, &rpc.HostError{Message: "user rejected", Code: 4001})
	_, err = txs.New(client).SignMessage(testCtx, "gm")
	var commErr *rpc.CommunicationError
	assert.ErrorAs(t, err, &commErr)
}
