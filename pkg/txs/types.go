package txs

import (
	"encoding/json"

	"github.com/HumanFS/humanfs-apps-sdk/pkg/sign"
)

// BaseTransaction is one call the wallet is asked to make. Value is in wei
// as a base-10 string; Data is 0x-prefixed calldata.
type BaseTransaction struct {
	To    string `json:"to" validate:"required,eth_addr"`
	Value string `json:"value" validate:"omitempty,bigint"`
	Data  string `json:"data" validate:"omitempty,hexdata"`
}

// SendTransactionRequestParams overrides how the wallet builds the multisig
// transaction. Every field is optional.
type SendTransactionRequestParams struct {
	SafeTxGas      string `json:"safeTxGas,omitempty" validate:"omitempty,bigint"`
	BaseGas        string `json:"baseGas,omitempty" validate:"omitempty,bigint"`
	GasPrice       string `json:"gasPrice,omitempty" validate:"omitempty,bigint"`
	GasToken       string `json:"gasToken,omitempty" validate:"omitempty,eth_addr"`
	RefundReceiver string `json:"refundReceiver,omitempty" validate:"omitempty,eth_addr"`
	Nonce          string `json:"nonce,omitempty" validate:"omitempty,bigint"`
}

type SendTransactionsParams struct {
	Txs    []BaseTransaction             `json:"txs" validate:"required,min=1,dive"`
	Params *SendTransactionRequestParams `json:"params,omitempty"`
}

// SendTransactionsResponse identifies the multisig transaction the host
// proposed.
type SendTransactionsResponse struct {
	SafeTxHash string `json:"safeTxHash"`
}

// TransactionDetails is the host's view of a proposed or executed
// transaction. The nested info blocks are passed through undecoded.
type TransactionDetails struct {
	SafeAddress           string          `json:"safeAddress"`
	TxID                  string          `json:"txId"`
	ExecutedAt            *int64          `json:"executedAt"`
	TxStatus              string          `json:"txStatus"`
	TxHash                string          `json:"txHash,omitempty"`
	TxInfo                json.RawMessage `json:"txInfo,omitempty"`
	TxData                json.RawMessage `json:"txData,omitempty"`
	DetailedExecutionInfo json.RawMessage `json:"detailedExecutionInfo,omitempty"`
}

// SignMessageResponse is returned for a signMessage request. Wallets that
// sign on-chain answer with a SafeTxHash; off-chain signers answer with the
// signature.
type SignMessageResponse struct {
	SafeTxHash string         `json:"safeTxHash,omitempty"`
	Signature  sign.Signature `json:"signature,omitempty"`
}

type getTxBySafeTxHashParams struct {
	SafeTxHash string `json:"safeTxHash"`
}

type signMessageParams struct {
	Message string `json:"message"`
}
