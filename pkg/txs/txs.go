// Package txs proposes transactions and message signatures to the wallet
// through the host and looks up what became of them.
package txs

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/go-playground/validator/v10"

	"github.com/HumanFS/humanfs-apps-sdk/pkg/log"
	"github.com/HumanFS/humanfs-apps-sdk/pkg/rpc"
)

var (
	ErrInvalidTransactions = fmt.Errorf("invalid transactions")
	ErrInvalidSafeTxHash   = fmt.Errorf("invalid safeTxHash")
)

func getValidator() *validator.Validate {
	validate := validator.New()

	if err := validate.RegisterValidation("bigint", func(fl validator.FieldLevel) bool {
		n := new(big.Int)
		_, ok := n.SetString(fl.Field().String(), 10)
		return ok && n.Sign() >= 0
	}); err != nil {
		panic(fmt.Sprintf("failed to register bigint validation: %v", err))
	}
	if err := validate.RegisterValidation("hexdata", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if !strings.HasPrefix(s, "0x") {
			return false
		}
		if s == "0x" {
			return true
		}
		_, err := hexutil.Decode(s)
		return err == nil
	}); err != nil {
		panic(fmt.Sprintf("failed to register hexdata validation: %v", err))
	}
	return validate
}

// Txs sends transaction proposals through a Communicator.
type Txs struct {
	comm     rpc.Communicator
	validate *validator.Validate
}

func New(comm rpc.Communicator) *Txs {
	return &Txs{comm: comm, validate: getValidator()}
}

// SendTransactions proposes txs as one multisig transaction. The batch must
// hold at least one transaction and every transaction a valid recipient;
// invalid batches are refused before anything is sent.
func (t *Txs) SendTransactions(ctx context.Context, params SendTransactionsParams) (SendTransactionsResponse, error) {
	if err := t.validate.Struct(params); err != nil {
		return SendTransactionsResponse{}, fmt.Errorf("%w: %w", ErrInvalidTransactions, err)
	}

	res, err := rpc.Call[SendTransactionsResponse](ctx, t.comm, rpc.SendTransactionsMethod, params)
	if err != nil {
		return SendTransactionsResponse{}, err
	}
	log.FromContext(ctx).Info("transactions proposed", "count", len(params.Txs), "safeTxHash", res.SafeTxHash)
	return res, nil
}

// GetBySafeTxHash looks up a transaction by the hash SendTransactions
// returned.
func (t *Txs) GetBySafeTxHash(ctx context.Context, safeTxHash string) (TransactionDetails, error) {
	if safeTxHash == "" {
		return TransactionDetails{}, ErrInvalidSafeTxHash
	}
	return rpc.Call[TransactionDetails](ctx, t.comm, rpc.GetTxBySafeTxHashMethod, getTxBySafeTxHashParams{SafeTxHash: safeTxHash})
}

// SignMessage asks the wallet to sign message.
func (t *Txs) SignMessage(ctx context.Context, message string) (SignMessageResponse, error) {
	return rpc.Call[SignMessageResponse](ctx, t.comm, rpc.SignMessageMethod, signMessageParams{Message: message})
}
