// Package eth reads chain state through the host's rpcCall relay, so apps
// need no node endpoint of their own. Block tags default to "latest".
package eth

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/HumanFS/humanfs-apps-sdk/pkg/rpc"
)

// Eth issues JSON-RPC reads through a Communicator.
type Eth struct {
	comm rpc.Communicator
}

func New(comm rpc.Communicator) *Eth {
	return &Eth{comm: comm}
}

// Call executes a read-only call of data against to.
func (e *Eth) Call(ctx context.Context, to common.Address, data []byte, block string) (hexutil.Bytes, error) {
	payload := rpc.NewEthCallPayload(to.Hex(), hexutil.Encode(data), block)
	return call[hexutil.Bytes](ctx, e.comm, payload)
}

// GetBalance returns the native balance of addr in wei.
func (e *Eth) GetBalance(ctx context.Context, addr common.Address, block string) (*big.Int, error) {
	balance, err := call[hexutil.Big](ctx, e.comm, addressQuery(rpc.EthGetBalance, addr, block))
	if err != nil {
		return nil, err
	}
	return balance.ToInt(), nil
}

// GetCode returns the contract code at addr. Accounts without code yield an
// empty slice.
func (e *Eth) GetCode(ctx context.Context, addr common.Address, block string) (hexutil.Bytes, error) {
	return call[hexutil.Bytes](ctx, e.comm, addressQuery(rpc.EthGetCode, addr, block))
}

// GetTransactionCount returns the nonce of addr.
func (e *Eth) GetTransactionCount(ctx context.Context, addr common.Address, block string) (uint64, error) {
	count, err := call[hexutil.Uint64](ctx, e.comm, addressQuery(rpc.EthGetTransactionCount, addr, block))
	return uint64(count), err
}

// BlockNumber returns the number of the most recent block.
func (e *Eth) BlockNumber(ctx context.Context) (uint64, error) {
	number, err := call[hexutil.Uint64](ctx, e.comm, rpc.RPCPayload{Call: rpc.EthBlockNumber, Params: []any{}})
	return uint64(number), err
}

func addressQuery(method rpc.RPCCall, addr common.Address, block string) rpc.RPCPayload {
	if block == "" {
		block = rpc.BlockLatest
	}
	return rpc.RPCPayload{Call: method, Params: []any{addr.Hex(), block}}
}

func call[T any](ctx context.Context, comm rpc.Communicator, payload rpc.RPCPayload) (T, error) {
	return rpc.Call[T](ctx, comm, rpc.RPCCallMethod, payload)
}
