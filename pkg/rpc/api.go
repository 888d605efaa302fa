package rpc

// Method is a host method name. The set is closed: Client.Send rejects
// anything not listed here.
type Method string

const (
	GetChainInfoMethod             Method = "getChainInfo"
	GetSafeInfoMethod              Method = "getSafeInfo"
	GetSafeBalancesMethod          Method = "getSafeBalances"
	GetEnvironmentInfoMethod       Method = "getEnvironmentInfo"
	GetAddressBookMethod           Method = "getAddressBook"
	RPCCallMethod                  Method = "rpcCall"
	SendTransactionsMethod         Method = "sendTransactions"
	GetTxBySafeTxHashMethod        Method = "getTxBySafeTxHash"
	SignMessageMethod              Method = "signMessage"
	WalletGetPermissionsMethod     Method = "wallet_getPermissions"
	WalletRequestPermissionsMethod Method = "wallet_requestPermissions"
)

var knownMethods = map[Method]struct{}{
	GetChainInfoMethod:             {},
	GetSafeInfoMethod:              {},
	GetSafeBalancesMethod:          {},
	GetEnvironmentInfoMethod:       {},
	GetAddressBookMethod:           {},
	RPCCallMethod:                  {},
	SendTransactionsMethod:         {},
	GetTxBySafeTxHashMethod:        {},
	SignMessageMethod:              {},
	WalletGetPermissionsMethod:     {},
	WalletRequestPermissionsMethod: {},
}

func (m Method) String() string {
	return string(m)
}

// IsValid reports whether m belongs to the host method set.
func (m Method) IsValid() bool {
	_, ok := knownMethods[m]
	return ok
}

// RPCCall is the name of a JSON-RPC method forwarded by the host through
// RPCCallMethod.
type RPCCall string

const (
	EthCall                RPCCall = "eth_call"
	EthGetBalance          RPCCall = "eth_getBalance"
	EthGetCode             RPCCall = "eth_getCode"
	EthGetTransactionCount RPCCall = "eth_getTransactionCount"
	EthBlockNumber         RPCCall = "eth_blockNumber"
)

// BlockLatest is the block tag every read is evaluated against by default.
const BlockLatest = "latest"

// RPCPayload is the params shape of RPCCallMethod:
//
//	{"call": "eth_call", "params": [{"to": "0x..", "data": "0x.."}, "latest"]}
type RPCPayload struct {
	Call   RPCCall `json:"call"`
	Params []any   `json:"params"`
}

// CallTx is the transaction object of an eth_call.
type CallTx struct {
	To   string `json:"to"`
	Data string `json:"data"`
}

// NewEthCallPayload builds the eth_call envelope for calldata sent to to.
// A blank block tag means BlockLatest.
func NewEthCallPayload(to, data, block string) RPCPayload {
	if block == "" {
		block = BlockLatest
	}
	return RPCPayload{
		Call:   EthCall,
		Params: []any{CallTx{To: to, Data: data}, block},
	}
}
