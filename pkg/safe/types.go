package safe

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// SafeInfo is a snapshot of the wallet as reported by the host.
type SafeInfo struct {
	SafeAddress common.Address   `json:"safeAddress"`
	ChainID     uint64           `json:"chainId"`
	Threshold   uint64           `json:"threshold"`
	Owners      []common.Address `json:"owners"`
	IsReadOnly  bool             `json:"isReadOnly,omitempty"`
}

// IsOwner reports whether addr is one of the wallet owners.
func (i SafeInfo) IsOwner(addr common.Address) bool {
	for _, owner := range i.Owners {
		if owner == addr {
			return true
		}
	}
	return false
}

type NativeCurrency struct {
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals uint8  `json:"decimals"`
	LogoURI  string `json:"logoUri,omitempty"`
}

type BlockExplorerURITemplate struct {
	Address string `json:"address"`
	TxHash  string `json:"txHash"`
	API     string `json:"api"`
}

// ChainInfo describes the network the wallet lives on.
type ChainInfo struct {
	ChainName                string                   `json:"chainName"`
	ChainID                  string                   `json:"chainId"`
	ShortName                string                   `json:"shortName"`
	NativeCurrency           NativeCurrency           `json:"nativeCurrency"`
	BlockExplorerURITemplate BlockExplorerURITemplate `json:"blockExplorerUriTemplate"`
}

// EnvironmentInfo describes the frame the app is loaded in.
type EnvironmentInfo struct {
	Origin string `json:"origin"`
}

type TokenInfo struct {
	Type     string `json:"type"`
	Address  string `json:"address"`
	Decimals uint8  `json:"decimals"`
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	LogoURI  string `json:"logoUri,omitempty"`
}

// TokenBalance is one asset held by the wallet. Balance is in the token's
// smallest unit; the fiat fields are in the requested currency.
type TokenBalance struct {
	TokenInfo      TokenInfo       `json:"tokenInfo"`
	Balance        decimal.Decimal `json:"balance"`
	FiatBalance    decimal.Decimal `json:"fiatBalance"`
	FiatConversion decimal.Decimal `json:"fiatConversion"`
}

// SafeBalances lists the wallet assets valued in one fiat currency.
type SafeBalances struct {
	FiatTotal decimal.Decimal `json:"fiatTotal"`
	Items     []TokenBalance  `json:"items"`
}

// AddressBookItem is one entry of the user's address book.
type AddressBookItem struct {
	Address common.Address `json:"address"`
	ChainID string         `json:"chainId"`
	Name    string         `json:"name"`
}

type getBalancesParams struct {
	Currency string `json:"currency"`
}
