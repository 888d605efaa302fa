package sign

import (
	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
)

// HashMessage returns the EIP-191 personal message hash of message:
// keccak256("\x19Ethereum Signed Message:\n" + len(message) + message).
func HashMessage(message string) common.Hash {
	return common.BytesToHash(accounts.TextHash([]byte(message)))
}
