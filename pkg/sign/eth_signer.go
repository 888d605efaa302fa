package sign

import (
	"crypto/ecdsa"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
)

// EthereumSigner signs 32-byte digests with a secp256k1 key.
type EthereumSigner struct {
	privateKey *ecdsa.PrivateKey
	address    common.Address
}

// NewEthereumSigner parses a hex private key, with or without 0x prefix.
func NewEthereumSigner(privateKeyHex string) (*EthereumSigner, error) {
	key, err := ethcrypto.HexToECDSA(strings.TrimPrefix(privateKeyHex, "0x"))
	if err != nil {
		return nil, fmt.Errorf("could not parse ethereum private key: %w", err)
	}
	return NewEthereumSignerFromKey(key), nil
}

func NewEthereumSignerFromKey(key *ecdsa.PrivateKey) *EthereumSigner {
	return &EthereumSigner{
		privateKey: key,
		address:    ethcrypto.PubkeyToAddress(key.PublicKey),
	}
}

func (s *EthereumSigner) Address() common.Address {
	return s.address
}

// Sign signs hash and returns r||s||v with v in {27, 28}.
func (s *EthereumSigner) Sign(hash []byte) (Signature, error) {
	sig, err := ethcrypto.Sign(hash, s.privateKey)
	if err != nil {
		return nil, err
	}
	if sig[64] < 27 {
		sig[64] += 27
	}
	return Signature(sig), nil
}

// RecoverAddressFromHash returns the address whose key produced sig over hash.
// Both the {0, 1} and {27, 28} recovery id conventions are accepted.
func RecoverAddressFromHash(hash []byte, sig Signature) (common.Address, error) {
	if !sig.IsECDSA() {
		return common.Address{}, fmt.Errorf("invalid signature length: got %d, want 65", len(sig))
	}
	localSig := make([]byte, 65)
	copy(localSig, sig)
	if localSig[64] >= 27 {
		localSig[64] -= 27
	}

	pubKey, err := ethcrypto.SigToPub(hash, localSig)
	if err != nil {
		return common.Address{}, fmt.Errorf("signature recovery failed: %w", err)
	}
	return ethcrypto.PubkeyToAddress(*pubKey), nil
}
