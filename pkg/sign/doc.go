// Package sign holds the Ethereum signature primitives the SDK needs on the
// client side: the hex-encoded Signature type, the EIP-191 personal message
// hash, and ECDSA signing and recovery over go-ethereum's secp256k1.
//
//	hash := sign.HashMessage("hello")
//	signer, _ := sign.NewEthereumSigner(privateKeyHex)
//	sig, _ := signer.Sign(hash.Bytes())
//	addr, _ := sign.RecoverAddressFromHash(hash.Bytes(), sig)
package sign
