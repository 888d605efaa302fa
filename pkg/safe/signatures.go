package safe

import (
	"context"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/HumanFS/humanfs-apps-sdk/pkg/abi"
	"github.com/HumanFS/humanfs-apps-sdk/pkg/log"
	"github.com/HumanFS/humanfs-apps-sdk/pkg/rpc"
)

// Values returned by isValidSignature when the wallet accepts a signature.
const (
	MagicValue      = "0x1626ba7e" // isValidSignature(bytes32,bytes)
	MagicValueBytes = "0x20c13b0b" // isValidSignature(bytes,bytes)
)

const isValidSignature = "isValidSignature"

var (
	eip1271Interface = abi.MustNewInterface(`[{
		"type": "function",
		"name": "isValidSignature",
		"stateMutability": "view",
		"inputs": [{"name": "_dataHash", "type": "bytes32"}, {"name": "_signature", "type": "bytes"}],
		"outputs": [{"name": "", "type": "bytes4"}]
	}]`)

	eip1271BytesInterface = abi.MustNewInterface(`[{
		"type": "function",
		"name": "isValidSignature",
		"stateMutability": "view",
		"inputs": [{"name": "_data", "type": "bytes"}, {"name": "_signature", "type": "bytes"}],
		"outputs": [{"name": "", "type": "bytes4"}]
	}]`)
)

var (
	ErrShortReturnData = fmt.Errorf("return data shorter than a magic value")
	ErrInvalidHash     = fmt.Errorf("invalid message hash")
)

// signatureProbe is one isValidSignature calling convention.
type signatureProbe struct {
	name       string
	magicValue string
	encode     func(messageHash, signature string) ([]byte, error)
}

var (
	bytes32Probe = signatureProbe{
		name:       "bytes32",
		magicValue: MagicValue,
		encode: func(messageHash, signature string) ([]byte, error) {
			return eip1271Interface.EncodeFunctionData(isValidSignature, messageHash, signature)
		},
	}

	bytesProbe = signatureProbe{
		name:       "bytes",
		magicValue: MagicValueBytes,
		encode: func(messageHash, signature string) ([]byte, error) {
			msgBytes, err := hexutil.Decode(messageHash)
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrInvalidHash, err)
			}
			if len(msgBytes) != common.HashLength {
				return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidHash, len(msgBytes), common.HashLength)
			}
			return eip1271BytesInterface.EncodeFunctionData(isValidSignature, msgBytes, signature)
		},
	}
)

// Check1271Signature asks the wallet whether signature is valid for the
// 32-byte messageHash using isValidSignature(bytes32,bytes). An empty
// signature is sent as "0x". Every failure, from encoding to transport,
// yields false.
func (s *Safe) Check1271Signature(ctx context.Context, messageHash, signature string) bool {
	return s.runProbe(ctx, bytes32Probe, messageHash, signature)
}

// Check1271SignatureBytes is Check1271Signature for wallets implementing
// isValidSignature(bytes,bytes): the hash is passed as raw bytes.
func (s *Safe) Check1271SignatureBytes(ctx context.Context, messageHash, signature string) bool {
	return s.runProbe(ctx, bytesProbe, messageHash, signature)
}

// IsMessageHashSigned reports whether the wallet accepts signature for
// messageHash under either calling convention. The bytes variant is only
// tried when the bytes32 variant says no.
func (s *Safe) IsMessageHashSigned(ctx context.Context, messageHash, signature string) bool {
	for _, probe := range []signatureProbe{bytes32Probe, bytesProbe} {
		if s.runProbe(ctx, probe, messageHash, signature) {
			return true
		}
	}
	return false
}

// IsMessageSigned is IsMessageHashSigned over the personal message hash of
// message.
func (s *Safe) IsMessageSigned(ctx context.Context, message, signature string) bool {
	return s.IsMessageHashSigned(ctx, s.CalculateMessageHash(message), signature)
}

func (s *Safe) runProbe(ctx context.Context, probe signatureProbe, messageHash, signature string) bool {
	valid, err := s.probe1271(ctx, probe, messageHash, signature)
	if err != nil {
		log.FromContext(ctx).Debug("signature probe failed", "probe", probe.name, "error", err)
		return false
	}
	return valid
}

func (s *Safe) probe1271(ctx context.Context, probe signatureProbe, messageHash, signature string) (bool, error) {
	if signature == "" {
		signature = emptySignature
	}

	info, err := s.GetInfo(ctx)
	if err != nil {
		return false, err
	}

	calldata, err := probe.encode(messageHash, signature)
	if err != nil {
		return false, err
	}

	payload := rpc.NewEthCallPayload(info.SafeAddress.Hex(), hexutil.Encode(calldata), rpc.BlockLatest)
	result, err := rpc.Call[string](ctx, s.comm, rpc.RPCCallMethod, payload)
	if err != nil {
		return false, err
	}
	if len(result) < len(probe.magicValue) {
		return false, fmt.Errorf("%w: %q", ErrShortReturnData, result)
	}

	return strings.ToLower(result[:len(probe.magicValue)]) == probe.magicValue, nil
}
