package sign

import (
	"encoding/json"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// EmptySignature is the hex marker sent when the caller has no signature.
const EmptySignature = "0x"

// Signature is a byte string that travels as 0x-prefixed hex.
type Signature []byte

// ParseSignature decodes a 0x-prefixed hex signature. Empty input and the
// bare "0x" marker both yield an empty Signature.
func ParseSignature(s string) (Signature, error) {
	if s == "" || strings.EqualFold(s, EmptySignature) {
		return Signature{}, nil
	}
	b, err := hexutil.Decode(s)
	if err != nil {
		return nil, err
	}
	return Signature(b), nil
}

// IsECDSA reports whether the signature has the 65-byte r||s||v layout.
func (s Signature) IsECDSA() bool {
	return len(s) == 65
}

func (s Signature) String() string {
	return hexutil.Encode(s)
}

func (s Signature) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Signature) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	decoded, err := ParseSignature(str)
	if err != nil {
		return err
	}
	*s = decoded
	return nil
}
