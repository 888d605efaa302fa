// Package abi builds contract calldata from a JSON ABI on top of go-ethereum's
// accounts/abi. Encoding is pure: the same method and arguments always yield
// the same bytes, and any argument that does not fit its declared type fails
// with an *EncodingError before anything leaves the process.
package abi

import (
	"fmt"
	"reflect"
	"strings"

	ethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Interface is a parsed contract ABI.
type Interface struct {
	abi ethabi.ABI
}

// NewInterface parses a JSON ABI definition.
func NewInterface(jsonABI string) (*Interface, error) {
	parsed, err := ethabi.JSON(strings.NewReader(jsonABI))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidABI, err)
	}
	return &Interface{abi: parsed}, nil
}

// MustNewInterface is NewInterface for package-level ABI constants.
func MustNewInterface(jsonABI string) *Interface {
	iface, err := NewInterface(jsonABI)
	if err != nil {
		panic(err)
	}
	return iface
}

// MethodID returns the 4-byte selector of the named method.
func (i *Interface) MethodID(name string) ([]byte, error) {
	method, ok := i.abi.Methods[name]
	if !ok {
		return nil, &EncodingError{Method: name, Err: ErrUnknownMethod}
	}
	return method.ID, nil
}

// EncodeFunctionData returns selector || ABI-encoded args for the named method.
//
// Besides the native go-ethereum types, bytes32 accepts a 0x hex string or a
// 32-byte slice, bytes accepts a 0x hex string or any byte slice type, and
// address accepts a 0x hex string.
func (i *Interface) EncodeFunctionData(name string, args ...any) ([]byte, error) {
	method, ok := i.abi.Methods[name]
	if !ok {
		return nil, &EncodingError{Method: name, Err: ErrUnknownMethod}
	}
	if len(args) != len(method.Inputs) {
		return nil, &EncodingError{
			Method: name,
			Err:    fmt.Errorf("%w: got %d, want %d", ErrArgumentCount, len(args), len(method.Inputs)),
		}
	}

	coerced := make([]any, len(args))
	for idx, input := range method.Inputs {
		v, err := coerce(input.Type, args[idx])
		if err != nil {
			return nil, &EncodingError{Method: name, Arg: argName(input, idx), Err: err}
		}
		coerced[idx] = v
	}

	data, err := i.abi.Pack(name, coerced...)
	if err != nil {
		return nil, &EncodingError{Method: name, Err: fmt.Errorf("%w: %w", ErrArgumentType, err)}
	}
	return data, nil
}

func argName(input ethabi.Argument, idx int) string {
	if input.Name != "" {
		return input.Name
	}
	return fmt.Sprintf("#%d", idx)
}

var byteSliceType = reflect.TypeOf([]byte(nil))

func coerce(t ethabi.Type, v any) (any, error) {
	switch t.T {
	case ethabi.FixedBytesTy:
		if t.Size != 32 {
			return v, nil
		}
		return toBytes32(v)
	case ethabi.BytesTy:
		return toBytes(v)
	case ethabi.AddressTy:
		if s, ok := v.(string); ok {
			if !common.IsHexAddress(s) {
				return nil, fmt.Errorf("%w: %q is not an address", ErrArgumentType, s)
			}
			return common.HexToAddress(s), nil
		}
	}
	return v, nil
}

func toBytes32(v any) ([32]byte, error) {
	var out [32]byte
	switch val := v.(type) {
	case [32]byte:
		return val, nil
	case common.Hash:
		return val, nil
	case string:
		b, err := hexutil.Decode(val)
		if err != nil {
			return out, fmt.Errorf("%w: bytes32 hex: %w", ErrArgumentType, err)
		}
		return toBytes32(b)
	}

	rv := reflect.ValueOf(v)
	if !rv.IsValid() || !rv.Type().ConvertibleTo(byteSliceType) || rv.Kind() != reflect.Slice {
		return out, fmt.Errorf("%w: cannot use %T as bytes32", ErrArgumentType, v)
	}
	b := rv.Convert(byteSliceType).Bytes()
	if len(b) != 32 {
		return out, fmt.Errorf("%w: bytes32 needs 32 bytes, got %d", ErrArgumentSize, len(b))
	}
	copy(out[:], b)
	return out, nil
}

func toBytes(v any) ([]byte, error) {
	switch val := v.(type) {
	case []byte:
		return val, nil
	case common.Hash:
		return val.Bytes(), nil
	case string:
		if val == "" || val == "0x" {
			return []byte{}, nil
		}
		b, err := hexutil.Decode(val)
		if err != nil {
			return nil, fmt.Errorf("%w: bytes hex: %w", ErrArgumentType, err)
		}
		return b, nil
	}

	rv := reflect.ValueOf(v)
	if !rv.IsValid() || rv.Kind() != reflect.Slice || !rv.Type().ConvertibleTo(byteSliceType) {
		return nil, fmt.Errorf("%w: cannot use %T as bytes", ErrArgumentType, v)
	}
	return rv.Convert(byteSliceType).Bytes(), nil
}
