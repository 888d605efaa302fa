package abi

import "fmt"

var (
	ErrInvalidABI    = fmt.Errorf("invalid abi definition")
	ErrUnknownMethod = fmt.Errorf("unknown method")
	ErrArgumentCount = fmt.Errorf("wrong argument count")
	ErrArgumentType  = fmt.Errorf("argument does not match declared type")
	ErrArgumentSize  = fmt.Errorf("argument does not match declared size")
)

// EncodingError reports calldata that could not be built from the given
// arguments. Arg is empty when the failure is not tied to one argument.
type EncodingError struct {
	Method string
	Arg    string
	Err    error
}

func (e *EncodingError) Error() string {
	if e.Arg != "" {
		return fmt.Sprintf("encode %s(%s): %v", e.Method, e.Arg, e.Err)
	}
	return fmt.Sprintf("encode %s: %v", e.Method, e.Err)
}

func (e *EncodingError) Unwrap() error {
	return e.Err
}
