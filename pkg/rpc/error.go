package rpc

import (
	"fmt"
)

var (
	ErrAlreadyConnected  = fmt.Errorf("already connected")
	ErrNotConnected      = fmt.Errorf("not connected to host")
	ErrConnectionTimeout = fmt.Errorf("websocket connection timeout")
	ErrReadingMessage    = fmt.Errorf("error reading message")
	ErrDialingWebsocket  = fmt.Errorf("error dialing websocket host")
	ErrSendingPing       = fmt.Errorf("error sending ping")

	ErrNilRequest        = fmt.Errorf("nil request")
	ErrUnknownMethod     = fmt.Errorf("unknown host method")
	ErrMarshalingRequest = fmt.Errorf("error marshaling request")
	ErrSendingRequest    = fmt.Errorf("error sending request")
	ErrNoResponse        = fmt.Errorf("no response received")
	ErrMalformedResponse = fmt.Errorf("malformed response")
)

// HostError is a failure reported by the host in a response with
// success=false.
type HostError struct {
	Message string
	Code    int
}

func (e *HostError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("host error %d: %s", e.Code, e.Message)
	}
	return "host error: " + e.Message
}

// CommunicationError is returned for every failed round trip. Err is the
// cause, unchanged.
type CommunicationError struct {
	Method Method
	Err    error
}

// NewCommunicationError wraps err unless it already is a CommunicationError.
func NewCommunicationError(method Method, err error) error {
	if _, ok := err.(*CommunicationError); ok {
		return err
	}
	return &CommunicationError{Method: method, Err: err}
}

func (e *CommunicationError) Error() string {
	return fmt.Sprintf("%s round trip failed: %v", e.Method, e.Err)
}

func (e *CommunicationError) Unwrap() error {
	return e.Err
}
