package rpc

import (
	"encoding/json"
	"fmt"
)

// Env describes the app side of the channel to the host.
type Env struct {
	SDKVersion string `json:"sdkVersion"`
}

// Request is one message from the app to the host:
//
//	{"id": "..", "method": "getSafeInfo", "params": {..}, "env": {"sdkVersion": "1.2.0"}}
type Request struct {
	ID     string          `json:"id"`
	Method Method          `json:"method"`
	Params json.RawMessage `json:"params,omitempty"`
	Env    Env             `json:"env"`
}

// NewRequest marshals params into a Request. A nil params omits the field.
func NewRequest(id string, method Method, params any, env Env) (Request, error) {
	req := Request{ID: id, Method: method, Env: env}
	if params == nil {
		return req, nil
	}

	raw, err := json.Marshal(params)
	if err != nil {
		return Request{}, fmt.Errorf("%w: %w", ErrMarshalingRequest, err)
	}
	req.Params = raw
	return req, nil
}

// Translate decodes the request params into v.
func (r Request) Translate(v any) error {
	if len(r.Params) == 0 {
		return nil
	}
	return json.Unmarshal(r.Params, v)
}

// Response is the host's answer to the Request with the same ID. On success
// Data carries the result; otherwise Error (and optionally ErrorCode) explains
// the failure.
type Response struct {
	ID        string          `json:"id"`
	Success   bool            `json:"success"`
	Version   string          `json:"version,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
	Error     string          `json:"error,omitempty"`
	ErrorCode int             `json:"errorCode,omitempty"`
}

// NewSuccessResponse builds the successful answer to request id.
func NewSuccessResponse(id string, data any, version string) (Response, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return Response{}, fmt.Errorf("error marshalling response data: %w", err)
	}
	return Response{ID: id, Success: true, Version: version, Data: raw}, nil
}

// NewErrorResponse builds the failed answer to request id.
func NewErrorResponse(id, errMsg string, code int, version string) Response {
	return Response{ID: id, Success: false, Version: version, Error: errMsg, ErrorCode: code}
}

// Err returns a *HostError when the host reported a failure.
func (r Response) Err() error {
	if r.Success {
		return nil
	}
	return &HostError{Message: r.Error, Code: r.ErrorCode}
}

// Translate decodes the response data into v.
func (r Response) Translate(v any) error {
	if len(r.Data) == 0 {
		return fmt.Errorf("%w: empty data", ErrMalformedResponse)
	}
	if err := json.Unmarshal(r.Data, v); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	return nil
}
