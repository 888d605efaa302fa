// Package rpctest provides an in-memory host for tests of code built on
// rpc.Communicator.
package rpctest

import (
	"context"
	"errors"
	"sync"

	"github.com/HumanFS/humanfs-apps-sdk/pkg/rpc"
)

// HandlerFunc answers one request. The returned value becomes the response
// data. A *rpc.HostError becomes a success=false response; any other error is
// returned from Call as a transport failure.
type HandlerFunc func(req rpc.Request) (any, error)

var _ rpc.Dialer = (*MockDialer)(nil)

// MockDialer is an always-connected rpc.Dialer that routes requests to
// per-method handlers and records every call.
type MockDialer struct {
	mu          sync.Mutex
	handlers    map[rpc.Method]HandlerFunc
	calls       []rpc.Request
	inFlight    int
	maxInFlight int
}

func NewMockDialer() *MockDialer {
	return &MockDialer{handlers: make(map[rpc.Method]HandlerFunc)}
}

// NewClient returns a MockDialer and an rpc.Client connected to it.
func NewClient(opts ...rpc.ClientOption) (*rpc.Client, *MockDialer) {
	dialer := NewMockDialer()
	return rpc.NewClient(dialer, opts...), dialer
}

func (d *MockDialer) RegisterHandler(method rpc.Method, handler HandlerFunc) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.handlers[method] = handler
}

// RegisterResult registers a handler that always answers with data.
func (d *MockDialer) RegisterResult(method rpc.Method, data any) {
	d.RegisterHandler(method, func(rpc.Request) (any, error) {
		return data, nil
	})
}

// RegisterError registers a handler that always fails with err.
func (d *MockDialer) RegisterError(method rpc.Method, err error) {
	d.RegisterHandler(method, func(rpc.Request) (any, error) {
		return nil, err
	})
}

func (d *MockDialer) Dial(context.Context, string, func(error)) error {
	return nil
}

func (d *MockDialer) IsConnected() bool {
	return true
}

func (d *MockDialer) Call(ctx context.Context, req *rpc.Request) (*rpc.Response, error) {
	if req == nil {
		return nil, rpc.ErrNilRequest
	}

	d.mu.Lock()
	d.calls = append(d.calls, *req)
	d.inFlight++
	if d.inFlight > d.maxInFlight {
		d.maxInFlight = d.inFlight
	}
	handler, exists := d.handlers[req.Method]
	d.mu.Unlock()

	defer func() {
		d.mu.Lock()
		d.inFlight--
		d.mu.Unlock()
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if !exists {
		res := rpc.NewErrorResponse(req.ID, "method not found", 0, "")
		return &res, nil
	}

	data, err := handler(*req)
	if err != nil {
		var hostErr *rpc.HostError
		if errors.As(err, &hostErr) {
			res := rpc.NewErrorResponse(req.ID, hostErr.Message, hostErr.Code, "")
			return &res, nil
		}
		return nil, err
	}

	res, err := rpc.NewSuccessResponse(req.ID, data, "")
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// Calls returns every request received so far, in order.
func (d *MockDialer) Calls() []rpc.Request {
	d.mu.Lock()
	defer d.mu.Unlock()

	return append([]rpc.Request(nil), d.calls...)
}

// CallCount returns how many requests for method were received.
func (d *MockDialer) CallCount(method rpc.Method) int {
	d.mu.Lock()
	defer d.mu.Unlock()

	n := 0
	for _, c := range d.calls {
		if c.Method == method {
			n++
		}
	}
	return n
}

// MaxInFlight returns the highest number of concurrent Calls observed.
func (d *MockDialer) MaxInFlight() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.maxInFlight
}
