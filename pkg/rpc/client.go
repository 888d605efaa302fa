package rpc

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/HumanFS/humanfs-apps-sdk/pkg/log"
)

// Communicator performs one round trip with the host.
type Communicator interface {
	Send(ctx context.Context, method Method, params any) (*Response, error)
}

// DefaultSDKVersion is reported in Env when no version is configured.
const DefaultSDKVersion = "1.0.0"

// Client implements Communicator on top of a Dialer.
type Client struct {
	dialer     Dialer
	sdkVersion string
	metrics    *Metrics
	newID      func() string

	callMu sync.Mutex // one outstanding request at a time
}

var _ Communicator = (*Client)(nil)

type ClientOption func(*Client)

// WithSDKVersion sets the version reported in every request env.
func WithSDKVersion(version string) ClientOption {
	return func(c *Client) {
		c.sdkVersion = version
	}
}

// WithMetrics enables round-trip metrics.
func WithMetrics(metrics *Metrics) ClientOption {
	return func(c *Client) {
		c.metrics = metrics
	}
}

// WithIDGenerator replaces the uuid request id source.
func WithIDGenerator(newID func() string) ClientOption {
	return func(c *Client) {
		c.newID = newID
	}
}

// NewClient creates a Client over dialer. The dialer must be connected before
// the first Send.
func NewClient(dialer Dialer, opts ...ClientOption) *Client {
	c := &Client{
		dialer:     dialer,
		sdkVersion: DefaultSDKVersion,
		newID:      uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Send performs exactly one round trip. Any failure, including a response
// with success=false, is returned as a *CommunicationError.
func (c *Client) Send(ctx context.Context, method Method, params any) (*Response, error) {
	if !method.IsValid() {
		return nil, NewCommunicationError(method, fmt.Errorf("%w: %q", ErrUnknownMethod, method))
	}

	req, err := c.PrepareRequest(method, params)
	if err != nil {
		return nil, NewCommunicationError(method, err)
	}

	lg := log.FromContext(ctx).WithKV("method", method.String()).WithKV("requestId", req.ID)

	c.callMu.Lock()
	defer c.callMu.Unlock()

	start := time.Now()
	res, err := c.dialer.Call(ctx, &req)
	if err == nil && res == nil {
		err = fmt.Errorf("%w for request %s", ErrNoResponse, req.ID)
	}
	if err == nil && res.ID != req.ID {
		err = fmt.Errorf("%w: response id %q for request %q", ErrMalformedResponse, res.ID, req.ID)
	}
	if err == nil {
		err = res.Err()
	}
	c.metrics.observe(method, err, time.Since(start))

	if err != nil {
		lg.Debug("round trip failed", "error", err)
		return nil, NewCommunicationError(method, err)
	}
	lg.Debug("round trip completed", "duration", time.Since(start))
	return res, nil
}

// PrepareRequest builds the envelope for method with a fresh request id.
func (c *Client) PrepareRequest(method Method, params any) (Request, error) {
	return NewRequest(c.newID(), method, params, Env{SDKVersion: c.sdkVersion})
}

// Call sends method with params through comm and decodes the response data
// into T. A response that cannot be decoded is a *CommunicationError too.
func Call[T any](ctx context.Context, comm Communicator, method Method, params any) (T, error) {
	var result T

	res, err := comm.Send(ctx, method, params)
	if err != nil {
		return result, err
	}
	if err := res.Translate(&result); err != nil {
		return result, NewCommunicationError(method, err)
	}
	return result, nil
}
