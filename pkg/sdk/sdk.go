// Package sdk wires the facade packages over one host connection.
//
//	conf, err := sdk.LoadConfig(lg)
//	...
//	apps, err := sdk.Connect(ctx, conf)
//	...
//	defer apps.Close()
//	info, err := apps.Safe.GetInfo(ctx)
package sdk

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/HumanFS/humanfs-apps-sdk/pkg/eth"
	"github.com/HumanFS/humanfs-apps-sdk/pkg/log"
	"github.com/HumanFS/humanfs-apps-sdk/pkg/rpc"
	"github.com/HumanFS/humanfs-apps-sdk/pkg/safe"
	"github.com/HumanFS/humanfs-apps-sdk/pkg/txs"
	"github.com/HumanFS/humanfs-apps-sdk/pkg/wallet"
)

// SDK groups the facades of one app. All of them share a Communicator, so
// the single outstanding request rule holds across them.
type SDK struct {
	Safe   *safe.Safe
	Eth    *eth.Eth
	Txs    *txs.Txs
	Wallet *wallet.Wallet

	cancel context.CancelFunc
	done   chan struct{}
}

// New builds an SDK over an existing Communicator.
func New(comm rpc.Communicator) *SDK {
	w := wallet.New(comm)
	return &SDK{
		Safe:   safe.New(comm, w),
		Eth:    eth.New(comm),
		Txs:    txs.New(comm),
		Wallet: w,
		cancel: func() {},
	}
}

type connectOptions struct {
	dialer   rpc.Dialer
	registry prometheus.Registerer
}

type ConnectOption func(*connectOptions)

// WithDialer replaces the websocket transport.
func WithDialer(dialer rpc.Dialer) ConnectOption {
	return func(o *connectOptions) {
		o.dialer = dialer
	}
}

// WithRegistry registers round-trip metrics with registry when
// conf.MetricsEnabled is set. The default registerer is used otherwise.
func WithRegistry(registry prometheus.Registerer) ConnectOption {
	return func(o *connectOptions) {
		o.registry = registry
	}
}

// Connect dials conf.HostURL and returns an SDK over the connection. The
// connection lives until ctx is done or Close is called.
func Connect(ctx context.Context, conf Config, opts ...ConnectOption) (*SDK, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}

	o := connectOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.dialer == nil {
		o.dialer = rpc.NewWebsocketDialer(conf.DialerConfig())
	}

	clientOpts := []rpc.ClientOption{rpc.WithSDKVersion(conf.SDKVersion)}
	if conf.MetricsEnabled {
		clientOpts = append(clientOpts, rpc.WithMetrics(rpc.NewMetrics(o.registry)))
	}

	lg := log.FromContext(ctx).WithName("sdk")
	ctx, cancel := context.WithCancel(ctx)

	apps := New(rpc.NewClient(o.dialer, clientOpts...))
	apps.cancel = cancel
	apps.done = make(chan struct{})

	err := o.dialer.Dial(ctx, conf.HostURL, func(err error) {
		if err != nil {
			lg.Error("host connection closed", "error", err)
		} else {
			lg.Info("host connection closed")
		}
		close(apps.done)
	})
	if err != nil {
		cancel()
		return nil, fmt.Errorf("connecting to %s: %w", conf.HostURL, err)
	}
	lg.Info("connected to host", "url", conf.HostURL)

	return apps, nil
}

// Close tears the connection down.
func (s *SDK) Close() {
	s.cancel()
}

// Done is closed once the connection of a connected SDK is gone. It is nil
// for an SDK built with New.
func (s *SDK) Done() <-chan struct{} {
	return s.done
}
