package rpc

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/HumanFS/humanfs-apps-sdk/pkg/log"
)

// Dialer owns the connection to the host and correlates responses with
// requests by id.
type Dialer interface {
	// Dial connects to url and returns once the connection is up. Background
	// goroutines keep it alive until ctx is done or the connection fails, at
	// which point handleClosure is called exactly once.
	Dial(ctx context.Context, url string, handleClosure func(err error)) error

	// IsConnected reports whether the connection is up.
	IsConnected() bool

	// Call sends req and waits for the response with the same id, for ctx to
	// end, or for the connection to close.
	Call(ctx context.Context, req *Request) (*Response, error)
}

// dialCtx is the state of one connection. Each Dial gets a fresh one, so a
// closing connection never touches the sinks of its successor.
type dialCtx struct {
	ctx           context.Context
	conn          *websocket.Conn
	lg            log.Logger
	responseSinks map[string]chan *Response
}

// WebsocketDialerConfig configures a WebsocketDialer.
type WebsocketDialerConfig struct {
	HandshakeTimeout time.Duration
	// PingInterval is the period of websocket ping control frames.
	PingInterval time.Duration
	// RequestTimeout bounds every Call on top of the caller's context.
	// Zero leaves the caller's context as the only bound.
	RequestTimeout time.Duration
}

var DefaultWebsocketDialerConfig = WebsocketDialerConfig{
	HandshakeTimeout: 5 * time.Second,
	PingInterval:     5 * time.Second,
	RequestTimeout:   30 * time.Second,
}

// WebsocketDialer is a Dialer over a gorilla websocket connection.
type WebsocketDialer struct {
	cfg     WebsocketDialerConfig
	dialCtx *dialCtx
	mu      sync.RWMutex // protects dialCtx and its responseSinks
	writeMu sync.Mutex   // serializes websocket writes
}

var _ Dialer = (*WebsocketDialer)(nil)

func NewWebsocketDialer(cfg WebsocketDialerConfig) *WebsocketDialer {
	return &WebsocketDialer{
		cfg: cfg,
	}
}

func (d *WebsocketDialer) Dial(parentCtx context.Context, url string, handleClosure func(err error)) error {
	if d.IsConnected() {
		return ErrAlreadyConnected
	}

	dialer := websocket.Dialer{HandshakeTimeout: d.cfg.HandshakeTimeout}
	conn, _, err := dialer.DialContext(parentCtx, url, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDialingWebsocket, err)
	}

	childCtx, cancel := context.WithCancel(parentCtx)
	wg := sync.WaitGroup{}
	wg.Add(3)

	var closureErr error
	var closureErrMu sync.Mutex
	childHandleClosure := func(err error) {
		closureErrMu.Lock()
		defer closureErrMu.Unlock()

		if err != nil && closureErr == nil {
			closureErr = err
		}
		cancel()
		wg.Done()
	}

	dc := &dialCtx{
		ctx:           childCtx,
		conn:          conn,
		lg:            log.FromContext(parentCtx).WithName("ws-dialer"),
		responseSinks: make(map[string]chan *Response),
	}
	d.mu.Lock()
	d.dialCtx = dc
	d.mu.Unlock()

	go d.closeOnContextDone(dc, childHandleClosure)
	go d.readMessages(dc, childHandleClosure)
	go d.pingPeriodically(dc, childHandleClosure)

	go func() {
		wg.Wait()

		closureErrMu.Lock()
		defer closureErrMu.Unlock()
		if handleClosure != nil {
			handleClosure(closureErr)
		}
	}()

	return nil
}

func (d *WebsocketDialer) IsConnected() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.dialCtx != nil && d.dialCtx.ctx.Err() == nil
}

func (d *WebsocketDialer) closeOnContextDone(dc *dialCtx, handleClosure func(err error)) {
	<-dc.ctx.Done()

	d.mu.Lock()
	for id, sink := range dc.responseSinks {
		close(sink)
		delete(dc.responseSinks, id)
	}
	d.mu.Unlock()

	handleClosure(dc.conn.Close())
}

// readMessages hands each response to the Call waiting for its id. Responses
// nobody waits for are logged and dropped.
func (d *WebsocketDialer) readMessages(dc *dialCtx, handleClosure func(err error)) {
	ctx, conn, lg := dc.ctx, dc.conn, dc.lg

	for {
		_, messageBytes, err := conn.ReadMessage()
		if ctx.Err() != nil {
			handleClosure(nil)
			return
		} else if _, ok := err.(net.Error); ok {
			lg.Error("websocket connection timeout", "error", err)
			handleClosure(fmt.Errorf("%w: %w", ErrConnectionTimeout, err))
			return
		} else if err != nil {
			lg.Error("websocket read error", "error", err)
			handleClosure(fmt.Errorf("%w: %w", ErrReadingMessage, err))
			return
		}

		var msg Response
		if err := json.Unmarshal(messageBytes, &msg); err != nil {
			lg.Warn("malformed message", "message", string(messageBytes), "error", err)
			continue
		}

		d.mu.Lock()
		sink, exists := dc.responseSinks[msg.ID]
		if exists {
			delete(dc.responseSinks, msg.ID)
		}
		d.mu.Unlock()

		if !exists {
			lg.Warn("dropping uncorrelated response", "id", msg.ID)
			continue
		}
		// Buffered with capacity 1 and removed from the map above, so this
		// is the only send.
		sink <- &msg
	}
}

func (d *WebsocketDialer) Call(ctx context.Context, req *Request) (*Response, error) {
	if req == nil {
		return nil, ErrNilRequest
	}
	if d.cfg.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.cfg.RequestTimeout)
		defer cancel()
	}

	d.mu.Lock()
	dc := d.dialCtx
	if dc == nil || dc.ctx.Err() != nil {
		d.mu.Unlock()
		return nil, ErrNotConnected
	}
	conn := dc.conn
	connCtx := dc.ctx
	sink := make(chan *Response, 1)
	dc.responseSinks[req.ID] = sink
	d.mu.Unlock()

	removeSink := func() {
		d.mu.Lock()
		delete(dc.responseSinks, req.ID)
		d.mu.Unlock()
	}

	reqJSON, err := json.Marshal(req)
	if err != nil {
		removeSink()
		return nil, fmt.Errorf("%w: %w", ErrMarshalingRequest, err)
	}

	d.writeMu.Lock()
	err = conn.WriteMessage(websocket.TextMessage, reqJSON)
	d.writeMu.Unlock()
	if err != nil {
		removeSink()
		return nil, fmt.Errorf("%w: %w", ErrSendingRequest, err)
	}

	var res *Response
	select {
	case <-ctx.Done():
	case <-connCtx.Done():
	case res = <-sink:
	}
	removeSink()

	if res == nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w for request %s: %w", ErrNoResponse, req.ID, ctx.Err())
		}
		return nil, fmt.Errorf("%w for request %s", ErrNoResponse, req.ID)
	}
	return res, nil
}

func (d *WebsocketDialer) pingPeriodically(dc *dialCtx, handleClosure func(err error)) {
	ctx, conn, lg := dc.ctx, dc.conn, dc.lg

	if d.cfg.PingInterval <= 0 {
		<-ctx.Done()
		handleClosure(nil)
		return
	}

	ticker := time.NewTicker(d.cfg.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			handleClosure(nil)
			return
		case <-ticker.C:
			d.writeMu.Lock()
			err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(d.cfg.PingInterval))
			d.writeMu.Unlock()
			if err != nil {
				lg.Error("error sending ping", "error", err)
				handleClosure(fmt.Errorf("%w: %w", ErrSendingPing, err))
				return
			}
		}
	}
}
