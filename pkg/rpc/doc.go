// Package rpc is the client side of the host message channel.
//
// A sandboxed app talks to its host by sending a Request carrying a fresh id
// and waiting for the Response with the same id. The Dialer owns the
// connection and the id correlation; the Client layers the envelope, the
// closed Method set, error typing and metrics on top of it, and implements
// Communicator, the single primitive every higher-level package depends on:
//
//	dialer := rpc.NewWebsocketDialer(rpc.DefaultWebsocketDialerConfig)
//	err := dialer.Dial(ctx, "ws://localhost:8547/ws", handleClosure)
//
//	client := rpc.NewClient(dialer, rpc.WithSDKVersion("1.2.0"))
//	info, err := rpc.Call[safe.SafeInfo](ctx, client, rpc.GetSafeInfoMethod, nil)
//
// The Client keeps at most one request outstanding: concurrent callers are
// served one round trip at a time, in lock order.
//
// Every failure of a round trip (transport, timeout, cancelled context,
// host-reported failure, undecodable response) is returned as a
// *CommunicationError. The underlying cause stays reachable with errors.Is and
// errors.As.
package rpc
