package wallet

import (
	"context"
	"fmt"

	"github.com/HumanFS/humanfs-apps-sdk/pkg/log"
	"github.com/HumanFS/humanfs-apps-sdk/pkg/rpc"
)

// Permission is one capability granted to the app.
type Permission struct {
	ParentCapability rpc.Method         `json:"parentCapability"`
	Invoker          string             `json:"invoker"`
	Date             int64              `json:"date,omitempty"`
	Caveats          []PermissionCaveat `json:"caveats,omitempty"`
}

type PermissionCaveat struct {
	Type  string `json:"type"`
	Value any    `json:"value,omitempty"`
	Name  string `json:"name,omitempty"`
}

// PermissionRequest names the capabilities asked for in one request, each
// with an empty options record:
//
//	{"getAddressBook": {}}
type PermissionRequest map[rpc.Method]struct{}

// NewPermissionRequest asks for each of methods.
func NewPermissionRequest(methods ...rpc.Method) PermissionRequest {
	req := make(PermissionRequest, len(methods))
	for _, m := range methods {
		req[m] = struct{}{}
	}
	return req
}

// Wallet talks to the permission endpoints of the host.
type Wallet struct {
	comm rpc.Communicator
}

func New(comm rpc.Communicator) *Wallet {
	return &Wallet{comm: comm}
}

// GetPermissions returns every permission currently granted to the app.
func (w *Wallet) GetPermissions(ctx context.Context) ([]Permission, error) {
	return rpc.Call[[]Permission](ctx, w.comm, rpc.WalletGetPermissionsMethod, nil)
}

// RequestPermissions asks the host for the capabilities in requests and
// returns what it granted. Requests naming unknown methods are refused
// locally. Any failure of the round trip, a host refusal included, is
// reported as a PermissionsError with code PermissionsRequestRejected.
func (w *Wallet) RequestPermissions(ctx context.Context, requests []PermissionRequest) ([]Permission, error) {
	if err := validateRequests(requests); err != nil {
		return nil, NewPermissionsError("permissions request is invalid", PermissionsRequestRejected, err)
	}

	granted, err := rpc.Call[[]Permission](ctx, w.comm, rpc.WalletRequestPermissionsMethod, requests)
	if err != nil {
		log.FromContext(ctx).Debug("permissions request failed", "error", err)
		return nil, NewPermissionsError("permissions rejected", PermissionsRequestRejected, err)
	}
	return granted, nil
}

// HasPermission reports whether method is among the granted permissions.
func (w *Wallet) HasPermission(ctx context.Context, method rpc.Method) (bool, error) {
	permissions, err := w.GetPermissions(ctx)
	if err != nil {
		return false, err
	}
	return w.FindPermission(permissions, method) != nil, nil
}

// FindPermission returns the entry of permissions whose parent capability is
// method, or nil.
func (w *Wallet) FindPermission(permissions []Permission, method rpc.Method) *Permission {
	for i := range permissions {
		if permissions[i].ParentCapability == method {
			return &permissions[i]
		}
	}
	return nil
}

func validateRequests(requests []PermissionRequest) error {
	for _, req := range requests {
		for method := range req {
			if !method.IsValid() {
				return fmt.Errorf("%w: unknown method %q", ErrInvalidPermissionRequest, method)
			}
		}
	}
	return nil
}
