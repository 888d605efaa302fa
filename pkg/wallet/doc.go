// Package wallet implements the permission gate of the host. Apps list the
// capabilities the host granted them with GetPermissions and ask for new ones
// with RequestPermissions; privileged facade operations check a capability
// with HasPermission before touching data behind it.
package wallet
