package wallet

import (
	"fmt"
)

// PermissionsRequestRejected is the code of a permission request the user or
// the host turned down.
const PermissionsRequestRejected = 4001

var (
	ErrInvalidPermissionRequest = fmt.Errorf("invalid permission request")
)

// PermissionsError reports a permission the app does not hold after asking
// for it.
type PermissionsError struct {
	Message string
	Code    int
	Data    any
}

func NewPermissionsError(message string, code int, data any) *PermissionsError {
	return &PermissionsError{Message: message, Code: code, Data: data}
}

func (e *PermissionsError) Error() string {
	return fmt.Sprintf("permissions error %d: %s", e.Code, e.Message)
}

// Unwrap exposes the failure carried in Data, if any.
func (e *PermissionsError) Unwrap() error {
	err, _ := e.Data.(error)
	return err
}
