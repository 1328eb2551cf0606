package manager

import (
	"errors"
	"fmt"
)

var (
	// ErrProtected is returned for delete or in-place edit of the default profile.
	ErrProtected = errors.New("the default profile cannot be modified")
	// ErrBusy is returned when an action is already in flight for a profile.
	ErrBusy = errors.New("another action is in progress for this profile")
	// ErrClosed is returned for actions on a closed manager.
	ErrClosed = errors.New("profile manager is closed")
)

// LoadError reports a failed list or fetch. The list view offers a retry.
type LoadError struct {
	Name string // empty for list loads
	Err  error
}

func (e *LoadError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("Failed to load profiles: %v", e.Err)
	}
	return fmt.Sprintf("Failed to load profile: %v", e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// OperationError reports a failed create, update, delete or duplicate.
// Action names what was attempted ("save", "delete", ...).
type OperationError struct {
	Action string
	Name   string
	Err    error
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("Failed to %s profile: %v", e.Action, e.Err)
}

func (e *OperationError) Unwrap() error { return e.Err }
