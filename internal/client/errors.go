package client

import (
	"fmt"
	"net/http"
)

// Op names a client operation.
type Op string

const (
	OpList      Op = "list"
	OpGet       Op = "get"
	OpCreate    Op = "create"
	OpUpdate    Op = "update"
	OpDelete    Op = "delete"
	OpDuplicate Op = "duplicate"
	OpTemplate  Op = "template"
)

// RequestError is returned for any failed call to the profile service.
// Message holds the service's "error" field when the response carried one.
type RequestError struct {
	Op      Op
	Name    string
	Status  int
	Message string
	Err     error
}

func (e *RequestError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	msg := e.fallback()
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *RequestError) Unwrap() error { return e.Err }

// NotFound reports whether the service answered 404.
func (e *RequestError) NotFound() bool { return e.Status == http.StatusNotFound }

func (e *RequestError) fallback() string {
	switch e.Op {
	case OpList:
		return "failed to fetch profiles"
	case OpGet:
		return "failed to fetch profile: " + e.Name
	case OpTemplate:
		return "failed to fetch profile template"
	default:
		return fmt.Sprintf("failed to %s profile", e.Op)
	}
}
