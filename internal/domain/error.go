package domain

import (
	"errors"
	"fmt"
)

// ErrorKind is the closed set of failures a poll cycle can end with.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindEndpointStatus
	KindEndpointUnreachable
	KindMalformedResponse
	KindUnknownStatus
)

func (k ErrorKind) String() string {
	switch k {
	case KindEndpointStatus:
		return "endpoint_status"
	case KindEndpointUnreachable:
		return "endpoint_unreachable"
	case KindMalformedResponse:
		return "malformed_response"
	case KindUnknownStatus:
		return "unknown_status"
	default:
		return "unknown"
	}
}

var (
	ErrEndpointStatus      = errors.New("homework endpoint returned unexpected status")
	ErrEndpointUnreachable = errors.New("homework endpoint is unreachable")
	ErrMalformedResponse   = errors.New("malformed homework response")
	ErrUnknownStatus       = errors.New("unknown homework status")
)

// Sentinel returns the sentinel error matching the kind, or nil for KindUnknown.
func (k ErrorKind) Sentinel() error {
	switch k {
	case KindEndpointStatus:
		return ErrEndpointStatus
	case KindEndpointUnreachable:
		return ErrEndpointUnreachable
	case KindMalformedResponse:
		return ErrMalformedResponse
	case KindUnknownStatus:
		return ErrUnknownStatus
	default:
		return nil
	}
}

// CycleError aborts the current poll cycle but not the process.
type CycleError struct {
	Kind ErrorKind
	Op   string
	// StatusCode is set for KindEndpointStatus.
	StatusCode int
	Err        error
}

func (e *CycleError) Error() string {
	msg := e.Kind.Sentinel()
	switch {
	case e.StatusCode != 0 && e.Err != nil:
		return fmt.Sprintf("%s: %v (code %d): %v", e.Op, msg, e.StatusCode, e.Err)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s: %v (code %d)", e.Op, msg, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v: %v", e.Op, msg, e.Err)
	default:
		return fmt.Sprintf("%s: %v", e.Op, msg)
	}
}

func (e *CycleError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrMalformedResponse) match on the kind.
func (e *CycleError) Is(target error) bool {
	s := e.Kind.Sentinel()
	return s != nil && s == target
}

func NewCycleError(kind ErrorKind, op string, err error) *CycleError {
	return &CycleError{Kind: kind, Op: op, Err: err}
}

func Malformed(op, format string, args ...any) *CycleError {
	return &CycleError{Kind: KindMalformedResponse, Op: op, Err: fmt.Errorf(format, args...)}
}

// KindOf reports the kind carried by err, or KindUnknown.
func KindOf(err error) ErrorKind {
	var ce *CycleError
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return KindUnknown
}
