package domain

import (
	"errors"
	"fmt"
)

// FaultKind classifies a failure at its origin so commands can map it
// to an exit code without inspecting message text.
type FaultKind int

const (
	FaultUnknown FaultKind = iota
	FaultConfig
	FaultEmptyInput
	FaultInputStream
	FaultRecipientNotFound
	FaultDelivery
	FaultPlatform
	FaultRateLimit
)

func (k FaultKind) String() string {
	switch k {
	case FaultConfig:
		return "config"
	case FaultEmptyInput:
		return "empty-input"
	case FaultInputStream:
		return "input-stream"
	case FaultRecipientNotFound:
		return "recipient-not-found"
	case FaultDelivery:
		return "delivery"
	case FaultPlatform:
		return "platform"
	case FaultRateLimit:
		return "rate-limit"
	default:
		return "unknown"
	}
}

// Fault is an error tagged with its kind.
type Fault struct {
	Kind FaultKind
	Err  error
}

func (f *Fault) Error() string {
	if f.Err == nil {
		return f.Kind.String()
	}
	return f.Err.Error()
}

func (f *Fault) Unwrap() error { return f.Err }

// NewFault builds a Fault wrapping a formatted error.
func NewFault(kind FaultKind, format string, args ...any) *Fault {
	return &Fault{Kind: kind, Err: fmt.Errorf(format, args...)}
}

// KindOf returns the kind of the first Fault in err's chain, or
// FaultUnknown when the chain carries none.
func KindOf(err error) FaultKind {
	var f *Fault
	if errors.As(err, &f) {
		return f.Kind
	}
	return FaultUnknown
}
