// Package dnserrors defines the typed error kinds this resolver propagates:
// malformed wire data, an encode that would not fit in a DNS message, a
// transport failure talking to some other nameserver, bad caller input, and
// anything else that should be treated as an internal failure.
package dnserrors

import (
	"errors"
	"fmt"

	"github.com/blazskufca/goresolve/internal/header"
)

// FormatError means inbound wire data did not parse as a valid DNS message.
type FormatError struct {
	Op  string
	Err error
}

func (e *FormatError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: malformed dns message", e.Op)
	}
	return fmt.Sprintf("%s: malformed dns message: %v", e.Op, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

// BufferOverflowError means an encoded message (or one of its components)
// would exceed the 512-octet limit this resolver enforces.
type BufferOverflowError struct {
	Op   string
	Size int
	Max  int
}

func (e *BufferOverflowError) Error() string {
	return fmt.Sprintf("%s: encoded size %d exceeds limit of %d octets", e.Op, e.Size, e.Max)
}

// NetworkError means a send/receive to another nameserver failed or timed out.
type NetworkError struct {
	Op   string
	Addr string
	Err  error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Addr, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// InputError means the caller supplied something this resolver cannot act
// on — an empty name, a query with no question, an out-of-range field.
type InputError struct {
	Op  string
	Err error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s: invalid input: %v", e.Op, e.Err)
}

func (e *InputError) Unwrap() error { return e.Err }

// InternalError covers anything that should never happen given the
// invariants this resolver maintains on its own data.
type InternalError struct {
	Op  string
	Err error
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("%s: internal error: %v", e.Op, e.Err)
}

func (e *InternalError) Unwrap() error { return e.Err }

// RCODE maps an error produced by this package to the response code a
// server should send back for it. A nil or unrecognized error maps to
// ServerFailure, the conservative default.
func RCODE(err error) header.ResponseCode {
	var (
		formatErr  *FormatError
		overflowErr *BufferOverflowError
		networkErr *NetworkError
		inputErr   *InputError
	)
	switch {
	case errors.As(err, &formatErr):
		return header.FormatError
	case errors.As(err, &overflowErr):
		return header.ServerFailure
	case errors.As(err, &networkErr):
		return header.ServerFailure
	case errors.As(err, &inputErr):
		return header.FormatError
	default:
		return header.ServerFailure
	}
}
