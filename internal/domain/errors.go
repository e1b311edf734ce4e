package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent error conditions in the opstate domain.
// These errors are returned by the public API and can be checked with errors.Is.
var (
	// ErrIO is matched by every failure of the underlying file system
	// (read, write, create-directory, rename).
	ErrIO = errors.New("opstate: io failure")

	// ErrNotFound is returned by Load when no state file exists yet.
	// It also matches ErrIO.
	ErrNotFound = errors.New("opstate: state not found")

	// ErrMalformed is returned when the stored bytes are not valid state data.
	ErrMalformed = errors.New("opstate: malformed state data")

	// ErrSerialize is returned when a State value cannot be encoded.
	ErrSerialize = errors.New("opstate: cannot serialize state")

	// ErrOperationInProgress is returned when an operation is started while
	// another one is still recorded.
	ErrOperationInProgress = errors.New("opstate: operation already in progress")

	// ErrNoOperation is returned when a status transition is requested but
	// no operation is recorded.
	ErrNoOperation = errors.New("opstate: no operation in progress")

	// ErrInvalidOperationID is returned when an operation is started with an empty id.
	ErrInvalidOperationID = errors.New("opstate: invalid operation id")
)

// ErrorKind classifies repository failures.
type ErrorKind int

const (
	KindIO ErrorKind = iota
	KindNotFound
	KindMalformed
	KindSerialize
)

// String returns a human-readable representation of the kind.
func (k ErrorKind) String() string {
	switch k {
	case KindIO:
		return "io"
	case KindNotFound:
		return "not found"
	case KindMalformed:
		return "malformed"
	case KindSerialize:
		return "serialize"
	default:
		return "unknown"
	}
}

// Error is a typed repository failure.
type Error struct {
	Kind ErrorKind
	// Op is the repository operation that failed ("load", "store", ...).
	Op string
	// Path is the file involved, if any.
	Path string
	Err  error
}

// NewError builds an Error of the given kind.
func NewError(kind ErrorKind, op, path string, err error) *Error {
	return &Error{Kind: kind, Op: op, Path: path, Err: err}
}

func (e *Error) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("opstate: %s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("opstate: %s %s: %s: %v", e.Op, e.Path, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is the sentinel for this error's kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrIO:
		return e.Kind == KindIO || e.Kind == KindNotFound
	case ErrNotFound:
		return e.Kind == KindNotFound
	case ErrMalformed:
		return e.Kind == KindMalformed
	case ErrSerialize:
		return e.Kind == KindSerialize
	}
	return false
}

// KindOf returns the kind of err if it is (or wraps) an *Error.
func KindOf(err error) (ErrorKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}
