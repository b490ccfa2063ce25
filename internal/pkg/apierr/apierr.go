package apierr

import (
	"errors"
	"fmt"
)

// Kind classifies an error for propagation policy and HTTP status mapping.
type Kind string

const (
	KindValidation Kind = "validation"
	KindNotFound   Kind = "not_found"
	KindConflict   Kind = "conflict"
	// KindStore marks transport/transaction failures from the persistence
	// layer. Callers may retry or surface a transient failure.
	KindStore Kind = "store"
)

type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return string(e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

func Validationf(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Msg: fmt.Sprintf(format, args...)}
}

func NotFoundf(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Msg: fmt.Sprintf(format, args...)}
}

func Conflictf(format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Msg: fmt.Sprintf(format, args...)}
}

// Store wraps a persistence failure, keeping the cause for logs.
func Store(err error) *Error {
	if err == nil {
		return nil
	}
	return &Error{Kind: KindStore, Err: err}
}

func Storef(err error, format string, args ...any) *Error {
	return &Error{Kind: KindStore, Msg: fmt.Sprintf(format, args...), Err: err}
}

// KindOf returns the kind of err, or KindStore for untagged errors so that
// unknown failures default to the retryable path.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) && e != nil {
		return e.Kind
	}
	return KindStore
}

func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
