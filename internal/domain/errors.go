package domain

import (
	"errors"
	"fmt"
)

// Domain errors (no external dependencies).
var (
	ErrNotFound     = errors.New("resource not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrDuplicate    = errors.New("duplicate resource")
	ErrConflict     = errors.New("conflict with current state")
	ErrInUse        = errors.New("resource is referenced by other records")
)

// ErrorKind classifies a failure so the transport layer can map it without string matching.
type ErrorKind string

const (
	KindNotFound       ErrorKind = "NOT_FOUND"
	KindUnavailable    ErrorKind = "UNAVAILABLE"
	KindInvalidInput   ErrorKind = "INVALID_INPUT"
	KindOutOfRange     ErrorKind = "OUT_OF_RANGE"
	KindInvalidEnum    ErrorKind = "INVALID_ENUM"
	KindConflict       ErrorKind = "CONFLICT"
	KindStorageFailure ErrorKind = "STORAGE_FAILURE"
	KindInternal       ErrorKind = "INTERNAL"
)

// Failure is a classified, single-line error message.
type Failure struct {
	Kind    ErrorKind
	Message string
}

func (f *Failure) Error() string { return f.Message }

// Fail builds a Failure with a formatted message.
func Fail(kind ErrorKind, format string, args ...any) *Failure {
	return &Failure{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// AsFailure converts any error into a Failure. Classified errors keep their kind;
// sentinel domain errors are mapped; everything else is a storage failure whose
// message is passed through behind prefix.
func AsFailure(err error, prefix string) *Failure {
	var f *Failure
	if errors.As(err, &f) {
		return f
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return &Failure{Kind: KindNotFound, Message: err.Error()}
	case errors.Is(err, ErrDuplicate), errors.Is(err, ErrConflict), errors.Is(err, ErrInUse):
		return &Failure{Kind: KindConflict, Message: err.Error()}
	case errors.Is(err, ErrInvalidInput):
		return &Failure{Kind: KindInvalidInput, Message: err.Error()}
	}
	return Fail(KindStorageFailure, "%s: %v", prefix, err)
}
