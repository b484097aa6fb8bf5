package domain

// Result is the outcome of a use-case operation: either a value or a Failure.
// Use cases return Result instead of (T, error) so callers always get a kind and a
// single human-readable message.
type Result[T any] struct {
	value   T
	failure *Failure
}

// Ok wraps a successful value.
func Ok[T any](v T) Result[T] {
	return Result[T]{value: v}
}

// Err wraps a failure.
func Err[T any](f *Failure) Result[T] {
	return Result[T]{failure: f}
}

// Errf builds a failed Result from a kind and message.
func Errf[T any](kind ErrorKind, format string, args ...any) Result[T] {
	return Result[T]{failure: Fail(kind, format, args...)}
}

func (r Result[T]) IsSuccess() bool { return r.failure == nil }

// Value returns the payload; the zero value when the result failed.
func (r Result[T]) Value() T { return r.value }

// Failure returns nil on success.
func (r Result[T]) Failure() *Failure { return r.failure }

// Kind returns the failure kind, or "" on success.
func (r Result[T]) Kind() ErrorKind {
	if r.failure == nil {
		return ""
	}
	return r.failure.Kind
}

// Message returns the failure message, or "" on success.
func (r Result[T]) Message() string {
	if r.failure == nil {
		return ""
	}
	return r.failure.Message
}
