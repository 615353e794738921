package appcore

import "context"

// UseCase is one application operation: a command or query in, a result out.
type UseCase[TInput any, TResult any] interface {
	Execute(ctx context.Context, in TInput) (TResult, error)
}

// Command marks inputs that change state.
type Command interface {
	CommandName() string
}

// Query marks read-only inputs.
type Query interface {
	QueryName() string
}

// Result is either a value or an informational message explaining why there is none.
// An empty result is not an error.
type Result[T any] struct {
	Value   T
	Message string
}

// NewResult wraps a value
func NewResult[T any](value T) Result[T] {
	return Result[T]{Value: value}
}

// EmptyResult carries only a message
func EmptyResult[T any](message string) Result[T] {
	return Result[T]{Message: message}
}

// IsEmpty reports whether the result carries a message instead of a value
func (r Result[T]) IsEmpty() bool {
	return r.Message != ""
}

// ListResult is the list counterpart of Result.
type ListResult[T any] struct {
	Items   []T
	Message string
}

// NewListResult wraps a list of items
func NewListResult[T any](items []T) ListResult[T] {
	if items == nil {
		items = []T{}
	}
	return ListResult[T]{Items: items}
}

// EmptyListResult carries only a message
func EmptyListResult[T any](message string) ListResult[T] {
	return ListResult[T]{Message: message}
}

// IsEmpty reports whether the result carries a message instead of items
func (r ListResult[T]) IsEmpty() bool {
	return r.Message != ""
}
