// Package options implements the functional-option plumbing used by the
// table encoder. Options validate their settings when applied, so an
// invalid combination surfaces as an error from the call site rather than
// a panic during construction.
package options

// Option configures a target of type T. Applying an option may fail when
// the carried setting is invalid for the target.
type Option[T any] interface {
	apply(T) error
}

type funcOption[T any] func(T) error

func (f funcOption[T]) apply(target T) error {
	return f(target)
}

// New wraps a fallible configuration function as an Option.
func New[T any](fn func(T) error) Option[T] {
	return funcOption[T](fn)
}

// NoError wraps an infallible configuration function as an Option.
func NoError[T any](fn func(T)) Option[T] {
	return funcOption[T](func(target T) error {
		fn(target)
		return nil
	})
}

// Apply runs the options against target in order, returning the first
// error encountered.
func Apply[T any](target T, opts ...Option[T]) error {
	for _, opt := range opts {
		if err := opt.apply(target); err != nil {
			return err
		}
	}

	return nil
}
