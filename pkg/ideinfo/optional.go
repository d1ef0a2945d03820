package ideinfo

// Optional holds a value that may be absent. The zero value is absent.
//
// It keeps "not set" apart from "set to the zero value", which matters for
// message fields with explicit presence.
type Optional[T any] struct {
	value T
	ok    bool
}

// Some returns a present Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, ok: true}
}

// None returns an absent Optional.
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.ok
}

// IsPresent reports whether a value is held.
func (o Optional[T]) IsPresent() bool {
	return o.ok
}

// OrElse returns the held value, or def when absent.
func (o Optional[T]) OrElse(def T) T {
	if o.ok {
		return o.value
	}
	return def
}

// EqualFunc reports whether both are absent, or both present with values
// equal under eq.
func (o Optional[T]) EqualFunc(other Optional[T], eq func(a, b T) bool) bool {
	if o.ok != other.ok {
		return false
	}
	return !o.ok || eq(o.value, other.value)
}
