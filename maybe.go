package tessera

// Maybe holds an optional value. The zero Maybe is empty.
type Maybe[T any] struct {
	value T
	ok    bool
}

// Some wraps v.
func Some[T any](v T) Maybe[T] {
	return Maybe[T]{value: v, ok: true}
}

// None returns an empty Maybe.
func None[T any]() Maybe[T] {
	return Maybe[T]{}
}

// Get returns the value and whether it is present.
func (m Maybe[T]) Get() (T, bool) {
	return m.value, m.ok
}

// IsPresent reports whether m holds a value.
func (m Maybe[T]) IsPresent() bool {
	return m.ok
}

// OrElse returns the value, or fallback when empty.
func (m Maybe[T]) OrElse(fallback T) T {
	if m.ok {
		return m.value
	}
	return fallback
}
